package model

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes the failures the tracker can report.
type ErrorCode string

const (
	// CodeSQL wraps an underlying driver or storage failure verbatim.
	CodeSQL ErrorCode = "SQL_ERROR"

	// CodeDuplicateName indicates a create found an existing row with the
	// same name in the relevant uniqueness scope.
	CodeDuplicateName ErrorCode = "DUPLICATE_NAME"

	// CodeNoSuchName indicates a referenced kiln or project does not exist.
	CodeNoSuchName ErrorCode = "NO_SUCH_NAME"

	// CodeNoSuchProgram indicates a (kiln, program) pair does not resolve.
	CodeNoSuchProgram ErrorCode = "NO_SUCH_PROGRAM"

	// CodeInconsistentProgram indicates a caller's in-memory program header
	// disagrees with the stored one during step replacement.
	CodeInconsistentProgram ErrorCode = "INCONSISTENT_PROGRAM"

	// CodeInconsistentProject indicates a caller's in-memory project id
	// disagrees with the stored one during firing addition.
	CodeInconsistentProject ErrorCode = "INCONSISTENT_PROJECT"

	// CodeInvalidIndex indicates an aggregate edit was given an
	// out-of-range position.
	CodeInvalidIndex ErrorCode = "INVALID_INDEX"

	// CodeFailedDeserialization indicates a row could not be mapped back
	// to its entity shape.
	CodeFailedDeserialization ErrorCode = "FAILED_DESERIALIZATION"
)

// Error is the one failure type every fallible tracker operation returns.
// The populated payload fields depend on the code.
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Name is the offending kiln/project name for DuplicateName,
	// NoSuchName and InconsistentProject.
	Name string

	// Kiln and Program identify the pair for NoSuchProgram and
	// InconsistentProgram. For InconsistentProgram they are the names as
	// stored, not as submitted.
	Kiln    string
	Program string

	// Index is the out-of-range position for InvalidIndex.
	Index int

	// Entity names the shape that failed to deserialize.
	Entity string

	// Err is the wrapped driver error for CodeSQL, or extra detail for
	// CodeFailedDeserialization. Nil otherwise.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case CodeSQL:
		return fmt.Sprintf("storage error: %v", e.Err)
	case CodeDuplicateName:
		return fmt.Sprintf("duplicate name: %s", e.Name)
	case CodeNoSuchName:
		return fmt.Sprintf("no such name: %s", e.Name)
	case CodeNoSuchProgram:
		return fmt.Sprintf("kiln %s has no program named %s", e.Kiln, e.Program)
	case CodeInconsistentProgram:
		return fmt.Sprintf("kiln %s program %s is inconsistent with the stored record", e.Kiln, e.Program)
	case CodeInconsistentProject:
		return fmt.Sprintf("project %s is inconsistent with the stored record", e.Name)
	case CodeInvalidIndex:
		return fmt.Sprintf("invalid index %d", e.Index)
	case CodeFailedDeserialization:
		if e.Err != nil {
			return fmt.Sprintf("failed to deserialize a %s: %v", e.Entity, e.Err)
		}
		return fmt.Sprintf("failed to deserialize a %s", e.Entity)
	}
	return fmt.Sprintf("%s: unknown error", e.Code)
}

// Unwrap exposes the wrapped driver error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapSQL wraps an underlying storage failure.
func WrapSQL(err error) *Error {
	return &Error{Code: CodeSQL, Err: err}
}

// NewDuplicateName reports a uniqueness violation for name.
func NewDuplicateName(name string) *Error {
	return &Error{Code: CodeDuplicateName, Name: name}
}

// NewNoSuchName reports a missing kiln or project.
func NewNoSuchName(name string) *Error {
	return &Error{Code: CodeNoSuchName, Name: name}
}

// NewNoSuchProgram reports an unresolvable (kiln, program) pair.
func NewNoSuchProgram(kiln, program string) *Error {
	return &Error{Code: CodeNoSuchProgram, Kiln: kiln, Program: program}
}

// NewInconsistentProgram reports a header mismatch during step replacement.
// The names are taken from the stored record.
func NewInconsistentProgram(kiln, program string) *Error {
	return &Error{Code: CodeInconsistentProgram, Kiln: kiln, Program: program}
}

// NewInconsistentProject reports a project id mismatch during firing addition.
func NewInconsistentProject(name string) *Error {
	return &Error{Code: CodeInconsistentProject, Name: name}
}

// NewInvalidIndex reports an out-of-range aggregate edit.
func NewInvalidIndex(index int) *Error {
	return &Error{Code: CodeInvalidIndex, Index: index}
}

// NewDeserializationError reports a row that could not be mapped to entity.
func NewDeserializationError(entity string, err error) *Error {
	return &Error{Code: CodeFailedDeserialization, Entity: entity, Err: err}
}

// HasCode reports whether err is (or wraps) a tracker Error with the given
// code. Uses errors.As to handle wrapped errors.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsDuplicateName reports whether err is a DuplicateName failure.
func IsDuplicateName(err error) bool { return HasCode(err, CodeDuplicateName) }

// IsNoSuchName reports whether err is a NoSuchName failure.
func IsNoSuchName(err error) bool { return HasCode(err, CodeNoSuchName) }

// IsNoSuchProgram reports whether err is a NoSuchProgram failure.
func IsNoSuchProgram(err error) bool { return HasCode(err, CodeNoSuchProgram) }

// IsInvalidIndex reports whether err is an InvalidIndex failure.
func IsInvalidIndex(err error) bool { return HasCode(err, CodeInvalidIndex) }
