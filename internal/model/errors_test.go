package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Messages(t *testing.T) {
	assert.Equal(t, "duplicate name: Big Blue", NewDuplicateName("Big Blue").Error())
	assert.Equal(t, "no such name: Weave", NewNoSuchName("Weave").Error())
	assert.Equal(t, "kiln Big Blue has no program named Slump", NewNoSuchProgram("Big Blue", "Slump").Error())
	assert.Equal(t, "invalid index 3", NewInvalidIndex(3).Error())
	assert.Equal(t, "failed to deserialize a Kiln", NewDeserializationError("Kiln", nil).Error())
	assert.Contains(t, NewInconsistentProgram("Big Blue", "Slump").Error(), "inconsistent")
	assert.Contains(t, NewInconsistentProject("Weave").Error(), "Weave")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := WrapSQL(cause)

	assert.Equal(t, CodeSQL, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestHasCode_WrappedErrors(t *testing.T) {
	inner := NewDuplicateName("Big Blue")
	wrapped := fmt.Errorf("create kiln: %w", inner)

	assert.True(t, IsDuplicateName(wrapped))
	assert.False(t, IsNoSuchName(wrapped))
	assert.False(t, HasCode(errors.New("plain"), CodeDuplicateName))

	var e *Error
	require.ErrorAs(t, wrapped, &e)
	assert.Equal(t, "Big Blue", e.Name)
}
