// Package model defines the entities and aggregates of the kiln tracker.
//
// Entities are plain value objects whose identifiers are assigned by the
// store (monotonically increasing, 64-bit, immutable once assigned):
//   - Kiln: a physical firing device
//   - FiringSequence: a named program header owned by a kiln
//   - FiringStep: one ramp/target/dwell stage of a program
//   - Project: a tracked glass piece
//   - ProjectFiring: the link between a project and one program execution
//   - ProjectImage: a picture attached to a project
//
// Two aggregates stitch entities together in memory:
//   - KilnProgram: a kiln, a firing sequence, and its ordered steps
//   - KilnProject: a project, its ordered (comment, program) firings, and
//     its ordered images
//
// Constructors take already-validated data; validation against the stored
// state is the store's job. Aggregate editors are bounds-checked and return
// a typed Error on a bad index; the direct positional accessors (FiringAt,
// PictureAt) panic instead, matching their documented contract.
//
// The package also carries the closed error taxonomy shared by the model
// editors and the store, so callers can switch on one flat set of codes.
package model
