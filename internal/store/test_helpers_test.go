package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fusedglass/kiln/internal/model"
)

// createTestStore opens a fresh on-disk store under a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kiln.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedKiln creates a kiln through the public API.
func seedKiln(t *testing.T, s *Store, name, description string) {
	t.Helper()
	if err := s.AddKiln(context.Background(), name, description); err != nil {
		t.Fatalf("AddKiln(%q) failed: %v", name, err)
	}
}

// seedProgram creates a kiln program and returns the empty aggregate.
func seedProgram(t *testing.T, s *Store, kiln, program, description string) *model.KilnProgram {
	t.Helper()
	p, err := s.AddProgram(context.Background(), kiln, program, description)
	if err != nil {
		t.Fatalf("AddProgram(%q, %q) failed: %v", kiln, program, err)
	}
	return p
}

// seedProgramWithSteps creates a program and commits the given steps.
func seedProgramWithSteps(t *testing.T, s *Store, kiln, program string, steps []model.FiringStep) *model.KilnProgram {
	t.Helper()
	p := seedProgram(t, s, kiln, program, "")
	p.AddSteps(steps)
	committed, err := s.ReplaceProgramSteps(context.Background(), p)
	if err != nil {
		t.Fatalf("ReplaceProgramSteps(%q, %q) failed: %v", kiln, program, err)
	}
	return committed
}

// seedProject creates a project and returns the empty aggregate.
func seedProject(t *testing.T, s *Store, name, description string) *model.KilnProject {
	t.Helper()
	p, err := s.AddProject(context.Background(), name, description)
	if err != nil {
		t.Fatalf("AddProject(%q) failed: %v", name, err)
	}
	return p
}

// step builds an unsaved firing step; ids are zero until committed.
func step(ramp model.RampRate, target, dwell int64) model.FiringStep {
	return model.NewFiringStep(0, 0, ramp, target, dwell)
}
