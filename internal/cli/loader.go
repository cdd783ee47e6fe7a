package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fusedglass/kiln/internal/model"
)

// stepFile is the YAML document accepted by --steps-file.
//
//	steps:
//	  - ramp: AFAP
//	    target: 1000
//	    dwell: 30
//	  - ramp: 300
//	    target: 1250
//	    dwell: 15
type stepFile struct {
	Steps []stepEntry `yaml:"steps"`
}

// stepEntry is one firing step as written in a step file. Ramp is kept as
// a string so "AFAP" and plain integers share a field.
type stepEntry struct {
	Ramp   string `yaml:"ramp"`
	Target int64  `yaml:"target"`
	Dwell  int64  `yaml:"dwell"`
}

// LoadStepFile reads a YAML step file and converts it into firing steps.
// The returned steps carry zero ids; the store assigns real ones.
func LoadStepFile(path string) ([]model.FiringStep, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read step file: %w", err)
	}

	var doc stepFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse step file %s: %w", path, err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("step file %s defines no steps", path)
	}

	steps := make([]model.FiringStep, 0, len(doc.Steps))
	for i, entry := range doc.Steps {
		ramp, err := model.ParseRampRate(entry.Ramp)
		if err != nil {
			return nil, fmt.Errorf("step %d in %s: %w", i+1, path, err)
		}
		steps = append(steps, model.FiringStep{
			Ramp:       ramp,
			TargetTemp: entry.Target,
			DwellTime:  entry.Dwell,
		})
	}
	return steps, nil
}
