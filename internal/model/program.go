package model

import (
	"fmt"
	"strconv"
	"strings"
)

// afapEncoding is the stored sentinel for an as-fast-as-possible ramp.
// Any stored value >= 0 is a degrees-per-second rate; 0 is a legal rate
// distinct from AFAP.
const afapEncoding = -1

// RampRate is the speed of a temperature change: either a fixed rate in
// degrees per second, or AFAP ("as fast as possible" - heating element
// fully on for upward ramps, fully off for downward ones).
type RampRate struct {
	afap bool
	rate int64
}

// AFAP returns the as-fast-as-possible ramp rate.
func AFAP() RampRate {
	return RampRate{afap: true}
}

// DegPerSec returns a fixed ramp rate in degrees per second.
func DegPerSec(rate int64) RampRate {
	return RampRate{rate: rate}
}

// IsAFAP reports whether the ramp is as-fast-as-possible.
func (r RampRate) IsAFAP() bool {
	return r.afap
}

// DegreesPerSecond returns the fixed rate. Zero for AFAP ramps; check
// IsAFAP first when the distinction matters.
func (r RampRate) DegreesPerSecond() int64 {
	return r.rate
}

// Encode returns the single signed integer stored in the Firing_steps
// table: -1 for AFAP, the rate itself otherwise.
func (r RampRate) Encode() int64 {
	if r.afap {
		return afapEncoding
	}
	return r.rate
}

// DecodeRampRate maps a stored ramp column back to a RampRate. Values >= 0
// are rates; anything negative decodes as AFAP.
func DecodeRampRate(v int64) RampRate {
	if v >= 0 {
		return DegPerSec(v)
	}
	return AFAP()
}

// String renders the rate the way the CLI accepts it: "AFAP" or the
// decimal degrees-per-second value.
func (r RampRate) String() string {
	if r.afap {
		return "AFAP"
	}
	return strconv.FormatInt(r.rate, 10)
}

// ParseRampRate parses "AFAP" (any case) or a non-negative integer rate.
func ParseRampRate(s string) (RampRate, error) {
	if strings.EqualFold(strings.TrimSpace(s), "AFAP") {
		return AFAP(), nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return RampRate{}, fmt.Errorf("ramp rate must be AFAP or an integer: %q", s)
	}
	if n < 0 {
		return RampRate{}, fmt.Errorf("ramp rate must not be negative: %d", n)
	}
	return DegPerSec(n), nil
}

// FiringSequence is a program header: a named, described sequence defined
// on a specific kiln. The steps live in their own table and are carried by
// the KilnProgram aggregate.
type FiringSequence struct {
	// ID is assigned by the store and immutable once assigned.
	ID int64

	// Name is unique within the owning kiln, not globally.
	Name string

	// Description is free text.
	Description string

	// KilnID is the immutable back-reference to the owning kiln.
	KilnID int64
}

// NewFiringSequence builds a sequence header value.
func NewFiringSequence(id int64, name, description string, kilnID int64) FiringSequence {
	return FiringSequence{ID: id, Name: name, Description: description, KilnID: kilnID}
}

// FiringStep is one stage of a program: ramp to TargetTemp at Ramp, then
// hold there for DwellTime minutes.
type FiringStep struct {
	// ID is assigned by the store and immutable once assigned.
	ID int64

	// SequenceID is the immutable back-reference to the owning sequence.
	SequenceID int64

	// Ramp is how fast to approach the target.
	Ramp RampRate

	// TargetTemp is the target temperature in integer degrees.
	TargetTemp int64

	// DwellTime is how long to hold at the target, in integer minutes.
	DwellTime int64
}

// NewFiringStep builds a step value.
func NewFiringStep(id, sequenceID int64, ramp RampRate, targetTemp, dwellTime int64) FiringStep {
	return FiringStep{
		ID:         id,
		SequenceID: sequenceID,
		Ramp:       ramp,
		TargetTemp: targetTemp,
		DwellTime:  dwellTime,
	}
}

// KilnProgram is the in-memory aggregate of a kiln, one of its firing
// sequences, and the sequence's ordered steps (ascending step id, which is
// insertion order at the time of the last replacement).
//
// Invariant: every step's SequenceID equals the sequence's ID, and the
// sequence's KilnID equals the kiln's ID. The store maintains this when it
// reconstitutes or commits a program; in-memory editing trusts the caller.
type KilnProgram struct {
	kiln     Kiln
	sequence FiringSequence
	steps    []FiringStep
}

// NewKilnProgram builds an empty program over the given kiln and sequence.
func NewKilnProgram(kiln Kiln, sequence FiringSequence) *KilnProgram {
	return &KilnProgram{kiln: kiln, sequence: sequence}
}

// Kiln returns the owning kiln value.
func (p *KilnProgram) Kiln() Kiln {
	return p.kiln
}

// Sequence returns the program header value.
func (p *KilnProgram) Sequence() FiringSequence {
	return p.sequence
}

// Steps returns a copy of the ordered step list.
func (p *KilnProgram) Steps() []FiringStep {
	out := make([]FiringStep, len(p.steps))
	copy(out, p.steps)
	return out
}

// Len is the number of steps in the program.
func (p *KilnProgram) Len() int {
	return len(p.steps)
}

// AddStep appends a step. Appending is always valid.
func (p *KilnProgram) AddStep(step FiringStep) *KilnProgram {
	p.steps = append(p.steps, step)
	return p
}

// AddSteps appends several steps in order.
func (p *KilnProgram) AddSteps(steps []FiringStep) *KilnProgram {
	p.steps = append(p.steps, steps...)
	return p
}

// RemoveStep removes the step at index, shifting later steps left. Returns
// InvalidIndex, leaving the list untouched, when index >= Len.
func (p *KilnProgram) RemoveStep(index int) error {
	if index >= len(p.steps) || index < 0 {
		return NewInvalidIndex(index)
	}
	p.steps = append(p.steps[:index], p.steps[index+1:]...)
	return nil
}

// InsertStep inserts a step at index, shifting later steps right.
// index == Len appends. Returns InvalidIndex, leaving the list untouched,
// when index > Len.
func (p *KilnProgram) InsertStep(step FiringStep, index int) error {
	if index > len(p.steps) || index < 0 {
		return NewInvalidIndex(index)
	}
	p.steps = append(p.steps, FiringStep{})
	copy(p.steps[index+1:], p.steps[index:])
	p.steps[index] = step
	return nil
}
