package engine

import (
	"time"

	"github.com/lixenwraith/collide/constants"
)

// FixedStepper converts wall-clock frames into fixed simulation steps
// A single frame delta is clamped to MaxFrameDelta and at most MaxSteps steps run per
// Advance; time left over beyond that cap is dropped, keeping only the part below one step
type FixedStepper struct {
	clock TimeProvider

	Step          time.Duration
	MaxSteps      int
	MaxFrameDelta time.Duration

	last    time.Time
	started bool
	acc     time.Duration
	dropped time.Duration
}

// NewFixedStepper creates a stepper reading clock with the default 60 Hz step
func NewFixedStepper(clock TimeProvider) *FixedStepper {
	return &FixedStepper{
		clock:         clock,
		Step:          constants.FixedStep,
		MaxSteps:      constants.MaxStepsPerFrame,
		MaxFrameDelta: constants.MaxFrameDelta,
	}
}

// Advance reads the clock and calls step once per whole fixed step accumulated
// The first call only records the start time; returns the number of steps run
// A non-positive Step runs nothing and accumulates nothing
func (s *FixedStepper) Advance(step func(dt float64)) int {
	now := s.clock.Now()
	if !s.started {
		s.started = true
		s.last = now
		return 0
	}

	delta := now.Sub(s.last)
	s.last = now
	if s.Step <= 0 {
		return 0
	}
	if delta < 0 {
		delta = 0
	}
	if delta > s.MaxFrameDelta {
		delta = s.MaxFrameDelta
	}
	s.acc += delta

	dt := s.Step.Seconds()
	steps := 0
	for s.acc >= s.Step && steps < s.MaxSteps {
		step(dt)
		s.acc -= s.Step
		steps++
	}

	if s.acc >= s.Step {
		rest := s.acc % s.Step
		s.dropped += s.acc - rest
		s.acc = rest
	}
	return steps
}

// Accumulated returns the time waiting for the next step
func (s *FixedStepper) Accumulated() time.Duration {
	return s.acc
}

// Dropped returns the total simulated time discarded by the step cap
func (s *FixedStepper) Dropped() time.Duration {
	return s.dropped
}

// Reset forgets the last reading and any accumulated time
func (s *FixedStepper) Reset() {
	s.started = false
	s.acc = 0
}
