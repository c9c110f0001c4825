// Package audio plays short collision cues through the system speaker
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/collide/constants"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// ImpactPlayer turns resolved collision counts into rate limited impact sounds
// All methods are safe without a working audio device; they become no-ops
type ImpactPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool

	now      func() time.Time
	cooldown time.Duration
	last     time.Time
}

// NewImpactPlayer creates a player; now supplies the cooldown clock, nil uses time.Now
func NewImpactPlayer(now func() time.Time) *ImpactPlayer {
	if now == nil {
		now = time.Now
	}
	return &ImpactPlayer{
		mixer:    &beep.Mixer{},
		now:      now,
		cooldown: constants.ImpactCooldown,
	}
}

// Initialize opens the speaker and starts the mixer
func (p *ImpactPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences pending cues
func (p *ImpactPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// ToggleMute flips muting and reports whether sound is now on
func (p *ImpactPlayer) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return !p.muted
}

// Impact queues one cue for a pass that resolved hits collisions
// Returns false when nothing was queued
func (p *ImpactPlayer) Impact(hits int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || !p.allow(hits) {
		return false
	}

	cue := impactCue(sampleRate, constants.ImpactToneHz, constants.ImpactDuration, hits)
	speaker.Lock()
	p.mixer.Add(cue)
	speaker.Unlock()
	return true
}

// allow applies the cooldown; caller holds mu
func (p *ImpactPlayer) allow(hits int) bool {
	if hits <= 0 {
		return false
	}
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.cooldown {
		return false
	}
	p.last = now
	return true
}
