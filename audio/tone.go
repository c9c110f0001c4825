package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// tone is a sine oscillator with a linear decay over its whole length
type tone struct {
	freq   float64
	phase  float64
	pos    int
	length int
	rate   beep.SampleRate
}

// NewTone creates a decaying sine of the given pitch and duration
func NewTone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:   freq,
		length: rate.N(duration),
		rate:   rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.length {
			return i, i > 0
		}

		decay := 1 - float64(t.pos)/float64(t.length)
		val := math.Sin(2*math.Pi*t.phase) * decay
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s linearly; vol <= 0 is silent
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// impactCue builds one impact sound: a short thump plus a quieter octave click
// Louder and lower for heavier passes
func impactCue(rate beep.SampleRate, baseHz float64, duration time.Duration, hits int) beep.Streamer {
	weight := math.Min(1, math.Log2(float64(hits)+1)/4)
	hz := baseHz * (1 - 0.4*weight)
	vol := 0.25 + 0.5*weight

	body := NewTone(hz, duration, rate)
	click := withVolume(NewTone(hz*2, duration/2, rate), 0.3)
	return beep.Take(rate.N(duration), withVolume(beep.Mix(body, click), vol))
}
