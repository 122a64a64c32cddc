package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vi-saber/core"
	"github.com/lixenwraith/vi-saber/event"
	"github.com/lixenwraith/vi-saber/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator of the given length
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseStart   int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack ramp and a release ramp ending at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	start := total - rel
	if start < att {
		start = att
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseStart:   start,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= e.releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume applies a base-2 volume exponent; math.Inf(-1) silences
func newVolume(s beep.Streamer, exp float64) beep.Streamer {
	if math.IsInf(exp, -1) {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: exp}
}

// pitch shifts blue feedback above red
func pitch(c core.Color) float64 {
	if c == core.ColorBlue {
		return parameter.BlueSoundPitch
	}
	return 1.0
}

func tone(freq float64, duration, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, duration, wave, rate)
	return NewEnvelope(osc, duration, parameter.SoundAttack, release, rate)
}

// Tone builds the streamer for one feedback event, nil for kinds without a sound
func Tone(f event.Feedback, rate beep.SampleRate) beep.Streamer {
	p := pitch(f.Color)

	var s beep.Streamer
	switch f.Kind {
	case event.KindSliceSuccess:
		// fundamental plus octave
		s = beep.Mix(
			newVolume(tone(parameter.SliceSoundFreq*p, parameter.SliceSoundDuration, parameter.SliceSoundRelease, WaveSine, rate), -0.5),
			newVolume(tone(2*parameter.SliceSoundFreq*p, parameter.SliceSoundDuration, parameter.SliceSoundRelease, WaveSine, rate), -1.7),
		)
		// bound to the note length
		s = beep.Take(rate.N(parameter.SliceSoundDuration), s)
	case event.KindSliceFail:
		s = tone(parameter.FailSoundFreq, parameter.FailSoundDuration, parameter.FailSoundRelease, WaveSaw, rate)
	case event.KindMiss:
		s = tone(0, parameter.MissSoundDuration, parameter.MissSoundRelease, WaveNoise, rate)
	case event.KindGeometryFallback:
		s = tone(parameter.FallbackSoundFreq*p, parameter.FallbackSoundDuration, parameter.FallbackSoundRelease, WaveSquare, rate)
	default:
		return nil
	}
	return newVolume(s, parameter.SoundVolume)
}
