package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-saber/event"
	"github.com/lixenwraith/vi-saber/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays feedback tones through the speaker
// Implements event.Sink; every call is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool

	lastPlayed [event.KindCount]time.Time
	now        func() time.Time
	play       func(beep.Streamer)

	logger zerolog.Logger
}

// NewSoundManager creates a manager; call Initialize to open the device
func NewSoundManager(logger zerolog.Logger) *SoundManager {
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		now:    time.Now,
		logger: logger.With().Str("component", "audio").Logger(),
	}
	sm.play = func(s beep.Streamer) {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
	return sm
}

// Initialize opens the speaker; on failure audio stays disabled and the error is returned
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		sm.logger.Warn().Err(err).Msg("speaker unavailable, audio disabled")
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// SetMuted silences feedback without closing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Enabled reports whether tones would currently be played
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted
}

// Notify implements event.Sink
// Repeats of one kind closer than MinSoundGap are dropped
func (sm *SoundManager) Notify(f event.Feedback) {
	if f.Kind >= event.KindCount {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	now := sm.now()
	if last := sm.lastPlayed[f.Kind]; !last.IsZero() && now.Sub(last) < parameter.MinSoundGap {
		return
	}

	s := Tone(f, sampleRate)
	if s == nil {
		return
	}
	sm.lastPlayed[f.Kind] = now
	sm.play(s)
}

// Cleanup drops queued tones and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}
