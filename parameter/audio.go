package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap between consecutive sounds of the same kind
	MinSoundGap = 30 * time.Millisecond
)

// Slice Sound
const (
	SliceSoundFreq     = 880.0
	SliceSoundDuration = 70 * time.Millisecond
	SliceSoundRelease  = 40 * time.Millisecond
)

// Fail Sound
const (
	FailSoundFreq     = 180.0
	FailSoundDuration = 90 * time.Millisecond
	FailSoundRelease  = 30 * time.Millisecond
)

// Miss Sound
const (
	MissSoundDuration = 120 * time.Millisecond
	MissSoundRelease  = 80 * time.Millisecond
)

// Fallback Sound
const (
	FallbackSoundFreq     = 440.0
	FallbackSoundDuration = 70 * time.Millisecond
	FallbackSoundRelease  = 40 * time.Millisecond
)

// BlueSoundPitch raises blue feedback a fifth above red so hands are audible apart
const BlueSoundPitch = 1.5

// SoundVolume is the beep volume exponent offset (base 2), 0 = unity
const SoundVolume = -1.0

// SoundAttack is the shared envelope attack for all feedback tones
const SoundAttack = 5 * time.Millisecond
