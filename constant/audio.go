package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration sets speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Hit Tone
const (
	HitToneMinDuration = 150 * time.Millisecond
	HitToneMaxDuration = 900 * time.Millisecond
	HitToneAttack      = 5 * time.Millisecond
	HitToneRelease     = 120 * time.Millisecond

	// HitToneOvertoneMix is the octave overtone level relative to the fundamental
	HitToneOvertoneMix = 0.3
)
