package constant

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the driver tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps a single update step after a stall
	MaxFrameDelta = 50 * time.Millisecond

	// BroadcastInterval is how often headless sessions publish frames to network clients
	BroadcastInterval = 50 * time.Millisecond

	// CommandQueueSize bounds pending play/reset commands between ticks
	CommandQueueSize = 64
)

// Playback
const (
	// PlayPreRoll is the pause before the launch segment starts moving, interactive player only
	PlayPreRoll = 0.5
)
