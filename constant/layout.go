package constant

// Pitch/time to world mapping
const (
	// PitchCenter is the MIDI pitch placed at x = 0
	PitchCenter = 66

	// PitchScale is world units per semitone
	PitchScale = 1.2

	// TimeScale is world units per second; negative so the song descends
	TimeScale = -8.0

	// AngleRun is the horizontal run used to derive a board's tilt toward the next board
	AngleRun = 2.0

	// AngleDamping scales the raw tilt angle
	AngleDamping = 0.6
)

// Board Dimensions
const (
	BoardWidthBase    = 2.5
	BoardWidthPerBeat = 1.5
)
