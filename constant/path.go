package constant

// Launch Segment Geometry
const (
	// LaunchHeight is the vertical offset of the synthetic launch point above board 0
	LaunchHeight = 6.0

	// LaunchPull is the vertical distance of both launch control points from their anchors
	LaunchPull = 2.0
)

// Inter-board Segment Geometry
const (
	// ExitSpeed scales the exit control point along the source board's angle
	ExitSpeed = 3.0

	// ExitLift halves the vertical part of the exit direction
	ExitLift = 0.5

	// ExitSag pulls the exit control point down per second of musical gap
	ExitSag = 1.5

	// EntryRise lifts the entry control point per second of musical gap
	EntryRise = 2.0
)

// Segment Timing
const (
	// DefaultLeadIn is the duration of the launch segment in seconds
	DefaultLeadIn = 0.8

	// DefaultStepGap is the per-segment duration under uniform pacing
	DefaultStepGap = 0.5
)

// Trail
const (
	// TrailCapacity is the number of positions kept in the ring buffer
	TrailCapacity = 80

	// TrailDecayRate is the opacity lost per second by each trail entry
	TrailDecayRate = 2.0
)
