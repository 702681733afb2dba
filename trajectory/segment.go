// Package trajectory turns a board layout into a timed sequence of cubic
// curve segments, one per board.
//
// Segment 0 drops the ball from a launch point above board 0 onto board 0.
// Segment i (i > 0) carries the ball from board i-1 to board i. Segment i
// always terminates at board i, so reaching the end of a segment is a hit on
// that board.
//
// Segments are contiguous: segment i ends exactly where segment i+1 starts,
// both in space and in time. With musical timing the windows follow the
// boards' event times; out-of-order event times yield zero or negative
// windows, which the traversal engine tolerates.
package trajectory

import (
	"github.com/lixenwraith/beatball/vmath"
)

// Segment is one timed cubic piece of the path, immutable once built
type Segment struct {
	Curve      vmath.CubicBez
	StartTime  float64
	EndTime    float64
	BoardIndex int // board reached when this segment completes
}

// Start returns the segment's first point
func (s Segment) Start() vmath.Vec3F { return s.Curve.P0 }

// End returns the board position the segment terminates at
func (s Segment) End() vmath.Vec3F { return s.Curve.P3 }

// Duration may be zero or negative for out-of-order event times
func (s Segment) Duration() float64 { return s.EndTime - s.StartTime }

// LocalT maps playback time into the segment's [0,1] parameter
// Non-positive windows pin t at 0 so the ball neither divides by zero nor jumps ahead
func (s Segment) LocalT(elapsed float64) float64 {
	d := s.Duration()
	if d <= 0 {
		return 0
	}
	return vmath.Clamp01((elapsed - s.StartTime) / d)
}

// At evaluates the curve at playback time
func (s Segment) At(elapsed float64) vmath.Vec3F {
	return s.Curve.Eval(s.LocalT(elapsed))
}

// Path is an immutable ordered segment list
type Path []Segment

// Duration is the end time of the last segment, 0 for an empty path
func (p Path) Duration() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].EndTime
}

// LatestEnd is the largest segment end time, 0 for an empty path
// It exceeds Duration when event times are out of order
func (p Path) LatestEnd() float64 {
	var end float64
	for _, s := range p {
		end = max(end, s.EndTime)
	}
	return end
}

// Launch returns the synthetic start point, the zero vector for an empty path
func (p Path) Launch() vmath.Vec3F {
	if len(p) == 0 {
		return vmath.Vec3F{}
	}
	return p[0].Start()
}
