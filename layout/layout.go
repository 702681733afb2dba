// Package layout maps a note sequence to board placements in world space.
package layout

import (
	"math"

	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/song"
	"github.com/lixenwraith/beatball/vmath"
)

// Board is one timed waypoint the ball lands on
type Board struct {
	Position vmath.Vec3F // z is always 0
	Angle    float64     // exit tilt in radians, positive leans toward +x
	Width    float64
	Time     float64 // event time in seconds
	Duration float64 // event duration in seconds
	Pitch    int
	Index    int
	Label    string
}

// PitchX returns the horizontal position of a MIDI pitch
func PitchX(pitch int) float64 {
	return float64(pitch-constant.PitchCenter) * constant.PitchScale
}

// TimeY returns the vertical position of an event time
func TimeY(t float64) float64 {
	return t * constant.TimeScale
}

// Generate places one board per note, in note order
// Each board tilts toward the next one; the last board is level
func Generate(notes []song.Note) []Board {
	boards := make([]Board, 0, len(notes))

	for i, n := range notes {
		x := PitchX(n.Pitch)

		angle := 0.0
		if i < len(notes)-1 {
			dx := PitchX(notes[i+1].Pitch) - x
			angle = math.Atan2(dx, constant.AngleRun) * constant.AngleDamping
		}

		boards = append(boards, Board{
			Position: vmath.V2F(x, TimeY(n.Time)),
			Angle:    angle,
			Width:    constant.BoardWidthBase + n.Duration*constant.BoardWidthPerBeat,
			Time:     n.Time,
			Duration: n.Duration,
			Pitch:    n.Pitch,
			Index:    i,
			Label:    n.Lyric,
		})
	}

	return boards
}
