package player

import (
	"fmt"
	"math"

	"github.com/lixenwraith/beatball/effects"
	"github.com/lixenwraith/beatball/trail"
	"github.com/lixenwraith/beatball/vmath"
)

// BoardView is the render state of one board
type BoardView struct {
	Position vmath.Vec3F `json:"position"`
	Width    float64     `json:"width"`
	Angle    float64     `json:"angle"`
	Glow     float64     `json:"glow"`
	Color    effects.RGB `json:"color"`
}

// BurstView is the render state of one live burst
type BurstView struct {
	Color   effects.RGB   `json:"color"`
	Opacity float64       `json:"opacity"`
	Points  []vmath.Vec3F `json:"points"`
}

// LyricView is a revealed lyric with non-zero opacity
type LyricView struct {
	Board   int         `json:"board"`
	Text    string      `json:"text"`
	Anchor  vmath.Vec3F `json:"anchor"`
	Opacity float64     `json:"opacity"`
}

// Snapshot is an immutable copy of one frame, safe to share across goroutines
type Snapshot struct {
	Title    string  `json:"title"`
	State    string  `json:"state"`
	Elapsed  float64 `json:"elapsed"`
	Duration float64 `json:"duration"`
	Progress float64 `json:"progress"`
	Hits     int     `json:"hits"`
	LastHit  int     `json:"last_hit"` // -1 before the first hit

	Ball    vmath.Vec3F `json:"ball"`
	CameraY float64     `json:"camera_y"`

	Boards []BoardView   `json:"boards"`
	Trail  []trail.Entry `json:"trail"`
	Bursts []BurstView   `json:"bursts"`
	Lyrics []LyricView   `json:"lyrics"`
}

// Clock renders "elapsed / duration" for status lines
func (s *Snapshot) Clock() string {
	return FormatTime(s.Elapsed) + " / " + FormatTime(s.Duration)
}

// FormatTime renders seconds as m:ss, negative values as 0:00
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
