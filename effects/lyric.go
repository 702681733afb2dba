package effects

import (
	"sort"

	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/layout"
	"github.com/lixenwraith/beatball/vmath"
)

// Lyric is the reveal state of one labelled board
type Lyric struct {
	Board   int
	Text    string
	Anchor  vmath.Vec3F // beside the board's right edge
	Opacity float64
	target  float64
}

// Lyrics reveals board labels as they are hit and lets them fade
type Lyrics struct {
	byBoard map[int]*Lyric
	order   []int
}

// NewLyrics creates reveal state for every labelled board
func NewLyrics(boards []layout.Board) *Lyrics {
	l := &Lyrics{byBoard: make(map[int]*Lyric)}
	for _, b := range boards {
		if b.Label == "" {
			continue
		}
		l.byBoard[b.Index] = &Lyric{
			Board:  b.Index,
			Text:   b.Label,
			Anchor: vmath.V2F(b.Position.X+b.Width*0.8, b.Position.Y+0.8),
		}
		l.order = append(l.order, b.Index)
	}
	sort.Ints(l.order)
	return l
}

// Activate starts revealing a board's lyric; unlabelled boards are ignored
func (l *Lyrics) Activate(board int) {
	if ly, ok := l.byBoard[board]; ok {
		ly.target = 1
	}
}

// Update fades in quickly toward a raised target, then fades out slowly
func (l *Lyrics) Update(dt float64) {
	for _, ly := range l.byBoard {
		if ly.target > ly.Opacity {
			ly.Opacity = vmath.Clamp01(ly.Opacity + dt*constant.LyricFadeInRate)
		} else {
			ly.Opacity = vmath.Clamp01(ly.Opacity - dt*constant.LyricFadeOutRate)
			ly.target = vmath.Clamp01(ly.target - dt*constant.LyricFadeOutRate)
		}
	}
}

// Reset hides every lyric
func (l *Lyrics) Reset() {
	for _, ly := range l.byBoard {
		ly.Opacity = 0
		ly.target = 0
	}
}

// Get returns a board's lyric state
func (l *Lyrics) Get(board int) (Lyric, bool) {
	ly, ok := l.byBoard[board]
	if !ok {
		return Lyric{}, false
	}
	return *ly, true
}

// Visible calls fn for each lyric with non-zero opacity, in board order
func (l *Lyrics) Visible(fn func(ly Lyric)) {
	for _, idx := range l.order {
		if ly := l.byBoard[idx]; ly.Opacity > 0 {
			fn(*ly)
		}
	}
}

// Len returns the number of labelled boards
func (l *Lyrics) Len() int { return len(l.order) }
