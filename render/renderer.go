// Package render draws player snapshots onto a tcell screen.
package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/effects"
	"github.com/lixenwraith/beatball/player"
	"github.com/lixenwraith/beatball/vmath"
)

// Glyphs
const (
	BoardRune       = '▬'
	TrailRune       = '·'
	TrailBrightRune = '•'
	BallRune        = '●'
	BurstRune       = '*'
)

// TerminalRenderer projects world space onto terminal cells
// World x = 0 is the centre column; the camera y sits a third of the way down
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
	base   tcell.Style
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		base:   tcell.StyleDefault.Background(Color(Background)),
	}
	r.Resize()
	return r
}

// Resize re-reads the screen dimensions
func (r *TerminalRenderer) Resize() {
	r.width, r.height = r.screen.Size()
}

// viewHeight is the number of rows above the status bar
func (r *TerminalRenderer) viewHeight() int {
	h := r.height - constant.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// Project maps a world point to a cell; ok is false when off screen
func (r *TerminalRenderer) Project(p vmath.Vec3F, cameraY float64) (x, y int, ok bool) {
	x = r.width/2 + int(math.Round(p.X*constant.CellsPerUnitX))
	y = r.viewHeight()/3 + int(math.Round((cameraY-p.Y)*constant.CellsPerUnitY))
	ok = x >= 0 && x < r.width && y >= 0 && y < r.viewHeight()
	return x, y, ok
}

// Draw renders one full frame and shows it
func (r *TerminalRenderer) Draw(snap *player.Snapshot) {
	r.screen.Fill(' ', r.base)
	if snap != nil {
		r.drawBoards(snap)
		r.drawTrail(snap)
		r.drawBursts(snap)
		r.drawLyrics(snap)
		r.drawBall(snap)
		r.drawStatusBar(snap)
	}
	r.screen.Show()
}

func (r *TerminalRenderer) drawBoards(snap *player.Snapshot) {
	for _, b := range snap.Boards {
		cx, cy, _ := r.Project(b.Position, snap.CameraY)
		if cy < 0 || cy >= r.viewHeight() {
			continue
		}
		half := int(math.Round(b.Width * constant.CellsPerUnitX / 2))
		style := r.base.Foreground(Color(b.Color))
		if b.Glow > 0 {
			style = style.Bold(true)
		}
		for x := cx - half; x <= cx+half; x++ {
			if x >= 0 && x < r.width {
				r.screen.SetContent(x, cy, BoardRune, nil, style)
			}
		}
	}
}

func (r *TerminalRenderer) drawTrail(snap *player.Snapshot) {
	for _, e := range snap.Trail {
		if e.Alpha <= 0 {
			continue
		}
		x, y, ok := r.Project(e.Pos, snap.CameraY)
		if !ok {
			continue
		}
		ch := TrailRune
		if e.Alpha >= constant.TrailBrightAlpha {
			ch = TrailBrightRune
		}
		r.screen.SetContent(x, y, ch, nil, r.base.Foreground(Faded(effects.TrailColor, e.Alpha)))
	}
}

func (r *TerminalRenderer) drawBursts(snap *player.Snapshot) {
	for _, b := range snap.Bursts {
		if b.Opacity <= 0 {
			continue
		}
		style := r.base.Foreground(Faded(b.Color, b.Opacity))
		for _, p := range b.Points {
			if x, y, ok := r.Project(p, snap.CameraY); ok {
				r.screen.SetContent(x, y, BurstRune, nil, style)
			}
		}
	}
}

func (r *TerminalRenderer) drawLyrics(snap *player.Snapshot) {
	for _, ly := range snap.Lyrics {
		x, y, ok := r.Project(ly.Anchor, snap.CameraY)
		if !ok {
			continue
		}
		r.drawText(x, y, ly.Text, r.base.Foreground(Faded(effects.BallColor, ly.Opacity)))
	}
}

func (r *TerminalRenderer) drawBall(snap *player.Snapshot) {
	if x, y, ok := r.Project(snap.Ball, snap.CameraY); ok {
		r.screen.SetContent(x, y, BallRune, nil, r.base.Foreground(Color(effects.BallColor)).Bold(true))
	}
}

// drawText writes s from column x, honouring wide runes, and returns the next column
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}
