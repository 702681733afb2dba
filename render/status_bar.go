package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/beatball/player"
)

const (
	progressWidth = 20
	keyHelp       = "space play  r reset  q quit"
)

var (
	statusStyle   = tcell.StyleDefault.Background(tcell.NewRGBColor(30, 30, 60)).Foreground(tcell.NewRGBColor(220, 220, 240))
	progressStyle = statusStyle.Foreground(tcell.NewRGBColor(192, 132, 252))
	helpStyle     = statusStyle.Foreground(tcell.NewRGBColor(130, 130, 160))
)

// ProgressBar renders fraction p as a fixed-width bar
func ProgressBar(p float64, width int) string {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	filled := int(p*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// stateIcon marks the playback state at the left of the bar
func stateIcon(state string) string {
	switch state {
	case "playing":
		return "▶"
	case "finished":
		return "■"
	default:
		return "‖"
	}
}

func (r *TerminalRenderer) drawStatusBar(snap *player.Snapshot) {
	if r.height < 1 {
		return
	}
	y := r.height - 1
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	x := r.drawText(1, y, stateIcon(snap.State)+" "+snap.Title+" ", statusStyle)
	x = r.drawText(x, y, ProgressBar(snap.Progress, progressWidth), progressStyle)
	x = r.drawText(x+1, y, snap.Clock(), statusStyle)

	if help := x + 2; help+len(keyHelp) < r.width {
		r.drawText(r.width-len(keyHelp)-1, y, keyHelp, helpStyle)
	}
}
