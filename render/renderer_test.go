package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/beatball/effects"
	"github.com/lixenwraith/beatball/player"
	"github.com/lixenwraith/beatball/song"
	"github.com/lixenwraith/beatball/vmath"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(ch)
	}
	return sb.String()
}

func TestProject(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	x, y, ok := r.Project(vmath.V2F(0, 2), 2)
	if !ok || x != 40 || y != 7 {
		t.Errorf("Expected camera point at (40,7), got (%d,%d) ok=%v", x, y, ok)
	}

	x, y, _ = r.Project(vmath.V2F(1, 0), 2)
	if x != 43 || y != 10 {
		t.Errorf("Expected (43,10), got (%d,%d)", x, y)
	}

	if _, _, ok := r.Project(vmath.V2F(0, -100), 2); ok {
		t.Error("Expected a far point to be off screen")
	}
}

func TestDrawIdleFrame(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)
	sess := player.NewSession(song.Demo(), player.DefaultConfig(), nil)
	snap := sess.Snapshot()

	r.Draw(snap)

	bx, by, ok := r.Project(snap.Ball, snap.CameraY)
	if !ok {
		t.Fatal("Expected the ball on screen at launch")
	}
	if ch, _, _, _ := screen.GetContent(bx, by); ch != BallRune {
		t.Errorf("Expected ball at (%d,%d), got %q", bx, by, ch)
	}

	first := snap.Boards[0]
	cx, cy, ok := r.Project(first.Position, snap.CameraY)
	if !ok {
		t.Fatal("Expected the first board on screen")
	}
	ch, _, style, _ := screen.GetContent(cx, cy)
	if ch != BoardRune {
		t.Errorf("Expected board glyph at (%d,%d), got %q", cx, cy, ch)
	}
	if fg, _, _ := style.Decompose(); fg != Color(effects.InactiveColor) {
		t.Errorf("Expected inactive board colour, got %v", fg)
	}

	status := rowText(screen, 23, 80)
	if !strings.Contains(status, "0:00 / 0:") {
		t.Errorf("Expected clock in status bar, got %q", status)
	}
	if !strings.Contains(status, keyHelp) {
		t.Errorf("Expected key help in status bar, got %q", status)
	}
}

func TestDrawGlowAfterHit(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)
	cfg := player.DefaultConfig()
	cfg.MaxFrameDelta = 0
	sess := player.NewSession(song.Demo(), cfg, nil)

	sess.Enqueue(player.CommandPlay)
	for len(sess.Tick(0.05)) == 0 {
	}
	snap := sess.Snapshot()
	r.Draw(snap)

	b := snap.Boards[0]
	cx, cy, ok := r.Project(b.Position, snap.CameraY)
	if !ok {
		t.Fatal("Expected the first board on screen")
	}

	found := false
	for x := cx - 4; x <= cx+4; x++ {
		ch, _, style, _ := screen.GetContent(x, cy)
		if ch != BoardRune {
			continue
		}
		found = true
		if fg, _, _ := style.Decompose(); fg == Color(effects.InactiveColor) {
			t.Errorf("Expected glowing colour at (%d,%d)", x, cy)
		}
	}
	if !found {
		t.Error("Expected board cells near the hit board")
	}

	status := rowText(screen, 23, 80)
	if !strings.Contains(status, "▶") {
		t.Errorf("Expected playing icon, got %q", status)
	}
}

func TestDrawTinyScreen(t *testing.T) {
	screen := newTestScreen(t, 3, 1)
	r := NewTerminalRenderer(screen)
	sess := player.NewSession(song.Demo(), player.DefaultConfig(), nil)
	r.Draw(sess.Snapshot())
	r.Draw(nil)
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{2, "████"},
		{-1, "░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.p, 4); got != tt.want {
			t.Errorf("ProgressBar(%v): expected %s, got %s", tt.p, tt.want, got)
		}
	}
}

func TestFadedEndpoints(t *testing.T) {
	if Faded(effects.BallColor, 1) != Color(effects.BallColor) {
		t.Error("Expected full alpha to give the colour itself")
	}
	if Faded(effects.BallColor, 0) != Color(Background) {
		t.Error("Expected zero alpha to give the background")
	}
}
