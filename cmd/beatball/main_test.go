package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/beatball/config"
	"github.com/lixenwraith/beatball/player"
	"github.com/lixenwraith/beatball/song"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdirTemp(t)

	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	argv := append([]string{"beatball", "--env-file", filepath.Join(t.TempDir(), "none.env")}, args...)
	err := app.Run(context.Background(), argv)
	return out.String(), err
}

func TestSimulateCommand(t *testing.T) {
	out, err := runApp(t, "--lead-in", "0.5", "simulate", "--dt", "0.125")
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 21 {
		t.Fatalf("Expected 20 hits and a summary, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "board=0 t=0.500 label=恋" {
		t.Errorf("Unexpected first line %q", lines[0])
	}
	if lines[2] != "board=2 t=1.500 label=" {
		t.Errorf("Unexpected third line %q", lines[2])
	}
	if lines[20] != "duration=10.000 hits=20" {
		t.Errorf("Unexpected summary %q", lines[20])
	}
}

func TestSimulateUniform(t *testing.T) {
	out, err := runApp(t, "--timing", "uniform", "--gap", "0.25", "--lead-in", "0.5", "simulate", "--dt", "0.25")
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if !strings.Contains(out, "board=1 t=0.750 ") {
		t.Errorf("Expected uniform hop of 0.25s, got:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "duration=5.250 hits=20") {
		t.Errorf("Unexpected summary in:\n%s", out)
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	if _, err := runApp(t, "simulate", "--dt", "0"); err == nil {
		t.Error("Expected error for zero dt")
	}
	if _, err := runApp(t, "--timing", "swing", "simulate"); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if _, err := runApp(t, "--song", "missing.toml", "simulate"); err == nil {
		t.Error("Expected error for a missing song file")
	}
}

func TestSimulateSongFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.toml")
	tiny := &song.Song{
		Title: "tiny",
		Notes: []song.Note{
			{Time: 0, Pitch: 60, Duration: 0.5, Lyric: "la"},
			{Time: 1, Pitch: 62, Duration: 0.5},
		},
	}
	if err := song.Save(path, tiny); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := runApp(t, "--song", path, "--lead-in", "0.5", "simulate", "--dt", "0.5")
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	want := "board=0 t=0.500 label=la\nboard=1 t=1.500 label=\nduration=1.500 hits=2\n"
	if out != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, out)
	}
}

func TestSimulateOutOfOrderTimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shuffled.toml")
	shuffled := &song.Song{
		Title: "shuffled",
		Notes: []song.Note{
			{Time: 0, Pitch: 60, Duration: 0.5},
			{Time: 5, Pitch: 62, Duration: 0.5},
			{Time: 1, Pitch: 64, Duration: 0.5},
		},
	}
	if err := song.Save(path, shuffled); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := runApp(t, "--song", path, "--lead-in", "0.5", "simulate", "--dt", "0.5")
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	want := "board=0 t=0.500 label=\nboard=1 t=5.500 label=\nboard=2 t=5.500 label=\nduration=1.500 hits=3\n"
	if out != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, out)
	}
}

func TestSimulateLargeStep(t *testing.T) {
	sess := player.NewSession(song.Demo(), player.Config{Engine: player.DefaultConfig().Engine}, nil)
	var out bytes.Buffer
	if err := simulate(&out, sess, 100); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if !strings.HasSuffix(out.String(), "hits=20\n") {
		t.Errorf("Expected every board reported in one step, got:\n%s", out.String())
	}
}
