package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lixenwraith/beatball/player"
)

var (
	errNotStarted = errors.New("playback did not start")
	errStalled    = errors.New("playback did not finish")
)

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "run headless at a fixed step and print each hit",
		Flags: []cli.Flag{
			&cli.FloatFlag{Name: "dt", Value: 1.0 / 60, Usage: "seconds per step"},
		},
		Action: runSimulate,
	}
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	dt := cmd.Float("dt")
	if dt <= 0 || math.IsNaN(dt) {
		return fmt.Errorf("dt must be positive, got %v", dt)
	}

	sng, err := cfg.LoadSong()
	if err != nil {
		return err
	}
	pc, err := cfg.PlayerConfig()
	if err != nil {
		return err
	}
	pc.MaxFrameDelta = 0

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	return simulate(w, player.NewSession(sng, pc, nil), dt)
}

// simulate plays sess to the end at a fixed step, one line per hit
func simulate(w io.Writer, sess *player.Session, dt float64) error {
	sess.Enqueue(player.CommandPlay)
	sess.Tick(0)

	e := sess.Engine()
	if !e.Playing() {
		return errNotStarted
	}

	limit := int(math.Ceil((e.Path().LatestEnd()+e.Config().PreRoll)/dt)) + 2
	for step := 0; e.Playing(); step++ {
		if step > limit {
			return errStalled
		}
		for _, h := range sess.Tick(dt) {
			fmt.Fprintf(w, "board=%d t=%.3f label=%s\n", h.Board, h.Elapsed, h.Label)
		}
	}

	snap := sess.Snapshot()
	fmt.Fprintf(w, "duration=%.3f hits=%d\n", snap.Duration, snap.Hits)
	return nil
}
