package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"

	"github.com/lixenwraith/beatball/audio"
	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/player"
	"github.com/lixenwraith/beatball/render"
	"github.com/lixenwraith/beatball/status"
)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "interactive terminal player (space play, r reset, q quit)",
		Flags: []cli.Flag{
			&cli.FloatFlag{Name: "pre-roll", Usage: "seconds of stillness before launch"},
			&cli.BoolFlag{Name: "mute", Usage: "disable audio"},
		},
		Action: runPlay,
	}
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	switch {
	case cmd.IsSet("pre-roll"):
		cfg.PreRoll = cmd.Float("pre-roll")
	case cfg.PreRoll == 0:
		cfg.PreRoll = constant.PlayPreRoll
	}
	if cmd.Bool("mute") {
		cfg.AudioEnabled = false
	}

	sng, err := cfg.LoadSong()
	if err != nil {
		return err
	}
	pc, err := cfg.PlayerConfig()
	if err != nil {
		return err
	}
	sess := player.NewSession(sng, pc, status.NewRegistry())

	synth := audio.NewSynth(cfg.AudioConfig())
	if err := synth.Start(); err != nil {
		log.Printf("audio: %v", err)
	}
	defer synth.Stop()
	sess.AddListener(synth)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	// Restore the terminal before printing a crash so the trace is readable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mBEATBALL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	return loop(ctx, screen, sess, render.NewTerminalRenderer(screen), cfg.FrameInterval)
}

// loop owns the session: input and frame ticks are serialised here
func loop(ctx context.Context, screen tcell.Screen, sess *player.Session, r *render.TerminalRenderer, interval time.Duration) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.Draw(sess.Snapshot())
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok || !handleEvent(ev, screen, sess, r) {
				return nil
			}

		case now := <-ticker.C:
			sess.Tick(now.Sub(last).Seconds())
			last = now
			r.Draw(sess.Snapshot())
		}
	}
}

// handleEvent applies one input event; false means quit
func handleEvent(ev tcell.Event, screen tcell.Screen, sess *player.Session, r *render.TerminalRenderer) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			sess.Enqueue(player.CommandToggle)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				sess.Enqueue(player.CommandPlay)
			case 'r', 'R':
				sess.Enqueue(player.CommandReset)
			}
		}

	case *tcell.EventResize:
		screen.Sync()
		r.Resize()
	}
	return true
}
