// Command beatball plays a song as a ball hopping across one board per note.
//
// Subcommands:
//
//	play      interactive terminal player with audio (default)
//	simulate  headless fixed-step run printing every hit
//	serve     headless real-time session over HTTP/WebSocket, optionally MCP
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lixenwraith/beatball/config"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "beatball: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	play := playCommand()
	return &cli.Command{
		Name:    "beatball",
		Usage:   "watch a ball bounce through a melody",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "song", Usage: "TOML song file (default: built-in melody)"},
			&cli.StringFlag{Name: "timing", Usage: "segment timing: musical or uniform"},
			&cli.FloatFlag{Name: "lead-in", Usage: "launch segment duration in seconds"},
			&cli.BoolFlag{Name: "lead-in-from-event", Usage: "use the first note's time as the lead-in"},
			&cli.FloatFlag{Name: "gap", Usage: "seconds per hop under uniform timing"},
			&cli.BoolFlag{Name: "debug", Usage: "write logs to " + logDir + "/" + logFileName},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file read before the environment"},
		},
		Commands: []*cli.Command{
			play,
			simulateCommand(),
			serveCommand(),
		},
		Action: play.Action,
	}
}

// resolveConfig layers .env, environment and global flags, then validates
func resolveConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return config.Config{}, err
	}

	if cmd.IsSet("song") {
		cfg.SongPath = cmd.String("song")
	}
	if cmd.IsSet("timing") {
		cfg.Timing = cmd.String("timing")
	}
	if cmd.IsSet("lead-in") {
		cfg.LeadIn = cmd.Float("lead-in")
	}
	if cmd.IsSet("lead-in-from-event") {
		cfg.LeadInFromEvent = cmd.Bool("lead-in-from-event")
	}
	if cmd.IsSet("gap") {
		cfg.StepGap = cmd.Float("gap")
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}

	return cfg, cfg.Validate()
}
