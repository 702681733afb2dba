package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/beatball/mcpserver"
	"github.com/lixenwraith/beatball/player"
	"github.com/lixenwraith/beatball/server"
	"github.com/lixenwraith/beatball/status"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run a real-time session over HTTP and WebSocket",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (default localhost:8080)"},
			&cli.BoolFlag{Name: "mcp", Usage: "also serve MCP tools over stdio"},
			&cli.BoolFlag{Name: "autoplay", Usage: "start playback immediately"},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("addr") {
		cfg.Addr = cmd.String("addr")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
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
	srv := server.New(cfg.Addr, sess)
	if cmd.Bool("autoplay") {
		sess.Enqueue(player.CommandPlay)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sess.Run(ctx, cfg.FrameInterval) })
	g.Go(func() error { return srv.ListenAndServe(ctx) })
	if cmd.Bool("mcp") {
		g.Go(func() error {
			err := mcpserver.New(sess).Listen(ctx, os.Stdin, os.Stdout)
			log.Printf("mcp: stdio closed: %v", err)
			return nil
		})
	}
	return g.Wait()
}
