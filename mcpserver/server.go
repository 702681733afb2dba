// Package mcpserver exposes playback control as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lixenwraith/beatball/player"
)

const (
	serverName    = "beatball"
	serverVersion = "1.0.0"
)

// Server wraps an MCP server bound to one session
type Server struct {
	session   *player.Session
	mcpServer *server.MCPServer
}

// New registers the playback tools for session
func New(session *player.Session) *Server {
	s := &Server{session: session}
	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Beatball - a ball hops across one board per note of a song.

AVAILABLE TOOLS:
- play: start playback (a finished song restarts from the top)
- reset: stop and park the ball at the launch point
- status: current state, clock, hit count and metrics
- song: title and notes of the loaded song

Commands are applied on the next frame, so status may lag a call by one frame.`),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying server
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio serves MCP over the process stdin/stdout until EOF or a signal
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Listen serves MCP over the given streams until ctx is done or in reaches EOF
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

func (s *Server) registerTools() {
	empty := mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{},
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "play",
		Description: "Start playback of the loaded song",
		InputSchema: empty,
	}, s.handleCommand(player.CommandPlay))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset",
		Description: "Stop playback and return the ball to the launch point",
		InputSchema: empty,
	}, s.handleCommand(player.CommandReset))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "status",
		Description: "Get playback state, clock, hits and metrics",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"format": map[string]interface{}{
					"type":        "string",
					"description": "Output format: text (default) or json",
					"enum":        []string{"text", "json"},
				},
			},
		},
	}, s.handleStatus)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "song",
		Description: "List the loaded song's notes with their lyrics",
		InputSchema: empty,
	}, s.handleSong)
}

func (s *Server) handleCommand(cmd player.Command) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !s.session.Enqueue(cmd) {
			return mcp.NewToolResultError("command queue full, try again"), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s queued", cmd)), nil
	}
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := "text"
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		if f, ok := args["format"].(string); ok && f != "" {
			format = f
		}
	}

	snap := s.session.Snapshot()
	metrics := s.session.Metrics().Snapshot()

	switch format {
	case "json":
		data, err := json.Marshal(map[string]interface{}{
			"title":    snap.Title,
			"state":    snap.State,
			"elapsed":  snap.Elapsed,
			"duration": snap.Duration,
			"progress": snap.Progress,
			"hits":     snap.Hits,
			"last_hit": snap.LastHit,
			"metrics":  metrics,
		})
		if err != nil {
			return nil, fmt.Errorf("encode status: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	case "text":
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: %s %s\n", snap.Title, snap.State, snap.Clock())
		fmt.Fprintf(&sb, "hits: %d/%d", snap.Hits, len(snap.Boards))
		if snap.LastHit >= 0 {
			fmt.Fprintf(&sb, " (last board %d)", snap.LastHit)
		}
		sb.WriteByte('\n')
		keys := make([]string, 0, len(metrics))
		for key := range metrics {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&sb, "%s: %g\n", key, metrics[key])
		}
		return mcp.NewToolResultText(sb.String()), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

func (s *Server) handleSong(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sng := s.session.Song()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d notes)\n", sng.Title, len(sng.Notes))
	for i, n := range sng.Notes {
		fmt.Fprintf(&sb, "%2d  t=%.2f pitch=%d dur=%.2f", i, n.Time, n.Pitch, n.Duration)
		if n.Lyric != "" {
			fmt.Fprintf(&sb, " %s", n.Lyric)
		}
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}
