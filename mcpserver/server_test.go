package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lixenwraith/beatball/player"
	"github.com/lixenwraith/beatball/song"
	"github.com/lixenwraith/beatball/traversal"
)

func newTestServer() (*Server, *player.Session) {
	sess := player.NewSession(song.Demo(), player.DefaultConfig(), nil)
	return New(sess), sess
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	if args == nil {
		args = map[string]interface{}{}
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestPlayAndReset(t *testing.T) {
	s, sess := newTestServer()
	ctx := context.Background()

	result, err := s.handleCommand(player.CommandPlay)(ctx, call("play", nil))
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got %s", resultText(t, result))
	}
	if got := resultText(t, result); got != "play queued" {
		t.Errorf("Expected 'play queued', got %q", got)
	}

	sess.Tick(0.01)
	if sess.Engine().State() != traversal.StatePlaying {
		t.Errorf("Expected playing, got %s", sess.Engine().State())
	}

	if _, err := s.handleCommand(player.CommandReset)(ctx, call("reset", nil)); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	sess.Tick(0.01)
	if sess.Engine().State() != traversal.StateIdle {
		t.Errorf("Expected idle, got %s", sess.Engine().State())
	}
}

func TestStatusText(t *testing.T) {
	s, _ := newTestServer()

	result, err := s.handleStatus(context.Background(), call("status", nil))
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "idle 0:00 / ") {
		t.Errorf("Expected idle clock, got %q", text)
	}
	if !strings.Contains(text, "hits: 0/20") {
		t.Errorf("Expected hit tally, got %q", text)
	}
}

func TestStatusJSON(t *testing.T) {
	s, sess := newTestServer()
	sess.Enqueue(player.CommandPlay)
	for len(sess.Tick(0.05)) == 0 {
	}

	result, err := s.handleStatus(context.Background(), call("status", map[string]interface{}{"format": "json"}))
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	var body struct {
		State   string             `json:"state"`
		Hits    int                `json:"hits"`
		LastHit int                `json:"last_hit"`
		Metrics map[string]float64 `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.State != "playing" || body.Hits != 1 || body.LastHit != 0 {
		t.Errorf("Expected playing with one hit on board 0, got %+v", body)
	}
	if body.Metrics["hits"] != 1 {
		t.Errorf("Expected hits metric 1, got %v", body.Metrics["hits"])
	}
}

func TestStatusUnknownFormat(t *testing.T) {
	s, _ := newTestServer()
	result, err := s.handleStatus(context.Background(), call("status", map[string]interface{}{"format": "xml"}))
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !result.IsError {
		t.Error("Expected tool error for unknown format")
	}
}

func TestSong(t *testing.T) {
	s, _ := newTestServer()
	result, err := s.handleSong(context.Background(), call("song", nil))
	if err != nil {
		t.Fatalf("song failed: %v", err)
	}
	text := resultText(t, result)
	if !strings.HasPrefix(text, "恋如海 (20 notes)") {
		t.Errorf("Expected title line, got %q", text)
	}
	if strings.Count(text, "\n") != 21 {
		t.Errorf("Expected 21 lines, got %d", strings.Count(text, "\n"))
	}
}
