package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/beatball/player"
	"github.com/lixenwraith/beatball/song"
	"github.com/lixenwraith/beatball/traversal"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := player.DefaultConfig()
	cfg.MaxFrameDelta = 0
	srv := New("127.0.0.1:0", player.NewSession(song.Demo(), cfg, nil))

	ctx, cancel := context.WithCancel(context.Background())
	go srv.Hub().Run(ctx)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return srv, ts
}

func dial(t *testing.T, srv *Server, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	waitFor(t, func() bool { return srv.Hub().ClientCount() == 1 })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for condition")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Failed to decode %s: %v", data, err)
	}
	return msg
}

func TestStatusEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if st.State != "idle" {
		t.Errorf("Expected idle, got %s", st.State)
	}
	if st.Boards != len(song.Demo().Notes) {
		t.Errorf("Expected %d boards, got %d", len(song.Demo().Notes), st.Boards)
	}
	if !strings.HasPrefix(st.Clock, "0:00 / ") {
		t.Errorf("Expected clock at start, got %s", st.Clock)
	}
}

func TestCommandEndpoints(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/play", "application/json", nil)
	if err != nil {
		t.Fatalf("POST play: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", resp.StatusCode)
	}

	srv.session.Tick(0.1)
	if srv.session.Engine().State() != traversal.StatePlaying {
		t.Errorf("Expected playing after POST play, got %s", srv.session.Engine().State())
	}

	resp, err = http.Post(ts.URL+"/api/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("POST reset: %v", err)
	}
	resp.Body.Close()
	srv.session.Tick(0.1)
	if srv.session.Engine().State() != traversal.StateIdle {
		t.Errorf("Expected idle after POST reset, got %s", srv.session.Engine().State())
	}

	resp, err = http.Get(ts.URL + "/api/play")
	if err != nil {
		t.Fatalf("GET play: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
}

func TestWebsocketCommand(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, srv, ts)

	if err := conn.WriteJSON(Request{Command: "play"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	waitFor(t, func() bool {
		srv.session.Tick(0.01)
		return srv.session.Engine().Playing()
	})
}

func TestWebsocketRejectsUnknownCommand(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, srv, ts)

	if err := conn.WriteJSON(Request{Command: "jump"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	msg := readMessage(t, conn)
	if msg.Event != EventError {
		t.Errorf("Expected error event, got %s", msg.Event)
	}
	if !strings.Contains(msg.Error, "jump") {
		t.Errorf("Expected error to name the command, got %q", msg.Error)
	}
}

func TestWebsocketFrameAndHit(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, srv, ts)

	srv.Hub().PublishFrame(srv.session.Snapshot())
	msg := readMessage(t, conn)
	if msg.Event != EventFrame || msg.Frame == nil {
		t.Fatalf("Expected frame event, got %+v", msg)
	}
	if msg.Frame.State != "idle" {
		t.Errorf("Expected idle frame, got %s", msg.Frame.State)
	}

	srv.session.Enqueue(player.CommandPlay)
	for len(srv.session.Tick(0.05)) == 0 {
	}
	msg = readMessage(t, conn)
	if msg.Event != EventHit || msg.Hit == nil {
		t.Fatalf("Expected hit event, got %+v", msg)
	}
	if msg.Hit.Board != 0 {
		t.Errorf("Expected board 0, got %d", msg.Hit.Board)
	}
}

func TestHubDisconnect(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, srv, ts)

	conn.Close()
	waitFor(t, func() bool { return srv.Hub().ClientCount() == 0 })
}

func TestPublishWithoutClients(t *testing.T) {
	hub := NewHub(nil)
	hub.PublishFrame(&player.Snapshot{})
	hub.OnHit(player.Hit{})
	if len(hub.broadcast) != 0 {
		t.Errorf("Expected nothing queued without clients, got %d", len(hub.broadcast))
	}
}
