// Package server exposes a running player session over HTTP and websockets.
//
// Routes:
//
//	GET  /ws           websocket stream of frame and hit events
//	GET  /api/status   JSON playback summary with metrics
//	POST /api/play     queue a play command
//	POST /api/reset    queue a reset command
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/player"
)

// Status is the /api/status response body
type Status struct {
	Title    string             `json:"title"`
	State    string             `json:"state"`
	Elapsed  float64            `json:"elapsed"`
	Duration float64            `json:"duration"`
	Progress float64            `json:"progress"`
	Clock    string             `json:"clock"`
	Hits     int                `json:"hits"`
	Boards   int                `json:"boards"`
	Clients  int                `json:"clients"`
	Metrics  map[string]float64 `json:"metrics"`
}

// Server binds a session to a hub and an HTTP listener
type Server struct {
	session *player.Session
	hub     *Hub
	addr    string
}

// New creates a server for session; the hub also receives the session's hits
func New(addr string, session *player.Session) *Server {
	hub := NewHub(session.Enqueue)
	session.AddListener(hub)
	return &Server{session: session, hub: hub, addr: addr}
}

// Hub returns the websocket hub
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.hub.ServeWS)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/play", s.handleCommand(player.CommandPlay))
	mux.HandleFunc("POST /api/reset", s.handleCommand(player.CommandReset))
	return mux
}

// StatusOf summarises the latest snapshot
func (s *Server) StatusOf() Status {
	snap := s.session.Snapshot()
	return Status{
		Title:    snap.Title,
		State:    snap.State,
		Elapsed:  snap.Elapsed,
		Duration: snap.Duration,
		Progress: snap.Progress,
		Clock:    snap.Clock(),
		Hits:     snap.Hits,
		Boards:   len(snap.Boards),
		Clients:  s.hub.ClientCount(),
		Metrics:  s.session.Metrics().Snapshot(),
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.StatusOf())
}

func (s *Server) handleCommand(cmd player.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.session.Enqueue(cmd) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "command queue full"})
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"queued": cmd.String()})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

// Broadcast publishes the latest frame at interval until ctx is done
func (s *Server) Broadcast(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.hub.PublishFrame(s.session.Snapshot())
		}
	}
}

// ListenAndServe runs the hub, the frame broadcaster and the HTTP listener
// until ctx is done, then shuts the listener down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.hub.Run(ctx)
	go s.Broadcast(ctx, constant.BroadcastInterval)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server: listening on %s", s.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
