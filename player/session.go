// Package player drives a traversal engine frame by frame and fans the
// resulting hits out to effects, listeners and concurrent readers.
//
// A Session is owned by one driver goroutine that calls Tick (directly or
// through Run). Other goroutines interact only through Enqueue and
// Snapshot.
package player

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/effects"
	"github.com/lixenwraith/beatball/layout"
	"github.com/lixenwraith/beatball/song"
	"github.com/lixenwraith/beatball/status"
	"github.com/lixenwraith/beatball/traversal"
	"github.com/lixenwraith/beatball/vmath"
)

// Hit describes one board reached during playback
type Hit struct {
	Board    int         `json:"board"`
	Elapsed  float64     `json:"elapsed"`
	Time     float64     `json:"time"`
	Pitch    int         `json:"pitch"`
	Duration float64     `json:"duration"`
	Label    string      `json:"label,omitempty"`
	Position vmath.Vec3F `json:"position"`
}

// HitListener is notified on the driver goroutine for every hit
// Implementations must not block
type HitListener interface {
	OnHit(h Hit)
}

// HitListenerFunc adapts a function to HitListener
type HitListenerFunc func(h Hit)

func (f HitListenerFunc) OnHit(h Hit) { f(h) }

// Config tunes the frame driver
type Config struct {
	Engine traversal.Config

	// MaxFrameDelta caps one tick; zero disables the cap
	MaxFrameDelta time.Duration

	// Seed feeds burst randomness
	Seed int64
}

// DefaultConfig returns the interactive defaults
func DefaultConfig() Config {
	return Config{
		Engine:        traversal.DefaultConfig(),
		MaxFrameDelta: constant.MaxFrameDelta,
		Seed:          1,
	}
}

// Session binds a song, its boards, the engine and the hit effects
type Session struct {
	cfg    Config
	song   *song.Song
	boards []layout.Board

	engine *traversal.Engine
	glow   *effects.Glow
	bursts *effects.Bursts
	lyrics *effects.Lyrics

	cameraY float64
	hits    int
	lastHit int

	commands chan Command

	listenerMu sync.RWMutex
	listeners  []HitListener

	metrics  *status.Registry
	frames   *atomic.Int64
	hitCount *atomic.Int64
	dropped  *atomic.Int64
	elapsed  *status.Gauge
	progress *status.Gauge

	snapshot atomic.Pointer[Snapshot]
}

// NewSession lays out the song and parks the ball at the launch point
// A nil registry gets a private one
func NewSession(s *song.Song, cfg Config, metrics *status.Registry) *Session {
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	boards := layout.Generate(s.Notes)

	sess := &Session{
		cfg:      cfg,
		song:     s,
		boards:   boards,
		engine:   traversal.New(cfg.Engine),
		glow:     effects.NewGlow(len(boards)),
		bursts:   effects.NewBursts(constant.BurstPoolSize, constant.BurstParticles, rand.New(rand.NewSource(cfg.Seed))),
		lyrics:   effects.NewLyrics(boards),
		commands: make(chan Command, constant.CommandQueueSize),
		metrics:  metrics,
		frames:   metrics.Counters.Get(status.CounterFrames),
		hitCount: metrics.Counters.Get(status.CounterHits),
		dropped:  metrics.Counters.Get(status.CounterDroppedBursts),
		elapsed:  metrics.Gauges.Get(status.GaugeElapsed),
		progress: metrics.Gauges.Get(status.GaugeProgress),
	}
	sess.reset()
	sess.publish()
	return sess
}

// AddListener registers l for hit notifications
func (s *Session) AddListener(l HitListener) {
	s.listenerMu.Lock()
	s.listeners = append(s.listeners, l)
	s.listenerMu.Unlock()
}

// Enqueue schedules cmd for the next tick; safe from any goroutine
// Returns false when the queue is full and the command was dropped
func (s *Session) Enqueue(cmd Command) bool {
	select {
	case s.commands <- cmd:
		s.metrics.Counters.Get(status.CounterCommands).Add(1)
		return true
	default:
		return false
	}
}

// Snapshot returns the latest published frame; safe from any goroutine
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Metrics returns the registry the session writes to
func (s *Session) Metrics() *status.Registry { return s.metrics }

// Song returns the loaded song
func (s *Session) Song() *song.Song { return s.song }

// Boards returns the generated layout; callers must not modify it
func (s *Session) Boards() []layout.Board { return s.boards }

// Engine exposes the traversal engine to the driver goroutine
func (s *Session) Engine() *traversal.Engine { return s.engine }

// Tick applies pending commands, advances playback by dt seconds and
// publishes a new snapshot. Returns the hits of this tick in order.
func (s *Session) Tick(dt float64) []Hit {
	s.drain()

	if dt < 0 {
		dt = 0
	}
	if limit := s.cfg.MaxFrameDelta.Seconds(); limit > 0 && dt > limit {
		dt = limit
	}
	s.metrics.Gauges.Get(status.GaugeFrameDt).Set(dt)

	var hits []Hit
	for _, idx := range s.engine.UpdateAll(dt) {
		hits = append(hits, s.hit(idx))
	}

	s.glow.Update(dt)
	s.bursts.Update(dt)
	s.lyrics.Update(dt)

	if s.engine.Playing() {
		target := s.engine.Position().Y + constant.CameraLead
		s.cameraY += (target - s.cameraY) * constant.CameraSmoothing
	}

	s.frames.Add(1)
	s.publish()
	return hits
}

// Run ticks at interval until ctx is done
// A non-positive interval uses the default frame rate
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = constant.FrameUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case now := <-ticker.C:
			s.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// drain applies every queued command without blocking
func (s *Session) drain() {
	for {
		select {
		case cmd := <-s.commands:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *Session) apply(cmd Command) {
	switch cmd {
	case CommandPlay:
		s.play()
	case CommandReset:
		s.reset()
		s.metrics.Counters.Get(status.CounterResets).Add(1)
	case CommandToggle:
		if s.engine.Playing() {
			s.reset()
		} else {
			s.play()
		}
	}
}

// play starts playback; a finished session is fully reset first so
// glow, lyrics and camera start clean
func (s *Session) play() {
	if s.engine.State() == traversal.StateFinished {
		s.reset()
	}
	if err := s.engine.Play(); err != nil {
		if !errors.Is(err, traversal.ErrAlreadyPlaying) {
			log.Printf("player: play: %v", err)
		}
		return
	}
	s.metrics.Counters.Get(status.CounterPlays).Add(1)
	s.metrics.Gauges.Get(status.GaugeDuration).Set(s.engine.Duration())
	log.Printf("player: playing %q, %d boards, %.2fs", s.song.Title, len(s.boards), s.engine.Duration())
}

func (s *Session) reset() {
	s.engine.Reset(s.boards)
	s.glow.Reset()
	s.bursts.Reset()
	s.lyrics.Reset()
	s.cameraY = constant.CameraStartY
	s.hits = 0
	s.lastHit = -1
}

// hit fires every per-board effect and notifies listeners
func (s *Session) hit(idx int) Hit {
	b := s.boards[idx]
	h := Hit{
		Board:    idx,
		Elapsed:  s.engine.Elapsed(),
		Time:     b.Time,
		Pitch:    b.Pitch,
		Duration: b.Duration,
		Label:    b.Label,
		Position: b.Position,
	}

	s.glow.Activate(idx)
	if !s.bursts.Emit(b.Position, effects.PaletteColor(idx)) {
		s.dropped.Add(1)
	}
	s.lyrics.Activate(idx)
	s.hits++
	s.lastHit = idx
	s.hitCount.Add(1)

	s.listenerMu.RLock()
	for _, l := range s.listeners {
		l.OnHit(h)
	}
	s.listenerMu.RUnlock()

	return h
}

// publish copies the frame into a fresh Snapshot
func (s *Session) publish() {
	e := s.engine
	snap := &Snapshot{
		Title:    s.song.Title,
		State:    e.State().String(),
		Elapsed:  e.Elapsed(),
		Duration: e.Duration(),
		Progress: e.Progress(),
		Hits:     s.hits,
		LastHit:  s.lastHit,
		Ball:     e.Position(),
		CameraY:  s.cameraY,
		Boards:   make([]BoardView, len(s.boards)),
		Trail:    e.Trail().Snapshot(nil),
	}

	for i, b := range s.boards {
		snap.Boards[i] = BoardView{
			Position: b.Position,
			Width:    b.Width,
			Angle:    b.Angle,
			Glow:     s.glow.Intensity(i),
			Color:    s.glow.Color(i),
		}
	}

	s.bursts.Active(func(b *effects.Burst) {
		view := BurstView{
			Color:   b.Color,
			Opacity: b.Opacity(),
			Points:  make([]vmath.Vec3F, len(b.Particles)),
		}
		for i, p := range b.Particles {
			view.Points[i] = p.Pos
		}
		snap.Bursts = append(snap.Bursts, view)
	})

	s.lyrics.Visible(func(ly effects.Lyric) {
		snap.Lyrics = append(snap.Lyrics, LyricView{
			Board:   ly.Board,
			Text:    ly.Text,
			Anchor:  ly.Anchor,
			Opacity: ly.Opacity,
		})
	})

	s.elapsed.Set(snap.Elapsed)
	s.progress.Set(snap.Progress)
	s.snapshot.Store(snap)
}
