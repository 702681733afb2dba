// Package traversal advances a ball along a built path one frame at a time
// and reports the boards it reaches.
//
// The engine is a three-state machine:
//
//	Idle     --Play-->   Playing
//	Finished --Play-->   Playing
//	Playing  --Update--> Finished  (elapsed reaches the last segment's end)
//	any      --Reset-->  Idle      (path rebuilt from the given boards)
//
// Every board index is reported at most once per playback, in increasing
// order, because the segment cursor only moves forward.
//
// The engine is not safe for concurrent use. A single driver owns it and
// calls Play, Reset and Update sequentially.
package traversal

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/layout"
	"github.com/lixenwraith/beatball/trail"
	"github.com/lixenwraith/beatball/trajectory"
	"github.com/lixenwraith/beatball/vmath"
)

// State is the engine lifecycle phase
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sentinel errors
var (
	ErrNoPath         = errors.New("no path to play")
	ErrAlreadyPlaying = errors.New("already playing")
)

// Config tunes playback and the trail
type Config struct {
	Path trajectory.Options

	// PreRoll delays the launch by starting elapsed time below zero
	PreRoll float64

	TrailCapacity  int
	TrailDecayRate float64 // opacity per second
}

// DefaultConfig starts immediately with the standard trail
func DefaultConfig() Config {
	return Config{
		Path:           trajectory.DefaultOptions(),
		TrailCapacity:  constant.TrailCapacity,
		TrailDecayRate: constant.TrailDecayRate,
	}
}

// Engine owns the path, the playback cursor and the trail
type Engine struct {
	cfg     Config
	builder *trajectory.Builder

	path     trajectory.Path
	segment  int
	elapsed  float64
	state    State
	position vmath.Vec3F
	trail    *trail.Buffer

	hits []int // scratch for the single-hit contract
}

// New creates an idle engine with an empty path
func New(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		builder: trajectory.NewBuilder(cfg.Path),
		trail:   trail.New(cfg.TrailCapacity),
	}
}

// Reset rebuilds the path from boards and parks the ball at the launch point
func (e *Engine) Reset(boards []layout.Board) {
	e.path = e.builder.Build(boards)
	e.state = StateIdle
	e.rewind(0)
}

// Play starts playback from the first segment
// A finished engine replays the same path from the launch point
func (e *Engine) Play() error {
	if len(e.path) == 0 {
		return ErrNoPath
	}
	if e.state == StatePlaying {
		return ErrAlreadyPlaying
	}
	e.state = StatePlaying
	e.rewind(-e.cfg.PreRoll)
	return nil
}

// rewind moves the cursor to segment 0 and the ball to the launch point
func (e *Engine) rewind(elapsed float64) {
	e.segment = 0
	e.elapsed = elapsed
	e.position = e.path.Launch()
	e.trail.Reset(e.position)
}

// Update advances playback by dt seconds and returns the furthest board reached, if any
// Boards crossed earlier in the same call are not reported; use UpdateAll to receive every one
func (e *Engine) Update(dt float64) (int, bool) {
	e.hits = e.advance(dt, e.hits[:0])
	if len(e.hits) == 0 {
		return 0, false
	}
	return e.hits[len(e.hits)-1], true
}

// UpdateAll advances playback by dt seconds and returns every board reached, in order
func (e *Engine) UpdateAll(dt float64) []int {
	return e.advance(dt, nil)
}

// advance is the per-frame step shared by Update and UpdateAll
// Time never runs backward: non-positive deltas are ignored
func (e *Engine) advance(dt float64, hits []int) []int {
	if e.state != StatePlaying || len(e.path) == 0 || dt <= 0 {
		return hits
	}

	e.elapsed += dt

	last := len(e.path) - 1
	for e.segment < last && e.elapsed >= e.path[e.segment].EndTime {
		hits = append(hits, e.path[e.segment].BoardIndex)
		e.segment++
	}

	seg := e.path[e.segment]
	if e.segment == last && e.elapsed >= seg.EndTime {
		e.position = seg.End()
		e.state = StateFinished
		hits = append(hits, seg.BoardIndex)
	} else {
		e.position = seg.At(e.elapsed)
	}

	e.trail.Push(e.position)
	e.trail.Decay(dt * e.cfg.TrailDecayRate)

	return hits
}

// State returns the lifecycle phase
func (e *Engine) State() State { return e.state }

// Playing reports whether Update advances the cursor
func (e *Engine) Playing() bool { return e.state == StatePlaying }

// Position returns the ball's current point
func (e *Engine) Position() vmath.Vec3F { return e.position }

// Elapsed returns playback time, negative during pre-roll
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Segment returns the current segment index
func (e *Engine) Segment() int { return e.segment }

// Duration returns the end time of the last segment
func (e *Engine) Duration() float64 { return e.path.Duration() }

// Progress returns elapsed/duration clamped to [0,1]
func (e *Engine) Progress() float64 {
	d := e.path.Duration()
	if d <= 0 {
		if e.state == StateFinished {
			return 1
		}
		return 0
	}
	return vmath.Clamp01(e.elapsed / d)
}

// Path returns the built segments; callers must not modify them
func (e *Engine) Path() trajectory.Path { return e.path }

// Trail returns the trail buffer for rendering
func (e *Engine) Trail() *trail.Buffer { return e.trail }

// Config returns the engine configuration
func (e *Engine) Config() Config { return e.cfg }
