// Package audio plays a short tone for every board hit through the system
// speaker. When no output device is available the synth runs silent.
package audio

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/player"
)

// ErrAlreadyStarted is returned by a second Start
var ErrAlreadyStarted = errors.New("synth already started")

// Config selects output parameters
type Config struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64 // linear, 0..1
}

// DefaultConfig enables audio at the standard rate
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		SampleRate:   constant.AudioSampleRate,
		MasterVolume: 0.6,
	}
}

// Synth mixes hit tones onto the speaker
type Synth struct {
	cfg   Config
	rate  beep.SampleRate
	mixer *beep.Mixer

	mu      sync.Mutex
	started bool
	silent  atomic.Bool

	played  atomic.Uint64
	skipped atomic.Uint64
}

var _ player.HitListener = (*Synth)(nil)

// NewSynth creates a stopped synth
func NewSynth(cfg Config) *Synth {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = constant.AudioSampleRate
	}
	s := &Synth{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
	s.silent.Store(true)
	return s
}

// Start opens the speaker; a missing device leaves the synth silent without error
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	if !s.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(s.rate, s.rate.N(constant.AudioBufferDuration)); err != nil {
		log.Printf("audio: speaker unavailable, running silent: %v", err)
		return nil
	}
	speaker.Play(s.mixer)
	s.silent.Store(false)
	return nil
}

// Stop silences pending tones
func (s *Synth) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.silent.Load() {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.silent.Store(true)
}

// OnHit queues the tone of the hit board
func (s *Synth) OnHit(h player.Hit) {
	if s.silent.Load() {
		s.skipped.Add(1)
		return
	}
	tone := NoteStreamer(s.rate, h.Pitch, ToneDuration(h.Duration), s.cfg.MasterVolume)

	speaker.Lock()
	s.mixer.Add(tone)
	speaker.Unlock()
	s.played.Add(1)
}

// Silent reports whether hits are being discarded
func (s *Synth) Silent() bool { return s.silent.Load() }

// Stats returns tones played and hits skipped while silent
func (s *Synth) Stats() (played, skipped uint64) {
	return s.played.Load(), s.skipped.Load()
}
