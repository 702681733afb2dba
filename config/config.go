// Package config resolves runtime settings from .env files and BEATBALL_*
// environment variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/beatball/audio"
	"github.com/lixenwraith/beatball/player"
	"github.com/lixenwraith/beatball/song"
	"github.com/lixenwraith/beatball/trajectory"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the player
type Config struct {
	Timing          string  `env:"BEATBALL_TIMING"             envDefault:"musical"`
	LeadIn          float64 `env:"BEATBALL_LEAD_IN"            envDefault:"0.8"`
	LeadInFromEvent bool    `env:"BEATBALL_LEAD_IN_FROM_EVENT"`
	StepGap         float64 `env:"BEATBALL_STEP_GAP"           envDefault:"0.5"`
	PreRoll         float64 `env:"BEATBALL_PRE_ROLL"           envDefault:"0"`

	TrailCapacity int     `env:"BEATBALL_TRAIL_CAPACITY" envDefault:"80"`
	TrailDecay    float64 `env:"BEATBALL_TRAIL_DECAY"    envDefault:"2"`

	MaxFrameDelta time.Duration `env:"BEATBALL_MAX_FRAME_DELTA" envDefault:"50ms"`
	FrameInterval time.Duration `env:"BEATBALL_FRAME_INTERVAL"  envDefault:"16ms"`
	Seed          int64         `env:"BEATBALL_SEED"` // 0 picks a time-based seed

	AudioEnabled bool    `env:"BEATBALL_AUDIO"       envDefault:"true"`
	MasterVolume float64 `env:"BEATBALL_VOLUME"      envDefault:"0.6"`
	SampleRate   int     `env:"BEATBALL_SAMPLE_RATE" envDefault:"44100"`

	Addr     string `env:"BEATBALL_ADDR" envDefault:"localhost:8080"`
	SongPath string `env:"BEATBALL_SONG"`
	Debug    bool   `env:"BEATBALL_DEBUG"`
}

// Load reads the given .env files, skipping missing ones, then parses the
// environment. Variables already set win over file values.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with
func (c Config) Validate() error {
	if _, err := trajectory.ParseTiming(c.Timing); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.LeadIn < 0:
		return fmt.Errorf("%w: lead-in %v is negative", ErrInvalidConfig, c.LeadIn)
	case c.StepGap <= 0:
		return fmt.Errorf("%w: step gap %v must be positive", ErrInvalidConfig, c.StepGap)
	case c.PreRoll < 0:
		return fmt.Errorf("%w: pre-roll %v is negative", ErrInvalidConfig, c.PreRoll)
	case c.TrailCapacity < 1:
		return fmt.Errorf("%w: trail capacity %d must be at least 1", ErrInvalidConfig, c.TrailCapacity)
	case c.TrailDecay < 0:
		return fmt.Errorf("%w: trail decay %v is negative", ErrInvalidConfig, c.TrailDecay)
	case c.MaxFrameDelta < 0:
		return fmt.Errorf("%w: max frame delta %v is negative", ErrInvalidConfig, c.MaxFrameDelta)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: frame interval %v must be positive", ErrInvalidConfig, c.FrameInterval)
	case c.MasterVolume < 0 || c.MasterVolume > 1:
		return fmt.Errorf("%w: volume %v outside 0..1", ErrInvalidConfig, c.MasterVolume)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, c.SampleRate)
	case c.Addr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	return nil
}

// PlayerConfig converts to the frame driver settings
func (c Config) PlayerConfig() (player.Config, error) {
	timing, err := trajectory.ParseTiming(c.Timing)
	if err != nil {
		return player.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	pc := player.DefaultConfig()
	pc.Engine.Path = trajectory.Options{
		Timing:          timing,
		LeadIn:          c.LeadIn,
		LeadInFromEvent: c.LeadInFromEvent,
		StepGap:         c.StepGap,
	}
	pc.Engine.PreRoll = c.PreRoll
	pc.Engine.TrailCapacity = c.TrailCapacity
	pc.Engine.TrailDecayRate = c.TrailDecay
	pc.MaxFrameDelta = c.MaxFrameDelta

	pc.Seed = c.Seed
	if pc.Seed == 0 {
		pc.Seed = time.Now().UnixNano()
	}
	return pc, nil
}

// AudioConfig converts to the synth settings
func (c Config) AudioConfig() audio.Config {
	return audio.Config{
		Enabled:      c.AudioEnabled,
		SampleRate:   c.SampleRate,
		MasterVolume: c.MasterVolume,
	}
}

// LoadSong reads SongPath, or returns the built-in melody when it is empty
func (c Config) LoadSong() (*song.Song, error) {
	if c.SongPath == "" {
		return song.Demo(), nil
	}
	return song.Load(c.SongPath)
}
