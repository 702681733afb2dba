// Package song holds the musical event list that drives a board layout.
package song

import (
	"errors"
	"fmt"
)

// ErrInvalidSong is returned when a song cannot be laid out
var ErrInvalidSong = errors.New("invalid song")

// Note is one timed musical event
type Note struct {
	Time     float64 `toml:"time"`     // seconds from start
	Pitch    int     `toml:"pitch"`    // MIDI pitch, drives horizontal position
	Duration float64 `toml:"duration"` // seconds
	Lyric    string  `toml:"lyric,omitempty"`
}

// Song is a titled note sequence in arrival order
type Song struct {
	Title string `toml:"title"`
	Notes []Note `toml:"notes"`
}

// Validate checks per-note fields only
// Out-of-order or repeated times are accepted; the path builder tolerates them
func (s *Song) Validate() error {
	if len(s.Notes) == 0 {
		return fmt.Errorf("%w: no notes", ErrInvalidSong)
	}
	for i, n := range s.Notes {
		if n.Time < 0 {
			return fmt.Errorf("%w: note %d has negative time %v", ErrInvalidSong, i, n.Time)
		}
		if n.Duration < 0 {
			return fmt.Errorf("%w: note %d has negative duration %v", ErrInvalidSong, i, n.Duration)
		}
		if n.Pitch < 0 || n.Pitch > 127 {
			return fmt.Errorf("%w: note %d pitch %d outside MIDI range", ErrInvalidSong, i, n.Pitch)
		}
	}
	return nil
}

// Lyrics returns the number of notes carrying a lyric
func (s *Song) Lyrics() int {
	count := 0
	for _, n := range s.Notes {
		if n.Lyric != "" {
			count++
		}
	}
	return count
}
