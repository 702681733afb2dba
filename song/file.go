package song

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads and validates a TOML song file
//
//	title = "scale"
//	[[notes]]
//	time = 0.0
//	pitch = 60
//	duration = 0.3
//	lyric = "do"
func Load(path string) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read song: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML song data
func Parse(data []byte) (*Song, error) {
	var s Song
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("decode song: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidSong, undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the song as TOML
func Save(path string, s *Song) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode song: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write song: %w", err)
	}
	return nil
}
