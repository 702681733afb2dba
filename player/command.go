package player

import (
	"errors"
	"fmt"
	"strings"
)

// Command is a control request applied at the start of the next tick
type Command int

const (
	CommandPlay Command = iota
	CommandReset
	CommandToggle
)

// ErrUnknownCommand is returned by ParseCommand
var ErrUnknownCommand = errors.New("unknown command")

func (c Command) String() string {
	switch c {
	case CommandPlay:
		return "play"
	case CommandReset:
		return "reset"
	case CommandToggle:
		return "toggle"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// ParseCommand maps a wire name to a Command, case-insensitive
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "play":
		return CommandPlay, nil
	case "reset":
		return CommandReset, nil
	case "toggle":
		return CommandToggle, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}
