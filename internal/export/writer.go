// Package export serializes filtered package history to files. Each
// format implements Writer; the core stays agnostic to the format and
// hands every writer the same ordered event sequence.
package export

import (
	"fmt"
	"strings"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/pacman"
)

// Writer serializes an event sequence to a destination path.
type Writer interface {
	// Name returns the format name as used on the command line.
	Name() string

	// Write creates or truncates dest and writes the events to it.
	Write(events []pacman.Event, dest string) error
}

// ForFormat returns the Writer for a format name. The empty string
// selects the text format.
func ForFormat(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "sqlite":
		return &SQLiteWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (expected text, json, or sqlite)", format)
	}
}
