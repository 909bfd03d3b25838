package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/pacman"
)

// JSONWriter writes the event sequence as an indented JSON array with
// RFC 3339 timestamps, in the order it was given (chronological).
type JSONWriter struct{}

// Name implements Writer.
func (w *JSONWriter) Name() string { return "json" }

type jsonEvent struct {
	Timestamp  string `json:"timestamp"`
	Operation  string `json:"operation"`
	Package    string `json:"package"`
	OldVersion string `json:"old_version,omitempty"`
	NewVersion string `json:"new_version,omitempty"`
}

// Write implements Writer.
func (w *JSONWriter) Write(events []pacman.Event, dest string) (err error) {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating export file %s: %w", dest, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export file %s: %w", dest, cerr)
		}
	}()

	// Empty history still exports a valid document.
	out := make([]jsonEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, jsonEvent{
			Timestamp:  ev.Timestamp.Format(time.RFC3339),
			Operation:  string(ev.Operation),
			Package:    ev.Package,
			OldVersion: ev.OldVersion,
			NewVersion: ev.NewVersion,
		})
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing export file %s: %w", dest, err)
	}
	return nil
}
