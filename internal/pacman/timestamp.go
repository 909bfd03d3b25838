package pacman

import "time"

// Timestamp layouts seen across pacman generations, tried in order.
// Modern pacman writes RFC 3339-style stamps with a numeric UTC offset,
// some builds add fractional seconds, and pre-5.0 logs used a naive
// minute-resolution stamp. The ".999999999" fragment makes fractional
// seconds optional during parsing.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
}

// parseTimestamp parses the bracketed timestamp prefix of a log line.
// Stamps without an offset are interpreted as local time, matching how
// pacman wrote them.
func parseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
