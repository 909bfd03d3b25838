package pacman

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// actionPattern matches the package-action lines pacman writes under
// the [ALPM] tag: "[<timestamp>] [ALPM] <verb> <name> (<versions>)".
// The package name must be a single whitespace-free token; lines that
// violate that are not package actions and fall through to the skip
// path. Lines under other tags ([PACMAN], [ALPM-SCRIPTLET]) and [ALPM]
// bookkeeping ("transaction started" and friends) never match.
var actionPattern = regexp.MustCompile(
	`^\[([^\]]+)\] \[ALPM\] (installed|upgraded|removed|reinstalled) (\S+) \((.+)\)$`)

// Scanner streams package events out of one or more pacman log files.
// Files are read completely in the order given, so rotated logs must be
// listed oldest first for the emitted sequence to stay chronological;
// the Scanner itself never re-sorts. It holds one line in memory at a
// time, so multi-gigabyte historical logs are fine.
//
// Usage follows bufio.Scanner:
//
//	sc := pacman.NewScanner("/var/log/pacman.log")
//	defer sc.Close()
//	for sc.Scan() {
//		ev := sc.Event()
//		...
//	}
//	if err := sc.Err(); err != nil {
//		...
//	}
type Scanner struct {
	paths   []string
	index   int
	file    *os.File
	lines   *bufio.Scanner
	event   Event
	skipped int
	err     error
	done    bool
}

// NewScanner creates a Scanner over the given log files, read oldest
// first. No file is opened until the first call to Scan.
func NewScanner(paths ...string) *Scanner {
	return &Scanner{paths: paths}
}

// Scan advances to the next package event, reporting false when all
// files are exhausted or a read error occurred. Err distinguishes the
// two. Individual malformed lines never stop the scan; they are counted
// and skipped.
func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	for {
		if s.lines == nil && !s.openNext() {
			return false
		}
		for s.lines.Scan() {
			ev, ok := s.parseLine(s.lines.Text())
			if !ok {
				continue
			}
			s.event = ev
			return true
		}
		if err := s.lines.Err(); err != nil {
			s.err = fmt.Errorf("reading %s: %w", s.paths[s.index], err)
			s.closeFile()
			return false
		}
		s.closeFile()
		s.index++
	}
}

// Event returns the event found by the last successful Scan.
func (s *Scanner) Event() Event {
	return s.event
}

// Err returns the first error encountered while opening or reading the
// sources, or nil if the scan ended cleanly.
func (s *Scanner) Err() error {
	return s.err
}

// Skipped returns how many lines looked like package actions but could
// not be parsed (bad timestamp, malformed version clause). Unrelated
// log chatter is not counted.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// Close releases the currently open file, if any. Scan closes files as
// it finishes them, so Close only matters when iteration is abandoned
// early.
func (s *Scanner) Close() error {
	return s.closeFile()
}

func (s *Scanner) openNext() bool {
	if s.index >= len(s.paths) {
		s.done = true
		return false
	}
	f, err := os.Open(s.paths[s.index])
	if err != nil {
		s.err = fmt.Errorf("opening log file %s: %w", s.paths[s.index], err)
		return false
	}
	s.file = f
	s.lines = bufio.NewScanner(f)
	s.lines.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	return true
}

func (s *Scanner) closeFile() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.lines = nil
	return err
}

// parseLine turns one raw log line into an Event. Lines that are not
// recognized package actions return false; near-misses (an action line
// whose timestamp or version clause is garbled) additionally bump the
// skip counter.
func (s *Scanner) parseLine(line string) (Event, bool) {
	m := actionPattern.FindStringSubmatch(line)
	if m == nil {
		return Event{}, false
	}

	ts, err := parseTimestamp(m[1])
	if err != nil {
		s.skipped++
		return Event{}, false
	}

	ev := Event{
		Timestamp: ts,
		Operation: Operation(m[2]),
		Package:   m[3],
	}

	clause := strings.TrimSpace(m[4])
	switch ev.Operation {
	case OpUpgraded, OpReinstalled:
		oldV, newV, ok := splitVersionClause(clause)
		if !ok {
			s.skipped++
			return Event{}, false
		}
		ev.OldVersion = oldV
		ev.NewVersion = newV
	case OpRemoved:
		ev.OldVersion = clause
	default: // installed
		ev.NewVersion = clause
	}

	return ev, true
}

// splitVersionClause splits the "old -> new" clause of upgraded and
// reinstalled lines.
func splitVersionClause(clause string) (oldV, newV string, ok bool) {
	oldV, newV, ok = strings.Cut(clause, "->")
	if !ok {
		return "", "", false
	}
	oldV = strings.TrimSpace(oldV)
	newV = strings.TrimSpace(newV)
	if oldV == "" || newV == "" {
		return "", "", false
	}
	return oldV, newV, true
}

// ParseFiles reads every path oldest-first and returns all package
// events eagerly, along with the count of malformed lines skipped.
// An unreadable source is a hard error carrying the offending path;
// no partial result is returned in that case.
func ParseFiles(paths ...string) ([]Event, int, error) {
	sc := NewScanner(paths...)
	defer sc.Close()

	var events []Event
	for sc.Scan() {
		events = append(events, sc.Event())
	}
	if err := sc.Err(); err != nil {
		return nil, sc.Skipped(), err
	}
	return events, sc.Skipped(), nil
}
