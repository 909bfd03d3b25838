// Package pacman parses the pacman transaction log into typed package
// events and filters them by date range, package name, and operation.
//
// The log is an append-only, line-oriented file (/var/log/pacman.log by
// default) mixing package actions with transaction bookkeeping and other
// subsystem chatter. The parser recognizes the package-action lines and
// skips everything else; the filter engine is a pure function over the
// parsed sequence.
package pacman

import (
	"strings"
	"time"
)

// Operation is the kind of package action recorded in the log.
type Operation string

// The package actions pacman records under the [ALPM] tag.
const (
	OpInstalled   Operation = "installed"
	OpUpgraded    Operation = "upgraded"
	OpRemoved     Operation = "removed"
	OpReinstalled Operation = "reinstalled"
)

// Known reports whether op is one of the four recognized package
// actions. Unrecognized verbs keep their raw string value so callers
// can still display them.
func (op Operation) Known() bool {
	switch op {
	case OpInstalled, OpUpgraded, OpRemoved, OpReinstalled:
		return true
	}
	return false
}

// ParseOperation normalizes a user-supplied operation name. The bool is
// false when the name is not a recognized action; the normalized value
// is returned either way so callers can report it.
func ParseOperation(s string) (Operation, bool) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	return op, op.Known()
}

// Event is one package action parsed from the log. Events are values:
// the parser creates them and nothing mutates them afterwards.
//
// OldVersion is set for upgraded and reinstalled events (the version
// being replaced) and for removed events (the version being removed).
// NewVersion is set for installed, upgraded, and reinstalled events and
// is always empty for removed events.
type Event struct {
	Timestamp  time.Time
	Operation  Operation
	Package    string
	OldVersion string
	NewVersion string
}

// IsDowngrade reports whether an upgraded event actually moved to an
// older version. pacman logs downgrades (pacman -U with an older
// package) as plain "upgraded" actions, so this is the only way to
// spot them after the fact.
func (e Event) IsDowngrade() bool {
	if e.Operation != OpUpgraded || e.OldVersion == "" || e.NewVersion == "" {
		return false
	}
	return compareVersions(e.NewVersion, e.OldVersion) < 0
}
