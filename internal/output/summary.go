package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/pacman"
)

// Summary aggregates a filtered event sequence for the summary view.
type Summary struct {
	Installed   int
	Upgraded    int
	Removed     int
	Reinstalled int
	Downgrades  int

	Packages int // distinct package names touched

	First time.Time
	Last  time.Time

	BusiestDay   string
	BusiestCount int
}

// BuildSummary computes summary statistics over an event sequence. The
// sequence is expected in chronological order, as produced by the
// parser and preserved by the filter.
func BuildSummary(events []pacman.Event) Summary {
	var s Summary
	if len(events) == 0 {
		return s
	}

	seen := make(map[string]struct{})
	byDay := make(map[string]int)

	for _, ev := range events {
		switch ev.Operation {
		case pacman.OpInstalled:
			s.Installed++
		case pacman.OpUpgraded:
			s.Upgraded++
		case pacman.OpRemoved:
			s.Removed++
		case pacman.OpReinstalled:
			s.Reinstalled++
		}
		if ev.IsDowngrade() {
			s.Downgrades++
		}
		seen[ev.Package] = struct{}{}

		day := ev.Timestamp.Format("2006-01-02")
		byDay[day]++
		if byDay[day] > s.BusiestCount {
			s.BusiestCount = byDay[day]
			s.BusiestDay = day
		}
	}

	s.Packages = len(seen)
	s.First = events[0].Timestamp
	s.Last = events[len(events)-1].Timestamp
	return s
}

// Total returns the number of summarized events.
func (s Summary) Total() int {
	return s.Installed + s.Upgraded + s.Removed + s.Reinstalled
}

// RenderSummary renders the summary view.
func RenderSummary(s Summary, useColor bool) string {
	if s.Total() == 0 {
		return "No package changes found.\n"
	}

	count := func(color string, n int, label string) string {
		if useColor && n > 0 {
			return fmt.Sprintf("  %s%-13s %d%s\n", color, label+":", n, colorReset)
		}
		return fmt.Sprintf("  %-13s %d\n", label+":", n)
	}

	var sb strings.Builder
	sb.WriteString("Package history summary\n")
	sb.WriteString(strings.Repeat("─", 40))
	sb.WriteString("\n")
	sb.WriteString(count(colorGreen, s.Installed, "Installed"))
	sb.WriteString(count(colorYellow, s.Upgraded, "Upgraded"))
	sb.WriteString(count(colorRed, s.Removed, "Removed"))
	sb.WriteString(count(colorCyan, s.Reinstalled, "Reinstalled"))
	if s.Downgrades > 0 {
		sb.WriteString(count(colorRed, s.Downgrades, "Downgrades"))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %-13s %d changes across %d packages\n", "Total:", s.Total(), s.Packages))
	sb.WriteString(fmt.Sprintf("  %-13s %s to %s\n", "Span:",
		s.First.Format("2006-01-02"), s.Last.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("  %-13s %s (%d changes)\n", "Busiest day:", s.BusiestDay, s.BusiestCount))
	sb.WriteString(fmt.Sprintf("  %-13s %s\n", "Last change:", humanize.Time(s.Last)))
	return sb.String()
}
