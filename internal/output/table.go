// Package output renders parsed package history for the terminal.
//
// History is grouped by calendar day, newest day first, with per-day
// and overall summaries. All rendering uses ASCII layout plus ANSI
// color codes; colors are gated on the color mode resolved by
// ColorEnabled so piped output stays plain.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/pacman"
)

// ANSI color codes for action display
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// ColorEnabled resolves a color mode ("auto", "always", "never") to a
// concrete decision. In auto mode colors are used only when os.Stdout
// is a TTY and NO_COLOR is unset.
func ColorEnabled(mode string) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// RenderHistory renders the filtered event sequence grouped by day,
// newest day first and newest event first within each day. The caller
// hands over chronological order; display order is this package's
// concern.
func RenderHistory(events []pacman.Event, useColor bool) string {
	if len(events) == 0 {
		return "No package changes found.\n"
	}

	days, order := groupByDay(events)

	var sb strings.Builder
	for i, day := range order {
		if i > 0 {
			sb.WriteString("\n")
		}
		renderDay(&sb, day, days[day], useColor)
	}
	return sb.String()
}

// groupByDay buckets events by calendar day and returns the day keys
// newest first. Within a bucket events are ordered newest first.
func groupByDay(events []pacman.Event) (map[string][]pacman.Event, []string) {
	days := make(map[string][]pacman.Event)
	for _, ev := range events {
		key := ev.Timestamp.Format("2006-01-02")
		days[key] = append(days[key], ev)
	}

	order := make([]string, 0, len(days))
	for day := range days {
		order = append(order, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	for _, day := range order {
		bucket := days[day]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Timestamp.After(bucket[j].Timestamp)
		})
	}
	return days, order
}

func renderDay(sb *strings.Builder, day string, events []pacman.Event, useColor bool) {
	if useColor {
		sb.WriteString(colorBold + day + colorReset + "\n")
	} else {
		sb.WriteString(day + "\n")
	}
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	counts := make(map[pacman.Operation]int)
	for _, ev := range events {
		counts[ev.Operation]++

		label := actionLabel(ev.Operation)
		version := FormatVersionInfo(ev)
		if ev.IsDowngrade() {
			version += " [DOWNGRADE]"
		}

		if useColor {
			color := actionColor(ev.Operation)
			if ev.IsDowngrade() {
				version = colorRed + version + colorReset
			}
			sb.WriteString(fmt.Sprintf("%-9s %s%-14s%s %-28s %s\n",
				ev.Timestamp.Format("15:04:05"),
				color, label, colorReset,
				truncate(ev.Package, 28),
				version))
		} else {
			sb.WriteString(fmt.Sprintf("%-9s %-14s %-28s %s\n",
				ev.Timestamp.Format("15:04:05"),
				label,
				truncate(ev.Package, 28),
				version))
		}
	}

	sb.WriteString(renderDailyCounts(counts, useColor))
}

// renderDailyCounts renders the one-line per-day summary, e.g.
// "Summary: 2 installed · 5 upgraded".
func renderDailyCounts(counts map[pacman.Operation]int, useColor bool) string {
	var parts []string
	for _, op := range []pacman.Operation{
		pacman.OpInstalled, pacman.OpUpgraded, pacman.OpRemoved, pacman.OpReinstalled,
	} {
		n := counts[op]
		if n == 0 {
			continue
		}
		part := fmt.Sprintf("%d %s", n, op)
		if useColor {
			part = actionColor(op) + part + colorReset
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Summary: " + strings.Join(parts, " · ") + "\n"
}

// FormatVersionInfo renders the version column for an event: the new
// version for installs, "old → new" for upgrades and reinstalls, and
// the removed version for removals.
func FormatVersionInfo(ev pacman.Event) string {
	switch ev.Operation {
	case pacman.OpUpgraded, pacman.OpReinstalled:
		return ev.OldVersion + " → " + ev.NewVersion
	case pacman.OpRemoved:
		return ev.OldVersion
	default:
		return ev.NewVersion
	}
}

// actionLabel returns the symbol-prefixed label for an operation.
func actionLabel(op pacman.Operation) string {
	switch op {
	case pacman.OpInstalled:
		return "+ installed"
	case pacman.OpUpgraded:
		return "^ upgraded"
	case pacman.OpRemoved:
		return "- removed"
	case pacman.OpReinstalled:
		return "~ reinstalled"
	default:
		return "? " + string(op)
	}
}

func actionColor(op pacman.Operation) string {
	switch op {
	case pacman.OpInstalled:
		return colorGreen
	case pacman.OpUpgraded:
		return colorYellow
	case pacman.OpRemoved:
		return colorRed
	case pacman.OpReinstalled:
		return colorCyan
	default:
		return colorGray
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
