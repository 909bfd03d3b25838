package export

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/output"
	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/pacman"
)

// TextWriter writes the classic plain-text report: a header, per-date
// sections newest first with daily summaries, and an overall summary.
type TextWriter struct{}

// Name implements Writer.
func (w *TextWriter) Name() string { return "text" }

// Write implements Writer.
func (w *TextWriter) Write(events []pacman.Event, dest string) (err error) {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating export file %s: %w", dest, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing export file %s: %w", dest, cerr)
		}
	}()

	buf := bufio.NewWriter(f)

	fmt.Fprintln(buf, "PACMAN UPDATE HISTORY")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintln(buf)

	byDay := make(map[string][]pacman.Event)
	for _, ev := range events {
		key := ev.Timestamp.Format("2006-01-02")
		byDay[key] = append(byDay[key], ev)
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	totals := make(map[pacman.Operation]int)
	for _, day := range days {
		bucket := byDay[day]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Timestamp.After(bucket[j].Timestamp)
		})
		writeDaySection(buf, day, bucket)
		for _, ev := range bucket {
			totals[ev.Operation]++
		}
	}

	fmt.Fprintln(buf, "OVERALL SUMMARY:")
	fmt.Fprintln(buf, strings.Repeat("-", 20))
	writeCounts(buf, "", totals)

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing export file %s: %w", dest, err)
	}
	return nil
}

func writeDaySection(buf *bufio.Writer, day string, events []pacman.Event) {
	fmt.Fprintf(buf, "DATE: %s\n", day)
	fmt.Fprintln(buf, strings.Repeat("-", 30))

	counts := make(map[pacman.Operation]int)
	for _, ev := range events {
		counts[ev.Operation]++

		version := output.FormatVersionInfo(ev)
		if ev.IsDowngrade() {
			version = "[DOWNGRADE] " + version
		}
		fmt.Fprintf(buf, "%s | %-13s | %-30s | %s\n",
			ev.Timestamp.Format("15:04:05"),
			strings.ToUpper(string(ev.Operation)),
			ev.Package,
			version)
	}

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "SUMMARY:")
	writeCounts(buf, "  ", counts)
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintln(buf)
}

func writeCounts(buf *bufio.Writer, indent string, counts map[pacman.Operation]int) {
	for _, op := range []pacman.Operation{
		pacman.OpInstalled, pacman.OpUpgraded, pacman.OpRemoved, pacman.OpReinstalled,
	} {
		if counts[op] == 0 {
			continue
		}
		label := strings.ToUpper(string(op)[:1]) + string(op)[1:]
		fmt.Fprintf(buf, "%s%s: %d\n", indent, label, counts[op])
	}
}
