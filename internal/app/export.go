package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/export"
	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/notify"
)

var (
	exportFilters  = &filterOptions{}
	exportOutput   string
	exportFormat   string
	exportNoNotify bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered history to a file",
	Long: `Export the (optionally filtered) package history to a file. Formats:

  text    the classic plain-text report with per-date sections
  json    an array of event objects with RFC 3339 timestamps
  sqlite  a queryable database with one row per event

A desktop notification is raised when the export finishes; disable it
with --no-notify or "notifications: false" in the config file.`,
	Example: `  # Full history as a text report
  cachyhist export -o pacman_history.txt

  # This year's kernel updates, as JSON
  cachyhist export --package linux --since 2024-01-01 --format json -o linux.json

  # Everything into SQLite for ad-hoc queries
  cachyhist export --format sqlite -o history.db`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "destination file (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "text", "export format: text, json, sqlite")
	exportCmd.Flags().BoolVar(&exportNoNotify, "no-notify", false, "skip the desktop notification")
	addFilterFlags(exportCmd, exportFilters)

	if err := exportCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}

	// Register with root command
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Resolve the writer before touching the log so a bad format is
	// reported immediately.
	writer, err := export.ForFormat(exportFormat)
	if err != nil {
		return err
	}

	events, skipped, err := loadEvents(exportFilters, cfg)
	if err != nil {
		return err
	}

	if err := writer.Write(events, exportOutput); err != nil {
		return err
	}

	dest := exportOutput
	if abs, err := filepath.Abs(exportOutput); err == nil {
		dest = abs
	}
	fmt.Printf("History saved to: %s (%d events, %s)\n", dest, len(events), writer.Name())
	reportSkipped(skipped)

	if cfg.Notifications && !exportNoNotify {
		notify.Send("Pacman history exported", "History saved to:\n"+dest)
	}
	return nil
}
