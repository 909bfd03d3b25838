package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/config"
	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/output"
	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/pacman"
)

var (
	configPath string
	logFlag    []string
	noColor    bool

	rootFilters = &filterOptions{}

	// RootCmd is the root command for cachyhist
	RootCmd = &cobra.Command{
		Use:   "cachyhist",
		Short: "Browse pacman package history from the transaction log",
		Long: `cachyhist parses the pacman transaction log (/var/log/pacman.log) and
shows package installs, upgrades, removals, and reinstalls grouped by
day, newest first. The history can be filtered by date range, package
name, and operation, and exported to text, JSON, or SQLite.

Examples:
  # Recent history, newest day first
  cachyhist --limit 50

  # Everything that happened to firefox this year
  cachyhist --package firefox --since 2024-01-01

  # Only removals
  cachyhist --operation removed

  # Include a rotated log (oldest first)
  cachyhist --log /var/log/pacman.log.1 --log /var/log/pacman.log

  # Aggregated counts instead of the full list
  cachyhist summary

  # Export the filtered history
  cachyhist export --package linux --format json -o linux-history.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runHistory,
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ~/.config/cachyhist/config.yaml)")
	RootCmd.PersistentFlags().StringArrayVar(&logFlag, "log", nil,
		"pacman log file to read; repeat the flag with rotated logs first (default: "+config.DefaultLogPath+")")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	addFilterFlags(RootCmd, rootFilters)

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The history view has a configurable default limit; filters on
	// other commands only limit when asked explicitly.
	if rootFilters.limit == 0 && cfg.DefaultLimit > 0 {
		rootFilters.limit = cfg.DefaultLimit
	}

	events, skipped, err := loadEvents(rootFilters, cfg)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderHistory(events, useColor(cfg)))
	reportSkipped(skipped)
	return nil
}

// loadConfig resolves the effective configuration for this run: the
// --config flag if given, the default location otherwise.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			// No resolvable home directory; run on built-in defaults.
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}

// loadEvents runs the parse-and-filter pipeline shared by the history,
// summary, and export commands. Criteria problems are reported before
// any file is opened.
func loadEvents(o *filterOptions, cfg *config.Config) ([]pacman.Event, int, error) {
	criteria, err := o.criteria(cfg)
	if err != nil {
		return nil, 0, err
	}

	paths := logFlag
	if len(paths) == 0 {
		paths = cfg.LogPaths()
	}

	events, skipped, err := pacman.ParseFiles(paths...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w (pacman normally writes %s)", err, config.DefaultLogPath)
	}
	return criteria.Apply(events), skipped, nil
}

func useColor(cfg *config.Config) bool {
	if noColor {
		return false
	}
	return output.ColorEnabled(cfg.Color)
}

// reportSkipped surfaces the malformed-line count on stderr so it never
// pollutes piped output.
func reportSkipped(skipped int) {
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "cachyhist: skipped %d malformed log lines\n", skipped)
	}
}
