package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/output"
)

var summaryFilters = &filterOptions{}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregated history statistics",
	Long: `Display aggregated statistics over the (optionally filtered) package
history: per-operation totals, how many distinct packages were touched,
the covered date span, and the busiest day.`,
	Example: `  # Totals over the whole log
  cachyhist summary

  # What happened to firefox this year
  cachyhist summary --package firefox --since 2024-01-01`,
	RunE: runSummary,
}

func init() {
	addFilterFlags(summaryCmd, summaryFilters)

	// Register with root command
	RootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	events, skipped, err := loadEvents(summaryFilters, cfg)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderSummary(output.BuildSummary(events), useColor(cfg)))
	reportSkipped(skipped)
	return nil
}
