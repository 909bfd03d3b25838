package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/config"
	"github.com/nyannoying1337/Cachy-pacman-update-history/internal/pacman"
)

// filterOptions holds the history filter flags shared by the root,
// summary, and export commands. Each command binds its own instance so
// flag state never leaks between them.
type filterOptions struct {
	since     string
	until     string
	pkg       string
	exact     bool
	operation string
	limit     int
}

func addFilterFlags(cmd *cobra.Command, o *filterOptions) {
	cmd.Flags().StringVar(&o.since, "since", "", "only events on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.until, "until", "", "only events on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.pkg, "package", "", "filter by package name (case-insensitive substring)")
	cmd.Flags().BoolVar(&o.exact, "exact", false, "match --package exactly instead of by substring")
	cmd.Flags().StringVar(&o.operation, "operation", "", "filter by operation: installed, upgraded, removed, reinstalled")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "show only the most recent N matching events")
}

// criteria converts the flag values into validated filter criteria,
// folding in config defaults. It fails fast on unparseable dates and
// unknown operations so no file work happens with bad input.
func (o *filterOptions) criteria(cfg *config.Config) (pacman.Criteria, error) {
	c := pacman.Criteria{
		Package: o.pkg,
		Exact:   o.exact || cfg.ExactMatch,
		Limit:   o.limit,
	}

	var err error
	if o.since != "" {
		if c.Since, err = parseDate(o.since); err != nil {
			return c, fmt.Errorf("invalid --since date %q (expected YYYY-MM-DD)", o.since)
		}
	}
	if o.until != "" {
		if c.Until, err = parseDate(o.until); err != nil {
			return c, fmt.Errorf("invalid --until date %q (expected YYYY-MM-DD)", o.until)
		}
	}
	if o.operation != "" {
		op, ok := pacman.ParseOperation(o.operation)
		if !ok {
			return c, fmt.Errorf("invalid --operation %q (expected installed, upgraded, removed, or reinstalled)", o.operation)
		}
		c.Operation = op
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
