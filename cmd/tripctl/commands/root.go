package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/app"
	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/logging"
)

// cli carries state shared by every subcommand of one root command.
type cli struct {
	dataDir string
	verbose bool
	app     *app.App
}

// NewRootCmd returns the tripctl root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "tripctl",
		Short:        "Plan trips, accommodations, activities and packing from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if c.dataDir != "" {
				cfg.DataDir = c.dataDir
			}
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			log := logging.NewWithWriter(cmd.ErrOrStderr(), level)

			c.app, err = app.New(cmd.Context(), cfg, log)
			return err
		},
	}

	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "directory holding the data files (default $DATA_DIR or .)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log store activity to stderr")

	root.AddCommand(c.tripCmd(), c.accCmd(), c.actCmd(), c.packCmd(), c.summaryCmd(), c.exportCmd())
	return root
}

// parseDateFlag parses an optional YYYY-MM-DD flag value; empty is the zero time.
func parseDateFlag(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := dates.Parse(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: want YYYY-MM-DD, got %q", name, v)
	}
	return t, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index must be an integer, got %q", s)
	}
	return i, nil
}

// yesNo renders the packed flag the way list output shows it.
func yesNo(b bool) string {
	if b {
		return "[x]"
	}
	return "[ ]"
}

