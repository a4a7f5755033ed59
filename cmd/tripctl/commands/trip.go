package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

func (c *cli) tripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Create, inspect and change trips",
	}
	cmd.AddCommand(c.tripAddCmd(), c.tripListCmd(), c.tripShowCmd(), c.tripUpdateCmd(), c.tripRmCmd(), c.tripDatesCmd())
	return cmd
}

// tripFlags are shared by add and update.
type tripFlags struct {
	name, destination, style, start, end string
}

func (f *tripFlags) register(cmd *cobra.Command, withName bool) {
	if withName {
		cmd.Flags().StringVar(&f.name, "name", "", "new trip name")
	}
	cmd.Flags().StringVarP(&f.destination, "destination", "d", "", "destination")
	cmd.Flags().StringVar(&f.style, "style", "", "travel style (Leisure, Business, Adventure, Family, Romantic)")
	cmd.Flags().StringVar(&f.start, "start", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&f.end, "end", "", "end date YYYY-MM-DD")
}

// apply overwrites fields of t with every flag the user set.
func (f *tripFlags) apply(cmd *cobra.Command, t *domain.Trip) error {
	if cmd.Flags().Changed("name") {
		t.Name = f.name
	}
	if cmd.Flags().Changed("destination") {
		t.Destination = f.destination
	}
	if cmd.Flags().Changed("style") {
		t.TravelStyle = f.style
	}
	if cmd.Flags().Changed("start") {
		d, err := parseDateFlag("start", f.start)
		if err != nil {
			return err
		}
		t.Start = d
	}
	if cmd.Flags().Changed("end") {
		d, err := parseDateFlag("end", f.end)
		if err != nil {
			return err
		}
		t.End = d
	}
	return nil
}

func (c *cli) tripAddCmd() *cobra.Command {
	var f tripFlags
	var onConflict string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := service.ParseCollisionPolicy(onConflict)
			if err != nil {
				return err
			}
			t := domain.Trip{Name: args[0], TravelStyle: "Leisure"}
			if err := f.apply(cmd, &t); err != nil {
				return err
			}
			created, err := c.app.Trips.Create(cmd.Context(), t, policy)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created trip %q (%d days)\n", created.Name, created.Duration)
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().StringVar(&onConflict, "on-conflict", "", "reject, overwrite or rename when the name exists (default from TRIP_COLLISION_POLICY)")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (c *cli) tripListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trips := c.app.Trips.List(cmd.Context())
			if len(trips) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No trips saved yet.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDESTINATION\tSTYLE\tSTART\tEND\tDAYS")
			for _, t := range trips {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
					t.Name, t.Destination, t.TravelStyle, dates.Format(t.Start), dates.Format(t.End), t.Duration)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) tripShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a trip with its accommodations and activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.app.Trips.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Name:         %s\n", t.Name)
			fmt.Fprintf(w, "Destination:  %s\n", t.Destination)
			fmt.Fprintf(w, "Travel style: %s\n", t.TravelStyle)
			fmt.Fprintf(w, "Dates:        %s to %s (%d days)\n", dates.Format(t.Start), dates.Format(t.End), t.Duration)
			if !t.Created.IsZero() {
				fmt.Fprintf(w, "Created:      %s\n", t.Created.Format(dates.Timestamp))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Accommodations:")
			if err := printAccommodations(w, t.Accommodations); err != nil {
				return err
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Activities:")
			return printActivities(w, t.Activities)
		},
	}
}

func (c *cli) tripUpdateCmd() *cobra.Command {
	var f tripFlags
	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Change a trip; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.app.Trips.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &t); err != nil {
				return err
			}
			updated, err := c.app.Trips.Update(cmd.Context(), args[0], t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated trip %q\n", updated.Name)
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func (c *cli) tripRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a trip with everything nested under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Trips.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted trip %q\n", args[0])
			return nil
		},
	}
}

func (c *cli) tripDatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dates <name>",
		Short: "List every day of a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.app.Trips.Dates(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, o := range opts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", o.Date, o.Display)
			}
			return nil
		},
	}
}

func printAccommodations(w io.Writer, accs []domain.Accommodation) error {
	if len(accs) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tTYPE\tNAME\tCHECK-IN\tCHECK-OUT\tADDRESS\tCONFIRMATION")
	for i, a := range accs {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i, a.Type, a.Name, dates.Format(a.CheckIn), dates.Format(a.CheckOut), a.Address, a.Confirmation)
	}
	return tw.Flush()
}

func printActivities(w io.Writer, acts []domain.Activity) error {
	if len(acts) == 0 {
		fmt.Fprintln(w, "  (none)")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tDATE\tTIME\tDESCRIPTION\tLOCATION\tNOTES")
	for i, a := range acts {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\n",
			i, dates.Format(a.Date), a.Time, a.Description, a.Location, a.Notes)
	}
	return tw.Flush()
}
