package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
)

func (c *cli) actCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "act",
		Aliases: []string{"activity"},
		Short:   "Manage the activities of a trip",
	}
	cmd.AddCommand(c.actAddCmd(), c.actListCmd(), c.actUpdateCmd(), c.actRmCmd())
	return cmd
}

type actFlags struct {
	description, date, at, location, notes string
}

func (f *actFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "what you are doing")
	cmd.Flags().StringVar(&f.date, "date", "", "day of the activity YYYY-MM-DD")
	cmd.Flags().StringVar(&f.at, "time", "", "time of day, free form")
	cmd.Flags().StringVar(&f.location, "location", "", "where it happens")
	cmd.Flags().StringVar(&f.notes, "notes", "", "anything else")
}

func (f *actFlags) apply(cmd *cobra.Command, a *domain.Activity) error {
	set := cmd.Flags().Changed
	if set("description") {
		a.Description = f.description
	}
	if set("time") {
		a.Time = f.at
	}
	if set("location") {
		a.Location = f.location
	}
	if set("notes") {
		a.Notes = f.notes
	}
	if set("date") {
		d, err := parseDateFlag("date", f.date)
		if err != nil {
			return err
		}
		a.Date = d
	}
	return nil
}

func (c *cli) actAddCmd() *cobra.Command {
	var f actFlags
	cmd := &cobra.Command{
		Use:   "add <trip>",
		Short: "Add an activity to a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var a domain.Activity
			if err := f.apply(cmd, &a); err != nil {
				return err
			}
			added, err := c.app.Activities.Add(cmd.Context(), args[0], a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added activity %q to %q\n", added.Description, args[0])
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) actListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <trip>",
		Short: "List the activities of a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acts, err := c.app.Activities.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printActivities(cmd.OutOrStdout(), acts)
		},
	}
}

func (c *cli) actUpdateCmd() *cobra.Command {
	var f actFlags
	cmd := &cobra.Command{
		Use:   "update <trip> <index>",
		Short: "Change an activity; unset flags keep their current values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			acts, err := c.app.Activities.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if i < 0 || i >= len(acts) {
				return fmt.Errorf("%w: activity %d", domain.ErrIndexOutOfRange, i)
			}
			a := acts[i]
			if err := f.apply(cmd, &a); err != nil {
				return err
			}
			if _, err := c.app.Activities.Update(cmd.Context(), args[0], i, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated activity %d of %q\n", i, args[0])
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) actRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <trip> <index>",
		Short: "Remove an activity from a trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			if err := c.app.Activities.Delete(cmd.Context(), args[0], i); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed activity %d from %q\n", i, args[0])
			return nil
		},
	}
}
