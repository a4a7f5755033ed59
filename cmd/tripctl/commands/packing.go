package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
)

func (c *cli) packCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pack",
		Aliases: []string{"packing"},
		Short:   "Manage the packing list",
	}
	cmd.AddCommand(c.packAddCmd(), c.packListCmd(), c.packToggleCmd(), c.packRmCmd(), c.packProgressCmd())
	return cmd
}

func (c *cli) packAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <trip> <category> <item>",
		Short: "Add an unpacked item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := c.app.Packing.Add(cmd.Context(), domain.PackingItem{Trip: args[0], Category: args[1], Name: args[2]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %q (%s) for %q\n", item.Name, item.Category, item.Trip)
			return nil
		},
	}
}

func (c *cli) packListCmd() *cobra.Command {
	var trip string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packing items with their indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := c.app.Packing.List(cmd.Context())
			if trip != "" {
				entries = c.app.Packing.ListForTrip(cmd.Context(), trip)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No packing items.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tPACKED\tTRIP\tCATEGORY\tITEM")
			for _, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.Index, yesNo(e.Item.Packed), e.Item.Trip, e.Item.Category, e.Item.Name)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&trip, "trip", "", "only items for this trip")
	return cmd
}

func (c *cli) packToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <index>",
		Short: "Flip the packed flag of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := c.app.Packing.Toggle(cmd.Context(), i); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "toggled item %d\n", i)
			return nil
		},
	}
}

func (c *cli) packRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove an item; later indexes shift down by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := c.app.Packing.Delete(cmd.Context(), i); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed item %d\n", i)
			return nil
		},
	}
}

func (c *cli) packProgressCmd() *cobra.Command {
	var trip string
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the packed percentage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if trip != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% packed\n", trip, c.app.Packing.ProgressForTrip(cmd.Context(), trip))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d%% packed\n", c.app.Packing.Progress(cmd.Context()))
			return nil
		},
	}
	cmd.Flags().StringVar(&trip, "trip", "", "only items for this trip")
	return cmd
}
