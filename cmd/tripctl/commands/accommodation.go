package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
)

func (c *cli) accCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "acc",
		Aliases: []string{"accommodation"},
		Short:   "Manage the accommodations of a trip",
	}
	cmd.AddCommand(c.accAddCmd(), c.accListCmd(), c.accUpdateCmd(), c.accRmCmd())
	return cmd
}

type accFlags struct {
	kind, name, address, checkIn, checkOut, confirmation string
}

func (f *accFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "type", "", "Hotel, Hostel, Airbnb, Resort, Camping or Other (default Hotel)")
	cmd.Flags().StringVar(&f.name, "name", "", "accommodation name")
	cmd.Flags().StringVar(&f.address, "address", "", "street address")
	cmd.Flags().StringVar(&f.checkIn, "check-in", "", "check-in date YYYY-MM-DD")
	cmd.Flags().StringVar(&f.checkOut, "check-out", "", "check-out date YYYY-MM-DD")
	cmd.Flags().StringVar(&f.confirmation, "confirmation", "", "booking confirmation number")
}

func (f *accFlags) apply(cmd *cobra.Command, a *domain.Accommodation) error {
	set := cmd.Flags().Changed
	if set("type") {
		a.Type = f.kind
	}
	if set("name") {
		a.Name = f.name
	}
	if set("address") {
		a.Address = f.address
	}
	if set("confirmation") {
		a.Confirmation = f.confirmation
	}
	if set("check-in") {
		d, err := parseDateFlag("check-in", f.checkIn)
		if err != nil {
			return err
		}
		a.CheckIn = d
	}
	if set("check-out") {
		d, err := parseDateFlag("check-out", f.checkOut)
		if err != nil {
			return err
		}
		a.CheckOut = d
	}
	return nil
}

func (c *cli) accAddCmd() *cobra.Command {
	var f accFlags
	cmd := &cobra.Command{
		Use:   "add <trip>",
		Short: "Add an accommodation to a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var a domain.Accommodation
			if err := f.apply(cmd, &a); err != nil {
				return err
			}
			added, err := c.app.Accommodations.Add(cmd.Context(), args[0], a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %q to %q\n", added.Type, added.Name, args[0])
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) accListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <trip>",
		Short: "List the accommodations of a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accs, err := c.app.Accommodations.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printAccommodations(cmd.OutOrStdout(), accs)
		},
	}
}

func (c *cli) accUpdateCmd() *cobra.Command {
	var f accFlags
	cmd := &cobra.Command{
		Use:   "update <trip> <index>",
		Short: "Change an accommodation; unset flags keep their current values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			accs, err := c.app.Accommodations.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if i < 0 || i >= len(accs) {
				return fmt.Errorf("%w: accommodation %d", domain.ErrIndexOutOfRange, i)
			}
			a := accs[i]
			if err := f.apply(cmd, &a); err != nil {
				return err
			}
			if _, err := c.app.Accommodations.Update(cmd.Context(), args[0], i, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated accommodation %d of %q\n", i, args[0])
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) accRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <trip> <index>",
		Short: "Remove an accommodation from a trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			if err := c.app.Accommodations.Delete(cmd.Context(), args[0], i); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed accommodation %d from %q\n", i, args[0])
			return nil
		},
	}
}
