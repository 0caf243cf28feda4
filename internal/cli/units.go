package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/cadkit/pkg/units"
)

func newUnitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Convert values and inspect measure units",
	}

	cmd.AddCommand(newUnitsConvertCmd())
	cmd.AddCommand(newUnitsListCmd())
	cmd.AddCommand(newUnitsDomainCmd())

	return cmd
}

func newUnitsConvertCmd() *cobra.Command {
	var delta bool

	cmd := &cobra.Command{
		Use:   "convert <quantity> <value> <from> <to>",
		Short: "Convert a value between two units of a physical quantity",
		Example: `  cadkit units convert length 12.5 in mm
  cadkit units convert temperature 20 C F
  cadkit units convert temperature 5 C F --delta`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("value %q is not a number", args[1])
			}
			got, err := convertValue(args[0], value, args[2], args[3], delta)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", strconv.FormatFloat(got, 'g', -1, 64), args[3])
			return nil
		},
	}

	cmd.Flags().BoolVar(&delta, "delta", false, "convert a difference, ignoring unit offsets")
	return cmd
}

// convertValue converts value of quantity pq from one unit to another.
func convertValue(pq string, value float64, from, to string, delta bool) (float64, error) {
	fromMU, err := units.Lookup(pq, from)
	if err != nil {
		return 0, err
	}
	toMU, err := units.Lookup(pq, to)
	if err != nil {
		return 0, err
	}
	if delta {
		return units.ConvertDelta(value, fromMU, toMU)
	}
	return units.Convert(value, fromMU, toMU)
}

func newUnitsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [quantity]",
		Short: "List physical quantities and their units",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs := units.Quantities()
			if len(args) == 1 {
				q, err := units.ParsePhysicalQuantity(args[0])
				if err != nil {
					return err
				}
				qs = []units.PhysicalQuantity{q}
			}
			for _, q := range qs {
				names := make([]string, 0)
				for _, mu := range units.Units(q) {
					names = append(names, mu.Name)
				}
				printKeyValue(q.String(), strings.Join(names, " "))
			}
			return nil
		},
	}
}

func newUnitsDomainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "domain",
		Short: "Show the configured unit and default tolerance per quantity",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := configFromContext(cmd.Context()).Domain()
			if err != nil {
				return err
			}
			for _, e := range d.All() {
				printKeyValue(e.Quantity().String(), fmt.Sprintf("%s  tol %g", e.MU.Name, e.DefaultTolerance))
			}
			return nil
		},
	}
}
