package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eiscircuit/circuit"
)

func parseCmd(g *globals) *cobra.Command {
	var quiet bool

	c := &cobra.Command{
		Use:   "parse <cdc|name>",
		Short: "Validate a circuit and print its canonical CDC and parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open()
			if err != nil {
				return err
			}
			c, err := s.circuit(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, s.serialize(c))
			if quiet {
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, ref := range c.Parameters() {
				p := ref.Parameter
				state := "free"
				if p.Fixed() {
					state = "fixed"
				}
				fmt.Fprintf(tw, "%s\t%s\t[%s, %s]\t%s\n",
					ref.Key(),
					circuit.FormatValue(p.Value(), -1),
					circuit.FormatValue(p.Lower(), -1),
					circuit.FormatValue(p.Upper(), -1),
					state,
				)
			}
			return tw.Flush()
		},
	}

	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "print the canonical CDC only")
	return c
}
