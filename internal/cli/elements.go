package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/param"
)

func elementsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "List registered element kinds and their parameter schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.open()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SYMBOL\tNAME\tPARAMETERS\tSUBCIRCUIT")
			for _, def := range s.reg.Definitions() {
				params := make([]string, 0, def.NumParameters())
				for _, pd := range def.Parameters() {
					params = append(params, describe(pd))
				}
				sub := "-"
				if sd, ok := def.Subcircuit(); ok {
					sub = sd.Key + "=" + sd.Default
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.Symbol(), def.Name(), strings.Join(params, "; "), sub)
			}
			return tw.Flush()
		},
	}
}

// describe renders "n=0.9 [0, 1]" with unit and fixed marker when present.
func describe(pd param.Definition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%s", pd.ID, circuit.FormatValue(pd.Default, -1))
	if pd.Unit != "" {
		b.WriteString(" " + pd.Unit)
	}
	fmt.Fprintf(&b, " [%s, %s]", circuit.FormatValue(pd.Lower, -1), circuit.FormatValue(pd.Upper, -1))
	if pd.Fixed {
		b.WriteString(" fixed")
	}
	return b.String()
}
