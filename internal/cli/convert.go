package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/internal/logger"
)

func convertCmd(g *globals) *cobra.Command {
	var (
		fromJSON bool
		query    string
		indent   int
	)

	c := &cobra.Command{
		Use:   "convert <cdc|name|file>",
		Short: "Convert between CDC and plain-data JSON",
		Long: "Without --from-json the argument is a circuit and its plain data is printed as JSON.\n" +
			"With --from-json the argument is a JSON file (\"-\" for stdin) and canonical CDC is printed.\n" +
			"--query applies a JSONPath selector to the plain data instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if fromJSON {
				data, err := readInput(cmd, args[0])
				if err != nil {
					return err
				}
				c, err := circuit.DecodeJSON(s.reg, data)
				if err != nil {
					return err
				}
				logger.L().Debug("convert.decoded", "bytes", len(data), "elements", len(c.Elements()))
				if query == "" {
					_, err = fmt.Fprintln(out, s.serialize(c))
					return err
				}
				return printQuery(out, c, query)
			}

			c, err := s.circuit(args[0])
			if err != nil {
				return err
			}
			if query != "" {
				return printQuery(out, c, query)
			}
			_, err = fmt.Fprintln(out, circuit.EncodeJSON(c, indent))
			return err
		},
	}

	c.Flags().BoolVar(&fromJSON, "from-json", false, "read plain-data JSON and print CDC")
	c.Flags().StringVarP(&query, "query", "j", "", "JSONPath selector over the plain data, e.g. '$..symbol'")
	c.Flags().IntVar(&indent, "indent", 2, "JSON indent, 0 for compact output")
	return c
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func printQuery(out io.Writer, c *circuit.Circuit, selector string) error {
	results, err := circuit.Query(c, selector)
	if err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintln(out, oj.JSON(r, &oj.Options{Sort: true})); err != nil {
			return err
		}
	}
	return nil
}
