package cli

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eiscircuit/cdc"
	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/config"
	"github.com/katalvlaran/eiscircuit/internal/logger"
	"github.com/katalvlaran/eiscircuit/sweep"
)

// csvHeader is the column layout of simulate.
var csvHeader = []string{"freq", "real", "imag", "mag", "phase_deg"}

func simulateCmd(g *globals) *cobra.Command {
	var (
		start, stop float64
		ppd, points int
		spacing     string
		descending  bool
		sets        []string
		precision   int
	)

	c := &cobra.Command{
		Use:   "simulate <cdc|name>",
		Short: "Evaluate a circuit over a frequency sweep and print CSV",
		Long: "Evaluate a circuit over a frequency sweep and print CSV with the columns\n" +
			strings.Join(csvHeader, ",") + ".\n" +
			"The sweep comes from --config when given; flags override single fields.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open()
			if err != nil {
				return err
			}
			c, err := s.circuit(args[0])
			if err != nil {
				return err
			}
			for _, kv := range sets {
				if err := setParameter(c, kv); err != nil {
					return err
				}
			}

			sw := s.sweep()
			flags := cmd.Flags()
			if flags.Changed("start") {
				sw.Start = start
			}
			if flags.Changed("stop") {
				sw.Stop = stop
			}
			if flags.Changed("spacing") {
				if sw.Spacing, err = sweep.ParseSpacing(spacing); err != nil {
					return err
				}
			}
			if flags.Changed("points-per-decade") {
				sw.PointsPerInterval, sw.Points = ppd, 0
			}
			if flags.Changed("points") {
				sw.Points, sw.PointsPerInterval = points, 0
			}
			if flags.Changed("descending") {
				sw.Descending = descending
			}

			return writeSpectrum(cmd, c, sw, precision)
		},
	}

	f := c.Flags()
	f.Float64Var(&start, "start", config.DefaultStart, "first frequency in Hz")
	f.Float64Var(&stop, "stop", config.DefaultStop, "last frequency in Hz")
	f.IntVar(&ppd, "points-per-decade", config.DefaultPointsPerDecade, "grid density (per octave with --spacing oct)")
	f.IntVarP(&points, "points", "n", 0, "total number of points, overrides the density")
	f.StringVar(&spacing, "spacing", "decade", "decade, octave or linear")
	f.BoolVar(&descending, "descending", false, "run from high to low frequency")
	f.StringArrayVar(&sets, "set", nil, "override a parameter value, e.g. --set R1.R=2k (repeatable)")
	f.IntVar(&precision, "precision", -1, "significant digits, -1 for round-trip precision")
	return c
}

// setParameter applies one "Label.ID=value" override.
func setParameter(c *circuit.Circuit, kv string) error {
	key, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("--set %q: want Label.ID=value", kv)
	}
	ref, err := c.Parameter(strings.TrimSpace(key))
	if err != nil {
		return fmt.Errorf("--set %q: %w", kv, err)
	}
	v, err := cdc.ParseValue(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("--set %q: %w", kv, err)
	}
	if err := ref.Parameter.SetValue(v); err != nil {
		return fmt.Errorf("--set %q: %w", kv, err)
	}

	return nil
}

func writeSpectrum(cmd *cobra.Command, c *circuit.Circuit, sw config.Sweep, precision int) error {
	freqs, err := sw.Frequencies()
	if err != nil {
		return err
	}
	z := c.Impedance(sweep.Angular(freqs))
	logger.L().Debug("simulate.evaluated", "points", len(freqs), "spacing", sw.Spacing.String())

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', precision, 64) }
	w := csv.NewWriter(cmd.OutOrStdout())
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for i, f := range freqs {
		record := []string{
			format(f),
			format(real(z[i])),
			format(imag(z[i])),
			format(cmplx.Abs(z[i])),
			format(cmplx.Phase(z[i]) * 180 / math.Pi),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}
