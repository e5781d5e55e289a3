// Package cli wires the eiscircuit commands onto cobra.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/eiscircuit/cdc"
	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/config"
	"github.com/katalvlaran/eiscircuit/internal/logger"
	"github.com/katalvlaran/eiscircuit/registry"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globals holds the persistent flags shared by every command.
type globals struct {
	configPath string
	logFile    string
	debug      bool

	cleanup func() error
}

// NewRootCmd builds the command tree. Each call returns an independent tree,
// so tests may run commands side by side.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:          "eiscircuit",
		Short:        "Parse, build and evaluate equivalent circuits for impedance spectroscopy",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lc := logger.Config{Path: g.logFile, Debug: g.debug}
			if g.debug && g.logFile == "" {
				lc.Writer = cmd.ErrOrStderr()
			}
			cleanup, err := logger.Setup(lc)
			if err != nil {
				return err
			}
			g.cleanup = cleanup
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if g.cleanup != nil {
				return g.cleanup()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "project file with sweep, element presets and named circuits")
	cmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "append JSON logs to this file")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging (stderr unless --log-file is set)")

	cmd.AddCommand(
		parseCmd(g),
		simulateCmd(g),
		elementsCmd(g),
		convertCmd(g),
	)
	return cmd
}

// session is the per-invocation state: a fresh registry with the config
// presets applied.
type session struct {
	reg *registry.Registry
	cfg *config.Config
}

func (g *globals) open() (*session, error) {
	s := &session{reg: registry.NewWithBuiltins()}
	if g.configPath == "" {
		return s, nil
	}
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(s.reg); err != nil {
		return nil, err
	}
	s.cfg = cfg
	logger.L().Debug("config.loaded",
		"path", g.configPath,
		"presets", len(cfg.Presets),
		"circuits", len(cfg.Circuits),
	)

	return s, nil
}

// circuit resolves arg as a named circuit of the config file, then as CDC.
func (s *session) circuit(arg string) (*circuit.Circuit, error) {
	if s.cfg != nil {
		for _, nc := range s.cfg.Circuits {
			if nc.Name == arg {
				return s.cfg.Circuit(s.reg, arg)
			}
		}
	}
	c, err := cdc.Parse(arg, cdc.WithRegistry(s.reg))
	if err != nil {
		return nil, err
	}
	logger.L().Debug("circuit.parsed", "cdc", arg, "elements", len(c.Elements()))

	return c, nil
}

func (s *session) serialize(c *circuit.Circuit, opts ...cdc.SerializeOption) string {
	return cdc.Serialize(c, append([]cdc.SerializeOption{cdc.WithTemplateRegistry(s.reg)}, opts...)...)
}

func (s *session) sweep() config.Sweep {
	if s.cfg != nil {
		return s.cfg.Sweep
	}
	return config.DefaultSweep()
}
