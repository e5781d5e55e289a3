// SPDX-License-Identifier: MIT
// Package: eiscircuit/config
//
// config.go - mapped configuration and its use against a registry.

package config

import (
	"fmt"

	"github.com/katalvlaran/eiscircuit/cdc"
	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/registry"
	"github.com/katalvlaran/eiscircuit/sweep"
)

// Default sweep, used for any field the file leaves out.
const (
	DefaultStart           = 1e-2
	DefaultStop            = 1e5
	DefaultPointsPerDecade = 10
)

// Config is a validated configuration file.
type Config struct {
	Path     string
	Sweep    Sweep
	Presets  []registry.Preset
	Circuits []NamedCircuit
}

// Sweep describes the frequency grid in Hz. Exactly one of Points and
// PointsPerInterval is non-zero; the latter counts per decade or per octave
// depending on Spacing.
type Sweep struct {
	Start, Stop       float64
	Spacing           sweep.Spacing
	Points            int
	PointsPerInterval int
	Descending        bool
}

// DefaultSweep returns the grid used when a file has no sweep section.
func DefaultSweep() Sweep {
	return Sweep{
		Start:             DefaultStart,
		Stop:              DefaultStop,
		Spacing:           sweep.Decade,
		PointsPerInterval: DefaultPointsPerDecade,
	}
}

// Frequencies expands the sweep into its grid.
func (s Sweep) Frequencies() ([]float64, error) {
	var (
		f   []float64
		err error
	)
	switch {
	case s.Points > 0:
		f, err = sweep.Points(s.Spacing, s.Start, s.Stop, s.Points)
	case s.Spacing == sweep.Linear:
		err = fmt.Errorf("%w: linear spacing needs a point count", sweep.ErrTooFewPoints)
	case s.Spacing == sweep.Octave:
		f, err = sweep.LogPerOctave(s.Start, s.Stop, s.PointsPerInterval)
	default:
		f, err = sweep.LogPerDecade(s.Start, s.Stop, s.PointsPerInterval)
	}
	if err != nil {
		return nil, err
	}
	if s.Descending {
		f = sweep.Descending(f)
	}

	return f, nil
}

// NamedCircuit is a circuit entry of the file, kept as CDC until compiled.
type NamedCircuit struct {
	Name string
	CDC  string
}

// Apply registers every preset in file order. It stops at the first failure.
func (c *Config) Apply(reg *registry.Registry) error {
	for i, p := range c.Presets {
		if _, err := reg.RegisterPreset(p); err != nil {
			return &Error{
				Op:   "config.apply",
				Path: c.Path,
				Err:  fmt.Errorf("field elements[%d]: %w: %w", i, ErrInvalidConfig, err),
			}
		}
	}

	return nil
}

// Circuit compiles the named circuit against reg.
func (c *Config) Circuit(reg *registry.Registry, name string) (*circuit.Circuit, error) {
	for i, nc := range c.Circuits {
		if nc.Name != name {
			continue
		}
		out, err := cdc.Parse(nc.CDC, cdc.WithRegistry(reg))
		if err != nil {
			return nil, &Error{
				Op:   "config.circuit",
				Path: c.Path,
				Err:  fmt.Errorf("field circuits[%d].cdc: %w: %w", i, ErrInvalidConfig, err),
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCircuit, name)
}
