package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/eiscircuit/registry"
	"github.com/katalvlaran/eiscircuit/sweep"
)

// Map validates a decoded file. path is only used in error messages.
func Map(path string, yf YAMLFile) (*Config, error) {
	sw, err := mapSweep(path, yf.Sweep)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Path:     path,
		Sweep:    sw,
		Presets:  make([]registry.Preset, 0, len(yf.Elements)),
		Circuits: make([]NamedCircuit, 0, len(yf.Circuits)),
	}

	symbols := make(map[string]struct{}, len(yf.Elements))
	for i, e := range yf.Elements {
		p, err := mapElement(path, fmt.Sprintf("elements[%d]", i), e)
		if err != nil {
			return nil, err
		}
		if _, dup := symbols[p.Symbol]; dup {
			return nil, invalidField(path, fmt.Sprintf("elements[%d].symbol", i), fmt.Sprintf("duplicate symbol %q", p.Symbol))
		}
		symbols[p.Symbol] = struct{}{}
		cfg.Presets = append(cfg.Presets, p)
	}

	names := make(map[string]struct{}, len(yf.Circuits))
	for i, c := range yf.Circuits {
		prefix := fmt.Sprintf("circuits[%d]", i)
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, invalidField(path, prefix+".name", "circuit name is required")
		}
		if _, dup := names[name]; dup {
			return nil, invalidField(path, prefix+".name", fmt.Sprintf("duplicate circuit %q", name))
		}
		names[name] = struct{}{}
		if strings.TrimSpace(c.CDC) == "" {
			return nil, invalidField(path, prefix+".cdc", "cdc is required")
		}
		cfg.Circuits = append(cfg.Circuits, NamedCircuit{Name: name, CDC: c.CDC})
	}

	return cfg, nil
}

func mapSweep(path string, ys *YAMLSweep) (Sweep, error) {
	sw := DefaultSweep()
	if ys == nil {
		return sw, nil
	}
	if ys.Start != nil {
		sw.Start = *ys.Start
	}
	if ys.Stop != nil {
		sw.Stop = *ys.Stop
	}
	if strings.TrimSpace(ys.Spacing) != "" {
		s, err := sweep.ParseSpacing(ys.Spacing)
		if err != nil {
			return Sweep{}, invalidField(path, "sweep.spacing", err.Error())
		}
		sw.Spacing = s
	}
	sw.Descending = ys.Descending

	switch {
	case ys.Points != nil && ys.PointsPerDecade != nil:
		return Sweep{}, invalidField(path, "sweep.points", "points and points_per_decade are exclusive")
	case ys.Points != nil:
		if *ys.Points < 1 {
			return Sweep{}, invalidField(path, "sweep.points", "must be at least 1")
		}
		sw.Points, sw.PointsPerInterval = *ys.Points, 0
	case ys.PointsPerDecade != nil:
		if *ys.PointsPerDecade < 1 {
			return Sweep{}, invalidField(path, "sweep.points_per_decade", "must be at least 1")
		}
		sw.PointsPerInterval = *ys.PointsPerDecade
	}
	if sw.Spacing == sweep.Linear && sw.Points == 0 {
		return Sweep{}, invalidField(path, "sweep.points", "required for linear spacing")
	}

	// Range errors surface here rather than on first use.
	if _, err := sw.Frequencies(); err != nil {
		return Sweep{}, invalidField(path, "sweep", err.Error())
	}

	return sw, nil
}

func mapElement(path, prefix string, e YAMLElement) (registry.Preset, error) {
	symbol := strings.TrimSpace(e.Symbol)
	if symbol == "" {
		return registry.Preset{}, invalidField(path, prefix+".symbol", "symbol is required")
	}
	if err := registry.ValidateSymbol(symbol); err != nil {
		return registry.Preset{}, invalidField(path, prefix+".symbol", err.Error())
	}
	base := strings.TrimSpace(e.Base)
	if base == "" {
		return registry.Preset{}, invalidField(path, prefix+".base", "base is required")
	}
	name := strings.TrimSpace(e.Name)
	if name == "" {
		name = symbol
	}

	p := registry.Preset{
		Symbol:      symbol,
		Name:        name,
		Description: e.Description,
		Base:        base,
		Parameters:  make(map[string]registry.ParameterOverride, len(e.Parameters)),
	}
	ids := make([]string, 0, len(e.Parameters))
	for id := range e.Parameters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		yp := e.Parameters[id]
		field := prefix + ".parameters." + id
		for _, f := range []struct {
			key string
			v   *float64
		}{{"default", yp.Default}, {"lower", yp.Lower}, {"upper", yp.Upper}} {
			if f.v != nil && math.IsNaN(*f.v) {
				return registry.Preset{}, invalidField(path, field+"."+f.key, "must be a number")
			}
		}
		if yp.Default != nil && math.IsInf(*yp.Default, 0) {
			return registry.Preset{}, invalidField(path, field+".default", "must be finite")
		}
		p.Parameters[id] = registry.ParameterOverride{
			Default: yp.Default,
			Lower:   yp.Lower,
			Upper:   yp.Upper,
			Fixed:   yp.Fixed,
		}
	}

	return p, nil
}
