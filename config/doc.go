// Package config loads eiscircuit project files: a default frequency sweep,
// derived element kinds and named circuits, written in YAML.
//
//	sweep:
//	  start: 1e-2
//	  stop: 1e5
//	  points_per_decade: 10
//	  spacing: decade
//	  descending: true
//	elements:
//	  - symbol: Rs
//	    name: Series resistance
//	    base: R
//	    parameters:
//	      R: {default: 10, lower: 0, upper: .inf, fixed: false}
//	circuits:
//	  - name: randles
//	    cdc: "Rs(C[RW])"
//
// Load and Parse decode the file into YAML DTOs and map them onto validated
// domain values; every mapping error names the offending field
// ("elements[1].parameters.R.lower") and wraps ErrInvalidConfig. Apply
// registers the element presets so later circuits may use their symbols, and
// Circuit compiles a named circuit against a registry.
package config
