// SPDX-License-Identifier: MIT
// Package: eiscircuit/cdc
//
// value.go - numeric literals with SPICE-style multipliers.

package cdc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// unitMap holds the SI multipliers accepted after a number.
var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"G":   1e9,   // giga
	"M":   1e6,   // mega
	"meg": 1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

// numberRe matches a number with an optional multiplier at the start of the input.
var numberRe = regexp.MustCompile(`^([-+]?(?:inf|\d*\.?\d+(?:[eE][-+]?\d+)?))(meg|[TGMKkmunpf])?`)

// scanNumber parses the literal at the start of s and returns its value and
// length. ok is false when s does not start with a number.
func scanNumber(s string) (v float64, n int, ok bool) {
	m := numberRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lit := m[1]
	switch strings.TrimLeft(lit, "+-") {
	case "inf":
		v = math.Inf(1)
		if lit[0] == '-' {
			v = math.Inf(-1)
		}
	default:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return 0, 0, false
		}
		v = f
	}
	if m[2] != "" {
		v *= unitMap[m[2]]
	}

	return v, len(m[0]), true
}

// ParseValue parses a standalone literal such as "1k", "2.5u" or "-inf".
func ParseValue(s string) (float64, error) {
	v, n, ok := scanNumber(strings.TrimSpace(s))
	if !ok || n != len(strings.TrimSpace(s)) {
		return 0, &ParseError{Err: ErrSyntax, Fragment: s}
	}

	return v, nil
}
