package sweep

import (
	"fmt"
	"strings"
)

// Spacing selects how points are distributed between the end points.
type Spacing int

const (
	// Decade distributes points geometrically (SPICE ".AC DEC").
	Decade Spacing = iota + 1
	// Octave distributes points geometrically (SPICE ".AC OCT").
	Octave
	// Linear distributes points arithmetically (SPICE ".AC LIN").
	Linear
)

// String returns the lower-case spacing name.
func (s Spacing) String() string {
	switch s {
	case Decade:
		return "decade"
	case Octave:
		return "octave"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Spacing(%d)", int(s))
	}
}

// logarithmic reports whether the spacing is geometric.
func (s Spacing) logarithmic() bool { return s == Decade || s == Octave }

// ParseSpacing accepts the long and SPICE short names, case-insensitively:
// decade/dec, octave/oct, linear/lin.
func ParseSpacing(name string) (Spacing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "decade", "dec":
		return Decade, nil
	case "octave", "oct":
		return Octave, nil
	case "linear", "lin":
		return Linear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpacing, name)
	}
}
