// SPDX-License-Identifier: MIT
// Package: eiscircuit/registry
//
// builtins.go - the built-in element and container catalogue.
//
// Degeneracy:
//   - Every formula resolves ω = 0 and ω = ±Inf to its analytic limit and
//     propagates NaN. The evaluator never special-cases frequencies.

package registry

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/eiscircuit/param"
)

var inf = math.Inf(1)

// fraction is a parameter constrained to [0, 1] (CPE-like exponents).
func fraction(id string, def float64) param.Definition {
	return param.Definition{ID: id, Default: def, Lower: 0, Upper: 1}
}

// withMeta attaches unit and description to a parameter definition.
func withMeta(d param.Definition, unit, desc string) param.Definition {
	d.Unit, d.Description = unit, desc
	return d
}

// builtins returns the built-in definitions in registration order.
func builtins() []Definable {
	return []Definable{
		ElementDefinition{
			Symbol: "R", Name: "Resistor",
			Description: "Z = R",
			Parameters:  []param.Definition{withMeta(param.NonNegative("R", 1e3), "ohm", "resistance")},
			Impedance:   resistor,
		},
		ElementDefinition{
			Symbol: "C", Name: "Capacitor",
			Description: "Z = 1/(jωC)",
			Parameters:  []param.Definition{withMeta(param.NonNegative("C", 1e-6), "F", "capacitance")},
			Impedance:   capacitor,
		},
		ElementDefinition{
			Symbol: "L", Name: "Inductor",
			Description: "Z = jωL",
			Parameters:  []param.Definition{withMeta(param.NonNegative("L", 1e-6), "H", "inductance")},
			Impedance:   inductor,
		},
		ElementDefinition{
			Symbol: "W", Name: "Warburg, semi-infinite",
			Description: "Z = 1/(Y√(jω))",
			Parameters:  []param.Definition{withMeta(param.NonNegative("Y", 1), "S*s^(1/2)", "admittance coefficient")},
			Impedance:   warburg,
		},
		ElementDefinition{
			Symbol: "Wo", Name: "Warburg, finite length, open",
			Description: "Z = coth(B√(jω))/(Y√(jω))",
			Parameters: []param.Definition{
				withMeta(param.NonNegative("Y", 1), "S*s^(1/2)", "admittance coefficient"),
				withMeta(param.NonNegative("B", 1), "s^(1/2)", "diffusion time constant"),
			},
			Impedance: warburgOpen,
		},
		ElementDefinition{
			Symbol: "Ws", Name: "Warburg, finite length, short",
			Description: "Z = tanh(B√(jω))/(Y√(jω))",
			Parameters: []param.Definition{
				withMeta(param.NonNegative("Y", 1), "S*s^(1/2)", "admittance coefficient"),
				withMeta(param.NonNegative("B", 1), "s^(1/2)", "diffusion time constant"),
			},
			Impedance: warburgShort,
		},
		ElementDefinition{
			Symbol: "Q", Name: "Constant phase element",
			Description: "Z = 1/(Y(jω)^n)",
			Parameters: []param.Definition{
				withMeta(param.NonNegative("Y", 1e-6), "S*s^n", "admittance coefficient"),
				withMeta(fraction("n", 0.95), "", "exponent"),
			},
			Impedance: constantPhase,
		},
		ElementDefinition{
			Symbol: "La", Name: "Modified inductor",
			Description: "Z = L(jω)^n",
			Parameters: []param.Definition{
				withMeta(param.NonNegative("L", 1e-6), "H*s^(n-1)", "inductance"),
				withMeta(fraction("n", 0.95), "", "exponent"),
			},
			Impedance: modifiedInductor,
		},
		ElementDefinition{
			Symbol: "G", Name: "Gerischer",
			Description: "Z = 1/(Y(k+jω)^n)",
			Parameters: []param.Definition{
				withMeta(param.NonNegative("Y", 1), "S*s^n", "admittance coefficient"),
				withMeta(param.NonNegative("k", 1), "1/s", "reaction rate"),
				withMeta(fraction("n", 0.5), "", "exponent"),
			},
			Impedance: gerischer,
		},
		ElementDefinition{
			Symbol: "K", Name: "Voigt element",
			Description: "Z = R/(1+jωτ)",
			Parameters: []param.Definition{
				withMeta(param.NonNegative("R", 1), "ohm", "resistance"),
				withMeta(param.NonNegative("tau", 1), "s", "time constant"),
			},
			Impedance: voigt,
		},
		ElementDefinition{
			Symbol: "H", Name: "Havriliak-Negami relaxation",
			Description: "Z = (1+(jωτ)^a)^b/(jωΔC)",
			Parameters: []param.Definition{
				withMeta(param.NonNegative("dC", 1e-6), "F", "capacitance increment"),
				withMeta(param.NonNegative("tau", 1), "s", "time constant"),
				withMeta(fraction("a", 0.9), "", "symmetric broadening"),
				withMeta(fraction("b", 0.9), "", "asymmetric broadening"),
			},
			Impedance: havriliakNegami,
		},
		ContainerDefinition{
			Symbol: "Tlm", Name: "Transmission line, finite length",
			Description: "Z = √(R·Zi)·coth(√(R/Zi)), Zi = interfacial sub-circuit",
			Parameters:  []param.Definition{withMeta(param.NonNegative("R", 1), "ohm", "total ionic resistance")},
			Subcircuit: SubcircuitDefinition{
				Key:         "Z",
				Description: "interfacial impedance of the pore wall",
				Default:     "Q",
			},
			Impedance: transmissionLine,
		},
		ContainerDefinition{
			Symbol: "Sc", Name: "Area-normalised sub-circuit",
			Description: "Z = Zi/A",
			Parameters: []param.Definition{withMeta(
				param.Definition{ID: "A", Default: 1, Lower: 1e-12, Upper: inf}, "cm^2", "electrode area")},
			Subcircuit: SubcircuitDefinition{
				Key:         "Z",
				Description: "specific (per unit area) impedance",
				Default:     "R",
			},
			Impedance: areaScaled,
		},
	}
}

func resistor(p, omega []float64, dst []complex128) {
	fill(dst, complex(p[0], 0))
}

func capacitor(p, omega []float64, dst []complex128) {
	c := p[0]
	for i, w := range omega {
		dst[i] = invScale(c, complex(0, w))
	}
}

func inductor(p, omega []float64, dst []complex128) {
	l := p[0]
	for i, w := range omega {
		switch {
		case math.IsNaN(w):
			dst[i] = cmplx.NaN()
		case l == 0 || w == 0:
			dst[i] = 0
		case math.IsInf(w, 0):
			dst[i] = cmplx.Inf()
		default:
			dst[i] = complex(0, w*l)
		}
	}
}

func warburg(p, omega []float64, dst []complex128) {
	y := p[0]
	for i, w := range omega {
		dst[i] = invScale(y, sqrtJw(w))
	}
}

func warburgOpen(p, omega []float64, dst []complex128) {
	y, b := p[0], p[1]
	for i, w := range omega {
		s := sqrtJw(w)
		switch {
		case cmplx.IsNaN(s):
			dst[i] = cmplx.NaN()
		case y == 0 || b == 0 || s == 0:
			// coth(B√(jω)) diverges, or the admittance vanishes.
			dst[i] = cmplx.Inf()
		case cmplx.IsInf(s):
			dst[i] = 0
		default:
			dst[i] = cothc(complex(b, 0)*s) / (complex(y, 0) * s)
		}
	}
}

func warburgShort(p, omega []float64, dst []complex128) {
	y, b := p[0], p[1]
	for i, w := range omega {
		s := sqrtJw(w)
		switch {
		case cmplx.IsNaN(s):
			dst[i] = cmplx.NaN()
		case b == 0:
			dst[i] = 0
		case y == 0:
			dst[i] = cmplx.Inf()
		case s == 0:
			// tanh(x)/x → 1 as x → 0, leaving B/Y.
			dst[i] = complex(b/y, 0)
		case cmplx.IsInf(s):
			dst[i] = 0
		default:
			dst[i] = tanhc(complex(b, 0)*s) / (complex(y, 0) * s)
		}
	}
}

func constantPhase(p, omega []float64, dst []complex128) {
	y, n := p[0], p[1]
	for i, w := range omega {
		dst[i] = invScale(y, jwPow(w, n))
	}
}

func modifiedInductor(p, omega []float64, dst []complex128) {
	l, n := p[0], p[1]
	for i, w := range omega {
		dst[i] = scale(l, jwPow(w, n))
	}
}

func gerischer(p, omega []float64, dst []complex128) {
	y, k, n := p[0], p[1], p[2]
	for i, w := range omega {
		switch {
		case math.IsNaN(w):
			dst[i] = cmplx.NaN()
		case math.IsInf(w, 0):
			if n == 0 {
				dst[i] = invScale(y, 1)
			} else {
				dst[i] = 0
			}
		default:
			base := complex(k, w)
			var pw complex128
			switch {
			case n == 0:
				pw = 1
			case base == 0:
				pw = 0
			default:
				pw = cmplx.Pow(base, complex(n, 0))
			}
			dst[i] = invScale(y, pw)
		}
	}
}

func voigt(p, omega []float64, dst []complex128) {
	r, tau := p[0], p[1]
	for i, w := range omega {
		switch {
		case math.IsNaN(w):
			dst[i] = cmplx.NaN()
		case tau == 0 || w == 0:
			dst[i] = complex(r, 0)
		case math.IsInf(w, 0):
			dst[i] = 0
		default:
			dst[i] = complex(r, 0) / complex(1, w*tau)
		}
	}
}

func havriliakNegami(p, omega []float64, dst []complex128) {
	dc, tau, a, b := p[0], p[1], p[2], p[3]
	for i, w := range omega {
		switch {
		case math.IsNaN(w):
			dst[i] = cmplx.NaN()
		case dc == 0 || w == 0:
			dst[i] = cmplx.Inf()
		case math.IsInf(w, 0):
			// Z ~ ω^(ab-1): bounded only for a = b = 1, where it tends to τ/ΔC.
			if tau > 0 && a*b == 1 {
				dst[i] = complex(tau/dc, 0)
			} else {
				dst[i] = 0
			}
		default:
			num := 1 + jwPow(w*tau, a)
			if b != 1 {
				num = cmplx.Pow(num, complex(b, 0))
			}
			dst[i] = num / complex(0, w*dc)
		}
	}
}

func transmissionLine(p, omega []float64, inner, dst []complex128) {
	r := p[0]
	for i, zi := range inner {
		switch {
		case cmplx.IsNaN(zi):
			dst[i] = cmplx.NaN()
		case zi == 0:
			dst[i] = 0
		case cmplx.IsInf(zi):
			dst[i] = cmplx.Inf()
		case r == 0:
			// √(R·Zi)·coth(√(R/Zi)) → Zi as R → 0.
			dst[i] = zi
		default:
			rc := complex(r, 0)
			dst[i] = cmplx.Sqrt(rc*zi) * cothc(cmplx.Sqrt(rc/zi))
		}
	}
}

func areaScaled(p, omega []float64, inner, dst []complex128) {
	a := p[0]
	for i, zi := range inner {
		if cmplx.IsInf(zi) {
			dst[i] = cmplx.Inf()
			continue
		}
		dst[i] = complex(real(zi)/a, imag(zi)/a)
	}
}
