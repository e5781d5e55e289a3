package cdc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eiscircuit/cdc"
	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/param"
	"github.com/katalvlaran/eiscircuit/registry"
)

func TestParse_RoundTrip(t *testing.T) {
	cases := []struct {
		in, canonical string
	}{
		{"R(RC)", "R(RC)"},
		{"R{R=100}(R{R=200}C{C=0.000001}{fixed=true})", "R{R=100}(R{R=200}C{C=1e-06F})"},
		{"R(C,R)", "R(CR)"},
		{" R ( Q [ R W ] ) ", "R(Q[RW])"},
		{"R{R=1k}", "R{R=1000}"},
		{"C{C=2u}", "C{C=2e-06}"},
		{"R2{R=1meg}C", "R2{R=1e+06}C"},
		{"Q{n=0.8/0.5/}", "Q{n=0.8/0.5/1}"},
		{"R{R=10/-inf/inf}", "R{R=10/-inf/inf}"},
		{"R{R=1000}", "R"},
		{"R{R=1000F}", "R{R=1000F}"},
		{"C{C=1e-6}{fixed=false}", "C"},
		{"Tlm", "Tlm"},
		{"Tlm{Z=Q}", "Tlm"},
		{"Tlm{R=5,Z=R(RC)}", "Tlm{R=5,Z=R(RC)}"},
		{"Sc{A=2, Z=(R,C)}", "Sc{A=2,Z=(RC)}"},
		{"[RC]", "[RC]"},
		{"Wo{Y=1e-3}Ws", "Wo{Y=0.001}Ws"},
		{"La{n=0.5}GKH", "La{n=0.5}GKH"},
		{"R((RC)(RL))", "R((RC)(RL))"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			c, err := cdc.Parse(tc.in)
			require.NoError(t, err)
			out := cdc.Serialize(c)
			assert.Equal(t, tc.canonical, out)

			back, err := cdc.Parse(out)
			require.NoError(t, err)
			assert.Equal(t, out, cdc.Serialize(back))
			assert.Equal(t, c.ToMap(), back.ToMap())

			omega := []float64{0.1, 10, 1e4}
			assert.Equal(t, c.Impedance(omega), back.Impedance(omega))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		in     string
		want   error
		offset int
	}{
		{"R(C", cdc.ErrUnbalancedBrackets, 1},
		{"R[C", cdc.ErrUnbalancedBrackets, 1},
		{"RC)", cdc.ErrUnbalancedBrackets, 2},
		{"R(C]", cdc.ErrUnbalancedBrackets, 3},
		{"(R]", cdc.ErrUnbalancedBrackets, 2},
		{"R{R=1", cdc.ErrUnbalancedBrackets, 1},
		{"(R,", cdc.ErrUnbalancedBrackets, 0},
		{"RX", registry.ErrUnknownSymbol, 1},
		{"R(CZz)", registry.ErrUnknownSymbol, 3},
		{"R{R=-1}", param.ErrOutOfBounds, 4},
		{"Q{n=2}", param.ErrOutOfBounds, 4},
		{"Q{n=0.5/0.6/0.4}", param.ErrInvalidBounds, 4},
		{"R{X=1}", registry.ErrUnknownParameter, 2},
		{"", circuit.ErrEmptyCircuit, 0},
		{"()", circuit.ErrEmptyCircuit, 0},
		{"R[]", circuit.ErrEmptyCircuit, 1},
		{"Tlm{Z=}", circuit.ErrEmptyCircuit, 6},
		{"R1R1", circuit.ErrDuplicateLabel, 2},
		{"R0", circuit.ErrInvalidIndex, 1},
		{"R{R=abc}", cdc.ErrSyntax, 4},
		{"R{fixed=maybe}", cdc.ErrSyntax, 8},
		{"r", cdc.ErrSyntax, 0},
		{"R,C", cdc.ErrSyntax, 1},
		{"R{R 1}", cdc.ErrSyntax, 4},
		{"(,R)", cdc.ErrSyntax, 1},
		{"(R,)", cdc.ErrSyntax, 3},
		{"R{R=1/2}", cdc.ErrSyntax, 7},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := cdc.Parse(tc.in)
			require.ErrorIs(t, err, tc.want)
			var pe *cdc.ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			assert.Equal(t, tc.offset, pe.Offset)
		})
	}
}

func TestParse_UnknownSymbolFragment(t *testing.T) {
	_, err := cdc.Parse("R(CZz)")
	var pe *cdc.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Zz", pe.Fragment)
	assert.Contains(t, pe.Error(), "offset 3")
}

func TestParse_FixedBlock(t *testing.T) {
	c, err := cdc.Parse("R{R=100}(R{R=200}C{C=0.000001}{fixed=true})")
	require.NoError(t, err)

	ref, err := c.Parameter("C1.C")
	require.NoError(t, err)
	assert.True(t, ref.Parameter.Fixed())
	assert.Equal(t, 1e-6, ref.Parameter.Value())
	assert.Equal(t, []float64{100, 200}, c.FreeValues())

	// A later entry redefines the parameter, including its fixed flag.
	c, err = cdc.Parse("C{fixed=true}{C=2u}")
	require.NoError(t, err)
	ref, _ = c.Parameter("C1.C")
	assert.False(t, ref.Parameter.Fixed())

	// Bounds still apply to fixed parameters.
	_, err = cdc.Parse("R{R=-5F}")
	assert.ErrorIs(t, err, param.ErrOutOfBounds)
}

func TestParse_EndToEnd(t *testing.T) {
	c := cdc.MustParse("R{R=100}(R{R=200}C{C=0.000001}{fixed=true})")
	z := c.ImpedanceAt([]float64{1000})
	w := 2 * math.Pi * 1000
	want := 100 + 1/(1.0/200+complex(0, w*1e-6))
	assert.InDelta(t, real(want), real(z[0]), 1e-9)
	assert.InDelta(t, imag(want), imag(z[0]), 1e-9)

	assert.Panics(t, func() { cdc.MustParse("R(") })
}

func TestParse_Labels(t *testing.T) {
	c := cdc.MustParse("R3(RC)R")
	var labels []string
	for _, e := range c.Elements() {
		labels = append(labels, e.Label())
	}
	assert.Equal(t, []string{"R3", "R1", "C1", "R2"}, labels)
	assert.Equal(t, "R3(RC)R", cdc.Serialize(c))
}

func TestParse_Containers(t *testing.T) {
	c := cdc.MustParse("Sc{A=4,Z=R{R=100}}")
	for _, z := range c.Impedance([]float64{1, 1e3}) {
		assert.InDelta(t, 25, real(z), 1e-12)
	}

	// The default template is instantiated when Z is absent.
	c = cdc.MustParse("Tlm")
	tlm := c.Elements()[0]
	require.NotNil(t, tlm.Subcircuit())
	assert.Equal(t, "Q", circuit.FormatNode(tlm.Subcircuit()))
	assert.Len(t, c.Elements(), 2)

	def, err := registry.Lookup("Sc")
	require.NoError(t, err)
	sub, err := cdc.DefaultSubcircuit(def)
	require.NoError(t, err)
	assert.Equal(t, "R", cdc.SerializeNode(sub))

	rdef, _ := registry.Lookup("R")
	_, err = cdc.DefaultSubcircuit(rdef)
	assert.ErrorIs(t, err, circuit.ErrUnexpectedSubcircuit)
}

// passthrough is a container formula returning the inner impedance unchanged.
func passthrough(_, _ []float64, inner, dst []complex128) { copy(dst, inner) }

func TestParse_CustomRegistry(t *testing.T) {
	reg := registry.NewWithBuiltins()
	_, err := reg.Register(registry.ElementDefinition{
		Symbol:     "Cu",
		Name:       "Constant unit impedance",
		Parameters: []param.Definition{param.NonNegative("Z", 1)},
		Impedance: func(p, omega []float64, dst []complex128) {
			for i := range omega {
				dst[i] = complex(p[0], 0)
			}
		},
	})
	require.NoError(t, err)

	c, err := cdc.Parse("R{R=1}(Cu{Z=2}Cu{Z=2})", cdc.WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, complex(2, 0), c.Impedance([]float64{1})[0])
	assert.Equal(t, "R{R=1}(Cu{Z=2}Cu{Z=2})", cdc.Serialize(c, cdc.WithTemplateRegistry(reg)))

	_, err = cdc.Parse("Cu")
	assert.ErrorIs(t, err, registry.ErrUnknownSymbol, "the default registry is untouched")

	// A template that names its own container cannot expand.
	_, err = reg.Register(registry.ContainerDefinition{
		Symbol:     "Loop",
		Name:       "Self-referencing container",
		Subcircuit: registry.SubcircuitDefinition{Key: "Z", Default: "Loop"},
		Impedance:  passthrough,
	})
	assert.ErrorIs(t, err, registry.ErrInvalidDefinition)
	assert.ErrorIs(t, err, cdc.ErrSyntax)
	assert.False(t, reg.Has("Loop"))

	// A non-canonical template is still recognised as the default.
	_, err = reg.Register(registry.ContainerDefinition{
		Symbol:     "Pad",
		Name:       "Padded template",
		Subcircuit: registry.SubcircuitDefinition{Key: "Z", Default: " ( R , C ) "},
		Impedance:  passthrough,
	})
	require.NoError(t, err)
	c, err = cdc.Parse("Pad", cdc.WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, "Pad", cdc.Serialize(c, cdc.WithTemplateRegistry(reg)))
}

func TestSerialize_Precision(t *testing.T) {
	c := cdc.MustParse("C{C=1.23456789e-5}")
	assert.Equal(t, "C{C=1.23e-05}", cdc.Serialize(c, cdc.WithPrecision(3)))
	assert.Equal(t, "C{C=1.23456789e-05}", cdc.Serialize(c))
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1k", 1e3},
		{"1K", 1e3},
		{"2.5u", 2.5e-6},
		{"1meg", 1e6},
		{"3M", 3e6},
		{"4m", 4e-3},
		{"7f", 7e-15},
		{"1e3", 1e3},
		{".5", 0.5},
		{"-2n", -2e-9},
		{"10p", 10e-12},
		{"1T", 1e12},
		{"inf", math.Inf(1)},
		{"+inf", math.Inf(1)},
		{"-inf", math.Inf(-1)},
	}
	for _, tc := range cases {
		got, err := cdc.ParseValue(tc.in)
		require.NoError(t, err, tc.in)
		if math.IsInf(tc.want, 0) {
			assert.Equal(t, tc.want, got, tc.in)
			continue
		}
		assert.InEpsilon(t, tc.want, got, 1e-12, tc.in)
	}

	for _, bad := range []string{"", "x", "1kk", "1e", "--1"} {
		_, err := cdc.ParseValue(bad)
		assert.ErrorIs(t, err, cdc.ErrSyntax, bad)
	}
}

func TestRegister_RejectsBadTemplates(t *testing.T) {
	cases := []struct {
		name, template string
		want           error
	}{
		{"unclosed", "R((", registry.ErrInvalidDefinition},
		{"mismatched", "(R]", registry.ErrInvalidDefinition},
		{"unknown symbol", "R(Zz)", registry.ErrUnknownSymbol},
		{"unknown parameter", "R{X=1}", registry.ErrUnknownParameter},
		{"bad value", "R{R=abc}", cdc.ErrSyntax},
		{"out of range", "Q{n=2}", param.ErrOutOfBounds},
		{"empty parallel", "R()", circuit.ErrEmptyCircuit},
		{"top-level comma", "R,C", cdc.ErrSyntax},
		{"bad subcircuit", "Tlm{Z=R{R=-1}}", param.ErrOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := registry.NewWithBuiltins()
			_, err := reg.Register(registry.ContainerDefinition{
				Symbol:     "Box",
				Name:       "Box",
				Subcircuit: registry.SubcircuitDefinition{Key: "Z", Default: tc.template},
				Impedance:  passthrough,
			})
			require.ErrorIs(t, err, registry.ErrInvalidDefinition)
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), tc.template)
			assert.False(t, reg.Has("Box"))
		})
	}
}

func TestRegister_TemplateCheckMarksNothingUsed(t *testing.T) {
	reg := registry.NewWithBuiltins()
	_, err := reg.Register(registry.ContainerDefinition{
		Symbol:     "Box",
		Name:       "Box",
		Subcircuit: registry.SubcircuitDefinition{Key: "Z", Default: "R(CTlm)"},
		Impedance:  passthrough,
	})
	require.NoError(t, err)

	// Override succeeds only for symbols no parse or build has resolved.
	def, ok := reg.Peek("C")
	require.True(t, ok)
	_, err = reg.Override(registry.ElementDefinition{
		Symbol: "C", Name: def.Name(), Parameters: def.Parameters(),
		Impedance: func(_, omega []float64, dst []complex128) {
			for i := range omega {
				dst[i] = 1
			}
		},
	})
	require.NoError(t, err)

	_, err = cdc.Parse("Box", cdc.WithRegistry(reg))
	require.NoError(t, err)
	_, err = reg.Override(registry.ElementDefinition{
		Symbol: "C", Name: def.Name(), Parameters: def.Parameters(),
		Impedance: func(_, omega []float64, dst []complex128) {},
	})
	assert.ErrorIs(t, err, registry.ErrSymbolInUse)
}

func TestFromMap_ContainerDefaultTemplate(t *testing.T) {
	reg := registry.NewWithBuiltins()
	c, err := circuit.FromMap(reg, map[string]any{
		"type": "circuit",
		"children": []any{
			map[string]any{"type": "element", "symbol": "R"},
			map[string]any{"type": "container", "symbol": "Tlm"},
			map[string]any{"type": "container", "symbol": "Sc", "subcircuit": nil},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "RTlmSc", cdc.Serialize(c, cdc.WithTemplateRegistry(reg)))

	want := cdc.MustParse("RTlmSc", cdc.WithRegistry(reg))
	omega := []float64{1, 1e2, 1e4}
	assert.Equal(t, want.Impedance(omega), c.Impedance(omega))

	back, err := cdc.Parse(cdc.Serialize(c, cdc.WithTemplateRegistry(reg)), cdc.WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, c.ToMap(), back.ToMap())
}

func TestJSON_InfiniteValues(t *testing.T) {
	c := cdc.MustParse("R{R=inf}C{C=1e-6/-inf/inf}Q{n=0/0/inf}")
	doc := circuit.EncodeJSON(c, 0)
	assert.Contains(t, doc, `"value":"inf"`)

	back, err := circuit.DecodeJSON(nil, []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, cdc.Serialize(c), cdc.Serialize(back))
	assert.Equal(t, c.ToMap(), back.ToMap())
}
