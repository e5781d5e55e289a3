package circuit_test

import (
	"context"
	"math"
	"math/cmplx"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eiscircuit/circuit"
	"github.com/katalvlaran/eiscircuit/param"
	"github.com/katalvlaran/eiscircuit/registry"
	"github.com/katalvlaran/eiscircuit/sweep"
)

// elem instantiates symbol from reg or fails the test.
func elem(t *testing.T, reg *registry.Registry, symbol string, opts ...circuit.ElementOption) *circuit.Element {
	t.Helper()
	def, err := reg.Lookup(symbol)
	require.NoError(t, err)
	e, err := circuit.NewElement(def, opts...)
	require.NoError(t, err)
	return e
}

func series(t *testing.T, children ...circuit.Node) *circuit.Connection {
	t.Helper()
	c, err := circuit.NewSeries(children...)
	require.NoError(t, err)
	return c
}

func parallel(t *testing.T, children ...circuit.Node) *circuit.Connection {
	t.Helper()
	c, err := circuit.NewParallel(children...)
	require.NoError(t, err)
	return c
}

func build(t *testing.T, root *circuit.Connection) *circuit.Circuit {
	t.Helper()
	c, err := circuit.New(root)
	require.NoError(t, err)
	return c
}

// randles returns R{R=100}(R{R=200}C{C=1e-6}) with C fixed.
func randles(t *testing.T, reg *registry.Registry) *circuit.Circuit {
	t.Helper()
	return build(t, series(t,
		elem(t, reg, "R", circuit.WithValue("R", 100)),
		parallel(t,
			elem(t, reg, "R", circuit.WithValue("R", 200)),
			elem(t, reg, "C", circuit.WithValue("C", 1e-6), circuit.WithAllFixed(true)),
		),
	))
}

func TestNewElement_Options(t *testing.T) {
	reg := registry.NewWithBuiltins()
	def, err := reg.Lookup("Q")
	require.NoError(t, err)

	e, err := circuit.NewElement(def,
		circuit.WithIndex(3),
		circuit.WithValue("Y", 2e-5),
		circuit.WithBounds("n", 0.5, 1),
		circuit.WithFixed("n", true),
	)
	require.NoError(t, err)
	assert.Equal(t, "Q3", e.Label())
	assert.True(t, e.ExplicitIndex())
	assert.Equal(t, circuit.KindElement, e.Kind())
	assert.Nil(t, e.Children())

	y, ok := e.Parameter("Y")
	require.True(t, ok)
	assert.Equal(t, 2e-5, y.Value())
	n, _ := e.Parameter("n")
	assert.Equal(t, 0.5, n.Lower())
	assert.True(t, n.Fixed())

	cases := []struct {
		name string
		opt  circuit.ElementOption
		want error
	}{
		{"unknown parameter", circuit.WithValue("X", 1), registry.ErrUnknownParameter},
		{"out of bounds", circuit.WithValue("n", 1.5), param.ErrOutOfBounds},
		{"NaN", circuit.WithValue("Y", math.NaN()), param.ErrNotANumber},
		{"bad index", circuit.WithIndex(0), circuit.ErrInvalidIndex},
		{"bounds exclude value", circuit.WithBounds("n", 0, 0.5), param.ErrOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := circuit.NewElement(def, tc.opt)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err = circuit.NewElement(nil)
	assert.ErrorIs(t, err, circuit.ErrNilNode)
}

func TestNewElement_Subcircuit(t *testing.T) {
	reg := registry.NewWithBuiltins()
	tlm, err := reg.Lookup("Tlm")
	require.NoError(t, err)

	_, err = circuit.NewElement(tlm)
	assert.ErrorIs(t, err, circuit.ErrMissingSubcircuit)

	rdef, _ := reg.Lookup("R")
	_, err = circuit.NewElement(rdef, circuit.WithSubcircuit(series(t, elem(t, reg, "C"))))
	assert.ErrorIs(t, err, circuit.ErrUnexpectedSubcircuit)

	// A parallel sub-circuit is wrapped in a series connection.
	p := parallel(t, elem(t, reg, "R"), elem(t, reg, "C"))
	e, err := circuit.NewElement(tlm, circuit.WithSubcircuit(p))
	require.NoError(t, err)
	assert.Equal(t, circuit.KindContainer, e.Kind())
	require.NotNil(t, e.Subcircuit())
	assert.Equal(t, circuit.KindSeries, e.Subcircuit().Kind())
	assert.Equal(t, []circuit.Node{p}, e.Subcircuit().Children())

	// The sub-circuit now has an owner.
	_, err = circuit.NewElement(tlm, circuit.WithSubcircuit(p))
	assert.ErrorIs(t, err, circuit.ErrSharedNode)
}

func TestConnection_Ownership(t *testing.T) {
	reg := registry.NewWithBuiltins()
	r := elem(t, reg, "R")

	_, err := circuit.NewSeries()
	assert.ErrorIs(t, err, circuit.ErrEmptyCircuit)

	_, err = circuit.NewSeries(nil)
	assert.ErrorIs(t, err, circuit.ErrNilNode)

	var typedNil *circuit.Element
	_, err = circuit.NewParallel(typedNil)
	assert.ErrorIs(t, err, circuit.ErrNilNode)

	// Duplicates are rejected without claiming anything.
	_, err = circuit.NewSeries(r, r)
	assert.ErrorIs(t, err, circuit.ErrSharedNode)

	s, err := circuit.NewSeries(r)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	_, err = circuit.NewParallel(r)
	assert.ErrorIs(t, err, circuit.ErrSharedNode)

	// A connection is a node too: attaching it twice fails.
	_, err = circuit.NewParallel(s)
	require.NoError(t, err)
	_, err = circuit.NewSeries(s)
	assert.ErrorIs(t, err, circuit.ErrSharedNode)
}

func TestNew_Labels(t *testing.T) {
	reg := registry.NewWithBuiltins()
	c := build(t, series(t,
		elem(t, reg, "R"),
		elem(t, reg, "R", circuit.WithIndex(1)),
		parallel(t, elem(t, reg, "C"), elem(t, reg, "R")),
	))

	var labels []string
	for _, e := range c.Elements() {
		labels = append(labels, e.Label())
	}
	assert.Equal(t, []string{"R2", "R1", "C1", "R3"}, labels)

	e, err := c.Element("R3")
	require.NoError(t, err)
	assert.False(t, e.ExplicitIndex())

	_, err = c.Element("L1")
	assert.ErrorIs(t, err, circuit.ErrUnknownLabel)
}

func TestNew_DuplicateLabel(t *testing.T) {
	reg := registry.NewWithBuiltins()
	root := series(t,
		elem(t, reg, "R", circuit.WithIndex(2)),
		elem(t, reg, "R", circuit.WithIndex(2)),
	)
	_, err := circuit.New(root)
	require.ErrorIs(t, err, circuit.ErrDuplicateLabel)

	// The failed call did not claim root.
	_, err = circuit.New(root)
	assert.ErrorIs(t, err, circuit.ErrDuplicateLabel)

	_, err = circuit.New(nil)
	assert.ErrorIs(t, err, circuit.ErrNilNode)
}

func TestNew_WrapsParallelRoot(t *testing.T) {
	reg := registry.NewWithBuiltins()
	c := build(t, parallel(t, elem(t, reg, "R"), elem(t, reg, "C")))
	assert.Equal(t, circuit.KindSeries, c.Root().Kind())
	assert.Equal(t, "(RC)", c.String())

	_, err := circuit.New(c.Root())
	assert.ErrorIs(t, err, circuit.ErrSharedNode)
}

func TestCircuit_Parameters(t *testing.T) {
	reg := registry.NewWithBuiltins()
	c := randles(t, reg)

	var keys []string
	for _, r := range c.Parameters() {
		keys = append(keys, r.Key())
	}
	assert.Equal(t, []string{"R1.R", "R2.R", "C1.C"}, keys)

	ref, err := c.Parameter("R2.R")
	require.NoError(t, err)
	assert.Equal(t, 200.0, ref.Parameter.Value())

	for _, bad := range []string{"R9.R", "R1.X", "R1", ""} {
		_, err = c.Parameter(bad)
		assert.ErrorIs(t, err, circuit.ErrUnknownLabel, bad)
	}

	// C1 is fixed, so only the resistors are free.
	assert.Equal(t, []float64{100, 200}, c.FreeValues())
	require.Len(t, c.FreeParameters(), 2)

	assert.ErrorIs(t, c.SetFreeValues([]float64{1}), circuit.ErrVectorLength)
	assert.ErrorIs(t, c.SetFreeValues([]float64{1, -1}), param.ErrOutOfBounds)
	assert.ErrorIs(t, c.SetFreeValues([]float64{math.NaN(), 1}), param.ErrNotANumber)
	assert.Equal(t, []float64{100, 200}, c.FreeValues(), "failed update must not apply")

	require.NoError(t, c.SetFreeValues([]float64{10, 20}))
	assert.Equal(t, []float64{10, 20}, c.FreeValues())
}

func TestImpedance_SeriesLaw(t *testing.T) {
	reg := registry.NewWithBuiltins()
	omega := []float64{1, 10, 1e3, 1e6}

	r := elem(t, reg, "R", circuit.WithValue("R", 50))
	capa := elem(t, reg, "C", circuit.WithValue("C", 1e-3))
	l := elem(t, reg, "L", circuit.WithValue("L", 1e-3))
	zr := circuit.Impedance(r, omega)
	zc := circuit.Impedance(capa, omega)
	zl := circuit.Impedance(l, omega)

	c := build(t, series(t, r, capa, l))
	got := c.Impedance(omega)
	for i := range omega {
		want := zr[i] + zc[i] + zl[i]
		assert.InDelta(t, real(want), real(got[i]), 1e-9)
		assert.InDelta(t, imag(want), imag(got[i]), 1e-9)
	}
}

func TestImpedance_ParallelLaw(t *testing.T) {
	reg := registry.NewWithBuiltins()
	omega := []float64{0, 1, 1e3}

	c := build(t, parallel(t,
		elem(t, reg, "R", circuit.WithValue("R", 100)),
		elem(t, reg, "R", circuit.WithValue("R", 100)),
	))
	for _, z := range c.Impedance(omega) {
		assert.InDelta(t, 50, real(z), 1e-12)
		assert.InDelta(t, 0, imag(z), 1e-12)
	}

	// An exact short dominates, even next to an open branch.
	short := build(t, parallel(t,
		elem(t, reg, "R", circuit.WithValue("R", 0)),
		elem(t, reg, "R", circuit.WithValue("R", 100)),
		elem(t, reg, "C"),
	))
	for _, z := range short.Impedance(omega) {
		assert.Equal(t, complex(0, 0), z)
	}

	// Capacitors are open at ω = 0; all branches open gives an open aggregate.
	open := build(t, parallel(t, elem(t, reg, "C"), elem(t, reg, "C")))
	z := open.Impedance([]float64{0})
	assert.True(t, cmplx.IsInf(z[0]))

	// An open branch contributes no admittance.
	rc := build(t, parallel(t, elem(t, reg, "R", circuit.WithValue("R", 100)), elem(t, reg, "C")))
	z = rc.Impedance([]float64{0})
	assert.InDelta(t, 100, real(z[0]), 1e-9)
	assert.InDelta(t, 0, imag(z[0]), 1e-9)
}

func TestImpedance_EndToEnd(t *testing.T) {
	reg := registry.NewWithBuiltins()
	c := randles(t, reg)

	got := c.ImpedanceAt([]float64{1000})
	w := 2 * math.Pi * 1000
	want := 100 + 1/(1.0/200+complex(0, w*1e-6))
	require.Len(t, got, 1)
	assert.InDelta(t, real(want), real(got[0]), 1e-9)
	assert.InDelta(t, imag(want), imag(got[0]), 1e-9)
	assert.InDelta(t, 177.5453, real(got[0]), 1e-3)
	assert.InDelta(t, -97.4463, imag(got[0]), 1e-3)

	// Series C is open at ω = 0.
	rc := build(t, series(t, elem(t, reg, "R"), elem(t, reg, "C")))
	assert.True(t, cmplx.IsInf(rc.Impedance([]float64{0})[0]))

	assert.Empty(t, c.Impedance(nil))
}

func TestImpedance_Containers(t *testing.T) {
	reg := registry.NewWithBuiltins()
	omega := []float64{1, 100}

	sc := build(t, series(t, elem(t, reg, "Sc",
		circuit.WithValue("A", 2),
		circuit.WithSubcircuit(series(t, elem(t, reg, "R", circuit.WithValue("R", 100)))),
	)))
	for _, z := range sc.Impedance(omega) {
		assert.InDelta(t, 50, real(z), 1e-12)
	}

	tlm := build(t, series(t, elem(t, reg, "Tlm",
		circuit.WithSubcircuit(series(t, elem(t, reg, "R", circuit.WithValue("R", 1)))),
	)))
	coth1 := 1 / math.Tanh(1)
	for _, z := range tlm.Impedance(omega) {
		assert.InDelta(t, coth1, real(z), 1e-12)
		assert.InDelta(t, 0, imag(z), 1e-12)
	}

	// Nested elements are labelled after their container.
	var labels []string
	for _, e := range tlm.Elements() {
		labels = append(labels, e.Label())
	}
	assert.Equal(t, []string{"Tlm1", "R1"}, labels)
}

func TestCircuit_CloneIndependence(t *testing.T) {
	reg := registry.NewWithBuiltins()
	orig := randles(t, reg)
	cl := orig.Clone()

	assert.Equal(t, orig.String(), cl.String())
	require.NoError(t, cl.SetFreeValues([]float64{1, 2}))
	assert.Equal(t, []float64{100, 200}, orig.FreeValues())
	assert.NotEqual(t, orig.String(), cl.String())

	e, err := cl.Element("C1")
	require.NoError(t, err)
	p, _ := e.Parameter("C")
	assert.True(t, p.Fixed())
}

func TestImpedance_ConcurrentClones(t *testing.T) {
	reg := registry.NewWithBuiltins()
	base := randles(t, reg)
	omega := sweep.Angular([]float64{0.1, 1, 10, 100, 1e3, 1e4})
	want := base.Impedance(omega)

	const workers = 8
	var wg sync.WaitGroup
	results := make([][]complex128, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := base.Clone()
			results[i] = c.Impedance(omega)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestWalk(t *testing.T) {
	reg := registry.NewWithBuiltins()
	c := randles(t, reg)

	var pre, post []string
	err := c.Walk(
		circuit.WithOnVisit(func(n circuit.Node, depth int) error {
			pre = append(pre, n.Kind().String())
			return nil
		}),
		circuit.WithOnExit(func(n circuit.Node, depth int) error {
			post = append(post, n.Kind().String())
			return nil
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"series", "element", "parallel", "element", "element"}, pre)
	assert.Equal(t, []string{"element", "element", "element", "parallel", "series"}, post)

	var visited int
	err = c.Walk(circuit.WithOnVisit(func(n circuit.Node, _ int) error {
		visited++
		if n.Kind() == circuit.KindParallel {
			return circuit.SkipChildren
		}
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, visited)

	visited = 0
	require.NoError(t, c.Walk(circuit.WithMaxDepth(0), circuit.WithOnVisit(func(circuit.Node, int) error {
		visited++
		return nil
	})))
	assert.Equal(t, 1, visited)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Walk(circuit.WithContext(ctx)), context.Canceled)
}

func TestFormat(t *testing.T) {
	reg := registry.NewWithBuiltins()
	assert.Equal(t, "R{R=100}(R{R=200}C{C=1e-06F})", circuit.Format(randles(t, reg)))

	nested := build(t, series(t,
		elem(t, reg, "R", circuit.WithIndex(4)),
		parallel(t,
			series(t, elem(t, reg, "R"), elem(t, reg, "W")),
			elem(t, reg, "Q", circuit.WithParameter("n", 0.8, 0.5, 1, false)),
		),
	))
	assert.Equal(t, "R4([RW]Q{n=0.8/0.5/1})", circuit.Format(nested))

	inf := build(t, series(t, elem(t, reg, "R", circuit.WithBounds("R", math.Inf(-1), 2000))))
	assert.Equal(t, "R{R=1000/-inf/2000}", inf.String())

	prec := build(t, series(t, elem(t, reg, "C", circuit.WithValue("C", 1.23456789e-5))))
	assert.Equal(t, "C{C=1.23e-05}", circuit.Format(prec, circuit.WithPrecision(3)))

	tlmDefault := build(t, series(t, elem(t, reg, "Tlm", circuit.WithSubcircuit(series(t, elem(t, reg, "Q"))))))
	assert.Equal(t, "Tlm", tlmDefault.String())

	tlmCustom := build(t, series(t, elem(t, reg, "Tlm",
		circuit.WithValue("R", 5),
		circuit.WithSubcircuit(parallel(t, elem(t, reg, "R"), elem(t, reg, "C"))),
	)))
	assert.Equal(t, "Tlm{R=5,Z=(RC)}", tlmCustom.String())
	assert.Equal(t, "(RC)", circuit.FormatNode(tlmCustom.Elements()[0].Subcircuit()))
}

func TestImpedanceAt_UsesAngularFrequencies(t *testing.T) {
	reg := registry.NewWithBuiltins()
	c := randles(t, reg)
	hz := []float64{0.1, 1, 50, 1e4}

	assert.Equal(t, c.Impedance(sweep.Angular(hz)), c.ImpedanceAt(hz))
	assert.Empty(t, c.ImpedanceAt(nil))
}
