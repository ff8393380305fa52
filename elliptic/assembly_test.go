package elliptic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorbms/gomor/mor"
)

func testSpec(n, blocks, subs int) ProblemSpec {
	return ProblemSpec{
		Title:       "test block",
		GridN:       n,
		XBlocks:     blocks,
		YBlocks:     blocks,
		XSubdomains: subs,
		YSubdomains: subs,
	}
}

func TestBlockComponentsSumToUnitStiffness(t *testing.T) {
	// the 2x2-block decomposition evaluated at the unit parameter must
	// agree with the single-block assembly
	one, err := NewProvider(testSpec(8, 1, 2), nil)
	require.NoError(t, err)
	four, err := NewProvider(testSpec(8, 2, 2), nil)
	require.NoError(t, err)

	gOne := one.GlobalDiscretization()
	gFour := four.GlobalDiscretization()
	require.Equal(t, gOne.Dim(), gFour.Dim())

	n := gOne.Dim()
	rng := rand.New(rand.NewSource(11))
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	unit1 := mor.Parameter{Values: []float64{1}}
	unit4 := mor.Parameter{Values: []float64{1, 1, 1, 1}}
	y1 := make([]float64, n)
	y4 := make([]float64, n)
	gOne.ApplyOperator(unit1, y1, x)
	gFour.ApplyOperator(unit4, y4, x)
	for i := range y1 {
		assert.InDelta(t, y1[i], y4[i], 1e-12)
	}
}

func TestGlobalSolveMatchesPoissonReference(t *testing.T) {
	p, err := NewProvider(testSpec(16, 1, 2), nil)
	require.NoError(t, err)
	g := p.GlobalDiscretization()

	u, err := g.Solve(mor.Parameter{Values: []float64{1}})
	require.NoError(t, err)

	// -lap u = 1 on the unit square with zero boundary peaks at about
	// 0.07367 in the center
	max := 0.0
	for i := 0; i < u.Len(); i++ {
		if u.AtVec(i) > max {
			max = u.AtVec(i)
		}
	}
	assert.InDelta(t, 0.0736, max, 4e-3)
}

func TestOperatorSymmetry(t *testing.T) {
	p, err := NewProvider(testSpec(6, 2, 2), nil)
	require.NoError(t, err)
	g := p.GlobalDiscretization()
	mu := mor.Parameter{Values: []float64{0.5, 2, 7, 1}}

	n := g.Dim()
	rng := rand.New(rand.NewSource(5))
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
		y[i] = rng.NormFloat64()
	}
	ax := make([]float64, n)
	ay := make([]float64, n)
	g.ApplyOperator(mu, ax, x)
	g.ApplyOperator(mu, ay, y)

	var yAx, xAy float64
	for i := 0; i < n; i++ {
		yAx += y[i] * ax[i]
		xAy += x[i] * ay[i]
	}
	assert.InDelta(t, yAx, xAy, 1e-10)
}

func TestPartitionCoversInteriorDOFsDisjointly(t *testing.T) {
	p, err := NewProvider(testSpec(8, 2, 2), nil)
	require.NoError(t, err)
	ms := p.MultiscaleDiscretization()

	require.Equal(t, 4, ms.NumSubdomains())
	seen := make(map[int]bool)
	total := 0
	for s, idx := range ms.Partition() {
		assert.NotEmpty(t, idx, "subdomain %d", s)
		for _, g := range idx {
			assert.False(t, seen[g], "DOF %d assigned twice", g)
			seen[g] = true
		}
		total += len(idx)
	}
	assert.Equal(t, ms.Dim(), total)

	dims := ms.LocalDims()
	for s, idx := range ms.Partition() {
		assert.Equal(t, len(idx), dims[s])
		assert.Equal(t, len(idx), ms.LocalRHS(s).Len())
	}
}

func TestLocalProductRestrictsH1(t *testing.T) {
	p, err := NewProvider(testSpec(6, 1, 2), nil)
	require.NoError(t, err)
	ms := p.MultiscaleDiscretization()
	h1 := ms.H1Product()

	for s, idx := range ms.Partition() {
		local, err := ms.LocalProduct(s, "h1")
		require.NoError(t, err)
		require.Equal(t, len(idx), local.Dim())

		// diagonal entries survive restriction unchanged
		for li, gi := range idx {
			eLocal := make([]float64, len(idx))
			eLocal[li] = 1
			eGlobal := make([]float64, ms.Dim())
			eGlobal[gi] = 1
			assert.InDelta(t, h1.Inner(eGlobal, eGlobal), local.Inner(eLocal, eLocal), 1e-12)
		}
	}

	_, err = ms.LocalProduct(0, "l2")
	assert.Error(t, err)
	_, err = ms.LocalProduct(99, "h1")
	assert.Error(t, err)
}

func TestProblemSpecValidation(t *testing.T) {
	_, err := LoadProblemSpec("")
	assert.NoError(t, err)

	bad := testSpec(1, 1, 1)
	assert.Error(t, bad.validate())
	bad = testSpec(8, 9, 1)
	assert.Error(t, bad.validate())
	bad = testSpec(4, 2, 4)
	assert.Error(t, bad.validate())
}

func TestProblemSpecParse(t *testing.T) {
	var ps ProblemSpec
	err := ps.Parse([]byte(`
Title: "3x3 thermal block"
GridN: 12
XBlocks: 3
YBlocks: 3
XSubdomains: 2
YSubdomains: 2
`))
	require.NoError(t, err)
	assert.Equal(t, "3x3 thermal block", ps.Title)
	assert.Equal(t, 12, ps.GridN)
	assert.Equal(t, 3, ps.XBlocks)
	assert.NoError(t, ps.validate())
}
