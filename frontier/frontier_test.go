package frontier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/frontier"
)

func changeBands() []frontier.Band {
	return []frontier.Band{
		{MinPermille: 550, MaxPermille: 1000, Status: "change"},
		{MinPermille: 450, MaxPermille: 549, Status: "review"},
	}
}

// TestMap_ModeNone: the fast path labels everything "none" with no
// flags.
func TestMap_ModeNone(t *testing.T) {
	out, err := frontier.Map(frontier.Inputs{
		Mode:  frontier.ModeNone,
		Units: []core.UnitID{"A", "B"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.StatusCounts[frontier.StatusNone])
	for _, f := range out.Units {
		assert.Equal(t, frontier.StatusNone, f.Status)
		assert.False(t, f.ContiguityOK || f.MediationFlagged || f.Enclave || f.ProtectedOverride)
	}
}

// TestMap_BandAssignment covers the permille floor, the first-match
// rule and the "none" default.
func TestMap_BandAssignment(t *testing.T) {
	in := frontier.Inputs{
		Mode:  frontier.ModeBands,
		Units: []core.UnitID{"hi", "mid", "lo", "zero"},
		Support: map[core.UnitID]frontier.Ratio{
			"hi":   {Num: 55, Den: 100},  // 550 ⇒ change
			"mid":  {Num: 549, Den: 1000}, // 549 ⇒ review
			"lo":   {Num: 1, Den: 100},   // 10 ⇒ none
			"zero": {Num: 7, Den: 0},     // den 0 ⇒ 0 ⇒ none
		},
		Bands: changeBands(),
	}
	out, err := frontier.Map(in)
	require.NoError(t, err)
	assert.Equal(t, "change", out.Units["hi"].Status)
	assert.Equal(t, "review", out.Units["mid"].Status)
	assert.Equal(t, frontier.StatusNone, out.Units["lo"].Status)
	assert.Equal(t, frontier.StatusNone, out.Units["zero"].Status)
	assert.Equal(t, 1, out.StatusCounts["change"])
	assert.Equal(t, 2, out.StatusCounts[frontier.StatusNone])
}

// TestMap_BadBands rejects overlapping and inverted band lists,
// whatever order they are listed in.
func TestMap_BadBands(t *testing.T) {
	in := frontier.Inputs{
		Mode:  frontier.ModeBands,
		Units: []core.UnitID{"A"},
		Bands: []frontier.Band{
			{MinPermille: 0, MaxPermille: 500, Status: "x"},
			{MinPermille: 400, MaxPermille: 600, Status: "y"},
		},
	}
	_, err := frontier.Map(in)
	assert.ErrorIs(t, err, frontier.ErrBadBands)

	// Same overlap, high band listed first.
	in.Bands = []frontier.Band{
		{MinPermille: 550, MaxPermille: 1000, Status: "x"},
		{MinPermille: 500, MaxPermille: 600, Status: "y"},
	}
	_, err = frontier.Map(in)
	assert.ErrorIs(t, err, frontier.ErrBadBands)

	in.Bands = []frontier.Band{{MinPermille: 700, MaxPermille: 600, Status: "x"}}
	_, err = frontier.Map(in)
	assert.ErrorIs(t, err, frontier.ErrBadBands)
}

// TestMap_BandListingOrder: bands may be listed in any numeric order;
// assignment scans the list first to last.
func TestMap_BandListingOrder(t *testing.T) {
	in := frontier.Inputs{
		Mode:  frontier.ModeBands,
		Units: []core.UnitID{"hi", "mid", "lo"},
		Support: map[core.UnitID]frontier.Ratio{
			"hi":  {Num: 60, Den: 100},
			"mid": {Num: 50, Den: 100},
			"lo":  {Num: 30, Den: 100},
		},
		Bands: []frontier.Band{ // high first, low second, middle last
			{MinPermille: 550, MaxPermille: 1000, Status: "change"},
			{MinPermille: 0, MaxPermille: 449, Status: "reject"},
			{MinPermille: 450, MaxPermille: 549, Status: "review"},
		},
	}
	out, err := frontier.Map(in)
	require.NoError(t, err)
	assert.Equal(t, "change", out.Units["hi"].Status)
	assert.Equal(t, "review", out.Units["mid"].Status)
	assert.Equal(t, "reject", out.Units["lo"].Status)
}

// TestRatio_Permille covers the floor, the degenerate zeros, and
// numerators large enough to overflow a naive 64-bit multiply.
func TestRatio_Permille(t *testing.T) {
	assert.Equal(t, int64(549), frontier.Ratio{Num: 549, Den: 1000}.Permille())
	assert.Equal(t, int64(0), frontier.Ratio{Num: 7, Den: 0}.Permille())
	assert.Equal(t, int64(0), frontier.Ratio{Num: -1, Den: 10}.Permille())
	// 1000·(3·2^61) overflows int64; the exact quotient is 1500.
	assert.Equal(t, int64(1500), frontier.Ratio{Num: 3 << 61, Den: 1 << 62}.Permille())
}

// contiguityInputs builds a five-unit chain A—B—C—D—E of land edges
// with everyone banded "change".
func contiguityInputs() frontier.Inputs {
	support := make(map[core.UnitID]frontier.Ratio)
	for _, u := range []core.UnitID{"A", "B", "C", "D", "E"} {
		support[u] = frontier.Ratio{Num: 60, Den: 100}
	}
	return frontier.Inputs{
		Mode:    frontier.ModeBands,
		Units:   []core.UnitID{"A", "B", "C", "D", "E"},
		Support: support,
		Edges: []frontier.Edge{
			{A: "A", B: "B", Kind: frontier.Land},
			{A: "B", B: "C", Kind: frontier.Land},
			{A: "C", B: "D", Kind: frontier.Land},
			{A: "D", B: "E", Kind: frontier.Land},
		},
		Bands:      changeBands(),
		Admissible: []frontier.EdgeKind{frontier.Land},
	}
}

// TestMap_ContiguousChain: one component, everyone contiguity-ok, no
// mediation, no enclaves.
func TestMap_ContiguousChain(t *testing.T) {
	out, err := frontier.Map(contiguityInputs())
	require.NoError(t, err)
	assert.Equal(t, 1, out.ComponentCounts["change"])
	for u, f := range out.Units {
		assert.True(t, f.ContiguityOK, "unit %s", u)
		assert.False(t, f.MediationFlagged, "unit %s", u)
		assert.False(t, f.Enclave, "unit %s", u)
		assert.Equal(t, 1, f.Component)
	}
	assert.Zero(t, out.MediationCount)
	assert.Zero(t, out.EnclaveCount)
}

// TestMap_ProtectedOverridePrecedence: a protected sole link turns
// "none" before contiguity, splitting the survivors into two mediated
// components.
func TestMap_ProtectedOverridePrecedence(t *testing.T) {
	in := contiguityInputs()
	in.Protected = map[core.UnitID]bool{"C": true}

	out, err := frontier.Map(in)
	require.NoError(t, err)

	c := out.Units["C"]
	assert.Equal(t, frontier.StatusNone, c.Status, "protected unit forced to none")
	assert.True(t, c.ProtectedOverride)
	assert.True(t, out.ProtectedOverrideUsed)
	assert.Equal(t, 1, out.ProtectedOverrideCount)

	// A—B and D—E survive as two components of "change".
	assert.Equal(t, 2, out.ComponentCounts["change"])
	assert.Equal(t, 1, out.Units["A"].Component)
	assert.Equal(t, 1, out.Units["B"].Component)
	assert.Equal(t, 2, out.Units["D"].Component)
	assert.Equal(t, 2, out.Units["E"].Component)
	for _, u := range []core.UnitID{"A", "B", "D", "E"} {
		assert.True(t, out.Units[u].MediationFlagged, "unit %s", u)
		assert.True(t, out.Units[u].ContiguityOK, "unit %s", u)
	}
	assert.Equal(t, 4, out.MediationCount)
}

// TestMap_Enclave: one admissible neighbor with a different status
// suffices.
func TestMap_Enclave(t *testing.T) {
	in := contiguityInputs()
	// B drops below every band: A becomes an enclave (its only
	// neighbor differs), C keeps a same-status neighbor in D.
	in.Support["B"] = frontier.Ratio{Num: 10, Den: 100}

	out, err := frontier.Map(in)
	require.NoError(t, err)
	a := out.Units["A"]
	assert.True(t, a.Enclave, "one differing neighbor is enough")
	assert.False(t, a.ContiguityOK)
	c := out.Units["C"]
	assert.False(t, c.Enclave)
	assert.True(t, c.ContiguityOK)
	// "none" units are never enclaves, however their neighbors band.
	assert.False(t, out.Units["B"].Enclave)
	assert.Equal(t, 1, out.EnclaveCount)
}

// TestMap_EdgeAdmissibility: inadmissible kinds drop out; the
// island-ferry toggle re-admits bridge and water.
func TestMap_EdgeAdmissibility(t *testing.T) {
	in := contiguityInputs()
	in.Edges[1] = frontier.Edge{A: "B", B: "C", Kind: frontier.Water}

	out, err := frontier.Map(in)
	require.NoError(t, err)
	assert.Equal(t, 2, out.ComponentCounts["change"], "water edge not admitted")

	in.IslandFerry = true
	out, err = frontier.Map(in)
	require.NoError(t, err)
	assert.Equal(t, 1, out.ComponentCounts["change"], "island-ferry admits the water link")
}

// TestMap_Idempotent: two runs on identical inputs agree exactly.
func TestMap_Idempotent(t *testing.T) {
	in := contiguityInputs()
	in.Protected = map[core.UnitID]bool{"C": true}

	first, err := frontier.Map(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := frontier.Map(in)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

// TestMap_UnknownReferences rejects cross-references outside the
// universe.
func TestMap_UnknownReferences(t *testing.T) {
	in := contiguityInputs()
	in.Edges = append(in.Edges, frontier.Edge{A: "A", B: "ghost", Kind: frontier.Land})
	_, err := frontier.Map(in)
	assert.ErrorIs(t, err, frontier.ErrUnknownUnit)

	in = contiguityInputs()
	in.Edges[0].Kind = "tunnel"
	_, err = frontier.Map(in)
	assert.ErrorIs(t, err, frontier.ErrBadEdgeKind)
}
