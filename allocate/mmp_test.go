package allocate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veralin/scrutiny/allocate"
	"github.com/veralin/scrutiny/core"
)

// TestMMP_HouseTarget pins the round-half-to-even house derivation.
func TestMMP_HouseTarget(t *testing.T) {
	opts := options("A", "B")
	local := map[core.OptionID]int64{"A": 30, "B": 20}
	national := map[core.OptionID]int64{"A": 600, "B": 400}

	// L=50, p=50 ⇒ T = 50·100/50 = 100 exactly.
	res, err := allocate.MMP(allocate.MMPConfig{Divisor: allocate.SainteLague, Policy: allocate.AllowOverhang, TopUpSharePct: 50}, local, national, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.TargetHouse)
	assert.Equal(t, int64(60), res.Targets["A"])
	assert.Equal(t, int64(40), res.Targets["B"])
	assert.Equal(t, int64(30), res.TopUps["A"], "top-up fills the deficit exactly")
	assert.Equal(t, int64(20), res.TopUps["B"])
	assert.Equal(t, int64(100), res.EffectiveHouse)
}

// TestMMP_AllowOverhang: overhang seats stay and grow the effective
// house.
func TestMMP_AllowOverhang(t *testing.T) {
	opts := options("A", "B")
	// A swept far more local seats than its vote share supports.
	local := map[core.OptionID]int64{"A": 55, "B": 5}
	national := map[core.OptionID]int64{"A": 500, "B": 500}

	res, err := allocate.MMP(allocate.MMPConfig{Divisor: allocate.SainteLague, Policy: allocate.AllowOverhang, TopUpSharePct: 40}, local, national, opts)
	require.NoError(t, err)
	// L=60, p=40 ⇒ T=100; even votes ⇒ targets 50/50.
	assert.Equal(t, int64(100), res.TargetHouse)
	assert.Equal(t, int64(5), res.Overhang["A"])
	assert.Equal(t, int64(0), res.TopUps["A"])
	assert.Equal(t, int64(45), res.TopUps["B"])
	assert.Equal(t, int64(105), res.EffectiveHouse, "house grows by the overhang")
}

// TestMMP_CompensateOthers: fixed house, pool only to deficit options,
// capped at each option's deficit.
func TestMMP_CompensateOthers(t *testing.T) {
	opts := options("A", "B", "C")
	local := map[core.OptionID]int64{"A": 26, "B": 4, "C": 0}
	national := map[core.OptionID]int64{"A": 500, "B": 300, "C": 200}

	res, err := allocate.MMP(allocate.MMPConfig{Divisor: allocate.SainteLague, Policy: allocate.CompensateOthers, TopUpSharePct: 40}, local, national, opts)
	require.NoError(t, err)
	// L=30, p=40 ⇒ T=50; targets 25/15/10; A overhangs by 1.
	assert.Equal(t, int64(50), res.TargetHouse)
	assert.Equal(t, int64(1), res.Overhang["A"])
	assert.Equal(t, int64(0), res.TopUps["A"], "overhang option receives nothing")
	// Pool = 50−30 = 20, split by the Sainte-Laguë draw under the
	// per-option deficit caps (11 for B, 10 for C).
	assert.Equal(t, int64(10), res.TopUps["B"])
	assert.Equal(t, int64(10), res.TopUps["C"])
	assert.Equal(t, int64(50), res.EffectiveHouse)
}

// TestMMP_AddSeats: the house grows until every voted option's target
// covers its local seats.
func TestMMP_AddSeats(t *testing.T) {
	opts := options("A", "B")
	local := map[core.OptionID]int64{"A": 55, "B": 5}
	national := map[core.OptionID]int64{"A": 500, "B": 500}

	res, err := allocate.MMP(allocate.MMPConfig{Divisor: allocate.SainteLague, Policy: allocate.AddSeats, TopUpSharePct: 40}, local, national, opts)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Targets["A"], local["A"], "growth condition met")
	assert.GreaterOrEqual(t, res.TargetHouse, int64(100), "house grew past the initial target")
	assert.Equal(t, res.EffectiveHouse, res.TargetHouse, "no overhang remains for voted options")
	assert.Zero(t, res.Overhang["A"])
}

// TestMMP_Errors covers the configuration guards.
func TestMMP_Errors(t *testing.T) {
	opts := options("A")

	_, err := allocate.MMP(allocate.MMPConfig{TopUpSharePct: 100}, nil, nil, opts)
	assert.ErrorIs(t, err, allocate.ErrBadTopUpShare)

	_, err = allocate.MMP(allocate.MMPConfig{TopUpSharePct: 10}, map[core.OptionID]int64{"A": -1}, map[core.OptionID]int64{"A": 5}, opts)
	assert.ErrorIs(t, err, allocate.ErrNegativeSeats)

	_, err = allocate.MMP(allocate.MMPConfig{TopUpSharePct: 10}, map[core.OptionID]int64{"A": 1}, map[core.OptionID]int64{"A": 0}, opts)
	assert.ErrorIs(t, err, allocate.ErrNoEligibleOptions)
}
