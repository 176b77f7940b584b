package allocate_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veralin/scrutiny/allocate"
	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/tie"
)

func options(ids ...core.OptionID) []core.OptionItem {
	out := make([]core.OptionItem, len(ids))
	for i, id := range ids {
		out[i] = core.OptionItem{ID: id, DisplayName: string(id), RankIndex: i}
	}
	return out
}

func scores(unit core.UnitID, m map[core.OptionID]int64) core.UnitScores {
	var valid int64
	for _, v := range m {
		valid += v
	}
	return core.UnitScores{UnitID: unit, Turnout: core.Turnout{ValidBallots: valid}, Scores: m}
}

func detResolver() *tie.Resolver {
	return &tie.Resolver{Policy: tie.DeterministicOrder}
}

// TestWinnerTakeAll covers power conservation, the magnitude guard, and
// tie routing.
func TestWinnerTakeAll(t *testing.T) {
	opts := options("A", "B", "C")
	us := scores("U1", map[core.OptionID]int64{"A": 10, "B": 30, "C": 20})

	res, err := allocate.WinnerTakeAll(1, us, opts, detResolver())
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Seats["B"])
	var sum int64
	nonzero := 0
	for _, v := range res.Seats {
		sum += v
		if v != 0 {
			nonzero++
		}
	}
	assert.Equal(t, int64(100), sum, "Σ power = 100")
	assert.Equal(t, 1, nonzero, "exactly one nonzero entry")
	assert.False(t, res.HadTie)

	_, err = allocate.WinnerTakeAll(2, us, opts, detResolver())
	assert.ErrorIs(t, err, allocate.ErrRequiresMagnitude1)

	tied := scores("U1", map[core.OptionID]int64{"A": 30, "B": 30, "C": 5})
	res, err = allocate.WinnerTakeAll(1, tied, opts, detResolver())
	require.NoError(t, err)
	assert.True(t, res.HadTie)
	assert.Equal(t, int64(100), res.Seats["A"], "deterministic order favors the canonical first")
	require.Len(t, res.TieEvents, 1)
	assert.Equal(t, []core.OptionID{"A", "B"}, res.TieEvents[0].Candidates)
}

// TestHighestAverages_KnownOutcomes pins classic D'Hondt and
// Sainte-Laguë distributions.
func TestHighestAverages_KnownOutcomes(t *testing.T) {
	opts := options("A", "B", "C")
	us := scores("U1", map[core.OptionID]int64{"A": 100, "B": 80, "C": 30})

	// D'Hondt, 8 seats: quotient table gives A=4, B=3, C=1.
	res, err := allocate.HighestAverages(allocate.DHondt, 8, us, opts, 0, detResolver())
	require.NoError(t, err)
	assert.Equal(t, map[core.OptionID]int64{"A": 4, "B": 3, "C": 1}, res.Seats)

	// Sainte-Laguë, 8 seats: odd divisors favor the small list: A=4, B=3, C=1.
	res, err = allocate.HighestAverages(allocate.SainteLague, 8, us, opts, 0, detResolver())
	require.NoError(t, err)
	assert.Equal(t, map[core.OptionID]int64{"A": 4, "B": 3, "C": 1}, res.Seats)
}

// TestAllocation_SeatConservation: for every PR method, Σ seats equals
// the magnitude for magnitudes 0..50 over randomized positive vectors.
func TestAllocation_SeatConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	opts := options("A", "B", "C", "D", "E")

	for mag := int64(0); mag <= 50; mag++ {
		m := make(map[core.OptionID]int64, len(opts))
		for _, o := range opts {
			m[o.ID] = 1 + rng.Int63n(10_000)
		}
		us := scores("U1", m)

		for _, d := range []allocate.Divisor{allocate.DHondt, allocate.SainteLague} {
			res, err := allocate.HighestAverages(d, mag, us, opts, 0, detResolver())
			require.NoError(t, err, "divisor %v magnitude %d", d, mag)
			var sum int64
			for _, v := range res.Seats {
				sum += v
			}
			require.Equal(t, mag, sum, "divisor %v", d)
		}
		for _, q := range []allocate.Quota{allocate.Hare, allocate.Droop, allocate.Imperiali} {
			res, err := allocate.LargestRemainder(q, mag, us, opts, 0)
			require.NoError(t, err, "quota %v magnitude %d", q, mag)
			var sum int64
			for _, v := range res.Seats {
				sum += v
			}
			require.Equal(t, mag, sum, "quota %v", q)
		}
	}
}

// TestThreshold_Monotonicity: raising the threshold never widens the
// eligible set (observed through awarded seats).
func TestThreshold_Monotonicity(t *testing.T) {
	opts := options("A", "B", "C", "D")
	us := scores("U1", map[core.OptionID]int64{"A": 500, "B": 300, "C": 150, "D": 50})

	eligibleAt := func(pct int64) map[core.OptionID]bool {
		res, err := allocate.HighestAverages(allocate.DHondt, 20, us, opts, pct, detResolver())
		if err != nil {
			return nil // nothing eligible
		}
		set := make(map[core.OptionID]bool)
		for id, s := range res.Seats {
			if s > 0 {
				set[id] = true
			}
		}
		return set
	}

	prev := eligibleAt(0)
	for pct := int64(1); pct <= 100; pct++ {
		cur := eligibleAt(pct)
		for id := range cur {
			assert.True(t, prev[id], "option %q appeared when threshold rose to %d%%", id, pct)
		}
		prev = cur
	}
}

// TestThreshold_Errors covers the NoEligibleOptions paths.
func TestThreshold_Errors(t *testing.T) {
	opts := options("A", "B")

	zero := scores("U1", map[core.OptionID]int64{"A": 0, "B": 0})
	_, err := allocate.HighestAverages(allocate.DHondt, 3, zero, opts, 0, detResolver())
	assert.ErrorIs(t, err, allocate.ErrNoEligibleOptions)

	us := scores("U1", map[core.OptionID]int64{"A": 10, "B": 9})
	_, err = allocate.LargestRemainder(allocate.Hare, 3, us, opts, 90)
	assert.ErrorIs(t, err, allocate.ErrNoEligibleOptions)

	_, err = allocate.HighestAverages(allocate.DHondt, -1, us, opts, 0, detResolver())
	assert.ErrorIs(t, err, allocate.ErrNegativeMagnitude)

	_, err = allocate.HighestAverages(allocate.DHondt, 3, us, opts, 101, detResolver())
	assert.ErrorIs(t, err, allocate.ErrBadThreshold)
}

// TestHighestAverages_Determinism: identical inputs with the
// deterministic policy yield identical maps across invocations.
func TestHighestAverages_Determinism(t *testing.T) {
	opts := options("P", "Q", "R", "S")
	us := scores("U1", map[core.OptionID]int64{"P": 40, "Q": 40, "R": 40, "S": 40})

	first, err := allocate.HighestAverages(allocate.SainteLague, 10, us, opts, 0, detResolver())
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := allocate.HighestAverages(allocate.SainteLague, 10, us, opts, 0, detResolver())
		require.NoError(t, err)
		require.Equal(t, first.Seats, again.Seats)
	}
	assert.True(t, first.HadTie, "all-equal scores must surface ties")
}

// TestHighestAverages_RandomTie: the random policy consumes the shared
// stream and reproduces with the seed.
func TestHighestAverages_RandomTie(t *testing.T) {
	opts := options("A", "B")
	us := scores("U1", map[core.OptionID]int64{"A": 10, "B": 10})

	run := func() (*allocate.Result, uint64) {
		s, err := tie.NewStream(2024)
		require.NoError(t, err)
		r := &tie.Resolver{Policy: tie.Random, Stream: s}
		res, err := allocate.HighestAverages(allocate.DHondt, 1, us, opts, 0, r)
		require.NoError(t, err)
		return res, res.TieEvents[0].WordIndex
	}
	r1, w1 := run()
	r2, w2 := run()
	assert.Equal(t, r1.Seats, r2.Seats)
	assert.Equal(t, w1, w2)

	// Missing stream is a configuration error, not a default.
	_, err := allocate.HighestAverages(allocate.DHondt, 1, us, opts, 0, &tie.Resolver{Policy: tie.Random})
	assert.ErrorIs(t, err, tie.ErrMissingStream)
}

// TestLargestRemainder_Quotas pins Hare/Droop behavior and the
// Imperiali over-award trim.
func TestLargestRemainder_Quotas(t *testing.T) {
	opts := options("A", "B", "C")
	us := scores("U1", map[core.OptionID]int64{"A": 47_000, "B": 16_000, "C": 15_800})

	// Hare quota 7880: floors A=5, B=2, C=2 sum 9; last seat goes to the
	// largest remainder (A, 7600).
	res, err := allocate.LargestRemainder(allocate.Hare, 10, us, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, map[core.OptionID]int64{"A": 6, "B": 2, "C": 2}, res.Seats)

	// Droop quota 7164: floors A=6, B=2, C=2 fill the house exactly.
	res, err = allocate.LargestRemainder(allocate.Droop, 10, us, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, map[core.OptionID]int64{"A": 6, "B": 2, "C": 2}, res.Seats)

	// Imperiali can overshoot; the trim walks remainder asc, score asc.
	over := scores("U2", map[core.OptionID]int64{"A": 60, "B": 60, "C": 60})
	res, err = allocate.LargestRemainder(allocate.Imperiali, 10, over, opts, 0)
	require.NoError(t, err)
	var sum int64
	for _, v := range res.Seats {
		sum += v
	}
	assert.Equal(t, int64(10), sum, "over-award trimmed back to the magnitude")
}

// TestLargestRemainder_ZeroQuota: a zero quota awards everything through
// remainders.
func TestLargestRemainder_ZeroQuota(t *testing.T) {
	opts := options("A", "B")
	us := scores("U1", map[core.OptionID]int64{"A": 3, "B": 1})

	// Hare with V=4, m=5 ⇒ quota 0; all floor seats 0, remainders are the
	// raw scores. Ranking A,B cycles A,B,A,B,A.
	res, err := allocate.LargestRemainder(allocate.Hare, 5, us, opts, 0)
	require.NoError(t, err)
	assert.Equal(t, map[core.OptionID]int64{"A": 3, "B": 2}, res.Seats)
}
