// This file implements the entry-threshold filter shared by every
// proportional method.
package allocate

import (
	"fmt"
	"math"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/tie"
)

// satAdd adds non-negative a and b, saturating at MaxInt64.
func satAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// eligible applies the entry threshold: with natural total T = Σ scores,
// option o survives iff 100·score(o) ≥ thresholdPct·T (128-bit-safe).
// The surviving options are returned in canonical order together with T.
// A zero total, or an empty survivor set, returns ErrNoEligibleOptions —
// the callers only invoke the filter when magnitude > 0.
//
// Complexity: O(n log n) for the canonical sort.
func eligible(us core.UnitScores, options []core.OptionItem, thresholdPct int64) ([]core.OptionItem, int64, error) {
	if thresholdPct < 0 || thresholdPct > 100 {
		return nil, 0, fmt.Errorf("%w: %d", ErrBadThreshold, thresholdPct)
	}
	sorted := make([]core.OptionItem, len(options))
	copy(sorted, options)
	core.SortOptions(sorted)

	var total int64
	for _, o := range sorted {
		total = satAdd(total, us.Scores[o.ID])
	}
	if total == 0 {
		return nil, 0, fmt.Errorf("%w: unit %q has zero total score", ErrNoEligibleOptions, us.UnitID)
	}

	kept := make([]core.OptionItem, 0, len(sorted))
	for _, o := range sorted {
		score := us.Scores[o.ID]
		// 100·score ≥ pct·total ⟺ score/total ≥ pct/100.
		if tie.CompareRatios(uint64(score), uint64(total), uint64(thresholdPct), 100) >= 0 {
			kept = append(kept, o)
		}
	}
	if len(kept) == 0 {
		return nil, 0, fmt.Errorf("%w: threshold %d%% eliminated every option in unit %q",
			ErrNoEligibleOptions, thresholdPct, us.UnitID)
	}
	return kept, total, nil
}
