// This file implements largest-remainder allocation with the Hare,
// Droop and Imperiali quotas.
package allocate

import (
	"fmt"
	"sort"

	"github.com/veralin/scrutiny/core"
)

// quotaFor computes the whole-seat quota from total votes v and
// magnitude m.
func quotaFor(q Quota, v, m int64) (int64, error) {
	switch q {
	case Hare:
		return v / m, nil
	case Droop:
		return v/(m+1) + 1, nil
	case Imperiali:
		return v / (m + 2), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrBadQuota, int(q))
	}
}

// lrEntry is one eligible option's floor seats and remainder.
type lrEntry struct {
	opt       core.OptionItem
	score     int64
	seats     int64
	remainder int64
}

// LargestRemainder allocates by quota and remainder. Each eligible
// option first receives ⌊score/q⌋ seats (0 when q = 0). A shortfall is
// topped up one seat at a time down the ranking (remainder desc, raw
// score desc, canonical order asc), cycling when the ranking runs out.
// An Imperiali over-award is trimmed one seat at a time up the reverse
// ranking (remainder asc, raw score asc, canonical order asc), never
// taking an option below zero.
//
// The remainder ranking is fully deterministic — its last key is the
// canonical order — so no tie resolver is consulted.
//
// Complexity: O(n log n + |Σ seats − magnitude|).
func LargestRemainder(q Quota, magnitude int64, us core.UnitScores, options []core.OptionItem, thresholdPct int64) (*Result, error) {
	if magnitude < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeMagnitude, magnitude)
	}
	if _, err := quotaFor(q, 0, 1); err != nil {
		return nil, err
	}
	res := &Result{Seats: make(map[core.OptionID]int64, len(options))}
	for _, o := range options {
		res.Seats[o.ID] = 0
	}
	if magnitude == 0 {
		return res, nil
	}

	kept, total, err := eligible(us, options, thresholdPct)
	if err != nil {
		return nil, err
	}

	quota, err := quotaFor(q, total, magnitude)
	if err != nil {
		return nil, err
	}

	entries := make([]lrEntry, len(kept))
	var allocated int64
	for i, o := range kept {
		score := us.Scores[o.ID]
		e := lrEntry{opt: o, score: score}
		if quota > 0 {
			e.seats = score / quota
			e.remainder = score % quota
		} else {
			e.remainder = score
		}
		allocated += e.seats
		entries[i] = e
	}

	switch {
	case allocated < magnitude:
		// Top-up ranking: remainder desc, score desc, canonical asc.
		ranked := make([]*lrEntry, len(entries))
		for i := range entries {
			ranked[i] = &entries[i]
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if a.remainder != b.remainder {
				return a.remainder > b.remainder
			}
			if a.score != b.score {
				return a.score > b.score
			}
			return core.CompareOptions(a.opt, b.opt) < 0
		})
		for i := 0; allocated < magnitude; i = (i + 1) % len(ranked) {
			ranked[i].seats++
			allocated++
		}

	case allocated > magnitude:
		// Trim ranking: remainder asc, score asc, canonical asc.
		ranked := make([]*lrEntry, len(entries))
		for i := range entries {
			ranked[i] = &entries[i]
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if a.remainder != b.remainder {
				return a.remainder < b.remainder
			}
			if a.score != b.score {
				return a.score < b.score
			}
			return core.CompareOptions(a.opt, b.opt) < 0
		})
		for i := 0; allocated > magnitude; i = (i + 1) % len(ranked) {
			if ranked[i].seats == 0 {
				continue // never below zero
			}
			ranked[i].seats--
			allocated--
		}
	}

	for _, e := range entries {
		res.Seats[e.opt.ID] = e.seats
	}
	return res, nil
}
