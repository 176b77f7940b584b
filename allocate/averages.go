// This file implements highest-averages allocation: D'Hondt and
// Sainte-Laguë.
package allocate

import (
	"fmt"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/tie"
)

// divisorFor returns the divisor for an option currently holding s
// seats: s+1 for D'Hondt, 2s+1 for Sainte-Laguë.
func divisorFor(d Divisor, s int64) (int64, error) {
	switch d {
	case DHondt:
		return s + 1, nil
	case SainteLague:
		return 2*s + 1, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrBadDivisor, int(d))
	}
}

// HighestAverages awards seats one round at a time: each round goes to
// the eligible option maximizing score/divisor(seats so far), compared
// by exact cross-multiplication. All options tied at the round maximum
// are collected and — if more than one survives — resolved through r.
//
// Magnitude 0 returns an all-zero distribution without consulting the
// threshold. Σ seats equals magnitude exactly.
//
// Complexity: O(magnitude × n) comparisons.
func HighestAverages(d Divisor, magnitude int64, us core.UnitScores, options []core.OptionItem, thresholdPct int64, r *tie.Resolver) (*Result, error) {
	if magnitude < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeMagnitude, magnitude)
	}
	if _, err := divisorFor(d, 0); err != nil {
		return nil, err
	}
	res := &Result{Seats: make(map[core.OptionID]int64, len(options))}
	if magnitude == 0 {
		for _, o := range options {
			res.Seats[o.ID] = 0
		}
		return res, nil
	}

	kept, _, err := eligible(us, options, thresholdPct)
	if err != nil {
		return nil, err
	}
	for _, o := range options {
		res.Seats[o.ID] = 0
	}

	seats := make([]int64, len(kept))
	kind := "allocate.highest_averages." + d.String()
	for round := int64(0); round < magnitude; round++ {
		best := tie.ArgmaxTies(len(kept), func(i, j int) int {
			di, _ := divisorFor(d, seats[i])
			dj, _ := divisorFor(d, seats[j])
			return tie.CompareRatios(
				uint64(us.Scores[kept[i].ID]), uint64(di),
				uint64(us.Scores[kept[j].ID]), uint64(dj),
			)
		})

		pick := best[0]
		if len(best) > 1 {
			cands := make([]core.OptionItem, len(best))
			for i, b := range best {
				cands[i] = kept[b]
			}
			w, ev, err := r.Pick(kind, us.UnitID, cands)
			if err != nil {
				return nil, err
			}
			for _, b := range best {
				if kept[b].ID == w {
					pick = b
					break
				}
			}
			res.HadTie = true
			res.TieEvents = append(res.TieEvents, ev)
		}
		seats[pick]++
	}

	for i, o := range kept {
		res.Seats[o.ID] = seats[i]
	}
	return res, nil
}
