// This file implements winner-take-all allocation.
package allocate

import (
	"fmt"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/tie"
)

// WinnerTakeAll awards 100 power to the single highest-score option,
// zero to all others. The magnitude must be exactly 1
// (ErrRequiresMagnitude1). Exact ties go through the resolver.
//
// Complexity: O(n log n).
func WinnerTakeAll(magnitude int64, us core.UnitScores, options []core.OptionItem, r *tie.Resolver) (*Result, error) {
	if magnitude != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrRequiresMagnitude1, magnitude)
	}
	sorted := make([]core.OptionItem, len(options))
	copy(sorted, options)
	core.SortOptions(sorted)
	if len(sorted) == 0 {
		return nil, fmt.Errorf("%w: unit %q has no options", ErrNoEligibleOptions, us.UnitID)
	}

	best := tie.ArgmaxTies(len(sorted), func(i, j int) int {
		si, sj := us.Scores[sorted[i].ID], us.Scores[sorted[j].ID]
		switch {
		case si > sj:
			return 1
		case si < sj:
			return -1
		default:
			return 0
		}
	})

	res := &Result{Seats: make(map[core.OptionID]int64, len(sorted))}
	for _, o := range sorted {
		res.Seats[o.ID] = 0
	}

	winner := sorted[best[0]].ID
	if len(best) > 1 {
		cands := make([]core.OptionItem, len(best))
		for i, b := range best {
			cands[i] = sorted[b]
		}
		w, ev, err := r.Pick("allocate.winner_take_all", us.UnitID, cands)
		if err != nil {
			return nil, err
		}
		winner = w
		res.HadTie = true
		res.TieEvents = append(res.TieEvents, ev)
	}
	res.Seats[winner] = WinnerPower
	return res, nil
}
