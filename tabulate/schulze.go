// This file implements ranked-choice Condorcet tabulation under the
// Schulze (strongest-path) rule.
package tabulate

import (
	"fmt"
	"sort"

	"github.com/veralin/scrutiny/core"
)

// Schulze tabulates a complete pairwise preference matrix.
//
// The strongest-path matrix P starts at P[a][b] = d[a][b] when
// d[a][b] > d[b][a] (else 0), then relaxes through every intermediate
// option k: P[a][b] = max(P[a][b], min(P[a][k], P[k][b])). A Condorcet
// winner is any option a with P[a][b] ≥ P[b][a] for every other b —
// zero, one, or several winners are all valid outcomes; cycles can
// yield several. The full ranking sorts options by descending net
// dominance Σ(P[a][b] − P[b][a]), ties broken by canonical order.
//
// Complexity: O(n³) in the option count.
func Schulze(unitID core.UnitID, pairwise Pairwise, turnout core.Turnout, options []core.OptionItem) (*SchulzeResult, error) {
	if err := turnout.Validate(); err != nil {
		return nil, err
	}
	opts := make([]core.OptionItem, len(options))
	copy(opts, options)
	core.SortOptions(opts)

	n := len(opts)
	idx := make(map[core.OptionID]int, n)
	for i, o := range opts {
		idx[o.ID] = i
	}

	// Densify and validate the input matrix.
	d := make([][]int64, n)
	for i := range d {
		d[i] = make([]int64, n)
	}
	for a, row := range pairwise {
		ia, ok := idx[a]
		if !ok {
			return nil, fmt.Errorf("%w: %q in pairwise matrix of unit %q", ErrUnknownOption, a, unitID)
		}
		for b, v := range row {
			ib, ok := idx[b]
			if !ok {
				return nil, fmt.Errorf("%w: %q in pairwise matrix of unit %q", ErrUnknownOption, b, unitID)
			}
			if v < 0 {
				return nil, fmt.Errorf("%w: pairwise %q>%q in unit %q", ErrNegativeCount, a, b, unitID)
			}
			if ia == ib && v != 0 {
				return nil, fmt.Errorf("%w: nonzero diagonal %q in unit %q", ErrInconsistentTurnout, a, unitID)
			}
			d[ia][ib] = v
		}
	}

	// Strongest paths.
	p := make([][]int64, n)
	for i := range p {
		p[i] = make([]int64, n)
		for j := range p[i] {
			if i != j && d[i][j] > d[j][i] {
				p[i][j] = d[i][j]
			}
		}
	}
	for k := 0; k < n; k++ {
		for a := 0; a < n; a++ {
			if a == k {
				continue
			}
			for b := 0; b < n; b++ {
				if b == a || b == k {
					continue
				}
				if s := min64(p[a][k], p[k][b]); s > p[a][b] {
					p[a][b] = s
				}
			}
		}
	}

	// Winners, wins and net dominance.
	res := &SchulzeResult{}
	wins := make([]int64, n)
	dominance := make([]int64, n)
	for a := 0; a < n; a++ {
		undefeated := true
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			if p[a][b] < p[b][a] {
				undefeated = false
			}
			if p[a][b] > p[b][a] {
				wins[a]++
			}
			dominance[a] += p[a][b] - p[b][a]
		}
		if undefeated {
			res.Winners = append(res.Winners, opts[a].ID)
		}
	}

	// Full ranking: dominance desc, canonical order asc.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return dominance[order[x]] > dominance[order[y]]
	})
	res.Ranking = make([]core.OptionID, n)
	for i, o := range order {
		res.Ranking[i] = opts[o].ID
	}

	scores := make(map[core.OptionID]int64, n)
	for i, o := range opts {
		scores[o.ID] = wins[i]
	}
	res.Scores = core.UnitScores{UnitID: unitID, Turnout: turnout, Scores: scores}
	return res, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
