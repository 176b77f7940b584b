// This file implements ranked-choice instant-runoff (IRV) tabulation.
package tabulate

import (
	"fmt"

	"github.com/veralin/scrutiny/core"
)

// irvState carries the mutable per-round bookkeeping.
type irvState struct {
	unitID     core.UnitID
	options    []core.OptionItem // canonical order
	continuing map[core.OptionID]bool
	groups     []RankedGroup
	denom      int64 // continuing denominator
}

// IRV tabulates ranked ballots by instant runoff.
//
// Each round tallies every group's first continuing preference against
// the continuing denominator (initially valid ballots). A strict
// majority wins; a lone survivor wins by exhaustion; otherwise the
// lowest-tallied option is eliminated (canonical order among tied
// lowest) and its ballots are routed to their next surviving preference
// or exhausted, shrinking the denominator for the next round.
//
// Zero valid ballots is a defined terminal state, not an error: the
// first option in canonical order wins with no rounds logged.
//
// The round loop is bounded by the option count; it cannot spin.
//
// Complexity: O(rounds × Σ ranking lengths), rounds ≤ options.
func IRV(unitID core.UnitID, groups []RankedGroup, turnout core.Turnout, options []core.OptionItem) (*IRVResult, error) {
	if err := turnout.Validate(); err != nil {
		return nil, err
	}
	opts := make([]core.OptionItem, len(options))
	copy(opts, options)
	core.SortOptions(opts)

	known := make(map[core.OptionID]struct{}, len(opts))
	for _, o := range opts {
		known[o.ID] = struct{}{}
	}
	var ballots int64
	for _, g := range groups {
		if g.Count < 0 {
			return nil, fmt.Errorf("%w: group multiplicity %d in unit %q", ErrNegativeCount, g.Count, unitID)
		}
		for _, id := range g.Ranking {
			if _, ok := known[id]; !ok {
				return nil, fmt.Errorf("%w: %q in ranking of unit %q", ErrUnknownOption, id, unitID)
			}
		}
		ballots += g.Count
	}
	if ballots > turnout.ValidBallots {
		return nil, fmt.Errorf("%w: %d ranked ballots, %d valid in unit %q",
			ErrInconsistentTurnout, ballots, turnout.ValidBallots, unitID)
	}

	// Degenerate terminal state: no valid ballots, no rounds.
	if turnout.ValidBallots == 0 {
		zero := make(map[core.OptionID]int64, len(opts))
		for _, o := range opts {
			zero[o.ID] = 0
		}
		return &IRVResult{
			Winner: opts[0].ID,
			Scores: core.UnitScores{UnitID: unitID, Turnout: turnout, Scores: zero},
		}, nil
	}

	st := &irvState{
		unitID:     unitID,
		options:    opts,
		continuing: make(map[core.OptionID]bool, len(opts)),
		groups:     groups,
		denom:      turnout.ValidBallots,
	}
	for _, o := range opts {
		st.continuing[o.ID] = true
	}
	return st.run(turnout)
}

// firstContinuing returns the group's first continuing preference, or
// false when the ballot is exhausted.
func (st *irvState) firstContinuing(g RankedGroup) (core.OptionID, bool) {
	for _, id := range g.Ranking {
		if st.continuing[id] {
			return id, true
		}
	}
	return "", false
}

// tally computes first-preference tallies over continuing options.
func (st *irvState) tally() map[core.OptionID]int64 {
	t := make(map[core.OptionID]int64, len(st.options))
	for _, o := range st.options {
		if st.continuing[o.ID] {
			t[o.ID] = 0
		}
	}
	for _, g := range st.groups {
		if id, ok := st.firstContinuing(g); ok {
			t[id] += g.Count
		}
	}
	return t
}

// lowest returns the continuing option with the smallest tally,
// canonical order breaking ties (the canonically first of the tied
// lowest is eliminated).
func (st *irvState) lowest(tallies map[core.OptionID]int64) core.OptionID {
	var loser core.OptionID
	first := true
	var low int64
	for _, o := range st.options { // canonical scan fixes the tie-break
		if !st.continuing[o.ID] {
			continue
		}
		if first || tallies[o.ID] < low {
			first = false
			low = tallies[o.ID]
			loser = o.ID
		}
	}
	return loser
}

// run executes rounds until a terminal state and assembles the result.
func (st *irvState) run(turnout core.Turnout) (*IRVResult, error) {
	res := &IRVResult{}
	for round := 1; ; round++ {
		tallies := st.tally()

		// Strict majority of the continuing denominator?
		var winner core.OptionID
		for _, o := range st.options {
			if st.continuing[o.ID] && 2*tallies[o.ID] > st.denom {
				winner = o.ID
				break
			}
		}
		survivors := 0
		var sole core.OptionID
		for _, o := range st.options {
			if st.continuing[o.ID] {
				survivors++
				sole = o.ID
			}
		}
		switch {
		case winner != "":
			res.Winner = winner
			res.ByMajority = true
		case survivors == 1:
			res.Winner = sole
		default:
			// Eliminate and transfer.
			loser := st.lowest(tallies)
			st.continuing[loser] = false
			rec := IRVRound{
				Number:      round,
				Tallies:     tallies,
				Denominator: st.denom,
				Eliminated:  loser,
				Transfers:   make(map[core.OptionID]int64),
			}
			for _, g := range st.groups {
				// Only groups currently allocated to the loser move.
				first, ok := firstAmong(g, func(id core.OptionID) bool {
					return st.continuing[id] || id == loser
				})
				if !ok || first != loser {
					continue
				}
				if next, ok := st.firstContinuing(g); ok {
					rec.Transfers[next] += g.Count
				} else {
					rec.Exhausted += g.Count
				}
			}
			st.denom -= rec.Exhausted
			res.Rounds = append(res.Rounds, rec)
			continue
		}

		// Terminal: final-round tallies for all options, eliminated as 0.
		res.FinalDenominator = st.denom
		final := make(map[core.OptionID]int64, len(st.options))
		for _, o := range st.options {
			final[o.ID] = tallies[o.ID] // missing (eliminated) keys read 0
		}
		res.Scores = core.UnitScores{UnitID: st.unitID, Turnout: turnout, Scores: final}
		return res, nil
	}
}

// firstAmong returns the first option in the ranking satisfying keep.
func firstAmong(g RankedGroup, keep func(core.OptionID) bool) (core.OptionID, bool) {
	for _, id := range g.Ranking {
		if keep(id) {
			return id, true
		}
	}
	return "", false
}
