// This file implements the three direct-count families: plurality,
// approval, and score.
package tabulate

import (
	"fmt"
	"math/bits"

	"github.com/veralin/scrutiny/core"
)

// newScores builds the canonical score map: one zeroed entry per
// registered option, then copies raw in after validating keys and signs.
func newScores(unitID core.UnitID, turnout core.Turnout, options []core.OptionItem, raw map[core.OptionID]int64) (core.UnitScores, error) {
	if err := turnout.Validate(); err != nil {
		return core.UnitScores{}, err
	}
	scores := make(map[core.OptionID]int64, len(options))
	known := make(map[core.OptionID]struct{}, len(options))
	for _, o := range options {
		scores[o.ID] = 0
		known[o.ID] = struct{}{}
	}
	for id, v := range raw {
		if _, ok := known[id]; !ok {
			return core.UnitScores{}, fmt.Errorf("%w: %q in unit %q", ErrUnknownOption, id, unitID)
		}
		if v < 0 {
			return core.UnitScores{}, fmt.Errorf("%w: %q in unit %q", ErrNegativeCount, id, unitID)
		}
		scores[id] = v
	}
	return core.UnitScores{UnitID: unitID, Turnout: turnout, Scores: scores}, nil
}

// Plurality tabulates one direct count per option.
//
// Complexity: O(n) in the option count.
func Plurality(unitID core.UnitID, counts map[core.OptionID]int64, turnout core.Turnout, options []core.OptionItem) (core.UnitScores, error) {
	return newScores(unitID, turnout, options, counts)
}

// Approval tabulates one approval count per option. A single ballot may
// approve several options, so the sum over options may exceed the valid
// ballot count — but no single option may (ErrOptionExceedsValid).
//
// Complexity: O(n).
func Approval(unitID core.UnitID, approvals map[core.OptionID]int64, turnout core.Turnout, options []core.OptionItem) (core.UnitScores, error) {
	us, err := newScores(unitID, turnout, options, approvals)
	if err != nil {
		return core.UnitScores{}, err
	}
	for _, o := range options {
		if us.Scores[o.ID] > turnout.ValidBallots {
			return core.UnitScores{}, fmt.Errorf("%w: %q has %d approvals, %d valid ballots in unit %q",
				ErrOptionExceedsValid, o.ID, us.Scores[o.ID], turnout.ValidBallots, unitID)
		}
	}
	return us, nil
}

// Score tabulates one score sum per option on a 0..maxScale ballot
// scale. Each option's sum is capped at maxScale × valid ballots
// (ErrOptionExceedsCap, checked without overflow); with zero valid
// ballots every sum must be zero (ErrInconsistentTurnout).
//
// Complexity: O(n).
func Score(unitID core.UnitID, sums map[core.OptionID]int64, maxScale int64, turnout core.Turnout, options []core.OptionItem) (core.UnitScores, error) {
	if maxScale <= 0 {
		return core.UnitScores{}, fmt.Errorf("%w: %d", ErrBadScale, maxScale)
	}
	us, err := newScores(unitID, turnout, options, sums)
	if err != nil {
		return core.UnitScores{}, err
	}
	for _, o := range options {
		sum := us.Scores[o.ID]
		if turnout.ValidBallots == 0 && sum != 0 {
			return core.UnitScores{}, fmt.Errorf("%w: %q has sum %d with zero valid ballots in unit %q",
				ErrInconsistentTurnout, o.ID, sum, unitID)
		}
		// sum ≤ maxScale·valid, compared in 128 bits.
		capHi, capLo := bits.Mul64(uint64(maxScale), uint64(turnout.ValidBallots))
		if capHi == 0 && uint64(sum) > capLo {
			return core.UnitScores{}, fmt.Errorf("%w: %q has sum %d, cap %d in unit %q",
				ErrOptionExceedsCap, o.ID, sum, capLo, unitID)
		}
	}
	return us, nil
}
