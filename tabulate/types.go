// This file declares the sentinel errors and the input/result types of
// the ranked ballot families.
package tabulate

import (
	"errors"

	"github.com/veralin/scrutiny/core"
)

// Sentinel errors for tabulation. All are input-shape errors: the raw
// counts violate a stated per-family invariant and the unit is not
// tabulated.
var (
	// ErrUnknownOption indicates input referenced an option the unit
	// does not carry.
	ErrUnknownOption = errors.New("tabulate: unknown option")

	// ErrNegativeCount indicates a negative raw count or multiplicity.
	ErrNegativeCount = errors.New("tabulate: negative count")

	// ErrOptionExceedsValid indicates per-option approvals above the
	// unit's valid-ballot count.
	ErrOptionExceedsValid = errors.New("tabulate: option approvals exceed valid ballots")

	// ErrOptionExceedsCap indicates a score sum above scale × valid.
	ErrOptionExceedsCap = errors.New("tabulate: option score exceeds cap")

	// ErrInconsistentTurnout indicates raw observations that contradict
	// the reported turnout (e.g. nonzero sums with zero valid ballots).
	ErrInconsistentTurnout = errors.New("tabulate: observations inconsistent with turnout")

	// ErrBadScale indicates a non-positive score scale.
	ErrBadScale = errors.New("tabulate: score scale must be positive")
)

// RankedGroup is one group of identical ranked ballots: the preference
// list (most preferred first) and how many ballots carry it.
type RankedGroup struct {
	Ranking []core.OptionID
	Count   int64
}

// IRVRound is the audit record of one elimination round.
type IRVRound struct {
	// Number is the 1-based round number.
	Number int

	// Tallies maps each continuing option to its first-preference tally
	// this round.
	Tallies map[core.OptionID]int64

	// Denominator is the continuing denominator the majority test used
	// this round.
	Denominator int64

	// Eliminated is the option removed at the end of the round; empty
	// when the round was terminal.
	Eliminated core.OptionID

	// Transfers maps receiving options to the multiplicity routed to
	// them from the eliminated option.
	Transfers map[core.OptionID]int64

	// Exhausted is the multiplicity with no surviving preference this
	// round; it is subtracted from the denominator before the next one.
	Exhausted int64
}

// IRVResult is the full instant-runoff outcome for one unit.
type IRVResult struct {
	// Winner is the elected option.
	Winner core.OptionID

	// ByMajority is true when the winner crossed a strict majority of
	// the continuing denominator (false for wins by exhaustion and for
	// the zero-valid-ballots degenerate case).
	ByMajority bool

	// Rounds holds one record per elimination round, in order. A
	// first-scan majority and the zero-valid-ballots degenerate case
	// both log zero rounds.
	Rounds []IRVRound

	// FinalDenominator is the continuing denominator the terminal
	// majority test ran against (valid ballots minus cumulative
	// exhausted).
	FinalDenominator int64

	// Scores reports the final-round tallies for all options in
	// canonical order, eliminated options as zero. This is the
	// UnitScores handed to allocation.
	Scores core.UnitScores
}

// Pairwise is a complete pairwise preference matrix: Pairwise[a][b] is
// the count of ballots preferring a over b. The diagonal is fixed at
// zero; missing entries default to zero.
type Pairwise map[core.OptionID]map[core.OptionID]int64

// SchulzeResult is the Condorcet (Schulze) outcome for one unit.
type SchulzeResult struct {
	// Winners lists every option undefeated under the strongest-path
	// relation, in canonical order. Zero, one, or several entries are
	// all valid outcomes; cycles can yield several.
	Winners []core.OptionID

	// Ranking is the full ranking: descending strongest-path dominance,
	// ties broken by canonical order.
	Ranking []core.OptionID

	// Scores reports each option's pairwise-win count under the
	// strongest-path relation; the UnitScores handed to allocation.
	Scores core.UnitScores
}
