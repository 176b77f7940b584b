// Package tabulate converts raw per-unit ballot observations into the
// canonical per-option integer score map (core.UnitScores), for five
// ballot families:
//
//	• Plurality — one count per option
//	• Approval  — one approval count per option, each ≤ valid ballots
//	• Score     — one score sum per option, capped by scale × valid
//	• IRV       — ranked ballots, instant-runoff with exhaustion tracking
//	• Schulze   — pairwise preference matrix, strongest-path Condorcet
//
// Shared invariants across all five:
//
//   - every key in the output score map is a recognized option of the
//     unit; unrecognized input keys are ErrUnknownOption, never dropped
//   - options absent from the input default to zero
//   - counts are non-negative; violations are structured errors and the
//     unit is not tabulated
//
// IRV and Schulze return richer results (round logs, winners, rankings)
// alongside the UnitScores that feeds allocation. Elimination ties in
// IRV are broken by canonical (RankIndex, OptionID) order; no random
// draw is ever consumed here.
//
// Errors:
//
//	ErrUnknownOption       - input references an option the unit lacks.
//	ErrNegativeCount       - a raw count or multiplicity is negative.
//	ErrOptionExceedsValid  - approvals for one option exceed valid ballots.
//	ErrOptionExceedsCap    - a score sum exceeds scale × valid ballots.
//	ErrInconsistentTurnout - raw observations contradict the turnout.
package tabulate
