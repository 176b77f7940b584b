// Package core defines the identifier, registry, turnout and score types
// shared by every counting stage.
//
// 🚀 What lives here?
//
//	• OptionID / UnitID — opaque ASCII tokens, totally ordered by byte value
//	• OptionItem / Unit — the immutable option and unit registry entries
//	• Turnout / UnitScores — the tabulation output handed to allocation
//	• Registry — a validated, canonically sorted unit universe
//
// Canonical ordering is the load-bearing invariant of the whole library:
// any collection of options is ordered by (RankIndex, OptionID) and any
// collection of units by UnitID, so that every stage produces identical
// output regardless of map iteration order.
//
// All values are constructed once per run (by the loader boundary) and are
// immutable thereafter; stages borrow them and return fresh outputs.
//
// Errors:
//
//	ErrBadID            - identifier is empty, too long, or has bad chars.
//	ErrBadDisplayName   - display name is empty or exceeds 200 characters.
//	ErrNoOptions        - a unit carries no options.
//	ErrDuplicateOption  - the same OptionID appears twice in one unit.
//	ErrDuplicateRank    - the same RankIndex appears twice in one unit.
//	ErrNegativeTurnout  - a turnout counter is negative.
//	ErrDuplicateUnit    - the same UnitID appears twice in one registry.
//	ErrUnitNotFound     - a registry lookup referenced an unknown unit.
package core
