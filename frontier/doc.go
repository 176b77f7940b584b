// Package frontier classifies every unit into a status band from its
// observed support ratio, then analyses graph contiguity per status and
// emits the mediation, enclave and protected-override flags.
//
// Pipeline for one run (state-free, single pass):
//
//	unassigned → banded → (protected-override?) → contiguity → final
//
//  1. mode "none" is a fast path: every unit's status is the literal
//     string "none", no flags, no graph work.
//  2. band assignment works in integer tenths of a percent:
//     ratio = ⌊1000·num/den⌋ (0 when den = 0); the first matching of
//     the non-overlapping bands wins (listing order), else "none".
//  3. protected units with a non-"none" status are forced to "none"
//     BEFORE contiguity, so a blocked unit can never artificially
//     connect a component.
//  4. contiguity runs per status over the subgraph induced by the
//     admissible edge kinds (land/bridge/water; the island-ferry toggle
//     additionally admits bridge and water). Components come from
//     breadth-first search with seed vertices visited in ascending
//     unit-id order, so component numbering is deterministic.
//     ContiguityOK marks units with at least one same-status admissible
//     neighbor; a status split across several components flags every
//     member for mediation.
//  5. a non-"none" unit is an enclave when it has at least one
//     admissible neighbor and none of them share its status — one
//     neighbor suffices.
//
// The adjacency structure is rebuilt from the static edge list on every
// run, filtered by the current admissible set, so parameter changes can
// never leave stale edges behind.
//
// Running Map twice on the same inputs yields identical output: band
// counts, flags and component numbering included.
//
// Errors:
//
//	ErrBadBands    - bands overlapping, inverted, or out of range.
//	ErrUnknownUnit - an edge, ratio or protected entry references a unit
//	                 outside the universe.
//	ErrBadEdgeKind - an edge kind outside land/bridge/water.
package frontier
