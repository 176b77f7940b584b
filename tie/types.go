// This file declares the tie Policy enum, the audit Event record, and the
// sentinel errors of the package.
package tie

import (
	"errors"

	"github.com/veralin/scrutiny/core"
)

// Sentinel errors for tie resolution.
var (
	// ErrBadSeed indicates a negative seed was supplied to NewStream.
	ErrBadSeed = errors.New("tie: seed must be non-negative")

	// ErrNoCandidates indicates Pick was invoked with an empty candidate
	// set. Callers guarantee non-empty sets; this is a caller bug, never
	// masked with a default winner.
	ErrNoCandidates = errors.New("tie: empty candidate set")

	// ErrMissingStream indicates the Random policy was configured without
	// a seeded stream. A configuration error, reported rather than
	// silently defaulted.
	ErrMissingStream = errors.New("tie: random policy requires a seeded stream")

	// ErrBadPolicy indicates an unknown Policy value.
	ErrBadPolicy = errors.New("tie: unknown policy")
)

// Policy selects how a tie between two or more options is resolved.
// The set is closed; see the package doc for precedence rules.
type Policy int

const (
	// StatusQuo prefers the unit's designated status-quo option when it
	// is among the tied candidates, else falls through to
	// DeterministicOrder.
	StatusQuo Policy = iota

	// DeterministicOrder picks the candidate with the smallest canonical
	// (RankIndex, OptionID) key.
	DeterministicOrder

	// Random draws a uniform index from the shared seeded stream.
	Random
)

// String returns the policy name used in audit logs.
func (p Policy) String() string {
	switch p {
	case StatusQuo:
		return "status_quo"
	case DeterministicOrder:
		return "deterministic_order"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// Event is one audit-log entry: which decision tied, who was involved,
// who won, and — for random draws — the seed and the 1-based index of
// the pseudorandom word that decided it. Events are emitted by Pick and
// never persisted by this package.
type Event struct {
	// Kind names the decision that tied, e.g. "allocate.highest_averages".
	Kind string

	// UnitID is the unit the decision belongs to (empty for national
	// decisions).
	UnitID core.UnitID

	// Candidates lists the tied option ids in canonical order.
	Candidates []core.OptionID

	// Winner is the resolved option.
	Winner core.OptionID

	// Policy is the policy that decided the tie.
	Policy Policy

	// Seed is the stream seed; meaningful only when Policy is Random.
	Seed int64

	// WordIndex is the 1-based index of the last pseudorandom word
	// consumed for this draw; zero when no word was consumed.
	WordIndex uint64
}
