// This file declares the Resolver: exactly one winner out of a tied
// candidate set, plus the audit Event describing how it was picked.
package tie

import (
	"github.com/veralin/scrutiny/core"
)

// Resolver applies the configured tie Policy to candidate sets. One
// Resolver (and one Stream) serves a whole run, so random draw order is
// a single audited sequence.
type Resolver struct {
	// Policy selects the resolution rule.
	Policy Policy

	// StatusQuoOption is the designated status-quo option consulted by
	// the StatusQuo policy.
	StatusQuoOption core.OptionID

	// Stream is the shared seeded stream; required when Policy is Random.
	Stream *Stream
}

// Pick resolves one tie: given a non-empty candidate set, it returns the
// winning option id and an audit Event. kind names the decision for the
// log; unitID may be empty for national decisions.
//
// Errors: ErrNoCandidates for an empty set (caller bug),
// ErrMissingStream when Policy is Random and no stream is configured,
// ErrBadPolicy for an unknown policy value.
//
// Complexity: O(n) in the candidate count.
func (r *Resolver) Pick(kind string, unitID core.UnitID, candidates []core.OptionItem) (core.OptionID, Event, error) {
	if len(candidates) == 0 {
		return "", Event{}, ErrNoCandidates
	}

	sorted := make([]core.OptionItem, len(candidates))
	copy(sorted, candidates)
	core.SortOptions(sorted)

	ev := Event{
		Kind:       kind,
		UnitID:     unitID,
		Policy:     r.Policy,
		Candidates: make([]core.OptionID, len(sorted)),
	}
	for i, c := range sorted {
		ev.Candidates[i] = c.ID
	}

	switch r.Policy {
	case StatusQuo:
		for _, c := range sorted {
			if c.ID == r.StatusQuoOption {
				ev.Winner = c.ID
				return c.ID, ev, nil
			}
		}
		// Status-quo absent: fall through to deterministic order.
		ev.Winner = sorted[0].ID
		return sorted[0].ID, ev, nil

	case DeterministicOrder:
		ev.Winner = sorted[0].ID
		return sorted[0].ID, ev, nil

	case Random:
		if r.Stream == nil {
			return "", Event{}, ErrMissingStream
		}
		idx := r.Stream.Uintn(uint64(len(sorted)))
		ev.Winner = sorted[idx].ID
		ev.Seed = r.Stream.Seed()
		ev.WordIndex = r.Stream.Draws()
		return sorted[idx].ID, ev, nil

	default:
		return "", Event{}, ErrBadPolicy
	}
}
