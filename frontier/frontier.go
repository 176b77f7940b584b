// This file implements the frontier mapper: band assignment, protected
// override, BFS contiguity and the flag roll-up.
package frontier

import (
	"fmt"
	"sort"

	"github.com/veralin/scrutiny/core"
)

// Map runs frontier mapping over a fixed unit universe. Pure function;
// identical inputs yield identical output, component numbering
// included. Callers must consult the decision gates first — mapping is
// only meaningful after a passing verdict.
//
// Complexity: O(U log U + E) per run.
func Map(in Inputs) (*Out, error) {
	units, err := universe(in)
	if err != nil {
		return nil, err
	}

	out := &Out{
		Units:           make(map[core.UnitID]UnitFlags, len(units)),
		StatusCounts:    make(map[string]int),
		ComponentCounts: make(map[string]int),
	}

	// 1. Fast path: no mapping at all.
	if in.Mode == ModeNone {
		for _, u := range units {
			out.Units[u] = UnitFlags{Status: StatusNone}
		}
		out.StatusCounts[StatusNone] = len(units)
		return out, nil
	}

	if err := validateBands(in.Bands); err != nil {
		return nil, err
	}

	// 2. Band assignment from the support ratio, in tenths of a percent.
	status := make(map[core.UnitID]string, len(units))
	for _, u := range units {
		status[u] = bandStatus(in.Bands, in.Support[u].Permille())
	}

	// 3. Protected override — before contiguity, so a blocked unit can
	// never bridge two components.
	overridden := make(map[core.UnitID]bool)
	for _, u := range units {
		if in.Protected[u] && status[u] != StatusNone {
			status[u] = StatusNone
			overridden[u] = true
			out.ProtectedOverrideUsed = true
			out.ProtectedOverrideCount++
		}
	}

	// 4. Contiguity over the admissible subgraph.
	adj, err := adjacency(in, units)
	if err != nil {
		return nil, err
	}
	component := contiguity(units, adj, status, out)

	// 5. Flags and roll-up.
	for _, u := range units {
		f := UnitFlags{
			Status:            status[u],
			Component:         component[u],
			ProtectedOverride: overridden[u],
		}
		if f.Status != StatusNone {
			sameStatus, anyNeighbor := false, false
			for _, n := range adj[u] {
				anyNeighbor = true
				if status[n] == f.Status {
					sameStatus = true
				}
			}
			f.ContiguityOK = sameStatus
			// One differing neighbor suffices; isolated units are not
			// enclaves.
			f.Enclave = anyNeighbor && !sameStatus
			f.MediationFlagged = out.ComponentCounts[f.Status] > 1
		}
		if f.MediationFlagged {
			out.MediationCount++
		}
		if f.Enclave {
			out.EnclaveCount++
		}
		out.Units[u] = f
		out.StatusCounts[f.Status]++
	}
	return out, nil
}

// universe validates and sorts the unit list, and checks every
// cross-reference against it.
func universe(in Inputs) ([]core.UnitID, error) {
	units := make([]core.UnitID, len(in.Units))
	copy(units, in.Units)
	sort.Slice(units, func(i, j int) bool { return units[i] < units[j] })

	known := make(map[core.UnitID]struct{}, len(units))
	for _, u := range units {
		known[u] = struct{}{}
	}
	for u := range in.Support {
		if _, ok := known[u]; !ok {
			return nil, fmt.Errorf("%w: %q in support ratios", ErrUnknownUnit, u)
		}
	}
	for u, p := range in.Protected {
		if _, ok := known[u]; !ok && p {
			return nil, fmt.Errorf("%w: %q in protected set", ErrUnknownUnit, u)
		}
	}
	for _, e := range in.Edges {
		if _, ok := known[e.A]; !ok {
			return nil, fmt.Errorf("%w: %q in edge list", ErrUnknownUnit, e.A)
		}
		if _, ok := known[e.B]; !ok {
			return nil, fmt.Errorf("%w: %q in edge list", ErrUnknownUnit, e.B)
		}
		if !e.Kind.valid() {
			return nil, fmt.Errorf("%w: %q", ErrBadEdgeKind, e.Kind)
		}
	}
	return units, nil
}

// validateBands enforces in-range, non-inverted, pairwise
// non-overlapping bands. Listing order is free; it is the match order.
func validateBands(bands []Band) error {
	for i, b := range bands {
		if b.MinPermille < 0 || b.MaxPermille > 1000 || b.MinPermille > b.MaxPermille {
			return fmt.Errorf("%w: band %d [%d,%d]", ErrBadBands, i, b.MinPermille, b.MaxPermille)
		}
		if b.Status == "" {
			return fmt.Errorf("%w: band %d has an empty status", ErrBadBands, i)
		}
		for j := 0; j < i; j++ {
			if b.MinPermille <= bands[j].MaxPermille && bands[j].MinPermille <= b.MaxPermille {
				return fmt.Errorf("%w: bands %d and %d overlap", ErrBadBands, j, i)
			}
		}
	}
	return nil
}

// bandStatus returns the first matching band's status, or "none".
func bandStatus(bands []Band, permille int64) string {
	for _, b := range bands {
		if permille >= b.MinPermille && permille <= b.MaxPermille {
			return b.Status
		}
	}
	return StatusNone
}

// adjacency builds the admissible adjacency lists fresh from the static
// edge list, neighbor lists sorted ascending for deterministic
// traversal.
func adjacency(in Inputs, units []core.UnitID) (map[core.UnitID][]core.UnitID, error) {
	admit := make(map[EdgeKind]bool, 3)
	for _, k := range in.Admissible {
		if !k.valid() {
			return nil, fmt.Errorf("%w: %q", ErrBadEdgeKind, k)
		}
		admit[k] = true
	}
	if in.IslandFerry {
		admit[Bridge] = true
		admit[Water] = true
	}

	adj := make(map[core.UnitID][]core.UnitID, len(units))
	for _, e := range in.Edges {
		if !admit[e.Kind] || e.A == e.B {
			continue
		}
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}
	for u := range adj {
		sort.Slice(adj[u], func(i, j int) bool { return adj[u][i] < adj[u][j] })
	}
	return adj, nil
}

// contiguity assigns 1-based component numbers per status via BFS,
// seeding candidate vertices in ascending unit-id order, and fills
// ComponentCounts.
func contiguity(units []core.UnitID, adj map[core.UnitID][]core.UnitID, status map[core.UnitID]string, out *Out) map[core.UnitID]int {
	component := make(map[core.UnitID]int, len(units))
	for _, seed := range units { // ascending id order fixes numbering
		st := status[seed]
		if st == StatusNone || component[seed] != 0 {
			continue
		}
		out.ComponentCounts[st]++
		comp := out.ComponentCounts[st]

		queue := []core.UnitID{seed}
		component[seed] = comp
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, n := range adj[u] {
				if status[n] != st || component[n] != 0 {
					continue
				}
				component[n] = comp
				queue = append(queue, n)
			}
		}
	}
	return component
}
