// This file declares the NewUnit constructor and the Registry type: the
// validated, canonically sorted unit universe handed to the pipeline by
// the loader boundary.
package core

import (
	"fmt"
	"sort"
)

// NewUnit validates and assembles one Unit. The supplied options are
// copied, canonically sorted, and checked for duplicate IDs and
// duplicate rank indexes.
//
// Complexity: O(n log n) in the number of options.
func NewUnit(id UnitID, displayName string, protected bool, options []OptionItem) (Unit, error) {
	if err := id.Validate(); err != nil {
		return Unit{}, fmt.Errorf("%w: unit %q", err, id)
	}
	if len(displayName) == 0 || len(displayName) > MaxDisplayNameLen {
		return Unit{}, fmt.Errorf("%w: unit %q", ErrBadDisplayName, id)
	}
	if len(options) == 0 {
		return Unit{}, fmt.Errorf("%w: unit %q", ErrNoOptions, id)
	}

	sorted := make([]OptionItem, len(options))
	copy(sorted, options)
	SortOptions(sorted)

	seenID := make(map[OptionID]struct{}, len(sorted))
	seenRank := make(map[int]struct{}, len(sorted))
	for _, o := range sorted {
		if err := o.ID.Validate(); err != nil {
			return Unit{}, fmt.Errorf("%w: option %q in unit %q", err, o.ID, id)
		}
		if len(o.DisplayName) == 0 || len(o.DisplayName) > MaxDisplayNameLen {
			return Unit{}, fmt.Errorf("%w: option %q in unit %q", ErrBadDisplayName, o.ID, id)
		}
		if o.RankIndex < 0 {
			return Unit{}, fmt.Errorf("%w: negative rank index on option %q in unit %q", ErrDuplicateRank, o.ID, id)
		}
		if _, dup := seenID[o.ID]; dup {
			return Unit{}, fmt.Errorf("%w: %q in unit %q", ErrDuplicateOption, o.ID, id)
		}
		if _, dup := seenRank[o.RankIndex]; dup {
			return Unit{}, fmt.Errorf("%w: rank %d in unit %q", ErrDuplicateRank, o.RankIndex, id)
		}
		seenID[o.ID] = struct{}{}
		seenRank[o.RankIndex] = struct{}{}
	}

	return Unit{ID: id, DisplayName: displayName, Protected: protected, Options: sorted}, nil
}

// Registry is the immutable unit universe for one run: units sorted by
// ascending UnitID plus an index for O(1) lookups.
type Registry struct {
	units []Unit
	index map[UnitID]int
}

// NewRegistry validates the unit set and builds a Registry. Units are
// copied and sorted by UnitID; duplicate unit IDs are rejected.
//
// Complexity: O(n log n) in the number of units.
func NewRegistry(units []Unit) (*Registry, error) {
	sorted := make([]Unit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	index := make(map[UnitID]int, len(sorted))
	for i, u := range sorted {
		if _, dup := index[u.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUnit, u.ID)
		}
		index[u.ID] = i
	}
	return &Registry{units: sorted, index: index}, nil
}

// Len returns the number of registered units.
func (r *Registry) Len() int { return len(r.units) }

// Units returns the units in ascending UnitID order. The returned slice
// is shared; callers must not mutate it.
func (r *Registry) Units() []Unit { return r.units }

// Unit returns the unit with the given id, or ErrUnitNotFound.
func (r *Registry) Unit(id UnitID) (Unit, error) {
	i, ok := r.index[id]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnitNotFound, id)
	}
	return r.units[i], nil
}
