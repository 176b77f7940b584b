// This file declares OptionID, UnitID, OptionItem, Unit, Turnout and
// UnitScores, the sentinel errors of the package, and the canonical
// comparison helpers used by every stage.
package core

import (
	"errors"
	"math"
	"sort"
)

// Sentinel errors for registry construction and lookups.
var (
	// ErrBadID indicates an identifier outside the allowed charset or length.
	ErrBadID = errors.New("core: bad identifier")

	// ErrBadDisplayName indicates an empty or over-long display name.
	ErrBadDisplayName = errors.New("core: bad display name")

	// ErrNoOptions indicates a unit was declared with an empty option list.
	ErrNoOptions = errors.New("core: unit has no options")

	// ErrDuplicateOption indicates a repeated OptionID within one unit.
	ErrDuplicateOption = errors.New("core: duplicate option id")

	// ErrDuplicateRank indicates a repeated RankIndex within one unit.
	ErrDuplicateRank = errors.New("core: duplicate rank index")

	// ErrNegativeTurnout indicates a negative ballot counter.
	ErrNegativeTurnout = errors.New("core: negative turnout counter")

	// ErrDuplicateUnit indicates a repeated UnitID within one registry.
	ErrDuplicateUnit = errors.New("core: duplicate unit id")

	// ErrUnitNotFound indicates a lookup referenced a non-existent unit.
	ErrUnitNotFound = errors.New("core: unit not found")
)

// Identifier bounds shared by OptionID and UnitID.
const (
	// MaxIDLen is the maximum identifier length in bytes.
	MaxIDLen = 64

	// MaxDisplayNameLen is the maximum display-name length in bytes.
	MaxDisplayNameLen = 200
)

// OptionID is an opaque option token: 1..64 bytes of
// [A-Za-z0-9_-.:], totally ordered by byte value. Identity only.
type OptionID string

// UnitID is an opaque unit token with the same charset and ordering
// rules as OptionID.
type UnitID string

// validToken reports whether s satisfies the shared identifier rules.
func validToken(s string) bool {
	if len(s) == 0 || len(s) > MaxIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.' || c == ':':
		default:
			return false
		}
	}
	return true
}

// Validate reports ErrBadID if the option id violates the token rules.
func (id OptionID) Validate() error {
	if !validToken(string(id)) {
		return ErrBadID
	}
	return nil
}

// Validate reports ErrBadID if the unit id violates the token rules.
func (id UnitID) Validate() error {
	if !validToken(string(id)) {
		return ErrBadID
	}
	return nil
}

// OptionItem is one registered option of a unit.
//
// RankIndex is assigned at registry-build time; the canonical comparison
// key for any option collection is (RankIndex, ID).
type OptionItem struct {
	// ID is the option identifier, unique within its unit.
	ID OptionID

	// DisplayName is the human-readable label, 1..200 bytes.
	DisplayName string

	// RankIndex is a small non-negative ordering index, unique within
	// its unit.
	RankIndex int
}

// CompareOptions orders two options by the canonical key
// (RankIndex, ID). Returns -1, 0 or +1.
func CompareOptions(a, b OptionItem) int {
	switch {
	case a.RankIndex < b.RankIndex:
		return -1
	case a.RankIndex > b.RankIndex:
		return 1
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// SortOptions sorts opts in place by the canonical key.
// Complexity: O(n log n).
func SortOptions(opts []OptionItem) {
	sort.Slice(opts, func(i, j int) bool {
		return CompareOptions(opts[i], opts[j]) < 0
	})
}

// Turnout carries the per-unit ballot counters. Both fields are
// non-negative; see Validate.
type Turnout struct {
	// ValidBallots is the number of ballots counted as valid.
	ValidBallots int64

	// InvalidBallots is the number of spoiled or rejected ballots.
	InvalidBallots int64
}

// Validate reports ErrNegativeTurnout if either counter is negative.
func (t Turnout) Validate() error {
	if t.ValidBallots < 0 || t.InvalidBallots < 0 {
		return ErrNegativeTurnout
	}
	return nil
}

// BallotsCast returns ValidBallots + InvalidBallots with saturating
// addition: the sum never overflows or panics.
func (t Turnout) BallotsCast() int64 {
	if t.ValidBallots > math.MaxInt64-t.InvalidBallots {
		return math.MaxInt64
	}
	return t.ValidBallots + t.InvalidBallots
}

// UnitScores is the canonical tabulation output for one unit and the
// sole interface between tabulation and allocation. Scores holds one
// entry per option known to the unit, including zero-valued ones.
type UnitScores struct {
	UnitID  UnitID
	Turnout Turnout
	Scores  map[OptionID]int64
}

// Unit is one immutable voting unit: its identity, protection flag and
// canonically sorted option list. Build units via NewUnit so the
// invariants hold.
type Unit struct {
	// ID is the unit identifier, unique within its registry.
	ID UnitID

	// DisplayName is the human-readable label, 1..200 bytes.
	DisplayName string

	// Protected marks a protected area for frontier overrides.
	Protected bool

	// Options is non-empty, canonically sorted, with unique IDs and
	// unique RankIndex values.
	Options []OptionItem
}

// HasOption reports whether id is a registered option of the unit.
func (u Unit) HasOption(id OptionID) bool {
	for _, o := range u.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}
