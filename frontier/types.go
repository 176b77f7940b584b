// This file declares the frontier input/output types and sentinel
// errors.
package frontier

import (
	"errors"
	"math"
	"math/bits"

	"github.com/veralin/scrutiny/core"
)

// Sentinel errors for frontier inputs.
var (
	// ErrBadBands indicates an overlapping, inverted or out-of-range
	// band list.
	ErrBadBands = errors.New("frontier: bad band configuration")

	// ErrUnknownUnit indicates a reference to a unit outside the
	// universe.
	ErrUnknownUnit = errors.New("frontier: unknown unit")

	// ErrBadEdgeKind indicates an edge kind outside land/bridge/water.
	ErrBadEdgeKind = errors.New("frontier: bad edge kind")
)

// StatusNone is the literal status of unbanded, blocked and
// mode-"none" units.
const StatusNone = "none"

// Mode selects whether frontier mapping runs at all.
type Mode string

const (
	// ModeNone short-circuits the whole stage.
	ModeNone Mode = "none"

	// ModeBands runs band assignment and contiguity analysis.
	ModeBands Mode = "bands"
)

// EdgeKind types an undirected adjacency edge.
type EdgeKind string

const (
	Land   EdgeKind = "land"
	Bridge EdgeKind = "bridge"
	Water  EdgeKind = "water"
)

// valid reports whether k is a known kind.
func (k EdgeKind) valid() bool {
	return k == Land || k == Bridge || k == Water
}

// Edge is one undirected, typed adjacency between two units.
type Edge struct {
	A, B core.UnitID
	Kind EdgeKind
}

// Ratio is an observed (numerator, denominator) support ratio.
type Ratio struct {
	Num, Den int64
}

// Permille returns ⌊1000·num/den⌋, or 0 when the denominator is zero
// or either part is negative. The product is taken in 128 bits, so the
// floor is exact for the full int64 range; quotients beyond int64
// saturate at MaxInt64 (no band reaches past 1000 anyway).
func (r Ratio) Permille() int64 {
	if r.Den <= 0 || r.Num <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(r.Num), 1000)
	if hi >= uint64(r.Den) {
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, uint64(r.Den))
	if q > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(q)
}

// Band is one status band; bounds are inclusive, in tenths of a
// percent (0..1000). Bands are matched in listing order.
type Band struct {
	MinPermille int64
	MaxPermille int64
	Status      string
}

// Inputs is the frontier universe for one run.
type Inputs struct {
	// Mode gates the whole stage.
	Mode Mode

	// Units is the unit universe. Order does not matter; the mapper
	// works in ascending unit-id order internally.
	Units []core.UnitID

	// Support is the observed support ratio per unit; missing units
	// degrade to 0/0.
	Support map[core.UnitID]Ratio

	// Edges is the static undirected edge list.
	Edges []Edge

	// Protected is the protected-unit set.
	Protected map[core.UnitID]bool

	// Bands is the non-overlapping band list, matched first to last.
	Bands []Band

	// Admissible is the edge-kind set admitted into contiguity.
	Admissible []EdgeKind

	// IslandFerry additionally admits bridge and water edges.
	IslandFerry bool
}

// UnitFlags is one unit's final frontier classification.
type UnitFlags struct {
	// Status is the band status label, or "none".
	Status string

	// Component is the 1-based component number within the unit's
	// status group (0 for "none" units). Numbering is deterministic:
	// components are discovered in ascending unit-id order.
	Component int

	// ContiguityOK marks ≥1 same-status admissible neighbor.
	ContiguityOK bool

	// MediationFlagged marks members of a status split across more
	// than one component.
	MediationFlagged bool

	// Enclave marks a unit whose admissible neighbors all carry a
	// different status (and it has at least one).
	Enclave bool

	// ProtectedOverride marks a protected unit forced to "none".
	ProtectedOverride bool
}

// Out is the frontier result: per-unit flags plus roll-up counts.
type Out struct {
	// Units maps every unit in the universe to its flags.
	Units map[core.UnitID]UnitFlags

	// StatusCounts rolls up unit counts per status label (including
	// "none").
	StatusCounts map[string]int

	// ComponentCounts rolls up the component count per non-"none"
	// status.
	ComponentCounts map[string]int

	// MediationCount, EnclaveCount and ProtectedOverrideCount are the
	// flag totals.
	MediationCount         int
	EnclaveCount           int
	ProtectedOverrideCount int

	// ProtectedOverrideUsed is true when at least one protected unit
	// was forced to "none".
	ProtectedOverrideUsed bool
}
