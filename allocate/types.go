// This file declares the allocation Result, the Divisor/Quota/MMPPolicy
// enums, and the sentinel errors of the package.
package allocate

import (
	"errors"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/tie"
)

// Sentinel errors for allocation configuration.
var (
	// ErrNoEligibleOptions indicates a zero vote total, or that no
	// option cleared the entry threshold while magnitude > 0.
	ErrNoEligibleOptions = errors.New("allocate: no eligible options")

	// ErrRequiresMagnitude1 indicates winner-take-all was asked for a
	// magnitude other than one.
	ErrRequiresMagnitude1 = errors.New("allocate: winner-take-all requires magnitude 1")

	// ErrNegativeMagnitude indicates a negative seat magnitude.
	ErrNegativeMagnitude = errors.New("allocate: negative magnitude")

	// ErrBadThreshold indicates an entry threshold outside 0..100.
	ErrBadThreshold = errors.New("allocate: threshold percent out of range")

	// ErrBadDivisor indicates an unknown Divisor value.
	ErrBadDivisor = errors.New("allocate: unknown divisor")

	// ErrBadQuota indicates an unknown Quota value.
	ErrBadQuota = errors.New("allocate: unknown quota")

	// ErrBadTopUpShare indicates an MMP top-up share outside 0..99.
	ErrBadTopUpShare = errors.New("allocate: top-up share percent out of range")

	// ErrBadPolicy indicates an unknown MMP policy value.
	ErrBadPolicy = errors.New("allocate: unknown mmp policy")

	// ErrNegativeSeats indicates a negative local-seat count.
	ErrNegativeSeats = errors.New("allocate: negative local seat count")
)

// WinnerPower is the power assigned to the winner-take-all winner.
const WinnerPower = 100

// Divisor selects the highest-averages divisor sequence.
type Divisor int

const (
	// DHondt divides by seats+1.
	DHondt Divisor = iota

	// SainteLague divides by 2·seats+1.
	SainteLague
)

// String returns the divisor name used in parameter snapshots and logs.
func (d Divisor) String() string {
	switch d {
	case DHondt:
		return "dhondt"
	case SainteLague:
		return "sainte_lague"
	default:
		return "unknown"
	}
}

// Quota selects the largest-remainder quota scheme.
type Quota int

const (
	// Hare is ⌊V/m⌋.
	Hare Quota = iota

	// Droop is ⌊V/(m+1)⌋+1.
	Droop

	// Imperiali is ⌊V/(m+2)⌋; floor seats may overshoot the magnitude
	// and are trimmed back.
	Imperiali
)

// String returns the quota name used in parameter snapshots and logs.
func (q Quota) String() string {
	switch q {
	case Hare:
		return "hare"
	case Droop:
		return "droop"
	case Imperiali:
		return "imperiali"
	default:
		return "unknown"
	}
}

// Result is one unit's seat (or power) distribution. Seats carries one
// entry per eligible option; Σ over entries equals the requested
// magnitude exactly (or 100 for winner-take-all).
type Result struct {
	// Seats maps options to awarded seats or power.
	Seats map[core.OptionID]int64

	// HadTie is true when at least one exact tie was resolved.
	HadTie bool

	// TieEvents holds the audit entries for every resolved tie, in draw
	// order.
	TieEvents []tie.Event
}
