// This file declares the gate inputs, parameters, result, and the
// Apply evaluation.
package gates

import (
	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/tie"
)

// UnitTurnout is one unit's turnout aggregate for the per-unit quorum
// pass-set (reporting only).
type UnitTurnout struct {
	UnitID       core.UnitID
	BallotsCast  int64
	EligibleRoll int64
}

// RegionVotes is one region's aggregate for the double-majority gate.
type RegionVotes struct {
	RegionID         string
	ValidBallots     int64
	SupportForChange int64
}

// Inputs carries the national and per-unit/per-region aggregates.
// Transient per-run values; no entity owns them.
type Inputs struct {
	// EligibleRoll is the national eligible-voter count.
	EligibleRoll int64

	// BallotsCast is the national cast count (valid + invalid).
	BallotsCast int64

	// ValidBallots is the national valid count — the fixed majority
	// denominator.
	ValidBallots int64

	// SupportForChange is the national count supporting change.
	SupportForChange int64

	// Units feeds the reporting-only per-unit quorum pass-set.
	Units []UnitTurnout

	// Regions feeds the double-majority gate.
	Regions []RegionVotes
}

// Params is the gate threshold snapshot.
type Params struct {
	// QuorumPct is the global quorum threshold in whole percent.
	QuorumPct int64

	// MajorityPct is the national majority threshold in whole percent.
	MajorityPct int64

	// DoubleMajority enables the regional condition.
	DoubleMajority bool

	// RegionalPct is the per-region majority threshold in whole percent.
	RegionalPct int64

	// SymmetryEnabled enables the symmetry gate.
	SymmetryEnabled bool

	// SymmetryExceptionsBreak is the externally computed flag that
	// declared exceptions actually break symmetry.
	SymmetryExceptionsBreak bool
}

// Result carries the four independent verdicts plus the combined Pass.
type Result struct {
	Quorum         bool
	Majority       bool
	DoubleMajority bool
	Symmetry       bool

	// Pass is the ordered conjunction of all four verdicts.
	Pass bool

	// UnitQuorum is the reporting-only per-unit quorum pass-set.
	UnitQuorum map[core.UnitID]bool

	// RegionsCounted is the number of regions with nonzero valid
	// ballots; RegionsPassing of those met the regional threshold.
	RegionsCounted int
	RegionsPassing int
}

// meets reports 100·num ≥ pct·den, compared exactly in 128 bits.
// Negative aggregates are clamped to zero first (missing data degrades,
// it never errors).
func meets(num, den, pct int64) bool {
	if num < 0 {
		num = 0
	}
	if den < 0 {
		den = 0
	}
	if pct < 0 {
		pct = 0
	}
	return tie.CompareRatios(uint64(num), uint64(den), uint64(pct), 100) >= 0
}

// Apply evaluates the gates. Pure function of its inputs; it never
// errors.
//
// Complexity: O(units + regions).
func Apply(in Inputs, p Params) Result {
	res := Result{
		UnitQuorum: make(map[core.UnitID]bool, len(in.Units)),
	}

	// 1. National quorum, plus the reporting-only per-unit pass-set.
	res.Quorum = meets(in.BallotsCast, in.EligibleRoll, p.QuorumPct)
	for _, u := range in.Units {
		res.UnitQuorum[u.UnitID] = meets(u.BallotsCast, u.EligibleRoll, p.QuorumPct)
	}

	// 2. National majority over valid ballots — the denominator is not
	// configurable.
	res.Majority = meets(in.SupportForChange, in.ValidBallots, p.MajorityPct)

	// 3. Double-majority: majority of regions with nonzero valid
	// ballots; vacuous pass when there are none.
	res.DoubleMajority = true
	if p.DoubleMajority {
		for _, r := range in.Regions {
			if r.ValidBallots <= 0 {
				continue
			}
			res.RegionsCounted++
			if meets(r.SupportForChange, r.ValidBallots, p.RegionalPct) {
				res.RegionsPassing++
			}
		}
		if res.RegionsCounted > 0 {
			// ⌈R/2⌉ of R counted regions must pass.
			need := (res.RegionsCounted + 1) / 2
			res.DoubleMajority = res.RegionsPassing >= need
		}
	}

	// 4. Symmetry: externally supplied sub-policy.
	res.Symmetry = !p.SymmetryEnabled || !p.SymmetryExceptionsBreak

	res.Pass = res.Quorum && res.Majority && res.DoubleMajority && res.Symmetry
	return res
}
