// This file declares the YAML-decodable parameter snapshot and its
// resolution into the typed enums of the stage packages.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/veralin/scrutiny/allocate"
	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/frontier"
	"github.com/veralin/scrutiny/gates"
	"github.com/veralin/scrutiny/tie"
)

// Sentinel errors for parameter resolution.
var (
	// ErrBadFamily indicates an unknown ballot family selector.
	ErrBadFamily = errors.New("pipeline: unknown ballot family")

	// ErrBadMethod indicates an unknown allocation method selector.
	ErrBadMethod = errors.New("pipeline: unknown allocation method")

	// ErrBadTiePolicy indicates an unknown tie policy selector.
	ErrBadTiePolicy = errors.New("pipeline: unknown tie policy")

	// ErrBadMode indicates an unknown frontier mode selector.
	ErrBadMode = errors.New("pipeline: unknown frontier mode")
)

// BallotFamily selects the tabulation family. Closed set.
type BallotFamily string

const (
	FamilyPlurality BallotFamily = "plurality"
	FamilyApproval  BallotFamily = "approval"
	FamilyScore     BallotFamily = "score"
	FamilyIRV       BallotFamily = "ranked_irv"
	FamilyCondorcet BallotFamily = "ranked_condorcet"
)

// Method selects the allocation method. Closed set.
type Method string

const (
	MethodWinnerTakeAll    Method = "winner_take_all"
	MethodDHondt           Method = "dhondt"
	MethodSainteLague      Method = "sainte_lague"
	MethodLargestRemainder Method = "largest_remainder"
	MethodMixedMember      Method = "mixed_member"
)

// Params is the parameter snapshot for one run.
type Params struct {
	Ballots    BallotParams   `yaml:"ballots"`
	Allocation AllocParams    `yaml:"allocation"`
	Tie        TieParams      `yaml:"tie"`
	Gates      GateParams     `yaml:"gates"`
	Frontier   FrontierParams `yaml:"frontier"`

	// ChangeOption designates the option whose scores count as
	// "support for change" in the gates and frontier ratios. Optional;
	// when empty both degrade to zero support.
	ChangeOption core.OptionID `yaml:"change_option"`
}

// BallotParams selects and configures the ballot family.
type BallotParams struct {
	Family BallotFamily `yaml:"family"`

	// ScoreScale is the per-ballot maximum for the score family.
	ScoreScale int64 `yaml:"score_scale"`
}

// AllocParams selects and configures the allocation method.
type AllocParams struct {
	Method       Method `yaml:"method"`
	Magnitude    int64  `yaml:"magnitude"`
	ThresholdPct int64  `yaml:"threshold_pct"`

	// Quota selects hare/droop/imperiali for largest_remainder.
	Quota string `yaml:"quota"`

	// MMP configures the mixed_member method.
	MMP MMPParams `yaml:"mmp"`
}

// MMPParams configures the national top-up stage.
type MMPParams struct {
	// Divisor selects dhondt or sainte_lague apportionment.
	Divisor string `yaml:"divisor"`

	// Policy selects allow_overhang, compensate_others or add_seats.
	Policy string `yaml:"policy"`

	TopUpSharePct int64 `yaml:"top_up_share_pct"`
}

// TieParams configures the shared tie substrate.
type TieParams struct {
	Policy    string        `yaml:"policy"`
	Seed      int64         `yaml:"seed"`
	StatusQuo core.OptionID `yaml:"status_quo"`
}

// GateParams mirrors gates.Params with YAML tags.
type GateParams struct {
	QuorumPct               int64 `yaml:"quorum_pct"`
	MajorityPct             int64 `yaml:"majority_pct"`
	DoubleMajority          bool  `yaml:"double_majority"`
	RegionalPct             int64 `yaml:"regional_pct"`
	SymmetryEnabled         bool  `yaml:"symmetry_enabled"`
	SymmetryExceptionsBreak bool  `yaml:"symmetry_exceptions_break"`
}

// Gates resolves the wrapper into gates.Params.
func (g GateParams) Gates() gates.Params {
	return gates.Params{
		QuorumPct:               g.QuorumPct,
		MajorityPct:             g.MajorityPct,
		DoubleMajority:          g.DoubleMajority,
		RegionalPct:             g.RegionalPct,
		SymmetryEnabled:         g.SymmetryEnabled,
		SymmetryExceptionsBreak: g.SymmetryExceptionsBreak,
	}
}

// FrontierParams configures frontier mapping.
type FrontierParams struct {
	Mode        string              `yaml:"mode"`
	Bands       []BandParam         `yaml:"bands"`
	Admissible  []frontier.EdgeKind `yaml:"admissible"`
	IslandFerry bool                `yaml:"island_ferry"`
}

// BandParam is one YAML band entry, bounds in tenths of a percent.
type BandParam struct {
	MinPermille int64  `yaml:"min_permille"`
	MaxPermille int64  `yaml:"max_permille"`
	Status      string `yaml:"status"`
}

// family resolves the ballot family selector.
func (p Params) family() (BallotFamily, error) {
	switch f := p.Ballots.Family; f {
	case FamilyPlurality, FamilyApproval, FamilyScore, FamilyIRV, FamilyCondorcet:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadFamily, f)
	}
}

// method resolves the allocation method selector.
func (p Params) method() (Method, error) {
	switch m := p.Allocation.Method; m {
	case MethodWinnerTakeAll, MethodDHondt, MethodSainteLague, MethodLargestRemainder, MethodMixedMember:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadMethod, m)
	}
}

// quota resolves the largest-remainder quota selector.
func (p Params) quota() (allocate.Quota, error) {
	switch p.Allocation.Quota {
	case "", "hare":
		return allocate.Hare, nil
	case "droop":
		return allocate.Droop, nil
	case "imperiali":
		return allocate.Imperiali, nil
	default:
		return 0, fmt.Errorf("%w: quota %q", ErrBadMethod, p.Allocation.Quota)
	}
}

// divisor resolves the MMP divisor selector.
func (p Params) divisor() (allocate.Divisor, error) {
	switch p.Allocation.MMP.Divisor {
	case "", "sainte_lague":
		return allocate.SainteLague, nil
	case "dhondt":
		return allocate.DHondt, nil
	default:
		return 0, fmt.Errorf("%w: divisor %q", ErrBadMethod, p.Allocation.MMP.Divisor)
	}
}

// mmpPolicy resolves the MMP overhang policy selector.
func (p Params) mmpPolicy() (allocate.MMPPolicy, error) {
	switch p.Allocation.MMP.Policy {
	case "", "allow_overhang":
		return allocate.AllowOverhang, nil
	case "compensate_others":
		return allocate.CompensateOthers, nil
	case "add_seats":
		return allocate.AddSeats, nil
	default:
		return 0, fmt.Errorf("%w: mmp policy %q", ErrBadMethod, p.Allocation.MMP.Policy)
	}
}

// resolver builds the run's tie resolver (and seeded stream when the
// random policy is selected).
func (p Params) resolver() (*tie.Resolver, error) {
	r := &tie.Resolver{StatusQuoOption: p.Tie.StatusQuo}
	switch p.Tie.Policy {
	case "status_quo":
		r.Policy = tie.StatusQuo
	case "", "deterministic_order":
		r.Policy = tie.DeterministicOrder
	case "random":
		r.Policy = tie.Random
		s, err := tie.NewStream(p.Tie.Seed)
		if err != nil {
			return nil, err
		}
		r.Stream = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadTiePolicy, p.Tie.Policy)
	}
	return r, nil
}

// frontierMode resolves the frontier mode selector.
func (p Params) frontierMode() (frontier.Mode, error) {
	switch p.Frontier.Mode {
	case "", string(frontier.ModeNone):
		return frontier.ModeNone, nil
	case string(frontier.ModeBands):
		return frontier.ModeBands, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadMode, p.Frontier.Mode)
	}
}

// bands resolves the band list.
func (p Params) bands() []frontier.Band {
	out := make([]frontier.Band, len(p.Frontier.Bands))
	for i, b := range p.Frontier.Bands {
		out[i] = frontier.Band{MinPermille: b.MinPermille, MaxPermille: b.MaxPermille, Status: b.Status}
	}
	return out
}

// Validate resolves every selector once, surfacing configuration errors
// before a run starts.
func (p Params) Validate() error {
	if _, err := p.family(); err != nil {
		return err
	}
	if _, err := p.method(); err != nil {
		return err
	}
	if _, err := p.quota(); err != nil {
		return err
	}
	if _, err := p.divisor(); err != nil {
		return err
	}
	if _, err := p.mmpPolicy(); err != nil {
		return err
	}
	if _, err := p.resolver(); err != nil {
		return err
	}
	if _, err := p.frontierMode(); err != nil {
		return err
	}
	return nil
}
