// This file implements the run engine: tabulation fan-out, sequential
// allocation, gates, frontier, and RunRecord assembly.
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/veralin/scrutiny/allocate"
	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/frontier"
	"github.com/veralin/scrutiny/gates"
	"github.com/veralin/scrutiny/tabulate"
	"github.com/veralin/scrutiny/tie"
)

// UnitBallots is one unit's raw ballot observations plus the aggregates
// the gates need. Exactly one of Counts / Rankings / Pairwise is
// consulted, depending on the configured ballot family.
type UnitBallots struct {
	ValidBallots   int64                   `yaml:"valid_ballots"`
	InvalidBallots int64                   `yaml:"invalid_ballots"`
	EligibleRoll   int64                   `yaml:"eligible_roll"`
	Region         string                  `yaml:"region"`
	Counts         map[core.OptionID]int64 `yaml:"counts"`
	Rankings       []tabulate.RankedGroup  `yaml:"rankings"`
	Pairwise       tabulate.Pairwise       `yaml:"pairwise"`
}

// Turnout returns the unit's turnout aggregate.
func (b UnitBallots) Turnout() core.Turnout {
	return core.Turnout{ValidBallots: b.ValidBallots, InvalidBallots: b.InvalidBallots}
}

// Inputs is the loader-validated universe for one run.
type Inputs struct {
	Registry *core.Registry
	Ballots  map[core.UnitID]UnitBallots
	Edges    []frontier.Edge
}

// UnitResult is one unit's per-run output.
type UnitResult struct {
	UnitID core.UnitID

	// Scores is the canonical tabulation output.
	Scores core.UnitScores

	// IRV and Schulze carry the richer ranked results when those
	// families run; nil otherwise.
	IRV     *tabulate.IRVResult
	Schulze *tabulate.SchulzeResult

	// Allocation is the unit's seat/power distribution.
	Allocation *allocate.Result
}

// RunRecord is the assembled outcome of one run, units in canonical
// order. Serialization and ID minting stay with the caller.
type RunRecord struct {
	Units     []UnitResult
	TieEvents []tie.Event
	Gates     gates.Result

	// MMP is the national top-up outcome for the mixed_member method.
	MMP *allocate.MMPResult

	// Frontier is nil when the gates fail or the mode is "none".
	Frontier *frontier.Out
}

// Engine runs the pipeline. Construct via NewEngine.
type Engine struct {
	log *zap.Logger
}

// NewEngine returns an Engine logging through logger (zap.NewNop when
// nil).
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{log: logger}
}

// Run executes one deterministic run: tabulate every unit (parallel
// fan-out, canonical collection), allocate sequentially against the
// shared tie stream, apply the gates, and map the frontier on a passing
// verdict. Any stage failure aborts the run with a structured error
// naming the unit.
func (e *Engine) Run(ctx context.Context, in Inputs, p Params) (*RunRecord, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	family, _ := p.family()
	method, _ := p.method()
	resolver, err := p.resolver()
	if err != nil {
		return nil, err
	}

	units := in.Registry.Units()
	rec := &RunRecord{Units: make([]UnitResult, len(units))}

	// Stage 1: tabulation fan-out. Results land at their canonical
	// index, so parallelism never reorders output; no tie draw happens
	// here.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ur, err := e.tabulateUnit(family, u, in.Ballots[u.ID], p)
			if err != nil {
				return fmt.Errorf("unit %q: %w", u.ID, err)
			}
			rec.Units[i] = ur
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.log.Info("tabulation complete",
		zap.String("family", string(family)),
		zap.Int("units", len(units)))

	// Stage 2: allocation, strictly sequential in canonical unit order —
	// the shared stream's draw order is part of the audited contract.
	for i, u := range units {
		res, err := e.allocateUnit(method, rec.Units[i].Scores, u.Options, p, resolver)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", u.ID, err)
		}
		rec.Units[i].Allocation = res
		if res.HadTie {
			for _, ev := range res.TieEvents {
				rec.TieEvents = append(rec.TieEvents, ev)
				e.log.Info("tie resolved",
					zap.String("kind", ev.Kind),
					zap.String("unit", string(ev.UnitID)),
					zap.String("winner", string(ev.Winner)),
					zap.Uint64("word_index", ev.WordIndex))
			}
		}
	}

	// Stage 2b: national mixed-member top-up over the local seats.
	if method == MethodMixedMember {
		mmp, err := e.runMMP(rec, units, p)
		if err != nil {
			return nil, err
		}
		rec.MMP = mmp
	}

	// Stage 3: gates.
	rec.Gates = gates.Apply(e.gateInputs(rec, units, in, p), p.Gates.Gates())
	e.log.Info("gates applied",
		zap.Bool("quorum", rec.Gates.Quorum),
		zap.Bool("majority", rec.Gates.Majority),
		zap.Bool("double_majority", rec.Gates.DoubleMajority),
		zap.Bool("symmetry", rec.Gates.Symmetry),
		zap.Bool("pass", rec.Gates.Pass))

	// Stage 4: frontier — never without a passing verdict.
	mode, _ := p.frontierMode()
	if rec.Gates.Pass && mode != frontier.ModeNone {
		fr, err := frontier.Map(e.frontierInputs(rec, units, in, p, mode))
		if err != nil {
			return nil, err
		}
		rec.Frontier = fr
		e.log.Info("frontier mapped",
			zap.Int("mediation", fr.MediationCount),
			zap.Int("enclaves", fr.EnclaveCount),
			zap.Int("protected_overrides", fr.ProtectedOverrideCount))
	}
	return rec, nil
}

// tabulateUnit dispatches one unit to the configured ballot family.
func (e *Engine) tabulateUnit(family BallotFamily, u core.Unit, b UnitBallots, p Params) (UnitResult, error) {
	ur := UnitResult{UnitID: u.ID}
	var err error
	switch family {
	case FamilyPlurality:
		ur.Scores, err = tabulate.Plurality(u.ID, b.Counts, b.Turnout(), u.Options)
	case FamilyApproval:
		ur.Scores, err = tabulate.Approval(u.ID, b.Counts, b.Turnout(), u.Options)
	case FamilyScore:
		ur.Scores, err = tabulate.Score(u.ID, b.Counts, p.Ballots.ScoreScale, b.Turnout(), u.Options)
	case FamilyIRV:
		ur.IRV, err = tabulate.IRV(u.ID, b.Rankings, b.Turnout(), u.Options)
		if err == nil {
			ur.Scores = ur.IRV.Scores
		}
	case FamilyCondorcet:
		ur.Schulze, err = tabulate.Schulze(u.ID, b.Pairwise, b.Turnout(), u.Options)
		if err == nil {
			ur.Scores = ur.Schulze.Scores
		}
	}
	return ur, err
}

// allocateUnit dispatches one unit to the configured allocation method.
// The mixed_member method seats local districts winner-take-all; the
// national top-up runs afterwards.
func (e *Engine) allocateUnit(method Method, us core.UnitScores, opts []core.OptionItem, p Params, r *tie.Resolver) (*allocate.Result, error) {
	switch method {
	case MethodWinnerTakeAll, MethodMixedMember:
		return allocate.WinnerTakeAll(1, us, opts, r)
	case MethodDHondt:
		return allocate.HighestAverages(allocate.DHondt, p.Allocation.Magnitude, us, opts, p.Allocation.ThresholdPct, r)
	case MethodSainteLague:
		return allocate.HighestAverages(allocate.SainteLague, p.Allocation.Magnitude, us, opts, p.Allocation.ThresholdPct, r)
	case MethodLargestRemainder:
		q, err := p.quota()
		if err != nil {
			return nil, err
		}
		return allocate.LargestRemainder(q, p.Allocation.Magnitude, us, opts, p.Allocation.ThresholdPct)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadMethod, method)
	}
}

// runMMP aggregates local winner-take-all seats and national votes, then
// applies the configured top-up policy.
func (e *Engine) runMMP(rec *RunRecord, units []core.Unit, p Params) (*allocate.MMPResult, error) {
	d, _ := p.divisor()
	pol, _ := p.mmpPolicy()

	local := make(map[core.OptionID]int64)
	national := make(map[core.OptionID]int64)
	optSet := make(map[core.OptionID]core.OptionItem)
	for i, u := range units {
		for _, o := range u.Options {
			optSet[o.ID] = o
			national[o.ID] += rec.Units[i].Scores.Scores[o.ID]
			if rec.Units[i].Allocation.Seats[o.ID] == allocate.WinnerPower {
				local[o.ID]++
			}
		}
	}
	opts := make([]core.OptionItem, 0, len(optSet))
	for _, o := range optSet {
		opts = append(opts, o)
	}

	return allocate.MMP(allocate.MMPConfig{
		Divisor:       d,
		Policy:        pol,
		TopUpSharePct: p.Allocation.MMP.TopUpSharePct,
	}, local, national, opts)
}

// gateInputs aggregates the national, per-unit and per-region counters.
func (e *Engine) gateInputs(rec *RunRecord, units []core.Unit, in Inputs, p Params) gates.Inputs {
	gi := gates.Inputs{}
	regions := make(map[string]*gates.RegionVotes)
	regionOrder := make([]string, 0)

	for i, u := range units {
		b := in.Ballots[u.ID]
		cast := b.Turnout().BallotsCast()
		gi.EligibleRoll += b.EligibleRoll
		gi.BallotsCast += cast
		gi.ValidBallots += b.ValidBallots
		support := rec.Units[i].Scores.Scores[p.ChangeOption]
		gi.SupportForChange += support

		gi.Units = append(gi.Units, gates.UnitTurnout{
			UnitID:       u.ID,
			BallotsCast:  cast,
			EligibleRoll: b.EligibleRoll,
		})
		if b.Region != "" {
			r, ok := regions[b.Region]
			if !ok {
				r = &gates.RegionVotes{RegionID: b.Region}
				regions[b.Region] = r
				regionOrder = append(regionOrder, b.Region)
			}
			r.ValidBallots += b.ValidBallots
			r.SupportForChange += support
		}
	}
	// Regions in first-seen (canonical unit) order keeps the record
	// stable.
	for _, name := range regionOrder {
		gi.Regions = append(gi.Regions, *regions[name])
	}
	return gi
}

// frontierInputs derives the frontier universe from the run so far.
func (e *Engine) frontierInputs(rec *RunRecord, units []core.Unit, in Inputs, p Params, mode frontier.Mode) frontier.Inputs {
	fi := frontier.Inputs{
		Mode:        mode,
		Units:       make([]core.UnitID, len(units)),
		Support:     make(map[core.UnitID]frontier.Ratio, len(units)),
		Edges:       in.Edges,
		Protected:   make(map[core.UnitID]bool),
		Bands:       p.bands(),
		Admissible:  p.Frontier.Admissible,
		IslandFerry: p.Frontier.IslandFerry,
	}
	for i, u := range units {
		fi.Units[i] = u.ID
		fi.Support[u.ID] = frontier.Ratio{
			Num: rec.Units[i].Scores.Scores[p.ChangeOption],
			Den: rec.Units[i].Scores.Turnout.ValidBallots,
		}
		if u.Protected {
			fi.Protected[u.ID] = true
		}
	}
	return fi
}
