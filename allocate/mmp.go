// This file implements mixed-member proportional (MMP) top-up
// allocation.
package allocate

import (
	"fmt"
	"sort"

	"github.com/veralin/scrutiny/core"
	"github.com/veralin/scrutiny/tie"
)

// MMPPolicy selects how overhang seats are handled.
type MMPPolicy int

const (
	// AllowOverhang fills deficits exactly; the effective house grows by
	// the total overhang.
	AllowOverhang MMPPolicy = iota

	// CompensateOthers keeps the house size fixed and redistributes a
	// shared top-up pool to deficit options only, capped per option at
	// its own deficit.
	CompensateOthers

	// AddSeats grows the target house size, recomputing apportionment
	// each step, until every option's target covers its local seats.
	AddSeats
)

// String returns the policy name used in parameter snapshots and logs.
func (p MMPPolicy) String() string {
	switch p {
	case AllowOverhang:
		return "allow_overhang"
	case CompensateOthers:
		return "compensate_others"
	case AddSeats:
		return "add_seats"
	default:
		return "unknown"
	}
}

// MMPConfig bundles the MMP knobs.
type MMPConfig struct {
	// Divisor is the highest-averages method used for apportionment.
	Divisor Divisor

	// Policy is the overhang policy.
	Policy MMPPolicy

	// TopUpSharePct is the intended top-up share p in 0..99; the target
	// house is T = round-half-even(L·100 / (100−p)).
	TopUpSharePct int64
}

// MMPResult is the national top-up outcome.
type MMPResult struct {
	// TargetHouse is the intended total house size (after any AddSeats
	// growth).
	TargetHouse int64

	// Targets is the proportional seat target per option at TargetHouse.
	Targets map[core.OptionID]int64

	// TopUps is the awarded top-up seats per option.
	TopUps map[core.OptionID]int64

	// Overhang is max(0, local − target) per option.
	Overhang map[core.OptionID]int64

	// Total is local + top-up per option.
	Total map[core.OptionID]int64

	// EffectiveHouse is Σ Total.
	EffectiveHouse int64
}

// roundHalfEven divides num by den rounding half to even.
func roundHalfEven(num, den int64) int64 {
	q := num / den
	r := num % den
	switch {
	case 2*r < den:
		return q
	case 2*r > den:
		return q + 1
	case q%2 == 0: // exactly half: round to even
		return q
	default:
		return q + 1
	}
}

// mmpApportion apportions total seats over options by highest averages
// on the national votes, ties broken by ascending OptionID. Options
// with zero votes receive nothing.
func mmpApportion(d Divisor, total int64, votes map[core.OptionID]int64, options []core.OptionItem) (map[core.OptionID]int64, error) {
	ids := make([]core.OptionID, 0, len(options))
	for _, o := range options {
		if votes[o.ID] > 0 {
			ids = append(ids, o.ID)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no option has national votes", ErrNoEligibleOptions)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	seats := make(map[core.OptionID]int64, len(ids))
	for round := int64(0); round < total; round++ {
		var best core.OptionID
		for _, id := range ids {
			if best == "" {
				best = id
				continue
			}
			db, _ := divisorFor(d, seats[best])
			di, _ := divisorFor(d, seats[id])
			// Strict > keeps the ascending-id scan as the tie-break.
			if tie.CompareRatios(uint64(votes[id]), uint64(di), uint64(votes[best]), uint64(db)) > 0 {
				best = id
			}
		}
		seats[best]++
	}
	return seats, nil
}

// MMP derives the target house from the local-seat count and the top-up
// share, apportions it nationally, and applies the configured overhang
// policy. See MMPPolicy for the three behaviors.
//
// The AddSeats growth loop terminates because highest-averages seat
// targets are non-decreasing in the house size, and any option with
// nonzero votes eventually reaches its local count; options with zero
// national votes keep their local seats as overhang and are excluded
// from the growth condition.
//
// Complexity: O(T × n) per apportionment.
func MMP(cfg MMPConfig, local map[core.OptionID]int64, national map[core.OptionID]int64, options []core.OptionItem) (*MMPResult, error) {
	if cfg.TopUpSharePct < 0 || cfg.TopUpSharePct > 99 {
		return nil, fmt.Errorf("%w: %d", ErrBadTopUpShare, cfg.TopUpSharePct)
	}
	if _, err := divisorFor(cfg.Divisor, 0); err != nil {
		return nil, err
	}
	opts := make([]core.OptionItem, len(options))
	copy(opts, options)
	core.SortOptions(opts)

	var localTotal int64
	for _, o := range opts {
		l := local[o.ID]
		if l < 0 {
			return nil, fmt.Errorf("%w: %q has %d local seats", ErrNegativeSeats, o.ID, l)
		}
		if national[o.ID] < 0 {
			return nil, fmt.Errorf("%w: %q has %d national votes", ErrNegativeSeats, o.ID, national[o.ID])
		}
		localTotal += l
	}

	// Intended house: T = (L·100)/(100−p), round half to even.
	target := roundHalfEven(localTotal*100, 100-cfg.TopUpSharePct)
	if target < localTotal {
		target = localTotal
	}

	targets, err := mmpApportion(cfg.Divisor, target, national, opts)
	if err != nil {
		return nil, err
	}

	if cfg.Policy == AddSeats {
		// Grow until every voted option's target covers its local seats.
		for {
			short := false
			for _, o := range opts {
				if national[o.ID] > 0 && targets[o.ID] < local[o.ID] {
					short = true
					break
				}
			}
			if !short {
				break
			}
			target++
			targets, err = mmpApportion(cfg.Divisor, target, national, opts)
			if err != nil {
				return nil, err
			}
		}
	}

	res := &MMPResult{
		TargetHouse: target,
		Targets:     targets,
		TopUps:      make(map[core.OptionID]int64, len(opts)),
		Overhang:    make(map[core.OptionID]int64, len(opts)),
		Total:       make(map[core.OptionID]int64, len(opts)),
	}

	switch cfg.Policy {
	case AllowOverhang, AddSeats:
		// Top-ups exactly fill deficits; overhang (AllowOverhang only)
		// grows the effective house.
		for _, o := range opts {
			deficit := targets[o.ID] - local[o.ID]
			if deficit > 0 {
				res.TopUps[o.ID] = deficit
			} else if deficit < 0 {
				res.Overhang[o.ID] = -deficit
			}
		}

	case CompensateOthers:
		// Fixed house: the shared pool goes to deficit options only,
		// capped per option at its own deficit, by highest-averages
		// draw over (local + top-up) seats.
		pool := target - localTotal
		deficit := make(map[core.OptionID]int64, len(opts))
		ids := make([]core.OptionID, 0, len(opts))
		for _, o := range opts {
			ids = append(ids, o.ID)
			if d := targets[o.ID] - local[o.ID]; d > 0 {
				deficit[o.ID] = d
			} else if d < 0 {
				res.Overhang[o.ID] = -d
			}
		}
		// Same draw and tie rule as the apportionment: ascending id.
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for awarded := int64(0); awarded < pool; awarded++ {
			var best core.OptionID
			for _, id := range ids {
				if national[id] == 0 || res.TopUps[id] >= deficit[id] {
					continue
				}
				if best == "" {
					best = id
					continue
				}
				db, _ := divisorFor(cfg.Divisor, local[best]+res.TopUps[best])
				di, _ := divisorFor(cfg.Divisor, local[id]+res.TopUps[id])
				if tie.CompareRatios(uint64(national[id]), uint64(di), uint64(national[best]), uint64(db)) > 0 {
					best = id
				}
			}
			if best == "" {
				break // every deficit is filled; leave the rest of the pool unspent
			}
			res.TopUps[best]++
		}

	default:
		return nil, fmt.Errorf("%w: %d", ErrBadPolicy, int(cfg.Policy))
	}

	for _, o := range opts {
		res.Total[o.ID] = local[o.ID] + res.TopUps[o.ID]
		res.EffectiveHouse += res.Total[o.ID]
	}
	return res, nil
}
