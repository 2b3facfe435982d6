// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pool implements the per-resource-kind global pool: exponential
// decay toward equilibrium, budget inflow, and usage outflow (spec
// §4.3, §4.6, §4.8). Grounded on the teacher's params.CalcBaseFee, which
// similarly evolves a single scalar per block from a decay-like rolling
// average plus a bounded adjustment term.
package pool

import (
	"github.com/luxfi/rcengine/resource"
	"github.com/luxfi/rcengine/satmath"
)

// Decay computes the quantity subtracted from pool across dt time units
// (spec §4.3): decay = (pool * rate * dt) >> shift, saturating. dt == 0
// always yields zero without touching the multiply.
func Decay(pool, dt int64, params resource.DecayParams) int64 {
	if dt == 0 {
		return 0
	}
	scaled := satmath.MulSat(pool, dt)
	return satmath.ShiftRightSat(scaled, params.Rate, params.Shift)
}

// State is the pool singleton: one signed level per registered resource
// kind, plus the timestamp of the last update (spec §3).
type State struct {
	Levels     map[resource.Kind]int64 `json:"levels"`
	LastUpdate uint32                  `json:"last_update"`
}

// NewState initializes every registered kind's pool to its params.PoolEq,
// per spec §4.4 step 3.
func NewState(params *resource.ParamSet, now uint32) *State {
	levels := make(map[resource.Kind]int64, resource.Count())
	for _, p := range params.All() {
		levels[p.Kind] = p.PoolEq
	}
	return &State{Levels: levels, LastUpdate: now}
}

// Get returns the current level for kind k, or 0 if unknown.
func (s *State) Get(k resource.Kind) int64 {
	return s.Levels[k]
}

// SubsidySource supplies the externally-driven signal that slaves the
// new-accounts pool (spec I4): available_account_subsidies, already
// expressed in the same units get_... other callers use before dividing
// by SubsidyPrecision.
type SubsidySource interface {
	AvailableAccountSubsidies() int64
}

// SubsidyPrecision is the fixed-point scale of AvailableAccountSubsidies,
// matching the source chain's STEEM_ACCOUNT_SUBSIDY_PRECISION constant
// (spec I4, P7; original_source/libraries/plugins/rc/rc_plugin.cpp).
const SubsidyPrecision int64 = 10_000

// Update advances every pool by one block (spec §4.8 post-apply-block
// step 4). dtByKind supplies each kind's elapsed time-unit count (blocks
// or seconds, per its Params.TimeUnit), scaledUsage supplies
// usage[i]*resource_unit[i] already accumulated across the block's
// transactions, and subsidies is consulted only for the kind(s) tagged
// NewAccounts.
//
// blockTime becomes the new LastUpdate (spec §4.8 step 5).
func (s *State) Update(params *resource.ParamSet, dtByKind map[resource.Kind]int64, scaledUsage map[resource.Kind]int64, subsidies SubsidySource, blockTime uint32) {
	for _, p := range params.All() {
		if p.NewAccounts {
			s.Levels[p.Kind] = NewAccountsPoolLevel(subsidies, p.ResourceUnit)
			continue
		}

		dt := dtByKind[p.Kind]
		usage := scaledUsage[p.Kind]

		cur := s.Levels[p.Kind]
		next := satmath.SubSat(cur, Decay(cur, dt, p.Decay))
		next = satmath.AddSat(next, satmath.MulSat(p.BudgetPerTimeUnit, dt))
		next = satmath.SubSat(next, usage)
		s.Levels[p.Kind] = next
	}
	s.LastUpdate = blockTime
}

// NewAccountsPoolLevel computes the override value for the new-accounts
// pool (spec I4, P7): available_subsidies * resource_unit / SubsidyPrecision.
func NewAccountsPoolLevel(subsidies SubsidySource, resourceUnit int64) int64 {
	scaled, ok := satmath.MulDivTrunc(subsidies.AvailableAccountSubsidies(), resourceUnit, SubsidyPrecision)
	if !ok {
		return satmath.MaxInt64
	}
	return scaled
}
