// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rcaccount implements per-account RC state and its derived
// maximum-mana formula (spec §4.5, §3). Grounded directly on the C++
// rc_account_object / regenerate_rc_mana / update_rc_account_after_pre_op
// logic in original_source/libraries/plugins/rc/rc_plugin.cpp, carried
// over to the teacher's style of small value-object types with
// free-function operations (mirroring mana.Bar/Regenerate).
package rcaccount

import (
	"github.com/luxfi/rcengine/mana"
	"github.com/luxfi/rcengine/satmath"
)

// SentinelMaxTime marks "no pending withdrawal" in WithdrawSchedule.NextTime,
// matching the source chain's use of time_point_sec::maximum().
const SentinelMaxTime uint32 = 0xFFFFFFFF

// WithdrawSchedule is the subset of a vesting-withdrawal schedule that
// feeds the derived maximum (spec §4.5).
type WithdrawSchedule struct {
	ToWithdraw int64
	Withdrawn  int64
	Rate       int64
	NextTime   uint32
}

// NextWithdrawal returns the portion of a pending vesting withdrawal
// that is already committed to leave the account, per spec §4.5:
//
//	next_withdrawal = (next_time == SENTINEL_MAX) ? 0 : min(rate, to_withdraw-withdrawn)
func (w WithdrawSchedule) NextWithdrawal() int64 {
	if w.NextTime == SentinelMaxTime {
		return 0
	}
	remaining := satmath.SubSat(w.ToWithdraw, w.Withdrawn)
	if w.Rate < remaining {
		return w.Rate
	}
	return remaining
}

// StakeView is the borrowed, read-only stake data the host supplies for
// an account (spec §4.5). The engine never owns these fields; it only
// reads them through this narrow view when recomputing a derived maximum.
type StakeView struct {
	VestingShares      int64
	DelegatedOut       int64
	ReceivedVesting    int64
	CreationAdjustment int64
	Withdraw           WithdrawSchedule
}

// MaxMana computes spec §4.5's derived maximum for a single account,
// saturating at every step so adversarial stake combinations cannot
// wrap instead of clamp.
func MaxMana(stake StakeView) int64 {
	m := satmath.SubSat(stake.VestingShares, stake.DelegatedOut)
	m = satmath.AddSat(m, stake.ReceivedVesting)
	m = satmath.AddSat(m, stake.CreationAdjustment)
	m = satmath.SubSat(m, stake.Withdraw.NextWithdrawal())
	return m
}

// State is one host account's RC record (spec §3).
type State struct {
	Account                 string   `json:"account"`
	ManaBar                 mana.Bar `json:"rc_manabar"`
	MaxRCCreationAdjustment int64    `json:"max_rc_creation_adjustment"`
	MaxRC                   int64    `json:"max_rc"`
	LastMaxRC               int64    `json:"last_max_rc"`
}

// Create instantiates a fresh RC record for account at the given time
// (spec §4.5 "Creation"). Idempotency is the caller's responsibility
// (package engine): Create always returns a brand-new zeroed-then-seeded
// record, so callers must check for an existing record first (see
// engine's ensureRCAccount).
func Create(account string, now uint32, stake StakeView, creationFee int64) *State {
	max := MaxMana(stake)
	return &State{
		Account: account,
		ManaBar: mana.Bar{
			CurrentMana:    max,
			LastUpdateTime: now,
		},
		MaxRCCreationAdjustment: creationFee,
		MaxRC:                   max,
		LastMaxRC:               max,
	}
}

// RecomputeLastMaxRC refreshes LastMaxRC from the account's current
// stake view, restoring invariant I3 (spec §4.8 post-apply-operation).
func (s *State) RecomputeLastMaxRC(stake StakeView) {
	s.LastMaxRC = MaxMana(stake)
}

// Regenerate brings the account's mana bar up to now against maxMana.
// The ground truth (rc_plugin.cpp's get_maximum_rc/regenerate_rc_mana)
// always derives this cap fresh from the account's current stake before
// regenerating, rather than trusting the cached LastMaxRC, so callers
// must pass MaxMana(stake) here rather than s.LastMaxRC — using the
// stale cache would regenerate against the wrong ceiling whenever stake
// has drifted since the last post-apply-operation recompute (spec I3).
func (s *State) Regenerate(maxMana int64, regenTime int64, now uint32) {
	mana.Regenerate(&s.ManaBar, maxMana, regenTime, now)
}
