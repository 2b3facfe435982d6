// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mana implements the regenerating token bucket ("mana bar") that
// underlies both per-account RC balances and, in the original chain, vote
// power. See spec §4.1. Grounded on the teacher's pure-function pricing
// style (plugin/evm/blockgascost.BlockGasCost) and directly on the C++
// manabar_params/regenerate_mana call sites in
// original_source/libraries/plugins/rc/rc_plugin.cpp.
package mana

import "github.com/luxfi/rcengine/satmath"

// Bar is a capped, linearly regenerating scalar bucket (spec §3).
type Bar struct {
	CurrentMana    int64  `json:"current_mana"`
	LastUpdateTime uint32 `json:"last_update_time"`
}

// RegenTime is the constant regeneration period. The source chain uses
// five days in seconds (STEEM_RC_REGEN_TIME); kept as the package default
// but callers may supply their own via Regenerate's regenTime parameter
// so the formula stays a pure function of its inputs.
const RegenTime int64 = 60 * 60 * 24 * 5

// Regenerate updates bar in place given the account's current max mana
// (supplied by the caller, not stored — spec §3) and the current time.
// Clamping is asymmetric: only the high side is capped (spec §4.1 step 3).
func Regenerate(bar *Bar, maxMana int64, regenTime int64, now uint32) {
	if regenTime <= 0 {
		regenTime = RegenTime
	}
	var dt int64
	if now > bar.LastUpdateTime {
		dt = int64(now - bar.LastUpdateTime)
	}

	regen, ok := satmath.MulDivTrunc(maxMana, dt, regenTime)
	if !ok {
		// A configuration producing an unrepresentable regen amount is a
		// parameter bug; clamp to the cap rather than propagate garbage,
		// since regen can only ever move current_mana toward max_mana.
		regen = maxMana
	}

	sum := satmath.AddSat(bar.CurrentMana, regen)
	if sum > maxMana {
		sum = maxMana
	}
	bar.CurrentMana = sum
	bar.LastUpdateTime = now
}

// HasMana reports whether bar currently holds at least cost.
func HasMana(bar *Bar, cost int64) bool {
	return bar.CurrentMana >= cost
}

// UseMana deducts cost from bar. The caller decides (via the skip-flag
// gated policy in package engine) whether going negative is permitted;
// this function itself never refuses.
func UseMana(bar *Bar, cost int64) {
	bar.CurrentMana = satmath.SubSat(bar.CurrentMana, cost)
}
