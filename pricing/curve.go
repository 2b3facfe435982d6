// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pricing implements the pure pricing-curve function of spec
// §4.2: cost = delta*(A<<S) / ((pool+B)*R), rounded to the nearest
// integer with ties away from zero. Grounded on the
// teacher's pure pricing functions (plugin/evm/blockgascost.BlockGasCost,
// params.CalcBaseFee), which take a config-like parameter struct and
// derive a scalar with no I/O — the same shape spec §4.2 requires
// ("The curve is pure: no I/O, no mutation").
package pricing

import (
	"errors"
	"fmt"

	"github.com/luxfi/rcengine/resource"
	"github.com/luxfi/rcengine/satmath"
)

// ErrNonPositiveDenominator is returned when pool+B <= 0, which spec §4.2
// and the open question in spec §9 both flag as outside the curve's
// defined domain — a parameter-configuration issue, not a runtime value
// to silently clamp.
var ErrNonPositiveDenominator = errors.New("pricing: pool+curve_b is non-positive")

// Cost computes the RC price of consuming delta units from a pool
// currently at level pool, given the chain-wide regen scalar regen (spec
// §4.7's R) and the resource kind's curve parameters.
//
//   - regen == 0: bootstrap period with no stake; every cost is zero.
//   - delta == 0: cost is zero without touching the denominator.
//   - pool+B <= 0: returns ErrNonPositiveDenominator; the curve is only
//     defined for non-negative pool inputs (spec §4.2, §9).
func Cost(pool, delta, regen int64, curve resource.CurveParams) (int64, error) {
	if regen == 0 {
		return 0, nil
	}
	if delta == 0 {
		return 0, nil
	}

	denomBase := satmath.AddSat(pool, curve.CoeffB)
	if denomBase <= 0 {
		return 0, ErrNonPositiveDenominator
	}

	denom := satmath.MulSat(denomBase, regen)
	if denom <= 0 {
		// denomBase*regen overflowed past MaxInt64 and saturated, or a
		// sign flip slipped through MulSat's saturation; either way the
		// configuration is unusable.
		return 0, fmt.Errorf("pricing: denominator %d*%d overflowed", denomBase, regen)
	}

	cost, ok := satmath.MulShiftDivRound(delta, curve.CoeffA, curve.Shift, denom)
	if !ok {
		return 0, fmt.Errorf("pricing: cost computation overflowed for delta=%d curve=%+v pool=%d regen=%d", delta, curve, pool, regen)
	}
	if cost < 0 {
		// A negative cost would let a transaction raise the payer's
		// balance; the source formula never intends this (ceil of a
		// ratio of two positives), so treat it as saturation.
		cost = 0
	}
	return cost, nil
}
