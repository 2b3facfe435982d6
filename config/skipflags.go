// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the RC engine's runtime-mutable skip-flag word
// (spec §6, §9) and the viper/pflag-backed process configuration that
// sets its defaults, following the teacher's config precedence (flags
// override file override defaults).
package config

// SkipFlags is the runtime-mutable, process-wide skip-flag word of spec
// §6: "{reject_not_enough_rc: reject, deduct: on, negative_balance:
// disallowed, reject_unknown_delta_vests: warn-only}".
type SkipFlags struct {
	// RejectNotEnoughRC mirrors the rc-skip-reject-not-enough-rc config
	// flag: when true, insufficient-RC transactions are not rejected
	// even under production.
	RejectNotEnoughRC bool
	// DeductRC: when true, charging is a no-op (observability mode).
	DeductRC bool
	// NegativeRCBalance: when true, an underfunded deduction is skipped
	// instead of going negative.
	NegativeRCBalance bool
	// RejectUnknownDeltaVests: when true, an I3 divergence is a warning
	// rather than a fatal assert.
	RejectUnknownDeltaVests bool
}

// DefaultSkipFlags returns spec §6's default skip-flag word: reject
// underfunded transactions, deduct normally, disallow negative
// balances, and only warn (not fail) on I3 divergence — matching the
// source chain setting reject_unknown_delta_vests to 1 at construction.
func DefaultSkipFlags() SkipFlags {
	return SkipFlags{
		RejectNotEnoughRC:       false, // "reject" means the reject path is NOT skipped
		DeductRC:                false, // "on" means deduction is NOT skipped
		NegativeRCBalance:       false, // "disallowed" means skipping negative balance is NOT enabled
		RejectUnknownDeltaVests: true,  // "warn-only" is the skip-enabled default
	}
}
