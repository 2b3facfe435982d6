// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package constants holds chain-wide constants for the RC engine,
// mirroring the teacher's constants package as the single place
// cross-cutting magic numbers live instead of being scattered through
// call sites.
package constants

// RegenTimeSeconds is the default mana-bar regeneration period (spec
// §4.1): five days in seconds, matching the source chain's
// STEEM_RC_REGEN_TIME.
const RegenTimeSeconds int64 = 60 * 60 * 24 * 5

// FindAccountsBatchLimit caps find_rc_accounts query requests (spec §6,
// §4.9, P8).
const FindAccountsBatchLimit = 100

// RegenTimeConstant is the divisor used to derive the chain-wide
// regeneration scalar R from total_vesting_shares (spec §4.7), equal to
// RegenTimeSeconds on chains whose stake and regen windows share units.
const RegenTimeConstant = RegenTimeSeconds
