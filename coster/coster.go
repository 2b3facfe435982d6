// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package coster implements the transaction-resource accounting and
// charging policy of spec §4.7: turning a transaction into a per-kind
// usage vector, selecting the fee payer, and pricing the usage against
// the pool; the decision whether/how to deduct lives in package engine
// (Engine.PostApplyTransaction). Grounded directly on the C++
// count_resources / get_resource_user / get_current_rc_usage helpers in
// original_source/libraries/plugins/rc/rc_plugin.cpp, expressed as pure
// functions the way the teacher expresses blockgascost.BlockGasCost.
package coster

import (
	"github.com/luxfi/rcengine/pricing"
	"github.com/luxfi/rcengine/rcerrors"
	"github.com/luxfi/rcengine/resource"
)

// Operation is the minimal per-operation view the visitor needs: its
// kind tag and the three required-authority account sets, in the order
// spec §4.7 consults them. Concrete host operation types implement this
// (or the host adapts them) rather than the engine depending on a
// concrete operation representation.
type Operation interface {
	// Tag identifies special-cased operation kinds; anything not one of
	// the recognized constants falls through to the default rule.
	Tag() OperationTag
	// WitnessSetPropertiesOwner returns the owner field for a
	// witness_set_properties operation; only consulted when Tag ==
	// OpWitnessSetProperties.
	WitnessSetPropertiesOwner() string
	// RecoverAccountNames returns, in order, the new-owner-authority
	// account-auths names, the recent-owner-authority names, and the
	// account-to-recover name; only consulted when Tag == OpRecoverAccount.
	RecoverAccountNames() (newOwnerAuths, recentOwnerAuths []string, accountToRecover string)
	// RequiredAuthActive/Owner/Posting return the account names in each
	// required-authority set, in the order the operation requires them.
	RequiredAuthActive() []string
	RequiredAuthOwner() []string
	RequiredAuthPosting() []string
}

// OperationTag distinguishes the operation kinds spec §4.7 special-cases
// from the default resource-user rule.
type OperationTag int

const (
	OpDefault OperationTag = iota
	OpWitnessSetProperties
	OpRecoverAccount
)

// ResourceUser selects the account billed for a transaction (spec §4.7):
// the first operation to yield a non-empty name wins. Returns "" if no
// operation yields a name.
func ResourceUser(ops []Operation) string {
	for _, op := range ops {
		if name := resourceUserForOp(op); name != "" {
			return name
		}
	}
	return ""
}

func resourceUserForOp(op Operation) string {
	switch op.Tag() {
	case OpWitnessSetProperties:
		return op.WitnessSetPropertiesOwner()
	case OpRecoverAccount:
		newOwner, recentOwner, toRecover := op.RecoverAccountNames()
		if len(newOwner) > 0 {
			return newOwner[0]
		}
		if len(recentOwner) > 0 {
			return recentOwner[0]
		}
		return toRecover
	default:
		for _, set := range [][]string{op.RequiredAuthActive(), op.RequiredAuthOwner(), op.RequiredAuthPosting()} {
			if len(set) > 0 {
				return set[0]
			}
		}
		return ""
	}
}

// CountResources walks every operation in a transaction and accumulates
// per-kind raw counts (spec §4.7). The per-operation weighting function
// is the host's resource policy, not the core's — Weigher is supplied by
// the host.
type Weigher func(op Operation, usage map[resource.Kind]int64)

// CountResources returns the accumulated usage vector for a transaction,
// applying weigh to every operation in order.
func CountResources(ops []Operation, weigh Weigher) map[resource.Kind]int64 {
	usage := make(map[resource.Kind]int64, resource.Count())
	for _, op := range ops {
		weigh(op, usage)
	}
	return usage
}

// RegenScalar computes the chain-wide regeneration scalar R of spec
// §4.7: total_vesting_shares / regen_time_constant.
func RegenScalar(totalVestingShares, regenTimeConstant int64) int64 {
	if regenTimeConstant == 0 {
		return 0
	}
	return totalVestingShares / regenTimeConstant
}

// KindCost is one resource kind's priced usage within a transaction.
type KindCost struct {
	Kind        resource.Kind
	ScaledUsage int64
	Cost        int64
}

// Price computes scaled_usage[i] and cost[i] for every registered kind,
// plus the transaction total, per spec §4.7's pricing table.
func Price(params *resource.ParamSet, poolLevels map[resource.Kind]int64, usage map[resource.Kind]int64, regen int64) ([]KindCost, int64, error) {
	out := make([]KindCost, 0, resource.Count())
	var total int64
	for _, p := range params.All() {
		scaled := usage[p.Kind] * p.ResourceUnit
		cost, err := pricing.Cost(poolLevels[p.Kind], scaled, regen, p.Curve)
		if err != nil {
			return nil, 0, rcerrors.WrapArithmeticOverflow(err)
		}
		out = append(out, KindCost{Kind: p.Kind, ScaledUsage: scaled, Cost: cost})
		total += cost
	}
	return out, total, nil
}
