// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package resource defines the fixed resource-kind taxonomy and the
// per-kind parameters that the pricing curve and pool decay read (spec
// §3, §4.4). Resource kinds are registered at package-init time in a
// style adapted from the teacher's precompile module registry
// (precompile/registry + precompile/modules.RegisterModule in
// github.com/luxfi/evm): a deterministic, duplicate-checked, sorted-by-
// index registry, repurposed here from "precompile at an address" to
// "resource kind at an array index" — spec §4.4 requires that index
// order to be part of the external contract.
package resource

import (
	"fmt"
	"sort"
)

// Kind identifies one axis of the transaction-cost space. The zero value
// is not a valid kind; kinds are assigned by Register.
type Kind uint8

// TimeUnit chooses the dt source used when evolving a pool between
// blocks (spec §3).
type TimeUnit uint8

const (
	TimeUnitBlocks TimeUnit = iota
	TimeUnitSeconds
)

func (u TimeUnit) String() string {
	switch u {
	case TimeUnitBlocks:
		return "blocks"
	case TimeUnitSeconds:
		return "seconds"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(u))
	}
}

// CurveParams are the pricing-curve coefficients for one resource kind
// (spec §4.2): cost = delta*(A<<S) / ((pool+B)*regen), rounded to the
// nearest integer with ties away from zero.
type CurveParams struct {
	CoeffA int64 `json:"coeff_a"`
	CoeffB int64 `json:"coeff_b"`
	Shift  uint  `json:"shift"`
}

// DecayParams are the pre-tabulated decay rate and shift for one resource
// kind (spec §4.3): decay = (pool*rate*dt) >> shift.
type DecayParams struct {
	Rate  int64 `json:"decay_rate"`
	Shift uint  `json:"decay_shift"`
}

// Params is one resource kind's immutable-after-genesis parameter record
// (spec §3).
type Params struct {
	Kind              Kind        `json:"-"`
	Name              string      `json:"-"`
	ResourceUnit      int64       `json:"resource_unit"`
	Curve             CurveParams `json:"curve_params"`
	Decay             DecayParams `json:"decay_params"`
	BudgetPerTimeUnit int64       `json:"budget_per_time_unit"`
	PoolEq            int64       `json:"pool_eq"`
	TimeUnit          TimeUnit    `json:"time_unit"`
	// NewAccounts marks the resource kind that is slaved to the account
	// subsidy signal instead of evolving via decay+budget-usage (spec
	// §4.8, invariant I4). Exactly one registered kind should set this.
	NewAccounts bool `json:"-"`
}

// entry pairs a registered kind with its human-readable name, matching
// the teacher's Module{ConfigKey, Address, ...} pairing.
type entry struct {
	kind Kind
	name string
}

var (
	registered []entry
	byName     = map[string]Kind{}
	nextKind   Kind = 1
)

// Register assigns the next available Kind to name and returns it. It
// panics on a duplicate name, mirroring the teacher's
// precompile/modules.RegisterModule behavior of refusing to start up
// with a config-key collision — a resource-taxonomy collision is exactly
// as much a programming error as a precompile address collision.
//
// Register must be called from package init() of the resource-taxonomy
// definition (see resource/builtin.go) so that the registered order is
// fixed at program start, before any genesis seed is parsed.
func Register(name string) Kind {
	if _, exists := byName[name]; exists {
		panic(fmt.Sprintf("resource: kind %q already registered", name))
	}
	k := nextKind
	nextKind++
	registered = append(registered, entry{kind: k, name: name})
	sort.Slice(registered, func(i, j int) bool { return registered[i].kind < registered[j].kind })
	byName[name] = k
	return k
}

// Registered returns every registered kind in deterministic ascending
// order. The order is the external contract named in spec §4.4.
func Registered() []Kind {
	out := make([]Kind, len(registered))
	for i, e := range registered {
		out[i] = e.kind
	}
	return out
}

// Name returns the human-readable name a kind was registered with, or
// "" if unknown.
func Name(k Kind) string {
	for _, e := range registered {
		if e.kind == k {
			return e.name
		}
	}
	return ""
}

// ByName resolves a registered kind by its name, used when parsing the
// genesis seed (spec §4.4).
func ByName(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

// Count returns the number of registered kinds (the compile-time
// constant N of spec §3, fixed once builtin.go's init has run).
func Count() int {
	return len(registered)
}
