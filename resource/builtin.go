// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package resource

// The four built-in resource kinds named as examples in spec §3. A host
// integrating a different resource taxonomy would replace this file;
// everything downstream (pricing, pool, coster) only depends on
// Registered()/Count(), never on these names directly.
var (
	History   = Register("history_bytes")
	State     = Register("state_bytes")
	Execution = Register("execution_time")
	// NewAccountsKind is the resource kind whose pool is slaved to the
	// account-subsidy signal rather than evolving via decay+budget-usage
	// (spec §4.8, invariant I4); see NewAccountsParamsOverride.
	NewAccountsKind = Register("new_accounts")
)

// NewAccountsParamsOverride marks p as the new-accounts pool in-place
// when its kind is NewAccountsKind. NewParamSet calls this for every
// kind after copying the seed's own field values, since the seed's JSON
// representation (mirroring the original resource_parameters.json) does
// not itself carry a boolean tag for this — it is positional in the
// upstream source, and we make it explicit instead.
func NewAccountsParamsOverride(p *Params) {
	if p.Kind == NewAccountsKind {
		p.NewAccounts = true
	}
}
