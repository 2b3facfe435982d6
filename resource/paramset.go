// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package resource

import "fmt"

// ParamSet is the singleton parameter record of spec §3/§4.4: one Params
// per registered Kind, created exactly once at first block and never
// mutated thereafter.
type ParamSet struct {
	byKind map[Kind]Params
}

// NewParamSet builds a ParamSet from a seed that supplies exactly one
// Params per registered Kind (spec §4.4 step 2). It returns an error
// (never panics) because a malformed genesis seed is a recoverable
// startup failure (spec §7: "seed parse failure: fatal at first-block
// initialization" — fatal to the caller, not to this library).
func NewParamSet(seed map[Kind]Params) (*ParamSet, error) {
	out := make(map[Kind]Params, len(Registered()))
	for _, k := range Registered() {
		p, ok := seed[k]
		if !ok {
			return nil, fmt.Errorf("resource: genesis seed missing params for kind %q", Name(k))
		}
		p.Kind = k
		p.Name = Name(k)
		NewAccountsParamsOverride(&p)
		if p.ResourceUnit <= 0 {
			return nil, fmt.Errorf("resource: kind %q has non-positive resource_unit", p.Name)
		}
		out[k] = p
	}
	return &ParamSet{byKind: out}, nil
}

// Get returns the params for k. Callers only ever pass a k obtained from
// Registered(), so a missing entry indicates a construction bug, not a
// runtime condition to recover from.
func (s *ParamSet) Get(k Kind) Params {
	p, ok := s.byKind[k]
	if !ok {
		panic(fmt.Sprintf("resource: params for unregistered kind %q requested", Name(k)))
	}
	return p
}

// All returns every kind's params in registration order.
func (s *ParamSet) All() []Params {
	kinds := Registered()
	out := make([]Params, len(kinds))
	for i, k := range kinds {
		out[i] = s.Get(k)
	}
	return out
}
