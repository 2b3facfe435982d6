// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/luxfi/rcengine/resource"
)

// GenesisKindParams is one (kind, param_obj) pair in the genesis seed
// (spec §4.4, §6): "a list of (kind, param_obj) pairs" delivered as an
// opaque text blob, parsed exactly once at first-block initialization.
// The seed's list order determines kind registration order only insofar
// as it must match resource.Registered(); resource kinds are registered
// at program start (resource/builtin.go init), so the seed is validated
// against that fixed order rather than defining it.
type GenesisKindParams struct {
	Kind              string             `json:"kind"`
	ResourceUnit      int64              `json:"resource_unit"`
	Curve             resource.CurveParams `json:"curve_params"`
	Decay             resource.DecayParams `json:"decay_params"`
	BudgetPerTimeUnit int64              `json:"budget_per_time_unit"`
	PoolEq            int64              `json:"pool_eq"`
	TimeUnit          string             `json:"time_unit"`
}

// GenesisSeed is the top-level shape of the opaque genesis descriptor
// (spec §4.4 step 1, §6 "Genesis seed").
type GenesisSeed struct {
	Kinds []GenesisKindParams `json:"kinds"`
}

// ParseGenesisSeed decodes the genesis descriptor and builds a
// resource.ParamSet from it (spec §4.4 steps 1-2). A malformed or
// incomplete seed is a recoverable parse error here; the caller (package
// engine, at OnFirstBlock) is responsible for treating it as fatal (spec
// §7: "Seed parse failure: fatal at first-block initialization").
func ParseGenesisSeed(data []byte) (*resource.ParamSet, error) {
	var seed GenesisSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("config: invalid genesis seed JSON: %w", err)
	}

	order := resource.Registered()
	byKind := make(map[resource.Kind]resource.Params, len(seed.Kinds))
	for i, kp := range seed.Kinds {
		kind, ok := resource.ByName(kp.Kind)
		if !ok {
			return nil, fmt.Errorf("config: genesis seed names unknown resource kind %q", kp.Kind)
		}
		if i >= len(order) {
			return nil, fmt.Errorf("config: genesis seed lists more than %d kinds", len(order))
		}
		if order[i] != kind {
			return nil, fmt.Errorf("config: genesis seed entry %d is %q, want %q", i, kp.Kind, resource.Name(order[i]))
		}
		timeUnit, err := parseTimeUnit(kp.TimeUnit)
		if err != nil {
			return nil, fmt.Errorf("config: kind %q: %w", kp.Kind, err)
		}
		byKind[kind] = resource.Params{
			Kind:              kind,
			ResourceUnit:      kp.ResourceUnit,
			Curve:             kp.Curve,
			Decay:             kp.Decay,
			BudgetPerTimeUnit: kp.BudgetPerTimeUnit,
			PoolEq:            kp.PoolEq,
			TimeUnit:          timeUnit,
		}
	}

	return resource.NewParamSet(byKind)
}

func parseTimeUnit(s string) (resource.TimeUnit, error) {
	switch s {
	case "blocks", "":
		return resource.TimeUnitBlocks, nil
	case "seconds":
		return resource.TimeUnitSeconds, nil
	default:
		return 0, fmt.Errorf("unknown time_unit %q", s)
	}
}
