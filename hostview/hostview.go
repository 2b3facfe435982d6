// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hostview defines the narrow interfaces through which the
// engine borrows host-owned state (spec §1, §9: "do not attempt to own
// the account object; treat it as a borrowed, read-only record"). The
// engine package depends only on these interfaces, never on a concrete
// chain implementation — the same narrow-interface discipline as the
// teacher's iface/interfaces packages (MinerPoWValidator, BlockChain)
// that let core packages stay decoupled from concrete node wiring.
package hostview

import (
	"github.com/luxfi/rcengine/pool"
	"github.com/luxfi/rcengine/rcaccount"
	"github.com/luxfi/rcengine/resource"
)

// GlobalProperties is the subset of host-wide chain properties the
// engine reads each block (spec §4.7, §4.8).
type GlobalProperties struct {
	TotalVestingShares     int64
	AccountSubsidies       int64
	HeadBlockTime          uint32
	HardForkZeroOneActive  bool
}

// AvailableAccountSubsidies implements pool.SubsidySource so
// GlobalProperties can be passed directly to pool.State.Update.
func (g GlobalProperties) AvailableAccountSubsidies() int64 {
	return g.AccountSubsidies
}

// AccountView is the borrowed, read-only stake projection of a host
// account (spec §4.5, §9).
type AccountView interface {
	Name() string
	Stake() rcaccount.StakeView
}

// ParamStore is the parameter singleton (spec §3, §4.4): write-once at
// first block, read-only afterward.
type ParamStore interface {
	// Initialized reports whether the parameter singleton has been
	// created yet.
	Initialized() bool
	// Init seeds the singleton from the genesis parameter set. Must only
	// be called once; its caller, engine.Engine.OnFirstBlock, does not
	// check the "before first block" cache first, so a second call is
	// left to the implementation to reject.
	Init(params *resource.ParamSet) error
	// Params returns the parsed, registration-ordered parameter set.
	Params() (*resource.ParamSet, error)
}

// PoolStore is the pool singleton (spec §3, §4.6): read-only between
// block handlers, written exactly once per block by the engine.
type PoolStore interface {
	Get() *pool.State
	Set(*pool.State)
}

// AccountStore is the RC-account index, keyed by account name (spec §3,
// "indexed by name and by id" — id indexing is a host storage-layer
// concern the engine does not need).
type AccountStore interface {
	Get(name string) (*rcaccount.State, bool)
	Put(state *rcaccount.State)
	// Exists is a cheap existence probe rather than a full Get; used by
	// OnFirstBlock to skip accounts that already have RC state.
	Exists(name string) bool
	// All enumerates every RC account, in no particular order; used by
	// Engine.Validate.
	All() []*rcaccount.State
}

// Store bundles every host-owned collaborator the engine needs for one
// handler invocation (spec §5: "the only shared mutable state is the
// three host-owned indices"). The host constructs one Store and hands
// it to engine.Engine's hooks.
type Store interface {
	Accounts() AccountStore
	Params() ParamStore
	Pools() PoolStore
	GlobalProps() GlobalProperties
	// Account resolves a host account by name, for the stake fields
	// the engine needs but does not own (spec §9).
	Account(name string) (AccountView, bool)
	// Snapshot returns a consistent, read-only view suitable for the
	// query surface to hold across a request without blocking the
	// engine's handler thread (spec §5).
	Snapshot() Snapshot
}

// Snapshot is the read-only projection package query operates over.
type Snapshot interface {
	Params() (*resource.ParamSet, error)
	Pool() *pool.State
	FindAccounts(names []string) []*rcaccount.State
}
