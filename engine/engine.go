// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine wires the mana, pricing, pool, resource, rcaccount and
// coster packages into the five host-facing event hooks of spec §4.8.
// Grounded on the teacher's core.StateProcessor.Process (the driver of
// per-transaction pre/post hooks) and consensus/dummy's block-finalize
// hook, generalized here from "apply one EVM block" to "apply one RC
// block" over the hostview.Store boundary.
package engine

import (
	"fmt"

	"github.com/luxfi/rcengine/coster"
	"github.com/luxfi/rcengine/config"
	"github.com/luxfi/rcengine/hostview"
	"github.com/luxfi/rcengine/internal/rclog"
	"github.com/luxfi/rcengine/mana"
	"github.com/luxfi/rcengine/nameset"
	"github.com/luxfi/rcengine/pool"
	"github.com/luxfi/rcengine/rcaccount"
	"github.com/luxfi/rcengine/rcerrors"
	"github.com/luxfi/rcengine/rcmetrics"
	"github.com/luxfi/rcengine/resource"
)

// Engine is the stateful coordinator the host embeds. It holds no
// mutable domain state of its own beyond the monotone "before first
// block" cache (spec §9) and the current skip-flag word (spec §6) — all
// durable state lives behind hostview.Store.
type Engine struct {
	regenTime int64
	flags     config.SkipFlags

	// beforeFirstBlock is the monotone cache of spec §9: starts true, is
	// re-checked against the store only while still true, and once it
	// observes the store is initialized it never asks again.
	beforeFirstBlock bool

	// metrics is optional; nil means "no observability wired", which
	// every hook below must treat as a no-op rather than a nil-pointer
	// fault.
	metrics *rcmetrics.Metrics
}

// New constructs an Engine. regenTime is the mana-bar regeneration
// period (spec §4.1); flags is the initial skip-flag word (spec §6).
func New(regenTime int64, flags config.SkipFlags) *Engine {
	return &Engine{
		regenTime:        regenTime,
		flags:            flags,
		beforeFirstBlock: true,
	}
}

// SetSkipFlags replaces the current skip-flag word (spec §6: "runtime-
// mutable").
func (e *Engine) SetSkipFlags(flags config.SkipFlags) {
	e.flags = flags
}

// SetMetrics attaches a Metrics bundle the engine's hooks report into.
// Pass nil (the default) to run without observability.
func (e *Engine) SetMetrics(m *rcmetrics.Metrics) {
	e.metrics = m
}

// isBeforeFirstBlock reports whether genesis initialization has not yet
// run, consulting the store only while the cache still says true (spec
// §9's monotone-cache optimization).
func (e *Engine) isBeforeFirstBlock(store hostview.Store) bool {
	if !e.beforeFirstBlock {
		return false
	}
	if store.Params().Initialized() {
		e.beforeFirstBlock = false
		return false
	}
	return true
}

// OnFirstBlock performs spec §4.4's genesis initialization plus §4.8
// step 1's "create RC state for every pre-existing account with a zero
// creation-adjustment". seed is the parsed genesis parameter set
// (package config.ParseGenesisSeed is the caller's usual source);
// existingAccounts enumerates every account known to the host before
// RC tracking began.
func (e *Engine) OnFirstBlock(store hostview.Store, seed *resource.ParamSet, existingAccounts []hostview.AccountView, now uint32) error {
	if err := store.Params().Init(seed); err != nil {
		return rcerrors.WrapSeedParseFailure(err)
	}

	state := pool.NewState(seed, now)
	store.Pools().Set(state)

	for _, acct := range existingAccounts {
		if store.Accounts().Exists(acct.Name()) {
			continue
		}
		st := rcaccount.Create(acct.Name(), now, acct.Stake(), 0)
		store.Accounts().Put(st)
	}

	e.beforeFirstBlock = false
	return nil
}

// ensureRCAccount implements spec §4.5's idempotent creation: returns
// the existing record if present, otherwise creates and stores one.
func ensureRCAccount(store hostview.Store, acct hostview.AccountView, now uint32, creationFee int64) *rcaccount.State {
	if st, ok := store.Accounts().Get(acct.Name()); ok {
		return st
	}
	st := rcaccount.Create(acct.Name(), now, acct.Stake(), creationFee)
	store.Accounts().Put(st)
	return st
}

// PreApplyOperation regenerates the mana bar of every account an
// about-to-land operation will affect, and detects I3 divergence before
// the operation is applied (spec §4.8 "Pre-apply-operation"). affected
// lists the accounts touched by the operation's stake-mutating fields;
// the host (or a thin adapter) determines this set per operation kind.
// Before the first block has run, this is a no-op (spec §4.8: "Before
// the first block hook has run, all operation hooks are no-ops").
func (e *Engine) PreApplyOperation(store hostview.Store, affected []string, now uint32, modified nameset.Set[string]) error {
	if e.isBeforeFirstBlock(store) {
		return nil
	}

	for _, name := range affected {
		st, ok := store.Accounts().Get(name)
		if !ok {
			return rcerrors.NewMissingRCAccount(name)
		}

		acct, ok := store.Account(name)
		if !ok {
			return rcerrors.NewMissingRCAccount(name)
		}
		derived := rcaccount.MaxMana(acct.Stake())
		if derived != st.LastMaxRC {
			if !e.flags.RejectUnknownDeltaVests {
				return rcerrors.NewUnknownStakeDelta(name, st.LastMaxRC, derived)
			}
			rclog.Warn("rcengine: max_mana diverges from cached last_max_rc", "account", name, "last_max_rc", st.LastMaxRC, "derived", derived)
		}
		// warn-only (default) falls through: regenerate against the
		// freshly derived maximum rather than the stale cache, so the
		// mana bar self-corrects instead of compounding the divergence;
		// post-apply-operation then recomputes last_max_rc itself.
		st.Regenerate(derived, e.regenTime, now)

		store.Accounts().Put(st)
		modified.Add(name)
	}
	return nil
}

// PostApplyOperation creates RC state for newly created accounts and
// recomputes last_max_rc for every account in modified, restoring
// invariant I3 (spec §4.8 "Post-apply-operation"). createdAccounts lists
// accounts an account-creation-family operation just brought into
// existence, each paired with its creation fee.
func (e *Engine) PostApplyOperation(store hostview.Store, createdAccounts map[string]int64, modified nameset.Set[string], now uint32) error {
	if e.isBeforeFirstBlock(store) {
		return nil
	}

	for name, fee := range createdAccounts {
		acct, ok := store.Account(name)
		if !ok {
			return rcerrors.NewMissingRCAccount(name)
		}
		ensureRCAccount(store, acct, now, fee)
	}

	for _, name := range modified.Slice() {
		st, ok := store.Accounts().Get(name)
		if !ok {
			return rcerrors.NewMissingRCAccount(name)
		}
		acct, ok := store.Account(name)
		if !ok {
			return rcerrors.NewMissingRCAccount(name)
		}
		st.RecomputeLastMaxRC(acct.Stake())
		store.Accounts().Put(st)
	}
	return nil
}

// ChargeResult reports the outcome of PostApplyTransaction's charging
// policy, for export-sink publication and metrics.
type ChargeResult struct {
	ResourceUser string
	Usage        map[resource.Kind]int64
	Costs        []coster.KindCost
	TotalCost    int64
	Charged      bool
}

// PostApplyTransaction prices and charges a transaction per spec §4.7.
// producing indicates whether the local node is actively producing the
// block (vs. replaying); hardForkZeroOneActive gates the reject path the
// same way the source chain gates it on a hard-fork activation height.
func (e *Engine) PostApplyTransaction(store hostview.Store, txID string, resourceUser string, usage map[resource.Kind]int64, now uint32, producing bool, hardForkZeroOneActive bool) (*ChargeResult, error) {
	if e.isBeforeFirstBlock(store) {
		return nil, nil
	}

	if resourceUser == "" {
		if producing && !e.flags.RejectNotEnoughRC {
			if e.metrics != nil {
				e.metrics.TransactionsRejected.Inc()
			}
			return nil, rcerrors.NewNoResourceUser(txID)
		}
		return &ChargeResult{Usage: usage}, nil
	}

	params, err := store.Params().Params()
	if err != nil {
		return nil, err
	}
	poolState := store.Pools().Get()
	globals := store.GlobalProps()
	regen := coster.RegenScalar(globals.TotalVestingShares, e.regenTime)

	levels := make(map[resource.Kind]int64, resource.Count())
	for _, p := range params.All() {
		levels[p.Kind] = poolState.Get(p.Kind)
	}

	costs, total, err := coster.Price(params, levels, usage, regen)
	if err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.TransactionsCosted.Inc()
		e.metrics.RegenScalar.Set(float64(regen))
	}

	st, ok := store.Accounts().Get(resourceUser)
	if !ok {
		return nil, rcerrors.NewMissingRCAccount(resourceUser)
	}
	acct, ok := store.Account(resourceUser)
	if !ok {
		return nil, rcerrors.NewMissingRCAccount(resourceUser)
	}
	st.Regenerate(rcaccount.MaxMana(acct.Stake()), e.regenTime, now)

	result := &ChargeResult{ResourceUser: resourceUser, Usage: usage, Costs: costs, TotalCost: total}

	hasEnough := mana.HasMana(&st.ManaBar, total)
	switch {
	case !hasEnough && !e.flags.RejectNotEnoughRC && hardForkZeroOneActive && producing:
		store.Accounts().Put(st)
		if e.metrics != nil {
			e.metrics.TransactionsRejected.Inc()
		}
		return result, rcerrors.NewInsufficientRC(resourceUser, total)
	case !hasEnough && e.flags.NegativeRCBalance:
		// do not deduct
	case e.flags.DeductRC:
		// deduction disabled (observability mode)
	default:
		mana.UseMana(&st.ManaBar, total)
		result.Charged = true
	}

	if e.metrics != nil && result.Charged {
		e.metrics.ChargedRC.Add(float64(total))
	}

	store.Accounts().Put(st)
	return result, nil
}

// BlockUsage is the per-block usage summary PostApplyBlock needs: the
// per-kind scaled usage already summed across every transaction in the
// block (spec §4.8 step 3), and per-kind elapsed dt already computed
// from each kind's TimeUnit (block count or wall-clock seconds, spec
// §4.4/§4.8 step 4). The host (or a thin adapter) computes both from its
// own block/transaction representation; the engine never walks raw
// blocks itself.
type BlockUsage struct {
	ScaledUsage map[resource.Kind]int64
	DtByKind    map[resource.Kind]int64
}

// PostApplyBlock evolves every resource pool by one block (spec §4.8
// "Post-apply-block"). blockTime becomes the new pool.last_update.
func (e *Engine) PostApplyBlock(store hostview.Store, usage BlockUsage, blockTime uint32) error {
	if e.isBeforeFirstBlock(store) {
		return nil
	}

	globals := store.GlobalProps()
	if globals.TotalVestingShares <= 0 {
		return nil // bootstrap: no stake yet, nothing to evolve
	}

	params, err := store.Params().Params()
	if err != nil {
		return err
	}
	state := store.Pools().Get()
	state.Update(params, usage.DtByKind, usage.ScaledUsage, globals, blockTime)
	store.Pools().Set(state)

	if e.metrics != nil {
		e.metrics.BlocksProcessed.Inc()
		for _, p := range params.All() {
			e.metrics.PoolLevel.WithLabelValues(p.Name).Set(float64(state.Get(p.Kind)))
		}
	}
	return nil
}

// Validate re-scans every RC account asserting max_rc == last_max_rc,
// supplemented from the source chain's rc_plugin_impl::validate_database
// method. It is an optional diagnostic the host may call from a periodic
// health check; it is not part of the per-block hot path.
func (e *Engine) Validate(store hostview.Store) error {
	for _, st := range store.Accounts().All() {
		acct, ok := store.Account(st.Account)
		if !ok {
			continue // account has left the host's live set; not this engine's concern
		}
		derived := rcaccount.MaxMana(acct.Stake())
		if derived != st.LastMaxRC {
			return fmt.Errorf("rcengine: validate_database: account %q last_max_rc=%d derived=%d: %w", st.Account, st.LastMaxRC, derived, rcerrors.ErrUnknownStakeDelta)
		}
	}
	return nil
}
