// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/luxfi/rcengine/config"
	"github.com/luxfi/rcengine/constants"
	"github.com/luxfi/rcengine/hostview"
	"github.com/luxfi/rcengine/memstore"
	"github.com/luxfi/rcengine/nameset"
	"github.com/luxfi/rcengine/rcaccount"
	"github.com/luxfi/rcengine/resource"
)

// TestMain checks that no hook leaves a goroutine running past the test
// that started it — none of the engine's hooks are meant to spawn one.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testParamSeed(t *testing.T) *resource.ParamSet {
	t.Helper()
	seed := map[resource.Kind]resource.Params{
		resource.History: {
			Kind: resource.History, ResourceUnit: 1,
			Curve: resource.CurveParams{CoeffA: 1, CoeffB: 10, Shift: 24},
			Decay: resource.DecayParams{Rate: 1, Shift: 20}, BudgetPerTimeUnit: 100, PoolEq: 1_000_000,
		},
		resource.State: {
			Kind: resource.State, ResourceUnit: 1,
			Curve: resource.CurveParams{CoeffA: 1, CoeffB: 10, Shift: 24},
			Decay: resource.DecayParams{Rate: 1, Shift: 20}, BudgetPerTimeUnit: 100, PoolEq: 1_000_000,
		},
		resource.Execution: {
			Kind: resource.Execution, ResourceUnit: 1,
			Curve: resource.CurveParams{CoeffA: 1, CoeffB: 10, Shift: 24},
			Decay: resource.DecayParams{Rate: 1, Shift: 20}, BudgetPerTimeUnit: 100, PoolEq: 1_000_000,
		},
		resource.NewAccountsKind: {
			Kind: resource.NewAccountsKind, ResourceUnit: 1000,
			Curve: resource.CurveParams{CoeffA: 1, CoeffB: 1, Shift: 0},
			Decay: resource.DecayParams{Rate: 0, Shift: 0}, BudgetPerTimeUnit: 0, PoolEq: 0,
		},
	}
	ps, err := resource.NewParamSet(seed)
	require.NoError(t, err)
	return ps
}

func withdrawNever() rcaccount.WithdrawSchedule {
	return rcaccount.WithdrawSchedule{NextTime: rcaccount.SentinelMaxTime}
}

// Scenario 1: Bootstrap.
func TestScenarioBootstrap(t *testing.T) {
	store := memstore.NewStore()
	store.PutHostAccount(&memstore.Account{AccountName: "alice", StakeView: rcaccount.StakeView{Withdraw: withdrawNever()}})
	store.PutHostAccount(&memstore.Account{AccountName: "bob", StakeView: rcaccount.StakeView{Withdraw: withdrawNever()}})
	store.PutHostAccount(&memstore.Account{AccountName: "carol", StakeView: rcaccount.StakeView{Withdraw: withdrawNever()}})

	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	existing := []hostview.AccountView{mustAccount(t, store, "alice"), mustAccount(t, store, "bob"), mustAccount(t, store, "carol")}

	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), existing, 1000))

	for _, name := range []string{"alice", "bob", "carol"} {
		st, ok := store.Accounts().Get(name)
		require.True(t, ok)
		require.Equal(t, int64(0), st.ManaBar.CurrentMana)
		require.Equal(t, int64(0), st.LastMaxRC)
	}

	params := testParamSeed(t)
	poolState := store.Pools().Get()
	for _, p := range params.All() {
		require.Equal(t, p.PoolEq, poolState.Get(p.Kind))
	}
}

func mustAccount(t *testing.T, store *memstore.Store, name string) hostview.AccountView {
	t.Helper()
	a, ok := store.Account(name)
	require.True(t, ok)
	return a
}

// Scenario 2: First stake.
func TestScenarioFirstStake(t *testing.T) {
	store := memstore.NewStore()
	store.PutHostAccount(&memstore.Account{AccountName: "alice", StakeView: rcaccount.StakeView{Withdraw: withdrawNever()}})

	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), []hostview.AccountView{mustAccount(t, store, "alice")}, 0))

	// The pre-op hook runs before the stake-changing operation lands.
	modified := nameset.New[string](1)
	require.NoError(t, e.PreApplyOperation(store, []string{"alice"}, 100, modified))

	st, ok := store.Accounts().Get("alice")
	require.True(t, ok)
	require.Equal(t, int64(0), st.ManaBar.CurrentMana, "pre-op regen of a zero bar is a no-op")

	// alice receives 1,000,000 vesting shares at time t.
	store.PutHostAccount(&memstore.Account{AccountName: "alice", StakeView: rcaccount.StakeView{VestingShares: 1_000_000, Withdraw: withdrawNever()}})

	require.NoError(t, e.PostApplyOperation(store, nil, modified, 100))

	st, ok = store.Accounts().Get("alice")
	require.True(t, ok)
	require.Equal(t, int64(1_000_000), st.LastMaxRC)
	require.Equal(t, int64(0), st.ManaBar.CurrentMana)
}

// Scenario 3: Regenerate and spend.
func TestScenarioRegenerateAndSpend(t *testing.T) {
	store := memstore.NewStore()
	store.PutHostAccount(&memstore.Account{AccountName: "alice", StakeView: rcaccount.StakeView{VestingShares: 1_000_000, Withdraw: withdrawNever()}})
	store.SetGlobalProps(hostview.GlobalProperties{TotalVestingShares: 10_000_000})

	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), []hostview.AccountView{mustAccount(t, store, "alice")}, 0))

	modified := nameset.New[string](1)
	require.NoError(t, e.PreApplyOperation(store, []string{"alice"}, 0, modified))
	require.NoError(t, e.PostApplyOperation(store, nil, modified, 0))

	fiveDaysLater := uint32(constants.RegenTimeSeconds)
	usage := map[resource.Kind]int64{resource.History: 10}

	result, err := e.PostApplyTransaction(store, "tx1", "alice", usage, fiveDaysLater, true, true)
	require.NoError(t, err)
	require.True(t, result.Charged)
	require.Greater(t, result.TotalCost, int64(0))

	st, _ := store.Accounts().Get("alice")
	require.Equal(t, int64(1_000_000)-result.TotalCost, st.ManaBar.CurrentMana)
}

// Scenario 4: Reject in production.
func TestScenarioRejectInProduction(t *testing.T) {
	store := memstore.NewStore()
	store.PutHostAccount(&memstore.Account{AccountName: "bob", StakeView: rcaccount.StakeView{Withdraw: withdrawNever()}})
	store.SetGlobalProps(hostview.GlobalProperties{TotalVestingShares: 10_000_000})

	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), []hostview.AccountView{mustAccount(t, store, "bob")}, 0))

	usage := map[resource.Kind]int64{resource.History: 10}
	_, err := e.PostApplyTransaction(store, "tx1", "bob", usage, 0, true, true)
	require.Error(t, err)
	require.ErrorContains(t, err, "insufficient")
}

// Scenario 5: Replay permissiveness.
func TestScenarioReplayPermissiveness(t *testing.T) {
	store := memstore.NewStore()
	store.PutHostAccount(&memstore.Account{AccountName: "bob", StakeView: rcaccount.StakeView{Withdraw: withdrawNever()}})
	store.SetGlobalProps(hostview.GlobalProperties{TotalVestingShares: 10_000_000})

	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), []hostview.AccountView{mustAccount(t, store, "bob")}, 0))

	usage := map[resource.Kind]int64{resource.History: 10}
	// producing == false: a non-producing (replaying) node never rejects.
	result, err := e.PostApplyTransaction(store, "tx1", "bob", usage, 0, false, true)
	require.NoError(t, err)
	require.True(t, result.Charged)
	require.Greater(t, result.TotalCost, int64(0))

	st, _ := store.Accounts().Get("bob")
	require.Equal(t, -result.TotalCost, st.ManaBar.CurrentMana)
}

// Scenario 6: Delegation coherence.
func TestScenarioDelegationCoherence(t *testing.T) {
	store := memstore.NewStore()
	store.PutHostAccount(&memstore.Account{AccountName: "alice", StakeView: rcaccount.StakeView{VestingShares: 1_000_000, Withdraw: withdrawNever()}})
	store.PutHostAccount(&memstore.Account{AccountName: "bob", StakeView: rcaccount.StakeView{Withdraw: withdrawNever()}})

	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	existing := []hostview.AccountView{mustAccount(t, store, "alice"), mustAccount(t, store, "bob")}
	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), existing, 0))

	modified := nameset.New[string](1)
	require.NoError(t, e.PreApplyOperation(store, []string{"alice"}, 0, modified))
	require.NoError(t, e.PostApplyOperation(store, nil, modified, 0))
	aliceBefore, _ := store.Accounts().Get("alice")
	require.Equal(t, int64(1_000_000), aliceBefore.LastMaxRC)

	// alice delegates 400,000 shares to bob.
	store.PutHostAccount(&memstore.Account{AccountName: "alice", StakeView: rcaccount.StakeView{VestingShares: 1_000_000, DelegatedOut: 400_000, Withdraw: withdrawNever()}})
	store.PutHostAccount(&memstore.Account{AccountName: "bob", StakeView: rcaccount.StakeView{ReceivedVesting: 400_000, Withdraw: withdrawNever()}})

	modified = nameset.New[string](2)
	require.NoError(t, e.PreApplyOperation(store, []string{"alice", "bob"}, 1, modified))
	require.NoError(t, e.PostApplyOperation(store, nil, modified, 1))

	alice, _ := store.Accounts().Get("alice")
	bob, _ := store.Accounts().Get("bob")
	require.Equal(t, int64(600_000), alice.LastMaxRC)
	require.Equal(t, int64(400_000), bob.LastMaxRC)
}

func TestPreApplyOperationIsNoopBeforeFirstBlock(t *testing.T) {
	store := memstore.NewStore()
	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())

	modified := nameset.New[string](1)
	require.NoError(t, e.PreApplyOperation(store, []string{"alice"}, 0, modified))
	require.Equal(t, 0, modified.Len())
}

func TestPostApplyBlockSkipsOnBootstrap(t *testing.T) {
	store := memstore.NewStore()
	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), nil, 0))

	before := store.Pools().Get()
	require.NoError(t, e.PostApplyBlock(store, BlockUsage{}, 1))
	after := store.Pools().Get()
	require.Equal(t, before.Levels, after.Levels, "zero total vesting shares means bootstrap; pools untouched")
}

func TestPostApplyBlockEvolvesPoolsAndOverridesNewAccounts(t *testing.T) {
	store := memstore.NewStore()
	store.SetGlobalProps(hostview.GlobalProperties{TotalVestingShares: 10_000_000, AccountSubsidies: 2_000_000})
	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), nil, 0))

	usage := BlockUsage{
		ScaledUsage: map[resource.Kind]int64{resource.History: 500},
		DtByKind:    map[resource.Kind]int64{resource.History: 1, resource.State: 1, resource.Execution: 1},
	}
	require.NoError(t, e.PostApplyBlock(store, usage, 42))

	state := store.Pools().Get()
	require.Equal(t, uint32(42), state.LastUpdate)
	require.Equal(t, int64(200_000), state.Get(resource.NewAccountsKind))
}

func TestValidateDetectsDivergence(t *testing.T) {
	store := memstore.NewStore()
	store.PutHostAccount(&memstore.Account{AccountName: "alice", StakeView: rcaccount.StakeView{VestingShares: 100, Withdraw: withdrawNever()}})
	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), []hostview.AccountView{mustAccount(t, store, "alice")}, 0))
	require.NoError(t, e.Validate(store))

	// mutate stake without going through the pre/post-op hooks.
	store.PutHostAccount(&memstore.Account{AccountName: "alice", StakeView: rcaccount.StakeView{VestingShares: 999_999, Withdraw: withdrawNever()}})
	require.Error(t, e.Validate(store))
}

// P4: creating the same RC account twice through PostApplyOperation
// yields exactly the state the first call produced.
func TestPostApplyOperationAccountCreationIsIdempotent(t *testing.T) {
	store := memstore.NewStore()
	store.PutHostAccount(&memstore.Account{AccountName: "dave", StakeView: rcaccount.StakeView{VestingShares: 777, Withdraw: withdrawNever()}})
	e := New(constants.RegenTimeSeconds, config.DefaultSkipFlags())
	require.NoError(t, e.OnFirstBlock(store, testParamSeed(t), nil, 0))

	created := map[string]int64{"dave": 50}
	empty := nameset.New[string](0)
	require.NoError(t, e.PostApplyOperation(store, created, empty, 10))
	first, ok := store.Accounts().Get("dave")
	require.True(t, ok)
	firstCopy := *first

	require.NoError(t, e.PostApplyOperation(store, created, empty, 20))
	second, ok := store.Accounts().Get("dave")
	require.True(t, ok)

	require.Equal(t, firstCopy, *second)
}
