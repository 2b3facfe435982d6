// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/luxfi/rcengine/hostview"
	"github.com/luxfi/rcengine/rcaccount"
)

// MockAccountStore is a hand-written stand-in for what mockgen would
// generate from hostview.AccountStore, in the teacher's idiom of
// wrapping precompileconfig's interfaces with go.uber.org/mock
// (see precompile/contracts/nativeminter's MockChainConfig usage).
type MockAccountStore struct {
	ctrl     *gomock.Controller
	recorder *MockAccountStoreRecorder
	byName   map[string]*rcaccount.State
}

type MockAccountStoreRecorder struct{ mock *MockAccountStore }

func NewMockAccountStore(ctrl *gomock.Controller) *MockAccountStore {
	m := &MockAccountStore{ctrl: ctrl, byName: make(map[string]*rcaccount.State)}
	m.recorder = &MockAccountStoreRecorder{mock: m}
	return m
}

func (m *MockAccountStore) EXPECT() *MockAccountStoreRecorder { return m.recorder }

func (m *MockAccountStore) Get(name string) (*rcaccount.State, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", name)
	st, _ := ret[0].(*rcaccount.State)
	ok, _ := ret[1].(bool)
	return st, ok
}

func (r *MockAccountStoreRecorder) Get(name interface{}) *gomock.Call {
	r.mock.ctrl.T.Helper()
	return r.mock.ctrl.RecordCallWithMethodType(r.mock, "Get", reflect.TypeOf((*MockAccountStore)(nil).Get), name)
}

func (m *MockAccountStore) Put(state *rcaccount.State) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Put", state)
}

func (r *MockAccountStoreRecorder) Put(state interface{}) *gomock.Call {
	r.mock.ctrl.T.Helper()
	return r.mock.ctrl.RecordCallWithMethodType(r.mock, "Put", reflect.TypeOf((*MockAccountStore)(nil).Put), state)
}

func (m *MockAccountStore) Exists(name string) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exists", name)
	ok, _ := ret[0].(bool)
	return ok
}

func (r *MockAccountStoreRecorder) Exists(name interface{}) *gomock.Call {
	r.mock.ctrl.T.Helper()
	return r.mock.ctrl.RecordCallWithMethodType(r.mock, "Exists", reflect.TypeOf((*MockAccountStore)(nil).Exists), name)
}

func (m *MockAccountStore) All() []*rcaccount.State {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "All")
	all, _ := ret[0].([]*rcaccount.State)
	return all
}

func (r *MockAccountStoreRecorder) All() *gomock.Call {
	r.mock.ctrl.T.Helper()
	return r.mock.ctrl.RecordCallWithMethodType(r.mock, "All", reflect.TypeOf((*MockAccountStore)(nil).All))
}

// mockAccountView is a plain hand-written fake of hostview.AccountView —
// a value holder needs no expectation machinery.
type mockAccountView struct {
	name  string
	stake rcaccount.StakeView
}

func (v mockAccountView) Name() string               { return v.name }
func (v mockAccountView) Stake() rcaccount.StakeView { return v.stake }

// mockStore is a plain hand-written fake of hostview.Store exercising
// only the methods Engine.Validate actually calls (Accounts, Account);
// every other method panics, which would flag Validate growing a new,
// untested dependency on the host.
type mockStore struct {
	accounts hostview.AccountStore
	views    map[string]hostview.AccountView
}

func (s *mockStore) Accounts() hostview.AccountStore { return s.accounts }

func (s *mockStore) Account(name string) (hostview.AccountView, bool) {
	v, ok := s.views[name]
	return v, ok
}

func (s *mockStore) Params() hostview.ParamStore           { panic("unexpected call: Params") }
func (s *mockStore) Pools() hostview.PoolStore              { panic("unexpected call: Pools") }
func (s *mockStore) GlobalProps() hostview.GlobalProperties { panic("unexpected call: GlobalProps") }
func (s *mockStore) Snapshot() hostview.Snapshot            { panic("unexpected call: Snapshot") }

var (
	_ hostview.AccountStore = (*MockAccountStore)(nil)
	_ hostview.AccountView  = mockAccountView{}
	_ hostview.Store        = (*mockStore)(nil)
)
