// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package memstore is an in-memory reference implementation of
// hostview.Store, used by engine tests and the cmd/rcengined demo binary
// in place of a real chain's persistent object store. Grounded on the
// teacher's pattern of hand-written in-memory fakes for narrow
// interfaces in tests (e.g. mock blockchains backing
// core.StateProcessor tests), generalized here into a small reusable
// package since the RC engine has no real host chain to embed it in yet.
package memstore

import (
	"errors"
	"sync"

	"github.com/luxfi/rcengine/hostview"
	"github.com/luxfi/rcengine/pool"
	"github.com/luxfi/rcengine/rcaccount"
	"github.com/luxfi/rcengine/resource"
)

// Account is a host account record: its name and the stake fields
// MaxMana derives from (spec §4.5). Tests construct these directly and
// register them with Store.PutHostAccount.
type Account struct {
	AccountName string
	StakeView   rcaccount.StakeView
}

func (a *Account) Name() string              { return a.AccountName }
func (a *Account) Stake() rcaccount.StakeView { return a.StakeView }

// accountStore implements hostview.AccountStore over a map guarded by
// Store's lock.
type accountStore struct {
	mu    *sync.RWMutex
	byName map[string]*rcaccount.State
}

func (s *accountStore) Get(name string) (*rcaccount.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.byName[name]
	return st, ok
}

func (s *accountStore) Put(state *rcaccount.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byName[state.Account] = state
}

func (s *accountStore) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byName[name]
	return ok
}

func (s *accountStore) All() []*rcaccount.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*rcaccount.State, 0, len(s.byName))
	for _, st := range s.byName {
		out = append(out, st)
	}
	return out
}

// paramStore implements hostview.ParamStore over a single settable
// pointer, write-once per spec §4.4.
type paramStore struct {
	mu     *sync.RWMutex
	params *resource.ParamSet
}

func (p *paramStore) Initialized() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.params != nil
}

func (p *paramStore) Init(params *resource.ParamSet) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.params != nil {
		return errors.New("memstore: parameter singleton already initialized")
	}
	p.params = params
	return nil
}

func (p *paramStore) Params() (*resource.ParamSet, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.params == nil {
		return nil, errNotInitialized
	}
	return p.params, nil
}

// poolStore implements hostview.PoolStore over a single settable pointer.
type poolStore struct {
	mu    *sync.RWMutex
	state *pool.State
}

func (s *poolStore) Get() *pool.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *poolStore) Set(state *pool.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Store is the in-memory hostview.Store implementation.
type Store struct {
	mu           sync.RWMutex
	accounts     accountStore
	params       paramStore
	pools        poolStore
	hostAccounts map[string]*Account
	globals      hostview.GlobalProperties
}

var _ hostview.Store = (*Store)(nil)

// NewStore returns an empty store with globals zeroed.
func NewStore() *Store {
	s := &Store{
		hostAccounts: make(map[string]*Account),
	}
	s.accounts = accountStore{mu: &s.mu, byName: make(map[string]*rcaccount.State)}
	s.params = paramStore{mu: &s.mu}
	s.pools = poolStore{mu: &s.mu}
	return s
}

func (s *Store) Accounts() hostview.AccountStore { return &s.accounts }
func (s *Store) Params() hostview.ParamStore     { return &s.params }
func (s *Store) Pools() hostview.PoolStore       { return &s.pools }

func (s *Store) GlobalProps() hostview.GlobalProperties {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.globals
}

// SetGlobalProps updates the host-wide properties the engine reads each
// block; tests call this to simulate stake changes and subsidy signals.
func (s *Store) SetGlobalProps(g hostview.GlobalProperties) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globals = g
}

// PutHostAccount registers (or replaces) a borrowed host account record.
func (s *Store) PutHostAccount(a *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hostAccounts[a.AccountName] = a
}

func (s *Store) Account(name string) (hostview.AccountView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.hostAccounts[name]
	if !ok {
		return nil, false
	}
	return a, true
}

func (s *Store) Snapshot() hostview.Snapshot {
	return &snapshot{store: s}
}

type snapshot struct {
	store *Store
}

func (sn *snapshot) Params() (*resource.ParamSet, error) {
	return sn.store.params.Params()
}

func (sn *snapshot) Pool() *pool.State {
	return sn.store.pools.Get()
}

func (sn *snapshot) FindAccounts(names []string) []*rcaccount.State {
	out := make([]*rcaccount.State, 0, len(names))
	for _, name := range names {
		if st, ok := sn.store.accounts.Get(name); ok {
			out = append(out, st)
		}
	}
	return out
}
