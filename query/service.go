// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package query serves the three read-only projections of spec §4.9 as
// a JSON-RPC 2.0 service, following the teacher's habit of wrapping a
// plain Go struct with exported request/response methods as a
// gorilla/rpc service object (see plugin/evm's use of
// github.com/gorilla/rpc/v2 for the chain's own JSON-RPC surface).
// Concurrent identical reads are deduplicated with
// golang.org/x/sync/singleflight so the query surface never serializes
// on the engine's handler thread (spec §5).
package query

import (
	"fmt"
	"net/http"

	gorillarpc "github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"golang.org/x/sync/singleflight"

	"github.com/luxfi/rcengine/constants"
	"github.com/luxfi/rcengine/hostview"
	"github.com/luxfi/rcengine/rcaccount"
	"github.com/luxfi/rcengine/rcmetrics"
	"github.com/luxfi/rcengine/resource"
)

// Service implements the three RPC methods of spec §4.9, registered
// under the name "RCService" (RCService.GetResourceParams,
// RCService.GetResourcePool, RCService.FindRcAccounts).
type Service struct {
	store  hostview.Store
	single singleflight.Group

	// metrics is optional; nil means every RPC method below skips the
	// QueryRequests/QueryErrors bookkeeping entirely.
	metrics *rcmetrics.Metrics
}

// NewService returns a Service reading from store.
func NewService(store hostview.Store) *Service {
	return &Service{store: store}
}

// SetMetrics attaches a Metrics bundle the service's RPC methods report
// request counts and errors into.
func (s *Service) SetMetrics(m *rcmetrics.Metrics) {
	s.metrics = m
}

// observe records one RPC invocation of method, incrementing QueryErrors
// instead of QueryRequests when err is non-nil.
func (s *Service) observe(method string, err error) {
	if s.metrics == nil {
		return
	}
	if err != nil {
		s.metrics.QueryErrors.WithLabelValues(method).Inc()
		return
	}
	s.metrics.QueryRequests.WithLabelValues(method).Inc()
}

// ResourceParamsView is one resource kind's parameters, serialized with
// its human-readable name (spec §4.9: "serialized with human-readable
// kind names").
type ResourceParamsView struct {
	Name              string              `json:"name"`
	ResourceUnit      int64               `json:"resource_unit"`
	CurveParams       resource.CurveParams `json:"curve_params"`
	DecayParams       resource.DecayParams `json:"decay_params"`
	BudgetPerTimeUnit int64               `json:"budget_per_time_unit"`
	PoolEq            int64               `json:"pool_eq"`
	TimeUnit          string              `json:"time_unit"`
}

// GetResourceParamsArgs is the (empty) request for GetResourceParams.
type GetResourceParamsArgs struct{}

// GetResourceParamsReply mirrors spec §4.9's get_resource_params:
// kind name -> resource_params.
type GetResourceParamsReply struct {
	Params map[string]ResourceParamsView `json:"params"`
}

// GetResourceParams implements spec §4.9's get_resource_params.
func (s *Service) GetResourceParams(r *http.Request, args *GetResourceParamsArgs, reply *GetResourceParamsReply) error {
	v, err, _ := s.single.Do("get_resource_params", func() (interface{}, error) {
		params, err := s.store.Snapshot().Params()
		if err != nil {
			return nil, err
		}
		out := make(map[string]ResourceParamsView, resource.Count())
		for _, p := range params.All() {
			out[p.Name] = ResourceParamsView{
				Name:              p.Name,
				ResourceUnit:      p.ResourceUnit,
				CurveParams:       p.Curve,
				DecayParams:       p.Decay,
				BudgetPerTimeUnit: p.BudgetPerTimeUnit,
				PoolEq:            p.PoolEq,
				TimeUnit:          p.TimeUnit.String(),
			}
		}
		return &GetResourceParamsReply{Params: out}, nil
	})
	s.observe("get_resource_params", err)
	if err != nil {
		return err
	}
	*reply = *v.(*GetResourceParamsReply)
	return nil
}

// GetResourcePoolArgs is the (empty) request for GetResourcePool.
type GetResourcePoolArgs struct{}

// PoolView is one kind's current pool level (spec §4.9).
type PoolView struct {
	Pool int64 `json:"pool"`
}

// GetResourcePoolReply mirrors spec §4.9's get_resource_pool.
type GetResourcePoolReply struct {
	Pools map[string]PoolView `json:"pools"`
}

// GetResourcePool implements spec §4.9's get_resource_pool.
func (s *Service) GetResourcePool(r *http.Request, args *GetResourcePoolArgs, reply *GetResourcePoolReply) error {
	v, err, _ := s.single.Do("get_resource_pool", func() (interface{}, error) {
		params, err := s.store.Snapshot().Params()
		if err != nil {
			return nil, err
		}
		state := s.store.Snapshot().Pool()
		out := make(map[string]PoolView, resource.Count())
		for _, p := range params.All() {
			out[p.Name] = PoolView{Pool: state.Get(p.Kind)}
		}
		return &GetResourcePoolReply{Pools: out}, nil
	})
	s.observe("get_resource_pool", err)
	if err != nil {
		return err
	}
	*reply = *v.(*GetResourcePoolReply)
	return nil
}

// FindRcAccountsArgs carries the batch of names to look up (spec §4.9,
// §6: "single-query limit 100").
type FindRcAccountsArgs struct {
	Accounts []string `json:"accounts"`
}

// RCAccountView projects the fields spec §4.9 exposes for each account.
type RCAccountView struct {
	Account                 string `json:"account"`
	RCManabar               struct {
		CurrentMana    int64  `json:"current_mana"`
		LastUpdateTime uint32 `json:"last_update_time"`
	} `json:"rc_manabar"`
	MaxRCCreationAdjustment int64 `json:"max_rc_creation_adjustment"`
	MaxRC                   int64 `json:"max_rc"`
}

// FindRcAccountsReply mirrors spec §4.9's find_rc_accounts: unknown
// names are silently dropped (spec §4.9, P8).
type FindRcAccountsReply struct {
	RCAccounts []RCAccountView `json:"rc_accounts"`
}

// FindRcAccounts implements spec §4.9's find_rc_accounts. Requests over
// the fixed batch size fail outright (spec §6, §4.9, P8) rather than
// being silently truncated.
func (s *Service) FindRcAccounts(r *http.Request, args *FindRcAccountsArgs, reply *FindRcAccountsReply) error {
	if len(args.Accounts) > constants.FindAccountsBatchLimit {
		err := fmt.Errorf("query: find_rc_accounts requested %d accounts, limit is %d", len(args.Accounts), constants.FindAccountsBatchLimit)
		s.observe("find_rc_accounts", err)
		return err
	}

	states := s.store.Snapshot().FindAccounts(args.Accounts)
	reply.RCAccounts = make([]RCAccountView, 0, len(states))
	for _, st := range states {
		reply.RCAccounts = append(reply.RCAccounts, toView(st))
	}
	s.observe("find_rc_accounts", nil)
	return nil
}

func toView(st *rcaccount.State) RCAccountView {
	v := RCAccountView{
		Account:                 st.Account,
		MaxRCCreationAdjustment: st.MaxRCCreationAdjustment,
		MaxRC:                   st.MaxRC,
	}
	v.RCManabar.CurrentMana = st.ManaBar.CurrentMana
	v.RCManabar.LastUpdateTime = st.ManaBar.LastUpdateTime
	return v
}

// NewHandler registers Service on a fresh gorilla/rpc server using the
// json2 codec (JSON-RPC 2.0), in the teacher's idiom of wrapping a plain
// struct as an RPC service object.
func NewHandler(store hostview.Store) (http.Handler, error) {
	return NewHandlerWithMetrics(store, nil)
}

// NewHandlerWithMetrics is NewHandler plus a Metrics bundle the
// registered Service reports RPC request/error counts into. Pass nil for
// metrics to match NewHandler's unobserved behavior.
func NewHandlerWithMetrics(store hostview.Store, metrics *rcmetrics.Metrics) (http.Handler, error) {
	svc := NewService(store)
	svc.SetMetrics(metrics)

	server := gorillarpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	if err := server.RegisterService(svc, "RCService"); err != nil {
		return nil, fmt.Errorf("query: registering RCService: %w", err)
	}
	return server, nil
}
