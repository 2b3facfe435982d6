// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/rcengine/config"
	"github.com/luxfi/rcengine/hostview"
	"github.com/luxfi/rcengine/rcaccount"
)

func TestValidateAgainstMockStorePassesWhenLastMaxRCMatchesDerived(t *testing.T) {
	ctrl := gomock.NewController(t)
	stake := rcaccount.StakeView{VestingShares: 500, Withdraw: withdrawNever()}
	alice := &rcaccount.State{Account: "alice", LastMaxRC: rcaccount.MaxMana(stake)}

	accounts := NewMockAccountStore(ctrl)
	accounts.EXPECT().All().Return([]*rcaccount.State{alice}).Times(1)

	store := &mockStore{
		accounts: accounts,
		views: map[string]hostview.AccountView{
			"alice": mockAccountView{name: "alice", stake: stake},
		},
	}

	e := New(1, config.DefaultSkipFlags())
	require.NoError(t, e.Validate(store))
}

func TestValidateAgainstMockStoreDetectsDivergence(t *testing.T) {
	ctrl := gomock.NewController(t)
	stake := rcaccount.StakeView{VestingShares: 500, Withdraw: withdrawNever()}
	alice := &rcaccount.State{Account: "alice", LastMaxRC: rcaccount.MaxMana(stake) + 1}

	accounts := NewMockAccountStore(ctrl)
	accounts.EXPECT().All().Return([]*rcaccount.State{alice}).Times(1)

	store := &mockStore{
		accounts: accounts,
		views: map[string]hostview.AccountView{
			"alice": mockAccountView{name: "alice", stake: stake},
		},
	}

	e := New(1, config.DefaultSkipFlags())
	require.Error(t, e.Validate(store))
}
