// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/rcengine/resource"
)

func TestBroadcasterDeliversTransactionSnapshot(t *testing.T) {
	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

	b.PublishTransaction(TransactionSnapshot{
		ResourceUser: "alice",
		Usage:        map[resource.Kind]int64{resource.History: 10},
		TotalCost:    42,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(msg), `"kind":"transaction"`)
	require.Contains(t, string(msg), `"total_cost":42`)
}

func TestBroadcasterDeliversBlockSnapshot(t *testing.T) {
	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

	b.PublishBlock(BlockSnapshot{Pool: map[resource.Kind]int64{resource.History: 1000}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(msg), `"kind":"block"`)
}

func TestBroadcasterWithNoSubscribersDoesNotBlock(t *testing.T) {
	b := NewBroadcaster()
	require.NotPanics(t, func() {
		b.PublishTransaction(TransactionSnapshot{ResourceUser: "alice"})
	})
}
