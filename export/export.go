// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package export implements the optional snapshot sink of spec §4.8:
// "optionally publish a snapshot {resource_user, usage, cost}" per
// transaction and "{pool, dt, decay, budget, usage}" per block, to an
// external, opaque collaborator. Implemented as a gorilla/websocket
// broadcaster, analogous to the source chain's block_data_export_plugin
// (an opt-in sink any number of external consumers can subscribe to).
package export

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/luxfi/rcengine/coster"
	"github.com/luxfi/rcengine/internal/rclog"
	"github.com/luxfi/rcengine/resource"
)

// TransactionSnapshot is published after each priced transaction (spec
// §4.8 post-apply-transaction export).
type TransactionSnapshot struct {
	ResourceUser string              `json:"resource_user"`
	Usage        map[resource.Kind]int64 `json:"usage"`
	Costs        []coster.KindCost   `json:"costs"`
	TotalCost    int64               `json:"total_cost"`
}

// BlockSnapshot is published after each pool update (spec §4.8
// post-apply-block export).
type BlockSnapshot struct {
	Pool   map[resource.Kind]int64 `json:"pool"`
	Dt     map[resource.Kind]int64 `json:"dt"`
	Decay  map[resource.Kind]int64 `json:"decay"`
	Budget map[resource.Kind]int64 `json:"budget"`
	Usage  map[resource.Kind]int64 `json:"usage"`
}

// envelope tags every broadcast message with its kind so subscribers can
// dispatch on a single field rather than guessing from shape.
type envelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Broadcaster fans out snapshots to every connected websocket
// subscriber, best-effort: a message for a subscriber whose buffer is
// full is dropped (the subscriber stays registered), and a disconnected
// subscriber is removed once a write to it fails, so neither blocks
// block processing (spec §4.8: the export
// sink is an "opaque collaborator", never in the engine's critical
// path).
type Broadcaster struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// NewBroadcaster returns a Broadcaster accepting connections from any
// origin — the export sink is a read-only telemetry feed, not an
// authenticated API.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		subs:     make(map[*subscriber]struct{}),
	}
}

// ServeHTTP upgrades the connection and registers it as a subscriber
// until it disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		rclog.Warn("export: websocket upgrade failed", "err", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, 64)}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go b.writeLoop(sub)
}

func (b *Broadcaster) writeLoop(sub *subscriber) {
	defer func() {
		b.mu.Lock()
		delete(b.subs, sub)
		b.mu.Unlock()
		sub.conn.Close()
	}()

	for msg := range sub.send {
		if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// PublishTransaction broadcasts a transaction snapshot to every
// connected subscriber.
func (b *Broadcaster) PublishTransaction(snap TransactionSnapshot) {
	b.publish("transaction", snap)
}

// PublishBlock broadcasts a block snapshot to every connected
// subscriber.
func (b *Broadcaster) PublishBlock(snap BlockSnapshot) {
	b.publish("block", snap)
}

func (b *Broadcaster) publish(kind string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		rclog.Error("export: marshaling snapshot failed", "kind", kind, "err", err)
		return
	}
	msg, err := json.Marshal(envelope{Kind: kind, Data: payload})
	if err != nil {
		rclog.Error("export: marshaling envelope failed", "kind", kind, "err", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.send <- msg:
		default:
			// subscriber's outbound buffer is full; drop the message
			// rather than block the publisher.
			rclog.Warn("export: dropping snapshot for slow subscriber", "kind", kind)
		}
	}
}

// SubscriberCount reports how many subscribers are currently connected,
// used by tests and health checks.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
