package realtime

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// bridgeChannel is the Redis pub/sub channel carrying hub events between
// processes.
const bridgeChannel = "realtime:events"

// Bridge mirrors hub events through Redis pub/sub so that every process
// behind a load balancer fans the same events out to its local
// connections. All methods are nil-safe: without a Redis client the hub is
// purely local.
type Bridge struct {
	rdb *redis.Client
}

// NewBridge creates a Bridge using the provided Redis client, which may be
// nil.
func NewBridge(rdb *redis.Client) *Bridge {
	return &Bridge{rdb: rdb}
}

type bridgeEnvelope struct {
	Kind    EventKind       `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Publish mirrors an event to the Redis channel for other processes.
func (b *Bridge) Publish(ctx context.Context, kind EventKind, payload any) error {
	if b.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(bridgeEnvelope{Kind: kind, Payload: raw})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, bridgeChannel, msg).Err()
}

// Subscribe forwards events published by other processes into hub until
// ctx is cancelled. Returns immediately when no Redis client is attached.
func (b *Bridge) Subscribe(ctx context.Context, hub *Hub) error {
	if b.rdb == nil {
		return nil
	}
	sub := b.rdb.Subscribe(ctx, bridgeChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in bridge subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					var env bridgeEnvelope
					if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
						log.Printf("invalid bridge event: %v", err)
						return
					}
					hub.Publish(env.Kind, env.Payload)
				}()
			}
		}
	}()

	return nil
}
