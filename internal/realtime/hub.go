package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"prism/internal/observability"
)

const (
	// DefaultHeartbeatInterval is how often the hub publishes ping events.
	DefaultHeartbeatInterval = 30 * time.Second
	// DefaultConnBuffer is the per-connection outbound event buffer.
	DefaultConnBuffer = 256
	// DefaultMaxConns caps the number of registered connections.
	DefaultMaxConns = 10000
)

// ErrHubClosed is returned by Register after the hub has shut down.
var ErrHubClosed = errors.New("realtime hub is shut down")

// ErrConnLimit is returned by Register when the connection cap is reached.
var ErrConnLimit = errors.New("server connection limit reached")

// Config tunes hub limits and heartbeat cadence. Zero values fall back to
// the defaults above.
type Config struct {
	HeartbeatInterval time.Duration
	ConnBuffer        int
	MaxConns          int
}

// Hub owns the set of live connections and fans published events out to
// all of them, best-effort, at-most-once, with no backlog for late joiners.
type Hub struct {
	mu     sync.RWMutex
	conns  map[*Conn]struct{}
	closed bool

	heartbeat time.Duration
	buffer    int
	maxConns  int

	shutdownOnce sync.Once
	shutdown     chan struct{}
}

// NewHub creates a hub with the given configuration.
func NewHub(cfg Config) *Hub {
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if cfg.ConnBuffer <= 0 {
		cfg.ConnBuffer = DefaultConnBuffer
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = DefaultMaxConns
	}
	return &Hub{
		conns:     make(map[*Conn]struct{}),
		heartbeat: cfg.HeartbeatInterval,
		buffer:    cfg.ConnBuffer,
		maxConns:  cfg.MaxConns,
		shutdown:  make(chan struct{}),
	}
}

// Register creates a new live connection. The caller owns pumping its
// Events() channel to the client transport until closed.
func (h *Hub) Register() (*Conn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if len(h.conns) >= h.maxConns {
		return nil, ErrConnLimit
	}

	conn := newConn(h, h.buffer)
	h.conns[conn] = struct{}{}
	observability.HubConnections.Inc()

	return conn, nil
}

// Unregister removes the connection and closes it. Idempotent: removing a
// connection that already left is a no-op.
func (h *Hub) Unregister(conn *Conn) {
	if conn == nil {
		return
	}

	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.shut()
		observability.HubConnections.Dec()
	}
	h.mu.Unlock()
}

// Publish delivers payload tagged with kind to every registered
// connection. Delivery is best-effort: a connection that cannot accept the
// event drops it without affecting the others.
func (h *Hub) Publish(kind EventKind, payload any) {
	ev := Event{Kind: kind, Payload: payload}

	h.mu.RLock()
	for conn := range h.conns {
		conn.trySend(ev)
	}
	h.mu.RUnlock()

	observability.HubEventsPublished.WithLabelValues(string(kind)).Inc()
}

// Len reports the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Start runs the heartbeat loop until ctx is cancelled or the hub shuts
// down. The ping cadence is fixed and independent of publish traffic.
func (h *Hub) Start(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.shutdown:
			return
		case t := <-ticker.C:
			h.Publish(EventPing, map[string]any{"timestamp": t.UnixMilli()})
		}
	}
}

// Shutdown closes every connection and stops accepting registrations.
func (h *Hub) Shutdown(_ context.Context) error {
	h.shutdownOnce.Do(func() {
		close(h.shutdown)

		h.mu.Lock()
		h.closed = true
		for conn := range h.conns {
			conn.shut()
			observability.HubConnections.Dec()
		}
		h.conns = make(map[*Conn]struct{})
		h.mu.Unlock()
	})
	return nil
}
