package realtime

import (
	"log"
	"sync"

	"prism/internal/observability"
)

// Conn is one live client stream registered with the hub. It carries no
// application data, only delivery capability: the owner pumps Events() to
// its transport until the channel closes. A Conn is either open or closed;
// the transition is one-way and terminal.
type Conn struct {
	hub *Hub

	events chan Event
	done   chan struct{}

	closeOnce sync.Once
}

func newConn(hub *Hub, buffer int) *Conn {
	return &Conn{
		hub:    hub,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Events is the stream of events delivered to this connection. It is
// closed when the connection is unregistered or the hub shuts down.
func (c *Conn) Events() <-chan Event {
	return c.events
}

// Done is closed when the connection leaves the open state.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Close unregisters the connection from its hub. Safe to call more than
// once and safe to call concurrently with publishes.
func (c *Conn) Close() {
	c.hub.Unregister(c)
}

// trySend delivers an event without blocking. A full buffer drops the
// event for this connection only; siblings are unaffected.
func (c *Conn) trySend(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			observability.HubBackpressureDrops.WithLabelValues("closed").Inc()
		}
	}()

	select {
	case <-c.done:
	case c.events <- ev:
	default:
		observability.HubBackpressureDrops.WithLabelValues("full").Inc()
		if observability.Config.EnableHubLogging {
			log.Printf("realtime: buffer full, dropped %s event", ev.Kind)
		}
	}
}

// shut moves the connection to the closed state exactly once.
func (c *Conn) shut() {
	c.closeOnce.Do(func() {
		close(c.done)
		close(c.events)
	})
}
