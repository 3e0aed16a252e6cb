package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func drainOne(t *testing.T, conn *Conn) Event {
	t.Helper()
	select {
	case ev := <-conn.Events():
		return ev
	case <-time.After(testEventuallyTimeout):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublish_FanOutToAllConnections(t *testing.T) {
	hub := NewHub(Config{})
	defer func() { _ = hub.Shutdown(context.Background()) }()

	conns := make([]*Conn, 3)
	for i := range conns {
		c, err := hub.Register()
		require.NoError(t, err)
		conns[i] = c
	}
	assert.Equal(t, 3, hub.Len())

	payload := map[string]any{"post_id": uint(7)}
	hub.Publish(EventNewPost, payload)

	for _, conn := range conns {
		ev := drainOne(t, conn)
		assert.Equal(t, EventNewPost, ev.Kind)
		assert.Equal(t, payload, ev.Payload)
	}
}

func TestPublish_AfterUnregisterSkipsConnection(t *testing.T) {
	hub := NewHub(Config{})
	defer func() { _ = hub.Shutdown(context.Background()) }()

	a, err := hub.Register()
	require.NoError(t, err)
	b, err := hub.Register()
	require.NoError(t, err)
	c, err := hub.Register()
	require.NoError(t, err)

	hub.Unregister(b)
	assert.Equal(t, 2, hub.Len())

	hub.Publish(EventNotification, "hello")

	assert.Equal(t, Event{Kind: EventNotification, Payload: "hello"}, drainOne(t, a))
	assert.Equal(t, Event{Kind: EventNotification, Payload: "hello"}, drainOne(t, c))

	// The removed connection's channel is closed, not delivered to.
	ev, ok := <-b.Events()
	assert.False(t, ok, "expected closed channel, got %v", ev)
}

func TestUnregister_Idempotent(t *testing.T) {
	hub := NewHub(Config{})
	defer func() { _ = hub.Shutdown(context.Background()) }()

	conn, err := hub.Register()
	require.NoError(t, err)

	hub.Unregister(conn)
	hub.Unregister(conn)
	hub.Unregister(nil)
	assert.Equal(t, 0, hub.Len())
}

func TestConnClose_Unregisters(t *testing.T) {
	hub := NewHub(Config{})
	defer func() { _ = hub.Shutdown(context.Background()) }()

	conn, err := hub.Register()
	require.NoError(t, err)

	conn.Close()
	assert.Equal(t, 0, hub.Len())

	select {
	case <-conn.Done():
	default:
		t.Fatal("expected Done to be closed")
	}
}

func TestPublish_FullBufferDropsWithoutAffectingSiblings(t *testing.T) {
	hub := NewHub(Config{ConnBuffer: 1})
	defer func() { _ = hub.Shutdown(context.Background()) }()

	stuck, err := hub.Register()
	require.NoError(t, err)
	healthy, err := hub.Register()
	require.NoError(t, err)

	// Two publishes against a buffer of one: the stuck connection keeps
	// only the first event, the drained one sees both.
	hub.Publish(EventPostUpdate, 1)
	first := drainOne(t, healthy)
	hub.Publish(EventPostUpdate, 2)

	assert.Equal(t, 1, first.Payload)
	assert.Equal(t, 2, drainOne(t, healthy).Payload)

	assert.Equal(t, 1, drainOne(t, stuck).Payload)
	select {
	case ev := <-stuck.Events():
		t.Fatalf("expected dropped event, got %v", ev)
	case <-time.After(5 * testPollInterval):
	}
}

func TestHeartbeat_PublishesPing(t *testing.T) {
	hub := NewHub(Config{HeartbeatInterval: 20 * time.Millisecond})
	defer func() { _ = hub.Shutdown(context.Background()) }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Start(ctx)

	conn, err := hub.Register()
	require.NoError(t, err)

	ev := drainOne(t, conn)
	assert.Equal(t, EventPing, ev.Kind)
	payload, ok := ev.Payload.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, payload, "timestamp")
}

func TestShutdown_ClosesAllConnections(t *testing.T) {
	hub := NewHub(Config{})

	a, err := hub.Register()
	require.NoError(t, err)
	b, err := hub.Register()
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	require.NoError(t, hub.Shutdown(context.Background()))

	for _, conn := range []*Conn{a, b} {
		_, ok := <-conn.Events()
		assert.False(t, ok)
	}
	assert.Equal(t, 0, hub.Len())

	_, err = hub.Register()
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestRegister_ConnectionLimit(t *testing.T) {
	hub := NewHub(Config{MaxConns: 2})
	defer func() { _ = hub.Shutdown(context.Background()) }()

	_, err := hub.Register()
	require.NoError(t, err)
	second, err := hub.Register()
	require.NoError(t, err)

	_, err = hub.Register()
	assert.ErrorIs(t, err, ErrConnLimit)

	// Freeing a slot allows registration again.
	hub.Unregister(second)
	_, err = hub.Register()
	assert.NoError(t, err)
}

func TestPublish_OrderPreservedPerConnection(t *testing.T) {
	hub := NewHub(Config{})
	defer func() { _ = hub.Shutdown(context.Background()) }()

	conn, err := hub.Register()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		hub.Publish(EventPostUpdate, i)
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, i, drainOne(t, conn).Payload)
	}
}
