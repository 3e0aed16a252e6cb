// Package realtime implements the broadcast hub that fans out state-change
// events to every connected client stream.
package realtime

// EventKind names the kinds of events a client stream can receive.
type EventKind string

const (
	// EventNewPost announces a freshly created post.
	EventNewPost EventKind = "new-post"
	// EventPostUpdate announces changed fields on an existing post.
	EventPostUpdate EventKind = "post-update"
	// EventUserUpdate announces changed fields on a user record.
	EventUserUpdate EventKind = "user-update"
	// EventNotification carries a user-facing notification.
	EventNotification EventKind = "notification"
	// EventPing is the periodic heartbeat keeping streams alive.
	EventPing EventKind = "ping"
)

// Event is what the hub delivers to connections. The payload is opaque to
// the hub; its wire encoding is owned by the transport layer.
type Event struct {
	Kind    EventKind `json:"kind"`
	Payload any       `json:"payload"`
}

// PostUpdate is the conventional payload for EventPostUpdate events.
type PostUpdate struct {
	PostID  uint           `json:"post_id"`
	Updates map[string]any `json:"updates"`
}

// UserUpdate is the conventional payload for EventUserUpdate events.
type UserUpdate struct {
	UserID  uint           `json:"user_id"`
	Updates map[string]any `json:"updates"`
}
