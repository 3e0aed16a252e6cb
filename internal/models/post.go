package models

import "time"

// Post represents a feed post, optionally carrying media that can be
// downloaded for free or listed for sale in the credit marketplace.
type Post struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	Media     Media     `json:"-"`
	Listing   Listing   `json:"-"`
	CreatedAt time.Time `json:"created_at"`

	// Likes mirrors the cardinality of the like set for this post and is
	// maintained only by the entity store.
	Likes     int `json:"likes"`
	Comments  int `json:"comments"`
	Views     int `json:"views"`
	Downloads int `json:"downloads"`
}
