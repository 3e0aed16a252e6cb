// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account in the Prism application.
//
// Counters (Followers, Following, Posts) and the economic fields are owned
// exclusively by the entity store; they are never negative.
type User struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Bio        string    `json:"bio,omitempty"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"cover_image"`
	Website    string    `json:"website,omitempty"`
	Location   string    `json:"location,omitempty"`
	Verified   bool      `json:"is_verified"`
	JoinedAt   time.Time `json:"joined_at"`

	Followers int `json:"followers"`
	Following int `json:"following"`
	Posts     int `json:"posts"`

	Credits         int `json:"credits"`
	TotalEarnings   int `json:"total_earnings"`
	TradesCompleted int `json:"trades_completed"`
}
