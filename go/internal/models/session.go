package models

import "time"

// Session binds an opaque id to an authenticated user.
type Session struct {
	ID         string    `json:"id"`
	User       User      `json:"user"`
	LastActive time.Time `json:"last_active"`
}
