package models

import "github.com/google/uuid"

// NewID issues a fresh record id. Ids are opaque strings and stable for the
// lifetime of a record.
func NewID() string {
	return uuid.NewString()
}

// nonNil keeps list fields encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
