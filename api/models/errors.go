package models

import "errors"

// Sentinel errors the presentation layer maps onto HTTP statuses. Absence
// is always signalled explicitly rather than by returning a nil record.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
)
