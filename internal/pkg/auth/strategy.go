package auth

import "time"

// Strategy issues and validates the session tokens that identify a user on
// payment endpoints.
type Strategy interface {
	IssueToken(userID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

// Options tunes a Strategy. A zero TTL falls back to one day.
type Options struct {
	TTL time.Duration
}
