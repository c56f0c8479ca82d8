package model

import "time"

// User represents a registered account.
type User struct {
	ID           string
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
