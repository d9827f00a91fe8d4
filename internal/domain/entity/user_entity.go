package entity

import "time"

// User is the aggregate root for the author domain.
// Password holds a bcrypt hash, never the plaintext.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
