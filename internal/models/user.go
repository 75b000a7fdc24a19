// Package models provides data models for the money tracker system.
package models

import (
	"fmt"
	"time"
)

// User represents an application user. It wraps the identity supplied by the
// upstream auth provider (referenced by Username) and carries the
// subscription flag used by the report mailer.
type User struct {
	ID         int64     `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	Subscribed bool      `json:"subscribed" db:"subscribed"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

func (u *User) String() string {
	return u.Username
}

// Validate checks the fields the schema constrains.
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}
