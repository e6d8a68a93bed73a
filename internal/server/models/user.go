// Package models holds the persisted record types shared by repositories
// and services.
package models

import (
	"time"

	"github.com/proplusapp/proplus/internal/server/ids"
)

// User is the identity record created at registration. Immutable afterwards
// except by administrative action.
type User struct {
	ID           ids.ID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the verified caller representation derived from a token.
// It never carries the password hash.
type Identity struct {
	ID    ids.ID
	Email string
}
