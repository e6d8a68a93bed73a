package models

import (
	"time"

	"github.com/proplusapp/proplus/internal/server/ids"
)

// Project is an owner-scoped resource. Only the owner can see or modify it.
type Project struct {
	ID          ids.ID
	Title       string
	Description *string
	OwnerID     ids.ID
	CreatedAt   time.Time
}
