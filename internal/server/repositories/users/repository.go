package users

import (
	"context"

	"github.com/proplusapp/proplus/internal/server/ids"
	"github.com/proplusapp/proplus/internal/server/models"
)

// Repository is the credential store: persistence of user identity plus
// password hash.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id ids.ID) (*models.User, error)
	DeleteByEmail(ctx context.Context, email string) error
}
