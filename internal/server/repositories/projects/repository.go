package projects

import (
	"context"

	"github.com/proplusapp/proplus/internal/server/ids"
	"github.com/proplusapp/proplus/internal/server/models"
)

// Patch carries the replace-style update applied by Update.
type Patch struct {
	Title       string
	Description *string
}

// Repository persists owner-scoped projects. Every read and mutation is
// filtered by owner id, so a foreign project is indistinguishable from an
// absent one.
type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	List(ctx context.Context, ownerID ids.ID, limit, offset int) ([]*models.Project, error)
	Get(ctx context.Context, ownerID, id ids.ID) (*models.Project, error)
	Update(ctx context.Context, ownerID, id ids.ID, patch Patch) (*models.Project, error)
	Delete(ctx context.Context, ownerID, id ids.ID) error
}
