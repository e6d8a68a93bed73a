package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/proplusapp/proplus/internal/common"
	"github.com/proplusapp/proplus/internal/server/ids"
	"github.com/proplusapp/proplus/internal/server/models"
	"github.com/proplusapp/proplus/internal/server/repositories/projects"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ProjectInput is the create/update payload for a project.
type ProjectInput struct {
	Title       string
	Description *string
}

// ProjectService is the owner-scoped resource access layer. Every operation
// takes the verified caller identity and is invisible across owners.
type ProjectService struct {
	repo projects.Repository
}

// NewProjectService constructs the service with an injected project store.
func NewProjectService(repo projects.Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create persists a new project owned by the caller.
func (s *ProjectService) Create(ctx context.Context, identity *models.Identity, input ProjectInput) (*models.Project, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title required", common.ErrValidation)
	}

	id, err := ids.New()
	if err != nil {
		return nil, err
	}

	project, err := s.repo.Create(ctx, &models.Project{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     identity.ID,
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return project, nil
}

// List returns the caller's projects, newest first. The limit is clamped to
// [1, 100] (default 20) and a negative offset is treated as zero.
func (s *ProjectService) List(ctx context.Context, identity *models.Identity, limit, offset int) ([]*models.Project, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	result, err := s.repo.List(ctx, identity.ID, limit, offset)
	if err != nil {
		return nil, storeErr(err)
	}
	return result, nil
}

// Get returns the project if the caller owns it; common.ErrNotFound otherwise.
func (s *ProjectService) Get(ctx context.Context, identity *models.Identity, id ids.ID) (*models.Project, error) {
	project, err := s.repo.Get(ctx, identity.ID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return project, nil
}

// Update atomically replaces title and description, conditioned on ownership.
func (s *ProjectService) Update(ctx context.Context, identity *models.Identity, id ids.ID, input ProjectInput) (*models.Project, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title required", common.ErrValidation)
	}

	project, err := s.repo.Update(ctx, identity.ID, id, projects.Patch{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return project, nil
}

// Delete removes the project if the caller owns it.
func (s *ProjectService) Delete(ctx context.Context, identity *models.Identity, id ids.ID) error {
	err := s.repo.Delete(ctx, identity.ID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return storeErr(err)
	}
	return nil
}
