// Package projects provides the PostgreSQL-backed store for owner-scoped
// project records.
package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/proplusapp/proplus/internal/common"
	"github.com/proplusapp/proplus/internal/dbx"
	"github.com/proplusapp/proplus/internal/server/ids"
	"github.com/proplusapp/proplus/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new project owned by project.OwnerID.
func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {

	query :=
		`INSERT INTO projects (id, title, description, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		project.ID.String(), project.Title, project.Description, project.OwnerID.String()).
		Scan(&project.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return project, nil
}

// List returns the caller's projects, newest first. The secondary sort on id
// keeps page boundaries stable when timestamps collide.
func (r *PostgresRepository) List(ctx context.Context, ownerID ids.ID, limit, offset int) ([]*models.Project, error) {
	query :=
		`SELECT id, title, description, owner_id, created_at FROM projects
		 WHERE owner_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID.String(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Project{}
	for rows.Next() {
		item, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Get returns the project only if it is owned by ownerID.
func (r *PostgresRepository) Get(ctx context.Context, ownerID, id ids.ID) (*models.Project, error) {
	query :=
		`SELECT id, title, description, owner_id, created_at FROM projects
		 WHERE id = $1 AND owner_id = $2
		 `

	row := r.db.QueryRowContext(ctx, query, id.String(), ownerID.String())
	project, err := scanProject(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// Update is an atomic find-and-modify conditioned on ownership. A foreign or
// absent project yields common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id ids.ID, patch Patch) (*models.Project, error) {
	query :=
		`UPDATE projects SET title = $1, description = $2
		 WHERE id = $3 AND owner_id = $4
		 RETURNING id, title, description, owner_id, created_at
		 `

	row := r.db.QueryRowContext(ctx, query, patch.Title, patch.Description, id.String(), ownerID.String())
	project, err := scanProject(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// Delete removes the project if owned by ownerID, common.ErrNotFound otherwise.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id ids.ID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1 AND owner_id = $2`, id.String(), ownerID.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanProject(scan func(dest ...any) error) (*models.Project, error) {
	project := &models.Project{}
	var id, ownerID string
	if err := scan(&id, &project.Title, &project.Description, &ownerID, &project.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	project.ID = ids.ID(id)
	project.OwnerID = ids.ID(ownerID)
	return project, nil
}
