package finance

import (
	"context"

	"github.com/proplusapp/proplus/internal/server/models"
)

// Repository persists personal-finance records for the automation CLI and
// the external reporting consumers.
type Repository interface {
	Create(ctx context.Context, record *models.FinanceRecord) (*models.FinanceRecord, error)
	// ListValid returns records that carry income, debt and savings,
	// ordered by ts ascending.
	ListValid(ctx context.Context) ([]*models.FinanceRecord, error)
	Summary(ctx context.Context) (*models.FinanceSummary, error)
}
