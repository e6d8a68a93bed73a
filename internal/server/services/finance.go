package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/proplusapp/proplus/internal/common"
	"github.com/proplusapp/proplus/internal/logging"
	"github.com/proplusapp/proplus/internal/server/events"
	"github.com/proplusapp/proplus/internal/server/models"
	"github.com/proplusapp/proplus/internal/server/repositories/finance"
)

// AddRecordInput carries a new finance data point. All three amounts are
// required on the write path; only historical documents may miss them.
type AddRecordInput struct {
	Income  int64
	Debt    int64
	Savings int64
	Note    *string
}

// FinanceService writes personal-finance records and reads them back for the
// reporting consumers.
type FinanceService struct {
	repo      finance.Repository
	publisher events.Publisher
	logger    logging.Logger
}

// NewFinanceService constructs the service. publisher may be events.Noop{}
// when no broker is configured.
func NewFinanceService(repo finance.Repository, publisher events.Publisher, logger logging.Logger) *FinanceService {
	return &FinanceService{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With("module", "finance_service"),
	}
}

// Add persists a record stamped with the current time and notifies the
// reporting consumers. A publish failure is logged, never surfaced.
func (s *FinanceService) Add(ctx context.Context, input AddRecordInput) (*models.FinanceRecord, error) {
	if input.Income < 0 || input.Debt < 0 || input.Savings < 0 {
		return nil, fmt.Errorf("%w: amounts must be non-negative", common.ErrValidation)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("uuid generation error: %w", err)
	}

	record, err := s.repo.Create(ctx, &models.FinanceRecord{
		ID:      id.String(),
		Income:  &input.Income,
		Debt:    &input.Debt,
		Savings: &input.Savings,
		Note:    input.Note,
	})
	if err != nil {
		return nil, storeErr(err)
	}

	if err := s.publisher.PublishRecordAdded(ctx, events.RecordAdded{
		ID:      record.ID,
		Income:  record.Income,
		Debt:    record.Debt,
		Savings: record.Savings,
		TS:      record.TS.Format(time.RFC3339),
	}); err != nil {
		s.logger.Warn(ctx, "record.added publish failed", "error", err)
	}

	return record, nil
}

// List returns all valid records, oldest first.
func (s *FinanceService) List(ctx context.Context) ([]*models.FinanceRecord, error) {
	result, err := s.repo.ListValid(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return result, nil
}

// Summary aggregates the valid records for reporting.
func (s *FinanceService) Summary(ctx context.Context) (*models.FinanceSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return summary, nil
}
