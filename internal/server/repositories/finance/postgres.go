// Package finance provides the PostgreSQL-backed store for personal-finance
// records.
package finance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/proplusapp/proplus/internal/dbx"
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

// Create inserts a record stamped with ts = now.
func (r *PostgresRepository) Create(ctx context.Context, record *models.FinanceRecord) (*models.FinanceRecord, error) {
	query :=
		`INSERT INTO finance_records (id, income, debt, savings, note)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ts
		 `

	err := r.db.QueryRowContext(ctx, query,
		record.ID, record.Income, record.Debt, record.Savings, record.Note).Scan(&record.TS)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

// ListValid returns only records that surely have income, debt and savings,
// sorted by ts ascending, matching what the reporting scripts consume.
func (r *PostgresRepository) ListValid(ctx context.Context) ([]*models.FinanceRecord, error) {
	query :=
		`SELECT id, income, debt, savings, note, ts FROM finance_records
		 WHERE income IS NOT NULL AND debt IS NOT NULL AND savings IS NOT NULL
		 ORDER BY ts ASC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.FinanceRecord{}
	for rows.Next() {
		item := &models.FinanceRecord{}
		if err := rows.Scan(&item.ID, &item.Income, &item.Debt, &item.Savings, &item.Note, &item.TS); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Summary aggregates valid records and attaches the latest of them.
func (r *PostgresRepository) Summary(ctx context.Context) (*models.FinanceSummary, error) {
	query :=
		`SELECT count(*),
		        coalesce(avg(income), 0),
		        coalesce(avg(debt), 0),
		        coalesce(avg(savings), 0)
		 FROM finance_records
		 WHERE income IS NOT NULL AND debt IS NOT NULL AND savings IS NOT NULL
		 `

	summary := &models.FinanceSummary{}
	err := r.db.QueryRowContext(ctx, query).
		Scan(&summary.Count, &summary.AvgIncome, &summary.AvgDebt, &summary.AvgSavings)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if summary.Count == 0 {
		return summary, nil
	}

	latestQuery :=
		`SELECT id, income, debt, savings, note, ts FROM finance_records
		 WHERE income IS NOT NULL AND debt IS NOT NULL AND savings IS NOT NULL
		 ORDER BY ts DESC
		 LIMIT 1
		 `

	latest := &models.FinanceRecord{}
	err = r.db.QueryRowContext(ctx, latestQuery).
		Scan(&latest.ID, &latest.Income, &latest.Debt, &latest.Savings, &latest.Note, &latest.TS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return summary, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	summary.Latest = latest

	return summary, nil
}
