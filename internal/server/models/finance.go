package models

import "time"

// FinanceRecord is a personal-finance data point written by the automation
// CLI and read by the external reporting scripts. Fields are pointers because
// historical documents may miss any of them; readers only consume records
// where all three amounts are present.
type FinanceRecord struct {
	ID      string
	Income  *int64
	Debt    *int64
	Savings *int64
	Note    *string
	TS      time.Time
}

// Valid reports whether the record carries all three amounts.
func (r *FinanceRecord) Valid() bool {
	return r.Income != nil && r.Debt != nil && r.Savings != nil
}

// FinanceSummary aggregates the valid records for reporting.
type FinanceSummary struct {
	Count      int64
	AvgIncome  float64
	AvgDebt    float64
	AvgSavings float64
	Latest     *FinanceRecord
}
