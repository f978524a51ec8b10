package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// MonthSummary is the aggregated dashboard data for one YYYY-MM month.
type MonthSummary struct {
	Month      string
	Income     decimal.Decimal
	Expense    decimal.Decimal
	ByCategory []CategoryAmount // expense totals per category
}

// Balance returns income minus expense.
func (s MonthSummary) Balance() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

// ProgressPct returns spent/limit as a percentage, clamped to 0 when the
// limit is not positive so a missing or zero budget never divides by zero.
func ProgressPct(spent, limit decimal.Decimal) float64 {
	if !limit.IsPositive() {
		return 0
	}
	pct, _ := spent.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}
