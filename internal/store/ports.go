// Package store declares the persistence ports consumed by the HTTP
// handlers. A nil port means the database was never reached at startup;
// consumers treat nil and a failing operation the same way and degrade.
package store

import (
	"context"

	"fintrack/internal/core"
)

// TransactionQuery narrows a transaction listing. Zero value lists
// everything in descending date order.
type TransactionQuery struct {
	// Search matches as a case-insensitive substring against notes.
	Search string
	// MonthPrefix restricts to dates starting with a YYYY-MM month.
	MonthPrefix string
	// SortBy names the field to sort on, always descending. Unknown or
	// empty values fall back to date.
	SortBy string
}

// Ports for the storage adapter.
type (
	TransactionStore interface {
		ListTransactions(ctx context.Context, q TransactionQuery) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
		InsertTransaction(ctx context.Context, t core.Transaction) (int64, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		// DeleteTransaction removes a transaction by id. Deleting an id
		// that does not exist is a no-op, not an error.
		DeleteTransaction(ctx context.Context, id int64) error
		// ReplaceTransactions wipes the collection, then inserts the given
		// records ignoring their incoming ids. An empty slice only wipes.
		ReplaceTransactions(ctx context.Context, items []core.Transaction) error
	}

	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		InsertCategory(ctx context.Context, c core.Category) (int64, error)
		ReplaceCategories(ctx context.Context, items []core.Category) error
	}

	BudgetStore interface {
		// BudgetForMonth reports the budget for a YYYY-MM month and
		// whether one exists.
		BudgetForMonth(ctx context.Context, month string) (core.Budget, bool, error)
		// UpsertBudget keeps at most one budget row per month, overwriting
		// the amount when the month already exists.
		UpsertBudget(ctx context.Context, b core.Budget) error
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		ReplaceBudgets(ctx context.Context, items []core.Budget) error
	}

	GoalStore interface {
		ListGoals(ctx context.Context) ([]core.Goal, error)
		InsertGoal(ctx context.Context, g core.Goal) (int64, error)
		ReplaceGoals(ctx context.Context, items []core.Goal) error
	}

	// DashboardReader provides the aggregated monthly totals. Aggregation
	// runs in the database, not in handler code.
	DashboardReader interface {
		ReadMonthSummary(ctx context.Context, month string) (core.MonthSummary, error)
	}
)
