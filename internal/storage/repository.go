package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements every port in internal/store over a single
// shared connection pool opened at process start.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// sortColumns whitelists user-supplied sort fields. Anything else sorts
// by date.
var sortColumns = map[string]string{
	"date":     "date",
	"type":     "type",
	"category": "category",
	"amount":   "amount_cents",
	"notes":    "notes",
}

// ListTransactions implements store.TransactionStore.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, q store.TransactionQuery) ([]core.Transaction, error) {
	query := `SELECT id, date, type, category, amount_cents, notes FROM transactions`
	var (
		conds []string
		args  []any
	)
	if q.Search != "" {
		conds = append(conds, `LOWER(notes) LIKE '%' || LOWER(?) || '%'`)
		args = append(args, q.Search)
	}
	if q.MonthPrefix != "" {
		conds = append(conds, `date LIKE ? || '%'`)
		args = append(args, q.MonthPrefix)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = "date"
	}
	query += " ORDER BY " + col + " DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var items []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		items = append(items, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return items, nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		tx    core.Transaction
		typ   string
		cents int64
	)
	if err := rows.Scan(&tx.ID, &tx.Date, &typ, &tx.Category, &cents, &tx.Notes); err != nil {
		return core.Transaction{}, err
	}
	tx.Type = core.TransactionType(typ)
	tx.Amount = core.CentsToAmount(cents)
	return tx, nil
}

// GetTransaction implements store.TransactionStore.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var (
		tx    core.Transaction
		typ   string
		cents int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, type, category, amount_cents, notes FROM transactions WHERE id = ?`, id).
		Scan(&tx.ID, &tx.Date, &typ, &tx.Category, &cents, &tx.Notes)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	tx.Type = core.TransactionType(typ)
	tx.Amount = core.CentsToAmount(cents)
	return tx, nil
}

// InsertTransaction implements store.TransactionStore.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, type, category, amount_cents, notes) VALUES (?, ?, ?, ?, ?)`,
		t.Date, string(t.Type), t.Category, core.AmountToCents(t.Amount), t.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert transaction id: %w", err)
	}
	slog.InfoContext(ctx, "Transaction saved", "id", id, "date", t.Date, "type", t.Type, "amount", t.Amount)
	return id, nil
}

// UpdateTransaction implements store.TransactionStore.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET date = ?, type = ?, category = ?, amount_cents = ?, notes = ? WHERE id = ?`,
		t.Date, string(t.Type), t.Category, core.AmountToCents(t.Amount), t.Notes, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", t.ID, err)
	}
	return nil
}

// DeleteTransaction implements store.TransactionStore. A missing id
// deletes zero rows and is not an error.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// ReplaceTransactions implements store.TransactionStore.
func (r *SQLiteRepository) ReplaceTransactions(ctx context.Context, items []core.Transaction) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("wipe transactions: %w", err)
	}
	for _, t := range items {
		// Incoming ids are dropped so the store assigns fresh ones.
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO transactions (date, type, category, amount_cents, notes) VALUES (?, ?, ?, ?, ?)`,
			t.Date, string(t.Type), t.Category, core.AmountToCents(t.Amount), t.Notes); err != nil {
			return fmt.Errorf("restore transaction: %w", err)
		}
	}
	return nil
}

// ListCategories implements store.CategoryStore.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// InsertCategory implements store.CategoryStore.
func (r *SQLiteRepository) InsertCategory(ctx context.Context, c core.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, c.Name)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert category id: %w", err)
	}
	return id, nil
}

// ReplaceCategories implements store.CategoryStore.
func (r *SQLiteRepository) ReplaceCategories(ctx context.Context, items []core.Category) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("wipe categories: %w", err)
	}
	for _, c := range items {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, c.Name); err != nil {
			return fmt.Errorf("restore category: %w", err)
		}
	}
	return nil
}

// BudgetForMonth implements store.BudgetStore.
func (r *SQLiteRepository) BudgetForMonth(ctx context.Context, month string) (core.Budget, bool, error) {
	var (
		b     core.Budget
		cents int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, month, amount_cents FROM budgets WHERE month = ?`, month).
		Scan(&b.ID, &b.Month, &cents)
	if err == sql.ErrNoRows {
		return core.Budget{}, false, nil
	}
	if err != nil {
		return core.Budget{}, false, fmt.Errorf("budget for month %s: %w", month, err)
	}
	b.Amount = core.CentsToAmount(cents)
	return b, true, nil
}

// UpsertBudget implements store.BudgetStore.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (month, amount_cents) VALUES (?, ?)
		 ON CONFLICT(month) DO UPDATE SET amount_cents = excluded.amount_cents`,
		b.Month, core.AmountToCents(b.Amount))
	if err != nil {
		return fmt.Errorf("upsert budget %s: %w", b.Month, err)
	}
	return nil
}

// ListBudgets implements store.BudgetStore.
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, month, amount_cents FROM budgets ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var items []core.Budget
	for rows.Next() {
		var (
			b     core.Budget
			cents int64
		)
		if err := rows.Scan(&b.ID, &b.Month, &cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Amount = core.CentsToAmount(cents)
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return items, nil
}

// ReplaceBudgets implements store.BudgetStore.
func (r *SQLiteRepository) ReplaceBudgets(ctx context.Context, items []core.Budget) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
		return fmt.Errorf("wipe budgets: %w", err)
	}
	for _, b := range items {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO budgets (month, amount_cents) VALUES (?, ?)`,
			b.Month, core.AmountToCents(b.Amount)); err != nil {
			return fmt.Errorf("restore budget: %w", err)
		}
	}
	return nil
}

// ListGoals implements store.GoalStore.
func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, target_cents, current_cents FROM goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var items []core.Goal
	for rows.Next() {
		var (
			g               core.Goal
			target, current int64
		)
		if err := rows.Scan(&g.ID, &g.Name, &target, &current); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Target = core.CentsToAmount(target)
		g.Current = core.CentsToAmount(current)
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return items, nil
}

// InsertGoal implements store.GoalStore.
func (r *SQLiteRepository) InsertGoal(ctx context.Context, g core.Goal) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (name, target_cents, current_cents) VALUES (?, ?, ?)`,
		g.Name, core.AmountToCents(g.Target), core.AmountToCents(g.Current))
	if err != nil {
		return 0, fmt.Errorf("insert goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert goal id: %w", err)
	}
	return id, nil
}

// ReplaceGoals implements store.GoalStore.
func (r *SQLiteRepository) ReplaceGoals(ctx context.Context, items []core.Goal) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return fmt.Errorf("wipe goals: %w", err)
	}
	for _, g := range items {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO goals (name, target_cents, current_cents) VALUES (?, ?, ?)`,
			g.Name, core.AmountToCents(g.Target), core.AmountToCents(g.Current)); err != nil {
			return fmt.Errorf("restore goal: %w", err)
		}
	}
	return nil
}

// ReadMonthSummary implements store.DashboardReader. All sums run in
// SQL over integer cents.
func (r *SQLiteRepository) ReadMonthSummary(ctx context.Context, month string) (core.MonthSummary, error) {
	summary := core.MonthSummary{Month: month}

	rows, err := r.db.QueryContext(ctx,
		`SELECT type, COALESCE(SUM(amount_cents), 0)
		 FROM transactions
		 WHERE date LIKE ? || '%'
		 GROUP BY type`, month)
	if err != nil {
		return summary, fmt.Errorf("month totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			typ   string
			cents int64
		)
		if err := rows.Scan(&typ, &cents); err != nil {
			return summary, fmt.Errorf("scan month total: %w", err)
		}
		switch core.TransactionType(typ) {
		case core.Income:
			summary.Income = core.CentsToAmount(cents)
		case core.Expense:
			summary.Expense = core.CentsToAmount(cents)
		}
	}
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("month totals: %w", err)
	}

	catRows, err := r.db.QueryContext(ctx,
		`SELECT category, COALESCE(SUM(amount_cents), 0)
		 FROM transactions
		 WHERE type = 'expense' AND date LIKE ? || '%'
		 GROUP BY category
		 ORDER BY SUM(amount_cents) DESC`, month)
	if err != nil {
		return summary, fmt.Errorf("category sums: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var (
			name  string
			cents int64
		)
		if err := catRows.Scan(&name, &cents); err != nil {
			return summary, fmt.Errorf("scan category sum: %w", err)
		}
		summary.ByCategory = append(summary.ByCategory, core.CategoryAmount{
			Name:   name,
			Amount: core.CentsToAmount(cents),
		})
	}
	if err := catRows.Err(); err != nil {
		return summary, fmt.Errorf("category sums: %w", err)
	}

	return summary, nil
}
