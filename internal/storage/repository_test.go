package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTransactionInsertGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := core.Transaction{
		Date:     "2024-05-03",
		Type:     core.Expense,
		Category: "Groceries",
		Amount:   amt("42.50"),
		Notes:    "weekly shop",
	}
	id, err := repo.InsertTransaction(ctx, in)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.GetTransaction(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Date != in.Date || got.Type != in.Type || got.Category != in.Category || got.Notes != in.Notes {
		t.Fatalf("fetched fields differ: %+v vs %+v", got, in)
	}
	if !got.Amount.Equal(in.Amount) {
		t.Fatalf("fetched amount = %s, want %s", got.Amount, in.Amount)
	}
}

func TestUpdateTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.InsertTransaction(ctx, core.Transaction{Date: "2024-05-01", Type: core.Expense, Amount: amt("10")})
	if err != nil {
		t.Fatal(err)
	}

	upd := core.Transaction{ID: id, Date: "2024-05-02", Type: core.Income, Category: "Salary", Amount: amt("2500"), Notes: "payday"}
	if err := repo.UpdateTransaction(ctx, upd); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetTransaction(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != core.Income || got.Category != "Salary" || !got.Amount.Equal(amt("2500")) {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestDeleteNonexistentTransactionIsNoop(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.DeleteTransaction(context.Background(), 99999); err != nil {
		t.Fatalf("deleting missing id should not error: %v", err)
	}
}

func TestListTransactionsSearchCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []core.Transaction{
		{Date: "2024-05-01", Type: core.Expense, Amount: amt("800"), Notes: "Monthly RENT payment"},
		{Date: "2024-05-02", Type: core.Expense, Amount: amt("30"), Notes: "groceries"},
		{Date: "2024-05-03", Type: core.Expense, Amount: amt("12"), Notes: "rental car deposit"},
	}
	for _, tx := range seed {
		if _, err := repo.InsertTransaction(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListTransactions(ctx, store.TransactionQuery{Search: "rent"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(got), got)
	}
	for _, tx := range got {
		if tx.Notes != "Monthly RENT payment" && tx.Notes != "rental car deposit" {
			t.Errorf("unexpected match: %q", tx.Notes)
		}
	}
}

func TestListTransactionsSortDescending(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, tx := range []core.Transaction{
		{Date: "2024-05-01", Type: core.Expense, Amount: amt("10")},
		{Date: "2024-05-02", Type: core.Expense, Amount: amt("300")},
		{Date: "2024-05-03", Type: core.Expense, Amount: amt("25")},
	} {
		if _, err := repo.InsertTransaction(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListTransactions(ctx, store.TransactionQuery{SortBy: "amount"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows", len(got))
	}
	if !got[0].Amount.Equal(amt("300")) || !got[2].Amount.Equal(amt("10")) {
		t.Fatalf("not sorted by amount desc: %s, %s, %s", got[0].Amount, got[1].Amount, got[2].Amount)
	}

	// Unknown sort fields fall back to date instead of erroring.
	got, err = repo.ListTransactions(ctx, store.TransactionQuery{SortBy: "; DROP TABLE transactions"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Date != "2024-05-03" {
		t.Fatalf("fallback sort wrong: first date %s", got[0].Date)
	}
}

func TestListTransactionsMonthPrefix(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, tx := range []core.Transaction{
		{Date: "2024-05-01", Type: core.Expense, Amount: amt("10")},
		{Date: "2024-06-01", Type: core.Expense, Amount: amt("20")},
	} {
		if _, err := repo.InsertTransaction(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListTransactions(ctx, store.TransactionQuery{MonthPrefix: "2024-05"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Date != "2024-05-01" {
		t.Fatalf("month filter wrong: %+v", got)
	}
}

func TestReadMonthSummary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, tx := range []core.Transaction{
		{Date: "2024-05-01", Type: core.Income, Category: "Salary", Amount: amt("500")},
		{Date: "2024-05-10", Type: core.Expense, Category: "Rent", Amount: amt("150")},
		{Date: "2024-05-12", Type: core.Expense, Category: "Food", Amount: amt("50")},
		// Outside the queried month and must not count.
		{Date: "2024-06-01", Type: core.Expense, Category: "Rent", Amount: amt("999")},
	} {
		if _, err := repo.InsertTransaction(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := repo.ReadMonthSummary(ctx, "2024-05")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !sum.Income.Equal(amt("500")) {
		t.Errorf("income = %s, want 500", sum.Income)
	}
	if !sum.Expense.Equal(amt("200")) {
		t.Errorf("expense = %s, want 200", sum.Expense)
	}
	if !sum.Balance().Equal(amt("300")) {
		t.Errorf("balance = %s, want 300", sum.Balance())
	}
	if len(sum.ByCategory) != 2 {
		t.Fatalf("categories = %+v, want 2 entries", sum.ByCategory)
	}
	if sum.ByCategory[0].Name != "Rent" || !sum.ByCategory[0].Amount.Equal(amt("150")) {
		t.Errorf("top category = %+v, want Rent 150", sum.ByCategory[0])
	}
}

func TestReadMonthSummaryEmptyMonth(t *testing.T) {
	repo := newTestRepo(t)
	sum, err := repo.ReadMonthSummary(context.Background(), "2030-01")
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Income.IsZero() || !sum.Expense.IsZero() || len(sum.ByCategory) != 0 {
		t.Fatalf("empty month should be all zeros: %+v", sum)
	}
}

func TestUpsertBudgetKeepsOneRowPerMonth(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.UpsertBudget(ctx, core.Budget{Month: "2024-05", Amount: amt("1000")}); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpsertBudget(ctx, core.Budget{Month: "2024-05", Amount: amt("1500")}); err != nil {
		t.Fatal(err)
	}

	all, err := repo.ListBudgets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d budget rows for 2024-05, want 1", len(all))
	}
	if !all[0].Amount.Equal(amt("1500")) {
		t.Fatalf("amount = %s, want 1500", all[0].Amount)
	}

	b, ok, err := repo.BudgetForMonth(ctx, "2024-05")
	if err != nil || !ok {
		t.Fatalf("BudgetForMonth: ok=%v err=%v", ok, err)
	}
	if !b.Amount.Equal(amt("1500")) {
		t.Fatalf("BudgetForMonth amount = %s", b.Amount)
	}
}

func TestBudgetForMonthMissing(t *testing.T) {
	repo := newTestRepo(t)
	_, ok, err := repo.BudgetForMonth(context.Background(), "1999-01")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected ok=false for missing month")
	}
}

func TestReplaceStripsIncomingIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// An existing row occupies id 1; restored records carrying id 1 must
	// not collide.
	if _, err := repo.InsertTransaction(ctx, core.Transaction{Date: "2024-01-01", Type: core.Expense, Amount: amt("1")}); err != nil {
		t.Fatal(err)
	}

	incoming := []core.Transaction{
		{ID: 1, Date: "2024-02-01", Type: core.Income, Amount: amt("10")},
		{ID: 1, Date: "2024-02-02", Type: core.Expense, Amount: amt("20")},
	}
	if err := repo.ReplaceTransactions(ctx, incoming); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := repo.ListTransactions(ctx, store.TransactionQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows after replace, want 2", len(got))
	}
	if got[0].ID == got[1].ID {
		t.Fatalf("restored rows share an id: %+v", got)
	}
}

func TestReplaceWithEmptySliceOnlyWipes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.InsertGoal(ctx, core.Goal{Name: "Vacation", Target: amt("2000"), Current: amt("150")}); err != nil {
		t.Fatal(err)
	}
	if err := repo.ReplaceGoals(ctx, nil); err != nil {
		t.Fatalf("replace with empty: %v", err)
	}
	goals, err := repo.ListGoals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 0 {
		t.Fatalf("goals not wiped: %+v", goals)
	}
}

func TestGoalRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.InsertGoal(ctx, core.Goal{Name: "Emergency fund", Target: amt("5000"), Current: amt("1250.75")}); err != nil {
		t.Fatal(err)
	}
	goals, err := repo.ListGoals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 1 {
		t.Fatalf("got %d goals", len(goals))
	}
	g := goals[0]
	if g.Name != "Emergency fund" || !g.Target.Equal(amt("5000")) || !g.Current.Equal(amt("1250.75")) {
		t.Fatalf("goal fields differ: %+v", g)
	}
}

func TestCategoryInsertAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Rent", "Food"} {
		if _, err := repo.InsertCategory(ctx, core.Category{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0].Name != "Food" || cats[1].Name != "Rent" {
		t.Fatalf("categories = %+v", cats)
	}
}
