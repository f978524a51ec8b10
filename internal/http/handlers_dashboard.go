package http

import (
	"context"
	"net/http"

	"fintrack/internal/core"
)

type (
	chartRow struct {
		Name   string
		Amount string
		Width  int // bar width percent relative to the largest category
	}

	goalRow struct {
		Name    string
		Current string
		Target  string
		Pct     int
	}

	dashboardView struct {
		baseView
		Month       string
		Income      string
		Expense     string
		Balance     string
		BudgetLimit string
		HasBudget   bool
		BudgetPct   int
		Chart       []chartRow
		Goals       []goalRow
	}
)

// handleDashboard renders the aggregated month view. Any failure along
// the way degrades to a zeroed dashboard; this route never errors.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month := monthParam(r)
	view := dashboardView{baseView: s.baseView(w, r), Month: month}

	sym := view.Settings.CurrencySymbol
	sum, budget, goals, err := s.loadDashboard(r.Context(), month)
	if err != nil {
		s.errlog.Log(r.Context(), "dashboard load failed", err)
		sum = core.MonthSummary{Month: month}
		budget = core.Budget{}
		goals = nil
	}

	view.Income = formatAmount(sym, sum.Income)
	view.Expense = formatAmount(sym, sum.Expense)
	view.Balance = formatAmount(sym, sum.Balance())
	view.BudgetLimit = formatAmount(sym, budget.Amount)
	view.HasBudget = budget.Amount.IsPositive()
	view.BudgetPct = int(core.ProgressPct(sum.Expense, budget.Amount))

	// Scale category bars against the largest expense category.
	var maxAmount = core.CentsToAmount(0)
	for _, c := range sum.ByCategory {
		if c.Amount.GreaterThan(maxAmount) {
			maxAmount = c.Amount
		}
	}
	for _, c := range sum.ByCategory {
		width := int(core.ProgressPct(c.Amount, maxAmount))
		if width > 0 && width < 2 {
			width = 2
		}
		if width > 100 {
			width = 100
		}
		view.Chart = append(view.Chart, chartRow{
			Name:   c.Name,
			Amount: formatAmount(sym, c.Amount),
			Width:  width,
		})
	}

	for _, g := range goals {
		view.Goals = append(view.Goals, goalRow{
			Name:    g.Name,
			Current: formatAmount(sym, g.Current),
			Target:  formatAmount(sym, g.Target),
			Pct:     int(core.ProgressPct(g.Current, g.Target)),
		})
	}

	s.render(w, r, "dashboard.html", view)
}

// loadDashboard gathers the month summary, the month's budget, and all
// goals. A nil store counts as a failure so the caller degrades.
func (s *Server) loadDashboard(ctx context.Context, month string) (core.MonthSummary, core.Budget, []core.Goal, error) {
	if s.dash == nil || s.budgets == nil || s.goals == nil {
		return core.MonthSummary{}, core.Budget{}, nil, errStoreUnavailable
	}

	sum, err := s.dash.ReadMonthSummary(ctx, month)
	if err != nil {
		return core.MonthSummary{}, core.Budget{}, nil, err
	}

	budget, _, err := s.budgets.BudgetForMonth(ctx, month)
	if err != nil {
		return core.MonthSummary{}, core.Budget{}, nil, err
	}

	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return core.MonthSummary{}, core.Budget{}, nil, err
	}

	return sum, budget, goals, nil
}
