package http

import (
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

type (
	txRow struct {
		ID        int64
		Date      string
		Type      core.TransactionType
		Category  string
		Amount    string // formatted for display
		RawAmount string // bare decimal for the edit form
		Notes     string
	}

	transactionsView struct {
		baseView
		Transactions []txRow
		Categories   []core.Category
		Search       string
		Sort         string
		Edit         *txRow // prefills the form when editing
	}
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleSaveTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleListTransactions renders the transaction list with optional
// search and sort. Query failures render empty lists, not errors.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	view := transactionsView{
		baseView: s.baseView(w, r),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Sort:     strings.TrimSpace(r.URL.Query().Get("sort")),
	}
	sym := view.Settings.CurrencySymbol

	if s.txs != nil {
		items, err := s.txs.ListTransactions(r.Context(), store.TransactionQuery{
			Search: view.Search,
			SortBy: view.Sort,
		})
		if err != nil {
			s.errlog.Log(r.Context(), "list transactions failed", err)
		}
		for _, t := range items {
			view.Transactions = append(view.Transactions, txRow{
				ID:        t.ID,
				Date:      t.Date,
				Type:      t.Type,
				Category:  t.Category,
				Amount:    formatAmount(sym, t.Amount),
				RawAmount: t.Amount.StringFixed(2),
				Notes:     t.Notes,
			})
		}
	}
	if s.cats != nil {
		cats, err := s.cats.ListCategories(r.Context())
		if err != nil {
			s.errlog.Log(r.Context(), "list categories failed", err)
		}
		view.Categories = cats
	}

	// ?edit=<id> prefills the form with an existing transaction. An
	// unknown id just leaves the form blank.
	if editID, err := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64); err == nil && s.txs != nil {
		if t, err := s.txs.GetTransaction(r.Context(), editID); err == nil {
			view.Edit = &txRow{
				ID:        t.ID,
				Date:      t.Date,
				Type:      t.Type,
				Category:  t.Category,
				RawAmount: t.Amount.StringFixed(2),
				Notes:     t.Notes,
			}
		}
	}

	s.render(w, r, "transactions.html", view)
}

// handleSaveTransaction inserts a new transaction, or updates one when
// the form carries a non-empty transaction_id. Either way the request
// finishes with a redirect back to the list.
func (s *Server) handleSaveTransaction(w http.ResponseWriter, r *http.Request) {
	err := s.saveTransaction(r)
	switch {
	case err != nil:
		s.errlog.Log(r.Context(), "save transaction failed", err)
		setFlash(w, flashDanger, "Error saving transaction.")
	case strings.TrimSpace(r.PostFormValue("transaction_id")) != "":
		setFlash(w, flashSuccess, "Transaction Updated!")
	default:
		setFlash(w, flashSuccess, "Transaction Added!")
	}
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}

func (s *Server) saveTransaction(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	if s.txs == nil {
		return errStoreUnavailable
	}

	amount, err := core.ParseAmount(r.PostFormValue("amount"))
	if err != nil {
		return err
	}
	tx := core.Transaction{
		Date:     strings.TrimSpace(r.PostFormValue("date")),
		Type:     core.TransactionType(strings.TrimSpace(r.PostFormValue("type"))),
		Category: sanitizeInput(r.PostFormValue("category")),
		Amount:   amount,
		Notes:    sanitizeInput(r.PostFormValue("notes")),
	}
	if err := tx.Validate(); err != nil {
		return err
	}

	if id := strings.TrimSpace(r.PostFormValue("transaction_id")); id != "" {
		txID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return err
		}
		tx.ID = txID
		return s.txs.UpdateTransaction(r.Context(), tx)
	}

	_, err = s.txs.InsertTransaction(r.Context(), tx)
	return err
}

// handleDeleteTransaction removes a transaction unconditionally. A
// missing or malformed id is a silent no-op; the redirect and warning
// notification happen regardless.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if id, err := strconv.ParseInt(r.PathValue("id"), 10, 64); err == nil && s.txs != nil {
		if err := s.txs.DeleteTransaction(r.Context(), id); err != nil {
			s.errlog.Log(r.Context(), "delete transaction failed", err)
		}
	}
	setFlash(w, flashWarning, "Transaction deleted")
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}
