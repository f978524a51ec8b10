package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/store"
)

// handleExportCSV downloads every transaction as CSV. Failures surface
// as a plain-text error response, never a crash.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if s.txs == nil {
		s.errlog.Log(r.Context(), "csv export failed", errStoreUnavailable)
		http.Error(w, "Error exporting CSV", http.StatusInternalServerError)
		return
	}
	items, err := s.txs.ListTransactions(r.Context(), store.TransactionQuery{})
	if err != nil {
		s.errlog.Log(r.Context(), "csv export failed", err)
		http.Error(w, "Error exporting CSV", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, items); err != nil {
		s.errlog.Log(r.Context(), "csv export failed", err)
		http.Error(w, "Error exporting CSV", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=transactions.csv`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// handleExportPDF downloads the current month's transactions as a PDF
// report.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	month := core.CurrentMonth()
	fail := func(err error) {
		s.errlog.Log(r.Context(), "pdf export failed", err)
		http.Error(w, "Error exporting PDF", http.StatusInternalServerError)
	}

	if s.txs == nil {
		fail(errStoreUnavailable)
		return
	}
	items, err := s.txs.ListTransactions(r.Context(), store.TransactionQuery{MonthPrefix: month})
	if err != nil {
		fail(err)
		return
	}

	data, err := export.BuildPDF(items, month, s.viewSettings().CurrencySymbol)
	if err != nil {
		fail(err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.pdf", month))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// handleBackup downloads the entire contents of all four collections as
// one JSON document.
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := s.collectBackup(r.Context())
	if err != nil {
		s.errlog.Log(r.Context(), "backup failed", err)
		http.Error(w, "Backup failed", http.StatusInternalServerError)
		return
	}
	data, err := doc.Marshal()
	if err != nil {
		s.errlog.Log(r.Context(), "backup failed", err)
		http.Error(w, "Backup failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename=backup.json`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (s *Server) collectBackup(ctx context.Context) (export.Document, error) {
	if s.txs == nil || s.cats == nil || s.budgets == nil || s.goals == nil {
		return export.Document{}, errStoreUnavailable
	}
	txs, err := s.txs.ListTransactions(ctx, store.TransactionQuery{})
	if err != nil {
		return export.Document{}, err
	}
	cats, err := s.cats.ListCategories(ctx)
	if err != nil {
		return export.Document{}, err
	}
	budgets, err := s.budgets.ListBudgets(ctx)
	if err != nil {
		return export.Document{}, err
	}
	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return export.Document{}, err
	}
	return export.NewDocument(txs, cats, budgets, goals), nil
}

// handleRestore replaces collections from an uploaded backup document.
// Each collection present in the upload is wiped and refilled in turn;
// the sequence is NOT atomic, so a mid-restore failure leaves earlier
// collections replaced and later ones untouched. The user sees a single
// generic failure notice in that case.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := s.restoreBackup(r); err != nil {
		s.errlog.Log(r.Context(), "restore failed", err)
		setFlash(w, flashDanger, "Restore failed. Check logs.")
	} else {
		setFlash(w, flashSuccess, "Data restored successfully!")
	}
	http.Redirect(w, r, "/manage_data", http.StatusSeeOther)
}

const maxRestoreBytes = 10 << 20 // 10MB upload cap

func (s *Server) restoreBackup(r *http.Request) error {
	if s.txs == nil || s.cats == nil || s.budgets == nil || s.goals == nil {
		return errStoreUnavailable
	}

	if err := r.ParseMultipartForm(maxRestoreBytes); err != nil {
		return fmt.Errorf("parse upload: %w", err)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return fmt.Errorf("missing upload file: %w", err)
	}
	defer file.Close()

	doc, err := export.DecodeDocument(file)
	if err != nil {
		return err
	}

	ctx := r.Context()
	if doc.Transactions != nil {
		if err := s.txs.ReplaceTransactions(ctx, *doc.Transactions); err != nil {
			return err
		}
	}
	if doc.Categories != nil {
		if err := s.cats.ReplaceCategories(ctx, *doc.Categories); err != nil {
			return err
		}
	}
	if doc.Budgets != nil {
		if err := s.budgets.ReplaceBudgets(ctx, *doc.Budgets); err != nil {
			return err
		}
	}
	if doc.Goals != nil {
		if err := s.goals.ReplaceGoals(ctx, *doc.Goals); err != nil {
			return err
		}
	}
	return nil
}
