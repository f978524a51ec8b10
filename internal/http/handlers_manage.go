package http

import (
	"fmt"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

type manageView struct {
	baseView
}

// handleManageData renders the management forms (GET, no data fetch)
// or performs one of three writes discriminated by form_type (POST).
func (s *Server) handleManageData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.render(w, r, "manage_data.html", manageView{baseView: s.baseView(w, r)})
		return
	}

	formType := strings.TrimSpace(r.PostFormValue("form_type"))
	if err := s.saveManagedData(r, formType); err != nil {
		s.errlog.Log(r.Context(), "manage data save failed", err)
		setFlash(w, flashDanger, "Error saving data")
	} else {
		setFlash(w, flashSuccess, capitalize(formType)+" saved!")
	}
	http.Redirect(w, r, "/manage_data", http.StatusSeeOther)
}

func (s *Server) saveManagedData(r *http.Request, formType string) error {
	ctx := r.Context()
	switch formType {
	case "category":
		if s.cats == nil {
			return errStoreUnavailable
		}
		c := core.Category{Name: sanitizeInput(r.PostFormValue("name"))}
		if err := c.Validate(); err != nil {
			return err
		}
		_, err := s.cats.InsertCategory(ctx, c)
		return err

	case "budget":
		if s.budgets == nil {
			return errStoreUnavailable
		}
		amount, err := core.ParseAmount(r.PostFormValue("amount"))
		if err != nil {
			return err
		}
		b := core.Budget{Month: strings.TrimSpace(r.PostFormValue("month")), Amount: amount}
		if err := b.Validate(); err != nil {
			return err
		}
		return s.budgets.UpsertBudget(ctx, b)

	case "goal":
		if s.goals == nil {
			return errStoreUnavailable
		}
		target, err := core.ParseAmount(r.PostFormValue("target"))
		if err != nil {
			return err
		}
		current, err := core.ParseAmount(r.PostFormValue("current"))
		if err != nil {
			return err
		}
		g := core.Goal{Name: sanitizeInput(r.PostFormValue("name")), Target: target, Current: current}
		if err := g.Validate(); err != nil {
			return err
		}
		_, err = s.goals.InsertGoal(ctx, g)
		return err
	}

	return fmt.Errorf("unknown form_type %q", formType)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
