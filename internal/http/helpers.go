package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/settings"
)

// errStoreUnavailable stands in for the "database not connected"
// condition; handlers treat it like any other store failure.
var errStoreUnavailable = errors.New("store unavailable")

// baseView carries the display context every page needs: the user's
// settings and the pending flash notification.
type baseView struct {
	Settings settings.Settings
	Flash    *flashMessage
}

func (s *Server) baseView(w http.ResponseWriter, r *http.Request) baseView {
	return baseView{
		Settings: s.viewSettings(),
		Flash:    popFlash(w, r),
	}
}

// viewSettings loads the display settings, never failing.
func (s *Server) viewSettings() settings.Settings {
	if s.settings == nil {
		return settings.Defaults()
	}
	return s.settings.Load()
}

// monthParam extracts the month query parameter, defaulting to the
// current calendar month when absent or malformed.
func monthParam(r *http.Request) string {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" || core.ValidateMonth(v) != nil {
		return core.CurrentMonth()
	}
	return v
}

// formatAmount renders a decimal as a currency string for templates.
func formatAmount(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
