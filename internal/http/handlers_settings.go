package http

import (
	"net/http"

	"fintrack/internal/settings"
)

type settingsView struct {
	baseView
}

// handleSettings renders the display settings (GET) or overwrites the
// settings file wholesale (POST). The POST applies no validation beyond
// field presence: the consumer defines what a theme means.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.render(w, r, "settings.html", settingsView{baseView: s.baseView(w, r)})
		return
	}

	cfg := settings.Settings{
		Theme:          r.PostFormValue("theme"),
		CurrencySymbol: r.PostFormValue("currency"),
	}
	if s.settings == nil {
		s.errlog.Log(r.Context(), "settings save failed", errStoreUnavailable)
		setFlash(w, flashDanger, "Error saving settings")
	} else if err := s.settings.Save(cfg); err != nil {
		s.errlog.Log(r.Context(), "settings save failed", err)
		setFlash(w, flashDanger, "Error saving settings")
	} else {
		setFlash(w, flashSuccess, "Settings saved!")
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
