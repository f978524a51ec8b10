package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/errlog"
	"fintrack/internal/settings"
	"fintrack/internal/store"
	appweb "fintrack/web"
)

// Stores bundles the persistence ports handed to the server. Any field
// may be nil when the database never came up; handlers degrade instead
// of failing.
type Stores struct {
	Transactions store.TransactionStore
	Categories   store.CategoryStore
	Budgets      store.BudgetStore
	Goals        store.GoalStore
	Dashboard    store.DashboardReader
}

type Server struct {
	http.Server
	templates *template.Template

	txs     store.TransactionStore
	cats    store.CategoryStore
	budgets store.BudgetStore
	goals   store.GoalStore
	dash    store.DashboardReader

	settings *settings.Store
	errlog   *errlog.Logger
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, stores Stores, cfg *settings.Store, el *errlog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		txs:      stores.Transactions,
		cats:     stores.Categories,
		budgets:  stores.Budgets,
		goals:    stores.Goals,
		dash:     stores.Dashboard,
		settings: cfg,
		errlog:   el,
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/{$}", s.withRequestContext(s.handleDashboard))
	mux.HandleFunc("/transactions", s.withRequestContext(s.handleTransactions))
	mux.HandleFunc("/delete_transaction/{id}", s.withRequestContext(s.handleDeleteTransaction))
	mux.HandleFunc("/manage_data", s.withRequestContext(s.handleManageData))
	mux.HandleFunc("/settings", s.withRequestContext(s.handleSettings))
	mux.HandleFunc("/export/csv", s.withRequestContext(s.handleExportCSV))
	mux.HandleFunc("/export/pdf", s.withRequestContext(s.handleExportPDF))
	mux.HandleFunc("/backup", s.withRequestContext(s.handleBackup))
	mux.HandleFunc("/restore", s.withRequestContext(s.handleRestore))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// withRequestContext adds security headers, a request id, and request
// logging to responses.
func (s *Server) withRequestContext(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// render executes a template, falling back to a bare placeholder when
// templates failed to parse. HTML routes never surface a raw error page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "template", name)
		_, _ = w.Write([]byte(`<p class="placeholder">page unavailable</p>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
	}
}
