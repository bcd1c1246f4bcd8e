package web

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux. Pages are
// served at / and /app/*, static assets from the embedded filesystem at
// /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Authentication.
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /register", h.RegisterPage)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /logout", h.Logout)

	// Pages.
	mux.HandleFunc("GET /{$}", h.requireAuth(h.Home))
	mux.HandleFunc("GET /app/{tab}", h.requireAuth(h.Tab))
	mux.HandleFunc("POST /app/refresh", h.requireAuth(h.Refresh))

	// Account.
	mux.HandleFunc("POST /app/password", h.requireAuth(h.ChangePassword))

	// Entity creation modals.
	mux.HandleFunc("POST /app/consultants", h.requireAuth(h.AddConsultant))
	mux.HandleFunc("POST /app/clients", h.requireAuth(h.AddClient))
	mux.HandleFunc("POST /app/contracts", h.requireAuth(h.AddContract))

	// Company settings.
	mux.HandleFunc("POST /app/settings", h.requireAuth(h.UpdateSettings))
	mux.HandleFunc("POST /app/deadline", h.requireAuth(h.UpdateDeadline))

	// Invoices.
	mux.HandleFunc("POST /app/invoices/generate/{contractID}", h.requireAuth(h.GenerateInvoice))
	mux.HandleFunc("POST /app/invoices/{id}/number", h.requireAuth(h.UpdateInvoiceNumber))
	mux.HandleFunc("GET /app/invoices/{id}/pdf", h.requireAuth(h.ViewInvoicePDF))
	mux.HandleFunc("POST /app/invoices/{id}/email", h.requireAuth(h.SendInvoiceEmail))
	mux.HandleFunc("GET /app/invoices/{id}/timesheet", h.requireAuth(h.ViewInvoiceTimesheet))

	// Timesheets.
	mux.HandleFunc("POST /app/timesheets/{id}/days", h.requireAuth(h.UpdateTimesheetDays))
	mux.HandleFunc("POST /app/timesheets/{id}/match", h.requireAuth(h.MatchTimesheet))
	mux.HandleFunc("POST /app/timesheets/{id}/generate-invoice", h.requireAuth(h.GenerateTimesheetInvoice))

	// User administration.
	mux.HandleFunc("POST /app/operators", h.requireAuth(h.CreateOperator))
	mux.HandleFunc("POST /app/users/{id}/toggle", h.requireAuth(h.ToggleUser))
	mux.HandleFunc("POST /app/users/{id}/delete", h.requireAuth(h.DeleteUser))
}

// NewServer wraps the mux with the shared middleware stack.
func NewServer(mux *http.ServeMux, logger *slog.Logger) http.Handler {
	return recoveryMiddleware(logger, loggingMiddleware(logger, mux))
}
