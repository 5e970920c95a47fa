package web

import (
	"net/http"

	"go.uber.org/zap"
)

// NewRouter wires every page route onto a ServeMux.
func NewRouter(h *Handler, log *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()

	// Public pages
	mux.HandleFunc("GET /{$}", h.Landing)
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /register", h.RegisterPage)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("GET /logout", h.Logout)

	// Book collection
	mux.HandleFunc("GET /books", h.requireSession(h.Books))
	mux.HandleFunc("POST /books", h.requireSession(h.CreateBook))
	mux.HandleFunc("GET /books/new", h.requireSession(h.NewBookForm))
	mux.HandleFunc("GET /books/{id}/edit", h.requireSession(h.EditBookForm))
	mux.HandleFunc("POST /books/{id}", h.requireSession(h.UpdateBook))
	mux.HandleFunc("GET /books/{id}/delete", h.requireSession(h.ConfirmDeleteBook))
	mux.HandleFunc("POST /books/{id}/delete", h.requireSession(h.DeleteBook))

	// Profile
	mux.HandleFunc("GET /profile", h.requireSession(h.Profile))
	mux.HandleFunc("POST /profile/image", h.requireSession(h.UploadProfileImage))

	// Admin
	mux.HandleFunc("GET /admin", h.requireAdmin(h.Dashboard))
	mux.HandleFunc("GET /admin/chart", h.requireAdmin(h.DashboardChart))

	// Optimistic image previews, served read-only from the local spool.
	mux.HandleFunc("GET /previews/{name}", h.requireSession(h.ServePreview))

	return LoggingMiddleware(log)(mux)
}
