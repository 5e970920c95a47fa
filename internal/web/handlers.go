package web

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bookshelf-web/internal/bookapi"
	"github.com/bookshelf-web/internal/model"
	"github.com/bookshelf-web/internal/preview"
	"github.com/bookshelf-web/internal/session"
)

// Handler serves the UI pages. Every page reads session state fresh and
// fetches its own data from the API; nothing is cached across requests.
type Handler struct {
	api        *bookapi.Client
	previews   *preview.Store
	previewTTL time.Duration
	log        *zap.SugaredLogger
}

// NewHandler creates the page handler. previewTTL bounds the lifetime
// of the optimistic image-preview cookie so it never outlives the
// spooled file behind it.
func NewHandler(api *bookapi.Client, previews *preview.Store, previewTTL time.Duration, log *zap.SugaredLogger) *Handler {
	return &Handler{
		api:        api,
		previews:   previews,
		previewTTL: previewTTL,
		log:        log,
	}
}

func (h *Handler) redirectFlash(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	setFlash(w, kind, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// errMessage picks the user-facing text for a failed API call: the
// server's own message when one came back, the fallback otherwise.
func errMessage(err error, fallback string) string {
	var se *bookapi.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

type indexPage struct {
	basePage
}

// Landing renders the welcome page, branching on session presence and
// role. An undecodable credential is shown the logged-out variant.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	claims, err := session.FromRequest(r)
	if err != nil {
		claims = nil
	}
	h.render(w, "index", indexPage{
		basePage: basePage{Title: "Welcome", Claims: claims, Flash: popFlash(w, r)},
	})
}

type authPage struct {
	basePage
	Email string
	Name  string
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login", authPage{
		basePage: basePage{Title: "Login", Flash: popFlash(w, r)},
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req := model.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	token, err := h.api.Login(r.Context(), req)
	if err != nil {
		h.render(w, "login", authPage{
			basePage: basePage{Title: "Login", Flash: &Flash{flashError, errMessage(err, "Login failed")}},
			Email:    req.Email,
		})
		return
	}

	session.Write(w, token)
	h.redirectFlash(w, r, "/books", flashSuccess, "Login successful!")
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register", authPage{
		basePage: basePage{Title: "Register", Flash: popFlash(w, r)},
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req := model.RegisterRequest{
		Email:    r.PostFormValue("email"),
		Name:     r.PostFormValue("name"),
		Password: r.PostFormValue("password"),
		Role:     model.UserRoleUser,
	}

	token, err := h.api.Register(r.Context(), req)
	if err != nil {
		h.render(w, "register", authPage{
			basePage: basePage{Title: "Register", Flash: &Flash{flashError, errMessage(err, "Registration failed")}},
			Email:    req.Email,
			Name:     req.Name,
		})
		return
	}

	session.Write(w, token)
	h.redirectFlash(w, r, "/books", flashSuccess, "Registration successful!")
}

// Logout clears the one persisted client key.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
