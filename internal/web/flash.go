package web

import (
	"net/http"
	"net/url"
	"strings"
)

// Flash is a one-shot notification, the server-rendered counterpart of
// the toast: set on one response, shown on the next page, then gone.
type Flash struct {
	Kind    string
	Message string
}

const (
	flashCookie  = "flash"
	flashError   = "error"
	flashSuccess = "success"
)

func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending notification, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	decoded, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(decoded, "|")
	if !ok {
		return &Flash{Kind: flashError, Message: decoded}
	}
	return &Flash{Kind: kind, Message: message}
}
