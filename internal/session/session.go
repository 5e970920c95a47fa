// Package session reads the bearer credential the UI stores client-side
// and derives identity and role claims from it.
//
// The token payload is decoded without any signature or expiry check.
// That is deliberate: claims gate what the UI shows, never what the API
// allows, and the API rejects bad tokens on every request. An
// undecodable token is treated like a missing session for gating
// purposes, but the stored credential is not cleared automatically.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookshelf-web/internal/model"
)

// CookieName is the single key of persisted client state.
const CookieName = "token"

var ErrNoSession = errors.New("no session")

// Decode extracts claims from the payload segment of a bearer token.
// Malformed tokens and payloads without a usable identity are errors.
func Decode(token string) (*model.SessionClaims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}

	userID, ok := claimInt64(mc, "userId")
	if !ok {
		return nil, errors.New("token payload has no user identity")
	}

	claims := &model.SessionClaims{UserID: userID}
	if name, ok := mc["name"].(string); ok {
		claims.Name = name
	}
	if role, ok := mc["role"].(string); ok {
		claims.Role = model.UserRole(role)
	}
	return claims, nil
}

// Token returns the stored credential, if any.
func Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// FromRequest reads and decodes the stored credential in one step.
func FromRequest(r *http.Request) (*model.SessionClaims, error) {
	token, ok := Token(r)
	if !ok {
		return nil, ErrNoSession
	}
	return Decode(token)
}

// Write stores the credential. The cookie is the server-rendered
// counterpart of the original client-local storage key.
func Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the credential at logout.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// claimInt64 reads a numeric claim, tolerating the value shapes a JSON
// decode can produce for it.
func claimInt64(mc jwt.MapClaims, key string) (int64, bool) {
	switch v := mc[key].(type) {
	case float64:
		if v == 0 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil || n == 0 {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
