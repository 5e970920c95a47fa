package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/bookshelf-web/internal/model"
)

func makeToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(data) + ".sig"
}

func TestDecode(t *testing.T) {
	tok := makeToken(t, map[string]any{"userId": 7, "name": "Ann", "role": "ADMIN"})
	claims, err := Decode(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("user id = %d, want 7", claims.UserID)
	}
	if claims.Name != "Ann" {
		t.Fatalf("name = %q", claims.Name)
	}
	if !claims.IsAdmin() {
		t.Fatalf("expected admin claims")
	}
}

func TestDecodeUserRole(t *testing.T) {
	tok := makeToken(t, map[string]any{"userId": 3, "role": "USER"})
	claims, err := Decode(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.IsAdmin() {
		t.Fatalf("USER role must not be admin")
	}
	if claims.Role != model.UserRoleUser {
		t.Fatalf("role = %q", claims.Role)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, tok := range []string{
		"",
		"not-a-token",
		"only.two",
		"a.!!!notbase64!!!.c",
	} {
		if _, err := Decode(tok); err == nil {
			t.Fatalf("decode(%q) should fail", tok)
		}
	}
}

func TestDecodeMissingIdentity(t *testing.T) {
	tok := makeToken(t, map[string]any{"name": "NoID", "role": "USER"})
	if _, err := Decode(tok); err == nil {
		t.Fatalf("payload without userId should fail")
	}
}

func TestFromRequestNoCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/books", nil)
	if _, err := FromRequest(r); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestWriteClearRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, "tok123")

	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	got, ok := Token(r)
	if !ok || got != "tok123" {
		t.Fatalf("token = %q ok=%v", got, ok)
	}

	w2 := httptest.NewRecorder()
	Clear(w2)
	cleared := w2.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge != -1 {
		t.Fatalf("clear should expire the cookie, got %+v", cleared)
	}
}
