package bookapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bookshelf-web/internal/config"
	"github.com/bookshelf-web/internal/model"
)

func newClient(url string) *Client {
	return NewClient(config.APIConfig{BaseURL: url, RequestTimeout: 5 * time.Second})
}

func TestListBooksBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization header = %q", got)
		}
		io.WriteString(w, `[{"id":1,"title":"Dune","author":"Herbert","user":{"id":9,"name":"Ann"}}]`)
	}))
	defer srv.Close()

	books, err := newClient(srv.URL).ListBooks(context.Background(), "tok")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Dune" || books[0].User.ID != 9 {
		t.Fatalf("unexpected books: %+v", books)
	}
}

func TestListBooksWrappedObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"books":[{"id":2,"title":"Emma","author":"Austen"}]}`)
	}))
	defer srv.Close()

	books, err := newClient(srv.URL).ListBooks(context.Background(), "tok")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(books) != 1 || books[0].ID != 2 {
		t.Fatalf("unexpected books: %+v", books)
	}
}

func TestListUsersBothShapes(t *testing.T) {
	for name, body := range map[string]string{
		"bare":    `[{"id":1,"name":"Ann"}]`,
		"wrapped": `{"users":[{"id":1,"name":"Ann"}]}`,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		}))
		users, err := newClient(srv.URL).ListUsers(context.Background(), "tok")
		srv.Close()
		if err != nil {
			t.Fatalf("%s: list users: %v", name, err)
		}
		if len(users) != 1 || users[0].Name != "Ann" {
			t.Fatalf("%s: unexpected users: %+v", name, users)
		}
	}
}

func TestListUsersUnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"who goes there"}`)
	}))
	defer srv.Close()

	if _, err := newClient(srv.URL).ListUsers(context.Background(), "tok"); err == nil {
		t.Fatalf("non-list payload should fail")
	}
}

func TestCreateBookSendsDraft(t *testing.T) {
	var got model.BookDraft
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/books" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	draft := model.BookDraft{Title: "A", Author: "B", Review: "C"}
	if err := newClient(srv.URL).CreateBook(context.Background(), "tok", draft); err != nil {
		t.Fatalf("create: %v", err)
	}
	if got != draft {
		t.Fatalf("server received %+v, want %+v", got, draft)
	}
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"message":"admin only"}`)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).ListUsers(context.Background(), "tok")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusForbidden || se.Message != "admin only" {
		t.Fatalf("unexpected status error: %+v", se)
	}
}

func TestUpdateAndDeletePaths(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	if err := c.UpdateBook(context.Background(), "tok", 42, model.BookDraft{Title: "t", Author: "a"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.DeleteBook(context.Background(), "tok", 42); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{"PUT /books/42", "DELETE /books/42"}
	for i, w := range want {
		if calls[i] != w {
			t.Fatalf("call %d = %q, want %q", i, calls[i], w)
		}
	}
}

func TestLoginReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `{"token":"abc"}`)
	}))
	defer srv.Close()

	tok, err := newClient(srv.URL).Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok != "abc" {
		t.Fatalf("token = %q", tok)
	}
}

func TestUploadProfileImageMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/upload-profile-image" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("field file missing: %v", err)
			return
		}
		defer file.Close()
		if header.Filename != "me.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "imagebytes" {
			t.Errorf("body = %q", data)
		}
	}))
	defer srv.Close()

	err := newClient(srv.URL).UploadProfileImage(context.Background(), "tok", "me.png", strings.NewReader("imagebytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
}
