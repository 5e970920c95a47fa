// Package bookapi is the client for the book-tracking REST API this
// frontend consumes. All state lives behind that API; the client only
// shuttles requests and surfaces failures.
package bookapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/bookshelf-web/internal/config"
	"github.com/bookshelf-web/internal/model"
)

// StatusError is a non-2xx API response, carrying the server's message
// when one was decodable.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api responded with status %d", e.Code)
}

// Client talks to the book API over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the configured API base URL.
func NewClient(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// do issues one request. A non-empty token is sent as a bearer
// credential; a non-nil body is sent as JSON. Non-2xx responses come
// back as *StatusError.
func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, data)
	}
	return data, nil
}

func statusError(code int, body []byte) *StatusError {
	e := &StatusError{Code: code}
	var msg struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &msg); err == nil {
		if msg.Message != "" {
			e.Message = msg.Message
		} else if msg.Error != "" {
			e.Message = msg.Error
		}
	}
	return e
}

// Register creates an account and returns the issued token.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/register", "", req)
	if err != nil {
		return "", err
	}
	return decodeToken(data)
}

// Login authenticates and returns the issued token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/login", "", req)
	if err != nil {
		return "", err
	}
	return decodeToken(data)
}

func decodeToken(data []byte) (string, error) {
	var resp model.AuthResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("auth response has no token")
	}
	return resp.Token, nil
}

// ListBooks fetches the books visible to the session. The endpoint has
// shipped both a bare array and a {"books": [...]} wrapper, so both
// shapes are accepted.
func (c *Client) ListBooks(ctx context.Context, token string) ([]model.Book, error) {
	data, err := c.do(ctx, http.MethodGet, "/books", token, nil)
	if err != nil {
		return nil, err
	}

	var books []model.Book
	if isJSONArray(data) {
		if err := json.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("decode book list: %w", err)
		}
		return books, nil
	}
	var wrapped struct {
		Books []model.Book `json:"books"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode book list: %w", err)
	}
	return wrapped.Books, nil
}

// CreateBook adds a book owned by the session's user.
func (c *Client) CreateBook(ctx context.Context, token string, draft model.BookDraft) error {
	_, err := c.do(ctx, http.MethodPost, "/books", token, draft)
	return err
}

// UpdateBook replaces the title, author and review of a book.
func (c *Client) UpdateBook(ctx context.Context, token string, id int64, draft model.BookDraft) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/books/%d", id), token, draft)
	return err
}

// DeleteBook removes a book.
func (c *Client) DeleteBook(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), token, nil)
	return err
}

// ListUsers fetches all users (admin only; 403 surfaces as a
// StatusError). Accepts bare-array and {"users": [...]} shapes.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/users", token, nil)
	if err != nil {
		return nil, err
	}

	var users []model.User
	if isJSONArray(data) {
		if err := json.Unmarshal(data, &users); err != nil {
			return nil, fmt.Errorf("decode user list: %w", err)
		}
		return users, nil
	}
	var wrapped struct {
		Users []model.User `json:"users"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil || wrapped.Users == nil {
		return nil, fmt.Errorf("unexpected user list shape")
	}
	return wrapped.Users, nil
}

// GetProfile fetches the session user's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (*model.Profile, error) {
	data, err := c.do(ctx, http.MethodGet, "/users/profile", token, nil)
	if err != nil {
		return nil, err
	}
	var p model.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// UploadProfileImage sends an image as the multipart field "file".
func (c *Client) UploadProfileImage(ctx context.Context, token, filename string, file io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/upload-profile-image", &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return statusError(resp.StatusCode, data)
	}
	return nil
}

func isJSONArray(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
