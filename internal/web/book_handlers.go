package web

import (
	"net/http"
	"strconv"

	"github.com/bookshelf-web/internal/model"
	"github.com/bookshelf-web/internal/session"
)

type booksPage struct {
	basePage
	Books []model.Book
	Query string
}

// Books renders the collection view: the session's visible books,
// narrowed by the search query when one is present. A failed fetch
// shows the notification and the empty state; the page never stays
// stuck loading.
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	token, _ := session.Token(r)
	flash := popFlash(w, r)

	books, err := h.api.ListBooks(r.Context(), token)
	if err != nil {
		flash = &Flash{flashError, "Failed to fetch books"}
		books = nil
	}

	query := r.URL.Query().Get("q")
	h.render(w, "books", booksPage{
		basePage: basePage{Title: "My Bookshelf", Claims: claims, Flash: flash},
		Books:    FilterBooks(books, query),
		Query:    query,
	})
}

type bookFormPage struct {
	basePage
	Mode   string // "add" or "edit"
	BookID int64
	Draft  model.BookDraft
}

func (h *Handler) NewBookForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "book_form", bookFormPage{
		basePage: basePage{Title: "Add Book", Claims: claimsFrom(r.Context()), Flash: popFlash(w, r)},
		Mode:     "add",
	})
}

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	token, _ := session.Token(r)

	draft := draftFromForm(r)
	if draft.Title == "" || draft.Author == "" {
		// Local validation failure: no request is issued and the
		// submitted values stay on the form.
		h.render(w, "book_form", bookFormPage{
			basePage: basePage{Title: "Add Book", Claims: claims, Flash: &Flash{flashError, "Please fill in title and author"}},
			Mode:     "add",
			Draft:    draft,
		})
		return
	}

	if err := h.api.CreateBook(r.Context(), token, draft); err != nil {
		h.render(w, "book_form", bookFormPage{
			basePage: basePage{Title: "Add Book", Claims: claims, Flash: &Flash{flashError, errMessage(err, "Failed to add book")}},
			Mode:     "add",
			Draft:    draft,
		})
		return
	}

	h.redirectFlash(w, r, "/books", flashSuccess, "Book added!")
}

// EditBookForm renders the form pre-filled with the book's current
// fields. Only the owner reaches it; everyone else is sent back.
func (h *Handler) EditBookForm(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	token, _ := session.Token(r)

	book, ok := h.lookupOwnedBook(w, r, token, claims)
	if !ok {
		return
	}

	h.render(w, "book_form", bookFormPage{
		basePage: basePage{Title: "Edit Book", Claims: claims, Flash: popFlash(w, r)},
		Mode:     "edit",
		BookID:   book.ID,
		Draft: model.BookDraft{
			Title:  book.Title,
			Author: book.Author,
			Review: book.Review,
		},
	})
}

func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	token, _ := session.Token(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.redirectFlash(w, r, "/books", flashError, "Book not found")
		return
	}

	draft := draftFromForm(r)
	if draft.Title == "" || draft.Author == "" {
		h.render(w, "book_form", bookFormPage{
			basePage: basePage{Title: "Edit Book", Claims: claims, Flash: &Flash{flashError, "Please fill in title and author"}},
			Mode:     "edit",
			BookID:   id,
			Draft:    draft,
		})
		return
	}

	if err := h.api.UpdateBook(r.Context(), token, id, draft); err != nil {
		h.render(w, "book_form", bookFormPage{
			basePage: basePage{Title: "Edit Book", Claims: claims, Flash: &Flash{flashError, errMessage(err, "Failed to update")}},
			Mode:     "edit",
			BookID:   id,
			Draft:    draft,
		})
		return
	}

	h.redirectFlash(w, r, "/books", flashSuccess, "Book updated")
}

type confirmDeletePage struct {
	basePage
	Book model.Book
}

// ConfirmDeleteBook is the explicit confirmation step before the
// destructive request fires.
func (h *Handler) ConfirmDeleteBook(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	token, _ := session.Token(r)

	book, ok := h.lookupOwnedBook(w, r, token, claims)
	if !ok {
		return
	}

	h.render(w, "confirm_delete", confirmDeletePage{
		basePage: basePage{Title: "Delete Book", Claims: claims, Flash: popFlash(w, r)},
		Book:     *book,
	})
}

func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	token, _ := session.Token(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.redirectFlash(w, r, "/books", flashError, "Book not found")
		return
	}

	if err := h.api.DeleteBook(r.Context(), token, id); err != nil {
		h.redirectFlash(w, r, "/books", flashError, errMessage(err, "Failed to delete"))
		return
	}

	h.redirectFlash(w, r, "/books", flashSuccess, "Book deleted")
}

func draftFromForm(r *http.Request) model.BookDraft {
	return model.BookDraft{
		Title:  r.PostFormValue("title"),
		Author: r.PostFormValue("author"),
		Review: r.PostFormValue("review"),
	}
}

// lookupOwnedBook resolves the {id} path value against a fresh fetch and
// enforces ownership. On any failure it redirects back to the list and
// reports false.
func (h *Handler) lookupOwnedBook(w http.ResponseWriter, r *http.Request, token string, claims *model.SessionClaims) (*model.Book, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.redirectFlash(w, r, "/books", flashError, "Book not found")
		return nil, false
	}

	books, err := h.api.ListBooks(r.Context(), token)
	if err != nil {
		h.redirectFlash(w, r, "/books", flashError, "Failed to fetch books")
		return nil, false
	}

	for i := range books {
		if books[i].ID == id {
			if !books[i].OwnedBy(claims.UserID) {
				h.redirectFlash(w, r, "/books", flashError, "Access denied")
				return nil, false
			}
			return &books[i], true
		}
	}

	h.redirectFlash(w, r, "/books", flashError, "Book not found")
	return nil, false
}
