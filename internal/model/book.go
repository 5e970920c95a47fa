package model

import "time"

// BookOwner is the user summary the API embeds in every book.
type BookOwner struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	Role  UserRole `json:"role,omitempty"`
}

type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	User      BookOwner `json:"user"`
}

// OwnedBy reports whether the book belongs to the given user identity.
func (b *Book) OwnedBy(userID int64) bool {
	return b.User.ID == userID
}

// BookDraft carries the mutable fields of a book through the add and
// edit flows. Identity, ownership and timestamps are assigned server-side.
type BookDraft struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Review string `json:"review"`
}
