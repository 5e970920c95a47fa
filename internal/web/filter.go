package web

import (
	"strings"

	"github.com/bookshelf-web/internal/model"
)

// FilterBooks returns the books whose title or author contains the
// query, case-insensitively. An empty query keeps the full list. Every
// search path goes through this one function, so the reactive and
// explicit triggers cannot diverge.
func FilterBooks(books []model.Book, query string) []model.Book {
	q := strings.ToLower(query)
	if q == "" {
		return books
	}
	filtered := make([]model.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
