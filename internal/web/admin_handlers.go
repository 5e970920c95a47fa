package web

import (
	"net/http"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/bookshelf-web/internal/model"
	"github.com/bookshelf-web/internal/session"
	"github.com/bookshelf-web/internal/stats"
)

type adminPage struct {
	basePage
	Users      []model.User
	TotalBooks int
	Series     []stats.DayCount
}

// Dashboard renders the admin view: totals, the books-per-day series
// and the all-users table. User and book lists are fetched
// concurrently; each failure degrades only its own section.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	token, _ := session.Token(r)
	flash := popFlash(w, r)

	var (
		wg       sync.WaitGroup
		users    []model.User
		usersErr error
		books    []model.Book
		booksErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		users, usersErr = h.api.ListUsers(r.Context(), token)
	}()
	go func() {
		defer wg.Done()
		books, booksErr = h.api.ListBooks(r.Context(), token)
	}()
	wg.Wait()

	if usersErr != nil {
		flash = &Flash{flashError, "Invalid user data from server"}
		users = nil
	}
	if booksErr != nil {
		if flash == nil || flash.Kind != flashError {
			flash = &Flash{flashError, "Failed to fetch books"}
		}
		books = nil
	}

	h.render(w, "admin", adminPage{
		basePage:   basePage{Title: "Admin Dashboard", Claims: claims, Flash: flash},
		Users:      users,
		TotalBooks: len(books),
		Series:     stats.BooksPerDay(books),
	})
}

// DashboardChart serves the line chart document the dashboard embeds.
// The series keeps the first-seen date order of the grouping.
func (h *Handler) DashboardChart(w http.ResponseWriter, r *http.Request) {
	token, _ := session.Token(r)

	books, err := h.api.ListBooks(r.Context(), token)
	if err != nil {
		http.Error(w, "failed to fetch books", http.StatusBadGateway)
		return
	}
	series := stats.BooksPerDay(books)

	dates := make([]string, 0, len(series))
	counts := make([]opts.LineData, 0, len(series))
	for _, point := range series {
		dates = append(dates, point.Date)
		counts = append(counts, opts.LineData{Value: point.Count})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Books Created Per Day"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "300px"}),
	)
	line.SetXAxis(dates).AddSeries("count", counts)

	if err := line.Render(w); err != nil {
		h.log.Errorw("render chart", "error", err)
	}
}
