// Package stats derives the small aggregates the profile and admin
// pages visualize. Everything is recomputed from the full book list on
// each page load; nothing here is persisted.
package stats

import (
	"github.com/bookshelf-web/internal/model"
)

// Weekdays lists the histogram bucket keys in render order, Sunday
// first to match time.Weekday numbering.
var Weekdays = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// WeeklyProgress tallies book creations per calendar weekday. Every
// bucket is present in the result, and each book lands in exactly one.
func WeeklyProgress(books []model.Book) map[string]int {
	progress := make(map[string]int, len(Weekdays))
	for _, day := range Weekdays {
		progress[day] = 0
	}
	for _, b := range books {
		progress[Weekdays[int(b.CreatedAt.Weekday())]]++
	}
	return progress
}

// dateLayout renders creation dates the way the dashboard groups them:
// short en-US dates compared by string equality.
const dateLayout = "1/2/2006"

// DayCount is one point of the books-created-per-day series.
type DayCount struct {
	Date  string
	Count int
}

// BooksPerDay groups books by formatted creation date. The series keeps
// first-seen order rather than chronological order, preserving the
// dashboard's established output.
func BooksPerDay(books []model.Book) []DayCount {
	index := make(map[string]int, len(books))
	series := make([]DayCount, 0, len(books))
	for _, b := range books {
		date := b.CreatedAt.Format(dateLayout)
		if i, ok := index[date]; ok {
			series[i].Count++
			continue
		}
		index[date] = len(series)
		series = append(series, DayCount{Date: date, Count: 1})
	}
	return series
}
