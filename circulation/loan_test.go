package circulation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_OverdueDays(t *testing.T) {
	dueDate := time.Date(2026, 10, 22, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{name: "long before due date", now: dueDate.Add(-72 * time.Hour), expected: 0},
		{name: "exactly at due date", now: dueDate, expected: 0},
		{name: "less than a day overdue", now: dueDate.Add(23*time.Hour + 59*time.Minute), expected: 0},
		{name: "exactly one day overdue", now: dueDate.Add(24 * time.Hour), expected: 1},
		{name: "partial days are floored", now: dueDate.Add(2*24*time.Hour + 23*time.Hour), expected: 2},
		{name: "a month overdue", now: dueDate.AddDate(0, 0, 30), expected: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, circulation.OverdueDays(dueDate, tt.now))
		})
	}
}

func Test_Book_AuthorName(t *testing.T) {
	assert.Equal(t, "Ursula Le Guin", circulation.Book{AuthorFirstName: "Ursula", AuthorLastName: "Le Guin"}.AuthorName())
	assert.Equal(t, "Homer", circulation.Book{AuthorFirstName: "Homer"}.AuthorName())
	assert.Equal(t, "Anonymous", circulation.Book{AuthorLastName: "Anonymous"}.AuthorName())
}
