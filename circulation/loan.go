package circulation

import (
	"time"
)

const day = 24 * time.Hour

// DefaultLoanPeriod is the time a member may keep a book before it is overdue.
const DefaultLoanPeriod = 3 * day

// Loan is an active borrowing of one book by one member.
type Loan struct {
	MemberID int
	BookID   int
	IssuedAt time.Time
	DueDate  time.Time
}

// OverdueDays returns the number of whole days now lies after dueDate, or 0 if it does not.
func OverdueDays(dueDate time.Time, now time.Time) int {
	overdue := now.Sub(dueDate)
	if overdue <= 0 {
		return 0
	}

	return int(overdue / day)
}
