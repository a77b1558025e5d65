package circulation

import (
	"slices"
)

// Member is a registered library member.
// BorrowedBookIDs holds the ids of the currently borrowed books in the order they were issued.
type Member struct {
	ID              int
	Name            string
	BorrowedBookIDs []int
}

func (m Member) clone() Member {
	m.BorrowedBookIDs = slices.Clone(m.BorrowedBookIDs)
	if m.BorrowedBookIDs == nil {
		m.BorrowedBookIDs = []int{}
	}

	return m
}
