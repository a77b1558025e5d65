package circulation

import (
	"errors"
	"fmt"
)

var (
	// ErrMemberNotFound is matched by MemberNotFoundError.
	ErrMemberNotFound = errors.New("member not found")

	// ErrBookNotFound is matched by BookNotFoundError.
	ErrBookNotFound = errors.New("book not found")

	// ErrLoanNotFound is matched by LoanNotFoundError.
	ErrLoanNotFound = errors.New("book was not issued to this member")

	// ErrBookAlreadyLoaned is matched by BookAlreadyLoanedError.
	ErrBookAlreadyLoaned = errors.New("book is already loaned")

	// ErrInvalidLoanPeriod is returned when a loan period is not positive.
	ErrInvalidLoanPeriod = errors.New("loan period must be positive")

	// ErrNilClock is returned when a nil clock is supplied.
	ErrNilClock = errors.New("clock must not be nil")
)

// MemberNotFoundError reports that no member with MemberID is registered.
type MemberNotFoundError struct {
	MemberID int
}

func (e MemberNotFoundError) Error() string {
	return fmt.Sprintf("%s: member id %d", ErrMemberNotFound, e.MemberID)
}

// Is makes errors.Is(err, ErrMemberNotFound) work.
func (e MemberNotFoundError) Is(target error) bool {
	return target == ErrMemberNotFound
}

// BookNotFoundError reports that the catalog has no book with BookID.
type BookNotFoundError struct {
	BookID int
}

func (e BookNotFoundError) Error() string {
	return fmt.Sprintf("%s: book id %d", ErrBookNotFound, e.BookID)
}

// Is makes errors.Is(err, ErrBookNotFound) work.
func (e BookNotFoundError) Is(target error) bool {
	return target == ErrBookNotFound
}

// LoanNotFoundError reports that the book is not on loan to the member,
// regardless of whether it is on loan to someone else.
type LoanNotFoundError struct {
	MemberID int
	BookID   int
}

func (e LoanNotFoundError) Error() string {
	return fmt.Sprintf("%s: member id %d, book id %d", ErrLoanNotFound, e.MemberID, e.BookID)
}

// Is makes errors.Is(err, ErrLoanNotFound) work.
func (e LoanNotFoundError) Is(target error) bool {
	return target == ErrLoanNotFound
}

// BookAlreadyLoanedError reports that the book is currently on loan to HolderID.
type BookAlreadyLoanedError struct {
	BookID   int
	HolderID int
}

func (e BookAlreadyLoanedError) Error() string {
	return fmt.Sprintf("%s: book id %d is held by member id %d", ErrBookAlreadyLoaned, e.BookID, e.HolderID)
}

// Is makes errors.Is(err, ErrBookAlreadyLoaned) work.
func (e BookAlreadyLoanedError) Is(target error) bool {
	return target == ErrBookAlreadyLoaned
}

// errorType classifies an error for metric labels.
func errorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrMemberNotFound):
		return "member_not_found"
	case errors.Is(err, ErrBookNotFound):
		return "book_not_found"
	case errors.Is(err, ErrLoanNotFound):
		return "loan_not_found"
	case errors.Is(err, ErrBookAlreadyLoaned):
		return "book_already_loaned"
	default:
		return "other"
	}
}
