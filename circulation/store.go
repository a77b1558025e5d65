package circulation

import (
	"context"
	"slices"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// Store holds the catalog, the members and the active loans.
type Store struct {
	books            []Book
	members          []Member
	loans            []Loan
	loanPeriod       time.Duration
	clock            func() time.Time
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	recorder         EventRecorder
}

// NewStore creates a Store over a copy of the given catalog, in catalog order.
func NewStore(books []Book, options ...Option) (*Store, error) {
	s := &Store{
		books:      slices.Clone(books),
		loanPeriod: DefaultLoanPeriod,
		clock:      time.Now,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// AddMember registers a new member. Ids are not checked for uniqueness.
func (s *Store) AddMember(ctx context.Context, memberID int, name string) Member {
	start := time.Now()

	member := Member{ID: memberID, Name: name, BorrowedBookIDs: []int{}}
	s.members = append(s.members, member)

	s.succeeded(ctx, OperationAddMember, LogMsgMemberRegistered, start, LogAttrMemberID, memberID)
	s.record(ctx, core.BuildMemberRegistered(memberID, name, s.clock()))

	return member.clone()
}

// Issue lends the book to the member with a due date one loan period from now.
//
// The member is looked up first, then the book. A book that is on loan to
// any member, including this one, is rejected with BookAlreadyLoanedError.
func (s *Store) Issue(ctx context.Context, memberID int, bookID int) (Loan, error) {
	start := time.Now()

	memberIdx, found := s.findMember(memberID)
	if !found {
		return Loan{}, s.rejectIssue(ctx, start, memberID, bookID, MemberNotFoundError{MemberID: memberID})
	}

	if _, found = s.findBook(bookID); !found {
		return Loan{}, s.rejectIssue(ctx, start, memberID, bookID, BookNotFoundError{BookID: bookID})
	}

	if holderID, lent := s.holderOf(bookID); lent {
		return Loan{}, s.rejectIssue(ctx, start, memberID, bookID, BookAlreadyLoanedError{BookID: bookID, HolderID: holderID})
	}

	now := s.clock()
	loan := Loan{
		MemberID: memberID,
		BookID:   bookID,
		IssuedAt: now,
		DueDate:  now.Add(s.loanPeriod),
	}

	s.loans = append(s.loans, loan)
	s.members[memberIdx].BorrowedBookIDs = append(s.members[memberIdx].BorrowedBookIDs, bookID)

	s.succeeded(ctx, OperationIssue, LogMsgBookIssued, start,
		LogAttrMemberID, memberID,
		LogAttrBookID, bookID,
		LogAttrDueDate, loan.DueDate,
	)
	s.record(ctx, core.BuildBookIssued(memberID, bookID, loan.DueDate, now))

	return loan, nil
}

// Return ends the member's loan of the book and returns the book.
//
// The member is looked up first, then the book, then the loan matching both ids.
func (s *Store) Return(ctx context.Context, memberID int, bookID int) (Book, error) {
	start := time.Now()

	memberIdx, found := s.findMember(memberID)
	if !found {
		return Book{}, s.rejectReturn(ctx, start, memberID, bookID, MemberNotFoundError{MemberID: memberID})
	}

	bookIdx, found := s.findBook(bookID)
	if !found {
		return Book{}, s.rejectReturn(ctx, start, memberID, bookID, BookNotFoundError{BookID: bookID})
	}

	loanIdx, found := s.findLoan(memberID, bookID)
	if !found {
		return Book{}, s.rejectReturn(ctx, start, memberID, bookID, LoanNotFoundError{MemberID: memberID, BookID: bookID})
	}

	s.loans = slices.Delete(s.loans, loanIdx, loanIdx+1)
	s.members[memberIdx].BorrowedBookIDs = slices.DeleteFunc(
		s.members[memberIdx].BorrowedBookIDs,
		func(id int) bool { return id == bookID },
	)

	s.succeeded(ctx, OperationReturn, LogMsgBookReturned, start, LogAttrMemberID, memberID, LogAttrBookID, bookID)
	s.record(ctx, core.BuildBookReturned(memberID, bookID, s.clock()))

	return s.books[bookIdx], nil
}

// ListBorrowed returns the names of the member's borrowed books in the order they were issued.
// Book ids that do not resolve in the catalog are skipped.
func (s *Store) ListBorrowed(ctx context.Context, memberID int) ([]string, error) {
	start := time.Now()

	memberIdx, found := s.findMember(memberID)
	if !found {
		err := MemberNotFoundError{MemberID: memberID}
		s.rejected(ctx, OperationListBorrowed, start, err, LogAttrMemberID, memberID)

		return nil, err
	}

	borrowed := s.members[memberIdx].BorrowedBookIDs
	names := make([]string, 0, len(borrowed))

	for _, bookID := range borrowed {
		if bookIdx, ok := s.findBook(bookID); ok {
			names = append(names, s.books[bookIdx].Name)
		}
	}

	s.recordOperationMetrics(ctx, OperationListBorrowed, time.Since(start), nil)

	return names, nil
}

// ComputeFine returns the member's fine at now: the sum of whole overdue days over all borrowed books.
// The result is derived from the due dates on every call.
func (s *Store) ComputeFine(ctx context.Context, memberID int, now time.Time) (int, error) {
	start := time.Now()

	memberIdx, found := s.findMember(memberID)
	if !found {
		err := MemberNotFoundError{MemberID: memberID}
		s.rejected(ctx, OperationComputeFine, start, err, LogAttrMemberID, memberID)

		return 0, err
	}

	fine := 0
	for _, bookID := range s.members[memberIdx].BorrowedBookIDs {
		if _, ok := s.findBook(bookID); !ok {
			continue
		}

		if loanIdx, ok := s.findLoan(memberID, bookID); ok {
			fine += OverdueDays(s.loans[loanIdx].DueDate, now)
		}
	}

	s.recordOperationMetrics(ctx, OperationComputeFine, time.Since(start), nil)
	s.recordFineMetric(ctx, fine)
	s.logDebug(ctx, LogMsgFineComputed, LogAttrMemberID, memberID, LogAttrFineDays, fine)

	return fine, nil
}

// ListBookIDs returns the ids of all catalog books in catalog order.
func (s *Store) ListBookIDs() []int {
	ids := make([]int, 0, len(s.books))
	for _, book := range s.books {
		ids = append(ids, book.ID)
	}

	return ids
}

// Catalog returns a copy of all catalog books in catalog order.
func (s *Store) Catalog() []Book {
	return slices.Clone(s.books)
}

// FindMember returns a copy of the first member registered with memberID.
func (s *Store) FindMember(_ context.Context, memberID int) (Member, error) {
	memberIdx, found := s.findMember(memberID)
	if !found {
		return Member{}, MemberNotFoundError{MemberID: memberID}
	}

	return s.members[memberIdx].clone(), nil
}

// LoansOf returns the member's active loans in the order the books were issued.
func (s *Store) LoansOf(_ context.Context, memberID int) ([]Loan, error) {
	memberIdx, found := s.findMember(memberID)
	if !found {
		return nil, MemberNotFoundError{MemberID: memberID}
	}

	loans := make([]Loan, 0, len(s.members[memberIdx].BorrowedBookIDs))
	for _, bookID := range s.members[memberIdx].BorrowedBookIDs {
		if loanIdx, ok := s.findLoan(memberID, bookID); ok {
			loans = append(loans, s.loans[loanIdx])
		}
	}

	return loans, nil
}

func (s *Store) rejectIssue(ctx context.Context, start time.Time, memberID int, bookID int, err error) error {
	s.rejected(ctx, OperationIssue, start, err, LogAttrMemberID, memberID, LogAttrBookID, bookID)
	s.record(ctx, core.BuildIssuingBookFailed(memberID, bookID, err.Error(), s.clock()))

	return err
}

func (s *Store) rejectReturn(ctx context.Context, start time.Time, memberID int, bookID int, err error) error {
	s.rejected(ctx, OperationReturn, start, err, LogAttrMemberID, memberID, LogAttrBookID, bookID)
	s.record(ctx, core.BuildReturningBookFailed(memberID, bookID, err.Error(), s.clock()))

	return err
}

func (s *Store) findMember(memberID int) (int, bool) {
	idx := slices.IndexFunc(s.members, func(m Member) bool { return m.ID == memberID })
	return idx, idx >= 0
}

func (s *Store) findBook(bookID int) (int, bool) {
	idx := slices.IndexFunc(s.books, func(b Book) bool { return b.ID == bookID })
	return idx, idx >= 0
}

func (s *Store) findLoan(memberID int, bookID int) (int, bool) {
	idx := slices.IndexFunc(s.loans, func(l Loan) bool { return l.MemberID == memberID && l.BookID == bookID })
	return idx, idx >= 0
}

func (s *Store) holderOf(bookID int) (int, bool) {
	idx := slices.IndexFunc(s.loans, func(l Loan) bool { return l.BookID == bookID })
	if idx < 0 {
		return 0, false
	}

	return s.loans[idx].MemberID, true
}
