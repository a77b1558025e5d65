// Package circulation implements the record store of the library circulation manager.
//
// The Store holds the catalog of books, the registered members and the active
// loans, and enforces the circulation rules:
//   - lookups are linear scans in insertion order, the first match wins
//     (duplicate member ids are accepted, later duplicates are unreachable)
//   - a book can be on loan to at most one member at a time
//   - a loan exists if and only if the book id is in the member's borrowed list
//   - fines are derived from due dates at query time and never stored
//
// Members reference their borrowed books by book id, resolved against the
// catalog at read time.
//
// Every operation returns either a result or a typed error (MemberNotFoundError,
// BookNotFoundError, LoanNotFoundError, BookAlreadyLoanedError) which the
// caller renders. The Store never prints, panics or exits.
//
// The Store is not safe for concurrent use; it is driven by a single session.
package circulation
