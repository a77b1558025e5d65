package core

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when a member returns a book.
type BookReturned struct {
	EventType  EventTypeString
	MemberID   MemberIDInt
	BookID     BookIDInt
	OccurredAt OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(memberID int, bookID int, occurredAt time.Time) BookReturned {
	return BookReturned{
		EventType:  BookReturnedEventType,
		MemberID:   memberID,
		BookID:     bookID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturned) IsErrorEvent() bool {
	return false
}
