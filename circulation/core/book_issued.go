package core

import (
	"time"
)

// BookIssuedEventType is the event type identifier.
const BookIssuedEventType = "BookIssued"

// BookIssued represents when a book is issued to a member.
type BookIssued struct {
	EventType  EventTypeString
	MemberID   MemberIDInt
	BookID     BookIDInt
	DueDate    time.Time
	OccurredAt OccurredAtTS
}

// BuildBookIssued creates a new BookIssued event.
func BuildBookIssued(memberID int, bookID int, dueDate time.Time, occurredAt time.Time) BookIssued {
	return BookIssued{
		EventType:  BookIssuedEventType,
		MemberID:   memberID,
		BookID:     bookID,
		DueDate:    ToOccurredAt(dueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookIssued) IsEventType() string {
	return BookIssuedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookIssued) IsErrorEvent() bool {
	return false
}
