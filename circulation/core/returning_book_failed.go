package core

import (
	"time"
)

// ReturningBookFailedEventType is the event type identifier.
const ReturningBookFailedEventType = "ReturningBookFailed"

// ReturningBookFailed represents when returning a book is rejected by a business rule.
type ReturningBookFailed struct {
	EventType   EventTypeString
	MemberID    MemberIDInt
	BookID      BookIDInt
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildReturningBookFailed creates a new ReturningBookFailed event.
func BuildReturningBookFailed(memberID int, bookID int, failureInfo string, occurredAt time.Time) ReturningBookFailed {
	return ReturningBookFailed{
		EventType:   ReturningBookFailedEventType,
		MemberID:    memberID,
		BookID:      bookID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReturningBookFailed) IsEventType() string {
	return ReturningBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReturningBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e ReturningBookFailed) IsErrorEvent() bool {
	return true
}
