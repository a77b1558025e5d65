package core

import (
	"time"
)

// IssuingBookFailedEventType is the event type identifier.
const IssuingBookFailedEventType = "IssuingBookFailed"

// IssuingBookFailed represents when issuing a book is rejected by a business rule.
type IssuingBookFailed struct {
	EventType   EventTypeString
	MemberID    MemberIDInt
	BookID      BookIDInt
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildIssuingBookFailed creates a new IssuingBookFailed event.
func BuildIssuingBookFailed(memberID int, bookID int, failureInfo string, occurredAt time.Time) IssuingBookFailed {
	return IssuingBookFailed{
		EventType:   IssuingBookFailedEventType,
		MemberID:    memberID,
		BookID:      bookID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e IssuingBookFailed) IsEventType() string {
	return IssuingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e IssuingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e IssuingBookFailed) IsErrorEvent() bool {
	return true
}
