package core

import (
	"time"
)

// EventTypeString represents the type identifier of an event.
type EventTypeString = string

// MemberIDInt represents a member identifier as assigned by the operator.
type MemberIDInt = int

// BookIDInt represents a book identifier from the catalog.
type BookIDInt = int

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
