package eventjournal

import (
	"context"
	"sync"
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
}

// Option defines a functional option for configuring a MemoryJournal.
type Option func(*MemoryJournal)

// WithLogger sets the logger for journal operations.
func WithLogger(logger Logger) Option {
	return func(j *MemoryJournal) {
		j.logger = logger
	}
}

type sequencedEvent struct {
	sequenceNumber MaxSequenceNumberUint
	event          StorableEvent
}

// MemoryJournal is an append-only event journal held in memory. It is safe for concurrent use.
type MemoryJournal struct {
	mu     sync.RWMutex
	events []sequencedEvent
	logger Logger
}

// NewMemoryJournal creates an empty MemoryJournal.
func NewMemoryJournal(options ...Option) *MemoryJournal {
	j := &MemoryJournal{}

	for _, option := range options {
		option(j)
	}

	return j
}

// Query returns the events matching the filter in append order, plus the highest sequence number among them.
// The sequence number is 0 when no event matches.
func (j *MemoryJournal) Query(ctx context.Context, filter Filter) (StorableEvents, MaxSequenceNumberUint, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	events := make(StorableEvents, 0)
	var maxSequenceNumber MaxSequenceNumberUint

	for _, e := range j.events {
		if filter.Matches(e.event) {
			events = append(events, e.event)
			maxSequenceNumber = e.sequenceNumber
		}
	}

	j.logDebug("eventjournal: query executed", "event_count", len(events), "max_sequence_number", maxSequenceNumber)

	return events, maxSequenceNumber, nil
}

// Append stores the events if the filtered stream has not advanced beyond expectedMaxSequenceNumber.
// Otherwise, it returns ErrConcurrencyConflict and appends nothing.
func (j *MemoryJournal) Append(
	ctx context.Context,
	filter Filter,
	expectedMaxSequenceNumber MaxSequenceNumberUint,
	event StorableEvent,
	additionalEvents ...StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	var currentMaxSequenceNumber MaxSequenceNumberUint
	for _, e := range j.events {
		if filter.Matches(e.event) {
			currentMaxSequenceNumber = e.sequenceNumber
		}
	}

	if currentMaxSequenceNumber != expectedMaxSequenceNumber {
		j.logDebug("eventjournal: concurrency conflict",
			"expected_sequence", expectedMaxSequenceNumber,
			"current_sequence", currentMaxSequenceNumber,
		)

		return ErrConcurrencyConflict
	}

	next := MaxSequenceNumberUint(len(j.events))
	for _, e := range append([]StorableEvent{event}, additionalEvents...) {
		next++
		j.events = append(j.events, sequencedEvent{sequenceNumber: next, event: e})
	}

	j.logDebug("eventjournal: events appended", "event_count", 1+len(additionalEvents))

	return nil
}

// Len returns the number of events in the journal.
func (j *MemoryJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.events)
}

func (j *MemoryJournal) logDebug(msg string, args ...any) {
	if j.logger != nil {
		j.logger.Debug(msg, args...)
	}
}
