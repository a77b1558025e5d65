package shell

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/eventjournal"
)

const defaultMaxAttempts = 3

// ErrUnsupportedDomainEvent is returned for events that do not belong to a member stream.
var ErrUnsupportedDomainEvent = errors.New("domain event does not belong to a member")

// Journal is the part of the event journal the Recorder needs. *eventjournal.MemoryJournal satisfies it.
type Journal interface {
	Query(ctx context.Context, filter eventjournal.Filter) (eventjournal.StorableEvents, eventjournal.MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter eventjournal.Filter,
		expectedMaxSequenceNumber eventjournal.MaxSequenceNumberUint,
		event eventjournal.StorableEvent,
		additionalEvents ...eventjournal.StorableEvent,
	) error
}

// Recorder journals domain events per member. It implements circulation.EventRecorder.
type Recorder struct {
	journal       Journal
	correlationID uuid.UUID
	newEventID    func() uuid.UUID
}

// NewRecorder creates a Recorder; all recorded events share the correlationID, typically one per session.
func NewRecorder(journal Journal, correlationID uuid.UUID) *Recorder {
	return &Recorder{
		journal:       journal,
		correlationID: correlationID,
		newEventID:    uuid.New,
	}
}

// Record appends the event to the stream of its member.
// Appends that lose a concurrency race are retried a few times.
func (r *Recorder) Record(ctx context.Context, event core.DomainEvent) error {
	memberID, ok := memberIDOf(event)
	if !ok {
		return ErrUnsupportedDomainEvent
	}

	storableEvent, err := StorableEventFromDomainEvent(event, BuildEventMetadata(r.newEventID(), r.correlationID))
	if err != nil {
		return err
	}

	filter := memberStreamFilter(memberID)

	for attempt := 1; ; attempt++ {
		_, maxSequenceNumber, err := r.journal.Query(ctx, filter)
		if err != nil {
			return err
		}

		err = r.journal.Append(ctx, filter, maxSequenceNumber, storableEvent)
		if err == nil || !errors.Is(err, eventjournal.ErrConcurrencyConflict) || attempt == defaultMaxAttempts {
			return err
		}
	}
}

// History returns all journaled events of the member in the order they were recorded.
func (r *Recorder) History(ctx context.Context, memberID int) (core.DomainEvents, error) {
	storableEvents, _, err := r.journal.Query(ctx, memberStreamFilter(memberID))
	if err != nil {
		return nil, err
	}

	return DomainEventsFromStorableEvents(storableEvents)
}

func memberStreamFilter(memberID int) eventjournal.Filter {
	return eventjournal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.MemberRegisteredEventType,
			core.BookIssuedEventType,
			core.BookReturnedEventType,
			core.IssuingBookFailedEventType,
			core.ReturningBookFailedEventType,
		).
		AndAnyPredicateOf(eventjournal.P("MemberID", strconv.Itoa(memberID))).
		Finalize()
}

func memberIDOf(event core.DomainEvent) (int, bool) {
	switch e := event.(type) {
	case core.MemberRegistered:
		return e.MemberID, true
	case core.BookIssued:
		return e.MemberID, true
	case core.BookReturned:
		return e.MemberID, true
	case core.IssuingBookFailed:
		return e.MemberID, true
	case core.ReturningBookFailed:
		return e.MemberID, true
	default:
		return 0, false
	}
}
