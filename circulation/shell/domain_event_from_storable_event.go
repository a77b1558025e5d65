package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/eventjournal"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFromStorableEvents converts multiple StorableEvents to DomainEvents.
func DomainEventsFromStorableEvents(storableEvents eventjournal.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFromStorableEvent(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFromStorableEvent converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFromStorableEvent(storableEvent eventjournal.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.MemberRegisteredEventType:
		return unmarshalPayload[core.MemberRegistered](storableEvent.PayloadJSON)

	case core.BookIssuedEventType:
		return unmarshalPayload[core.BookIssued](storableEvent.PayloadJSON)

	case core.BookReturnedEventType:
		return unmarshalPayload[core.BookReturned](storableEvent.PayloadJSON)

	case core.IssuingBookFailedEventType:
		return unmarshalPayload[core.IssuingBookFailed](storableEvent.PayloadJSON)

	case core.ReturningBookFailedEventType:
		return unmarshalPayload[core.ReturningBookFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
