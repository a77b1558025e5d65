package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/eventjournal"
)

type unrelatedEvent struct{}

func (unrelatedEvent) IsEventType() string      { return "CatalogReloaded" }
func (unrelatedEvent) HasOccurredAt() time.Time { return occurredAt }
func (unrelatedEvent) IsErrorEvent() bool       { return false }

func Test_Recorder_History_ReturnsOnlyTheMembersEventsInOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	recorder := shell.NewRecorder(eventjournal.NewMemoryJournal(), uuid.New())
	require.NoError(t, recorder.Record(ctx, core.BuildMemberRegistered(100, "Alice", occurredAt)))
	require.NoError(t, recorder.Record(ctx, core.BuildMemberRegistered(200, "Bob", occurredAt)))
	require.NoError(t, recorder.Record(ctx, core.BuildBookIssued(100, 1, occurredAt.Add(72*time.Hour), occurredAt)))
	require.NoError(t, recorder.Record(ctx, core.BuildBookReturned(100, 1, occurredAt)))

	// act
	history, err := recorder.History(ctx, 100)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.DomainEvents{
		core.BuildMemberRegistered(100, "Alice", occurredAt),
		core.BuildBookIssued(100, 1, occurredAt.Add(72*time.Hour), occurredAt),
		core.BuildBookReturned(100, 1, occurredAt),
	}, history)
}

func Test_Recorder_History_UnknownMemberIsEmpty(t *testing.T) {
	recorder := shell.NewRecorder(eventjournal.NewMemoryJournal(), uuid.New())

	history, err := recorder.History(context.Background(), 999)

	require.NoError(t, err)
	assert.Empty(t, history)
}

func Test_Recorder_SharesCorrelationID(t *testing.T) {
	// arrange
	ctx := context.Background()
	journal := eventjournal.NewMemoryJournal()
	correlationID := uuid.New()
	recorder := shell.NewRecorder(journal, correlationID)

	// act
	require.NoError(t, recorder.Record(ctx, core.BuildMemberRegistered(100, "Alice", occurredAt)))
	require.NoError(t, recorder.Record(ctx, core.BuildBookIssued(100, 1, occurredAt, occurredAt)))

	// assert
	events, _, err := journal.Query(ctx, eventjournal.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)
	require.Len(t, events, 2)

	first, err := shell.EventMetadataFrom(events[0])
	require.NoError(t, err)
	second, err := shell.EventMetadataFrom(events[1])
	require.NoError(t, err)

	assert.Equal(t, correlationID.String(), first.CorrelationID)
	assert.Equal(t, correlationID.String(), second.CorrelationID)
	assert.NotEqual(t, first.EventID, second.EventID)
}

func Test_Recorder_RejectsEventsWithoutMember(t *testing.T) {
	recorder := shell.NewRecorder(eventjournal.NewMemoryJournal(), uuid.New())

	err := recorder.Record(context.Background(), unrelatedEvent{})

	assert.ErrorIs(t, err, shell.ErrUnsupportedDomainEvent)
}

func Test_Recorder_WiredIntoStore_JournalsCirculation(t *testing.T) {
	// arrange
	ctx := context.Background()
	recorder := shell.NewRecorder(eventjournal.NewMemoryJournal(), uuid.New())
	store, err := circulation.NewStore(
		[]circulation.Book{{ID: 1, Name: "Dune"}},
		circulation.WithClock(func() time.Time { return occurredAt }),
		circulation.WithEventRecorder(recorder),
	)
	require.NoError(t, err)

	// act
	store.AddMember(ctx, 100, "Alice")
	_, err = store.Issue(ctx, 100, 1)
	require.NoError(t, err)
	_, err = store.Issue(ctx, 100, 2)
	require.Error(t, err)

	// assert
	history, err := recorder.History(ctx, 100)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, core.MemberRegisteredEventType, history[0].IsEventType())
	assert.Equal(t, core.BookIssuedEventType, history[1].IsEventType())
	assert.Equal(t, core.IssuingBookFailedEventType, history[2].IsEventType())
	assert.True(t, history[2].IsErrorEvent())
}
