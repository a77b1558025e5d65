package eventjournal_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventjournal"
)

func memberFilter(memberID string) eventjournal.Filter {
	return eventjournal.BuildEventFilter().
		Matching().
		AndAnyPredicateOf(eventjournal.P("MemberID", memberID)).
		Finalize()
}

func Test_MemoryJournal_QueryEmpty(t *testing.T) {
	journal := eventjournal.NewMemoryJournal()

	events, maxSeq, err := journal.Query(context.Background(), memberFilter("100"))

	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, eventjournal.MaxSequenceNumberUint(0), maxSeq)
}

func Test_MemoryJournal_AppendThenQuery_ReturnsFilteredEventsInOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	journal := eventjournal.NewMemoryJournal()
	alice := memberFilter("100")
	bob := memberFilter("200")

	// act
	require.NoError(t, journal.Append(ctx, alice, 0,
		givenEvent(t, "MemberRegistered", `{"MemberID": 100}`),
		givenEvent(t, "BookIssued", `{"MemberID": 100, "BookID": 1}`),
	))
	require.NoError(t, journal.Append(ctx, bob, 0, givenEvent(t, "MemberRegistered", `{"MemberID": 200}`)))
	require.NoError(t, journal.Append(ctx, alice, 2, givenEvent(t, "BookReturned", `{"MemberID": 100, "BookID": 1}`)))

	// assert
	events, maxSeq, err := journal.Query(ctx, alice)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "MemberRegistered", events[0].EventType)
	assert.Equal(t, "BookIssued", events[1].EventType)
	assert.Equal(t, "BookReturned", events[2].EventType)
	assert.Equal(t, eventjournal.MaxSequenceNumberUint(4), maxSeq)
	assert.Equal(t, 4, journal.Len())
}

func Test_MemoryJournal_Append_DetectsConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	journal := eventjournal.NewMemoryJournal()
	alice := memberFilter("100")
	_, maxSeq, err := journal.Query(ctx, alice)
	require.NoError(t, err)
	require.NoError(t, journal.Append(ctx, alice, maxSeq, givenEvent(t, "MemberRegistered", `{"MemberID": 100}`)))

	// act
	err = journal.Append(ctx, alice, maxSeq, givenEvent(t, "BookIssued", `{"MemberID": 100, "BookID": 1}`))

	// assert
	assert.ErrorIs(t, err, eventjournal.ErrConcurrencyConflict)
	assert.Equal(t, 1, journal.Len())
}

func Test_MemoryJournal_Append_OtherStreamDoesNotConflict(t *testing.T) {
	ctx := context.Background()
	journal := eventjournal.NewMemoryJournal()
	require.NoError(t, journal.Append(ctx, memberFilter("100"), 0, givenEvent(t, "MemberRegistered", `{"MemberID": 100}`)))

	err := journal.Append(ctx, memberFilter("200"), 0, givenEvent(t, "MemberRegistered", `{"MemberID": 200}`))

	assert.NoError(t, err)
}

func Test_MemoryJournal_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	journal := eventjournal.NewMemoryJournal()

	_, _, queryErr := journal.Query(ctx, memberFilter("100"))
	appendErr := journal.Append(ctx, memberFilter("100"), 0, givenEvent(t, "MemberRegistered", `{"MemberID": 100}`))

	assert.ErrorIs(t, queryErr, context.Canceled)
	assert.ErrorIs(t, appendErr, context.Canceled)
	assert.Equal(t, 0, journal.Len())
}

func Test_MemoryJournal_ConcurrentAppends_OnlyOneWinsPerSequence(t *testing.T) {
	// arrange
	ctx := context.Background()
	journal := eventjournal.NewMemoryJournal()
	alice := memberFilter("100")
	const writers = 8

	var wg sync.WaitGroup
	results := make(chan error, writers)

	// act
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event, err := eventjournal.BuildStorableEventWithEmptyMetadata("BookIssued", time.Now(), []byte(`{"MemberID": 100}`))
			if err != nil {
				results <- err
				return
			}
			results <- journal.Append(ctx, alice, 0, event)
		}()
	}
	wg.Wait()
	close(results)

	// assert
	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, eventjournal.ErrConcurrencyConflict)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, journal.Len())
}
