package eventjournal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventjournal"
)

func givenEvent(t *testing.T, eventType string, payload string) eventjournal.StorableEvent {
	t.Helper()

	event, err := eventjournal.BuildStorableEventWithEmptyMetadata(eventType, time.Now(), []byte(payload))
	require.NoError(t, err)

	return event
}

func Test_FilterBuilder_SanitizesInput(t *testing.T) {
	filter := eventjournal.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookReturned", "", "BookIssued", "BookReturned").
		AndAnyPredicateOf(eventjournal.P("MemberID", "100"), eventjournal.P("", "1"), eventjournal.P("MemberID", "100")).
		Finalize()

	require.Len(t, filter.Items(), 1)
	assert.Equal(t, []string{"BookIssued", "BookReturned"}, filter.Items()[0].EventTypes())
	assert.Equal(t, []eventjournal.FilterPredicate{eventjournal.P("MemberID", "100")}, filter.Items()[0].Predicates())
	assert.False(t, filter.Items()[0].AllPredicatesMustMatch())
}

func Test_FilterBuilder_OrMatching_CreatesSeparateItems(t *testing.T) {
	filter := eventjournal.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookIssued").
		OrMatching().
		AnyEventTypeOf("BookReturned").
		AndAllPredicatesOf(eventjournal.P("MemberID", "100"), eventjournal.P("BookID", "1")).
		Finalize()

	require.Len(t, filter.Items(), 2)
	assert.Equal(t, []string{"BookIssued"}, filter.Items()[0].EventTypes())
	assert.Empty(t, filter.Items()[0].Predicates())
	assert.True(t, filter.Items()[1].AllPredicatesMustMatch())
	assert.Equal(t, "BookID", filter.Items()[1].Predicates()[0].Key())
}

func Test_Filter_Matches(t *testing.T) {
	issued := givenEvent(t, "BookIssued", `{"MemberID": 100, "BookID": 1, "MemberName": "Alice"}`)

	tests := []struct {
		name     string
		filter   eventjournal.Filter
		expected bool
	}{
		{
			name:     "any event",
			filter:   eventjournal.BuildEventFilter().MatchingAnyEvent(),
			expected: true,
		},
		{
			name:     "event type",
			filter:   eventjournal.BuildEventFilter().Matching().AnyEventTypeOf("BookReturned", "BookIssued").Finalize(),
			expected: true,
		},
		{
			name:     "other event type",
			filter:   eventjournal.BuildEventFilter().Matching().AnyEventTypeOf("BookReturned").Finalize(),
			expected: false,
		},
		{
			name: "numeric predicate",
			filter: eventjournal.BuildEventFilter().Matching().AnyEventTypeOf("BookIssued").
				AndAnyPredicateOf(eventjournal.P("MemberID", "100")).Finalize(),
			expected: true,
		},
		{
			name: "string predicate",
			filter: eventjournal.BuildEventFilter().Matching().AnyEventTypeOf("BookIssued").
				AndAnyPredicateOf(eventjournal.P("MemberName", "Alice")).Finalize(),
			expected: true,
		},
		{
			name: "missing field",
			filter: eventjournal.BuildEventFilter().Matching().AnyEventTypeOf("BookIssued").
				AndAnyPredicateOf(eventjournal.P("ReaderID", "100")).Finalize(),
			expected: false,
		},
		{
			name: "any predicate with one match",
			filter: eventjournal.BuildEventFilter().Matching().AnyEventTypeOf("BookIssued").
				AndAnyPredicateOf(eventjournal.P("MemberID", "200"), eventjournal.P("BookID", "1")).Finalize(),
			expected: true,
		},
		{
			name: "all predicates with one mismatch",
			filter: eventjournal.BuildEventFilter().Matching().AnyEventTypeOf("BookIssued").
				AndAllPredicatesOf(eventjournal.P("MemberID", "200"), eventjournal.P("BookID", "1")).Finalize(),
			expected: false,
		},
		{
			name: "second item matches",
			filter: eventjournal.BuildEventFilter().Matching().AnyEventTypeOf("BookReturned").
				OrMatching().AnyEventTypeOf("BookIssued").AndAnyPredicateOf(eventjournal.P("BookID", "1")).Finalize(),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(issued))
		})
	}
}
