// Package eventjournal keeps an append-only, in-memory journal of circulation events.
//
// Events are stored as StorableEvent DTOs built on scalars and JSON, so the journal knows nothing about
// the domain event types of its clients. Reads and conditional appends are scoped by a Filter:
//
//	filter := eventjournal.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf("BookIssued", "BookReturned").
//		AndAnyPredicateOf(eventjournal.P("MemberID", "100")).
//		Finalize()
//
//	events, maxSeq, err := journal.Query(ctx, filter)
//	// decide ...
//	err = journal.Append(ctx, filter, maxSeq, newEvent)
//
// Append fails with ErrConcurrencyConflict when another event matching the same filter
// was appended after the Query. The journal lives for the lifetime of the process.
package eventjournal
