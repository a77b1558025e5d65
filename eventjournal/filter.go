package eventjournal

import (
	"bytes"
	"cmp"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

/***** Filter *****/

// Filter selects events from the journal. Its items are OR-ed; an empty Filter matches every event.
type Filter struct {
	items []FilterItem
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// Matches reports whether the event is selected by any of the filter's items.
func (f Filter) Matches(event StorableEvent) bool {
	if len(f.items) == 0 {
		return true
	}

	var payload map[string]jsoniter.RawMessage
	decoded := false

	for _, item := range f.items {
		if len(item.eventTypes) > 0 && !slices.Contains(item.eventTypes, event.EventType) {
			continue
		}

		if len(item.predicates) == 0 {
			return true
		}

		if !decoded {
			// a payload that is not a JSON object matches no predicate
			_ = jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload)
			decoded = true
		}

		if item.matchesPredicates(payload) {
			return true
		}
	}

	return false
}

/***** FilterItem *****/

// FilterItem requires any of its event types AND any (or all) of its predicates to match.
type FilterItem struct {
	eventTypes             []string
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []string {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

func (fi FilterItem) matchesPredicates(payload map[string]jsoniter.RawMessage) bool {
	for _, predicate := range fi.predicates {
		matched := predicate.matches(payload)

		if fi.allPredicatesMustMatch && !matched {
			return false
		}

		if !fi.allPredicatesMustMatch && matched {
			return true
		}
	}

	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

// FilterPredicate compares a top-level payload field with a value.
// String fields are compared by their content, all other fields by their JSON text.
type FilterPredicate struct {
	key string
	val string
}

func P(key string, val string) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() string {
	return fp.key
}

func (fp FilterPredicate) Val() string {
	return fp.val
}

func (fp FilterPredicate) matches(payload map[string]jsoniter.RawMessage) bool {
	raw, ok := payload[fp.key]
	if !ok {
		return false
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := jsoniter.ConfigFastest.Unmarshal(raw, &s); err != nil {
			return false
		}

		return s == fp.val
	}

	return string(raw) == fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter. Each item is started with Matching and may combine
// event types with predicates; items are joined with OrMatching.
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() FilterItemBuilder

	// MatchingAnyEvent directly creates an empty Filter.
	MatchingAnyEvent() Filter
}

type FilterItemBuilder interface {
	// AnyEventTypeOf adds event types to the current item; empty and duplicate types are removed.
	AnyEventTypeOf(eventType string, eventTypes ...string) FilterItemBuilder

	// AndAnyPredicateOf adds predicates to the current item, any of which must match.
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilder

	// AndAllPredicatesOf adds predicates to the current item, all of which must match.
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilder

	// OrMatching finalizes the current item and starts a new one.
	OrMatching() FilterItemBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

type filterBuilder struct {
	filter      Filter
	currentItem FilterItem
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() FilterItemBuilder {
	fb.currentItem = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

func (fb filterBuilder) AnyEventTypeOf(eventType string, eventTypes ...string) FilterItemBuilder {
	all := append(slices.Clone(fb.currentItem.eventTypes), eventType)
	all = append(all, eventTypes...)
	all = slices.DeleteFunc(all, func(e string) bool { return e == "" })
	slices.Sort(all)
	fb.currentItem.eventTypes = slices.Clip(slices.Compact(all))

	return fb
}

func (fb filterBuilder) AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilder {
	fb.currentItem.predicates = fb.mergePredicates(predicate, predicates...)

	return fb
}

func (fb filterBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilder {
	fb.currentItem.allPredicatesMustMatch = true
	fb.currentItem.predicates = fb.mergePredicates(predicate, predicates...)

	return fb
}

// mergePredicates drops partial predicates (empty key or val), sorts, and removes duplicates.
func (fb filterBuilder) mergePredicates(predicate FilterPredicate, predicates ...FilterPredicate) []FilterPredicate {
	all := append(slices.Clone(fb.currentItem.predicates), predicate)
	all = append(all, predicates...)
	all = slices.DeleteFunc(all, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(all, func(a, b FilterPredicate) int {
		return cmp.Or(cmp.Compare(a.key, b.key), cmp.Compare(a.val, b.val))
	})

	return slices.Clip(slices.Compact(all))
}

func (fb filterBuilder) OrMatching() FilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentItem)
	fb.currentItem = FilterItem{}

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentItem)

	return fb.filter
}
