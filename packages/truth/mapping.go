package truth

import (
	"fmt"
	"reflect"
)

func (s *Subject) isMap() bool {
	return s.actual != nil && reflect.ValueOf(s.actual).Kind() == reflect.Map
}

func (s *Subject) items() ([]any, bool) {
	s.t.Helper()
	if !s.isMap() {
		s.invalid("%s is not a map", s.subjectString())
		return nil, false
	}
	return mapItems(reflect.ValueOf(s.actual)), true
}

// lookup finds key among the map items, comparing keys with the same
// equality used everywhere else so that an int key matches an int64.
func lookup(items []any, key any) (any, bool) {
	for _, it := range items {
		p := it.(pair)
		if equal(p.first, key) {
			return p.second, true
		}
	}
	return nil, false
}

func (s *Subject) ContainsKey(key any) {
	s.t.Helper()
	s.resolve()
	items, ok := s.items()
	if !ok {
		return
	}
	if _, found := lookup(items, key); !found {
		s.failComparingValues("contains key", key)
	}
}

func (s *Subject) DoesNotContainKey(key any) {
	s.t.Helper()
	s.resolve()
	items, ok := s.items()
	if !ok {
		return
	}
	if _, found := lookup(items, key); found {
		s.failComparingValues("does not contain key", key)
	}
}

// ContainsItem asserts that the map maps key to value.
func (s *Subject) ContainsItem(key, value any) {
	s.t.Helper()
	s.resolve()
	items, ok := s.items()
	if !ok {
		return
	}
	item := pair{key, value}
	if got, found := lookup(items, key); found {
		if equal(got, value) {
			return
		}
		s.failWithProposition(fmt.Sprintf("contains item <%s>. However, it has a mapping from <%s> to <%s>",
			repr(item), repr(key), repr(got)), "")
		return
	}
	var others []any
	for _, it := range items {
		if p := it.(pair); equal(p.second, value) {
			others = append(others, p.first)
		}
	}
	if len(others) > 0 {
		s.failWithProposition(fmt.Sprintf("contains item <%s>. However, the following keys are mapped to <%s>: %s",
			repr(item), repr(value), repr(others)), "")
		return
	}
	s.failComparingValues("contains item", item)
}

func (s *Subject) DoesNotContainItem(key, value any) {
	s.t.Helper()
	s.resolve()
	items, ok := s.items()
	if !ok {
		return
	}
	if got, found := lookup(items, key); found && equal(got, value) {
		s.failComparingValues("does not contain item", pair{key, value})
	}
}

// ContainsEntry is an alias of ContainsItem.
func (s *Subject) ContainsEntry(key, value any) {
	s.t.Helper()
	s.ContainsItem(key, value)
}

// DoesNotContainEntry is an alias of DoesNotContainItem.
func (s *Subject) DoesNotContainEntry(key, value any) {
	s.t.Helper()
	s.DoesNotContainItem(key, value)
}

func (s *Subject) containsExactlyPairs(kv []any) *Ordered {
	s.t.Helper()
	if len(kv)%2 != 0 {
		s.invalid("There must be an equal number of key/value pairs"+
			" (i.e., the number of key/value parameters (%d) must be even).", len(kv))
		return alreadyInOrder
	}
	expected := make([]any, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		expected = append(expected, pair{kv[i], kv[i+1]})
	}
	items, ok := s.items()
	if !ok {
		return alreadyInOrder
	}
	return s.containsExactly(items, expected, expected, false)
}

// ContainsExactlyItemsIn asserts that the map holds exactly the items of
// expected, which must itself be a map.
func (s *Subject) ContainsExactlyItemsIn(expected any) *Ordered {
	s.t.Helper()
	s.resolve()
	if expected == nil || reflect.ValueOf(expected).Kind() != reflect.Map {
		s.invalid("<%s> is not a map", repr(expected))
		return alreadyInOrder
	}
	items, ok := s.items()
	if !ok {
		return alreadyInOrder
	}
	return s.containsExactly(items, expected, mapItems(reflect.ValueOf(expected)), false)
}

// ContainsExactlyEntriesIn is an alias of ContainsExactlyItemsIn.
func (s *Subject) ContainsExactlyEntriesIn(expected any) *Ordered {
	s.t.Helper()
	return s.ContainsExactlyItemsIn(expected)
}
