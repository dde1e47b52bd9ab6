package truth

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// Ordered is returned by the ContainsAll and ContainsExactly predicates so
// that the arrangement of the elements can be asserted as well.
//
// Maps iterate in sorted key order, so InOrder on a map subject is
// deterministic.
type Ordered struct {
	s        *Subject
	inOrder  bool
	check    string
	expected any
}

// alreadyInOrder is returned when the elements were found in order, and
// after a failure has been reported so that InOrder stays silent.
var alreadyInOrder = &Ordered{inOrder: true}

// InOrder asserts that the elements appeared in the same order as the
// expected elements.
func (o *Ordered) InOrder() {
	if o == nil || o.inOrder {
		return
	}
	o.s.t.Helper()
	o.s.failComparingValues(o.check, o.expected)
}

func (s *Subject) elements() ([]any, bool) {
	s.t.Helper()
	elems, ok := elementsOf(s.actual)
	if !ok {
		s.invalid("%s is not iterable", s.subjectString())
	}
	return elems, ok
}

// HasSize asserts the number of elements. Strings are measured in runes.
func (s *Subject) HasSize(size int) {
	s.t.Helper()
	s.resolve()
	n, ok := lengthOf(s.actual)
	if !ok {
		s.invalid("%s has no size", s.subjectString())
		return
	}
	if n != size {
		s.failWithBadResults("has a size of", size, "is", strconv.Itoa(n), "")
	}
}

func (s *Subject) IsEmpty() {
	s.t.Helper()
	s.resolve()
	n, ok := lengthOf(s.actual)
	if !ok {
		s.invalid("%s has no size", s.subjectString())
		return
	}
	if n != 0 {
		s.failWithProposition("is empty", "")
	}
}

func (s *Subject) IsNotEmpty() {
	s.t.Helper()
	s.resolve()
	n, ok := lengthOf(s.actual)
	if !ok {
		s.invalid("%s has no size", s.subjectString())
		return
	}
	if n == 0 {
		s.failWithProposition("is not empty", "")
	}
}

// Contains asserts that element is an element of the subject, a key of a
// map subject, or a substring of a string subject.
func (s *Subject) Contains(element any) {
	s.t.Helper()
	s.resolve()
	found, ok := contains(s.actual, element)
	if !ok {
		s.invalid("%s cannot contain <%s>", s.subjectString(), repr(element))
		return
	}
	if !found {
		s.failWithSubject(fmt.Sprintf("should have contained <%s>", repr(element)))
	}
}

func (s *Subject) DoesNotContain(element any) {
	s.t.Helper()
	s.resolve()
	found, ok := contains(s.actual, element)
	if !ok {
		s.invalid("%s cannot contain <%s>", s.subjectString(), repr(element))
		return
	}
	if found {
		s.failWithSubject(fmt.Sprintf("should not have contained <%s>", repr(element)))
	}
}

func (s *Subject) ContainsNoDuplicates() {
	s.t.Helper()
	s.resolve()
	if s.actual != nil && reflect.ValueOf(s.actual).Kind() == reflect.Map {
		return
	}
	elems, ok := s.elements()
	if !ok {
		return
	}
	var seen, duplicates []any
	for _, e := range elems {
		if indexIn(seen, e) >= 0 {
			duplicates = append(duplicates, e)
			continue
		}
		seen = append(seen, e)
	}
	if len(duplicates) > 0 {
		s.failWithSubject(fmt.Sprintf("has the following duplicates: <%s>", repr(duplicates)))
	}
}

func (s *Subject) ContainsAllIn(expected any) *Ordered {
	s.t.Helper()
	s.resolve()
	elems, ok := s.argumentElements(expected)
	if !ok {
		return alreadyInOrder
	}
	return s.containsAll("contains all elements in", expected, elems)
}

func (s *Subject) ContainsAllOf(expected ...any) *Ordered {
	s.t.Helper()
	s.resolve()
	return s.containsAll("contains all of", expected, expected)
}

func (s *Subject) ContainsAnyIn(expected any) {
	s.t.Helper()
	s.resolve()
	elems, ok := s.argumentElements(expected)
	if !ok {
		return
	}
	s.containsAny("contains any element in", expected, elems)
}

func (s *Subject) ContainsAnyOf(expected ...any) {
	s.t.Helper()
	s.resolve()
	s.containsAny("contains any of", expected, expected)
}

func (s *Subject) ContainsNoneIn(excluded any) {
	s.t.Helper()
	s.resolve()
	elems, ok := s.argumentElements(excluded)
	if !ok {
		return
	}
	s.containsNone("contains no elements in", excluded, elems)
}

func (s *Subject) ContainsNoneOf(excluded ...any) {
	s.t.Helper()
	s.resolve()
	s.containsNone("contains none of", excluded, excluded)
}

// ContainsExactly asserts that the subject holds exactly the given
// elements. For a map subject the arguments are alternating keys and
// values.
func (s *Subject) ContainsExactly(expected ...any) *Ordered {
	s.t.Helper()
	s.resolve()
	if s.isMap() {
		return s.containsExactlyPairs(expected)
	}
	actual, ok := s.elements()
	if !ok {
		return alreadyInOrder
	}
	warn := false
	if len(expected) == 1 {
		_, warn = elementsOf(expected[0])
	}
	return s.containsExactly(actual, expected, expected, warn)
}

func (s *Subject) ContainsExactlyElementsIn(expected any) *Ordered {
	s.t.Helper()
	s.resolve()
	elems, ok := s.argumentElements(expected)
	if !ok {
		return alreadyInOrder
	}
	actual, ok := s.elements()
	if !ok {
		return alreadyInOrder
	}
	return s.containsExactly(actual, expected, elems, false)
}

func (s *Subject) IsOrdered() {
	s.t.Helper()
	s.resolve()
	s.pairwise(false, compare)
}

// IsOrderedAccordingTo asserts that each element compares less than or
// equal to the next under comparator.
func (s *Subject) IsOrderedAccordingTo(comparator func(a, b any) int) {
	s.t.Helper()
	s.resolve()
	s.pairwise(false, wrapComparator(comparator))
}

func (s *Subject) IsStrictlyOrdered() {
	s.t.Helper()
	s.resolve()
	s.pairwise(true, compare)
}

func (s *Subject) IsStrictlyOrderedAccordingTo(comparator func(a, b any) int) {
	s.t.Helper()
	s.resolve()
	s.pairwise(true, wrapComparator(comparator))
}

func wrapComparator(comparator func(a, b any) int) func(a, b any) (int, error) {
	return func(a, b any) (int, error) {
		return comparator(a, b), nil
	}
}

func (s *Subject) argumentElements(v any) ([]any, bool) {
	s.t.Helper()
	elems, ok := elementsOf(v)
	if !ok {
		s.invalid("<%s> is not iterable", repr(v))
	}
	return elems, ok
}

func (s *Subject) containsAll(verb string, display any, expected []any) *Ordered {
	s.t.Helper()
	actual, ok := s.elements()
	if !ok {
		return alreadyInOrder
	}
	remaining := append([]any(nil), actual...)
	var skipped []any
	var missing counter
	ordered := true
	for _, e := range expected {
		if i := indexIn(remaining, e); i >= 0 {
			skipped = append(skipped, remaining[:i]...)
			remaining = remaining[i+1:]
			continue
		}
		if j := indexIn(skipped, e); j >= 0 {
			skipped = append(skipped[:j], skipped[j+1:]...)
			ordered = false
			continue
		}
		missing.add(e)
	}
	if len(missing) > 0 {
		s.failWithBadResults(verb, display, "is missing", missing.String(), "")
		return alreadyInOrder
	}
	if ordered {
		return alreadyInOrder
	}
	return &Ordered{s: s, check: "contains all elements in order", expected: display}
}

func (s *Subject) containsAny(verb string, display any, expected []any) {
	s.t.Helper()
	for _, e := range expected {
		found, ok := contains(s.actual, e)
		if !ok {
			s.invalid("%s cannot contain <%s>", s.subjectString(), repr(e))
			return
		}
		if found {
			return
		}
	}
	s.failComparingValues(verb, display)
}

func (s *Subject) containsNone(failVerb string, display any, excluded []any) {
	s.t.Helper()
	var present []any
	for _, e := range excluded {
		found, ok := contains(s.actual, e)
		if !ok {
			s.invalid("%s cannot contain <%s>", s.subjectString(), repr(e))
			return
		}
		if found {
			present = append(present, e)
		}
	}
	if len(present) > 0 {
		s.failWithBadResults(failVerb, display, "contains", repr(present), "")
	}
}

const singleIterableWarning = " Passing a single iterable to ContainsExactly(expected...) is often" +
	" not the correct thing to do. Did you mean to call" +
	" ContainsExactlyElementsIn(iterable) instead?"

// containsExactly walks actual and expected pairwise. As soon as a pair
// differs the order is known to be wrong, and the remaining elements are
// reconciled as multisets.
func (s *Subject) containsExactly(actual []any, display any, expected []any, warn bool) *Ordered {
	s.t.Helper()
	if len(expected) == 0 {
		if len(actual) > 0 {
			s.failWithProposition("is empty", "")
		}
		return alreadyInOrder
	}
	warning := ""
	if warn {
		warning = singleIterableWarning
	}

	var missing, extra counter
	i := 0
	for ; i < len(actual) && i < len(expected); i++ {
		if equal(actual[i], expected[i]) {
			continue
		}
		for _, m := range expected[i:] {
			missing.add(m)
		}
		for _, a := range actual[i:] {
			if !missing.remove(a) {
				extra.add(a)
			}
		}
		switch {
		case len(missing) > 0 && len(extra) > 0:
			s.failWithProposition(fmt.Sprintf(
				"contains exactly <%s>. It is missing <%s> and has unexpected items <%s>",
				repr(display), missing, extra), warning)
			return alreadyInOrder
		case len(missing) > 0:
			s.failWithBadResults("contains exactly", display, "is missing", missing.String(), warning)
			return alreadyInOrder
		case len(extra) > 0:
			s.failWithBadResults("contains exactly", display, "has unexpected items", extra.String(), warning)
			return alreadyInOrder
		}
		return &Ordered{s: s, check: "contains exactly these elements in order", expected: display}
	}

	for _, a := range actual[i:] {
		extra.add(a)
	}
	if len(extra) > 0 {
		s.failWithBadResults("contains exactly", display, "has unexpected items", extra.String(), warning)
		return alreadyInOrder
	}
	for _, m := range expected[i:] {
		missing.add(m)
	}
	if len(missing) > 0 {
		s.failWithBadResults("contains exactly", display, "is missing", missing.String(), warning)
		return alreadyInOrder
	}
	return alreadyInOrder
}

func (s *Subject) pairwise(strict bool, cmpFn func(a, b any) (int, error)) {
	s.t.Helper()
	elems, ok := s.elements()
	if !ok {
		return
	}
	verb := "is ordered"
	if strict {
		verb = "is strictly ordered"
	}
	for i := 1; i < len(elems); i++ {
		prev, cur := elems[i-1], elems[i]
		c, err := cmpFn(prev, cur)
		if err != nil && !errors.Is(err, errUnordered) {
			s.invalid("%v", err)
			return
		}
		if err != nil || c > 0 || (strict && c == 0) {
			s.failComparingValues(verb, pair{prev, cur})
			return
		}
	}
}
