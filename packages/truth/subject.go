package truth

import (
	"errors"
	"fmt"
	"reflect"
)

// Subject wraps the value under test. Its predicates dispatch on the
// dynamic kind of the value; calling a predicate that does not apply to
// the value is reported as an invalid assertion.
type Subject struct {
	*base
}

// Named adds a name to the subject as it is displayed in failure
// messages, which helps with values that print unhelpfully:
//
//	truth.AssertThat(t, ok).Named("cache hit").IsTrue()
func (s *Subject) Named(name string) *Subject {
	s.name = name
	return s
}

// Name returns the name given by Named, if any.
func (s *Subject) Name() string {
	return s.name
}

// derive returns a new tracked subject produced by a predicate, such as
// the message of an error.
func (s *Subject) derive(actual any) *Subject {
	return &Subject{base: newBase(s.t, actual, s.fatal, 3)}
}

// detached returns a subject that reports nothing. Predicates that derive
// a subject return it after a failure so that chained calls stay quiet.
func (s *Subject) detached() *Subject {
	b := resolvedBase(s.t, nil, s.fatal)
	b.muted = true
	return &Subject{base: b}
}

// child returns a subject for immediate use inside a predicate.
func (s *Subject) child(actual any) *Subject {
	return &Subject{base: resolvedBase(s.t, actual, s.fatal)}
}

func (s *Subject) IsEqualTo(expected any) {
	s.t.Helper()
	s.resolve()
	if equal(s.actual, expected) {
		return
	}
	suffix := ""
	if d := diff(expected, s.actual); d != "" {
		suffix = "\nDiff (-expected +actual):\n" + d
	}
	s.failWithProposition(fmt.Sprintf("is equal to <%s>", repr(expected)), suffix)
}

func (s *Subject) IsNotEqualTo(unexpected any) {
	s.t.Helper()
	s.resolve()
	if equal(s.actual, unexpected) {
		s.failComparingValues("is not equal to", unexpected)
	}
}

func (s *Subject) IsNil() {
	s.t.Helper()
	s.resolve()
	if !isNil(s.actual) {
		s.failWithProposition("is nil", "")
	}
}

func (s *Subject) IsNotNil() {
	s.t.Helper()
	s.resolve()
	if isNil(s.actual) {
		s.failWithProposition("is not nil", "")
	}
}

// IsIn asserts that the subject is an element of iterable, a key of a
// map, or a substring of a string.
func (s *Subject) IsIn(iterable any) {
	s.t.Helper()
	s.resolve()
	found, ok := contains(iterable, s.actual)
	if !ok {
		s.invalid("<%s> cannot contain %s", repr(iterable), s.subjectString())
		return
	}
	if !found {
		s.failComparingValues("is equal to any of", iterable)
	}
}

func (s *Subject) IsNotIn(iterable any) {
	s.t.Helper()
	s.resolve()
	if i, ok := indexOf(iterable, s.actual); ok {
		if i >= 0 {
			s.failWithProposition(fmt.Sprintf("is not in <%s>. It was found at index %d", repr(iterable), i), "")
		}
		return
	}
	found, ok := contains(iterable, s.actual)
	if !ok {
		s.invalid("<%s> cannot contain %s", repr(iterable), s.subjectString())
		return
	}
	if found {
		s.failWithProposition(fmt.Sprintf("is not in <%s>", repr(iterable)), "")
	}
}

func (s *Subject) IsAnyOf(values ...any) {
	s.t.Helper()
	s.IsIn(values)
}

func (s *Subject) IsNoneOf(values ...any) {
	s.t.Helper()
	s.IsNotIn(values)
}

// IsInstanceOf asserts that the subject's dynamic type is typ, or is
// assignable to it (which includes implementing an interface type).
func (s *Subject) IsInstanceOf(typ reflect.Type) {
	s.t.Helper()
	s.resolve()
	if typ == nil {
		s.invalid("IsInstanceOf requires a type")
		return
	}
	at := reflect.TypeOf(s.actual)
	if at != nil && at.AssignableTo(typ) {
		return
	}
	s.failWithBadResults("is an instance of", typ, "is an instance of", typeName(at), "")
}

func (s *Subject) IsNotInstanceOf(typ reflect.Type) {
	s.t.Helper()
	s.resolve()
	if typ == nil {
		s.invalid("IsNotInstanceOf requires a type")
		return
	}
	if at := reflect.TypeOf(s.actual); at != nil && at.AssignableTo(typ) {
		s.failWithSubject(fmt.Sprintf("expected not to be an instance of %s, but was", typ))
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

// IsSameAs asserts identity: pointers, maps, channels, funcs and slices
// must refer to the same memory; other values must be ==.
func (s *Subject) IsSameAs(other any) {
	s.t.Helper()
	s.resolve()
	if !sameInstance(s.actual, other) {
		s.failComparingValues("is the same instance as", other)
	}
}

func (s *Subject) IsNotSameAs(other any) {
	s.t.Helper()
	s.resolve()
	if sameInstance(s.actual, other) {
		s.failComparingValues("is not the same instance as", other)
	}
}

func (s *Subject) IsTruthy() {
	s.t.Helper()
	s.resolve()
	if !truthy(s.actual) {
		s.failWithProposition("is truthy", "")
	}
}

func (s *Subject) IsFalsy() {
	s.t.Helper()
	s.resolve()
	if truthy(s.actual) {
		s.failWithProposition("is falsy", "")
	}
}

// IsFalsey is an alternate spelling of IsFalsy.
func (s *Subject) IsFalsey() {
	s.t.Helper()
	s.IsFalsy()
}

// IsTrue asserts that the subject is the bool true. Use IsTruthy for
// non-zero, non-empty values.
func (s *Subject) IsTrue() {
	s.t.Helper()
	s.resolve()
	if rv := reflect.ValueOf(s.actual); s.actual != nil && rv.Kind() == reflect.Bool {
		if !rv.Bool() {
			s.failWithSubject("was expected to be true, but was false")
		}
		return
	}
	suffix := ""
	if truthy(s.actual) {
		suffix = " However, it is truthy. Did you mean to call IsTruthy() instead?"
	}
	s.failWithProposition("is true", suffix)
}

// IsFalse asserts that the subject is the bool false. Use IsFalsy for
// zero or empty values.
func (s *Subject) IsFalse() {
	s.t.Helper()
	s.resolve()
	if rv := reflect.ValueOf(s.actual); s.actual != nil && rv.Kind() == reflect.Bool {
		if rv.Bool() {
			s.failWithSubject("was expected to be false, but was true")
		}
		return
	}
	suffix := ""
	if !truthy(s.actual) {
		suffix = " However, it is falsy. Did you mean to call IsFalsy() instead?"
	}
	s.failWithProposition("is false", suffix)
}

// HasField asserts that the subject has a struct field or a method with
// the given name. Pointers are followed.
func (s *Subject) HasField(name string) {
	s.t.Helper()
	s.resolve()
	if !hasField(s.actual, name) {
		s.failComparingValues("has field", name)
	}
}

func (s *Subject) DoesNotHaveField(name string) {
	s.t.Helper()
	s.resolve()
	if hasField(s.actual, name) {
		s.failComparingValues("does not have field", name)
	}
}

func hasField(v any, name string) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.MethodByName(name).IsValid() {
		return true
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false
	}
	_, ok := rv.Type().FieldByName(name)
	return ok
}

func (s *Subject) IsCallable() {
	s.t.Helper()
	s.resolve()
	if !isCallable(s.actual) {
		s.failWithProposition("is callable", "")
	}
}

func (s *Subject) IsNotCallable() {
	s.t.Helper()
	s.resolve()
	if isCallable(s.actual) {
		s.failWithProposition("is not callable", "")
	}
}

func isCallable(v any) bool {
	rv := reflect.ValueOf(v)
	return v != nil && rv.Kind() == reflect.Func && !rv.IsNil()
}

func (s *Subject) IsAtLeast(other any) {
	s.t.Helper()
	s.resolve()
	s.checkOrder("IsAtLeast", "is at least", other, func(c int) bool { return c >= 0 })
}

func (s *Subject) IsAtMost(other any) {
	s.t.Helper()
	s.resolve()
	s.checkOrder("IsAtMost", "is at most", other, func(c int) bool { return c <= 0 })
}

func (s *Subject) IsGreaterThan(other any) {
	s.t.Helper()
	s.resolve()
	s.checkOrder("IsGreaterThan", "is greater than", other, func(c int) bool { return c > 0 })
}

func (s *Subject) IsLessThan(other any) {
	s.t.Helper()
	s.resolve()
	s.checkOrder("IsLessThan", "is less than", other, func(c int) bool { return c < 0 })
}

func (s *Subject) checkOrder(method, verb string, other any, pass func(int) bool) {
	s.t.Helper()
	if other == nil {
		s.invalid("It is illegal to compare using %s(nil)", method)
		return
	}
	c, err := compare(s.actual, other)
	switch {
	case errors.Is(err, errUnordered):
		s.failComparingValues(verb, other)
	case err != nil:
		s.invalid("%v", err)
	case !pass(c):
		s.failComparingValues(verb, other)
	}
}
