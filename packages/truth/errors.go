package truth

import (
	"errors"
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

func (s *Subject) asError() (error, bool) {
	s.t.Helper()
	if isNil(s.actual) {
		s.failWithProposition("is an error", "")
		return nil, false
	}
	err, ok := s.actual.(error)
	if !ok {
		s.invalid("%s is not an error", s.subjectString())
	}
	return err, ok
}

// HasMessage asserts that the error's Error() text is exactly msg.
func (s *Subject) HasMessage(msg string) {
	s.t.Helper()
	s.resolve()
	if err, ok := s.asError(); ok {
		s.child(err.Error()).IsEqualTo(msg)
	}
}

// HasMessageThat returns a subject for the error's Error() text.
func (s *Subject) HasMessageThat() *Subject {
	s.t.Helper()
	s.resolve()
	err, ok := s.asError()
	if !ok {
		return s.detached()
	}
	return s.derive(err.Error())
}

// ErrorIs asserts errors.Is(subject, target).
func (s *Subject) ErrorIs(target error) {
	s.t.Helper()
	s.resolve()
	if err, ok := s.asError(); ok && !errors.Is(err, target) {
		s.failComparingValues("is or wraps", target)
	}
}

// ErrorAs asserts errors.As(subject, target). target must be a non-nil
// pointer to an interface or to a type implementing error; on success it
// holds the matched error.
func (s *Subject) ErrorAs(target any) {
	s.t.Helper()
	s.resolve()
	rv := reflect.ValueOf(target)
	if target == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		s.invalid("ErrorAs target must be a non-nil pointer, got <%s>", repr(target))
		return
	}
	elem := rv.Type().Elem()
	if elem.Kind() != reflect.Interface && !elem.Implements(errorType) {
		s.invalid("ErrorAs target must point to an interface or an error type, got %s", rv.Type())
		return
	}
	err, ok := s.asError()
	if !ok {
		return
	}
	if !errors.As(err, target) {
		s.failWithSubject(fmt.Sprintf("should have had an error of type <%s> in its chain", elem))
	}
}

// RaisedOption constrains the message of the error caught by IsRaised or
// IsReturnedBy.
type RaisedOption func(*raisedOptions)

type raisedOptions struct {
	matching      any
	containing    string
	hasContaining bool
}

// Matching requires the caught error's message to contain a match for
// pattern, a string or *regexp.Regexp.
func Matching(pattern any) RaisedOption {
	return func(o *raisedOptions) {
		o.matching = pattern
	}
}

// Containing requires the caught error's message to contain substr.
func Containing(substr string) RaisedOption {
	return func(o *raisedOptions) {
		o.containing = substr
		o.hasContaining = true
	}
}

// IsRaised runs block and asserts that it panics with the subject. The
// subject is either an error value, which the panic must be (errors.Is,
// or the same type with the same message), or a reflect.Type the panic
// value must be assignable to or wrap:
//
//	truth.AssertThat(t, truth.Type[*fs.PathError]()).IsRaised(func() {
//		mustOpen("missing")
//	}, truth.Containing("missing"))
func (s *Subject) IsRaised(block func(), opts ...RaisedOption) {
	s.t.Helper()
	s.resolve()
	if !s.validRaisedSubject("IsRaised") {
		return
	}
	caught, panicked := capturePanic(block)
	if !panicked {
		s.failWithSubject("should have been raised, but was not")
		return
	}
	if !s.raisedMatches(caught) {
		s.failWithSubject(fmt.Sprintf("should have been raised, but caught <%s>", repr(caught)))
		return
	}
	s.checkRaisedMessage(caught, opts)
}

// IsReturnedBy is the error-returning counterpart of IsRaised.
func (s *Subject) IsReturnedBy(fn func() error, opts ...RaisedOption) {
	s.t.Helper()
	s.resolve()
	if !s.validRaisedSubject("IsReturnedBy") {
		return
	}
	err := fn()
	if err == nil {
		s.failWithSubject("should have been returned, but was not")
		return
	}
	if !s.raisedMatches(err) {
		s.failWithSubject(fmt.Sprintf("should have been returned, but got <%s>", repr(err)))
		return
	}
	s.checkRaisedMessage(err, opts)
}

func (s *Subject) validRaisedSubject(method string) bool {
	s.t.Helper()
	switch s.actual.(type) {
	case reflect.Type, error:
		return true
	}
	s.invalid("%s requires an error or a reflect.Type subject, got %s", method, s.subjectString())
	return false
}

func (s *Subject) raisedMatches(v any) bool {
	switch want := s.actual.(type) {
	case reflect.Type:
		if vt := reflect.TypeOf(v); vt != nil && vt.AssignableTo(want) {
			return true
		}
		err, ok := v.(error)
		if !ok || (want.Kind() != reflect.Interface && !want.Implements(errorType)) {
			return false
		}
		return errors.As(err, reflect.New(want).Interface())
	case error:
		err, ok := v.(error)
		if !ok {
			return false
		}
		if errors.Is(err, want) {
			return true
		}
		return reflect.TypeOf(err) == reflect.TypeOf(want) && err.Error() == want.Error()
	}
	return false
}

func (s *Subject) checkRaisedMessage(caught any, opts []RaisedOption) {
	s.t.Helper()
	var o raisedOptions
	for _, opt := range opts {
		opt(&o)
	}
	msg := fmt.Sprint(caught)
	if err, ok := caught.(error); ok {
		msg = err.Error()
	}
	if o.matching != nil {
		s.child(msg).ContainsMatch(o.matching)
	}
	if o.hasContaining {
		s.child(msg).Contains(o.containing)
	}
}

// capturePanic runs f and returns the value it panicked with.
func capturePanic(f func()) (v any, panicked bool) {
	panicked = true
	defer func() {
		if panicked {
			v = recover()
		}
	}()
	f()
	panicked = false
	return nil, false
}

func (s *Subject) call() (func(), bool) {
	s.t.Helper()
	if f, ok := s.actual.(func()); ok && f != nil {
		return f, true
	}
	rv := reflect.ValueOf(s.actual)
	if s.actual != nil && rv.Kind() == reflect.Func && !rv.IsNil() && rv.Type().NumIn() == 0 {
		return func() { rv.Call(nil) }, true
	}
	s.invalid("%s is not a function without arguments", s.subjectString())
	return nil, false
}

// Panics asserts that calling the subject, a function without arguments,
// panics.
func (s *Subject) Panics() {
	s.t.Helper()
	s.resolve()
	f, ok := s.call()
	if !ok {
		return
	}
	if _, panicked := capturePanic(f); !panicked {
		s.failWithSubject("should have panicked, but did not")
	}
}

func (s *Subject) DoesNotPanic() {
	s.t.Helper()
	s.resolve()
	f, ok := s.call()
	if !ok {
		return
	}
	if v, panicked := capturePanic(f); panicked {
		s.failWithSubject(fmt.Sprintf("should not have panicked, but panicked with <%s>", repr(v)))
	}
}

// IsSubtypeOf asserts that the subject, a reflect.Type, is assignable to
// other. For an interface this means implementing it.
func (s *Subject) IsSubtypeOf(other reflect.Type) {
	s.t.Helper()
	s.resolve()
	typ, ok := s.actual.(reflect.Type)
	if !ok {
		s.invalid("%s is not a reflect.Type", s.subjectString())
		return
	}
	if other == nil {
		s.invalid("IsSubtypeOf requires a type")
		return
	}
	if !typ.AssignableTo(other) {
		s.failComparingValues("is a subtype of", other)
	}
}
