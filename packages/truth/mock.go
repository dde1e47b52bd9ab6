package truth

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/mock"
)

// Call describes an expected call on a mock.
type Call struct {
	Method    string
	Arguments []any
}

// CallOf builds a Call. Arguments may be mock.Anything or
// mock.MatchedBy matchers.
func CallOf(method string, args ...any) Call {
	return Call{Method: method, Arguments: args}
}

func (c Call) String() string {
	parts := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		parts[i] = repr(a)
	}
	return c.Method + "(" + strings.Join(parts, ", ") + ")"
}

func toCall(c mock.Call) Call {
	return Call{Method: c.Method, Arguments: c.Arguments}
}

func argumentsMatch(expected, actual []any) bool {
	_, diffs := mock.Arguments(expected).Diff(actual)
	return diffs == 0
}

func (s *Subject) asMock() (*mock.Mock, bool) {
	s.t.Helper()
	m, ok := s.actual.(*mock.Mock)
	if !ok || m == nil {
		s.invalid("%s is not a *mock.Mock", s.subjectString())
		return nil, false
	}
	return m, true
}

// calls returns the recorded calls, restricted to the method selected
// with OnMethod.
func (s *Subject) calls() ([]Call, bool) {
	s.t.Helper()
	m, ok := s.asMock()
	if !ok {
		return nil, false
	}
	var out []Call
	for _, c := range m.Calls {
		if s.method == "" || c.Method == s.method {
			out = append(out, toCall(c))
		}
	}
	return out, true
}

// OnMethod narrows a mock subject to the calls of one method:
//
//	truth.AssertThat(t, &store.Mock).OnMethod("Get").WasCalled().Once()
func (s *Subject) OnMethod(name string) *Subject {
	s.t.Helper()
	s.resolve()
	if _, ok := s.asMock(); !ok {
		return s.detached()
	}
	d := s.derive(s.actual)
	d.name = s.name
	d.method = name
	return d
}

// MockCalledSubject refines a successful WasCalled.
type MockCalledSubject struct {
	*base
	calls []Call
	noop  bool
}

func (s *Subject) WasCalled() *MockCalledSubject {
	s.t.Helper()
	s.resolve()
	calls, ok := s.calls()
	if !ok {
		return &MockCalledSubject{base: resolvedBase(s.t, s.actual, s.fatal), noop: true}
	}
	mc := &MockCalledSubject{base: resolvedBase(s.t, s.actual, s.fatal), calls: calls}
	mc.name, mc.method = s.name, s.method
	if len(calls) == 0 {
		s.failWithSubject("should have been called, but was not")
		mc.noop = true
	}
	return mc
}

func (s *Subject) WasNotCalled() {
	s.t.Helper()
	s.resolve()
	calls, ok := s.calls()
	if !ok || len(calls) == 0 {
		return
	}
	s.failWithSubject(fmt.Sprintf("should not have been called, but was called %d times. Calls: %s",
		len(calls), repr(calls)))
}

// HasCalls asserts that calls were made. In order, they must appear as a
// contiguous run of the recorded calls; with anyOrder, each must match a
// distinct recorded call. Calls without a Method take the one selected
// with OnMethod.
func (s *Subject) HasCalls(calls []Call, anyOrder bool) {
	s.t.Helper()
	s.resolve()
	actual, ok := s.calls()
	if !ok {
		return
	}
	expected := make([]Call, len(calls))
	for i, c := range calls {
		if c.Method == "" {
			c.Method = s.method
		}
		expected[i] = c
	}
	if anyOrder {
		if !containsCallsAnyOrder(actual, expected) {
			s.failWithBadResults("has calls in any order", expected, "has calls", repr(actual), "")
		}
		return
	}
	if !containsCallRun(actual, expected) {
		s.failWithBadResults("has calls", expected, "has calls", repr(actual), "")
	}
}

func callMatches(expected, actual Call) bool {
	return expected.Method == actual.Method && argumentsMatch(expected.Arguments, actual.Arguments)
}

func containsCallRun(actual, expected []Call) bool {
	if len(expected) == 0 {
		return true
	}
outer:
	for i := 0; i+len(expected) <= len(actual); i++ {
		for j, e := range expected {
			if !callMatches(e, actual[i+j]) {
				continue outer
			}
		}
		return true
	}
	return false
}

func containsCallsAnyOrder(actual, expected []Call) bool {
	used := make([]bool, len(actual))
outer:
	for _, e := range expected {
		for i, a := range actual {
			if !used[i] && callMatches(e, a) {
				used[i] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// Once asserts that there was exactly one call. It returns mc so it can be
// chained with With.
func (mc *MockCalledSubject) Once() *MockCalledSubject {
	mc.t.Helper()
	return mc.Times(1)
}

func (mc *MockCalledSubject) Times(n int) *MockCalledSubject {
	mc.t.Helper()
	if mc.noop || len(mc.calls) == n {
		return mc
	}
	if n == 1 {
		mc.fail(fmt.Sprintf("should have been called once, but was called %d times", len(mc.calls)))
	} else {
		mc.fail(fmt.Sprintf("should have been called %d times, but was called %d times", n, len(mc.calls)))
	}
	return mc
}

// With asserts that at least one call had the given arguments.
func (mc *MockCalledSubject) With(args ...any) *MockCalledSubject {
	mc.t.Helper()
	if mc.noop {
		return mc
	}
	for _, c := range mc.calls {
		if argumentsMatch(args, c.Arguments) {
			return mc
		}
	}
	mc.fail(fmt.Sprintf("should have been called with <%s>. Actual calls: %s", repr(args), repr(mc.calls)))
	return mc
}

// fail reports msg once; the rest of the chain is then skipped.
func (mc *MockCalledSubject) fail(msg string) {
	mc.t.Helper()
	mc.noop = true
	mc.failWithSubject(msg)
}

// LastWith asserts the arguments of the most recent call.
func (mc *MockCalledSubject) LastWith(args ...any) {
	mc.t.Helper()
	if mc.noop {
		return
	}
	last := mc.calls[len(mc.calls)-1]
	if !argumentsMatch(args, last.Arguments) {
		mc.failWithSubject(fmt.Sprintf("should have been last called with <%s>, but was last called with <%s>",
			repr(args), repr(last.Arguments)))
	}
}
