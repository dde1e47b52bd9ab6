package truth

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"sync/atomic"
)

// TestingT is the subset of testing.TB used by truth.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
	Cleanup(func())
}

// AssertThat begins an assertion on actual. A failed predicate marks the
// test failed and stops it.
func AssertThat(t TestingT, actual any) *Subject {
	t.Helper()
	return &Subject{base: newBase(t, actual, true, 2)}
}

// ExpectThat begins an assertion on actual. A failed predicate marks the
// test failed and lets it continue.
func ExpectThat(t TestingT, actual any) *Subject {
	t.Helper()
	return &Subject{base: newBase(t, actual, false, 2)}
}

// Type returns the reflect.Type of T, for use with IsInstanceOf,
// IsSubtypeOf and IsRaised.
func Type[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

const unresolvedHint = `The following assertion was unresolved. Perhaps you called ` +
	`"AssertThat(t, thing.IsEmpty())" instead of "AssertThat(t, thing).IsEmpty()".`

// base carries the state shared by every kind of subject.
type base struct {
	t        TestingT
	fatal    bool
	actual   any
	name     string
	method   string
	origin   string
	muted    bool
	resolved atomic.Bool
}

// newBase creates tracked subject state. skip is the number of frames
// between newBase and the user code that created the subject.
func newBase(t TestingT, actual any, fatal bool, skip int) *base {
	b := &base{t: t, fatal: fatal, actual: actual}
	if _, file, line, ok := runtime.Caller(skip); ok {
		b.origin = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	t.Cleanup(b.checkResolved)
	return b
}

// resolvedBase creates subject state that is never reported as unresolved.
func resolvedBase(t TestingT, actual any, fatal bool) *base {
	b := &base{t: t, fatal: fatal, actual: actual}
	b.resolved.Store(true)
	return b
}

func (b *base) resolve() {
	b.resolved.Store(true)
}

func (b *base) checkResolved() {
	if b.resolved.Load() {
		return
	}
	b.t.Helper()
	where := ""
	if b.origin != "" {
		where = " created at " + b.origin
	}
	b.t.Errorf("%s\n    * Subject(%s)%s", unresolvedHint, b.subjectString(), where)
}

func (b *base) subjectString() string {
	var s string
	if b.name != "" {
		s = fmt.Sprintf("%s(<%s>)", b.name, repr(b.actual))
	} else {
		s = "<" + repr(b.actual) + ">"
	}
	if b.method != "" {
		s += "." + b.method + "()"
	}
	return s
}

func (b *base) failComparingValues(verb string, other any) {
	b.t.Helper()
	b.failWithProposition(fmt.Sprintf("%s <%s>", verb, repr(other)), "")
}

func (b *base) failWithBadResults(verb string, other any, failVerb, actual, suffix string) {
	b.t.Helper()
	b.failWithProposition(fmt.Sprintf("%s <%s>. It %s <%s>", verb, repr(other), failVerb, actual), suffix)
}

func (b *base) failWithProposition(proposition, suffix string) {
	b.t.Helper()
	b.fail(fmt.Sprintf("Not true that %s %s.%s", b.subjectString(), proposition, suffix))
}

func (b *base) failWithSubject(verb string) {
	b.t.Helper()
	b.fail(fmt.Sprintf("%s %s.", b.subjectString(), verb))
}

func (b *base) fail(msg string) {
	if b.muted {
		return
	}
	b.t.Helper()
	b.t.Errorf("%s", msg)
	if b.fatal {
		b.t.FailNow()
	}
}

// invalid reports a misuse of the API. It always stops the test.
func (b *base) invalid(format string, args ...any) {
	if b.muted {
		return
	}
	b.t.Helper()
	b.t.Errorf("invalid assertion: "+format, args...)
	b.t.FailNow()
}
