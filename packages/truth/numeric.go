package truth

import (
	"fmt"
	"math"
)

func (s *Subject) numeric() (number, bool) {
	s.t.Helper()
	n, ok := toNumber(s.actual)
	if !ok {
		s.invalid("%s is not a number", s.subjectString())
	}
	return n, ok
}

func (s *Subject) IsZero() {
	s.t.Helper()
	s.resolve()
	if n, ok := s.numeric(); ok && !n.isZero() {
		s.failWithProposition("is zero", "")
	}
}

func (s *Subject) IsNonZero() {
	s.t.Helper()
	s.resolve()
	if n, ok := s.numeric(); ok && n.isZero() {
		s.failWithProposition("is non-zero", "")
	}
}

func (s *Subject) IsFinite() {
	s.t.Helper()
	s.resolve()
	if n, ok := s.numeric(); ok && (n.isNaN() || n.isInf()) {
		s.failWithSubject("should have been finite")
	}
}

func (s *Subject) IsPositiveInfinity() {
	s.t.Helper()
	s.IsEqualTo(math.Inf(1))
}

func (s *Subject) IsNegativeInfinity() {
	s.t.Helper()
	s.IsEqualTo(math.Inf(-1))
}

func (s *Subject) IsNaN() {
	s.t.Helper()
	s.resolve()
	if n, ok := s.numeric(); ok && !n.isNaN() {
		s.failComparingValues("is equal to", math.NaN())
	}
}

func (s *Subject) IsNotNaN() {
	s.t.Helper()
	s.resolve()
	if n, ok := s.numeric(); ok && n.isNaN() {
		s.failWithSubject("should not have been <NaN>")
	}
}

// TolerantSubject compares a number against an expected value with a
// tolerance. It is created by IsWithin and IsNotWithin and resolved by Of.
type TolerantSubject struct {
	*base
	tolerance float64
	within    bool
}

// IsWithin starts a tolerance check:
//
//	truth.AssertThat(t, 0.1+0.2).IsWithin(1e-9).Of(0.3)
func (s *Subject) IsWithin(tolerance float64) *TolerantSubject {
	s.t.Helper()
	s.resolve()
	return s.tolerant(tolerance, true)
}

func (s *Subject) IsNotWithin(tolerance float64) *TolerantSubject {
	s.t.Helper()
	s.resolve()
	return s.tolerant(tolerance, false)
}

func (s *Subject) tolerant(tolerance float64, within bool) *TolerantSubject {
	ts := &TolerantSubject{base: newBase(s.t, s.actual, s.fatal, 3), tolerance: tolerance, within: within}
	ts.name = s.name
	return ts
}

func (ts *TolerantSubject) Of(expected any) {
	ts.t.Helper()
	ts.resolve()
	switch {
	case math.IsNaN(ts.tolerance):
		ts.invalid("tolerance cannot be <NaN>")
		return
	case ts.tolerance < 0:
		ts.invalid("tolerance cannot be negative")
		return
	case math.IsInf(ts.tolerance, 1):
		ts.invalid("tolerance cannot be positive infinity")
		return
	}
	a, ok := toNumber(ts.actual)
	if !ok || a.kind == complexKind {
		ts.invalid("%s is not a real number", ts.subjectString())
		return
	}
	e, ok := toNumber(expected)
	if !ok || e.kind == complexKind {
		ts.invalid("<%s> is not a real number", repr(expected))
		return
	}
	d := math.Abs(a.float() - e.float())
	if ts.within && !(d <= ts.tolerance) {
		ts.failWithSubject(fmt.Sprintf("and <%s> should have been within <%s> of each other",
			repr(expected), repr(ts.tolerance)))
	}
	if !ts.within && !(d > ts.tolerance) {
		ts.failWithSubject(fmt.Sprintf("and <%s> should not have been within <%s> of each other",
			repr(expected), repr(ts.tolerance)))
	}
}
