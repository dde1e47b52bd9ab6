package truth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

func (s *Subject) str() (string, bool) {
	s.t.Helper()
	str, ok := asString(s.actual)
	if !ok {
		s.invalid("%s is not a string", s.subjectString())
	}
	return str, ok
}

// pattern accepts a regular expression as a string or *regexp.Regexp.
func (s *Subject) pattern(p any) (*regexp.Regexp, bool) {
	s.t.Helper()
	switch x := p.(type) {
	case *regexp.Regexp:
		if x != nil {
			return x, true
		}
	case string:
		re, err := regexp.Compile(x)
		if err != nil {
			s.invalid("bad pattern %q: %v", x, err)
			return nil, false
		}
		return re, true
	}
	s.invalid("<%s> is not a regular expression", repr(p))
	return nil, false
}

// HasLength asserts the length of a string in runes.
func (s *Subject) HasLength(length int) {
	s.t.Helper()
	s.resolve()
	str, ok := s.str()
	if !ok {
		return
	}
	if n := utf8.RuneCountInString(str); n != length {
		s.failWithBadResults("has a length of", length, "is", fmt.Sprint(n), "")
	}
}

func (s *Subject) StartsWith(prefix string) {
	s.t.Helper()
	s.resolve()
	if str, ok := s.str(); ok && !strings.HasPrefix(str, prefix) {
		s.failComparingValues("starts with", prefix)
	}
}

func (s *Subject) EndsWith(suffix string) {
	s.t.Helper()
	s.resolve()
	if str, ok := s.str(); ok && !strings.HasSuffix(str, suffix) {
		s.failComparingValues("ends with", suffix)
	}
}

// Matches asserts that the pattern matches at the start of the string.
// Anchor the pattern with $ to match the whole string.
func (s *Subject) Matches(p any) {
	s.t.Helper()
	s.resolve()
	str, ok := s.str()
	if !ok {
		return
	}
	re, ok := s.pattern(p)
	if !ok {
		return
	}
	if !matchesAtStart(re, str) {
		s.failComparingValues("matches", re.String())
	}
}

func (s *Subject) DoesNotMatch(p any) {
	s.t.Helper()
	s.resolve()
	str, ok := s.str()
	if !ok {
		return
	}
	re, ok := s.pattern(p)
	if !ok {
		return
	}
	if matchesAtStart(re, str) {
		s.failComparingValues("fails to match", re.String())
	}
}

func matchesAtStart(re *regexp.Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

func (s *Subject) ContainsMatch(p any) {
	s.t.Helper()
	s.resolve()
	str, ok := s.str()
	if !ok {
		return
	}
	re, ok := s.pattern(p)
	if !ok {
		return
	}
	if !re.MatchString(str) {
		s.failWithSubject(fmt.Sprintf("should have contained a match for <%s>", re))
	}
}

func (s *Subject) DoesNotContainMatch(p any) {
	s.t.Helper()
	s.resolve()
	str, ok := s.str()
	if !ok {
		return
	}
	re, ok := s.pattern(p)
	if !ok {
		return
	}
	if re.MatchString(str) {
		s.failWithSubject(fmt.Sprintf("should not have contained a match for <%s>", re))
	}
}

// IsUUID asserts that the string parses as a UUID in any of the forms
// accepted by uuid.Parse.
func (s *Subject) IsUUID() {
	s.t.Helper()
	s.resolve()
	str, ok := s.str()
	if !ok {
		return
	}
	if _, err := uuid.Parse(str); err != nil {
		s.failWithProposition("is a UUID", "")
	}
}
