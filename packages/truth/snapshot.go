package truth

import (
	"fmt"
	"runtime"

	"github.com/abdul-hamid-achik/gotruth/packages/snapshot"
)

type namedT interface {
	Name() string
}

// MatchesSnapshot compares the subject with the value recorded for the
// current test in __snapshots__/<test file>.snap.json. An optional name
// distinguishes several snapshots within one test. Set
// TRUTH_UPDATE_SNAPSHOTS=1 to record new or changed values.
func (s *Subject) MatchesSnapshot(name ...string) {
	s.t.Helper()
	s.resolve()
	if len(name) > 1 {
		s.invalid("MatchesSnapshot takes at most one name, got %d", len(name))
		return
	}
	snapshotName := ""
	if len(name) == 1 {
		snapshotName = name[0]
	}
	testName := ""
	if n, ok := s.t.(namedT); ok {
		testName = n.Name()
	}
	_, file, _, _ := runtime.Caller(1)

	res := snapshot.Default().Compare(file, testName, snapshotName, s.actual)
	switch {
	case res.Err != nil:
		s.invalid("%s: %s", s.subjectString(), res.Message)
	case res.Missing:
		s.failWithProposition("has a stored snapshot",
			fmt.Sprintf(" Run the test with %s=1 to record it.", snapshot.UpdateEnv))
	case !res.Passed:
		s.failWithProposition(fmt.Sprintf("matches the snapshot <%s>", repr(res.Expected)),
			"\nDiff (-snapshot +actual):\n"+res.Diff)
	}
}
