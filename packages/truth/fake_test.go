package truth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingT captures what predicates report instead of failing the
// enclosing test.
type recordingT struct {
	name     string
	errors   []string
	failNows int
	cleanups []func()
}

func (r *recordingT) Helper() {}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.failNows++
}

func (r *recordingT) Cleanup(f func()) {
	r.cleanups = append(r.cleanups, f)
}

func (r *recordingT) Name() string {
	return r.name
}

func (r *recordingT) runCleanups() {
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}
	r.cleanups = nil
}

// message returns the only reported error.
func (r *recordingT) message(t *testing.T) string {
	t.Helper()
	require.Len(t, r.errors, 1, "errors: %q", r.errors)
	return r.errors[0]
}

// fails runs assertion against a fresh recordingT and checks the single
// failure message it reports.
func fails(t *testing.T, expected string, assertion func(ft *recordingT)) {
	t.Helper()
	ft := &recordingT{name: t.Name()}
	assertion(ft)
	ft.runCleanups()
	assert.Equal(t, expected, ft.message(t))
}

// passes runs assertion against a fresh recordingT and checks that
// nothing was reported, unresolved subjects included.
func passes(t *testing.T, assertion func(ft *recordingT)) {
	t.Helper()
	ft := &recordingT{name: t.Name()}
	assertion(ft)
	ft.runCleanups()
	assert.Empty(t, ft.errors)
	assert.Zero(t, ft.failNows)
}
