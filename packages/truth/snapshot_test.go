package truth

import (
	"testing"

	"github.com/abdul-hamid-achik/gotruth/packages/snapshot"
	"github.com/stretchr/testify/assert"
)

func useSnapshotManager(t *testing.T, m *snapshot.Manager) {
	original := snapshot.Default()
	snapshot.SetDefault(m)
	t.Cleanup(func() { snapshot.SetDefault(original) })
}

func TestMatchesSnapshot(t *testing.T) {
	dir := t.TempDir()
	value := map[string]any{"id": 1, "tags": []string{"a"}}

	useSnapshotManager(t, snapshot.NewManager(dir, true))
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, value).MatchesSnapshot()
		ExpectThat(ft, "second").MatchesSnapshot("named")
	})

	useSnapshotManager(t, snapshot.NewManager(dir, false))
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, value).MatchesSnapshot()
		ExpectThat(ft, "second").MatchesSnapshot("named")
	})

	ft := &recordingT{name: t.Name()}
	ExpectThat(ft, map[string]any{"id": 2, "tags": []string{"a"}}).MatchesSnapshot()
	msg := ft.message(t)
	assert.Contains(t, msg, "matches the snapshot <")
	assert.Contains(t, msg, "Diff (-snapshot +actual)")
}

func TestMatchesSnapshot_Missing(t *testing.T) {
	useSnapshotManager(t, snapshot.NewManager(t.TempDir(), false))

	fails(t, `Not true that <"x"> has a stored snapshot. Run the test with TRUTH_UPDATE_SNAPSHOTS=1 to record it.`, func(ft *recordingT) {
		ExpectThat(ft, "x").MatchesSnapshot()
	})
}

func TestMatchesSnapshot_TooManyNames(t *testing.T) {
	fails(t, "invalid assertion: MatchesSnapshot takes at most one name, got 2", func(ft *recordingT) {
		ExpectThat(ft, "x").MatchesSnapshot("a", "b")
	})
}
