// Package snapshot stores expected values of tests in JSON files next to
// the tests and compares later runs against them.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/go-cmp/cmp"
)

const (
	// SnapshotDir is the directory name for storing snapshots
	SnapshotDir = "__snapshots__"
	// SnapshotExt is the file extension for snapshot files
	SnapshotExt = ".snap.json"
	// UpdateEnv enables update mode for the default manager when set to a
	// true value such as "1".
	UpdateEnv = "TRUTH_UPDATE_SNAPSHOTS"
)

// Manager handles snapshot storage and comparison. It is safe for use by
// parallel tests.
type Manager struct {
	mu            sync.Mutex
	baseDir       string
	updateMode    bool
	snapshotsRead map[string]map[string]any // file -> {name -> value}
}

// NewManager creates a new snapshot manager. Snapshot files live in a
// __snapshots__ directory under baseDir, or next to the test file when
// baseDir is empty.
func NewManager(baseDir string, updateMode bool) *Manager {
	return &Manager{
		baseDir:       baseDir,
		updateMode:    updateMode,
		snapshotsRead: make(map[string]map[string]any),
	}
}

// UpdateMode reports whether mismatches overwrite stored snapshots.
func (m *Manager) UpdateMode() bool {
	return m.updateMode
}

// SnapshotResult represents the result of a snapshot comparison.
type SnapshotResult struct {
	Passed     bool
	Message    string
	Expected   any
	Actual     any
	Diff       string
	IsNew      bool
	WasUpdated bool
	Missing    bool
	Err        error
}

// Compare compares an actual value against a stored snapshot.
// If updateMode is true and there's a mismatch, the snapshot is updated.
// The snapshotName parameter is optional; with neither name set, a hash
// of the value is used.
func (m *Manager) Compare(testFile, testName, snapshotName string, actual any) *SnapshotResult {
	result := &SnapshotResult{}

	normalized, err := normalize(actual)
	if err != nil {
		result.Err = err
		result.Message = fmt.Sprintf("value cannot be stored as a snapshot: %v", err)
		return result
	}
	result.Actual = normalized

	snapshotFile := m.filePath(testFile)
	key := generateKey(testName, snapshotName, normalized)

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshots, err := m.loadSnapshots(snapshotFile)
	if err != nil {
		result.Err = err
		result.Message = fmt.Sprintf("failed to load snapshots: %v", err)
		return result
	}

	expected, exists := snapshots[key]
	if !exists {
		if !m.updateMode {
			result.Missing = true
			result.Message = fmt.Sprintf("snapshot %q does not exist (run with %s=1 to create)", key, UpdateEnv)
			return result
		}
		snapshots[key] = normalized
		if err := m.saveSnapshots(snapshotFile, snapshots); err != nil {
			result.Err = err
			result.Message = fmt.Sprintf("failed to save snapshot: %v", err)
			return result
		}
		result.Passed = true
		result.IsNew = true
		result.Expected = normalized
		result.Message = "new snapshot created"
		return result
	}

	result.Expected = expected
	if cmp.Equal(expected, normalized) {
		result.Passed = true
		return result
	}

	if m.updateMode {
		snapshots[key] = normalized
		if err := m.saveSnapshots(snapshotFile, snapshots); err != nil {
			result.Err = err
			result.Message = fmt.Sprintf("failed to update snapshot: %v", err)
			return result
		}
		result.Passed = true
		result.WasUpdated = true
		result.Message = "snapshot updated"
		return result
	}

	result.Diff = cmp.Diff(expected, normalized)
	result.Message = "snapshot mismatch"
	return result
}

// filePath returns the path to the snapshot file for a test file.
func (m *Manager) filePath(testFile string) string {
	dir := filepath.Dir(testFile)
	if m.baseDir != "" {
		dir = m.baseDir
	}
	base := filepath.Base(testFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, SnapshotDir, name+SnapshotExt)
}

// generateKey generates a unique key for a snapshot.
func generateKey(testName, snapshotName string, value any) string {
	if snapshotName != "" {
		return fmt.Sprintf("%s::%s", testName, snapshotName)
	}
	if testName != "" {
		return testName
	}
	hash := sha256.Sum256([]byte(fmt.Sprintf("%v", value)))
	return "anon_" + hex.EncodeToString(hash[:8])
}

// loadSnapshots loads snapshots from a file. Callers hold m.mu.
func (m *Manager) loadSnapshots(path string) (map[string]any, error) {
	if cached, ok := m.snapshotsRead[path]; ok {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			snapshots := make(map[string]any)
			m.snapshotsRead[path] = snapshots
			return snapshots, nil
		}
		return nil, err
	}

	snapshots := make(map[string]any)
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	m.snapshotsRead[path] = snapshots
	return snapshots, nil
}

// saveSnapshots saves snapshots to a file. Callers hold m.mu.
func (m *Manager) saveSnapshots(path string, snapshots map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return err
	}

	m.snapshotsRead[path] = snapshots

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// normalize round-trips v through JSON so that values compare the same
// way before and after being stored.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var (
	defaultOnce    sync.Once
	defaultMu      sync.Mutex
	defaultManager *Manager
)

// Default returns the process-wide manager. Unless replaced with
// SetDefault, it stores snapshots next to the test files and is in update
// mode when UpdateEnv is set to a true value.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		if defaultManager == nil {
			update, _ := strconv.ParseBool(os.Getenv(UpdateEnv))
			defaultManager = NewManager("", update)
		}
	})
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultManager
}

// SetDefault replaces the process-wide manager.
func SetDefault(m *Manager) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultManager = m
}
