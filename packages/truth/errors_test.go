package truth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("sentinel")

func TestHasMessage(t *testing.T) {
	var nilErr error
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, errors.New("boom")).HasMessage("boom")
		ExpectThat(ft, errors.New("not found: x")).HasMessageThat().Contains("not found")
		ExpectThat(ft, errors.New("code 42")).HasMessageThat().Matches(`code \d+`)
	})
	fails(t, `Not true that <"boom"> is equal to <"bang">.`, func(ft *recordingT) {
		ExpectThat(ft, errors.New("boom")).HasMessage("bang")
	})
	fails(t, `<"boom"> should have contained <"z">.`, func(ft *recordingT) {
		ExpectThat(ft, errors.New("boom")).HasMessageThat().Contains("z")
	})
	fails(t, "Not true that <nil> is an error.", func(ft *recordingT) {
		ExpectThat(ft, nilErr).HasMessage("x")
	})
	fails(t, "Not true that <nil> is an error.", func(ft *recordingT) {
		ExpectThat(ft, nilErr).HasMessageThat()
	})
	fails(t, "invalid assertion: <5> is not an error", func(ft *recordingT) {
		ExpectThat(ft, 5).HasMessage("x")
	})
}

func TestHasMessageThat_Unresolved(t *testing.T) {
	ft := &recordingT{}
	ExpectThat(ft, errors.New("boom")).HasMessageThat()
	ft.runCleanups()

	assert.Contains(t, ft.message(t), `* Subject(<"boom">) created at errors_test.go:`)
}

func TestErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", fs.ErrNotExist)
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, wrapped).ErrorIs(fs.ErrNotExist)
	})

	ft := &recordingT{}
	ExpectThat(ft, wrapped).ErrorIs(fs.ErrPermission)
	assert.Equal(t,
		`Not true that <*fmt.wrapError("ctx: file does not exist")> is or wraps <*errors.errorString("permission denied")>.`,
		ft.message(t))
}

func TestErrorAs(t *testing.T) {
	var pathErr *fs.PathError
	wrapped := fmt.Errorf("load: %w", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist})

	passes(t, func(ft *recordingT) {
		ExpectThat(ft, wrapped).ErrorAs(&pathErr)
	})
	require.NotNil(t, pathErr)
	assert.Equal(t, "x", pathErr.Path)

	fails(t, `<*errors.errorString("x")> should have had an error of type <*fs.PathError> in its chain.`, func(ft *recordingT) {
		var target *fs.PathError
		ExpectThat(ft, errors.New("x")).ErrorAs(&target)
	})
	fails(t, "invalid assertion: ErrorAs target must be a non-nil pointer, got <5>", func(ft *recordingT) {
		ExpectThat(ft, wrapped).ErrorAs(5)
	})
	fails(t, "invalid assertion: ErrorAs target must point to an interface or an error type, got *string", func(ft *recordingT) {
		var s string
		ExpectThat(ft, wrapped).ErrorAs(&s)
	})
}

func TestIsRaised_Type(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, Type[*fs.PathError]()).IsRaised(func() {
			panic(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist})
		})
		ExpectThat(ft, Type[error]()).IsRaised(func() {
			panic(errors.New("x"))
		})
		ExpectThat(ft, Type[*fs.PathError]()).IsRaised(func() {
			panic(fmt.Errorf("wrapped: %w", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}))
		})
		ExpectThat(ft, Type[string]()).IsRaised(func() {
			panic("boom")
		})
	})

	fails(t, "<error> should have been raised, but was not.", func(ft *recordingT) {
		ExpectThat(ft, Type[error]()).IsRaised(func() {})
	})
	fails(t, `<*fs.PathError> should have been raised, but caught <"boom">.`, func(ft *recordingT) {
		ExpectThat(ft, Type[*fs.PathError]()).IsRaised(func() {
			panic("boom")
		})
	})
}

func TestIsRaised_Value(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, errSentinel).IsRaised(func() {
			panic(fmt.Errorf("wrap: %w", errSentinel))
		})
		ExpectThat(ft, errors.New("x")).IsRaised(func() {
			panic(errors.New("x"))
		})
	})
	fails(t, `<*errors.errorString("sentinel")> should have been raised, but caught <*errors.errorString("other")>.`, func(ft *recordingT) {
		ExpectThat(ft, errSentinel).IsRaised(func() {
			panic(errors.New("other"))
		})
	})
	fails(t, "invalid assertion: IsRaised requires an error or a reflect.Type subject, got <5>", func(ft *recordingT) {
		ExpectThat(ft, 5).IsRaised(func() {})
	})
}

func TestIsRaised_Message(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, Type[error]()).IsRaised(func() {
			panic(errors.New("code 42"))
		}, Matching(`code \d+`), Containing("42"))
		ExpectThat(ft, Type[string]()).IsRaised(func() {
			panic("index out of range")
		}, Containing("range"))
	})
	fails(t, `<"code 42"> should have contained <"43">.`, func(ft *recordingT) {
		ExpectThat(ft, Type[error]()).IsRaised(func() {
			panic(errors.New("code 42"))
		}, Containing("43"))
	})
	fails(t, `<"code 42"> should have contained a match for <^x>.`, func(ft *recordingT) {
		ExpectThat(ft, Type[error]()).IsRaised(func() {
			panic(errors.New("code 42"))
		}, Matching("^x"))
	})
}

func TestIsReturnedBy(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, Type[*fs.PathError]()).IsReturnedBy(func() error {
			_, err := os.Open(missing)
			return err
		}, Containing("missing"))
		ExpectThat(ft, fs.ErrNotExist).IsReturnedBy(func() error {
			_, err := os.Open(missing)
			return err
		})
	})
	fails(t, "<*fs.PathError> should have been returned, but was not.", func(ft *recordingT) {
		ExpectThat(ft, Type[*fs.PathError]()).IsReturnedBy(func() error { return nil })
	})
	fails(t, `<*fs.PathError> should have been returned, but got <*errors.errorString("x")>.`, func(ft *recordingT) {
		ExpectThat(ft, Type[*fs.PathError]()).IsReturnedBy(func() error { return errors.New("x") })
	})
}

func TestPanics(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, func() { panic("boom") }).Panics()
		ExpectThat(ft, func() {}).DoesNotPanic()
		ExpectThat(ft, func() int { return 1 }).DoesNotPanic()
	})

	ft := &recordingT{}
	ExpectThat(ft, func() {}).Panics()
	assert.Contains(t, ft.message(t), "should have panicked, but did not.")

	ft = &recordingT{}
	ExpectThat(ft, func() { panic("boom") }).DoesNotPanic()
	assert.Contains(t, ft.message(t), `should not have panicked, but panicked with <"boom">.`)

	fails(t, "invalid assertion: <5> is not a function without arguments", func(ft *recordingT) {
		ExpectThat(ft, 5).Panics()
	})
}

func TestIsSubtypeOf(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, Type[*fs.PathError]()).IsSubtypeOf(Type[error]())
		ExpectThat(ft, Type[int]()).IsSubtypeOf(Type[int]())
	})
	fails(t, "Not true that <int> is a subtype of <error>.", func(ft *recordingT) {
		ExpectThat(ft, Type[int]()).IsSubtypeOf(Type[error]())
	})
	fails(t, "invalid assertion: <5> is not a reflect.Type", func(ft *recordingT) {
		ExpectThat(ft, 5).IsSubtypeOf(Type[int]())
	})
}
