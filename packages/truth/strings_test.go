package truth

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHasLength(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, "héllo").HasLength(5)
		ExpectThat(ft, []byte("abc")).HasLength(3)
	})
	fails(t, `Not true that <"héllo"> has a length of <4>. It is <5>.`, func(ft *recordingT) {
		ExpectThat(ft, "héllo").HasLength(4)
	})
	fails(t, "invalid assertion: <5> is not a string", func(ft *recordingT) {
		ExpectThat(ft, 5).HasLength(1)
	})
}

func TestPrefixSuffix(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, "hello").StartsWith("he")
		ExpectThat(ft, []byte("hello")).StartsWith("he")
		ExpectThat(ft, "hello").EndsWith("lo")
	})
	fails(t, `Not true that <"hello"> starts with <"x">.`, func(ft *recordingT) {
		ExpectThat(ft, "hello").StartsWith("x")
	})
	fails(t, `Not true that <"hello"> ends with <"x">.`, func(ft *recordingT) {
		ExpectThat(ft, "hello").EndsWith("x")
	})
}

func TestMatches(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, "hello").Matches("h.l")
		ExpectThat(ft, "hello").Matches(regexp.MustCompile(`^he`))
		ExpectThat(ft, "hello").DoesNotMatch("ell")
		ExpectThat(ft, "hello").ContainsMatch("l+")
		ExpectThat(ft, "hello").DoesNotContainMatch("z")
	})
	fails(t, `Not true that <"hello"> matches <"ell">.`, func(ft *recordingT) {
		ExpectThat(ft, "hello").Matches("ell")
	})
	fails(t, `Not true that <"hello"> fails to match <"he">.`, func(ft *recordingT) {
		ExpectThat(ft, "hello").DoesNotMatch("he")
	})
	fails(t, `<"hello"> should have contained a match for <z+>.`, func(ft *recordingT) {
		ExpectThat(ft, "hello").ContainsMatch("z+")
	})
	fails(t, `<"hello"> should not have contained a match for <l+>.`, func(ft *recordingT) {
		ExpectThat(ft, "hello").DoesNotContainMatch(regexp.MustCompile("l+"))
	})
}

func TestMatches_BadPattern(t *testing.T) {
	ft := &recordingT{}
	ExpectThat(ft, "hello").ContainsMatch("(")

	assert.Contains(t, ft.message(t), `invalid assertion: bad pattern "("`)
	assert.Equal(t, 1, ft.failNows)

	fails(t, "invalid assertion: <5> is not a regular expression", func(ft *recordingT) {
		ExpectThat(ft, "hello").Matches(5)
	})
}

func TestIsUUID(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, uuid.NewString()).IsUUID()
		ExpectThat(ft, "f47ac10b-58cc-0372-8567-0e02b2c3d479").IsUUID()
	})
	fails(t, `Not true that <"nope"> is a UUID.`, func(ft *recordingT) {
		ExpectThat(ft, "nope").IsUUID()
	})
}
