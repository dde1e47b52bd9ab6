package truth

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasSize(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2}).HasSize(2)
		ExpectThat(ft, "héllo").HasSize(5)
		ExpectThat(ft, map[int]int{1: 1}).HasSize(1)
		ExpectThat(ft, [3]int{}).HasSize(3)
		ExpectThat(ft, slices.Values([]int{1, 2})).HasSize(2)
	})
	fails(t, "Not true that <[1, 2]> has a size of <3>. It is <2>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2}).HasSize(3)
	})
	fails(t, "invalid assertion: <5> has no size", func(ft *recordingT) {
		ExpectThat(ft, 5).HasSize(1)
	})
}

func TestIsEmpty(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, []int{}).IsEmpty()
		ExpectThat(ft, "").IsEmpty()
		ExpectThat(ft, []int{1}).IsNotEmpty()
	})
	fails(t, "Not true that <[1]> is empty.", func(ft *recordingT) {
		ExpectThat(ft, []int{1}).IsEmpty()
	})
	fails(t, "Not true that <{}> is not empty.", func(ft *recordingT) {
		ExpectThat(ft, map[string]int{}).IsNotEmpty()
	})
}

func TestContains(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, []string{"a", "b"}).Contains("b")
		ExpectThat(ft, map[string]int{"a": 1}).Contains("a")
		ExpectThat(ft, "hello").Contains("ell")
		ExpectThat(ft, []int64{1, 2}).Contains(2)
		ExpectThat(ft, []int{1}).DoesNotContain(2)
	})
	fails(t, `<["a"]> should have contained <"b">.`, func(ft *recordingT) {
		ExpectThat(ft, []string{"a"}).Contains("b")
	})
	fails(t, `<"hello"> should not have contained <"ell">.`, func(ft *recordingT) {
		ExpectThat(ft, "hello").DoesNotContain("ell")
	})
	fails(t, `invalid assertion: <"hello"> cannot contain <1>`, func(ft *recordingT) {
		ExpectThat(ft, "hello").Contains(1)
	})
}

func TestContainsNoDuplicates(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsNoDuplicates()
		ExpectThat(ft, map[string]int{"a": 1, "b": 1}).ContainsNoDuplicates()
	})
	fails(t, "<[1, 2, 1, 3, 1]> has the following duplicates: <[1, 1]>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 1, 3, 1}).ContainsNoDuplicates()
	})
}

func TestContainsAll(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsAllOf(1, 3).InOrder()
		ExpectThat(ft, []int{1, 2, 3}).ContainsAllOf(3, 1)
		ExpectThat(ft, []int{1, 2, 3}).ContainsAllIn([]int{2, 3}).InOrder()
		ExpectThat(ft, []int{1, 1, 2}).ContainsAllOf(1, 1)
	})
	fails(t, "Not true that <[1, 2, 3]> contains all of <[1, 4, 4]>. It is missing <[4 [2 copies]]>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsAllOf(1, 4, 4)
	})
	fails(t, "Not true that <[1, 2]> contains all elements in <[1, 1]>. It is missing <[1]>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2}).ContainsAllIn([]int{1, 1})
	})
	fails(t, "Not true that <[1, 2, 3]> contains all elements in order <[3, 1]>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsAllOf(3, 1).InOrder()
	})
	fails(t, "invalid assertion: <5> is not iterable", func(ft *recordingT) {
		ExpectThat(ft, []int{1}).ContainsAllIn(5)
	})
}

func TestContainsAny(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsAnyOf(4, 3)
		ExpectThat(ft, []int{1, 2, 3}).ContainsAnyIn([]int{0, 1})
	})
	fails(t, "Not true that <[1, 2, 3]> contains any of <[4, 5]>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsAnyOf(4, 5)
	})
	fails(t, "Not true that <[1, 2, 3]> contains any element in <[4, 5]>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsAnyIn([]int{4, 5})
	})
}

func TestContainsNone(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsNoneOf(4, 5)
		ExpectThat(ft, []int{1, 2, 3}).ContainsNoneIn([]int{4, 5})
	})
	fails(t, "Not true that <[1, 2, 3]> contains none of <[2, 3, 4]>. It contains <[2, 3]>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsNoneOf(2, 3, 4)
	})
	fails(t, "Not true that <[1, 2, 3]> contains no elements in <[3]>. It contains <[3]>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsNoneIn([]int{3})
	})
}

func TestContainsExactly(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2, 3}).ContainsExactly(1, 2, 3).InOrder()
		ExpectThat(ft, []int{1, 2, 3}).ContainsExactly(3, 2, 1)
		ExpectThat(ft, []int{}).ContainsExactly()
		ExpectThat(ft, []int{1, 1, 2}).ContainsExactly(1, 2, 1)
		ExpectThat(ft, slices.Values([]string{"a", "b"})).ContainsExactly("a", "b").InOrder()
		ExpectThat(ft, []int{2, 1}).ContainsExactlyElementsIn([]int{1, 2})
	})

	tests := []struct {
		name      string
		actual    any
		expected  []any
		message   string
		assertion func(s *Subject, expected []any)
	}{
		{
			name:     "out of order",
			actual:   []int{1, 2, 3},
			expected: []any{3, 2, 1},
			message:  "Not true that <[1, 2, 3]> contains exactly these elements in order <[3, 2, 1]>.",
		},
		{
			name:     "missing",
			actual:   []int{1, 2},
			expected: []any{1, 2, 3},
			message:  "Not true that <[1, 2]> contains exactly <[1, 2, 3]>. It is missing <[3]>.",
		},
		{
			name:     "unexpected",
			actual:   []int{1, 2, 3},
			expected: []any{1, 2},
			message:  "Not true that <[1, 2, 3]> contains exactly <[1, 2]>. It has unexpected items <[3]>.",
		},
		{
			name:     "missing and unexpected",
			actual:   []int{1, 2},
			expected: []any{1, 3},
			message:  "Not true that <[1, 2]> contains exactly <[1, 3]>. It is missing <[3]> and has unexpected items <[2]>.",
		},
		{
			name:     "duplicate",
			actual:   []int{1, 1, 2},
			expected: []any{1, 2},
			message:  "Not true that <[1, 1, 2]> contains exactly <[1, 2]>. It has unexpected items <[1]>.",
		},
		{
			name:     "empty expected",
			actual:   []int{1},
			expected: nil,
			message:  "Not true that <[1]> is empty.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fails(t, tt.message, func(ft *recordingT) {
				ExpectThat(ft, tt.actual).ContainsExactly(tt.expected...).InOrder()
			})
		})
	}
}

func TestContainsExactly_SingleIterableWarning(t *testing.T) {
	ft := &recordingT{}
	ExpectThat(ft, []int{1, 2}).ContainsExactly([]int{1, 2})

	msg := ft.message(t)
	assert.Contains(t, msg, "Not true that <[1, 2]> contains exactly <[[1, 2]]>.")
	assert.Contains(t, msg, "Did you mean to call ContainsExactlyElementsIn(iterable) instead?")
}

func TestContainsExactlyElementsIn_InOrder(t *testing.T) {
	fails(t, "Not true that <[1, 2]> contains exactly these elements in order <[2, 1]>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2}).ContainsExactlyElementsIn([]int{2, 1}).InOrder()
	})
}

func TestIsOrdered(t *testing.T) {
	descending := func(a, b any) int { return b.(int) - a.(int) }
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, []int{1, 1, 2}).IsOrdered()
		ExpectThat(ft, []int{1, 2, 3}).IsStrictlyOrdered()
		ExpectThat(ft, "abc").IsStrictlyOrdered()
		ExpectThat(ft, []int{}).IsOrdered()
		ExpectThat(ft, []int{3, 2, 2}).IsOrderedAccordingTo(descending)
		ExpectThat(ft, []int{3, 2, 1}).IsStrictlyOrderedAccordingTo(descending)
	})
	fails(t, "Not true that <[1, 3, 2]> is ordered <(3, 2)>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 3, 2}).IsOrdered()
	})
	fails(t, "Not true that <[1, 1]> is strictly ordered <(1, 1)>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 1}).IsStrictlyOrdered()
	})
	fails(t, "Not true that <[1, 2]> is ordered <(1, 2)>.", func(ft *recordingT) {
		ExpectThat(ft, []int{1, 2}).IsOrderedAccordingTo(descending)
	})
	fails(t, "invalid assertion: <1> and <\"a\"> are not comparable", func(ft *recordingT) {
		ExpectThat(ft, []any{1, "a"}).IsOrdered()
	})
}
