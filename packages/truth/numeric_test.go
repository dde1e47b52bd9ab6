package truth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, 0).IsZero()
		ExpectThat(ft, 0.0).IsZero()
		ExpectThat(ft, uint16(1)).IsNonZero()
		ExpectThat(ft, complex(0, 1)).IsNonZero()
	})
	fails(t, "Not true that <1> is zero.", func(ft *recordingT) {
		ExpectThat(ft, 1).IsZero()
	})
	fails(t, "Not true that <0> is non-zero.", func(ft *recordingT) {
		ExpectThat(ft, 0.0).IsNonZero()
	})
	fails(t, `invalid assertion: <"x"> is not a number`, func(ft *recordingT) {
		ExpectThat(ft, "x").IsZero()
	})
}

func TestSpecialFloats(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, 1.5).IsFinite()
		ExpectThat(ft, 7).IsFinite()
		ExpectThat(ft, math.Inf(1)).IsPositiveInfinity()
		ExpectThat(ft, math.Inf(-1)).IsNegativeInfinity()
		ExpectThat(ft, math.NaN()).IsNaN()
		ExpectThat(ft, float32(math.NaN())).IsNaN()
		ExpectThat(ft, 1.0).IsNotNaN()
	})
	fails(t, "<+Inf> should have been finite.", func(ft *recordingT) {
		ExpectThat(ft, math.Inf(1)).IsFinite()
	})
	fails(t, "Not true that <1> is equal to <+Inf>.", func(ft *recordingT) {
		ExpectThat(ft, 1.0).IsPositiveInfinity()
	})
	fails(t, "Not true that <1> is equal to <NaN>.", func(ft *recordingT) {
		ExpectThat(ft, 1.0).IsNaN()
	})
	fails(t, "<NaN> should not have been <NaN>.", func(ft *recordingT) {
		ExpectThat(ft, math.NaN()).IsNotNaN()
	})
}

func TestIsWithin(t *testing.T) {
	passes(t, func(ft *recordingT) {
		ExpectThat(ft, 1.0).IsWithin(0.1).Of(1.05)
		ExpectThat(ft, 0.1+0.2).IsWithin(1e-9).Of(0.3)
		ExpectThat(ft, 10).IsWithin(0).Of(10)
		ExpectThat(ft, 1.0).IsNotWithin(0.1).Of(2)
	})
	fails(t, "<1> and <1.1> should have been within <0.01> of each other.", func(ft *recordingT) {
		ExpectThat(ft, 1.0).IsWithin(0.01).Of(1.1)
	})
	fails(t, "<1> and <1.05> should not have been within <0.1> of each other.", func(ft *recordingT) {
		ExpectThat(ft, 1.0).IsNotWithin(0.1).Of(1.05)
	})
	fails(t, "ratio(<1>) and <2> should have been within <0.01> of each other.", func(ft *recordingT) {
		ExpectThat(ft, 1.0).Named("ratio").IsWithin(0.01).Of(2)
	})
	fails(t, "<NaN> and <1> should have been within <0.1> of each other.", func(ft *recordingT) {
		ExpectThat(ft, math.NaN()).IsWithin(0.1).Of(1)
	})
}

func TestIsWithin_InvalidTolerance(t *testing.T) {
	tests := []struct {
		tolerance float64
		message   string
	}{
		{math.NaN(), "invalid assertion: tolerance cannot be <NaN>"},
		{-1, "invalid assertion: tolerance cannot be negative"},
		{math.Inf(1), "invalid assertion: tolerance cannot be positive infinity"},
	}
	for _, tt := range tests {
		ft := &recordingT{}
		ExpectThat(ft, 1.0).IsWithin(tt.tolerance).Of(1.0)
		assert.Equal(t, tt.message, ft.message(t))
		assert.Equal(t, 1, ft.failNows)
	}
}

func TestIsWithin_Unresolved(t *testing.T) {
	ft := &recordingT{}
	ExpectThat(ft, 1.0).IsWithin(0.1)
	ft.runCleanups()

	assert.Contains(t, ft.message(t), "* Subject(<1>) created at numeric_test.go:")
}
