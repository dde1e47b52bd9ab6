// Package convert rewrites testify assertions in Go test files into the
// fluent truth API.
//
// A call such as
//
//	assert.Equal(t, want, got)
//	require.Len(t, items, 3)
//
// becomes
//
//	truth.ExpectThat(t, got).IsEqualTo(want)
//	truth.AssertThat(t, items).HasSize(3)
//
// The converter works on the source text of each call: arguments are
// copied verbatim and only the call around them changes, so comments and
// layout inside arguments survive. Arguments that look reversed (a
// literal or a "want" variable in the actual position) are swapped.
// Trailing message arguments have no equivalent and are dropped with a
// warning. The truth import is added, testify imports that are no longer
// used are removed, and the result is gofmt-formatted.
package convert
