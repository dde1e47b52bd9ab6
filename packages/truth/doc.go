// Package truth provides fluent test assertions on top of the standard
// testing package.
//
// Instead of writing
//
//	if got != want {
//		t.Fatalf("got %v, want %v", got, want)
//	}
//
// one writes
//
//	truth.AssertThat(t, got).IsEqualTo(want)
//	truth.AssertThat(t, items).ContainsAllOf(1, 3).InOrder()
//	truth.ExpectThat(t, err).HasMessageThat().Contains("not found")
//
// AssertThat stops the test on the first failed predicate; ExpectThat
// records the failure and lets the test continue.
//
// Supported predicate families:
//   - Equality and identity (IsEqualTo, IsSameAs, IsNil, IsInstanceOf)
//   - Truthiness (IsTrue, IsTruthy, IsFalsy)
//   - Ordering (IsAtLeast, IsLessThan, IsOrdered)
//   - Containment on slices, arrays, maps, strings and iter.Seq
//     (Contains, ContainsAllOf, ContainsExactly, ContainsItem)
//   - Numbers and tolerance (IsZero, IsNaN, IsWithin(0.1).Of(x))
//   - Strings and regular expressions (StartsWith, Matches, ContainsMatch)
//   - Errors and panics (HasMessage, ErrorIs, IsRaised, Panics)
//   - testify mocks (WasCalled().Once().With(args...))
//   - JSON documents (JSONPath, MatchesJSONSchema) and snapshots
//
// A subject that never has a predicate called on it is reported when the
// test finishes, since AssertThat(t, x) on its own asserts nothing.
package truth
