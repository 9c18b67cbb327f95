// Package envelope decides whether a set of sensing devices covers a
// required operating envelope in (distance × ambient-light) space.
//
// A Device natively covers a closed distance interval, but only while the
// ambient light level falls within its own closed light interval. A
// Requirement is the rectangle (distance interval × light interval) that
// the device set must cover completely.
//
// The decision works in two layers:
//   - CoversDistanceRange checks one axis: whether the union of a set of
//     distance intervals contains a target interval with no gap.
//   - CoversRequirement partitions the light axis at the values where the
//     set of light-active devices can change, and checks distance coverage
//     on every resulting segment.
//
// Evaluate returns the same verdict plus per-segment diagnostics.
//
// All functions are pure: inputs are never mutated or retained, and
// concurrent calls need no synchronization. Comparisons are exact float64
// comparisons; no epsilon is applied, so callers supplying near-equal
// boundary values accept ordinary floating-point semantics.
package envelope
