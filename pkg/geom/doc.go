// Package geom is the numeric core of cadkit: tolerance-aware comparison,
// 3D vectors, 3x3 matrices, lines/segments and object coordinate systems.
//
// Every type here is an immutable value. Operations never modify their
// receiver; they return new values. No comparison in this package uses an
// implicit tolerance: callers pass tol explicitly, and must pick a smaller one
// (see NormalizedLengthTolerance) when they compare normalized vectors.
package geom
