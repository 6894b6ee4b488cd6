// Package nativetest provides an in-memory implementation of native.Native.
//
// The fake models the handful of LLVM behaviours the wrappers depend on:
// uniqued types and integer constants, constant folding of additions, value
// and type kinds, native-owned strings and diagnostic callbacks. Handles look
// like heap pointers but are plain counters, and every dispose call is counted
// so tests can assert exactly-once release.
//
// Calls with unknown handles panic, which surfaces wrappers that forward a
// stale or zero handle.
package nativetest
