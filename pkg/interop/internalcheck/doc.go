// Package internalcheck holds policy tests for the module's source tree.
//
// The tests enforce rules that the compiler cannot: cgo stays confined to
// internal/capi, and results of token lookups are never thrown away. The
// package has no API and should not be imported.
package internalcheck
