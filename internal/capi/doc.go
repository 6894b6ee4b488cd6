// Package capi binds native.Native to the LLVM-C library through cgo.
//
// This is the only package in the module that imports "C". The binding is
// compiled only with cgo enabled and the llvm build tag:
//
//	go build -tags llvm ./...
//
// The include and library paths default to the Debian/Ubuntu llvm-18 layout
// on Linux and Homebrew on macOS; override them with CGO_CFLAGS and
// CGO_LDFLAGS (for example from llvm-config --cflags --ldflags --libs) for
// other installations. Without the tag Default reports interop.ErrNotBuilt.
//
// Handles are raw LLVM pointers carried as handle.Ref. They point to C
// memory, so converting them to and from uintptr never hides a Go pointer
// from the garbage collector.
package capi
