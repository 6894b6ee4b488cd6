// Package token lets native callbacks refer back to Go objects.
//
// Go pointers may not be stored in C memory, so a callback registration
// cannot hand its Go receiver to native code directly. Instead the receiver is
// minted into a Token, a non-zero integer that native code stores in its
// "context" parameter and passes back on every callback:
//
//	tok := token.Mint(handler)
//	native.SetDiagnosticHandler(ctx, tok)
//
//	// inside the exported trampoline
//	h, ok := token.Resolve[DiagnosticSink](tok)
//	if !ok {
//	    return // never panic into C
//	}
//
//	// when native code no longer holds the token
//	_ = token.Release(tok)
//
// While a token is live the registry keeps its target reachable, so the
// garbage collector cannot reclaim an object native code still refers to.
//
// # Reference counting
//
// A token carries a reference count. Mint starts it at one, AddRef hands out
// another reference to the same durable entry and Release drops one; the
// entry disappears when the count reaches zero. Shared packages this for the
// common case of an owner object that gives native code additional
// references to itself.
//
// The registry is built on sync.Map and atomic counters and may be used from
// any goroutine or from the OS thread a native callback runs on.
//
// # Misuse
//
// Releasing a dead token returns interop.ErrDoubleRelease and logs a warning.
// Builds with the interopdebug tag panic instead, which surfaces the bug at
// its source during development.
package token
