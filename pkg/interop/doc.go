// Package interop is the identity and marshalling substrate shared by the
// LLVM bindings in this module.
//
// The subpackages each cover one concern of crossing the C ABI:
//
//   - handle: owning wrappers for native resources that are released exactly once
//   - lazytext: text that is encoded or decoded lazily, once, in whichever direction is needed
//   - token: opaque context tokens that let native callbacks refer back to Go objects
//   - identity: per-scope caches that map a native handle to exactly one Go wrapper
//   - logging: the logging facade used by all of the above
//
// # Errors
//
// Failures are reported with the sentinels declared in this package, usually
// wrapped in an [*Error] that records the operation and the native handle
// involved. Use [errors.Is] to test for a category:
//
//	v, err := cache.GetOrCreate(ref)
//	if errors.Is(err, interop.ErrScopeDisposed) {
//	    // the owning context was closed
//	}
//
// Nothing in this module retries a failed native call.
package interop
