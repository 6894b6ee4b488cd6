// Package handle wraps native LLVM resources.
//
// A Ref is the raw, pointer-sized value the C ABI hands out (an LLVMxxxRef).
// It is never dereferenced in Go; it is only passed back into native entry
// points. The zero Ref is the single invalid sentinel.
//
// An Owned couples a Ref with the native function that destroys it and
// guarantees that function runs exactly once, either through Close or,
// as a safety net only, through a finalizer:
//
//	mod := handle.NewOwned(ref, native.ModuleDispose)
//	defer mod.Close()
//
//	err := mod.Use(func(r handle.Ref) error {
//	    return native.Verify(r)
//	})
//
// String does the same for native-owned, terminator-delimited strings such as
// the result of LLVMPrintModuleToString.
package handle
