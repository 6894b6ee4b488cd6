// Package llvm wraps LLVM contexts, modules, types and values.
//
// A Context owns one native LLVMContextRef together with the identity caches
// for the values and types created in it. Every handle coming back from
// native code is turned into exactly one Go wrapper per context, and the
// wrapper's concrete type is decided by asking LLVM what the handle actually
// is:
//
//	ctx, err := llvm.NewContext(llvm.Config{})
//	if err != nil {
//	    return err
//	}
//	defer ctx.Close()
//
//	i32, _ := ctx.Int32Type()
//	one, _ := ctx.ConstInt(i32, 1, false)
//	sum, _ := ctx.ConstAdd(one, one) // *ConstantInt, folded by LLVM
//
// Wrappers are only valid while their Context is open. After Close every
// operation returns interop.ErrScopeDisposed.
//
// A Context is not safe for concurrent use. Use one Context per goroutine.
package llvm
