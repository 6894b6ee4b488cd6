// Package identity maps native handles to unique Go wrapper objects.
//
// LLVM hands out the same LLVMValueRef every time a value is queried, and
// callers expect the Go wrappers they get back to compare equal as well. A
// Scope models the lifetime of one native context; each Cache inside it maps
// one category of handle (values, types, modules) to the single wrapper that
// represents it:
//
//	scope := identity.NewScope("ctx", handle.NewOwned(ctx, native.ContextDispose))
//	defer scope.Close()
//
//	values := identity.NewCache(scope, "values", valueResolver{})
//	v1, _ := values.GetOrCreate(ref)
//	v2, _ := values.GetOrCreate(ref) // same wrapper as v1
//
// On a miss the cache asks its Resolver which concrete kind the handle has
// and materializes the matching wrapper. The kind is queried from native code
// on every materialization, never assumed from the operation that produced the
// handle: LLVM folds constant expressions, so asking for an add of two
// constants may yield a ConstantInt rather than an instruction.
//
// Scopes and caches are not synchronized. A Scope belongs to one logical
// goroutine at a time, just like the native context behind it.
package identity
