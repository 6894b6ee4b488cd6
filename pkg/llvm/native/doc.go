// Package native describes the slice of the LLVM-C ABI that the llvm package
// consumes.
//
// Native is implemented by the cgo binding in internal/capi and by the
// in-memory fake in pkg/llvm/nativetest. Every handle crosses this boundary as
// a handle.Ref and every piece of text as encoded, terminator-delimited bytes;
// conversion to Go strings happens one layer up so that it runs at most once.
//
// The enumerations mirror LLVMValueKind, LLVMOpcode, LLVMTypeKind and
// LLVMDiagnosticSeverity value for value.
package native
