//go:build cgo && llvm

package capi

/*
#cgo linux CFLAGS: -I/usr/lib/llvm-18/include
#cgo linux LDFLAGS: -L/usr/lib/llvm-18/lib -lLLVM-18
#cgo darwin CFLAGS: -I/opt/homebrew/opt/llvm/include
#cgo darwin LDFLAGS: -L/opt/homebrew/opt/llvm/lib -lLLVM

#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <llvm-c/Core.h>

extern void llvmInteropDiagnostic(LLVMDiagnosticInfoRef info, void *ctx);

static void interop_set_diagnostic_handler(LLVMContextRef c, uintptr_t tok) {
	LLVMContextSetDiagnosticHandler(c, llvmInteropDiagnostic, (void *)tok);
}

static void interop_clear_diagnostic_handler(LLVMContextRef c) {
	LLVMContextSetDiagnosticHandler(c, NULL, NULL);
}

static LLVMModuleRef interop_value_module(LLVMValueRef v) {
	if (LLVMIsAInstruction(v)) {
		LLVMBasicBlockRef bb = LLVMGetInstructionParent(v);
		if (bb == NULL) {
			return NULL;
		}
		v = LLVMBasicBlockAsValue(bb);
	}
	if (LLVMValueIsBasicBlock(v)) {
		v = LLVMGetBasicBlockParent(LLVMValueAsBasicBlock(v));
		if (v == NULL) {
			return NULL;
		}
	}
	if (LLVMIsAArgument(v)) {
		v = LLVMGetParamParent(v);
	}
	if (LLVMIsAGlobalValue(v)) {
		return LLVMGetGlobalParent(v);
	}
	return NULL;
}
*/
import "C"

import (
	"unsafe"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/token"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

type binding struct{}

var _ native.Native = binding{}

// Default returns the LLVM-C binding.
func Default() (native.Native, error) {
	return binding{}, nil
}

func toRef[T any](p *T) handle.Ref {
	return handle.Ref(uintptr(unsafe.Pointer(p)))
}

func ctxOf(r handle.Ref) C.LLVMContextRef     { return C.LLVMContextRef(unsafe.Pointer(uintptr(r))) }
func valueOf(r handle.Ref) C.LLVMValueRef     { return C.LLVMValueRef(unsafe.Pointer(uintptr(r))) }
func typeOf(r handle.Ref) C.LLVMTypeRef       { return C.LLVMTypeRef(unsafe.Pointer(uintptr(r))) }
func moduleOf(r handle.Ref) C.LLVMModuleRef   { return C.LLVMModuleRef(unsafe.Pointer(uintptr(r))) }
func builderOf(r handle.Ref) C.LLVMBuilderRef { return C.LLVMBuilderRef(unsafe.Pointer(uintptr(r))) }
func messageOf(r handle.Ref) *C.char          { return (*C.char)(unsafe.Pointer(uintptr(r))) }

// cstr returns a pointer to terminated text. Go memory is passed directly;
// it holds no Go pointers and LLVM copies names before returning.
func cstr(b []byte) *C.char {
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(append([]byte(nil), b...), 0)
	}
	return (*C.char)(unsafe.Pointer(&b[0]))
}

func llvmBool(b bool) C.LLVMBool {
	if b {
		return 1
	}
	return 0
}

func goBytes(p *C.char, n C.size_t) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(p), C.int(n))
}

func (binding) Version() (major, minor, patch uint32) {
	var ma, mi, pa C.unsigned
	C.LLVMGetVersion(&ma, &mi, &pa)
	return uint32(ma), uint32(mi), uint32(pa)
}

func (binding) ContextCreate() (handle.Ref, error) {
	c := C.LLVMContextCreate()
	if c == nil {
		return handle.Null, interop.Wrap("LLVMContextCreate", 0, interop.ErrInvalidHandle)
	}
	return toRef(c), nil
}

func (binding) ContextDispose(ctx handle.Ref) { C.LLVMContextDispose(ctxOf(ctx)) }

func (binding) SetDiagnosticHandler(ctx handle.Ref, tok token.Token) {
	C.interop_set_diagnostic_handler(ctxOf(ctx), C.uintptr_t(tok))
}

func (binding) ClearDiagnosticHandler(ctx handle.Ref) {
	C.interop_clear_diagnostic_handler(ctxOf(ctx))
}

func (binding) ValueKind(v handle.Ref) native.ValueKind {
	return native.ValueKind(C.LLVMGetValueKind(valueOf(v)))
}

func (binding) InstructionOpcode(v handle.Ref) native.Opcode {
	return native.Opcode(C.LLVMGetInstructionOpcode(valueOf(v)))
}

func (binding) TypeKind(t handle.Ref) native.TypeKind {
	return native.TypeKind(C.LLVMGetTypeKind(typeOf(t)))
}

func (binding) TypeOf(v handle.Ref) handle.Ref { return toRef(C.LLVMTypeOf(valueOf(v))) }

func (binding) TypeContext(t handle.Ref) handle.Ref { return toRef(C.LLVMGetTypeContext(typeOf(t))) }

func (binding) ValueName(v handle.Ref) []byte {
	var n C.size_t
	p := C.LLVMGetValueName2(valueOf(v), &n)
	return goBytes(p, n)
}

func (binding) SetValueName(v handle.Ref, name []byte) {
	p := cstr(name)
	C.LLVMSetValueName2(valueOf(v), p, C.strlen(p))
}

func (binding) ReplaceAllUsesWith(old, replacement handle.Ref) {
	C.LLVMReplaceAllUsesWith(valueOf(old), valueOf(replacement))
}

func (binding) ValueModule(v handle.Ref) handle.Ref {
	return toRef(C.interop_value_module(valueOf(v)))
}

func (binding) IntType(ctx handle.Ref, bits uint32) handle.Ref {
	return toRef(C.LLVMIntTypeInContext(ctxOf(ctx), C.unsigned(bits)))
}

func (binding) IntTypeWidth(t handle.Ref) uint32 {
	return uint32(C.LLVMGetIntTypeWidth(typeOf(t)))
}

func (binding) FunctionType(ret handle.Ref, params []handle.Ref, variadic bool) handle.Ref {
	var ptr *C.LLVMTypeRef
	if len(params) > 0 {
		arr := (*[1 << 28]C.LLVMTypeRef)(C.malloc(C.size_t(len(params)) * C.size_t(unsafe.Sizeof(C.LLVMTypeRef(nil)))))
		defer C.free(unsafe.Pointer(arr))
		for i, p := range params {
			arr[i] = typeOf(p)
		}
		ptr = &arr[0]
	}
	return toRef(C.LLVMFunctionType(typeOf(ret), ptr, C.unsigned(len(params)), llvmBool(variadic)))
}

func (binding) ConstInt(t handle.Ref, v uint64, signExtend bool) handle.Ref {
	return toRef(C.LLVMConstInt(typeOf(t), C.ulonglong(v), llvmBool(signExtend)))
}

func (binding) ConstIntZExtValue(v handle.Ref) uint64 {
	return uint64(C.LLVMConstIntGetZExtValue(valueOf(v)))
}

func (binding) ConstAdd(a, b handle.Ref) handle.Ref {
	return toRef(C.LLVMConstAdd(valueOf(a), valueOf(b)))
}

func (binding) ModuleCreate(ctx handle.Ref, name []byte) handle.Ref {
	return toRef(C.LLVMModuleCreateWithNameInContext(cstr(name), ctxOf(ctx)))
}

func (binding) ModuleDispose(m handle.Ref) { C.LLVMDisposeModule(moduleOf(m)) }

func (binding) ModuleIdentifier(m handle.Ref) []byte {
	var n C.size_t
	p := C.LLVMGetModuleIdentifier(moduleOf(m), &n)
	return goBytes(p, n)
}

func (binding) PrintModule(m handle.Ref) handle.Ref {
	return toRef(C.LLVMPrintModuleToString(moduleOf(m)))
}

func (binding) MessageBytes(msg handle.Ref) []byte {
	p := messageOf(msg)
	if p == nil {
		return nil
	}
	return goBytes(p, C.strlen(p))
}

func (binding) DisposeMessage(msg handle.Ref) { C.LLVMDisposeMessage(messageOf(msg)) }

func (binding) AddFunction(m handle.Ref, name []byte, fnType handle.Ref) handle.Ref {
	return toRef(C.LLVMAddFunction(moduleOf(m), cstr(name), typeOf(fnType)))
}

func (binding) Param(fn handle.Ref, index uint32) handle.Ref {
	f := valueOf(fn)
	if C.unsigned(index) >= C.LLVMCountParams(f) {
		return handle.Null
	}
	return toRef(C.LLVMGetParam(f, C.unsigned(index)))
}

func (binding) AppendBasicBlock(ctx, fn handle.Ref, name []byte) handle.Ref {
	bb := C.LLVMAppendBasicBlockInContext(ctxOf(ctx), valueOf(fn), cstr(name))
	return toRef(C.LLVMBasicBlockAsValue(bb))
}

func (binding) BuilderCreate(ctx handle.Ref) handle.Ref {
	return toRef(C.LLVMCreateBuilderInContext(ctxOf(ctx)))
}

func (binding) BuilderDispose(b handle.Ref) { C.LLVMDisposeBuilder(builderOf(b)) }

func (binding) PositionAtEnd(b, block handle.Ref) {
	C.LLVMPositionBuilderAtEnd(builderOf(b), C.LLVMValueAsBasicBlock(valueOf(block)))
}

func (binding) BuildAdd(b, lhs, rhs handle.Ref, name []byte) handle.Ref {
	return toRef(C.LLVMBuildAdd(builderOf(b), valueOf(lhs), valueOf(rhs), cstr(name)))
}

func (binding) BuildRet(b, v handle.Ref) handle.Ref {
	return toRef(C.LLVMBuildRet(builderOf(b), valueOf(v)))
}
