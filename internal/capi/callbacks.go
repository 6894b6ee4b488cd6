//go:build cgo && llvm

package capi

/*
#include <string.h>
#include <llvm-c/Core.h>
*/
import "C"

import (
	"unsafe"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/token"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

// llvmInteropDiagnostic is installed as the LLVMDiagnosticHandler of every
// context. ctx carries the token minted for the context's sink.
//
//export llvmInteropDiagnostic
func llvmInteropDiagnostic(info C.LLVMDiagnosticInfoRef, ctx unsafe.Pointer) {
	tok := token.Token(uintptr(ctx))
	sev := native.Severity(C.LLVMGetDiagInfoSeverity(info))

	desc := C.LLVMGetDiagInfoDescription(info)
	defer C.LLVMDisposeMessage(desc)

	var msg []byte
	if desc != nil {
		msg = C.GoBytes(unsafe.Pointer(desc), C.int(C.strlen(desc)))
	}
	native.DispatchDiagnostic(tok, sev, msg)
}
