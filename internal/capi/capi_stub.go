//go:build !cgo || !llvm

package capi

import (
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

// Default reports interop.ErrNotBuilt: this binary was built without cgo or
// without the llvm tag.
func Default() (native.Native, error) {
	return nil, interop.ErrNotBuilt
}
