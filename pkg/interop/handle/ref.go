package handle

import (
	"fmt"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
)

// Ref is an opaque native handle. It identifies one native object for as long
// as that object is alive and carries no other meaning.
type Ref uintptr

// Null is the invalid/absent handle.
const Null Ref = 0

// IsNull reports whether r is the invalid sentinel.
func (r Ref) IsNull() bool { return r == Null }

// Check returns an ErrInvalidHandle error for the zero handle so that callers
// never forward it into native code.
func (r Ref) Check(op string) error {
	if r.IsNull() {
		return interop.Wrap(op, 0, interop.ErrInvalidHandle)
	}
	return nil
}

func (r Ref) String() string {
	if r.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%#x", uintptr(r))
}
