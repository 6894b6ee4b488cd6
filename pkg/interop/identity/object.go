package identity

import (
	"sync/atomic"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
)

// Object is the common base embedded by every wrapper: one handle plus the
// scope it belongs to.
type Object struct {
	ref   handle.Ref
	scope *Scope
	dead  *atomic.Bool
}

// NewObject binds ref to s.
func NewObject(s *Scope, ref handle.Ref) Object {
	return Object{ref: ref, scope: s, dead: new(atomic.Bool)}
}

// Invalidate marks the wrapper unusable while its scope stays open. It is
// for native objects destroyed together with a parent, such as the contents
// of a disposed module. Copies of the Object share the flag.
func (o Object) Invalidate() {
	if o.dead != nil {
		o.dead.Store(true)
	}
}

// Ref returns the native handle without checking the scope.
func (o Object) Ref() handle.Ref { return o.ref }

// Scope returns the scope the wrapper belongs to.
func (o Object) Scope() *Scope { return o.scope }

// Disposed reports whether the owning scope has been closed or the wrapper
// was invalidated.
func (o Object) Disposed() bool {
	return o.scope == nil || o.invalidated() || o.scope.Disposed()
}

func (o Object) invalidated() bool {
	return o.dead != nil && o.dead.Load()
}

// Check returns the handle if the wrapper may still be used by op.
func (o Object) Check(op string) (handle.Ref, error) {
	if o.invalidated() {
		return handle.Null, interop.Wrapf(op, uintptr(o.ref), interop.ErrInvalidHandle, "native object destroyed")
	}
	if o.Disposed() {
		return handle.Null, interop.Wrap(op, uintptr(o.ref), interop.ErrScopeDisposed)
	}
	if err := o.ref.Check(op); err != nil {
		return handle.Null, err
	}
	return o.ref, nil
}
