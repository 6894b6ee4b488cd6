package handle

import (
	"runtime"
	"sync/atomic"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
)

// ReleaseFunc destroys the native resource behind a Ref.
type ReleaseFunc func(Ref)

// Owned exclusively owns one non-reference-counted native resource.
//
// The release function runs at most once. Close is the primary disposal
// path; the finalizer only covers owners that were dropped without Close.
//
// Concurrency Safety:
//   - IsValid, Ref and Close may race with the finalizer; release still runs once.
//   - Calling Close while another goroutine is inside Use is a use-after-free
//     in native code. The owner is responsible for ordering those calls.
type Owned struct {
	ref      Ref
	release  ReleaseFunc
	released atomic.Bool
}

// NewOwned takes ownership of ref. A zero ref produces a handle that is
// immediately invalid and whose Close is a no-op. A nil release produces a
// borrowed handle that is never destroyed by this package.
func NewOwned(ref Ref, release ReleaseFunc) *Owned {
	o := &Owned{ref: ref, release: release}
	if ref.IsNull() {
		o.released.Store(true)
		return o
	}
	if release != nil {
		runtime.SetFinalizer(o, (*Owned).finalize)
	}
	return o
}

// IsValid reports whether the handle is non-zero and not yet released.
func (o *Owned) IsValid() bool {
	return o != nil && !o.ref.IsNull() && !o.released.Load()
}

// Ref returns the native handle, or an ErrInvalidHandle error when the handle
// is zero or already released.
func (o *Owned) Ref() (Ref, error) {
	if o == nil || o.ref.IsNull() {
		return Null, interop.Wrap("handle.Ref", 0, interop.ErrInvalidHandle)
	}
	if o.released.Load() {
		return Null, interop.Wrapf("handle.Ref", uintptr(o.ref), interop.ErrInvalidHandle, "released")
	}
	return o.ref, nil
}

// Raw returns the stored value without validation. It is meant for identity
// comparisons and logging only.
func (o *Owned) Raw() Ref {
	if o == nil {
		return Null
	}
	return o.ref
}

// Same reports whether both owners wrap the same native value, regardless of
// their release state.
func (o *Owned) Same(other *Owned) bool {
	return o != nil && other != nil && o.ref == other.ref
}

// Use calls fn with the live handle and keeps o reachable until fn returns, so
// the finalizer cannot release the resource in the middle of a native call.
func (o *Owned) Use(fn func(Ref) error) error {
	ref, err := o.Ref()
	if err != nil {
		return err
	}
	err = fn(ref)
	runtime.KeepAlive(o)
	return err
}

// Close releases the native resource. Calling Close again is a no-op.
func (o *Owned) Close() error {
	if o == nil || !o.released.CompareAndSwap(false, true) {
		return nil
	}
	runtime.SetFinalizer(o, nil)
	if o.release != nil {
		o.release(o.ref)
	}
	return nil
}

func (o *Owned) finalize() {
	if o.released.CompareAndSwap(false, true) && o.release != nil {
		o.release(o.ref)
	}
}
