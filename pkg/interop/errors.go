package interop

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandle reports that the zero handle was presented or received
	// where a live native resource was required.
	ErrInvalidHandle = errors.New("interop: invalid native handle")

	// ErrScopeDisposed reports use of a scope, or of a wrapper created under
	// it, after the scope was closed.
	ErrScopeDisposed = errors.New("interop: scope disposed")

	// ErrDiscriminator reports that the native "what kind is this" query
	// failed, so no wrapper could be materialized.
	ErrDiscriminator = errors.New("interop: native kind query failed")

	// ErrUnexpectedKind reports that a handle materialized to a wrapper type
	// other than the one the caller asked for (for example a folded constant).
	ErrUnexpectedKind = errors.New("interop: unexpected wrapper kind")

	// ErrUnresolvableToken reports a context token that does not resolve to a
	// live object of the expected type.
	ErrUnresolvableToken = errors.New("interop: context token does not resolve")

	// ErrDoubleRelease reports a release of a resource or token that is
	// already released, or was never minted.
	ErrDoubleRelease = errors.New("interop: resource already released")

	// ErrEncoding reports text that cannot be represented in the selected
	// encoding.
	ErrEncoding = errors.New("interop: text encoding failed")

	// ErrEmptyText reports an empty string where a non-empty one is required.
	ErrEmptyText = errors.New("interop: text is empty")

	// ErrNotBuilt reports that the native LLVM bindings were not linked into
	// the current binary.
	ErrNotBuilt = errors.New("interop: native bindings not built")
)

// Error records the operation and native handle involved in a failure.
type Error struct {
	Op    string  // Operation that failed
	Ref   uintptr // Native handle involved, 0 when not applicable
	Value any     // Wrapper actually produced, set for ErrUnexpectedKind
	Err   error   // Underlying error
}

func (e *Error) Error() string {
	if e.Ref != 0 {
		return fmt.Sprintf("%s: handle %#x: %v", e.Op, e.Ref, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches the operation and handle to err. A nil err stays nil.
func Wrap(op string, ref uintptr, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Ref: ref, Err: err}
}

// Wrapf wraps the sentinel err with a formatted detail message.
func Wrapf(op string, ref uintptr, err error, format string, args ...any) error {
	return &Error{
		Op:  op,
		Ref: ref,
		Err: fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)),
	}
}
