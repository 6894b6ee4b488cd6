package token

import (
	"sync/atomic"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
)

// Shared owns one durable token for a Go object and hands additional
// references to native code.
//
// The owner's own reference is dropped by Close. Every AddRef must be matched
// by a Release of the returned token, normally from a native teardown
// callback. The object stays reachable until all of them are gone.
type Shared struct {
	tok    Token
	closed atomic.Bool
}

// NewShared mints a token for v that is owned by the returned Shared.
func NewShared(v any) *Shared {
	return &Shared{tok: Mint(v)}
}

// Token returns the underlying token without adding a reference.
func (s *Shared) Token() Token { return s.tok }

// AddRef adds a reference and returns the token to pass as a native context.
func (s *Shared) AddRef() (Token, error) {
	if s.closed.Load() {
		return 0, interop.Wrap("token.Shared.AddRef", uintptr(s.tok), interop.ErrUnresolvableToken)
	}
	return AddRef(s.tok)
}

// Close drops the owner's reference. Calling Close again is a no-op.
func (s *Shared) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return Release(s.tok)
}
