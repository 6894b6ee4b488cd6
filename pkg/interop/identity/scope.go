package identity

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
)

// ScopeOption configures a Scope.
type ScopeOption func(*Scope)

// WithLogger routes scope lifecycle and cache events to l.
func WithLogger(l logging.Logger) ScopeOption {
	return func(s *Scope) {
		if l != nil {
			s.log = l
		}
	}
}

type clearer interface {
	clear()
}

// Scope is the lifetime boundary for a set of wrappers, normally one native
// LLVM context. Closing it invalidates every wrapper created through its
// caches.
type Scope struct {
	name     string
	native   *handle.Owned
	log      logging.Logger
	caches   []clearer
	hooks    []func() error
	closing  atomic.Bool
	disposed atomic.Bool
}

// NewScope creates a Scope that owns native. native may be nil for scopes
// that do not own a native context.
func NewScope(name string, native *handle.Owned, opts ...ScopeOption) *Scope {
	s := &Scope{name: name, native: native, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("scope", name)
	s.log.Debug(context.Background(), "scope created", logging.Handle("native", uintptr(native.Raw())))
	return s
}

// Name returns the name given at construction.
func (s *Scope) Name() string { return s.name }

// Logger returns the scope's logger.
func (s *Scope) Logger() logging.Logger { return s.log }

// Disposed reports whether Close has been called.
func (s *Scope) Disposed() bool { return s.disposed.Load() }

// Native returns the native context handle owned by the scope.
func (s *Scope) Native() (handle.Ref, error) {
	if s.Disposed() {
		return handle.Null, interop.Wrap("identity.Scope.Native", 0, interop.ErrScopeDisposed)
	}
	return s.native.Ref()
}

// OnClose registers fn to run when the scope closes. Hooks run in reverse
// registration order, before the caches are cleared and the native context
// is released.
func (s *Scope) OnClose(fn func() error) {
	s.hooks = append(s.hooks, fn)
}

// Close runs the teardown hooks, drops every cached wrapper and releases the
// native context. The scope still counts as live while the hooks run. Hook
// errors are joined and returned; teardown continues past them. Calling Close
// again is a no-op.
func (s *Scope) Close() error {
	if !s.closing.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	for i := len(s.hooks) - 1; i >= 0; i-- {
		if err := s.hooks[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.hooks = nil
	s.disposed.Store(true)

	for _, c := range s.caches {
		c.clear()
	}
	s.caches = nil

	if err := s.native.Close(); err != nil {
		errs = append(errs, err)
	}

	err := errors.Join(errs...)
	if err != nil {
		s.log.Warn(context.Background(), "scope closed with errors", "error", err)
	} else {
		s.log.Debug(context.Background(), "scope closed")
	}
	return err
}

func (s *Scope) register(c clearer) {
	s.caches = append(s.caches, c)
}
