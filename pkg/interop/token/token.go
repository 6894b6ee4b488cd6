package token

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
)

// Token is an opaque, pointer-sized reference to a registered Go object.
// The zero Token never resolves.
type Token uintptr

type entry struct {
	value any
	refs  atomic.Int64
}

var (
	entries sync.Map // map[Token]*entry
	seq     atomic.Uintptr
	live    atomic.Int64

	logger atomic.Pointer[logging.Logger]
)

// SetLogger installs the logger used to report token misuse. The default
// discards everything.
func SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	logger.Store(&l)
}

func log() logging.Logger {
	if l := logger.Load(); l != nil {
		return *l
	}
	return logging.Nop()
}

// Mint registers v and returns a token with a reference count of one. The
// token keeps v reachable until the count drops to zero.
func Mint(v any) Token {
	t := Token(seq.Add(1))
	e := &entry{value: v}
	e.refs.Store(1)
	entries.Store(t, e)
	live.Add(1)
	return t
}

// Resolve returns the object registered under t. It reports false for the
// zero token, for tokens that were never minted or are fully released, and
// when the target is not a T.
func Resolve[T any](t Token) (T, bool) {
	var zero T
	if t == 0 {
		return zero, false
	}
	v, ok := entries.Load(t)
	if !ok {
		return zero, false
	}
	e := v.(*entry)
	if e.refs.Load() <= 0 {
		return zero, false
	}
	target, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return target, true
}

// MustResolve is Resolve for callers outside a native callback, where a
// failed lookup is an ordinary error.
func MustResolve[T any](t Token) (T, error) {
	v, ok := Resolve[T](t)
	if !ok {
		return v, interop.Wrap("token.Resolve", uintptr(t), interop.ErrUnresolvableToken)
	}
	return v, nil
}

// AddRef adds a reference to a live token and returns it, ready to be handed
// to native code again. It fails for the zero token and for dead tokens.
func AddRef(t Token) (Token, error) {
	e, ok := load(t)
	if !ok {
		return 0, interop.Wrap("token.AddRef", uintptr(t), interop.ErrUnresolvableToken)
	}
	for {
		n := e.refs.Load()
		if n <= 0 {
			return 0, interop.Wrap("token.AddRef", uintptr(t), interop.ErrUnresolvableToken)
		}
		if e.refs.CompareAndSwap(n, n+1) {
			return t, nil
		}
	}
}

// Release drops one reference. When the count reaches zero the entry is
// removed and its target becomes collectable. Releasing the zero token or a
// dead token is a caller bug: it returns ErrDoubleRelease, logs a warning and
// asserts in interopdebug builds.
func Release(t Token) error {
	e, ok := load(t)
	if !ok {
		return misuse(t)
	}
	for {
		n := e.refs.Load()
		if n <= 0 {
			return misuse(t)
		}
		if e.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				entries.CompareAndDelete(t, e)
				live.Add(-1)
			}
			return nil
		}
	}
}

// Refs returns the current reference count of t, zero when t is dead.
func Refs(t Token) int64 {
	e, ok := load(t)
	if !ok {
		return 0
	}
	if n := e.refs.Load(); n > 0 {
		return n
	}
	return 0
}

// Live reports how many tokens are currently registered.
func Live() int {
	return int(live.Load())
}

func load(t Token) (*entry, bool) {
	if t == 0 {
		return nil, false
	}
	v, ok := entries.Load(t)
	if !ok {
		return nil, false
	}
	return v.(*entry), true
}

func misuse(t Token) error {
	log().Warn(context.Background(), "release of dead context token", logging.Handle("token", uintptr(t)))
	assertf(false, "token: release of dead context token %d", uintptr(t))
	return interop.Wrap("token.Release", uintptr(t), interop.ErrDoubleRelease)
}
