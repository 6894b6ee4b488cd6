package llvm

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"slices"

	"golang.org/x/text/encoding"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/identity"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/lazytext"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/token"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

// Context owns one native LLVM context and every wrapper created in it.
//
// A Context dropped without Close is torn down by the garbage collector:
// open builders and modules are disposed, the diagnostic handler is
// unregistered and the native context is destroyed. Close is still the
// expected path.
type Context struct {
	n     native.Native
	log   logging.Logger
	enc   encoding.Encoding
	scope *identity.Scope

	values *identity.Cache[Value]
	types  *identity.Cache[Type]

	st      *contextState
	cleanup runtime.Cleanup
}

// contextState is the part of a Context that native callbacks and the
// collector cleanup reach. It must never point back at the Context.
type contextState struct {
	name   string
	n      native.Native
	log    logging.Logger
	enc    encoding.Encoding
	native *handle.Owned

	diagTok token.Token
	diags   []Diagnostic

	modules  []*handle.Owned
	builders []*handle.Owned
}

// NewContext creates a native context and registers a diagnostic handler
// for it.
func NewContext(cfg Config) (*Context, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	ref, err := cfg.Native.ContextCreate()
	if err != nil {
		return nil, interop.Wrap("llvm.NewContext", 0, err)
	}
	if ref.IsNull() {
		return nil, interop.Wrap("llvm.NewContext", 0, interop.ErrInvalidHandle)
	}

	log := cfg.Logger.With("context", cfg.Name)
	st := &contextState{
		name:   cfg.Name,
		n:      cfg.Native,
		log:    log,
		enc:    cfg.Encoding,
		native: handle.NewOwned(ref, cfg.Native.ContextDispose),
	}
	c := &Context{n: cfg.Native, log: log, enc: cfg.Encoding, st: st}
	c.scope = identity.NewScope(cfg.Name, st.native, identity.WithLogger(cfg.Logger))
	c.values = identity.NewCache[Value](c.scope, "values", valueResolver{ctx: c})
	c.types = identity.NewCache[Type](c.scope, "types", typeResolver{ctx: c})

	st.diagTok = token.Mint(diagnosticSink{st: st})
	c.n.SetDiagnosticHandler(ref, st.diagTok)
	c.scope.OnClose(st.release)
	c.cleanup = runtime.AddCleanup(c, (*contextState).collect, st)

	c.log.Debug(context.Background(), "context created", logging.Handle("ref", uintptr(ref)))
	return c, nil
}

// Close disposes every open module and builder, unregisters the diagnostic
// handler and destroys the native context. Calling Close again is a no-op.
func (c *Context) Close() error {
	c.cleanup.Stop()
	return c.scope.Close()
}

// Disposed reports whether Close has been called.
func (c *Context) Disposed() bool { return c.scope.Disposed() }

// Ref returns the native context handle.
func (c *Context) Ref() (handle.Ref, error) { return c.scope.Native() }

// Native returns the ABI implementation the context was created with.
func (c *Context) Native() native.Native { return c.n }

// Value returns the unique wrapper for a value handle.
func (c *Context) Value(ref handle.Ref) (Value, error) {
	return c.values.GetOrCreate(ref)
}

// Type returns the unique wrapper for a type handle.
func (c *Context) Type(ref handle.Ref) (Type, error) {
	return c.types.GetOrCreate(ref)
}

// ValueAs returns the wrapper for ref as a T. The kind LLVM reports for ref
// decides the wrapper; a mismatch wraps interop.ErrUnexpectedKind and the
// returned *interop.Error carries the actual wrapper in Value.
func ValueAs[T Value](c *Context, ref handle.Ref) (T, error) {
	return identity.As[T](c.values, ref)
}

// TypeAs is ValueAs for types.
func TypeAs[T Type](c *Context, ref handle.Ref) (T, error) {
	return identity.As[T](c.types, ref)
}

// Int32Type returns i32.
func (c *Context) Int32Type() (*IntegerType, error) {
	return c.IntType(32)
}

// IntType returns the integer type with the given bit width.
func (c *Context) IntType(bits uint32) (*IntegerType, error) {
	ctx, err := c.scope.Native()
	if err != nil {
		return nil, err
	}
	return TypeAs[*IntegerType](c, c.n.IntType(ctx, bits))
}

// FunctionType returns the signature ret(params...).
func (c *Context) FunctionType(ret Type, params []Type, variadic bool) (*FunctionType, error) {
	const op = "llvm.Context.FunctionType"
	if err := c.owns(op, ret); err != nil {
		return nil, err
	}
	refs := make([]handle.Ref, len(params))
	for i, p := range params {
		if err := c.owns(op, p); err != nil {
			return nil, err
		}
		refs[i] = p.Ref()
	}
	return TypeAs[*FunctionType](c, c.n.FunctionType(ret.Ref(), refs, variadic))
}

// ConstInt returns the integer constant v of type t. With signExtend the
// value is treated as signed when t is wider than 64 bits.
func (c *Context) ConstInt(t *IntegerType, v uint64, signExtend bool) (*ConstantInt, error) {
	if err := c.owns("llvm.Context.ConstInt", t); err != nil {
		return nil, err
	}
	return ValueAs[*ConstantInt](c, c.n.ConstInt(t.Ref(), v, signExtend))
}

// ConstAdd returns the constant a+b. LLVM folds the addition when it can, so
// the result is a *ConstantInt for integer operands and a *ConstantExpr
// otherwise.
func (c *Context) ConstAdd(a, b ConstantValue) (ConstantValue, error) {
	const op = "llvm.Context.ConstAdd"
	if err := c.owns(op, a); err != nil {
		return nil, err
	}
	if err := c.owns(op, b); err != nil {
		return nil, err
	}
	return ValueAs[ConstantValue](c, c.n.ConstAdd(a.Ref(), b.Ref()))
}

// ReplaceAllUsesWith rewrites every use of old to use replacement. The
// wrapper for old resolves to the replacement's wrapper afterwards.
func (c *Context) ReplaceAllUsesWith(old, replacement Value) error {
	const op = "llvm.Context.ReplaceAllUsesWith"
	if err := c.owns(op, old); err != nil {
		return err
	}
	if err := c.owns(op, replacement); err != nil {
		return err
	}
	c.n.ReplaceAllUsesWith(old.Ref(), replacement.Ref())
	_, err := c.values.Replace(old.Ref(), replacement.Ref())
	return err
}

// owns checks that w is a live wrapper from this context.
func (c *Context) owns(op string, w interface {
	Ref() handle.Ref
	Context() *Context
	Check(op string) (handle.Ref, error)
}) error {
	if c.Disposed() {
		return interop.Wrap(op, 0, interop.ErrScopeDisposed)
	}
	if isNil(w) || w.Ref().IsNull() {
		return interop.Wrap(op, 0, interop.ErrInvalidHandle)
	}
	if w.Context() != c {
		return interop.Wrapf(op, uintptr(w.Ref()), interop.ErrInvalidHandle, "wrapper belongs to another context")
	}
	_, err := w.Check(op)
	return err
}

func (c *Context) encode(op, s string) ([]byte, error) {
	b, err := lazytext.FromString(s, lazytext.WithEncoding(c.enc)).Bytes(true)
	if err != nil {
		return nil, interop.Wrap(op, 0, err)
	}
	return b, nil
}

func (c *Context) decode(b []byte) (string, error) {
	return lazytext.FromBytes(b, lazytext.WithEncoding(c.enc)).Decode()
}

// evictModule invalidates and drops the wrappers of every value LLVM
// destroys together with module.
func (c *Context) evictModule(module handle.Ref) {
	dropped := c.values.Evict(func(_ handle.Ref, v Value) bool {
		return v.Kind().InModule() && c.n.ValueModule(v.Ref()) == module
	})
	for _, v := range dropped {
		v.value().Invalidate()
	}
}

// isNil reports whether w is nil or a typed nil pointer.
func isNil(w any) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// release disposes builders and modules still open and unregisters the
// diagnostic handler. The native context itself is left to the caller.
func (s *contextState) release() error {
	var errs []error
	for _, b := range s.builders {
		errs = append(errs, b.Close())
	}
	for _, m := range s.modules {
		errs = append(errs, m.Close())
	}
	s.builders, s.modules = nil, nil

	if ref, err := s.native.Ref(); err != nil {
		errs = append(errs, err)
	} else {
		s.n.ClearDiagnosticHandler(ref)
	}
	errs = append(errs, token.Release(s.diagTok))

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("llvm: closing context %s: %w", s.name, err)
	}
	return nil
}

// collect runs on the cleanup goroutine once the Context is unreachable.
func (s *contextState) collect() {
	err := errors.Join(s.release(), s.native.Close())
	if err != nil {
		s.log.Error(context.Background(), "context collected without Close", "error", err)
		return
	}
	s.log.Warn(context.Background(), "context collected without Close")
}

func (s *contextState) forget(list *[]*handle.Owned, o *handle.Owned) {
	*list = slices.DeleteFunc(*list, func(x *handle.Owned) bool { return x == o })
}
