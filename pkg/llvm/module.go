package llvm

import (
	"context"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/lazytext"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
)

// Module is an LLVM module. Modules are owned by the caller and must be
// closed; a Context closes the ones still open when it is closed itself.
type Module struct {
	ctx   *Context
	owned *handle.Owned
}

// NewModule creates an empty module with the given identifier.
func (c *Context) NewModule(name string) (*Module, error) {
	const op = "llvm.Context.NewModule"
	ctx, err := c.scope.Native()
	if err != nil {
		return nil, err
	}
	b, err := c.encode(op, name)
	if err != nil {
		return nil, err
	}
	ref := c.n.ModuleCreate(ctx, b)
	if ref.IsNull() {
		return nil, interop.Wrap(op, 0, interop.ErrInvalidHandle)
	}
	m := &Module{ctx: c, owned: handle.NewOwned(ref, c.n.ModuleDispose)}
	c.st.modules = append(c.st.modules, m.owned)
	c.log.Debug(context.Background(), "module created", "module", name, logging.Handle("ref", uintptr(ref)))
	return m, nil
}

// Context returns the owning context.
func (m *Module) Context() *Context { return m.ctx }

// Ref returns the native module handle.
func (m *Module) Ref() (handle.Ref, error) {
	if m.ctx.Disposed() {
		return handle.Null, interop.Wrap("llvm.Module.Ref", uintptr(m.owned.Raw()), interop.ErrScopeDisposed)
	}
	return m.owned.Ref()
}

// Name returns the module identifier.
func (m *Module) Name() (string, error) {
	ref, err := m.Ref()
	if err != nil {
		return "", err
	}
	return m.ctx.decode(m.ctx.n.ModuleIdentifier(ref))
}

// Print renders the module as textual IR.
func (m *Module) Print() (string, error) {
	ref, err := m.Ref()
	if err != nil {
		return "", err
	}
	n := m.ctx.n
	msg := handle.NewString(n.PrintModule(ref), n.MessageBytes, n.DisposeMessage, lazytext.WithEncoding(m.ctx.enc))
	text, err := msg.Text()
	if err != nil {
		return "", err
	}
	return text.Decode()
}

// String returns the textual IR, or "" if the module can no longer be used.
func (m *Module) String() string {
	s, err := m.Print()
	if err != nil {
		return ""
	}
	return s
}

// AddFunction declares a function of type t in the module.
func (m *Module) AddFunction(name string, t *FunctionType) (*Function, error) {
	const op = "llvm.Module.AddFunction"
	ref, err := m.Ref()
	if err != nil {
		return nil, err
	}
	if err := m.ctx.owns(op, t); err != nil {
		return nil, err
	}
	b, err := m.ctx.encode(op, name)
	if err != nil {
		return nil, err
	}
	return ValueAs[*Function](m.ctx, m.ctx.n.AddFunction(ref, b, t.Ref()))
}

// Close disposes the module. Wrappers for its functions, arguments, blocks
// and instructions are invalidated and report ErrInvalidHandle afterwards.
// Calling Close again is a no-op.
func (m *Module) Close() error {
	if !m.owned.IsValid() {
		return nil
	}
	c := m.ctx
	c.st.forget(&c.st.modules, m.owned)
	if !c.Disposed() {
		c.evictModule(m.owned.Raw())
	}
	return m.owned.Close()
}
