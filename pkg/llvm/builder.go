package llvm

import (
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
)

// Builder emits instructions at a position inside a basic block.
type Builder struct {
	ctx   *Context
	owned *handle.Owned
}

// NewBuilder creates an instruction builder. Close it when done.
func (c *Context) NewBuilder() (*Builder, error) {
	ctx, err := c.scope.Native()
	if err != nil {
		return nil, err
	}
	ref := c.n.BuilderCreate(ctx)
	if ref.IsNull() {
		return nil, interop.Wrap("llvm.Context.NewBuilder", 0, interop.ErrInvalidHandle)
	}
	b := &Builder{ctx: c, owned: handle.NewOwned(ref, c.n.BuilderDispose)}
	c.st.builders = append(c.st.builders, b.owned)
	return b, nil
}

func (b *Builder) ref(op string) (handle.Ref, error) {
	if b.ctx.Disposed() {
		return handle.Null, interop.Wrap(op, uintptr(b.owned.Raw()), interop.ErrScopeDisposed)
	}
	return b.owned.Ref()
}

// PositionAtEnd moves the insertion point to the end of block.
func (b *Builder) PositionAtEnd(block *BasicBlock) error {
	const op = "llvm.Builder.PositionAtEnd"
	ref, err := b.ref(op)
	if err != nil {
		return err
	}
	if err := b.ctx.owns(op, block); err != nil {
		return err
	}
	b.ctx.n.PositionAtEnd(ref, block.Ref())
	return nil
}

// Add emits lhs+rhs. Constant operands are folded, so the result is not
// necessarily an instruction.
func (b *Builder) Add(lhs, rhs Value, name string) (Value, error) {
	const op = "llvm.Builder.Add"
	ref, err := b.ref(op)
	if err != nil {
		return nil, err
	}
	if err := b.ctx.owns(op, lhs); err != nil {
		return nil, err
	}
	if err := b.ctx.owns(op, rhs); err != nil {
		return nil, err
	}
	nb, err := b.ctx.encode(op, name)
	if err != nil {
		return nil, err
	}
	return b.ctx.Value(b.ctx.n.BuildAdd(ref, lhs.Ref(), rhs.Ref(), nb))
}

// Ret emits a return of v.
func (b *Builder) Ret(v Value) (*ReturnInst, error) {
	const op = "llvm.Builder.Ret"
	ref, err := b.ref(op)
	if err != nil {
		return nil, err
	}
	if err := b.ctx.owns(op, v); err != nil {
		return nil, err
	}
	return ValueAs[*ReturnInst](b.ctx, b.ctx.n.BuildRet(ref, v.Ref()))
}

// Close disposes the builder. Calling Close again is a no-op.
func (b *Builder) Close() error {
	if !b.owned.IsValid() {
		return nil
	}
	b.ctx.st.forget(&b.ctx.st.builders, b.owned)
	return b.owned.Close()
}
