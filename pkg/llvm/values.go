package llvm

import (
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/identity"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

// Value is implemented by every value wrapper.
type Value interface {
	Ref() handle.Ref
	Kind() ValueKind
	Context() *Context
	Disposed() bool
	// Check returns the handle, or an error once the wrapper can no longer
	// be used.
	Check(op string) (handle.Ref, error)
	Name() (string, error)
	SetName(name string) error
	Type() (Type, error)

	value() *valueBase
}

// ConstantValue is implemented by every constant wrapper, including
// functions and globals.
type ConstantValue interface {
	Value
	constant()
}

// InstructionValue is implemented by every instruction wrapper.
type InstructionValue interface {
	Value
	Opcode() native.Opcode
}

type valueBase struct {
	identity.Object
	ctx  *Context
	kind ValueKind
}

func (v *valueBase) value() *valueBase { return v }

// Kind returns the kind LLVM reported when the wrapper was created.
func (v *valueBase) Kind() ValueKind { return v.kind }

// Context returns the owning context.
func (v *valueBase) Context() *Context { return v.ctx }

// Name returns the value's name, or "" for unnamed values.
func (v *valueBase) Name() (string, error) {
	ref, err := v.Check("llvm.Value.Name")
	if err != nil {
		return "", err
	}
	return v.ctx.decode(v.ctx.n.ValueName(ref))
}

// SetName renames the value. LLVM may uniquify the name.
func (v *valueBase) SetName(name string) error {
	const op = "llvm.Value.SetName"
	ref, err := v.Check(op)
	if err != nil {
		return err
	}
	b, err := v.ctx.encode(op, name)
	if err != nil {
		return err
	}
	v.ctx.n.SetValueName(ref, b)
	return nil
}

// Type returns the value's type.
func (v *valueBase) Type() (Type, error) {
	ref, err := v.Check("llvm.Value.Type")
	if err != nil {
		return nil, err
	}
	return v.ctx.types.GetOrCreate(v.ctx.n.TypeOf(ref))
}

// ValueRef is the wrapper for values no more specific wrapper exists for.
type ValueRef struct{ valueBase }

// Constant is the wrapper for constants without a more specific wrapper.
type Constant struct{ valueBase }

func (*Constant) constant() {}

// Instruction is the wrapper for instructions without a more specific wrapper.
type Instruction struct{ valueBase }

// Opcode returns the instruction's opcode.
func (i *Instruction) Opcode() native.Opcode {
	op, _ := i.kind.Opcode()
	return op
}

type (
	Argument   struct{ valueBase }
	BasicBlock struct{ valueBase }
	InlineAsm  struct{ valueBase }

	MetadataAsValue struct{ valueBase }
)

type (
	Function       struct{ Constant }
	GlobalAlias    struct{ Constant }
	GlobalIFunc    struct{ Constant }
	GlobalVariable struct{ Constant }

	UndefValue            struct{ Constant }
	PoisonValue           struct{ Constant }
	BlockAddress          struct{ Constant }
	ConstantExpr          struct{ Constant }
	ConstantAggregateZero struct{ Constant }
	ConstantDataArray     struct{ Constant }
	ConstantDataVector    struct{ Constant }
	ConstantInt           struct{ Constant }
	ConstantFP            struct{ Constant }
	ConstantArray         struct{ Constant }
	ConstantStruct        struct{ Constant }
	ConstantVector        struct{ Constant }
	ConstantPointerNull   struct{ Constant }
)

type (
	ReturnInst         struct{ Instruction }
	BranchInst         struct{ Instruction }
	SwitchInst         struct{ Instruction }
	IndirectBranchInst struct{ Instruction }
	InvokeInst         struct{ Instruction }
	UnreachableInst    struct{ Instruction }
	BinaryOperator     struct{ Instruction }
	AllocaInst         struct{ Instruction }
	LoadInst           struct{ Instruction }
	StoreInst          struct{ Instruction }
	GetElementPtrInst  struct{ Instruction }
	CastInst           struct{ Instruction }
	CompareInst        struct{ Instruction }
	PhiNode            struct{ Instruction }
	CallInst           struct{ Instruction }
	SelectInst         struct{ Instruction }
	FenceInst          struct{ Instruction }
	AtomicCmpXchgInst  struct{ Instruction }
	AtomicRMWInst      struct{ Instruction }
)

// ZExtValue returns the constant zero-extended to 64 bits.
func (c *ConstantInt) ZExtValue() (uint64, error) {
	ref, err := c.Check("llvm.ConstantInt.ZExtValue")
	if err != nil {
		return 0, err
	}
	return c.ctx.n.ConstIntZExtValue(ref), nil
}

// Param returns the index'th formal parameter.
func (f *Function) Param(index uint32) (*Argument, error) {
	const op = "llvm.Function.Param"
	ref, err := f.Check(op)
	if err != nil {
		return nil, err
	}
	return ValueAs[*Argument](f.ctx, f.ctx.n.Param(ref, index))
}

// AppendBasicBlock adds a new block at the end of the function.
func (f *Function) AppendBasicBlock(name string) (*BasicBlock, error) {
	const op = "llvm.Function.AppendBasicBlock"
	ref, err := f.Check(op)
	if err != nil {
		return nil, err
	}
	b, err := f.ctx.encode(op, name)
	if err != nil {
		return nil, err
	}
	ctx, err := f.ctx.scope.Native()
	if err != nil {
		return nil, err
	}
	return ValueAs[*BasicBlock](f.ctx, f.ctx.n.AppendBasicBlock(ctx, ref, b))
}
