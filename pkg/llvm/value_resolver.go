package llvm

import (
	"fmt"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/identity"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

type valueResolver struct {
	ctx *Context
}

func (r valueResolver) Discriminate(ref handle.Ref) (identity.Kind, error) {
	k := r.ctx.n.ValueKind(ref)
	if k != native.InstructionValueKind {
		return identity.Kind(k), nil
	}
	op := r.ctx.n.InstructionOpcode(ref)
	if op == 0 {
		return 0, fmt.Errorf("instruction %s has no opcode", ref)
	}
	return identity.Kind(InstructionKind(op)), nil
}

func (r valueResolver) Materialize(k identity.Kind, s *identity.Scope, ref handle.Ref) Value {
	b := valueBase{Object: identity.NewObject(s, ref), ctx: r.ctx, kind: ValueKind(k)}
	if v := materializeValue(b); v != nil {
		return v
	}
	if v := materializeInstruction(b); v != nil {
		return v
	}
	switch {
	case b.kind.IsConstant():
		return &Constant{b}
	case b.kind.IsInstruction():
		return &Instruction{b}
	}
	return &ValueRef{b}
}

func materializeValue(b valueBase) Value {
	c := Constant{b}
	switch b.kind {
	case ArgumentKind:
		return &Argument{b}
	case BasicBlockKind:
		return &BasicBlock{b}
	case MetadataAsValueKind:
		return &MetadataAsValue{b}
	case InlineAsmKind:
		return &InlineAsm{b}
	case FunctionKind:
		return &Function{c}
	case GlobalAliasKind:
		return &GlobalAlias{c}
	case GlobalIFuncKind:
		return &GlobalIFunc{c}
	case GlobalVariableKind:
		return &GlobalVariable{c}
	case UndefValueKind:
		return &UndefValue{c}
	case PoisonValueKind:
		return &PoisonValue{c}
	case BlockAddressKind:
		return &BlockAddress{c}
	case ConstantExprKind:
		return &ConstantExpr{c}
	case ConstantAggregateZeroKind:
		return &ConstantAggregateZero{c}
	case ConstantDataArrayKind:
		return &ConstantDataArray{c}
	case ConstantDataVectorKind:
		return &ConstantDataVector{c}
	case ConstantIntKind:
		return &ConstantInt{c}
	case ConstantFPKind:
		return &ConstantFP{c}
	case ConstantArrayKind:
		return &ConstantArray{c}
	case ConstantStructKind:
		return &ConstantStruct{c}
	case ConstantVectorKind:
		return &ConstantVector{c}
	case ConstantPointerNullKind:
		return &ConstantPointerNull{c}
	}
	return nil
}

func materializeInstruction(b valueBase) Value {
	op, ok := b.kind.Opcode()
	if !ok {
		return nil
	}
	i := Instruction{b}
	switch op {
	case native.Ret:
		return &ReturnInst{i}
	case native.Br:
		return &BranchInst{i}
	case native.Switch:
		return &SwitchInst{i}
	case native.IndirectBr:
		return &IndirectBranchInst{i}
	case native.Invoke:
		return &InvokeInst{i}
	case native.Unreachable:
		return &UnreachableInst{i}
	case native.Add, native.FAdd, native.Sub, native.FSub, native.Mul, native.FMul,
		native.UDiv, native.SDiv, native.FDiv, native.URem, native.SRem, native.FRem,
		native.Shl, native.LShr, native.AShr, native.And, native.Or, native.Xor:
		return &BinaryOperator{i}
	case native.Alloca:
		return &AllocaInst{i}
	case native.Load:
		return &LoadInst{i}
	case native.Store:
		return &StoreInst{i}
	case native.GetElementPtr:
		return &GetElementPtrInst{i}
	case native.Trunc, native.ZExt, native.SExt, native.FPToUI, native.FPToSI,
		native.UIToFP, native.SIToFP, native.FPTrunc, native.FPExt, native.PtrToInt,
		native.IntToPtr, native.BitCast, native.AddrSpaceCast:
		return &CastInst{i}
	case native.ICmp, native.FCmp:
		return &CompareInst{i}
	case native.PHI:
		return &PhiNode{i}
	case native.Call:
		return &CallInst{i}
	case native.Select:
		return &SelectInst{i}
	case native.Fence:
		return &FenceInst{i}
	case native.AtomicCmpXchg:
		return &AtomicCmpXchgInst{i}
	case native.AtomicRMW:
		return &AtomicRMWInst{i}
	}
	return nil
}
