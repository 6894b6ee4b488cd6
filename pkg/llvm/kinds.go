package llvm

import (
	"fmt"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

// ValueKind is the flattened kind of a value. Non-instruction values use
// their LLVMValueKind; instructions use InstructionKind plus their opcode,
// so a single number identifies the wrapper type.
type ValueKind uint32

const instructionKind ValueKind = 0x100

// Value kinds.
const (
	ArgumentKind              = ValueKind(native.ArgumentValueKind)
	BasicBlockKind            = ValueKind(native.BasicBlockValueKind)
	FunctionKind              = ValueKind(native.FunctionValueKind)
	GlobalAliasKind           = ValueKind(native.GlobalAliasValueKind)
	GlobalIFuncKind           = ValueKind(native.GlobalIFuncValueKind)
	GlobalVariableKind        = ValueKind(native.GlobalVariableValueKind)
	BlockAddressKind          = ValueKind(native.BlockAddressValueKind)
	ConstantExprKind          = ValueKind(native.ConstantExprValueKind)
	ConstantArrayKind         = ValueKind(native.ConstantArrayValueKind)
	ConstantStructKind        = ValueKind(native.ConstantStructValueKind)
	ConstantVectorKind        = ValueKind(native.ConstantVectorValueKind)
	UndefValueKind            = ValueKind(native.UndefValueValueKind)
	ConstantAggregateZeroKind = ValueKind(native.ConstantAggregateZeroValueKind)
	ConstantDataArrayKind     = ValueKind(native.ConstantDataArrayValueKind)
	ConstantDataVectorKind    = ValueKind(native.ConstantDataVectorValueKind)
	ConstantIntKind           = ValueKind(native.ConstantIntValueKind)
	ConstantFPKind            = ValueKind(native.ConstantFPValueKind)
	ConstantPointerNullKind   = ValueKind(native.ConstantPointerNullValueKind)
	MetadataAsValueKind       = ValueKind(native.MetadataAsValueValueKind)
	InlineAsmKind             = ValueKind(native.InlineAsmValueKind)
	PoisonValueKind           = ValueKind(native.PoisonValueValueKind)
)

// InstructionKind returns the flattened kind of an instruction with opcode op.
func InstructionKind(op native.Opcode) ValueKind {
	return instructionKind + ValueKind(op)
}

// Opcode returns the instruction opcode encoded in k.
func (k ValueKind) Opcode() (native.Opcode, bool) {
	if k <= instructionKind {
		return 0, false
	}
	return native.Opcode(k - instructionKind), true
}

// IsInstruction reports whether k is an instruction kind.
func (k ValueKind) IsInstruction() bool {
	_, ok := k.Opcode()
	return ok
}

// InModule reports whether values of kind k belong to a module rather than
// the context: globals, arguments, blocks and instructions.
func (k ValueKind) InModule() bool {
	switch k {
	case ArgumentKind, BasicBlockKind, FunctionKind, GlobalAliasKind, GlobalIFuncKind, GlobalVariableKind:
		return true
	}
	return k.IsInstruction()
}

// IsConstant reports whether k is a constant kind.
func (k ValueKind) IsConstant() bool {
	return k < instructionKind && native.ValueKind(k).IsConstant()
}

var valueKindNames = map[ValueKind]string{
	ArgumentKind:              "Argument",
	BasicBlockKind:            "BasicBlock",
	FunctionKind:              "Function",
	GlobalAliasKind:           "GlobalAlias",
	GlobalIFuncKind:           "GlobalIFunc",
	GlobalVariableKind:        "GlobalVariable",
	BlockAddressKind:          "BlockAddress",
	ConstantExprKind:          "ConstantExpr",
	ConstantArrayKind:         "ConstantArray",
	ConstantStructKind:        "ConstantStruct",
	ConstantVectorKind:        "ConstantVector",
	UndefValueKind:            "UndefValue",
	ConstantAggregateZeroKind: "ConstantAggregateZero",
	ConstantDataArrayKind:     "ConstantDataArray",
	ConstantDataVectorKind:    "ConstantDataVector",
	ConstantIntKind:           "ConstantInt",
	ConstantFPKind:            "ConstantFP",
	ConstantPointerNullKind:   "ConstantPointerNull",
	MetadataAsValueKind:       "MetadataAsValue",
	InlineAsmKind:             "InlineAsm",
	PoisonValueKind:           "PoisonValue",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	if op, ok := k.Opcode(); ok {
		return fmt.Sprintf("Instruction(%d)", op)
	}
	return fmt.Sprintf("ValueKind(%d)", uint32(k))
}
