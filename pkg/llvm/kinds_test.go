package llvm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

func TestValueKind(t *testing.T) {
	add := InstructionKind(native.Add)
	op, ok := add.Opcode()
	assert.True(t, ok)
	assert.Equal(t, native.Add, op)
	assert.True(t, add.IsInstruction())
	assert.False(t, add.IsConstant())
	assert.Equal(t, "Instruction(8)", add.String())

	_, ok = ValueKind(native.InstructionValueKind).Opcode()
	assert.False(t, ok)
	assert.False(t, instructionKind.IsInstruction())

	assert.True(t, ConstantIntKind.IsConstant())
	assert.True(t, FunctionKind.IsConstant())
	assert.False(t, ArgumentKind.IsConstant())
	assert.Equal(t, "ConstantInt", ConstantIntKind.String())
	assert.Equal(t, "ValueKind(2)", ValueKind(native.MemoryUseValueKind).String())

	for _, k := range []ValueKind{ArgumentKind, BasicBlockKind, FunctionKind, GlobalVariableKind, add} {
		assert.True(t, k.InModule(), "%s", k)
	}
	assert.False(t, ConstantIntKind.InModule())
	assert.False(t, ValueKind(native.InstructionValueKind).InModule())
}
