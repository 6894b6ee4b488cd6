package native

import (
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/token"
)

// Native is the LLVM-C surface used by the wrappers.
//
// Text parameters are encoded and include the terminator. Text results are
// copies owned by the caller and may or may not carry a terminator. Functions
// returning a handle return handle.Null on failure.
type Native interface {
	// Version reports the version of the linked LLVM library.
	Version() (major, minor, patch uint32)

	ContextCreate() (handle.Ref, error)
	ContextDispose(ctx handle.Ref)
	// SetDiagnosticHandler routes diagnostics of ctx to DispatchDiagnostic
	// with tok as the callback context.
	SetDiagnosticHandler(ctx handle.Ref, tok token.Token)
	ClearDiagnosticHandler(ctx handle.Ref)

	ValueKind(v handle.Ref) ValueKind
	InstructionOpcode(v handle.Ref) Opcode
	TypeKind(t handle.Ref) TypeKind
	TypeOf(v handle.Ref) handle.Ref
	TypeContext(t handle.Ref) handle.Ref
	ValueName(v handle.Ref) []byte
	SetValueName(v handle.Ref, name []byte)
	ReplaceAllUsesWith(old, replacement handle.Ref)
	// ValueModule returns the module that owns v, following arguments,
	// blocks and instructions up to their function. It returns handle.Null
	// for values owned by the context, such as constants.
	ValueModule(v handle.Ref) handle.Ref

	IntType(ctx handle.Ref, bits uint32) handle.Ref
	IntTypeWidth(t handle.Ref) uint32
	FunctionType(ret handle.Ref, params []handle.Ref, variadic bool) handle.Ref

	ConstInt(t handle.Ref, v uint64, signExtend bool) handle.Ref
	ConstIntZExtValue(v handle.Ref) uint64
	ConstAdd(a, b handle.Ref) handle.Ref

	ModuleCreate(ctx handle.Ref, name []byte) handle.Ref
	ModuleDispose(m handle.Ref)
	ModuleIdentifier(m handle.Ref) []byte
	// PrintModule returns a native message that must be released with
	// DisposeMessage.
	PrintModule(m handle.Ref) handle.Ref
	MessageBytes(msg handle.Ref) []byte
	DisposeMessage(msg handle.Ref)

	AddFunction(m handle.Ref, name []byte, fnType handle.Ref) handle.Ref
	Param(fn handle.Ref, index uint32) handle.Ref
	// AppendBasicBlock returns the block as a value handle.
	AppendBasicBlock(ctx, fn handle.Ref, name []byte) handle.Ref

	BuilderCreate(ctx handle.Ref) handle.Ref
	BuilderDispose(b handle.Ref)
	PositionAtEnd(b, block handle.Ref)
	BuildAdd(b, lhs, rhs handle.Ref, name []byte) handle.Ref
	BuildRet(b, v handle.Ref) handle.Ref
}
