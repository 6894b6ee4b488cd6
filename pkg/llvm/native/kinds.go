package native

// ValueKind is LLVMValueKind.
type ValueKind uint32

const (
	ArgumentValueKind ValueKind = iota
	BasicBlockValueKind
	MemoryUseValueKind
	MemoryDefValueKind
	MemoryPhiValueKind
	FunctionValueKind
	GlobalAliasValueKind
	GlobalIFuncValueKind
	GlobalVariableValueKind
	BlockAddressValueKind
	ConstantExprValueKind
	ConstantArrayValueKind
	ConstantStructValueKind
	ConstantVectorValueKind
	UndefValueValueKind
	ConstantAggregateZeroValueKind
	ConstantDataArrayValueKind
	ConstantDataVectorValueKind
	ConstantIntValueKind
	ConstantFPValueKind
	ConstantPointerNullValueKind
	ConstantTokenNoneValueKind
	MetadataAsValueValueKind
	InlineAsmValueKind
	InstructionValueKind
	PoisonValueValueKind
	ConstantTargetNoneValueKind
	ConstantPtrAuthValueKind
)

// IsConstant reports whether k lies in the constant range.
func (k ValueKind) IsConstant() bool {
	switch {
	case k >= FunctionValueKind && k <= ConstantTokenNoneValueKind:
		return true
	case k == PoisonValueValueKind, k == ConstantTargetNoneValueKind, k == ConstantPtrAuthValueKind:
		return true
	}
	return false
}

// Opcode is LLVMOpcode.
type Opcode uint32

const (
	Ret            Opcode = 1
	Br             Opcode = 2
	Switch         Opcode = 3
	IndirectBr     Opcode = 4
	Invoke         Opcode = 5
	Unreachable    Opcode = 7
	Add            Opcode = 8
	FAdd           Opcode = 9
	Sub            Opcode = 10
	FSub           Opcode = 11
	Mul            Opcode = 12
	FMul           Opcode = 13
	UDiv           Opcode = 14
	SDiv           Opcode = 15
	FDiv           Opcode = 16
	URem           Opcode = 17
	SRem           Opcode = 18
	FRem           Opcode = 19
	Shl            Opcode = 20
	LShr           Opcode = 21
	AShr           Opcode = 22
	And            Opcode = 23
	Or             Opcode = 24
	Xor            Opcode = 25
	Alloca         Opcode = 26
	Load           Opcode = 27
	Store          Opcode = 28
	GetElementPtr  Opcode = 29
	Trunc          Opcode = 30
	ZExt           Opcode = 31
	SExt           Opcode = 32
	FPToUI         Opcode = 33
	FPToSI         Opcode = 34
	UIToFP         Opcode = 35
	SIToFP         Opcode = 36
	FPTrunc        Opcode = 37
	FPExt          Opcode = 38
	PtrToInt       Opcode = 39
	IntToPtr       Opcode = 40
	BitCast        Opcode = 41
	ICmp           Opcode = 42
	FCmp           Opcode = 43
	PHI            Opcode = 44
	Call           Opcode = 45
	Select         Opcode = 46
	UserOp1        Opcode = 47
	UserOp2        Opcode = 48
	VAArg          Opcode = 49
	ExtractElement Opcode = 50
	InsertElement  Opcode = 51
	ShuffleVector  Opcode = 52
	ExtractValue   Opcode = 53
	InsertValue    Opcode = 54
	Fence          Opcode = 55
	AtomicCmpXchg  Opcode = 56
	AtomicRMW      Opcode = 57
	Resume         Opcode = 58
	LandingPad     Opcode = 59
	AddrSpaceCast  Opcode = 60
	CleanupRet     Opcode = 61
	CatchRet       Opcode = 62
	CatchPad       Opcode = 63
	CleanupPad     Opcode = 64
	CatchSwitch    Opcode = 65
	FNeg           Opcode = 66
	CallBr         Opcode = 67
	Freeze         Opcode = 68
)

// TypeKind is LLVMTypeKind.
type TypeKind uint32

const (
	VoidTypeKind TypeKind = iota
	HalfTypeKind
	FloatTypeKind
	DoubleTypeKind
	X86FP80TypeKind
	FP128TypeKind
	PPCFP128TypeKind
	LabelTypeKind
	IntegerTypeKind
	FunctionTypeKind
	StructTypeKind
	ArrayTypeKind
	PointerTypeKind
	VectorTypeKind
	MetadataTypeKind
	X86MMXTypeKind
	TokenTypeKind
	ScalableVectorTypeKind
	BFloatTypeKind
	X86AMXTypeKind
	TargetExtTypeKind
)

// Severity is LLVMDiagnosticSeverity.
type Severity uint32

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityRemark
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityRemark:
		return "remark"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}
