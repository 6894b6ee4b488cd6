package nativetest

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/token"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

type class int

const (
	classContext class = iota
	classType
	classValue
	classModule
	classBuilder
	classMessage
)

type object struct {
	class class
	ctx   handle.Ref

	valueKind native.ValueKind
	opcode    native.Opcode
	typ       handle.Ref
	intVal    uint64
	name      []byte
	operands  []handle.Ref
	params    []handle.Ref

	typeKind native.TypeKind
	bits     uint32
	ret      handle.Ref
	variadic bool

	diag     token.Token
	text     []byte
	position handle.Ref
	disposed bool
}

type intKey struct {
	ctx  handle.Ref
	bits uint32
}

type constKey struct {
	typ handle.Ref
	val uint64
}

// Fake is an in-memory native.Native. The zero value is not usable; call New.
type Fake struct {
	// FailContextCreate, when set, is returned by ContextCreate.
	FailContextCreate error

	mu       sync.Mutex
	next     uintptr
	objs     map[handle.Ref]*object
	ints     map[intKey]handle.Ref
	consts   map[constKey]handle.Ref
	labels   map[handle.Ref]handle.Ref
	disposed map[class]int
}

var _ native.Native = (*Fake)(nil)

// New returns an empty fake.
func New() *Fake {
	return &Fake{
		next:     0x1000,
		objs:     make(map[handle.Ref]*object),
		ints:     make(map[intKey]handle.Ref),
		consts:   make(map[constKey]handle.Ref),
		labels:   make(map[handle.Ref]handle.Ref),
		disposed: make(map[class]int),
	}
}

func (f *Fake) alloc(o *object) handle.Ref {
	f.next += 0x10
	r := handle.Ref(f.next)
	f.objs[r] = o
	return r
}

func (f *Fake) get(r handle.Ref, want class) *object {
	o, ok := f.objs[r]
	if !ok || o.class != want {
		panic(fmt.Sprintf("nativetest: unknown handle %s", r))
	}
	if o.disposed {
		panic(fmt.Sprintf("nativetest: use of disposed handle %s", r))
	}
	return o
}

func (f *Fake) release(r handle.Ref, want class) {
	f.get(r, want).disposed = true
	f.disposed[want]++
}

func terminated(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte{0})
	return append(append([]byte(nil), b...), 0)
}

func trimmed(b []byte) []byte {
	return append([]byte(nil), bytes.TrimSuffix(b, []byte{0})...)
}

func (f *Fake) Version() (major, minor, patch uint32) { return 18, 1, 8 }

func (f *Fake) ContextCreate() (handle.Ref, error) {
	if f.FailContextCreate != nil {
		return handle.Null, f.FailContextCreate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alloc(&object{class: classContext}), nil
}

func (f *Fake) ContextDispose(ctx handle.Ref) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release(ctx, classContext)
}

func (f *Fake) SetDiagnosticHandler(ctx handle.Ref, tok token.Token) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(ctx, classContext).diag = tok
}

func (f *Fake) ClearDiagnosticHandler(ctx handle.Ref) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(ctx, classContext).diag = 0
}

func (f *Fake) ValueKind(v handle.Ref) native.ValueKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(v, classValue).valueKind
}

func (f *Fake) InstructionOpcode(v handle.Ref) native.Opcode {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.get(v, classValue)
	if o.valueKind != native.InstructionValueKind {
		return 0
	}
	return o.opcode
}

func (f *Fake) TypeKind(t handle.Ref) native.TypeKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(t, classType).typeKind
}

func (f *Fake) TypeOf(v handle.Ref) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(v, classValue).typ
}

func (f *Fake) TypeContext(t handle.Ref) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(t, classType).ctx
}

func (f *Fake) ValueName(v handle.Ref) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return trimmed(f.get(v, classValue).name)
}

func (f *Fake) SetValueName(v handle.Ref, name []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(v, classValue).name = trimmed(name)
}

func (f *Fake) ReplaceAllUsesWith(old, replacement handle.Ref) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(old, classValue)
	f.get(replacement, classValue)
	for _, o := range f.objs {
		for i, op := range o.operands {
			if op == old {
				o.operands[i] = replacement
			}
		}
	}
}

func (f *Fake) IntType(ctx handle.Ref, bits uint32) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(ctx, classContext)
	key := intKey{ctx: ctx, bits: bits}
	if r, ok := f.ints[key]; ok {
		return r
	}
	r := f.alloc(&object{class: classType, ctx: ctx, typeKind: native.IntegerTypeKind, bits: bits})
	f.ints[key] = r
	return r
}

func (f *Fake) IntTypeWidth(t handle.Ref) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(t, classType).bits
}

func (f *Fake) FunctionType(ret handle.Ref, params []handle.Ref, variadic bool) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	rt := f.get(ret, classType)
	for _, p := range params {
		f.get(p, classType)
	}
	return f.alloc(&object{
		class:    classType,
		ctx:      rt.ctx,
		typeKind: native.FunctionTypeKind,
		ret:      ret,
		params:   append([]handle.Ref(nil), params...),
		variadic: variadic,
	})
}

func (f *Fake) ConstInt(t handle.Ref, v uint64, signExtend bool) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.constInt(t, v)
}

func (f *Fake) constInt(t handle.Ref, v uint64) handle.Ref {
	typ := f.get(t, classType)
	if typ.bits < 64 {
		v &= (uint64(1) << typ.bits) - 1
	}
	key := constKey{typ: t, val: v}
	if r, ok := f.consts[key]; ok {
		return r
	}
	r := f.alloc(&object{class: classValue, ctx: typ.ctx, valueKind: native.ConstantIntValueKind, typ: t, intVal: v})
	f.consts[key] = r
	return r
}

func (f *Fake) ConstIntZExtValue(v handle.Ref) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(v, classValue).intVal
}

// ConstAdd folds two integer constants into a ConstantInt and produces a
// ConstantExpr for anything else.
func (f *Fake) ConstAdd(a, b handle.Ref) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.fold(a, b); ok {
		return r
	}
	lhs := f.get(a, classValue)
	return f.alloc(&object{
		class:     classValue,
		ctx:       lhs.ctx,
		valueKind: native.ConstantExprValueKind,
		opcode:    native.Add,
		typ:       lhs.typ,
		operands:  []handle.Ref{a, b},
	})
}

func (f *Fake) fold(a, b handle.Ref) (handle.Ref, bool) {
	lhs, rhs := f.get(a, classValue), f.get(b, classValue)
	if lhs.valueKind != native.ConstantIntValueKind || rhs.valueKind != native.ConstantIntValueKind {
		return handle.Null, false
	}
	return f.constInt(lhs.typ, lhs.intVal+rhs.intVal), true
}

func (f *Fake) ModuleCreate(ctx handle.Ref, name []byte) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(ctx, classContext)
	return f.alloc(&object{class: classModule, ctx: ctx, name: trimmed(name)})
}

// ModuleDispose destroys the module together with every function, argument,
// block and instruction inside it.
func (f *Fake) ModuleDispose(m handle.Ref) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release(m, classModule)
	for r, o := range f.objs {
		if o.class == classValue && !o.disposed && f.moduleOf(r) == m {
			o.disposed = true
		}
	}
}

// moduleOf follows the position chain of r up to a module.
func (f *Fake) moduleOf(r handle.Ref) handle.Ref {
	for r != handle.Null {
		o, ok := f.objs[r]
		if !ok {
			return handle.Null
		}
		if o.class == classModule {
			return r
		}
		if o.class != classValue {
			return handle.Null
		}
		r = o.position
	}
	return handle.Null
}

func (f *Fake) ValueModule(v handle.Ref) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(v, classValue)
	return f.moduleOf(v)
}

func (f *Fake) ModuleIdentifier(m handle.Ref) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return trimmed(f.get(m, classModule).name)
}

func (f *Fake) PrintModule(m handle.Ref) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	mod := f.get(m, classModule)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "; ModuleID = '%s'\nsource_filename = \"%s\"\n", mod.name, mod.name)
	for _, r := range f.sortedRefs() {
		o := f.objs[r]
		if o.class == classValue && o.valueKind == native.FunctionValueKind && o.position == m && !o.disposed {
			fmt.Fprintf(&buf, "\ndefine @%s\n", o.name)
		}
	}
	return f.alloc(&object{class: classMessage, text: terminated(buf.Bytes())})
}

func (f *Fake) sortedRefs() []handle.Ref {
	refs := make([]handle.Ref, 0, len(f.objs))
	for r := handle.Ref(0x1010); r <= handle.Ref(f.next); r += 0x10 {
		if _, ok := f.objs[r]; ok {
			refs = append(refs, r)
		}
	}
	return refs
}

func (f *Fake) MessageBytes(msg handle.Ref) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.get(msg, classMessage).text...)
}

func (f *Fake) DisposeMessage(msg handle.Ref) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release(msg, classMessage)
}

func (f *Fake) AddFunction(m handle.Ref, name []byte, fnType handle.Ref) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	mod := f.get(m, classModule)
	ft := f.get(fnType, classType)
	fn := &object{
		class:     classValue,
		ctx:       mod.ctx,
		valueKind: native.FunctionValueKind,
		typ:       fnType,
		name:      trimmed(name),
		position:  m,
	}
	ref := f.alloc(fn)
	for _, pt := range ft.params {
		fn.params = append(fn.params, f.alloc(&object{
			class:     classValue,
			ctx:       mod.ctx,
			valueKind: native.ArgumentValueKind,
			typ:       pt,
			position:  ref,
		}))
	}
	return ref
}

func (f *Fake) Param(fn handle.Ref, index uint32) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.get(fn, classValue)
	if int(index) >= len(o.params) {
		return handle.Null
	}
	return o.params[index]
}

func (f *Fake) AppendBasicBlock(ctx, fn handle.Ref, name []byte) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(ctx, classContext)
	f.get(fn, classValue)
	label := f.labelType(ctx)
	return f.alloc(&object{
		class:     classValue,
		ctx:       ctx,
		valueKind: native.BasicBlockValueKind,
		typ:       label,
		name:      trimmed(name),
		position:  fn,
	})
}

func (f *Fake) labelType(ctx handle.Ref) handle.Ref {
	if r, ok := f.labels[ctx]; ok {
		return r
	}
	r := f.alloc(&object{class: classType, ctx: ctx, typeKind: native.LabelTypeKind})
	f.labels[ctx] = r
	return r
}

func (f *Fake) BuilderCreate(ctx handle.Ref) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(ctx, classContext)
	return f.alloc(&object{class: classBuilder, ctx: ctx})
}

func (f *Fake) BuilderDispose(b handle.Ref) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.release(b, classBuilder)
}

func (f *Fake) PositionAtEnd(b, block handle.Ref) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(block, classValue)
	f.get(b, classBuilder).position = block
}

// BuildAdd folds constant operands like IRBuilder's default folder and emits
// an add instruction otherwise.
func (f *Fake) BuildAdd(b, lhs, rhs handle.Ref, name []byte) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	bld := f.get(b, classBuilder)
	if r, ok := f.fold(lhs, rhs); ok {
		return r
	}
	return f.alloc(&object{
		class:     classValue,
		ctx:       bld.ctx,
		valueKind: native.InstructionValueKind,
		opcode:    native.Add,
		typ:       f.objs[lhs].typ,
		name:      trimmed(name),
		operands:  []handle.Ref{lhs, rhs},
		position:  bld.position,
	})
}

func (f *Fake) BuildRet(b, v handle.Ref) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	bld := f.get(b, classBuilder)
	val := f.get(v, classValue)
	return f.alloc(&object{
		class:     classValue,
		ctx:       bld.ctx,
		valueKind: native.InstructionValueKind,
		opcode:    native.Ret,
		typ:       val.typ,
		operands:  []handle.Ref{v},
		position:  bld.position,
	})
}
