package nativetest

import (
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/token"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

// NewValue creates a value of an arbitrary kind, for exercising resolver
// arms that the modelled operations cannot reach.
func (f *Fake) NewValue(ctx handle.Ref, kind native.ValueKind, op native.Opcode, typ handle.Ref) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(ctx, classContext)
	return f.alloc(&object{class: classValue, ctx: ctx, valueKind: kind, opcode: op, typ: typ})
}

// NewType creates a type of an arbitrary kind.
func (f *Fake) NewType(ctx handle.Ref, kind native.TypeKind) handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.get(ctx, classContext)
	return f.alloc(&object{class: classType, ctx: ctx, typeKind: kind})
}

// Operands returns the current operands of v.
func (f *Fake) Operands(v handle.Ref) []handle.Ref {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]handle.Ref(nil), f.get(v, classValue).operands...)
}

// EmitDiagnostic reports a diagnostic on ctx through the registered handler,
// the way LLVM does from inside a native call. It reports whether a handler
// took it.
func (f *Fake) EmitDiagnostic(ctx handle.Ref, sev native.Severity, msg string) bool {
	f.mu.Lock()
	tok := f.get(ctx, classContext).diag
	f.mu.Unlock()
	if tok == 0 {
		return false
	}
	return native.DispatchDiagnostic(tok, sev, []byte(msg))
}

// DiagnosticToken returns the callback context registered for ctx.
func (f *Fake) DiagnosticToken(ctx handle.Ref) token.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objs[ctx].diag
}

// Live reports whether r exists and has not been disposed.
func (f *Fake) Live(r handle.Ref) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.objs[r]
	return ok && !o.disposed
}

// ContextsDisposed counts ContextDispose calls.
func (f *Fake) ContextsDisposed() int { return f.count(classContext) }

// ModulesDisposed counts ModuleDispose calls.
func (f *Fake) ModulesDisposed() int { return f.count(classModule) }

// MessagesDisposed counts DisposeMessage calls.
func (f *Fake) MessagesDisposed() int { return f.count(classMessage) }

// BuildersDisposed counts BuilderDispose calls.
func (f *Fake) BuildersDisposed() int { return f.count(classBuilder) }

func (f *Fake) count(c class) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disposed[c]
}
