package llvm

import (
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/identity"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

// Type is implemented by every type wrapper.
type Type interface {
	Ref() handle.Ref
	Kind() native.TypeKind
	Context() *Context
	Disposed() bool
	Check(op string) (handle.Ref, error)

	typ() *TypeRef
}

// TypeRef is the wrapper for types without a more specific wrapper and the
// base of all others.
type TypeRef struct {
	identity.Object
	ctx  *Context
	kind native.TypeKind
}

func (t *TypeRef) typ() *TypeRef { return t }

// Kind returns the kind LLVM reported when the wrapper was created.
func (t *TypeRef) Kind() native.TypeKind { return t.kind }

// Context returns the context that owns the type.
func (t *TypeRef) Context() *Context { return t.ctx }

type (
	StructType  struct{ TypeRef }
	ArrayType   struct{ TypeRef }
	PointerType struct{ TypeRef }
)

// IntegerType is an arbitrary-width integer type.
type IntegerType struct{ TypeRef }

// Width returns the bit width.
func (t *IntegerType) Width() (uint32, error) {
	ref, err := t.Check("llvm.IntegerType.Width")
	if err != nil {
		return 0, err
	}
	return t.ctx.n.IntTypeWidth(ref), nil
}

// FunctionType is the signature of a function.
type FunctionType struct{ TypeRef }

// VectorType is a fixed or scalable SIMD vector type.
type VectorType struct{ TypeRef }

// Scalable reports whether the vector length is a runtime multiple.
func (t *VectorType) Scalable() bool {
	return t.kind == native.ScalableVectorTypeKind
}

type typeResolver struct {
	ctx *Context
}

func (r typeResolver) Discriminate(ref handle.Ref) (identity.Kind, error) {
	return identity.Kind(r.ctx.n.TypeKind(ref)), nil
}

func (r typeResolver) Materialize(k identity.Kind, s *identity.Scope, ref handle.Ref) Type {
	base := TypeRef{Object: identity.NewObject(s, ref), ctx: r.ctx, kind: native.TypeKind(k)}
	switch base.kind {
	case native.StructTypeKind:
		return &StructType{base}
	case native.ArrayTypeKind:
		return &ArrayType{base}
	case native.PointerTypeKind:
		return &PointerType{base}
	case native.VectorTypeKind, native.ScalableVectorTypeKind:
		return &VectorType{base}
	case native.FunctionTypeKind:
		return &FunctionType{base}
	case native.IntegerTypeKind:
		return &IntegerType{base}
	default:
		return &base
	}
}
