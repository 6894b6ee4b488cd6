//go:build cgo && llvm

package capi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

func TestBindingRoundTrip(t *testing.T) {
	n, err := Default()
	require.NoError(t, err)

	major, _, _ := n.Version()
	assert.GreaterOrEqual(t, major, uint32(16))

	ctx, err := n.ContextCreate()
	require.NoError(t, err)
	defer n.ContextDispose(ctx)

	i32 := n.IntType(ctx, 32)
	assert.Equal(t, i32, n.IntType(ctx, 32))
	assert.Equal(t, native.IntegerTypeKind, n.TypeKind(i32))
	assert.Equal(t, ctx, n.TypeContext(i32))

	sum := n.ConstAdd(n.ConstInt(i32, 2, false), n.ConstInt(i32, 3, false))
	assert.Equal(t, native.ConstantIntValueKind, n.ValueKind(sum))
	assert.EqualValues(t, 5, n.ConstIntZExtValue(sum))

	mod := n.ModuleCreate(ctx, []byte("capi\x00"))
	defer n.ModuleDispose(mod)
	assert.Equal(t, []byte("capi"), n.ModuleIdentifier(mod))

	msg := n.PrintModule(mod)
	assert.Contains(t, string(n.MessageBytes(msg)), "ModuleID = 'capi'")
	n.DisposeMessage(msg)
}
