//go:build !cgo || !llvm

package capi

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
)

func TestDefaultNotBuilt(t *testing.T) {
	n, err := Default()
	require.ErrorIs(t, err, interop.ErrNotBuilt)
	require.Nil(t, n)
}
