//go:build !interopdebug

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
)

func TestDoubleRelease(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(logging.NewZap(zap.New(core)))
	defer SetLogger(nil)

	tok := Mint("once")
	require.NoError(t, Release(tok))

	err := Release(tok)
	require.ErrorIs(t, err, interop.ErrDoubleRelease)
	require.ErrorIs(t, Release(0), interop.ErrDoubleRelease)

	assert.Equal(t, 2, logs.FilterMessage("release of dead context token").Len())
}
