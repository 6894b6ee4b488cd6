package interop_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
)

func TestWrapKeepsSentinel(t *testing.T) {
	err := interop.Wrap("cache.GetOrCreate", 0x1000, interop.ErrInvalidHandle)
	require.Error(t, err)
	assert.ErrorIs(t, err, interop.ErrInvalidHandle)
	assert.Equal(t, "cache.GetOrCreate: handle 0x1000: interop: invalid native handle", err.Error())

	var ie *interop.Error
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, uintptr(0x1000), ie.Ref)
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, interop.Wrap("noop", 1, nil))
}

func TestWrapfAddsDetail(t *testing.T) {
	err := interop.Wrapf("text.Decode", 0, interop.ErrEncoding, "byte %d", 3)
	assert.ErrorIs(t, err, interop.ErrEncoding)
	assert.Equal(t, "text.Decode: interop: text encoding failed: byte 3", err.Error())
	assert.NotErrorIs(t, err, interop.ErrInvalidHandle)
}
