package handle

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
)

type releaseCounter struct {
	calls atomic.Int32
	last  atomic.Uintptr
}

func (c *releaseCounter) release(r Ref) {
	c.calls.Add(1)
	c.last.Store(uintptr(r))
}

func TestRefCheck(t *testing.T) {
	require.NoError(t, Ref(0x10).Check("op"))

	err := Null.Check("LLVMTypeOf")
	require.ErrorIs(t, err, interop.ErrInvalidHandle)
	assert.Contains(t, err.Error(), "LLVMTypeOf")

	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "0x2a", Ref(42).String())
}

func TestOwnedCloseReleasesOnce(t *testing.T) {
	var c releaseCounter
	o := NewOwned(0x1000, c.release)
	require.True(t, o.IsValid())

	ref, err := o.Ref()
	require.NoError(t, err)
	assert.Equal(t, Ref(0x1000), ref)

	require.NoError(t, o.Close())
	require.NoError(t, o.Close())
	assert.EqualValues(t, 1, c.calls.Load())
	assert.EqualValues(t, 0x1000, c.last.Load())
	assert.False(t, o.IsValid())

	_, err = o.Ref()
	require.ErrorIs(t, err, interop.ErrInvalidHandle)
	assert.Equal(t, Ref(0x1000), o.Raw())
}

func TestOwnedNull(t *testing.T) {
	var c releaseCounter
	o := NewOwned(Null, c.release)
	assert.False(t, o.IsValid())

	_, err := o.Ref()
	require.ErrorIs(t, err, interop.ErrInvalidHandle)

	called := false
	err = o.Use(func(Ref) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, interop.ErrInvalidHandle)
	assert.False(t, called)

	require.NoError(t, o.Close())
	assert.Zero(t, c.calls.Load())
}

func TestOwnedNilReceiver(t *testing.T) {
	var o *Owned
	assert.False(t, o.IsValid())
	assert.Equal(t, Null, o.Raw())
	require.NoError(t, o.Close())
	_, err := o.Ref()
	require.ErrorIs(t, err, interop.ErrInvalidHandle)
}

func TestOwnedUse(t *testing.T) {
	var c releaseCounter
	o := NewOwned(0x20, c.release)
	defer o.Close()

	sentinel := errors.New("native failure")
	var seen Ref
	err := o.Use(func(r Ref) error {
		seen = r
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, Ref(0x20), seen)
	assert.Zero(t, c.calls.Load())
}

func TestOwnedSame(t *testing.T) {
	a := NewOwned(0x30, nil)
	b := NewOwned(0x30, nil)
	d := NewOwned(0x31, nil)

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(d))
	assert.False(t, a.Same(nil))

	require.NoError(t, a.Close())
	assert.True(t, a.Same(b))
}

func TestOwnedConcurrentClose(t *testing.T) {
	var c releaseCounter
	o := NewOwned(0x40, c.release)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = o.Close()
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, c.calls.Load())
}

func TestOwnedFinalizerReleases(t *testing.T) {
	var c releaseCounter
	func() {
		o := NewOwned(0x50, c.release)
		require.True(t, o.IsValid())
	}()

	deadline := time.Now().Add(5 * time.Second)
	for c.calls.Load() == 0 && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	assert.EqualValues(t, 1, c.calls.Load())
	assert.EqualValues(t, 0x50, c.last.Load())
}

func TestOwnedCloseClearsFinalizer(t *testing.T) {
	var c releaseCounter
	func() {
		o := NewOwned(0x60, c.release)
		require.NoError(t, o.Close())
	}()

	for i := 0; i < 5; i++ {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
	assert.EqualValues(t, 1, c.calls.Load())
}

func TestStringCopiesThenReleases(t *testing.T) {
	var c releaseCounter
	reads := 0
	buf := []byte("; ModuleID = 'demo'\x00")
	s := NewString(0x70, func(r Ref) []byte {
		reads++
		assert.Equal(t, Ref(0x70), r)
		return buf
	}, c.release)

	text, err := s.Text()
	require.NoError(t, err)
	assert.Equal(t, "; ModuleID = 'demo'", text.String())
	assert.EqualValues(t, 1, c.calls.Load())

	// The copy must not alias the native buffer.
	buf[0] = 'X'
	assert.Equal(t, "; ModuleID = 'demo'", s.String())

	again, err := s.Text()
	require.NoError(t, err)
	assert.Same(t, text, again)
	assert.Equal(t, 1, reads)

	require.NoError(t, s.Close())
	assert.EqualValues(t, 1, c.calls.Load())
}

func TestStringCloseWithoutRead(t *testing.T) {
	var c releaseCounter
	s := NewString(0x80, func(Ref) []byte {
		t.Fatal("read after close")
		return nil
	}, c.release)

	require.NoError(t, s.Close())
	assert.EqualValues(t, 1, c.calls.Load())

	_, err := s.Text()
	require.ErrorIs(t, err, interop.ErrInvalidHandle)
	assert.Equal(t, "", s.String())
}

func TestStringNull(t *testing.T) {
	var c releaseCounter
	s := NewString(Null, nil, c.release)

	text, err := s.Text()
	require.NoError(t, err)
	assert.True(t, text.IsEmpty())
	assert.Zero(t, c.calls.Load())
}
