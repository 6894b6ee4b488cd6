package lazytext_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/lazytext"
)

// countingEncoding counts how many conversions were started.
type countingEncoding struct {
	encoding.Encoding
	mu       sync.Mutex
	decoders int
	encoders int
}

func (c *countingEncoding) NewDecoder() *encoding.Decoder {
	c.mu.Lock()
	c.decoders++
	c.mu.Unlock()
	return c.Encoding.NewDecoder()
}

func (c *countingEncoding) NewEncoder() *encoding.Encoder {
	c.mu.Lock()
	c.encoders++
	c.mu.Unlock()
	return c.Encoding.NewEncoder()
}

func TestFromBytesAlreadyTerminated(t *testing.T) {
	s := lazytext.FromBytes([]byte{0x41, 0x42, 0x00})

	v, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, "AB", v)

	view, err := s.View(false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x42}, view)

	n, err := s.NativeLen()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestFromBytesAppendsTerminatorAndCopies(t *testing.T) {
	in := []byte("hello")
	s := lazytext.FromBytes(in)
	in[0] = 'j'

	withTerm, err := s.View(true)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello\x00"), withTerm)
	assert.Equal(t, "hello", s.String())
}

func TestFromBytesEmpty(t *testing.T) {
	for _, in := range [][]byte{nil, {}, {0}} {
		s := lazytext.FromBytes(in)
		assert.True(t, s.IsEmpty())
		view, err := s.View(true)
		require.NoError(t, err)
		assert.Equal(t, []byte{0}, view)
		assert.Equal(t, "", s.String())
	}
}

func TestFromStringEncodesOnDemand(t *testing.T) {
	s := lazytext.FromString("módulo")
	assert.True(t, s.HasDecoded())
	assert.False(t, s.HasEncoded())
	assert.False(t, s.IsEmpty())
	assert.False(t, s.HasEncoded(), "IsEmpty must not force encoding")

	b, err := s.View(true)
	require.NoError(t, err)
	assert.True(t, s.HasEncoded())
	assert.Equal(t, byte(0), b[len(b)-1])
	assert.Equal(t, len("módulo")+1, len(b))

	strLen, err := s.StrLen()
	require.NoError(t, err)
	assert.Equal(t, len("módulo"), strLen)
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{"", "a", "main", "héllo wörld", "日本語", "tab\tsep"} {
		encoded, err := lazytext.FromString(in).Bytes(true)
		require.NoError(t, err)
		require.NotEmpty(t, encoded)
		assert.Equal(t, byte(0), encoded[len(encoded)-1])

		back, err := lazytext.FromBytes(encoded).Decode()
		require.NoError(t, err)
		assert.Equal(t, in, back)
	}
}

func TestBytesReturnsCopy(t *testing.T) {
	s := lazytext.FromString("abc")
	b, err := s.Bytes(false)
	require.NoError(t, err)
	b[0] = 'x'
	again, err := s.Bytes(false)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestDecodeOnlyOnce(t *testing.T) {
	enc := &countingEncoding{Encoding: charmap.Windows1252}
	s := lazytext.FromBytes([]byte{0x63, 0x61, 0x66, 0xe9}, lazytext.WithEncoding(enc))
	assert.False(t, s.HasDecoded())

	for i := 0; i < 5; i++ {
		v, err := s.Decode()
		require.NoError(t, err)
		assert.Equal(t, "café", v)
	}
	assert.True(t, s.HasDecoded())
	assert.Equal(t, 1, enc.decoders)
	assert.Equal(t, 0, enc.encoders)
}

func TestConcurrentDecodeConvertsOnce(t *testing.T) {
	enc := &countingEncoding{Encoding: charmap.Windows1252}
	s := lazytext.FromBytes([]byte("shared"), lazytext.WithEncoding(enc))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "shared", s.String())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, enc.decoders)
}

func TestEncodeOnlyOnce(t *testing.T) {
	enc := &countingEncoding{Encoding: charmap.Windows1252}
	s := lazytext.FromString("café", lazytext.WithEncoding(enc))
	for i := 0; i < 3; i++ {
		b, err := s.View(false)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x63, 0x61, 0x66, 0xe9}, b)
	}
	assert.Equal(t, 1, enc.encoders)
}

func TestEncodingErrors(t *testing.T) {
	_, err := lazytext.FromString("\xff\xfe").View(true)
	assert.ErrorIs(t, err, interop.ErrEncoding)

	_, err = lazytext.FromBytes([]byte{0xc3, 0x28}).Decode()
	assert.ErrorIs(t, err, interop.ErrEncoding)

	s := lazytext.FromString("日本", lazytext.WithEncoding(charmap.Windows1252))
	_, err = s.View(true)
	assert.ErrorIs(t, err, interop.ErrEncoding)
	_, err = s.NativeLen()
	assert.ErrorIs(t, err, interop.ErrEncoding, "failure is cached")
	assert.False(t, s.HasEncoded())
}

func TestEqual(t *testing.T) {
	a := lazytext.FromString("foo")
	b := lazytext.FromString("foo")
	assert.True(t, a.Equal(b))
	assert.False(t, a.HasEncoded(), "both decoded: compared without encoding")

	c := lazytext.FromBytes([]byte("foo"))
	assert.True(t, a.Equal(c))
	assert.True(t, a.HasEncoded())
	assert.False(t, c.HasDecoded(), "encoded comparison does not decode")

	assert.False(t, a.Equal(lazytext.FromBytes([]byte("bar"))))
	assert.False(t, a.Equal(nil))
	assert.True(t, a.Equal(a))

	latin := lazytext.FromBytes([]byte{0x63, 0x61, 0x66, 0xe9}, lazytext.WithEncoding(charmap.Windows1252))
	assert.True(t, lazytext.FromString("café").Equal(latin))
}

func TestEmptySingleton(t *testing.T) {
	assert.True(t, lazytext.Empty.IsEmpty())
	assert.Equal(t, "", lazytext.Empty.String())
	assert.True(t, lazytext.Empty.Equal(lazytext.FromBytes(nil)))
}

func TestNotEmpty(t *testing.T) {
	assert.NoError(t, lazytext.NotEmpty(lazytext.FromString("x"), "name"))
	err := lazytext.NotEmpty(lazytext.Empty, "name")
	assert.ErrorIs(t, err, interop.ErrEmptyText)
	assert.Contains(t, err.Error(), `"name"`)
	assert.ErrorIs(t, lazytext.NotEmpty(nil, "name"), interop.ErrEmptyText)
}
