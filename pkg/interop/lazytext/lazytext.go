package lazytext

import (
	"bytes"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
)

// Empty is a shared instance for the empty string.
var Empty = FromString("")

// Option configures a String.
type Option func(*String)

// WithEncoding selects the native encoding. A nil encoding selects UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(s *String) {
		if enc != nil {
			s.enc = enc
		}
	}
}

// String is text with a lazily derived second representation.
//
// A String is immutable once constructed and safe for concurrent use; each
// conversion runs at most once.
type String struct {
	enc encoding.Encoding

	decodeOnce sync.Once
	decoded    string
	decodeErr  error
	hasDecoded atomic.Bool

	encodeOnce sync.Once
	encoded    []byte // always ends in the terminator
	encodeErr  error
	hasEncoded atomic.Bool
}

// FromString wraps decoded text. The encoded form is produced on first use.
func FromString(s string, opts ...Option) *String {
	ls := newString(opts)
	ls.decoded = s
	ls.decodeOnce.Do(func() {})
	ls.hasDecoded.Store(true)
	return ls
}

// FromBytes wraps encoded text. The input is always copied because its
// lifetime is not guaranteed beyond the call; a terminator is appended unless
// the last byte already is one.
func FromBytes(b []byte, opts ...Option) *String {
	ls := newString(opts)
	n := len(b)
	if n == 0 || b[n-1] != 0 {
		ls.encoded = make([]byte, n+1)
	} else {
		ls.encoded = make([]byte, n)
	}
	copy(ls.encoded, b)
	ls.encodeOnce.Do(func() {})
	ls.hasEncoded.Store(true)
	return ls
}

func newString(opts []Option) *String {
	s := &String{enc: unicode.UTF8}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Encoding returns the native encoding of s.
func (s *String) Encoding() encoding.Encoding { return s.enc }

// HasDecoded reports whether the decoded form is materialized.
func (s *String) HasDecoded() bool { return s.hasDecoded.Load() }

// HasEncoded reports whether the encoded form is materialized.
func (s *String) HasEncoded() bool { return s.hasEncoded.Load() }

// IsEmpty reports whether s is the empty string. It answers from whichever
// form is already materialized and never forces a conversion.
func (s *String) IsEmpty() bool {
	if s == nil {
		return true
	}
	if s.hasDecoded.Load() {
		return s.decoded == ""
	}
	if s.hasEncoded.Load() {
		return len(s.encoded) <= 1
	}
	return true
}

// Decode returns the decoded text, converting from the encoded form on first
// use. All bytes up to, but excluding, the final terminator are decoded.
func (s *String) Decode() (string, error) {
	s.decodeOnce.Do(func() {
		raw := s.encoded[:len(s.encoded)-1]
		s.decoded, s.decodeErr = decode(s.enc, raw)
		if s.decodeErr == nil {
			s.hasDecoded.Store(true)
		}
	})
	return s.decoded, s.decodeErr
}

// String implements fmt.Stringer. It returns the empty string when the
// encoded form cannot be decoded; use Decode to observe the error.
func (s *String) String() string {
	if s == nil {
		return ""
	}
	v, err := s.Decode()
	if err != nil {
		return ""
	}
	return v
}

// View returns the encoded form without copying, converting on first use.
// The returned slice is shared by every caller and must not be modified; it
// exists so native calls can take its address for the duration of the call.
func (s *String) View(includeTerminator bool) ([]byte, error) {
	s.encodeOnce.Do(func() {
		s.encoded, s.encodeErr = encode(s.enc, s.decoded)
		if s.encodeErr == nil {
			s.hasEncoded.Store(true)
		}
	})
	if s.encodeErr != nil {
		return nil, s.encodeErr
	}
	if includeTerminator {
		return s.encoded, nil
	}
	return s.encoded[:len(s.encoded)-1], nil
}

// Bytes returns a copy of the encoded form.
func (s *String) Bytes(includeTerminator bool) ([]byte, error) {
	v, err := s.View(includeTerminator)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(v), nil
}

// NativeLen is the size of the encoded form including the terminator.
func (s *String) NativeLen() (int, error) {
	v, err := s.View(true)
	return len(v), err
}

// StrLen is the size of the encoded form excluding the terminator.
func (s *String) StrLen() (int, error) {
	v, err := s.View(false)
	return len(v), err
}

// Equal compares by decoded value. When both sides already hold decoded text
// it is compared directly; otherwise the encoded forms are compared, which
// materializes at most the encoded side of each operand. Strings in different
// encodings are always compared decoded.
func (s *String) Equal(other *String) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if (s.HasDecoded() && other.HasDecoded()) || s.enc != other.enc {
		a, errA := s.Decode()
		b, errB := other.Decode()
		return errA == nil && errB == nil && a == b
	}
	a, errA := s.View(false)
	b, errB := other.View(false)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// NotEmpty returns an ErrEmptyText error naming the argument when s is nil or
// empty.
func NotEmpty(s *String, name string) error {
	if s.IsEmpty() {
		return interop.Wrapf("lazytext.NotEmpty", 0, interop.ErrEmptyText, "argument %q", name)
	}
	return nil
}

func encode(enc encoding.Encoding, s string) ([]byte, error) {
	if enc == unicode.UTF8 {
		if !utf8.ValidString(s) {
			return nil, interop.Wrapf("lazytext.encode", 0, interop.ErrEncoding, "invalid UTF-8")
		}
		buf := make([]byte, len(s)+1)
		copy(buf, s)
		return buf, nil
	}
	out, err := enc.NewEncoder().String(s)
	if err != nil {
		return nil, interop.Wrapf("lazytext.encode", 0, interop.ErrEncoding, "%v", err)
	}
	buf := make([]byte, len(out)+1)
	copy(buf, out)
	return buf, nil
}

func decode(enc encoding.Encoding, b []byte) (string, error) {
	if enc == unicode.UTF8 {
		if !utf8.Valid(b) {
			return "", interop.Wrapf("lazytext.decode", 0, interop.ErrEncoding, "invalid UTF-8")
		}
		return string(b), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", interop.Wrapf("lazytext.decode", 0, interop.ErrEncoding, "%v", err)
	}
	return string(out), nil
}
