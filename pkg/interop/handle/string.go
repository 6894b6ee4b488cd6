package handle

import (
	"sync"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/lazytext"
)

// ReadFunc copies the terminator-delimited bytes behind a native string.
type ReadFunc func(Ref) []byte

// String is a native-owned, terminator-delimited string such as the result of
// LLVMPrintModuleToString. The bytes are copied out on first access and the
// native buffer is released right after, so Text is safe to keep around.
type String struct {
	owned *Owned
	read  ReadFunc
	opts  []lazytext.Option

	once sync.Once
	text *lazytext.String
	err  error
}

// NewString takes ownership of a native string buffer. A zero ref reads as
// the empty string.
func NewString(ref Ref, read ReadFunc, release ReleaseFunc, opts ...lazytext.Option) *String {
	return &String{
		owned: NewOwned(ref, release),
		read:  read,
		opts:  opts,
	}
}

// Text copies the native bytes into a lazytext.String and releases the
// native buffer. Later calls return the same value.
func (s *String) Text() (*lazytext.String, error) {
	s.once.Do(func() {
		if s.owned.Raw().IsNull() {
			s.text = lazytext.FromBytes(nil, s.opts...)
			return
		}
		s.err = s.owned.Use(func(ref Ref) error {
			s.text = lazytext.FromBytes(s.read(ref), s.opts...)
			return nil
		})
		_ = s.owned.Close()
	})
	return s.text, s.err
}

// String returns the decoded text, or "" if it cannot be read or decoded.
func (s *String) String() string {
	t, err := s.Text()
	if err != nil {
		return ""
	}
	return t.String()
}

// Close releases the native buffer without reading it. It is a no-op after
// Text has been called.
func (s *String) Close() error {
	return s.owned.Close()
}
