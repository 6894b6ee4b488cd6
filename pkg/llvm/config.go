package llvm

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/internal/capi"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

// Config collects the knobs for creating a Context. The zero value binds to
// the linked LLVM library, logs through slog.Default and uses UTF-8.
type Config struct {
	// Native is the ABI implementation. Nil selects the cgo binding, which
	// is only present in builds with the llvm tag.
	Native native.Native

	// Logger receives lifecycle events and diagnostics. Nil selects
	// logging.New(nil).
	Logger logging.Logger

	// Encoding is used for names and messages exchanged with LLVM.
	Encoding encoding.Encoding

	// Name labels the context in log records.
	Name string
}

func (c Config) withDefaults() (Config, error) {
	if c.Native == nil {
		n, err := capi.Default()
		if err != nil {
			return c, err
		}
		c.Native = n
	}
	if c.Logger == nil {
		c.Logger = logging.New(nil)
	}
	if c.Encoding == nil {
		c.Encoding = unicode.UTF8
	}
	if c.Name == "" {
		c.Name = "llvm"
	}
	return c, nil
}
