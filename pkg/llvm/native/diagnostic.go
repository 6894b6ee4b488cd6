package native

import (
	"golang.org/x/text/encoding"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/lazytext"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/token"
)

// DiagnosticSink receives diagnostics reported by a native context.
type DiagnosticSink interface {
	HandleDiagnostic(sev Severity, desc *lazytext.String)
}

// EncodedSink is implemented by sinks whose descriptions are not UTF-8.
type EncodedSink interface {
	TextEncoding() encoding.Encoding
}

// DispatchDiagnostic is the body of the native diagnostic callback. It
// resolves tok to the registered DiagnosticSink and forwards the
// description. It reports false when the token no longer resolves. Panics
// raised by the sink are swallowed so they never unwind into native frames.
func DispatchDiagnostic(tok token.Token, sev Severity, desc []byte) (handled bool) {
	sink, ok := token.Resolve[DiagnosticSink](tok)
	if !ok {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			handled = false
		}
	}()
	var opts []lazytext.Option
	if es, ok := sink.(EncodedSink); ok && es.TextEncoding() != nil {
		opts = append(opts, lazytext.WithEncoding(es.TextEncoding()))
	}
	sink.HandleDiagnostic(sev, lazytext.FromBytes(desc, opts...))
	return true
}
