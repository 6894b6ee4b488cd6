package llvm

import (
	"context"
	"slices"

	"golang.org/x/text/encoding"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/lazytext"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
)

// Diagnostic is a message LLVM reported through the context's diagnostic
// handler.
type Diagnostic struct {
	Severity native.Severity
	Message  string
}

func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Message
}

// Diagnostics returns the diagnostics reported so far, oldest first.
func (c *Context) Diagnostics() []Diagnostic {
	return slices.Clone(c.st.diags)
}

// diagnosticSink is what the diagnostic token refers to. It runs on the
// thread LLVM reports from, inside the native call that triggered it.
type diagnosticSink struct {
	st *contextState
}

// TextEncoding makes the dispatcher read descriptions in the context
// encoding.
func (s diagnosticSink) TextEncoding() encoding.Encoding { return s.st.enc }

func (s diagnosticSink) HandleDiagnostic(sev native.Severity, desc *lazytext.String) {
	st := s.st
	ctx := context.Background()
	msg, err := desc.Decode()
	if err != nil {
		raw, _ := desc.Bytes(false)
		msg = string(raw)
		st.log.Warn(ctx, "undecodable llvm diagnostic", "severity", sev.String(), "error", err)
	}
	st.diags = append(st.diags, Diagnostic{Severity: sev, Message: msg})

	switch sev {
	case native.SeverityError:
		st.log.Error(ctx, "llvm diagnostic", "severity", sev.String(), "message", msg)
	case native.SeverityWarning:
		st.log.Warn(ctx, "llvm diagnostic", "severity", sev.String(), "message", msg)
	default:
		st.log.Debug(ctx, "llvm diagnostic", "severity", sev.String(), "message", msg)
	}
}
