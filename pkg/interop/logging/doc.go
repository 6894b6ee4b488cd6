// Package logging provides a minimal logging facade for the interop layer.
//
// The Logger interface wraps a subset of log/slog. Two backends are provided:
//
//	logger := logging.New(nil)          // slog.Default()
//	logger := logging.NewZap(zapLogger) // go.uber.org/zap
//	logger := logging.Nop()             // discard
//
// Scopes, caches and the context-token registry log lifecycle events at debug
// level and misuse (double release, unresolvable tokens) at warn level.
// Native handles are attached with Handle so every record formats them the
// same way.
package logging
