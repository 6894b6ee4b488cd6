// Package lazytext carries text across the native boundary.
//
// A String holds a decoded Go string, an encoded, terminator-delimited byte
// buffer, or both. Whichever form was not supplied at construction is
// computed the first time it is asked for and cached for the life of the
// instance, so text that only ever stays on one side of the boundary is never
// converted.
//
//	name := lazytext.FromString("main")
//	buf, _ := name.View(true) // "main\x00", encoded once
//
//	desc := lazytext.FromBytes(nativeBytes)
//	fmt.Println(desc) // decoded once, terminator dropped
//
// The encoded form always ends in a single zero byte, whatever the input
// looked like. Accessors take an includeTerminator flag so callers decide
// whether they get the native view (with terminator) or the text view
// (without).
//
// Encodings come from golang.org/x/text/encoding; the default is UTF-8.
// Conversion failures are reported as interop.ErrEncoding and are not
// retried.
package lazytext
