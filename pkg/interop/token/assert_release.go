//go:build !interopdebug

package token

func assertf(bool, string, ...any) {}
