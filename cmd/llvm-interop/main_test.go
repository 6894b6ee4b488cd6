package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionWithFake(t *testing.T) {
	out, err := execute(t, "version", "--fake")
	require.NoError(t, err)
	assert.Contains(t, out, "llvm-interop ")
	assert.Contains(t, out, "native library: LLVM 18.1.8")
}

func TestProbeWithFake(t *testing.T) {
	out, err := execute(t, "--fake", "probe", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "const add i32 2, 3 -> ConstantInt (5)")
	assert.Contains(t, out, "identity preserved: true")
	assert.Contains(t, out, "; ModuleID = 'demo'")
	assert.Contains(t, out, "define @add")
}

func TestProbeRejectsExtraArgs(t *testing.T) {
	_, err := execute(t, "--fake", "probe", "a", "b")
	require.Error(t, err)
}
