package main

import (
	"fmt"
	"io"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/token"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm"
)

func runProbe(w io.Writer, opts options, name string) (err error) {
	n, err := selectNative(opts)
	if err != nil {
		return err
	}
	log, sync, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer sync()
	token.SetLogger(log)

	ctx, err := llvm.NewContext(llvm.Config{Native: n, Logger: log, Name: name})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ctx.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	i32, err := ctx.Int32Type()
	if err != nil {
		return err
	}
	two, err := ctx.ConstInt(i32, 2, false)
	if err != nil {
		return err
	}
	three, err := ctx.ConstInt(i32, 3, false)
	if err != nil {
		return err
	}
	sum, err := ctx.ConstAdd(two, three)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "const add i32 2, 3 -> %s", sum.Kind())
	if ci, ok := sum.(*llvm.ConstantInt); ok {
		v, err := ci.ZExtValue()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, " (%d)", v)
	}
	fmt.Fprintln(w)

	again, err := ctx.ConstAdd(two, three)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "identity preserved: %t\n", again == sum)

	mod, err := ctx.NewModule(name)
	if err != nil {
		return err
	}
	fnType, err := ctx.FunctionType(i32, []llvm.Type{i32, i32}, false)
	if err != nil {
		return err
	}
	fn, err := mod.AddFunction("add", fnType)
	if err != nil {
		return err
	}
	if err := emitAdd(ctx, fn); err != nil {
		return err
	}

	ir, err := mod.Print()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s\n", ir)
	return nil
}

func emitAdd(ctx *llvm.Context, fn *llvm.Function) error {
	entry, err := fn.AppendBasicBlock("entry")
	if err != nil {
		return err
	}
	b, err := ctx.NewBuilder()
	if err != nil {
		return err
	}
	defer b.Close()

	if err := b.PositionAtEnd(entry); err != nil {
		return err
	}
	lhs, err := fn.Param(0)
	if err != nil {
		return err
	}
	rhs, err := fn.Param(1)
	if err != nil {
		return err
	}
	sum, err := b.Add(lhs, rhs, "sum")
	if err != nil {
		return err
	}
	_, err = b.Ret(sum)
	return err
}
