package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/internal/capi"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/native"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/llvm/nativetest"
)

type options struct {
	verbose bool
	fake    bool
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "llvm-interop",
		Short:        "Inspect the LLVM interop bindings",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log binding events to stderr")
	root.PersistentFlags().BoolVar(&opts.fake, "fake", false, "use the in-memory native fake instead of libLLVM")

	root.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print wrapper and LLVM versions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runVersion(cmd.OutOrStdout(), opts)
			},
		},
		&cobra.Command{
			Use:   "probe [module-name]",
			Short: "Create a context and module and report how handles materialize",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := "probe"
				if len(args) == 1 {
					name = args[0]
				}
				return runProbe(cmd.OutOrStdout(), opts, name)
			},
		},
	)
	return root
}

func selectNative(opts options) (native.Native, error) {
	if opts.fake {
		return nativetest.New(), nil
	}
	return capi.Default()
}

func newLogger(opts options) (logging.Logger, func(), error) {
	if !opts.verbose {
		return logging.Nop(), func() {}, nil
	}
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, err
	}
	return logging.NewZap(z), func() { _ = z.Sync() }, nil
}

func runVersion(w io.Writer, opts options) error {
	fmt.Fprintf(w, "llvm-interop %s\n", interop.WrapperVersion())
	fmt.Fprintf(w, "built against LLVM %s\n", interop.UpstreamLLVM)

	n, err := selectNative(opts)
	if errors.Is(err, interop.ErrNotBuilt) {
		fmt.Fprintf(w, "native library: unavailable (%v)\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	major, minor, patch := n.Version()
	fmt.Fprintf(w, "native library: LLVM %d.%d.%d\n", major, minor, patch)
	return nil
}
