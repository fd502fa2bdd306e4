/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/loxlang/tlox/pkg/config"
	"github.com/loxlang/tlox/pkg/errs"
	"github.com/loxlang/tlox/pkg/nativelib"
	"github.com/loxlang/tlox/pkg/vm"
)

// flagNDebug is the value of the --ndebug flag: it forces both debug
// toggles (spec §6) off regardless of what pkg/config loaded.
var flagNDebug bool

var rootCmd = &cobra.Command{
	Use:          "tlox [path]",
	SilenceUsage: true,
	Short:        "tlox is a bytecode compiler and virtual machine for a small dynamic language",
	Long: `tlox compiles and runs Lox-like programs through a single-pass bytecode
compiler and a stack-based virtual machine. With no arguments it starts a
REPL; given a path, it compiles and runs that file.`,
	Args: cobra.MaximumNArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			errs.ReportAndExit(errs.NewToolError("loading .tloxrc.toml: %v", err))
		}
		if flagNDebug {
			cfg.DebugPrintCode = false
			cfg.DebugTraceExecution = false
		}

		setup := func(theVM *vm.VM) {
			nativelib.RegisterAll(theVM, nativelib.StdEar(os.Stdin))
		}

		if len(args) == 0 {
			runREPL(cfg, setup)
			return
		}

		runErr := vm.RunFile(args[0], os.Stdout, cfg.DebugTraceExecution, cfg.DebugPrintCode, setup)
		errs.ReportAndExit(runErr)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&flagNDebug, "ndebug", false, "disable debug tracing and chunk disassembly")

	devCmd.AddCommand(devTokensCmd, devDisassembleCmd, devTestCmd)
	rootCmd.AddCommand(devCmd)
}
