/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/compiler"
	"github.com/loxlang/tlox/pkg/config"
	"github.com/loxlang/tlox/pkg/table"
	"github.com/loxlang/tlox/pkg/vm"
)

// runREPL implements spec §6's REPL: print the prompt, read a line, feed it
// through the compiler and VM, loop. `q` or `quit` exits, as does EOF on
// stdin. One VM, string table, and heap are shared across every line, so
// globals declared on one line are visible on the next -- the same
// single-process behavior as the C original's run_repl, which calls
// virtual_machine_interpret repeatedly against one initialized VM.
func runREPL(cfg config.Config, setup func(*vm.VM)) {
	strs := table.New()
	heap := &bytecode.Heap{}
	theVM := vm.New(os.Stdout, strs, heap)
	theVM.DebugTraceExecution = cfg.DebugTraceExecution
	if setup != nil {
		setup(theVM)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(cfg.Prompt)
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "q" || line == "quit" {
			return
		}
		if line == "" {
			continue
		}

		fn, compileErr := compiler.Compile(line, strs, heap)
		if compileErr != nil {
			fmt.Fprintln(os.Stderr, compileErr)
			continue
		}

		if cfg.DebugPrintCode {
			bytecode.Disassemble(fn.Chunk, "<repl>", os.Stdout)
		}

		if runErr := theVM.Interpret(fn); runErr != nil {
			fmt.Fprintln(os.Stderr, runErr)
		}
	}
}
