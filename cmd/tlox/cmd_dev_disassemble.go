/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/compiler"
	"github.com/loxlang/tlox/pkg/errs"
	"github.com/loxlang/tlox/pkg/table"
)

var devDisassembleCmd = &cobra.Command{
	Use:   "disassemble <source-file>",
	Short: "Compile a tlox source file and print its disassembly",
	Long:  `Compile a tlox source file and print the disassembled bytecode for the top-level script and every nested function.`,
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			errs.ReportAndExit(errs.NewNoInput(args[0], err))
		}

		fn, compileErr := compiler.Compile(string(source), table.New(), &bytecode.Heap{})
		if compileErr != nil {
			errs.ReportAndExit(compileErr)
		}

		fmt.Printf("Disassembling %s\n", args[0])
		disassembleRecursively(fn)
		errs.ReportAndExit(nil)
	},
}

// disassembleRecursively prints fn's chunk and then every ObjFunction found
// in its constant pool, so nested function bodies show up alongside the
// top-level script.
func disassembleRecursively(fn *bytecode.ObjFunction) {
	label := "<script>"
	if fn.Name != nil {
		label = fn.Name.Chars
	}
	bytecode.Disassemble(fn.Chunk, label, os.Stdout)

	for _, c := range fn.Chunk.Constants {
		if nested, ok := c.Obj.(*bytecode.ObjFunction); ok {
			disassembleRecursively(nested)
		}
	}
}
