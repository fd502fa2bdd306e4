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

	"github.com/loxlang/tlox/pkg/errs"
	"github.com/loxlang/tlox/pkg/lexer"
)

var devTokensCmd = &cobra.Command{
	Use:   "tokens <source-file>",
	Short: "Scan the source code and print the tokens",
	Long:  `Scan the source code and print the tokens. Only useful when developing tlox itself.`,
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			errs.ReportAndExit(errs.NewNoInput(args[0], err))
		}

		lx := lexer.New(string(source))
		line := -1
		for {
			tok := lx.NextToken()
			if tok.Line != line {
				fmt.Printf("%4d ", tok.Line)
				line = tok.Line
			} else {
				fmt.Print("   | ")
			}
			fmt.Printf("%-12s '%s'\n", tok.Kind, tok.Lexeme)

			if tok.Kind == lexer.TokenEOF {
				break
			}
		}
		errs.ReportAndExit(nil)
	},
}
