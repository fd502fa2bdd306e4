/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"github.com/spf13/cobra"

	"github.com/loxlang/tlox/pkg/errs"
	"github.com/loxlang/tlox/pkg/golden"
)

// flagDevTestSuite is the value of the --suite flag of the `dev test` command.
var flagDevTestSuite string

var devTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Run tlox's golden-file test suite",
	Long:  `Run tlox's golden-file test suite: every *.toml fixture found under --suite.`,
	Args:  cobra.ExactArgs(0),

	Run: func(cmd *cobra.Command, args []string) {
		errs.ReportAndExit(golden.RunSuite(flagDevTestSuite))
	},
}

func init() {
	devTestCmd.Flags().StringVarP(&flagDevTestSuite, "suite", "s",
		"./testdata", "Path to the golden-test suite to run")
}
