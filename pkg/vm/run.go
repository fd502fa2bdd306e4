/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"io"
	"os"

	"github.com/loxlang/tlox/pkg/errs"
)

// RunFile reads the source file at path and runs it (spec §6's file-execution
// mode). A file that can't be read is reported as errs.NoInput (EX_NOINPUT,
// 66), distinct from a compile or runtime failure.
func RunFile(path string, out io.Writer, trace, printCode bool, setup func(*VM)) errs.Error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errs.NewNoInput(path, err)
	}
	return Run(string(source), out, trace, printCode, setup)
}
