/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package errs

import (
	"fmt"
	"os"
)

// ReportAndExit prints err to stderr (unless nil) and exits with the
// matching status code. It's fine for err to be nil: that just means a
// successful run.
func ReportAndExit(err Error) {
	if err == nil {
		os.Exit(StatusCodeSuccess)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(err.ExitCode())
}
