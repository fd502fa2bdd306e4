/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package errs

// Process exit codes. The compile- and runtime-error codes match the
// traditional BSD sysexits.h values named by the language spec: EX_DATAERR
// for compile-time failures and EX_SOFTWARE for runtime failures.
const (
	// StatusCodeSuccess indicates a successful execution.
	StatusCodeSuccess = 0

	// StatusCodeCompileError indicates a compile-time error (EX_DATAERR).
	StatusCodeCompileError = 65

	// StatusCodeRuntimeError indicates a runtime error (EX_SOFTWARE).
	StatusCodeRuntimeError = 70

	// StatusCodeNoInput indicates the input file could not be read
	// (EX_NOINPUT).
	StatusCodeNoInput = 66

	// StatusCodeBadUsage indicates some user error in the usage of the tlox
	// tool (e.g., passing the wrong number of arguments).
	StatusCodeBadUsage = 64

	// StatusCodeICE indicates an internal invariant was violated -- a bug in
	// tlox itself, not in the program being compiled or run.
	StatusCodeICE = 125
)
