/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package nativelib registers tlox's native (host-implemented) functions
// (spec §4.6). Per spec §1, natives are explicitly out of the VM's core:
// "external collaborators whose only interaction with the core is
// registering named native callables and reading/writing the process's
// stdio." This package is that collaborator.
package nativelib

import "github.com/loxlang/tlox/pkg/vm"

// RegisterAll registers every native tlox ships with: clock, the string
// natives, and read_line. ear supplies read_line's input; pass
// StdEar(os.Stdin) for a real process, or a fixed-script Ear in tests.
func RegisterAll(theVM *vm.VM, ear Ear) {
	RegisterClock(theVM)
	RegisterStringNatives(theVM)
	RegisterIONatives(theVM, ear)
}
