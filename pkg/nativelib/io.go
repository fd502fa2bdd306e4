/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package nativelib

import (
	"bufio"
	"io"

	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/vm"
)

// Ear is something that can receive a line of input for tlox code, grounded
// on stackedboxes-romualdo's romutil.Ear abstraction -- renamed here to carry
// one line at a time to a native function instead of a line to the story
// engine's input loop, per spec §1's "reading/writing the process's stdio".
type Ear interface {
	// Listen returns the next line of input, or "" once the source is
	// exhausted.
	Listen() string
}

// StdEar returns an Ear reading lines from r (pass os.Stdin for a real
// process).
func StdEar(r io.Reader) Ear {
	return &readerEar{bufio.NewScanner(r)}
}

type readerEar struct {
	scanner *bufio.Scanner
}

func (e *readerEar) Listen() string {
	if !e.scanner.Scan() {
		return ""
	}
	return e.scanner.Text()
}

// FixedEar is an Ear that produces a predetermined sequence of lines, then
// empty strings forever -- useful for testing read_line without real stdin,
// mirroring romutil's NewFatefulEar.
type FixedEar struct {
	lines []string
}

// NewFixedEar creates a FixedEar that yields lines in order.
func NewFixedEar(lines ...string) *FixedEar {
	return &FixedEar{lines: lines}
}

func (e *FixedEar) Listen() string {
	if len(e.lines) == 0 {
		return ""
	}
	line := e.lines[0]
	e.lines = e.lines[1:]
	return line
}

// RegisterIONatives registers read_line(), which returns the next line ear
// produces as an interned String.
func RegisterIONatives(theVM *vm.VM, ear Ear) {
	theVM.RegisterNative("read_line", func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.ObjValue(theVM.InternString(ear.Listen())), nil
	}, 0, 0)
}
