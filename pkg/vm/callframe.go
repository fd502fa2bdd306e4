/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/loxlang/tlox/pkg/bytecode"

// callFrame is the runtime record of one ongoing call (spec §3's Call
// Frame): the function running, its instruction pointer, and the base of
// its window into the VM stack. slotsBase points at slot 0 of the window,
// which holds the callee itself (spec §3: "slots[0] holds the callee itself
// and is reserved").
type callFrame struct {
	function  *bytecode.ObjFunction
	ip        int
	slotsBase int
}

func (f *callFrame) chunk() *bytecode.Chunk {
	return f.function.Chunk
}

func (f *callFrame) name() string {
	if f.function.Name == nil {
		return "script"
	}
	return f.function.Name.Chars
}
