/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package compiler

import "github.com/loxlang/tlox/pkg/bytecode"

// maxJump bounds a forward jump's or backward loop's distance: both are
// encoded as an unsigned 16-bit offset (spec §4.4: "65536 reports 'Too much
// code to jump over.'").
const maxJump = 1<<16 - 1

func (c *Compiler) currentChunk() *bytecode.Chunk {
	return c.fs.chunk()
}

func (c *Compiler) emitByte(b byte) {
	c.currentChunk().Write(b, c.prev.Line)
}

func (c *Compiler) emitOp(op bytecode.OpCode) {
	c.currentChunk().WriteOp(op, c.prev.Line)
}

func (c *Compiler) emitOps(op1, op2 bytecode.OpCode) {
	c.emitOp(op1)
	c.emitOp(op2)
}

func (c *Compiler) emitOpByte(op bytecode.OpCode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

// emitConstant emits the correct OP_CONSTANT[_LONG] form for value.
func (c *Compiler) emitConstant(value bytecode.Value) {
	c.currentChunk().WriteConstant(value, c.prev.Line)
}

// emitReturn emits the implicit `return;` every function falls through to:
// push null, then return it. Spec §4.4 doesn't special-case the script
// function here -- an implicit top-level return of null is exactly what
// running off the end of main's chunk does too.
func (c *Compiler) emitReturn() {
	c.emitOp(bytecode.OpNull)
	c.emitOp(bytecode.OpReturn)
}

// emitJump emits a jump opcode followed by a two-byte placeholder operand,
// returning the offset of the first placeholder byte for patchJump to fill
// in later (spec §4.4's "Jump emission").
func (c *Compiler) emitJump(op bytecode.OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.currentChunk().Code) - 2
}

// patchJump backfills the jump at offset with the distance from just past
// its operand to the current end of the chunk.
func (c *Compiler) patchJump(offset int) {
	jump := len(c.currentChunk().Code) - offset - 2
	if jump > maxJump {
		c.error("Too much code to jump over.")
		return
	}
	code := c.currentChunk().Code
	code[offset] = byte(jump >> 8)
	code[offset+1] = byte(jump)
}

// emitLoop emits OP_LOOP with a backward offset to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(bytecode.OpLoop)

	offset := len(c.currentChunk().Code) - loopStart + 2
	if offset > maxJump {
		c.error("Too much code to jump over.")
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}
