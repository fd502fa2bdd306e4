/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

import (
	"strings"
	"testing"
)

func TestDisassembleSimpleInstruction(t *testing.T) {
	c := NewChunk()
	c.WriteOp(OpReturn, 1)

	var b strings.Builder
	Disassemble(c, "test chunk", &b)

	out := b.String()
	if !strings.Contains(out, "== test chunk ==") {
		t.Errorf("missing header, got %q", out)
	}
	if !strings.Contains(out, "000000 ") {
		t.Errorf("missing zero-padded offset, got %q", out)
	}
	if !strings.Contains(out, "OP_RETURN") {
		t.Errorf("missing opcode name, got %q", out)
	}
}

func TestDisassembleConstantInstruction(t *testing.T) {
	c := NewChunk()
	c.WriteConstant(NumberValue(1.5), 3)

	var b strings.Builder
	Disassemble(c, "consts", &b)

	out := b.String()
	if !strings.Contains(out, "OP_CONSTANT") {
		t.Errorf("missing OP_CONSTANT, got %q", out)
	}
	if !strings.Contains(out, "'1.5'") {
		t.Errorf("missing constant value, got %q", out)
	}
}

func TestDisassembleRepeatedLineUsesContinuationMarker(t *testing.T) {
	c := NewChunk()
	c.WriteOp(OpTrue, 5)
	c.WriteOp(OpFalse, 5)

	var b strings.Builder
	Disassemble(c, "lines", &b)

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 3 { // header + 2 instructions
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	if !strings.Contains(lines[2], "|") {
		t.Errorf("second instruction should use the continuation marker, got %q", lines[2])
	}
}

func TestDisassembleJumpInstruction(t *testing.T) {
	c := NewChunk()
	c.WriteOp(OpJump, 1)
	c.Write(0, 1)
	c.Write(2, 1)
	c.WriteOp(OpReturn, 1)

	var b strings.Builder
	Disassemble(c, "jump", &b)

	out := b.String()
	if !strings.Contains(out, "OP_JUMP") || !strings.Contains(out, "-> 5") {
		t.Errorf("unexpected jump disassembly: %q", out)
	}
}
