/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import "github.com/loxlang/tlox/pkg/bytecode"

// uint8Count is the number of distinct values a one-byte slot index can
// address -- the width of OP_GET_LOCAL/OP_SET_LOCAL's operand.
const uint8Count = 256

// framesMax bounds the call-frame array (spec §3): 64 nested calls.
const framesMax = 64

// stackMax is the VM stack's fixed capacity: FRAMES_MAX * UINT8_COUNT (spec
// §3), enough room for every nested frame to fill its own local window.
const stackMax = framesMax * uint8Count

// stack is the VM's runtime value stack (spec §3: "stack: fixed-capacity
// Value array"). stackedboxes-romualdo's Stack grows a backing slice on
// demand and hands call frames a *StackView offset into it; tlox's stack
// size is a hard invariant tied directly to framesMax, so it's a plain
// fixed-size array instead, and frames address it directly by absolute
// index (frame.slotsBase + slot) rather than through a view type.
type stack struct {
	data [stackMax]bytecode.Value
	top  int
}

func (s *stack) reset() {
	s.top = 0
}

func (s *stack) size() int {
	return s.top
}

// push pushes a new value onto the stack.
func (s *stack) push(v bytecode.Value) {
	s.data[s.top] = v
	s.top++
}

// pop pops a value from the top of the stack and returns it.
func (s *stack) pop() bytecode.Value {
	s.top--
	return s.data[s.top]
}

// peek returns the value distance slots from the top, without popping.
// Passing 0 means "the value on top of the stack".
func (s *stack) peek(distance int) bytecode.Value {
	return s.data[s.top-1-distance]
}

// at accesses the stack as a plain array, by absolute index.
func (s *stack) at(index int) bytecode.Value {
	return s.data[index]
}

// setAt sets the value at an absolute stack index.
func (s *stack) setAt(index int, value bytecode.Value) {
	s.data[index] = value
}
