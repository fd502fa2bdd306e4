/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package vm implements the tlox stack-based virtual machine (spec §4.5):
// the call-frame dispatch loop that executes the bytecode pkg/compiler
// produces.
package vm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/errs"
	"github.com/loxlang/tlox/pkg/table"
)

// VM is a tlox Virtual Machine (spec §3's "VM State"). One VM owns one
// stack, one frame array, and one heap -- per spec §9's "single-threaded VM
// as process-wide state" design note, nothing here is safe to share across
// goroutines, and callers wanting more than one VM must keep each its own
// instance rather than any hidden global.
type VM struct {
	// DebugTraceExecution, when true, makes the VM disassemble each
	// instruction and dump the stack before executing it (spec §6's debug
	// toggles).
	DebugTraceExecution bool

	// out is where `print` and OP_DEBUG send their output.
	out io.Writer

	stack stack

	frames     [framesMax]callFrame
	frameCount int

	// globals maps global variable names to their values (spec §3).
	globals *table.Table

	// globalConsts records which globals were declared `const var` (spec
	// §3's global_consts table), checked by SET_GLOBAL. The compiler rejects
	// an assignment to a const global declared earlier in the same
	// compilation; this check catches the rest, such as an assignment inside
	// a function compiled before the const declaration, or one made on a
	// later REPL line.
	globalConsts *table.Table

	// strings is the string-intern table, shared with whatever Compiler
	// produced the function being run, so runtime-allocated strings (e.g.
	// concatenation results) dedupe against compile-time literals.
	strings *table.Table

	// heap tracks every Object this VM has allocated, for the record-keeping
	// spec §3 calls "objects: head of the heap-object list" -- here a Heap
	// rather than an intrusive list (see pkg/bytecode's Heap).
	heap *bytecode.Heap
}

// New creates a VM that writes output to out, sharing strings and heap with
// the Compiler that will produce the code it runs.
func New(out io.Writer, strings *table.Table, heap *bytecode.Heap) *VM {
	return &VM{
		out:          out,
		globals:      table.New(),
		globalConsts: table.New(),
		strings:      strings,
		heap:         heap,
	}
}

func (vm *VM) frame() *callFrame {
	return &vm.frames[vm.frameCount-1]
}

// Interpret runs fn (normally the implicit top-level function a Compiler
// produced) to completion. It returns nil on success, or an
// *errs.RuntimeError if execution failed.
func (vm *VM) Interpret(fn *bytecode.ObjFunction) (err errs.Error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*errs.RuntimeError); ok {
				err = e
				return
			}
			err = errs.NewICE("unexpected panic: %v", r)
		}
	}()

	vm.stack.reset()
	vm.frameCount = 0

	// An implicit call to the top-level function, exactly like any other
	// call: push the callee, then set up its frame. This keeps the implicit
	// entry point consistent with ordinary CALL handling instead of being a
	// special case in run().
	vm.stack.push(bytecode.ObjValue(fn))
	vm.pushFrame(fn, 0)

	return vm.run()
}

// pushFrame installs a new call frame for fn, whose argCount arguments (plus
// the callee itself) are already sitting on top of the stack.
func (vm *VM) pushFrame(fn *bytecode.ObjFunction, argCount int) {
	vm.frames[vm.frameCount] = callFrame{
		function:  fn,
		slotsBase: vm.stack.size() - argCount - 1,
	}
	vm.frameCount++
}

// run is the main dispatch loop (spec §4.5's opcode table).
func (vm *VM) run() errs.Error {
	frame := vm.frame()

	for {
		if vm.DebugTraceExecution {
			vm.traceInstruction(frame)
		}

		instruction := bytecode.OpCode(vm.readByte(frame))

		switch instruction {
		case bytecode.OpConstant, bytecode.OpConstantLong:
			vm.stack.push(vm.readConstant(frame, instruction == bytecode.OpConstantLong))

		case bytecode.OpNull:
			vm.stack.push(bytecode.NullValue)

		case bytecode.OpTrue:
			vm.stack.push(bytecode.BoolValue(true))

		case bytecode.OpFalse:
			vm.stack.push(bytecode.BoolValue(false))

		case bytecode.OpPop:
			vm.stack.pop()

		case bytecode.OpDup:
			vm.stack.push(vm.stack.peek(0))

		case bytecode.OpGetLocal:
			slot := int(vm.readByte(frame))
			vm.stack.push(vm.stack.at(frame.slotsBase + slot))

		case bytecode.OpSetLocal:
			slot := int(vm.readByte(frame))
			vm.stack.setAt(frame.slotsBase+slot, vm.stack.peek(0))

		case bytecode.OpGetGlobal, bytecode.OpGetGlobalLong:
			name := vm.readConstant(frame, instruction == bytecode.OpGetGlobalLong).Obj.(*bytecode.ObjString)
			value, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.stack.push(value)

		case bytecode.OpDefineGlobal, bytecode.OpDefineGlobalLong:
			name := vm.readConstant(frame, instruction == bytecode.OpDefineGlobalLong).Obj.(*bytecode.ObjString)
			vm.globals.Set(name, vm.stack.pop())

		case bytecode.OpDefineGlobalConst, bytecode.OpDefineGlobalConstLong:
			name := vm.readConstant(frame, instruction == bytecode.OpDefineGlobalConstLong).Obj.(*bytecode.ObjString)
			vm.globals.Set(name, vm.stack.pop())
			vm.globalConsts.Set(name, bytecode.BoolValue(true))

		case bytecode.OpSetGlobal, bytecode.OpSetGlobalLong:
			name := vm.readConstant(frame, instruction == bytecode.OpSetGlobalLong).Obj.(*bytecode.ObjString)
			if _, isConst := vm.globalConsts.Get(name); isConst {
				return vm.runtimeError("Cannot assign to const variable '%s'.", name.Chars)
			}
			// set reports "was new insert"; SET_GLOBAL must not create
			// bindings, so a new insert is rolled back and reported as an
			// error instead (spec §9's "SET_GLOBAL non-creation").
			if vm.globals.Set(name, vm.stack.peek(0)) {
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}

		case bytecode.OpEqual:
			b := vm.stack.pop()
			a := vm.stack.pop()
			vm.stack.push(bytecode.BoolValue(bytecode.ValuesEqual(a, b)))

		case bytecode.OpGreater:
			if err := vm.numericBinaryOp(func(a, b float64) bytecode.Value { return bytecode.BoolValue(a > b) }); err != nil {
				return err
			}

		case bytecode.OpLess:
			if err := vm.numericBinaryOp(func(a, b float64) bytecode.Value { return bytecode.BoolValue(a < b) }); err != nil {
				return err
			}

		case bytecode.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}

		case bytecode.OpSubtract:
			if err := vm.numericBinaryOp(func(a, b float64) bytecode.Value { return bytecode.NumberValue(a - b) }); err != nil {
				return err
			}

		case bytecode.OpMultiply:
			if err := vm.numericBinaryOp(func(a, b float64) bytecode.Value { return bytecode.NumberValue(a * b) }); err != nil {
				return err
			}

		case bytecode.OpDivide:
			if err := vm.numericBinaryOp(func(a, b float64) bytecode.Value { return bytecode.NumberValue(a / b) }); err != nil {
				return err
			}

		case bytecode.OpNot:
			vm.stack.push(bytecode.BoolValue(vm.stack.pop().IsFalsey()))

		case bytecode.OpNegate:
			if vm.stack.peek(0).Kind != bytecode.ValNumber {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.stack.push(bytecode.NumberValue(-vm.stack.pop().Number))

		case bytecode.OpPrint:
			fmt.Fprintln(vm.out, vm.stack.pop().String())

		case bytecode.OpJump:
			offset := vm.readShort(frame)
			frame.ip += int(offset)

		case bytecode.OpJumpIfFalse:
			offset := vm.readShort(frame)
			if vm.stack.peek(0).IsFalsey() {
				frame.ip += int(offset)
			}

		case bytecode.OpLoop:
			offset := vm.readShort(frame)
			frame.ip -= int(offset)

		case bytecode.OpCall:
			argCount := int(vm.readByte(frame))
			if err := vm.call(argCount); err != nil {
				return err
			}
			frame = vm.frame()

		case bytecode.OpReturn:
			result := vm.stack.pop()
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.stack.pop() // the implicit top-level function itself
				return nil
			}
			vm.stack.top = frame.slotsBase
			vm.stack.push(result)
			frame = vm.frame()

		case bytecode.OpDebug:
			vm.dumpState(frame)

		default:
			return vm.runtimeError("Unknown opcode %d.", instruction)
		}
	}
}

func (vm *VM) readByte(frame *callFrame) byte {
	b := frame.chunk().Code[frame.ip]
	frame.ip++
	return b
}

func (vm *VM) readShort(frame *callFrame) uint16 {
	hi := frame.chunk().Code[frame.ip]
	lo := frame.chunk().Code[frame.ip+1]
	frame.ip += 2
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) readConstant(frame *callFrame, long bool) bytecode.Value {
	index, width := bytecode.ReadConstantIndex(frame.chunk().Code, frame.ip, long)
	frame.ip += width
	return frame.chunk().Constants[index]
}

func (vm *VM) numericBinaryOp(op func(a, b float64) bytecode.Value) errs.Error {
	if vm.stack.peek(0).Kind != bytecode.ValNumber || vm.stack.peek(1).Kind != bytecode.ValNumber {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.stack.pop()
	a := vm.stack.pop()
	vm.stack.push(op(a.Number, b.Number))
	return nil
}

// add implements OP_ADD: numeric addition, or string concatenation when both
// operands are Strings (spec §4.5).
func (vm *VM) add() errs.Error {
	b := vm.stack.peek(0)
	a := vm.stack.peek(1)

	switch {
	case a.Kind == bytecode.ValNumber && b.Kind == bytecode.ValNumber:
		vm.stack.pop()
		vm.stack.pop()
		vm.stack.push(bytecode.NumberValue(a.Number + b.Number))
	case a.IsObjKind(bytecode.ObjKindString) && b.IsObjKind(bytecode.ObjKindString):
		vm.stack.pop()
		vm.stack.pop()
		vm.stack.push(bytecode.ObjValue(vm.internString(a.Obj.(*bytecode.ObjString).Chars + b.Obj.(*bytecode.ObjString).Chars)))
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
	return nil
}

// InternString exposes internString to external collaborators (pkg/nativelib)
// that need to hand a Go string back to tlox code as a Value: any native
// returning a string must go through this, or it would break spec §3's "at
// most one String object exists per distinct content" invariant.
func (vm *VM) InternString(s string) *bytecode.ObjString {
	return vm.internString(s)
}

// internString returns the single ObjString for s, allocating and tracking a
// new one only if s isn't already interned (spec §3's interning invariant).
func (vm *VM) internString(s string) *bytecode.ObjString {
	hash := bytecode.HashString(s)
	if existing := vm.strings.FindString(s, hash); existing != nil {
		return existing
	}
	obj := &bytecode.ObjString{Chars: s, Hash: hash}
	vm.strings.Set(obj, bytecode.NullValue)
	vm.heap.Track(obj)
	return obj
}

// call implements the CALL protocol (spec §4.5): the callee sits argCount
// slots below the top of the stack.
func (vm *VM) call(argCount int) errs.Error {
	callee := vm.stack.peek(argCount)

	switch {
	case callee.IsObjKind(bytecode.ObjKindFunction):
		fn := callee.Obj.(*bytecode.ObjFunction)
		if argCount != fn.Arity {
			return vm.runtimeError("Expected %d arguments but got %d.", fn.Arity, argCount)
		}
		if vm.frameCount == framesMax {
			return vm.runtimeError("Stack overflow.")
		}
		vm.pushFrame(fn, argCount)
		return nil

	case callee.IsObjKind(bytecode.ObjKindNative):
		native := callee.Obj.(*bytecode.ObjNative)
		if !arityInBounds(native, argCount) {
			return vm.runtimeError("Expected %s arguments but got %d.", arityDescription(native), argCount)
		}
		args := make([]bytecode.Value, argCount)
		for i := 0; i < argCount; i++ {
			args[i] = vm.stack.at(vm.stack.size() - argCount + i)
		}
		result, err := native.Fn(args)
		if err != nil {
			return vm.runtimeError("%s", err.Error())
		}
		vm.stack.top -= argCount + 1
		vm.stack.push(result)
		return nil

	default:
		return vm.runtimeError("Can only call functions and classes.")
	}
}

func arityInBounds(native *bytecode.ObjNative, argCount int) bool {
	if native.MinArity == -1 && native.MaxArity == -1 {
		return true
	}
	return argCount >= native.MinArity && argCount <= native.MaxArity
}

func arityDescription(native *bytecode.ObjNative) string {
	if native.MinArity == native.MaxArity {
		return fmt.Sprintf("%d", native.MinArity)
	}
	return fmt.Sprintf("%d to %d", native.MinArity, native.MaxArity)
}

// runtimeError formats msg, prints it and a full stack trace to stderr, resets
// the stack, and panics with an *errs.RuntimeError for Interpret's recover to
// catch (spec §4.5's "Runtime error reporting").
func (vm *VM) runtimeError(format string, a ...interface{}) errs.Error {
	message := fmt.Sprintf(format, a...)

	var trace []string
	for i := vm.frameCount - 1; i >= 0; i-- {
		f := &vm.frames[i]
		line := f.chunk().GetLine(f.ip - 1)
		trace = append(trace, fmt.Sprintf("[line %d] in %s", line, f.name()))
	}

	err := errs.NewRuntimeError(trace, "%s", message)
	fmt.Fprintln(os.Stderr, err)

	vm.stack.reset()
	vm.frameCount = 0

	panic(err)
}

func (vm *VM) traceInstruction(frame *callFrame) {
	var b strings.Builder
	b.WriteString("          ")
	for i := 0; i < vm.stack.size(); i++ {
		fmt.Fprintf(&b, "[ %s ]", vm.stack.at(i).String())
	}
	fmt.Fprintln(vm.out, b.String())
	bytecode.DisassembleInstruction(frame.chunk(), vm.out, frame.ip)
}

// dumpState implements OP_DEBUG: a pure state dump that does not halt
// execution (spec §9's "Open question -- debug opcode side effects",
// resolved in favor of "DEBUG never halts").
func (vm *VM) dumpState(frame *callFrame) {
	fmt.Fprintf(vm.out, "-- debug: frame %d (%s), ip %d, stack depth %d --\n",
		vm.frameCount-1, frame.name(), frame.ip, vm.stack.size())
}
