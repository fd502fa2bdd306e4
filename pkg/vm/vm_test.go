/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/compiler"
	"github.com/loxlang/tlox/pkg/errs"
	"github.com/loxlang/tlox/pkg/table"
)

func newTestStrings() *table.Table { return table.New() }
func newTestHeap() *bytecode.Heap  { return &bytecode.Heap{} }

func mustCompile(t *testing.T, source string, strs *table.Table, heap *bytecode.Heap) *bytecode.ObjFunction {
	t.Helper()
	fn, err := compiler.Compile(source, strs, heap)
	if err != nil {
		t.Fatalf("unexpected compile error for %q: %v", source, err)
	}
	return fn
}

func runOK(t *testing.T, source string) string {
	t.Helper()
	var out bytes.Buffer
	if err := Run(source, &out, false, false, nil); err != nil {
		t.Fatalf("unexpected error running %q: %v", source, err)
	}
	return out.String()
}

func runExpectRuntimeError(t *testing.T, source string) *errs.RuntimeError {
	t.Helper()
	var out bytes.Buffer
	err := Run(source, &out, false, false, nil)
	if err == nil {
		t.Fatalf("expected a runtime error for %q, got none", source)
	}
	re, ok := err.(*errs.RuntimeError)
	if !ok {
		t.Fatalf("expected *errs.RuntimeError, got %T: %v", err, err)
	}
	return re
}

func TestRunArithmeticPrecedence(t *testing.T) {
	if out := runOK(t, "print 1 + 2 * 3 - 4 / 2;"); out != "5\n" {
		t.Errorf("got %q, want \"5\\n\"", out)
	}
}

func TestRunStringInterning(t *testing.T) {
	out := runOK(t, `var a = "foo"; var b = "foo"; print a == b;`)
	if out != "true\n" {
		t.Errorf("got %q, want \"true\\n\"", out)
	}
}

func TestRunGlobalsLocalsScope(t *testing.T) {
	out := runOK(t, "var x = 1; { var x = 2; { var x = 3; print x; } print x; } print x;")
	if out != "3\n2\n1\n" {
		t.Errorf("got %q, want \"3\\n2\\n1\\n\"", out)
	}
}

func TestRunControlFlow(t *testing.T) {
	out := runOK(t, "var i = 0; while (i < 3) { print i; i = i + 1; }")
	if out != "0\n1\n2\n" {
		t.Errorf("got %q, want \"0\\n1\\n2\\n\"", out)
	}
}

func TestRunShortCircuitOr(t *testing.T) {
	out := runOK(t, `print false or "yes";`)
	if out != "yes\n" {
		t.Errorf("got %q, want \"yes\\n\"", out)
	}
}

func TestRunTypeErrorOnAdd(t *testing.T) {
	re := runExpectRuntimeError(t, `print 1 + "a";`)
	if !strings.Contains(re.Message, "Operands must be two numbers or two strings.") {
		t.Errorf("unexpected message: %v", re.Message)
	}
	if len(re.StackTrace) != 1 || !strings.Contains(re.StackTrace[0], "[line 1] in script") {
		t.Errorf("unexpected stack trace: %v", re.StackTrace)
	}
}

func TestRunUndefinedGlobal(t *testing.T) {
	re := runExpectRuntimeError(t, "print x;")
	if !strings.Contains(re.Message, "Undefined variable 'x'.") {
		t.Errorf("unexpected message: %v", re.Message)
	}
}

func TestRunFunctionCallAndReturn(t *testing.T) {
	out := runOK(t, "func add(a, b) { return a + b; } print add(1, 2);")
	if out != "3\n" {
		t.Errorf("got %q, want \"3\\n\"", out)
	}
}

func TestRunArityMismatchIsRuntimeError(t *testing.T) {
	re := runExpectRuntimeError(t, "func add(a, b) { return a + b; } add(1);")
	if !strings.Contains(re.Message, "Expected 2 arguments but got 1.") {
		t.Errorf("unexpected message: %v", re.Message)
	}
}

func TestRunDeepRecursionOverflowsStack(t *testing.T) {
	re := runExpectRuntimeError(t, "func f(n) { return f(n + 1); } print f(0);")
	if !strings.Contains(re.Message, "Stack overflow.") {
		t.Errorf("unexpected message: %v", re.Message)
	}
}

func TestRunSwitchAlwaysPopsScrutinee(t *testing.T) {
	var out bytes.Buffer
	strs, heap := newTestStrings(), newTestHeap()
	fn := mustCompile(t, `
		var x = 2;
		switch (x) {
		case 1:
			print "one";
		case 2:
			print "two";
		}
		print "after";
	`, strs, heap)
	theVM := New(&out, strs, heap)
	if err := theVM.Interpret(fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "two\nafter\n" {
		t.Errorf("got %q, want \"two\\nafter\\n\"", out.String())
	}
	if theVM.stack.size() != 0 {
		t.Errorf("stack depth after run = %d, want 0", theVM.stack.size())
	}
}

func TestRunSwitchWithoutDefaultStillPopsScrutinee(t *testing.T) {
	var out bytes.Buffer
	strs, heap := newTestStrings(), newTestHeap()
	fn := mustCompile(t, `
		var x = 99;
		switch (x) {
		case 1:
			print "one";
		}
		print "after";
	`, strs, heap)
	theVM := New(&out, strs, heap)
	if err := theVM.Interpret(fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "after\n" {
		t.Errorf("got %q, want \"after\\n\"", out.String())
	}
	if theVM.stack.size() != 0 {
		t.Errorf("stack depth after run = %d, want 0", theVM.stack.size())
	}
}

func TestRunNativeFunctionCall(t *testing.T) {
	var out bytes.Buffer
	strs := newTestStrings()
	heap := newTestHeap()
	fn := mustCompile(t, `print double(21);`, strs, heap)

	theVM := New(&out, strs, heap)
	theVM.RegisterNative("double", func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.NumberValue(args[0].Number * 2), nil
	}, 1, 1)

	if err := theVM.Interpret(fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "42\n" {
		t.Errorf("got %q, want \"42\\n\"", out.String())
	}
}
