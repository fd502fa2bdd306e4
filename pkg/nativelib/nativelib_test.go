/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package nativelib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/compiler"
	"github.com/loxlang/tlox/pkg/table"
	"github.com/loxlang/tlox/pkg/vm"
)

func run(t *testing.T, source string, ear Ear) string {
	t.Helper()
	strs := table.New()
	heap := &bytecode.Heap{}
	fn, compileErr := compiler.Compile(source, strs, heap)
	if compileErr != nil {
		t.Fatalf("unexpected compile error: %v", compileErr)
	}

	var out bytes.Buffer
	theVM := vm.New(&out, strs, heap)
	RegisterAll(theVM, ear)

	if err := theVM.Interpret(fn); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out.String()
}

func TestStrLen(t *testing.T) {
	out := run(t, `print str_len("hello");`, NewFixedEar())
	if out != "5\n" {
		t.Errorf("got %q, want \"5\\n\"", out)
	}
}

func TestStrUpper(t *testing.T) {
	out := run(t, `print str_upper("hello");`, NewFixedEar())
	if out != "HELLO\n" {
		t.Errorf("got %q, want \"HELLO\\n\"", out)
	}
}

func TestReadLine(t *testing.T) {
	out := run(t, `print read_line();`, NewFixedEar("hi there"))
	if out != "hi there\n" {
		t.Errorf("got %q, want \"hi there\\n\"", out)
	}
}

func TestClockReturnsNumber(t *testing.T) {
	out := run(t, `print clock() > 0;`, NewFixedEar())
	if out != "true\n" {
		t.Errorf("got %q, want \"true\\n\"", out)
	}
}

func TestStrLenWrongArgTypeIsRuntimeError(t *testing.T) {
	strs := table.New()
	heap := &bytecode.Heap{}
	fn, compileErr := compiler.Compile(`str_len(1);`, strs, heap)
	if compileErr != nil {
		t.Fatalf("unexpected compile error: %v", compileErr)
	}

	var out bytes.Buffer
	theVM := vm.New(&out, strs, heap)
	RegisterAll(theVM, NewFixedEar())

	err := theVM.Interpret(fn)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if !strings.Contains(err.Error(), "str_len expected a string argument") {
		t.Errorf("unexpected error: %v", err)
	}
}
