/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package compiler implements the tlox compiler (spec §4.4): a single-pass
// Pratt parser that consumes tokens from pkg/lexer and emits bytecode
// directly into pkg/bytecode Chunks, with no intermediate AST.
package compiler

import (
	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/errs"
	"github.com/loxlang/tlox/pkg/lexer"
	"github.com/loxlang/tlox/pkg/table"
)

// functionType distinguishes the implicit top-level script from a
// user-declared function, the way clox's FunctionType does; the compiler
// reads it only to reject `return` in top-level code.
type functionType int

const (
	functionTypeScript functionType = iota
	functionTypeFunction
)

// maxLocals mirrors UINT8_COUNT: a call frame addresses its locals with a
// one-byte slot index, so 256 is the hard ceiling (spec §8's boundary
// behavior: 256 compiles, 257 is a compile error).
const maxLocals = 256

// local is one entry in a functionState's local-variable stack.
type local struct {
	Name    string
	Depth   int // -1 means "declared but not yet initialized"
	IsConst bool
}

// functionState is the per-function compiler record (clox's "Compiler"
// struct): the function currently being built, its locals, its own scope
// depth, and its enclosing functionState, which endCompiler returns to once
// a nested function declaration is finished. Spec §1's Non-goals exclude
// closures, so name resolution never looks into the enclosing chain: a name
// that isn't a local of the current function is compiled as a global.
type functionState struct {
	enclosing *functionState

	function *bytecode.ObjFunction
	kind     functionType

	locals     []local
	scopeDepth int

	// identifierConstants memoizes name -> constant-pool index for this
	// function's chunk, so repeated references to the same global name
	// don't duplicate constant-pool entries (spec §9's "identifier
	// constant cache" design note; see SUPPLEMENTED FEATURES).
	identifierConstants map[string]int
}

func newFunctionState(enclosing *functionState, kind functionType, name string) *functionState {
	fs := &functionState{
		enclosing: enclosing,
		kind:      kind,
		function: &bytecode.ObjFunction{
			Chunk: bytecode.NewChunk(),
		},
		identifierConstants: map[string]int{},
	}
	if name != "" {
		fs.function.Name = &bytecode.ObjString{Chars: name, Hash: bytecode.HashString(name)}
	}
	// Slot 0 is reserved for the callee itself (spec §3's Call Frame:
	// "slots[0] holds the callee itself and is reserved").
	fs.locals = append(fs.locals, local{Name: "", Depth: 0})
	return fs
}

func (fs *functionState) chunk() *bytecode.Chunk {
	return fs.function.Chunk
}

// Compiler drives a single compilation of one source string into one
// top-level ObjFunction. It owns the token stream, the error collection,
// and the chain of functionStates for nested function declarations.
type Compiler struct {
	lexer   *lexer.Lexer
	current lexer.Token
	prev    lexer.Token

	hadError  bool
	panicMode bool
	errors    errs.CompileErrorCollection

	fs *functionState

	// strings interns every ObjString the compiler allocates (string
	// literals and identifier names alike), matching spec §3's invariant
	// that at most one String object exists per distinct content.
	strings *table.Table
	heap    *bytecode.Heap

	// globalConsts records every global ever declared with `const var`, so
	// an assignment to it can be rejected at compile time. This resolves a
	// tension in spec §4.4/§4.5/§8: the opcode table describes SET_GLOBAL
	// rejecting a const global as a *runtime* error, but §8's scenario 6
	// requires `const var c = 1; c = 2;` to be a *compile* error (exit 65).
	// The compiler rejects an assignment to a global declared const earlier
	// in the same compilation -- the same way it already does for locals.
	// It does not see a const declared later in the source (e.g. assigned
	// inside a function body compiled before the declaration) or in an
	// earlier REPL line, which is compiled separately; those assignments
	// reach the VM's runtime check in SET_GLOBAL (see pkg/vm).
	globalConsts map[string]bool
}

// Compile compiles source into the implicit top-level function. On success
// it returns the function and a nil error; on failure it returns nil and a
// non-nil *errs.CompileErrorCollection naming every error found.
//
// strings and heap let the caller share an intern table and object arena
// with the VM that will run the result, so literals compiled here dedupe
// against (and are tracked alongside) strings the VM interns at runtime.
func Compile(source string, strings *table.Table, heap *bytecode.Heap) (*bytecode.ObjFunction, *errs.CompileErrorCollection) {
	c := &Compiler{
		lexer:        lexer.New(source),
		strings:      strings,
		heap:         heap,
		globalConsts: map[string]bool{},
	}
	c.fs = newFunctionState(nil, functionTypeScript, "")

	c.advance()
	for !c.match(lexer.TokenEOF) {
		c.declaration()
	}
	fn := c.endCompiler()

	if !c.errors.IsEmpty() {
		return nil, &c.errors
	}
	return fn, nil
}

// endCompiler finalizes the current function: emits the implicit trailing
// return, and pops back to the enclosing functionState (if any).
func (c *Compiler) endCompiler() *bytecode.ObjFunction {
	c.emitReturn()
	fn := c.fs.function
	c.fs = c.fs.enclosing
	return fn
}
