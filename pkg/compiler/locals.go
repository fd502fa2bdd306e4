/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package compiler

import "github.com/loxlang/tlox/pkg/bytecode"

// beginScope enters a new lexical scope.
func (c *Compiler) beginScope() {
	c.fs.scopeDepth++
}

// endScope leaves the current scope, popping every local declared inside
// it (spec §4.4: "End-of-scope emits one POP per local about to be freed").
func (c *Compiler) endScope() {
	c.fs.scopeDepth--

	locals := c.fs.locals
	for len(locals) > 0 && locals[len(locals)-1].Depth > c.fs.scopeDepth {
		c.emitOp(bytecode.OpPop)
		locals = locals[:len(locals)-1]
	}
	c.fs.locals = locals
}

// internString interns s, returning the canonical *ObjString (allocating
// and tracking a new one only if s hasn't been seen before) -- spec §3's
// interning invariant applies to compile-time string construction too.
func (c *Compiler) internString(s string) *bytecode.ObjString {
	hash := bytecode.HashString(s)
	if existing := c.strings.FindString(s, hash); existing != nil {
		return existing
	}
	str := &bytecode.ObjString{Chars: s, Hash: hash}
	c.heap.Track(str)
	c.strings.Set(str, bytecode.NullValue)
	return str
}

// identifierConstant returns the constant-pool index for name's string
// value, adding it to the current chunk's constants the first time it's
// seen and memoizing the result afterward (spec §9's identifier constant
// cache; see SUPPLEMENTED FEATURES in SPEC_FULL.md).
func (c *Compiler) identifierConstant(name string) int {
	if idx, ok := c.fs.identifierConstants[name]; ok {
		return idx
	}
	idx := c.currentChunk().AddConstant(bytecode.ObjValue(c.internString(name)))
	c.fs.identifierConstants[name] = idx
	return idx
}

// resolveLocal searches fs's locals, innermost first, for name, returning
// its slot index, -1 if name isn't a local in this function, or -2 if name
// is a local still inside its own initializer.
func resolveLocal(fs *functionState, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].Name == name {
			if fs.locals[i].Depth == -1 {
				return -2 // sentinel: "declared but read in its own initializer"
			}
			return i
		}
	}
	return -1
}

// addLocal declares a new local slot for name in the current scope, left
// uninitialized (Depth == -1) until markInitialized runs.
func (c *Compiler) addLocal(name string, isConst bool) {
	if len(c.fs.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.fs.locals = append(c.fs.locals, local{Name: name, Depth: -1, IsConst: isConst})
}

// declareVariable registers a local variable declaration for the token
// just consumed as the variable's name, rejecting a duplicate
// declaration in the same scope (spec §4.4: "Re-declaring a local with the
// same name in the same scope is a compile error"). Does nothing at global
// scope -- globals are resolved dynamically by name, not by slot.
func (c *Compiler) declareVariable(isConst bool) {
	if c.fs.scopeDepth == 0 {
		return
	}

	name := c.prev.Lexeme
	for i := len(c.fs.locals) - 1; i >= 0; i-- {
		l := c.fs.locals[i]
		if l.Depth != -1 && l.Depth < c.fs.scopeDepth {
			break
		}
		if l.Name == name {
			c.error("Already a variable with this name in this scope.")
			return
		}
	}

	c.addLocal(name, isConst)
}

// markInitialized flips the most recently declared local from "declared"
// to "initialized" by giving it its real scope depth, once its initializer
// expression has finished compiling.
func (c *Compiler) markInitialized() {
	if c.fs.scopeDepth == 0 {
		return
	}
	c.fs.locals[len(c.fs.locals)-1].Depth = c.fs.scopeDepth
}
