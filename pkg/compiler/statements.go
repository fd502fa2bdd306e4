/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package compiler

import (
	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/lexer"
)

// maxCases bounds a single switch statement's case count (spec §4.4:
// "Maximum 255 cases").
const maxCases = 255

// declaration parses a single top-level or block-level declaration,
// synchronizing to the next statement boundary on error (spec §4.4).
func (c *Compiler) declaration() {
	switch {
	case c.match(lexer.TokenConst):
		c.constDecl()
	case c.match(lexer.TokenVar):
		c.varDecl()
	case c.match(lexer.TokenFunc):
		c.funcDecl()
	default:
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

// varDecl parses `var NAME [= expr];`, defaulting to null when the
// initializer is omitted.
func (c *Compiler) varDecl() {
	global, name := c.parseVariable("Expected variable name.")

	if c.match(lexer.TokenEqual) {
		c.expression()
	} else {
		c.emitOp(bytecode.OpNull)
	}
	c.consume(lexer.TokenSemicolon, "Expected ';' after variable declaration.")

	c.defineVariable(global, name, false)
}

// constDecl parses `const var NAME = expr;`, which -- unlike plain var --
// requires an initializer (spec §4.4).
func (c *Compiler) constDecl() {
	c.consume(lexer.TokenVar, "Expected 'var' after 'const'.")
	global, name := c.parseVariable("Expected constant name.")
	if c.fs.scopeDepth > 0 && len(c.fs.locals) > 0 && c.fs.locals[len(c.fs.locals)-1].Name == name {
		c.fs.locals[len(c.fs.locals)-1].IsConst = true
	}

	c.consume(lexer.TokenEqual, "A const variable must have an initializer.")
	c.expression()
	c.consume(lexer.TokenSemicolon, "Expected ';' after constant declaration.")

	c.defineVariable(global, name, true)
}

// parseVariable consumes an identifier token and declares it (as a local,
// if inside a scope). It returns the global identifier-constant index
// (meaningful only at global scope) and the variable's name.
func (c *Compiler) parseVariable(message string) (int, string) {
	c.consume(lexer.TokenIdentifier, message)
	name := c.prev.Lexeme

	c.declareVariable(false)
	if c.fs.scopeDepth > 0 {
		return 0, name
	}
	return c.identifierConstant(name), name
}

// defineVariable finishes a variable declaration: at global scope it emits
// the DEFINE_GLOBAL[_CONST][_LONG] opcode; at local scope the value is
// already sitting in the right stack slot, so it just marks the local
// initialized.
func (c *Compiler) defineVariable(global int, name string, isConst bool) {
	if c.fs.scopeDepth > 0 {
		c.markInitialized()
		return
	}

	if isConst {
		c.globalConsts[name] = true
		c.emitGlobalDefine(bytecode.OpDefineGlobalConst, bytecode.OpDefineGlobalConstLong, global)
	} else {
		c.emitGlobalDefine(bytecode.OpDefineGlobal, bytecode.OpDefineGlobalLong, global)
	}
}

func (c *Compiler) emitGlobalDefine(shortOp, longOp bytecode.OpCode, index int) {
	if index < 256 {
		c.emitOpByte(shortOp, byte(index))
		return
	}
	c.emitOp(longOp)
	c.emitByte(byte(index >> 16))
	c.emitByte(byte(index >> 8))
	c.emitByte(byte(index))
}

// funcDecl parses `func NAME(params) { body }` (see SPEC_FULL.md's
// SUPPLEMENTED FEATURES for why this is in scope despite spec.md's
// informative grammar omitting it). The function name is bound exactly
// like a variable -- as a local if nested, as a global otherwise -- and is
// marked initialized before its body compiles, so (non-closing) recursive
// calls to it by name resolve correctly.
func (c *Compiler) funcDecl() {
	global, name := c.parseVariable("Expected function name.")
	c.markInitialized()
	c.function(functionTypeFunction, name)
	c.defineVariable(global, name, false)
}

// function compiles a function's parameter list and body into its own
// Chunk, nested under a fresh functionState, then emits a CONSTANT
// pushing the resulting ObjFunction in the enclosing chunk.
func (c *Compiler) function(kind functionType, name string) {
	c.fs = newFunctionState(c.fs, kind, name)
	c.beginScope()

	c.consume(lexer.TokenLeftParen, "Expected '(' after function name.")
	if !c.check(lexer.TokenRightParen) {
		for {
			c.fs.function.Arity++
			if c.fs.function.Arity > maxArgs {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			_, paramName := c.parseVariable("Expected parameter name.")
			c.defineVariable(0, paramName, false)
			if !c.match(lexer.TokenComma) {
				break
			}
		}
	}
	c.consume(lexer.TokenRightParen, "Expected ')' after parameters.")
	c.consume(lexer.TokenLeftBrace, "Expected '{' before function body.")
	c.block()

	fn := c.endCompiler()
	c.emitConstant(bytecode.ObjValue(fn))
}

// statement parses a single statement (spec §4.4's "Statements").
func (c *Compiler) statement() {
	switch {
	case c.match(lexer.TokenPrint):
		c.printStatement()
	case c.match(lexer.TokenIf):
		c.ifStatement()
	case c.match(lexer.TokenWhile):
		c.whileStatement()
	case c.match(lexer.TokenFor):
		c.forStatement()
	case c.match(lexer.TokenSwitch):
		c.switchStatement()
	case c.match(lexer.TokenReturn):
		c.returnStatement()
	case c.match(lexer.TokenDebug):
		c.consume(lexer.TokenSemicolon, "Expected ';' after 'debug'.")
		c.emitOp(bytecode.OpDebug)
	case c.match(lexer.TokenLeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

// block parses declarations until the closing '}' (which it consumes).
func (c *Compiler) block() {
	for !c.check(lexer.TokenRightBrace) && !c.check(lexer.TokenEOF) {
		c.declaration()
	}
	c.consume(lexer.TokenRightBrace, "Expected '}' after block.")
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(lexer.TokenSemicolon, "Expected ';' after expression.")
	c.emitOp(bytecode.OpPop)
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(lexer.TokenSemicolon, "Expected ';' after value.")
	c.emitOp(bytecode.OpPrint)
}

// returnStatement parses `return [expr];`. A bare `return;` returns null,
// exactly like falling off the end of a function.
func (c *Compiler) returnStatement() {
	if c.fs.kind == functionTypeScript {
		c.error("Can't return from top-level code.")
	}

	if c.match(lexer.TokenSemicolon) {
		c.emitReturn()
		return
	}

	c.expression()
	c.consume(lexer.TokenSemicolon, "Expected ';' after return value.")
	c.emitOp(bytecode.OpReturn)
}

// ifStatement implements spec §4.4's if/else jump shape.
func (c *Compiler) ifStatement() {
	c.consume(lexer.TokenLeftParen, "Expected '(' after 'if'.")
	c.expression()
	c.consume(lexer.TokenRightParen, "Expected ')' after condition.")

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()

	elseJump := c.emitJump(bytecode.OpJump)
	c.patchJump(thenJump)
	c.emitOp(bytecode.OpPop)

	if c.match(lexer.TokenElse) {
		c.statement()
	}
	c.patchJump(elseJump)
}

// whileStatement implements spec §4.4's while loop shape.
func (c *Compiler) whileStatement() {
	loopStart := len(c.currentChunk().Code)

	c.consume(lexer.TokenLeftParen, "Expected '(' after 'while'.")
	c.expression()
	c.consume(lexer.TokenRightParen, "Expected ')' after condition.")

	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(bytecode.OpPop)
}

// forStatement implements spec §4.4's desugared for-loop shape: a scope
// wrapping an optional initializer, a while-loop-shaped condition/body, and
// an increment spliced in between the body and the loop-back jump.
func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(lexer.TokenLeftParen, "Expected '(' after 'for'.")

	switch {
	case c.match(lexer.TokenSemicolon):
		// No initializer.
	case c.match(lexer.TokenVar):
		c.varDecl()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.currentChunk().Code)

	exitJump := -1
	if !c.match(lexer.TokenSemicolon) {
		c.expression()
		c.consume(lexer.TokenSemicolon, "Expected ';' after loop condition.")

		exitJump = c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)
	}

	if !c.match(lexer.TokenRightParen) {
		bodyJump := c.emitJump(bytecode.OpJump)

		incrementStart := len(c.currentChunk().Code)
		c.expression()
		c.emitOp(bytecode.OpPop)
		c.consume(lexer.TokenRightParen, "Expected ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(bytecode.OpPop)
	}

	c.endScope()
}

// switchStatement implements spec §4.4's switch/case/default shape,
// resolving the "open question" in spec §9 in favor of option (b): the
// scrutinee's trailing POP is always emitted, default or not.
func (c *Compiler) switchStatement() {
	c.consume(lexer.TokenLeftParen, "Expected '(' after 'switch'.")
	c.expression()
	c.consume(lexer.TokenRightParen, "Expected ')' after switch value.")
	c.consume(lexer.TokenLeftBrace, "Expected '{' before switch body.")

	var endJumps []int
	caseCount := 0

	for c.match(lexer.TokenCase) {
		caseCount++
		if caseCount > maxCases {
			c.error("Too many cases in switch statement.")
		}

		c.emitOp(bytecode.OpDup)
		c.expression()
		c.consume(lexer.TokenColon, "Expected ':' after case value.")
		c.emitOp(bytecode.OpEqual)

		nextJump := c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)

		for !c.check(lexer.TokenCase) && !c.check(lexer.TokenDefault) &&
			!c.check(lexer.TokenRightBrace) && !c.check(lexer.TokenEOF) {
			c.statement()
		}
		endJumps = append(endJumps, c.emitJump(bytecode.OpJump))

		c.patchJump(nextJump)
		c.emitOp(bytecode.OpPop)
	}

	if c.match(lexer.TokenDefault) {
		c.consume(lexer.TokenColon, "Expected ':' after 'default'.")
		for !c.check(lexer.TokenRightBrace) && !c.check(lexer.TokenEOF) {
			c.statement()
		}
	}

	for _, j := range endJumps {
		c.patchJump(j)
	}

	c.consume(lexer.TokenRightBrace, "Expected '}' after switch body.")
	c.emitOp(bytecode.OpPop) // remove the scrutinee, default or not (spec §9)
}
