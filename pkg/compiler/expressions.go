/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package compiler

import (
	"strconv"

	"github.com/loxlang/tlox/pkg/bytecode"
	"github.com/loxlang/tlox/pkg/lexer"
)

// maxArgs bounds a single call's argument count (and a function's
// parameter count): the count is carried as OP_CALL's one-byte operand.
const maxArgs = 255

func (c *Compiler) number(canAssign bool) {
	v, err := strconv.ParseFloat(c.prev.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(bytecode.NumberValue(v))
}

// string strips the surrounding quotes from the lexeme and emits an
// interned String constant (spec §4.4).
func (c *Compiler) string(canAssign bool) {
	raw := c.prev.Lexeme
	contents := raw[1 : len(raw)-1]
	c.emitConstant(bytecode.ObjValue(c.internString(contents)))
}

func (c *Compiler) literal(canAssign bool) {
	switch c.prev.Kind {
	case lexer.TokenFalse:
		c.emitOp(bytecode.OpFalse)
	case lexer.TokenTrue:
		c.emitOp(bytecode.OpTrue)
	case lexer.TokenNull:
		c.emitOp(bytecode.OpNull)
	}
}

func (c *Compiler) grouping(canAssign bool) {
	c.expression()
	c.consume(lexer.TokenRightParen, "Expected ')' after expression.")
}

func (c *Compiler) unary(canAssign bool) {
	operator := c.prev.Kind
	c.parsePrecedence(precUnary)

	switch operator {
	case lexer.TokenMinus:
		c.emitOp(bytecode.OpNegate)
	case lexer.TokenBang:
		c.emitOp(bytecode.OpNot)
	}
}

func (c *Compiler) binary(canAssign bool) {
	operator := c.prev.Kind
	rule := getRule(operator)
	c.parsePrecedence(rule.precedence + 1)

	switch operator {
	case lexer.TokenBangEqual:
		c.emitOps(bytecode.OpEqual, bytecode.OpNot)
	case lexer.TokenEqualEqual:
		c.emitOp(bytecode.OpEqual)
	case lexer.TokenGreater:
		c.emitOp(bytecode.OpGreater)
	case lexer.TokenGreaterEqual:
		c.emitOps(bytecode.OpLess, bytecode.OpNot)
	case lexer.TokenLess:
		c.emitOp(bytecode.OpLess)
	case lexer.TokenLessEqual:
		c.emitOps(bytecode.OpGreater, bytecode.OpNot)
	case lexer.TokenPlus:
		c.emitOp(bytecode.OpAdd)
	case lexer.TokenMinus:
		c.emitOp(bytecode.OpSubtract)
	case lexer.TokenStar:
		c.emitOp(bytecode.OpMultiply)
	case lexer.TokenSlash:
		c.emitOp(bytecode.OpDivide)
	}
}

// and implements short-circuit `and` (spec §4.4): if the left operand is
// already falsey, skip the right operand entirely and leave it on the
// stack as the result.
func (c *Compiler) and(canAssign bool) {
	endJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

// or implements short-circuit `or` (spec §4.4): if the left operand is
// truthy, skip the right operand.
func (c *Compiler) or(canAssign bool) {
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	endJump := c.emitJump(bytecode.OpJump)

	c.patchJump(elseJump)
	c.emitOp(bytecode.OpPop)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) call(canAssign bool) {
	argCount := c.argumentList()
	c.emitOpByte(bytecode.OpCall, byte(argCount))
}

// argumentList parses a call's comma-separated argument expressions; the
// opening '(' has already been consumed by the infix dispatch.
func (c *Compiler) argumentList() int {
	count := 0
	if !c.check(lexer.TokenRightParen) {
		for {
			c.expression()
			if count == maxArgs {
				c.error("Can't have more than 255 arguments.")
			}
			count++
			if !c.match(lexer.TokenComma) {
				break
			}
		}
	}
	c.consume(lexer.TokenRightParen, "Expected ')' after arguments.")
	return count
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.prev.Lexeme, canAssign)
}

// namedVariable compiles a read of, or (if canAssign and a trailing `=`
// follows) an assignment to, the variable named name -- resolving it as a
// local slot first, falling back to a global lookup by name (spec §4.4).
func (c *Compiler) namedVariable(name string, canAssign bool) {
	slot := resolveLocal(c.fs, name)

	if slot == -2 {
		c.error("Can't read local variable in its own initializer.")
		return
	}

	isLocal := slot >= 0

	if canAssign && c.match(lexer.TokenEqual) {
		if isLocal && c.fs.locals[slot].IsConst {
			c.error("Cannot assign to a const variable.")
		}
		if !isLocal && c.globalConsts[name] {
			c.error("Cannot assign to a const variable.")
		}

		c.expression()

		if isLocal {
			c.emitOpByte(bytecode.OpSetLocal, byte(slot))
		} else {
			c.emitGlobalRef(bytecode.OpSetGlobal, bytecode.OpSetGlobalLong, name)
		}
		return
	}

	if isLocal {
		c.emitOpByte(bytecode.OpGetLocal, byte(slot))
	} else {
		c.emitGlobalRef(bytecode.OpGetGlobal, bytecode.OpGetGlobalLong, name)
	}
}

// emitGlobalRef emits shortOp/longOp (a GET_/SET_/DEFINE_GLOBAL family
// opcode pair) addressing name's identifier constant.
func (c *Compiler) emitGlobalRef(shortOp, longOp bytecode.OpCode, name string) {
	index := c.identifierConstant(name)
	if index < 256 {
		c.emitOpByte(shortOp, byte(index))
		return
	}
	c.emitOp(longOp)
	c.emitByte(byte(index >> 16))
	c.emitByte(byte(index >> 8))
	c.emitByte(byte(index))
}
