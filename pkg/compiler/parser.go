/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package compiler

import (
	"github.com/loxlang/tlox/pkg/errs"
	"github.com/loxlang/tlox/pkg/lexer"
)

// advance pulls the next non-error token from the lexer into c.current,
// shifting the old c.current into c.prev. Error tokens are reported
// immediately and skipped, so every other method only ever sees well-formed
// tokens.
func (c *Compiler) advance() {
	c.prev = c.current

	for {
		c.current = c.lexer.NextToken()
		if c.current.Kind != lexer.TokenError {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

// check reports whether the current token has the given kind.
func (c *Compiler) check(kind lexer.TokenKind) bool {
	return c.current.Kind == kind
}

// match consumes the current token and returns true if it has the given
// kind; otherwise it leaves the token stream untouched and returns false.
func (c *Compiler) match(kind lexer.TokenKind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

// consume requires the current token to have the given kind, advancing past
// it; otherwise it reports message as a compile error at the current token.
func (c *Compiler) consume(kind lexer.TokenKind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

//
// Error reporting and panic-mode synchronization (spec §4.4, §7)
//

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) error(message string) {
	c.errorAt(c.prev, message)
}

// errorAt records a compile error at tok, unless the parser is already in
// panic mode (in which case further errors are suppressed until
// synchronize runs) -- spec §4.4/§7's panic-mode error recovery.
func (c *Compiler) errorAt(tok lexer.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	lexeme := tok.Lexeme
	if tok.Kind == lexer.TokenEOF {
		lexeme = ""
	} else if tok.Kind == lexer.TokenError {
		lexeme = ""
		message = tok.Lexeme
	}
	c.errors.Add(errs.NewCompileError(tok.Line, lexeme, "%s", message))
}

// synchronize skips tokens until it reaches a plausible statement boundary,
// so a single syntax error doesn't cascade into a wall of spurious ones
// (spec §4.4: "advance until the next token is
// class|func|var|for|if|while|print|return or the previous token was ;").
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Kind != lexer.TokenEOF {
		if c.prev.Kind == lexer.TokenSemicolon {
			return
		}
		switch c.current.Kind {
		case lexer.TokenClass, lexer.TokenFunc, lexer.TokenVar, lexer.TokenFor,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenPrint, lexer.TokenReturn:
			return
		}
		c.advance()
	}
}
