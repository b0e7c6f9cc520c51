package compiler

import (
	"github.com/basic-lang/basic/optable"
	"github.com/basic-lang/basic/token"
)

// ParseError is what Compile reports on bad input: the message plus the
// cursor position it failed at, so the REPL can echo the line with a
// caret under the offending spot.
type ParseError struct {
	Msg string
	Pos int
}

func (e *ParseError) Error() string { return e.Msg }

// fail records the first specific error message of this Compile pass;
// later failures on the same line keep the original message (the first
// error is the one reported, the rest are noise from a parse already
// off the rails). Always returns false so callers can `return cp.fail(...)`-style
// chain it into their ok result.
func (cp *Compiler) fail(msg string) bool {
	if cp.errMsg == "" {
		cp.errMsg = msg
	}
	return false
}

// endOfExpression reports whether the cursor is positioned at a place
// an expression must stop: end of input, a closing ')' (consumed), or
// the start of any instruction keyword (colon included). Keywords are
// never consumed here — testMatch only peeks — since the caller
// (statement-level parsing) still needs to recognize them itself.
func endOfExpression(c *cursor) bool {
	c.ignoreSpaces()
	if c.atEnd() || c.isNextSymbolDrop(')') {
		return true
	}
	for _, instr := range Instructions {
		if instr.Name != "" && c.testMatch(instr.Name) {
			return true
		}
	}
	return false
}

// tryParseOperation recognizes one operator token: operators are
// tried in table order and matched with tolerance for embedded
// whitespace (matchWithSpaces), so compound
// operators like "<=" must precede their single-character prefixes
// ("<") in optable.Table — which they do.
func tryParseOperation(s []byte, c *cursor) ([]byte, bool) {
	c.ignoreSpaces()
	for code := range optable.Table {
		save := c.pos
		if c.matchWithSpaces(optable.Table[code].Name) {
			s = append(s, byte(token.Op), byte(code))
			return s, true
		}
		c.pos = save
	}
	return s, false
}

// tryParseNextToken recognizes the next single expression token:
// operator, number, string, nested parenthesized expression, or
// symbol. Operators are tried before numbers so that a leading
// '+'/'-' is recognized as an operator and not folded into a signed
// numeric literal.
func (cp *Compiler) tryParseNextToken(s []byte, c *cursor, ctx *DefContext) ([]byte, token.Type, bool) {
	if endOfExpression(c) {
		return s, token.None, false
	}

	if c.isNextSymbolDrop('(') {
		out, ok := cp.tryParseExpression(s, c, ctx)
		if !ok {
			return s, token.None, false
		}
		return out, token.Expression, true
	}

	if out, ok := tryParseOperation(s, c); ok {
		return out, token.Op, true
	}

	if out, ok := tryParseNumber(s, c); ok {
		return out, token.Number, true
	}

	if out, ok := tryParseString(s, c); ok {
		return out, token.String, true
	}

	return cp.tryParseSymbol(s, c, ctx)
}

// tryParseExpression compiles one expression, encoding it as an
// Expression token wrapping a length-prefixed run of sub-tokens. The
// adjacency rules are enforced here: an operator may only be followed
// by another operator if the second is unary, a
// string token may sit next to anything, a parenthesized expression
// may not directly follow a number or another parenthesized expression,
// and otherwise two non-operators in a row is a syntax error. The
// expression also may not start or end on a binary operator. No
// semantic validation (type checks, arity) happens here — that is
// deferred to evaluation.
func (cp *Compiler) tryParseExpression(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	restoreLen := len(s)
	s = append(s, byte(token.Expression))
	s, off := token.ReservePayloadLength(s)

	var out []byte
	var prev token.Type
	var ok bool
	out, prev, ok = cp.tryParseNextToken(s, c, ctx)
	if !ok {
		return s[:restoreLen], false
	}
	s = out

	if prev == token.Op {
		opCode := s[len(s)-1]
		op := optable.Table[opCode]
		if !op.Unary && !op.UnaryNext {
			return s[:restoreLen], false
		}
	}

	valid := true
	var cur token.Type
	for valid {
		out, cur, ok = cp.tryParseNextToken(s, c, ctx)
		if !ok {
			break
		}
		s = out

		switch {
		case prev == token.Op && cur == token.Op:
			opCode := s[len(s)-1]
			op := optable.Table[opCode]
			if !op.Unary && !op.UnaryNext {
				valid = false
			}
		case prev == token.String || cur == token.String:
			// anything may sit next to a string
		case cur == token.Expression && prev != token.Expression && prev != token.Number:
			// a parenthesized expression may follow anything but a number or another expression
		case prev != token.Op && cur != token.Op:
			valid = false
		}
		prev = cur
	}

	if !valid {
		return s[:restoreLen], false
	}
	if prev == token.Op {
		opCode := s[len(s)-1]
		if !optable.Table[opCode].IsSeparator {
			return s[:restoreLen], false
		}
	}

	out, okLen := token.EncodePayloadLength(s, off)
	if !okLen {
		cp.fail("The expression is too complex")
		return s[:restoreLen], false
	}
	return out, true
}
