package compiler

import (
	"github.com/basic-lang/basic/builtin"
	"github.com/basic-lang/basic/token"
)

// DefContext is the set of a user function's formal parameter names,
// threaded through compilation of its body so a bare name inside can be
// recognized as a parameter reference rather than a global variable.
// Nil outside a DEF body.
type DefContext struct {
	Params []string
}

func (d *DefContext) indexOf(name string) (int, bool) {
	if d == nil {
		return 0, false
	}
	for i, p := range d.Params {
		if p == name {
			return i, true
		}
	}
	return 0, false
}

// readSymbolName consumes a maximal identifier: a letter followed by
// letters/digits, optionally ending in '$'. The "FN" special case skips
// spaces right after recognizing the FN prefix, allowing "FN X(...)".
func readSymbolName(c *cursor) string {
	var name []byte
	for !c.atEnd() && (isAlnum(c.peek()) || c.peek() == '$') {
		ch := toUpper(c.peek())
		c.pos++
		name = append(name, ch)
		if ch == '$' {
			break
		}
		if len(name) == 2 && string(name) == "FN" {
			c.ignoreSpaces()
		}
	}
	return string(name)
}

// tryParseSymbol recognizes a bare identifier and encodes it as one of:
// a user function call (FN name followed by '('), a built-in function
// call, an array reference, a system variable, a parameter reference
// (inside a DEF body), or a plain variable — in that priority order.
// Declaring a previously unseen array or variable name allocates its storage slot immediately, which is why
// variable/array allocation happens at parse time in this dialect.
func (cp *Compiler) tryParseSymbol(s []byte, c *cursor, ctx *DefContext) ([]byte, token.Type, bool) {
	c.ignoreSpaces()
	if !isAlpha(c.peek()) {
		return s, token.None, false
	}
	start := c.pos
	name := readSymbolName(c)

	if c.isNextSymbolKeep('(') {
		if len(name) > 2 && name[0] == 'F' && name[1] == 'N' && isAlnum(name[2]) {
			idx, ok := cp.Symbols.DeclareUserFunction(name)
			if !ok {
				c.pos = start
				cp.fail("Too many user functions")
				return s, token.None, false
			}
			s = token.EncodeIndex1(s, token.UserFunction, idx)
			return s, token.UserFunction, true
		}

		for code, fname := range builtin.Functions {
			if fname == name {
				s = token.EncodeIndex1(s, token.Function, code)
				return s, token.Function, true
			}
		}

		idx, ok := cp.Symbols.DeclareArray(name)
		if !ok {
			c.pos = start
			cp.fail("Too many arrays")
			return s, token.None, false
		}
		s = token.EncodeIndex1(s, token.Array, idx)
		return s, token.Array, true
	}

	for code, vname := range builtin.SysVars {
		if vname == name {
			s = token.EncodeIndex1(s, token.SystemVar, code)
			return s, token.SystemVar, true
		}
	}

	if pidx, ok := ctx.indexOf(name); ok {
		s = token.EncodeIndex1(s, token.ParameterRef, pidx)
		return s, token.ParameterRef, true
	}

	idx, ok := cp.Symbols.DeclareVariable(name)
	if !ok {
		c.pos = start
		cp.fail("Too many variables")
		return s, token.None, false
	}
	s = token.EncodeIndex2(s, token.Variable, idx)
	return s, token.Variable, true
}

// tryParseParameter recognizes one formal parameter name in a DEF
// header. A parameter is tokenized with the same tag+length+bytes shape
// as a string (token.DecodeString doesn't care which tag it's given),
// but tagged Parameter rather than String so a decoder walking the
// header can tell a formal parameter from a string literal.
func tryParseParameter(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	c.ignoreSpaces()
	if !isAlpha(c.peek()) {
		return s, false
	}
	name := readSymbolName(c)
	s = append(s, byte(token.Parameter), byte(len(name)))
	s = append(s, name...)
	ctx.Params = append(ctx.Params, name)
	return s, true
}
