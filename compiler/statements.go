package compiler

import (
	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
)

// Compiler tokenizes source lines into the byte-encoded statement
// format, resolving every symbol reference against a live symbol table
// as it goes (so DIM/variable/array/user-function slots are allocated
// the moment they are first mentioned, not when first assigned).
type Compiler struct {
	Symbols *store.SymbolTable

	// ifStack holds, for each still-open IF awaiting a matching ELSE,
	// the absolute byte offset of its two-byte ELSE-link placeholder.
	// It spans an entire colon-continued input line, so a later typed
	// ": ELSE ..." can still patch it, and is cleared whenever a new
	// (non-continuing) line begins.
	ifStack []int

	// errMsg is the first specific error message recorded by fail()
	// during the current Compile pass; empty means a plain
	// "Syntax error" if parsing failed at all.
	errMsg string
}

// NewCompiler returns a compiler that resolves symbols against syms.
func NewCompiler(syms *store.SymbolTable) *Compiler {
	return &Compiler{Symbols: syms}
}

// parseOneInstruction dispatches a single instruction at the cursor,
// trying every keyword in table order and falling back to the
// implicit LET/GOTO forms if nothing matched. It appends the
// instruction's code byte, a placeholder length byte, the instruction's own payload, and then
// patches the length — reporting a syntax error through ok=false if
// parsing failed or the payload overflowed 255 bytes.
func (cp *Compiler) parseOneInstruction(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	for code := range Instructions {
		name := Instructions[code].Name
		if name == "" {
			continue
		}
		save := c.pos
		if !c.match(name) {
			c.pos = save
			continue
		}
		// A bare ':' is only ever a statement separator: consuming it
		// emits nothing, so "X=1:LET Y=2", "X=1 LET Y=2" and the listed
		// form all canonicalize to the same statement bytes.
		if Code(code) == CodeColon {
			return s, true
		}
		return cp.dispatchParse(Code(code), s, c, ctx)
	}

	c.ignoreSpaces()
	fallback := CodeLetImplicit
	if isDigit(c.peek()) {
		fallback = CodeGotoImplicit
	}
	return cp.dispatchParse(fallback, s, c, ctx)
}

func (cp *Compiler) dispatchParse(code Code, s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	s = append(s, byte(code))
	s, bookmark := token.ReservePayloadLength(s)

	out, ok := cp.parseBody(code, s, c, ctx)
	if !ok {
		if name := Instructions[code].Name; name != "" {
			cp.fail("Syntax error in " + name)
		}
		return out, false
	}

	out, okLen := token.EncodePayloadLength(out, bookmark)
	if !okLen {
		cp.fail("The statement is too long")
		return out, false
	}
	return out, true
}

// parseBody parses just the payload of one instruction (the part
// after its code byte and reserved length byte).
func (cp *Compiler) parseBody(code Code, s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	switch code {
	case CodeLetImplicit, CodeLet:
		return cp.parseLet(s, c, ctx)
	case CodeGotoImplicit, CodeGoto:
		return tryParseLineNumber(s, c)
	case CodeColon:
		return s, true
	case CodeBye, CodeCls, CodeEnd, CodeNew, CodeRun, CodeReturn, CodeStop, CodeDumpVars:
		return s, true
	case CodeData:
		return cp.parseData(s, c)
	case CodeDef:
		return cp.parseDef(s, c)
	case CodeDim:
		return cp.parseDim(s, c, ctx)
	case CodeElse:
		return cp.parseElse(s)
	case CodeFor:
		return cp.parseFor(s, c, ctx)
	case CodeGosub:
		return tryParseLineNumber(s, c)
	case CodeIf:
		return cp.parseIf(s, c, ctx)
	case CodeInput:
		return cp.parseInput(s, c, ctx)
	case CodeList:
		return cp.parseList(s, c)
	case CodeLoad:
		return cp.parseLoadSave(s, c)
	case CodeNext:
		return cp.parseNext(s, c, ctx)
	case CodeOn:
		return cp.parseOn(s, c, ctx)
	case CodePrint:
		return cp.parsePrint(s, c, ctx)
	case CodeRead:
		return cp.parseRead(s, c, ctx)
	case CodeRem:
		return parseRem(s, c)
	case CodeRestore:
		c.ignoreSpaces()
		if !isDigit(c.peek()) {
			return s, true
		}
		return tryParseLineNumber(s, c)
	case CodeSave:
		return cp.parseLoadSave(s, c)
	case CodeRandomize:
		return cp.parseRandomize(s, c, ctx)
	}
	return s, false
}

// parseLet implements LET/implicit-assignment parsing. Its lvalue may
// not begin with a keyword, which is why every instruction name is
// tested (without consuming) before falling through to a symbol.
func (cp *Compiler) parseLet(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	c.ignoreSpaces()
	for _, instr := range Instructions {
		if instr.Name != "" && c.testMatch(instr.Name) {
			cp.fail("Variable name cannot start with a keyword")
			return s, false
		}
	}

	out, tt, ok := cp.tryParseSymbol(s, c, ctx)
	if !ok || (tt != token.Variable && tt != token.Array) {
		if ok && tt == token.SystemVar {
			cp.fail("Cannot set protected variable")
		}
		return s, false
	}
	s = out

	if tt == token.Array && c.isNextSymbolDrop('(') {
		out, ok = cp.tryParseExpression(s, c, ctx)
		if !ok {
			return s, false
		}
		s = out
	}

	if !c.isNextSymbolDrop('=') {
		return s, false
	}
	return cp.tryParseExpression(s, c, ctx)
}

func (cp *Compiler) parseData(s []byte, c *cursor) ([]byte, bool) {
	for {
		out, ok := tryParseString(s, c)
		if !ok {
			out, ok = tryParseNumber(s, c)
		}
		if !ok {
			return s, false
		}
		s = out
		if !c.isNextSymbolDrop(',') {
			return s, true
		}
	}
}

// parseDef parses DEF FNname(param[,...])=expression, compiling the
// body expression with a fresh DefContext so bare names inside resolve
// to parameter references instead of globals.
func (cp *Compiler) parseDef(s []byte, c *cursor) ([]byte, bool) {
	c.ignoreSpaces()
	if !c.testMatch("FN") {
		return s, false
	}
	out, tt, ok := cp.tryParseSymbol(s, c, nil)
	if !ok || tt != token.UserFunction {
		return s, false
	}
	s = out
	if !c.isNextSymbolDrop('(') {
		return s, false
	}

	ctx := &DefContext{}
	for {
		out, ok = tryParseParameter(s, c, ctx)
		if !ok {
			return s, false
		}
		s = out
		if !c.isNextSymbolDrop(',') {
			break
		}
	}
	if !c.isNextSymbolDrop(')') || !c.isNextSymbolDrop('=') {
		return s, false
	}
	return cp.tryParseExpression(s, c, ctx)
}

// parseDim supports dimension expressions rather than fixed integer
// literals, so "DIM A(N*2)" is valid: an array's size is not known
// until DIM actually executes.
func (cp *Compiler) parseDim(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	c.ignoreSpaces()
	for {
		out, tt, ok := cp.tryParseSymbol(s, c, ctx)
		if !ok {
			return s, false
		}
		s = out
		if tt == token.Array {
			if !c.isNextSymbolDrop('(') {
				return s, false
			}
			out, ok = cp.tryParseExpression(s, c, ctx)
			if !ok {
				return s, false
			}
			s = out
		} else if tt != token.Variable {
			return s, false
		}
		if !c.isNextSymbolDrop(',') {
			break
		}
	}
	return s, true
}

// parseElse only succeeds while a preceding IF in the same input line
// has left an open placeholder; it patches that placeholder with the
// current write position, which is exactly where whatever follows ELSE
// will begin — letting a false IF jump straight past the ELSE.
func (cp *Compiler) parseElse(s []byte) ([]byte, bool) {
	if len(cp.ifStack) == 0 {
		return s, false
	}
	off := cp.ifStack[len(cp.ifStack)-1]
	cp.ifStack = cp.ifStack[:len(cp.ifStack)-1]
	patchOffset16(s, off, len(s))
	return s, true
}

func patchOffset16(s []byte, at, value int) {
	s[at] = byte(value)
	s[at+1] = byte(value >> 8)
}

func readOffset16(s []byte) int {
	return int(s[0]) | int(s[1])<<8
}

func (cp *Compiler) parseFor(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	out, tt, ok := cp.tryParseSymbol(s, c, ctx)
	if !ok || tt != token.Variable {
		return s, false
	}
	s = out
	if !c.isNextSymbolDrop('=') {
		return s, false
	}
	out, ok = cp.tryParseExpression(s, c, ctx)
	if !ok {
		return s, false
	}
	s = out
	if !c.match("TO") {
		return s, false
	}
	out, ok = cp.tryParseExpression(s, c, ctx)
	if !ok {
		return s, false
	}
	s = out

	if c.match("STEP") {
		return cp.tryParseExpression(s, c, ctx)
	}
	s = append(s, byte(token.None))
	return s, true
}

func (cp *Compiler) parseIf(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	cp.ifStack = append(cp.ifStack, len(s))
	s = append(s, 0, 0)

	out, ok := cp.tryParseExpression(s, c, ctx)
	if !ok {
		return s, false
	}
	s = out

	if c.match("THEN") {
		s = append(s, 0)
	} else if c.testMatch("GOTO") {
		s = append(s, 1)
	} else {
		return s, false
	}
	return s, true
}

func (cp *Compiler) parseInput(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	out, ok := tryParseString(s, c)
	if ok {
		s = out
		switch {
		case c.isNextSymbolDrop(','):
			s = append(s, 0)
		case c.isNextSymbolDrop(';'):
			s = append(s, 1)
		default:
			return s, false
		}
	}

	for {
		out, tt, okSym := cp.tryParseSymbol(s, c, ctx)
		if !okSym || (tt != token.Variable && tt != token.Array) {
			return s, false
		}
		s = out
		if tt == token.Array && c.isNextSymbolDrop('(') {
			out, okSym = cp.tryParseExpression(s, c, ctx)
			if !okSym {
				return s, false
			}
			s = out
		}
		if !c.isNextSymbolDrop(',') {
			return s, true
		}
	}
}

func (cp *Compiler) parseList(s []byte, c *cursor) ([]byte, bool) {
	out, ok := tryParseLineNumber(s, c)
	if ok {
		s = out
		if c.isNextSymbolDrop(',') || c.isNextSymbolDrop('-') {
			out, _ = tryParseLineNumber(s, c)
			s = out
		}
	}
	return s, true
}

func (cp *Compiler) parseLoadSave(s []byte, c *cursor) ([]byte, bool) {
	out, ok := tryParseString(s, c)
	if ok {
		return out, true
	}
	return tryParseWord(s, c)
}

func (cp *Compiler) parseNext(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	out, tt, ok := cp.tryParseSymbol(s, c, ctx)
	if ok {
		if tt != token.Variable {
			return s, false
		}
		s = out
	}
	for c.isNextSymbolDrop(',') {
		out, tt, ok = cp.tryParseSymbol(s, c, ctx)
		if !ok || tt != token.Variable {
			return s, false
		}
		s = out
	}
	return s, true
}

func (cp *Compiler) parseOn(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	out, ok := cp.tryParseExpression(s, c, ctx)
	if !ok {
		return s, false
	}
	s = out

	c.ignoreSpaces()
	switch {
	case c.match("GOTO"):
		s = append(s, 0)
	case c.match("GOSUB"):
		s = append(s, 1)
	default:
		return s, false
	}

	out, ok = tryParseLineNumber(s, c)
	if !ok {
		return s, false
	}
	s = out
	for c.isNextSymbolDrop(',') {
		out, ok = tryParseLineNumber(s, c)
		if !ok {
			return s, false
		}
		s = out
	}
	return s, true
}

func (cp *Compiler) parsePrint(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	out, ok := cp.tryParseExpression(s, c, ctx)
	if ok {
		s = out
	}
	return s, true
}

func (cp *Compiler) parseRead(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	for {
		out, tt, ok := cp.tryParseSymbol(s, c, ctx)
		if !ok || (tt != token.Variable && tt != token.Array) {
			return s, false
		}
		s = out
		if tt == token.Array && c.isNextSymbolDrop('(') {
			out, ok = cp.tryParseExpression(s, c, ctx)
			if !ok {
				return s, false
			}
			s = out
		}
		if !c.isNextSymbolDrop(',') {
			return s, true
		}
	}
}

// parseRem consumes the rest of the line verbatim: REM's payload is
// raw text, not tokens. An over-long remark fails the statement's
// length patch like any other payload.
func parseRem(s []byte, c *cursor) ([]byte, bool) {
	rest := c.rest()
	s = append(s, rest...)
	c.pos += len(rest)
	return s, true
}

func (cp *Compiler) parseRandomize(s []byte, c *cursor, ctx *DefContext) ([]byte, bool) {
	out, ok := cp.tryParseExpression(s, c, ctx)
	if ok {
		s = out
	}
	return s, true
}
