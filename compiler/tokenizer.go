package compiler

import (
	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
)

// CompileResult is the outcome of tokenizing one input line: either a
// program line (Line > token.CommandLine) to store, a command line to
// execute immediately (Line == token.CommandLine), or a parse error.
type CompileResult struct {
	Line token.LineNumber
	Stmt []byte
	Err  error
}

// Compile tokenizes one line of input: a leading line number routes
// the result into the program; a leading ':' continues appending to the previously entered program line
// (letting a user build up one line's statements across several
// typed-in inputs); anything else becomes a command-line statement to
// run immediately. Colons between instructions need not be typed at
// all where the grammar is unambiguous.
func (cp *Compiler) Compile(line string, st *store.State) CompileResult {
	c := newCursor(line)
	c.ignoreSpaces()
	cp.errMsg = ""

	result := CompileResult{Line: token.CommandLine}
	if c.atEnd() {
		return result
	}

	if isDigit(c.peek()) {
		n, ok := getLineNumber(c)
		if !ok {
			result.Err = &ParseError{Msg: "Line number is too large", Pos: c.pos}
			return result
		}
		result.Line = n
	}
	c.ignoreSpaces()

	var stmt []byte
	if result.Line == token.CommandLine && c.isNextSymbolKeep(':') && st.LastLine > token.CommandLine {
		if existing, ok := st.Program.Get(st.LastLine); ok {
			c.pos++
			c.ignoreSpaces()
			result.Line = st.LastLine
			stmt = append(stmt, existing...)
		} else {
			cp.ifStack = nil
		}
	} else {
		cp.ifStack = nil
	}

	for !c.atEnd() {
		out, ok := cp.parseOneInstruction(stmt, c, nil)
		if !ok {
			msg := cp.errMsg
			if msg == "" {
				msg = "Syntax error"
			}
			result.Err = &ParseError{Msg: msg, Pos: c.pos}
			return result
		}
		stmt = out
		c.ignoreSpaces()
	}

	result.Stmt = stmt
	st.LastLine = result.Line
	return result
}
