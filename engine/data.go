package engine

import (
	"github.com/basic-lang/basic/compiler"
	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
	"github.com/basic-lang/basic/value"
)

// executeRestore repoints the DATA cursor at the given line (or the
// first program line if none given), forcing the next READ to rescan
// for the first DATA item from there.
func (e *Engine) executeRestore(parms []byte) error {
	line := token.CommandLine
	if len(parms) > 0 {
		line = token.DecodeLineNumber(&parms)
	} else if first, ok := e.State.Program.First(); ok {
		line = first
	}
	e.State.Read = store.ReadPointer{Pointer: store.Pointer{Line: line}, ItemOffset: -1}
	if _, ok := e.State.Program.Get(line); !ok && line != token.CommandLine {
		return errorf("No DATA for RESTORE")
	}
	return nil
}

// scanForNextDataItem advances the read cursor to the start of the
// next unconsumed DATA item, scanning forward across statements and
// lines as needed. The program store holds no long-lived iterator
// (see store.Program), so "next line" is re-resolved by nextLine on
// each hop, which sorts every stored line number (SortedLines) and
// binary-searches the result.
func (e *Engine) scanForNextDataItem() bool {
	rp := &e.State.Read
	if _, ok := e.State.Program.Get(rp.Line); !ok && rp.Line != token.CommandLine {
		return false
	}

	if rp.ItemOffset == -1 || rp.ItemOffset >= rp.Limit {
		if rp.ItemOffset != -1 {
			stmt, _ := e.State.Program.Get(rp.Line)
			length := int(stmt[rp.Offset+1])
			rp.Offset += 2 + length
		}

		for {
			stmt, ok := e.State.Program.Get(rp.Line)
			if !ok {
				return false
			}
			if rp.Offset >= len(stmt) {
				next, ok := e.nextLine(rp.Line)
				if !ok {
					rp.Line = token.Shutdown
					return false
				}
				rp.Line = next
				rp.Offset = 0
				continue
			}

			code := compiler.Code(stmt[rp.Offset])
			if compiler.Instructions[code].DataStatement {
				rp.ItemOffset = rp.Offset + 2
				rp.Limit = rp.Offset + 2 + int(stmt[rp.Offset+1])
				return true
			}
			length := int(stmt[rp.Offset+1])
			rp.Offset += 2 + length
		}
	}
	return true
}

// getNextDataItem consumes and returns the next DATA value, advancing
// the read cursor past it.
func (e *Engine) getNextDataItem() (value.Value, bool) {
	if !e.scanForNextDataItem() {
		return value.Value{}, false
	}
	stmt, _ := e.State.Program.Get(e.State.Read.Line)
	p := stmt[e.State.Read.ItemOffset:]
	before := len(p)
	var v value.Value
	if token.PeekType(p) == token.Number {
		v = value.Number(token.DecodeNumber(&p))
	} else {
		v = value.String(token.DecodeString(&p))
	}
	e.State.Read.ItemOffset += before - len(p)
	return v, true
}
