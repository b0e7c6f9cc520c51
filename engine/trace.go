package engine

import (
	"fmt"
	"io"

	"github.com/basic-lang/basic/compiler"
	"github.com/basic-lang/basic/token"
)

// TraceEntry represents a single executed statement.
type TraceEntry struct {
	Sequence uint64
	Line     token.LineNumber
	Offset   int
	Name     string
}

// ExecutionTrace records which statement ran, in order, for the -trace
// diagnostic flag: one line per executed statement written straight to
// Writer, with an optional cap to keep a runaway loop from filling a
// disk.
type ExecutionTrace struct {
	Enabled    bool
	Writer     io.Writer
	MaxEntries int

	seq uint64
}

// NewExecutionTrace creates a trace writing to writer.
func NewExecutionTrace(writer io.Writer) *ExecutionTrace {
	return &ExecutionTrace{
		Enabled:    true,
		Writer:     writer,
		MaxEntries: 100000,
	}
}

// RecordStatement records one executed statement. Statements skipped by
// an ANSI-FOR scan are not recorded, since they never dispatched.
func (t *ExecutionTrace) RecordStatement(line token.LineNumber, offset int, code compiler.Code) {
	if !t.Enabled || t.Writer == nil {
		return
	}
	if t.MaxEntries > 0 && t.seq >= uint64(t.MaxEntries) {
		return
	}
	t.seq++

	name := compiler.NameOf(code)
	if name == "" {
		if code == compiler.CodeGotoImplicit {
			name = "GOTO"
		} else {
			name = "LET"
		}
	}

	if line == token.CommandLine {
		fmt.Fprintf(t.Writer, "%6d    cmd+%-3d  %s\n", t.seq, offset, name)
		return
	}
	fmt.Fprintf(t.Writer, "%6d  %5d+%-3d  %s\n", t.seq, line, offset, name)
}
