package store

import (
	"sort"

	"github.com/basic-lang/basic/token"
)

// Program is the line-numbered statement store: each line holds one
// tokenized statement (possibly several instructions long, colons
// having been folded away at tokenize time). Lookup by line number is
// O(1), so no iterator is ever cached — the execution pointer
// re-resolves its line on every access, and program edits can never
// invalidate a held position.
type Program struct {
	lines map[token.LineNumber][]byte
}

// NewProgram returns an empty program store.
func NewProgram() *Program {
	return &Program{lines: make(map[token.LineNumber][]byte)}
}

// Set stores (or replaces) the statement bytes for a line.
func (p *Program) Set(line token.LineNumber, stmt []byte) {
	p.lines[line] = stmt
}

// Get returns the statement bytes for a line and whether it exists.
func (p *Program) Get(line token.LineNumber) ([]byte, bool) {
	s, ok := p.lines[line]
	return s, ok
}

// Delete removes a line entirely (an empty-bodied input line deletes it,
// matching the usual BASIC convention of "10<enter>" removing line 10).
func (p *Program) Delete(line token.LineNumber) {
	delete(p.lines, line)
}

// Clear removes every line (NEW, and the implicit NEW inside LOAD).
func (p *Program) Clear() {
	p.lines = make(map[token.LineNumber][]byte)
}

// Len reports how many lines are stored.
func (p *Program) Len() int {
	return len(p.lines)
}

// Empty reports whether the program has no lines at all.
func (p *Program) Empty() bool {
	return len(p.lines) == 0
}

// SortedLines returns every stored line number in ascending order.
// Callers needing a range (LIST, RUN's first line, the READ cursor's
// next-line hop) use this rather than holding a long-lived iterator.
func (p *Program) SortedLines() []token.LineNumber {
	out := make([]token.LineNumber, 0, len(p.lines))
	for ln := range p.lines {
		out = append(out, ln)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// First returns the lowest-numbered line, or ok=false if the program is
// empty (RUN with nothing loaded).
func (p *Program) First() (token.LineNumber, bool) {
	lines := p.SortedLines()
	if len(lines) == 0 {
		return 0, false
	}
	return lines[0], true
}

// Range returns every (line, statement) pair with from <= line <= to, in
// ascending order, for LIST.
func (p *Program) Range(from, to token.LineNumber) []struct {
	Line token.LineNumber
	Stmt []byte
} {
	var out []struct {
		Line token.LineNumber
		Stmt []byte
	}
	for _, ln := range p.SortedLines() {
		if ln >= from && ln <= to {
			out = append(out, struct {
				Line token.LineNumber
				Stmt []byte
			}{ln, p.lines[ln]})
		}
	}
	return out
}
