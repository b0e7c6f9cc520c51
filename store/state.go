package store

import "github.com/basic-lang/basic/token"

// Pointer locates a position within either the program or the
// transient command line: Line == token.CommandLine means "the command
// line buffer", any other (non-Shutdown) value means "offset Offset
// into that program line's statement bytes".
type Pointer struct {
	Line        token.LineNumber
	Offset      int
	SkipForNext bool // ANSI-FOR: suppress execution until the owning NEXT
}

// ForFrame is one entry of the FOR stack: the loop variable's index, its
// limit and step, and the pointer to resume at for the next iteration
// (the instruction right after FOR).
type ForFrame struct {
	VarIndex int
	Limit    float64
	Step     float64
	Resume   Pointer
}

// ReadPointer is the DATA/READ cursor: like Pointer but it additionally
// tracks a byte offset *within* the current DATA statement's payload
// (ItemOffset) and that payload's end (Limit), since a single DATA
// statement holds many comma-separated items that READ consumes one at
// a time.
type ReadPointer struct {
	Pointer
	ItemOffset int // -1 means "not yet scanned since the last RESTORE"
	Limit      int
}

// State bundles everything the execution engine mutates while a program
// runs: the program store, the live command-line buffer, the symbol
// table, the call/loop/data bookkeeping, and the running PRINT column
// used by comma/TAB alignment.
type State struct {
	Program     *Program
	CommandLine []byte
	Symbols     *SymbolTable

	Exec   Pointer
	Stack  []Pointer // GOSUB return addresses
	Loops  []ForFrame
	Read   ReadPointer
	IfTags []int // offsets of pending IF ELSE-slot patches, parse-time only

	PrintColumn int
	LastLine    token.LineNumber // last line number parsed, for ':' continuation
	InError     bool
}

// NewState returns a freshly initialized, empty machine state.
func NewState() *State {
	s := &State{
		Program:  NewProgram(),
		Symbols:  NewSymbolTable(),
		LastLine: token.CommandLine,
	}
	s.resetPointers()
	return s
}

func (s *State) resetPointers() {
	s.Exec = Pointer{Line: token.CommandLine}
	s.CommandLine = nil
	s.Read = ReadPointer{Pointer: Pointer{Line: token.CommandLine}, ItemOffset: -1}
}

// New implements the NEW instruction: drop the program, all call/loop
// state, and every declared name. The symbol table is cleared in
// place, never replaced — the compiler and evaluator alias it.
func (s *State) New() {
	s.Program.Clear()
	s.Stack = nil
	s.Loops = nil
	s.Symbols.Clear()
	s.resetPointers()
}

// PrepareRun implements RUN's state reset: rewind execution and the
// READ cursor to the first program line, reset every variable/array to
// its default value (but keep declared names), and drop any pending
// GOSUB/FOR state. Does nothing if the program is empty.
func (s *State) PrepareRun() bool {
	first, ok := s.Program.First()
	if !ok {
		return false
	}
	s.Exec = Pointer{Line: first}
	s.Read = ReadPointer{Pointer: Pointer{Line: first}, ItemOffset: -1}
	s.Symbols.Reset()
	s.Loops = nil
	s.Stack = nil
	return true
}

// Statement returns the byte slice the execution pointer (or any
// other Pointer, e.g. a FOR frame's resume point) refers to.
func (s *State) Statement(p Pointer) []byte {
	if p.Line == token.CommandLine {
		return s.CommandLine
	}
	stmt, _ := s.Program.Get(p.Line)
	return stmt
}
