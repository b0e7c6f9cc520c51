// Package monitor implements the line-breakpoint and
// variable-watchpoint tracking the "-monitor" flag attaches to the
// running engine, keyed by BASIC line number and variable name.
package monitor

import (
	"fmt"
	"sync"

	"github.com/basic-lang/basic/engine"
	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
	"github.com/basic-lang/basic/value"
)

// Breakpoint pauses execution the first time (or every time) program
// control reaches Line.
type Breakpoint struct {
	ID        int
	Line      token.LineNumber
	Enabled   bool
	Temporary bool // auto-delete after first hit
	HitCount  int
}

// Watchpoint pauses execution the first time a named variable's value
// differs from the value last observed. This is value-change
// detection only — there is no separate read-vs-write tracking.
type Watchpoint struct {
	ID        int
	Name      string
	Enabled   bool
	lastValue value.Value
	primed    bool
	HitCount  int
}

// Hit describes why Check most recently returned true.
type Hit struct {
	Line        token.LineNumber
	Breakpoint  *Breakpoint
	Watchpoint  *Watchpoint
	Description string
}

// Monitor implements engine.Monitor: it is consulted once per statement
// and reports whether execution should pause.
type Monitor struct {
	mu sync.Mutex

	eng *engine.Engine

	breakpoints map[token.LineNumber]*Breakpoint
	watches     []*Watchpoint
	nextBPID    int
	nextWPID    int

	// prevLine is the line Check last ran on, so a breakpoint fires
	// once on entering its line rather than on every statement in it
	// (and not again when execution resumes from the pause).
	prevLine token.LineNumber

	LastHit *Hit
}

// New returns a Monitor attached to eng, ready to be assigned to
// eng.Monitor.
func New(eng *engine.Engine) *Monitor {
	return &Monitor{
		eng:         eng,
		breakpoints: make(map[token.LineNumber]*Breakpoint),
		nextBPID:    1,
		nextWPID:    1,
		prevLine:    token.CommandLine,
	}
}

// AddBreakpoint sets (or re-enables) a breakpoint at line.
func (m *Monitor) AddBreakpoint(line token.LineNumber, temporary bool) *Breakpoint {
	m.mu.Lock()
	defer m.mu.Unlock()

	if bp, ok := m.breakpoints[line]; ok {
		bp.Enabled = true
		bp.Temporary = temporary
		return bp
	}

	bp := &Breakpoint{ID: m.nextBPID, Line: line, Enabled: true, Temporary: temporary}
	m.breakpoints[line] = bp
	m.nextBPID++
	return bp
}

// DeleteBreakpoint removes the breakpoint with the given ID.
func (m *Monitor) DeleteBreakpoint(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for line, bp := range m.breakpoints {
		if bp.ID == id {
			delete(m.breakpoints, line)
			return nil
		}
	}
	return fmt.Errorf("breakpoint %d not found", id)
}

// Breakpoints returns every currently set breakpoint.
func (m *Monitor) Breakpoints() []*Breakpoint {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*Breakpoint, 0, len(m.breakpoints))
	for _, bp := range m.breakpoints {
		result = append(result, bp)
	}
	return result
}

// AddWatch starts watching the named variable for value changes. The
// watchpoint does not fire on the statement it was added at; Check
// primes its baseline the first time it sees the variable.
func (m *Monitor) AddWatch(name string) *Watchpoint {
	m.mu.Lock()
	defer m.mu.Unlock()

	wp := &Watchpoint{ID: m.nextWPID, Name: name, Enabled: true}
	m.watches = append(m.watches, wp)
	m.nextWPID++
	return wp
}

// DeleteWatch removes the watchpoint with the given ID.
func (m *Monitor) DeleteWatch(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, wp := range m.watches {
		if wp.ID == id {
			m.watches = append(m.watches[:i], m.watches[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("watchpoint %d not found", id)
}

// Watches returns every currently set watchpoint.
func (m *Monitor) Watches() []*Watchpoint {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*Watchpoint, 0, len(m.watches))
	result = append(result, m.watches...)
	return result
}

// Check implements engine.Monitor. It is called once per statement,
// right before the statement dispatches, with the execution pointer
// still addressing the statement about to run (so a pause resumes at
// that same statement).
func (m *Monitor) Check(st *store.State) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	line := st.Exec.Line
	entered := line != m.prevLine
	m.prevLine = line

	if bp, ok := m.breakpoints[line]; ok && bp.Enabled && entered {
		bp.HitCount++
		if bp.Temporary {
			delete(m.breakpoints, line)
		}
		m.LastHit = &Hit{Line: line, Breakpoint: bp, Description: fmt.Sprintf("breakpoint %d at line %d", bp.ID, line)}
		return true
	}

	if wp, ok := m.checkWatches(st); ok {
		m.LastHit = &Hit{Line: line, Watchpoint: wp, Description: fmt.Sprintf("watchpoint %d: %s changed to %s", wp.ID, wp.Name, wp.lastValue.String())}
		return true
	}

	return false
}

// checkWatches scans every enabled watchpoint against the symbol
// table's current value, returning the first one whose value differs
// from what was last observed. A watchpoint whose variable has not
// been declared yet is skipped.
func (m *Monitor) checkWatches(st *store.State) (*Watchpoint, bool) {
	for _, wp := range m.watches {
		if !wp.Enabled {
			continue
		}

		idx, declared := findVariable(st.Symbols, wp.Name)
		if !declared {
			continue
		}
		current := st.Symbols.Vars[idx].Value

		if !wp.primed {
			wp.lastValue = current
			wp.primed = true
			continue
		}

		if current != wp.lastValue {
			wp.lastValue = current
			wp.HitCount++
			return wp, true
		}
	}
	return nil, false
}

// findVariable reports the index of an already-declared variable by
// name without allocating a new slot, unlike SymbolTable.DeclareVariable.
func findVariable(syms *store.SymbolTable, name string) (int, bool) {
	for i, v := range syms.Vars {
		if v.Name == name {
			return i, true
		}
	}
	return 0, false
}
