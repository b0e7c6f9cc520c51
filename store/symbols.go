// Package store holds the interpreter's mutable runtime state: the
// variable/array/user-function symbol tables, the line-numbered program,
// and the bookkeeping (execution pointer, GOSUB stack, FOR stack, DATA
// read cursor) the execution engine advances as it runs.
package store

import (
	"strings"

	"github.com/basic-lang/basic/value"
)

// maxVariables matches the two-byte variable index encoded in a
// tokenized statement (token.Variable carries a 16-bit index).
const maxVariables = 1 << 16

// maxNamed matches the one-byte index used for arrays, user
// functions, built-in functions, and system variables.
const maxNamed = 1 << 8

// Variable is a named scalar slot. Value.Kind is fixed at declaration
// time by the trailing '$' convention (string) or its absence (number)
// and never changes thereafter except by NEW/RUN's reset.
type Variable struct {
	Name  string
	Value value.Value
}

// Array is a named, possibly multi-dimensional value store. Dimensions
// holds one entry per declared subscript (size, inclusive of index 0),
// and Values is the flattened row-major backing slice.
type Array struct {
	Name       string
	Dimensions []int
	Values     []value.Value
}

// UserFunctionParam is one DEF FN parameter: a name local to the
// function body, holding whatever argument value was bound for a call.
type UserFunctionParam struct {
	Name  string
	Value value.Value
}

// UserFunction is a DEF FN definition: its formal parameters and its
// compiled expression body (a single token.Expression payload).
type UserFunction struct {
	Name   string
	Params []UserFunctionParam
	Body   []byte
}

// SymbolTable is the parse-time-allocated set of names a program has
// referenced: variables, arrays, and user functions are all created the
// first time the tokenizer encounters their name, and persist (as
// slots, though NEW/RUN reset their values) until NEW discards the
// table outright: names are allocated during parsing, not at first
// assignment.
type SymbolTable struct {
	Vars      []Variable
	Arrays    []Array
	UserFuncs []UserFunction
}

// NewSymbolTable returns an empty table ready for a fresh program.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Clear drops every declared name. It empties the table in place so
// the compiler, evaluator, and engine — which all alias the same
// *SymbolTable — stay in sync across NEW/LOAD.
func (t *SymbolTable) Clear() {
	t.Vars = nil
	t.Arrays = nil
	t.UserFuncs = nil
}

func isStringName(name string) bool {
	return strings.HasSuffix(name, "$")
}

// DeclareVariable returns the index of name, creating a new Number- or
// String-valued slot (by the trailing '$' convention) if this is the
// first reference. ok is false once the table has exhausted the 16-bit
// variable index space.
func (t *SymbolTable) DeclareVariable(name string) (index int, ok bool) {
	for i, v := range t.Vars {
		if v.Name == name {
			return i, true
		}
	}
	if len(t.Vars) >= maxVariables {
		return 0, false
	}
	v := Variable{Name: name, Value: value.Number(0)}
	if isStringName(name) {
		v.Value = value.String("")
	}
	t.Vars = append(t.Vars, v)
	return len(t.Vars) - 1, true
}

// DeclareArray returns the index of name, creating a default
// 11-element (indices 0..10) one-dimensional array if this is the
// first reference; an explicit DIM later replaces the default shape.
func (t *SymbolTable) DeclareArray(name string) (index int, ok bool) {
	for i, a := range t.Arrays {
		if a.Name == name {
			return i, true
		}
	}
	if len(t.Arrays) >= maxNamed {
		return 0, false
	}
	t.Arrays = append(t.Arrays, Array{Name: name})
	idx := len(t.Arrays) - 1
	t.createDefault(idx)
	return idx, true
}

// createDefault (re)initializes arrays[idx] as an 11-element 1-D array,
// used both for implicit first reference and to reset arrays on NEW/RUN.
func (t *SymbolTable) createDefault(idx int) {
	t.Create(idx, []int{11})
}

// Create (re)dimensions arrays[idx] to the given per-dimension sizes
// (each already inclusive of index 0, i.e. DIM A(9) passes size 10) and
// clears its backing storage to the zero value of its element type.
func (t *SymbolTable) Create(idx int, dims []int) {
	a := &t.Arrays[idx]
	a.Dimensions = append([]int(nil), dims...)
	size := 1
	for _, d := range dims {
		size *= d
	}
	zero := value.Number(0)
	if isStringName(a.Name) {
		zero = value.String("")
	}
	a.Values = make([]value.Value, size)
	for i := range a.Values {
		a.Values[i] = zero
	}
}

// Index flattens a set of per-dimension subscripts (already decoded to
// ints, one per declared dimension) into the array's backing slice
// index, or reports ok=false on a dimension-count or bounds mismatch.
func (a *Array) Index(subs []int) (int, bool) {
	if len(subs) != len(a.Dimensions) {
		return 0, false
	}
	idx := 0
	for i, d := range a.Dimensions {
		if subs[i] < 0 || subs[i] >= d {
			return 0, false
		}
		idx = idx*d + subs[i]
	}
	return idx, true
}

// DeclareUserFunction returns the index of an FN name, creating an empty
// (as yet undefined) entry if this is the first reference; DEF later
// fills in Params/Body for the same slot.
func (t *SymbolTable) DeclareUserFunction(name string) (index int, ok bool) {
	for i, u := range t.UserFuncs {
		if u.Name == name {
			return i, true
		}
	}
	if len(t.UserFuncs) >= maxNamed {
		return 0, false
	}
	t.UserFuncs = append(t.UserFuncs, UserFunction{Name: name})
	return len(t.UserFuncs) - 1, true
}

// Reset restores every variable to its type's zero value, re-defaults
// every array to its 11-element shape, and clears every user function
// body, without discarding the allocated names/slots themselves. This is
// RUN's variable-reset behavior (NEW goes further and drops the tables).
func (t *SymbolTable) Reset() {
	for i := range t.Vars {
		if t.Vars[i].Value.Kind == value.KindString {
			t.Vars[i].Value = value.String("")
		} else {
			t.Vars[i].Value = value.Number(0)
		}
	}
	for i := range t.Arrays {
		t.createDefault(i)
	}
	for i := range t.UserFuncs {
		t.UserFuncs[i].Body = nil
		t.UserFuncs[i].Params = nil
	}
}
