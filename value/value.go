// Package value implements the interpreter's runtime value model: the
// tagged union held by variables, arrays, and expression results, and the
// ordered ExpressionValue sequence produced by evaluating an expression.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variant stored in a Value. Only Number and
// String are ever held by a Variable or Array slot; Separator, Tab, and
// Error exist purely as transient members of an ExpressionValue.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindSeparator
	KindTab
	KindError
)

// Value is the runtime's tagged union; only the field matching Kind
// is meaningful.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Sep  byte // ',' or ';', valid when Kind == KindSeparator
	Tab  int  // column target, valid when Kind == KindTab
	Err  string
}

// Number constructs a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// String constructs a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Separator constructs a comma or semicolon pseudo-value.
func Separator(kind byte) Value { return Value{Kind: KindSeparator, Sep: kind} }

// Tab constructs a PRINT TAB() pseudo-value targeting column n.
func Tab(n int) Value { return Value{Kind: KindTab, Tab: n} }

// Error constructs an error sentinel. An empty message means "generic
// syntax/evaluation error" and renders as "Bad expression".
func Error(msg string) Value { return Value{Kind: KindError, Err: msg} }

// Bool reports a BASIC numeric truth value: 0 is false, anything else
// (including negatives) is true.
func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

// Truthy evaluates a value per IF's condition rule: nonzero numbers and
// non-empty strings are true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNumber:
		return v.Num != 0
	case KindString:
		return len(v.Str) > 0
	default:
		return false
	}
}

// SameType reports whether a and b are both numbers or both strings;
// this is the type-compatibility check LET/READ/array-assignment use
// before overwriting an existing slot.
func SameType(a, b Value) bool {
	return (a.Kind == KindNumber && b.Kind == KindNumber) ||
		(a.Kind == KindString && b.Kind == KindString)
}

// FormatNumber renders a number the way PRINT and STR$ do: %g with
// six significant digits, not the shortest round-trip form. PRINT 1/3
// reads "0.333333", not "0.3333333333333333".
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', 6, 64)
}

// String renders a value as bare text: numbers through FormatNumber with
// no surrounding spaces, strings verbatim, separators as their
// character, TAB as "TAB(n)", and errors as their message.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Num)
	case KindString:
		return v.Str
	case KindSeparator:
		return string(v.Sep)
	case KindTab:
		return fmt.Sprintf("TAB(%d)", v.Tab)
	case KindError:
		if v.Err == "" {
			return "Bad expression"
		}
		return v.Err
	default:
		return ""
	}
}

// ExpressionValue is the ordered sequence of values an expression
// produces: a plain expression yields exactly one value, but a PRINT-style
// comma/semicolon list intermixes Separator and Tab pseudo-values between
// the real ones.
type ExpressionValue []Value

// Single reports the lone value of an ExpressionValue that is expected to
// hold exactly one real value (assignment right-hand sides, array
// indices collapsed to one dimension, etc).
func (e ExpressionValue) Single() (Value, bool) {
	if len(e) != 1 {
		return Value{}, false
	}
	return e[0], true
}

// HasError reports whether any member of the sequence is an Error value,
// and returns the first one found.
func (e ExpressionValue) HasError() (Value, bool) {
	for _, v := range e {
		if v.Kind == KindError {
			return v, true
		}
	}
	return Value{}, false
}

// Join concatenates the String form of every member of the sequence,
// with no quoting and no added spaces.
func (e ExpressionValue) Join() string {
	var sb strings.Builder
	for _, v := range e {
		sb.WriteString(v.String())
	}
	return sb.String()
}
