// Package optable holds the operator metadata table the expression
// compiler and evaluator both index into: name, precedence, associativity,
// and the small evaluation closure applied during the shunting-yard pass.
//
// The table's shape carries a deliberate trick. "+" and "-" each occupy
// two adjacent slots: a binary form first, flagged UnaryNext, followed
// immediately by its unary form. When the evaluator sees one of these
// operators and the previous token was itself an operator (or there was
// no previous token), it bumps the opcode to the next table index,
// picking up the unary form automatically. Code outside this package
// should treat that adjacency as an invariant of the table, not an
// accident of ordering.
package optable

import (
	"math"

	"github.com/basic-lang/basic/value"
)

// Code indexes into Table.
type Code int

const (
	Comma Code = iota
	Semicolon
	Add
	UnaryPlus
	Subtract
	UnaryMinus
	Multiply
	Divide
	Power
	LessOrEqual
	GreaterOrEqual
	NotEqual
	Greater
	Less
	Equal
	And
	Or
	Not
)

// Operator is one entry of the table: its source spelling, evaluation
// rule, and the flags the parser/evaluator consult.
type Operator struct {
	Name           string
	Precedence     int
	RightAssoc     bool
	IsSeparator    bool
	UnaryNext      bool // next table entry is this operator's unary form
	Unary          bool
	Eval           func(val value.ExpressionValue) value.ExpressionValue
}

// Table is the fixed operator list, in match-priority order: compound
// comparison operators (<=, >=, <>) must precede their single-character
// prefixes (<, >, =) or the shorter form would shadow them during
// left-to-right source matching.
var Table = []Operator{
	Comma:          {Name: ",", Precedence: 10, IsSeparator: true, Eval: evalComma},
	Semicolon:      {Name: ";", Precedence: 10, IsSeparator: true, Eval: evalSemicolon},
	Add:            {Name: "+", Precedence: 4, UnaryNext: true, Eval: evalAdd},
	UnaryPlus:      {Name: "+", Precedence: 9, Unary: true, RightAssoc: true, Eval: evalUnaryPlus},
	Subtract:       {Name: "-", Precedence: 4, UnaryNext: true, Eval: evalSubtract},
	UnaryMinus:     {Name: "-", Precedence: 9, Unary: true, RightAssoc: true, Eval: evalUnaryMinus},
	Multiply:       {Name: "*", Precedence: 5, Eval: evalMultiply},
	Divide:         {Name: "/", Precedence: 5, Eval: evalDivide},
	Power:          {Name: "^", Precedence: 6, Eval: evalPower},
	LessOrEqual:    {Name: "<=", Precedence: 3, Eval: evalLessOrEqual},
	GreaterOrEqual: {Name: ">=", Precedence: 3, Eval: evalGreaterOrEqual},
	NotEqual:       {Name: "<>", Precedence: 3, Eval: evalNotEqual},
	Greater:        {Name: ">", Precedence: 3, Eval: evalGreater},
	Less:           {Name: "<", Precedence: 3, Eval: evalLess},
	Equal:          {Name: "=", Precedence: 3, Eval: evalEqual},
	And:            {Name: "AND", Precedence: 2, Eval: evalAnd},
	Or:             {Name: "OR", Precedence: 2, Eval: evalOr},
	Not:            {Name: "NOT", Precedence: 1, Unary: true, RightAssoc: true, Eval: evalNot},
}

// prepareMath pops the top two values as numbers for a binary arithmetic
// operator. ok is false (and the stack is left untouched) unless both are
// numbers.
func prepareMath(val value.ExpressionValue) (rest value.ExpressionValue, a, b float64, ok bool) {
	n := len(val)
	if n < 2 || val[n-1].Kind != value.KindNumber || val[n-2].Kind != value.KindNumber {
		return val, 0, 0, false
	}
	return val[:n-2], val[n-2].Num, val[n-1].Num, true
}

// prepareLogical pops the top two values as BASIC booleans for AND/OR.
func prepareLogical(val value.ExpressionValue) (rest value.ExpressionValue, a, b bool, ok bool) {
	n := len(val)
	if n < 2 {
		return val, false, false, false
	}
	bv, bok := truthValue(val[n-1])
	av, aok := truthValue(val[n-2])
	if !bok || !aok {
		return val, false, false, false
	}
	return val[:n-2], av, bv, true
}

func truthValue(v value.Value) (bool, bool) {
	switch v.Kind {
	case value.KindNumber:
		return v.Num != 0, true
	case value.KindString:
		return len(v.Str) > 0, true
	default:
		return false, false
	}
}

// compareResult pops the top two same-typed values and returns a
// three-way comparison result (-1/0/1), or ok=false if they are not both
// numbers or both strings.
func compareResult(val value.ExpressionValue) (rest value.ExpressionValue, cmp int, ok bool) {
	n := len(val)
	if n < 2 {
		return val, 0, false
	}
	a, b := val[n-2], val[n-1]
	switch {
	case a.Kind == value.KindNumber && b.Kind == value.KindNumber:
		switch {
		case a.Num < b.Num:
			cmp = -1
		case a.Num > b.Num:
			cmp = 1
		}
		return val[:n-2], cmp, true
	case a.Kind == value.KindString && b.Kind == value.KindString:
		switch {
		case a.Str < b.Str:
			cmp = -1
		case a.Str > b.Str:
			cmp = 1
		}
		return val[:n-2], cmp, true
	default:
		return val, 0, false
	}
}

func evalComma(val value.ExpressionValue) value.ExpressionValue {
	return append(val, value.Separator(','))
}

func evalSemicolon(val value.ExpressionValue) value.ExpressionValue {
	return append(val, value.Separator(';'))
}

func evalAdd(val value.ExpressionValue) value.ExpressionValue {
	n := len(val)
	if n > 1 && val[n-1].Kind == val[n-2].Kind {
		switch val[n-1].Kind {
		case value.KindNumber:
			return append(val[:n-2], value.Number(val[n-2].Num+val[n-1].Num))
		case value.KindString:
			return append(val[:n-2], value.String(val[n-2].Str+val[n-1].Str))
		}
	}
	return append(val, value.Error(""))
}

func evalSubtract(val value.ExpressionValue) value.ExpressionValue {
	rest, a, b, ok := prepareMath(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Number(a-b))
}

func evalMultiply(val value.ExpressionValue) value.ExpressionValue {
	rest, a, b, ok := prepareMath(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Number(a*b))
}

func evalDivide(val value.ExpressionValue) value.ExpressionValue {
	rest, a, b, ok := prepareMath(val)
	if !ok {
		return append(val, value.Error(""))
	}
	if b == 0 {
		return append(rest, value.Error("Division by zero"))
	}
	return append(rest, value.Number(a/b))
}

func evalPower(val value.ExpressionValue) value.ExpressionValue {
	rest, a, b, ok := prepareMath(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Number(math.Pow(a, b)))
}

func evalLessOrEqual(val value.ExpressionValue) value.ExpressionValue {
	rest, cmp, ok := compareResult(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Bool(cmp <= 0))
}

func evalGreaterOrEqual(val value.ExpressionValue) value.ExpressionValue {
	rest, cmp, ok := compareResult(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Bool(cmp >= 0))
}

func evalNotEqual(val value.ExpressionValue) value.ExpressionValue {
	rest, cmp, ok := compareResult(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Bool(cmp != 0))
}

func evalGreater(val value.ExpressionValue) value.ExpressionValue {
	rest, cmp, ok := compareResult(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Bool(cmp > 0))
}

func evalLess(val value.ExpressionValue) value.ExpressionValue {
	rest, cmp, ok := compareResult(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Bool(cmp < 0))
}

func evalEqual(val value.ExpressionValue) value.ExpressionValue {
	rest, cmp, ok := compareResult(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Bool(cmp == 0))
}

func evalAnd(val value.ExpressionValue) value.ExpressionValue {
	rest, a, b, ok := prepareLogical(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Bool(a && b))
}

func evalOr(val value.ExpressionValue) value.ExpressionValue {
	rest, a, b, ok := prepareLogical(val)
	if !ok {
		return append(val, value.Error(""))
	}
	return append(rest, value.Bool(a || b))
}

func evalNot(val value.ExpressionValue) value.ExpressionValue {
	n := len(val)
	if n == 0 {
		return append(val, value.Error(""))
	}
	switch val[n-1].Kind {
	case value.KindNumber:
		return append(val[:n-1], value.Bool(val[n-1].Num == 0))
	case value.KindString:
		return append(val[:n-1], value.Bool(len(val[n-1].Str) == 0))
	default:
		return append(val, value.Error(""))
	}
}

func evalUnaryPlus(val value.ExpressionValue) value.ExpressionValue {
	if len(val) == 0 {
		return append(val, value.Error(""))
	}
	return val
}

func evalUnaryMinus(val value.ExpressionValue) value.ExpressionValue {
	n := len(val)
	if n == 0 || val[n-1].Kind != value.KindNumber {
		return append(val, value.Error(""))
	}
	return append(val[:n-1], value.Number(-val[n-1].Num))
}
