// Package eval evaluates a compiled expression token stream at
// runtime: the shunting-yard pass over operators (whose precedence and
// apply-logic live in package optable), symbol lookups against the live
// store.SymbolTable, and the built-in function/system-variable bodies.
package eval

import (
	"math/rand"

	"github.com/basic-lang/basic/optable"
	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
	"github.com/basic-lang/basic/value"
)

// Frame is the active user-function call context: the formal
// parameters' current bound values, consulted when a ParameterRef token
// is evaluated inside a DEF body. Nil outside a user function call.
type Frame struct {
	Params []store.UserFunctionParam
}

// IO is the small set of runtime callbacks evaluation needs for
// INKEY$ and TIME$, kept as an interface so callers can
// supply a real terminal, a test double, or a GUI/TUI front end
// uniformly.
type IO interface {
	LastKey() byte
	Clock() string
}

// Evaluator threads the symbol table and IO collaborator through every
// evaluation call; a single instance is reused for the life of a run.
type Evaluator struct {
	Symbols *store.SymbolTable
	IO      IO
	Rand    *rand.Rand
}

// NewEvaluator returns an evaluator backed by syms and io, seeding its
// own random source (RANDOMIZE reseeds it later).
func NewEvaluator(syms *store.SymbolTable, io IO) *Evaluator {
	return &Evaluator{Symbols: syms, IO: io, Rand: rand.New(rand.NewSource(1))}
}

// Evaluate runs the shunting-yard pass over one Expression token's
// payload (parms must start at the Expression tag byte), matching
// EvaluateExpression. It reports the first Error value found, if any,
// as a Go error as well as leaving it in the result (so a caller that
// only wants the error can skip inspecting the value sequence).
func (ev *Evaluator) Evaluate(parms *[]byte, frame *Frame) (value.ExpressionValue, error) {
	p := *parms
	p = p[1:] // skip Expression tag
	length := int(p[0])
	p = p[1:]
	stop := len(p) - length

	var result value.ExpressionValue
	var opStack []int
	lastWasOperand := false
	haveLast := false

	for len(p) > stop {
		tt := token.PeekType(p)
		switch tt {
		case token.Number:
			result = append(result, value.Number(token.DecodeNumber(&p)))
			lastWasOperand, haveLast = true, true
		case token.String:
			result = append(result, value.String(token.DecodeString(&p)))
			lastWasOperand, haveLast = true, true
		case token.Expression:
			v, err := ev.evalSubexpression(&p, frame)
			if err != nil {
				return result, err
			}
			result = append(result, v)
			lastWasOperand, haveLast = true, true
		case token.Variable:
			idx := token.DecodeIndex2(&p, token.Variable)
			result = append(result, ev.Symbols.Vars[idx].Value)
			lastWasOperand, haveLast = true, true
		case token.Array:
			idx := token.DecodeIndex1(&p, token.Array)
			av, err := ev.evalArray(idx, &p, frame)
			if err != nil {
				return result, err
			}
			result = append(result, av)
			lastWasOperand, haveLast = true, true
		case token.SystemVar:
			idx := token.DecodeIndex1(&p, token.SystemVar)
			result = append(result, ev.evalSysVar(idx))
			lastWasOperand, haveLast = true, true
		case token.Function:
			idx := token.DecodeIndex1(&p, token.Function)
			fv, err := ev.evalFunction(idx, &p, frame)
			if err != nil {
				return result, err
			}
			result = append(result, fv)
			lastWasOperand, haveLast = true, true
		case token.UserFunction:
			idx := token.DecodeIndex1(&p, token.UserFunction)
			uv, err := ev.evalUserFunction(idx, &p, frame)
			if err != nil {
				return result, err
			}
			result = append(result, uv)
			lastWasOperand, haveLast = true, true
		case token.ParameterRef:
			idx := token.DecodeIndex1(&p, token.ParameterRef)
			if frame == nil || idx < 0 || idx >= len(frame.Params) {
				return result, errBadExpression
			}
			result = append(result, frame.Params[idx].Value)
			lastWasOperand, haveLast = true, true
		case token.Op:
			op := int(p[1])
			p = p[2:]

			if !lastWasOperand || !haveLast {
				if optable.Table[op].UnaryNext {
					op++
				}
			}

			if optable.Table[op].IsSeparator {
				for len(opStack) > 0 {
					result = applyOp(result, opStack[len(opStack)-1])
					opStack = opStack[:len(opStack)-1]
				}
				result = applyOp(result, op)
				lastWasOperand = false
				continue
			}

			if optable.Table[op].RightAssoc {
				for len(opStack) > 0 && optable.Table[opStack[len(opStack)-1]].Precedence > optable.Table[op].Precedence {
					result = applyOp(result, opStack[len(opStack)-1])
					opStack = opStack[:len(opStack)-1]
				}
			} else {
				for len(opStack) > 0 && optable.Table[opStack[len(opStack)-1]].Precedence >= optable.Table[op].Precedence {
					result = applyOp(result, opStack[len(opStack)-1])
					opStack = opStack[:len(opStack)-1]
				}
			}
			opStack = append(opStack, op)
			lastWasOperand = false
		default:
			*parms = p
			return result, errBadExpression
		}
	}

	for len(opStack) > 0 {
		result = applyOp(result, opStack[len(opStack)-1])
		opStack = opStack[:len(opStack)-1]
	}

	*parms = p

	if v, ok := result.HasError(); ok {
		msg := v.Err
		if msg == "" {
			msg = "Bad expression"
		}
		return result, errorString(msg)
	}
	return result, nil
}

func applyOp(val value.ExpressionValue, code int) value.ExpressionValue {
	return optable.Table[code].Eval(val)
}

func (ev *Evaluator) evalSubexpression(parms *[]byte, frame *Frame) (value.Value, error) {
	val, err := ev.Evaluate(parms, frame)
	if err != nil {
		return value.Value{}, err
	}
	v, ok := val.Single()
	if !ok {
		return value.Value{}, errMalformedExpr
	}
	return v, nil
}

func (ev *Evaluator) evalArray(idx int, parms *[]byte, frame *Frame) (value.Value, error) {
	index, err := ev.Evaluate(parms, frame)
	if err != nil {
		return value.Value{}, err
	}
	v, ok := ev.Symbols.ArrayGet(idx, index)
	if !ok {
		return value.Value{}, errBadArrayIndex
	}
	return v, nil
}

func (ev *Evaluator) evalSysVar(idx int) value.Value {
	switch idx {
	case 0: // INKEY$
		if ev.IO == nil {
			return value.String("")
		}
		if k := ev.IO.LastKey(); k != 0 {
			return value.String(string([]byte{k}))
		}
		return value.String("")
	case 1: // TIME$
		if ev.IO == nil {
			return value.String("")
		}
		return value.String(ev.IO.Clock())
	}
	return value.Value{}
}
