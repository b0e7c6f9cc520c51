package eval

import (
	"math"
	"strconv"

	"github.com/basic-lang/basic/builtin"
	"github.com/basic-lang/basic/value"
)

// evalFunction evaluates one built-in function call: idx selects the
// function (builtin.Functions[idx]), and the argument list immediately
// follows in the token stream as a single Expression token (a
// comma-separated evaluated list, same shape as an array index),
// matching how the compiler emits a Function token (see tryParseSymbol).
func (ev *Evaluator) evalFunction(idx int, parms *[]byte, frame *Frame) (value.Value, error) {
	args, err := ev.Evaluate(parms, frame)
	if err != nil {
		return value.Value{}, err
	}
	return computeFunction(builtin.FuncCode(idx), args, ev), nil
}

func isNum(v value.Value) bool { return v.Kind == value.KindNumber }
func isStr(v value.Value) bool { return v.Kind == value.KindString }

// computeFunction evaluates one built-in call: each arm checks the
// argument count and type pattern (a string function sees [string] or
// [string, separator, number, ...]) and returns a generic "bad
// expression" error value when the pattern doesn't hold.
func computeFunction(code builtin.FuncCode, arg value.ExpressionValue, ev *Evaluator) value.Value {
	switch code {
	case builtin.Abs:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(math.Abs(arg[0].Num))
		}
	case builtin.Asc:
		if len(arg) == 1 && isStr(arg[0]) && len(arg[0].Str) > 0 {
			return value.Number(float64(arg[0].Str[0]))
		}
	case builtin.Atn:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(math.Atan(arg[0].Num))
		}
	case builtin.Chr:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.String(string([]byte{byte(int(arg[0].Num))}))
		}
	case builtin.Cos:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(math.Cos(arg[0].Num))
		}
	case builtin.Exp:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(math.Exp(arg[0].Num))
		}
	case builtin.Int:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(math.Floor(arg[0].Num))
		}
	case builtin.Left:
		if len(arg) == 3 && isStr(arg[0]) && isNum(arg[2]) {
			s := arg[0].Str
			n := int(arg[2].Num)
			if n > len(s) {
				n = len(s)
			}
			if n < 0 {
				n = 0
			}
			return value.String(s[:n])
		}
	case builtin.Len:
		if len(arg) == 1 && isStr(arg[0]) {
			return value.Number(float64(len(arg[0].Str)))
		}
	case builtin.Log:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(math.Log(arg[0].Num))
		}
	case builtin.Mid:
		if (len(arg) == 3 || len(arg) == 5) && isStr(arg[0]) && isNum(arg[2]) {
			s := arg[0].Str
			n := len(s)
			from := int(arg[2].Num)
			if from > n {
				from = n
			}
			from--
			if from < 0 {
				from = 0
			}
			count := n - from
			if len(arg) == 5 {
				if !isNum(arg[4]) {
					break
				}
				c := int(arg[4].Num)
				if n-from < c {
					c = n - from
				}
				count = c
			}
			if count < 0 {
				count = 0
			}
			end := from + count
			if end > n {
				end = n
			}
			return value.String(s[from:end])
		}
	case builtin.Rnd:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(ev.Rand.Float64())
		}
	case builtin.Right:
		if len(arg) == 3 && isStr(arg[0]) && isNum(arg[2]) {
			s := arg[0].Str
			n := len(s)
			start := n - int(arg[2].Num)
			if start < 0 {
				start = 0
			}
			return value.String(s[start:])
		}
	case builtin.Sgn:
		if len(arg) == 1 && isNum(arg[0]) {
			if arg[0].Num < 0 {
				return value.Number(-1)
			}
			return value.Number(1)
		}
	case builtin.Sin:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(math.Sin(arg[0].Num))
		}
	case builtin.Sqr:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(math.Sqrt(arg[0].Num))
		}
	case builtin.Str:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.String(value.FormatNumber(arg[0].Num))
		}
	case builtin.Tab:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Tab(int(arg[0].Num))
		}
	case builtin.Tan:
		if len(arg) == 1 && isNum(arg[0]) {
			return value.Number(math.Tan(arg[0].Num))
		}
	case builtin.Val:
		if len(arg) == 1 && isStr(arg[0]) {
			n, _ := strconv.ParseFloat(arg[0].Str, 64)
			return value.Number(n)
		}
	}
	return value.Error("")
}
