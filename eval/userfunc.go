package eval

import (
	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/value"
)

// evalUserFunction evaluates a call to a DEF FN-defined function: idx
// selects the definition (syms.UserFuncs[idx]), the call's argument
// list is the Expression token immediately following in the stream
// (same comma-separated shape as a built-in function call), and the
// function body is itself a stored Expression token evaluated fresh
// with those arguments bound as the new Frame. The arguments are
// evaluated in the caller's frame; only the body sees the callee's.
func (ev *Evaluator) evalUserFunction(idx int, parms *[]byte, frame *Frame) (value.Value, error) {
	fn := ev.Symbols.UserFuncs[idx]
	if fn.Body == nil {
		return value.Value{}, errUndefinedUserFun
	}

	args, err := ev.Evaluate(parms, frame)
	if err != nil {
		return value.Value{}, err
	}

	want := len(fn.Params)
	if want == 0 || len(args) != 2*want-1 {
		return value.Value{}, errBadParamCount
	}

	callFrame := &Frame{Params: make([]store.UserFunctionParam, want)}
	for i, p := range fn.Params {
		arg := args[2*i]
		if !value.SameType(p.Value, arg) || (i > 0 && args[2*i-1].Kind != value.KindSeparator) {
			return value.Value{}, errBadArgType
		}
		callFrame.Params[i] = store.UserFunctionParam{Name: p.Name, Value: arg}
	}

	body := fn.Body
	result, err := ev.Evaluate(&body, callFrame)
	if err != nil {
		return value.Value{}, err
	}
	v, ok := result.Single()
	if !ok {
		return value.Value{}, errBadUserFuncExpr
	}
	return v, nil
}
