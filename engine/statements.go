package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/basic-lang/basic/compiler"
	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
	"github.com/basic-lang/basic/value"
)

func (e *Engine) executeLet(parms []byte) error {
	if token.PeekType(parms) == token.Array {
		idx := token.DecodeIndex1(&parms, token.Array)
		index, err := e.Eval.Evaluate(&parms, nil)
		if err != nil {
			return err
		}
		val, err := e.Eval.Evaluate(&parms, nil)
		if err != nil {
			return err
		}
		v, ok := val.Single()
		if !ok || !e.State.Symbols.ArraySet(idx, index, v) {
			return errorf("Bad assignment value")
		}
		return nil
	}

	idx := token.DecodeIndex2(&parms, token.Variable)
	val, err := e.Eval.Evaluate(&parms, nil)
	if err != nil {
		return err
	}
	v, ok := val.Single()
	if !ok || !value.SameType(e.State.Symbols.Vars[idx].Value, v) {
		return errorf("Bad assignment value")
	}
	e.State.Symbols.Vars[idx].Value = v
	return nil
}

func (e *Engine) executeDim(parms []byte) error {
	for len(parms) > 0 {
		if token.PeekType(parms) == token.Array {
			idx := token.DecodeIndex1(&parms, token.Array)
			val, err := e.Eval.Evaluate(&parms, nil)
			if err != nil {
				return err
			}
			if !e.State.Symbols.ArrayCreate(idx, val) {
				return errorf("Bad array dimensions")
			}
		} else {
			token.DecodeIndex2(&parms, token.Variable)
		}
	}
	return nil
}

// executeDef commits a DEF's compiled header/body into the permanent
// UserFunction entry: the parameter names (re-decoded from their
// Parameter tokens, typed by their '$' suffix) and the body
// expression bytes verbatim.
func (e *Engine) executeDef(parms []byte) error {
	idx := token.DecodeIndex1(&parms, token.UserFunction)
	var params []store.UserFunctionParam
	for token.PeekType(parms) == token.Parameter {
		name := token.DecodeString(&parms)
		p := store.UserFunctionParam{Name: name, Value: value.Number(0)}
		if strings.HasSuffix(name, "$") {
			p.Value = value.String("")
		}
		params = append(params, p)
	}
	body := append([]byte(nil), parms...)
	e.State.Symbols.UserFuncs[idx].Params = params
	e.State.Symbols.UserFuncs[idx].Body = body
	return nil
}

// executeElse is only ever reached by falling straight through from a
// true IF's consequent: it must skip the ELSE clause entirely,
// including (for a chained "ELSE IF ... THEN ...") jumping past that
// nested IF's own ELSE target rather than just one instruction.
func (e *Engine) executeElse([]byte) error {
	stmt := e.State.Statement(e.State.Exec)
	off := e.State.Exec.Offset
	if off >= len(stmt) {
		return nil
	}
	code := compiler.Code(stmt[off])
	if compiler.Instructions[code].IfStatement {
		elseOffset := int(stmt[off+2]) | int(stmt[off+3])<<8
		if elseOffset == 0 {
			e.State.Exec.Offset = len(stmt)
		} else {
			e.State.Exec.Offset = elseOffset
			return e.executeElse(nil)
		}
	} else {
		length := int(stmt[off+1])
		e.State.Exec.Offset = off + 2 + length
	}
	return nil
}

// executeIf evaluates the condition and, if false, jumps to the
// patched ELSE offset (or past the end of the statement if there was
// no ELSE). The ELSE offset was recorded as an
// absolute byte position within the statement by parseIf/parseElse, so
// it can be assigned to Exec.Offset directly.
func (e *Engine) executeIf(parms []byte) error {
	elseOffset := int(parms[0]) | int(parms[1])<<8
	body := parms[2:]
	val, err := e.Eval.Evaluate(&body, nil)
	if err != nil {
		return err
	}
	v, ok := val.Single()
	if !ok || (v.Kind != value.KindNumber && v.Kind != value.KindString) {
		return errorf("Bad IF expression")
	}
	if !v.Truthy() {
		if elseOffset != 0 {
			e.State.Exec.Offset = elseOffset
		} else {
			e.State.Exec.Offset = len(e.State.Statement(e.State.Exec))
		}
	}
	return nil
}

func (e *Engine) executeFor(parms []byte) error {
	idx := token.DecodeIndex2(&parms, token.Variable)

	initVal, err := e.Eval.Evaluate(&parms, nil)
	if err != nil {
		return err
	}
	iv, ok := initVal.Single()
	if !ok || iv.Kind != value.KindNumber {
		return errorf("Malformed FOR loop")
	}
	e.State.Symbols.Vars[idx].Value = iv

	limitVal, err := e.Eval.Evaluate(&parms, nil)
	if err != nil {
		return err
	}
	lv, ok := limitVal.Single()
	if !ok || lv.Kind != value.KindNumber {
		return errorf("Malformed FOR loop")
	}

	step := 1.0
	if token.PeekType(parms) != token.None {
		stepVal, err := e.Eval.Evaluate(&parms, nil)
		if err != nil {
			return err
		}
		sv, ok := stepVal.Single()
		if !ok || sv.Kind != value.KindNumber {
			return errorf("Malformed FOR loop")
		}
		step = sv.Num
	}

	resume := e.State.Exec
	if e.AnsiFor && (iv.Num-lv.Num)*step > 0 {
		e.State.Exec.SkipForNext = true
	}
	e.State.Loops = append(e.State.Loops, store.ForFrame{VarIndex: idx, Limit: lv.Num, Step: step, Resume: resume})
	return nil
}

// executeNext advances (or terminates) the innermost matching FOR loop,
// detecting an empty-bodied "delay loop" (FOR immediately followed by
// NEXT with nothing between) and sleeping out the remaining
// iterations instead of looping one at a time.
func (e *Engine) executeNext(parms []byte) error {
	if len(e.State.Loops) == 0 {
		return errorf("NEXT without FOR")
	}

	p := parms
	for {
		var idx int
		if len(p) > 0 {
			idx = token.DecodeIndex2(&p, token.Variable)
		} else {
			idx = e.State.Loops[len(e.State.Loops)-1].VarIndex
		}

		if e.State.Exec.SkipForNext {
			if idx == e.State.Loops[len(e.State.Loops)-1].VarIndex {
				e.State.Exec.SkipForNext = false
				e.State.Loops = e.State.Loops[:len(e.State.Loops)-1]
			}
			return nil
		}

		for len(e.State.Loops) > 0 && idx != e.State.Loops[len(e.State.Loops)-1].VarIndex {
			e.State.Loops = e.State.Loops[:len(e.State.Loops)-1]
		}
		if len(e.State.Loops) == 0 {
			return errorf("NEXT without FOR")
		}

		frame := e.State.Loops[len(e.State.Loops)-1]
		val := e.State.Symbols.Vars[idx].Value.Num + frame.Step
		e.State.Symbols.Vars[idx].Value = value.Number(val)

		if (val-frame.Limit)*frame.Step <= 0 {
			if frame.Resume.Line == e.State.Exec.Line && frame.Resume.Offset == e.curInstrStart {
				loops := 1
				if frame.Step != 0 {
					loops = int((frame.Limit - val + frame.Step) / frame.Step)
				}
				if loops > 0 {
					time.Sleep(time.Duration(loops) * time.Millisecond)
					e.State.Loops = e.State.Loops[:len(e.State.Loops)-1]
					e.State.Symbols.Vars[idx].Value = value.Number(val + float64(loops)*frame.Step)
				}
			} else {
				e.State.Exec = frame.Resume
				return nil
			}
		} else {
			e.State.Loops = e.State.Loops[:len(e.State.Loops)-1]
		}

		if len(p) == 0 {
			return nil
		}
	}
}

func (e *Engine) executeOn(parms []byte) error {
	val, err := e.Eval.Evaluate(&parms, nil)
	if err != nil {
		return err
	}
	v, ok := val.Single()
	if !ok || v.Kind != value.KindNumber {
		return errorf("Bad expression in ON")
	}

	isGosub := parms[0] == 1
	parms = parms[1:]

	index := int(v.Num) - 1
	count := len(parms) / 2
	if index < 0 || index >= count {
		return nil
	}
	for ; index > 0; index-- {
		token.DecodeLineNumber(&parms)
	}
	target := token.DecodeLineNumber(&parms)
	if _, ok := e.State.Program.Get(target); !ok {
		return errorf("ON - line not found")
	}

	if isGosub {
		e.State.Stack = append(e.State.Stack, e.State.Exec)
	}
	e.State.Exec = store.Pointer{Line: target}
	return nil
}

func (e *Engine) executePrint(parms []byte) error {
	if len(parms) > 0 {
		val, err := e.Eval.Evaluate(&parms, nil)
		if err != nil {
			return err
		}

		var buf strings.Builder
		for _, v := range val {
			switch v.Kind {
			case value.KindSeparator:
				if v.Sep == ',' {
					offset := 8 - (e.State.PrintColumn % 8)
					e.State.PrintColumn += offset
					buf.WriteString(strings.Repeat(" ", offset))
				}
			case value.KindNumber:
				if v.Num >= 0 {
					buf.WriteByte(' ')
					e.State.PrintColumn++
				}
				text := value.FormatNumber(v.Num) + " "
				buf.WriteString(text)
				e.State.PrintColumn += len(text)
			case value.KindString:
				buf.WriteString(v.Str)
				e.State.PrintColumn += len(v.Str)
			case value.KindTab:
				e.State.PrintColumn %= 80
				offset := v.Tab - e.State.PrintColumn
				if offset > 0 {
					e.State.PrintColumn += offset
					buf.WriteString(strings.Repeat(" ", offset))
				}
			}
		}

		e.IO.Print(buf.String())

		// A trailing separator holds the cursor on the current line.
		if len(val) > 0 && val[len(val)-1].Kind == value.KindSeparator {
			return nil
		}
	}

	e.State.PrintColumn = 0
	e.IO.Print("\n")
	return nil
}

func (e *Engine) executeInput(parms []byte) error {
	e.State.PrintColumn = 0

	prompt := "?"
	if token.PeekType(parms) == token.String {
		text := token.DecodeString(&parms)
		if parms[0] == 1 {
			prompt = text + "?"
		} else {
			prompt = text
		}
		parms = parms[1:]
	}

	for {
		e.IO.Print(prompt)

		line, ok := e.IO.ReadLine()
		if !ok {
			return errorf("The system is not ready")
		}
		items := splitInputLine(line)

		index := 0
		redo := false
		for len(parms) > 0 {
			if index >= len(items) {
				e.IO.Print("?Redo from start\n")
				redo = true
				break
			}
			if token.PeekType(parms) == token.Array {
				idx := token.DecodeIndex1(&parms, token.Array)
				ival, err := e.Eval.Evaluate(&parms, nil)
				if err != nil {
					return err
				}
				var v value.Value
				if len(e.State.Symbols.Arrays[idx].Values) > 0 && e.State.Symbols.Arrays[idx].Values[0].Kind == value.KindString {
					v = value.String(items[index])
				} else {
					v = value.Number(parseFloatLoose(items[index]))
				}
				if !e.State.Symbols.ArraySet(idx, ival, v) {
					return errorf("Bad value type")
				}
			} else {
				idx := token.DecodeIndex2(&parms, token.Variable)
				if e.State.Symbols.Vars[idx].Value.Kind == value.KindNumber {
					e.State.Symbols.Vars[idx].Value = value.Number(parseFloatLoose(items[index]))
				} else {
					e.State.Symbols.Vars[idx].Value = value.String(items[index])
				}
			}
			index++
		}

		// Re-query continues with the still-unassigned lvalues, the
		// prompt string having been consumed on the first pass.
		if !redo {
			return nil
		}
		prompt = "?"
	}
}

// splitInputLine splits a typed INPUT response on commas, honoring
// doubled-quote escaping inside a quoted field.
func splitInputLine(line string) []string {
	items := []string{""}
	inQuoted := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			last := len(items) - 1
			if items[last] == "" && !inQuoted {
				inQuoted = true
			} else if i+1 < len(runes) && runes[i+1] == '"' {
				i++
				items[last] += string(c)
			} else if inQuoted {
				inQuoted = false
			}
		case c == ',' && !inQuoted:
			items = append(items, "")
		default:
			items[len(items)-1] += string(c)
		}
	}
	return items
}

func parseFloatLoose(s string) float64 {
	n, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n
}

func (e *Engine) executeRead(parms []byte) error {
	for len(parms) > 0 {
		v, ok := e.getNextDataItem()
		if !ok {
			return errorf("No DATA available")
		}
		if token.PeekType(parms) == token.Array {
			idx := token.DecodeIndex1(&parms, token.Array)
			index, err := e.Eval.Evaluate(&parms, nil)
			if err != nil {
				return err
			}
			if !e.State.Symbols.ArraySet(idx, index, v) {
				return errorf("Bad data type")
			}
		} else {
			idx := token.DecodeIndex2(&parms, token.Variable)
			if !value.SameType(e.State.Symbols.Vars[idx].Value, v) {
				return errorf("Bad data type")
			}
			e.State.Symbols.Vars[idx].Value = v
		}
	}
	return nil
}
