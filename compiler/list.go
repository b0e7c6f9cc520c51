package compiler

import (
	"strconv"
	"strings"

	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
)

// ListStatement renders one encoded program line back to source
// text. Adjacent statements are joined with ':' unless either side
// carries a SuppressColonBefore/SuppressColonAfter
// flag, in which case a single space joins them instead (the IF ...
// THEN ... ELSE ... case).
func ListStatement(line token.LineNumber, stmt []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	if line != token.CommandLine {
		out.WriteString(strconv.Itoa(int(line)))
		out.WriteByte(' ')
	}

	p := stmt
	first := true
	prevSuppressAfter := false
	for len(p) > 0 {
		code := Code(p[0])
		if !first {
			if prevSuppressAfter || Instructions[code].SuppressColonBefore {
				out.WriteByte(' ')
			} else {
				out.WriteByte(':')
			}
		}
		rest := p[1:]
		length := int(rest[0])
		payload := rest[1 : 1+length]

		out.WriteString(listOne(code, payload, syms))

		first = false
		prevSuppressAfter = Instructions[code].SuppressColonAfter
		p = rest[1+length:]
	}
	return out.String()
}

func namePrefix(code Code) string {
	return Instructions[code].Name
}

func listOne(code Code, parms []byte, syms *store.SymbolTable) string {
	switch code {
	case CodeLetImplicit, CodeLet:
		return listLet(code, parms, syms)
	case CodeGotoImplicit, CodeGoto:
		return listGoto(code, parms)
	case CodeColon:
		return ""
	case CodeBye, CodeCls, CodeEnd, CodeNew, CodeRun, CodeReturn, CodeStop, CodeDumpVars:
		return namePrefix(code)
	case CodeData:
		return listData(parms)
	case CodeDef:
		return listDef(parms, syms)
	case CodeDim:
		return listDim(parms, syms)
	case CodeElse:
		return namePrefix(code)
	case CodeFor:
		return listFor(parms, syms)
	case CodeGosub:
		return listGosub(parms)
	case CodeIf:
		return listIf(parms, syms)
	case CodeInput:
		return listInput(parms, syms)
	case CodeList:
		return listList(parms)
	case CodeLoad:
		return listLoadSave("LOAD", parms)
	case CodeNext:
		return listNext(parms, syms)
	case CodeOn:
		return listOn(parms, syms)
	case CodePrint:
		return listPrint(parms, syms)
	case CodeRead:
		return listRead(parms, syms)
	case CodeRem:
		return "REM" + string(parms)
	case CodeRestore:
		return listRestore(parms)
	case CodeSave:
		return listLoadSave("SAVE", parms)
	case CodeRandomize:
		return listRandomize(parms, syms)
	}
	return namePrefix(code)
}

func listLet(code Code, parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	name := namePrefix(code)
	if name != "" {
		out.WriteString(name)
		out.WriteByte(' ')
	}
	if token.PeekType(parms) == token.Array {
		idx := token.DecodeIndex1(&parms, token.Array)
		out.WriteString(syms.Arrays[idx].Name)
		out.WriteByte('(')
		decodeExpressionText(&out, &parms, syms, nil)
		out.WriteByte(')')
	} else {
		idx := token.DecodeIndex2(&parms, token.Variable)
		out.WriteString(syms.Vars[idx].Name)
	}
	out.WriteByte('=')
	decodeExpressionText(&out, &parms, syms, nil)
	return out.String()
}

func listGoto(code Code, parms []byte) string {
	var out strings.Builder
	name := namePrefix(code)
	if name != "" {
		out.WriteString(name)
		out.WriteByte(' ')
	}
	n := token.DecodeLineNumber(&parms)
	out.WriteString(strconv.Itoa(int(n)))
	return out.String()
}

func listGosub(parms []byte) string {
	n := token.DecodeLineNumber(&parms)
	return "GOSUB " + strconv.Itoa(int(n))
}

func listData(parms []byte) string {
	var out strings.Builder
	out.WriteString("DATA ")
	first := true
	for len(parms) > 0 {
		if !first {
			out.WriteByte(',')
		}
		first = false
		if token.PeekType(parms) == token.Number {
			n := token.DecodeNumber(&parms)
			out.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
		} else {
			out.WriteByte('"')
			out.WriteString(token.DecodeString(&parms))
			out.WriteByte('"')
		}
	}
	return out.String()
}

func listDef(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("DEF ")
	idx := token.DecodeIndex1(&parms, token.UserFunction)
	out.WriteString(syms.UserFuncs[idx].Name)
	ctx := &DefContext{}
	out.WriteByte('(')
	first := true
	for token.PeekType(parms) == token.Parameter {
		if !first {
			out.WriteByte(',')
		}
		first = false
		decodeParameter(&out, &parms, ctx)
	}
	out.WriteString(")=")
	decodeExpressionText(&out, &parms, syms, ctx)
	return out.String()
}

func listDim(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("DIM ")
	first := true
	for len(parms) > 0 {
		if !first {
			out.WriteByte(',')
		}
		first = false
		if token.PeekType(parms) == token.Array {
			idx := token.DecodeIndex1(&parms, token.Array)
			out.WriteString(syms.Arrays[idx].Name)
			out.WriteByte('(')
			decodeExpressionText(&out, &parms, syms, nil)
			out.WriteByte(')')
		} else {
			idx := token.DecodeIndex2(&parms, token.Variable)
			out.WriteString(syms.Vars[idx].Name)
		}
	}
	return out.String()
}

func listFor(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("FOR ")
	idx := token.DecodeIndex2(&parms, token.Variable)
	out.WriteString(syms.Vars[idx].Name)
	out.WriteByte('=')
	decodeExpressionText(&out, &parms, syms, nil)
	out.WriteString(" TO ")
	decodeExpressionText(&out, &parms, syms, nil)
	if token.PeekType(parms) != token.None {
		out.WriteString(" STEP ")
		decodeExpressionText(&out, &parms, syms, nil)
	}
	return out.String()
}

func listIf(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("IF ")
	parms = parms[2:] // skip the ELSE-link placeholder
	decodeExpressionText(&out, &parms, syms, nil)
	if len(parms) > 0 && parms[0] == 0 {
		out.WriteString(" THEN")
	}
	return out.String()
}

func listInput(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("INPUT ")
	if token.PeekType(parms) == token.String {
		out.WriteByte('"')
		out.WriteString(token.DecodeString(&parms))
		out.WriteByte('"')
		sep := parms[0]
		parms = parms[1:]
		if sep == 0 {
			out.WriteByte(',')
		} else {
			out.WriteByte(';')
		}
	}
	first := true
	for len(parms) > 0 {
		if !first {
			out.WriteByte(',')
		}
		first = false
		if token.PeekType(parms) == token.Array {
			idx := token.DecodeIndex1(&parms, token.Array)
			out.WriteString(syms.Arrays[idx].Name)
			out.WriteByte('(')
			decodeExpressionText(&out, &parms, syms, nil)
			out.WriteByte(')')
		} else {
			idx := token.DecodeIndex2(&parms, token.Variable)
			out.WriteString(syms.Vars[idx].Name)
		}
	}
	return out.String()
}

func listList(parms []byte) string {
	var out strings.Builder
	out.WriteString("LIST")
	if len(parms) > 0 {
		out.WriteByte(' ')
		n := token.DecodeLineNumber(&parms)
		out.WriteString(strconv.Itoa(int(n)))
		if len(parms) > 0 {
			out.WriteByte(',')
			n2 := token.DecodeLineNumber(&parms)
			out.WriteString(strconv.Itoa(int(n2)))
		}
	}
	return out.String()
}

func listLoadSave(name string, parms []byte) string {
	var out strings.Builder
	out.WriteString(name)
	out.WriteByte(' ')
	out.WriteByte('"')
	out.WriteString(token.DecodeString(&parms))
	out.WriteByte('"')
	return out.String()
}

func listNext(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("NEXT")
	first := true
	for len(parms) > 0 {
		if first {
			out.WriteByte(' ')
		} else {
			out.WriteByte(',')
		}
		first = false
		idx := token.DecodeIndex2(&parms, token.Variable)
		out.WriteString(syms.Vars[idx].Name)
	}
	return out.String()
}

func listOn(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("ON ")
	decodeExpressionText(&out, &parms, syms, nil)
	kind := parms[0]
	parms = parms[1:]
	if kind == 1 {
		out.WriteString(" GOSUB ")
	} else {
		out.WriteString(" GOTO ")
	}
	first := true
	for len(parms) > 0 {
		if !first {
			out.WriteByte(',')
		}
		first = false
		n := token.DecodeLineNumber(&parms)
		out.WriteString(strconv.Itoa(int(n)))
	}
	return out.String()
}

func listPrint(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("PRINT")
	if len(parms) > 0 {
		out.WriteByte(' ')
		decodeExpressionText(&out, &parms, syms, nil)
	}
	return out.String()
}

func listRead(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("READ ")
	first := true
	for len(parms) > 0 {
		if !first {
			out.WriteByte(',')
		}
		first = false
		if token.PeekType(parms) == token.Array {
			idx := token.DecodeIndex1(&parms, token.Array)
			out.WriteString(syms.Arrays[idx].Name)
			out.WriteByte('(')
			decodeExpressionText(&out, &parms, syms, nil)
			out.WriteByte(')')
		} else {
			idx := token.DecodeIndex2(&parms, token.Variable)
			out.WriteString(syms.Vars[idx].Name)
		}
	}
	return out.String()
}

func listRestore(parms []byte) string {
	var out strings.Builder
	out.WriteString("RESTORE")
	if len(parms) > 0 {
		out.WriteByte(' ')
		n := token.DecodeLineNumber(&parms)
		out.WriteString(strconv.Itoa(int(n)))
	}
	return out.String()
}

func listRandomize(parms []byte, syms *store.SymbolTable) string {
	var out strings.Builder
	out.WriteString("RANDOMIZE")
	if len(parms) > 0 {
		out.WriteByte(' ')
		decodeExpressionText(&out, &parms, syms, nil)
	}
	return out.String()
}
