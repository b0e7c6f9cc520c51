package compiler

import (
	"strconv"
	"strings"

	"github.com/basic-lang/basic/builtin"
	"github.com/basic-lang/basic/optable"
	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
)

// decodeToken renders one expression token as source text, consuming
// it from parms. context supplies parameter names
// when rendering a parameter reference inside a DEF body; it may be nil
// anywhere one cannot occur.
func decodeToken(buf *strings.Builder, parms *[]byte, syms *store.SymbolTable, context *DefContext) {
	switch token.PeekType(*parms) {
	case token.Number:
		n := token.DecodeNumber(parms)
		buf.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
	case token.String:
		buf.WriteByte('"')
		buf.WriteString(token.DecodeString(parms))
		buf.WriteByte('"')
	case token.Op:
		decodeOperation(buf, parms)
	case token.Variable:
		idx := token.DecodeIndex2(parms, token.Variable)
		buf.WriteString(syms.Vars[idx].Name)
	case token.Array:
		idx := token.DecodeIndex1(parms, token.Array)
		buf.WriteString(syms.Arrays[idx].Name)
	case token.SystemVar:
		idx := token.DecodeIndex1(parms, token.SystemVar)
		buf.WriteString(sysVarName(idx))
	case token.Function:
		idx := token.DecodeIndex1(parms, token.Function)
		buf.WriteString(functionName(idx))
	case token.UserFunction:
		idx := token.DecodeIndex1(parms, token.UserFunction)
		buf.WriteString(syms.UserFuncs[idx].Name)
	case token.Expression:
		buf.WriteByte('(')
		decodeExpressionText(buf, parms, syms, context)
		buf.WriteByte(')')
	case token.ParameterRef:
		idx := token.DecodeIndex1(parms, token.ParameterRef)
		if context != nil && idx < len(context.Params) {
			buf.WriteString(context.Params[idx])
		}
	case token.Parameter:
		decodeParameter(buf, parms, context)
	}
}

func decodeOperation(buf *strings.Builder, parms *[]byte) {
	p := *parms
	code := p[1]
	*parms = p[2:]
	name := optable.Table[code].Name
	alpha := len(name) > 0 && (name[0] >= 'A' && name[0] <= 'Z')
	if alpha {
		buf.WriteByte(' ')
	}
	buf.WriteString(name)
	if alpha {
		buf.WriteByte(' ')
	}
}

// decodeParameter renders one DEF formal parameter name, recording it
// into context as a side effect: the lister builds up its own
// temporary DefContext while walking a DEF header, since only
// afterward is the expression body decoded against it.
func decodeParameter(buf *strings.Builder, parms *[]byte, context *DefContext) {
	name := token.DecodeString(parms)
	buf.WriteString(name)
	if context != nil {
		context.Params = append(context.Params, name)
	}
}

func decodeExpressionText(buf *strings.Builder, parms *[]byte, syms *store.SymbolTable, context *DefContext) {
	p := *parms
	p = p[1:] // skip the Expression tag
	length := int(p[0])
	p = p[1:]
	stop := len(p) - length
	for len(p) > stop {
		decodeToken(buf, &p, syms, context)
	}
	*parms = p
}

func functionName(idx int) string {
	if idx >= 0 && idx < len(builtin.Functions) {
		return builtin.Functions[idx]
	}
	return "?"
}

func sysVarName(idx int) string {
	if idx >= 0 && idx < len(builtin.SysVars) {
		return builtin.SysVars[idx]
	}
	return "?"
}
