package compiler_test

import (
	"strings"
	"testing"

	"github.com/basic-lang/basic/compiler"
	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileLine(t *testing.T, cp *compiler.Compiler, st *store.State, line string) compiler.CompileResult {
	t.Helper()
	res := cp.Compile(line, st)
	require.NoError(t, res.Err, "line %q", line)
	if res.Line > token.CommandLine {
		st.Program.Set(res.Line, res.Stmt)
	}
	return res
}

func TestCompileAndList_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"implicit let", "10 X=1", "10 X=1"},
		{"let keyword", "10 LET X=1", "10 LET X=1"},
		{"print", `10 PRINT "HI"`, `10 PRINT "HI"`},
		{"goto implicit", "10 100", "10 100"},
		{"goto keyword", "10 GOTO 100", "10 GOTO 100"},
		{"gosub", "10 GOSUB 100", "10 GOSUB 100"},
		{"for", "10 FOR I=1 TO 10", "10 FOR I=1 TO 10"},
		{"for with step", "10 FOR I=1 TO 10 STEP 2", "10 FOR I=1 TO 10 STEP 2"},
		{"next", "10 NEXT I", "10 NEXT I"},
		{"dim", "10 DIM A(5)", "10 DIM A(5)"},
		{"data numbers", "10 DATA 1,2,3", "10 DATA 1,2,3"},
		{"read", "10 READ X,Y", "10 READ X,Y"},
		{"end", "10 END", "10 END"},
		{"rem", "10 REM hello", "10 REM hello"},
		{"restore", "10 RESTORE 20", "10 RESTORE 20"},
		{"randomize", "10 RANDOMIZE", "10 RANDOMIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syms := store.NewSymbolTable()
			cp := compiler.NewCompiler(syms)
			st := store.NewState()
			st.Symbols = syms

			res := compileLine(t, cp, st, tt.in)
			got := compiler.ListStatement(res.Line, res.Stmt, syms)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_CommandLineHasNoLineNumber(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := cp.Compile(`PRINT "HI"`, st)
	require.NoError(t, res.Err)
	assert.Equal(t, token.CommandLine, res.Line)
}

func TestCompile_SyntaxError(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := cp.Compile("10 @#$", st)
	assert.Error(t, res.Err)
}

func TestCompile_ColonContinuesPreviousLine(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	first := compileLine(t, cp, st, "10 X=1")
	second := cp.Compile(": Y=2", st)
	require.NoError(t, second.Err)
	assert.Equal(t, first.Line, second.Line)

	got := compiler.ListStatement(second.Line, second.Stmt, syms)
	assert.Equal(t, "10 X=1:Y=2", got)
}

func TestCompile_IfElse(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := compileLine(t, cp, st, "10 IF X=1 THEN PRINT 1 ELSE PRINT 2")
	got := compiler.ListStatement(res.Line, res.Stmt, syms)
	assert.Contains(t, got, "IF X=1")
	assert.Contains(t, got, "ELSE")
}

func TestCompile_DeclaresVariablesAndArrays(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	compileLine(t, cp, st, "10 DIM A(5)")
	compileLine(t, cp, st, "20 X=1")

	require.Len(t, syms.Arrays, 1)
	assert.Equal(t, "A", syms.Arrays[0].Name)
	require.Len(t, syms.Vars, 1)
	assert.Equal(t, "X", syms.Vars[0].Name)
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "GOTO", compiler.NameOf(compiler.CodeGoto))
	assert.Equal(t, "PRINT", compiler.NameOf(compiler.CodePrint))
}

// Canonical form stability: parse(list(parse(L))) must equal parse(L)
// byte for byte, whatever mix of colons and spacing L used.
func TestCompile_ListParseRoundTripIsStable(t *testing.T) {
	lines := []string{
		"10 X=1:Y=2",
		"10 X=1 LET Y=2",
		`10 IF X=1 THEN PRINT 1 ELSE PRINT 2`,
		`10 IF X<3 THEN 20`,
		`10 FOR I=1 TO 10 STEP 2:PRINT I:NEXT I`,
		`10 DEF FNSQ(X)=X*X`,
		`10 PRINT "A";TAB(5);"B"`,
		`10 ON X GOSUB 100,200`,
		`10 INPUT "NAME";A$`,
		`10 LIST 10,20`,
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			syms := store.NewSymbolTable()
			cp := compiler.NewCompiler(syms)
			st := store.NewState()
			st.Symbols = syms

			first := cp.Compile(line, st)
			require.NoError(t, first.Err)

			listed := compiler.ListStatement(first.Line, first.Stmt, syms)
			second := cp.Compile(listed, st)
			require.NoError(t, second.Err, "relisting %q", listed)
			assert.Equal(t, first.Stmt, second.Stmt, "listed form %q", listed)
		})
	}
}

func TestCompile_ColonsAreElidedFromTheEncoding(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	withColon := cp.Compile("10 X=1:LET Y=2", st)
	require.NoError(t, withColon.Err)
	bare := cp.Compile("20 X=1 LET Y=2", st)
	require.NoError(t, bare.Err)

	assert.Equal(t, withColon.Stmt, bare.Stmt)
	assert.Equal(t, "10 X=1:LET Y=2", compiler.ListStatement(10, withColon.Stmt, syms))
}

func TestCompile_IfThenElseListsWithSpaces(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := compileLine(t, cp, st, `10 IF 1 THEN PRINT "Y" ELSE PRINT "N"`)
	got := compiler.ListStatement(res.Line, res.Stmt, syms)
	assert.Equal(t, `10 IF 1 THEN PRINT "Y" ELSE PRINT "N"`, got)
}

func TestCompile_LineNumberTooLarge(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := cp.Compile("32767 END", st)
	require.NoError(t, res.Err)
	assert.Equal(t, token.LineNumber(32767), res.Line)

	res = cp.Compile("32768 END", st)
	require.Error(t, res.Err)
	assert.Equal(t, "Line number is too large", res.Err.Error())
}

func TestCompile_StatementTooLong(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := cp.Compile("10 REM "+strings.Repeat("x", 300), st)
	require.Error(t, res.Err)
	assert.Equal(t, "The statement is too long", res.Err.Error())
}

func TestCompile_ErrorNamesTheInstruction(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := cp.Compile("10 GOTO X", st)
	require.Error(t, res.Err)
	assert.Equal(t, "Syntax error in GOTO", res.Err.Error())
}

func TestCompile_KeywordLvalueIsRejected(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := cp.Compile("10 LET PRINT=1", st)
	require.Error(t, res.Err)
	assert.Equal(t, "Variable name cannot start with a keyword", res.Err.Error())
}

func TestCompile_ProtectedVariableLvalue(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := cp.Compile(`10 LET INKEY$="X"`, st)
	require.Error(t, res.Err)
	assert.Equal(t, "Cannot set protected variable", res.Err.Error())
}

func TestCompile_ErrorCarriesCaretPosition(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	res := cp.Compile("10 @#$", st)
	require.Error(t, res.Err)
	var perr *compiler.ParseError
	require.ErrorAs(t, res.Err, &perr)
	assert.GreaterOrEqual(t, perr.Pos, 3)
}

func TestCompile_SpacedCompoundOperator(t *testing.T) {
	syms := store.NewSymbolTable()
	cp := compiler.NewCompiler(syms)
	st := store.NewState()
	st.Symbols = syms

	spaced := cp.Compile("10 IF X < = 3 THEN 20", st)
	require.NoError(t, spaced.Err)
	tight := cp.Compile("20 IF X <= 3 THEN 20", st)
	require.NoError(t, tight.Err)
	assert.Equal(t, tight.Stmt, spaced.Stmt)
}
