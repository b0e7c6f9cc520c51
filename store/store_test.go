package store_test

import (
	"testing"

	"github.com/basic-lang/basic/store"
	"github.com/basic-lang/basic/token"
	"github.com/basic-lang/basic/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareVariable_FirstReferenceDefaults(t *testing.T) {
	syms := store.NewSymbolTable()

	idx, ok := syms.DeclareVariable("X")
	require.True(t, ok)
	assert.Equal(t, value.Number(0), syms.Vars[idx].Value)

	idx2, ok := syms.DeclareVariable("N$")
	require.True(t, ok)
	assert.Equal(t, value.String(""), syms.Vars[idx2].Value)
}

func TestDeclareVariable_SameNameReturnsSameIndex(t *testing.T) {
	syms := store.NewSymbolTable()

	first, _ := syms.DeclareVariable("X")
	second, _ := syms.DeclareVariable("X")

	assert.Equal(t, first, second)
	assert.Len(t, syms.Vars, 1)
}

func TestDeclareArray_DefaultsToElevenElements(t *testing.T) {
	syms := store.NewSymbolTable()

	idx, ok := syms.DeclareArray("A")
	require.True(t, ok)
	assert.Equal(t, []int{11}, syms.Arrays[idx].Dimensions)
	assert.Len(t, syms.Arrays[idx].Values, 11)
}

func TestArrayCreate_Redimensions(t *testing.T) {
	syms := store.NewSymbolTable()
	idx, _ := syms.DeclareArray("A")

	dims := value.ExpressionValue{value.Number(4), value.Separator(','), value.Number(9)}
	ok := syms.ArrayCreate(idx, dims)
	require.True(t, ok)
	assert.Equal(t, []int{5, 10}, syms.Arrays[idx].Dimensions)
	assert.Len(t, syms.Arrays[idx].Values, 50)
}

func TestArrayCreate_RejectsMalformedDims(t *testing.T) {
	syms := store.NewSymbolTable()
	idx, _ := syms.DeclareArray("A")

	ok := syms.ArrayCreate(idx, value.ExpressionValue{value.Number(1), value.Number(2)})
	assert.False(t, ok)
}

func TestArrayGetSet_RoundTrip(t *testing.T) {
	syms := store.NewSymbolTable()
	idx, _ := syms.DeclareArray("A$")
	_ = syms.ArrayCreate(idx, value.ExpressionValue{value.Number(4)})

	index := value.ExpressionValue{value.Number(2)}
	ok := syms.ArraySet(idx, index, value.String("HI"))
	require.True(t, ok)

	got, ok := syms.ArrayGet(idx, index)
	require.True(t, ok)
	assert.Equal(t, value.String("HI"), got)
}

func TestArraySet_RejectsTypeMismatch(t *testing.T) {
	syms := store.NewSymbolTable()
	idx, _ := syms.DeclareArray("A")
	_ = syms.ArrayCreate(idx, value.ExpressionValue{value.Number(4)})

	ok := syms.ArraySet(idx, value.ExpressionValue{value.Number(0)}, value.String("oops"))
	assert.False(t, ok)
}

func TestArrayGet_OutOfBounds(t *testing.T) {
	syms := store.NewSymbolTable()
	idx, _ := syms.DeclareArray("A")
	_ = syms.ArrayCreate(idx, value.ExpressionValue{value.Number(3)})

	_, ok := syms.ArrayGet(idx, value.ExpressionValue{value.Number(99)})
	assert.False(t, ok)
}

func TestArrayGet_NegativeIndexIsRejectedNotPanic(t *testing.T) {
	syms := store.NewSymbolTable()
	idx, _ := syms.DeclareArray("A")
	_ = syms.ArrayCreate(idx, value.ExpressionValue{value.Number(5)})

	assert.NotPanics(t, func() {
		_, ok := syms.ArrayGet(idx, value.ExpressionValue{value.Number(-1)})
		assert.False(t, ok)
	})

	assert.NotPanics(t, func() {
		ok := syms.ArraySet(idx, value.ExpressionValue{value.Number(-1)}, value.Number(0))
		assert.False(t, ok)
	})
}

func TestSymbolTable_Reset(t *testing.T) {
	syms := store.NewSymbolTable()
	vIdx, _ := syms.DeclareVariable("X")
	syms.Vars[vIdx].Value = value.Number(42)

	aIdx, _ := syms.DeclareArray("A")
	_ = syms.ArrayCreate(aIdx, value.ExpressionValue{value.Number(2)})
	syms.Arrays[aIdx].Values[0] = value.Number(7)

	fIdx, _ := syms.DeclareUserFunction("FNF")
	syms.UserFuncs[fIdx].Body = []byte{1, 2, 3}

	syms.Reset()

	assert.Equal(t, value.Number(0), syms.Vars[vIdx].Value)
	assert.Equal(t, []int{11}, syms.Arrays[aIdx].Dimensions)
	assert.Nil(t, syms.UserFuncs[fIdx].Body)
}

func TestProgram_SetGetDelete(t *testing.T) {
	p := store.NewProgram()
	p.Set(10, []byte{1, 2, 3})

	stmt, ok := p.Get(10)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, stmt)

	p.Delete(10)
	_, ok = p.Get(10)
	assert.False(t, ok)
}

func TestProgram_SortedLines(t *testing.T) {
	p := store.NewProgram()
	p.Set(30, nil)
	p.Set(10, nil)
	p.Set(20, nil)

	assert.Equal(t, []token.LineNumber{10, 20, 30}, p.SortedLines())
}

func TestProgram_First_EmptyProgram(t *testing.T) {
	p := store.NewProgram()
	_, ok := p.First()
	assert.False(t, ok)
}

func TestProgram_Range(t *testing.T) {
	p := store.NewProgram()
	p.Set(10, []byte("a"))
	p.Set(20, []byte("b"))
	p.Set(30, []byte("c"))

	entries := p.Range(15, 25)
	require.Len(t, entries, 1)
	assert.Equal(t, token.LineNumber(20), entries[0].Line)
}

func TestState_PrepareRun_ResetsToFirstLine(t *testing.T) {
	st := store.NewState()
	st.Program.Set(20, nil)
	st.Program.Set(10, nil)

	ok := st.PrepareRun()
	require.True(t, ok)
	assert.Equal(t, token.LineNumber(10), st.Exec.Line)
	assert.Equal(t, -1, st.Read.ItemOffset)
}

func TestState_PrepareRun_EmptyProgram(t *testing.T) {
	st := store.NewState()
	ok := st.PrepareRun()
	assert.False(t, ok)
}

func TestState_New_ClearsEverything(t *testing.T) {
	st := store.NewState()
	st.Program.Set(10, nil)
	st.Symbols.DeclareVariable("X")
	st.Stack = append(st.Stack, store.Pointer{Line: 10})

	st.New()

	assert.True(t, st.Program.Empty())
	assert.Empty(t, st.Stack)
	assert.Empty(t, st.Symbols.Vars)
}
