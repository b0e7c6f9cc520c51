package optable_test

import (
	"testing"

	"github.com/basic-lang/basic/optable"
	"github.com/basic-lang/basic/value"
	"github.com/stretchr/testify/assert"
)

func TestArithmeticOperators(t *testing.T) {
	tests := []struct {
		name string
		code optable.Code
		args []value.Value
		want value.Value
	}{
		{"add numbers", optable.Add, []value.Value{value.Number(2), value.Number(3)}, value.Number(5)},
		{"add strings concatenates", optable.Add, []value.Value{value.String("A"), value.String("B")}, value.String("AB")},
		{"subtract", optable.Subtract, []value.Value{value.Number(5), value.Number(3)}, value.Number(2)},
		{"multiply", optable.Multiply, []value.Value{value.Number(4), value.Number(3)}, value.Number(12)},
		{"divide", optable.Divide, []value.Value{value.Number(10), value.Number(2)}, value.Number(5)},
		{"power", optable.Power, []value.Value{value.Number(2), value.Number(3)}, value.Number(8)},
		{"unary minus", optable.UnaryMinus, []value.Value{value.Number(5)}, value.Number(-5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := optable.Table[tt.code].Eval(value.ExpressionValue(tt.args))
			requireNonEmpty(t, result)
			assert.Equal(t, tt.want, result[len(result)-1])
		})
	}
}

func TestDivideByZero(t *testing.T) {
	result := optable.Table[optable.Divide].Eval(value.ExpressionValue{value.Number(1), value.Number(0)})
	last := result[len(result)-1]
	assert.Equal(t, value.KindError, last.Kind)
	assert.Equal(t, "Division by zero", last.Err)
}

func TestComparisonOperators(t *testing.T) {
	tests := []struct {
		name string
		code optable.Code
		a, b value.Value
		want bool
	}{
		{"less true", optable.Less, value.Number(1), value.Number(2), true},
		{"less false", optable.Less, value.Number(2), value.Number(1), false},
		{"greater", optable.Greater, value.Number(3), value.Number(1), true},
		{"equal numbers", optable.Equal, value.Number(2), value.Number(2), true},
		{"equal strings", optable.Equal, value.String("a"), value.String("a"), true},
		{"not equal", optable.NotEqual, value.Number(1), value.Number(2), true},
		{"less or equal", optable.LessOrEqual, value.Number(2), value.Number(2), true},
		{"greater or equal", optable.GreaterOrEqual, value.Number(1), value.Number(2), false},
		{"string less", optable.Less, value.String("a"), value.String("b"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := optable.Table[tt.code].Eval(value.ExpressionValue{tt.a, tt.b})
			last := result[len(result)-1]
			assert.Equal(t, value.Bool(tt.want), last)
		})
	}
}

func TestComparison_TypeMismatchIsError(t *testing.T) {
	result := optable.Table[optable.Less].Eval(value.ExpressionValue{value.Number(1), value.String("a")})
	assert.Equal(t, value.KindError, result[len(result)-1].Kind)
}

func TestLogicalOperators(t *testing.T) {
	trueVal := value.Bool(true)
	falseVal := value.Bool(false)

	andResult := optable.Table[optable.And].Eval(value.ExpressionValue{trueVal, falseVal})
	assert.Equal(t, value.Bool(false), andResult[len(andResult)-1])

	orResult := optable.Table[optable.Or].Eval(value.ExpressionValue{trueVal, falseVal})
	assert.Equal(t, value.Bool(true), orResult[len(orResult)-1])

	notResult := optable.Table[optable.Not].Eval(value.ExpressionValue{falseVal})
	assert.Equal(t, value.Bool(true), notResult[len(notResult)-1])
}

func TestUnaryNextAdjacency(t *testing.T) {
	assert.True(t, optable.Table[optable.Add].UnaryNext)
	assert.Equal(t, optable.UnaryPlus, optable.Add+1)
	assert.True(t, optable.Table[optable.Subtract].UnaryNext)
	assert.Equal(t, optable.UnaryMinus, optable.Subtract+1)
}

func requireNonEmpty(t *testing.T, v value.ExpressionValue) {
	t.Helper()
	if len(v) == 0 {
		t.Fatal("expected at least one result value")
	}
}
