package value_test

import (
	"testing"

	"github.com/basic-lang/basic/value"
	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"zero number is false", value.Number(0), false},
		{"nonzero number is true", value.Number(1), true},
		{"negative number is true", value.Number(-1), true},
		{"empty string is false", value.String(""), false},
		{"non-empty string is true", value.String("x"), true},
		{"separator is never truthy", value.Separator(','), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Truthy())
		})
	}
}

func TestBool(t *testing.T) {
	assert.Equal(t, value.Number(1), value.Bool(true))
	assert.Equal(t, value.Number(0), value.Bool(false))
}

func TestSameType(t *testing.T) {
	assert.True(t, value.SameType(value.Number(1), value.Number(2)))
	assert.True(t, value.SameType(value.String("a"), value.String("b")))
	assert.False(t, value.SameType(value.Number(1), value.String("a")))
}

func TestFormatNumber_SixSignificantDigits(t *testing.T) {
	tests := []struct {
		name string
		n    float64
		want string
	}{
		{"one third", 1.0 / 3.0, "0.333333"},
		{"integer", 42, "42"},
		{"negative", -2, "-2"},
		{"large rounds to six sig figs", 123456789.0, "1.23457e+08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, value.FormatNumber(tt.n))
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want string
	}{
		{"number", value.Number(3.5), "3.5"},
		{"negative number", value.Number(-2), "-2"},
		{"string", value.String("HI"), "HI"},
		{"separator", value.Separator(','), ","},
		{"tab", value.Tab(10), "TAB(10)"},
		{"error with message", value.Error("boom"), "boom"},
		{"error with no message", value.Error(""), "Bad expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestExpressionValue_Single(t *testing.T) {
	one := value.ExpressionValue{value.Number(1)}
	v, ok := one.Single()
	assert.True(t, ok)
	assert.Equal(t, value.Number(1), v)

	many := value.ExpressionValue{value.Number(1), value.Number(2)}
	_, ok = many.Single()
	assert.False(t, ok)

	empty := value.ExpressionValue{}
	_, ok = empty.Single()
	assert.False(t, ok)
}

func TestExpressionValue_HasError(t *testing.T) {
	withErr := value.ExpressionValue{value.Number(1), value.Error("bad")}
	v, ok := withErr.HasError()
	assert.True(t, ok)
	assert.Equal(t, "bad", v.Err)

	without := value.ExpressionValue{value.Number(1)}
	_, ok = without.HasError()
	assert.False(t, ok)
}

func TestExpressionValue_Join(t *testing.T) {
	ev := value.ExpressionValue{value.String("A"), value.Separator(','), value.Number(1)}
	assert.Equal(t, "A,1", ev.Join())
}
