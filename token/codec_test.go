package token_test

import (
	"testing"

	"github.com/basic-lang/basic/token"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeNumber_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    float64
	}{
		{"zero", 0},
		{"positive integer", 42},
		{"negative", -17.5},
		{"fractional", 3.14159},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := token.EncodeNumber(nil, tt.n)
			assert.Equal(t, token.Number, token.PeekType(buf))

			got := token.DecodeNumber(&buf)
			assert.InDelta(t, tt.n, got, 1e-4, "binary32 round trip loses some precision")
			assert.Empty(t, buf, "DecodeNumber should consume the whole token")
		})
	}
}

func TestEncodeDecodeString_RoundTrip(t *testing.T) {
	buf := token.EncodeString(nil, "HELLO")
	assert.Equal(t, token.String, token.PeekType(buf))

	got := token.DecodeString(&buf)
	assert.Equal(t, "HELLO", got)
	assert.Empty(t, buf)
}

func TestEncodeDecodeString_Empty(t *testing.T) {
	buf := token.EncodeString(nil, "")
	got := token.DecodeString(&buf)
	assert.Equal(t, "", got)
}

func TestEncodeDecodeIndex1_RoundTrip(t *testing.T) {
	buf := token.EncodeIndex1(nil, token.Array, 200)
	got := token.DecodeIndex1(&buf, token.Array)
	assert.Equal(t, 200, got)
	assert.Empty(t, buf)
}

func TestDecodeIndex1_WrongTagReturnsMinusOne(t *testing.T) {
	buf := token.EncodeIndex1(nil, token.Array, 5)
	got := token.DecodeIndex1(&buf, token.Function)
	assert.Equal(t, -1, got)
}

func TestEncodeDecodeIndex2_RoundTrip(t *testing.T) {
	buf := token.EncodeIndex2(nil, token.Variable, 65000)
	got := token.DecodeIndex2(&buf, token.Variable)
	assert.Equal(t, 65000, got)
	assert.Empty(t, buf)
}

func TestEncodeDecodeLineNumber_RoundTrip(t *testing.T) {
	buf := token.EncodeLineNumber(nil, token.LineNumber(1000))
	got := token.DecodeLineNumber(&buf)
	assert.Equal(t, token.LineNumber(1000), got)
	assert.Empty(t, buf)
}

func TestPayloadLength_RoundTrip(t *testing.T) {
	buf, off := token.ReservePayloadLength(nil)
	buf = append(buf, []byte("abc")...)

	buf, ok := token.EncodePayloadLength(buf, off)
	assert.True(t, ok)

	length := token.DecodePayloadLength(&buf)
	assert.Equal(t, 3, length)
	assert.Equal(t, []byte("abc"), buf)
}

func TestEncodePayloadLength_TooLong(t *testing.T) {
	buf, off := token.ReservePayloadLength(nil)
	buf = append(buf, make([]byte, token.MaxPayload+1)...)

	_, ok := token.EncodePayloadLength(buf, off)
	assert.False(t, ok, "a payload over MaxPayload bytes should be rejected")
}

func TestPeekType_Empty(t *testing.T) {
	assert.Equal(t, token.None, token.PeekType(nil))
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "variable", token.Variable.String())
	assert.Equal(t, "expression", token.Expression.String())
	assert.Contains(t, token.Type(99).String(), "Type(99)")
}
