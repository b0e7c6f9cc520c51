package token

import "math"

// EncodeNumber appends a Number token: the type tag followed by the
// value truncated to IEEE-754 binary32 (4 little-endian bytes), matching
// the source dialect's single-precision float storage.
func EncodeNumber(buf []byte, n float64) []byte {
	bits := math.Float32bits(float32(n))
	return append(buf, byte(Number), byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}

// DecodeNumber reads a Number token (including its tag byte) and
// advances parms past it.
func DecodeNumber(parms *[]byte) float64 {
	p := *parms
	bits := uint32(p[1]) | uint32(p[2])<<8 | uint32(p[3])<<16 | uint32(p[4])<<24
	*parms = p[5:]
	return float64(math.Float32frombits(bits))
}

// EncodeString appends a String token: the type tag, a one-byte length,
// then the raw bytes (no quotes, no escaping — quoting is a text-format
// concern handled by the lister, not the wire encoding).
func EncodeString(buf []byte, s string) []byte {
	buf = append(buf, byte(String))
	buf = append(buf, byte(len(s)))
	return append(buf, s...)
}

// DecodeString reads a String token (including its tag byte) and
// advances parms past it.
func DecodeString(parms *[]byte) string {
	p := *parms
	n := int(p[1])
	s := string(p[2 : 2+n])
	*parms = p[2+n:]
	return s
}

// EncodeIndex1 appends a tagged, single-byte index (array, function,
// user function, system variable, parameter-ref references).
func EncodeIndex1(buf []byte, t Type, index int) []byte {
	return append(buf, byte(t), byte(index))
}

// DecodeIndex1 reads a tagged single-byte index token, asserting its tag
// matches want, and advances parms past it.
func DecodeIndex1(parms *[]byte, want Type) int {
	p := *parms
	*parms = p[2:]
	if Type(p[0]) != want {
		return -1
	}
	return int(p[1])
}

// EncodeIndex2 appends a tagged, two-byte little-endian index (the
// variable table, which unlike the others is addressed with 16 bits).
func EncodeIndex2(buf []byte, t Type, index int) []byte {
	return append(buf, byte(t), byte(index), byte(index>>8))
}

// DecodeIndex2 reads a tagged two-byte index token, asserting its tag
// matches want, and advances parms past it.
func DecodeIndex2(parms *[]byte, want Type) int {
	p := *parms
	*parms = p[3:]
	if Type(p[0]) != want {
		return -1
	}
	return int(p[1]) | int(p[2])<<8
}
