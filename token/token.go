// Package token defines the byte-level tagged encoding shared by every
// tokenized statement: a one-byte type tag, an optional one- or two-byte
// index, and the varint-free single-byte length prefix used for anything
// of variable size (strings, expressions, sub-statement parameter blocks).
package token

import "fmt"

// Type tags the kind of token that follows in a byte-encoded statement.
// Every tokenized statement held in memory carries these tags; SAVE
// writes the listed program text, so the tags never reach a saved file.
type Type byte

const (
	None Type = iota
	Number
	String
	Op
	Variable
	Array
	SystemVar
	Function
	UserFunction
	Expression
	Parameter
	ParameterRef
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Number:
		return "number"
	case String:
		return "string"
	case Op:
		return "op"
	case Variable:
		return "variable"
	case Array:
		return "array"
	case SystemVar:
		return "sysvar"
	case Function:
		return "function"
	case UserFunction:
		return "userfunction"
	case Expression:
		return "expression"
	case Parameter:
		return "parameter"
	case ParameterRef:
		return "parameterref"
	default:
		return fmt.Sprintf("Type(%d)", byte(t))
	}
}

// LineNumber is the key type for the program store. CommandLine and
// Shutdown are sentinel values outside the valid 0..32767 line range.
type LineNumber int16

const (
	CommandLine LineNumber = -1
	Shutdown    LineNumber = -2
)

// MaxLineNumber is the largest line number this dialect accepts; line
// numbers are encoded as a two-byte value and kept within int16 range to
// leave the two sentinels available below zero.
const MaxLineNumber = 32767

// MaxPayload is the hard ceiling on any single length-prefixed byte run
// (string contents, an expression body, or a whole statement's parameter
// block): the length prefix is a single byte, 0..255.
const MaxPayload = 255

// EncodeLineNumber appends a line number as two little-endian bytes.
func EncodeLineNumber(buf []byte, n LineNumber) []byte {
	return append(buf, byte(uint16(n)), byte(uint16(n)>>8))
}

// DecodeLineNumber reads a two-byte line number and advances parms past it.
func DecodeLineNumber(parms *[]byte) LineNumber {
	p := *parms
	n := LineNumber(uint16(p[0]) | uint16(p[1])<<8)
	*parms = p[2:]
	return n
}

// ReservePayloadLength appends a placeholder length byte and returns its
// offset so EncodePayloadLength can patch it in once the payload is known.
func ReservePayloadLength(buf []byte) ([]byte, int) {
	return append(buf, 0), len(buf)
}

// EncodePayloadLength patches the placeholder at off with the number of
// bytes written since it was reserved. It reports false if that count
// exceeds MaxPayload, mirroring the C++ encoder's "statement too long"
// / "expression too complex" failure mode.
func EncodePayloadLength(buf []byte, off int) ([]byte, bool) {
	length := len(buf) - off - 1
	if length < 0 || length > MaxPayload {
		return buf, false
	}
	buf[off] = byte(length)
	return buf, true
}

// DecodePayloadLength reads the one-byte length prefix and advances
// parms past it (leaving parms pointed at the payload itself).
func DecodePayloadLength(parms *[]byte) int {
	p := *parms
	n := int(p[0])
	*parms = p[1:]
	return n
}

// PeekType reports the token tag at the front of parms without consuming
// it; callers use this to dispatch decode/evaluate logic per token.
func PeekType(parms []byte) Type {
	if len(parms) == 0 {
		return None
	}
	return Type(parms[0])
}
