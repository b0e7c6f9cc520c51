package compiler

import (
	"math"

	"github.com/basic-lang/basic/token"
)

// tryParseLineNumber recognizes a bare decimal line number at the
// cursor. Overflow past the maximum line number is reported as
// failure rather than wrapping.
func tryParseLineNumber(s []byte, c *cursor) ([]byte, bool) {
	c.ignoreSpaces()
	if !isDigit(c.peek()) {
		return s, false
	}
	n, ok := getLineNumber(c)
	if !ok {
		return s, false
	}
	return token.EncodeLineNumber(s, n), true
}

// getLineNumber parses a decimal line number. A value that would
// overflow MaxLineNumber reports failure via ok=false rather than a
// -1 sentinel, which would collide with token.CommandLine.
func getLineNumber(c *cursor) (token.LineNumber, bool) {
	c.ignoreSpaces()
	if !isDigit(c.peek()) {
		return token.CommandLine, true
	}
	var n int
	for isDigit(c.peek()) {
		n = n*10 + int(c.peek()-'0')
		if n > token.MaxLineNumber {
			return 0, false
		}
		c.pos++
	}
	return token.LineNumber(n), true
}

// tryParseString recognizes a double-quoted string literal. There is no
// escaping: the literal ends at the next '"' or end of input.
func tryParseString(s []byte, c *cursor) ([]byte, bool) {
	c.ignoreSpaces()
	if c.peek() != '"' {
		return s, false
	}
	c.pos++
	start := c.pos
	for !c.atEnd() && c.peek() != '"' {
		c.pos++
	}
	str := c.s[start:c.pos]
	if !c.atEnd() {
		c.pos++
	}
	return token.EncodeString(s, str), true
}

// tryParseWord consumes everything up to the next space as a single
// string token, used for operands like LOAD's filename that are not
// quoted.
func tryParseWord(s []byte, c *cursor) ([]byte, bool) {
	c.ignoreSpaces()
	if c.atEnd() {
		return s, false
	}
	start := c.pos
	for !c.atEnd() && c.peek() != ' ' {
		c.pos++
	}
	return token.EncodeString(s, c.s[start:c.pos]), true
}

// tryParseNumber recognizes a numeric literal: optional leading '-',
// digits, optional '.' fraction, optional 'E'/'e' exponent (with its
// own optional '-'). The value is stored as a binary32 float, the
// dialect's single-precision number size.
func tryParseNumber(s []byte, c *cursor) ([]byte, bool) {
	c.ignoreSpaces()
	if c.atEnd() {
		return s, false
	}
	lead := c.peek()
	if !(isDigit(lead) || ((lead == '-' || lead == '.') && isDigit(c.peekAt(1)))) {
		return s, false
	}

	sign := 1.0
	if c.peek() == '-' {
		sign = -1.0
		c.pos++
	}

	mantissa := 0.0
	for isDigit(c.peek()) {
		mantissa = mantissa*10 + float64(c.peek()-'0')
		c.pos++
	}

	implExponent := 0
	if c.peek() == '.' {
		c.pos++
		for isDigit(c.peek()) {
			mantissa = mantissa*10 + float64(c.peek()-'0')
			c.pos++
			implExponent--
		}
	}

	exponent := 0
	signExp := 1
	if toUpper(c.peek()) == 'E' {
		save := c.pos
		c.pos++
		if c.peek() == '-' {
			signExp = -1
			c.pos++
		}
		if !isDigit(c.peek()) {
			c.pos = save
		} else {
			for isDigit(c.peek()) {
				exponent = exponent*10 + int(c.peek()-'0')
				c.pos++
			}
		}
	}

	value := mantissa * math.Pow(10, float64(signExp*exponent+implExponent)) * sign
	return token.EncodeNumber(s, value), true
}
