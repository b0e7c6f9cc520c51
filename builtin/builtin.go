// Package builtin names the fixed, parse-time-known tables of built-in
// function and system-variable identifiers. It holds no behavior: the
// compiler consults these names (and their resulting numeric codes) to
// recognize and encode a reference, while package eval supplies what
// each code actually computes. Splitting name-recognition from
// evaluation keeps the compiler free of any dependency on the runtime
// value model's evaluation machinery.
package builtin

// FuncCode indexes into Functions.
type FuncCode int

const (
	Abs FuncCode = iota
	Asc
	Atn
	Chr
	Cos
	Exp
	Int
	Left
	Len
	Log
	Mid
	Rnd
	Right
	Sgn
	Sin
	Sqr
	Str
	Tab
	Tan
	Val
)

// Functions is the built-in function table, in fixed order (match
// priority matters less than for instructions, since these are
// recognized only after the keyword, operator, number, and string
// alternatives have failed, and none is a prefix of another).
var Functions = []string{
	Abs:   "ABS",
	Asc:   "ASC",
	Atn:   "ATN",
	Chr:   "CHR$",
	Cos:   "COS",
	Exp:   "EXP",
	Int:   "INT",
	Left:  "LEFT$",
	Len:   "LEN",
	Log:   "LOG",
	Mid:   "MID$",
	Rnd:   "RND",
	Right: "RIGHT$",
	Sgn:   "SGN",
	Sin:   "SIN",
	Sqr:   "SQR",
	Str:   "STR$",
	Tab:   "TAB",
	Tan:   "TAN",
	Val:   "VAL",
}

// SysVarCode indexes into SysVars.
type SysVarCode int

const (
	Inkey SysVarCode = iota
	Time
)

// SysVars is the built-in read-only system variable table.
var SysVars = []string{
	Inkey: "INKEY$",
	Time:  "TIME$",
}
