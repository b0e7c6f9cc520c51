package compiler

// Code identifies one statement-level instruction. The numeric value is
// the first byte of every encoded statement held in memory; SAVE writes
// the listed program text, so these bytes never reach a saved file.
type Code byte

const (
	CodeLetImplicit Code = iota // bare "X = 1", no LET keyword
	CodeGotoImplicit             // bare line number, no GOTO keyword
	CodeColon                    // statement separator placeholder, never executed
	CodeTo                       // FOR ... TO, recognized only inside parseFor
	CodeStep                     // FOR ... STEP, recognized only inside parseFor
	CodeThen                     // IF ... THEN, recognized only inside parseIf
	CodeBye
	CodeCls
	CodeData
	CodeDef
	CodeDim
	CodeElse
	CodeEnd
	CodeFor
	CodeGoto
	CodeGosub
	CodeIf
	CodeInput
	CodeLet
	CodeList
	CodeLoad
	CodeNew
	CodeNext
	CodeOn
	CodePrint
	CodeRead
	CodeRem
	CodeRun
	CodeRestore
	CodeReturn
	CodeSave
	CodeStop
	CodeRandomize
	CodeDumpVars
)

// Instruction is the fixed per-instruction metadata consulted by the
// tokenizer and lister: everything about a statement that does not
// depend on its particular parameters.
type Instruction struct {
	Name                string
	SuppressColonBefore bool // a trailing ':' from the previous statement is not re-inserted when listing
	SuppressColonAfter  bool // no ':' is inserted before whatever follows this statement when listing
	DataStatement       bool // READ's forward scan treats this statement as a source of values
	NextStatement       bool // still runs even when executionPointer.skipForNext is set (closes an ANSI FOR)
	IfStatement         bool // IF's single-line form: everything after THEN is conditional
}

// Instructions is indexed by Code. TO, STEP and THEN are internal-only
// markers: they are never dispatched through this table (parseFor and
// parseIf consume them directly), so their Parse/List/Execute behavior
// is irrelevant and their entries exist only to reserve the byte value.
//
// The first two entries are deliberately unnamed: a bare assignment
// ("X = 1") and a bare line number ("100") are recognized only as the
// tokenizer's last-resort fallback after every keyword in this table
// has failed to match, never through the generic name-matching loop
// (an empty Name can never equal a parsed identifier).
var Instructions = [...]Instruction{
	CodeLetImplicit: {Name: ""},
	CodeGotoImplicit: {Name: ""},
	CodeColon:        {Name: ":"},
	CodeTo:           {Name: "TO"},
	CodeStep:         {Name: "STEP"},
	CodeThen:         {Name: "THEN"},
	CodeBye:          {Name: "BYE"},
	CodeCls:          {Name: "CLS"},
	CodeData:         {Name: "DATA", DataStatement: true},
	CodeDef:          {Name: "DEF"},
	CodeDim:          {Name: "DIM"},
	CodeElse:         {Name: "ELSE", SuppressColonBefore: true, SuppressColonAfter: true},
	CodeEnd:          {Name: "END"},
	CodeFor:          {Name: "FOR"},
	CodeGoto:         {Name: "GOTO"},
	CodeGosub:        {Name: "GOSUB"},
	CodeIf:           {Name: "IF", IfStatement: true, SuppressColonAfter: true},
	CodeInput:        {Name: "INPUT"},
	CodeLet:          {Name: "LET"},
	CodeList:         {Name: "LIST"},
	CodeLoad:         {Name: "LOAD"},
	CodeNew:          {Name: "NEW"},
	CodeNext:         {Name: "NEXT", NextStatement: true},
	CodeOn:           {Name: "ON"},
	CodePrint:        {Name: "PRINT"},
	CodeRead:         {Name: "READ"},
	CodeRem:          {Name: "REM"},
	CodeRun:          {Name: "RUN"},
	CodeRestore:      {Name: "RESTORE"},
	CodeReturn:       {Name: "RETURN"},
	CodeSave:         {Name: "SAVE"},
	CodeStop:         {Name: "STOP"},
	CodeRandomize:    {Name: "RANDOMIZE"},
	CodeDumpVars:     {Name: "DUMPVARS"},
}

// NameOf reports an instruction's keyword, used by runtime error
// messages that name the statement currently executing.
func NameOf(code Code) string {
	return Instructions[code].Name
}
