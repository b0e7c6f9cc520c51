// Package engine drives program execution: the fetch-decode-execute
// loop over a compiled statement stream, GOSUB/FOR bookkeeping, the
// DATA/READ cursor, and the console-facing side effects (PRINT, INPUT,
// LIST, LOAD/SAVE) that the evaluator itself has no business knowing
// about.
package engine

// IO is everything the engine needs from its front end: writing PRINT
// output, reading one line for INPUT/the command prompt, and the two
// runtime collaborators eval.Evaluator also needs for INKEY$/TIME$.
// A console, TUI, or GUI front end each supplies its own implementation.
type IO interface {
	// Print writes s verbatim: the engine controls newlines itself,
	// since PRINT's trailing-separator form holds the cursor mid-line.
	Print(s string)
	ReadLine() (string, bool) // ok=false on EOF/interrupt
	LastKey() byte
	Clock() string
	Escaped() bool // true if the user pressed the break key since the last check
}
