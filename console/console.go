// Package console implements the interpreter's external-collaborator
// interface over a real terminal: line input with echo, a non-blocking
// "key pending" poll, a "read one key without echo" primitive used for
// INKEY$ and the ESC break-key poll, screen clear, and stdout printing.
//
// The reader can be swapped for a custom source (a pipe, a test
// buffer), so a TUI/GUI frontend can route input around os.Stdin.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// Console is a line-buffered stdin reader plus raw-mode single-key
// polling for the statement loop's INKEY$/ESC support.
type Console struct {
	reader  *bufio.Reader
	out     io.Writer
	fd      int
	lastKey byte
}

// New returns a console reading from os.Stdin and writing to os.Stdout.
func New() *Console {
	return &Console{
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		fd:     int(os.Stdin.Fd()),
	}
}

// SetStdinReader points future reads at r instead of os.Stdin, for
// TUI/GUI frontends that capture the terminal themselves and feed input
// through a pipe.
func (c *Console) SetStdinReader(r io.Reader) {
	if br, ok := r.(*bufio.Reader); ok {
		c.reader = br
	} else {
		c.reader = bufio.NewReader(r)
	}
}

// ResetStdinReader restores reading from os.Stdin.
func (c *Console) ResetStdinReader() {
	c.reader = bufio.NewReader(os.Stdin)
}

// Print writes s verbatim to the console's output stream; the engine
// appends its own newlines.
func (c *Console) Print(s string) {
	fmt.Fprint(c.out, s)
}

// ReadLine blocks for one line of input, echoed by the terminal driver
// itself (not this package — raw mode is only entered for LastKey's
// single-key poll).
func (c *Console) ReadLine() (string, bool) {
	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	line = strings.TrimRight(line, "\r\n")
	return line, true
}

// poll performs a brief non-blocking raw-mode read of stdin: if a key
// is pending it is consumed without echo and returned; otherwise 0.
// The engine throttles how often this runs (roughly once per ten
// statements), not this method.
func (c *Console) poll() byte {
	if !term.IsTerminal(c.fd) {
		return 0
	}

	oldState, err := term.MakeRaw(c.fd)
	if err != nil {
		return 0
	}
	defer term.Restore(c.fd, oldState)

	if err := os.Stdin.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return 0
	}
	defer os.Stdin.SetReadDeadline(time.Time{})

	buf := make([]byte, 1)
	if n, _ := os.Stdin.Read(buf); n == 1 {
		return buf[0]
	}
	return 0
}

// LastKey returns (and clears) the most recently polled key, polling
// fresh if none is buffered — this is what INKEY$ reads.
func (c *Console) LastKey() byte {
	k := c.lastKey
	c.lastKey = 0
	if k == 0 {
		k = c.poll()
	}
	return k
}

// Escaped polls for a pending key, buffering anything that isn't the
// break key so a later INKEY$ still sees it, and reports whether the
// user pressed ESC (27).
func (c *Console) Escaped() bool {
	k := c.poll()
	if k != 0 && k != 27 {
		c.lastKey = k
	}
	return k == 27
}

// Clock returns the current wall-clock time as TIME$ expects it,
// "HH:MM:SS".
func (c *Console) Clock() string {
	return time.Now().Format("15:04:05")
}

// Clear emits the CSI reset sequence CLS uses to clear the screen.
func (c *Console) Clear() {
	fmt.Fprint(c.out, "\033c")
}
