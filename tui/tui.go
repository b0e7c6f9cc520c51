// Package tui implements the "-tui" inspector: a tview screen showing
// the live program listing, variable/array dump, and breakpoint list
// alongside a command line that drives the same engine the terminal
// REPL would.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/basic-lang/basic/compiler"
	"github.com/basic-lang/basic/engine"
	"github.com/basic-lang/basic/monitor"
	"github.com/basic-lang/basic/token"
)

// TUI is the inspector screen: a program listing, a variable dump, a
// breakpoint list, a scrolling output pane, and a single command line
// that accepts both BASIC statements (forwarded to the engine exactly
// as the REPL would run them) and a handful of inspector-only commands
// (break/watch/delete/continue).
type TUI struct {
	App    *tview.Application
	Engine *engine.Engine
	Mon    *monitor.Monitor

	MainLayout  *tview.Flex
	SourceView  *tview.TextView
	VarsView    *tview.TextView
	BreaksView  *tview.TextView
	OutputView  *tview.TextView
	CommandLine *tview.InputField

	inputCh chan string
}

// Run builds and drives the inspector screen around eng until the user
// quits or the engine shuts down (BYE). If eng has no Monitor attached
// yet, Run attaches one of its own so break/watch commands have
// somewhere to register.
func Run(eng *engine.Engine) error {
	mon, ok := eng.Monitor.(*monitor.Monitor)
	if !ok {
		mon = monitor.New(eng)
		eng.Monitor = mon
	}

	t := &TUI{
		App:     tview.NewApplication(),
		Engine:  eng,
		Mon:     mon,
		inputCh: make(chan string),
	}
	t.build()
	eng.SetIO(tuiIO{t})

	go t.runEngineLoop()

	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandLine).Run()
}

func (t *TUI) build() {
	t.SourceView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.SourceView.SetBorder(true).SetTitle(" Program ")

	t.VarsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.VarsView.SetBorder(true).SetTitle(" Variables ")

	t.BreaksView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.BreaksView.SetBorder(true).SetTitle(" Breakpoints/Watches ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandLine = tview.NewInputField().SetLabel("> ")
	t.CommandLine.SetBorder(true).SetTitle(" Command ")
	t.CommandLine.SetDoneFunc(t.handleEnter)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.VarsView, 0, 1, false).
		AddItem(t.BreaksView, 0, 1, false)

	top := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(t.SourceView, 0, 2, false).
		AddItem(right, 0, 1, false)

	t.MainLayout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandLine, 3, 0, true)

	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			t.App.Stop()
			return nil
		}
		return event
	})
}

// runEngineLoop is the background goroutine RunPending executes on,
// kept separate from the tview event loop so a long-running program
// doesn't freeze the screen. It waits for a typed line to be handed off
// by handleEnter, submits it, and runs it to completion (or to the next
// breakpoint), refreshing the inspector views after each pause.
func (t *TUI) runEngineLoop() {
	for line := range t.inputCh {
		if t.handleInspectorCommand(line) {
			t.refresh()
			continue
		}

		wasProgramLine, err := t.Engine.Submit(line)
		if err != nil {
			t.writeLine(err.Error())
			t.refresh()
			continue
		}
		if wasProgramLine {
			t.refresh()
			continue
		}
		t.runPendingAndReport()
	}
}

// handleInspectorCommand recognizes the inspector-only commands
// (break/watch/delete/continue): the first three apply to the attached
// Monitor, and continue resumes the paused program. Any
// other input is left for Submit to tokenize as a BASIC statement.
func (t *TUI) handleInspectorCommand(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "break":
		if len(fields) != 2 {
			t.writeLine("usage: break <line>")
			return true
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			t.writeLine("usage: break <line>")
			return true
		}
		bp := t.Mon.AddBreakpoint(token.LineNumber(n), false)
		t.writeLine(fmt.Sprintf("breakpoint %d set at line %d", bp.ID, bp.Line))
		return true

	case "watch":
		if len(fields) != 2 {
			t.writeLine("usage: watch <variable>")
			return true
		}
		wp := t.Mon.AddWatch(strings.ToUpper(fields[1]))
		t.writeLine(fmt.Sprintf("watchpoint %d set on %s", wp.ID, wp.Name))
		return true

	case "delete":
		if len(fields) != 2 {
			t.writeLine("usage: delete <breakpoint-id>")
			return true
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			t.writeLine("usage: delete <breakpoint-id>")
			return true
		}
		if err := t.Mon.DeleteBreakpoint(id); err != nil {
			if err := t.Mon.DeleteWatch(id); err != nil {
				t.writeLine(err.Error())
			}
		}
		return true

	case "continue":
		t.runPendingAndReport()
		return true
	}

	return false
}

func (t *TUI) runPendingAndReport() {
	err := t.Engine.RunPending()
	switch {
	case err == nil:
	case engine.IsBreakpoint(err):
		if t.Mon.LastHit != nil {
			t.writeLine(t.Mon.LastHit.Description)
		}
	default:
		if n, ok := t.Engine.CurrentLine(); ok {
			t.writeLine(fmt.Sprintf("%s on line %d", err.Error(), n))
		} else {
			t.writeLine(err.Error())
		}
	}
	t.refresh()
	if t.Engine.ShuttingDown() {
		t.App.Stop()
	}
}

// handleEnter either answers a pending INPUT prompt (see tuiIO.ReadLine)
// or, when the engine isn't waiting on one, hands the line to
// runEngineLoop as a fresh command/statement.
func (t *TUI) handleEnter(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	line := t.CommandLine.GetText()
	t.CommandLine.SetText("")
	go func() { t.inputCh <- line }()
}

// tuiIO adapts the TUI's output view and command line to engine.IO.
type tuiIO struct{ t *TUI }

func (io tuiIO) Print(s string) { io.t.writeOutput(s) }

// ReadLine is only ever called from within runEngineLoop's goroutine
// (via Engine.RunPending -> INPUT), so it is safe to block that single
// goroutine on the same channel handleEnter feeds fresh command lines
// into: the two never contend for a line at the same time.
func (io tuiIO) ReadLine() (string, bool) {
	line, ok := <-io.t.inputCh
	return line, ok
}

func (io tuiIO) LastKey() byte { return 0 }
func (io tuiIO) Clock() string { return time.Now().Format("15:04:05") }
func (io tuiIO) Escaped() bool { return false }

// writeOutput appends verbatim text to the output pane (engine.IO's
// Print contract); writeLine is the convenience form for the
// inspector's own one-line messages.
func (t *TUI) writeOutput(s string) {
	t.App.QueueUpdateDraw(func() {
		fmt.Fprint(t.OutputView, s)
		t.OutputView.ScrollToEnd()
	})
}

func (t *TUI) writeLine(s string) {
	t.writeOutput(s + "\n")
}

// refresh redraws the program listing, variable dump, and breakpoint
// list from current engine state.
func (t *TUI) refresh() {
	t.App.QueueUpdateDraw(func() {
		t.SourceView.SetText(t.listProgram())
		t.VarsView.SetText(t.listVars())
		t.BreaksView.SetText(t.listBreaks())
	})
}

func (t *TUI) listProgram() string {
	st := t.Engine.State
	var sb strings.Builder
	for _, entry := range st.Program.Range(0, 32767) {
		marker := "  "
		if entry.Line == st.Exec.Line {
			marker = "->"
		}
		sb.WriteString(marker)
		sb.WriteString(" ")
		sb.WriteString(compiler.ListStatement(entry.Line, entry.Stmt, st.Symbols))
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		return "[yellow]no program loaded[white]"
	}
	return sb.String()
}

func (t *TUI) listVars() string {
	var sb strings.Builder
	for _, v := range t.Engine.State.Symbols.Vars {
		fmt.Fprintf(&sb, "%s = %s\n", v.Name, v.Value.String())
	}
	if sb.Len() == 0 {
		return "[yellow]no variables declared[white]"
	}
	return sb.String()
}

func (t *TUI) listBreaks() string {
	var sb strings.Builder
	for _, bp := range t.Mon.Breakpoints() {
		fmt.Fprintf(&sb, "break %d at line %d (hits: %d)\n", bp.ID, bp.Line, bp.HitCount)
	}
	for _, wp := range t.Mon.Watches() {
		fmt.Fprintf(&sb, "watch %d on %s (hits: %d)\n", wp.ID, wp.Name, wp.HitCount)
	}
	if sb.Len() == 0 {
		return "[yellow]none set[white]"
	}
	return sb.String()
}
