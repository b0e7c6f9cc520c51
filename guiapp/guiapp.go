// Package guiapp implements the "-gui" windowed console: a fyne window
// showing the program listing, console output, and a breakpoint list
// alongside an entry box for typing statements and command lines.
package guiapp

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/basic-lang/basic/compiler"
	"github.com/basic-lang/basic/engine"
	"github.com/basic-lang/basic/monitor"
	"github.com/basic-lang/basic/token"
)

// GUI is the windowed console: a source listing, a console output pane,
// a breakpoint/watchpoint list, a toolbar (RUN, BYE, refresh views), and an
// entry box that accepts both BASIC statements and the same
// break/watch/delete/continue inspector commands the TUI does.
type GUI struct {
	Engine *engine.Engine
	Mon    *monitor.Monitor

	App    fyne.App
	Window fyne.Window

	SourceView      *widget.TextGrid
	ConsoleOutput   *widget.TextGrid
	BreakpointsList *widget.List
	CommandEntry    *widget.Entry
	Toolbar         *widget.Toolbar

	breakpoints []string

	consoleMu  sync.Mutex
	console    strings.Builder
	inputMu    sync.Mutex
	inputCh    chan string
	awaitInput bool
}

// Run builds the window and blocks until it is closed. If eng has no
// Monitor attached yet, Run attaches one of its own.
func Run(eng *engine.Engine) {
	mon, ok := eng.Monitor.(*monitor.Monitor)
	if !ok {
		mon = monitor.New(eng)
		eng.Monitor = mon
	}

	g := &GUI{
		Engine:  eng,
		Mon:     mon,
		App:     app.New(),
		inputCh: make(chan string),
	}
	g.Window = g.App.NewWindow("BASIC")

	g.initializeViews()
	g.setupToolbar()
	g.buildLayout()

	eng.SetIO(guiIO{g})
	go g.runEngineLoop()

	g.Window.Resize(fyne.NewSize(1000, 700))
	g.Window.ShowAndRun()
}

func (g *GUI) initializeViews() {
	g.SourceView = widget.NewTextGrid()
	g.SourceView.SetText("no program loaded")

	g.ConsoleOutput = widget.NewTextGrid()
	g.ConsoleOutput.SetText("")

	g.breakpoints = []string{}
	g.BreakpointsList = widget.NewList(
		func() int { return len(g.breakpoints) },
		func() fyne.CanvasObject { return widget.NewLabel("template") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(g.breakpoints[id])
		},
	)

	g.CommandEntry = widget.NewEntry()
	g.CommandEntry.SetPlaceHolder("type a statement, or break/watch/delete/continue")
	g.CommandEntry.OnSubmitted = g.handleSubmit
}

func (g *GUI) buildLayout() {
	sourcePanel := container.NewBorder(
		widget.NewLabel("Program"), nil, nil, nil,
		container.NewScroll(g.SourceView),
	)

	breakpointsPanel := container.NewBorder(
		widget.NewLabel("Breakpoints/Watches"), nil, nil, nil,
		container.NewScroll(g.BreakpointsList),
	)

	consolePanel := container.NewBorder(
		widget.NewLabel("Console"), g.CommandEntry, nil, nil,
		container.NewScroll(g.ConsoleOutput),
	)

	left := container.NewVSplit(sourcePanel, breakpointsPanel)
	left.SetOffset(0.6)

	split := container.NewHSplit(left, consolePanel)
	split.SetOffset(0.35)

	content := container.NewBorder(g.Toolbar, nil, nil, nil, split)
	g.Window.SetContent(content)
}

func (g *GUI) setupToolbar() {
	g.Toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaPlayIcon(), func() {
			g.submit("RUN")
		}),
		widget.NewToolbarAction(theme.MediaStopIcon(), func() {
			g.submit("BYE")
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			g.refresh()
		}),
	)
}

func (g *GUI) handleSubmit(text string) {
	g.CommandEntry.SetText("")
	g.submit(text)
}

// submit hands a typed line to runEngineLoop's goroutine, whether it is
// waiting on a fresh command or blocked inside an INPUT statement's
// ReadLine — both receive from the same channel, never at once.
func (g *GUI) submit(line string) {
	go func() { g.inputCh <- line }()
}

// runEngineLoop consumes submitted lines on its own goroutine so a
// running program never blocks the fyne event loop.
func (g *GUI) runEngineLoop() {
	for line := range g.inputCh {
		if g.handleInspectorCommand(line) {
			g.refresh()
			continue
		}

		wasProgramLine, err := g.Engine.Submit(line)
		if err != nil {
			g.writeLine(err.Error())
			g.refresh()
			continue
		}
		if wasProgramLine {
			g.refresh()
			continue
		}
		g.runPendingAndReport()
	}
}

func (g *GUI) handleInspectorCommand(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "break":
		if len(fields) != 2 {
			g.writeLine("usage: break <line>")
			return true
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			g.writeLine("usage: break <line>")
			return true
		}
		bp := g.Mon.AddBreakpoint(token.LineNumber(n), false)
		g.writeLine(fmt.Sprintf("breakpoint %d set at line %d", bp.ID, bp.Line))
		return true

	case "watch":
		if len(fields) != 2 {
			g.writeLine("usage: watch <variable>")
			return true
		}
		wp := g.Mon.AddWatch(strings.ToUpper(fields[1]))
		g.writeLine(fmt.Sprintf("watchpoint %d set on %s", wp.ID, wp.Name))
		return true

	case "delete":
		if len(fields) != 2 {
			g.writeLine("usage: delete <id>")
			return true
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			g.writeLine("usage: delete <id>")
			return true
		}
		if err := g.Mon.DeleteBreakpoint(id); err != nil {
			if err := g.Mon.DeleteWatch(id); err != nil {
				g.writeLine(err.Error())
			}
		}
		return true

	case "continue":
		g.runPendingAndReport()
		return true
	}

	return false
}

func (g *GUI) runPendingAndReport() {
	err := g.Engine.RunPending()
	switch {
	case err == nil:
	case engine.IsBreakpoint(err):
		if g.Mon.LastHit != nil {
			g.writeLine(g.Mon.LastHit.Description)
		}
	default:
		if n, ok := g.Engine.CurrentLine(); ok {
			g.writeLine(fmt.Sprintf("%s on line %d", err.Error(), n))
		} else {
			g.writeLine(err.Error())
		}
	}
	g.refresh()
}

// guiIO adapts the GUI's console pane and command entry to engine.IO.
type guiIO struct{ g *GUI }

func (io guiIO) Print(s string) { io.g.writeConsole(s) }

func (io guiIO) ReadLine() (string, bool) {
	io.g.inputMu.Lock()
	io.g.awaitInput = true
	io.g.inputMu.Unlock()

	line, ok := <-io.g.inputCh, true

	io.g.inputMu.Lock()
	io.g.awaitInput = false
	io.g.inputMu.Unlock()

	return line, ok
}

func (io guiIO) LastKey() byte { return 0 }
func (io guiIO) Clock() string { return time.Now().Format("15:04:05") }
func (io guiIO) Escaped() bool { return false }

// writeConsole appends verbatim text to the console pane (engine.IO's
// Print contract); writeLine is the convenience form for the
// inspector's own one-line messages.
func (g *GUI) writeConsole(s string) {
	g.consoleMu.Lock()
	g.console.WriteString(s)
	text := g.console.String()
	g.consoleMu.Unlock()

	g.ConsoleOutput.SetText(text)
}

func (g *GUI) writeLine(s string) {
	g.writeConsole(s + "\n")
}

func (g *GUI) refresh() {
	g.SourceView.SetText(g.listProgram())

	g.breakpoints = g.breakpoints[:0]
	for _, bp := range g.Mon.Breakpoints() {
		g.breakpoints = append(g.breakpoints, fmt.Sprintf("break %d @ line %d (hits %d)", bp.ID, bp.Line, bp.HitCount))
	}
	for _, wp := range g.Mon.Watches() {
		g.breakpoints = append(g.breakpoints, fmt.Sprintf("watch %d on %s (hits %d)", wp.ID, wp.Name, wp.HitCount))
	}
	g.BreakpointsList.Refresh()
}

func (g *GUI) listProgram() string {
	st := g.Engine.State
	var sb strings.Builder
	for _, entry := range st.Program.Range(0, token.MaxLineNumber) {
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
		return "no program loaded"
	}
	return sb.String()
}
