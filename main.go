package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/basic-lang/basic/compiler"
	"github.com/basic-lang/basic/config"
	"github.com/basic-lang/basic/console"
	"github.com/basic-lang/basic/engine"
	"github.com/basic-lang/basic/guiapp"
	"github.com/basic-lang/basic/monitor"
	"github.com/basic-lang/basic/tui"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		loadFile    = flag.String("load", "", "Load a program file at startup")
		runAfter    = flag.Bool("run", false, "RUN immediately after loading, then exit")
		ansiFor     = flag.Bool("ansi-for", false, "Override Execution.AnsiFor for this run")
		withTrace   = flag.Bool("trace", false, "Write an execution trace of every statement to stderr")
		withMonitor = flag.Bool("monitor", false, "Start with the line/variable breakpoint monitor attached")
		withTui     = flag.Bool("tui", false, "Start the program/variable inspector instead of the terminal REPL")
		withGui     = flag.Bool("gui", false, "Start the windowed console instead of the terminal REPL")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("basic %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if *ansiFor {
		cfg.Execution.AnsiFor = true
	}

	term := console.New()
	eng := engine.New(term)
	eng.AnsiFor = cfg.Execution.AnsiFor

	if *withTrace {
		eng.Trace = engine.NewExecutionTrace(os.Stderr)
	}

	if *withMonitor {
		mon := monitor.New(eng)
		eng.Monitor = mon
	}

	if *loadFile != "" {
		if _, err := eng.Submit(`LOAD "` + *loadFile + `"`); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		if err := eng.RunPending(); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
	}

	if *runAfter {
		if _, err := eng.Submit("RUN"); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		if err := eng.RunPending(); err != nil && !engine.IsBreakpoint(err) {
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
		os.Exit(exitCode(eng))
	}

	if *withTui {
		if err := tui.Run(eng); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		os.Exit(exitCode(eng))
	}

	if *withGui {
		guiapp.Run(eng)
		os.Exit(exitCode(eng))
	}

	runREPL(eng, term, cfg)
	os.Exit(exitCode(eng))
}

func exitCode(eng *engine.Engine) int {
	if eng.ShuttingDown() {
		return 1
	}
	return 0
}

// runREPL drives the interactive command loop: print the "Ok" prompt
// (unless the previous input edited a program line), read one line,
// submit it, and run whatever that produced to completion. A parse
// error echoes the line with a caret under the failing position.
func runREPL(eng *engine.Engine, term *console.Console, cfg *config.Config) {
	editedLine := false
	for !eng.ShuttingDown() {
		if !editedLine && !cfg.REPL.SuppressOkPrompt {
			term.Print("Ok\n")
		}

		line, ok := term.ReadLine()
		if !ok {
			return
		}

		wasProgramLine, err := eng.Submit(line)
		if err != nil {
			var perr *compiler.ParseError
			if errors.As(err, &perr) {
				term.Print(line + "\n")
				term.Print(strings.Repeat(" ", perr.Pos) + "^\n")
			}
			term.Print(err.Error() + "\n")
			editedLine = false
			continue
		}
		editedLine = wasProgramLine

		if !editedLine {
			if err := eng.RunPending(); err != nil && !engine.IsBreakpoint(err) {
				if n, ok := eng.CurrentLine(); ok {
					term.Print(fmt.Sprintf("%s on line %d\n", err.Error(), n))
				} else {
					term.Print(err.Error() + "\n")
				}
			}
		}
	}
}

func printHelp() {
	fmt.Printf(`basic %s

Usage: basic [options]

Options:
  -help         Show this help message
  -version      Show version information
  -load FILE    Load a program file at startup
  -run          RUN immediately after loading, then exit
  -ansi-for     Override Execution.AnsiFor for this run
  -trace        Write an execution trace of every statement to stderr
  -monitor      Start with the line/variable breakpoint monitor attached
  -tui          Start the tview-based program/variable inspector instead of the terminal REPL
  -gui          Start the fyne-based windowed console instead of the terminal REPL
`, Version)
}
