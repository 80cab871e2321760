// Package main is the entry point for the transpose editor.
//
// With a terminal on stdin and stdout it opens the interactive editor.
// With -session, or when stdin is piped, it reads JSON requests and
// writes JSON responses. With -script it runs a Lua file against the
// document.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/transpose/internal/app"
	"github.com/dshills/transpose/internal/logging"
	"github.com/dshills/transpose/internal/session"
	editorterm "github.com/dshills/transpose/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	opts    app.Options
	session bool
	script  string
	write   bool
	logFile string
	file    string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	logOut, closeLog, err := openLog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	f.opts.LogOutput = logOut

	switch {
	case f.script != "":
		err = runScript(f)
	case f.session || !term.IsTerminal(int(os.Stdin.Fd())):
		err = runSession(f)
	default:
		err = runEditor(f)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openLog picks the log destination. The interactive editor owns the
// terminal, so it logs nowhere unless -log names a file.
func openLog(f flags) (io.Writer, func(), error) {
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		return file, func() { _ = file.Close() }, nil
	}
	if f.script == "" && !f.session && term.IsTerminal(int(os.Stdin.Fd())) {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func runSession(f flags) error {
	in := io.Reader(os.Stdin)
	if f.file != "" && f.file != "-" {
		file, err := os.Open(f.file)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}
	return session.Process(in, os.Stdout, f.opts)
}

func runScript(f flags) error {
	doc, err := openDocument(f.file)
	if err != nil {
		return err
	}
	f.opts.Document = doc

	application, err := app.New(f.opts)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	if err := application.RunScript(f.script, os.Stdout); err != nil {
		return err
	}
	if f.write && doc.IsModified() {
		return doc.Save()
	}
	return nil
}

func runEditor(f flags) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	doc, err := openDocument(f.file)
	if err != nil {
		return err
	}
	f.opts.Document = doc

	application, err := app.New(f.opts)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	screen, err := editorterm.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	editor := editorterm.New(application, screen)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			editor.Stop()
		}
	}()

	return editor.Run()
}

func openDocument(path string) (*app.Document, error) {
	if path == "" {
		return app.NewScratchDocument(""), nil
	}
	return app.OpenDocument(path)
}

func parseFlags() flags {
	var f flags
	var showVersion bool

	flag.StringVar(&f.opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&f.opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&f.opts.WatchConfig, "watch", false, "Reload the configuration file when it changes")
	flag.BoolVar(&f.opts.Debug, "debug", false, "Enable dispatcher metrics")
	flag.StringVar(&f.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.logFile, "log", "", "Write logs to this file")
	flag.BoolVar(&f.opts.ReadOnly, "readonly", false, "Refuse every edit")
	flag.BoolVar(&f.opts.ReadOnly, "R", false, "Refuse every edit (shorthand)")
	flag.BoolVar(&f.session, "session", false, "Read JSON requests from the file argument or stdin")
	flag.StringVar(&f.script, "script", "", "Run a Lua script against the file argument")
	flag.BoolVar(&f.write, "write", false, "Save the file after -script changes it")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "transpose - swap characters, lines and selections\n\n")
		fmt.Fprintf(os.Stderr, "Usage: transpose [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  transpose notes.txt                      Edit a file\n")
		fmt.Fprintf(os.Stderr, "  transpose -session < requests.json       Run JSON requests\n")
		fmt.Fprintf(os.Stderr, "  transpose -script fix.lua -write a.txt   Run a script and save\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("transpose %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if f.opts.LogLevel != "" {
		if _, ok := logging.ParseLevel(f.opts.LogLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.opts.LogLevel)
			os.Exit(2)
		}
	}

	switch flag.NArg() {
	case 0:
	case 1:
		f.file = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		flag.Usage()
		os.Exit(2)
	}
	return f
}
