package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/sanity-io/litter"

	"github.com/dshills/mathmark/internal/app"
	"github.com/dshills/mathmark/internal/command"
	"github.com/dshills/mathmark/internal/config/layer"
	"github.com/dshills/mathmark/internal/engine/position"
	"github.com/dshills/mathmark/internal/engine/token"
)

// readDocument reads the single file argument, or stdin when there is
// none or it is "-".
func (e *env) readDocument(args []string) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected at most one file", errUsage)
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(e.stdin)
		return string(data), err
	default:
		data, err := os.ReadFile(args[0])
		return string(data), err
	}
}

// session bootstraps an application without a terminal.
func (e *env) session(opts app.Options) (*app.Application, error) {
	opts.ConfigPath = e.configPath
	opts.LogLevel = e.logLevel
	if e.verbose {
		opts.LogOutput = e.stderr
	}
	return app.New(opts)
}

func (e *env) analyzer() (*position.Analyzer, error) {
	a, err := e.session(app.Options{})
	if err != nil {
		return nil, err
	}
	defer a.Shutdown()
	return position.NewAnalyzer(a.Editor().Registry()), nil
}

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func runParse(e *env, args []string) error {
	fs := newFlagSet(e, "parse")
	dump := fs.Bool("dump", false, "Dump every node field")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := e.readDocument(fs.Args())
	if err != nil {
		return err
	}
	an, err := e.analyzer()
	if err != nil {
		return err
	}
	tree := an.Analyze(text).Tree()
	if !*dump {
		_, err = io.WriteString(e.stdout, tree.String())
		return err
	}

	nodes := make([]any, 0, tree.Size())
	for i := 0; i < tree.Size(); i++ {
		nodes = append(nodes, tree.Node(token.NodeID(i)))
	}
	opts := litter.Options{HidePrivateFields: true, Compact: false, StripPackageNames: true}
	_, err = fmt.Fprintln(e.stdout, opts.Sdump(nodes))
	return err
}

func runTabStops(e *env, args []string) error {
	fs := newFlagSet(e, "tabstops")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := e.readDocument(fs.Args())
	if err != nil {
		return err
	}
	an, err := e.analyzer()
	if err != nil {
		return err
	}
	ts := an.TabStops(text)

	w := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	for _, row := range []struct {
		name  string
		stops []int
	}{
		{"command-starts", ts.CommandStarts},
		{"command-ends", ts.CommandEnds},
		{"command-names", ts.CommandNames},
		{"argument-opens", ts.ArgumentOpens},
		{"argument-closes", ts.ArgumentCloses},
		{"math-boundaries", ts.MathBoundaries},
		{"adjacent-gaps", ts.AdjacentGaps},
		{"word-boundaries", ts.WordBoundaries},
		{"other", ts.Other},
		{"all", ts.AllPositions},
	} {
		fmt.Fprintf(w, "%s\t%s\n", row.name, joinInts(row.stops))
	}
	return w.Flush()
}

func runValid(e *env, args []string) error {
	fs := newFlagSet(e, "valid")
	marks := fs.Bool("marks", false, "Print the text with | at every valid position")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := e.readDocument(fs.Args())
	if err != nil {
		return err
	}
	an, err := e.analyzer()
	if err != nil {
		return err
	}
	doc := an.Analyze(text)

	if *marks {
		var b strings.Builder
		for i := 0; i <= len(text); i++ {
			if doc.IsValid(i) {
				b.WriteByte('|')
			}
			if i < len(text) {
				b.WriteByte(text[i])
			}
		}
		_, err = fmt.Fprintln(e.stdout, b.String())
		return err
	}

	var valid []int
	for i := 0; i <= len(text); i++ {
		if doc.IsValid(i) {
			valid = append(valid, i)
		}
	}
	_, err = fmt.Fprintln(e.stdout, joinInts(valid))
	return err
}

func runInsert(e *env, args []string) error {
	fs := newFlagSet(e, "insert")
	name := fs.String("cmd", "", "Command name, e.g. fraction or sqrt")
	at := fs.Int("at", -1, "Byte offset of the cursor (default: end of document)")
	shortcut := fs.Bool("shortcut", false, "Run as a shortcut invocation that absorbs the expression left of the cursor")
	wrap := fs.String("wrap", "auto", "Math wrapping: auto, force or never")
	cursorArg := fs.Int("cursor", 0, "Argument slot for the cursor; 0 keeps the command default, negative counts from the end, N>0 is slot N-1")
	var cmdArgs stringList
	fs.Var(&cmdArgs, "arg", "Command argument (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("%w: -cmd is required", errUsage)
	}
	text, err := e.readDocument(fs.Args())
	if err != nil {
		return err
	}

	opts := command.Options{IsShortcutInvocation: *shortcut}
	switch *wrap {
	case "auto":
		opts.WrapWithMath = command.WrapAuto
	case "force":
		opts.WrapWithMath = command.WrapForce
	case "never":
		opts.WrapWithMath = command.WrapNever
	default:
		return fmt.Errorf("%w: -wrap must be auto, force or never", errUsage)
	}
	switch {
	case *cursorArg > 0:
		opts.CursorArgumentIndex = command.ArgumentIndex(*cursorArg - 1)
	case *cursorArg < 0:
		opts.CursorArgumentIndex = command.ArgumentIndex(*cursorArg)
	}

	a, err := e.session(app.Options{Content: text})
	if err != nil {
		return err
	}
	defer a.Shutdown()

	ed := a.Editor()
	pos := *at
	if pos < 0 || pos > len(text) {
		pos = len(text)
	}
	ed.SetCursor(pos, pos)
	ed.Execute(*name, cmdArgs, opts)

	fmt.Fprintln(e.stdout, ed.Content())
	fmt.Fprintf(e.stdout, "cursor %d (%s)\n", ed.Selection().Head, ed.State().Cursor.Context)
	return nil
}

func runKeys(e *env, args []string) error {
	fs := newFlagSet(e, "keys")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := e.session(app.Options{})
	if err != nil {
		return err
	}
	defer a.Shutdown()

	w := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEYS\tCOMMAND\tSOURCE\tDESCRIPTION")
	for _, b := range a.Dispatcher().Bindings() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Keys, b.Command, b.Source, b.Description)
	}
	return w.Flush()
}

func runConfig(e *env, args []string) error {
	fs := newFlagSet(e, "config")
	sources := fs.Bool("sources", false, "Show which layer provides each setting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := e.session(app.Options{})
	if err != nil {
		return err
	}
	defer a.Shutdown()

	data, err := a.Config().Encode()
	if err != nil {
		return err
	}
	if !*sources {
		_, err = e.stdout.Write(data)
		return err
	}

	layers := a.ConfigLayers()
	w := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	for _, path := range layer.Paths(layers.Merge()) {
		v, l, _ := layers.Get(path)
		fmt.Fprintf(w, "%s\t%v\t%s\n", path, v, l.Name)
	}
	return w.Flush()
}

func runEdit(e *env, args []string) error {
	fs := newFlagSet(e, "edit")
	logFile := fs.String("log", "", "Write logs to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: expected at most one file", errUsage)
	}

	opts := app.Options{Path: fs.Arg(0)}
	// The terminal owns stdout and stderr while editing.
	verbose := e.verbose
	e.verbose = false
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		opts.LogOutput = f
	}
	a, err := e.session(opts)
	e.verbose = verbose
	if err != nil {
		return err
	}
	defer a.Shutdown()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	return a.Run(screen)
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " ")
}
