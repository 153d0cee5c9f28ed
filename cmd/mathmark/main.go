// Package main is the entry point for the mathmark tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// globals are the flags shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string
	verbose    bool
}

// env is what a subcommand runs with.
type env struct {
	globals
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type subcommand struct {
	summary string
	run     func(e *env, args []string) error
}

var subcommands = map[string]subcommand{
	"parse":    {"print the token tree of a document", runParse},
	"tabstops": {"print the categorized tab stops of a document", runTabStops},
	"valid":    {"print the valid cursor positions of a document", runValid},
	"insert":   {"run a command at a position and print the result", runInsert},
	"keys":     {"list the active key bindings", runKeys},
	"config":   {"print the effective configuration", runConfig},
	"edit":     {"edit a document in the terminal", runEdit},
}

// errUsage marks errors that should be followed by usage output.
var errUsage = errors.New("usage")

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr}

	fs := flag.NewFlagSet("mathmark", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&e.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&e.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&e.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&e.verbose, "v", false, "Log to stderr")
	showVersion := fs.Bool("version", false, "Show version information")
	fs.Usage = func() { usage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "mathmark %s\nCommit: %s\nBuilt: %s\n", version, commit, date)
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr, fs)
		return 2
	}
	sub, ok := subcommands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", rest[0])
		usage(stderr, fs)
		return 2
	}

	if err := sub.run(e, rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "mathmark - math markup editing toolkit\n\n")
	fmt.Fprintf(w, "Usage: mathmark [options] <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	names := make([]string, 0, len(subcommands))
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, subcommands[name].summary)
	}
	fmt.Fprintf(w, "\nOptions:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  echo '$\\frac{a}{b}$' | mathmark valid\n")
	fmt.Fprintf(w, "  mathmark insert -cmd fraction -at 3 -shortcut notes.md\n")
	fmt.Fprintf(w, "  mathmark edit notes.md\n")
}

// stringList collects a repeated flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
