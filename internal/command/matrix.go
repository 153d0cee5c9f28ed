package command

import (
	"strconv"
	"strings"

	"github.com/dshills/mathmark/internal/engine/token"
)

// Matrix defaults.
const (
	DefaultMatrixRows        = 2
	DefaultMatrixCols        = 2
	DefaultMatrixEnvironment = "pmatrix"

	// MaxMatrixSize bounds rows and columns.
	MaxMatrixSize = 20
)

// Matrix inserts an environment of empty cells:
//
//	\begin{pmatrix}  &  \\  &  \end{pmatrix}
//
// The cursor lands in the first cell.
type Matrix struct {
	Rows        int
	Cols        int
	Environment string
}

// NewMatrix creates a matrix command with the given defaults. Values
// outside [1, MaxMatrixSize] and an empty environment fall back to the
// package defaults.
func NewMatrix(rows, cols int, environment string) Matrix {
	return Matrix{
		Rows:        sizeOr(rows, DefaultMatrixRows),
		Cols:        sizeOr(cols, DefaultMatrixCols),
		Environment: nonEmpty(environment, DefaultMatrixEnvironment),
	}
}

// Name returns "matrix".
func (Matrix) Name() string { return "matrix" }

// Patterns returns the \begin and \end patterns.
func (Matrix) Patterns() []token.Pattern {
	return []token.Pattern{
		backslash("begin", 1, false, "matrix"),
		backslash("end", 1, false, "matrix"),
	}
}

// Shortcuts returns Alt+M.
func (Matrix) Shortcuts() []Shortcut {
	return []Shortcut{{Keys: "Alt+M", Description: "Insert a matrix"}}
}

// Execute inserts the matrix. args are rows, columns and environment;
// missing or invalid values use the command defaults.
func (m Matrix) Execute(content string, pos int, args []string, opts Options) (string, int) {
	return insert(content, pos, args, opts, patternsOf(m), false, func(args []string, _ bool) literal {
		rows := sizeOr(atoi(arg(args, 0)), sizeOr(m.Rows, DefaultMatrixRows))
		cols := sizeOr(atoi(arg(args, 1)), sizeOr(m.Cols, DefaultMatrixCols))
		env := nonEmpty(strings.TrimSpace(arg(args, 2)), nonEmpty(m.Environment, DefaultMatrixEnvironment))

		open := `\begin{` + env + `} `
		row := strings.Repeat(" & ", cols-1)
		rowsText := make([]string, rows)
		for i := range rowsText {
			rowsText[i] = row
		}
		text := open + strings.Join(rowsText, ` \\ `) + ` \end{` + env + `}`
		return literal{text: text, offset: len(open)}
	})
}

func sizeOr(n, def int) int {
	if n < 1 || n > MaxMatrixSize {
		return def
	}
	return n
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
