// Package errors implements the script-level error taxonomy and
// host-visible stack formatting of spec.md §7: Error, EvalError,
// RangeError, ReferenceError, SyntaxError, TypeError, URIError (V3+), plus
// the single generic evaluation/syntax exception kinds V1 reports instead.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/token"
)

// Name is a script error constructor name.
type Name string

const (
	Error          Name = "Error"
	EvalError      Name = "EvalError"
	RangeError     Name = "RangeError"
	ReferenceError Name = "ReferenceError"
	SyntaxError    Name = "SyntaxError"
	TypeError      Name = "TypeError"
	URIError       Name = "URIError"

	// GenericRuntime is the single evaluation-exception kind V1 reports for
	// all runtime failures (spec.md §7).
	GenericRuntime Name = "Error"
	// GenericSyntax is the single syntax-exception kind V1 reports for
	// parse failures.
	GenericSyntax Name = "SyntaxError"
)

// Frame is one entry of a captured source-position stack.
type Frame struct {
	File  string
	Range ast.Range
}

// String renders a frame as "<file>:<line>:<col>-<line>:<col>" per
// spec.md §6.
func (f Frame) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", f.File,
		f.Range.Start.Line, f.Range.Start.Column,
		f.Range.End.Line, f.Range.End.Column)
}

// ScriptThrow is the host-level exception (spec.md §7 "eval_exception")
// carrying the thrown script value plus the captured source-position
// stack. Value is `any` (an *object.Value, in practice) to avoid an
// import cycle between errors and object.
type ScriptThrow struct {
	Name    Name
	Message string
	Value   any
	Stack   []Frame
}

func (e *ScriptThrow) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Name))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	for _, f := range e.Stack {
		sb.WriteByte('\n')
		sb.WriteString(f.String())
	}
	return sb.String()
}

// Header returns just "<Name>: <Message>" with no stack, per spec.md §6.
func (e *ScriptThrow) Header() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// New builds a ScriptThrow with no stack yet; the evaluator appends
// frames as the throw unwinds call frames.
func New(name Name, format string, args ...any) *ScriptThrow {
	return &ScriptThrow{Name: name, Message: fmt.Sprintf(format, args...)}
}

// WithFrame returns a copy of e with an additional (innermost-first)
// stack frame appended.
func (e *ScriptThrow) WithFrame(file string, r ast.Range) *ScriptThrow {
	next := *e
	next.Stack = append(append([]Frame{}, e.Stack...), Frame{File: file, Range: r})
	return &next
}

// ParseError is a parse-time syntax error with source context, formatted
// the way internal's compiler-error used to (file/line/column header,
// source line, caret), for CLI display. It is distinct from ScriptThrow
// because it never unwinds through script-visible try/catch — parsing
// happens before any code runs.
type ParseError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

func (e *ParseError) Error() string { return e.Format() }

// Format renders the error with a source line and a caret pointing at the
// offending column.
func (e *ParseError) Format() string {
	var sb strings.Builder
	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", e.File, e.Pos.Line, e.Pos.Column, e.Message)
	} else {
		fmt.Fprintf(&sb, "%d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Message)
	}
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line >= 1 && e.Pos.Line <= len(lines) {
		line := lines[e.Pos.Line-1]
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		sb.WriteString("^\n")
	}
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
