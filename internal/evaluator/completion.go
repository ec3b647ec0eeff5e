package evaluator

import (
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// CompletionKind discriminates a statement's completion (spec.md §3).
type CompletionKind int

const (
	CompletionNormal CompletionKind = iota
	CompletionBreak
	CompletionContinue
	CompletionReturn
	CompletionThrow
)

// Completion is the `(kind, value, target)` triple every statement
// evaluation produces; target carries the label for break/continue. For
// CompletionThrow, Value is the script-level thrown value (what a catch
// clause binds) and Err is the host-facing *errors.ScriptThrow being
// built up one call frame at a time as the throw unwinds (spec.md §6
// "stack of source positions").
type Completion struct {
	Kind   CompletionKind
	Value  object.Value
	Target string
	Err    *errors.ScriptThrow
	// HasValue distinguishes a normal completion that actually produced a
	// value (an expression statement, or a compound statement whose last
	// constituent did) from one that is merely "empty" (var/empty/function
	// declarations, spec.md §4.3's block composition rule: "the normal
	// completion carrying the last value produced" — a statement with no
	// value must not blank out a preceding one).
	HasValue bool
}

func normal(v object.Value) Completion {
	return Completion{Kind: CompletionNormal, Value: v, HasValue: true}
}

func empty() Completion { return Completion{Kind: CompletionNormal} }

func (c Completion) isAbrupt() bool { return c.Kind != CompletionNormal }
