// Package ast defines the program-tree node shapes described in spec.md
// §6: the external interface the evaluator consumes. Construction
// (lexing/parsing) is a supporting concern, not the design's core; the
// node shapes here intentionally mirror spec.md's external-interface list
// one-for-one. Every node carries a Range (spec.md §6: "each node carries
// its source position range used for error formatting").
package ast

import "github.com/cwbudde/go-jsvm/internal/token"

// Range is a source position range, used for error-stack formatting
// (spec.md §6: "<file>:<line>:<col>-<line>:<col>").
type Range struct {
	Start token.Position
	End   token.Position
}

// Node is implemented by every statement and expression node.
type Node interface {
	Pos() Range
}

// Statement is a statement-position node.
type Statement interface {
	Node
	statementNode()
}

// Expression is an expression-position node.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: a sequence of statements.
type Program struct {
	Body  []Statement
	Range Range
}

func (p *Program) Pos() Range { return p.Range }
