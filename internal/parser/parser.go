// Package parser implements a recursive-descent statement parser and a
// Pratt (precedence-climbing) expression parser over internal/lexer's
// token stream, producing the internal/ast node tree the evaluator walks.
// Grammar acceptance is version-gated per spec.md §4.6: the tested
// version is fixed for the lifetime of a Parser.
package parser

import (
	"fmt"

	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/lexer"
	"github.com/cwbudde/go-jsvm/internal/token"
	"github.com/cwbudde/go-jsvm/internal/version"
)

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	l      *lexer.Lexer
	ver    version.Version
	source string
	file   string
	cur    token.Token
	peek   token.Token
	errs   []*errors.ParseError
	inFunc int // nesting depth of function bodies, for `return` legality
	strict bool
}

// New creates a Parser for source text under filename, targeting ver.
func New(source, file string, ver version.Version) *Parser {
	p := &Parser{l: lexer.New(source), ver: ver, source: source, file: file}
	p.advance()
	p.advance()
	return p
}

// Errors returns accumulated parse errors.
func (p *Parser) Errors() []*errors.ParseError { return p.errs }

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errs = append(p.errs, &errors.ParseError{
		Message: fmt.Sprintf(format, args...),
		Source:  p.source,
		File:    p.file,
		Pos:     pos,
	})
}

func (p *Parser) expect(t token.Type) token.Position {
	pos := p.cur.Pos
	if p.cur.Type != t {
		p.errorf(pos, "expected %s, got %s", t, p.cur.Type)
	} else {
		p.advance()
	}
	return pos
}

func (p *Parser) rangeFrom(start token.Position) ast.Range {
	return ast.Range{Start: start, End: p.cur.Pos}
}

func base(p *Parser, start token.Position) ast.Range { return p.rangeFrom(start) }

// skipSemicolon consumes an optional trailing ';' (automatic semicolon
// insertion is not modeled; a missing ';' is simply tolerated wherever
// this is called).
func (p *Parser) skipSemicolon() {
	if p.cur.Type == token.SEMICOLON {
		p.advance()
	}
}

// ParseProgram parses the full input and returns the program tree. Parse
// errors accumulate in p.Errors(); the returned *ast.Program may be
// partial when errors occurred.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.cur.Pos
	prog := &ast.Program{}
	for p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		} else {
			p.advance() // avoid infinite loop on unrecoverable token
		}
	}
	prog.Range = p.rangeFrom(start)
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.VAR:
		return p.parseVarStatement()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		if !p.ver.HasDoWhile() {
			p.errorf(p.cur.Pos, "do/while is not available in %s", p.ver)
		}
		return p.parseDoWhile()
	case token.BREAK:
		return p.parseBreakContinue(true)
	case token.CONTINUE:
		return p.parseBreakContinue(false)
	case token.RETURN:
		return p.parseReturn()
	case token.WITH:
		return p.parseWith()
	case token.THROW:
		if !p.ver.HasThrow() {
			p.errorf(p.cur.Pos, "throw is not available in %s", p.ver)
		}
		return p.parseThrow()
	case token.TRY:
		if !p.ver.HasTryCatch() {
			p.errorf(p.cur.Pos, "try/catch is not available in %s", p.ver)
		}
		return p.parseTry()
	case token.SWITCH:
		if !p.ver.HasSwitch() {
			p.errorf(p.cur.Pos, "switch is not available in %s", p.ver)
		}
		return p.parseSwitch()
	case token.DEBUGGER:
		if !p.ver.HasDebuggerStatement() {
			p.errorf(p.cur.Pos, "debugger statement is not available in %s", p.ver)
		}
		start := p.cur.Pos
		p.advance()
		p.skipSemicolon()
		return &ast.DebuggerStatement{Range: base(p, start)}
	case token.SEMICOLON:
		start := p.cur.Pos
		p.advance()
		return &ast.EmptyStatement{Range: base(p, start)}
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.IDENT:
		if p.peek.Type == token.COLON && p.ver.HasLabeledStatements() {
			return p.parseLabeled()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	start := p.cur.Pos
	p.expect(token.LBRACE)
	blk := &ast.BlockStatement{}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		if s := p.parseStatement(); s != nil {
			blk.Body = append(blk.Body, s)
		} else {
			p.advance()
		}
	}
	blk.Range = p.rangeFrom(start)
	p.expect(token.RBRACE)
	return blk
}

func (p *Parser) parseVarStatement() ast.Statement {
	start := p.cur.Pos
	p.advance() // 'var'
	v := &ast.VarStatement{}
	for {
		name := p.cur.Literal
		p.expect(token.IDENT)
		decl := ast.VarDeclarator{Name: name}
		if p.cur.Type == token.ASSIGN {
			p.advance()
			decl.Init = p.parseAssignExpr()
		}
		v.Decls = append(v.Decls, decl)
		if p.cur.Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	v.Range = p.rangeFrom(start)
	p.skipSemicolon()
	return v
}

func (p *Parser) parseIf() ast.Statement {
	start := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	test := p.parseExpression()
	p.expect(token.RPAREN)
	cons := p.parseStatement()
	var alt ast.Statement
	if p.cur.Type == token.ELSE {
		p.advance()
		alt = p.parseStatement()
	}
	return &ast.IfStatement{Range: base(p, start), Test: test, Cons: cons, Alt: alt}
}

// parseFor disambiguates `for(;;)` from `for(x in y)` / `for(var x in y)`
// by parsing the init clause first and checking for a following `in`.
func (p *Parser) parseFor() ast.Statement {
	start := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)

	if p.cur.Type == token.VAR {
		varStart := p.cur.Pos
		p.advance()
		name := p.cur.Literal
		p.expect(token.IDENT)
		var init ast.Expression
		if p.cur.Type == token.ASSIGN {
			p.advance()
			init = p.parseAssignExpr()
		}
		if p.cur.Type == token.IN {
			p.advance()
			obj := p.parseExpression()
			p.expect(token.RPAREN)
			body := p.parseStatement()
			return &ast.ForInStatement{Range: base(p, start), IsVarDecl: true, VarName: name, Init: init, Object: obj, Body: body}
		}
		// plain for(var ...;;)
		vs := &ast.VarStatement{Decls: []ast.VarDeclarator{{Name: name, Init: init}}}
		for p.cur.Type == token.COMMA {
			p.advance()
			n2 := p.cur.Literal
			p.expect(token.IDENT)
			var i2 ast.Expression
			if p.cur.Type == token.ASSIGN {
				p.advance()
				i2 = p.parseAssignExpr()
			}
			vs.Decls = append(vs.Decls, ast.VarDeclarator{Name: n2, Init: i2})
		}
		vs.Range = p.rangeFrom(varStart)
		p.expect(token.SEMICOLON)
		return p.finishCStyleFor(start, vs)
	}

	if p.cur.Type == token.SEMICOLON {
		p.advance()
		return p.finishCStyleFor(start, nil)
	}

	exprStart := p.cur.Pos
	first := p.parseExpression()
	if p.cur.Type == token.IN {
		p.advance()
		obj := p.parseExpression()
		p.expect(token.RPAREN)
		body := p.parseStatement()
		return &ast.ForInStatement{Range: base(p, start), Target: first, Object: obj, Body: body}
	}
	initStmt := &ast.ExpressionStatement{Range: base(p, exprStart), Expr: first}
	p.expect(token.SEMICOLON)
	return p.finishCStyleFor(start, initStmt)
}

func (p *Parser) finishCStyleFor(start token.Position, init ast.Statement) ast.Statement {
	var test, update ast.Expression
	if p.cur.Type != token.SEMICOLON {
		test = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	if p.cur.Type != token.RPAREN {
		update = p.parseExpression()
	}
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.ForStatement{Range: base(p, start), Init: init, Test: test, Update: update, Body: body}
}

func (p *Parser) parseWhile() ast.Statement {
	start := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	test := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{Range: base(p, start), Test: test, Body: body}
}

func (p *Parser) parseDoWhile() ast.Statement {
	start := p.cur.Pos
	p.advance()
	body := p.parseStatement()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	test := p.parseExpression()
	p.expect(token.RPAREN)
	p.skipSemicolon()
	return &ast.DoWhileStatement{Range: base(p, start), Body: body, Test: test}
}

func (p *Parser) parseBreakContinue(isBreak bool) ast.Statement {
	start := p.cur.Pos
	p.advance()
	label := ""
	if p.cur.Type == token.IDENT && p.cur.Pos.Line == start.Line {
		label = p.cur.Literal
		p.advance()
	}
	p.skipSemicolon()
	if isBreak {
		return &ast.BreakStatement{Range: base(p, start), Label: label}
	}
	return &ast.ContinueStatement{Range: base(p, start), Label: label}
}

func (p *Parser) parseReturn() ast.Statement {
	start := p.cur.Pos
	if p.inFunc == 0 {
		p.errorf(start, "return outside of function")
	}
	p.advance()
	var val ast.Expression
	if p.cur.Type != token.SEMICOLON && p.cur.Type != token.RBRACE && p.cur.Type != token.EOF && p.cur.Pos.Line == start.Line {
		val = p.parseExpression()
	}
	p.skipSemicolon()
	return &ast.ReturnStatement{Range: base(p, start), Value: val}
}

func (p *Parser) parseWith() ast.Statement {
	start := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	obj := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WithStatement{Range: base(p, start), Object: obj, Body: body}
}

func (p *Parser) parseThrow() ast.Statement {
	start := p.cur.Pos
	p.advance()
	val := p.parseExpression()
	p.skipSemicolon()
	return &ast.ThrowStatement{Range: base(p, start), Value: val}
}

func (p *Parser) parseTry() ast.Statement {
	start := p.cur.Pos
	p.advance()
	block := p.parseBlock()
	ts := &ast.TryStatement{Block: block}
	if p.cur.Type == token.CATCH {
		p.advance()
		p.expect(token.LPAREN)
		name := p.cur.Literal
		p.expect(token.IDENT)
		p.expect(token.RPAREN)
		cbody := p.parseBlock()
		ts.Catch = &ast.CatchClause{Param: name, Body: cbody}
	}
	if p.cur.Type == token.FINALLY {
		p.advance()
		ts.Finally = p.parseBlock()
	}
	ts.Range = p.rangeFrom(start)
	return ts
}

func (p *Parser) parseSwitch() ast.Statement {
	start := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	disc := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	sw := &ast.SwitchStatement{Disc: disc}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		var c ast.SwitchCase
		if p.cur.Type == token.CASE {
			p.advance()
			c.Test = true
			c.Expr = p.parseExpression()
		} else if p.cur.Type == token.DEFAULT {
			p.advance()
		} else {
			p.errorf(p.cur.Pos, "expected case or default, got %s", p.cur.Type)
			p.advance()
			continue
		}
		p.expect(token.COLON)
		for p.cur.Type != token.CASE && p.cur.Type != token.DEFAULT && p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
			if s := p.parseStatement(); s != nil {
				c.Body = append(c.Body, s)
			} else {
				p.advance()
			}
		}
		sw.Cases = append(sw.Cases, c)
	}
	sw.Range = p.rangeFrom(start)
	p.expect(token.RBRACE)
	return sw
}

func (p *Parser) parseLabeled() ast.Statement {
	start := p.cur.Pos
	label := p.cur.Literal
	p.advance() // ident
	p.advance() // colon
	body := p.parseStatement()
	return &ast.LabeledStatement{Range: base(p, start), Label: label, Body: body}
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	start := p.cur.Pos
	p.advance() // 'function'
	name := p.cur.Literal
	p.expect(token.IDENT)
	params := p.parseParamList()
	p.inFunc++
	body, strict := p.parseFunctionBody()
	p.inFunc--
	return &ast.FunctionDeclaration{Range: base(p, start), Name: name, Params: params, Body: body, Strict: strict}
}

func (p *Parser) parseParamList() []string {
	p.expect(token.LPAREN)
	var params []string
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		params = append(params, p.cur.Literal)
		p.expect(token.IDENT)
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return params
}

// parseFunctionBody parses `{ ... }`, recognizing a V5 leading
// `"use strict";` directive prologue per spec.md §4.6.
func (p *Parser) parseFunctionBody() (*ast.BlockStatement, bool) {
	start := p.cur.Pos
	p.expect(token.LBRACE)
	strict := p.strict
	blk := &ast.BlockStatement{}
	first := true
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		if first && p.ver.HasUseStrict() && p.cur.Type == token.STRING && p.cur.Literal == "use strict" && p.peek.Type == token.SEMICOLON {
			strict = true
			p.advance()
			p.advance()
			first = false
			continue
		}
		first = false
		if s := p.parseStatement(); s != nil {
			blk.Body = append(blk.Body, s)
		} else {
			p.advance()
		}
	}
	blk.Range = p.rangeFrom(start)
	p.expect(token.RBRACE)
	return blk, strict
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.cur.Pos
	expr := p.parseExpression()
	p.skipSemicolon()
	return &ast.ExpressionStatement{Range: base(p, start), Expr: expr}
}
