package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/token"
)

// precedence levels, low to high.
const (
	precLowest = iota
	precComma
	precAssign
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

var binPrec = map[token.Type]int{
	token.OR:       precLogicalOr,
	token.AND:      precLogicalAnd,
	token.BOR:      precBitOr,
	token.BXOR:     precBitXor,
	token.BAND:     precBitAnd,
	token.EQ:       precEquality,
	token.NOT_EQ:   precEquality,
	token.SEQ:      precEquality,
	token.SNOT_EQ:  precEquality,
	token.LT:       precRelational,
	token.GT:       precRelational,
	token.LE:       precRelational,
	token.GE:       precRelational,
	token.IN:       precRelational,
	token.INSTANCEOF: precRelational,
	token.SHL:      precShift,
	token.SHR:      precShift,
	token.USHR:     precShift,
	token.PLUS:     precAdditive,
	token.MINUS:    precAdditive,
	token.STAR:     precMultiplicative,
	token.SLASH:    precMultiplicative,
	token.PERCENT:  precMultiplicative,
}

// parseExpression parses a full expression, including the comma operator.
func (p *Parser) parseExpression() ast.Expression {
	start := p.cur.Pos
	first := p.parseAssignExpr()
	if p.cur.Type != token.COMMA {
		return first
	}
	seq := &ast.SequenceExpression{Expressions: []ast.Expression{first}}
	for p.cur.Type == token.COMMA {
		p.advance()
		seq.Expressions = append(seq.Expressions, p.parseAssignExpr())
	}
	seq.Range = p.rangeFrom(start)
	return seq
}

// parseAssignExpr parses assignment (right-associative), excluding comma.
func (p *Parser) parseAssignExpr() ast.Expression {
	start := p.cur.Pos
	left := p.parseConditional()

	op := ""
	switch p.cur.Type {
	case token.ASSIGN:
		op = ""
	case token.PLUS_ASN:
		op = "+"
	case token.MINUS_ASN:
		op = "-"
	case token.STAR_ASN:
		op = "*"
	case token.SLASH_ASN:
		op = "/"
	case token.PERCENT_ASN:
		op = "%"
	case token.BAND_ASN:
		op = "&"
	case token.BOR_ASN:
		op = "|"
	case token.BXOR_ASN:
		op = "^"
	case token.SHL_ASN:
		op = "<<"
	case token.SHR_ASN:
		op = ">>"
	case token.USHR_ASN:
		op = ">>>"
	default:
		return left
	}
	p.advance()
	value := p.parseAssignExpr()
	return &ast.AssignmentExpression{Range: p.rangeFrom(start), Operator: op, Target: left, Value: value}
}

func (p *Parser) parseConditional() ast.Expression {
	start := p.cur.Pos
	test := p.parseBinary(precLogicalOr)
	if p.cur.Type != token.QUESTION {
		return test
	}
	p.advance()
	cons := p.parseAssignExpr()
	p.expect(token.COLON)
	alt := p.parseAssignExpr()
	return &ast.ConditionalExpression{Range: p.rangeFrom(start), Test: test, Cons: cons, Alt: alt}
}

// parseBinary implements precedence climbing over binary/logical infix
// operators. Logical `&&`/`||` are split into LogicalExpression nodes to
// preserve their short-circuit semantics distinctly from BinaryExpression.
func (p *Parser) parseBinary(minPrec int) ast.Expression {
	start := p.cur.Pos
	left := p.parseUnary()
	for {
		if p.cur.Type == token.SEQ || p.cur.Type == token.SNOT_EQ {
			if !p.ver.HasStrictEquality() {
				p.errorf(p.cur.Pos, "strict equality is not available in %s", p.ver)
			}
		}
		prec, ok := binPrec[p.cur.Type]
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.cur
		p.advance()
		right := p.parseBinary(prec + 1)
		r := p.rangeFrom(start)
		if opTok.Type == token.AND || opTok.Type == token.OR {
			left = &ast.LogicalExpression{Range: r, Operator: opTok.Type.String(), Left: left, Right: right}
		} else {
			left = &ast.BinaryExpression{Range: r, Operator: opTok.Type.String(), Left: left, Right: right}
		}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	start := p.cur.Pos
	switch p.cur.Type {
	case token.BANG, token.MINUS, token.PLUS, token.BNOT:
		op := p.cur.Type.String()
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpression{Range: p.rangeFrom(start), Operator: op, Operand: operand}
	case token.TYPEOF, token.VOID, token.DELETE:
		op := p.cur.Type.String()
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpression{Range: p.rangeFrom(start), Operator: op, Operand: operand}
	case token.INC, token.DEC:
		op := p.cur.Type.String()
		p.advance()
		operand := p.parseUnary()
		return &ast.UpdateExpression{Range: p.rangeFrom(start), Operator: op, Operand: operand, Prefix: true}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	start := p.cur.Pos
	expr := p.parseCallMemberNew()
	if (p.cur.Type == token.INC || p.cur.Type == token.DEC) && p.cur.Pos.Line == start.Line {
		op := p.cur.Type.String()
		p.advance()
		return &ast.UpdateExpression{Range: p.rangeFrom(start), Operator: op, Operand: expr, Prefix: false}
	}
	return expr
}

// parseCallMemberNew parses member access, calls, and `new`, all at the
// same (highest) precedence tier, left to right.
func (p *Parser) parseCallMemberNew() ast.Expression {
	start := p.cur.Pos
	var expr ast.Expression
	if p.cur.Type == token.NEW {
		p.advance()
		callee := p.parseCallMemberNewNoCall()
		var args []ast.Expression
		if p.cur.Type == token.LPAREN {
			args = p.parseArgs()
		}
		expr = &ast.NewExpression{Range: p.rangeFrom(start), Callee: callee, Args: args}
	} else {
		expr = p.parsePrimary()
	}
	return p.parseCallMemberTail(expr, start)
}

// parseCallMemberNewNoCall parses the callee of `new` up to (but not
// including) a trailing call's argument list, per the grammar's
// MemberExpression production.
func (p *Parser) parseCallMemberNewNoCall() ast.Expression {
	start := p.cur.Pos
	var expr ast.Expression
	if p.cur.Type == token.NEW {
		p.advance()
		callee := p.parseCallMemberNewNoCall()
		var args []ast.Expression
		if p.cur.Type == token.LPAREN {
			args = p.parseArgs()
		}
		expr = &ast.NewExpression{Range: p.rangeFrom(start), Callee: callee, Args: args}
	} else {
		expr = p.parsePrimary()
	}
	for {
		switch p.cur.Type {
		case token.DOT:
			p.advance()
			name := p.cur.Literal
			p.expect(token.IDENT)
			expr = &ast.MemberExpression{Range: p.rangeFrom(start), Object: expr, Property: &ast.Identifier{Name: name}, Computed: false}
		case token.LBRACKET:
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = &ast.MemberExpression{Range: p.rangeFrom(start), Object: expr, Property: idx, Computed: true}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallMemberTail(expr ast.Expression, start token.Position) ast.Expression {
	for {
		switch p.cur.Type {
		case token.DOT:
			p.advance()
			name := p.cur.Literal
			p.expect(token.IDENT)
			expr = &ast.MemberExpression{Range: p.rangeFrom(start), Object: expr, Property: &ast.Identifier{Name: name}, Computed: false}
		case token.LBRACKET:
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			expr = &ast.MemberExpression{Range: p.rangeFrom(start), Object: expr, Property: idx, Computed: true}
		case token.LPAREN:
			args := p.parseArgs()
			expr = &ast.CallExpression{Range: p.rangeFrom(start), Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		args = append(args, p.parseAssignExpr())
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary() ast.Expression {
	start := p.cur.Pos
	switch p.cur.Type {
	case token.NUMBER:
		lit := p.cur.Literal
		p.advance()
		return &ast.NumberLiteral{Range: p.rangeFrom(start), Value: parseNumber(lit, p.ver)}
	case token.STRING:
		lit := p.cur.Literal
		p.advance()
		return &ast.StringLiteral{Range: p.rangeFrom(start), Value: lit}
	case token.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Range: p.rangeFrom(start), Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Range: p.rangeFrom(start), Value: false}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Range: p.rangeFrom(start)}
	case token.UNDEFINED:
		p.advance()
		return &ast.UndefinedLiteral{Range: p.rangeFrom(start)}
	case token.THIS:
		p.advance()
		return &ast.ThisExpression{Range: p.rangeFrom(start)}
	case token.IDENT:
		name := p.cur.Literal
		p.advance()
		return &ast.Identifier{Range: p.rangeFrom(start), Name: name}
	case token.FUNCTION:
		return p.parseFunctionExpression()
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		if !p.ver.HasArrayObjectLiterals() {
			p.errorf(p.cur.Pos, "array literals are not available in %s", p.ver)
		}
		return p.parseArrayLiteral()
	case token.LBRACE:
		if !p.ver.HasArrayObjectLiterals() {
			p.errorf(p.cur.Pos, "object literals are not available in %s", p.ver)
		}
		return p.parseObjectLiteral()
	case token.SLASH, token.SLASH_ASN:
		if !p.ver.HasRegexLiterals() {
			p.errorf(p.cur.Pos, "regular expression literals are not available in %s", p.ver)
		}
		return p.parseRegexLiteral()
	default:
		p.errorf(p.cur.Pos, "unexpected token %s", p.cur.Type)
		p.advance()
		return &ast.UndefinedLiteral{Range: p.rangeFrom(start)}
	}
}

// parseRegexLiteral rewinds the lexer to the '/' that began the current
// token (already mis-scanned as SLASH/SLASH_ASN by ordinary lookahead) and
// rescans it as a regex literal now that grammar context confirms it is one.
func (p *Parser) parseRegexLiteral() ast.Expression {
	start := p.cur.Pos
	p.l.SeekTo(start)
	tok := p.l.NextRegex()
	p.cur = tok
	p.peek = p.l.NextToken()
	lit := p.cur.Literal
	p.advance()
	// lit is "/pattern/flags"
	lastSlash := strings.LastIndexByte(lit, '/')
	pattern := lit[1:lastSlash]
	flags := lit[lastSlash+1:]
	return &ast.RegexLiteral{Range: p.rangeFrom(start), Pattern: pattern, Flags: flags}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.cur.Pos
	p.advance() // [
	arr := &ast.ArrayLiteral{}
	for p.cur.Type != token.RBRACKET && p.cur.Type != token.EOF {
		if p.cur.Type == token.COMMA {
			arr.Elements = append(arr.Elements, nil)
			p.advance()
			continue
		}
		arr.Elements = append(arr.Elements, p.parseAssignExpr())
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	arr.Range = p.rangeFrom(start)
	p.expect(token.RBRACKET)
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	start := p.cur.Pos
	p.advance() // {
	obj := &ast.ObjectLiteral{}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		prop := p.parseObjectProperty()
		obj.Properties = append(obj.Properties, prop)
		if p.cur.Type == token.COMMA {
			p.advance()
		}
	}
	obj.Range = p.rangeFrom(start)
	p.expect(token.RBRACE)
	return obj
}

func (p *Parser) parseObjectProperty() ast.ObjectProperty {
	if p.ver.HasAccessors() && p.cur.Type == token.IDENT && (p.cur.Literal == "get" || p.cur.Literal == "set") &&
		p.peek.Type != token.COLON && p.peek.Type != token.COMMA && p.peek.Type != token.RBRACE {
		kind := ast.PropGet
		if p.cur.Literal == "set" {
			kind = ast.PropSet
		}
		p.advance()
		key := p.propertyKey()
		fn := p.parseAccessorBody()
		return ast.ObjectProperty{Key: key, Value: fn, Kind: kind}
	}
	key := p.propertyKey()
	p.expect(token.COLON)
	val := p.parseAssignExpr()
	return ast.ObjectProperty{Key: key, Value: val, Kind: ast.PropInit}
}

func (p *Parser) propertyKey() string {
	switch p.cur.Type {
	case token.STRING:
		lit := p.cur.Literal
		p.advance()
		return lit
	case token.NUMBER:
		lit := p.cur.Literal
		p.advance()
		return lit
	default:
		lit := p.cur.Literal
		p.advance()
		return lit
	}
}

func (p *Parser) parseAccessorBody() *ast.FunctionExpression {
	start := p.cur.Pos
	params := p.parseParamList()
	p.inFunc++
	body, strict := p.parseFunctionBody()
	p.inFunc--
	return &ast.FunctionExpression{Range: p.rangeFrom(start), Params: params, Body: body, Strict: strict}
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	start := p.cur.Pos
	p.advance() // 'function'
	name := ""
	if p.cur.Type == token.IDENT {
		name = p.cur.Literal
		p.advance()
	}
	params := p.parseParamList()
	p.inFunc++
	body, strict := p.parseFunctionBody()
	p.inFunc--
	return &ast.FunctionExpression{Range: p.rangeFrom(start), Name: name, Params: params, Body: body, Strict: strict}
}

// parseNumber converts a scanned numeric literal to float64, honoring
// legacy octal inference (spec.md §4.6) when the version allows it.
func parseNumber(lit string, ver interface{ AllowsOctalLiterals() bool }) float64 {
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		n, _ := strconv.ParseUint(lit[2:], 16, 64)
		return float64(n)
	}
	if ver.AllowsOctalLiterals() && len(lit) > 1 && lit[0] == '0' && isAllOctalDigits(lit) {
		n, err := strconv.ParseUint(lit, 8, 64)
		if err == nil {
			return float64(n)
		}
	}
	f, _ := strconv.ParseFloat(lit, 64)
	return f
}

func isAllOctalDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '7' {
			return false
		}
	}
	return true
}
