package lexer

import (
	"testing"

	"github.com/cwbudde/go-jsvm/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var x = 5;
	x += 10;
	function f(a, b) { return a + b; }
	`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.ASSIGN, ""},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ""},
		{token.IDENT, "x"},
		{token.PLUS_ASN, ""},
		{token.NUMBER, "10"},
		{token.SEMICOLON, ""},
		{token.FUNCTION, "function"},
		{token.IDENT, "f"},
		{token.LPAREN, ""},
		{token.IDENT, "a"},
		{token.COMMA, ""},
		{token.IDENT, "b"},
		{token.RPAREN, ""},
		{token.LBRACE, ""},
		{token.RETURN, "return"},
		{token.IDENT, "a"},
		{token.PLUS, ""},
		{token.IDENT, "b"},
		{token.SEMICOLON, ""},
		{token.RBRACE, ""},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d]: type = %s, want %s (literal=%q)", i, tok.Type, tt.expectedType, tok.Literal)
		}
		if tt.expectedLiteral != "" && tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d]: literal = %q, want %q", i, tok.Literal, tt.expectedLiteral)
		}
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"==", token.EQ},
		{"===", token.SEQ},
		{"!=", token.NOT_EQ},
		{"!==", token.SNOT_EQ},
		{"<=", token.LE},
		{">=", token.GE},
		{"<<", token.SHL},
		{">>", token.SHR},
		{">>>", token.USHR},
		{"&&", token.AND},
		{"||", token.OR},
		{"++", token.INC},
		{"--", token.DEC},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.want {
			t.Errorf("NextToken(%q) = %s, want %s", tt.input, tok.Type, tt.want)
		}
		if eof := l.NextToken(); eof.Type != token.EOF {
			t.Errorf("NextToken(%q) left trailing token %s", tt.input, eof.Type)
		}
	}
}

func TestCompoundAssignmentOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"+=", token.PLUS_ASN},
		{"-=", token.MINUS_ASN},
		{"*=", token.STAR_ASN},
		{"/=", token.SLASH_ASN},
		{"%=", token.PERCENT_ASN},
		{"&=", token.BAND_ASN},
		{"|=", token.BOR_ASN},
		{"^=", token.BXOR_ASN},
		{"<<=", token.SHL_ASN},
		{">>=", token.SHR_ASN},
		{">>>=", token.USHR_ASN},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.want {
			t.Errorf("NextToken(%q) = %s, want %s", tt.input, tok.Type, tt.want)
		}
		if eof := l.NextToken(); eof.Type != token.EOF {
			t.Errorf("NextToken(%q) left trailing token %s", tt.input, eof.Type)
		}
	}
}

// TestBareBitwiseAndShiftOperatorsStillLexCorrectly guards against the
// compound-assignment fix accidentally swallowing the plain (non-=)
// forms of these operators.
func TestBareBitwiseAndShiftOperatorsStillLexCorrectly(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"%", token.PERCENT},
		{"&", token.BAND},
		{"|", token.BOR},
		{"^", token.BXOR},
		{"<<", token.SHL},
		{">>", token.SHR},
		{">>>", token.USHR},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.want {
			t.Errorf("NextToken(%q) = %s, want %s", tt.input, tok.Type, tt.want)
		}
		if eof := l.NextToken(); eof.Type != token.EOF {
			t.Errorf("NextToken(%q) left trailing token %s", tt.input, eof.Type)
		}
	}
}

func TestStringLiteralsAndEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`'hello'`, "hello"},
		{`"world"`, "world"},
		{`'a\nb'`, "a\nb"},
		{`'A'`, "A"},
		{`'\x41'`, "A"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.STRING {
			t.Fatalf("NextToken(%q) type = %s, want STRING", tt.input, tok.Type)
		}
		if tok.Literal != tt.want {
			t.Errorf("NextToken(%q) literal = %q, want %q", tt.input, tok.Literal, tt.want)
		}
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	l := New(`'abc`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("type = %s, want ILLEGAL", tok.Type)
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []string{"123", "3.14", "1.5e10", "1e-3", "0xFF", "0x1a"}
	for _, in := range tests {
		l := New(in)
		tok := l.NextToken()
		if tok.Type != token.NUMBER {
			t.Fatalf("NextToken(%q) type = %s, want NUMBER", in, tok.Type)
		}
		if tok.Literal != in {
			t.Errorf("NextToken(%q) literal = %q, want %q", in, tok.Literal, in)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "// line comment\nx /* block\ncomment */ = 1;"
	l := New(input)
	want := []token.Type{token.IDENT, token.ASSIGN, token.NUMBER, token.SEMICOLON, token.EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token[%d] = %s, want %s", i, tok.Type, w)
		}
	}
}

func TestBOMIsStripped(t *testing.T) {
	l := New("\xEF\xBB\xBFx")
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "x" {
		t.Fatalf("got %s %q, want IDENT \"x\"", tok.Type, tok.Literal)
	}
}

func TestLinesAndColumnsAdvance(t *testing.T) {
	l := New("a\nbb")
	first := l.NextToken()
	if first.Pos.Line != 1 {
		t.Fatalf("first token line = %d, want 1", first.Pos.Line)
	}
	second := l.NextToken()
	if second.Pos.Line != 2 {
		t.Fatalf("second token line = %d, want 2", second.Pos.Line)
	}
}

func TestNextRegexRescansSlashAsRegex(t *testing.T) {
	l := New("/ab\\/c[/]d/gi")
	tok := l.NextRegex()
	if tok.Type != token.REGEX {
		t.Fatalf("type = %s, want REGEX", tok.Type)
	}
	want := `/ab\/c[/]d/gi`
	if tok.Literal != want {
		t.Errorf("literal = %q, want %q", tok.Literal, want)
	}
}

func TestSeekToRewindsForRegexDisambiguation(t *testing.T) {
	l := New("a / b/")
	l.NextToken()          // "a"
	slash := l.NextToken() // "/" as SLASH
	l.SeekTo(slash.Pos)
	tok := l.NextRegex()
	if tok.Type != token.REGEX {
		t.Fatalf("type = %s, want REGEX", tok.Type)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("type = %s, want ILLEGAL", tok.Type)
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tests := []struct {
		in   string
		want token.Type
	}{
		{"typeof", token.TYPEOF},
		{"instanceof", token.INSTANCEOF},
		{"delete", token.DELETE},
		{"void", token.VOID},
		{"switch", token.SWITCH},
		{"debugger", token.DEBUGGER},
		{"$foo", token.IDENT},
		{"_bar", token.IDENT},
		{"nullish", token.IDENT}, // not a keyword despite the "null" prefix
	}
	for _, tt := range tests {
		l := New(tt.in)
		tok := l.NextToken()
		if tok.Type != tt.want {
			t.Errorf("NextToken(%q) = %s, want %s", tt.in, tok.Type, tt.want)
		}
	}
}
