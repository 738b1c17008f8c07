package lexer

import "testing"

func TestNextToken_Punctuation(t *testing.T) {
	input := `let x = 5 in print(x);`

	tests := []struct {
		wantType    TokenType
		wantLiteral string
	}{
		{LET, "let"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{NUMBER, "5"},
		{IN, "in"},
		{PRINT, "print"},
		{LPAREN, "("},
		{IDENT, "x"},
		{RPAREN, ")"},
		{SEMI, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("token %d: type = %s, want %s", i, tok.Type, tt.wantType)
		}
		if tok.Literal != tt.wantLiteral {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, tt.wantLiteral)
		}
	}
}

func TestNextToken_DestructiveVsBinding(t *testing.T) {
	l := New("x := 1; y = 2;")
	want := []TokenType{IDENT, DESTRUCTIVE, NUMBER, SEMI, IDENT, ASSIGN, NUMBER, SEMI, EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	l := New("+ - * / % ^ @ == != < <= > >= & | !")
	want := []TokenType{PLUS, MINUS, STAR, SLASH, PERCENT, CARET, AT, EQ, NEQ, LT, LE, GT, GE, AND, OR, NOT, EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s (%q), want %s", i, tok.Type, tok.Literal, w)
		}
	}
}

func TestNextToken_StringEscapes(t *testing.T) {
	l := New(`"hello\nworld" "a\"b"`)
	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello\nworld" {
		t.Fatalf("got %v, want STRING hello\\nworld", tok)
	}
	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != `a"b` {
		t.Fatalf("got %v, want STRING a\"b", tok)
	}
}

func TestNextToken_Number(t *testing.T) {
	l := New("42 3.14 0.5")
	for _, want := range []string{"42", "3.14", "0.5"} {
		tok := l.NextToken()
		if tok.Type != NUMBER || tok.Literal != want {
			t.Fatalf("got %v, want NUMBER %s", tok, want)
		}
	}
}

func TestNextToken_Comments(t *testing.T) {
	l := New("1 // a comment\n + /* block */ 2")
	want := []TokenType{NUMBER, PLUS, NUMBER, EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}

func TestNextToken_PreserveComments(t *testing.T) {
	l := New("1 // a comment\n + /* block */ 2", WithPreserveComments(true))
	want := []struct {
		typ     TokenType
		literal string
	}{
		{NUMBER, "1"},
		{COMMENT, "// a comment"},
		{PLUS, "+"},
		{COMMENT, "/* block */"},
		{NUMBER, "2"},
		{EOF, ""},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ || tok.Literal != w.literal {
			t.Fatalf("token %d: got %s %q, want %s %q", i, tok.Type, tok.Literal, w.typ, w.literal)
		}
	}
}

func TestNextToken_IdentifierMustStartWithLetter(t *testing.T) {
	l := New("_foo")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL for leading underscore", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "foo" {
		t.Fatalf("got %v, want IDENT foo", tok)
	}
}

func TestNextToken_IdentifierContinuesWithUnderscore(t *testing.T) {
	l := New("foo_bar")
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "foo_bar" {
		t.Fatalf("got %v, want IDENT foo_bar", tok)
	}
}

func TestNextToken_IllegalCharacter(t *testing.T) {
	l := New("1 $ 2")
	l.NextToken() // 1
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestNextToken_Keywords(t *testing.T) {
	l := New("function type inherits new let in if elif else while for print true false")
	want := []TokenType{FUNCTION, TYPE, INHERITS, NEW, LET, IN, IF, ELIF, ELSE, WHILE, FOR, PRINT, TRUE, FALSE, EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}

func TestNextToken_Positions(t *testing.T) {
	l := New("x\ny")
	first := l.NextToken()
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Fatalf("got pos %v, want 1:1", first.Pos)
	}
	second := l.NextToken()
	if second.Pos.Line != 2 || second.Pos.Column != 1 {
		t.Fatalf("got pos %v, want 2:1", second.Pos)
	}
}

func TestNextToken_Unicode(t *testing.T) {
	l := New(`"π" + x`)
	str := l.NextToken()
	if str.Type != STRING || str.Literal != "π" {
		t.Fatalf("got %v", str)
	}
}
