package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loxvm/lox/lang/scanner"
	"github.com/loxvm/lox/lang/token"
)

func scanAll(src string) []token.Token {
	s := scanner.New([]byte(src))
	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll("(){};,.-+*/ ! != = == < <= > >=")
	want := []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.SEMICOLON,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.STAR, token.SLASH,
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
		token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		require.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"and", token.AND},
		{"class", token.CLASS},
		{"else", token.ELSE},
		{"false", token.FALSE},
		{"for", token.FOR},
		{"fun", token.FUN},
		{"if", token.IF},
		{"nil", token.NIL},
		{"or", token.OR},
		{"print", token.PRINT},
		{"return", token.RETURN},
		{"super", token.SUPER},
		{"this", token.THIS},
		{"true", token.TRUE},
		{"var", token.VAR},
		{"while", token.WHILE},
		{"x", token.IDENTIFIER},
		{"_hidden", token.IDENTIFIER},
		{"and2", token.IDENTIFIER},
		{"classify", token.IDENTIFIER},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks := scanAll(c.src)
			require.Equal(t, c.kind, toks[0].Kind)
			require.Equal(t, c.src, toks[0].Lexeme)
		})
	}
}

func TestScanNumbers(t *testing.T) {
	cases := []string{"0", "123", "3.14", "0.5"}
	for _, c := range cases {
		toks := scanAll(c)
		require.Equal(t, token.NUMBER, toks[0].Kind)
		require.Equal(t, c, toks[0].Lexeme)
	}
}

func TestScanString(t *testing.T) {
	toks := scanAll(`"hello, world"`)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, `"hello, world"`, toks[0].Lexeme)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(`"unterminated`)
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.Equal(t, "Unterminated string.", toks[0].Lexeme)
}

func TestScanMultilineStringAdvancesLine(t *testing.T) {
	toks := scanAll("\"line1\nline2\"\nfun")
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, token.FUN, toks[1].Kind)
	require.Equal(t, 3, toks[1].Line)
}

func TestScanSkipsLineComments(t *testing.T) {
	toks := scanAll("// a comment\nvar")
	require.Equal(t, token.VAR, toks[0].Kind)
	require.Equal(t, 2, toks[0].Line)
}

func TestScanIllegalCharacter(t *testing.T) {
	toks := scanAll("@")
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.Equal(t, "Unexpected character.", toks[0].Lexeme)
}

func TestScanEOFIsSticky(t *testing.T) {
	s := scanner.New([]byte(""))
	require.Equal(t, token.EOF, s.Scan().Kind)
	require.Equal(t, token.EOF, s.Scan().Kind)
}
