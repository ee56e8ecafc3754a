package lexer

import (
	"testing"

	"github.com/midbel/umbrella/token"
)

func scanAll(src string) []token.Token {
	lex := New(src)
	var out []token.Token
	for {
		tok := lex.Scan()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

func TestLexerTotalityEndsWithEOF(t *testing.T) {
	toks := scanAll("let x = 1;")
	last := toks[len(toks)-1]
	if last.Kind != token.EOF {
		t.Fatalf("expected stream to end with EOF, got %v", last.Kind)
	}
}

func TestKeywordPriorityOverIdentifier(t *testing.T) {
	toks := scanAll("let")
	if toks[0].Kind != token.Let {
		t.Fatalf("expected 'let' to lex as the Let keyword, got %v", toks[0].Kind)
	}
}

func TestLongestMatchWins(t *testing.T) {
	toks := scanAll("==")
	if len(toks) < 1 || toks[0].Kind != token.Eq {
		t.Fatalf("expected a single Eq token, got %v", toks[0])
	}
	if toks[0].Literal != "==" {
		t.Fatalf("expected == to lex as one token, got %q", toks[0].Literal)
	}
}

func TestShiftOperatorsDoNotSplit(t *testing.T) {
	toks := scanAll("a >> b << c")
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.Ident, token.Shr, token.Ident, token.Shl, token.Ident, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, kinds)
		}
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := scanAll(`"a\nb"`)
	if toks[0].Kind != token.String || toks[0].Literal != "a\nb" {
		t.Fatalf("expected unescaped newline in string literal, got %q", toks[0].Literal)
	}
}

func TestNumberLiteral(t *testing.T) {
	toks := scanAll("3.14")
	if toks[0].Kind != token.Number || toks[0].Literal != "3.14" {
		t.Fatalf("expected number literal 3.14, got %v %q", toks[0].Kind, toks[0].Literal)
	}
}

func TestArrowToken(t *testing.T) {
	toks := scanAll("x => x")
	if toks[1].Kind != token.Arrow {
		t.Fatalf("expected Arrow token, got %v", toks[1].Kind)
	}
}

func TestInvalidByteProducesInvalidTokenAndContinues(t *testing.T) {
	toks := scanAll("let x = 1 @ 2;")
	var sawInvalid bool
	for _, tok := range toks {
		if tok.Kind == token.Invalid {
			sawInvalid = true
		}
	}
	if !sawInvalid {
		t.Fatal("expected an Invalid token for '@'")
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatal("expected scanning to continue to EOF after an invalid byte")
	}
}

func TestMarkAndReset(t *testing.T) {
	lex := New("a b c")
	first := lex.Scan()
	lex.Mark()
	second := lex.Scan()
	lex.Reset()
	third := lex.Scan()
	if first.Literal != "a" || second.Literal != "b" || third.Literal != "b" {
		t.Fatalf("expected Reset to rewind to the marked position, got %q %q %q",
			first.Literal, second.Literal, third.Literal)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := scanAll("let\nx = 1;")
	var ident token.Token
	for _, tok := range toks {
		if tok.Kind == token.Ident {
			ident = tok
			break
		}
	}
	if ident.Line != 2 {
		t.Fatalf("expected identifier on line 2, got line %d", ident.Line)
	}
}
