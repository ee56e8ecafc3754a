package token

import "testing"

func TestKeywordsMapToReservedKinds(t *testing.T) {
	tests := map[string]Kind{
		"let":         Let,
		"class":       Class,
		"constructor": Constructor,
		"extends":     Extends,
		"Array":       TypeArray,
	}
	for lexeme, want := range tests {
		got, ok := Keywords[lexeme]
		if !ok {
			t.Fatalf("expected %q to be a keyword", lexeme)
		}
		if got != want {
			t.Fatalf("expected %q to map to %v, got %v", lexeme, want, got)
		}
	}
}

func TestIsAssignOp(t *testing.T) {
	assignOps := []Kind{Assign, PlusEq, MinusEq, StarEq, SlashEq, PercentEq, AmpEq, PipeEq, CaretEq}
	for _, k := range assignOps {
		if !k.IsAssignOp() {
			t.Fatalf("expected %v to be an assignment operator", k)
		}
	}
	if Plus.IsAssignOp() {
		t.Fatal("expected Plus to not be an assignment operator")
	}
}

func TestKindStringSpellsOperatorLexeme(t *testing.T) {
	tests := map[Kind]string{
		Plus:   "+",
		AndAnd: "&&",
		PlusEq: "+=",
		Shr:    ">>",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Fatalf("expected %v to spell %q, got %q", k, want, got)
		}
	}
}

func TestTokenStringFormatsKindAndLiteral(t *testing.T) {
	tok := Token{Kind: Ident, Literal: "foo"}
	if got, want := tok.String(), "identifier(foo)"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
