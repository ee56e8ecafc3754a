package typesys

import "testing"

func TestTagStringSpellsBackendFacingName(t *testing.T) {
	tests := map[Tag]string{
		Number:  "number",
		String:  "string",
		Boolean: "boolean",
		Void:    "void",
		Function: "function",
		Array:   "Array",
		Class:   "class",
		Any:     "any",
	}
	for tag, want := range tests {
		if got := tag.String(); got != want {
			t.Fatalf("expected %v to spell %q, got %q", tag, want, got)
		}
	}
}

func TestBackendMapsTagToDefaultSpelling(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Type{Tag: Number}, "double"},
		{Type{Tag: String}, "std::string"},
		{Type{Tag: Boolean}, "bool"},
		{Type{Tag: Void}, "void"},
		{Type{Tag: Any}, "auto"},
		{Type{Tag: Class, Class: "Point"}, "Point"},
	}
	for _, tt := range tests {
		if got := tt.typ.Backend(); got != tt.want {
			t.Fatalf("expected %#v to back to %q, got %q", tt.typ, tt.want, got)
		}
	}
}

func TestBackendRawTakesPrecedenceOverTag(t *testing.T) {
	typ := Type{Tag: Number, Raw: "Array<Array<number>>"}
	if got, want := typ.Backend(), "Array<Array<number>>"; got != want {
		t.Fatalf("expected Raw to win over Tag mapping, got %q want %q", got, want)
	}
}

func TestScopeEnclosedResolvesThroughParent(t *testing.T) {
	root := NewScope()
	root.Define("x", Type{Tag: Number})

	child := Enclosed(root)
	got, err := child.Resolve("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tag != Number {
		t.Fatalf("expected Number, got %v", got.Tag)
	}
}

func TestScopeResolveMissingIsError(t *testing.T) {
	root := NewScope()
	if _, err := root.Resolve("undeclared"); err == nil {
		t.Fatal("expected an error for an undeclared identifier")
	}
}
