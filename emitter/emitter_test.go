package emitter

import (
	"strings"
	"testing"

	"github.com/midbel/umbrella/parser"
)

func emitSource(t *testing.T, src string) string {
	t.Helper()
	prog, errs := parser.Parse(src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	out, err := Emit(prog)
	if err != nil {
		t.Fatalf("unexpected emit error for %q: %v", src, err)
	}
	return out
}

func TestEmitArithmeticDeclaration(t *testing.T) {
	out := emitSource(t, "let x: number = 1 + 2 * 3;")
	if !strings.Contains(out, "double x = (1 + (2 * 3));") {
		t.Fatalf("expected arithmetic declaration, got:\n%s", out)
	}
}

func TestEmitStringConcatDetection(t *testing.T) {
	out := emitSource(t, `"a" + 1;`)
	if !strings.Contains(out, `(std::string("a") + 1)`) {
		t.Fatalf("expected string concatenation, got:\n%s", out)
	}
}

func TestEmitPreambleIncludesRuntimeHeaders(t *testing.T) {
	out := emitSource(t, "let x: number = 1;")
	for _, want := range []string{
		`#include "runtime/runtime.h"`,
		`#include "runtime/advanced.h"`,
		"using namespace umbrella::runtime;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected preamble to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Count(out, "using namespace umbrella::runtime;") != 1 {
		t.Fatalf("expected using-namespace directive exactly once, got:\n%s", out)
	}
}

func TestEmitFunctionAndCallPrintsWithoutTrailingNewline(t *testing.T) {
	out := emitSource(t, `function f(n: number): number { return n * n; } print(f(5));`)
	if !strings.Contains(out, "double f(double n) {") {
		t.Fatalf("expected function declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "std::cout << f(5)") {
		t.Fatalf("expected print lowering without std::endl, got:\n%s", out)
	}
	if strings.Contains(out, "std::cout << f(5) << std::endl") {
		t.Fatalf("print must not append std::endl (that is println's job), got:\n%s", out)
	}
}

func TestEmitPrintlnAppendsEndl(t *testing.T) {
	out := emitSource(t, `println("done");`)
	if !strings.Contains(out, "std::cout << std::string(\"done\") << std::endl") {
		t.Fatalf("expected println lowering with std::endl, got:\n%s", out)
	}
}

func TestEmitArrayLength(t *testing.T) {
	out := emitSource(t, "let a = [1,2,3]; println(a.length);")
	if !strings.Contains(out, "a.length()") {
		t.Fatalf("expected length property lowered to a zero-arg call, got:\n%s", out)
	}
}

func TestEmitClassWithConstructorAndMethod(t *testing.T) {
	src := `class Point {
		x: number = 0;
		y: number = 0;
		constructor(a: number, b: number) { this.x = a; this.y = b; }
		dist(): number { return Math.sqrt(this.x*this.x + this.y*this.y); }
	}
	let p = new Point(3,4);
	println(p.dist());`
	out := emitSource(t, src)
	if !strings.Contains(out, "struct Point") {
		t.Fatalf("expected struct Point, got:\n%s", out)
	}
	if !strings.Contains(out, "Math::sqrt") {
		t.Fatalf("expected blessed namespace lowering for Math.sqrt, got:\n%s", out)
	}
	if !strings.Contains(out, "this->x") {
		t.Fatalf("expected this.x lowered to this->x, got:\n%s", out)
	}
}

func TestEmitTryCatchFinallyOrdering(t *testing.T) {
	out := emitSource(t, `try { throw "boom"; } catch (e) { println(e); } finally { println("done"); }`)
	tryIdx := strings.Index(out, "try {")
	catchIdx := strings.Index(out, "catch")
	if tryIdx == -1 || catchIdx == -1 || tryIdx > catchIdx {
		t.Fatalf("expected try block before catch block, got:\n%s", out)
	}
}

func TestEmitBitwiseCoercion(t *testing.T) {
	out := emitSource(t, "let x: number = 5 & 3;")
	if !strings.Contains(out, "(long long)") {
		t.Fatalf("expected bitwise operands coerced to long long, got:\n%s", out)
	}
}

func TestEmitStringMethodDispatch(t *testing.T) {
	out := emitSource(t, `let s: string = "hi"; println(s.toUpperCase());`)
	if !strings.Contains(out, "String::toUpperCase(s)") {
		t.Fatalf("expected string-method dispatch to String::toUpperCase, got:\n%s", out)
	}
}

func TestEmitLooseStatementsAlongsideMainIsError(t *testing.T) {
	prog, errs := parser.Parse(`function main(): void { println("hi"); } println("loose");`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	_, err := Emit(prog)
	if err == nil {
		t.Fatal("expected an EmitError for loose statements alongside a user main")
	}
	if _, ok := err.(*EmitError); !ok {
		t.Fatalf("expected *EmitError, got %T", err)
	}
}

func TestEmitSynthesizedMainWrapsLooseStatements(t *testing.T) {
	out := emitSource(t, `println("hi");`)
	if !strings.Contains(out, "int main() {") {
		t.Fatalf("expected a synthesized main, got:\n%s", out)
	}
	if !strings.Contains(out, "return 0;") {
		t.Fatalf("expected synthesized main to return 0, got:\n%s", out)
	}
}

func TestEmitDeterministic(t *testing.T) {
	src := `let x: number = 1 + 2 * 3; println(x);`
	first := emitSource(t, src)
	second := emitSource(t, src)
	if first != second {
		t.Fatalf("expected byte-identical output across runs:\n%s\n---\n%s", first, second)
	}
}

func TestEmitMapLiteralInfersValueTypeFromFirstValue(t *testing.T) {
	out := emitSource(t, `let m = {"a": 1, "b": 2};`)
	if !strings.Contains(out, "Map<std::string, double>") {
		t.Fatalf("expected map value type inferred as double, got:\n%s", out)
	}
}

func TestEmitSanitizesReservedWordIdentifier(t *testing.T) {
	out := emitSource(t, "let namespace: number = 1;")
	if !strings.Contains(out, "namespace_") {
		t.Fatalf("expected trailing-underscore-on-reserved-word sanitization, got:\n%s", out)
	}
}
