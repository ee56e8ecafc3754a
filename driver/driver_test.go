package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/midbel/umbrella/cache"
)

func writeSource(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.umb")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestRunEmitOnly(t *testing.T) {
	input := writeSource(t, `let x: number = 1 + 2 * 3;`)
	var out, errOut bytes.Buffer
	code := Run(input, Options{
		EmitOnly: true,
		CacheDir: t.TempDir(),
		Stdout:   &out,
		Stderr:   &errOut,
	})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "double x") {
		t.Fatalf("expected emitted source to declare x, got: %s", out.String())
	}
}

func TestRunEmitOnlyParseError(t *testing.T) {
	input := writeSource(t, `let x: number = ;`)
	var out, errOut bytes.Buffer
	code := Run(input, Options{
		EmitOnly: true,
		CacheDir: t.TempDir(),
		Stdout:   &out,
		Stderr:   &errOut,
	})
	if code != 1 {
		t.Fatalf("expected exit code 1 on parse error, got %d", code)
	}
	if errOut.Len() == 0 {
		t.Fatal("expected diagnostics on stderr")
	}
}

func TestRunPopulatesCacheOnSecondRun(t *testing.T) {
	input := writeSource(t, `let x: number = 1;`)
	cacheDir := t.TempDir()

	var out1 bytes.Buffer
	code := Run(input, Options{EmitOnly: true, CacheDir: cacheDir, Stdout: &out1, Stderr: &bytes.Buffer{}})
	if code != 0 {
		t.Fatalf("expected exit code 0 on first run, got %d", code)
	}

	var out2, errOut2 bytes.Buffer
	code = Run(input, Options{EmitOnly: true, CacheDir: cacheDir, Verbose: true, Stdout: &out2, Stderr: &errOut2})
	if code != 0 {
		t.Fatalf("expected exit code 0 on second run, got %d", code)
	}
	if out1.String() != out2.String() {
		t.Fatalf("expected identical emitted output across runs, got %q and %q", out1.String(), out2.String())
	}
	if !strings.Contains(errOut2.String(), "cache hit") {
		t.Fatalf("expected verbose cache hit message, got: %s", errOut2.String())
	}
}

func TestBuildSkipsBackendCompilerOnBinaryCacheHit(t *testing.T) {
	store, err := cache.Open(filepath.Join(t.TempDir(), "umbrella.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	key := cache.Hash([]byte("let x: number = 1;"))

	cachedBin := filepath.Join(t.TempDir(), "cached")
	if err := os.WriteFile(cachedBin, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.PutBinary(key, []byte(cachedBin)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out")
	var errOut bytes.Buffer
	code := build([]byte("int main(){}"), key, store, Options{
		Output:  outPath,
		Verbose: true,
		Stderr:  &errOut,
		Stdout:  &bytes.Buffer{},
	})
	if code != 0 {
		t.Fatalf("expected exit code 0 from a binary cache hit (no backend compiler on PATH in this environment), got %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(errOut.String(), "binary cache hit") {
		t.Fatalf("expected a verbose binary-cache-hit log line, got: %s", errOut.String())
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected the cached binary copied to the requested output path: %v", err)
	}
}

func TestRunMissingInputFile(t *testing.T) {
	var errOut bytes.Buffer
	code := Run(filepath.Join(t.TempDir(), "missing.umb"), Options{
		EmitOnly: true,
		CacheDir: t.TempDir(),
		Stdout:   &bytes.Buffer{},
		Stderr:   &errOut,
	})
	if code != 1 {
		t.Fatalf("expected exit code 1 for missing file, got %d", code)
	}
}
