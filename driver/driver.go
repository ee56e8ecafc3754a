// Package driver orchestrates the full compile pipeline —
// lex/parse via parser.Parse, emit via emitter.Emit, consult and
// populate the per-user cache, materialize the runtime sources, and
// invoke the backend compiler (spec.md §6).
package driver

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/midbel/umbrella/cache"
	"github.com/midbel/umbrella/emitter"
	"github.com/midbel/umbrella/parser"
	"github.com/midbel/umbrella/runtime"
)

// Options mirrors the CLI surface spec.md §6 specifies for the driver.
type Options struct {
	Output   string
	EmitOnly bool
	Verbose  bool
	Run      bool
	CacheDir string
	Compiler string
	Stderr   io.Writer
	Stdout   io.Writer
}

// DefaultCacheDir returns $HOME/.umbrella/cache, the location spec.md
// §6 names for the per-user compile cache.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".umbrella", "cache")
}

func (o *Options) logf(format string, args ...any) {
	if o.Verbose {
		fmt.Fprintf(o.Stderr, format+"\n", args...)
	}
}

// Run executes the pipeline for the source file at inputPath and
// returns the process exit code to use (spec.md §6: 0 on success, 1
// on any lexing/parsing/emission/backend-compile failure).
func Run(inputPath string, opts Options) int {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintln(opts.Stderr, err)
		return 1
	}

	store, err := cache.Open(filepath.Join(opts.CacheDir, "umbrella.db"))
	if err != nil {
		fmt.Fprintln(opts.Stderr, err)
		return 1
	}
	defer store.Close()

	key := cache.Hash(source)
	emitted, err := store.GetSource(key)
	if err == nil {
		opts.logf("cache hit for %s", inputPath)
	} else {
		opts.logf("cache miss for %s, compiling", inputPath)
		emitted, err = compile(string(source), opts)
		if err != nil {
			fmt.Fprintln(opts.Stderr, err)
			return 1
		}
		if err := store.PutSource(key, emitted); err != nil {
			opts.logf("warning: failed to populate cache: %v", err)
		}
	}

	if opts.EmitOnly {
		fmt.Fprint(opts.Stdout, string(emitted))
		return 0
	}

	return build(emitted, key, store, opts)
}

// compile lexes, parses, and emits source, surfacing every collected
// parse error rather than stopping at the first (spec.md §7).
func compile(source string, opts Options) ([]byte, error) {
	prog, errs := parser.Parse(source)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(opts.Stderr, e)
		}
		return nil, fmt.Errorf("%d parse error(s)", len(errs))
	}
	out, err := emitter.Emit(prog)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// build resolves the output path, skips straight to running the
// binary on a binary-cache hit, and otherwise writes emitted source
// and the embedded runtime to a scratch directory, invokes the
// backend compiler, and populates the binary cache before running.
func build(emitted []byte, key string, store *cache.Store, opts Options) int {
	output := opts.Output
	if output == "" {
		output = "a.out"
	}
	outAbs, err := filepath.Abs(output)
	if err != nil {
		fmt.Fprintln(opts.Stderr, err)
		return 1
	}

	if cached, err := store.GetBinary(key); err == nil {
		cachedPath := string(cached)
		if _, statErr := os.Stat(cachedPath); statErr == nil {
			opts.logf("binary cache hit for %s, skipping backend compiler", cachedPath)
			if cachedPath != outAbs {
				if err := copyFile(cachedPath, outAbs); err != nil {
					fmt.Fprintln(opts.Stderr, err)
					return 1
				}
			}
			return runBinary(outAbs, opts)
		}
		opts.logf("binary cache entry for %s is stale, recompiling", cachedPath)
	}

	workdir, err := os.MkdirTemp("", "umbrella-build-*")
	if err != nil {
		fmt.Fprintln(opts.Stderr, err)
		return 1
	}
	defer os.RemoveAll(workdir)

	srcPath := filepath.Join(workdir, "main.cpp")
	if err := os.WriteFile(srcPath, emitted, 0o644); err != nil {
		fmt.Fprintln(opts.Stderr, err)
		return 1
	}
	if err := runtime.WriteTo(workdir); err != nil {
		fmt.Fprintln(opts.Stderr, err)
		return 1
	}

	compiler := opts.Compiler
	if compiler == "" {
		compiler = "c++"
	}
	args := []string{"-std=c++20", "-I", workdir, srcPath, filepath.Join(workdir, "runtime", "runtime.cpp"), "-o", outAbs}
	opts.logf("running %s %v", compiler, args)
	cmd := exec.Command(compiler, args...)
	cmd.Dir = workdir
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(opts.Stderr, err)
		return 1
	}

	if err := store.PutBinary(key, []byte(outAbs)); err != nil {
		opts.logf("warning: failed to cache binary path: %v", err)
	}

	return runBinary(outAbs, opts)
}

func runBinary(outAbs string, opts Options) int {
	if !opts.Run {
		return 0
	}
	run := exec.Command(outAbs)
	run.Stdout = opts.Stdout
	run.Stderr = opts.Stderr
	run.Stdin = os.Stdin
	// The spawned program's own exit code is not propagated
	// (spec.md §6); only I/O/launch failures are.
	if err := run.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			fmt.Fprintln(opts.Stderr, err)
			return 1
		}
	}
	return 0
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o755)
}
