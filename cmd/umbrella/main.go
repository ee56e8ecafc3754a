package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/umbrella/driver"
)

const version = "umbrella 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run holds the CLI logic separately from main so testscript's
// RunMain can invoke it in-process as a simulated subprocess.
func run(args []string) int {
	set := flag.NewFlagSet("umbrella", flag.ContinueOnError)
	var (
		output   = set.String("o", "a.out", "output path")
		emitCpp  = set.Bool("emit-cpp", false, "print emitted source, skip backend invocation")
		verbose  = set.Bool("verbose", false, "print diagnostics as compilation proceeds")
		runBin   = set.Bool("run", true, "execute the produced binary")
		noRun    = set.Bool("no-run", false, "do not execute the produced binary")
		showVers = set.Bool("version", false, "print version and exit")
	)
	// Options may follow the input path, so parsing resumes after each
	// positional argument.
	var positional []string
	for rest := args; ; {
		if err := set.Parse(rest); err != nil {
			return 1
		}
		rest = set.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}
	if *noRun {
		*runBin = false
	}

	if *showVers {
		fmt.Println(version)
		return 0
	}

	input := ""
	if len(positional) > 0 {
		input = positional[0]
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "usage: umbrella <input-path> [options]")
		return 1
	}

	cacheDir := driver.DefaultCacheDir()
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return driver.Run(input, driver.Options{
		Output:   *output,
		EmitOnly: *emitCpp,
		Verbose:  *verbose,
		Run:      *runBin,
		CacheDir: cacheDir,
	})
}
