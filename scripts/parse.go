//go:build ignore

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/umbrella/parser"
)

func main() {
	flag.Parse()
	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	prog, errs := parser.Parse(string(src))
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	enc.Encode(prog)

	if len(errs) > 0 {
		os.Exit(1)
	}
}
