//go:build ignore

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/umbrella/emitter"
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

	out, err := emitter.Emit(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(out)

	if len(errs) > 0 {
		os.Exit(1)
	}
}
