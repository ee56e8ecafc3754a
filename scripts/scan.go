//go:build ignore

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/umbrella/lexer"
	"github.com/midbel/umbrella/token"
)

func main() {
	flag.Parse()
	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lex := lexer.New(string(src))
	for {
		tok := lex.Scan()
		fmt.Println(tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}
}
