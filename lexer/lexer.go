// Package lexer turns Umbrella source text into a token.Token stream.
//
// The scanning mechanics (a cursor tracking line/column, read/peek/skip
// helpers, and a save/restore pair for backtracking) are grounded on the
// teacher's own scanner cursor, generalized to Umbrella's token set.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/midbel/umbrella/token"
)

type cursor struct {
	char rune
	curr int
	next int
	token.Position
}

// Lexer scans a fixed input buffer into tokens. It never aborts: a byte
// matching no production produces a token.Invalid token and scanning
// continues, leaving recovery to the parser (spec.md §4.1, §7).
type Lexer struct {
	input []byte
	cursor
	saved cursor
}

// New creates a Lexer over src. The first rune is already read, ready
// for the first call to Scan.
func New(src string) *Lexer {
	l := &Lexer{input: []byte(src)}
	l.cursor.Line = 1
	l.read()
	return l
}

// Mark captures the current scan position so it can later be restored
// with Reset. This backs the parser's speculative arrow-function
// lookahead (spec.md §4.2).
func (l *Lexer) Mark() {
	l.saved = l.cursor
}

// Reset rewinds the Lexer to the position last captured by Mark.
func (l *Lexer) Reset() {
	l.cursor = l.saved
}

// Scan returns the next token, ending the stream with a token.EOF.
func (l *Lexer) Scan() token.Token {
	l.skipTrivia()

	var tok token.Token
	tok.Position = l.cursor.Position

	if l.done() {
		tok.Kind = token.EOF
		return tok
	}

	switch {
	case isDigit(l.char):
		return l.scanNumber(tok)
	case isQuote(l.char):
		return l.scanString(tok)
	case isLetter(l.char):
		return l.scanIdent(tok)
	default:
		return l.scanOperator(tok)
	}
}

func (l *Lexer) skipTrivia() {
	for {
		for isBlank(l.char) {
			l.read()
		}
		if l.char == '/' && l.peek() == '/' {
			for !l.done() && l.char != '\n' {
				l.read()
			}
			continue
		}
		break
	}
}

func (l *Lexer) scanNumber(tok token.Token) token.Token {
	start := l.curr
	seenDot := false
	for isDigit(l.char) || (l.char == '.' && !seenDot) {
		if l.char == '.' {
			seenDot = true
		}
		l.read()
	}
	tok.Kind = token.Number
	tok.Literal = string(l.input[start:l.curr])
	return tok
}

func (l *Lexer) scanString(tok token.Token) token.Token {
	quote := l.char
	l.read()
	var sb strings.Builder
	for !l.done() && l.char != quote {
		if l.char == '\\' {
			l.read()
			sb.WriteRune(unescape(l.char))
			l.read()
			continue
		}
		sb.WriteRune(l.char)
		l.read()
	}
	tok.Kind = token.String
	tok.Literal = sb.String()
	if l.char == quote {
		l.read()
	}
	// Unterminated strings deliberately fall through without setting
	// Invalid: the lexer hands back whatever content it saw and lets a
	// higher layer decide whether that is an error (spec.md §4.1).
	return tok
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '\\':
		return '\\'
	case '"':
		return '"'
	case '\'':
		return '\''
	default:
		return r
	}
}

func (l *Lexer) scanIdent(tok token.Token) token.Token {
	start := l.curr
	for isAlnum(l.char) {
		l.read()
	}
	lit := string(l.input[start:l.curr])
	tok.Literal = lit
	if kind, ok := token.Keywords[lit]; ok {
		tok.Kind = kind
	} else {
		tok.Kind = token.Ident
	}
	return tok
}

// tie-break order: longest lexeme wins (spec.md §4.1 and §8 property 3).
type op struct {
	lexeme string
	kind   token.Kind
}

var multiByteOps = []op{
	{"...", token.Spread},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"==", token.Eq},
	{"!=", token.Ne},
	{"<=", token.Le},
	{">=", token.Ge},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"++", token.Incr},
	{"--", token.Decr},
	{"+=", token.PlusEq},
	{"-=", token.MinusEq},
	{"*=", token.StarEq},
	{"/=", token.SlashEq},
	{"%=", token.PercentEq},
	{"&=", token.AmpEq},
	{"|=", token.PipeEq},
	{"^=", token.CaretEq},
	{"=>", token.Arrow},
	{"??", token.Nullish},
	{"?.", token.OptChain},
}

var singleByteOps = map[rune]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'!': token.Not,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'?': token.Question,
	'(': token.Lparen,
	')': token.Rparen,
	'{': token.Lbrace,
	'}': token.Rbrace,
	'[': token.Lbracket,
	']': token.Rbracket,
	',': token.Comma,
	';': token.Semicolon,
	'.': token.Dot,
	':': token.Colon,
}

func (l *Lexer) scanOperator(tok token.Token) token.Token {
	rest := l.input[l.curr:]
	for _, candidate := range multiByteOps {
		if strings.HasPrefix(string(rest), candidate.lexeme) {
			tok.Kind = candidate.kind
			tok.Literal = candidate.lexeme
			for range candidate.lexeme {
				l.read()
			}
			return tok
		}
	}
	if kind, ok := singleByteOps[l.char]; ok {
		tok.Kind = kind
		tok.Literal = string(l.char)
		l.read()
		return tok
	}
	tok.Kind = token.Invalid
	tok.Literal = string(l.char)
	l.read()
	return tok
}

func (l *Lexer) done() bool {
	return l.char == utf8.RuneError
}

func (l *Lexer) read() {
	if l.curr >= len(l.input) {
		l.char = utf8.RuneError
		l.curr = len(l.input)
		return
	}
	r, n := utf8.DecodeRune(l.input[l.next:])
	if r == utf8.RuneError {
		l.char = r
		l.curr = len(l.input)
		l.next = len(l.input)
		return
	}
	if l.char == '\n' {
		l.cursor.Line++
		l.cursor.Column = 0
	}
	l.cursor.Column++
	l.char, l.curr, l.next = r, l.next, l.next+n
}

func (l *Lexer) peek() rune {
	if l.next >= len(l.input) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRune(l.input[l.next:])
	return r
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlnum(r rune) bool { return isLetter(r) || isDigit(r) }

func isQuote(r rune) bool { return r == '"' || r == '\'' }

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
