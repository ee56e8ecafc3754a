// Package parser implements the Umbrella recursive-descent / Pratt
// parser (spec.md §4.2), grounded on the teacher's play.Parser
// (prefix/infix function tables keyed by token kind and bound by a
// precedence table), generalized to Umbrella's exact grammar and
// AST shape.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/umbrella/ast"
	"github.com/midbel/umbrella/lexer"
	"github.com/midbel/umbrella/token"
	"github.com/midbel/umbrella/typesys"
)

// ParseError is raised by consume(expected) and reports the offending
// token's position (spec.md §7).
type ParseError struct {
	Msg string
	token.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// precedence, lowest to highest (spec.md §4.2).
const (
	precLowest = iota
	precAssign
	precTernary
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEq
	precCmp
	precShift
	precAdd
	precMul
	precUnary
	precPostfix
)

var binding = map[token.Kind]int{
	token.Assign:    precAssign,
	token.PlusEq:    precAssign,
	token.MinusEq:   precAssign,
	token.StarEq:    precAssign,
	token.SlashEq:   precAssign,
	token.PercentEq: precAssign,
	token.AmpEq:     precAssign,
	token.PipeEq:    precAssign,
	token.CaretEq:   precAssign,
	token.Question:  precTernary,
	token.OrOr:      precOr,
	token.AndAnd:    precAnd,
	token.Pipe:      precBitOr,
	token.Caret:     precBitXor,
	token.Amp:       precBitAnd,
	token.Eq:        precEq,
	token.Ne:        precEq,
	token.Lt:        precCmp,
	token.Le:        precCmp,
	token.Gt:        precCmp,
	token.Ge:        precCmp,
	token.Shl:       precShift,
	token.Shr:       precShift,
	token.Plus:      precAdd,
	token.Minus:     precAdd,
	token.Star:      precMul,
	token.Slash:     precMul,
	token.Percent:   precMul,
	token.Lparen:    precPostfix,
	token.Dot:       precPostfix,
	token.Lbracket:  precPostfix,
}

// rightAssoc holds operator kinds that associate right-to-left:
// assignment and the ternary (spec.md §4.2, §8 property 4).
var rightAssoc = map[token.Kind]bool{
	token.Question: true,
}

func init() {
	for k := range binding {
		if k.IsAssignOp() {
			rightAssoc[k] = true
		}
	}
}

// Parser produces an *ast.Program from a token stream. It never
// aborts on a malformed statement: consume(expected) returns a
// *ParseError, the top-level loop records it and resynchronizes by
// discarding tokens up to and including the next ';' (spec.md §4.2,
// §7).
type Parser struct {
	lex  *lexer.Lexer
	curr token.Token
	peek token.Token

	markCurr, markPeek token.Token
}

// New creates a Parser over src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.lex.Scan()
}

// mark/restore back the parser's speculative arrow-function lookahead
// with the lexer's own cursor save/restore (spec.md §4.2).
func (p *Parser) mark() {
	p.lex.Mark()
	p.markCurr, p.markPeek = p.curr, p.peek
}

func (p *Parser) restore() {
	p.lex.Reset()
	p.curr, p.peek = p.markCurr, p.markPeek
}

func (p *Parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Position: p.curr.Position}
}

func (p *Parser) consume(kind token.Kind, what string) (token.Token, error) {
	if p.curr.Kind != kind {
		return token.Token{}, p.errorf("expected %s, found %s", what, p.curr)
	}
	tok := p.curr
	p.next()
	return tok, nil
}

// Parse consumes the whole token stream and returns the Program built
// from whatever statements parsed cleanly, plus every ParseError
// collected along the way (spec.md §7: "a single parse error prevents
// a clean AST from reaching the emitter" is deliberately not true here
// — emission still runs over the partial tree).
func Parse(src string) (*ast.Program, []error) {
	p := New(src)
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, []error) {
	var (
		prog ast.Program
		errs []error
	)
	for p.curr.Kind != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			errs = append(errs, err)
			p.resync()
			continue
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return &prog, errs
}

func (p *Parser) resync() {
	for p.curr.Kind != token.Semicolon && p.curr.Kind != token.EOF {
		p.next()
	}
	if p.curr.Kind == token.Semicolon {
		p.next()
	}
}

// ---- statements ----

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.curr.Kind {
	case token.Let, token.Const:
		return p.parseVarDecl()
	case token.Function:
		return p.parseFuncDecl()
	case token.Class:
		return p.parseClassDecl()
	case token.Return:
		return p.parseReturn()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.For:
		return p.parseFor()
	case token.Try:
		return p.parseTry()
	case token.Throw:
		return p.parseThrow()
	case token.Lbrace:
		return p.parseBlock()
	case token.Import, token.Export, token.From, token.Async, token.Await:
		return nil, p.errorf("%s: not supported", p.curr)
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarDecl() (ast.Stmt, error) {
	pos := p.curr.Position
	isConst := p.curr.Kind == token.Const
	p.next()

	name, err := p.consume(token.Ident, "identifier")
	if err != nil {
		return nil, err
	}

	var typ ast.TypeAnnotation
	if p.curr.Kind == token.Colon {
		p.next()
		typ, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}

	var init ast.Expr
	if p.curr.Kind == token.Assign {
		p.next()
		init, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{
		Name:        name.Literal,
		VarType:     typ,
		Initializer: init,
		IsConst:     isConst,
		Position:    pos,
	}, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.consume(token.Lparen, "("); err != nil {
		return nil, err
	}
	var params []ast.Param
	for p.curr.Kind != token.Rparen {
		if len(params) > 0 {
			if _, err := p.consume(token.Comma, ","); err != nil {
				return nil, err
			}
		}
		name, err := p.consume(token.Ident, "parameter name")
		if err != nil {
			return nil, err
		}
		param := ast.Param{Name: name.Literal}
		if p.curr.Kind == token.Colon {
			p.next()
			param.Type, err = p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, param)
	}
	if _, err := p.consume(token.Rparen, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFuncDecl() (ast.Stmt, error) {
	pos := p.curr.Position
	p.next()
	name, err := p.consume(token.Ident, "function name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var ret ast.TypeAnnotation
	if p.curr.Kind == token.Colon {
		p.next()
		ret, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{
		Name:       name.Literal,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		Position:   pos,
	}, nil
}

func (p *Parser) parseClassDecl() (ast.Stmt, error) {
	pos := p.curr.Position
	p.next()
	name, err := p.consume(token.Ident, "class name")
	if err != nil {
		return nil, err
	}
	decl := &ast.ClassDeclaration{Name: name.Literal, Position: pos}
	if p.curr.Kind == token.Extends {
		p.next()
		super, err := p.consume(token.Ident, "superclass name")
		if err != nil {
			return nil, err
		}
		decl.Superclass = super.Literal
	}
	if _, err := p.consume(token.Lbrace, "{"); err != nil {
		return nil, err
	}
	for p.curr.Kind != token.Rbrace {
		if p.curr.Kind == token.Constructor {
			if decl.Ctor != nil {
				return nil, p.errorf("duplicate constructor")
			}
			ctor, err := p.parseConstructor()
			if err != nil {
				return nil, err
			}
			decl.Ctor = ctor
			continue
		}
		memberName, err := p.consume(token.Ident, "member name")
		if err != nil {
			return nil, err
		}
		if p.curr.Kind == token.Lparen {
			method, err := p.parseMethodBody(memberName.Literal)
			if err != nil {
				return nil, err
			}
			decl.Methods = append(decl.Methods, *method)
			continue
		}
		field := ast.Field{Name: memberName.Literal}
		if p.curr.Kind == token.Colon {
			p.next()
			field.Type, err = p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
		}
		if p.curr.Kind == token.Assign {
			p.next()
			field.Init, err = p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.consume(token.Semicolon, ";"); err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, field)
	}
	if _, err := p.consume(token.Rbrace, "}"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseConstructor() (*ast.ConstructorDecl, error) {
	p.next()
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.ConstructorDecl{Params: params, Body: body}, nil
}

func (p *Parser) parseMethodBody(name string) (*ast.MethodDecl, error) {
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var ret ast.TypeAnnotation
	if p.curr.Kind == token.Colon {
		p.next()
		ret, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.MethodDecl{Name: name, Params: params, ReturnType: ret, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	pos := p.curr.Position
	p.next()
	var value ast.Expr
	if p.curr.Kind != token.Semicolon {
		var err error
		value, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Value: value, Position: pos}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	pos := p.curr.Position
	p.next()
	if _, err := p.consume(token.Lparen, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Rparen, ")"); err != nil {
		return nil, err
	}
	then, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Cond: cond, ThenBranch: then, Position: pos}
	if p.curr.Kind == token.Else {
		p.next()
		if p.curr.Kind == token.If {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.ElseBranch = []ast.Stmt{elseIf}
		} else {
			stmt.ElseBranch, err = p.parseBlockBody()
			if err != nil {
				return nil, err
			}
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	pos := p.curr.Position
	p.next()
	if _, err := p.consume(token.Lparen, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Rparen, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Cond: cond, Body: body, Position: pos}, nil
}

// ForStatement.Init, if present, is either a VariableDeclaration or an
// ExpressionStatement (spec.md §3 invariant).
func (p *Parser) parseFor() (ast.Stmt, error) {
	pos := p.curr.Position
	p.next()
	if _, err := p.consume(token.Lparen, "("); err != nil {
		return nil, err
	}
	stmt := &ast.ForStatement{Position: pos}
	if p.curr.Kind != token.Semicolon {
		var err error
		if p.curr.Kind == token.Let || p.curr.Kind == token.Const {
			stmt.Init, err = p.parseVarDecl() // consumes trailing ';'
		} else {
			expr, eerr := p.parseExpression(precLowest)
			if eerr != nil {
				return nil, eerr
			}
			if _, serr := p.consume(token.Semicolon, ";"); serr != nil {
				return nil, serr
			}
			stmt.Init = &ast.ExpressionStatement{Expression: expr}
		}
		if err != nil {
			return nil, err
		}
	} else {
		p.next()
	}
	if p.curr.Kind != token.Semicolon {
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if _, err := p.consume(token.Semicolon, ";"); err != nil {
		return nil, err
	}
	if p.curr.Kind != token.Rparen {
		step, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Step = step
	}
	if _, err := p.consume(token.Rparen, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseTry() (ast.Stmt, error) {
	pos := p.curr.Position
	p.next()
	tryBlock, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	stmt := &ast.TryStatement{TryBlock: tryBlock, Position: pos}
	if p.curr.Kind == token.Catch {
		p.next()
		if p.curr.Kind == token.Lparen {
			p.next()
			name, err := p.consume(token.Ident, "catch variable")
			if err != nil {
				return nil, err
			}
			stmt.CatchVar = name.Literal
			if _, err := p.consume(token.Rparen, ")"); err != nil {
				return nil, err
			}
		}
		stmt.CatchBlock, err = p.parseBlockBody()
		if err != nil {
			return nil, err
		}
	}
	if p.curr.Kind == token.Finally {
		p.next()
		stmt.FinallyBlock, err = p.parseBlockBody()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseThrow() (ast.Stmt, error) {
	pos := p.curr.Position
	p.next()
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.ThrowStatement{Expression: expr, Position: pos}, nil
}

func (p *Parser) parseBlock() (ast.Stmt, error) {
	pos := p.curr.Position
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Statements: body, Position: pos}, nil
}

func (p *Parser) parseBlockBody() ([]ast.Stmt, error) {
	if _, err := p.consume(token.Lbrace, "{"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for p.curr.Kind != token.Rbrace {
		if p.curr.Kind == token.EOF {
			return nil, p.errorf("unterminated block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.next()
	return stmts, nil
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	pos := p.curr.Position
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr, Position: pos}, nil
}

// ---- type annotations ----

func (p *Parser) parseTypeExpr() (ast.TypeAnnotation, error) {
	var (
		tag  typesys.Tag
		base string
	)
	switch p.curr.Kind {
	case token.TypeNumber:
		tag = typesys.Number
	case token.TypeString:
		tag = typesys.String
	case token.TypeBoolean:
		tag = typesys.Boolean
	case token.TypeVoid:
		tag = typesys.Void
	case token.TypeArray:
		tag = typesys.Array
		base = "Array"
	case token.Ident:
		tag = typesys.Class
		base = p.curr.Literal
	default:
		return ast.TypeAnnotation{}, p.errorf("expected type annotation, found %s", p.curr)
	}
	p.next()
	if p.curr.Kind == token.Lt {
		raw, err := p.captureGeneric(base)
		if err != nil {
			return ast.TypeAnnotation{}, err
		}
		return ast.TypeAnnotation{Tag: tag, Raw: raw}, nil
	}
	if tag == typesys.Class {
		return ast.TypeAnnotation{Tag: tag, Raw: base}, nil
	}
	return ast.TypeAnnotation{Tag: tag}, nil
}

// captureGeneric captures a generic annotation such as `Array<Thread>`
// or `Map<string,Row>` verbatim as opaque backend-type text (spec.md
// §3). A `>>` token closes two nesting levels at once, the usual
// ambiguity with nested generics and the right-shift operator; no
// input in the language uses a real `>>` inside a type position, so
// this is an acceptable simplification (no full type checker is in
// scope — spec.md §1 Non-goals).
func (p *Parser) captureGeneric(base string) (string, error) {
	var sb strings.Builder
	sb.WriteString(base)
	depth := 0
	for {
		switch p.curr.Kind {
		case token.Lt:
			depth++
			sb.WriteByte('<')
			p.next()
		case token.Gt:
			depth--
			sb.WriteByte('>')
			p.next()
			if depth == 0 {
				return sb.String(), nil
			}
		case token.Shr:
			depth -= 2
			sb.WriteString(">>")
			p.next()
			if depth <= 0 {
				return sb.String(), nil
			}
		case token.Comma:
			sb.WriteString(", ")
			p.next()
		case token.EOF:
			return "", p.errorf("unterminated generic type")
		default:
			sb.WriteString(p.curr.Literal)
			p.next()
		}
	}
}

// ---- expressions: Pratt parser ----

func (p *Parser) parseExpression(minPrec int) (ast.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binding[p.curr.Kind]
		if !ok || prec <= minPrec {
			break
		}
		left, err = p.parseInfix(left, prec)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parsePrefix() (ast.Expr, error) {
	switch p.curr.Kind {
	case token.Minus, token.Not, token.Tilde:
		return p.parseUnary()
	case token.Number:
		return p.parseNumber()
	case token.String:
		return p.parseString()
	case token.True, token.False:
		return p.parseBoolean()
	case token.This, token.Ident:
		return p.parseIdentOrArrow()
	case token.Lparen:
		return p.parseGroupOrArrow()
	case token.Lbracket:
		return p.parseArrayLiteral()
	case token.Lbrace:
		return p.parseMapLiteral()
	case token.New:
		return p.parseNew()
	case token.Function:
		return p.parseFunctionExpression("")
	default:
		return nil, p.errorf("unexpected token %s", p.curr)
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	pos := p.curr.Position
	op := p.curr.Kind
	p.next()
	operand, err := p.parseExpression(precUnary)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{Op: op, Operand: operand, Position: pos}, nil
}

func (p *Parser) parseNumber() (ast.Expr, error) {
	tok := p.curr
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, p.errorf("invalid number literal %q", tok.Literal)
	}
	p.next()
	return &ast.NumberLiteral{Value: v, Position: tok.Position}, nil
}

func (p *Parser) parseString() (ast.Expr, error) {
	tok := p.curr
	p.next()
	return &ast.StringLiteral{Value: tok.Literal, Position: tok.Position}, nil
}

func (p *Parser) parseBoolean() (ast.Expr, error) {
	tok := p.curr
	p.next()
	return &ast.BooleanLiteral{Value: tok.Kind == token.True, Position: tok.Position}, nil
}

// parseIdentOrArrow disambiguates a single-identifier arrow function
// (`x => ...`) immediately after consuming the identifier (spec.md
// §4.2).
func (p *Parser) parseIdentOrArrow() (ast.Expr, error) {
	tok := p.curr
	p.next()
	if tok.Kind == token.Ident && p.curr.Kind == token.Arrow {
		p.next()
		body, err := p.parseArrowBody()
		if err != nil {
			return nil, err
		}
		return &ast.FunctionExpression{
			Params:   []ast.Param{{Name: tok.Literal}},
			Body:     body,
			Position: tok.Position,
		}, nil
	}
	return &ast.Identifier{Name: tok.Literal, Position: tok.Position}, nil
}

// parseGroupOrArrow disambiguates a parenthesized parameter list
// (`(a, b) => ...`) from a parenthesized expression by speculatively
// parsing a parameter list and rewinding on failure (spec.md §4.2).
func (p *Parser) parseGroupOrArrow() (ast.Expr, error) {
	pos := p.curr.Position
	p.mark()
	if params, ok := p.tryParseArrowParams(); ok {
		if p.curr.Kind == token.Arrow {
			p.next()
			body, err := p.parseArrowBody()
			if err != nil {
				return nil, err
			}
			return &ast.FunctionExpression{Params: params, Body: body, Position: pos}, nil
		}
	}
	p.restore()
	return p.parseGroup()
}

func (p *Parser) tryParseArrowParams() ([]ast.Param, bool) {
	params, err := p.parseParamList()
	if err != nil {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseGroup() (ast.Expr, error) {
	p.next() // consume '('
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Rparen, ")"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseArrowBody normalizes both `=> { ... }` and `=> expr` into a
// []ast.Stmt body: an expression body desugars to a single implicit
// ReturnStatement, since ast.FunctionExpression has no separate
// expression-body variant (spec.md §3).
func (p *Parser) parseArrowBody() ([]ast.Stmt, error) {
	if p.curr.Kind == token.Lbrace {
		return p.parseBlockBody()
	}
	expr, err := p.parseExpression(precAssign)
	if err != nil {
		return nil, err
	}
	return []ast.Stmt{&ast.ReturnStatement{Value: expr}}, nil
}

func (p *Parser) parseFunctionExpression(name string) (ast.Expr, error) {
	pos := p.curr.Position
	p.next()
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var ret ast.TypeAnnotation
	if p.curr.Kind == token.Colon {
		p.next()
		ret, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpression{Params: params, ReturnType: ret, Body: body, Position: pos}, nil
}

// array and map literals never appear as statement starts — a leading
// `{` is always a block (spec.md §4.2 tie-break).
func (p *Parser) parseArrayLiteral() (ast.Expr, error) {
	pos := p.curr.Position
	p.next()
	var elems []ast.Expr
	for p.curr.Kind != token.Rbracket {
		if len(elems) > 0 {
			if _, err := p.consume(token.Comma, ","); err != nil {
				return nil, err
			}
		}
		elem, err := p.parseExpression(precAssign)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if _, err := p.consume(token.Rbracket, "]"); err != nil {
		return nil, err
	}
	return &ast.ArrayExpression{Elements: elems, Position: pos}, nil
}

// MapLiteral keys are string literals or bare identifiers; the grammar
// forbids computed keys (spec.md §3 invariant).
func (p *Parser) parseMapLiteral() (ast.Expr, error) {
	pos := p.curr.Position
	p.next()
	lit := &ast.MapLiteral{Position: pos}
	for p.curr.Kind != token.Rbrace {
		if len(lit.Keys) > 0 {
			if _, err := p.consume(token.Comma, ","); err != nil {
				return nil, err
			}
		}
		var key string
		switch p.curr.Kind {
		case token.String, token.Ident:
			key = p.curr.Literal
			p.next()
		default:
			return nil, p.errorf("expected map key, found %s", p.curr)
		}
		if _, err := p.consume(token.Colon, ":"); err != nil {
			return nil, err
		}
		val, err := p.parseExpression(precAssign)
		if err != nil {
			return nil, err
		}
		lit.Keys = append(lit.Keys, key)
		lit.Values = append(lit.Values, val)
	}
	if _, err := p.consume(token.Rbrace, "}"); err != nil {
		return nil, err
	}
	return lit, nil
}

func (p *Parser) parseNew() (ast.Expr, error) {
	pos := p.curr.Position
	p.next()
	name, err := p.consume(token.Ident, "class name")
	if err != nil {
		return nil, err
	}
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	return &ast.NewExpression{ClassName: name.Literal, Arguments: args, Position: pos}, nil
}

func (p *Parser) parseArguments() ([]ast.Expr, error) {
	if _, err := p.consume(token.Lparen, "("); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for p.curr.Kind != token.Rparen {
		if len(args) > 0 {
			if _, err := p.consume(token.Comma, ","); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression(precAssign)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.consume(token.Rparen, ")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseInfix dispatches on the operator at p.curr, which has already
// been confirmed to bind at prec by parseExpression.
func (p *Parser) parseInfix(left ast.Expr, prec int) (ast.Expr, error) {
	switch p.curr.Kind {
	case token.Lparen:
		return p.parseCall(left)
	case token.Dot:
		return p.parseMember(left)
	case token.Lbracket:
		return p.parseIndex(left)
	case token.Question:
		return p.parseTernary(left)
	default:
		if p.curr.Kind.IsAssignOp() {
			return p.parseAssignment(left)
		}
		return p.parseBinary(left, prec)
	}
}

func (p *Parser) parseCall(callee ast.Expr) (ast.Expr, error) {
	pos := p.curr.Position
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	return &ast.CallExpression{Callee: callee, Arguments: args, Position: pos}, nil
}

func (p *Parser) parseMember(object ast.Expr) (ast.Expr, error) {
	pos := p.curr.Position
	p.next() // consume '.'
	name, err := p.consume(token.Ident, "property name")
	if err != nil {
		return nil, err
	}
	return &ast.MemberExpression{Object: object, Property: name.Literal, Position: pos}, nil
}

func (p *Parser) parseIndex(array ast.Expr) (ast.Expr, error) {
	pos := p.curr.Position
	p.next() // consume '['
	index, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Rbracket, "]"); err != nil {
		return nil, err
	}
	return &ast.ArrayAccess{Array: array, Index: index, Position: pos}, nil
}

// parseTernary is right-associative: `a ? b : c ? d : e` parses as
// `a ? b : (c ? d : e)` (spec.md §4.2 tie-break).
func (p *Parser) parseTernary(cond ast.Expr) (ast.Expr, error) {
	pos := p.curr.Position
	p.next() // consume '?'
	then, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Colon, ":"); err != nil {
		return nil, err
	}
	alt, err := p.parseExpression(precTernary - 1)
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpression{Cond: cond, Then: then, Else: alt, Position: pos}, nil
}

// parseAssignment is right-associative and admits compound operators
// (spec.md §4.2 tie-break).
func (p *Parser) parseAssignment(left ast.Expr) (ast.Expr, error) {
	pos := p.curr.Position
	op := p.curr.Kind
	p.next()
	right, err := p.parseExpression(precAssign - 1)
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{Left: left, Op: op, Right: right, Position: pos}, nil
}

func (p *Parser) parseBinary(left ast.Expr, prec int) (ast.Expr, error) {
	pos := p.curr.Position
	op := p.curr.Kind
	p.next()
	nextMin := prec
	if rightAssoc[op] {
		nextMin = prec - 1
	}
	right, err := p.parseExpression(nextMin)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{Op: op, Left: left, Right: right, Position: pos}, nil
}
