// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines a recursive-descent parser for the Python subset.

import (
	"fmt"
	"strings"
)

// Enable this flag to print the token stream and log.Fatal on the first error.
const debug = false

// A Mode value is a set of flags (or 0) that controls optional parser
// functionality. No flags are currently defined.
type Mode uint

// Parse parses the input data and returns the corresponding parse tree.
//
// If src != nil, ParseFile parses the source from src and the filename
// is only used when recording position information.
// The type of the argument for the src parameter must be string,
// []byte, io.Reader, or a func() ([]byte, error) yielding successive
// lines of input (as in a REPL).
// If src == nil, ParseFile parses the file specified by filename.
func Parse(filename string, src interface{}, mode Mode) (f *File, err error) {
	in, err := newScanner(filename, src, false)
	if err != nil {
		return nil, err
	}
	p := parser{in: in}
	defer p.in.recover(&err)

	p.nextToken() // read first lookahead token
	f = p.parseFile()
	if f != nil {
		f.Path = filename
	}
	return f, nil
}

// ParseExpr parses a single expression from the input.
// Trailing newlines are permitted.
func ParseExpr(filename string, src interface{}, mode Mode) (expr Expr, err error) {
	in, err := newScanner(filename, src, false)
	if err != nil {
		return nil, err
	}
	p := parser{in: in}
	defer p.in.recover(&err)

	p.nextToken() // read first lookahead token

	// Python grammar: an expression input may be a tuple without parens.
	expr = p.parseExpr(false)

	// A following newline (e.g. "f()\n") appears outside any bracket
	// is a real newline.
	if p.tok == NEWLINE {
		p.nextToken()
	}

	if p.tok != EOF {
		p.in.errorf(p.in.pos, "got %#v after expression, want EOF", p.tok)
	}
	return expr, nil
}

// ParseCompoundStmt parses a single compound statement:
// a blank line, a def, class, if, for, while, try, or with statement,
// or a semicolon-separated list of simple statements followed
// by a newline. These are the units on which the REPL operates.
// ParseCompoundStmt does not consume any following input.
// The parser calls the readline function each
// time it needs a new line of input.
func ParseCompoundStmt(filename string, readline func() ([]byte, error)) (f *File, err error) {
	in, err := newScanner(filename, readline, false)
	if err != nil {
		return nil, err
	}

	p := parser{in: in}
	defer p.in.recover(&err)

	p.nextToken() // read first lookahead token

	var stmts []Stmt
	switch p.tok {
	case DEF, ASYNC, CLASS, IF, FOR, WHILE, TRY, WITH:
		stmts = p.parseStmt(stmts)
	case NEWLINE:
		// blank line
	default:
		stmts = p.parseSimpleStmt(stmts, false)
		// Do not consume newline, to avoid blocking again.
	}

	return &File{Path: filename, Stmts: stmts}, nil
}

type parser struct {
	in     *scanner
	tok    Token
	tokval tokenValue
}

// nextToken advances the scanner and returns the position of the
// previous token.
func (p *parser) nextToken() Position {
	oldpos := p.tokval.pos
	p.tok = p.in.nextToken(&p.tokval)
	// enable to see the token stream
	if debug {
		fmt.Printf("nextToken: %-20s%+v\n", p.tok, p.tokval.pos)
	}
	return oldpos
}

// file_input = (NEWLINE | statement)* EOF
func (p *parser) parseFile() *File {
	var stmts []Stmt
	for p.tok != EOF {
		if p.tok == NEWLINE {
			p.nextToken()
			continue
		}
		stmts = p.parseStmt(stmts)
	}
	return &File{Stmts: stmts}
}

func (p *parser) parseStmt(stmts []Stmt) []Stmt {
	switch p.tok {
	case DEF:
		return append(stmts, p.parseDefStmt(false))
	case ASYNC:
		pos := p.nextToken()
		if p.tok != DEF {
			p.in.errorf(pos, "async may only prefix a function definition")
		}
		return append(stmts, p.parseDefStmt(true))
	case CLASS:
		return append(stmts, p.parseClassStmt())
	case IF:
		return append(stmts, p.parseIfStmt())
	case FOR:
		return append(stmts, p.parseForStmt())
	case WHILE:
		return append(stmts, p.parseWhileStmt())
	case TRY:
		return append(stmts, p.parseTryStmt())
	case WITH:
		return append(stmts, p.parseWithStmt())
	}
	return p.parseSimpleStmt(stmts, true)
}

func (p *parser) parseDefStmt(async bool) Stmt {
	defpos := p.nextToken() // consume DEF
	id := p.parseIdent()
	p.consume(LPAREN)
	params := p.parseParams(true)
	p.consume(RPAREN)
	body := p.parseSuite()
	return &DefStmt{
		Def:    defpos,
		Name:   id,
		Params: params,
		Body:   body,
		Async:  async,
	}
}

func (p *parser) parseClassStmt() Stmt {
	classpos := p.nextToken() // consume CLASS
	id := p.parseIdent()
	var bases []Expr
	if p.tok == LPAREN {
		p.nextToken() // consume LPAREN
		for p.tok != RPAREN {
			bases = append(bases, p.parseTest())
			if p.tok != COMMA {
				break
			}
			p.nextToken() // consume COMMA
		}
		p.consume(RPAREN)
	}
	body := p.parseSuite()
	return &ClassStmt{
		ClassPos: classpos,
		Name:     id,
		Bases:    bases,
		Body:     body,
	}
}

func (p *parser) parseIfStmt() Stmt {
	ifpos := p.nextToken() // consume IF or ELIF
	cond := p.parseTest()
	body := p.parseSuite()
	ifStmt := &IfStmt{
		If:   ifpos,
		Cond: cond,
		True: body,
	}
	switch p.tok {
	case ELIF:
		ifStmt.ElsePos = p.tokval.pos
		ifStmt.False = []Stmt{p.parseIfStmt()}
	case ELSE:
		ifStmt.ElsePos = p.nextToken() // consume ELSE
		ifStmt.False = p.parseSuite()
	}
	return ifStmt
}

func (p *parser) parseForStmt() Stmt {
	forpos := p.nextToken() // consume FOR
	vars := p.parseForLoopVariables()
	p.consume(IN)
	x := p.parseExpr(false)
	body := p.parseSuite()
	stmt := &ForStmt{
		For:  forpos,
		Vars: vars,
		X:    x,
		Body: body,
	}
	if p.tok == ELSE {
		p.nextToken() // consume ELSE
		stmt.Else = p.parseSuite()
	}
	return stmt
}

func (p *parser) parseWhileStmt() Stmt {
	whilepos := p.nextToken() // consume WHILE
	cond := p.parseTest()
	body := p.parseSuite()
	stmt := &WhileStmt{
		While: whilepos,
		Cond:  cond,
		Body:  body,
	}
	if p.tok == ELSE {
		p.nextToken() // consume ELSE
		stmt.Else = p.parseSuite()
	}
	return stmt
}

func (p *parser) parseTryStmt() Stmt {
	trypos := p.nextToken() // consume TRY
	body := p.parseSuite()
	stmt := &TryStmt{
		Try:  trypos,
		Body: body,
	}
	sawBare := false
	for p.tok == EXCEPT {
		exceptpos := p.nextToken() // consume EXCEPT
		clause := &ExceptClause{Except: exceptpos}
		if p.tok != COLON {
			if sawBare {
				p.in.error(exceptpos, "default 'except:' must be last")
			}
			clause.Type = p.parseTest()
			if p.tok == AS {
				p.nextToken() // consume AS
				clause.Name = p.parseIdent()
			}
		} else {
			sawBare = true
		}
		clause.Body = p.parseSuite()
		stmt.Handlers = append(stmt.Handlers, clause)
	}
	if p.tok == ELSE {
		elsepos := p.nextToken() // consume ELSE
		if len(stmt.Handlers) == 0 {
			p.in.error(elsepos, "try-else requires at least one except clause")
		}
		stmt.Else = p.parseSuite()
	}
	if p.tok == FINALLY {
		p.nextToken() // consume FINALLY
		stmt.Finally = p.parseSuite()
	}
	if len(stmt.Handlers) == 0 && stmt.Finally == nil {
		p.in.error(trypos, "try statement must have at least one except or finally clause")
	}
	return stmt
}

func (p *parser) parseWithStmt() Stmt {
	withpos := p.nextToken() // consume WITH
	var items []*WithItem
	for {
		item := &WithItem{X: p.parseTest()}
		if p.tok == AS {
			p.nextToken() // consume AS
			item.Var = p.parseForLoopVariables()
		}
		items = append(items, item)
		if p.tok != COMMA {
			break
		}
		p.nextToken() // consume COMMA
	}
	body := p.parseSuite()
	return &WithStmt{
		With:  withpos,
		Items: items,
		Body:  body,
	}
}

// parseForLoopVariables parses a comma-separated list of target
// expressions (of a for statement, with-as target, etc).  The .loop
// suffix distinguishes it from the arbitrary expression lists accepted
// elsewhere, which would consume the 'in' token.
func (p *parser) parseForLoopVariables() Expr {
	// Avoid parseExpr because it would consume the IN token
	// following x in "for x in y: ...".
	v := p.parsePrimaryWithSuffix()
	if p.tok != COMMA {
		return v
	}

	list := []Expr{v}
	for p.tok == COMMA {
		p.nextToken()
		if terminatesExprList(p.tok) {
			break
		}
		list = append(list, p.parsePrimaryWithSuffix())
	}
	return &TupleExpr{List: list}
}

// simple_stmt = small_stmt (SEMI small_stmt)* SEMI? NEWLINE
// In REPL mode, it does not consume the NEWLINE.
func (p *parser) parseSimpleStmt(stmts []Stmt, consumeNL bool) []Stmt {
	for {
		stmts = append(stmts, p.parseSmallStmt())
		if p.tok != SEMI {
			break
		}
		p.nextToken() // consume SEMI
		if p.tok == NEWLINE || p.tok == EOF {
			break
		}
	}
	// EOF without NEWLINE occurs in `if x: pass`, for example.
	if p.tok != EOF && consumeNL {
		p.consume(NEWLINE)
	}
	return stmts
}

// small_stmt = RETURN expr?
//            | PASS | BREAK | CONTINUE
//            | RAISE test?
//            | ASSERT test (COMMA test)?
//            | GLOBAL ident (COMMA ident)*
//            | NONLOCAL ident (COMMA ident)*
//            | DEL expr (COMMA expr)*
//            | expr ('=' | '+=' | ...) expr
//            | expr
func (p *parser) parseSmallStmt() Stmt {
	switch p.tok {
	case RETURN:
		pos := p.nextToken() // consume RETURN
		var result Expr
		if p.tok != EOF && p.tok != NEWLINE && p.tok != SEMI {
			result = p.parseExpr(false)
		}
		return &ReturnStmt{Return: pos, Result: result}

	case BREAK, CONTINUE, PASS:
		tok := p.tok
		pos := p.nextToken() // consume it
		return &BranchStmt{Token: tok, TokenPos: pos}

	case RAISE:
		pos := p.nextToken() // consume RAISE
		var exc Expr
		if p.tok != EOF && p.tok != NEWLINE && p.tok != SEMI {
			exc = p.parseTest()
			if p.tok == FROM {
				p.in.error(p.tokval.pos, "exception chaining (raise ... from ...) is not supported")
			}
		}
		return &RaiseStmt{Raise: pos, Exc: exc}

	case ASSERT:
		pos := p.nextToken() // consume ASSERT
		cond := p.parseTest()
		var msg Expr
		if p.tok == COMMA {
			p.nextToken() // consume COMMA
			msg = p.parseTest()
		}
		return &AssertStmt{Assert: pos, Cond: cond, Msg: msg}

	case GLOBAL, NONLOCAL:
		tok := p.tok
		pos := p.nextToken() // consume GLOBAL or NONLOCAL
		names := []*Ident{p.parseIdent()}
		for p.tok == COMMA {
			p.nextToken() // consume COMMA
			names = append(names, p.parseIdent())
		}
		if tok == GLOBAL {
			return &GlobalStmt{Global: pos, Names: names}
		}
		return &NonlocalStmt{Nonlocal: pos, Names: names}

	case DEL:
		pos := p.nextToken() // consume DEL
		list := []Expr{p.parsePrimaryWithSuffix()}
		for p.tok == COMMA {
			p.nextToken() // consume COMMA
			list = append(list, p.parsePrimaryWithSuffix())
		}
		return &DelStmt{Del: pos, List: list}

	case IMPORT, FROM:
		p.in.error(p.tokval.pos, "import statements are not supported; the translation unit must be self-contained")
	}

	// Assignment
	x := p.parseExpr(false)
	switch p.tok {
	case EQ, PLUS_EQ, MINUS_EQ, STAR_EQ, SLASH_EQ, SLASHSLASH_EQ, PERCENT_EQ,
		AMP_EQ, PIPE_EQ, CIRCUMFLEX_EQ, LTLT_EQ, GTGT_EQ, STARSTAR_EQ:
		op := p.tok
		pos := p.nextToken() // consume op
		rhs := p.parseExpr(false)
		if p.tok == EQ {
			p.in.error(p.tokval.pos, "multiple assignment (a = b = c) is not supported")
		}
		return &AssignStmt{OpPos: pos, Op: op, LHS: x, RHS: rhs}
	}

	// Expression statement
	return &ExprStmt{X: x}
}

func (p *parser) parseIdent() *Ident {
	if p.tok != IDENT {
		p.in.error(p.in.pos, "not an identifier")
	}
	id := &Ident{
		NamePos: p.tokval.pos,
		Name:    p.tokval.raw,
	}
	p.nextToken()
	return id
}

func (p *parser) consume(t Token) Position {
	if p.tok != t {
		p.in.errorf(p.in.pos, "got %#v, want %#v", p.tok, t)
	}
	return p.nextToken()
}

// params = (param COMMA)* param COMMA?
//        |
//
// param = IDENT
//       | IDENT EQ test
//       | STAR
//       | STAR IDENT
//       | STARSTAR IDENT
//
// parseParams parses a parameter list.  The resulting expressions are:
//
//	*Ident                                          x
//	*Binary{Op: EQ, X: *Ident, Y: Expr}             x=y
//	*Unary{Op: STAR}                                *
//	*Unary{Op: STAR, X: *Ident}                     *args
//	*Unary{Op: STARSTAR, X: *Ident}                 **kwargs
// The parens flag reports whether the list is parenthesized, as in a
// def; in a lambda's unparenthesized list a colon ends the parameters
// rather than introducing an annotation.
func (p *parser) parseParams(parens bool) []Expr {
	var params []Expr
	for p.tok != RPAREN && p.tok != COLON && p.tok != EOF {
		if len(params) > 0 {
			p.consume(COMMA)
		}
		if p.tok == RPAREN {
			break
		}

		// * or *args or **kwargs
		if p.tok == STAR || p.tok == STARSTAR {
			op := p.tok
			pos := p.nextToken()
			var x Expr
			if op == STARSTAR || p.tok == IDENT {
				x = p.parseIdent()
			}
			params = append(params, &UnaryExpr{
				OpPos: pos,
				Op:    op,
				X:     x,
			})
			continue
		}

		// IDENT
		// IDENT = test
		id := p.parseIdent()
		if parens && p.tok == COLON {
			p.in.error(p.tokval.pos, "parameter annotations are not supported")
		}
		if p.tok == EQ { // default value
			eq := p.nextToken()
			dflt := p.parseTest()
			params = append(params, &BinaryExpr{
				X:     id,
				OpPos: eq,
				Op:    EQ,
				Y:     dflt,
			})
			continue
		}

		params = append(params, id)
	}
	return params
}

// parseExpr parses an expression, possibly followed by a comma, in
// which case it returns a tuple.  The caller should use parseTest to
// reject relaxed expressions.
func (p *parser) parseExpr(inParens bool) Expr {
	x := p.parseTest()
	if p.tok != COMMA {
		return x
	}

	// tuple
	exprs := p.parseExprs([]Expr{x}, inParens)
	return &TupleExpr{List: exprs}
}

// parseExprs parses a comma-separated list of expressions, starting with the comma.
// It is used to parse tuples and list elements.
// expr_list = (expr COMMA)* expr COMMA?
func (p *parser) parseExprs(exprs []Expr, allowTrailingComma bool) []Expr {
	for p.tok == COMMA {
		pos := p.tokval.pos
		p.nextToken()
		if terminatesExprList(p.tok) {
			if !allowTrailingComma {
				p.in.error(pos, "unparenthesized tuple with trailing comma")
			}
			break
		}
		exprs = append(exprs, p.parseTest())
	}
	return exprs
}

// parseTest parses a 'test', a single-component expression.
func (p *parser) parseTest() Expr {
	if p.tok == LAMBDA {
		return p.parseLambda(true)
	}

	if p.tok == YIELD {
		pos := p.nextToken() // consume YIELD
		var result Expr
		if p.tok == FROM {
			p.in.error(p.tokval.pos, "yield from is not supported")
		}
		if !terminatesExprList(p.tok) {
			result = p.parseTest()
		}
		return &YieldExpr{Yield: pos, Result: result}
	}

	x := p.parseTestPrec(0)

	// conditional expression (t IF cond ELSE f)
	if p.tok == IF {
		ifpos := p.nextToken()
		cond := p.parseTestPrec(0)
		if p.tok != ELSE {
			p.in.error(ifpos, "conditional expression without else clause")
		}
		elsepos := p.nextToken()
		else_ := p.parseTest()
		return &CondExpr{If: ifpos, Cond: cond, True: x, ElsePos: elsepos, False: else_}
	}

	return x
}

// parseTestNoCond parses a a single-component expression without
// consuming a trailing 'if'.
func (p *parser) parseTestNoCond() Expr {
	if p.tok == LAMBDA {
		return p.parseLambda(false)
	}
	return p.parseTestPrec(0)
}

// parseLambda parses a lambda expression.
// The allowCond flag allows the body to be a conditional expression.
func (p *parser) parseLambda(allowCond bool) Expr {
	lambda := p.nextToken() // consume LAMBDA
	var params []Expr
	if p.tok != COLON {
		params = p.parseParams(false)
	}
	p.consume(COLON)

	var body Expr
	if allowCond {
		body = p.parseTest()
	} else {
		body = p.parseTestNoCond()
	}

	return &LambdaExpr{
		Lambda: lambda,
		Params: params,
		Body:   body,
	}
}

func (p *parser) parseTestPrec(prec int) Expr {
	if prec >= len(preclevels) {
		return p.parseUnary()
	}

	// expr = NOT expr
	if p.tok == NOT && prec == int(precedence[NOT]) {
		pos := p.nextToken()
		x := p.parseTestPrec(prec)
		return &UnaryExpr{
			OpPos: pos,
			Op:    NOT,
			X:     x,
		}
	}

	return p.parseBinopExpr(prec)
}

// expr = expr (OP expr)*
// Uses precedence climbing; see http://www.engr.mun.ca/~theo/Misc/exp_parsing.htm#climbing.
func (p *parser) parseBinopExpr(prec int) Expr {
	x := p.parseTestPrec(prec + 1)
	for {
		// Pairs of keywords fuse to a single operator:
		// 'not in' and 'is not'.  A leading unary 'not' never
		// reaches this loop; it is claimed by parseTestPrec.
		var op Token
		var pos Position
		switch p.tok {
		case NOT: // not in
			if int(precedence[NOT_IN]) < prec {
				return x
			}
			pos = p.nextToken() // consume NOT
			if p.tok != IN {
				p.in.errorf(p.in.pos, "got %#v, want in", p.tok)
			}
			p.nextToken() // consume IN
			op = NOT_IN
		case IS: // is, is not
			if int(precedence[IS]) < prec {
				return x
			}
			pos = p.nextToken() // consume IS
			op = IS
			if p.tok == NOT {
				p.nextToken() // consume NOT
				op = IS_NOT
			}
		default:
			// Binary operator of specified precedence?
			opprec := int(precedence[p.tok])
			if opprec < prec {
				return x
			}
			op = p.tok
			pos = p.nextToken()
		}

		y := p.parseTestPrec(int(precedence[op]) + 1)
		x = &BinaryExpr{OpPos: pos, Op: op, X: x, Y: y}
	}
}

var precedence [maxToken]int8

// preclevels groups operators of equal precedence.
// Comparisons are nonassociative at the grammar level; a chain such as
// a < b < c parses left-associatively here and is recognized as a
// chained comparison by the consumer.
var preclevels = [...][]Token{
	{OR},                                   // or
	{AND},                                  // and
	{NOT},                                  // not (unary)
	{EQL, NEQ, LT, GT, LE, GE, IN, NOT_IN, IS, IS_NOT}, // comparisons
	{PIPE},                                 // |
	{CIRCUMFLEX},                           // ^
	{AMP},                                  // &
	{LTLT, GTGT},                           // << >>
	{MINUS, PLUS},                          // -
	{STAR, PERCENT, SLASH, SLASHSLASH},     // * % / //
}

func init() {
	// populate precedence table
	for i := range precedence {
		precedence[i] = -1
	}
	for level, tokens := range preclevels {
		for _, tok := range tokens {
			precedence[tok] = int8(level)
		}
	}
}

// parseUnary parses a unary expression: +x, -x, ~x, await x, or a
// power expression.
func (p *parser) parseUnary() Expr {
	switch p.tok {
	case PLUS, MINUS, TILDE:
		tok := p.tok
		pos := p.nextToken()
		x := p.parseUnary()
		return &UnaryExpr{
			OpPos: pos,
			Op:    tok,
			X:     x,
		}
	case AWAIT:
		pos := p.nextToken()
		x := p.parseUnary()
		return &AwaitExpr{Await: pos, X: x}
	}
	return p.parsePower()
}

// parsePower parses an exponentiation: primary [** unary].
// The operator is right-associative and binds less tightly than a
// unary operator on its right: -x**y is -(x**y), x**-y is x**(-y).
func (p *parser) parsePower() Expr {
	x := p.parsePrimaryWithSuffix()
	if p.tok == STARSTAR {
		pos := p.nextToken()
		y := p.parseUnary()
		x = &BinaryExpr{OpPos: pos, Op: STARSTAR, X: x, Y: y}
	}
	return x
}

// primary_with_suffix = primary
//                     | primary '.' IDENT
//                     | primary slice_suffix
//                     | primary call_suffix
func (p *parser) parsePrimaryWithSuffix() Expr {
	x := p.parsePrimary()
	for {
		switch p.tok {
		case DOT:
			dot := p.nextToken()
			id := p.parseIdent()
			x = &DotExpr{Dot: dot, X: x, Name: id}
		case LBRACK:
			x = p.parseSliceSuffix(x)
		case LPAREN:
			x = p.parseCallSuffix(x)
		default:
			return x
		}
	}
}

// slice_suffix = '[' expr? ':' expr?  ':' expr? ']'
func (p *parser) parseSliceSuffix(x Expr) Expr {
	lbrack := p.consume(LBRACK)
	var lo, hi, step Expr
	if p.tok != COLON {
		y := p.parseExpr(false)

		// index x[y]
		if p.tok == RBRACK {
			rbrack := p.nextToken()
			return &IndexExpr{X: x, Lbrack: lbrack, Y: y, Rbrack: rbrack}
		}

		lo = y
	}

	// slice or substring x[lo:hi:step]
	if p.tok == COLON {
		p.nextToken()
		if p.tok != COLON && p.tok != RBRACK {
			hi = p.parseTest()
		}
	}
	if p.tok == COLON {
		p.nextToken()
		if p.tok != RBRACK {
			step = p.parseTest()
		}
	}
	rbrack := p.consume(RBRACK)
	return &SliceExpr{X: x, Lbrack: lbrack, Lo: lo, Hi: hi, Step: step, Rbrack: rbrack}
}

// call_suffix = '(' arg_list? ')'
func (p *parser) parseCallSuffix(fn Expr) Expr {
	lparen := p.consume(LPAREN)
	var rparen Position
	var args []Expr
	if p.tok == RPAREN {
		rparen = p.nextToken()
	} else {
		args = p.parseArgs()
		rparen = p.consume(RPAREN)
	}
	return &CallExpr{Fn: fn, Lparen: lparen, Args: args, Rparen: rparen}
}

// parseArgs parses a list of actual parameters.
// arg = test
//     | IDENT '=' test
//     | STAR test
//     | STARSTAR test
func (p *parser) parseArgs() []Expr {
	var args []Expr
	for p.tok != RPAREN && p.tok != EOF {
		if len(args) > 0 {
			p.consume(COMMA)
		}
		if p.tok == RPAREN {
			break
		}

		// *args or **kwargs
		if p.tok == STAR || p.tok == STARSTAR {
			op := p.tok
			pos := p.nextToken()
			x := p.parseTest()
			args = append(args, &UnaryExpr{
				OpPos: pos,
				Op:    op,
				X:     x,
			})
			continue
		}

		// We use a different strategy from Python here:
		// instead of looking ahead two tokens (IDENT, EQ) we parse
		// 'test = test' then check that the first was an IDENT.
		x := p.parseTest()

		if p.tok == EQ {
			// name = value
			if _, ok := x.(*Ident); !ok {
				p.in.error(p.in.pos, "keyword argument must have form name=expr")
			}
			eq := p.nextToken()
			y := p.parseTest()
			x = &BinaryExpr{
				X:     x,
				OpPos: eq,
				Op:    EQ,
				Y:     y,
			}
		} else if p.tok == FOR {
			p.in.error(p.tokval.pos, "generator expressions are not supported")
		}

		args = append(args, x)
	}
	return args
}

//  primary = IDENT
//          | INT | FLOAT | STRING | BYTES
//          | '[' ...                    // list literal or comprehension
//          | '(' ...                    // tuple or parenthesized expression
//          | '{' ...                    // dict or set literal or comprehension
func (p *parser) parsePrimary() Expr {
	switch p.tok {
	case IDENT:
		return p.parseIdent()

	case INT, FLOAT, STRING, BYTES:
		return p.parseLiteral()

	case LBRACK:
		return p.parseList()

	case LBRACE:
		return p.parseDict()

	case LPAREN:
		lparen := p.nextToken()
		if p.tok == RPAREN {
			// empty tuple
			rparen := p.nextToken()
			return &TupleExpr{Lparen: lparen, Rparen: rparen}
		}
		e := p.parseExpr(true) // allow trailing comma
		if p.tok == FOR {
			p.in.error(p.tokval.pos, "generator expressions are not supported")
		}
		rparen := p.consume(RPAREN)
		if t, ok := e.(*TupleExpr); ok && !t.Lparen.IsValid() {
			t.Lparen = lparen
			t.Rparen = rparen
			return t
		}
		return &ParenExpr{
			Lparen: lparen,
			X:      e,
			Rparen: rparen,
		}
	}
	p.in.errorf(p.tokval.pos, "got %#v, want primary expression", p.tok)
	panic("unreachable")
}

// parseLiteral parses an INT, FLOAT, STRING, or BYTES literal,
// including implicit concatenation of adjacent string literals.
func (p *parser) parseLiteral() Expr {
	tok := p.tok
	switch tok {
	case INT, FLOAT:
		var val interface{}
		if tok == INT {
			if p.tokval.bigInt != nil {
				val = p.tokval.bigInt
			} else {
				val = p.tokval.int
			}
		} else {
			val = p.tokval.float
		}
		lit := &Literal{Token: tok, TokenPos: p.tokval.pos, Raw: p.tokval.raw, Value: val}
		p.nextToken()
		return lit

	case STRING, BYTES:
		if p.tokval.fstring {
			return p.parseFString()
		}
		lit := &Literal{Token: tok, TokenPos: p.tokval.pos, Raw: p.tokval.raw, Value: p.tokval.string}
		p.nextToken()

		// implicit concatenation of adjacent plain string literals
		for p.tok == tok && !p.tokval.fstring {
			lit.Raw += " " + p.tokval.raw
			lit.Value = lit.Value.(string) + p.tokval.string
			p.nextToken()
		}
		if (p.tok == STRING || p.tok == BYTES) && (p.tok != tok || p.tokval.fstring) {
			p.in.error(p.tokval.pos, "cannot concatenate string literals of different kinds")
		}
		return lit
	}
	panic("unreachable")
}

// parseFString interprets the interpolations of an f-string literal.
// The scanner has already cooked the escapes; this pass splits the text
// into literal chunks and embedded expressions, each parsed on its own.
func (p *parser) parseFString() Expr {
	pos := p.tokval.pos
	raw := p.tokval.raw
	text := p.tokval.string
	p.nextToken()

	fs := &FString{TokenPos: pos, Raw: raw}
	var literal strings.Builder
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '{' && i+1 < len(text) && text[i+1] == '{':
			literal.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(text) && text[i+1] == '}':
			literal.WriteByte('}')
			i += 2
		case c == '}':
			p.in.error(pos, "single '}' is not allowed in f-string")
		case c == '{':
			// interpolation: {expr[!conv][:spec]}
			depth := 1
			j := i + 1
			for j < len(text) && depth > 0 {
				switch text[j] {
				case '{', '[', '(':
					depth++
				case '}', ']', ')':
					depth--
				}
				if depth > 0 {
					j++
				}
			}
			if depth != 0 {
				p.in.error(pos, "unterminated interpolation in f-string")
			}
			inner := text[i+1 : j]
			chunk := FStringChunk{Text: literal.String()}
			literal.Reset()

			// split off !conv and :spec
			if k := strings.LastIndex(inner, ":"); k >= 0 && !strings.ContainsAny(inner[k:], ")]}\"'") {
				chunk.Spec = inner[k+1:]
				inner = inner[:k]
			}
			if n := len(inner); n >= 2 && inner[n-2] == '!' {
				switch inner[n-1] {
				case 'r', 's':
					chunk.Conv = inner[n-1]
					inner = inner[:n-2]
				default:
					p.in.errorf(pos, "unknown f-string conversion '!%c'", inner[n-1])
				}
			}
			if strings.TrimSpace(inner) == "" {
				p.in.error(pos, "empty expression in f-string")
			}
			x, err := ParseExpr(pos.Filename(), inner, 0)
			if err != nil {
				p.in.errorf(pos, "in f-string interpolation {%s}: %v", inner, stripPos(err))
			}
			chunk.X = x
			fs.Chunks = append(fs.Chunks, chunk)
			i = j + 1
		default:
			literal.WriteByte(c)
			i++
		}
	}
	if literal.Len() > 0 {
		fs.Chunks = append(fs.Chunks, FStringChunk{Text: literal.String()})
	}
	return fs
}

// stripPos removes the position prefix of a nested parse error, whose
// coordinates are relative to the interpolation text, not the file.
func stripPos(err error) string {
	msg := err.Error()
	if e, ok := err.(Error); ok {
		msg = e.Msg
	}
	return msg
}

// list = '[' ']'
//      | '[' expr ']'
//      | '[' expr expr_list ']'
//      | '[' expr (FOR loop_variables IN expr)+ ']'
func (p *parser) parseList() Expr {
	lbrack := p.nextToken()
	if p.tok == RBRACK {
		// empty List
		rbrack := p.nextToken()
		return &ListExpr{Lbrack: lbrack, Rbrack: rbrack}
	}

	x := p.parseTest()

	if p.tok == FOR {
		// list comprehension
		return p.parseComprehensionSuffix(lbrack, x, RBRACK, LBRACK)
	}

	exprs := []Expr{x}
	if p.tok == COMMA {
		// multi-item list literal
		exprs = p.parseExprs(exprs, true) // allow trailing comma
	}

	rbrack := p.consume(RBRACK)
	return &ListExpr{Lbrack: lbrack, List: exprs, Rbrack: rbrack}
}

// dict = '{' '}'
//      | '{' dict_entry_list '}'
//      | '{' dict_entry FOR loop_variables IN expr '}'
//      | '{' expr_list '}'                            // set literal
//      | '{' expr FOR loop_variables IN expr '}'      // set comprehension
func (p *parser) parseDict() Expr {
	lbrace := p.nextToken()
	if p.tok == RBRACE {
		// empty dict
		rbrace := p.nextToken()
		return &DictExpr{Lbrace: lbrace, Rbrace: rbrace}
	}

	x := p.parseTest()

	if p.tok == COLON {
		// dict literal or comprehension
		entry := p.parseDictEntryTail(x)

		if p.tok == FOR {
			// dict comprehension
			return p.parseComprehensionSuffix(lbrace, entry, RBRACE, LBRACE)
		}

		entries := []Expr{Expr(entry)}
		for p.tok == COMMA {
			p.nextToken()
			if p.tok == RBRACE {
				break
			}
			entries = append(entries, p.parseDictEntry())
		}

		rbrace := p.consume(RBRACE)
		return &DictExpr{Lbrace: lbrace, List: entries, Rbrace: rbrace}
	}

	if p.tok == FOR {
		// set comprehension
		return p.parseComprehensionSuffix(lbrace, x, RBRACE, LBRACE)
	}

	// set literal
	exprs := []Expr{x}
	if p.tok == COMMA {
		exprs = p.parseExprs(exprs, true) // allow trailing comma
	}
	rbrace := p.consume(RBRACE)
	return &SetExpr{Lbrace: lbrace, List: exprs, Rbrace: rbrace}
}

// dict_entry = test ':' test
func (p *parser) parseDictEntry() *DictEntry {
	k := p.parseTest()
	return p.parseDictEntryTail(k)
}

func (p *parser) parseDictEntryTail(k Expr) *DictEntry {
	colon := p.consume(COLON)
	v := p.parseTest()
	return &DictEntry{Key: k, Colon: colon, Value: v}
}

// comp_suffix = FOR loopvars IN expr comp_suffix
//             | IF expr comp_suffix
//             | ']'  or  '}'                              (end)
//
// There can be multiple FOR/IF clauses.
//
// kind is Lbrack (list comprehension) or Lbrace (set or dict comprehension).
func (p *parser) parseComprehensionSuffix(lbrace Position, body Expr, endBrace, kind Token) Expr {
	var clauses []Node
	for p.tok != endBrace {
		if p.tok == FOR {
			pos := p.nextToken()
			vars := p.parseForLoopVariables()
			in := p.consume(IN)
			// Following Python grammar, the operand of IN cannot be:
			// - a conditional expression ('x if y else z'),
			//   due to conflicts in Python grammar
			//   ('if' is used by the comprehension);
			// - a lambda expression
			// - an unparenthesized tuple.
			x := p.parseTestPrec(0)
			clauses = append(clauses, &ForClause{For: pos, Vars: vars, In: in, X: x})
		} else if p.tok == IF {
			pos := p.nextToken()
			cond := p.parseTestNoCond()
			clauses = append(clauses, &IfClause{If: pos, Cond: cond})
		} else {
			p.in.errorf(p.in.pos, "got %#v, want '%s', for, or if", p.tok, endBrace)
		}
	}
	rbrace := p.nextToken()

	return &Comprehension{
		Kind:    kind,
		Lbrack:  lbrace,
		Body:    body,
		Clauses: clauses,
		Rbrack:  rbrace,
	}
}

// parseSuite parses a suite of statements: either a simple statement
// list on the same line, or an indented block.
//
// suite = simple_stmt | NEWLINE INDENT stmt+ OUTDENT
func (p *parser) parseSuite() []Stmt {
	p.consume(COLON)
	if p.tok == NEWLINE {
		p.nextToken() // consume NEWLINE
		p.consume(INDENT)
		var stmts []Stmt
		for p.tok != OUTDENT && p.tok != EOF {
			stmts = p.parseStmt(stmts)
		}
		p.consume(OUTDENT)
		return stmts
	}

	return p.parseSimpleStmt(nil, true)
}

func terminatesExprList(tok Token) bool {
	switch tok {
	case EOF, NEWLINE, EQ, RBRACE, RBRACK, RPAREN, SEMI, COLON:
		return true
	}
	return false
}
