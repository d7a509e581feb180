// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax provides a parser and abstract syntax tree for the
// Python subset accepted by the Adder translator.
package syntax // import "go.adder.dev/syntax"

// A Node is a node in a syntax tree.
type Node interface {
	// Span returns the start and end position of the expression.
	Span() (start, end Position)
}

// Start returns the start position of the expression.
func Start(n Node) Position {
	start, _ := n.Span()
	return start
}

// End returns the end position of the expression.
func End(n Node) Position {
	_, end := n.Span()
	return end
}

// A File represents a source file: a list of top-level statements.
type File struct {
	Path  string
	Stmts []Stmt

	Module interface{} // a *resolve.Module, set by resolver
}

func (x *File) Span() (start, end Position) {
	if len(x.Stmts) == 0 {
		return
	}
	start, _ = x.Stmts[0].Span()
	_, end = x.Stmts[len(x.Stmts)-1].Span()
	return start, end
}

// A Stmt is a statement.
type Stmt interface {
	Node
	stmt()
}

func (*AssertStmt) stmt()   {}
func (*AssignStmt) stmt()   {}
func (*BranchStmt) stmt()   {}
func (*ClassStmt) stmt()    {}
func (*DefStmt) stmt()      {}
func (*DelStmt) stmt()      {}
func (*ExprStmt) stmt()     {}
func (*ForStmt) stmt()      {}
func (*GlobalStmt) stmt()   {}
func (*IfStmt) stmt()       {}
func (*NonlocalStmt) stmt() {}
func (*RaiseStmt) stmt()    {}
func (*ReturnStmt) stmt()   {}
func (*TryStmt) stmt()      {}
func (*WhileStmt) stmt()    {}
func (*WithStmt) stmt()     {}

// An AssignStmt represents an assignment:
//
//	x = 0
//	x, y = y, x
//	x += 1
type AssignStmt struct {
	OpPos Position
	Op    Token // = EQ | {PLUS,MINUS,STAR,SLASH,SLASHSLASH,PERCENT,AMP,PIPE,CIRCUMFLEX,LTLT,GTGT,STARSTAR}_EQ
	LHS   Expr
	RHS   Expr
}

func (x *AssignStmt) Span() (start, end Position) {
	start, _ = x.LHS.Span()
	_, end = x.RHS.Span()
	return
}

// An AssertStmt represents an assertion: assert cond [, msg].
type AssertStmt struct {
	Assert Position
	Cond   Expr
	Msg    Expr // may be nil
}

func (x *AssertStmt) Span() (start, end Position) {
	if x.Msg != nil {
		_, end = x.Msg.Span()
	} else {
		_, end = x.Cond.Span()
	}
	return x.Assert, end
}

// A BranchStmt changes the flow of control: break, continue, pass.
type BranchStmt struct {
	Token    Token // = BREAK | CONTINUE | PASS
	TokenPos Position
}

func (x *BranchStmt) Span() (start, end Position) {
	return x.TokenPos, x.TokenPos.add(x.Token.String())
}

// A ClassStmt represents a class definition: class Name(Bases): Body.
type ClassStmt struct {
	ClassPos Position
	Name     *Ident
	Bases    []Expr // explicit base classes; nil if no parens
	Body     []Stmt

	Class interface{} // a *resolve.Class, set by resolver
}

func (x *ClassStmt) Span() (start, end Position) {
	_, end = x.Body[len(x.Body)-1].Span()
	return x.ClassPos, end
}

// A DefStmt represents a function definition: def Name(Params): Body.
type DefStmt struct {
	Def    Position
	Name   *Ident
	Params []Expr // param = ident | ident=expr | * | *ident | **ident
	Body   []Stmt
	Async  bool // async def

	Function interface{} // a *resolve.Function, set by resolver
}

func (x *DefStmt) Span() (start, end Position) {
	_, end = x.Body[len(x.Body)-1].Span()
	return x.Def, end
}

// A DelStmt unbinds items or attributes: del x[k], x.a.
type DelStmt struct {
	Del  Position
	List []Expr
}

func (x *DelStmt) Span() (start, end Position) {
	_, end = x.List[len(x.List)-1].Span()
	return x.Del, end
}

// An ExprStmt is an expression evaluated for side effects.
type ExprStmt struct {
	X Expr
}

func (x *ExprStmt) Span() (start, end Position) {
	return x.X.Span()
}

// A ForStmt represents a loop: for Vars in X: Body [else: Else].
type ForStmt struct {
	For  Position
	Vars Expr // name, or tuple of names
	X    Expr
	Body []Stmt
	Else []Stmt // optional; run if the loop completes without break
}

func (x *ForStmt) Span() (start, end Position) {
	body := x.Else
	if body == nil {
		body = x.Body
	}
	_, end = body[len(body)-1].Span()
	return x.For, end
}

// A WhileStmt represents a while loop: while Cond: Body [else: Else].
type WhileStmt struct {
	While Position
	Cond  Expr
	Body  []Stmt
	Else  []Stmt // optional
}

func (x *WhileStmt) Span() (start, end Position) {
	body := x.Else
	if body == nil {
		body = x.Body
	}
	_, end = body[len(body)-1].Span()
	return x.While, end
}

// A GlobalStmt declares names as module-level: global a, b.
type GlobalStmt struct {
	Global Position
	Names  []*Ident
}

func (x *GlobalStmt) Span() (start, end Position) {
	_, end = x.Names[len(x.Names)-1].Span()
	return x.Global, end
}

// A NonlocalStmt declares names as bound in an enclosing function:
// nonlocal a, b.
type NonlocalStmt struct {
	Nonlocal Position
	Names    []*Ident
}

func (x *NonlocalStmt) Span() (start, end Position) {
	_, end = x.Names[len(x.Names)-1].Span()
	return x.Nonlocal, end
}

// An IfStmt is a conditional: if Cond: True; else: False.
// 'elif' is desugared into a chain of IfStmts.
type IfStmt struct {
	If      Position // IF or ELIF
	Cond    Expr
	True    []Stmt
	ElsePos Position // ELSE or ELIF
	False   []Stmt   // optional
}

func (x *IfStmt) Span() (start, end Position) {
	body := x.False
	if body == nil {
		body = x.True
	}
	_, end = body[len(body)-1].Span()
	return x.If, end
}

// A RaiseStmt raises an exception: raise [Exc].
// A bare raise re-raises the exception being handled.
type RaiseStmt struct {
	Raise Position
	Exc   Expr // may be nil
}

func (x *RaiseStmt) Span() (start, end Position) {
	if x.Exc == nil {
		return x.Raise, x.Raise.add("raise")
	}
	_, end = x.Exc.Span()
	return x.Raise, end
}

// A ReturnStmt returns from a function.
type ReturnStmt struct {
	Return Position
	Result Expr // may be nil
}

func (x *ReturnStmt) Span() (start, end Position) {
	if x.Result == nil {
		return x.Return, x.Return.add("return")
	}
	_, end = x.Result.Span()
	return x.Return, end
}

// A TryStmt represents exception handling:
// try: Body; except ...: ...; else: Else; finally: Finally.
type TryStmt struct {
	Try      Position
	Body     []Stmt
	Handlers []*ExceptClause
	Else     []Stmt // optional; requires at least one handler
	Finally  []Stmt // optional
}

func (x *TryStmt) Span() (start, end Position) {
	body := x.Body
	if len(x.Handlers) > 0 {
		body = x.Handlers[len(x.Handlers)-1].Body
	}
	if x.Else != nil {
		body = x.Else
	}
	if x.Finally != nil {
		body = x.Finally
	}
	_, end = body[len(body)-1].Span()
	return x.Try, end
}

// An ExceptClause is one handler of a TryStmt:
// except [Type [as Name]]: Body.
type ExceptClause struct {
	Except Position
	Type   Expr   // nil for a bare except
	Name   *Ident // optional 'as' name
	Body   []Stmt
}

func (x *ExceptClause) Span() (start, end Position) {
	_, end = x.Body[len(x.Body)-1].Span()
	return x.Except, end
}

// A WithStmt represents a context-manager block: with Items: Body.
type WithStmt struct {
	With  Position
	Items []*WithItem
	Body  []Stmt
}

func (x *WithStmt) Span() (start, end Position) {
	_, end = x.Body[len(x.Body)-1].Span()
	return x.With, end
}

// A WithItem is one manager of a WithStmt: X [as Var].
type WithItem struct {
	X   Expr
	Var Expr // optional 'as' target: name or tuple of names
}

func (x *WithItem) Span() (start, end Position) {
	start, end = x.X.Span()
	if x.Var != nil {
		_, end = x.Var.Span()
	}
	return
}

// An Expr is an expression.
type Expr interface {
	Node
	expr()
}

func (*AwaitExpr) expr()     {}
func (*BinaryExpr) expr()    {}
func (*CallExpr) expr()      {}
func (*Comprehension) expr() {}
func (*CondExpr) expr()      {}
func (*DictEntry) expr()     {}
func (*DictExpr) expr()      {}
func (*DotExpr) expr()       {}
func (*FString) expr()       {}
func (*Ident) expr()         {}
func (*IndexExpr) expr()     {}
func (*LambdaExpr) expr()    {}
func (*ListExpr) expr()      {}
func (*Literal) expr()       {}
func (*ParenExpr) expr()     {}
func (*SetExpr) expr()       {}
func (*SliceExpr) expr()     {}
func (*TupleExpr) expr()     {}
func (*UnaryExpr) expr()     {}
func (*YieldExpr) expr()     {}

// An Ident represents an identifier.
type Ident struct {
	NamePos Position
	Name    string

	Binding *Binding // set by resolver
}

func (x *Ident) Span() (start, end Position) {
	return x.NamePos, x.NamePos.add(x.Name)
}

// A Literal represents a literal string or number.
type Literal struct {
	Token    Token // = STRING | BYTES | INT | FLOAT
	TokenPos Position
	Raw      string      // uninterpreted text
	Value    interface{} // = string | int64 | *big.Int | float64
}

func (x *Literal) Span() (start, end Position) {
	return x.TokenPos, x.TokenPos.add(x.Raw)
}

// An FString represents a formatted string literal: f"a{x!r:>8}b".
// Its cooked text is an alternation of literal chunks and interpolations.
type FString struct {
	TokenPos Position
	Raw      string // uninterpreted text, for Span only
	Chunks   []FStringChunk
}

// An FStringChunk is a literal run of text followed by an optional
// interpolated expression with conversion and format spec.
type FStringChunk struct {
	Text string
	X    Expr   // nil for a trailing literal chunk
	Conv byte   // 0, 'r', or 's'
	Spec string // format spec after ':', or ""
}

func (x *FString) Span() (start, end Position) {
	return x.TokenPos, x.TokenPos.add(x.Raw)
}

// A CallExpr represents a function call expression: Fn(Args).
// An argument is an ordinary expression, name=value (keyword argument),
// *expr, or **expr.
type CallExpr struct {
	Fn     Expr
	Lparen Position
	Args   []Expr
	Rparen Position
}

func (x *CallExpr) Span() (start, end Position) {
	start, _ = x.Fn.Span()
	return start, x.Rparen.add(")")
}

// A DotExpr represents a field or method selector: X.Name.
type DotExpr struct {
	X       Expr
	Dot     Position
	NamePos Position
	Name    *Ident
}

func (x *DotExpr) Span() (start, end Position) {
	start, _ = x.X.Span()
	_, end = x.Name.Span()
	return
}

// A Comprehension represents a list, set, or dict comprehension:
// [Body for ... if ...], {Body for ...}, or {K: V for ...}.
type Comprehension struct {
	Kind    Token  // = LBRACK (list) | LBRACE (set or dict)
	Lbrack  Position
	Body    Expr   // a *DictEntry for a dict comprehension
	Clauses []Node // = *ForClause | *IfClause
	Rbrack  Position

	Function interface{} // a *resolve.Function, set by resolver
}

func (x *Comprehension) Span() (start, end Position) {
	return x.Lbrack, x.Rbrack.add("]")
}

// A ForClause represents a for clause in a comprehension: for Vars in X.
type ForClause struct {
	For  Position
	Vars Expr // name, or tuple of names
	In   Position
	X    Expr
}

func (x *ForClause) Span() (start, end Position) {
	_, end = x.X.Span()
	return x.For, end
}

// An IfClause represents an if clause in a comprehension: if Cond.
type IfClause struct {
	If   Position
	Cond Expr
}

func (x *IfClause) Span() (start, end Position) {
	_, end = x.Cond.Span()
	return x.If, end
}

// A DictExpr represents a dictionary literal: { List }.
type DictExpr struct {
	Lbrace Position
	List   []Expr // all *DictEntrys
	Rbrace Position
}

func (x *DictExpr) Span() (start, end Position) {
	return x.Lbrace, x.Rbrace.add("}")
}

// A DictEntry represents a dictionary entry: Key: Value.
// Used only within a DictExpr or as the body of a dict comprehension.
type DictEntry struct {
	Key   Expr
	Colon Position
	Value Expr
}

func (x *DictEntry) Span() (start, end Position) {
	start, _ = x.Key.Span()
	_, end = x.Value.Span()
	return start, end
}

// A SetExpr represents a set literal: { List }.
type SetExpr struct {
	Lbrace Position
	List   []Expr
	Rbrace Position
}

func (x *SetExpr) Span() (start, end Position) {
	return x.Lbrace, x.Rbrace.add("}")
}

// A LambdaExpr represents an inline function abstraction:
// lambda Params: Body.
type LambdaExpr struct {
	Lambda Position
	Params []Expr
	Body   Expr

	Function interface{} // a *resolve.Function, set by resolver
}

func (x *LambdaExpr) Span() (start, end Position) {
	_, end = x.Body.Span()
	return x.Lambda, end
}

// A ListExpr represents a list literal: [ List ].
type ListExpr struct {
	Lbrack Position
	List   []Expr
	Rbrack Position
}

func (x *ListExpr) Span() (start, end Position) {
	return x.Lbrack, x.Rbrack.add("]")
}

// A ParenExpr represents a parenthesized expression: (X).
// It is preserved so that a parenthesized comparison is not
// mistaken for part of a comparison chain.
type ParenExpr struct {
	Lparen Position
	X      Expr
	Rparen Position
}

func (x *ParenExpr) Span() (start, end Position) {
	return x.Lparen, x.Rparen.add(")")
}

// CondExpr represents the conditional: True if Cond else False.
type CondExpr struct {
	If      Position
	Cond    Expr
	True    Expr
	ElsePos Position
	False   Expr
}

func (x *CondExpr) Span() (start, end Position) {
	start, _ = x.True.Span()
	_, end = x.False.Span()
	return start, end
}

// A TupleExpr represents a tuple literal: (List).
type TupleExpr struct {
	Lparen Position // optional (e.g. in x, y = 0, 1), but required if List is empty
	List   []Expr
	Rparen Position
}

func (x *TupleExpr) Span() (start, end Position) {
	if x.Lparen.IsValid() {
		return x.Lparen, x.Rparen
	}
	return Start(x.List[0]), End(x.List[len(x.List)-1])
}

// A UnaryExpr represents a unary expression: Op X.
// A bare STAR in a parameter list is a UnaryExpr with X==nil.
type UnaryExpr struct {
	OpPos Position
	Op    Token
	X     Expr // may be nil (the keyword-only marker '*')
}

func (x *UnaryExpr) Span() (start, end Position) {
	if x.X != nil {
		_, end = x.X.Span()
	} else {
		end = x.OpPos.add(x.Op.String())
	}
	return x.OpPos, end
}

// A BinaryExpr represents a binary expression: X Op Y.
//
// A keyword argument (name=value) or a parameter with a default is
// represented by a BinaryExpr with Op==EQ.
type BinaryExpr struct {
	X     Expr
	OpPos Position
	Op    Token
	Y     Expr
}

func (x *BinaryExpr) Span() (start, end Position) {
	start, _ = x.X.Span()
	_, end = x.Y.Span()
	return start, end
}

// A SliceExpr represents a slice or substring expression: X[Lo:Hi:Step].
type SliceExpr struct {
	X            Expr
	Lbrack       Position
	Lo, Hi, Step Expr // all optional
	Rbrack       Position
}

func (x *SliceExpr) Span() (start, end Position) {
	start, _ = x.X.Span()
	return start, x.Rbrack
}

// An IndexExpr represents an index expression: X[Y].
type IndexExpr struct {
	X      Expr
	Lbrack Position
	Y      Expr
	Rbrack Position
}

func (x *IndexExpr) Span() (start, end Position) {
	start, _ = x.X.Span()
	return start, x.Rbrack
}

// A YieldExpr represents a yield expression: yield [Result].
type YieldExpr struct {
	Yield  Position
	Result Expr // may be nil
}

func (x *YieldExpr) Span() (start, end Position) {
	if x.Result == nil {
		return x.Yield, x.Yield.add("yield")
	}
	_, end = x.Result.Span()
	return x.Yield, end
}

// An AwaitExpr represents an await expression: await X.
type AwaitExpr struct {
	Await Position
	X     Expr
}

func (x *AwaitExpr) Span() (start, end Position) {
	_, end = x.X.Span()
	return x.Await, end
}
