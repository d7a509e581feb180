// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"go.adder.dev/internal/chunkedfile"
	"go.adder.dev/syntax"
)

func TestExprParseTrees(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`x`, `x`},
		{`1`, `1`},
		{`1.5`, `1.5`},
		{`"hello"`, `"hello"`},
		{`-1`, `(UnaryExpr Op=- X=1)`},
		{`not x`, `(UnaryExpr Op=not X=x)`},
		{`x + y`,
			`(BinaryExpr X=x Op=+ Y=y)`},
		{`x + y * z`,
			`(BinaryExpr X=x Op=+ Y=(BinaryExpr X=y Op=* Y=z))`},
		{`(x + y) * z`,
			`(BinaryExpr X=(ParenExpr X=(BinaryExpr X=x Op=+ Y=y)) Op=* Y=z)`},
		{`1 < x < 3`,
			`(BinaryExpr X=(BinaryExpr X=1 Op=< Y=x) Op=< Y=3)`},
		{`x is not None`,
			`(BinaryExpr X=x Op=is not Y=None)`},
		{`a not in b`,
			`(BinaryExpr X=a Op=not in Y=b)`},
		{`a.b.c`,
			`(DotExpr X=(DotExpr X=a Name=b) Name=c)`},
		{`a[i]`,
			`(IndexExpr X=a Y=i)`},
		{`a[1:2]`,
			`(SliceExpr X=a Lo=1 Hi=2)`},
		{`a[::2]`,
			`(SliceExpr X=a Step=2)`},
		{`f()`,
			`(CallExpr Fn=f)`},
		{`f(x, y)`,
			`(CallExpr Fn=f Args=(x y))`},
		{`f(*args, **kwargs)`,
			`(CallExpr Fn=f Args=((UnaryExpr Op=* X=args) (UnaryExpr Op=** X=kwargs)))`},
		{`plot(1, color=c)`,
			`(CallExpr Fn=plot Args=(1 (BinaryExpr X=color Op== Y=c)))`},
		{`[1, 2, 3]`,
			`(ListExpr List=(1 2 3))`},
		{`()`,
			`(TupleExpr)`},
		{`(1, 2)`,
			`(TupleExpr List=(1 2))`},
		{`{1: 2}`,
			`(DictExpr List=((DictEntry Key=1 Value=2)))`},
		{`{1, 2}`,
			`(SetExpr List=(1 2))`},
		{`a if b else c`,
			`(CondExpr Cond=b True=a False=c)`},
		{`lambda x: x`,
			`(LambdaExpr Params=(x) Body=x)`},
		{`lambda x, y=1: x`,
			`(LambdaExpr Params=(x (BinaryExpr X=y Op== Y=1)) Body=x)`},
		{`[x for x in y]`,
			`(Comprehension Kind=[ Body=x Clauses=((ForClause Vars=x X=y)))`},
		{`[x for x in y if x]`,
			`(Comprehension Kind=[ Body=x Clauses=((ForClause Vars=x X=y) (IfClause Cond=x)))`},
		{`{k: v for k, v in items}`,
			`(Comprehension Kind={ Body=(DictEntry Key=k Value=v) Clauses=((ForClause Vars=(TupleExpr List=(k v)) X=items)))`},
		{`{x for x in y}`,
			`(Comprehension Kind={ Body=x Clauses=((ForClause Vars=x X=y)))`},
		{`f"{x}!"`,
			`(FString Chunks=((FStringChunk X=x) (FStringChunk Text="!")))`},
		{`f"{x!r}"`,
			`(FString Chunks=((FStringChunk X=x Conv='r')))`},
		{`f"{x:04d}"`,
			`(FString Chunks=((FStringChunk X=x Spec="04d")))`},
	} {
		e, err := syntax.ParseExpr("foo.py", test.input, 0)
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, stripPos(err))
			continue
		}
		if got := treeString(e); test.want != got {
			t.Errorf("parse `%s` = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestStmtParseTrees(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`x = 1`,
			`(AssignStmt Op== LHS=x RHS=1)`},
		{`x += 1`,
			`(AssignStmt Op=+= LHS=x RHS=1)`},
		{`x, y = y, x`,
			`(AssignStmt Op== LHS=(TupleExpr List=(x y)) RHS=(TupleExpr List=(y x)))`},
		{`print(x)`,
			`(ExprStmt X=(CallExpr Fn=print Args=(x)))`},
		{`return x`,
			`(ReturnStmt Result=x)`},
		{`return`,
			`(ReturnStmt)`},
		{`del d[k]`,
			`(DelStmt List=((IndexExpr X=d Y=k)))`},
		{`global a, b`,
			`(GlobalStmt Names=(a b))`},
		{`nonlocal c`,
			`(NonlocalStmt Names=(c))`},
		{`assert x, "boom"`,
			`(AssertStmt Cond=x Msg="boom")`},
		{`raise`,
			`(RaiseStmt)`},
		{`raise ValueError(msg)`,
			`(RaiseStmt Exc=(CallExpr Fn=ValueError Args=(msg)))`},
		{"if x:\n\tpass",
			`(IfStmt Cond=x True=((BranchStmt Token=pass)))`},
		{"if x:\n\tpass\nelse:\n\tbreak",
			`(IfStmt Cond=x True=((BranchStmt Token=pass)) False=((BranchStmt Token=break)))`},
		{"for x in y:\n\tcontinue",
			`(ForStmt Vars=x X=y Body=((BranchStmt Token=continue)))`},
		{"for x in y:\n\tbreak\nelse:\n\tpass",
			`(ForStmt Vars=x X=y Body=((BranchStmt Token=break)) Else=((BranchStmt Token=pass)))`},
		{"while x:\n\tbreak",
			`(WhileStmt Cond=x Body=((BranchStmt Token=break)))`},
		{"def f(x):\n\treturn x",
			`(DefStmt Name=f Params=(x) Body=((ReturnStmt Result=x)))`},
		{"def f(a, b=1, *args, **kwargs):\n\tpass",
			`(DefStmt Name=f Params=(a (BinaryExpr X=b Op== Y=1) (UnaryExpr Op=* X=args) (UnaryExpr Op=** X=kwargs)) Body=((BranchStmt Token=pass)))`},
		{"async def f():\n\treturn (await g())",
			`(DefStmt Name=f Body=((ReturnStmt Result=(ParenExpr X=(AwaitExpr X=(CallExpr Fn=g))))) Async)`},
		{"class C:\n\tpass",
			`(ClassStmt Name=C Body=((BranchStmt Token=pass)))`},
		{"class C(Base):\n\tdef m(self):\n\t\tpass",
			`(ClassStmt Name=C Bases=(Base) Body=((DefStmt Name=m Params=(self) Body=((BranchStmt Token=pass)))))`},
		{"try:\n\tpass\nexcept ValueError as e:\n\traise",
			`(TryStmt Body=((BranchStmt Token=pass)) Handlers=((ExceptClause Type=ValueError Name=e Body=((RaiseStmt)))))`},
		{"try:\n\tpass\nexcept:\n\tpass\nfinally:\n\tpass",
			`(TryStmt Body=((BranchStmt Token=pass)) Handlers=((ExceptClause Body=((BranchStmt Token=pass)))) Finally=((BranchStmt Token=pass)))`},
		{"with open(p) as f:\n\tpass",
			`(WithStmt Items=((WithItem X=(CallExpr Fn=open Args=(p)) Var=f)) Body=((BranchStmt Token=pass)))`},
		{"with a() as x, b() as y:\n\tpass",
			`(WithStmt Items=((WithItem X=(CallExpr Fn=a) Var=x) (WithItem X=(CallExpr Fn=b) Var=y)) Body=((BranchStmt Token=pass)))`},
	} {
		f, err := syntax.Parse("foo.py", test.input, 0)
		if err != nil {
			t.Errorf("parse `%s` failed: %v", test.input, stripPos(err))
			continue
		}
		if len(f.Stmts) != 1 {
			t.Errorf("parse `%s`: got %d statements, want 1", test.input, len(f.Stmts))
			continue
		}
		if got := treeString(f.Stmts[0]); test.want != got {
			t.Errorf("parse `%s` = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	filename := "testdata/errors.py"
	for _, chunk := range chunkedfile.Read(filename, t) {
		_, err := syntax.Parse(filename, chunk.Source, 0)
		switch err := err.(type) {
		case nil:
			// ok
		case syntax.Error:
			chunk.GotError(int(err.Pos.Line), err.Msg)
		default:
			t.Error(err)
		}
		chunk.Done()
	}
}

// stripPos removes the position information associated with an error,
// to simplify test expectations.
func stripPos(err error) string {
	if e, ok := err.(syntax.Error); ok {
		return e.Msg
	}
	return err.Error()
}

// treeString prints a syntax tree as a parenthesized s-expression,
// showing struct types and non-default fields, suppressing positions.
func treeString(n syntax.Node) string {
	var buf bytes.Buffer
	writeTree(&buf, reflect.ValueOf(n))
	return buf.String()
}

func writeTree(out *bytes.Buffer, x reflect.Value) {
	switch x.Kind() {
	case reflect.String, reflect.Int, reflect.Bool:
		fmt.Fprintf(out, "%v", x.Interface())
	case reflect.Ptr, reflect.Interface:
		if elem := x.Elem(); elem.Kind() == 0 { // nil interface
			out.WriteString("nil")
		} else {
			writeTree(out, elem)
		}
	case reflect.Struct:
		switch v := x.Interface().(type) {
		case syntax.Literal:
			switch v.Token {
			case syntax.STRING:
				fmt.Fprintf(out, "%q", v.Value)
			case syntax.BYTES:
				fmt.Fprintf(out, "b%q", v.Value)
			case syntax.INT, syntax.FLOAT:
				fmt.Fprintf(out, "%v", v.Value)
			}
			return
		case syntax.Ident:
			out.WriteString(v.Name)
			return
		}
		fmt.Fprintf(out, "(%s", x.Type().Name())
		for i, n := 0, x.NumField(); i < n; i++ {
			f := x.Field(i)
			if f.Type() == reflect.TypeOf(syntax.Position{}) {
				continue // skip positions
			}
			name := x.Type().Field(i).Name
			if name == "Raw" {
				continue // skip uninterpreted source text
			}
			if f.Type() == reflect.TypeOf(syntax.Token(0)) {
				fmt.Fprintf(out, " %s=%s", name, f.Interface())
				continue
			}
			switch f.Kind() {
			case reflect.Slice:
				if n := f.Len(); n > 0 {
					fmt.Fprintf(out, " %s=(", name)
					for i := 0; i < n; i++ {
						if i > 0 {
							out.WriteByte(' ')
						}
						writeTree(out, f.Index(i))
					}
					out.WriteByte(')')
				}
				continue
			case reflect.Ptr, reflect.Interface:
				if f.IsNil() {
					continue
				}
			case reflect.String:
				if s := f.String(); s != "" {
					fmt.Fprintf(out, " %s=%q", name, s)
				}
				continue
			case reflect.Uint8:
				if c := f.Uint(); c != 0 {
					fmt.Fprintf(out, " %s=%q", name, c)
				}
				continue
			case reflect.Bool:
				if f.Bool() {
					fmt.Fprintf(out, " %s", name)
				}
				continue
			}
			fmt.Fprintf(out, " %s=", name)
			writeTree(out, f)
		}
		out.WriteByte(')')
	default:
		fmt.Fprintf(out, "%T", x.Interface())
	}
}
