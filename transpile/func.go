// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpile

import (
	"fmt"
	"strings"

	"go.adder.dev/resolve"
	"go.adder.dev/syntax"
)

// A param is one classified entry of a function's parameter list.
type param struct {
	name   *syntax.Ident
	dflt   syntax.Expr // nil if the parameter is required
	kwonly bool
}

// splitParams classifies fn.Params into positional/keyword-only
// parameters and the *args and **kwargs catch-alls.
func splitParams(fn *resolve.Function) (params []param, varargs, kwargs *syntax.Ident) {
	kwonly := false
	for _, p := range fn.Params {
		switch p := p.(type) {
		case *syntax.Ident:
			params = append(params, param{name: p, kwonly: kwonly})
		case *syntax.BinaryExpr:
			params = append(params, param{name: p.X.(*syntax.Ident), dflt: p.Y, kwonly: kwonly})
		case *syntax.UnaryExpr:
			if p.Op == syntax.STAR {
				kwonly = true
				if p.X != nil {
					varargs = p.X.(*syntax.Ident)
				}
			} else {
				kwargs = p.X.(*syntax.Ident)
			}
		}
	}
	return params, varargs, kwargs
}

// A defaultInit is a parameter default evaluated once at definition
// time, held in a variable of the defining scope so every call sees
// the same value.
type defaultInit struct {
	name string // variable to declare in the defining scope
	expr string // initializer, translated in the defining scope
}

// funcParts is a lowered function: the default initializers belong to
// the scope the function is defined in, and code is the complete
// function expression (first line "function ... {", last line "}").
type funcParts struct {
	defaults []defaultInit
	code     string
}

// functionParts lowers a function to a JavaScript function expression.
// emitBody emits the translated body and runs with the function's
// scope pushed; isMethod binds the first parameter to this and drops
// it from the parameter list.
//
// Functions whose parameters are all plain positionals map directly
// onto JavaScript parameters.  Any default, keyword-only parameter,
// *args or **kwargs forces the general form, which takes no declared
// parameters and instead splits the caller's arguments object into
// positionals and keywords.
func (t *translator) functionParts(fn *resolve.Function, isMethod, async bool, emitBody func(*emitter)) funcParts {
	if fn.IsGenerator && !t.opts.Profile.Generators {
		t.errorf(fn.Pos, UnsupportedConstruct, "generator functions require a target profile with generator support")
	}
	if async && !t.opts.Profile.Async {
		t.errorf(fn.Pos, UnsupportedConstruct, "async functions require a target profile with async support")
	}

	params, varargs, kwargs := splitParams(fn)

	var self *syntax.Ident
	if isMethod {
		if len(params) == 0 || params[0].kwonly {
			t.errorf(fn.Pos, UnsupportedConstruct, "method %s must take a receiver parameter", fn.Name)
		}
		self = params[0].name
		params = params[1:]
	}

	// Defaults are evaluated in the defining scope, before the
	// function scope exists.
	var parts funcParts
	dflt := make(map[*syntax.Ident]string)
	for _, p := range params {
		if p.dflt == nil {
			continue
		}
		name := fmt.Sprintf("$d%d_%s", t.ntemp, p.name.Name)
		t.ntemp++
		parts.defaults = append(parts.defaults, defaultInit{name, t.expr(p.dflt).code})
		dflt[p.name] = name
	}

	t.pushFunction(fn)
	savedLoops, savedHandlers := t.loops, t.handlers
	t.loops, t.handlers = nil, nil
	defer func() {
		t.loops, t.handlers = savedLoops, savedHandlers
		t.popFunction()
	}()

	general := fn.HasVarargs || fn.HasKwargs || fn.HasDefaults || fn.NumKwonlyParams > 0

	// Bindings introduced by the parameter list are declared by the
	// prologue; the var prologue covers the rest of the locals.
	declared := make(map[*syntax.Binding]bool)
	if self != nil {
		declared[self.Binding] = true
	}
	for _, p := range params {
		declared[p.name.Binding] = true
	}
	if varargs != nil {
		declared[varargs.Binding] = true
	}
	if kwargs != nil {
		declared[kwargs.Binding] = true
	}
	var rest []*syntax.Binding
	for _, b := range fn.Locals {
		if !declared[b] {
			rest = append(rest, b)
		}
	}

	body := &emitter{indent: t.opts.Indent, depth: 1}
	if self != nil {
		body.line("var %s = this;", t.bindingName(self))
	}

	var jsParams []string
	if general {
		t.generalPrologue(body, fn, params, varargs, kwargs, dflt)
	} else {
		for _, p := range params {
			jsParams = append(jsParams, t.bindingName(p.name))
		}
	}

	inner := &emitter{indent: t.opts.Indent, depth: 1}
	emitBody(inner)

	locals, err := t.declare(rest)
	if err != nil {
		panic(err.(*Error))
	}
	decls := append(locals, t.fn.temps...)

	keyword := "function"
	if fn.IsGenerator {
		keyword = "function*"
	}
	if async {
		keyword = "async " + keyword
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "%s (%s) {\n", keyword, strings.Join(jsParams, ", "))
	buf.WriteString(body.String())
	if len(decls) > 0 {
		buf.WriteString(t.opts.Indent + "var " + joinNames(decls) + ";\n")
	}
	buf.WriteString(inner.String())
	buf.WriteString("}")
	parts.code = buf.String()
	return parts
}

// generalPrologue emits the argument-splitting prologue of the
// general function form.
func (t *translator) generalPrologue(body *emitter, fn *resolve.Function, params []param, varargs, kwargs *syntax.Ident, dflt map[*syntax.Ident]string) {
	args := t.stmtvar("args")
	body.line("var %s = %s(arguments);", args, t.helper("_py_splitargs"))

	npos := 0
	for _, p := range params {
		if !p.kwonly {
			npos++
		}
	}

	pos := 0
	for _, p := range params {
		name := t.bindingName(p.name)
		key := jsQuote(p.name.Name)
		if p.kwonly {
			body.line("var %s = %s.kw[%s];", name, args, key)
		} else {
			body.line("var %s = %s.pos.length > %d ? %s.pos[%d] : %s.kw[%s];",
				name, args, pos, args, pos, args, key)
			pos++
		}
		body.line("delete %s.kw[%s];", args, key)
		if d, ok := dflt[p.name]; ok {
			body.line("if (%s === undefined) { %s = %s; }", name, name, d)
		} else {
			body.line("if (%s === undefined) { throw %s(\"TypeError\", %s); }",
				name, t.helper("_py_err"),
				jsQuote(fmt.Sprintf("%s() missing required argument: '%s'", fn.Name, p.name.Name)))
		}
	}

	if varargs != nil {
		body.line("var %s = %s.pos.slice(%d);", t.bindingName(varargs), args, npos)
	} else {
		body.line("if (%s.pos.length > %d) { throw %s(\"TypeError\", %s); }",
			args, npos, t.helper("_py_err"),
			jsQuote(fmt.Sprintf("%s() takes at most %d positional arguments", fn.Name, npos)))
	}
	if kwargs != nil {
		body.line("var %s = %s.kw;", t.bindingName(kwargs), args)
	} else {
		k := t.stmtvar("k")
		body.line("for (var %s in %s.kw) { throw %s(\"TypeError\", %s + %s + \"'\"); }",
			k, args, t.helper("_py_err"),
			jsQuote(fn.Name+"() got an unexpected keyword argument '"), k)
	}
}

// emitFunc emits a lowered function as an assignment statement,
// preceded by its default initializers.
func (t *translator) emitFunc(e *emitter, target string, parts funcParts) {
	for _, d := range parts.defaults {
		e.line("var %s = %s;", d.name, d.expr)
	}
	lines := strings.Split(parts.code, "\n")
	e.line("%s = %s", target, lines[0])
	for _, l := range lines[1 : len(lines)-1] {
		e.line("%s", l)
	}
	e.line("};")
}

func (t *translator) lambdaExpr(e *syntax.LambdaExpr) fragment {
	fn := e.Function.(*resolve.Function)
	parts := t.functionParts(fn, false, false, func(body *emitter) {
		body.line("return %s;", t.expr(e.Body).code)
	})
	if len(parts.defaults) == 0 {
		return fragment{parts.code, precLowest}
	}
	// Defaults need a defining scope; wrap the function in one.
	var buf strings.Builder
	buf.WriteString("(function () {\n")
	for _, d := range parts.defaults {
		buf.WriteString(t.opts.Indent + "var " + d.name + " = " + d.expr + ";\n")
	}
	buf.WriteString(t.opts.Indent + "return " + reindent(parts.code, t.opts.Indent) + ";\n")
	buf.WriteString("}).call(this)")
	return fragment{buf.String(), precPostfix}
}

// reindent shifts every line of code after the first one level deeper.
func reindent(code, indent string) string {
	lines := strings.Split(code, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}
