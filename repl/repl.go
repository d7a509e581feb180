// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/translate/print loop for the translator.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// If an input can be parsed as a single expression, the REPL prints
// the JavaScript expression it translates to.  Otherwise the REPL
// reads lines until the statement is complete, translates it, and
// prints the generated module.  Names defined by earlier inputs stay
// visible to later ones.
package repl // import "go.adder.dev/repl"

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"go.adder.dev/jslib"
	"go.adder.dev/resolve"
	"go.adder.dev/syntax"
	"go.adder.dev/transpile"
)

// A Session holds the state of one interactive session: the names
// defined by previous inputs and the translation options in effect.
type Session struct {
	Options *transpile.Options
	defined map[string]bool
}

// NewSession returns a fresh session.  If opts is nil the session uses
// the default options with external helper linking, since the REPL
// shows translations rather than building a runnable module.
func NewSession(opts *transpile.Options) *Session {
	if opts == nil {
		opts = transpile.DefaultOptions()
		opts.Linking = transpile.LinkExternal
	}
	return &Session{Options: opts, defined: make(map[string]bool)}
}

// Loop executes a read, translate, print loop until EOF.
func (s *Session) Loop() {
	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := s.rep(rl); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, translates, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed.  Translation errors are printed.
func (s *Session) rep(rl *readline.Instance) error {
	eof := false

	// readline returns EOF, ErrInterrupt, or a line including "\n".
	rl.SetPrompt(">>> ")
	readline := func() ([]byte, error) {
		line, err := rl.Readline()
		rl.SetPrompt("... ")
		if err != nil {
			if err == io.EOF {
				eof = true
			}
			return nil, err
		}
		return []byte(line + "\n"), nil
	}

	// parse
	f, err := syntax.ParseCompoundStmt("<stdin>", readline)
	if err != nil {
		if eof {
			return io.EOF
		}
		PrintError(err)
		return nil
	}
	if len(f.Stmts) == 0 {
		return nil // blank line
	}

	// resolve, with the session's definitions in scope
	if err := resolve.REPLChunk(f, s.isDefined, jslib.IsBuiltin); err != nil {
		PrintError(err)
		return nil
	}

	// translate and print
	if expr := soleExpr(f); expr != nil {
		res, err := transpile.Expr(expr, s.Options)
		if err != nil {
			PrintError(err)
			return nil
		}
		fmt.Println(res.JS)
	} else {
		res, err := transpile.File(f, s.Options)
		if err != nil {
			PrintError(err)
			return nil
		}
		fmt.Print(res.JS)
	}

	// Later inputs may refer to the names this one defined.
	for _, b := range f.Module.(*resolve.Module).Globals {
		s.defined[b.First.Name] = true
	}
	return nil
}

func (s *Session) isDefined(name string) bool { return s.defined[name] }

func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// PrintError prints the error to stderr,
// listing each entry if it carries several.
func PrintError(err error) {
	switch err := err.(type) {
	case transpile.ErrorList:
		for _, e := range err {
			fmt.Fprintln(os.Stderr, e)
		}
	case resolve.ErrorList:
		for _, e := range err {
			fmt.Fprintln(os.Stderr, e)
		}
	default:
		fmt.Fprintln(os.Stderr, err)
	}
}
