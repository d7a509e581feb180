// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The adder command translates a Python-subset file to JavaScript.
// With no arguments, it starts a read-translate-print loop (REPL).
package main // import "go.adder.dev/cmd/adder"

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"go.adder.dev/jslib"
	"go.adder.dev/repl"
	"go.adder.dev/transpile"
)

// flags
var (
	execprog   = flag.String("c", "", "translate program `prog`")
	output     = flag.String("o", "", "write generated JavaScript to `file` (default stdout)")
	runtimeOut = flag.String("runtime", "", "write the shared helper runtime to `file` and exit")
	configFile = flag.String("config", "", "read default options from TOML `file`")
	indent     = flag.String("indent", "    ", "indentation unit for generated code")
	target     = flag.String("target", "es5", "target profile: es5 or es6")
	link       = flag.String("link", "inline", "helper linking: inline or external")
	batch      = flag.Bool("batch", false, "report every untranslatable statement, not just the first")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("adder: ")
	log.SetFlags(0)
	flag.Parse()

	if *runtimeOut != "" {
		// Emit the complete helper runtime for external linking.
		f, err := os.Create(*runtimeOut)
		if err != nil {
			log.Fatal(err)
		}
		err = jslib.Emit(f, jslib.Names())
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			log.Fatal(err)
		}
		return 0
	}

	opts, err := options()
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			src      interface{}
		)
		if *execprog != "" {
			if flag.NArg() > 0 {
				log.Fatal("cannot combine -c with an input file name")
			}
			filename = "cmdline"
			src = *execprog
		} else {
			filename = flag.Arg(0)
		}
		res, err := transpile.Source(filename, src, opts)
		if err != nil {
			printError(err)
			if res == nil {
				return 1
			}
			// In batch mode the statements that translated
			// cleanly are still worth emitting.
		}
		if werr := write(res.JS); werr != nil {
			log.Fatal(werr)
		}
		if err != nil {
			return 1
		}

	case flag.NArg() == 0:
		if !flagSet("link") {
			// Interactive display, not a runnable module: keep the
			// helper definitions out of each printed translation.
			opts.Linking = transpile.LinkExternal
		}
		fmt.Fprintf(os.Stderr, "Adder translator (jslib %s)\n", jslib.Version)
		repl.NewSession(opts).Loop()

	default:
		log.Fatal("want at most one input file name")
	}
	return 0
}

// options builds the translation options from the config file, if any,
// with explicit command-line flags taking precedence.
func options() (*transpile.Options, error) {
	if *configFile != "" {
		var cfg struct {
			Indent string `toml:"indent"`
			Target string `toml:"target"`
			Link   string `toml:"link"`
			Batch  bool   `toml:"batch"`
		}
		tree, err := toml.LoadFile(*configFile)
		if err != nil {
			return nil, err
		}
		if err := tree.Unmarshal(&cfg); err != nil {
			return nil, fmt.Errorf("config %s: %v", *configFile, err)
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["indent"] && cfg.Indent != "" {
			*indent = cfg.Indent
		}
		if !set["target"] && cfg.Target != "" {
			*target = cfg.Target
		}
		if !set["link"] && cfg.Link != "" {
			*link = cfg.Link
		}
		if !set["batch"] && cfg.Batch {
			*batch = true
		}
	}

	opts := transpile.DefaultOptions()
	opts.Indent = *indent
	opts.Batch = *batch
	switch *target {
	case "es5":
		opts.Profile = transpile.ES5
	case "es6":
		opts.Profile = transpile.ES6
	default:
		return nil, fmt.Errorf("unknown target profile %q", *target)
	}
	switch *link {
	case "inline":
		opts.Linking = transpile.LinkInline
	case "external":
		opts.Linking = transpile.LinkExternal
	default:
		return nil, fmt.Errorf("unknown linking mode %q", *link)
	}
	return opts, nil
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func write(js string) error {
	if *output == "" {
		_, err := os.Stdout.WriteString(js)
		return err
	}
	return os.WriteFile(*output, []byte(js), 0666)
}

// printError reports translation errors on stderr, colorized when
// stderr is a terminal.
func printError(err error) {
	var errs transpile.ErrorList
	switch err := err.(type) {
	case transpile.ErrorList:
		errs = err
	case *transpile.Error:
		errs = transpile.ErrorList{err}
	default:
		fmt.Fprintln(os.Stderr, err)
		return
	}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		p := pterm.Error.WithWriter(os.Stderr)
		for _, e := range errs {
			p.Printfln("%s [%s]: %s", pterm.Bold.Sprint(e.Pos), e.Kind, e.Msg)
		}
	} else {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
	}
}
