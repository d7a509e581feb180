// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpile

// A TargetProfile declares which native constructs the JavaScript
// target supports.  Constructs outside the profile fail translation
// with an unsupported-construct error rather than degrade.
type TargetProfile struct {
	Generators bool // function* / yield
	Async      bool // async function / await
	BlockScope bool // let declarations (informational; lowering uses closures)
}

// Predefined profiles.
var (
	ES5 = TargetProfile{}
	ES6 = TargetProfile{Generators: true, Async: true, BlockScope: true}
)

// A LinkMode selects how the runtime helpers reach the output.
type LinkMode int

const (
	// LinkInline prepends the definitions of all referenced helpers
	// to the generated module.
	LinkInline LinkMode = iota

	// LinkExternal emits no helper definitions; the caller links a
	// shared runtime module (jslib.Emit) that defines them.
	LinkExternal
)

// Options configures a single translation call.
// The zero value is not useful; start from DefaultOptions.
type Options struct {
	// Indent is the indentation unit for generated code.
	Indent string

	// Profile gates generator and async translation.
	Profile TargetProfile

	// Linking selects inline or external helper linking.
	Linking LinkMode

	// Batch collects all errors per top-level statement instead of
	// stopping at the first.  The call still fails if any statement
	// failed, but output is produced for the statements that
	// translated cleanly.
	Batch bool
}

// DefaultOptions returns the default option set: four-space indent,
// ES5 profile, inline helpers, fail on first error.
func DefaultOptions() *Options {
	return &Options{Indent: "    "}
}
