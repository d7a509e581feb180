// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "testing"

var quoteTests = []struct {
	q    string // quoted
	s    string // unquoted (actual string value)
	std  bool   // q is standard form for s
	byte bool   // q denotes a byte string
}{
	{`""`, "", true, false},
	{`''`, "", false, false},
	{`"hello"`, `hello`, true, false},
	{`'hello'`, `hello`, false, false},
	{`"quote\"here"`, `quote"here`, true, false},
	{`'quote"here'`, `quote"here`, false, false},
	{`"quote'here"`, `quote'here`, true, false},
	{`'quote\'here'`, `quote'here`, false, false},
	{`"""hello " ' world "" asdf ''' foo"""`, `hello " ' world "" asdf ''' foo`, false, false},
	{"'''hello\nworld'''", "hello\nworld", false, false},
	{`"hello\nworld"`, "hello\nworld", true, false},
	{`"\a\b\f\v"`, "\a\b\f\v", false, false},
	{`"\x00\xff"`, "\x00\xff", false, false},
	{`"\x00\t"`, "\x00\t", true, false},
	{`"\000\377"`, "\x00\xff", false, false},
	{`"é"`, "é", false, false},
	{`"\U0001f600"`, "\U0001f600", false, false},
	{`"café"`, "café", false, false},
	{`"café"`, "café", true, false},
	{`"\q"`, `\q`, false, false}, // unrecognized escape keeps its backslash
	{`r"\n"`, `\n`, false, false},
	{`R'\d+'`, `\d+`, false, false},
	{`b"ab"`, "ab", true, true},
	{`B'ab'`, "ab", false, true},
	{`rb"\x"`, `\x`, false, true},
	{`"a\
b"`, "ab", false, false}, // escaped newline is elided
}

func TestQuote(t *testing.T) {
	for _, tt := range quoteTests {
		if !tt.std {
			continue
		}
		q := Quote(tt.s, tt.byte)
		if q != tt.q {
			t.Errorf("Quote(%#q) = %s, want %s", tt.s, q, tt.q)
		}
	}
}

func TestUnquote(t *testing.T) {
	for _, tt := range quoteTests {
		s, isByte, isFString, err := unquote(tt.q)
		if err != nil {
			t.Errorf("unquote(%s) failed: %v", tt.q, err)
			continue
		}
		if s != tt.s || isByte != tt.byte || isFString {
			t.Errorf("unquote(%s) = %#q, byte=%v, fstring=%v, want %#q, byte=%v, fstring=false",
				tt.q, s, isByte, isFString, tt.s, tt.byte)
		}
	}
}

func TestUnquoteFString(t *testing.T) {
	s, _, isFString, err := unquote(`f"hi {name}!"`)
	if err != nil {
		t.Fatal(err)
	}
	if !isFString || s != "hi {name}!" {
		t.Errorf("unquote(f-string) = %#q, fstring=%v, want %#q, fstring=true", s, isFString, "hi {name}!")
	}
}

func TestUnquoteErrors(t *testing.T) {
	for _, q := range []string{
		`"`,
		`"abc`,
		`"abc'`,
		`rr"x"`,
		`bb"x"`,
		`bf"x"`,
		`"""abc"`,
	} {
		if _, _, _, err := unquote(q); err == nil {
			t.Errorf("unquote(%#q) unexpectedly succeeded", q)
		}
	}
}
