// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func scan(src interface{}) (tokens string, err error) {
	sc, err := newScanner("foo.py", src, false)
	if err != nil {
		return "", err
	}

	defer sc.recover(&err)

	var buf bytes.Buffer
	var val tokenValue
	for {
		tok := sc.nextToken(&val)

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		switch tok {
		case EOF:
			buf.WriteString("EOF")
		case IDENT:
			buf.WriteString(val.raw)
		case INT:
			if val.bigInt != nil {
				fmt.Fprintf(&buf, "%d", val.bigInt)
			} else {
				fmt.Fprintf(&buf, "%d", val.int)
			}
		case FLOAT:
			fmt.Fprintf(&buf, "%e", val.float)
		case STRING, BYTES:
			buf.WriteString(Quote(val.string, tok == BYTES))
		default:
			buf.WriteString(tok.String())
		}
		if tok == EOF {
			break
		}
	}
	return buf.String(), nil
}

func TestScanner(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{``, "EOF"},
		{`123`, "123 EOF"},
		{`x.y`, "x . y EOF"},
		{`print(x)`, "print ( x ) EOF"},
		{`print(x); print(y)`, "print ( x ) ; print ( y ) EOF"},
		{"\nprint(\n1\n)\n", "print ( 1 ) newline EOF"},
		{`/ // /= //=`, "/ // /= //= EOF"},
		{"# comment\nx", "x EOF"},
		{`x = 1`, "x = 1 EOF"},
		{`x == 1`, "x == 1 EOF"},
		{`x != 1`, "x != 1 EOF"},
		{`x <<= 1`, "x <<= 1 EOF"},
		{`~x ** 2`, "~ x ** 2 EOF"},
		{`0x1f`, "31 EOF"},
		{`0o17`, "15 EOF"},
		{`0b1010`, "10 EOF"},
		{`1.5`, "1.500000e+00 EOF"},
		{`1e3`, "1.000000e+03 EOF"},
		{`"hello"`, `"hello" EOF`},
		{`'hello'`, `"hello" EOF`},
		{`"\n"`, `"\n" EOF`},
		{`b"ab"`, `b"ab" EOF`},
		{`f"hi {x}"`, `"hi {x}" EOF`},
		{"def f(x):\n\treturn x + 1\n",
			"def f ( x ) : newline indent return x + 1 newline outdent EOF"},
		{"if x:\n\tpass\nelse:\n\tpass\n",
			"if x : newline indent pass newline outdent else : newline indent pass newline outdent EOF"},
		{"def f():\n\tif x:\n\t\tpass\n",
			"def f ( ) : newline indent if x : newline indent pass newline outdent outdent EOF"},
		// EOF with open indentation implies a NEWLINE before the OUTDENTs.
		{"if x:\n\tpass",
			"if x : newline indent pass newline outdent EOF"},
		{"def f():\n\tif x:\n\t\tpass",
			"def f ( ) : newline indent if x : newline indent pass newline outdent outdent EOF"},
		{"def f():\n\tpass\n# oops",
			"def f ( ) : newline indent pass newline outdent EOF"},
		{"def f():\n\tpass\n   ",
			"def f ( ) : newline indent pass newline outdent EOF"},
		{"try:\n\tpass\nexcept ValueError as e:\n\traise\n",
			"try : newline indent pass newline outdent except ValueError as e : newline indent raise newline outdent EOF"},
		{"async def f():\n\tawait g()\n",
			"async def f ( ) : newline indent await g ( ) newline outdent EOF"},
		{"with open(p) as f:\n\tpass\n",
			"with open ( p ) as f : newline indent pass newline outdent EOF"},
		{"while True:\n\tbreak\n",
			"while True : newline indent break newline outdent EOF"},
		{"x = (1 +\n2)", "x = ( 1 + 2 ) EOF"},
		{"x = 1 \\\n+ 2", "x = 1 + 2 EOF"},
		{`x = "a" "b"`, `x = "a" "b" EOF`},
		{"global a, b; nonlocal c", "global a , b ; nonlocal c EOF"},
		{"lambda x: x", "lambda x : x EOF"},
		{"yield x", "yield x EOF"},
		{"del d[k]", "del d [ k ] EOF"},
	} {
		got, err := scan(test.input)
		if err != nil {
			got = err.(Error).Msg
		}
		if test.want != got {
			t.Errorf("scan `%s` = [%s], want [%s]", test.input, got, test.want)
		}
	}
}

func TestScanErrors(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`"unterminated`, "unexpected EOF in string"},
		{"\"newline \n in string\"", "unexpected newline in string"},
		{`bf"x"`, "string prefixes 'b' and 'f' are incompatible"},
		{`0x`, "invalid hex literal"},
		{"x = \\1", "stray backslash in program"},
		{`!x`, "unexpected input character '!'"},
	} {
		_, err := scan(test.input)
		if err == nil {
			t.Errorf("scan `%s` unexpectedly succeeded", test.input)
			continue
		}
		if msg := err.(Error).Msg; !strings.Contains(msg, test.want) {
			t.Errorf("scan `%s` error %q, want %q", test.input, msg, test.want)
		}
	}
}

func TestScannerPosition(t *testing.T) {
	sc, err := newScanner("foo.py", "one two", false)
	if err != nil {
		t.Fatal(err)
	}
	var val tokenValue
	sc.nextToken(&val)
	if got := val.pos.String(); got != "foo.py:1:1" {
		t.Errorf("first token at %s, want foo.py:1:1", got)
	}
	sc.nextToken(&val)
	if got := val.pos.String(); got != "foo.py:1:5" {
		t.Errorf("second token at %s, want foo.py:1:5", got)
	}
}
