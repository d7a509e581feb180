// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpile_test

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"go.adder.dev/internal/chunkedfile"
	"go.adder.dev/transpile"
)

// external returns options that keep helper definitions out of the
// generated text, so substring assertions see only translated code.
func external() *transpile.Options {
	opts := transpile.DefaultOptions()
	opts.Linking = transpile.LinkExternal
	return opts
}

func translate(t *testing.T, src string, opts *transpile.Options) *transpile.Result {
	t.Helper()
	res, err := transpile.Source("test.py", src, opts)
	if err != nil {
		t.Fatalf("translate %q: %v", src, err)
	}
	return res
}

func TestFunctionDefaults(t *testing.T) {
	res := translate(t, `
def foo(a, b=2):
    return a - b
result = foo(5)
`, external())

	for _, want := range []string{
		"var foo, result;",
		"var $d0_b = 2;",
		"b = $d0_b;",
		"return a - b;",
		"result = foo(5);",
		`throw _py_err("TypeError", "foo() missing required argument: 'a'");`,
	} {
		if !strings.Contains(res.JS, want) {
			t.Errorf("output does not contain %q:\n%s", want, res.JS)
		}
	}
	// The default is computed once, outside the function.
	if n := strings.Count(res.JS, "var $d0_b"); n != 1 {
		t.Errorf("default initializer appears %d times, want 1", n)
	}
	if i, j := strings.Index(res.JS, "var $d0_b"), strings.Index(res.JS, "foo = function"); i > j {
		t.Errorf("default initializer must precede the function assignment")
	}
}

func TestComprehensionScope(t *testing.T) {
	res := translate(t, "doubled = [x * 2 for x in range(3)]\n", external())

	// The loop variable lives inside the generated closure, not in
	// the module prologue.
	if !strings.Contains(res.JS, "\nvar doubled;\n") {
		t.Errorf("module prologue should declare only doubled:\n%s", res.JS)
	}
	for _, want := range []string{
		"doubled = (function ($seq0) {",
		"}).call(this, _py_iter(_py_range(3)));",
		"_py_mult(x, 2)",
	} {
		if !strings.Contains(res.JS, want) {
			t.Errorf("output does not contain %q:\n%s", want, res.JS)
		}
	}
}

// A loop variable that shadows the name of its own iterable must not
// capture it: the first iterable is evaluated outside the closure,
// where the shadowed name is still visible.
func TestComprehensionSelfShadow(t *testing.T) {
	res := translate(t, "x = \"abc\"\ncaps = [x + x for x in x]\n", external())
	if !strings.Contains(res.JS, ".call(this, _py_iter(x))") {
		t.Errorf("iterable must be evaluated in the enclosing scope:\n%s", res.JS)
	}
	if strings.Contains(res.JS, "var $seq") {
		t.Errorf("sole iterable should enter as the closure argument:\n%s", res.JS)
	}
}

func TestTryExcept(t *testing.T) {
	res := translate(t, `
def run():
    try:
        raise ValueError("boom")
    except ValueError:
        return 1
    return 2
result = run()
`, external())

	for _, want := range []string{
		`throw _py_err("ValueError", "boom");`,
		`"ValueError"))`,
		"return 1;",
		"return 2;",
	} {
		if !strings.Contains(res.JS, want) {
			t.Errorf("output does not contain %q:\n%s", want, res.JS)
		}
	}
	// An unmatched exception propagates.
	if !regexp.MustCompile(`throw \$err\d+;`).MatchString(res.JS) {
		t.Errorf("missing rethrow for unmatched exceptions:\n%s", res.JS)
	}
	// The handler must run before the fallthrough return.
	if i, j := strings.Index(res.JS, "return 1;"), strings.Index(res.JS, "return 2;"); i > j {
		t.Errorf("handler body must precede the statement after the try")
	}
}

func TestChainedComparisonSingleEval(t *testing.T) {
	res := translate(t, `
def f(v):
    return v
ok = 1 < f(2) < 3
`, external())

	if want := "ok = 1 < ($t0 = f(2)) && $t0 < 3;"; !strings.Contains(res.JS, want) {
		t.Errorf("output does not contain %q:\n%s", want, res.JS)
	}
	if n := strings.Count(res.JS, "f(2)"); n != 1 {
		t.Errorf("interior operand evaluated %d times, want 1", n)
	}
}

func TestSwap(t *testing.T) {
	res := translate(t, "a = 1\nb = 2\na, b = b, a\n", external())

	for _, want := range []string{
		"var $tu0 = [b, a];",
		"a = $tu0[0];",
		"b = $tu0[1];",
	} {
		if !strings.Contains(res.JS, want) {
			t.Errorf("output does not contain %q:\n%s", want, res.JS)
		}
	}
}

func TestDefaultSharedAcrossCalls(t *testing.T) {
	res := translate(t, `
def add(x, acc=[]):
    acc.append(x)
    return acc
`, external())

	if n := strings.Count(res.JS, "var $d0_acc = [];"); n != 1 {
		t.Errorf("default list constructed %d times, want 1:\n%s", n, res.JS)
	}
	if !strings.Contains(res.JS, "acc = $d0_acc;") {
		t.Errorf("omitted argument must alias the shared default:\n%s", res.JS)
	}
	if !strings.Contains(res.JS, "_pym_append(acc, x);") {
		t.Errorf("append should go through its method helper:\n%s", res.JS)
	}
}

func TestWithGuarantee(t *testing.T) {
	res := translate(t, `
def make():
    return None
log = []
with make() as v:
    log.append(v)
`, external())

	if !strings.Contains(res.JS, "var $mgr0 = make();") {
		t.Errorf("manager expression must be evaluated once:\n%s", res.JS)
	}
	if !strings.Contains(res.JS, "_py_enter($mgr0)") {
		t.Errorf("missing enter hook:\n%s", res.JS)
	}
	// Exit runs on the exception path and on the normal path.
	if n := strings.Count(res.JS, "_py_exit($mgr0"); n != 2 {
		t.Errorf("exit hook appears %d times, want 2:\n%s", n, res.JS)
	}
	if !strings.Contains(res.JS, "} finally {") {
		t.Errorf("normal-path exit must be in a finally block:\n%s", res.JS)
	}
}

func TestDeterminism(t *testing.T) {
	const src = `
def fib(n):
    a, b = 0, 1
    for _ in range(n):
        a, b = b, a + b
    return a
table = {n: fib(n) for n in range(10)}
names = sorted(table, key=lambda k: -k)
`
	first := translate(t, src, nil)
	for i := 0; i < 3; i++ {
		res := translate(t, src, nil)
		if res.JS != first.JS {
			t.Fatalf("run %d produced different output", i+1)
		}
		if diff := cmp.Diff(first.Helpers, res.Helpers); diff != "" {
			t.Fatalf("run %d produced different helpers (-first +got):\n%s", i+1, diff)
		}
	}
}

func TestIndentOption(t *testing.T) {
	opts := external()
	opts.Indent = "\t"
	res := translate(t, "def f():\n    return 1\n", opts)
	if !strings.Contains(res.JS, "\n\treturn 1;\n") {
		t.Errorf("function body not indented with tab:\n%q", res.JS)
	}
}

func TestExternalLinking(t *testing.T) {
	const src = "n = len([1, 2, 3])\n"

	ext := translate(t, src, external())
	if strings.Contains(ext.JS, "var _py_len =") {
		t.Errorf("external linking must not embed helper definitions:\n%s", ext.JS)
	}
	if diff := cmp.Diff([]string{"_py_err", "_py_len"}, ext.Helpers); diff != "" {
		t.Errorf("helpers (-want +got):\n%s", diff)
	}

	inl := translate(t, src, nil)
	if !strings.Contains(inl.JS, "var _py_len =") {
		t.Errorf("inline linking must embed helper definitions:\n%s", inl.JS)
	}
}

func TestBatchStrictness(t *testing.T) {
	const src = `
x = 1
def a():
    yield 1
y = 2
def b():
    yield 2
`
	// Fail-first: the first generator aborts the call.
	if _, err := transpile.Source("test.py", src, external()); err == nil {
		t.Fatalf("fail-first translation succeeded unexpectedly")
	} else if e, ok := err.(*transpile.Error); !ok || e.Kind != transpile.UnsupportedConstruct {
		t.Fatalf("fail-first error = %v, want UnsupportedConstruct", err)
	}

	// Batch: both generators are reported, the rest is translated.
	opts := external()
	opts.Batch = true
	res, err := transpile.Source("test.py", src, opts)
	errs, ok := err.(transpile.ErrorList)
	if !ok {
		t.Fatalf("batch error = %T (%v), want ErrorList", err, err)
	}
	if len(errs) != 2 {
		t.Fatalf("batch reported %d errors, want 2: %v", len(errs), errs)
	}
	for _, e := range errs {
		if e.Kind != transpile.UnsupportedConstruct {
			t.Errorf("error kind = %v, want UnsupportedConstruct", e.Kind)
		}
	}
	if errs[0].Pos.Line >= errs[1].Pos.Line {
		t.Errorf("errors out of source order: %v", errs)
	}
	for _, want := range []string{"x = 1;", "y = 2;"} {
		if !strings.Contains(res.JS, want) {
			t.Errorf("batch output missing %q:\n%s", want, res.JS)
		}
	}
}

// A function whose parameters are all plain positionals takes no
// keyword arguments; a keyword call through its (unreassigned) name is
// rejected rather than binding the tagged object to a parameter.
func TestKeywordCallToPositionalFunction(t *testing.T) {
	_, err := transpile.Source("test.py",
		"def move(dx, dy):\n    return dx + dy\np = move(dx=1, dy=2)\n", external())
	e, ok := err.(*transpile.Error)
	if !ok || e.Kind != transpile.UnsupportedConstruct {
		t.Fatalf("error = %v, want UnsupportedConstruct", err)
	}
	if want := "move() takes no keyword arguments"; !strings.Contains(e.Msg, want) {
		t.Errorf("error %q does not contain %q", e.Msg, want)
	}

	// A rebound name may no longer refer to that def, so the call is
	// left to the runtime.
	res := translate(t,
		"def f(a):\n    return a\nf = lambda **kw: kw\nr = f(a=1)\n", external())
	if !strings.Contains(res.JS, `r = f(_py_kwtag({"a": 1}));`) {
		t.Errorf("rebound name should keep the generic calling convention:\n%s", res.JS)
	}
}

func TestGeneratorProfile(t *testing.T) {
	opts := external()
	opts.Profile = transpile.ES6
	res := translate(t, "def nats(n):\n    for i in range(n):\n        yield i\n", opts)
	if !strings.Contains(res.JS, "nats = function* (n) {") {
		t.Errorf("generator should use function* on an ES6 profile:\n%s", res.JS)
	}
}

func TestReservedNameMangling(t *testing.T) {
	res := translate(t, "var = 1\nfunction = var + 1\n", external())
	for _, want := range []string{
		"var var_1, function_1;",
		"var_1 = 1;",
		"function_1 = _py_add(var_1, 1);",
	} {
		if !strings.Contains(res.JS, want) {
			t.Errorf("output does not contain %q:\n%s", want, res.JS)
		}
	}
}

func TestModuleWrapper(t *testing.T) {
	res := translate(t, "x = 1\n", external())
	if !strings.HasPrefix(res.JS, "(function () {\n") {
		t.Errorf("output must open with the module wrapper:\n%s", res.JS)
	}
	if !strings.HasSuffix(res.JS, "}).call(this);\n") {
		t.Errorf("output must close with the module wrapper:\n%s", res.JS)
	}
}

// golden-style fixtures: each case lists fragments the translation
// must and must not contain.
type goldenCase struct {
	Name     string   `yaml:"name"`
	Source   string   `yaml:"source"`
	Contains []string `yaml:"contains"`
	Excludes []string `yaml:"excludes"`
	Helpers  []string `yaml:"helpers"`
}

func TestGolden(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "translate.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var cases []goldenCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatal(err)
	}
	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			res := translate(t, c.Source, external())
			for _, want := range c.Contains {
				if !strings.Contains(res.JS, want) {
					t.Errorf("output does not contain %q:\n%s", want, res.JS)
				}
			}
			for _, bad := range c.Excludes {
				if strings.Contains(res.JS, bad) {
					t.Errorf("output must not contain %q:\n%s", bad, res.JS)
				}
			}
			if c.Helpers != nil {
				if diff := cmp.Diff(c.Helpers, res.Helpers); diff != "" {
					t.Errorf("helpers (-want +got):\n%s", diff)
				}
			}
		})
	}
}

// TestErrors checks error positions and messages against the
// markers in testdata/errors.py.
func TestErrors(t *testing.T) {
	filename := filepath.Join("testdata", "errors.py")
	for _, chunk := range chunkedfile.Read(filename, t) {
		opts := transpile.DefaultOptions()
		opts.Batch = true
		_, err := transpile.Source(filename, chunk.Source, opts)
		switch err := err.(type) {
		case nil:
			// fall through to Done, which reports unmatched markers
		case transpile.ErrorList:
			for _, e := range err {
				chunk.GotError(int(e.Pos.Line), e.Error())
			}
		case *transpile.Error:
			chunk.GotError(int(err.Pos.Line), err.Error())
		default:
			t.Errorf("unexpected error type %T: %v", err, err)
		}
		chunk.Done()
	}
}

func ExampleSource() {
	res, err := transpile.Source("demo.py", "greeting = 'hello ' + 'world'\n", &transpile.Options{
		Indent:  "    ",
		Linking: transpile.LinkExternal,
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(res.JS)
	// Output:
	// (function () {
	// var greeting;
	// greeting = _py_add("hello ", "world");
	// }).call(this);
}
