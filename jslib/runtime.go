// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jslib

// Function helpers.  Each source is an ES5 function expression; the
// emitter binds it with "var name = ...;".  A helper may refer only to
// helpers listed in its deps (and to itself, for recursion).

func init() {
	register("_py_truthy", nil, `function (v) {
    if (v === null || v === undefined || v === false || v === 0 || v === "") { return false; }
    if (v === true) { return true; }
    if (Array.isArray(v)) { return v.length > 0; }
    if (typeof v === "object") {
        for (var k in v) { if (v.hasOwnProperty(k)) { return true; } }
        return false;
    }
    return Boolean(v);
}`)

	register("_py_err", nil, `function (name, msg) {
    var e = new Error(msg === undefined ? name : name + ": " + msg);
    e.$pyerr = name;
    return e;
}`)

	register("_py_errname", nil, `function (err) {
    if (err && err.$pyerr) { return err.$pyerr; }
    if (err && err.constructor && err.constructor.prototype && err.constructor.prototype.__name__) {
        return err.constructor.prototype.__name__;
    }
    if (err instanceof TypeError) { return "TypeError"; }
    if (err instanceof RangeError) { return "ValueError"; }
    return "Exception";
}`)

	register("_py_errmatch", []string{"_py_errname"}, `function (err, cls) {
    if (typeof cls === "function") { return err instanceof cls; }
    if (cls === "Exception") { return true; }
    var sup = {
        ZeroDivisionError: "ArithmeticError",
        ArithmeticError: "Exception",
        IndexError: "LookupError",
        KeyError: "LookupError",
        LookupError: "Exception",
        TypeError: "Exception",
        ValueError: "Exception",
        AttributeError: "Exception",
        NameError: "Exception",
        NotImplementedError: "RuntimeError",
        RuntimeError: "Exception",
        StopIteration: "Exception",
        AssertionError: "Exception"
    };
    var got = _py_errname(err);
    if (got !== cls && !(got in sup) && err && err._errbase) { got = err._errbase; }
    while (got !== undefined && got !== cls) { got = sup[got]; }
    return got === cls;
}`)

	register("_py_instance", nil, `function (obj, cls, args) {
    if (!(obj instanceof cls)) { obj = Object.create(cls.prototype); }
    if (typeof obj.__init__ === "function") { obj.__init__.apply(obj, args); }
    return obj;
}`)

	register("_py_iter", []string{"_py_err"}, `function (v) {
    if (Array.isArray(v)) { return v; }
    if (typeof v === "string") { return v.split(""); }
    if (v && typeof v.next === "function") {
        var out = [], r;
        while (!(r = v.next()).done) { out.push(r.value); }
        return out;
    }
    if (v && typeof v === "object") {
        var keys = [];
        for (var k in v) { if (v.hasOwnProperty(k)) { keys.push(k); } }
        return keys;
    }
    throw _py_err("TypeError", "object is not iterable");
}`)

	register("_py_add", []string{"_py_err"}, `function (a, b) {
    if (typeof a === "number" && typeof b === "number") { return a + b; }
    if (typeof a === "string" && typeof b === "string") { return a + b; }
    if (Array.isArray(a) && Array.isArray(b)) { return a.concat(b); }
    throw _py_err("TypeError", "unsupported operand type(s) for +");
}`)

	register("_py_mult", []string{"_py_err"}, `function (a, b) {
    if (typeof a === "number" && typeof b === "number") { return a * b; }
    if (typeof a === "number") { var t = a; a = b; b = t; }
    if (typeof b === "number" && Math.floor(b) === b) {
        var n = b < 0 ? 0 : b;
        if (typeof a === "string") { return new Array(n + 1).join(a); }
        if (Array.isArray(a)) {
            var out = [];
            for (var i = 0; i < n; i++) { out = out.concat(a); }
            return out;
        }
    }
    throw _py_err("TypeError", "unsupported operand type(s) for *");
}`)

	register("_py_mod", []string{"_py_err", "_py_str", "_py_repr"}, `function (a, b) {
    if (typeof a === "number" && typeof b === "number") {
        if (b === 0) { throw _py_err("ZeroDivisionError", "modulo by zero"); }
        return ((a % b) + b) % b;
    }
    if (typeof a === "string") {
        var args = Array.isArray(b) ? b : [b], i = 0;
        return a.replace(/%[srdif%]/g, function (m) {
            if (m === "%%") { return "%"; }
            var v = args[i++];
            if (m === "%r") { return _py_repr(v); }
            if (m === "%d" || m === "%i") { return String(Math.trunc(v)); }
            return _py_str(v);
        });
    }
    throw _py_err("TypeError", "unsupported operand type(s) for %");
}`)

	register("_py_floordiv", []string{"_py_err"}, `function (a, b) {
    if (b === 0) { throw _py_err("ZeroDivisionError", "integer division by zero"); }
    return Math.floor(a / b);
}`)

	register("_py_eq", nil, `function (a, b) {
    if (a === b) { return true; }
    if (a === null || a === undefined) { return b === null || b === undefined; }
    if (Array.isArray(a) && Array.isArray(b)) {
        if (a.length !== b.length) { return false; }
        for (var i = 0; i < a.length; i++) {
            if (!_py_eq(a[i], b[i])) { return false; }
        }
        return true;
    }
    if (a && b && typeof a === "object" && typeof b === "object" &&
        a.constructor === Object && b.constructor === Object) {
        var ka = Object.keys(a), kb = Object.keys(b);
        if (ka.length !== kb.length) { return false; }
        for (var j = 0; j < ka.length; j++) {
            if (!b.hasOwnProperty(ka[j]) || !_py_eq(a[ka[j]], b[ka[j]])) { return false; }
        }
        return true;
    }
    return false;
}`)

	register("_py_cmp", []string{"_py_err"}, `function (a, b) {
    if (Array.isArray(a) && Array.isArray(b)) {
        var n = Math.min(a.length, b.length);
        for (var i = 0; i < n; i++) {
            var c = _py_cmp(a[i], b[i]);
            if (c !== 0) { return c; }
        }
        return a.length - b.length;
    }
    if (typeof a !== typeof b) { throw _py_err("TypeError", "comparison not supported between instances"); }
    return a < b ? -1 : (a > b ? 1 : 0);
}`)

	register("_py_contains", []string{"_py_eq"}, `function (x, seq) {
    if (typeof seq === "string") { return seq.indexOf(x) >= 0; }
    if (Array.isArray(seq)) {
        for (var i = 0; i < seq.length; i++) {
            if (_py_eq(seq[i], x)) { return true; }
        }
        return false;
    }
    if (seq && typeof seq === "object") { return seq.hasOwnProperty(x); }
    return false;
}`)

	register("_py_getitem", []string{"_py_err"}, `function (o, k) {
    if (Array.isArray(o) || typeof o === "string") {
        var i = k;
        if (i < 0) { i += o.length; }
        if (i < 0 || i >= o.length || Math.floor(i) !== i) {
            throw _py_err("IndexError", "index out of range");
        }
        return o[i];
    }
    if (o && typeof o === "object") {
        if (!o.hasOwnProperty(k)) { throw _py_err("KeyError", String(k)); }
        return o[k];
    }
    throw _py_err("TypeError", "object is not subscriptable");
}`)

	register("_py_setitem", []string{"_py_err"}, `function (o, k, v) {
    if (Array.isArray(o)) {
        var i = k;
        if (i < 0) { i += o.length; }
        if (i < 0 || i >= o.length) { throw _py_err("IndexError", "assignment index out of range"); }
        o[i] = v;
        return;
    }
    if (o && typeof o === "object") { o[k] = v; return; }
    throw _py_err("TypeError", "object does not support item assignment");
}`)

	register("_py_delitem", []string{"_py_err"}, `function (o, k) {
    if (Array.isArray(o)) {
        var i = k;
        if (i < 0) { i += o.length; }
        if (i < 0 || i >= o.length) { throw _py_err("IndexError", "index out of range"); }
        o.splice(i, 1);
        return;
    }
    if (o && typeof o === "object") {
        if (!o.hasOwnProperty(k)) { throw _py_err("KeyError", String(k)); }
        delete o[k];
        return;
    }
    throw _py_err("TypeError", "object does not support item deletion");
}`)

	register("_py_slice", []string{"_py_err"}, `function (o, lo, hi, step) {
    if (step === null || step === undefined) { step = 1; }
    if (step === 0) { throw _py_err("ValueError", "slice step cannot be zero"); }
    var n = o.length;
    var defLo = step > 0 ? 0 : n - 1;
    var defHi = step > 0 ? n : -n - 1;
    if (lo === null || lo === undefined) { lo = defLo; } else if (lo < 0) { lo = Math.max(lo + n, step > 0 ? 0 : -1); } else { lo = Math.min(lo, step > 0 ? n : n - 1); }
    if (hi === null || hi === undefined) { hi = defHi; } else if (hi < 0) { hi = Math.max(hi + n, step > 0 ? 0 : -1); } else { hi = Math.min(hi, n); }
    var out = [];
    if (step > 0) {
        for (var i = lo; i < hi; i += step) { out.push(o[i]); }
    } else {
        for (var j = lo; j > hi; j += step) { out.push(o[j]); }
    }
    return typeof o === "string" ? out.join("") : out;
}`)

	register("_py_repr", nil, `function (v) {
    if (v === null || v === undefined) { return "None"; }
    if (v === true) { return "True"; }
    if (v === false) { return "False"; }
    if (typeof v === "number") { return String(v); }
    if (typeof v === "string") {
        return "'" + v.replace(/\\/g, "\\\\").replace(/'/g, "\\'").replace(/\n/g, "\\n") + "'";
    }
    if (Array.isArray(v)) {
        var parts = [];
        for (var i = 0; i < v.length; i++) { parts.push(_py_repr(v[i])); }
        return "[" + parts.join(", ") + "]";
    }
    if (typeof v === "function") {
        if (v.prototype && v.prototype.__name__) { return "<class '" + v.prototype.__name__ + "'>"; }
        return "<function " + (v.name || "<anonymous>") + ">";
    }
    if (typeof v === "object") {
        var proto = v.constructor && v.constructor.prototype;
        if (proto && proto.__name__) { return "<" + proto.__name__ + " object>"; }
        var ks = Object.keys(v), kvs = [];
        for (var j = 0; j < ks.length; j++) { kvs.push(_py_repr(ks[j]) + ": " + _py_repr(v[ks[j]])); }
        return "{" + kvs.join(", ") + "}";
    }
    return String(v);
}`)

	register("_py_str", []string{"_py_repr"}, `function (v) {
    if (typeof v === "string") { return v; }
    if (v && typeof v === "object" && typeof v.__str__ === "function") { return v.__str__(); }
    return _py_repr(v);
}`)

	register("_py_fmtval", []string{"_py_err", "_py_str"}, `function (v, spec) {
    if (!spec) { return _py_str(v); }
    var m = /^(?:(.)(?=[<>^]))?([<>^]?)([+ ]?)(0?)(\d*)(?:\.(\d+))?([bdefgnsx%]?)$/.exec(spec);
    if (!m) { throw _py_err("ValueError", "invalid format spec '" + spec + "'"); }
    var fill = m[1] || (m[4] ? "0" : " "), align = m[2], sign = m[3];
    var width = m[5] ? parseInt(m[5], 10) : 0, prec = m[6], type = m[7];
    var s;
    if (type === "f" || type === "e") {
        var nd = prec === undefined ? 6 : parseInt(prec, 10);
        s = type === "f" ? v.toFixed(nd) : v.toExponential(nd);
    } else if (type === "d") {
        s = String(Math.trunc(v));
    } else if (type === "b") {
        s = Math.trunc(v).toString(2);
    } else if (type === "x") {
        s = Math.trunc(v).toString(16);
    } else if (type === "%") {
        s = (v * 100).toFixed(prec === undefined ? 6 : parseInt(prec, 10)) + "%";
    } else {
        s = _py_str(v);
        if (prec !== undefined) { s = s.slice(0, parseInt(prec, 10)); }
    }
    if (sign === "+" && typeof v === "number" && v >= 0 && type !== "s") { s = "+" + s; }
    if (!align) { align = typeof v === "number" && type !== "s" ? ">" : "<"; }
    while (s.length < width) {
        if (align === "<") { s = s + fill; }
        else if (align === ">") { s = fill + s; }
        else { s = s.length % 2 ? s + fill : fill + s; }
    }
    return s;
}`)

	register("_py_enter", []string{"_py_err"}, `function (mgr) {
    if (!mgr || typeof mgr.__enter__ !== "function") {
        throw _py_err("AttributeError", "__enter__");
    }
    return mgr.__enter__();
}`)

	register("_py_exit", []string{"_py_err", "_py_errname"}, `function (mgr, err) {
    if (!mgr || typeof mgr.__exit__ !== "function") {
        throw _py_err("AttributeError", "__exit__");
    }
    if (err === null || err === undefined) { return mgr.__exit__(null, null, null); }
    return mgr.__exit__(_py_errname(err), err, null);
}`)

	register("_py_kwtag", nil, `function (kw) {
    return { $kwtag: true, kw: kw };
}`)

	register("_py_kwmerge", []string{"_py_kwtag"}, `function () {
    var kw = {};
    for (var i = 0; i < arguments.length; i++) {
        var src = arguments[i];
        for (var k in src) { if (src.hasOwnProperty(k)) { kw[k] = src[k]; } }
    }
    return _py_kwtag(kw);
}`)

	register("_py_splitargs", nil, `function (args) {
    var pos = Array.prototype.slice.call(args), kw = {};
    if (pos.length > 0 && pos[pos.length - 1] && pos[pos.length - 1].$kwtag === true) {
        kw = pos.pop().kw;
    }
    return { pos: pos, kw: kw };
}`)

	register("_py_print", []string{"_py_str", "_py_splitargs"}, `function () {
    var a = _py_splitargs(arguments), parts = [];
    for (var i = 0; i < a.pos.length; i++) { parts.push(_py_str(a.pos[i])); }
    var sep = a.kw.sep === undefined ? " " : a.kw.sep;
    var end = a.kw.end === undefined ? "" : a.kw.end;
    console.log(parts.join(sep) + end);
}`)

	register("_py_len", []string{"_py_err"}, `function (v) {
    if (typeof v === "string" || Array.isArray(v)) { return v.length; }
    if (v && typeof v === "object") {
        var n = 0;
        for (var k in v) { if (v.hasOwnProperty(k)) { n++; } }
        return n;
    }
    throw _py_err("TypeError", "object has no len()");
}`)

	register("_py_range", []string{"_py_err"}, `function (a, b, c) {
    var lo = 0, hi, step = 1;
    if (b === undefined) { hi = a; } else { lo = a; hi = b; }
    if (c !== undefined) { step = c; }
    if (step === 0) { throw _py_err("ValueError", "range() arg 3 must not be zero"); }
    var out = [];
    if (step > 0) {
        for (var i = lo; i < hi; i += step) { out.push(i); }
    } else {
        for (var j = lo; j > hi; j += step) { out.push(j); }
    }
    return out;
}`)

	register("_py_enumerate", []string{"_py_iter"}, `function (seq, start) {
    var items = _py_iter(seq), out = [], n = start === undefined ? 0 : start;
    for (var i = 0; i < items.length; i++) { out.push([n + i, items[i]]); }
    return out;
}`)

	register("_py_zip", []string{"_py_iter"}, `function () {
    var seqs = [], n = Infinity;
    for (var i = 0; i < arguments.length; i++) {
        seqs.push(_py_iter(arguments[i]));
        n = Math.min(n, seqs[i].length);
    }
    var out = [];
    for (var j = 0; j < n; j++) {
        var row = [];
        for (var k = 0; k < seqs.length; k++) { row.push(seqs[k][j]); }
        out.push(row);
    }
    return out;
}`)

	register("_py_isinstance", nil, `function (v, cls) {
    if (Array.isArray(cls)) {
        for (var i = 0; i < cls.length; i++) {
            if (_py_isinstance(v, cls[i])) { return true; }
        }
        return false;
    }
    if (typeof cls === "string") {
        switch (cls) {
        case "int": return typeof v === "number" && isFinite(v) && Math.floor(v) === v;
        case "float": return typeof v === "number";
        case "str": return typeof v === "string";
        case "bool": return v === true || v === false;
        case "list": case "tuple": case "set": return Array.isArray(v);
        case "dict": return !!v && typeof v === "object" && !Array.isArray(v) && typeof v !== "function";
        }
        return false;
    }
    return v instanceof cls;
}`)

	register("_py_bool", []string{"_py_truthy"}, `function (v) {
    return _py_truthy(v);
}`)

	register("_py_issubclass", nil, `function (a, b) {
    if (a === b) { return true; }
    if (typeof b === "string") {
        if (typeof a === "string") { return a === b; }
        var p = a && a.prototype;
        while (p) {
            if (p._errbase === b || (b === "Exception" && p._errbase)) { return true; }
            p = p._base;
        }
        return false;
    }
    var q = a && a.prototype && a.prototype._base;
    while (q) {
        if (b.prototype && q === b.prototype) { return true; }
        q = q._base;
    }
    return false;
}`)

	register("_py_int", []string{"_py_err"}, `function (v, base) {
    if (typeof v === "number") { return Math.trunc(v); }
    if (typeof v === "string") {
        var n = parseInt(v.trim(), base === undefined ? 10 : base);
        if (isNaN(n)) { throw _py_err("ValueError", "invalid literal for int(): " + v); }
        return n;
    }
    if (v === true) { return 1; }
    if (v === false) { return 0; }
    throw _py_err("TypeError", "int() argument must be a string or a number");
}`)

	register("_py_float", []string{"_py_err"}, `function (v) {
    if (typeof v === "number") { return v; }
    if (typeof v === "string") {
        var n = parseFloat(v.trim());
        if (isNaN(n) && v.trim() !== "nan") { throw _py_err("ValueError", "could not convert string to float: " + v); }
        return n;
    }
    if (v === true) { return 1; }
    if (v === false) { return 0; }
    throw _py_err("TypeError", "float() argument must be a string or a number");
}`)

	register("_py_list", []string{"_py_iter"}, `function (v) {
    if (v === undefined) { return []; }
    return _py_iter(v).slice();
}`)

	register("_py_tuple", []string{"_py_list"}, `function (v) {
    return _py_list(v);
}`)

	register("_py_dict", []string{"_py_err"}, `function (v) {
    var out = {};
    if (v === undefined) { return out; }
    if (Array.isArray(v)) {
        for (var i = 0; i < v.length; i++) {
            var pair = v[i];
            if (!Array.isArray(pair) || pair.length !== 2) {
                throw _py_err("ValueError", "dictionary update sequence element is not a pair");
            }
            out[pair[0]] = pair[1];
        }
        return out;
    }
    if (v && typeof v === "object") {
        for (var k in v) { if (v.hasOwnProperty(k)) { out[k] = v[k]; } }
        return out;
    }
    throw _py_err("TypeError", "dict() argument must be a mapping or pair sequence");
}`)

	register("_py_set", []string{"_py_iter", "_py_setadd"}, `function (v) {
    var out = [];
    if (v === undefined) { return out; }
    var items = _py_iter(v);
    for (var i = 0; i < items.length; i++) { _py_setadd(out, items[i]); }
    return out;
}`)

	register("_py_setadd", []string{"_py_contains"}, `function (set, v) {
    if (!_py_contains(v, set)) { set.push(v); }
    return set;
}`)

	register("_py_min", []string{"_py_err", "_py_iter", "_py_cmp", "_py_splitargs"}, `function () {
    var a = _py_splitargs(arguments);
    var items = a.pos.length === 1 ? _py_iter(a.pos[0]) : a.pos;
    if (items.length === 0) { throw _py_err("ValueError", "min() arg is an empty sequence"); }
    var key = a.kw.key, best = items[0];
    for (var i = 1; i < items.length; i++) {
        var c = key ? _py_cmp(key(items[i]), key(best)) : _py_cmp(items[i], best);
        if (c < 0) { best = items[i]; }
    }
    return best;
}`)

	register("_py_max", []string{"_py_err", "_py_iter", "_py_cmp", "_py_splitargs"}, `function () {
    var a = _py_splitargs(arguments);
    var items = a.pos.length === 1 ? _py_iter(a.pos[0]) : a.pos;
    if (items.length === 0) { throw _py_err("ValueError", "max() arg is an empty sequence"); }
    var key = a.kw.key, best = items[0];
    for (var i = 1; i < items.length; i++) {
        var c = key ? _py_cmp(key(items[i]), key(best)) : _py_cmp(items[i], best);
        if (c > 0) { best = items[i]; }
    }
    return best;
}`)

	register("_py_sum", []string{"_py_add", "_py_iter"}, `function (seq, start) {
    var items = _py_iter(seq), total = start === undefined ? 0 : start;
    for (var i = 0; i < items.length; i++) { total = _py_add(total, items[i]); }
    return total;
}`)

	register("_py_abs", []string{"_py_err"}, `function (v) {
    if (typeof v !== "number") { throw _py_err("TypeError", "bad operand type for abs()"); }
    return Math.abs(v);
}`)

	register("_py_all", []string{"_py_iter", "_py_truthy"}, `function (seq) {
    var items = _py_iter(seq);
    for (var i = 0; i < items.length; i++) {
        if (!_py_truthy(items[i])) { return false; }
    }
    return true;
}`)

	register("_py_any", []string{"_py_iter", "_py_truthy"}, `function (seq) {
    var items = _py_iter(seq);
    for (var i = 0; i < items.length; i++) {
        if (_py_truthy(items[i])) { return true; }
    }
    return false;
}`)

	register("_py_sorted", []string{"_py_iter", "_py_cmp", "_py_truthy", "_py_splitargs"}, `function () {
    var a = _py_splitargs(arguments);
    var items = _py_iter(a.pos[0]).slice();
    var key = a.kw.key;
    items.sort(function (x, y) { return key ? _py_cmp(key(x), key(y)) : _py_cmp(x, y); });
    if (_py_truthy(a.kw.reverse)) { items.reverse(); }
    return items;
}`)

	register("_py_reversed", []string{"_py_iter"}, `function (seq) {
    return _py_iter(seq).slice().reverse();
}`)

	register("_py_round", nil, `function (v, nd) {
    if (nd === undefined || nd === 0) {
        var r = Math.round(v);
        if (Math.abs(v % 1) === 0.5 && r % 2 !== 0) { r -= 1; }
        return r;
    }
    var f = Math.pow(10, nd);
    return Math.round(v * f) / f;
}`)

	register("_py_callable", nil, `function (v) {
    return typeof v === "function";
}`)

	register("_py_hasattr", nil, `function (o, name) {
    return o !== null && o !== undefined && o[name] !== undefined;
}`)

	register("_py_getattr", []string{"_py_err"}, `function (o, name, dflt) {
    var v = o === null || o === undefined ? undefined : o[name];
    if (v === undefined) {
        if (dflt !== undefined) { return dflt; }
        throw _py_err("AttributeError", name);
    }
    if (typeof v === "function" && !(v.prototype && v.prototype.__name__)) {
        var bound = function () { return v.apply(o, arguments); };
        return bound;
    }
    return v;
}`)

	register("_py_setattr", nil, `function (o, name, v) {
    o[name] = v;
}`)

	register("_py_delattr", []string{"_py_err"}, `function (o, name) {
    if (o === null || o === undefined || o[name] === undefined) {
        throw _py_err("AttributeError", name);
    }
    delete o[name];
}`)

	register("_py_chr", nil, `function (n) {
    return String.fromCharCode(n);
}`)

	register("_py_ord", []string{"_py_err"}, `function (s) {
    if (typeof s !== "string" || s.length !== 1) {
        throw _py_err("TypeError", "ord() expected a character");
    }
    return s.charCodeAt(0);
}`)

	register("_py_divmod", []string{"_py_err"}, `function (a, b) {
    if (b === 0) { throw _py_err("ZeroDivisionError", "integer division or modulo by zero"); }
    var q = Math.floor(a / b);
    return [q, a - q * b];
}`)

	register("_py_filter", []string{"_py_iter", "_py_truthy"}, `function (fn, seq) {
    var items = _py_iter(seq), out = [];
    for (var i = 0; i < items.length; i++) {
        var keep = fn === null || fn === undefined ? _py_truthy(items[i]) : _py_truthy(fn(items[i]));
        if (keep) { out.push(items[i]); }
    }
    return out;
}`)

	register("_py_map", []string{"_py_iter"}, `function (fn) {
    var seqs = [], n = Infinity;
    for (var i = 1; i < arguments.length; i++) {
        seqs.push(_py_iter(arguments[i]));
        n = Math.min(n, seqs[i - 1].length);
    }
    var out = [];
    for (var j = 0; j < n; j++) {
        var args = [];
        for (var k = 0; k < seqs.length; k++) { args.push(seqs[k][j]); }
        out.push(fn.apply(null, args));
    }
    return out;
}`)
}
