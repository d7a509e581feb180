// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jslib

// Method helpers.  The translator lowers a method call on a receiver
// of unknown type, x.m(...), to _pym_m(x, ...).  Each helper first
// checks for a user-defined method of the same name (instances of
// translated classes carry their methods on the prototype) and
// delegates to it; strings and arrays never delegate, since the
// JavaScript built-ins of the same name have different semantics.

func init() {
	register("_pym_append", []string{"_py_err"}, `function (o, v) {
    if (Array.isArray(o)) { o.push(v); return null; }
    if (o && typeof o === "object" && typeof o.append === "function") { return o.append(v); }
    throw _py_err("AttributeError", "append");
}`)

	register("_pym_extend", []string{"_py_err", "_py_iter"}, `function (o, seq) {
    if (Array.isArray(o)) {
        var items = _py_iter(seq);
        for (var i = 0; i < items.length; i++) { o.push(items[i]); }
        return null;
    }
    if (o && typeof o === "object" && typeof o.extend === "function") { return o.extend(seq); }
    throw _py_err("AttributeError", "extend");
}`)

	register("_pym_insert", []string{"_py_err"}, `function (o, i, v) {
    if (Array.isArray(o)) {
        if (i < 0) { i = Math.max(i + o.length, 0); }
        o.splice(Math.min(i, o.length), 0, v);
        return null;
    }
    if (o && typeof o === "object" && typeof o.insert === "function") { return o.insert(i, v); }
    throw _py_err("AttributeError", "insert");
}`)

	register("_pym_remove", []string{"_py_err", "_py_eq"}, `function (o, v) {
    if (Array.isArray(o)) {
        for (var i = 0; i < o.length; i++) {
            if (_py_eq(o[i], v)) { o.splice(i, 1); return null; }
        }
        throw _py_err("ValueError", "list.remove(x): x not in list");
    }
    if (o && typeof o === "object" && typeof o.remove === "function") { return o.remove(v); }
    throw _py_err("AttributeError", "remove");
}`)

	register("_pym_pop", []string{"_py_err"}, `function (o, k, dflt) {
    if (Array.isArray(o)) {
        var i = k === undefined ? o.length - 1 : k;
        if (i < 0) { i += o.length; }
        if (i < 0 || i >= o.length) { throw _py_err("IndexError", "pop index out of range"); }
        return o.splice(i, 1)[0];
    }
    if (o && typeof o === "object") {
        if (typeof o.pop === "function") { return o.pop(k, dflt); }
        if (o.hasOwnProperty(k)) {
            var v = o[k];
            delete o[k];
            return v;
        }
        if (dflt !== undefined) { return dflt; }
        throw _py_err("KeyError", String(k));
    }
    throw _py_err("AttributeError", "pop");
}`)

	register("_pym_index", []string{"_py_err", "_py_eq"}, `function (o, v) {
    if (typeof o === "string") {
        var j = o.indexOf(v);
        if (j < 0) { throw _py_err("ValueError", "substring not found"); }
        return j;
    }
    if (Array.isArray(o)) {
        for (var i = 0; i < o.length; i++) {
            if (_py_eq(o[i], v)) { return i; }
        }
        throw _py_err("ValueError", "x not in list");
    }
    if (o && typeof o === "object" && typeof o.index === "function") { return o.index(v); }
    throw _py_err("AttributeError", "index");
}`)

	register("_pym_count", []string{"_py_err", "_py_eq"}, `function (o, v) {
    var n = 0;
    if (typeof o === "string") {
        if (v === "") { return o.length + 1; }
        var j = o.indexOf(v);
        while (j >= 0) { n++; j = o.indexOf(v, j + v.length); }
        return n;
    }
    if (Array.isArray(o)) {
        for (var i = 0; i < o.length; i++) {
            if (_py_eq(o[i], v)) { n++; }
        }
        return n;
    }
    if (o && typeof o === "object" && typeof o.count === "function") { return o.count(v); }
    throw _py_err("AttributeError", "count");
}`)

	register("_pym_sort", []string{"_py_err", "_py_cmp", "_py_truthy", "_py_splitargs"}, `function (o) {
    if (Array.isArray(o)) {
        var a = _py_splitargs(arguments), key = a.kw.key;
        o.sort(function (x, y) { return key ? _py_cmp(key(x), key(y)) : _py_cmp(x, y); });
        if (_py_truthy(a.kw.reverse)) { o.reverse(); }
        return null;
    }
    if (o && typeof o === "object" && typeof o.sort === "function") {
        return o.sort.apply(o, Array.prototype.slice.call(arguments, 1));
    }
    throw _py_err("AttributeError", "sort");
}`)

	register("_pym_reverse", []string{"_py_err"}, `function (o) {
    if (Array.isArray(o)) { o.reverse(); return null; }
    if (o && typeof o === "object" && typeof o.reverse === "function") { return o.reverse(); }
    throw _py_err("AttributeError", "reverse");
}`)

	register("_pym_clear", []string{"_py_err"}, `function (o) {
    if (Array.isArray(o)) { o.length = 0; return null; }
    if (o && typeof o === "object") {
        if (typeof o.clear === "function") { return o.clear(); }
        for (var k in o) { if (o.hasOwnProperty(k)) { delete o[k]; } }
        return null;
    }
    throw _py_err("AttributeError", "clear");
}`)

	register("_pym_copy", []string{"_py_err"}, `function (o) {
    if (Array.isArray(o)) { return o.slice(); }
    if (o && typeof o === "object") {
        if (typeof o.copy === "function") { return o.copy(); }
        var out = {};
        for (var k in o) { if (o.hasOwnProperty(k)) { out[k] = o[k]; } }
        return out;
    }
    throw _py_err("AttributeError", "copy");
}`)

	register("_pym_keys", []string{"_py_err"}, `function (o) {
    if (o && typeof o === "object" && !Array.isArray(o)) {
        if (typeof o.keys === "function") { return o.keys(); }
        var out = [];
        for (var k in o) { if (o.hasOwnProperty(k)) { out.push(k); } }
        return out;
    }
    throw _py_err("AttributeError", "keys");
}`)

	register("_pym_values", []string{"_py_err"}, `function (o) {
    if (o && typeof o === "object" && !Array.isArray(o)) {
        if (typeof o.values === "function") { return o.values(); }
        var out = [];
        for (var k in o) { if (o.hasOwnProperty(k)) { out.push(o[k]); } }
        return out;
    }
    throw _py_err("AttributeError", "values");
}`)

	register("_pym_items", []string{"_py_err"}, `function (o) {
    if (o && typeof o === "object" && !Array.isArray(o)) {
        if (typeof o.items === "function") { return o.items(); }
        var out = [];
        for (var k in o) { if (o.hasOwnProperty(k)) { out.push([k, o[k]]); } }
        return out;
    }
    throw _py_err("AttributeError", "items");
}`)

	register("_pym_get", []string{"_py_err"}, `function (o, k, dflt) {
    if (o && typeof o === "object" && !Array.isArray(o)) {
        if (typeof o.get === "function") { return o.get(k, dflt); }
        if (o.hasOwnProperty(k)) { return o[k]; }
        return dflt === undefined ? null : dflt;
    }
    throw _py_err("AttributeError", "get");
}`)

	register("_pym_update", []string{"_py_err"}, `function (o, other) {
    if (o && typeof o === "object" && !Array.isArray(o)) {
        if (typeof o.update === "function") { return o.update(other); }
        for (var k in other) { if (other.hasOwnProperty(k)) { o[k] = other[k]; } }
        return null;
    }
    throw _py_err("AttributeError", "update");
}`)

	register("_pym_setdefault", []string{"_py_err"}, `function (o, k, dflt) {
    if (o && typeof o === "object" && !Array.isArray(o)) {
        if (typeof o.setdefault === "function") { return o.setdefault(k, dflt); }
        if (!o.hasOwnProperty(k)) { o[k] = dflt === undefined ? null : dflt; }
        return o[k];
    }
    throw _py_err("AttributeError", "setdefault");
}`)

	register("_pym_startswith", []string{"_py_err"}, `function (s, prefix, start) {
    if (typeof s === "string") {
        var i = start === undefined ? 0 : start;
        return s.lastIndexOf(prefix, i) === i;
    }
    if (s && typeof s === "object" && typeof s.startswith === "function") { return s.startswith(prefix, start); }
    throw _py_err("AttributeError", "startswith");
}`)

	register("_pym_endswith", []string{"_py_err"}, `function (s, suffix) {
    if (typeof s === "string") {
        var i = s.length - suffix.length;
        return i >= 0 && s.indexOf(suffix, i) === i;
    }
    if (s && typeof s === "object" && typeof s.endswith === "function") { return s.endswith(suffix); }
    throw _py_err("AttributeError", "endswith");
}`)

	register("_pym_split", []string{"_py_err"}, `function (s, sep, maxn) {
    if (typeof s === "string") {
        if (sep === undefined || sep === null) {
            var parts = s.split(/\s+/), out = [];
            for (var i = 0; i < parts.length; i++) { if (parts[i] !== "") { out.push(parts[i]); } }
            return out;
        }
        if (sep === "") { throw _py_err("ValueError", "empty separator"); }
        if (maxn === undefined) { return s.split(sep); }
        var head = [], rest = s;
        while (maxn > 0) {
            var j = rest.indexOf(sep);
            if (j < 0) { break; }
            head.push(rest.slice(0, j));
            rest = rest.slice(j + sep.length);
            maxn--;
        }
        head.push(rest);
        return head;
    }
    if (s && typeof s === "object" && typeof s.split === "function") { return s.split(sep, maxn); }
    throw _py_err("AttributeError", "split");
}`)

	register("_pym_join", []string{"_py_err", "_py_iter"}, `function (s, seq) {
    if (typeof s === "string") {
        var items = _py_iter(seq);
        for (var i = 0; i < items.length; i++) {
            if (typeof items[i] !== "string") {
                throw _py_err("TypeError", "sequence item " + i + ": expected str");
            }
        }
        return items.join(s);
    }
    if (s && typeof s === "object" && typeof s.join === "function") { return s.join(seq); }
    throw _py_err("AttributeError", "join");
}`)

	register("_pym_strip", []string{"_py_err"}, `function (s, chars) {
    if (typeof s === "string") {
        if (chars === undefined) { return s.replace(/^\s+|\s+$/g, ""); }
        var lo = 0, hi = s.length;
        while (lo < hi && chars.indexOf(s.charAt(lo)) >= 0) { lo++; }
        while (hi > lo && chars.indexOf(s.charAt(hi - 1)) >= 0) { hi--; }
        return s.slice(lo, hi);
    }
    if (s && typeof s === "object" && typeof s.strip === "function") { return s.strip(chars); }
    throw _py_err("AttributeError", "strip");
}`)

	register("_pym_lstrip", []string{"_py_err"}, `function (s, chars) {
    if (typeof s === "string") {
        if (chars === undefined) { return s.replace(/^\s+/, ""); }
        var lo = 0;
        while (lo < s.length && chars.indexOf(s.charAt(lo)) >= 0) { lo++; }
        return s.slice(lo);
    }
    if (s && typeof s === "object" && typeof s.lstrip === "function") { return s.lstrip(chars); }
    throw _py_err("AttributeError", "lstrip");
}`)

	register("_pym_rstrip", []string{"_py_err"}, `function (s, chars) {
    if (typeof s === "string") {
        if (chars === undefined) { return s.replace(/\s+$/, ""); }
        var hi = s.length;
        while (hi > 0 && chars.indexOf(s.charAt(hi - 1)) >= 0) { hi--; }
        return s.slice(0, hi);
    }
    if (s && typeof s === "object" && typeof s.rstrip === "function") { return s.rstrip(chars); }
    throw _py_err("AttributeError", "rstrip");
}`)

	register("_pym_upper", []string{"_py_err"}, `function (s) {
    if (typeof s === "string") { return s.toUpperCase(); }
    if (s && typeof s === "object" && typeof s.upper === "function") { return s.upper(); }
    throw _py_err("AttributeError", "upper");
}`)

	register("_pym_lower", []string{"_py_err"}, `function (s) {
    if (typeof s === "string") { return s.toLowerCase(); }
    if (s && typeof s === "object" && typeof s.lower === "function") { return s.lower(); }
    throw _py_err("AttributeError", "lower");
}`)

	register("_pym_replace", []string{"_py_err"}, `function (s, oldsub, newsub, count) {
    if (typeof s === "string") {
        if (count === undefined) { return s.split(oldsub).join(newsub); }
        var out = "", rest = s;
        while (count > 0) {
            var j = rest.indexOf(oldsub);
            if (j < 0) { break; }
            out += rest.slice(0, j) + newsub;
            rest = rest.slice(j + oldsub.length);
            count--;
        }
        return out + rest;
    }
    if (s && typeof s === "object" && typeof s.replace === "function") { return s.replace(oldsub, newsub, count); }
    throw _py_err("AttributeError", "replace");
}`)

	register("_pym_find", []string{"_py_err"}, `function (s, sub, start) {
    if (typeof s === "string") { return s.indexOf(sub, start === undefined ? 0 : start); }
    if (s && typeof s === "object" && typeof s.find === "function") { return s.find(sub, start); }
    throw _py_err("AttributeError", "find");
}`)

	register("_pym_rfind", []string{"_py_err"}, `function (s, sub) {
    if (typeof s === "string") { return s.lastIndexOf(sub); }
    if (s && typeof s === "object" && typeof s.rfind === "function") { return s.rfind(sub); }
    throw _py_err("AttributeError", "rfind");
}`)

	register("_pym_format", []string{"_py_err", "_py_fmtval", "_py_splitargs"}, `function (s) {
    if (typeof s !== "string") {
        if (s && typeof s === "object" && typeof s.format === "function") {
            return s.format.apply(s, Array.prototype.slice.call(arguments, 1));
        }
        throw _py_err("AttributeError", "format");
    }
    var a = _py_splitargs(arguments), args = a.pos.slice(1), kw = a.kw, auto = 0;
    var masked = s.replace(/\{\{/g, "\u0000").replace(/\}\}/g, "\u0001");
    var out = masked.replace(/\{([^{}:]*)(?::([^{}]*))?\}/g, function (_, name, spec) {
        var v;
        if (name === "") { v = args[auto++]; }
        else if (/^\d+$/.test(name)) { v = args[Number(name)]; }
        else { v = kw[name]; }
        if (v === undefined) { throw _py_err("KeyError", name); }
        return _py_fmtval(v, spec === undefined ? "" : spec);
    });
    return out.replace(/\u0000/g, "{").replace(/\u0001/g, "}");
}`)

	register("_pym_capitalize", []string{"_py_err"}, `function (s) {
    if (typeof s === "string") {
        return s === "" ? s : s.charAt(0).toUpperCase() + s.slice(1).toLowerCase();
    }
    if (s && typeof s === "object" && typeof s.capitalize === "function") { return s.capitalize(); }
    throw _py_err("AttributeError", "capitalize");
}`)

	register("_pym_title", []string{"_py_err"}, `function (s) {
    if (typeof s === "string") {
        return s.replace(/\w\S*/g, function (w) {
            return w.charAt(0).toUpperCase() + w.slice(1).toLowerCase();
        });
    }
    if (s && typeof s === "object" && typeof s.title === "function") { return s.title(); }
    throw _py_err("AttributeError", "title");
}`)

	register("_pym_add", []string{"_py_err", "_py_setadd"}, `function (o, v) {
    if (Array.isArray(o)) { _py_setadd(o, v); return null; }
    if (o && typeof o === "object" && typeof o.add === "function") { return o.add(v); }
    throw _py_err("AttributeError", "add");
}`)

	register("_pym_popitem", []string{"_py_err"}, `function (o) {
    if (o && typeof o === "object" && !Array.isArray(o)) {
        if (typeof o.popitem === "function") { return o.popitem(); }
        for (var k in o) {
            if (o.hasOwnProperty(k)) {
                var v = o[k];
                delete o[k];
                return [k, v];
            }
        }
        throw _py_err("KeyError", "popitem(): dictionary is empty");
    }
    throw _py_err("AttributeError", "popitem");
}`)

	register("_pym_center", []string{"_py_err"}, `function (s, width, fill) {
    if (typeof s === "string") {
        if (fill === undefined) { fill = " "; }
        var right = true;
        while (s.length < width) {
            s = right ? s + fill : fill + s;
            right = !right;
        }
        return s;
    }
    if (s && typeof s === "object" && typeof s.center === "function") { return s.center(width, fill); }
    throw _py_err("AttributeError", "center");
}`)

	register("_pym_casefold", []string{"_py_err"}, `function (s) {
    if (typeof s === "string") { return s.toLowerCase(); }
    if (s && typeof s === "object" && typeof s.casefold === "function") { return s.casefold(); }
    throw _py_err("AttributeError", "casefold");
}`)

	register("_pym_splitlines", []string{"_py_err"}, `function (s) {
    if (typeof s === "string") {
        var out = s.split(/\r\n|\r|\n/);
        if (out.length > 0 && out[out.length - 1] === "") { out.pop(); }
        return out;
    }
    if (s && typeof s === "object" && typeof s.splitlines === "function") { return s.splitlines(); }
    throw _py_err("AttributeError", "splitlines");
}`)

	register("_pym_swapcase", []string{"_py_err"}, `function (s) {
    if (typeof s === "string") {
        var out = "";
        for (var i = 0; i < s.length; i++) {
            var c = s.charAt(i), u = c.toUpperCase();
            out += c === u ? c.toLowerCase() : u;
        }
        return out;
    }
    if (s && typeof s === "object" && typeof s.swapcase === "function") { return s.swapcase(); }
    throw _py_err("AttributeError", "swapcase");
}`)

	register("_pym_zfill", []string{"_py_err"}, `function (s, width) {
    if (typeof s === "string") {
        var sign = "";
        if (s.charAt(0) === "+" || s.charAt(0) === "-") {
            sign = s.charAt(0);
            s = s.slice(1);
        }
        while (sign.length + s.length < width) { s = "0" + s; }
        return sign + s;
    }
    if (s && typeof s === "object" && typeof s.zfill === "function") { return s.zfill(width); }
    throw _py_err("AttributeError", "zfill");
}`)

	register("_pym_rindex", []string{"_py_err"}, `function (s, sub) {
    if (typeof s === "string") {
        var j = s.lastIndexOf(sub);
        if (j < 0) { throw _py_err("ValueError", "substring not found"); }
        return j;
    }
    if (s && typeof s === "object" && typeof s.rindex === "function") { return s.rindex(sub); }
    throw _py_err("AttributeError", "rindex");
}`)

	register("_pym_discard", []string{"_py_err", "_py_eq"}, `function (o, v) {
    if (Array.isArray(o)) {
        for (var i = 0; i < o.length; i++) {
            if (_py_eq(o[i], v)) { o.splice(i, 1); return null; }
        }
        return null;
    }
    if (o && typeof o === "object" && typeof o.discard === "function") { return o.discard(v); }
    throw _py_err("AttributeError", "discard");
}`)
}
