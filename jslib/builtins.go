// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jslib

// builtinHelpers maps each universal built-in function to the catalog
// helper that implements it.
var builtinHelpers = map[string]string{
	"abs":        "_py_abs",
	"all":        "_py_all",
	"any":        "_py_any",
	"bool":       "_py_bool",
	"callable":   "_py_callable",
	"chr":        "_py_chr",
	"delattr":    "_py_delattr",
	"dict":       "_py_dict",
	"divmod":     "_py_divmod",
	"enumerate":  "_py_enumerate",
	"filter":     "_py_filter",
	"float":      "_py_float",
	"getattr":    "_py_getattr",
	"hasattr":    "_py_hasattr",
	"int":        "_py_int",
	"isinstance": "_py_isinstance",
	"issubclass": "_py_issubclass",
	"len":        "_py_len",
	"list":       "_py_list",
	"map":        "_py_map",
	"max":        "_py_max",
	"min":        "_py_min",
	"ord":        "_py_ord",
	"print":      "_py_print",
	"range":      "_py_range",
	"repr":       "_py_repr",
	"reversed":   "_py_reversed",
	"round":      "_py_round",
	"set":        "_py_set",
	"setattr":    "_py_setattr",
	"sorted":     "_py_sorted",
	"str":        "_py_str",
	"sum":        "_py_sum",
	"tuple":      "_py_tuple",
	"zip":        "_py_zip",
}

// errorNames is the universal exception hierarchy.  These names have
// no helper of their own: a raise of one becomes a _py_err throw, and
// an except clause matches them by name through _py_errmatch.
var errorNames = map[string]bool{
	"Exception":           true,
	"ArithmeticError":     true,
	"AssertionError":      true,
	"AttributeError":      true,
	"IndexError":          true,
	"KeyError":            true,
	"LookupError":         true,
	"NameError":           true,
	"NotImplementedError": true,
	"RuntimeError":        true,
	"StopIteration":       true,
	"TypeError":           true,
	"ValueError":          true,
	"ZeroDivisionError":   true,
}

// typeNames are the built-in names that double as classes for
// isinstance and issubclass.  The runtime helpers match them by name
// string against a value's shape, since the conversion functions the
// names otherwise translate to carry no type identity.
var typeNames = map[string]bool{
	"bool":  true,
	"dict":  true,
	"float": true,
	"int":   true,
	"list":  true,
	"set":   true,
	"str":   true,
	"tuple": true,
}

// constantNames are universal names translated to fixed JavaScript
// expressions rather than helper calls.
var constantNames = map[string]bool{
	"True":  true,
	"False": true,
	"None":  true,
}

// IsBuiltin reports whether name is a universal built-in of the
// translation target: a constant, a built-in function, or an
// exception class.
func IsBuiltin(name string) bool {
	return constantNames[name] || errorNames[name] || builtinHelpers[name] != ""
}

// IsErrorName reports whether name is a universal exception class.
func IsErrorName(name string) bool { return errorNames[name] }

// IsTypeName reports whether name is a built-in type usable as the
// class operand of isinstance or issubclass.
func IsTypeName(name string) bool { return typeNames[name] }

// BuiltinHelper returns the helper implementing the named universal
// built-in function, or "" if the name is not a built-in function.
func BuiltinHelper(name string) string { return builtinHelpers[name] }

// MethodHelper returns the helper implementing the named method for
// receivers of unknown type, or "" if no method helper exists.
func MethodHelper(name string) string {
	helper := "_pym_" + name
	if _, ok := catalog[helper]; ok {
		return helper
	}
	return ""
}
