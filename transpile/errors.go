// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpile

import (
	"fmt"

	"go.adder.dev/syntax"
)

// An ErrKind classifies a translation error.
type ErrKind int

const (
	// NameResolution: a name reference has no reachable binding.
	NameResolution ErrKind = iota

	// UnsupportedConstruct: the construct has no translation under
	// the active configuration (e.g. a generator on a target profile
	// without generator support, or multiple base classes).
	UnsupportedConstruct

	// ReservedNameCollision: the mangler could not produce a unique
	// target-safe name within its retry bound.
	ReservedNameCollision

	// InternalInvariant: a contract violation detected during
	// translation; always a bug in the translator.
	InternalInvariant
)

var kindNames = [...]string{
	NameResolution:        "name resolution",
	UnsupportedConstruct:  "unsupported construct",
	ReservedNameCollision: "reserved name collision",
	InternalInvariant:     "internal invariant",
}

func (k ErrKind) String() string { return kindNames[k] }

// An Error describes a failure to translate one construct.
type Error struct {
	Pos  syntax.Position
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// An ErrorList is a non-empty list of translation errors,
// ordered by source position of the failing top-level statement.
type ErrorList []*Error // len > 0

func (l ErrorList) Error() string { return l[0].Error() }
