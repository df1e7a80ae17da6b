// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

// Type is the closed data-type lattice (§3.3). Concrete members live in
// package types; this package only needs the interface to stay free of a
// dependency on the lattice implementation.
type Type interface {
	// String is the type's canonical printed name, e.g. "INT" or
	// "ARRAY<INT>".
	String() string
	// Equals reports whether two types are identical (not merely
	// mutually widenable).
	Equals(other Type) bool
	// Zero returns default_value(t) from §4.2.
	Zero() interface{}
}

// Column is a named, typed field of a Schema. Source, when set, is the
// qualifier (table/subquery alias) the column was produced under, used by
// qualified-name resolution (§4.5 step 3). ID, when nonzero, is the
// column's attribute identity (§3.2): two columns across two schemas are
// the same attribute iff their IDs match, independent of name or
// position. A zero ID means no identity has been minted for this column
// (a schema built as a plain literal in a test fixture, for instance);
// §8.1's duplicate-id invariant ignores zero IDs for that reason.
type Column struct {
	Name     string
	Type     Type
	Nullable bool
	Source   string
	ID       AttributeID
}

// Schema is an ordered sequence of columns, the output shape of a logical
// or physical relational operator.
type Schema []*Column

// Names returns the schema's column names, in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}
