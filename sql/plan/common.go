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

// Package plan implements the logical operator entities of §3.4: Relation
// (as ResolvedTable/UnresolvedRelation), Subquery, Project, Filter, Join,
// Aggregate, Sort, Limit, Union, Generate and InsertInto. Every type here
// only implements sql.Node (and sql.Expressioner where it owns its own
// expressions); nothing in this package executes -- physical execution is
// package rowexec's concern (C9), reached only after package planner (C8)
// has replaced every node here with a physical counterpart.
package plan

import (
	"github.com/relforge/relforge/sql"
)

// UnaryNode factors the single-child plumbing shared by Project, Filter,
// Sort, Limit, Generate and InsertInto.
type UnaryNode struct {
	Child sql.Node
}

func (n UnaryNode) Resolved() bool       { return n.Child.Resolved() }
func (n UnaryNode) Children() []sql.Node { return []sql.Node{n.Child} }

// BinaryNode factors the two-child plumbing used by Join (Union is
// n-ary and does not embed it).
type BinaryNode struct {
	Left, Right sql.Node
}

func (n BinaryNode) Resolved() bool {
	return n.Left.Resolved() && n.Right.Resolved()
}

func (n BinaryNode) Children() []sql.Node { return []sql.Node{n.Left, n.Right} }

// oneChild validates the arity WithChildren implementations of unary
// nodes expect, returning a ready-to-use ErrTreeShapeMismatch otherwise.
func oneChild(self sql.Node, children []sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(self, 1, len(children))
	}
	return children[0], nil
}

// twoChildren is oneChild's two-child counterpart, used by Join.
func twoChildren(self sql.Node, children []sql.Node) (left, right sql.Node, err error) {
	if len(children) != 2 {
		return nil, nil, sql.ErrTreeShapeMismatch.New(self, 2, len(children))
	}
	return children[0], children[1], nil
}

// exprName returns the name a schema column should carry for expr: its
// own Name() if it is a sql.NameableExpression (Alias, AttributeReference),
// otherwise its printed form, mirroring how Project derives output column
// names (§3.4 "output = exprs mapped to attributes, aliases preserved").
func exprName(expr sql.Expression) string {
	if named, ok := expr.(sql.NameableExpression); ok {
		return named.Name()
	}
	return expr.String()
}

// identified is implemented by every expression that carries a settled
// attribute identity (§3.2): Alias and AttributeReference mint theirs
// once at construction; a BoundReference carries one only once the
// analyzer has bound it against a matching attribute via WithID (§4.5
// step 3). Schema() is recomputed on demand rather than cached, so
// exprID never mints here -- an id minted on every call would drift
// across calls for the same logical column, breaking the "assigned once,
// never changes" identity §3.2 requires. An expression with no identity
// of its own (a bare, un-aliased computed expression) simply projects a
// zero id, the same "no identity yet" convention sql.Column.ID documents.
type identified interface {
	ID() sql.AttributeID
}

func exprID(expr sql.Expression) sql.AttributeID {
	if id, ok := expr.(identified); ok {
		return id.ID()
	}
	return 0
}

// schemaOfExprs computes the schema an expression list projects, the
// shared rule behind Project's and Aggregate's output.
func schemaOfExprs(exprs []sql.Expression) sql.Schema {
	schema := make(sql.Schema, len(exprs))
	for i, e := range exprs {
		var typ sql.Type
		if e.Resolved() {
			typ = e.Type()
		}
		schema[i] = &sql.Column{
			Name:     exprName(e),
			Type:     typ,
			Nullable: !e.Resolved() || e.IsNullable(),
			ID:       exprID(e),
		}
	}
	return schema
}

// allResolved reports whether every expression in exprs is resolved,
// folded into operators' own Resolved() alongside their child(ren).
func allResolved(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

func exprsString(exprs []sql.Expression) string {
	s := ""
	for i, e := range exprs {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s
}

// treeString composes name (a one-line description of the node's own
// parameters) with child's already-rendered tree-string, the shared shape
// every node's String() in this package uses (§3's added tree-string
// requirement).
func treeString(name string, children ...sql.Node) string {
	p := sql.NewTreePrinter()
	p.WriteNode(name)
	lines := make([]string, len(children))
	for i, c := range children {
		lines[i] = c.String()
	}
	p.WriteChildren(lines...)
	return p.String()
}
