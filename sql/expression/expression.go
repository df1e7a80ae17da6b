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

// Package expression implements the expression algebra (C3, §3.5, §4.3):
// literals, attribute references, the unary/binary arithmetic and boolean
// connectives, comparisons, Cast and the other scalar expressions, plus
// the References/Foldable helpers analysis and optimization depend on.
// Aggregate expressions live in the aggregation subpackage.
package expression

import (
	"fmt"

	"github.com/relforge/relforge/sql"
)

// noChildren is embedded by leaf expressions to satisfy sql.Expression's
// Children/WithChildren with a zero-arity implementation.
type noChildren struct{}

func (noChildren) Children() []sql.Expression { return nil }

// Literal is a constant value of a known type (§3.5).
type Literal struct {
	noChildren
	value interface{}
	typ   sql.Type
}

func NewLiteral(value interface{}, typ sql.Type) *Literal {
	return &Literal{value: value, typ: typ}
}

func (l *Literal) Resolved() bool   { return true }
func (l *Literal) Type() sql.Type   { return l.typ }
func (l *Literal) IsNullable() bool { return l.value == nil }
func (l *Literal) Value() interface{} { return l.value }

func (l *Literal) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return l.value, nil
}

func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrTreeShapeMismatch.New(l, 0, len(children))
	}
	return l, nil
}

func (l *Literal) String() string {
	if s, ok := l.value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", l.value)
}

// AttributeReference is a resolved reference to a single named, typed
// slot in a child's output (§3.5, §3.2). Its id is assigned once, at
// construction, and never changes -- the identity resolution is built on
// (§3.2).
type AttributeReference struct {
	noChildren
	id        sql.AttributeID
	name      string
	qualifier string
	typ       sql.Type
	nullable  bool
}

// NewAttributeReference mints a fresh attribute identity. Used by
// Relation leaves and by Alias/Aggregate output construction -- never by
// the analyzer when it is merely resolving an existing reference (that
// path reuses the id found in the child's output, see WithID).
func NewAttributeReference(name string, typ sql.Type, nullable bool) *AttributeReference {
	return &AttributeReference{id: sql.NextAttributeID(), name: name, typ: typ, nullable: nullable}
}

// WithID returns a copy bound to an existing attribute id, used when the
// analyzer resolves an UnresolvedAttribute against a matching output
// attribute and must carry that attribute's id forward rather than mint a
// new one (§4.5 batch 3).
func (a *AttributeReference) WithID(id sql.AttributeID) *AttributeReference {
	aa := *a
	aa.id = id
	return &aa
}

func (a *AttributeReference) WithQualifier(q string) *AttributeReference {
	aa := *a
	aa.qualifier = q
	return &aa
}

func (a *AttributeReference) ID() sql.AttributeID { return a.id }
func (a *AttributeReference) Name() string        { return a.name }
func (a *AttributeReference) Qualifier() string    { return a.qualifier }
func (a *AttributeReference) Resolved() bool       { return true }
func (a *AttributeReference) Type() sql.Type       { return a.typ }
func (a *AttributeReference) IsNullable() bool     { return a.nullable }

func (a *AttributeReference) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return nil, sql.ErrUnsupportedOperation.New("AttributeReference must be bound before Eval; see BoundReference")
}

func (a *AttributeReference) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrTreeShapeMismatch.New(a, 0, len(children))
	}
	return a, nil
}

func (a *AttributeReference) String() string {
	if a.qualifier != "" {
		return a.qualifier + "." + a.name
	}
	return a.name
}

// BoundReference resolves an attribute to its physical position: the
// ordinal of the joined relation's row tuple and the field offset within
// it (§3.5). The evaluator (C9) indexes directly with these, which is
// what makes Eval a slice lookup instead of a name search.
type BoundReference struct {
	noChildren
	tupleOrdinal int
	fieldOrdinal int
	name         string
	typ          sql.Type
	nullable     bool
	id           sql.AttributeID
}

func NewBoundReference(tupleOrdinal, fieldOrdinal int, name string, typ sql.Type, nullable bool) *BoundReference {
	return &BoundReference{tupleOrdinal: tupleOrdinal, fieldOrdinal: fieldOrdinal, name: name, typ: typ, nullable: nullable}
}

// WithID returns a copy carrying id, used when the analyzer resolves a
// reference against an existing attribute and must carry that
// attribute's identity forward (§3.2, §4.5 step 3) instead of leaving
// this BoundReference's id unset.
func (b *BoundReference) WithID(id sql.AttributeID) *BoundReference {
	bb := *b
	bb.id = id
	return &bb
}

func (b *BoundReference) ID() sql.AttributeID { return b.id }
func (b *BoundReference) Resolved() bool      { return true }
func (b *BoundReference) Type() sql.Type      { return b.typ }
func (b *BoundReference) IsNullable() bool    { return b.nullable }
func (b *BoundReference) Name() string        { return b.name }

// TupleOrdinal and FieldOrdinal expose the two physical-position
// ordinals a planner needs to reason about without evaluating the
// expression: which joined tuple a reference falls in, and its field
// offset within that tuple.
func (b *BoundReference) TupleOrdinal() int { return b.tupleOrdinal }
func (b *BoundReference) FieldOrdinal() int { return b.fieldOrdinal }

// Eval indexes directly into row by the field ordinal alone; the tuple
// ordinal is not consulted. A row carrying several joined tuples is
// therefore read as one flat row, with the field ordinal counted from
// the start of that flattened row.
func (b *BoundReference) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	if b.fieldOrdinal < 0 || b.fieldOrdinal >= len(row) {
		return nil, sql.ErrIndexOutOfBounds.New(b.fieldOrdinal, len(row))
	}
	return row[b.fieldOrdinal], nil
}

func (b *BoundReference) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrTreeShapeMismatch.New(b, 0, len(children))
	}
	return b, nil
}

func (b *BoundReference) String() string { return b.name }

// Alias binds child's value to a fresh, settled attribute identity
// (§3.5); it is how Project turns an arbitrary expression into a
// referenceable output column.
type Alias struct {
	UnaryExpression
	id   sql.AttributeID
	name string
}

func NewAlias(child sql.Expression, name string) *Alias {
	return &Alias{UnaryExpression{child}, sql.NextAttributeID(), name}
}

func (a *Alias) ID() sql.AttributeID { return a.id }
func (a *Alias) Name() string        { return a.name }
func (a *Alias) Type() sql.Type      { return a.Child.Type() }
func (a *Alias) IsNullable() bool    { return a.Child.IsNullable() }

func (a *Alias) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return a.Child.Eval(ctx, row)
}

func (a *Alias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(a, 1, len(children))
	}
	aa := *a
	aa.Child = children[0]
	return &aa, nil
}

func (a *Alias) String() string { return fmt.Sprintf("%s AS %s", a.Child, a.name) }

// UnaryExpression factors the single-child Resolved/Children
// plumbing shared by Alias, Not, UnaryMinus, Cast, IsNull and friends.
type UnaryExpression struct {
	Child sql.Expression
}

func (e UnaryExpression) Resolved() bool               { return e.Child.Resolved() }
func (e UnaryExpression) Children() []sql.Expression    { return []sql.Expression{e.Child} }

// BinaryExpression factors the two-child plumbing shared by arithmetic,
// comparison and logical connective expressions.
type BinaryExpression struct {
	Left, Right sql.Expression
}

func (e BinaryExpression) Resolved() bool {
	return e.Left.Resolved() && e.Right.Resolved()
}

func (e BinaryExpression) Children() []sql.Expression {
	return []sql.Expression{e.Left, e.Right}
}

func (e BinaryExpression) IsNullable() bool {
	return e.Left.IsNullable() || e.Right.IsNullable()
}

// Operands exposes Left/Right through BinaryOperand so that a caller
// holding only an sql.Expression can find and rebuild an arithmetic or
// comparison node without naming its (unexported) concrete type.
func (e BinaryExpression) Operands() (sql.Expression, sql.Expression) {
	return e.Left, e.Right
}

// BinaryOperand is implemented by every expression embedding
// BinaryExpression (arithmetic, comparison, And, Or), whether or not its
// own type is exported.
type BinaryOperand interface {
	Operands() (sql.Expression, sql.Expression)
}

// References collects every AttributeReference appearing in e's subtree
// (§4.3).
func References(e sql.Expression) []*AttributeReference {
	var out []*AttributeReference
	var walk func(sql.Expression)
	walk = func(x sql.Expression) {
		if ar, ok := x.(*AttributeReference); ok {
			out = append(out, ar)
		}
		for _, c := range x.Children() {
			walk(c)
		}
	}
	walk(e)
	return out
}

// Foldable reports whether e's subtree contains only literals and pure
// expressions over foldable children (§4.3); constant folding (§4.6) only
// rewrites expressions for which this holds.
func Foldable(e sql.Expression) bool {
	switch e.(type) {
	case *Literal:
		return true
	case *AttributeReference, *BoundReference:
		return false
	}
	if agg, ok := e.(sql.AggregateExpression); ok && agg.IsAggregate() {
		return false
	}
	if !e.Resolved() {
		return false
	}
	for _, c := range e.Children() {
		if !Foldable(c) {
			return false
		}
	}
	return len(e.Children()) > 0
}
