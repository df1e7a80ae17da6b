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

// Node is the tree kernel's node capability (C1): every logical and
// physical operator implements it. Nodes are immutable; WithChildren
// returns a new node rather than mutating the receiver. Generic descent,
// rewriting, collection and folding live in package transform, which
// operates entirely through this interface and Expressioner below -- it
// never needs to know about concrete operator kinds.
type Node interface {
	// Resolved reports whether this node and its whole subtree are free
	// of Unresolved* nodes and Star, and every expression in it has a
	// fully determined type (§4.5 success criterion).
	Resolved() bool
	// Schema returns the node's output attribute list, computed from its
	// children and own parameters (§3.4).
	Schema() Schema
	// Children returns the node's ordered tree-family children.
	Children() []Node
	// WithChildren returns a node identical in kind and own parameters
	// but with the given children. It fails with ErrTreeShapeMismatch if
	// len(children) doesn't match the node's arity.
	WithChildren(children ...Node) (Node, error)
	// String renders a single-line or tree-string representation used for
	// diagnostics (§7).
	String() string
}

// Expressioner is implemented by Nodes that carry their own expressions
// (Project's projection list, Filter's predicate, Aggregate's grouping and
// aggregate expressions, Join's condition, ...). Rules that rewrite
// expressions inside a plan (type coercion, constant folding, column
// resolution) operate against this interface instead of one accessor
// method per operator kind.
type Expressioner interface {
	// Expressions returns the node's own expressions, not its children's.
	Expressions() []Expression
	// WithExpressions returns a copy of the node with its own expressions
	// replaced; length must match Expressions().
	WithExpressions(exprs ...Expression) (Node, error)
}

// Expression is the tree kernel's node capability specialized for the
// expression algebra (C3).
type Expression interface {
	// Resolved reports whether this expression and its subtree contain no
	// Unresolved* variant and have a determined type.
	Resolved() bool
	// Type returns the expression's data type. Panics with a message
	// identifying the node if called before the expression is resolved
	// (mirrors the "UnresolvedType" panic in §4.3).
	Type() Type
	// IsNullable reports §4.3's conservative nullability propagation.
	IsNullable() bool
	// Eval evaluates the expression (C9) against one row per joined
	// relation; row is the row for single-relation expressions.
	Eval(ctx *Context, row Row) (interface{}, error)
	// Children returns the expression's ordered children.
	Children() []Expression
	// WithChildren returns an expression identical in kind and own
	// parameters but with the given children.
	WithChildren(children ...Expression) (Expression, error)
	String() string
}

// AggregateExpression is implemented by expressions whose value depends
// on an entire group of rows rather than solely on their own children's
// per-row values (Count, Sum, Average, CountDistinct, package
// expression/aggregation). Foldable and the optimizer's constant-folding
// rule (§4.6) check this so an aggregate call is never mistaken for a
// foldable expression merely because its own arguments are literals.
type AggregateExpression interface {
	Expression
	IsAggregate() bool
}

// NameableExpression is implemented by expressions that can appear in
// Project's output with a settled attribute name (Alias, AttributeReference).
type NameableExpression interface {
	Expression
	Name() string
}

// Tabler is implemented by a leaf Node that represents a stored relation,
// the minimal shape of the catalog collaborator's return value (§6.2).
type Tabler interface {
	Name() string
	TableSchema() Schema
	Partitions(ctx *Context) ([]Partition, error)
	PartitionRows(ctx *Context, p Partition) (RowIter, error)
}

// Partition is an opaque handle to one slice of a Tabler's rows, the unit
// the execution substrate parallelizes over (§5). In the reference
// implementation in package memory, NewTable builds a single-partition
// table and NewPartitionedTable one with a given number of partitions.
type Partition interface {
	Key() []byte
}

// PartitionedRelation is an optional capability of Tabler: a relation that
// exposes its partitioning key(s) so the PartitionPruning strategy (§4.7
// strategy 3) can split predicates that reference only partition keys.
type PartitionedRelation interface {
	Tabler
	PartitionKeys() []string
}

// RowInserter is an optional capability of Tabler: a relation that can
// accept new rows, the collaborator InsertInto's physical operator (C8,
// package rowexec) writes through. Close reports any error accumulated
// across the Insert calls it guards (mirrors the row-source RowIter
// shape's own Close-reports-errors convention).
type RowInserter interface {
	Insert(ctx *Context, row Row) error
	Close(ctx *Context) error
}
