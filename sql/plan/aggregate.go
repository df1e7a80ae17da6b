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

package plan

import (
	"github.com/relforge/relforge/sql"
)

// Aggregate is §3.4's Aggregate(groupingExprs, aggregateExprs, child):
// output = aggregateExprs' attributes. GroupingExprs is not itself part
// of the output unless it also appears (by identity) among
// AggregateExprs, matching the analyzer's "aggregate rewrite" batch
// (§4.5 step 7), which rewrites any non-aggregate, non-grouping
// subexpression of an AggregateExpr into a BoundReference into the
// grouping tuple.
type Aggregate struct {
	UnaryNode
	GroupingExprs  []sql.Expression
	AggregateExprs []sql.Expression
}

var _ sql.Node = (*Aggregate)(nil)
var _ sql.Expressioner = (*Aggregate)(nil)

func NewAggregate(groupingExprs, aggregateExprs []sql.Expression, child sql.Node) *Aggregate {
	return &Aggregate{UnaryNode{child}, groupingExprs, aggregateExprs}
}

func (a *Aggregate) Resolved() bool {
	return a.Child.Resolved() && allResolved(a.GroupingExprs) && allResolved(a.AggregateExprs)
}

func (a *Aggregate) Schema() sql.Schema { return schemaOfExprs(a.AggregateExprs) }

// Expressions returns grouping expressions first, then aggregate
// expressions, so WithExpressions can split them back by length.
func (a *Aggregate) Expressions() []sql.Expression {
	out := make([]sql.Expression, 0, len(a.GroupingExprs)+len(a.AggregateExprs))
	out = append(out, a.GroupingExprs...)
	out = append(out, a.AggregateExprs...)
	return out
}

func (a *Aggregate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	want := len(a.GroupingExprs) + len(a.AggregateExprs)
	if len(exprs) != want {
		return nil, sql.ErrTreeShapeMismatch.New(a, want, len(exprs))
	}
	grouping := exprs[:len(a.GroupingExprs)]
	aggregate := exprs[len(a.GroupingExprs):]
	return NewAggregate(grouping, aggregate, a.Child), nil
}

func (a *Aggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(a, children)
	if err != nil {
		return nil, err
	}
	return NewAggregate(a.GroupingExprs, a.AggregateExprs, child), nil
}

func (a *Aggregate) String() string {
	name := "Aggregate"
	if len(a.GroupingExprs) > 0 {
		name += "(" + exprsString(a.GroupingExprs) + "; " + exprsString(a.AggregateExprs) + ")"
	} else {
		name += "(" + exprsString(a.AggregateExprs) + ")"
	}
	return treeString(name, a.Child)
}
