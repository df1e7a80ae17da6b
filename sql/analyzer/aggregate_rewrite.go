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

package analyzer

import (
	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/transform"
)

// aggregateRewrite is §4.5 step 7: inside every Aggregate node, a
// subexpression of AggregateExprs that is itself an AggregateExpression
// with IsAggregate() true is left alone (its own arguments evaluate
// against individual input rows, not the grouping tuple). Every other
// subexpression must structurally match (sql.Equal) one of GroupingExprs,
// in which case it is rewritten to a BoundReference into the conceptual
// grouping tuple at that expression's position; a leaf subexpression
// matching nothing fails the batch with ErrNonGroupingReference, since
// `SELECT a, b FROM t GROUP BY a` has no well-defined value for b.
func aggregateRewrite(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	result, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		agg, ok := node.(*plan.Aggregate)
		if !ok {
			return node, transform.SameTree, nil
		}

		var rewritten []sql.Expression
		changed := false
		for _, e := range agg.AggregateExprs {
			r, didChange, err := rewriteAgainstGrouping(e, agg.GroupingExprs)
			if err != nil {
				return nil, transform.SameTree, err
			}
			rewritten = append(rewritten, r)
			changed = changed || didChange
		}
		if !changed {
			return node, transform.SameTree, nil
		}
		return plan.NewAggregate(agg.GroupingExprs, rewritten, agg.Child), transform.NewTree, nil
	})
	return result, err
}

func rewriteAgainstGrouping(e sql.Expression, groupingExprs []sql.Expression) (sql.Expression, bool, error) {
	if aggFn, ok := e.(sql.AggregateExpression); ok && aggFn.IsAggregate() {
		return e, false, nil
	}

	if idx := groupingIndex(e, groupingExprs); idx >= 0 {
		return boundToGroupingTuple(e, idx), true, nil
	}

	children := e.Children()
	if len(children) == 0 {
		return nil, false, sql.ErrNonGroupingReference.New(e.String(), exprsString(groupingExprs))
	}

	newChildren := make([]sql.Expression, len(children))
	changed := false
	for i, c := range children {
		r, didChange, err := rewriteAgainstGrouping(c, groupingExprs)
		if err != nil {
			return nil, false, err
		}
		newChildren[i] = r
		changed = changed || didChange
	}
	if !changed {
		return e, false, nil
	}
	rebuilt, err := e.WithChildren(newChildren...)
	if err != nil {
		return nil, false, err
	}
	return rebuilt, true, nil
}

func groupingIndex(e sql.Expression, groupingExprs []sql.Expression) int {
	for i, g := range groupingExprs {
		if sql.Equal(e, g) {
			return i
		}
	}
	return -1
}

func boundToGroupingTuple(e sql.Expression, ordinal int) sql.Expression {
	ref := expression.NewBoundReference(0, ordinal, exprName(e), e.Type(), e.IsNullable())
	if id, ok := e.(interface{ ID() sql.AttributeID }); ok {
		return ref.WithID(id.ID())
	}
	return ref
}

// exprName returns the name the grouping tuple's BoundReference should
// carry, mirroring plan.exprName's Alias/AttributeReference-aware naming.
func exprName(expr sql.Expression) string {
	if named, ok := expr.(sql.NameableExpression); ok {
		return named.Name()
	}
	return expr.String()
}

// exprsString renders groupingExprs for ErrNonGroupingReference's message.
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
