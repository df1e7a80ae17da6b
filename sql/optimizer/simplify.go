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

package optimizer

import (
	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/transform"
)

// simplify folds §4.6's three expression-level rewrites into a single
// bottom-up pass over every expression a node owns: constant folding,
// boolean short-circuit simplification, and cast elimination. All three
// shrink a node count (literals replace whole subtrees, And/Or/Cast nodes
// disappear), so running them together in one FixedPoint batch converges
// without needing to interleave with combineFilters or eliminateSubqueries.
func simplify(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	result, _, err := transform.NodeExprsWithNode(n, func(_ sql.Node, e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		if simplified, changed, err := simplifyBoolean(e); err != nil {
			return nil, transform.SameTree, err
		} else if changed == transform.NewTree {
			return simplified, transform.NewTree, nil
		}

		if simplified, changed := simplifyCast(e); changed == transform.NewTree {
			return simplified, transform.NewTree, nil
		}

		if lit, ok := e.(*expression.Literal); ok {
			return lit, transform.SameTree, nil
		}
		if expression.Foldable(e) {
			v, err := e.Eval(ctx, nil)
			if err != nil {
				return nil, transform.SameTree, err
			}
			return expression.NewLiteral(v, e.Type()), transform.NewTree, nil
		}

		return e, transform.SameTree, nil
	})
	return result, err
}

// simplifyBoolean implements true AND x -> x, false AND x -> false and
// the dual rules for OR, whenever one operand is a boolean literal. Both
// operands of a literal-true/false AND/OR are always pure, so dropping
// the non-literal operand when the literal alone determines the result
// (false AND x, true OR x) is safe even though x is never evaluated
// afterward.
func simplifyBoolean(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
	switch a := e.(type) {
	case *expression.And:
		if lb, ok := literalBool(a.Left); ok {
			if !lb {
				return expression.NewLiteral(false, a.Type()), transform.NewTree, nil
			}
			return a.Right, transform.NewTree, nil
		}
		if rb, ok := literalBool(a.Right); ok {
			if !rb {
				return expression.NewLiteral(false, a.Type()), transform.NewTree, nil
			}
			return a.Left, transform.NewTree, nil
		}
	case *expression.Or:
		if lb, ok := literalBool(a.Left); ok {
			if lb {
				return expression.NewLiteral(true, a.Type()), transform.NewTree, nil
			}
			return a.Right, transform.NewTree, nil
		}
		if rb, ok := literalBool(a.Right); ok {
			if rb {
				return expression.NewLiteral(true, a.Type()), transform.NewTree, nil
			}
			return a.Left, transform.NewTree, nil
		}
	}
	return e, transform.SameTree, nil
}

func literalBool(e sql.Expression) (bool, bool) {
	lit, ok := e.(*expression.Literal)
	if !ok {
		return false, false
	}
	b, ok := lit.Value().(bool)
	return b, ok
}

// simplifyCast drops Cast(x, T) when x already has type T (§4.6).
func simplifyCast(e sql.Expression) (sql.Expression, transform.TreeIdentity) {
	c, ok := e.(*expression.Cast)
	if !ok {
		return e, transform.SameTree
	}
	if c.Child.Type().Equals(c.TargetType) {
		return c.Child, transform.NewTree
	}
	return e, transform.SameTree
}
