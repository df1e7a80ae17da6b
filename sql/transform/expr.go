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

package transform

import "github.com/relforge/relforge/sql"

// ExprFunc is Expr's per-node callback, the Expression analogue of
// NodeFunc.
type ExprFunc func(e sql.Expression) (sql.Expression, TreeIdentity, error)

// Expr performs a post-order rewrite of an expression tree, exactly as
// Node does for plan trees: children are rewritten first, the expression
// is rebuilt over the new children, then f is applied to the result.
func Expr(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	children := e.Children()
	if len(children) == 0 {
		return f(e)
	}

	newChildren := make([]sql.Expression, len(children))
	identity := SameTree
	for i, c := range children {
		nc, same, err := Expr(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		identity = identity.or(same)
	}

	cur := e
	if identity == NewTree {
		rebuilt, err := e.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
		cur = rebuilt
	}

	res, same, err := f(cur)
	if err != nil {
		return nil, SameTree, err
	}
	return res, identity.or(same), nil
}

// NodeExprs rewrites every top-level expression owned by n (not its
// children's expressions) by running each through Expr with f. Nodes that
// don't implement sql.Expressioner are returned unchanged. This is the
// shape column-resolution, type-coercion and constant-folding rules use:
// they rewrite the expressions a node owns without having to know whether
// it's a Project, Filter, Aggregate or Join (§4.4, §4.6).
func NodeExprs(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	exprer, ok := n.(sql.Expressioner)
	if !ok {
		return n, SameTree, nil
	}

	exprs := exprer.Expressions()
	if len(exprs) == 0 {
		return n, SameTree, nil
	}

	newExprs := make([]sql.Expression, len(exprs))
	identity := SameTree
	for i, e := range exprs {
		ne, same, err := Expr(e, f)
		if err != nil {
			return nil, SameTree, err
		}
		newExprs[i] = ne
		identity = identity.or(same)
	}

	if identity == SameTree {
		return n, SameTree, nil
	}
	rebuilt, err := exprer.WithExpressions(newExprs...)
	if err != nil {
		return nil, SameTree, err
	}
	return rebuilt, NewTree, nil
}

// NodeExprsWithNode walks every node of tree and rewrites each node's own
// expressions via f, combining Node's plan-tree descent with NodeExprs'
// per-node expression rewrite. This is the single helper most analyzer
// and optimizer rules are built on (§4.5, §4.6): it reaches every
// expression in the whole plan in one call.
func NodeExprsWithNode(tree sql.Node, f func(sql.Node, sql.Expression) (sql.Expression, TreeIdentity, error)) (sql.Node, TreeIdentity, error) {
	return Node(tree, func(n sql.Node) (sql.Node, TreeIdentity, error) {
		return NodeExprs(n, func(e sql.Expression) (sql.Expression, TreeIdentity, error) {
			return f(n, e)
		})
	})
}

// ForeachExpr walks e pre-order, calling f once per expression node. It
// never rewrites.
func ForeachExpr(e sql.Expression, f func(sql.Expression) error) error {
	if err := f(e); err != nil {
		return err
	}
	for _, c := range e.Children() {
		if err := ForeachExpr(c, f); err != nil {
			return err
		}
	}
	return nil
}

// CollectExprs walks e pre-order and returns every sub-expression for
// which pred returns true.
func CollectExprs(e sql.Expression, pred func(sql.Expression) bool) []sql.Expression {
	var out []sql.Expression
	_ = ForeachExpr(e, func(c sql.Expression) error {
		if pred(c) {
			out = append(out, c)
		}
		return nil
	})
	return out
}

// InspectExpressions walks every expression owned by every node of tree,
// pre-order over both the plan tree and each expression tree, calling f
// once per expression. It never rewrites; rules that only need to observe
// (e.g. checking for a forbidden Unresolved* leaf, §4.4's invariant
// checks) use this instead of NodeExprsWithNode.
func InspectExpressions(tree sql.Node, f func(sql.Expression) error) error {
	return Foreach(tree, func(n sql.Node) error {
		exprer, ok := n.(sql.Expressioner)
		if !ok {
			return nil
		}
		for _, e := range exprer.Expressions() {
			if err := ForeachExpr(e, f); err != nil {
				return err
			}
		}
		return nil
	})
}
