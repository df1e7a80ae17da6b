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

// Package transform implements the tree kernel's generic descent, rewrite,
// collection and folding helpers (C1, §4.1). Every function here operates
// through sql.Node/sql.Expression alone; it never switches on a concrete
// operator kind, which is what lets rules in packages analyzer, optimizer
// and rule stay free of boilerplate per-operator-type recursion.
package transform

import "github.com/relforge/relforge/sql"

// TreeIdentity reports whether a transform actually produced a new tree.
// NewTree and SameTree read like booleans at call sites (`if same ==
// SameTree`) while still documenting intent. The rule executor's
// fixpoint check does not use it; it compares plans with sql.Equal.
type TreeIdentity bool

const (
	NewTree  TreeIdentity = true
	SameTree TreeIdentity = false
)

// or is a small internal combinator: given two identities from
// sibling/child transforms, returns NewTree if either produced one.
func (t TreeIdentity) or(other TreeIdentity) TreeIdentity {
	return TreeIdentity(bool(t) || bool(other))
}

// NodeFunc is applied to exactly one node by Node's post-order traversal.
// It returns the (possibly unchanged) replacement, whether it changed
// anything, and an error that aborts the whole traversal.
type NodeFunc func(n sql.Node) (sql.Node, TreeIdentity, error)

// Node performs a post-order (bottom-up) rewrite of tree: every child
// subtree is rewritten first, the node is rebuilt over the (possibly new)
// children via WithChildren, and only then is f applied to the rebuilt
// node itself. This is the shape every rule in packages analyzer and
// optimizer is written against (§4.4): rules reason locally about one
// node at a time and rely on Node to handle the recursion and the
// WithChildren plumbing.
func Node(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	if len(children) == 0 {
		return f(n)
	}

	newChildren := make([]sql.Node, len(children))
	identity := SameTree
	for i, c := range children {
		newChild, same, err := Node(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = newChild
		identity = identity.or(same)
	}

	cur := n
	if identity == NewTree {
		rebuilt, err := n.WithChildren(newChildren...)
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

// NodeWithCtxFunc is NodeWithParent's callback: f receives the
// parent node each child is being visited under (nil at the root), which
// rules that need to know whether they're e.g. under a Join's right side
// use instead of re-deriving ancestry themselves.
type NodeWithCtxFunc func(parent sql.Node, childIdx int, n sql.Node) (sql.Node, TreeIdentity, error)

// NodeWithParent mirrors Node but also tracks, for every visited node, its
// parent and the index at which it appears among the parent's children.
func NodeWithParent(n sql.Node, f NodeWithCtxFunc) (sql.Node, TreeIdentity, error) {
	return nodeWithParent(nil, 0, n, f)
}

func nodeWithParent(parent sql.Node, idx int, n sql.Node, f NodeWithCtxFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	identity := SameTree
	newChildren := make([]sql.Node, len(children))
	for i, c := range children {
		newChild, same, err := nodeWithParent(n, i, c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = newChild
		identity = identity.or(same)
	}

	cur := n
	if identity == NewTree {
		rebuilt, err := n.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
		cur = rebuilt
	}

	res, same, err := f(parent, idx, cur)
	if err != nil {
		return nil, SameTree, err
	}
	return res, identity.or(same), nil
}

// Foreach walks tree in pre-order, calling f once per node. It never
// rewrites; it is the read-only counterpart to Node used by rules that
// only need to observe the tree (invariant checks, §4.4).
func Foreach(n sql.Node, f func(sql.Node) error) error {
	if err := f(n); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := Foreach(c, f); err != nil {
			return err
		}
	}
	return nil
}

// Collect walks tree pre-order and returns every node for which pred
// returns true, in visitation order.
func Collect(n sql.Node, pred func(sql.Node) bool) []sql.Node {
	var out []sql.Node
	// Foreach cannot fail here; the closure never returns an error.
	_ = Foreach(n, func(c sql.Node) error {
		if pred(c) {
			out = append(out, c)
		}
		return nil
	})
	return out
}

// Fold reduces tree bottom-up: every child's folded value is computed
// first, then f combines the node itself with its children's folded
// values. Used by operations that need one aggregate value out of a whole
// plan (e.g. "does this subtree contain a generator expression").
func Fold[T any](n sql.Node, f func(n sql.Node, childValues []T) T) T {
	children := n.Children()
	childValues := make([]T, len(children))
	for i, c := range children {
		childValues[i] = Fold(c, f)
	}
	return f(n, childValues)
}

// MapChildren rebuilds n with each of its direct children replaced by
// f(child), without recursing further. Rules that only need to touch one
// level (e.g. pulling a projection through its immediate child) use this
// instead of the full post-order Node.
func MapChildren(n sql.Node, f func(sql.Node) (sql.Node, TreeIdentity, error)) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	if len(children) == 0 {
		return n, SameTree, nil
	}
	newChildren := make([]sql.Node, len(children))
	identity := SameTree
	for i, c := range children {
		nc, same, err := f(c)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		identity = identity.or(same)
	}
	if identity == SameTree {
		return n, SameTree, nil
	}
	rebuilt, err := n.WithChildren(newChildren...)
	if err != nil {
		return nil, SameTree, err
	}
	return rebuilt, NewTree, nil
}
