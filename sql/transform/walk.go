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

// Visitor's Visit method is invoked for every node encountered by Walk. If
// the result is nil, Walk does not descend into that node's children;
// otherwise Walk uses the returned Visitor to visit the children, then
// calls Visit(nil) once the children are exhausted -- mirroring go/ast's
// Inspect/Walk pair, which this is modeled directly on.
type Visitor interface {
	Visit(n sql.Node) Visitor
}

// Walk traverses tree in pre-order, starting at n, following v.
func Walk(v Visitor, n sql.Node) {
	if n == nil {
		return
	}
	if v = v.Visit(n); v == nil {
		return
	}
	for _, c := range n.Children() {
		Walk(v, c)
	}
	v.Visit(nil)
}

type inspector func(sql.Node) bool

func (f inspector) Visit(n sql.Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses tree in pre-order like Walk, calling f for every node
// (and once more with nil after each node's children are exhausted). It
// stops descending into a node's subtree as soon as f returns false for
// it. It is the read-only shorthand for Walk used by rules that only need
// to observe the tree, matching Foreach's contract but exposing the
// nil-after-children boundary callers sometimes need (e.g. to know when a
// subtree is fully visited).
func Inspect(n sql.Node, f func(sql.Node) bool) {
	Walk(inspector(f), n)
}
