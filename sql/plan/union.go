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

// Union is §3.4's Union(children*): an n-ary set operator whose output
// schema takes its column names and types from the first child, with a
// column's nullability widened to the OR of every branch's nullability
// at that position.
type Union struct {
	UnionChildren []sql.Node
}

var _ sql.Node = (*Union)(nil)

func NewUnion(children ...sql.Node) *Union {
	return &Union{children}
}

func (u *Union) Resolved() bool {
	for _, c := range u.UnionChildren {
		if !c.Resolved() {
			return false
		}
	}
	return true
}

func (u *Union) Schema() sql.Schema {
	if len(u.UnionChildren) == 0 {
		return nil
	}
	first := u.UnionChildren[0].Schema()
	out := make(sql.Schema, len(first))
	for i, c := range first {
		cp := *c
		out[i] = &cp
	}
	for _, child := range u.UnionChildren[1:] {
		schema := child.Schema()
		for i := 0; i < len(out) && i < len(schema); i++ {
			out[i].Nullable = out[i].Nullable || schema[i].Nullable
		}
	}
	return out
}

func (u *Union) Children() []sql.Node { return u.UnionChildren }

func (u *Union) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != len(u.UnionChildren) {
		return nil, sql.ErrTreeShapeMismatch.New(u, len(u.UnionChildren), len(children))
	}
	return NewUnion(children...), nil
}

func (u *Union) String() string {
	return treeString("Union", u.UnionChildren...)
}
