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

package rowexec

import (
	"github.com/relforge/relforge/sql"
)

// Union is Union(children*)'s physical counterpart: it concatenates each
// branch's rows in order. The reference execution substrate has no real
// multi-worker parallelism, so this is a faithful single-process
// implementation of the logical entity's set-union-of-partitions
// semantics (§3.4).
type Union struct {
	UnionChildren []sql.Node
}

var _ Physical = (*Union)(nil)

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
	return out
}

func (u *Union) Children() []sql.Node { return u.UnionChildren }

func (u *Union) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != len(u.UnionChildren) {
		return nil, sql.ErrTreeShapeMismatch.New(u, len(u.UnionChildren), len(children))
	}
	return NewUnion(children...), nil
}

func (u *Union) RequiredChildDistribution() []Distribution {
	reqs := make([]Distribution, len(u.UnionChildren))
	for i := range reqs {
		reqs[i] = UnspecifiedDistribution
	}
	return reqs
}

func (u *Union) OutputPartitioning() Distribution { return UnspecifiedDistribution }

func (u *Union) Execute(ctx *sql.Context) (sql.RowIter, error) {
	iters := make([]sql.RowIter, len(u.UnionChildren))
	for i, c := range u.UnionChildren {
		iter, err := executeChild(ctx, c)
		if err != nil {
			return nil, err
		}
		iters[i] = iter
	}
	return &concatRowIter{iters: iters}, nil
}

func (u *Union) String() string {
	return treeString("Union", u.UnionChildren...)
}
