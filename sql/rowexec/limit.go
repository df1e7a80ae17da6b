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
	"fmt"

	"github.com/relforge/relforge/sql"
)

// Limit is Limit(n, child)'s physical counterpart. A limit's count is
// global, so it requires its child gathered into a single partition
// first; a caller that only wants a per-partition cap (not named by the
// logical entity, §3.4 has only the one global Limit) would need its own
// node.
type Limit struct {
	unaryPhysical
	N int64
}

var _ Physical = (*Limit)(nil)

func NewLimit(n int64, child sql.Node) *Limit {
	return &Limit{unaryPhysical{child}, n}
}

func (l *Limit) Schema() sql.Schema { return l.Child.Schema() }

func (l *Limit) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(l, children)
	if err != nil {
		return nil, err
	}
	return NewLimit(l.N, child), nil
}

func (l *Limit) RequiredChildDistribution() []Distribution {
	return []Distribution{AllTuplesDistribution}
}

func (l *Limit) OutputPartitioning() Distribution { return AllTuplesDistribution }

func (l *Limit) Execute(ctx *sql.Context) (sql.RowIter, error) {
	childIter, err := executeChild(ctx, l.Child)
	if err != nil {
		return nil, err
	}
	return &limitRowIter{childIter, l.N}, nil
}

func (l *Limit) String() string {
	return treeString(fmt.Sprintf("Limit(%d)", l.N), l.Child)
}
