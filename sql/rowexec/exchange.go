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

// Exchange is the node the planner inserts whenever a child's declared
// OutputPartitioning does not satisfy its parent's
// RequiredChildDistribution (§4.7): redistribute (Clustered), gather
// (AllTuples), or range-partition-sort (Ordered). The reference
// execution substrate is single-process, so every Exchange kind reduces
// to "materialize the child fully, optionally ordering it" -- there is
// no real multi-worker shuffle to perform, but the node still marks the
// distribution boundary the planner reasoned about.
type Exchange struct {
	unaryPhysical
	Target Distribution
}

var _ Physical = (*Exchange)(nil)

func NewExchange(target Distribution, child sql.Node) *Exchange {
	return &Exchange{unaryPhysical{child}, target}
}

func (e *Exchange) Schema() sql.Schema { return e.Child.Schema() }

func (e *Exchange) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(e, children)
	if err != nil {
		return nil, err
	}
	return NewExchange(e.Target, child), nil
}

func (e *Exchange) RequiredChildDistribution() []Distribution {
	return []Distribution{UnspecifiedDistribution}
}

func (e *Exchange) OutputPartitioning() Distribution { return e.Target }

func (e *Exchange) Execute(ctx *sql.Context) (sql.RowIter, error) {
	childIter, err := executeChild(ctx, e.Child)
	if err != nil {
		return nil, err
	}
	rows, err := drain(ctx, childIter)
	if err != nil {
		return nil, err
	}
	if e.Target.Kind == Ordered {
		if err := sortRows(ctx, rows, e.Target.SortOrders); err != nil {
			return nil, err
		}
	}
	return sql.RowsToRowIter(rows...), nil
}

func (e *Exchange) String() string {
	var kind string
	switch e.Target.Kind {
	case AllTuples:
		kind = "gather"
	case Clustered:
		kind = "redistribute"
	case Ordered:
		kind = "range-partition-sort"
	default:
		kind = "unspecified"
	}
	return treeString(fmt.Sprintf("Exchange(%s)", kind), e.Child)
}
