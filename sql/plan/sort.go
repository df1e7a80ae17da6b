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
	"fmt"

	"github.com/relforge/relforge/sql"
)

// SortDirection is a SortOrder's ascending/descending flag.
type SortDirection byte

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// SortOrder is one (expr, direction) pair of a Sort node's sortOrders.
type SortOrder struct {
	Expr      sql.Expression
	Direction SortDirection
}

func (o SortOrder) String() string {
	return fmt.Sprintf("%s %s", o.Expr, o.Direction)
}

// Sort is §3.4's Sort(sortOrders, global, child): output = child.output.
// Global determines whether a partition-local or cluster-wide ordering is
// required -- it only affects the physical planner's choice of
// required_child_distribution (§4.7), not this node's own schema.
type Sort struct {
	UnaryNode
	SortOrders []SortOrder
	Global     bool
}

var _ sql.Node = (*Sort)(nil)
var _ sql.Expressioner = (*Sort)(nil)

func NewSort(sortOrders []SortOrder, global bool, child sql.Node) *Sort {
	return &Sort{UnaryNode{child}, sortOrders, global}
}

func (s *Sort) Resolved() bool {
	if !s.Child.Resolved() {
		return false
	}
	for _, o := range s.SortOrders {
		if !o.Expr.Resolved() {
			return false
		}
	}
	return true
}

func (s *Sort) Schema() sql.Schema { return s.Child.Schema() }

func (s *Sort) Expressions() []sql.Expression {
	exprs := make([]sql.Expression, len(s.SortOrders))
	for i, o := range s.SortOrders {
		exprs[i] = o.Expr
	}
	return exprs
}

func (s *Sort) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(s.SortOrders) {
		return nil, sql.ErrTreeShapeMismatch.New(s, len(s.SortOrders), len(exprs))
	}
	orders := make([]SortOrder, len(exprs))
	for i, e := range exprs {
		orders[i] = SortOrder{e, s.SortOrders[i].Direction}
	}
	return NewSort(orders, s.Global, s.Child), nil
}

func (s *Sort) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(s, children)
	if err != nil {
		return nil, err
	}
	return NewSort(s.SortOrders, s.Global, child), nil
}

func (s *Sort) String() string {
	desc := ""
	for i, o := range s.SortOrders {
		if i > 0 {
			desc += ", "
		}
		desc += o.String()
	}
	kind := "Sort"
	if s.Global {
		kind = "Sort(global)"
	}
	return treeString(fmt.Sprintf("%s(%s)", kind, desc), s.Child)
}
