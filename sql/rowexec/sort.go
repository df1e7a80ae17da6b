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
	"sort"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/plan"
)

// Sort is Sort(sortOrders, global, child)'s physical counterpart. A
// global sort requires its child gathered into a single partition
// (AllTuples) and outputs one ordered partition (§4.7); a local (non-global) sort only orders whatever rows land in
// its own partition, so it declares no requirement on its child at all.
type Sort struct {
	unaryPhysical
	SortOrders []plan.SortOrder
	Global     bool
}

var _ Physical = (*Sort)(nil)
var _ sql.Expressioner = (*Sort)(nil)

func NewSort(sortOrders []plan.SortOrder, global bool, child sql.Node) *Sort {
	return &Sort{unaryPhysical{child}, sortOrders, global}
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
	orders := make([]plan.SortOrder, len(exprs))
	for i, e := range exprs {
		orders[i] = plan.SortOrder{Expr: e, Direction: s.SortOrders[i].Direction}
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

func (s *Sort) RequiredChildDistribution() []Distribution {
	if s.Global {
		return []Distribution{AllTuplesDistribution}
	}
	return []Distribution{UnspecifiedDistribution}
}

func (s *Sort) OutputPartitioning() Distribution {
	if s.Global {
		return OrderedDistribution(s.SortOrders...)
	}
	return childPartitioning(s.Child)
}

func (s *Sort) Execute(ctx *sql.Context) (sql.RowIter, error) {
	childIter, err := executeChild(ctx, s.Child)
	if err != nil {
		return nil, err
	}
	rows, err := drain(ctx, childIter)
	if err != nil {
		return nil, err
	}
	if err := sortRows(ctx, rows, s.SortOrders); err != nil {
		return nil, err
	}
	return sql.RowsToRowIter(rows...), nil
}

// sortRows orders rows in place by orders, nulls first regardless of
// direction (§4.9 leaves ordering of nulls among themselves unspecified;
// placing them first is a stable, documented choice).
func sortRows(ctx *sql.Context, rows []sql.Row, orders []plan.SortOrder) error {
	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		for _, o := range orders {
			vi, err := o.Expr.Eval(ctx, rows[i])
			if err != nil {
				sortErr = err
				return false
			}
			vj, err := o.Expr.Eval(ctx, rows[j])
			if err != nil {
				sortErr = err
				return false
			}
			cmp, ok := compareForSort(vi, vj)
			if !ok {
				continue
			}
			if o.Direction == plan.Descending && vi != nil && vj != nil {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	return sortErr
}

func compareForSort(a, b interface{}) (int, bool) {
	if a == nil && b == nil {
		return 0, false
	}
	if a == nil {
		return -1, true
	}
	if b == nil {
		return 1, true
	}
	af, aok := asFloat64(a)
	bf, bok := asFloat64(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		switch {
		case as < bs:
			return -1, true
		case as > bs:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func asFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
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
