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

// Filter is Filter(predicate, child)'s physical counterpart: it streams
// its child's rows, evaluating Predicate against each and passing through
// only those that evaluate true (§4.9's three-valued logic means null
// predicates are dropped along with false ones).
type Filter struct {
	unaryPhysical
	Predicate sql.Expression
}

var _ Physical = (*Filter)(nil)
var _ sql.Expressioner = (*Filter)(nil)

func NewFilter(predicate sql.Expression, child sql.Node) *Filter {
	return &Filter{unaryPhysical{child}, predicate}
}

func (f *Filter) Schema() sql.Schema { return f.Child.Schema() }

func (f *Filter) Expressions() []sql.Expression { return []sql.Expression{f.Predicate} }

func (f *Filter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(f, 1, len(exprs))
	}
	return NewFilter(exprs[0], f.Child), nil
}

func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(f, children)
	if err != nil {
		return nil, err
	}
	return NewFilter(f.Predicate, child), nil
}

func (f *Filter) RequiredChildDistribution() []Distribution { return []Distribution{UnspecifiedDistribution} }

func (f *Filter) OutputPartitioning() Distribution {
	return childPartitioning(f.Child)
}

func (f *Filter) Execute(ctx *sql.Context) (sql.RowIter, error) {
	childIter, err := executeChild(ctx, f.Child)
	if err != nil {
		return nil, err
	}
	return &filterRowIter{childIter, func(ctx *sql.Context, row sql.Row) (bool, error) {
		v, err := f.Predicate.Eval(ctx, row)
		if err != nil || v == nil {
			return false, err
		}
		b, _ := v.(bool)
		return b, nil
	}}, nil
}

func (f *Filter) String() string {
	return treeString("Filter("+f.Predicate.String()+")", f.Child)
}
