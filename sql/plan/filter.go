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

// Filter is §3.4's Filter(predicate, child): output = child.output.
type Filter struct {
	UnaryNode
	Predicate sql.Expression
}

var _ sql.Node = (*Filter)(nil)
var _ sql.Expressioner = (*Filter)(nil)

func NewFilter(predicate sql.Expression, child sql.Node) *Filter {
	return &Filter{UnaryNode{child}, predicate}
}

func (f *Filter) Resolved() bool {
	return f.Child.Resolved() && f.Predicate.Resolved()
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

func (f *Filter) String() string {
	return treeString("Filter("+f.Predicate.String()+")", f.Child)
}
