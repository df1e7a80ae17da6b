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

// Project is §3.4's Project(exprs, child): output = exprs mapped to
// attributes, aliases preserved.
type Project struct {
	UnaryNode
	Projections []sql.Expression
}

var _ sql.Node = (*Project)(nil)
var _ sql.Expressioner = (*Project)(nil)

func NewProject(projections []sql.Expression, child sql.Node) *Project {
	return &Project{UnaryNode{child}, projections}
}

func (p *Project) Resolved() bool {
	return p.Child.Resolved() && allResolved(p.Projections)
}

func (p *Project) Schema() sql.Schema { return schemaOfExprs(p.Projections) }

func (p *Project) Expressions() []sql.Expression { return p.Projections }

func (p *Project) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(p.Projections) {
		return nil, sql.ErrTreeShapeMismatch.New(p, len(p.Projections), len(exprs))
	}
	return NewProject(exprs, p.Child), nil
}

func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(p, children)
	if err != nil {
		return nil, err
	}
	return NewProject(p.Projections, child), nil
}

func (p *Project) String() string {
	return treeString("Project("+exprsString(p.Projections)+")", p.Child)
}
