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

// Project is Project(exprs, child)'s physical counterpart: each output
// row is the Projections evaluated against the corresponding input row.
type Project struct {
	unaryPhysical
	Projections []sql.Expression
}

var _ Physical = (*Project)(nil)
var _ sql.Expressioner = (*Project)(nil)

func NewProject(projections []sql.Expression, child sql.Node) *Project {
	return &Project{unaryPhysical{child}, projections}
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

func (p *Project) RequiredChildDistribution() []Distribution {
	return []Distribution{UnspecifiedDistribution}
}

func (p *Project) OutputPartitioning() Distribution { return childPartitioning(p.Child) }

func (p *Project) Execute(ctx *sql.Context) (sql.RowIter, error) {
	childIter, err := executeChild(ctx, p.Child)
	if err != nil {
		return nil, err
	}
	return &mapRowIter{childIter, func(ctx *sql.Context, row sql.Row) (sql.Row, error) {
		out := make(sql.Row, len(p.Projections))
		for i, e := range p.Projections {
			v, err := e.Eval(ctx, row)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}}, nil
}

func (p *Project) String() string {
	return treeString("Project("+exprsString(p.Projections)+")", p.Child)
}

// exprsString mirrors plan's unexported helper of the same name; kept
// local since rowexec is its own package.
func exprsString(exprs []sql.Expression) string {
	s := ""
	for i, e := range exprs {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s
}

// exprName mirrors plan's unexported helper.
func exprName(expr sql.Expression) string {
	if named, ok := expr.(sql.NameableExpression); ok {
		return named.Name()
	}
	return expr.String()
}

// identified mirrors plan's unexported helper: an expression that
// carries a settled attribute identity (§3.2) from Alias,
// AttributeReference, or a BoundReference the analyzer bound via WithID.
type identified interface {
	ID() sql.AttributeID
}

func exprID(expr sql.Expression) sql.AttributeID {
	if id, ok := expr.(identified); ok {
		return id.ID()
	}
	return 0
}

// schemaOfExprs mirrors plan's unexported helper, used by Project,
// Aggregate and FinalMergeAggregate to compute their own output schema
// from an expression list.
func schemaOfExprs(exprs []sql.Expression) sql.Schema {
	schema := make(sql.Schema, len(exprs))
	for i, e := range exprs {
		var typ sql.Type
		if e.Resolved() {
			typ = e.Type()
		}
		schema[i] = &sql.Column{
			Name:     exprName(e),
			Type:     typ,
			Nullable: !e.Resolved() || e.IsNullable(),
			ID:       exprID(e),
		}
	}
	return schema
}
