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

// Generate is §3.4's Generate(generator, join, outer, child): expands one
// input row into zero or more output rows via Generator.EvalRow. When
// Join is true the input row's own columns are kept alongside the
// generated ones; when Outer is also true, a generator that yields zero
// rows for an input row still emits one output row with nulls in the
// generated columns (a LEFT JOIN LATERAL), instead of dropping the row.
type Generate struct {
	UnaryNode
	Generator sql.Generator
	Join      bool
	Outer     bool
}

var _ sql.Node = (*Generate)(nil)
var _ sql.Expressioner = (*Generate)(nil)

func NewGenerate(generator sql.Generator, join, outer bool, child sql.Node) *Generate {
	return &Generate{UnaryNode{child}, generator, join, outer}
}

func (g *Generate) Resolved() bool {
	return g.Child.Resolved() && g.Generator.Resolved()
}

func (g *Generate) Schema() sql.Schema {
	out := g.Generator.MakeOutput()
	if !g.Join {
		return out
	}
	schema := make(sql.Schema, 0, len(g.Child.Schema())+len(out))
	schema = append(schema, g.Child.Schema()...)
	schema = append(schema, out...)
	return schema
}

func (g *Generate) Expressions() []sql.Expression { return []sql.Expression{g.Generator} }

func (g *Generate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(g, 1, len(exprs))
	}
	gen, ok := exprs[0].(sql.Generator)
	if !ok {
		return nil, sql.ErrUnsupportedOperation.New(fmt.Sprintf("%T does not implement sql.Generator", exprs[0]))
	}
	return NewGenerate(gen, g.Join, g.Outer, g.Child), nil
}

func (g *Generate) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(g, children)
	if err != nil {
		return nil, err
	}
	return NewGenerate(g.Generator, g.Join, g.Outer, child), nil
}

func (g *Generate) String() string {
	return treeString(fmt.Sprintf("Generate(%s, join=%v, outer=%v)", g.Generator, g.Join, g.Outer), g.Child)
}
