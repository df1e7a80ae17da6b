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
	"io"

	"github.com/relforge/relforge/sql"
)

// Generate is Generate(generator, join, outer, child)'s physical
// counterpart: it expands each input row into zero or more output rows
// via Generator.EvalRow (§3.4, §3.5).
type Generate struct {
	unaryPhysical
	Generator sql.Generator
	Join      bool
	Outer     bool
}

var _ Physical = (*Generate)(nil)
var _ sql.Expressioner = (*Generate)(nil)

func NewGenerate(generator sql.Generator, join, outer bool, child sql.Node) *Generate {
	return &Generate{unaryPhysical{child}, generator, join, outer}
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

func (g *Generate) RequiredChildDistribution() []Distribution {
	return []Distribution{UnspecifiedDistribution}
}

func (g *Generate) OutputPartitioning() Distribution { return UnspecifiedDistribution }

func (g *Generate) Execute(ctx *sql.Context) (sql.RowIter, error) {
	childIter, err := executeChild(ctx, g.Child)
	if err != nil {
		return nil, err
	}
	width := len(g.Generator.MakeOutput())
	return &generateRowIter{ctx: ctx, child: childIter, gen: g.Generator, join: g.Join, outer: g.Outer, width: width}, nil
}

type generateRowIter struct {
	ctx       *sql.Context
	child     sql.RowIter
	gen       sql.Generator
	join      bool
	outer     bool
	width     int
	cur       sql.RowGenerator
	curRow    sql.Row
	producedAny bool
}

func (i *generateRowIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		if i.cur == nil {
			row, err := i.child.Next(ctx)
			if err != nil {
				return nil, err
			}
			gen, err := i.gen.EvalRow(ctx, row)
			if err != nil {
				return nil, err
			}
			i.cur = gen
			i.curRow = row
			i.producedAny = false
			continue
		}

		v, err := i.cur.Next()
		if err == io.EOF {
			exhausted := i.cur
			i.cur = nil
			produced := i.producedAny
			if err := exhausted.Close(); err != nil {
				return nil, err
			}
			if i.join && i.outer && !produced {
				return i.outerRow(nil), nil
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		i.producedAny = true
		return i.outerRow(v), nil
	}
}

func (i *generateRowIter) outerRow(generated interface{}) sql.Row {
	genRow := make(sql.Row, i.width)
	if i.width == 1 {
		genRow[0] = generated
	} else if row, ok := generated.(sql.Row); ok {
		copy(genRow, row)
	} else {
		genRow[0] = generated
	}
	if !i.join {
		return genRow
	}
	out := make(sql.Row, 0, len(i.curRow)+i.width)
	out = append(out, i.curRow...)
	out = append(out, genRow...)
	return out
}

func (i *generateRowIter) Close(ctx *sql.Context) error {
	if i.cur != nil {
		if err := i.cur.Close(); err != nil {
			return err
		}
	}
	return i.child.Close(ctx)
}

func (g *Generate) String() string {
	return treeString(fmt.Sprintf("Generate(%s, join=%v, outer=%v)", g.Generator, g.Join, g.Outer), g.Child)
}
