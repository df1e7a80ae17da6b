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

package expression

import (
	"fmt"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/types"
)

// Explode is a Generator (§3.5) that expands an Array-typed child into
// one output row per element, named "col" in its output schema. A null
// or empty array yields zero rows.
type Explode struct {
	UnaryExpression
	elemType sql.Type
}

var _ sql.Generator = (*Explode)(nil)

func NewExplode(child sql.Expression) *Explode {
	elem := sql.Type(types.Null)
	if child.Resolved() {
		if arr, ok := child.Type().(types.ArrayType); ok {
			elem = arr.Element
		}
	}
	return &Explode{UnaryExpression{child}, elem}
}

func (e *Explode) Type() sql.Type   { return e.elemType }
func (e *Explode) IsNullable() bool { return true }

func (e *Explode) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(e, 1, len(children))
	}
	return NewExplode(children[0]), nil
}

func (e *Explode) String() string { return fmt.Sprintf("EXPLODE(%s)", e.Child) }

func (e *Explode) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return e.Child.Eval(ctx, row)
}

func (e *Explode) MakeOutput() sql.Schema {
	return sql.Schema{{Name: "col", Type: e.elemType, Nullable: true}}
}

func (e *Explode) EvalRow(ctx *sql.Context, row sql.Row) (sql.RowGenerator, error) {
	v, err := e.Child.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return sql.NewArrayGenerator(nil), nil
	}
	values, ok := v.([]interface{})
	if !ok {
		return nil, sql.ErrUnsupportedOperation.New("EXPLODE on non-array operand")
	}
	return sql.NewArrayGenerator(values), nil
}
