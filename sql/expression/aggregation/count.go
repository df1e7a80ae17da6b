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

package aggregation

import (
	"fmt"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/types"
)

// Count counts input rows; with a Child it counts only rows where Child
// evaluates non-null, otherwise (Child == nil, "COUNT(*)") it counts every
// row. Its empty-group result is 0, never null (§4.8 edge case).
type Count struct {
	unaryAggregate
}

var _ Aggregation = (*Count)(nil)
var _ PartialDecomposable = (*Count)(nil)

func NewCount(child sql.Expression) *Count { return &Count{unaryAggregate{child}} }

func (c *Count) Type() sql.Type   { return types.Long }
func (c *Count) IsNullable() bool { return false }

func (c *Count) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) == 0 {
		return NewCount(nil), nil
	}
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(c, 1, len(children))
	}
	return NewCount(children[0]), nil
}

func (c *Count) String() string {
	if c.Child == nil {
		return "COUNT(*)"
	}
	return fmt.Sprintf("COUNT(%s)", c.Child)
}

func (c *Count) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	buf, err := c.NewBuffer()
	if err != nil {
		return nil, err
	}
	if err := buf.Update(ctx, row); err != nil {
		return nil, err
	}
	return buf.Eval(ctx)
}

type countBuffer struct {
	child sql.Expression
	n     int64
}

func (c *Count) NewBuffer() (Buffer, error) { return &countBuffer{child: c.Child}, nil }

func (b *countBuffer) Update(ctx *sql.Context, row sql.Row) error {
	if b.child == nil {
		b.n++
		return nil
	}
	v, err := b.child.Eval(ctx, row)
	if err != nil {
		return err
	}
	if v != nil {
		b.n++
	}
	return nil
}

func (b *countBuffer) Eval(ctx *sql.Context) (interface{}, error) { return b.n, nil }

func (c *Count) NewPartialBuffer() (Buffer, error) {
	inner, err := c.NewBuffer()
	if err != nil {
		return nil, err
	}
	return &partialRowBuffer{inner}, nil
}

func (c *Count) PartialSchema() sql.Schema {
	return sql.Schema{{Name: "count", Type: types.Long, Nullable: false}}
}

func (c *Count) Merge(ctx *sql.Context, buf Buffer, partial sql.Row) error {
	b := buf.(*countBuffer)
	b.n += partial[0].(int64)
	return nil
}
