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

// CountDistinct counts the distinct non-null values Child takes across
// the group. It deliberately does not implement PartialDecomposable (see
// package doc): the distinct-value set can't be folded into a fixed-width
// partial tuple, so the planner always runs it as a single
// all-tuples-clustered aggregate.
type CountDistinct struct {
	unaryAggregate
}

var _ Aggregation = (*CountDistinct)(nil)

func NewCountDistinct(child sql.Expression) *CountDistinct {
	return &CountDistinct{unaryAggregate{child}}
}

func (c *CountDistinct) Type() sql.Type   { return types.Long }
func (c *CountDistinct) IsNullable() bool { return false }

func (c *CountDistinct) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(c, 1, len(children))
	}
	return NewCountDistinct(children[0]), nil
}

func (c *CountDistinct) String() string { return fmt.Sprintf("COUNT(DISTINCT %s)", c.Child) }

func (c *CountDistinct) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	buf, err := c.NewBuffer()
	if err != nil {
		return nil, err
	}
	if err := buf.Update(ctx, row); err != nil {
		return nil, err
	}
	return buf.Eval(ctx)
}

type countDistinctBuffer struct {
	child sql.Expression
	seen  map[uint64]struct{}
}

func (c *CountDistinct) NewBuffer() (Buffer, error) {
	return &countDistinctBuffer{child: c.Child, seen: make(map[uint64]struct{})}, nil
}

func (b *countDistinctBuffer) Update(ctx *sql.Context, row sql.Row) error {
	v, err := b.child.Eval(ctx, row)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	h, err := sql.HashOf(v)
	if err != nil {
		return err
	}
	b.seen[h] = struct{}{}
	return nil
}

func (b *countDistinctBuffer) Eval(ctx *sql.Context) (interface{}, error) {
	return int64(len(b.seen)), nil
}
