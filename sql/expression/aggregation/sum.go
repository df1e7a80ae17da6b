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

// Sum accumulates Child's non-null values; an empty group (or a group
// where every value is null) sums to null, never zero (§4.8 edge case).
type Sum struct {
	unaryAggregate
}

var _ Aggregation = (*Sum)(nil)
var _ PartialDecomposable = (*Sum)(nil)

func NewSum(child sql.Expression) *Sum { return &Sum{unaryAggregate{child}} }

func (s *Sum) Type() sql.Type   { return types.Double }
func (s *Sum) IsNullable() bool { return true }

func (s *Sum) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(s, 1, len(children))
	}
	return NewSum(children[0]), nil
}

func (s *Sum) String() string { return fmt.Sprintf("SUM(%s)", s.Child) }

func (s *Sum) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	buf, err := s.NewBuffer()
	if err != nil {
		return nil, err
	}
	if err := buf.Update(ctx, row); err != nil {
		return nil, err
	}
	return buf.Eval(ctx)
}

type sumBuffer struct {
	child    sql.Expression
	sum      float64
	hasValue bool
}

func (s *Sum) NewBuffer() (Buffer, error) { return &sumBuffer{child: s.Child}, nil }

func (b *sumBuffer) Update(ctx *sql.Context, row sql.Row) error {
	v, err := b.child.Eval(ctx, row)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return err
	}
	b.sum += f
	b.hasValue = true
	return nil
}

func (b *sumBuffer) Eval(ctx *sql.Context) (interface{}, error) {
	if !b.hasValue {
		return nil, nil
	}
	return b.sum, nil
}

func (s *Sum) NewPartialBuffer() (Buffer, error) {
	inner, err := s.NewBuffer()
	if err != nil {
		return nil, err
	}
	return &partialRowBuffer{inner}, nil
}

func (s *Sum) PartialSchema() sql.Schema {
	return sql.Schema{{Name: "sum", Type: types.Double, Nullable: true}}
}

func (s *Sum) Merge(ctx *sql.Context, buf Buffer, partial sql.Row) error {
	b := buf.(*sumBuffer)
	if partial[0] == nil {
		return nil
	}
	f, err := toFloat64(partial[0])
	if err != nil {
		return err
	}
	b.sum += f
	b.hasValue = true
	return nil
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, sql.ErrUnsupportedOperation.New("SUM/AVG on non-numeric operand")
	}
}
