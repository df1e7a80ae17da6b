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

// Average maintains (count:Long, sum:Double) per §4.8's decomposition and
// reports sum/count; an empty group's result is null, like Sum.
type Average struct {
	unaryAggregate
}

var _ Aggregation = (*Average)(nil)
var _ PartialDecomposable = (*Average)(nil)

func NewAverage(child sql.Expression) *Average { return &Average{unaryAggregate{child}} }

func (a *Average) Type() sql.Type   { return types.Double }
func (a *Average) IsNullable() bool { return true }

func (a *Average) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(a, 1, len(children))
	}
	return NewAverage(children[0]), nil
}

func (a *Average) String() string { return fmt.Sprintf("AVG(%s)", a.Child) }

func (a *Average) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	buf, err := a.NewBuffer()
	if err != nil {
		return nil, err
	}
	if err := buf.Update(ctx, row); err != nil {
		return nil, err
	}
	return buf.Eval(ctx)
}

type averageBuffer struct {
	child sql.Expression
	count int64
	sum   float64
}

func (a *Average) NewBuffer() (Buffer, error) { return &averageBuffer{child: a.Child}, nil }

func (b *averageBuffer) Update(ctx *sql.Context, row sql.Row) error {
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
	b.count++
	b.sum += f
	return nil
}

func (b *averageBuffer) Eval(ctx *sql.Context) (interface{}, error) {
	if b.count == 0 {
		return nil, nil
	}
	return b.sum / float64(b.count), nil
}

// averagePartialBuffer is the partial stage's own buffer: unlike
// averageBuffer (the final stage), its Eval must not divide -- it reports
// the running (count, sum) pair per §4.8's decomposition so the final
// stage can sum both fields across partitions before dividing once.
type averagePartialBuffer struct {
	inner *averageBuffer
}

func (p *averagePartialBuffer) Update(ctx *sql.Context, row sql.Row) error {
	return p.inner.Update(ctx, row)
}

func (p *averagePartialBuffer) Eval(ctx *sql.Context) (interface{}, error) {
	return sql.NewRow(p.inner.count, p.inner.sum), nil
}

func (a *Average) NewPartialBuffer() (Buffer, error) {
	return &averagePartialBuffer{&averageBuffer{child: a.Child}}, nil
}

func (a *Average) PartialSchema() sql.Schema {
	return sql.Schema{
		{Name: "count", Type: types.Long, Nullable: false},
		{Name: "sum", Type: types.Double, Nullable: true},
	}
}

func (a *Average) Merge(ctx *sql.Context, buf Buffer, partial sql.Row) error {
	b := buf.(*averageBuffer)
	b.count += partial[0].(int64)
	if partial[1] == nil {
		return nil
	}
	f, err := toFloat64(partial[1])
	if err != nil {
		return err
	}
	b.sum += f
	return nil
}
