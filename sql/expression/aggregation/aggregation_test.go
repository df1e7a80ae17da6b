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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/types"
)

func intRow(n int64) sql.Row { return sql.NewRow(n) }

func runBuffer(t *testing.T, buf Buffer, rows []sql.Row) interface{} {
	ctx := sql.NewEmptyContext()
	for _, r := range rows {
		require.NoError(t, buf.Update(ctx, r))
	}
	v, err := buf.Eval(ctx)
	require.NoError(t, err)
	return v
}

func col0() sql.Expression {
	return expression.NewBoundReference(0, 0, "x", types.Long, true)
}

func TestCountAllAndChild(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	star := NewCount(nil)
	buf, err := star.NewBuffer()
	require.NoError(err)
	v := runBuffer(t, buf, []sql.Row{intRow(1), intRow(2), intRow(3)})
	require.Equal(int64(3), v)

	withNulls := NewCount(col0())
	buf, err = withNulls.NewBuffer()
	require.NoError(err)
	v = runBuffer(t, buf, []sql.Row{sql.NewRow(int64(1)), sql.NewRow(nil), sql.NewRow(int64(3))})
	require.Equal(int64(2), v)

	empty := NewCount(col0())
	buf, err = empty.NewBuffer()
	require.NoError(err)
	v, err = buf.Eval(ctx)
	require.NoError(err)
	require.Equal(int64(0), v)
}

func TestSumEmptyIsNull(t *testing.T) {
	require := require.New(t)
	s := NewSum(col0())
	buf, err := s.NewBuffer()
	require.NoError(err)

	v := runBuffer(t, buf, nil)
	require.Nil(v)

	buf, _ = s.NewBuffer()
	v = runBuffer(t, buf, []sql.Row{sql.NewRow(int64(1)), sql.NewRow(int64(2)), sql.NewRow(int64(3))})
	require.Equal(float64(6), v)
}

func TestAveragePartialDecomposition(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	avg := NewAverage(col0())

	p1, err := avg.NewPartialBuffer()
	require.NoError(err)
	require.NoError(p1.Update(ctx, sql.NewRow(int64(2))))
	require.NoError(p1.Update(ctx, sql.NewRow(int64(4))))
	part1, err := p1.Eval(ctx)
	require.NoError(err)

	p2, err := avg.NewPartialBuffer()
	require.NoError(err)
	require.NoError(p2.Update(ctx, sql.NewRow(int64(6))))
	part2, err := p2.Eval(ctx)
	require.NoError(err)

	final, err := avg.NewBuffer()
	require.NoError(err)
	require.NoError(avg.Merge(ctx, final, part1.(sql.Row)))
	require.NoError(avg.Merge(ctx, final, part2.(sql.Row)))

	v, err := final.Eval(ctx)
	require.NoError(err)
	require.Equal(4.0, v)
}

func TestCountDistinct(t *testing.T) {
	require := require.New(t)
	cd := NewCountDistinct(col0())
	buf, err := cd.NewBuffer()
	require.NoError(err)

	v := runBuffer(t, buf, []sql.Row{
		sql.NewRow(int64(1)), sql.NewRow(int64(1)), sql.NewRow(int64(2)), sql.NewRow(nil),
	})
	require.Equal(int64(2), v)
}
