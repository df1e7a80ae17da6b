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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/types"
)

func TestHashEquiJoinInner(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	leftSchema := sql.Schema{{Name: "id", Type: types.Long}}
	rightSchema := sql.Schema{{Name: "id", Type: types.Long}, {Name: "v", Type: types.String}}

	left := NewTableScan("db", newFakeTable("l", leftSchema, sql.NewRow(int64(1)), sql.NewRow(int64(2))), nil, nil)
	right := NewTableScan("db", newFakeTable("r", rightSchema,
		sql.NewRow(int64(1), "a"), sql.NewRow(int64(3), "b")), nil, nil)

	leftKeys := []sql.Expression{expression.NewBoundReference(0, 0, "id", types.Long, false)}
	rightKeys := []sql.Expression{expression.NewBoundReference(0, 0, "id", types.Long, false)}

	j := NewHashEquiJoin(left, right, plan.JoinTypeInner, leftKeys, rightKeys, nil)
	rows := collect(t, ctx, j)
	require.Equal([]sql.Row{sql.NewRow(int64(1), int64(1), "a")}, rows)
}

func TestHashEquiJoinLeftOuterPadsNullsForMissingRightWidth(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	leftSchema := sql.Schema{{Name: "id", Type: types.Long}}
	rightSchema := sql.Schema{{Name: "id", Type: types.Long}, {Name: "v", Type: types.String}}

	left := NewTableScan("db", newFakeTable("l", leftSchema, sql.NewRow(int64(1)), sql.NewRow(int64(2))), nil, nil)
	right := NewTableScan("db", newFakeTable("r", rightSchema, sql.NewRow(int64(1), "a")), nil, nil)

	leftKeys := []sql.Expression{expression.NewBoundReference(0, 0, "id", types.Long, false)}
	rightKeys := []sql.Expression{expression.NewBoundReference(0, 0, "id", types.Long, false)}

	j := NewHashEquiJoin(left, right, plan.JoinTypeLeftOuter, leftKeys, rightKeys, nil)
	rows := collect(t, ctx, j)
	require.Equal([]sql.Row{
		sql.NewRow(int64(1), int64(1), "a"),
		sql.NewRow(int64(2), nil, nil),
	}, rows)
}

func TestHashEquiJoinRightOuterEmitsUnmatchedRight(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	leftSchema := sql.Schema{{Name: "id", Type: types.Long}}
	rightSchema := sql.Schema{{Name: "id", Type: types.Long}, {Name: "v", Type: types.String}}

	left := NewTableScan("db", newFakeTable("l", leftSchema, sql.NewRow(int64(1))), nil, nil)
	right := NewTableScan("db", newFakeTable("r", rightSchema,
		sql.NewRow(int64(1), "a"), sql.NewRow(int64(9), "z")), nil, nil)

	leftKeys := []sql.Expression{expression.NewBoundReference(0, 0, "id", types.Long, false)}
	rightKeys := []sql.Expression{expression.NewBoundReference(0, 0, "id", types.Long, false)}

	j := NewHashEquiJoin(left, right, plan.JoinTypeRightOuter, leftKeys, rightKeys, nil)
	rows := collect(t, ctx, j)
	require.Equal([]sql.Row{
		sql.NewRow(int64(1), int64(1), "a"),
		sql.NewRow(nil, int64(9), "z"),
	}, rows)
}

func TestHashEquiJoinNullKeysNeverMatch(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	leftSchema := sql.Schema{{Name: "id", Type: types.Long, Nullable: true}}
	rightSchema := sql.Schema{{Name: "id", Type: types.Long, Nullable: true}}

	left := NewTableScan("db", newFakeTable("l", leftSchema, sql.NewRow(nil)), nil, nil)
	right := NewTableScan("db", newFakeTable("r", rightSchema, sql.NewRow(nil)), nil, nil)

	leftKeys := []sql.Expression{expression.NewBoundReference(0, 0, "id", types.Long, true)}
	rightKeys := []sql.Expression{expression.NewBoundReference(0, 0, "id", types.Long, true)}

	j := NewHashEquiJoin(left, right, plan.JoinTypeInner, leftKeys, rightKeys, nil)
	rows := collect(t, ctx, j)
	require.Empty(rows)
}
