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
	"github.com/relforge/relforge/sql/types"
)

func TestFilterKeepsMatchingRows(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	schema := sql.Schema{{Name: "a", Type: types.Long}}
	scan := NewTableScan("db", newFakeTable("t", schema, sql.NewRow(int64(1)), sql.NewRow(int64(2)), sql.NewRow(int64(3))), nil, nil)

	pred := expression.NewGreaterThan(
		expression.NewBoundReference(0, 0, "a", types.Long, false),
		expression.NewLiteral(int64(1), types.Long),
	)
	f := NewFilter(pred, scan)

	rows := collect(t, ctx, f)
	require.Equal([]sql.Row{sql.NewRow(int64(2)), sql.NewRow(int64(3))}, rows)
}

func TestFilterDropsNullPredicate(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	schema := sql.Schema{{Name: "a", Type: types.Long, Nullable: true}}
	scan := NewTableScan("db", newFakeTable("t", schema, sql.NewRow(nil), sql.NewRow(int64(1))), nil, nil)

	pred := expression.NewEquals(
		expression.NewBoundReference(0, 0, "a", types.Long, true),
		expression.NewLiteral(int64(1), types.Long),
	)
	f := NewFilter(pred, scan)

	rows := collect(t, ctx, f)
	require.Equal([]sql.Row{sql.NewRow(int64(1))}, rows)
}
