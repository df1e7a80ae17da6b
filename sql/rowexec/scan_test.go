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
	"github.com/relforge/relforge/sql/types"
)

func TestTableScanFullSchema(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	schema := sql.Schema{{Name: "a", Type: types.Long}, {Name: "b", Type: types.String}}
	table := newFakeTable("t", schema, sql.NewRow(int64(1), "x"), sql.NewRow(int64(2), "y"))
	scan := NewTableScan("db", table, nil, nil)

	require.Equal(schema, scan.Schema())
	rows := collect(t, ctx, scan)
	require.Equal([]sql.Row{sql.NewRow(int64(1), "x"), sql.NewRow(int64(2), "y")}, rows)
}

func TestTableScanProjectionPushThrough(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	schema := sql.Schema{{Name: "a", Type: types.Long}, {Name: "b", Type: types.String}}
	table := newFakeTable("t", schema, sql.NewRow(int64(1), "x"), sql.NewRow(int64(2), "y"))
	scan := NewTableScan("db", table, []int{1}, nil)

	require.Equal(sql.Schema{schema[1]}, scan.Schema())
	rows := collect(t, ctx, scan)
	require.Equal([]sql.Row{sql.NewRow("x"), sql.NewRow("y")}, rows)
}

func TestTableScanPruningFilter(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	schema := sql.Schema{{Name: "a", Type: types.Long}}
	table := newFakeTable("t", schema, sql.NewRow(int64(1)))
	scan := NewTableScan("db", table, nil, func(p sql.Partition) bool { return false })

	rows := collect(t, ctx, scan)
	require.Empty(rows)
}
