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

package memory_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/relforge/memory"
	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/types"
)

func schemaAB() sql.Schema {
	return sql.Schema{
		{Name: "a", Type: types.Long},
		{Name: "b", Type: types.String},
	}
}

func drain(t *testing.T, ctx *sql.Context, table *memory.Table) []sql.Row {
	t.Helper()
	parts, err := table.Partitions(ctx)
	require.NoError(t, err)
	var out []sql.Row
	for _, p := range parts {
		iter, err := table.PartitionRows(ctx, p)
		require.NoError(t, err)
		for {
			row, err := iter.Next(ctx)
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			out = append(out, row)
		}
		require.NoError(t, iter.Close(ctx))
	}
	return out
}

func TestTableNameAndSchema(t *testing.T) {
	table := memory.NewTable("t", schemaAB())
	require.Equal(t, "t", table.Name())
	// The table stamps a fresh attribute id on each column; apart from the
	// id, its schema is the one it was built with.
	got := table.TableSchema()
	expected := schemaAB()
	require.Len(t, got, len(expected))
	for i := range expected {
		require.NotZero(t, got[i].ID)
		expected[i].ID = got[i].ID
	}
	require.Equal(t, expected, got)
}

func TestTableInsertAndScan(t *testing.T) {
	ctx := sql.NewEmptyContext()
	table := memory.NewTable("t", schemaAB())
	require.NoError(t, table.Insert(ctx, sql.NewRow(int64(1), "x")))
	require.NoError(t, table.Insert(ctx, sql.NewRow(int64(2), "y")))

	rows := drain(t, ctx, table)
	require.ElementsMatch(t, []sql.Row{sql.NewRow(int64(1), "x"), sql.NewRow(int64(2), "y")}, rows)
}

func TestTableInsertRejectsWrongArity(t *testing.T) {
	ctx := sql.NewEmptyContext()
	table := memory.NewTable("t", schemaAB())
	err := table.Insert(ctx, sql.NewRow(int64(1)))
	require.Error(t, err)
	require.True(t, memory.ErrRowSchemaMismatch.Is(err))
}

func TestPartitionedTableSpreadsAcrossPartitions(t *testing.T) {
	ctx := sql.NewEmptyContext()
	table := memory.NewPartitionedTable("t", schemaAB(), 3)
	for i := int64(0); i < 9; i++ {
		require.NoError(t, table.Insert(ctx, sql.NewRow(i, "v")))
	}

	parts, err := table.Partitions(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	total := 0
	for _, p := range parts {
		iter, err := table.PartitionRows(ctx, p)
		require.NoError(t, err)
		count := 0
		for {
			_, err := iter.Next(ctx)
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			count++
		}
		require.NoError(t, iter.Close(ctx))
		require.Equal(t, 3, count)
		total += count
	}
	require.Equal(t, 9, total)
}

func TestTablePartitionRowsRejectsUnknownPartition(t *testing.T) {
	ctx := sql.NewEmptyContext()
	table := memory.NewTable("t", schemaAB())
	_, err := table.PartitionRows(ctx, badPartition("nope"))
	require.Error(t, err)
	require.True(t, memory.ErrInvalidPartition.Is(err))
}

type badPartition string

func (p badPartition) Key() []byte { return []byte(p) }
