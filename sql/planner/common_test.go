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

package planner

import (
	"context"
	"fmt"

	"github.com/relforge/relforge/sql"
)

// fakeTable is a minimal single-partition sql.Tabler, just enough for the
// strategies to find a schema and some rows to execute against.
type fakeTable struct {
	name   string
	schema sql.Schema
	rows   []sql.Row
}

func newFakeTable(name string, schema sql.Schema, rows ...sql.Row) *fakeTable {
	return &fakeTable{name, schema, rows}
}

func (t *fakeTable) Name() string            { return t.name }
func (t *fakeTable) TableSchema() sql.Schema { return t.schema }

func (t *fakeTable) Partitions(ctx *sql.Context) ([]sql.Partition, error) {
	return []sql.Partition{fakePartition("0")}, nil
}

func (t *fakeTable) PartitionRows(ctx *sql.Context, p sql.Partition) (sql.RowIter, error) {
	return sql.RowsToRowIter(t.rows...), nil
}

type fakePartition string

func (p fakePartition) Key() []byte { return []byte(p) }

// fakePartitionedTable splits rows across one partition per distinct
// value of its first (partition-key) column, exercising partitionPruning
// against a table that implements sql.PartitionedRelation, which
// memory.Table does not.
type fakePartitionedTable struct {
	name        string
	schema      sql.Schema
	partKey     string
	byPartition map[string][]sql.Row
}

func newFakePartitionedTable(name string, schema sql.Schema, partKey string, rows ...sql.Row) *fakePartitionedTable {
	t := &fakePartitionedTable{name: name, schema: schema, partKey: partKey, byPartition: map[string][]sql.Row{}}
	keyIdx := 0
	for i, c := range schema {
		if c.Name == partKey {
			keyIdx = i
		}
	}
	for _, r := range rows {
		k := fmt.Sprint(r[keyIdx])
		t.byPartition[k] = append(t.byPartition[k], r)
	}
	return t
}

func (t *fakePartitionedTable) Name() string              { return t.name }
func (t *fakePartitionedTable) TableSchema() sql.Schema    { return t.schema }
func (t *fakePartitionedTable) PartitionKeys() []string    { return []string{t.partKey} }

func (t *fakePartitionedTable) Partitions(ctx *sql.Context) ([]sql.Partition, error) {
	out := make([]sql.Partition, 0, len(t.byPartition))
	for k := range t.byPartition {
		out = append(out, fakePartition(k))
	}
	return out, nil
}

func (t *fakePartitionedTable) PartitionRows(ctx *sql.Context, p sql.Partition) (sql.RowIter, error) {
	return sql.RowsToRowIter(t.byPartition[string(p.Key())]...), nil
}

func newTestContext() *sql.Context {
	return sql.NewContext(context.Background())
}
