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
	"context"

	"github.com/relforge/relforge/sql"
)

// fakeTable is a minimal sql.Tabler used to feed rows into physical
// operators without depending on package memory.
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
	return []sql.Partition{fakePartition{}}, nil
}

func (t *fakeTable) PartitionRows(ctx *sql.Context, p sql.Partition) (sql.RowIter, error) {
	return sql.RowsToRowIter(t.rows...), nil
}

type fakePartition struct{}

func (fakePartition) Key() []byte { return []byte("0") }

// fakeInsertingTable is a fakeTable that also accepts writes, for
// exercising Insert without depending on package memory.
type fakeInsertingTable struct {
	*fakeTable
	inserted  []sql.Row
	insertErr error
	closed    bool
}

func newFakeInsertingTable(name string, schema sql.Schema) *fakeInsertingTable {
	return &fakeInsertingTable{fakeTable: newFakeTable(name, schema)}
}

func (t *fakeInsertingTable) Insert(ctx *sql.Context, row sql.Row) error {
	if t.insertErr != nil {
		return t.insertErr
	}
	t.inserted = append(t.inserted, row)
	return nil
}

func (t *fakeInsertingTable) Close(ctx *sql.Context) error {
	t.closed = true
	return nil
}

func newTestContext() *sql.Context {
	return sql.NewContext(context.Background())
}

// collect drains a Physical operator's Execute result into a plain slice
// for assertions.
func collect(t interface{ Fatal(...interface{}) }, ctx *sql.Context, p Physical) []sql.Row {
	iter, err := p.Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := drain(ctx, iter)
	if err != nil {
		t.Fatal(err)
	}
	return rows
}
