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

package plan

import (
	"github.com/relforge/relforge/sql"
)

// fakeTable is a minimal sql.Tabler used to build ResolvedTable fixtures
// without depending on package memory (which itself will depend on plan
// transitively through the analyzer/engine, so plan's own tests stay
// self-contained).
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
