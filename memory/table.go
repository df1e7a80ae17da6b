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

package memory

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/relforge/relforge/sql"
)

// Table is the reference sql.Tabler: an in-memory, mutex-guarded row slice
// split across a fixed number of partitions. NewTable returns a
// single-partition table; NewPartitionedTable round-robins rows across
// numPartitions slices, giving the execution substrate something to
// actually parallelize over in tests.
type Table struct {
	mu            sync.RWMutex
	name          string
	schema        sql.Schema
	numPartitions int
	partitions    [][]sql.Row
}

var _ sql.Tabler = (*Table)(nil)
var _ sql.RowInserter = (*Table)(nil)

// NewTable returns an empty single-partition table with the given schema.
func NewTable(name string, schema sql.Schema) *Table {
	return NewPartitionedTable(name, schema, 1)
}

// NewPartitionedTable returns an empty table pre-split into numPartitions
// row slices. numPartitions < 1 is treated as 1. Table is a Relation leaf
// (§3.2), so every column in schema is given a fresh attribute identity
// here, the one place that identity is ever minted for it; schema's own
// columns are left untouched and a copy carries the id instead.
func NewPartitionedTable(name string, schema sql.Schema, numPartitions int) *Table {
	if numPartitions < 1 {
		numPartitions = 1
	}
	identified := make(sql.Schema, len(schema))
	for i, col := range schema {
		c := *col
		c.ID = sql.NextAttributeID()
		identified[i] = &c
	}
	return &Table{
		name:          name,
		schema:        identified,
		numPartitions: numPartitions,
		partitions:    make([][]sql.Row, numPartitions),
	}
}

func (t *Table) Name() string            { return t.name }
func (t *Table) TableSchema() sql.Schema { return t.schema }

func (t *Table) String() string {
	return fmt.Sprintf("Table(%s)", t.name)
}

// Partitions returns one tablePartition handle per underlying row slice,
// keyed by its slice index, regardless of whether that slice currently
// holds any rows.
func (t *Table) Partitions(ctx *sql.Context) ([]sql.Partition, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	parts := make([]sql.Partition, t.numPartitions)
	for i := range parts {
		parts[i] = tablePartition(strconv.Itoa(i))
	}
	return parts, nil
}

func (t *Table) PartitionRows(ctx *sql.Context, p sql.Partition) (sql.RowIter, error) {
	i, err := strconv.Atoi(string(p.Key()))
	if err != nil || i < 0 || i >= t.numPartitions {
		return nil, ErrInvalidPartition.New(string(p.Key()))
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	rows := make([]sql.Row, len(t.partitions[i]))
	copy(rows, t.partitions[i])
	return sql.RowsToRowIter(rows...), nil
}

// Insert appends row to the least-loaded partition, keeping the
// round-robin distribution roughly even as rows accumulate one at a time.
func (t *Table) Insert(ctx *sql.Context, row sql.Row) error {
	if len(row) != len(t.schema) {
		return ErrRowSchemaMismatch.New(len(t.schema), len(row))
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	dest := 0
	for i, p := range t.partitions {
		if len(p) < len(t.partitions[dest]) {
			dest = i
		}
	}
	t.partitions[dest] = append(t.partitions[dest], row.Copy())
	return nil
}

func (t *Table) Close(ctx *sql.Context) error { return nil }

// AllRows returns every row in the table, flattened across partitions, in
// no particular cross-partition order. Used by tests and by Persist.
func (t *Table) AllRows() []sql.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []sql.Row
	for _, p := range t.partitions {
		out = append(out, p...)
	}
	return out
}

type tablePartition string

func (p tablePartition) Key() []byte { return []byte(p) }
