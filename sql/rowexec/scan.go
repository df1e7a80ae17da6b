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
	"fmt"

	"github.com/relforge/relforge/sql"
)

// TableScan is the TableScan strategy's (§4.7 strategy 2) physical leaf:
// it reads Table's partitions in order, optionally narrowing each row to
// Projection (when the strategy folded a simple bare-attribute Project
// directly into the scan) and optionally restricting to partitions whose
// pruning key matches PruningFilter (§4.7 strategy 3).
type TableScan struct {
	Database      string
	Table         sql.Tabler
	Projection    []int // column ordinals kept, or nil for the full schema
	PruningFilter func(p sql.Partition) bool
}

var _ Physical = (*TableScan)(nil)

func NewTableScan(database string, table sql.Tabler, projection []int, pruningFilter func(p sql.Partition) bool) *TableScan {
	return &TableScan{database, table, projection, pruningFilter}
}

func (t *TableScan) Name() string { return t.Table.Name() }

func (t *TableScan) Resolved() bool       { return true }
func (t *TableScan) Children() []sql.Node { return nil }

func (t *TableScan) Schema() sql.Schema {
	full := t.Table.TableSchema()
	if t.Projection == nil {
		return full
	}
	out := make(sql.Schema, len(t.Projection))
	for i, ord := range t.Projection {
		out[i] = full[ord]
	}
	return out
}

func (t *TableScan) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrTreeShapeMismatch.New(t, 0, len(children))
	}
	return t, nil
}

func (t *TableScan) RequiredChildDistribution() []Distribution { return nil }

func (t *TableScan) OutputPartitioning() Distribution { return UnspecifiedDistribution }

func (t *TableScan) Execute(ctx *sql.Context) (sql.RowIter, error) {
	partitions, err := t.Table.Partitions(ctx)
	if err != nil {
		return nil, err
	}
	var iters []sql.RowIter
	for _, p := range partitions {
		if t.PruningFilter != nil && !t.PruningFilter(p) {
			continue
		}
		iter, err := t.Table.PartitionRows(ctx, p)
		if err != nil {
			return nil, err
		}
		iters = append(iters, iter)
	}
	merged := sql.RowIter(&concatRowIter{iters: iters})
	if t.Projection == nil {
		return merged, nil
	}
	return &mapRowIter{merged, func(ctx *sql.Context, row sql.Row) (sql.Row, error) {
		out := make(sql.Row, len(t.Projection))
		for i, ord := range t.Projection {
			out[i] = row[ord]
		}
		return out, nil
	}}, nil
}

func (t *TableScan) String() string {
	if t.Projection == nil {
		return fmt.Sprintf("TableScan(%s)", t.Table.Name())
	}
	return fmt.Sprintf("TableScan(%s, projection=%v)", t.Table.Name(), t.Projection)
}
