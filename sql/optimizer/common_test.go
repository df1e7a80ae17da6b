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

package optimizer

import (
	"github.com/relforge/relforge/sql"
)

// fakeTable is a minimal sql.Tabler fixture, independent of the not-yet
// -built memory package.
type fakeTable struct {
	name   string
	schema sql.Schema
}

func (t fakeTable) Name() string            { return t.name }
func (t fakeTable) TableSchema() sql.Schema { return t.schema }
func (t fakeTable) Partitions(ctx *sql.Context) ([]sql.Partition, error) { return nil, nil }
func (t fakeTable) PartitionRows(ctx *sql.Context, p sql.Partition) (sql.RowIter, error) {
	return sql.RowsToRowIter(), nil
}
