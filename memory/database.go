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

// Package memory is the reference in-memory implementation of the
// catalog collaborator (spec §6.2): a sql.Database holding sql.Tabler
// relations backed by plain row slices, with an optional boltdb-backed
// snapshot so a Database's contents can survive a process restart.
package memory

import (
	"sort"
	"sync"

	"github.com/relforge/relforge/sql"
)

// Database groups named Tables under one name, the reference
// implementation of the sql.Database interface the catalog resolves
// relations against.
type Database struct {
	mu     sync.RWMutex
	name   string
	tables map[string]*Table
}

var _ sql.Database = (*Database)(nil)

// NewDatabase returns an empty database.
func NewDatabase(name string) *Database {
	return &Database{name: name, tables: make(map[string]*Table)}
}

func (d *Database) Name() string { return d.name }

// GetTableInsensitive implements sql.Database; despite the name, lookup
// here is case-sensitive -- the reference implementation has no
// collation model (that's a Non-goal), so "insensitive" just means "the
// same lookup the catalog would perform regardless of how the name was
// originally cased by a caller", which for this reference table map is
// a plain map lookup.
func (d *Database) GetTableInsensitive(ctx *sql.Context, name string) (sql.Tabler, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tables[name]
	if !ok {
		return nil, false, nil
	}
	return t, true, nil
}

func (d *Database) Tables() map[string]sql.Tabler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]sql.Tabler, len(d.tables))
	for name, t := range d.tables {
		out[name] = t
	}
	return out
}

// CreateTable registers a new empty single-partition table under name,
// failing with ErrTableAlreadyExists if one is already registered.
func (d *Database) CreateTable(name string, schema sql.Schema) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tables[name]; ok {
		return ErrTableAlreadyExists.New(name)
	}
	d.tables[name] = NewTable(name, schema)
	return nil
}

// CreatePartitionedTable is CreateTable with an explicit partition count,
// for tests that want to exercise multi-partition execution.
func (d *Database) CreatePartitionedTable(name string, schema sql.Schema, numPartitions int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tables[name]; ok {
		return ErrTableAlreadyExists.New(name)
	}
	d.tables[name] = NewPartitionedTable(name, schema, numPartitions)
	return nil
}

// DropTable removes a registered table, failing with ErrTableNotFound if
// none is registered under name.
func (d *Database) DropTable(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tables[name]; !ok {
		return ErrTableNotFound.New(name)
	}
	delete(d.tables, name)
	return nil
}

// TableNames returns the database's table names in sorted order, for
// deterministic iteration in tests and Persist.
func (d *Database) TableNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// table returns the concrete *Table registered under name, used
// internally by Persist/Load which need Table.AllRows and Table.Insert
// rather than the narrower sql.Tabler/sql.RowInserter views.
func (d *Database) table(name string) (*Table, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tables[name]
	return t, ok
}
