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

package sql

import "sync"

// Database groups named relations, the unit the catalog collaborator
// resolves an UnresolvedRelation against (§6.2).
type Database interface {
	Name() string
	// GetTableInsensitive returns the named table and whether it exists.
	GetTableInsensitive(ctx *Context, name string) (Tabler, bool, error)
	// Tables lists all relations registered in the database.
	Tables() map[string]Tabler
}

// Catalog is the core's view of the catalog collaborator (§6.2):
// lookup_relation(name) -> (schema, relation-handle), plus function
// registration (§6.3). The reference in-memory implementation lives in
// package memory; this type is storage-agnostic and read-only once
// initialized, per §5's "read-only after initialization" requirement.
type Catalog struct {
	mu        sync.RWMutex
	databases map[string]Database
	functions *FunctionRegistry
}

// NewCatalog returns an empty Catalog with its own function registry.
func NewCatalog() *Catalog {
	return &Catalog{
		databases: make(map[string]Database),
		functions: NewFunctionRegistry(),
	}
}

// AddDatabase registers a database under its own name.
func (c *Catalog) AddDatabase(db Database) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.databases[db.Name()] = db
}

// AllDatabases returns every registered database, in no particular order.
func (c *Catalog) AllDatabases() []Database {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dbs := make([]Database, 0, len(c.databases))
	for _, db := range c.databases {
		dbs = append(dbs, db)
	}
	return dbs
}

// Database looks up a registered database by name.
func (c *Catalog) Database(name string) (Database, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	db, ok := c.databases[name]
	if !ok {
		return nil, ErrRelationNotFound.New(name)
	}
	return db, nil
}

// Table implements lookup_relation(name) for a table qualified by
// database, returning ErrRelationNotFound when either the database or the
// table within it is missing.
func (c *Catalog) Table(dbName, tableName string) (Tabler, error) {
	db, err := c.Database(dbName)
	if err != nil {
		return nil, err
	}
	t, ok, err := db.GetTableInsensitive(NewEmptyContext(), tableName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRelationNotFound.New(dbName + "." + tableName)
	}
	return t, nil
}

// MustRegister registers a function, panicking if the name is already
// taken; used by tests and static registration at init time.
func (c *Catalog) MustRegister(fns ...Function) {
	if err := c.functions.Register(fns...); err != nil {
		panic(err)
	}
}

// RegisterFunction registers one or more functions, returning an error on
// name collision instead of panicking.
func (c *Catalog) RegisterFunction(fns ...Function) error {
	return c.functions.Register(fns...)
}

// Function implements lookup_function's name lookup (§6.3); argument-type
// based overload resolution, when needed, is the Function implementation's
// own responsibility via Build's argument inspection.
func (c *Catalog) Function(name string) (Function, error) {
	return c.functions.Function(name)
}
