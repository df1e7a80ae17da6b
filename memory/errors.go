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
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrTableAlreadyExists is returned by Database.CreateTable when a
	// table is already registered under the requested name.
	ErrTableAlreadyExists = errors.NewKind("table already exists: %s")

	// ErrTableNotFound is returned by Database.DropTable when no table is
	// registered under the requested name.
	ErrTableNotFound = errors.NewKind("table not found: %s")

	// ErrRowSchemaMismatch is returned by Table.Insert when the row's
	// width doesn't match the table's own schema.
	ErrRowSchemaMismatch = errors.NewKind("row has wrong number of columns: expected %d, got %d")

	// ErrInvalidPartition is returned by Table.PartitionRows when handed a
	// partition key this table did not itself hand out.
	ErrInvalidPartition = errors.NewKind("invalid partition key: %s")

	// ErrDatabaseNotFound reports that no database is registered under
	// the requested name. No function in this package returns it.
	ErrDatabaseNotFound = errors.NewKind("database not found: %s")
)
