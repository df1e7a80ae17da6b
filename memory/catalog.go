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

import "github.com/relforge/relforge/sql"

// NewCatalog returns a sql.Catalog with every given database pre-registered,
// the one-line wiring the engine's tests reach for instead of calling
// sql.NewCatalog and AddDatabase one at a time.
func NewCatalog(dbs ...*Database) *sql.Catalog {
	cat := sql.NewCatalog()
	for _, db := range dbs {
		cat.AddDatabase(db)
	}
	return cat
}
