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
	"fmt"

	"github.com/relforge/relforge/sql"
)

// ResolvedTable is §3.4's Relation(name, schema): a leaf whose output is
// a catalog collaborator's Tabler schema, produced by the analyzer's
// "resolve relations" batch (§4.5 step 2) from an UnresolvedRelation.
type ResolvedTable struct {
	Database string
	Table    sql.Tabler
}

var _ sql.Node = (*ResolvedTable)(nil)

func NewResolvedTable(database string, table sql.Tabler) *ResolvedTable {
	return &ResolvedTable{Database: database, Table: table}
}

func (t *ResolvedTable) Name() string { return t.Table.Name() }

func (t *ResolvedTable) Resolved() bool       { return true }
func (t *ResolvedTable) Schema() sql.Schema   { return t.Table.TableSchema() }
func (t *ResolvedTable) Children() []sql.Node { return nil }

func (t *ResolvedTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrTreeShapeMismatch.New(t, 0, len(children))
	}
	return t, nil
}

func (t *ResolvedTable) String() string {
	return fmt.Sprintf("Table(%s)", t.Table.Name())
}
