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

// UnresolvedRelation is the leaf a parser collaborator emits for a bare
// table reference (§6.1); the analyzer's "resolve relations" batch
// (§4.5 step 2) replaces it with a ResolvedTable or fails with
// ErrRelationNotFound.
type UnresolvedRelation struct {
	Database string
	Name     string
	Alias    string
}

var _ sql.Node = (*UnresolvedRelation)(nil)

func NewUnresolvedRelation(database, name string) *UnresolvedRelation {
	return &UnresolvedRelation{Database: database, Name: name}
}

// WithAlias returns a copy aliased as per a `FROM t AS alias` clause.
func (r *UnresolvedRelation) WithAlias(alias string) *UnresolvedRelation {
	cp := *r
	cp.Alias = alias
	return &cp
}

func (r *UnresolvedRelation) Resolved() bool       { return false }
func (r *UnresolvedRelation) Schema() sql.Schema   { return nil }
func (r *UnresolvedRelation) Children() []sql.Node { return nil }

func (r *UnresolvedRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrTreeShapeMismatch.New(r, 0, len(children))
	}
	return r, nil
}

func (r *UnresolvedRelation) String() string {
	if r.Alias != "" {
		return fmt.Sprintf("UnresolvedRelation(%s AS %s)", r.Name, r.Alias)
	}
	return fmt.Sprintf("UnresolvedRelation(%s)", r.Name)
}
