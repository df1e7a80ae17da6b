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

package analyzer

import (
	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/transform"
)

// resolveRelations is §4.5 step 2: every UnresolvedRelation is looked up
// in the catalog collaborator and replaced by a ResolvedTable, or the
// batch fails with ErrRelationNotFound.
func (a *Analyzer) resolveRelations(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	result, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		rel, ok := node.(*plan.UnresolvedRelation)
		if !ok {
			return node, transform.SameTree, nil
		}
		table, err := a.Catalog.Table(rel.Database, rel.Name)
		if err != nil {
			return nil, transform.SameTree, err
		}
		resolved := plan.NewResolvedTable(rel.Database, table)
		if rel.Alias != "" {
			return plan.NewSubquery(rel.Alias, resolved), transform.NewTree, nil
		}
		return resolved, transform.NewTree, nil
	})
	return result, err
}
