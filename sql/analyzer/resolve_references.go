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
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/transform"
)

// resolveReferences is §4.5 step 3: every UnresolvedAttribute owned by a
// node is matched against that node's child output(s); a name matches
// iff it equals either the bare column name or `qualifier.name`.
// Multiple matches fail with ErrAmbiguousReference; a reference that
// matches nothing is left unresolved for a later pass of this FixedPoint
// batch (e.g. it may be a grouping-expression rewrite candidate the
// aggregate-rewrite batch, which runs after this one, is responsible
// for) -- if it is still unresolved once the whole analyzer finishes,
// the final "plan is fully resolved" invariant reports it.
func resolveReferences(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	return transform.NodeExprsWithNode(n, func(node sql.Node, e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		unresolved, ok := e.(*expression.UnresolvedAttribute)
		if !ok {
			return e, transform.SameTree, nil
		}

		var matches []sql.Expression
		for tupleOrdinal, child := range node.Children() {
			for fieldOrdinal, col := range child.Schema() {
				if !nameMatches(unresolved, col) {
					continue
				}
				matches = append(matches, expression.NewBoundReference(
					tupleOrdinal, fieldOrdinal, col.Name, col.Type, col.Nullable).WithID(col.ID))
			}
		}

		switch len(matches) {
		case 0:
			return e, transform.SameTree, nil
		case 1:
			return matches[0], transform.NewTree, nil
		default:
			return nil, transform.SameTree, sql.ErrAmbiguousReference.New(unresolved.String(), matches)
		}
	})
}

func nameMatches(u *expression.UnresolvedAttribute, col *sql.Column) bool {
	if u.Qualifier == "" {
		return u.Name_ == col.Name
	}
	return u.Qualifier == col.Source && u.Name_ == col.Name
}
