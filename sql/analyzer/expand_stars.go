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
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/transform"
)

// expandStars is §4.5 step 4: inside a Project, Star(None) becomes the
// full child output and Star(Some(q)) is restricted to attributes whose
// qualifier equals q.
func expandStars(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	result, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		p, ok := node.(*plan.Project)
		if !ok {
			return node, transform.SameTree, nil
		}

		var expanded []sql.Expression
		changed := false
		for _, e := range p.Projections {
			star, ok := e.(*expression.Star)
			if !ok {
				expanded = append(expanded, e)
				continue
			}
			changed = true
			for tupleOrdinal, col := range p.Child.Schema() {
				if star.Qualifier != "" && star.Qualifier != col.Source {
					continue
				}
				expanded = append(expanded, expression.NewBoundReference(0, tupleOrdinal, col.Name, col.Type, col.Nullable).WithID(col.ID))
			}
		}
		if !changed {
			return node, transform.SameTree, nil
		}
		return plan.NewProject(expanded, p.Child), transform.NewTree, nil
	})
	return result, err
}
