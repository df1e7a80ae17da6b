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
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/transform"
)

// combineFilters is §4.6's "adjacent Filters merge predicates with And":
// one Filter node evaluates one predicate instead of two, which also
// gives the simplify rule a single combined expression to fold.
func combineFilters(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	result, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		outer, ok := node.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		inner, ok := outer.Child.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		combined := plan.NewFilter(expression.NewAnd(outer.Predicate, inner.Predicate), inner.Child)
		return combined, transform.NewTree, nil
	})
	return result, err
}
