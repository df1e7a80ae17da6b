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
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/transform"
)

// eliminateSubqueries is §4.6's Subquery(_, c) -> c: the alias wrapper the
// analyzer's "resolve relations" batch left in place to make qualified
// references resolve correctly is no longer needed once every reference
// in the plan is bound by position (BoundReference), not by name.
func eliminateSubqueries(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	result, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		sub, ok := node.(*plan.Subquery)
		if !ok {
			return node, transform.SameTree, nil
		}
		return sub.Child, transform.NewTree, nil
	})
	return result, err
}
