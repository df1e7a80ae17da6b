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
)

// substituteSubqueries is §4.5 step 1. plan.Subquery already computes its
// own output by re-qualifying its child's schema with its alias (see
// plan.Subquery.Schema), so every later batch in this package already
// resolves qualified references (`alias.col`) correctly against a
// Subquery node exactly as it would against its eventual replacement.
// This rule is therefore the identity: the wrapper is left in place
// through the rest of analysis and physically removed later by the
// optimizer's "eliminate subqueries" rule (§4.6), instead of duplicating
// the alias-qualification logic in two different passes.
func substituteSubqueries(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	return n, nil
}
