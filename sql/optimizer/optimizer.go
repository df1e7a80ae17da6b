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

// Package optimizer implements the optimizer (C7, §4.6): batches of
// semantics-preserving rewrites run over a fully-resolved plan before the
// physical planner sees it. Each rule either strictly shrinks a
// well-founded measure or leaves the tree unchanged, so every batch's
// FixedPoint strategy is guaranteed to converge.
package optimizer

import (
	"github.com/sirupsen/logrus"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/rule"
)

const (
	batchEliminateSubqueries = "eliminate-subqueries"
	batchCombineFilters      = "combine-filters"
	batchSimplify            = "simplify"
)

// Optimizer wraps a rule.Executor configured with the §4.6 batch
// sequence.
type Optimizer struct {
	executor *rule.Executor
}

// New builds an Optimizer with the standard batches, all FixedPoint since
// each rewrite can expose another opportunity for an earlier one (folding
// a Cast's operand can make the Cast itself foldable, combining two
// filters can make the merged predicate constant-foldable).
func New() *Optimizer {
	o := &Optimizer{executor: rule.NewExecutor(logrus.NewEntry(logrus.StandardLogger()))}

	o.executor.AddBatch(rule.Batch{
		Name: batchEliminateSubqueries, Strategy: rule.FixedPoint, MaxIter: 8,
		Rules: []rule.Rule{{Name: "eliminateSubqueries", Apply: eliminateSubqueries}},
	})
	o.executor.AddBatch(rule.Batch{
		Name: batchCombineFilters, Strategy: rule.FixedPoint, MaxIter: 8,
		Rules: []rule.Rule{{Name: "combineFilters", Apply: combineFilters}},
	})
	o.executor.AddBatch(rule.Batch{
		Name: batchSimplify, Strategy: rule.FixedPoint, MaxIter: 16,
		Rules: []rule.Rule{{Name: "simplify", Apply: simplify}},
	})

	return o
}

// Optimize runs the batch sequence over a fully-resolved plan.
func (o *Optimizer) Optimize(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	return o.executor.Execute(ctx, n)
}
