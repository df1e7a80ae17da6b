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

// Package analyzer implements the analyzer (C6, §4.5): a rule.Executor
// running seven ordered batches that turn an unresolved plan fresh off a
// parser collaborator into a fully resolved one (no Unresolved* nodes,
// every expression's type determined).
package analyzer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/rule"
)

const (
	batchSubstituteSubqueries = "substitute-subqueries"
	batchResolveRelations     = "resolve-relations"
	batchResolveReferences    = "resolve-references"
	batchExpandStars          = "expand-stars"
	batchResolveFunctions     = "resolve-functions"
	batchTypeCoercion         = "type-coercion"
	batchAggregateRewrite     = "aggregate-rewrite"
)

// Analyzer wraps a rule.Executor configured with the §4.5 batch sequence
// against a single catalog collaborator.
type Analyzer struct {
	Catalog  *sql.Catalog
	executor *rule.Executor
}

// New builds an Analyzer with the standard seven batches (§4.5 steps
// 1-7), each a Once pass except resolve references (FixedPoint, so a
// reference left unmatched on one pass is retried on the next) and type
// coercion (FixedPoint, since widening one operand can require widening
// its sibling again).
func New(catalog *sql.Catalog) *Analyzer {
	a := &Analyzer{Catalog: catalog}
	a.executor = rule.NewExecutor(logrus.NewEntry(logrus.StandardLogger()))

	a.executor.AddBatch(rule.Batch{
		Name: batchSubstituteSubqueries, Strategy: rule.Once,
		Rules: []rule.Rule{{Name: "substituteSubqueries", Apply: substituteSubqueries}},
	})
	a.executor.AddBatch(rule.Batch{
		Name: batchResolveRelations, Strategy: rule.Once,
		Rules: []rule.Rule{{Name: "resolveRelations", Apply: a.resolveRelations}},
	})
	a.executor.AddBatch(rule.Batch{
		Name: batchResolveReferences, Strategy: rule.FixedPoint, MaxIter: 8,
		Rules: []rule.Rule{{Name: "resolveReferences", Apply: resolveReferences}},
	})
	a.executor.AddBatch(rule.Batch{
		Name: batchExpandStars, Strategy: rule.Once,
		Rules: []rule.Rule{{Name: "expandStars", Apply: expandStars}},
	})
	a.executor.AddBatch(rule.Batch{
		Name: batchResolveFunctions, Strategy: rule.Once,
		Rules: []rule.Rule{{Name: "resolveFunctions", Apply: a.resolveFunctions}},
	})
	a.executor.AddBatch(rule.Batch{
		Name: batchTypeCoercion, Strategy: rule.FixedPoint, MaxIter: 8,
		Rules: []rule.Rule{{Name: "typeCoercion", Apply: typeCoercion}},
	})
	a.executor.AddBatch(rule.Batch{
		Name: batchAggregateRewrite, Strategy: rule.Once,
		Rules: []rule.Rule{{Name: "aggregateRewrite", Apply: aggregateRewrite}},
	})

	a.executor.AddInvariant(batchAggregateRewrite, rule.Invariant{
		Name: "plan is fully resolved",
		Check: func(n sql.Node) error {
			if !n.Resolved() {
				return fmt.Errorf("plan not fully resolved: %s", n)
			}
			return nil
		},
	})
	a.executor.AddInvariant(batchAggregateRewrite, rule.Invariant{
		Name: "no duplicate attribute ids",
		Check: checkNoDuplicateAttributeIDs,
	})

	return a
}

// checkNoDuplicateAttributeIDs is §8.1's "output(P) contains no duplicate
// attribute ids": a column with a zero id has no settled identity yet (a
// bare computed expression with no Alias, or a schema built as a literal
// in a test fixture) and is exempt, since zero never claims to identify
// any particular attribute.
func checkNoDuplicateAttributeIDs(n sql.Node) error {
	seen := make(map[sql.AttributeID]bool)
	for _, col := range n.Schema() {
		if col.ID == 0 {
			continue
		}
		if seen[col.ID] {
			return fmt.Errorf("duplicate attribute id %d in output of %s", col.ID, n)
		}
		seen[col.ID] = true
	}
	return nil
}

// Analyze runs the batch sequence over n, returning the resolved plan or
// the first error any batch/invariant raised.
func (a *Analyzer) Analyze(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	return a.executor.Execute(ctx, n)
}
