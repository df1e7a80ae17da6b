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

package planner

import (
	"fmt"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/expression/aggregation"
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/rowexec"
	"github.com/relforge/relforge/sql/transform"
)

func later(n sql.Node) sql.Node { return rowexec.NewPlanLater(n) }

// dataSink is §4.7 strategy 1: InsertInto streams its child into Target
// through the Target's sql.RowInserter capability.
func dataSink(n sql.Node) []sql.Node {
	ins, ok := n.(*plan.InsertInto)
	if !ok {
		return nil
	}
	return []sql.Node{rowexec.NewInsert(ins.Target.Database, ins.Target.Table, ins.PartitionSpec, later(ins.Child))}
}

// tableScan is §4.7 strategy 2: a bare ResolvedTable becomes a TableScan,
// and a Project directly over one whose Projections are all bare
// attributes of that same table (a pure column selection/reordering, no
// computation) folds into the scan's own projection instead of a
// separate Project node above it.
func tableScan(n sql.Node) []sql.Node {
	if rt, ok := n.(*plan.ResolvedTable); ok {
		return []sql.Node{rowexec.NewTableScan(rt.Database, rt.Table, nil, nil)}
	}

	proj, ok := n.(*plan.Project)
	if !ok {
		return nil
	}
	rt, ok := proj.Child.(*plan.ResolvedTable)
	if !ok {
		return nil
	}
	ordinals, ok := bareAttributeOrdinals(proj.Projections)
	if !ok {
		return nil
	}
	return []sql.Node{rowexec.NewTableScan(rt.Database, rt.Table, ordinals, nil)}
}

// bareAttributeOrdinals reports the field ordinals exprs names, if every
// one of them is nothing but a single-tuple BoundReference -- i.e. the
// Project computes nothing and only selects/reorders columns.
func bareAttributeOrdinals(exprs []sql.Expression) ([]int, bool) {
	ordinals := make([]int, len(exprs))
	for i, e := range exprs {
		br, ok := e.(*expression.BoundReference)
		if !ok || br.TupleOrdinal() != 0 {
			return nil, false
		}
		ordinals[i] = br.FieldOrdinal()
	}
	return ordinals, true
}

// partitionPruning is §4.7 strategy 3: a Filter directly over a
// ResolvedTable whose Table implements sql.PartitionedRelation is split
// into conjuncts naming only a partition key (folded into the scan's
// PruningFilter) and everything else (kept as a residual Filter over the
// plain scan). The reference PartitionedRelation convention a partition
// key conjunct is matched against is Partition.Key() holding
// fmt.Sprint(value) of that partition's key column value -- the encoding
// the synthetic partitioned table this strategy's own tests build uses.
func partitionPruning(n sql.Node) []sql.Node {
	f, ok := n.(*plan.Filter)
	if !ok {
		return nil
	}
	rt, ok := f.Child.(*plan.ResolvedTable)
	if !ok {
		return nil
	}
	part, ok := rt.Table.(sql.PartitionedRelation)
	if !ok {
		return nil
	}
	keys := make(map[string]bool, len(part.PartitionKeys()))
	for _, k := range part.PartitionKeys() {
		keys[k] = true
	}

	conjuncts := splitConjunction(f.Predicate)
	var pruneValue interface{}
	var residual []sql.Expression
	for _, c := range conjuncts {
		if v, ok := partitionKeyLiteral(c, keys); ok && pruneValue == nil {
			pruneValue = v
			continue
		}
		residual = append(residual, c)
	}
	if pruneValue == nil {
		return nil
	}

	wanted := fmt.Sprint(pruneValue)
	pruningFilter := func(p sql.Partition) bool { return string(p.Key()) == wanted }
	scan := rowexec.NewTableScan(rt.Database, rt.Table, nil, pruningFilter)

	if len(residual) == 0 {
		return []sql.Node{scan}
	}
	return []sql.Node{rowexec.NewFilter(joinConjuncts(residual), scan)}
}

// partitionKeyLiteral reports (literalValue, true) when cond is
// Equals(attr, literal) or Equals(literal, attr) for an attr named among
// keys.
func partitionKeyLiteral(cond sql.Expression, keys map[string]bool) (interface{}, bool) {
	eq, ok := cond.(expression.EqualityComparison)
	if !ok || !eq.IsEquality() {
		return nil, false
	}
	l, r := eq.Operands()
	if br, ok := l.(*expression.BoundReference); ok && keys[br.Name()] {
		if lit, ok := r.(*expression.Literal); ok {
			return lit.Value(), true
		}
	}
	if br, ok := r.(*expression.BoundReference); ok && keys[br.Name()] {
		if lit, ok := l.(*expression.Literal); ok {
			return lit.Value(), true
		}
	}
	return nil, false
}

// equiJoin is §4.7 strategy 4: at least one Equals(l, r) in Join's
// Condition with l evaluable from only the left side and r only from the
// right (or vice versa) drives a HashEquiJoin; everything else in the
// conjunction becomes a guarding residual, evaluated against the joined
// row.
func equiJoin(n sql.Node) []sql.Node {
	j, ok := n.(*plan.Join)
	if !ok || j.Condition == nil {
		return nil
	}

	var leftKeys, rightKeys []sql.Expression
	var residual []sql.Expression
	for _, c := range splitConjunction(j.Condition) {
		lk, rk, ok := equiJoinKey(c)
		if ok {
			leftKeys = append(leftKeys, lk)
			rightKeys = append(rightKeys, rk)
			continue
		}
		residual = append(residual, c)
	}
	if len(leftKeys) == 0 {
		return nil
	}

	leftWidth := len(j.Left.Schema())
	var residualExpr sql.Expression
	if len(residual) > 0 {
		residualExpr = rebaseToJoinedRow(joinConjuncts(residual), leftWidth)
	}

	hashJoin := rowexec.NewHashEquiJoin(later(j.Left), later(j.Right), j.Type, leftKeys, rightKeys, residualExpr)
	return []sql.Node{hashJoin}
}

// equiJoinKey reports (leftKey, rightKey, true) when cond is an equality
// whose two sides each reference exactly one (and opposite) side of a
// binary Join. The returned keys are re-zeroed to tupleOrdinal 0 so they
// evaluate correctly against a standalone one-side row (the shape
// HashEquiJoin's key evaluation expects), since each was resolved
// relative to the Join's own two children (tupleOrdinal 0 = left, 1 =
// right, fieldOrdinal relative to that child's own schema).
func equiJoinKey(cond sql.Expression) (left, right sql.Expression, ok bool) {
	eq, ok := cond.(expression.EqualityComparison)
	if !ok || !eq.IsEquality() {
		return nil, nil, false
	}
	l, r := eq.Operands()
	lTuples, rTuples := referencedTuples(l), referencedTuples(r)
	if onlyTuple(lTuples, 0) && onlyTuple(rTuples, 1) {
		return zeroTuple(l), zeroTuple(r), true
	}
	if onlyTuple(lTuples, 1) && onlyTuple(rTuples, 0) {
		return zeroTuple(r), zeroTuple(l), true
	}
	return nil, nil, false
}

func referencedTuples(e sql.Expression) map[int]bool {
	tuples := map[int]bool{}
	_ = transform.ForeachExpr(e, func(node sql.Expression) error {
		if br, ok := node.(*expression.BoundReference); ok {
			tuples[br.TupleOrdinal()] = true
		}
		return nil
	})
	return tuples
}

func onlyTuple(tuples map[int]bool, want int) bool {
	if len(tuples) == 0 {
		return true
	}
	return len(tuples) == 1 && tuples[want]
}

func zeroTuple(e sql.Expression) sql.Expression {
	rewritten, _, _ := transform.Expr(e, func(node sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		br, ok := node.(*expression.BoundReference)
		if !ok || br.TupleOrdinal() == 0 {
			return node, transform.SameTree, nil
		}
		return expression.NewBoundReference(0, br.FieldOrdinal(), br.Name(), br.Type(), br.IsNullable()).WithID(br.ID()), transform.NewTree, nil
	})
	return rewritten
}

// rebaseToJoinedRow rewrites every tupleOrdinal-1 BoundReference in e
// (resolved against a Join's right child alone) into the flat
// fieldOrdinal space the physical join's output row actually uses
// (left columns, then right columns, concatenated): field offset by
// leftWidth, tupleOrdinal reset to 0.
func rebaseToJoinedRow(e sql.Expression, leftWidth int) sql.Expression {
	rewritten, _, _ := transform.Expr(e, func(node sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		br, ok := node.(*expression.BoundReference)
		if !ok || br.TupleOrdinal() == 0 {
			return node, transform.SameTree, nil
		}
		return expression.NewBoundReference(0, leftWidth+br.FieldOrdinal(), br.Name(), br.Type(), br.IsNullable()).WithID(br.ID()), transform.NewTree, nil
	})
	return rewritten
}

// splitConjunction flattens a (possibly nested) And tree into its leaf
// conjuncts; a non-And expression is its own single-element result.
func splitConjunction(e sql.Expression) []sql.Expression {
	and, ok := e.(*expression.And)
	if !ok {
		return []sql.Expression{e}
	}
	return append(splitConjunction(and.Left), splitConjunction(and.Right)...)
}

// joinConjuncts is splitConjunction's inverse: it rebuilds a single
// expression by And-ing every element together, for the common case of
// re-assembling a residual predicate.
func joinConjuncts(exprs []sql.Expression) sql.Expression {
	out := exprs[0]
	for _, e := range exprs[1:] {
		out = expression.NewAnd(out, e)
	}
	return out
}

// aggregateStrategy is §4.7 strategy 5: when every aggregate expression
// in the node supports partial decomposition (and cfg.EnablePartialAggre
// gation allows it), emit the two-level PartialAggregate/
// FinalMergeAggregate split; otherwise fall through to a single hash
// Aggregate requiring all-tuples-clustered distribution.
func aggregateStrategy(cfg *sql.EngineConfig) Strategy {
	return func(n sql.Node) []sql.Node {
		agg, ok := n.(*plan.Aggregate)
		if !ok {
			return nil
		}

		leaves := rowexec.CollectAggregationLeaves(agg.AggregateExprs)
		decomposable := make([]aggregation.PartialDecomposable, len(leaves))
		allDecomposable := cfg.EnablePartialAggregation
		for i, leaf := range leaves {
			pd, ok := leaf.(aggregation.PartialDecomposable)
			if !ok {
				allDecomposable = false
				break
			}
			decomposable[i] = pd
		}

		if !allDecomposable || len(leaves) == 0 {
			return []sql.Node{rowexec.NewAggregate(agg.GroupingExprs, agg.AggregateExprs, later(agg.Child))}
		}

		partial := rowexec.NewPartialAggregate(agg.GroupingExprs, decomposable, later(agg.Child))
		final := rowexec.NewFinalMergeAggregate(agg.GroupingExprs, decomposable, agg.AggregateExprs, partial)
		return []sql.Node{final}
	}
}

// broadcastNestedLoopJoin is §4.7 strategy 6: any Join with a condition
// equiJoin couldn't drive a hash join from. The condition is resolved
// against the Join's two children (tupleOrdinal 0 = left, 1 = right,
// fieldOrdinal relative to that child's own schema) but the operator
// evaluates it against the flat concatenated left++right row, so every
// right-side reference needs the same rebaseToJoinedRow treatment
// equiJoin's residual gets.
func broadcastNestedLoopJoin(n sql.Node) []sql.Node {
	j, ok := n.(*plan.Join)
	if !ok || j.Condition == nil {
		return nil
	}
	condition := rebaseToJoinedRow(j.Condition, len(j.Left.Schema()))
	return []sql.Node{rowexec.NewBroadcastNestedLoopJoin(later(j.Left), later(j.Right), j.Type, condition)}
}

// cartesianProduct is §4.7 strategy 7: a Join with no condition at all.
func cartesianProduct(n sql.Node) []sql.Node {
	j, ok := n.(*plan.Join)
	if !ok || j.Condition != nil {
		return nil
	}
	return []sql.Node{rowexec.NewCartesianProduct(later(j.Left), later(j.Right))}
}

// basicOperators is §4.7 strategy 8: the pass-through logical nodes,
// unconditionally re-expressed as their rowexec counterpart.
func basicOperators(n sql.Node) []sql.Node {
	switch t := n.(type) {
	case *plan.Sort:
		return []sql.Node{rowexec.NewSort(t.SortOrders, t.Global, later(t.Child))}
	case *plan.Project:
		return []sql.Node{rowexec.NewProject(t.Projections, later(t.Child))}
	case *plan.Filter:
		return []sql.Node{rowexec.NewFilter(t.Predicate, later(t.Child))}
	case *plan.Limit:
		return []sql.Node{rowexec.NewLimit(t.N, later(t.Child))}
	case *plan.Generate:
		return []sql.Node{rowexec.NewGenerate(t.Generator, t.Join, t.Outer, later(t.Child))}
	case *plan.Union:
		children := make([]sql.Node, len(t.Children()))
		for i, c := range t.Children() {
			children[i] = later(c)
		}
		return []sql.Node{rowexec.NewUnion(children...)}
	default:
		return nil
	}
}
