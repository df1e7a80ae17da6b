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

package rowexec

import (
	"fmt"

	"github.com/mitchellh/hashstructure"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/expression/aggregation"
	"github.com/relforge/relforge/sql/transform"
)

// Aggregate is the §4.8 hash-based aggregate, used both as the
// PartialAggregation strategy's fallback (every aggregate expression
// drives buffers straight off raw input rows) and as a one-shot grouping
// stage in its own right. The grouping map is built lazily as input
// arrives and drained in insertion-undefined order once it's exhausted,
// matching §4.8's description of the hash variant.
type Aggregate struct {
	unaryPhysical
	GroupingExprs  []sql.Expression
	AggregateExprs []sql.Expression
}

var _ Physical = (*Aggregate)(nil)
var _ sql.Expressioner = (*Aggregate)(nil)

func NewAggregate(groupingExprs, aggregateExprs []sql.Expression, child sql.Node) *Aggregate {
	return &Aggregate{unaryPhysical{child}, groupingExprs, aggregateExprs}
}

func (a *Aggregate) Schema() sql.Schema { return schemaOfExprs(a.AggregateExprs) }

func (a *Aggregate) Expressions() []sql.Expression {
	out := make([]sql.Expression, 0, len(a.GroupingExprs)+len(a.AggregateExprs))
	out = append(out, a.GroupingExprs...)
	out = append(out, a.AggregateExprs...)
	return out
}

func (a *Aggregate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	want := len(a.GroupingExprs) + len(a.AggregateExprs)
	if len(exprs) != want {
		return nil, sql.ErrTreeShapeMismatch.New(a, want, len(exprs))
	}
	grouping := exprs[:len(a.GroupingExprs)]
	aggregate := exprs[len(a.GroupingExprs):]
	return NewAggregate(grouping, aggregate, a.Child), nil
}

func (a *Aggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(a, children)
	if err != nil {
		return nil, err
	}
	return NewAggregate(a.GroupingExprs, a.AggregateExprs, child), nil
}

func (a *Aggregate) RequiredChildDistribution() []Distribution {
	return []Distribution{AllTuplesDistribution}
}

func (a *Aggregate) OutputPartitioning() Distribution {
	if len(a.GroupingExprs) == 0 {
		return AllTuplesDistribution
	}
	return ClusteredDistribution(a.GroupingExprs...)
}

// CollectAggregationLeaves returns, in first-discovery order, every
// Aggregation subexpression reachable from exprs. Grouping-tuple
// BoundReferences (§4.5 step 7) are not aggregations and are skipped.
func CollectAggregationLeaves(exprs []sql.Expression) []aggregation.Aggregation {
	var leaves []aggregation.Aggregation
	for _, e := range exprs {
		found := transform.CollectExprs(e, func(c sql.Expression) bool {
			agg, ok := c.(sql.AggregateExpression)
			return ok && agg.IsAggregate()
		})
		for _, f := range found {
			leaves = append(leaves, f.(aggregation.Aggregation))
		}
	}
	return leaves
}

type aggGroup struct {
	key     []interface{}
	buffers []aggregation.Buffer
}

func newAggGroup(leaves []aggregation.Aggregation, key []interface{}) (*aggGroup, error) {
	buffers := make([]aggregation.Buffer, len(leaves))
	for i, leaf := range leaves {
		buf, err := leaf.NewBuffer()
		if err != nil {
			return nil, err
		}
		buffers[i] = buf
	}
	return &aggGroup{key: key, buffers: buffers}, nil
}

// finalRow substitutes each Aggregation leaf in exprs with its buffer's
// current value, then evaluates the resulting tree against the grouping
// tuple so any BoundReference(0, idx) left by the aggregate rewrite
// (§4.5 step 7) reads the correct grouping value.
func (g *aggGroup) finalRow(ctx *sql.Context, leaves []aggregation.Aggregation, exprs []sql.Expression) (sql.Row, error) {
	groupingRow := sql.NewRow(g.key...)
	out := make(sql.Row, len(exprs))
	for i, e := range exprs {
		substituted, _, err := transform.Expr(e, func(node sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			for j, leaf := range leaves {
				if node == sql.Expression(leaf) {
					v, err := g.buffers[j].Eval(ctx)
					if err != nil {
						return nil, transform.SameTree, err
					}
					return expression.NewLiteral(v, node.Type()), transform.NewTree, nil
				}
			}
			return node, transform.SameTree, nil
		})
		if err != nil {
			return nil, err
		}
		v, err := substituted.Eval(ctx, groupingRow)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (a *Aggregate) Execute(ctx *sql.Context) (sql.RowIter, error) {
	childIter, err := executeChild(ctx, a.Child)
	if err != nil {
		return nil, err
	}
	rows, err := drain(ctx, childIter)
	if err != nil {
		return nil, err
	}

	leaves := CollectAggregationLeaves(a.AggregateExprs)

	groups := map[uint64][]*aggGroup{}
	var order []*aggGroup

	groupFor := func(key []interface{}) (*aggGroup, error) {
		h, err := hashstructure.Hash(key, nil)
		if err != nil {
			return nil, err
		}
		for _, g := range groups[h] {
			if keysEqual(g.key, key) {
				return g, nil
			}
		}
		g, err := newAggGroup(leaves, key)
		if err != nil {
			return nil, err
		}
		groups[h] = append(groups[h], g)
		order = append(order, g)
		return g, nil
	}

	for _, row := range rows {
		key := make([]interface{}, len(a.GroupingExprs))
		for i, e := range a.GroupingExprs {
			v, err := e.Eval(ctx, row)
			if err != nil {
				return nil, err
			}
			key[i] = v
		}
		g, err := groupFor(key)
		if err != nil {
			return nil, err
		}
		for i := range leaves {
			if err := g.buffers[i].Update(ctx, row); err != nil {
				return nil, err
			}
		}
	}

	if len(order) == 0 && len(a.GroupingExprs) == 0 {
		g, err := newAggGroup(leaves, nil)
		if err != nil {
			return nil, err
		}
		order = append(order, g)
	}

	out := make([]sql.Row, len(order))
	for i, g := range order {
		row, err := g.finalRow(ctx, leaves, a.AggregateExprs)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return sql.RowsToRowIter(out...), nil
}

func (a *Aggregate) String() string {
	name := "Aggregate"
	if len(a.GroupingExprs) > 0 {
		name += "(" + exprsString(a.GroupingExprs) + "; " + exprsString(a.AggregateExprs) + ")"
	} else {
		name += "(" + exprsString(a.AggregateExprs) + ")"
	}
	return treeString(name, a.Child)
}

// PartialAggregate is the PartialAggregation strategy's (§4.7 strategy 5)
// local per-partition stage, run before redistribution by grouping key.
// Leaves fixes the aggregation leaf order shared with the paired
// FinalMergeAggregate so the two stages agree on partial-row layout
// without re-deriving it independently.
type PartialAggregate struct {
	unaryPhysical
	GroupingExprs []sql.Expression
	Leaves        []aggregation.PartialDecomposable
}

var _ Physical = (*PartialAggregate)(nil)

func NewPartialAggregate(groupingExprs []sql.Expression, leaves []aggregation.PartialDecomposable, child sql.Node) *PartialAggregate {
	return &PartialAggregate{unaryPhysical{child}, groupingExprs, leaves}
}

func (p *PartialAggregate) Schema() sql.Schema {
	out := make(sql.Schema, 0, len(p.GroupingExprs)+len(p.Leaves))
	for i := range p.GroupingExprs {
		out = append(out, &sql.Column{Name: fmt.Sprintf("group%d", i), Type: p.GroupingExprs[i].Type(), Nullable: p.GroupingExprs[i].IsNullable()})
	}
	for _, leaf := range p.Leaves {
		out = append(out, leaf.PartialSchema()...)
	}
	return out
}

func (p *PartialAggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(p, children)
	if err != nil {
		return nil, err
	}
	return NewPartialAggregate(p.GroupingExprs, p.Leaves, child), nil
}

func (p *PartialAggregate) RequiredChildDistribution() []Distribution {
	return []Distribution{UnspecifiedDistribution}
}

func (p *PartialAggregate) OutputPartitioning() Distribution { return UnspecifiedDistribution }

func (p *PartialAggregate) Execute(ctx *sql.Context) (sql.RowIter, error) {
	childIter, err := executeChild(ctx, p.Child)
	if err != nil {
		return nil, err
	}
	rows, err := drain(ctx, childIter)
	if err != nil {
		return nil, err
	}

	type partialGroup struct {
		key     []interface{}
		buffers []aggregation.Buffer
	}
	groups := map[uint64][]*partialGroup{}
	var order []*partialGroup

	for _, row := range rows {
		key := make([]interface{}, len(p.GroupingExprs))
		for i, e := range p.GroupingExprs {
			v, err := e.Eval(ctx, row)
			if err != nil {
				return nil, err
			}
			key[i] = v
		}
		h, err := hashstructure.Hash(key, nil)
		if err != nil {
			return nil, err
		}
		var g *partialGroup
		for _, cand := range groups[h] {
			if keysEqual(cand.key, key) {
				g = cand
				break
			}
		}
		if g == nil {
			buffers := make([]aggregation.Buffer, len(p.Leaves))
			for i, leaf := range p.Leaves {
				buf, err := leaf.NewPartialBuffer()
				if err != nil {
					return nil, err
				}
				buffers[i] = buf
			}
			g = &partialGroup{key: key, buffers: buffers}
			groups[h] = append(groups[h], g)
			order = append(order, g)
		}
		for _, buf := range g.buffers {
			if err := buf.Update(ctx, row); err != nil {
				return nil, err
			}
		}
	}

	if len(order) == 0 && len(p.GroupingExprs) == 0 {
		buffers := make([]aggregation.Buffer, len(p.Leaves))
		for i, leaf := range p.Leaves {
			buf, err := leaf.NewPartialBuffer()
			if err != nil {
				return nil, err
			}
			buffers[i] = buf
		}
		order = append(order, &partialGroup{buffers: buffers})
	}

	out := make([]sql.Row, len(order))
	for i, g := range order {
		row := make(sql.Row, 0, len(g.key)+len(p.Leaves))
		row = append(row, g.key...)
		for _, buf := range g.buffers {
			v, err := buf.Eval(ctx)
			if err != nil {
				return nil, err
			}
			partial, ok := v.(sql.Row)
			if !ok {
				partial = sql.NewRow(v)
			}
			row = append(row, partial...)
		}
		out[i] = row
	}
	return sql.RowsToRowIter(out...), nil
}

func (p *PartialAggregate) String() string {
	return treeString("PartialAggregate("+exprsString(p.GroupingExprs)+")", p.Child)
}

// FinalMergeAggregate is the PartialAggregation strategy's final stage:
// it groups already-partial rows by their leading grouping-tuple columns
// and merges each leaf's partial tuple into a fresh final buffer via
// PartialDecomposable.Merge, then evaluates AggregateExprs the same way
// Aggregate does for its own buffers.
type FinalMergeAggregate struct {
	unaryPhysical
	GroupingExprs  []sql.Expression
	Leaves         []aggregation.PartialDecomposable
	AggregateExprs []sql.Expression
}

var _ Physical = (*FinalMergeAggregate)(nil)
var _ sql.Expressioner = (*FinalMergeAggregate)(nil)

func NewFinalMergeAggregate(groupingExprs []sql.Expression, leaves []aggregation.PartialDecomposable, aggregateExprs []sql.Expression, child sql.Node) *FinalMergeAggregate {
	return &FinalMergeAggregate{unaryPhysical{child}, groupingExprs, leaves, aggregateExprs}
}

func (f *FinalMergeAggregate) Schema() sql.Schema { return schemaOfExprs(f.AggregateExprs) }

func (f *FinalMergeAggregate) Expressions() []sql.Expression { return f.AggregateExprs }

func (f *FinalMergeAggregate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(f.AggregateExprs) {
		return nil, sql.ErrTreeShapeMismatch.New(f, len(f.AggregateExprs), len(exprs))
	}
	return NewFinalMergeAggregate(f.GroupingExprs, f.Leaves, exprs, f.Child), nil
}

func (f *FinalMergeAggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(f, children)
	if err != nil {
		return nil, err
	}
	return NewFinalMergeAggregate(f.GroupingExprs, f.Leaves, f.AggregateExprs, child), nil
}

func (f *FinalMergeAggregate) RequiredChildDistribution() []Distribution {
	if len(f.GroupingExprs) == 0 {
		return []Distribution{AllTuplesDistribution}
	}
	return []Distribution{ClusteredDistribution(f.GroupingExprs...)}
}

func (f *FinalMergeAggregate) OutputPartitioning() Distribution {
	if len(f.GroupingExprs) == 0 {
		return AllTuplesDistribution
	}
	return ClusteredDistribution(f.GroupingExprs...)
}

func (f *FinalMergeAggregate) Execute(ctx *sql.Context) (sql.RowIter, error) {
	childIter, err := executeChild(ctx, f.Child)
	if err != nil {
		return nil, err
	}
	partials, err := drain(ctx, childIter)
	if err != nil {
		return nil, err
	}

	leaves := CollectAggregationLeaves(f.AggregateExprs)

	groups := map[uint64][]*aggGroup{}
	var order []*aggGroup

	partialOffsets := make([]int, len(f.Leaves))
	off := len(f.GroupingExprs)
	for i, leaf := range f.Leaves {
		partialOffsets[i] = off
		off += len(leaf.PartialSchema())
	}

	for _, row := range partials {
		key := append([]interface{}{}, row[:len(f.GroupingExprs)]...)
		h, err := hashstructure.Hash(key, nil)
		if err != nil {
			return nil, err
		}
		var g *aggGroup
		for _, cand := range groups[h] {
			if keysEqual(cand.key, key) {
				g = cand
				break
			}
		}
		if g == nil {
			g, err = newAggGroup(leaves, key)
			if err != nil {
				return nil, err
			}
			groups[h] = append(groups[h], g)
			order = append(order, g)
		}
		for i, leaf := range f.Leaves {
			width := len(leaf.PartialSchema())
			partialRow := sql.Row(row[partialOffsets[i] : partialOffsets[i]+width])
			if err := leaf.Merge(ctx, g.buffers[leafIndex(leaves, leaf)], partialRow); err != nil {
				return nil, err
			}
		}
	}

	if len(order) == 0 && len(f.GroupingExprs) == 0 {
		g, err := newAggGroup(leaves, nil)
		if err != nil {
			return nil, err
		}
		order = append(order, g)
	}

	out := make([]sql.Row, len(order))
	for i, g := range order {
		row, err := g.finalRow(ctx, leaves, f.AggregateExprs)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return sql.RowsToRowIter(out...), nil
}

// leafIndex finds decomposable's position among leaves (both orderings
// are derived from the same AggregateExprs tree, so this always matches
// by identity; it exists only to bridge the PartialDecomposable and
// Aggregation views of the same leaf instance).
func leafIndex(leaves []aggregation.Aggregation, decomposable aggregation.PartialDecomposable) int {
	for i, leaf := range leaves {
		if leaf == sql.Expression(decomposable) {
			return i
		}
	}
	return -1
}

func (f *FinalMergeAggregate) String() string {
	return treeString("FinalMergeAggregate("+exprsString(f.GroupingExprs)+"; "+exprsString(f.AggregateExprs)+")", f.Child)
}
