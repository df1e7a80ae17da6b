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

// Package aggregation implements the aggregate expressions (§3.5, §4.8):
// Count, Sum, Average and CountDistinct. Each exposes NewBuffer, the
// `new_instance()` the spec names for per-group mutable state; aggregates
// whose state can be split into a combinable partial stage plus a final
// merge additionally implement PartialDecomposable, which the physical
// planner's PartialAggregation strategy (§4.7 strategy 5) consults.
package aggregation

import (
	"github.com/relforge/relforge/sql"
)

// Buffer is the per-group mutable state an Aggregation drives by feeding
// it one input row at a time (the "new_instance()" of §3.5); Eval reads
// out the aggregate's current value without resetting the state.
type Buffer interface {
	Update(ctx *sql.Context, row sql.Row) error
	Eval(ctx *sql.Context) (interface{}, error)
}

// Aggregation is the capability every aggregate expression adds on top of
// sql.Expression: the ability to mint a fresh per-group Buffer. Eval on
// the Aggregation itself is defined as the single-group convenience path
// (one Update then Eval), used when an aggregate is evaluated outside the
// physical Aggregate operator's buffer machinery.
type Aggregation interface {
	sql.AggregateExpression
	NewBuffer() (Buffer, error)
}

// PartialDecomposable aggregations support the two-level physical
// aggregate (§4.7 strategy 5, §4.8): a partial stage runs per input
// partition, the final stage merges partial outputs redistributed by
// grouping key. CountDistinct does not implement this interface: merging
// distinct-value sets across partitions correctly requires carrying the
// whole set forward, which §4.8 does not decompose into a fixed-width
// partial tuple, so it always runs as a single all-tuples-clustered
// aggregate.
type PartialDecomposable interface {
	Aggregation
	// NewPartialBuffer returns the buffer driven by the partial stage;
	// its Eval yields the partial-state row, not the final value.
	NewPartialBuffer() (Buffer, error)
	// PartialSchema is the partial stage's output schema.
	PartialSchema() sql.Schema
	// Merge folds one partition's partial-stage output into buf, the
	// final stage's buffer.
	Merge(ctx *sql.Context, buf Buffer, partial sql.Row) error
}

// partialRowBuffer adapts a single-column final buffer into a partial
// buffer whose Eval produces a one-field sql.Row, matching the row shape
// every PartialDecomposable.Merge expects regardless of how many columns
// its PartialSchema declares (Count and Sum have one; Average, composed
// below, has two and so implements its own partial buffer instead).
type partialRowBuffer struct {
	inner Buffer
}

func (p *partialRowBuffer) Update(ctx *sql.Context, row sql.Row) error {
	return p.inner.Update(ctx, row)
}

func (p *partialRowBuffer) Eval(ctx *sql.Context) (interface{}, error) {
	v, err := p.inner.Eval(ctx)
	if err != nil {
		return nil, err
	}
	return sql.NewRow(v), nil
}

// unaryAggregate factors the child-expression plumbing shared by Count,
// Sum and Average (CountDistinct additionally tracks a distinct-value
// set, so it does not embed this).
type unaryAggregate struct {
	Child sql.Expression
}

func (a unaryAggregate) Resolved() bool {
	return a.Child == nil || a.Child.Resolved()
}

func (a unaryAggregate) Children() []sql.Expression {
	if a.Child == nil {
		return nil
	}
	return []sql.Expression{a.Child}
}

func (a unaryAggregate) IsAggregate() bool { return true }
