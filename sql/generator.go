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

package sql

import "io"

// RowGenerator is the per-row iterator produced by a Generator expression
// (§3.5, §9 "UDTF statefulness"): it yields zero or more output rows for
// one input row and must not rely on cross-row state.
type RowGenerator interface {
	// Next returns the next generated value, or io.EOF when exhausted.
	Next() (interface{}, error)
	Close() error
}

// Generator is implemented by expressions that expand one input row into
// a sequence of output rows (Generate's child expression, §3.5). Eval is
// unused for a Generator; EvalRow is called once per input row instead.
type Generator interface {
	Expression
	// MakeOutput returns the generator's produced attribute list
	// (§3.5 "generators expose a make_output()").
	MakeOutput() Schema
	// EvalRow returns the per-row generator for the given input row.
	EvalRow(ctx *Context, row Row) (RowGenerator, error)
}

// arrayGenerator is a reference RowGenerator over a fixed Go slice, used
// by generators whose output is computed eagerly (e.g. Explode over a
// literal array) rather than streamed lazily.
type arrayGenerator struct {
	values []interface{}
	pos    int
}

// NewArrayGenerator wraps a precomputed slice of values as a RowGenerator.
func NewArrayGenerator(values []interface{}) RowGenerator {
	return &arrayGenerator{values: values}
}

func (g *arrayGenerator) Next() (interface{}, error) {
	if g.pos >= len(g.values) {
		return nil, io.EOF
	}
	v := g.values[g.pos]
	g.pos++
	return v, nil
}

func (g *arrayGenerator) Close() error { return nil }
