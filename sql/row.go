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

// Row is an ordered sequence of typed cells. It is the unit of data the
// evaluator (C9) and every physical operator consume and produce.
type Row []interface{}

// NewRow creates a Row from a variadic list of values.
func NewRow(values ...interface{}) Row {
	return append(Row{}, values...)
}

// Copy returns a shallow copy of the row, safe to mutate independently of
// the original (per §5, aggregate state owns its own buffer row).
func (r Row) Copy() Row {
	o := make(Row, len(r))
	copy(o, r)
	return o
}

// RowIter is a per-partition, single-reader iterator of rows, the only
// shape a physical operator's Execute produces (§5).
type RowIter interface {
	// Next returns the next row, or io.EOF when exhausted.
	Next(ctx *Context) (Row, error)
	Close(ctx *Context) error
}

type sliceRowIter struct {
	rows []Row
	pos  int
}

// RowsToRowIter adapts a fixed slice of rows into a RowIter, used by leaf
// physical operators (table scans over a materialized relation) and by
// tests driving an operator without a full engine.
func RowsToRowIter(rows ...Row) RowIter {
	return &sliceRowIter{rows: rows}
}

func (i *sliceRowIter) Next(ctx *Context) (Row, error) {
	if i.pos >= len(i.rows) {
		return nil, io.EOF
	}
	r := i.rows[i.pos]
	i.pos++
	return r, nil
}

func (i *sliceRowIter) Close(ctx *Context) error { return nil }
