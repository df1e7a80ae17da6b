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
	"io"

	"github.com/relforge/relforge/sql"
)

// drain materializes every row an iterator produces, closing it
// afterward regardless of error. Used by operators that need their whole
// input before producing any output (Sort, the non-decomposable
// Aggregate, the broadcast side of a nested-loop join).
func drain(ctx *sql.Context, iter sql.RowIter) ([]sql.Row, error) {
	defer iter.Close(ctx)
	var rows []sql.Row
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// filterRowIter wraps a child iterator, skipping rows pred rejects.
type filterRowIter struct {
	child sql.RowIter
	pred  func(ctx *sql.Context, row sql.Row) (bool, error)
}

func (i *filterRowIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		row, err := i.child.Next(ctx)
		if err != nil {
			return nil, err
		}
		ok, err := i.pred(ctx, row)
		if err != nil {
			return nil, err
		}
		if ok {
			return row, nil
		}
	}
}

func (i *filterRowIter) Close(ctx *sql.Context) error { return i.child.Close(ctx) }

// mapRowIter wraps a child iterator, transforming each row with f.
type mapRowIter struct {
	child sql.RowIter
	f     func(ctx *sql.Context, row sql.Row) (sql.Row, error)
}

func (i *mapRowIter) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := i.child.Next(ctx)
	if err != nil {
		return nil, err
	}
	return i.f(ctx, row)
}

func (i *mapRowIter) Close(ctx *sql.Context) error { return i.child.Close(ctx) }

// limitRowIter wraps a child iterator, yielding at most n rows.
type limitRowIter struct {
	child   sql.RowIter
	remain  int64
}

func (i *limitRowIter) Next(ctx *sql.Context) (sql.Row, error) {
	if i.remain <= 0 {
		return nil, io.EOF
	}
	row, err := i.child.Next(ctx)
	if err != nil {
		return nil, err
	}
	i.remain--
	return row, nil
}

func (i *limitRowIter) Close(ctx *sql.Context) error { return i.child.Close(ctx) }

// concatRowIter chains a sequence of iterators, the shape a TableScan
// uses to stitch a Tabler's partitions into one RowIter and Union uses to
// concatenate its branches (§4.7's reference execution substrate has no
// real parallelism, so concatenation is a faithful single-process
// implementation of "one partition after another").
type concatRowIter struct {
	iters []sql.RowIter
	pos   int
}

func (i *concatRowIter) Next(ctx *sql.Context) (sql.Row, error) {
	for i.pos < len(i.iters) {
		row, err := i.iters[i.pos].Next(ctx)
		if err == io.EOF {
			i.pos++
			continue
		}
		return row, err
	}
	return nil, io.EOF
}

func (i *concatRowIter) Close(ctx *sql.Context) error {
	var firstErr error
	for _, it := range i.iters {
		if err := it.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
