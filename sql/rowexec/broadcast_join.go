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
	"io"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/plan"
)

// BroadcastNestedLoopJoin is the BroadcastNestedLoopJoin strategy's
// (§4.7 strategy 6) physical operator: used for any Join whose condition
// has no equi-predicate to drive a hash join. Right is materialized in
// full (broadcast) and probed once per streamed left row; Condition may
// be nil, in which case every left/right pair matches (the CartesianProduct
// strategy, §4.7 strategy 7, reuses this same operator with a nil
// condition rather than duplicating the nested-loop machinery).
//
// Invariant: full-outer produces exactly one row for each unmatched
// streamed (left) tuple plus one row for each unmatched broadcast
// (right) tuple.
type BroadcastNestedLoopJoin struct {
	binaryPhysical
	Type      plan.JoinType
	Condition sql.Expression
}

var _ Physical = (*BroadcastNestedLoopJoin)(nil)
var _ sql.Expressioner = (*BroadcastNestedLoopJoin)(nil)

func NewBroadcastNestedLoopJoin(left, right sql.Node, joinType plan.JoinType, condition sql.Expression) *BroadcastNestedLoopJoin {
	return &BroadcastNestedLoopJoin{binaryPhysical{left, right}, joinType, condition}
}

// NewCartesianProduct builds the degenerate nested-loop join with no
// condition, for the CartesianProduct strategy.
func NewCartesianProduct(left, right sql.Node) *BroadcastNestedLoopJoin {
	return NewBroadcastNestedLoopJoin(left, right, plan.JoinTypeInner, nil)
}

func (j *BroadcastNestedLoopJoin) Schema() sql.Schema { return joinSchema(j.Type, j.Left, j.Right) }

func (j *BroadcastNestedLoopJoin) Expressions() []sql.Expression {
	if j.Condition == nil {
		return nil
	}
	return []sql.Expression{j.Condition}
}

func (j *BroadcastNestedLoopJoin) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if j.Condition == nil {
		if len(exprs) != 0 {
			return nil, sql.ErrTreeShapeMismatch.New(j, 0, len(exprs))
		}
		return j, nil
	}
	if len(exprs) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(j, 1, len(exprs))
	}
	return NewBroadcastNestedLoopJoin(j.Left, j.Right, j.Type, exprs[0]), nil
}

func (j *BroadcastNestedLoopJoin) WithChildren(children ...sql.Node) (sql.Node, error) {
	left, right, err := twoChildren(j, children)
	if err != nil {
		return nil, err
	}
	return NewBroadcastNestedLoopJoin(left, right, j.Type, j.Condition), nil
}

func (j *BroadcastNestedLoopJoin) RequiredChildDistribution() []Distribution {
	return []Distribution{UnspecifiedDistribution, AllTuplesDistribution}
}

func (j *BroadcastNestedLoopJoin) OutputPartitioning() Distribution {
	return childPartitioning(j.Left)
}

func (j *BroadcastNestedLoopJoin) Execute(ctx *sql.Context) (sql.RowIter, error) {
	rightIter, err := executeChild(ctx, j.Right)
	if err != nil {
		return nil, err
	}
	rightRows, err := drain(ctx, rightIter)
	if err != nil {
		return nil, err
	}

	leftIter, err := executeChild(ctx, j.Left)
	if err != nil {
		return nil, err
	}

	return &broadcastJoinIter{
		ctx:          ctx,
		left:         leftIter,
		rightRows:    rightRows,
		rightMatched: make([]bool, len(rightRows)),
		j:            j,
		leftWidth:    len(j.Left.Schema()),
		rightWidth:   len(j.Right.Schema()),
		leftIsOuter:  j.Type == plan.JoinTypeLeftOuter || j.Type == plan.JoinTypeFullOuter,
		rightIsOuter: j.Type == plan.JoinTypeRightOuter || j.Type == plan.JoinTypeFullOuter,
	}, nil
}

type broadcastJoinIter struct {
	ctx          *sql.Context
	left         sql.RowIter
	rightRows    []sql.Row
	rightMatched []bool
	j            *BroadcastNestedLoopJoin
	leftWidth    int
	rightWidth   int

	leftIsOuter  bool
	rightIsOuter bool

	pending    []sql.Row
	pendingPos int
	leftDone   bool
}

func (i *broadcastJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		if i.pendingPos < len(i.pending) {
			row := i.pending[i.pendingPos]
			i.pendingPos++
			return row, nil
		}
		if i.leftDone {
			return i.drainUnmatchedRight()
		}

		leftRow, err := i.left.Next(ctx)
		if err == io.EOF {
			i.leftDone = true
			continue
		}
		if err != nil {
			return nil, err
		}

		matches, err := i.probe(leftRow)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			if i.leftIsOuter {
				i.pending = []sql.Row{joinRow(leftRow, nil, i.leftWidth, i.rightWidth)}
				i.pendingPos = 0
				continue
			}
			continue
		}
		i.pending = matches
		i.pendingPos = 0
	}
}

func (i *broadcastJoinIter) probe(leftRow sql.Row) ([]sql.Row, error) {
	var out []sql.Row
	for idx, rightRow := range i.rightRows {
		joined := joinRow(leftRow, rightRow, i.leftWidth, i.rightWidth)
		if i.j.Condition != nil {
			v, err := i.j.Condition.Eval(i.ctx, joined)
			if err != nil {
				return nil, err
			}
			if b, ok := v.(bool); !ok || !b {
				continue
			}
		}
		out = append(out, joined)
		if i.rightIsOuter {
			i.rightMatched[idx] = true
		}
	}
	return out, nil
}

func (i *broadcastJoinIter) drainUnmatchedRight() (sql.Row, error) {
	if !i.rightIsOuter {
		return nil, io.EOF
	}
	for idx, matched := range i.rightMatched {
		if matched {
			continue
		}
		i.rightMatched[idx] = true
		return joinRow(nil, i.rightRows[idx], i.leftWidth, i.rightWidth), nil
	}
	return nil, io.EOF
}

func (i *broadcastJoinIter) Close(ctx *sql.Context) error {
	return i.left.Close(ctx)
}

func (j *BroadcastNestedLoopJoin) String() string {
	if j.Condition == nil {
		return treeString("CartesianProduct", j.Left, j.Right)
	}
	return treeString(fmt.Sprintf("BroadcastNestedLoopJoin(%s, %s)", j.Type, j.Condition), j.Left, j.Right)
}
