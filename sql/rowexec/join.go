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
	"reflect"

	"github.com/mitchellh/hashstructure"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/types"
)

// HashEquiJoin is the EquiJoin strategy's (§4.7 strategy 4) physical
// operator: both sides are required Clustered on their join keys so rows
// sharing a key land in the same partition, then the right side is
// materialized into a hash table keyed by the evaluated right keys and
// the left side is streamed, probing it. Residual is any leftover
// predicate the equi-keys didn't capture (evaluated after a hash match,
// guarded the way the logical Filter wrapping the strategy's output
// would have been); it may be nil.
type HashEquiJoin struct {
	binaryPhysical
	Type      plan.JoinType
	LeftKeys  []sql.Expression
	RightKeys []sql.Expression
	Residual  sql.Expression
}

var _ Physical = (*HashEquiJoin)(nil)
var _ sql.Expressioner = (*HashEquiJoin)(nil)

func NewHashEquiJoin(left, right sql.Node, joinType plan.JoinType, leftKeys, rightKeys []sql.Expression, residual sql.Expression) *HashEquiJoin {
	return &HashEquiJoin{binaryPhysical{left, right}, joinType, leftKeys, rightKeys, residual}
}

func (j *HashEquiJoin) Schema() sql.Schema { return joinSchema(j.Type, j.Left, j.Right) }

func (j *HashEquiJoin) Expressions() []sql.Expression {
	exprs := append(append([]sql.Expression{}, j.LeftKeys...), j.RightKeys...)
	if j.Residual != nil {
		exprs = append(exprs, j.Residual)
	}
	return exprs
}

func (j *HashEquiJoin) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	want := len(j.LeftKeys) + len(j.RightKeys)
	if j.Residual != nil {
		want++
	}
	if len(exprs) != want {
		return nil, sql.ErrTreeShapeMismatch.New(j, want, len(exprs))
	}
	leftKeys := exprs[:len(j.LeftKeys)]
	rightKeys := exprs[len(j.LeftKeys) : len(j.LeftKeys)+len(j.RightKeys)]
	var residual sql.Expression
	if j.Residual != nil {
		residual = exprs[len(exprs)-1]
	}
	return NewHashEquiJoin(j.Left, j.Right, j.Type, leftKeys, rightKeys, residual), nil
}

func (j *HashEquiJoin) WithChildren(children ...sql.Node) (sql.Node, error) {
	left, right, err := twoChildren(j, children)
	if err != nil {
		return nil, err
	}
	return NewHashEquiJoin(left, right, j.Type, j.LeftKeys, j.RightKeys, j.Residual), nil
}

func (j *HashEquiJoin) RequiredChildDistribution() []Distribution {
	return []Distribution{ClusteredDistribution(j.LeftKeys...), ClusteredDistribution(j.RightKeys...)}
}

func (j *HashEquiJoin) OutputPartitioning() Distribution { return ClusteredDistribution(j.LeftKeys...) }

func joinSchema(joinType plan.JoinType, left, right sql.Node) sql.Schema {
	leftIsOuter := joinType == plan.JoinTypeRightOuter || joinType == plan.JoinTypeFullOuter
	rightIsOuter := joinType == plan.JoinTypeLeftOuter || joinType == plan.JoinTypeFullOuter

	out := make(sql.Schema, 0, len(left.Schema())+len(right.Schema()))
	for _, c := range left.Schema() {
		cp := *c
		cp.Nullable, _ = types.NullableJoin(c.Nullable, false, leftIsOuter, false)
		out = append(out, &cp)
	}
	for _, c := range right.Schema() {
		cp := *c
		_, cp.Nullable = types.NullableJoin(false, c.Nullable, false, rightIsOuter)
		out = append(out, &cp)
	}
	return out
}

func evalKeys(ctx *sql.Context, keys []sql.Expression, row sql.Row) ([]interface{}, bool, error) {
	values := make([]interface{}, len(keys))
	for i, k := range keys {
		v, err := k.Eval(ctx, row)
		if err != nil {
			return nil, false, err
		}
		if v == nil {
			// Null join keys never match (§4.9 three-valued-logic
			// invariant): filtered before the join rather than probed.
			return nil, false, nil
		}
		values[i] = v
	}
	return values, true, nil
}

type hashBucketEntry struct {
	keys    []interface{}
	indices []int
}

func (j *HashEquiJoin) Execute(ctx *sql.Context) (sql.RowIter, error) {
	rightIter, err := executeChild(ctx, j.Right)
	if err != nil {
		return nil, err
	}
	rightRows, err := drain(ctx, rightIter)
	if err != nil {
		return nil, err
	}

	table := map[uint64][]*hashBucketEntry{}
	rightMatched := make([]bool, len(rightRows))
	for idx, row := range rightRows {
		keys, ok, err := evalKeys(ctx, j.RightKeys, row)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		h, err := hashstructure.Hash(keys, nil)
		if err != nil {
			return nil, err
		}
		bucket := table[h]
		var entry *hashBucketEntry
		for _, e := range bucket {
			if keysEqual(e.keys, keys) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &hashBucketEntry{keys: keys}
			table[h] = append(bucket, entry)
		}
		entry.indices = append(entry.indices, idx)
	}

	leftIter, err := executeChild(ctx, j.Left)
	if err != nil {
		return nil, err
	}

	leftWidth := len(j.Left.Schema())
	rightWidth := len(j.Right.Schema())
	leftIsOuter := j.Type == plan.JoinTypeLeftOuter || j.Type == plan.JoinTypeFullOuter
	rightIsOuter := j.Type == plan.JoinTypeRightOuter || j.Type == plan.JoinTypeFullOuter

	return &hashEquiJoinIter{
		ctx:          ctx,
		left:         leftIter,
		table:        table,
		rightRows:    rightRows,
		rightMatched: rightMatched,
		j:            j,
		leftWidth:    leftWidth,
		rightWidth:   rightWidth,
		leftIsOuter:  leftIsOuter,
		rightIsOuter: rightIsOuter,
	}, nil
}

func keysEqual(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

type hashEquiJoinIter struct {
	ctx          *sql.Context
	left         sql.RowIter
	table        map[uint64][]*hashBucketEntry
	rightRows    []sql.Row
	rightMatched []bool
	j            *HashEquiJoin
	leftWidth    int
	rightWidth   int

	leftIsOuter  bool
	rightIsOuter bool

	pending    []sql.Row
	pendingPos int
	leftDone   bool
}

func (i *hashEquiJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		if i.pendingPos < len(i.pending) {
			row := i.pending[i.pendingPos]
			i.pendingPos++
			return row, nil
		}
		if i.leftDone {
			return i.drainUnmatchedRight(ctx)
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

func (i *hashEquiJoinIter) probe(leftRow sql.Row) ([]sql.Row, error) {
	keys, ok, err := evalKeys(i.ctx, i.j.LeftKeys, leftRow)
	if err != nil || !ok {
		return nil, err
	}
	h, err := hashstructure.Hash(keys, nil)
	if err != nil {
		return nil, err
	}
	var out []sql.Row
	for _, entry := range i.table[h] {
		if !keysEqual(entry.keys, keys) {
			continue
		}
		for _, idx := range entry.indices {
			rightRow := i.rightRows[idx]
			joined := joinRow(leftRow, rightRow, i.leftWidth, i.rightWidth)
			if i.j.Residual != nil {
				v, err := i.j.Residual.Eval(i.ctx, joined)
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
	}
	return out, nil
}

func (i *hashEquiJoinIter) drainUnmatchedRight(ctx *sql.Context) (sql.Row, error) {
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

func joinRow(left, right sql.Row, leftWidth, rightWidth int) sql.Row {
	out := make(sql.Row, 0, leftWidth+rightWidth)
	if left != nil {
		out = append(out, left...)
	} else {
		for k := 0; k < leftWidth; k++ {
			out = append(out, nil)
		}
	}
	if right != nil {
		out = append(out, right...)
	} else {
		for k := 0; k < rightWidth; k++ {
			out = append(out, nil)
		}
	}
	return out
}

func (i *hashEquiJoinIter) Close(ctx *sql.Context) error {
	return i.left.Close(ctx)
}

func (j *HashEquiJoin) String() string {
	return treeString(fmt.Sprintf("HashEquiJoin(%s, %s = %s)", j.Type, exprsString(j.LeftKeys), exprsString(j.RightKeys)), j.Left, j.Right)
}
