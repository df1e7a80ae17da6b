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

package plan

import (
	"fmt"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/types"
)

// JoinType enumerates §3.4's Join kinds.
type JoinType byte

const (
	JoinTypeInner JoinType = iota
	JoinTypeLeftOuter
	JoinTypeRightOuter
	JoinTypeFullOuter
)

func (t JoinType) String() string {
	switch t {
	case JoinTypeInner:
		return "InnerJoin"
	case JoinTypeLeftOuter:
		return "LeftOuterJoin"
	case JoinTypeRightOuter:
		return "RightOuterJoin"
	case JoinTypeFullOuter:
		return "FullOuterJoin"
	default:
		return "UnknownJoin"
	}
}

// Join is §3.4's Join(left, right, joinType, condition?): output =
// left.output ++ right.output, nullability adjusted for the outer side
// via types.NullableJoin. Condition is nil for a cartesian product.
type Join struct {
	BinaryNode
	Type      JoinType
	Condition sql.Expression
}

var _ sql.Node = (*Join)(nil)
var _ sql.Expressioner = (*Join)(nil)

func NewJoin(left, right sql.Node, joinType JoinType, condition sql.Expression) *Join {
	return &Join{BinaryNode{left, right}, joinType, condition}
}

func (j *Join) Resolved() bool {
	if !j.BinaryNode.Resolved() {
		return false
	}
	return j.Condition == nil || j.Condition.Resolved()
}

func (j *Join) Schema() sql.Schema {
	leftIsOuter := j.Type == JoinTypeRightOuter || j.Type == JoinTypeFullOuter
	rightIsOuter := j.Type == JoinTypeLeftOuter || j.Type == JoinTypeFullOuter

	left := j.Left.Schema()
	right := j.Right.Schema()
	out := make(sql.Schema, 0, len(left)+len(right))
	for _, c := range left {
		cp := *c
		cp.Nullable, _ = types.NullableJoin(c.Nullable, false, leftIsOuter, false)
		out = append(out, &cp)
	}
	for _, c := range right {
		cp := *c
		_, cp.Nullable = types.NullableJoin(false, c.Nullable, false, rightIsOuter)
		out = append(out, &cp)
	}
	return out
}

func (j *Join) Expressions() []sql.Expression {
	if j.Condition == nil {
		return nil
	}
	return []sql.Expression{j.Condition}
}

func (j *Join) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if j.Condition == nil {
		if len(exprs) != 0 {
			return nil, sql.ErrTreeShapeMismatch.New(j, 0, len(exprs))
		}
		return j, nil
	}
	if len(exprs) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(j, 1, len(exprs))
	}
	return NewJoin(j.Left, j.Right, j.Type, exprs[0]), nil
}

func (j *Join) WithChildren(children ...sql.Node) (sql.Node, error) {
	left, right, err := twoChildren(j, children)
	if err != nil {
		return nil, err
	}
	return NewJoin(left, right, j.Type, j.Condition), nil
}

func (j *Join) String() string {
	name := j.Type.String()
	if j.Condition != nil {
		name = fmt.Sprintf("%s(%s)", name, j.Condition)
	}
	return treeString(name, j.Left, j.Right)
}
