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

package expression

import (
	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/types"
)

// And implements three-valued AND (§4.9): x AND null is null unless x is
// already false, in which case the result is false regardless of the
// other operand. When Left evaluates to false, Right is not evaluated at
// all; otherwise both operands are evaluated.
type And struct {
	BinaryExpression
}

func NewAnd(left, right sql.Expression) *And { return &And{BinaryExpression{left, right}} }

func (a *And) Type() sql.Type { return types.Boolean }

func (a *And) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	l, err := a.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if l == false {
		return false, nil
	}
	r, err := a.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if r == false {
		return false, nil
	}
	if l == nil || r == nil {
		return nil, nil
	}
	return true, nil
}

func (a *And) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrTreeShapeMismatch.New(a, 2, len(children))
	}
	return NewAnd(children[0], children[1]), nil
}

func (a *And) String() string { return a.Left.String() + " AND " + a.Right.String() }

// Or is And's three-valued dual: x OR null is null unless x is already
// true, in which case the result is true.
type Or struct {
	BinaryExpression
}

func NewOr(left, right sql.Expression) *Or { return &Or{BinaryExpression{left, right}} }

func (o *Or) Type() sql.Type { return types.Boolean }

func (o *Or) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	l, err := o.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if l == true {
		return true, nil
	}
	r, err := o.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if r == true {
		return true, nil
	}
	if l == nil || r == nil {
		return nil, nil
	}
	return false, nil
}

func (o *Or) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrTreeShapeMismatch.New(o, 2, len(children))
	}
	return NewOr(children[0], children[1]), nil
}

func (o *Or) String() string { return o.Left.String() + " OR " + o.Right.String() }

// Not negates its child; Not(null) is null.
type Not struct {
	UnaryExpression
}

func NewNot(child sql.Expression) *Not { return &Not{UnaryExpression{child}} }

func (n *Not) Type() sql.Type   { return types.Boolean }
func (n *Not) IsNullable() bool { return n.Child.IsNullable() }

func (n *Not) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	v, err := n.Child.Eval(ctx, row)
	if err != nil || v == nil {
		return nil, err
	}
	b, ok := v.(bool)
	if !ok {
		return nil, sql.ErrUnsupportedOperation.New("NOT on non-boolean operand")
	}
	return !b, nil
}

func (n *Not) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(n, 1, len(children))
	}
	return NewNot(children[0]), nil
}

func (n *Not) String() string { return "NOT " + n.Child.String() }
