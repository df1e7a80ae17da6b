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

// comparison factors the shared two-operand, always-nullable,
// null-if-either-null plumbing of every ordering/equality predicate
// (§4.9: "equality comparisons return null when either operand is null").
type comparison struct {
	BinaryExpression
	name string
	cmp  func(l, r interface{}) (bool, error)
}

func (c *comparison) Type() sql.Type   { return types.Boolean }
func (c *comparison) IsNullable() bool { return true }

// IsEquality reports whether this comparison is "=", the only kind an
// equi-join strategy can drive a hash join from. Satisfies
// EqualityComparison without exposing comparison's own (unexported)
// type to callers outside this package.
func (c *comparison) IsEquality() bool { return c.name == "=" }

// EqualityComparison is implemented by every comparison expression,
// letting a caller holding only an sql.Expression test whether it is an
// equality predicate without naming comparison's unexported type.
type EqualityComparison interface {
	sql.Expression
	BinaryOperand
	IsEquality() bool
}

func (c *comparison) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	l, err := c.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	r, err := c.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if l == nil || r == nil {
		return nil, nil
	}
	res, err := c.cmp(l, r)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *comparison) String() string {
	return c.Left.String() + " " + c.name + " " + c.Right.String()
}

func (c *comparison) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrTreeShapeMismatch.New(c, 2, len(children))
	}
	cc := *c
	cc.Left, cc.Right = children[0], children[1]
	return &cc, nil
}

func newComparison(name string, left, right sql.Expression, cmp func(l, r interface{}) (bool, error)) *comparison {
	return &comparison{BinaryExpression{left, right}, name, cmp}
}

// compareNumeric orders two already-widened numeric values, returning -1,
// 0 or 1, by promoting both through float64 -- safe since analysis has
// already unified their sql.Type, so no precision-losing cross-kind
// comparison ever reaches here.
func compareNumeric(l, r interface{}) (int, bool) {
	lf, lok := asFloat64(l)
	rf, rok := asFloat64(r)
	if !lok || !rok {
		return 0, false
	}
	switch {
	case lf < rf:
		return -1, true
	case lf > rf:
		return 1, true
	default:
		return 0, true
	}
}

func compareValues(l, r interface{}) (int, error) {
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			switch {
			case ls < rs:
				return -1, nil
			case ls > rs:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if lb, ok := l.(bool); ok {
		if rb, ok := r.(bool); ok {
			switch {
			case lb == rb:
				return 0, nil
			case !lb && rb:
				return -1, nil
			default:
				return 1, nil
			}
		}
	}
	if n, ok := compareNumeric(l, r); ok {
		return n, nil
	}
	return 0, sql.ErrUnsupportedOperation.New("comparison between incomparable operands")
}

// NewEquals returns left = right (§4.9: null = null is never true).
func NewEquals(left, right sql.Expression) sql.Expression {
	return newComparison("=", left, right, func(l, r interface{}) (bool, error) {
		n, err := compareValues(l, r)
		return n == 0, err
	})
}

// NewNotEquals returns left <> right.
func NewNotEquals(left, right sql.Expression) sql.Expression {
	return newComparison("<>", left, right, func(l, r interface{}) (bool, error) {
		n, err := compareValues(l, r)
		return n != 0, err
	})
}

// NewLessThan returns left < right.
func NewLessThan(left, right sql.Expression) sql.Expression {
	return newComparison("<", left, right, func(l, r interface{}) (bool, error) {
		n, err := compareValues(l, r)
		return n < 0, err
	})
}

// NewLessThanOrEqual returns left <= right.
func NewLessThanOrEqual(left, right sql.Expression) sql.Expression {
	return newComparison("<=", left, right, func(l, r interface{}) (bool, error) {
		n, err := compareValues(l, r)
		return n <= 0, err
	})
}

// NewGreaterThan returns left > right.
func NewGreaterThan(left, right sql.Expression) sql.Expression {
	return newComparison(">", left, right, func(l, r interface{}) (bool, error) {
		n, err := compareValues(l, r)
		return n > 0, err
	})
}

// NewGreaterThanOrEqual returns left >= right.
func NewGreaterThanOrEqual(left, right sql.Expression) sql.Expression {
	return newComparison(">=", left, right, func(l, r interface{}) (bool, error) {
		n, err := compareValues(l, r)
		return n >= 0, err
	})
}
