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
	"math"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/types"
)

// Numeric dispatch (§9 design note): the evaluator's type-switch over
// operand types is explicit, monomorphized per machine type, rather than
// routed through a generic numeric interface. n1/i2/f2 cover the three
// shapes every arithmetic expression below needs: unary over any numeric
// kind, binary integral, binary fractional.

// n1 applies the matching unary kernel for v's dynamic machine type.
func n1(v interface{}, i func(int64) int64, f func(float64) float64) interface{} {
	switch n := v.(type) {
	case int8:
		return int64(i(int64(n)))
	case int16:
		return int64(i(int64(n)))
	case int32:
		return int64(i(int64(n)))
	case int64:
		return i(n)
	case float32:
		return float64(f(float64(n)))
	case float64:
		return f(n)
	default:
		return nil
	}
}

// i2 applies the integral binary kernel; both operands are coerced to
// int64 first (analysis has already unified their sql.Type via widen).
func i2(l, r interface{}, op func(a, b int64) (int64, error)) (interface{}, error) {
	a, aok := asInt64(l)
	b, bok := asInt64(r)
	if !aok || !bok {
		return nil, sql.ErrUnsupportedOperation.New("integral arithmetic on non-integer operand")
	}
	res, err := op(a, b)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// f2 applies the fractional binary kernel; both operands are coerced to
// float64 first.
func f2(l, r interface{}, op func(a, b float64) float64) (interface{}, error) {
	a, aok := asFloat64(l)
	b, bok := asFloat64(r)
	if !aok || !bok {
		return nil, sql.ErrUnsupportedOperation.New("fractional arithmetic on non-numeric operand")
	}
	return op(a, b), nil
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// isFractional reports whether t's evaluator kernel is the fractional one
// (Float/Double/Decimal); Divide/Remainder dispatch on this (§4.9).
func isFractional(t sql.Type) bool {
	k, ok := types.KindOf(t)
	if !ok {
		return false
	}
	return k == types.KindFloat || k == types.KindDouble || k == types.KindDecimal
}

// arithmetic factors the shared plumbing (two children, widened type,
// nullable-if-either-nullable) for Plus/Minus/Multiply/Divide/Remainder.
type arithmetic struct {
	BinaryExpression
	name    string
	divZero bool
	eval    func(ctx *sql.Context, typ sql.Type, l, r interface{}) (interface{}, error)
}

// IsNullable is §4.3's conservative propagation rule: any nullable
// operand, or an operator that can divide by zero, makes the result
// nullable -- Divide/Remainder set divZero regardless of whether a given
// instance's operands are themselves nullable.
func (a *arithmetic) IsNullable() bool {
	return a.divZero || a.BinaryExpression.IsNullable()
}

// Type is computed from the current operands rather than cached at
// construction, so that WithChildren (used by the type-coercion analyzer
// rule to graft a Cast onto the narrower operand) yields a node whose
// Type() reflects the widened result without a second rebuild step. Before
// coercion has run, Left and Right may still disagree; Widen falling back
// to Left's type then is only ever an intermediate, pre-analysis state.
func (a *arithmetic) Type() sql.Type {
	t, err := types.Widen(a.Left.Type(), a.Right.Type())
	if err != nil {
		return a.Left.Type()
	}
	return t
}

func (a *arithmetic) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	l, err := a.Left.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	r, err := a.Right.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if l == nil || r == nil {
		return nil, nil
	}
	typ := a.Type()
	res, err := a.eval(ctx, typ, l, r)
	if err != nil || res == nil {
		return res, err
	}
	if isFractional(typ) {
		return res, nil
	}
	// Narrow the canonical int64 kernel result back to the widened type's
	// machine representation (Byte/Short/Integer/Long).
	return types.ConvertTo(res, typ)
}

func (a *arithmetic) String() string {
	return a.Left.String() + " " + a.name + " " + a.Right.String()
}

func (a *arithmetic) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrTreeShapeMismatch.New(a, 2, len(children))
	}
	aa := *a
	aa.Left, aa.Right = children[0], children[1]
	return &aa, nil
}

func newArithmetic(name string, divZero bool, left, right sql.Expression, eval func(ctx *sql.Context, typ sql.Type, l, r interface{}) (interface{}, error)) *arithmetic {
	return &arithmetic{BinaryExpression{left, right}, name, divZero, eval}
}

// NewPlus returns left + right, selecting the integral or fractional
// kernel by the widened type of both operands.
func NewPlus(left, right sql.Expression) sql.Expression {
	return newArithmetic("+", false, left, right, func(ctx *sql.Context, typ sql.Type, l, r interface{}) (interface{}, error) {
		if isFractional(typ) {
			return f2(l, r, func(a, b float64) float64 { return a + b })
		}
		return i2(l, r, func(a, b int64) (int64, error) { return a + b, nil })
	})
}

// NewMinus returns left - right.
func NewMinus(left, right sql.Expression) sql.Expression {
	return newArithmetic("-", false, left, right, func(ctx *sql.Context, typ sql.Type, l, r interface{}) (interface{}, error) {
		if isFractional(typ) {
			return f2(l, r, func(a, b float64) float64 { return a - b })
		}
		return i2(l, r, func(a, b int64) (int64, error) { return a - b, nil })
	})
}

// NewMult returns left * right.
func NewMult(left, right sql.Expression) sql.Expression {
	return newArithmetic("*", false, left, right, func(ctx *sql.Context, typ sql.Type, l, r interface{}) (interface{}, error) {
		if isFractional(typ) {
			return f2(l, r, func(a, b float64) float64 { return a * b })
		}
		return i2(l, r, func(a, b int64) (int64, error) { return a * b, nil })
	})
}

// NewDivide returns left / right. Fractional division by zero yields
// +/-Inf per IEEE (§4.9); integral division by zero fails with
// ErrDivisionByZero. Either way §4.3 marks the expression conservatively
// nullable, independent of whether Left/Right are themselves nullable.
func NewDivide(left, right sql.Expression) sql.Expression {
	return newArithmetic("/", true, left, right, func(ctx *sql.Context, typ sql.Type, l, r interface{}) (interface{}, error) {
		if isFractional(typ) {
			return f2(l, r, func(a, b float64) float64 { return a / b })
		}
		return i2(l, r, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, sql.ErrDivisionByZero.New()
			}
			return a / b, nil
		})
	})
}

// NewMod (Remainder) returns left % right, with the same fractional/
// integral split, divide-by-zero rule and conservative nullability as
// NewDivide (§4.9).
func NewMod(left, right sql.Expression) sql.Expression {
	return newArithmetic("%", true, left, right, func(ctx *sql.Context, typ sql.Type, l, r interface{}) (interface{}, error) {
		if isFractional(typ) {
			return f2(l, r, func(a, b float64) float64 {
				if b == 0 {
					return inf(a)
				}
				return math.Mod(a, b)
			})
		}
		return i2(l, r, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, sql.ErrDivisionByZero.New()
			}
			return a % b, nil
		})
	})
}

func inf(sign float64) float64 {
	if sign < 0 {
		return negInf
	}
	return posInf
}

var (
	posInf = func() float64 { var z float64; return 1 / z }()
	negInf = func() float64 { var z float64; return -1 / z }()
)

// UnaryMinus returns -child (§3.5 Unary arithmetic).
type UnaryMinus struct {
	UnaryExpression
}

func NewUnaryMinus(child sql.Expression) *UnaryMinus {
	return &UnaryMinus{UnaryExpression{child}}
}

func (u *UnaryMinus) Type() sql.Type   { return u.Child.Type() }
func (u *UnaryMinus) IsNullable() bool { return u.Child.IsNullable() }

func (u *UnaryMinus) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	v, err := u.Child.Eval(ctx, row)
	if err != nil || v == nil {
		return nil, err
	}
	res := n1(v, func(a int64) int64 { return -a }, func(a float64) float64 { return -a })
	if res == nil {
		return nil, sql.ErrUnsupportedOperation.New("unary minus on non-numeric operand")
	}
	return res, nil
}

func (u *UnaryMinus) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(u, 1, len(children))
	}
	return NewUnaryMinus(children[0]), nil
}

func (u *UnaryMinus) String() string { return "-" + u.Child.String() }
