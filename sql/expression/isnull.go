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

// IsNull and IsNotNull are the only predicates that test nullness
// directly and always return a non-null boolean (§4.9).
type IsNull struct {
	UnaryExpression
}

func NewIsNull(child sql.Expression) *IsNull { return &IsNull{UnaryExpression{child}} }

func (i *IsNull) Type() sql.Type   { return types.Boolean }
func (i *IsNull) IsNullable() bool { return false }

func (i *IsNull) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	v, err := i.Child.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	return v == nil, nil
}

func (i *IsNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(i, 1, len(children))
	}
	return NewIsNull(children[0]), nil
}

func (i *IsNull) String() string { return i.Child.String() + " IS NULL" }

// IsNotNull is IsNull's negation.
type IsNotNull struct {
	UnaryExpression
}

func NewIsNotNull(child sql.Expression) *IsNotNull { return &IsNotNull{UnaryExpression{child}} }

func (i *IsNotNull) Type() sql.Type   { return types.Boolean }
func (i *IsNotNull) IsNullable() bool { return false }

func (i *IsNotNull) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	v, err := i.Child.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	return v != nil, nil
}

func (i *IsNotNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(i, 1, len(children))
	}
	return NewIsNotNull(children[0]), nil
}

func (i *IsNotNull) String() string { return i.Child.String() + " IS NOT NULL" }

// Coalesce returns the value of the first non-null argument, or null if
// every argument evaluates to null.
type Coalesce struct {
	Args []sql.Expression
	typ  sql.Type
}

func NewCoalesce(typ sql.Type, args ...sql.Expression) *Coalesce {
	return &Coalesce{Args: args, typ: typ}
}

func (c *Coalesce) Resolved() bool {
	for _, a := range c.Args {
		if !a.Resolved() {
			return false
		}
	}
	return true
}

func (c *Coalesce) Type() sql.Type { return c.typ }

func (c *Coalesce) IsNullable() bool {
	for _, a := range c.Args {
		if !a.IsNullable() {
			return false
		}
	}
	return true
}

func (c *Coalesce) Children() []sql.Expression { return c.Args }

func (c *Coalesce) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	for _, a := range c.Args {
		v, err := a.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func (c *Coalesce) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	cc := *c
	cc.Args = children
	return &cc, nil
}

func (c *Coalesce) String() string { return "COALESCE(" + argsString(c.Args) + ")" }

// If evaluates Cond, then returns Then's or Else's value accordingly; a
// null condition takes the Else branch, matching three-valued logic's
// "not true" reading of null (§4.9).
type If struct {
	Cond, Then, Else sql.Expression
}

func NewIf(cond, then, els sql.Expression) *If { return &If{cond, then, els} }

func (f *If) Resolved() bool {
	return f.Cond.Resolved() && f.Then.Resolved() && f.Else.Resolved()
}

func (f *If) Type() sql.Type { return f.Then.Type() }

func (f *If) IsNullable() bool { return f.Then.IsNullable() || f.Else.IsNullable() }

func (f *If) Children() []sql.Expression { return []sql.Expression{f.Cond, f.Then, f.Else} }

func (f *If) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	c, err := f.Cond.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	if b, ok := c.(bool); ok && b {
		return f.Then.Eval(ctx, row)
	}
	return f.Else.Eval(ctx, row)
}

func (f *If) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 3 {
		return nil, sql.ErrTreeShapeMismatch.New(f, 3, len(children))
	}
	return NewIf(children[0], children[1], children[2]), nil
}

func (f *If) String() string {
	return "IF(" + f.Cond.String() + ", " + f.Then.String() + ", " + f.Else.String() + ")"
}
