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

// Cast converts its child's value to TargetType (§3.5, §4.9). Casts are
// pure: same input always produces the same output or the same error.
type Cast struct {
	UnaryExpression
	TargetType sql.Type
}

func NewCast(child sql.Expression, target sql.Type) *Cast {
	return &Cast{UnaryExpression{child}, target}
}

func (c *Cast) Type() sql.Type   { return c.TargetType }
func (c *Cast) IsNullable() bool { return c.Child.IsNullable() }

func (c *Cast) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	v, err := c.Child.Eval(ctx, row)
	if err != nil {
		return nil, err
	}
	return types.ConvertTo(v, c.TargetType)
}

func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrTreeShapeMismatch.New(c, 1, len(children))
	}
	return NewCast(children[0], c.TargetType), nil
}

func (c *Cast) String() string { return "CAST(" + c.Child.String() + " AS " + c.TargetType.String() + ")" }
