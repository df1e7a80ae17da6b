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
	"fmt"

	"github.com/relforge/relforge/sql"
)

// UnresolvedAttribute is a qname the parser collaborator produced that
// the analyzer's "resolve references" batch (§4.5 step 3) has not yet
// matched against a child output. Qualifier is the optional "alias."
// prefix; Name is the bare column name.
type UnresolvedAttribute struct {
	noChildren
	Qualifier string
	Name_     string
}

func NewUnresolvedAttribute(qualifier, name string) *UnresolvedAttribute {
	return &UnresolvedAttribute{Qualifier: qualifier, Name_: name}
}

func (u *UnresolvedAttribute) Resolved() bool   { return false }
func (u *UnresolvedAttribute) IsNullable() bool { return true }

func (u *UnresolvedAttribute) Type() sql.Type {
	panic(fmt.Sprintf("UnresolvedType: %s", u.String()))
}

func (u *UnresolvedAttribute) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return nil, sql.ErrUnresolvedAttribute.New(u.String())
}

func (u *UnresolvedAttribute) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrTreeShapeMismatch.New(u, 0, len(children))
	}
	return u, nil
}

func (u *UnresolvedAttribute) String() string {
	if u.Qualifier != "" {
		return u.Qualifier + "." + u.Name_
	}
	return u.Name_
}

// UnresolvedFunction is a call by name the analyzer's "resolve functions"
// batch (§4.5 step 5) consults the function registry collaborator to
// replace with a typed expression.
type UnresolvedFunction struct {
	Name string
	Args []sql.Expression
}

func NewUnresolvedFunction(name string, args ...sql.Expression) *UnresolvedFunction {
	return &UnresolvedFunction{Name: name, Args: args}
}

func (u *UnresolvedFunction) Resolved() bool            { return false }
func (u *UnresolvedFunction) IsNullable() bool          { return true }
func (u *UnresolvedFunction) Children() []sql.Expression { return u.Args }

func (u *UnresolvedFunction) Type() sql.Type {
	panic(fmt.Sprintf("UnresolvedType: %s", u.String()))
}

func (u *UnresolvedFunction) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return nil, sql.ErrFunctionNotFound.New(u.Name)
}

func (u *UnresolvedFunction) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	uu := *u
	uu.Args = children
	return &uu, nil
}

func (u *UnresolvedFunction) String() string {
	return fmt.Sprintf("%s(%s)", u.Name, argsString(u.Args))
}

func argsString(args []sql.Expression) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s
}

// Star is Project's "*" or "qualifier.*" placeholder, expanded by the
// analyzer's "expand stars" batch (§4.5 step 4) into the matching child
// output attributes. It is never evaluated directly.
type Star struct {
	noChildren
	Qualifier string
}

func NewStar(qualifier string) *Star { return &Star{Qualifier: qualifier} }

func (s *Star) Resolved() bool   { return false }
func (s *Star) IsNullable() bool { return true }

func (s *Star) Type() sql.Type {
	panic("UnresolvedType: " + s.String())
}

func (s *Star) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	return nil, sql.ErrUnsupportedOperation.New("Star must be expanded before Eval")
}

func (s *Star) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrTreeShapeMismatch.New(s, 0, len(children))
	}
	return s, nil
}

func (s *Star) String() string {
	if s.Qualifier != "" {
		return s.Qualifier + ".*"
	}
	return "*"
}
