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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/types"
)

func TestLiteralEval(t *testing.T) {
	require := require.New(t)
	l := NewLiteral(int64(42), types.Long)
	res, err := l.Eval(sql.NewEmptyContext(), nil)
	require.NoError(err)
	require.Equal(int64(42), res)
	require.True(l.Resolved())
	require.False(l.IsNullable())
}

func TestAttributeReferenceIdentity(t *testing.T) {
	require := require.New(t)
	a := NewAttributeReference("x", types.Long, false)
	b := NewAttributeReference("x", types.Long, false)
	require.NotEqual(a.ID(), b.ID(), "each construction mints a fresh id")

	bound := a.WithID(b.ID())
	require.Equal(b.ID(), bound.ID())
}

func TestAliasCarriesChildTypeAndValue(t *testing.T) {
	require := require.New(t)
	lit := NewLiteral(int64(7), types.Long)
	a := NewAlias(lit, "seven")
	require.Equal(types.Long, a.Type())
	require.Equal("seven", a.Name())

	res, err := a.Eval(sql.NewEmptyContext(), nil)
	require.NoError(err)
	require.Equal(int64(7), res)
}

func TestBoundReferenceIndexesRow(t *testing.T) {
	require := require.New(t)
	row := sql.NewRow(int64(1), "two", 3.0)
	ref := NewBoundReference(0, 1, "col1", types.String, false)
	res, err := ref.Eval(sql.NewEmptyContext(), row)
	require.NoError(err)
	require.Equal("two", res)

	_, err = NewBoundReference(0, 10, "oob", types.String, false).Eval(sql.NewEmptyContext(), row)
	require.Error(err)
	require.True(sql.ErrIndexOutOfBounds.Is(err))
}

func TestFoldable(t *testing.T) {
	require := require.New(t)

	require.True(Foldable(NewLiteral(int64(1), types.Long)))
	require.False(Foldable(NewAttributeReference("x", types.Long, false)))

	sum := NewPlus(NewLiteral(int64(1), types.Long), NewLiteral(int64(2), types.Long))
	require.True(Foldable(sum))

	mixed := NewPlus(NewLiteral(int64(1), types.Long), NewAttributeReference("x", types.Long, false))
	require.False(Foldable(mixed))
}

func TestReferences(t *testing.T) {
	require := require.New(t)
	x := NewAttributeReference("x", types.Long, false)
	y := NewAttributeReference("y", types.Long, false)
	expr := NewPlus(x, NewMinus(y, NewLiteral(int64(1), types.Long)))

	refs := References(expr)
	require.Len(refs, 2)
}
