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

func lit(v interface{}) *Literal { return NewLiteral(v, types.Boolean) }

func TestAndThreeValued(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	cases := []struct {
		l, r, exp interface{}
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
		{true, nil, nil},
		{nil, true, nil},
		{false, nil, false},
		{nil, false, false},
		{nil, nil, nil},
	}
	for _, c := range cases {
		res, err := NewAnd(lit(c.l), lit(c.r)).Eval(ctx, nil)
		require.NoError(err)
		require.Equal(c.exp, res)
	}
}

func TestOrThreeValued(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	cases := []struct {
		l, r, exp interface{}
	}{
		{true, true, true},
		{true, false, true},
		{false, false, false},
		{true, nil, true},
		{nil, true, true},
		{false, nil, nil},
		{nil, false, nil},
		{nil, nil, nil},
	}
	for _, c := range cases {
		res, err := NewOr(lit(c.l), lit(c.r)).Eval(ctx, nil)
		require.NoError(err)
		require.Equal(c.exp, res)
	}
}

func TestNot(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	res, err := NewNot(lit(true)).Eval(ctx, nil)
	require.NoError(err)
	require.Equal(false, res)

	res, err = NewNot(lit(nil)).Eval(ctx, nil)
	require.NoError(err)
	require.Nil(res)
}
