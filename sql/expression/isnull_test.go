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

func TestIsNullIsNotNull(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	res, err := NewIsNull(NewLiteral(nil, types.Long)).Eval(ctx, nil)
	require.NoError(err)
	require.Equal(true, res)

	res, err = NewIsNotNull(NewLiteral(int64(1), types.Long)).Eval(ctx, nil)
	require.NoError(err)
	require.Equal(true, res)
}

func TestCoalesce(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	c := NewCoalesce(types.Long, NewLiteral(nil, types.Long), NewLiteral(nil, types.Long), NewLiteral(int64(3), types.Long))
	res, err := c.Eval(ctx, nil)
	require.NoError(err)
	require.Equal(int64(3), res)

	allNull := NewCoalesce(types.Long, NewLiteral(nil, types.Long))
	res, err = allNull.Eval(ctx, nil)
	require.NoError(err)
	require.Nil(res)
}

func TestIf(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	f := NewIf(NewLiteral(true, types.Boolean), NewLiteral("yes", types.String), NewLiteral("no", types.String))
	res, err := f.Eval(ctx, nil)
	require.NoError(err)
	require.Equal("yes", res)

	f = NewIf(NewLiteral(nil, types.Boolean), NewLiteral("yes", types.String), NewLiteral("no", types.String))
	res, err = f.Eval(ctx, nil)
	require.NoError(err)
	require.Equal("no", res)
}
