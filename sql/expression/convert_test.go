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

func TestCastToString(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	res, err := NewCast(NewLiteral(3.140, types.Double), types.String).Eval(ctx, nil)
	require.NoError(err)
	require.Equal("3.14", res)
}

func TestCastStringToNumericFailure(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	_, err := NewCast(NewLiteral("not a number", types.String), types.Long).Eval(ctx, nil)
	require.Error(err)
	require.True(sql.ErrCastFailed.Is(err))
}

func TestCastNullPropagates(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	res, err := NewCast(NewLiteral(nil, types.Long), types.String).Eval(ctx, nil)
	require.NoError(err)
	require.Nil(res)
}
