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

package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/types"
)

func TestInnerJoinSchemaNullability(t *testing.T) {
	require := require.New(t)

	left := NewResolvedTable("db", newFakeTable("l", sql.Schema{
		{Name: "a", Type: types.Long, Nullable: false},
	}))
	right := NewResolvedTable("db", newFakeTable("r", sql.Schema{
		{Name: "b", Type: types.String, Nullable: true},
	}))

	cond := expression.NewEquals(
		expression.NewBoundReference(0, 0, "a", types.Long, false),
		expression.NewBoundReference(1, 0, "b", types.String, true),
	)
	j := NewJoin(left, right, JoinTypeInner, cond)
	require.True(j.Resolved())

	out := j.Schema()
	require.Len(out, 2)
	require.False(out[0].Nullable)
	require.True(out[1].Nullable)
}

func TestLeftOuterJoinMakesRightNullable(t *testing.T) {
	require := require.New(t)

	left := NewResolvedTable("db", newFakeTable("l", sql.Schema{
		{Name: "a", Type: types.Long, Nullable: false},
	}))
	right := NewResolvedTable("db", newFakeTable("r", sql.Schema{
		{Name: "b", Type: types.String, Nullable: false},
	}))

	j := NewJoin(left, right, JoinTypeLeftOuter, nil)
	require.True(j.Resolved())

	out := j.Schema()
	require.False(out[0].Nullable)
	require.True(out[1].Nullable)
}

func TestFullOuterJoinMakesBothNullable(t *testing.T) {
	require := require.New(t)

	left := NewResolvedTable("db", newFakeTable("l", sql.Schema{
		{Name: "a", Type: types.Long, Nullable: false},
	}))
	right := NewResolvedTable("db", newFakeTable("r", sql.Schema{
		{Name: "b", Type: types.String, Nullable: false},
	}))

	j := NewJoin(left, right, JoinTypeFullOuter, nil)
	out := j.Schema()
	require.True(out[0].Nullable)
	require.True(out[1].Nullable)
}

func TestJoinWithChildren(t *testing.T) {
	require := require.New(t)

	left := NewResolvedTable("db", newFakeTable("l", sql.Schema{{Name: "a", Type: types.Long}}))
	right := NewResolvedTable("db", newFakeTable("r", sql.Schema{{Name: "b", Type: types.Long}}))
	j := NewJoin(left, right, JoinTypeInner, nil)

	_, err := j.WithChildren(left)
	require.Error(err)

	other := NewResolvedTable("db", newFakeTable("s", sql.Schema{{Name: "c", Type: types.Long}}))
	nj, err := j.WithChildren(left, other)
	require.NoError(err)
	require.Same(other, nj.(*Join).Right)
}
