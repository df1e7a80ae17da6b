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
	"github.com/relforge/relforge/sql/types"
)

func TestUnionSchemaWidensNullability(t *testing.T) {
	require := require.New(t)

	left := NewResolvedTable("db", newFakeTable("l", sql.Schema{
		{Name: "a", Type: types.Long, Nullable: false},
	}))
	right := NewResolvedTable("db", newFakeTable("r", sql.Schema{
		{Name: "a", Type: types.Long, Nullable: true},
	}))

	u := NewUnion(left, right)
	require.True(u.Resolved())

	out := u.Schema()
	require.Len(out, 1)
	require.True(out[0].Nullable)

	_, err := u.WithChildren(left)
	require.Error(err)

	nu, err := u.WithChildren(left, right, left)
	require.Error(err)
	require.Nil(nu)
}
