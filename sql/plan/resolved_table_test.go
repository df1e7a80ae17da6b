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

func TestResolvedTable(t *testing.T) {
	require := require.New(t)

	schema := sql.Schema{{Name: "a", Type: types.Long}}
	table := newFakeTable("t", schema)
	n := NewResolvedTable("db", table)

	require.True(n.Resolved())
	require.Equal(schema, n.Schema())
	require.Nil(n.Children())
	require.Equal("t", n.Name())

	_, err := n.WithChildren(n)
	require.Error(err)

	same, err := n.WithChildren()
	require.NoError(err)
	require.Equal(n, same)
}

func TestUnresolvedRelation(t *testing.T) {
	require := require.New(t)

	n := NewUnresolvedRelation("db", "t")
	require.False(n.Resolved())
	require.Nil(n.Schema())

	aliased := n.WithAlias("x")
	require.Equal("x", aliased.Alias)
	require.Equal("t", aliased.Name)
}
