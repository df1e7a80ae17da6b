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

func TestGenerateSchemaJoin(t *testing.T) {
	require := require.New(t)

	schema := sql.Schema{{Name: "arr", Type: types.ArrayType{Element: types.Long}}}
	table := NewResolvedTable("db", newFakeTable("t", schema))
	ref := expression.NewBoundReference(0, 0, "arr", types.ArrayType{Element: types.Long}, false)
	explode := expression.NewExplode(ref)

	g := NewGenerate(explode, true, false, table)
	require.True(g.Resolved())

	out := g.Schema()
	require.Len(out, 2)
	require.Equal("arr", out[0].Name)
	require.Equal("col", out[1].Name)

	g2 := NewGenerate(explode, false, false, table)
	require.Len(g2.Schema(), 1)

	_, err := g.WithExpressions(ref)
	require.Error(err)

	ng, err := g.WithExpressions(explode)
	require.NoError(err)
	require.Same(explode, ng.(*Generate).Generator)
}
