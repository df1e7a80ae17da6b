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

func TestInsertInto(t *testing.T) {
	require := require.New(t)

	schema := sql.Schema{{Name: "a", Type: types.Long}}
	target := NewResolvedTable("db", newFakeTable("t", schema))
	source := NewResolvedTable("db", newFakeTable("src", schema))

	ins := NewInsertInto(target, map[string]string{"p": "1"}, source)
	require.True(ins.Resolved())
	require.Nil(ins.Schema())

	other := NewResolvedTable("db", newFakeTable("src2", schema))
	ni, err := ins.WithChildren(other)
	require.NoError(err)
	require.Same(other, ni.(*InsertInto).Child)
	require.Same(target, ni.(*InsertInto).Target)
}
