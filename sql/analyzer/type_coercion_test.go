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

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/plan"
	"github.com/relforge/relforge/sql/types"
)

func TestTypeCoercionWidensArithmeticOperand(t *testing.T) {
	require := require.New(t)

	n := plan.NewProject([]sql.Expression{
		expression.NewPlus(
			expression.NewLiteral(int64(1), types.Long),
			expression.NewLiteral(float64(2), types.Double),
		),
	}, mytableNode())

	coerced, err := typeCoercion(sql.NewEmptyContext(), n)
	require.NoError(err)

	p := coerced.(*plan.Project)
	plus := p.Projections[0]
	require.True(types.Double.Equals(plus.Type()))

	left := plus.Children()[0]
	cast, ok := left.(*expression.Cast)
	require.True(ok)
	require.True(types.Double.Equals(cast.TargetType))
}

func TestTypeCoercionNoopWhenTypesMatch(t *testing.T) {
	require := require.New(t)

	n := plan.NewProject([]sql.Expression{
		expression.NewPlus(
			expression.NewLiteral(int64(1), types.Long),
			expression.NewLiteral(int64(2), types.Long),
		),
	}, mytableNode())

	coerced, err := typeCoercion(sql.NewEmptyContext(), n)
	require.NoError(err)
	require.Same(n, coerced)
}

func TestTypeCoercionIncompatibleTypesFails(t *testing.T) {
	require := require.New(t)

	n := plan.NewProject([]sql.Expression{
		expression.NewEquals(
			expression.NewLiteral("x", types.String),
			expression.NewLiteral(int64(1), types.Long),
		),
	}, mytableNode())

	_, err := typeCoercion(sql.NewEmptyContext(), n)
	require.Error(err)
	require.True(sql.ErrIncompatibleTypes.Is(err))
}
