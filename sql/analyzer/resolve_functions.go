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
	"github.com/relforge/relforge/sql"
	"github.com/relforge/relforge/sql/expression"
	"github.com/relforge/relforge/sql/transform"
)

// resolveFunctions is §4.5 step 5: UnresolvedFunction(name, args)
// consults the function registry collaborator and is replaced by the
// typed expression it builds, or the batch fails with
// ErrFunctionNotFound.
func (a *Analyzer) resolveFunctions(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	return transform.NodeExprsWithNode(n, func(node sql.Node, e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		unresolved, ok := e.(*expression.UnresolvedFunction)
		if !ok {
			return e, transform.SameTree, nil
		}
		fn, err := a.Catalog.Function(unresolved.Name)
		if err != nil {
			return nil, transform.SameTree, err
		}
		built, err := fn.Build(unresolved.Args...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return built, transform.NewTree, nil
	})
}
