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
	"fmt"

	"github.com/relforge/relforge/sql"
)

// Subquery is §3.4's Subquery(alias, child): it passes its child's output
// through, qualifying every column's Source with alias. The optimizer's
// "eliminate subqueries" rule (§4.6) removes the wrapper once the
// analyzer's "substitute subqueries" batch (§4.5 step 1) has done the
// qualification; both passes exist because a Subquery must still resolve
// qualified references (`alias.col`) correctly before it is dropped.
type Subquery struct {
	UnaryNode
	Alias string
}

var _ sql.Node = (*Subquery)(nil)

func NewSubquery(alias string, child sql.Node) *Subquery {
	return &Subquery{UnaryNode{child}, alias}
}

func (s *Subquery) Schema() sql.Schema {
	child := s.Child.Schema()
	out := make(sql.Schema, len(child))
	for i, c := range child {
		cp := *c
		cp.Source = s.Alias
		out[i] = &cp
	}
	return out
}

func (s *Subquery) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(s, children)
	if err != nil {
		return nil, err
	}
	return NewSubquery(s.Alias, child), nil
}

func (s *Subquery) String() string {
	return treeString(fmt.Sprintf("Subquery(%s)", s.Alias), s.Child)
}
