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

// Limit is §3.4's Limit(n, child): output = child.output, truncated to
// at most N rows.
type Limit struct {
	UnaryNode
	N int64
}

var _ sql.Node = (*Limit)(nil)

func NewLimit(n int64, child sql.Node) *Limit {
	return &Limit{UnaryNode{child}, n}
}

func (l *Limit) Schema() sql.Schema { return l.Child.Schema() }

func (l *Limit) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(l, children)
	if err != nil {
		return nil, err
	}
	return NewLimit(l.N, child), nil
}

func (l *Limit) String() string {
	return treeString(fmt.Sprintf("Limit(%d)", l.N), l.Child)
}
