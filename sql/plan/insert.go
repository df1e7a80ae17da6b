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

// InsertInto is §3.4's InsertInto(target, partitionSpec, child): target is
// the destination relation, partitionSpec optionally pins specific
// partition column values (a static partition insert), and child is the
// row source. It produces no output rows of its own.
type InsertInto struct {
	UnaryNode
	Target        *ResolvedTable
	PartitionSpec map[string]string
}

var _ sql.Node = (*InsertInto)(nil)

func NewInsertInto(target *ResolvedTable, partitionSpec map[string]string, child sql.Node) *InsertInto {
	return &InsertInto{UnaryNode{child}, target, partitionSpec}
}

func (i *InsertInto) Resolved() bool {
	return i.Target.Resolved() && i.Child.Resolved()
}

func (i *InsertInto) Schema() sql.Schema { return nil }

func (i *InsertInto) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(i, children)
	if err != nil {
		return nil, err
	}
	return NewInsertInto(i.Target, i.PartitionSpec, child), nil
}

func (i *InsertInto) String() string {
	return treeString(fmt.Sprintf("InsertInto(%s, %v)", i.Target.Name(), i.PartitionSpec), i.Child)
}
