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

package rowexec

import (
	"fmt"

	"github.com/relforge/relforge/sql"
)

// Insert is the DataSink strategy's (§4.7 strategy 1) physical operator
// for InsertInto(target, partitionSpec, child): it streams Child's rows
// into Target through sql.RowInserter, producing no output rows of its
// own (InsertInto.Schema is nil).
type Insert struct {
	unaryPhysical
	Database      string
	Target        sql.Tabler
	PartitionSpec map[string]string
}

var _ Physical = (*Insert)(nil)

func NewInsert(database string, target sql.Tabler, partitionSpec map[string]string, child sql.Node) *Insert {
	return &Insert{unaryPhysical{child}, database, target, partitionSpec}
}

func (i *Insert) Schema() sql.Schema { return nil }

func (i *Insert) WithChildren(children ...sql.Node) (sql.Node, error) {
	child, err := oneChild(i, children)
	if err != nil {
		return nil, err
	}
	return NewInsert(i.Database, i.Target, i.PartitionSpec, child), nil
}

func (i *Insert) RequiredChildDistribution() []Distribution {
	return []Distribution{UnspecifiedDistribution}
}

func (i *Insert) OutputPartitioning() Distribution { return AllTuplesDistribution }

func (i *Insert) Execute(ctx *sql.Context) (sql.RowIter, error) {
	inserter, ok := i.Target.(sql.RowInserter)
	if !ok {
		return nil, sql.ErrUnsupportedOperation.New(fmt.Sprintf("%s does not support insert", i.Target.Name()))
	}

	childIter, err := executeChild(ctx, i.Child)
	if err != nil {
		return nil, err
	}

	rows, err := drain(ctx, childIter)
	if err != nil {
		return nil, err
	}

	var insertErr error
	for _, row := range rows {
		if insertErr = inserter.Insert(ctx, row); insertErr != nil {
			break
		}
	}
	if closeErr := inserter.Close(ctx); insertErr == nil {
		insertErr = closeErr
	}
	if insertErr != nil {
		return nil, insertErr
	}
	return sql.RowsToRowIter(), nil
}

func (i *Insert) String() string {
	return treeString(fmt.Sprintf("Insert(%s, %v)", i.Target.Name(), i.PartitionSpec), i.Child)
}
