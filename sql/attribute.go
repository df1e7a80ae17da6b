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

package sql

import "sync/atomic"

// AttributeID uniquely identifies a resolved column once an
// AttributeReference is constructed (§3.2, §3.6). Two attributes are the
// same column iff their ids match; names alone are never authoritative.
type AttributeID uint64

var attributeCounter uint64

// NextAttributeID issues the next id from the process-wide monotonic
// counter (§5). It is the only mutable global in the core and is safe for
// concurrent use.
func NextAttributeID() AttributeID {
	return AttributeID(atomic.AddUint64(&attributeCounter, 1))
}

// ResetAttributeCounter resets the global counter. Tests call this between
// independent queries so expected ids are predictable; production code
// never calls it (§5: "reset only between independent test queries").
func ResetAttributeCounter() {
	atomic.StoreUint64(&attributeCounter, 0)
}
