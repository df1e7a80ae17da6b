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

package types

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/relforge/relforge/sql"
)

// ConvertTo implements Cast's value-level semantics (§4.9): to String uses
// a decimal representation without trailing zeros; String->Numeric parses
// per a stable grammar and fails with ErrCastFailed on malformed input;
// narrowing numeric casts truncate toward zero. nil always casts to nil
// (null propagates through Cast; IsNull/IsNotNull are the only predicates
// that test nullness directly, per §4.9).
//
// The lenient scalar coercions themselves are delegated to spf13/cast,
// which implements exactly the "parse per a stable grammar" contract this
// package needs without hand-rolling numeric parsing per target type.
func ConvertTo(v interface{}, target sql.Type) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	k, ok := KindOf(target)
	if !ok {
		return nil, sql.ErrCastFailed.New(v, target)
	}

	switch k {
	case KindString:
		return formatForCast(v), nil
	case KindBinary:
		s := cast.ToString(v)
		return []byte(s), nil
	case KindBoolean:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, sql.ErrCastFailed.New(v, target)
		}
		return b, nil
	case KindByte:
		n, err := cast.ToInt8E(v)
		if err != nil {
			return nil, sql.ErrCastFailed.New(v, target)
		}
		return n, nil
	case KindShort:
		n, err := cast.ToInt16E(v)
		if err != nil {
			return nil, sql.ErrCastFailed.New(v, target)
		}
		return n, nil
	case KindInteger:
		n, err := cast.ToInt32E(v)
		if err != nil {
			return nil, sql.ErrCastFailed.New(v, target)
		}
		return n, nil
	case KindLong:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return nil, sql.ErrCastFailed.New(v, target)
		}
		return n, nil
	case KindFloat:
		n, err := cast.ToFloat32E(v)
		if err != nil {
			return nil, sql.ErrCastFailed.New(v, target)
		}
		return n, nil
	case KindDouble, KindDecimal:
		n, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, sql.ErrCastFailed.New(v, target)
		}
		return n, nil
	default:
		return nil, sql.ErrUnsupportedOperation.New("cast to " + target.String())
	}
}

// formatForCast renders v as a decimal string without trailing zeros,
// per §4.9's Cast-to-String semantics.
func formatForCast(v interface{}) string {
	switch n := v.(type) {
	case float32:
		return trimTrailingZeros(strconv.FormatFloat(float64(n), 'f', -1, 32))
	case float64:
		return trimTrailingZeros(strconv.FormatFloat(n, 'f', -1, 64))
	default:
		return cast.ToString(v)
	}
}

func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
