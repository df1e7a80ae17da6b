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

// Package types implements the closed data-type lattice (C2, §3.3):
// Boolean, Byte, Short, Integer, Long, Float, Double, Decimal, String,
// Binary, Null, and the composite Array/Map/Struct types, plus the
// numeric promotion and widening rules analysis depends on.
package types

import (
	"fmt"

	"github.com/relforge/relforge/sql"
)

// Kind discriminates the closed set of data-type variants.
type Kind int

const (
	KindBoolean Kind = iota
	KindByte
	KindShort
	KindInteger
	KindLong
	KindFloat
	KindDouble
	KindDecimal
	KindString
	KindBinary
	KindNull
	KindArray
	KindMap
	KindStruct
)

// primitiveType implements sql.Type for every non-composite member of the
// lattice. Two primitiveTypes are Equal iff they share a Kind; composite
// types (array/map/struct) get their own implementations below since they
// carry nested types and nullability.
type primitiveType struct {
	kind Kind
	name string
	zero interface{}
}

func (t primitiveType) String() string { return t.name }

func (t primitiveType) Equals(other sql.Type) bool {
	o, ok := other.(primitiveType)
	return ok && o.kind == t.kind
}

func (t primitiveType) Zero() interface{} { return t.zero }

// Kind exposes the discriminant for type-switch-free dispatch (used by
// the evaluator's numeric kernels, §4.9, and by IsNumeric/Widen below).
func (t primitiveType) Kind() Kind { return t.kind }

// The closed primitive lattice (§3.3). Numeric promotion order is
// Byte ≺ Short ≺ Integer ≺ Long ≺ Float ≺ Double ≺ Decimal, encoded by
// promotionRank below -- Integer and Short are always distinct members,
// per the design-note correction to the source's javaClassToDataType bug
// (§9; see DESIGN.md).
var (
	Boolean = primitiveType{KindBoolean, "BOOLEAN", false}
	Byte    = primitiveType{KindByte, "BYTE", int8(0)}
	Short   = primitiveType{KindShort, "SHORT", int16(0)}
	Integer = primitiveType{KindInteger, "INTEGER", int32(0)}
	Long    = primitiveType{KindLong, "LONG", int64(0)}
	Float   = primitiveType{KindFloat, "FLOAT", float32(0)}
	Double  = primitiveType{KindDouble, "DOUBLE", float64(0)}
	Decimal = primitiveType{KindDecimal, "DECIMAL", float64(0)}
	String  = primitiveType{KindString, "STRING", ""}
	Binary  = primitiveType{KindBinary, "BINARY", []byte(nil)}
	Null    = primitiveType{KindNull, "NULL", nil}
)

// KindOf returns the Kind of a sql.Type produced by this package, or
// false if t is a composite type or not one of ours.
func KindOf(t sql.Type) (Kind, bool) {
	if p, ok := t.(primitiveType); ok {
		return p.kind, true
	}
	return 0, false
}

// ArrayType is the composite Array(element) member of the lattice.
type ArrayType struct {
	Element         sql.Type
	ElementNullable bool
}

func (t ArrayType) String() string { return fmt.Sprintf("ARRAY<%s>", t.Element) }

func (t ArrayType) Equals(other sql.Type) bool {
	o, ok := other.(ArrayType)
	return ok && o.ElementNullable == t.ElementNullable && o.Element.Equals(t.Element)
}

func (t ArrayType) Zero() interface{} { return []interface{}(nil) }

// MapType is the composite Map(key,value) member of the lattice.
type MapType struct {
	Key           sql.Type
	Value         sql.Type
	ValueNullable bool
}

func (t MapType) String() string { return fmt.Sprintf("MAP<%s,%s>", t.Key, t.Value) }

func (t MapType) Equals(other sql.Type) bool {
	o, ok := other.(MapType)
	return ok && o.ValueNullable == t.ValueNullable && o.Key.Equals(t.Key) && o.Value.Equals(t.Value)
}

func (t MapType) Zero() interface{} { return map[interface{}]interface{}(nil) }

// StructField is one named, typed, nullable member of a StructType.
type StructField struct {
	Name     string
	Type     sql.Type
	Nullable bool
}

// StructType is the composite Struct(field*) member of the lattice.
type StructType struct {
	Fields []StructField
}

func (t StructType) String() string {
	s := "STRUCT<"
	for i, f := range t.Fields {
		if i > 0 {
			s += ","
		}
		s += f.Name + ":" + f.Type.String()
	}
	return s + ">"
}

func (t StructType) Equals(other sql.Type) bool {
	o, ok := other.(StructType)
	if !ok || len(o.Fields) != len(t.Fields) {
		return false
	}
	for i, f := range t.Fields {
		of := o.Fields[i]
		if f.Name != of.Name || f.Nullable != of.Nullable || !f.Type.Equals(of.Type) {
			return false
		}
	}
	return true
}

func (t StructType) Zero() interface{} { return map[string]interface{}(nil) }
