// Copyright 2026 Dolthub, Inc.
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

package codec

import (
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// Kind identifies how a field's value is laid out in its bytes.
type Kind uint8

const (
	String Kind = iota
	PackedDecimal
	UnsignedPackedDecimal
	SignedNumeric
	UnsignedNumeric
	NumericEdited
	CompShort
	CompInt
	CompLong
	Boolean
)

// ErrUnknownKind is returned by ParseKind for names it does not recognise.
var ErrUnknownKind = errors.NewKind("unknown field kind `%s`")

var kindNames = map[Kind]string{
	String:                "string",
	PackedDecimal:         "packed",
	UnsignedPackedDecimal: "unsigned-packed",
	SignedNumeric:         "signed-numeric",
	UnsignedNumeric:       "unsigned-numeric",
	NumericEdited:         "numeric-edited",
	CompShort:             "comp-short",
	CompInt:               "comp-int",
	CompLong:              "comp-long",
	Boolean:               "boolean",
}

// kindAliases holds the copybook spellings accepted by ParseKind in addition to the canonical names.
var kindAliases = map[string]Kind{
	"alphanumeric":   String,
	"x":              String,
	"comp-3":         PackedDecimal,
	"packed-decimal": PackedDecimal,
	"zoned":          SignedNumeric,
	"numeric":        SignedNumeric,
	"unsigned":       UnsignedNumeric,
	"edited":         NumericEdited,
	"binary-short":   CompShort,
	"binary-int":     CompInt,
	"binary-long":    CompLong,
	"comp":           CompInt,
	"bool":           Boolean,
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseKind returns the Kind for a canonical kind name or one of its copybook aliases. Matching is
// case-insensitive.
func ParseKind(s string) (Kind, error) {
	lwr := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == lwr {
			return k, nil
		}
	}
	if k, ok := kindAliases[lwr]; ok {
		return k, nil
	}
	return 0, ErrUnknownKind.New(s)
}

// IsNumeric returns true for kinds whose bytes decode to a number that can be compared by value.
// Edited fields are display text and are not included.
func (k Kind) IsNumeric() bool {
	switch k {
	case PackedDecimal, UnsignedPackedDecimal, SignedNumeric, UnsignedNumeric, CompShort, CompInt, CompLong:
		return true
	default:
		return false
	}
}

// IsDisplay returns true for kinds stored as characters, and so subject to the charset.
func (k Kind) IsDisplay() bool {
	switch k {
	case String, SignedNumeric, UnsignedNumeric, NumericEdited, Boolean:
		return true
	default:
		return false
	}
}

// IsSigned returns false for the kinds that never store a negative sign.
func (k Kind) IsSigned() bool {
	return k != UnsignedPackedDecimal && k != UnsignedNumeric
}
