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

package record

import (
	"bytes"

	"github.com/shopspring/decimal"

	"github.com/dolthub/hostrec/store/codec"
)

// Compare orders two buffer values. Two numeric values that both decode are compared by value;
// anything else is compared byte by byte with the shorter operand padded with spaces.
func Compare(a, b BufferValue) int {
	return compareValues(codecFor(a), a, b)
}

// Equal returns true if Compare returns 0.
func Equal(a, b BufferValue) bool {
	return Compare(a, b) == 0
}

func codecFor(v BufferValue) *codec.Codec {
	if e, ok := v.(Element); ok && e.Record() != nil {
		return e.Record().Codec()
	}
	return codec.Default
}

func compareValues(c *codec.Codec, a, b BufferValue) int {
	if a.Kind().IsNumeric() && b.Kind().IsNumeric() {
		da, okA := decodeNumber(c, a)
		db, okB := decodeNumber(codecFor(b), b)
		if okA && okB {
			return da.Cmp(db)
		}
	}
	return compareBytes(a.AsBytes(), b.AsBytes(), c.Charset().SpaceByte())
}

func decodeNumber(c *codec.Codec, v BufferValue) (decimal.Decimal, bool) {
	val, ok := c.TryDeserialize(v.AsBytes(), v.Kind(), v.DecimalDigits())
	if !ok {
		return decimal.Decimal{}, false
	}
	d, ok := val.(decimal.Decimal)
	return d, ok
}

func compareBytes(l, r []byte, pad byte) int {
	switch {
	case len(l) < len(r):
		l = padRight(l, len(r), pad)
	case len(r) < len(l):
		r = padRight(r, len(l), pad)
	}
	return bytes.Compare(l, r)
}

func padRight(b []byte, n int, pad byte) []byte {
	out := make([]byte, n)
	copy(out, b)
	for i := len(b); i < n; i++ {
		out[i] = pad
	}
	return out
}
