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
	"encoding/binary"
	"math/big"

	"github.com/shopspring/decimal"
)

var twoTo64 = new(big.Int).Lsh(big.NewInt(1), 64)

// serializeBinary stores the scaled integer as a big-endian two's complement number, keeping the
// low-order |byteLen| bytes.
func (c *Codec) serializeBinary(num number, kind Kind, byteLen, decimalDigits int) ([]byte, error) {
	if byteLen > 8 {
		return nil, ErrInvalidLength.New(byteLen, kind)
	}

	scaled := num.d.Shift(int32(decimalDigits)).Truncate(0).BigInt()
	if !fitsSigned(scaled, byteLen) {
		if err := c.overflow(num.d, byteLen, kind); err != nil {
			return nil, err
		}
	}

	low := new(big.Int).Mod(scaled, twoTo64).Uint64()
	var full [8]byte
	binary.BigEndian.PutUint64(full[:], low)

	out := make([]byte, byteLen)
	copy(out, full[8-byteLen:])
	return out, nil
}

func fitsSigned(n *big.Int, byteLen int) bool {
	bits := uint(byteLen * 8)
	limit := new(big.Int).Lsh(big.NewInt(1), bits-1)
	minVal := new(big.Int).Neg(limit)
	return n.Cmp(minVal) >= 0 && n.Cmp(limit) < 0
}

// deserializeBinary reads a big-endian two's complement integer of up to 8 bytes.
func deserializeBinary(b []byte, decimalDigits int) decimal.Decimal {
	if len(b) > 8 {
		b = b[len(b)-8:]
	}
	var full [8]byte
	copy(full[8-len(b):], b)
	u := binary.BigEndian.Uint64(full[:])

	shift := uint(64 - len(b)*8)
	v := int64(u<<shift) >> shift
	return decimal.New(v, -int32(decimalDigits))
}
