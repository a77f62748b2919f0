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
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Packed decimal sign nibbles.
const (
	signNegative byte = 0xD
	signPositive byte = 0xC
	signUnsigned byte = 0xF
)

// serializePacked stores two BCD digits per byte with the sign in the low nibble of the last byte.
// A field of n bytes holds 2n-1 digits, left-padded with zero nibbles.
func (c *Codec) serializePacked(num number, kind Kind, byteLen, decimalDigits int) ([]byte, error) {
	digits, over := fitDigits(scaledDigits(num.d, decimalDigits), byteLen*2-1)
	if over {
		if err := c.overflow(num.d, byteLen, kind); err != nil {
			return nil, err
		}
	}

	sign := signUnsigned
	if kind == PackedDecimal {
		if num.d.Sign() < 0 && !isAllZero(digits) {
			sign = signNegative
		} else if num.explicitPlus {
			sign = signPositive
		}
	}

	return packNibbles(digits, sign), nil
}

// packNibbles packs an odd length digit string followed by |sign| into bytes.
func packNibbles(digits string, sign byte) []byte {
	nibbles := make([]byte, 0, len(digits)+1)
	for i := 0; i < len(digits); i++ {
		nibbles = append(nibbles, digits[i]-'0')
	}
	nibbles = append(nibbles, sign)

	out := make([]byte, len(nibbles)/2)
	for i := range out {
		out[i] = nibbles[2*i]<<4 | nibbles[2*i+1]
	}
	return out
}

func deserializePacked(b []byte, kind Kind, decimalDigits int) (decimal.Decimal, error) {
	if len(b) == 0 {
		return decimal.Decimal{}, ErrInvalidFormat.New("", kind)
	}

	digits := make([]byte, 0, len(b)*2-1)
	for i, v := range b {
		hi, lo := v>>4, v&0x0F
		if hi > 9 {
			return decimal.Decimal{}, ErrInvalidFormat.New(fmt.Sprintf("%X", b), kind)
		}
		digits = append(digits, '0'+hi)
		if i < len(b)-1 {
			if lo > 9 {
				return decimal.Decimal{}, ErrInvalidFormat.New(fmt.Sprintf("%X", b), kind)
			}
			digits = append(digits, '0'+lo)
		}
	}

	neg := false
	switch b[len(b)-1] & 0x0F {
	case 0xB, 0xD:
		neg = true
	case 0xA, 0xC, 0xE, 0xF:
	default:
		return decimal.Decimal{}, ErrInvalidFormat.New(fmt.Sprintf("%X", b), kind)
	}

	n, _ := new(big.Int).SetString(string(digits), 10)
	if neg {
		n.Neg(n)
	}
	return decimal.NewFromBigInt(n, -int32(decimalDigits)), nil
}
