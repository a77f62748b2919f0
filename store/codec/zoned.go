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
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Overpunch characters for the final digit of a zoned decimal. Index i is the character carrying
// digit i. In EBCDIC these characters are the C and D zoned bytes.
const (
	positiveOverpunch = "{ABCDEFGHI"
	negativeOverpunch = "}JKLMNOPQR"
)

// overpunchDigit returns the digit carried by an overpunched character of either sign.
func overpunchDigit(r rune) (byte, bool) {
	if i := strings.IndexRune(positiveOverpunch, r); i >= 0 {
		return byte(i), true
	}
	if i := strings.IndexRune(negativeOverpunch, r); i >= 0 {
		return byte(i), true
	}
	return 0, false
}

// serializeZoned stores one digit per byte: a field of n bytes holds n digits, with the sign carried
// by the last one. A negative signed value replaces its last digit with the negative overpunch
// character for that digit; positive and unsigned values keep a plain digit.
func (c *Codec) serializeZoned(num number, kind Kind, byteLen, decimalDigits int) ([]byte, error) {
	digits, over := fitDigits(scaledDigits(num.d, decimalDigits), byteLen)
	if over {
		if err := c.overflow(num.d, byteLen, kind); err != nil {
			return nil, err
		}
	}

	if kind == SignedNumeric && num.d.Sign() < 0 && !isAllZero(digits) {
		last := digits[len(digits)-1] - '0'
		digits = digits[:len(digits)-1] + string(negativeOverpunch[last])
	}

	return c.cs.Encode(digits), nil
}

func (c *Codec) deserializeZoned(b []byte, kind Kind, decimalDigits int) (decimal.Decimal, error) {
	txt := c.cs.Decode(b)
	// leading spaces are unset high-order digits
	digits := strings.TrimLeft(txt, " ")
	if digits == "" {
		return decimal.Zero, nil
	}

	neg := false
	last := rune(digits[len(digits)-1])
	if last < '0' || last > '9' {
		d, ok := overpunchDigit(last)
		if !ok {
			return decimal.Decimal{}, ErrInvalidFormat.New(txt, kind)
		}
		neg = strings.ContainsRune(negativeOverpunch, last)
		digits = digits[:len(digits)-1] + string(rune('0'+d))
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return decimal.Decimal{}, ErrInvalidFormat.New(txt, kind)
		}
	}

	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return decimal.Decimal{}, ErrInvalidFormat.New(txt, kind)
	}
	if neg {
		n.Neg(n)
	}
	return decimal.NewFromBigInt(n, -int32(decimalDigits)), nil
}
