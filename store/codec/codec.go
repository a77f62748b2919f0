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

// Package codec converts typed values to and from the fixed-width byte encodings used by host
// records: display strings, zoned and packed decimals, big-endian binary integers, edited numbers
// and booleans.
package codec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrInvalidFormat is returned when bytes or text do not hold a valid value of the requested kind.
	ErrInvalidFormat = errors.NewKind("`%s` is not a valid %s value")
	// ErrOverflow is returned in strict overflow mode when a value does not fit in its field.
	ErrOverflow = errors.NewKind("value `%v` does not fit in %d bytes of %s")
	// ErrUnsupportedValue is returned when a Go value has no conversion to the requested kind.
	ErrUnsupportedValue = errors.NewKind("cannot convert value of type %T to %s")
	// ErrInvalidLength is returned when a field length cannot hold any value of its kind.
	ErrInvalidLength = errors.NewKind("length %d is not valid for %s")
)

// Codec serializes values for one session. The zero value is not usable; use New or Default.
type Codec struct {
	cs     Charset
	strict bool
	logger *logrus.Entry
}

// Option configures a Codec.
type Option func(*Codec)

// WithCharset sets the code page used for display kinds.
func WithCharset(cs Charset) Option {
	return func(c *Codec) {
		c.cs = cs
	}
}

// WithStrictOverflow makes oversized values an error instead of being truncated.
func WithStrictOverflow(strict bool) Option {
	return func(c *Codec) {
		c.strict = strict
	}
}

// WithLogger sets the logger truncations are reported to.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *Codec) {
		c.logger = logger
	}
}

// New returns a Codec using Latin1 and silent truncation unless overridden by |opts|.
func New(opts ...Option) *Codec {
	c := &Codec{cs: Latin1, logger: logrus.NewEntry(logrus.StandardLogger())}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Default is a Latin1 codec with silent truncation.
var Default = New()

// Charset returns the codec's display code page.
func (c *Codec) Charset() Charset {
	return c.cs
}

// StrictOverflow returns true if oversized values are rejected.
func (c *Codec) StrictOverflow() bool {
	return c.strict
}

// Serialize encodes |v| as |byteLen| bytes of |kind|. |sourceKind| is the kind of the element |v|
// was read from; a String source moved into a numeric kind has its digits taken as an unsigned
// integer. Pass |kind| itself when |v| is a plain Go value.
func (c *Codec) Serialize(v interface{}, kind Kind, byteLen int, sourceKind Kind, decimalDigits int) ([]byte, error) {
	if byteLen <= 0 {
		return nil, ErrInvalidLength.New(byteLen, kind)
	}

	switch kind {
	case String:
		return c.serializeString(v, byteLen)
	case Boolean:
		return c.serializeBoolean(v, byteLen)
	}

	num, err := c.toNumber(v, kind, sourceKind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case SignedNumeric, UnsignedNumeric:
		return c.serializeZoned(num, kind, byteLen, decimalDigits)
	case PackedDecimal, UnsignedPackedDecimal:
		return c.serializePacked(num, kind, byteLen, decimalDigits)
	case CompShort, CompInt, CompLong:
		return c.serializeBinary(num, kind, byteLen, decimalDigits)
	case NumericEdited:
		return c.serializeEdited(num, byteLen, decimalDigits)
	}

	return nil, ErrUnsupportedValue.New(v, kind)
}

// Deserialize decodes |b| as a value of |kind|. String fields decode to string, Boolean fields to
// bool and every other kind to decimal.Decimal.
func (c *Codec) Deserialize(b []byte, kind Kind, decimalDigits int) (interface{}, error) {
	switch kind {
	case String:
		return c.cs.Decode(b), nil
	case Boolean:
		return c.deserializeBoolean(b)
	case SignedNumeric, UnsignedNumeric:
		return c.deserializeZoned(b, kind, decimalDigits)
	case PackedDecimal, UnsignedPackedDecimal:
		return deserializePacked(b, kind, decimalDigits)
	case CompShort, CompInt, CompLong:
		return deserializeBinary(b, decimalDigits), nil
	case NumericEdited:
		return c.deserializeEdited(b)
	}
	return nil, ErrInvalidFormat.New(fmt.Sprintf("%X", b), kind)
}

// TryDeserialize is Deserialize reporting failure with a bool instead of an error.
func (c *Codec) TryDeserialize(b []byte, kind Kind, decimalDigits int) (interface{}, bool) {
	v, err := c.Deserialize(b, kind, decimalDigits)
	if err != nil {
		return nil, false
	}
	return v, true
}

// ZeroValue returns the initial encoding of a field with no configured default: spaces for
// strings, false for booleans and zero for numeric kinds.
func (c *Codec) ZeroValue(kind Kind, byteLen int, decimalDigits int) []byte {
	var v interface{} = decimal.Zero
	if kind == String {
		v = ""
	} else if kind == Boolean {
		v = false
	}
	b, err := c.Serialize(v, kind, byteLen, kind, decimalDigits)
	if err != nil {
		// zero always fits, so the only failure is an unusable length
		return make([]byte, max(byteLen, 0))
	}
	return b
}

// Number converts a Go value to the decimal it denotes as a value of |kind|, without fitting it to any
// field length.
func (c *Codec) Number(v interface{}, kind Kind) (decimal.Decimal, error) {
	num, err := c.toNumber(v, kind, kind)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return num.d, nil
}

// Text encodes a Go value as display bytes in the codec's charset, without padding or truncation.
func (c *Codec) Text(v interface{}) ([]byte, error) {
	return c.displayBytes(v)
}

// number is a parsed numeric value. explicitPlus records a leading or trailing '+' in the source
// text, which selects the C sign nibble for packed fields.
type number struct {
	d            decimal.Decimal
	explicitPlus bool
}

func (c *Codec) toNumber(v interface{}, kind, sourceKind Kind) (number, error) {
	switch val := v.(type) {
	case number:
		return val, nil
	case decimal.Decimal:
		return number{d: val}, nil
	case *decimal.Decimal:
		return number{d: *val}, nil
	case string:
		if sourceKind == String {
			return alphanumericMove(val), nil
		}
		return parseNumber(val, kind)
	case []byte:
		s := c.cs.Decode(val)
		if sourceKind == String {
			return alphanumericMove(s), nil
		}
		return parseNumber(s, kind)
	case bool:
		if val {
			return number{d: decimal.NewFromInt(1)}, nil
		}
		return number{d: decimal.Zero}, nil
	case int:
		return number{d: decimal.NewFromInt(int64(val))}, nil
	case int8:
		return number{d: decimal.NewFromInt(int64(val))}, nil
	case int16:
		return number{d: decimal.NewFromInt(int64(val))}, nil
	case int32:
		return number{d: decimal.NewFromInt(int64(val))}, nil
	case int64:
		return number{d: decimal.NewFromInt(val)}, nil
	case uint:
		return number{d: decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(val)), 0)}, nil
	case uint8:
		return number{d: decimal.NewFromInt(int64(val))}, nil
	case uint16:
		return number{d: decimal.NewFromInt(int64(val))}, nil
	case uint32:
		return number{d: decimal.NewFromInt(int64(val))}, nil
	case uint64:
		return number{d: decimal.NewFromBigInt(new(big.Int).SetUint64(val), 0)}, nil
	case float32:
		return number{d: decimal.NewFromFloat32(val)}, nil
	case float64:
		return number{d: decimal.NewFromFloat(val)}, nil
	}
	return number{}, ErrUnsupportedValue.New(v, kind)
}

// parseNumber reads signed decimal text. Currency and group separators are ignored, the sign may
// lead or trail, and blank text is zero.
func parseNumber(s string, kind Kind) (number, error) {
	txt := strings.TrimSpace(s)
	txt = strings.NewReplacer(",", "", "$", "", " ", "").Replace(txt)
	if txt == "" {
		return number{d: decimal.Zero}, nil
	}

	neg, plus := false, false
	switch {
	case strings.HasSuffix(txt, "CR") || strings.HasSuffix(txt, "DB"):
		neg = true
		txt = txt[:len(txt)-2]
	case strings.HasSuffix(txt, "-"):
		neg = true
		txt = txt[:len(txt)-1]
	case strings.HasSuffix(txt, "+"):
		plus = true
		txt = txt[:len(txt)-1]
	}
	if strings.HasPrefix(txt, "-") {
		neg = !neg
		txt = txt[1:]
	} else if strings.HasPrefix(txt, "+") {
		plus = true
		txt = txt[1:]
	}

	if txt == "" || !isDecimalText(txt) {
		return number{}, ErrInvalidFormat.New(s, kind)
	}
	d, err := decimal.NewFromString(txt)
	if err != nil {
		return number{}, ErrInvalidFormat.Wrap(err, s, kind)
	}
	if neg {
		d = d.Neg()
	}
	return number{d: d, explicitPlus: plus}, nil
}

func isDecimalText(s string) bool {
	dot := false
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

// alphanumericMove keeps only the digits of |s| and reads them as an unsigned integer.
func alphanumericMove(s string) number {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return number{d: decimal.Zero}
	}
	d, _ := decimal.NewFromString(sb.String())
	return number{d: d}
}

// scaledDigits returns the absolute value of |d| with the decimal point moved right by
// |decimalDigits|, as a string of digits. Excess fraction digits are truncated.
func scaledDigits(d decimal.Decimal, decimalDigits int) string {
	return d.Abs().Shift(int32(decimalDigits)).Truncate(0).BigInt().String()
}

// fitDigits left-pads |digits| with zeros to |n| characters, or keeps the rightmost |n| digits
// when it is longer. overflow is true if any non-zero digit was dropped.
func fitDigits(digits string, n int) (string, bool) {
	if len(digits) > n {
		dropped := digits[:len(digits)-n]
		return digits[len(digits)-n:], strings.Trim(dropped, "0") != ""
	}
	return strings.Repeat("0", n-len(digits)) + digits, false
}

func isAllZero(digits string) bool {
	return strings.Trim(digits, "0") == ""
}

func (c *Codec) overflow(v interface{}, byteLen int, kind Kind) error {
	if c.strict {
		return ErrOverflow.New(v, byteLen, kind)
	}
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"kind":   kind.String(),
			"length": byteLen,
		}).Debugf("truncated value %v", v)
	}
	return nil
}
