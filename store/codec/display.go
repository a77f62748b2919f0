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
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// serializeString right-pads with spaces or keeps the first |byteLen| bytes. []byte values are
// stored as-is, everything else goes through the charset.
func (c *Codec) serializeString(v interface{}, byteLen int) ([]byte, error) {
	raw, err := c.displayBytes(v)
	if err != nil {
		return nil, err
	}

	if len(raw) > byteLen {
		if err := c.overflow(c.cs.Decode(raw), byteLen, String); err != nil {
			return nil, err
		}
		out := make([]byte, byteLen)
		copy(out, raw[:byteLen])
		return out, nil
	}

	out := bytes.Repeat([]byte{c.cs.SpaceByte()}, byteLen)
	copy(out, raw)
	return out, nil
}

// displayBytes renders |v| as unpadded display text.
func (c *Codec) displayBytes(v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		return val, nil
	case string:
		return c.cs.Encode(val), nil
	case number:
		return c.cs.Encode(val.d.String()), nil
	case decimal.Decimal:
		return c.cs.Encode(val.String()), nil
	case bool:
		return c.cs.Encode(boolText(val)), nil
	}
	num, err := c.toNumber(v, String, String)
	if err != nil {
		return nil, err
	}
	return c.cs.Encode(num.d.String()), nil
}

// serializeEdited renders the number as display text with |decimalDigits| fraction digits,
// right-justified in spaces. Truncation keeps the rightmost characters.
func (c *Codec) serializeEdited(num number, byteLen, decimalDigits int) ([]byte, error) {
	txt := num.d.Truncate(int32(decimalDigits)).StringFixed(int32(decimalDigits))
	if len(txt) > byteLen {
		if err := c.overflow(num.d, byteLen, NumericEdited); err != nil {
			return nil, err
		}
		txt = txt[len(txt)-byteLen:]
	} else {
		txt = strings.Repeat(" ", byteLen-len(txt)) + txt
	}
	return c.cs.Encode(txt), nil
}

func (c *Codec) deserializeEdited(b []byte) (decimal.Decimal, error) {
	num, err := parseNumber(c.cs.Decode(b), NumericEdited)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return num.d, nil
}

func boolText(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// serializeBoolean stores "1" or "0" followed by spaces.
func (c *Codec) serializeBoolean(v interface{}, byteLen int) ([]byte, error) {
	var b bool
	switch val := v.(type) {
	case bool:
		b = val
	case string:
		parsed, err := parseBool(val)
		if err != nil {
			return nil, err
		}
		b = parsed
	case []byte:
		parsed, err := parseBool(c.cs.Decode(val))
		if err != nil {
			return nil, err
		}
		b = parsed
	default:
		num, err := c.toNumber(v, Boolean, Boolean)
		if err != nil {
			return nil, err
		}
		b = !num.d.IsZero()
	}
	return c.serializeString(boolText(b), byteLen)
}

func (c *Codec) deserializeBoolean(b []byte) (bool, error) {
	return parseBool(c.cs.Decode(b))
}

func parseBool(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "Y", "T", "TRUE", "YES":
		return true, nil
	case "0", "N", "F", "FALSE", "NO", "":
		return false, nil
	}
	return false, ErrInvalidFormat.New(s, Boolean)
}
