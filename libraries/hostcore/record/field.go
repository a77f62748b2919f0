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
	"github.com/shopspring/decimal"

	"github.com/dolthub/hostrec/store/codec"
)

// Field is a leaf element holding one value of a codec.Kind.
type Field struct {
	element
	kind          codec.Kind
	decimalDigits int
	def           interface{}
	hasDefault    bool
	filler        bool
	fill          FillPattern
}

var _ Element = (*Field)(nil)

// FieldOption configures a Field as it is declared.
type FieldOption func(*Field)

// WithDefault sets the value the field is reset to.
func WithDefault(v interface{}) FieldOption {
	return func(f *Field) {
		f.def = v
		f.hasDefault = true
	}
}

// WithDecimalDigits sets the number of implied decimal places.
func WithDecimalDigits(n int) FieldOption {
	return func(f *Field) {
		f.decimalDigits = n
	}
}

func (f *Field) Kind() codec.Kind {
	return f.kind
}

func (f *Field) DecimalDigits() int {
	return f.decimalDigits
}

// Default returns the configured default and whether one was set.
func (f *Field) Default() (interface{}, bool) {
	return f.def, f.hasDefault
}

// IsFiller returns true for unnamed filler fields.
func (f *Field) IsFiller() bool {
	return f.filler
}

// Fill returns the pattern a filler is initialised with.
func (f *Field) Fill() FillPattern {
	return f.fill
}

// initialBytes is the encoding the field is reset to.
func (f *Field) initialBytes() ([]byte, error) {
	c := f.codec()
	switch {
	case f.filler:
		b := make([]byte, f.length)
		fb := f.fill.byteFor(c.Charset())
		for i := range b {
			b[i] = fb
		}
		return b, nil
	case f.hasDefault:
		if p, ok := f.def.(FillPattern); ok {
			b := make([]byte, f.length)
			fb := p.byteFor(c.Charset())
			for i := range b {
				b[i] = fb
			}
			return b, nil
		}
		return c.Serialize(f.def, f.kind, f.length, f.kind, f.decimalDigits)
	default:
		return c.ZeroValue(f.kind, f.length, f.decimalDigits), nil
	}
}

// ResetToInitialValue stores the field's default, or the zero value of its kind.
func (f *Field) ResetToInitialValue() error {
	b, err := f.initialBytes()
	if err != nil {
		return err
	}
	copy(f.view(), b)
	return nil
}

// Value decodes the field: string for String fields, bool for Boolean fields and decimal.Decimal
// for everything else.
func (f *Field) Value() (interface{}, error) {
	return f.codec().Deserialize(f.view(), f.kind, f.decimalDigits)
}

// TryValue is Value reporting failure with a bool.
func (f *Field) TryValue() (interface{}, bool) {
	return f.codec().TryDeserialize(f.view(), f.kind, f.decimalDigits)
}

// SetValue is Assign.
func (f *Field) SetValue(v interface{}) error {
	return f.Assign(v)
}

// Decimal returns the field's numeric value. String fields are parsed as display text.
func (f *Field) Decimal() (decimal.Decimal, error) {
	kind := f.kind
	if kind == codec.String {
		kind = codec.NumericEdited
	}
	v, err := f.codec().Deserialize(f.view(), kind, f.decimalDigits)
	if err != nil {
		return decimal.Decimal{}, err
	}
	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case bool:
		if val {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	}
	return decimal.Decimal{}, codec.ErrInvalidFormat.New(f.AsString(), f.kind)
}

// Int64 returns the integer part of the field's numeric value.
func (f *Field) Int64() (int64, error) {
	d, err := f.Decimal()
	if err != nil {
		return 0, err
	}
	return d.IntPart(), nil
}

// Bool decodes the field as a boolean.
func (f *Field) Bool() (bool, error) {
	v, err := f.codec().Deserialize(f.view(), codec.Boolean, 0)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (f *Field) clone(rec *Record, parent Element, offset, level int) Element {
	cp := *f
	cp.self = &cp
	cp.rec = rec
	cp.parent = parent
	cp.offset = offset
	cp.level = level
	return &cp
}
