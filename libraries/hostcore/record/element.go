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

// Package record lays typed fields out in the contiguous byte buffer of a host record.
//
// A Record is built by a Definition, which appends Fields, Groups and GroupArrays at sequential
// byte offsets with no padding. Once defined, every element reads and writes its own sub-range of
// the record's active buffer through the codec, so a record can be re-pointed at another record's
// buffer (SetAddressToAddressOf) without copying a byte.
package record

import (
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/hostrec/store/codec"
)

var (
	// ErrDuplicateElement is returned when a name is declared twice in the same scope.
	ErrDuplicateElement = errors.NewKind("element `%s` is already defined in `%s`")
	// ErrDefinitionInProgress is returned when a structure is redefined from inside its own definition.
	ErrDefinitionInProgress = errors.NewKind("the structure of `%s` is already being defined")
	// ErrStructureFinalized is returned when a finalized structure is defined again.
	ErrStructureFinalized = errors.NewKind("the structure of `%s` has already been defined")
	// ErrInvalidDefinition is returned for malformed element declarations.
	ErrInvalidDefinition = errors.NewKind("invalid definition of `%s`: %s")
	// ErrElementNotFound is returned when a lookup by name fails.
	ErrElementNotFound = errors.NewKind("element `%s` not found in `%s`")
	// ErrIndexOutOfRange is returned for array indexes outside the declared occurrences.
	ErrIndexOutOfRange = errors.NewKind("index %d is outside `%s` which has %d occurrences")
	// ErrWrongElementType is returned when an element is not of the requested type.
	ErrWrongElementType = errors.NewKind("element `%s` is a %T")
)

// BufferValue is anything that exposes a run of bytes with a kind. Elements and records implement
// it, and Compare and Equal work over it.
type BufferValue interface {
	AsBytes() []byte
	Kind() codec.Kind
	DecimalDigits() int
}

// Element is a named range of a record's buffer: a Field, a Group, a GroupArray or the Record
// itself.
type Element interface {
	BufferValue

	Name() string
	Level() int
	Position() int
	Length() int
	IsInArray() bool
	Parent() Element
	Record() *Record

	AsString() string
	SetBytes(b []byte) error
	Assign(v interface{}) error
	AssignFrom(src BufferValue) error

	ResetToInitialValue() error
	InitializeWithLowValues()
	FillAllWith(p FillPattern)
	SetMinValue()
	SetMaxValue()

	ContainsOnly(b byte) bool
	IsSpaces() bool
	IsNotSpaces() bool
	IsZeroes() bool
	IsNotZeroes() bool
	IsMinValue() bool
	IsNotMinValue() bool
	IsMaxValue() bool
	IsNotMaxValue() bool

	CompareTo(v interface{}) (int, error)
	IsEqualTo(v interface{}) bool
	IsNotEqualTo(v interface{}) bool

	base() *element
	clone(rec *Record, parent Element, offset, level int) Element
}

// FillPattern is a figurative constant used to fill an element.
type FillPattern int

const (
	Spaces FillPattern = iota
	Zeroes
	Hashes
	LowValues
	HighValues
)

func (p FillPattern) byteFor(cs codec.Charset) byte {
	switch p {
	case Zeroes:
		return cs.ZeroByte()
	case Hashes:
		return cs.Encode("#")[0]
	case LowValues:
		return 0x00
	case HighValues:
		return 0xFF
	default:
		return cs.SpaceByte()
	}
}

// element holds the layout shared by every element type. self is the concrete element embedding
// it, so shared methods dispatch on the concrete kind.
type element struct {
	self    Element
	name    string
	level   int
	offset  int
	length  int
	inArray bool
	parent  Element
	rec     *Record
}

func (e *element) base() *element {
	return e
}

// Name returns the element's name. Array occurrences and the elements inside them carry their
// host indexes as a suffix.
func (e *element) Name() string {
	return e.name
}

// Level is the nesting depth: 0 for the record, 1 for its top level elements.
func (e *element) Level() int {
	return e.level
}

// Position is the element's offset from the start of the record's buffer.
func (e *element) Position() int {
	return e.offset
}

func (e *element) Length() int {
	return e.length
}

func (e *element) IsInArray() bool {
	return e.inArray
}

func (e *element) Parent() Element {
	return e.parent
}

func (e *element) Record() *Record {
	return e.rec
}

// Kind of a non-field element is String: groups are alphanumeric.
func (e *element) Kind() codec.Kind {
	return codec.String
}

func (e *element) DecimalDigits() int {
	return 0
}

func (e *element) codec() *codec.Codec {
	return e.rec.codec
}

// view returns the live bytes of the element in the active buffer.
func (e *element) view() []byte {
	b, err := e.rec.buffer().Slice(e.offset, e.length)
	if err != nil {
		// aliases are checked against the record length when they are set up
		panic(err)
	}
	return b
}

// AsBytes returns a copy of the element's bytes.
func (e *element) AsBytes() []byte {
	v := e.view()
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp
}

// AsString returns the element's bytes decoded with the record's charset.
func (e *element) AsString() string {
	return e.codec().Charset().Decode(e.view())
}

// SetBytes stores |b| as an alphanumeric value: truncated or padded with spaces to the element
// length.
func (e *element) SetBytes(b []byte) error {
	enc, err := e.codec().Serialize(b, codec.String, e.length, codec.String, 0)
	if err != nil {
		return err
	}
	copy(e.view(), enc)
	return nil
}

// Assign encodes |v| using the element's kind, length and decimal digits.
func (e *element) Assign(v interface{}) error {
	if bv, ok := v.(BufferValue); ok {
		return e.self.AssignFrom(bv)
	}
	kind := e.self.Kind()
	enc, err := e.codec().Serialize(v, kind, e.length, kind, e.self.DecimalDigits())
	if err != nil {
		return err
	}
	copy(e.view(), enc)
	return nil
}

// AssignFrom moves another element's value into this one. Numeric sources are moved by value;
// alphanumeric sources are moved as characters.
func (e *element) AssignFrom(src BufferValue) error {
	kind := e.self.Kind()
	srcKind := src.Kind()

	var v interface{} = src.AsBytes()
	if srcKind.IsNumeric() || srcKind == codec.NumericEdited || (srcKind == codec.Boolean && kind != codec.String) {
		decoded, err := codecFor(src).Deserialize(src.AsBytes(), srcKind, src.DecimalDigits())
		if err != nil {
			return err
		}
		v = decoded
	} else if kind != codec.String && kind != codec.Boolean {
		srcKind = codec.String
	}

	enc, err := e.codec().Serialize(v, kind, e.length, srcKind, e.self.DecimalDigits())
	if err != nil {
		return err
	}
	copy(e.view(), enc)
	return nil
}

func (e *element) fill(v byte) {
	b := e.view()
	for i := range b {
		b[i] = v
	}
}

// InitializeWithLowValues sets every byte to 0x00.
func (e *element) InitializeWithLowValues() {
	e.fill(0x00)
}

// FillAllWith sets every byte to the encoding of |p|.
func (e *element) FillAllWith(p FillPattern) {
	e.fill(p.byteFor(e.codec().Charset()))
}

// SetMinValue sets every byte to 0x00.
func (e *element) SetMinValue() {
	e.fill(0x00)
}

// SetMaxValue sets every byte to 0xFF.
func (e *element) SetMaxValue() {
	e.fill(0xFF)
}

// ContainsOnly returns true if every byte of the element equals |b|.
func (e *element) ContainsOnly(b byte) bool {
	for _, v := range e.view() {
		if v != b {
			return false
		}
	}
	return true
}

func (e *element) IsSpaces() bool {
	return e.ContainsOnly(e.codec().Charset().SpaceByte())
}

func (e *element) IsNotSpaces() bool {
	return !e.IsSpaces()
}

func (e *element) IsZeroes() bool {
	return e.ContainsOnly(e.codec().Charset().ZeroByte())
}

func (e *element) IsNotZeroes() bool {
	return !e.IsZeroes()
}

func (e *element) IsMinValue() bool {
	return e.ContainsOnly(0x00)
}

func (e *element) IsNotMinValue() bool {
	return !e.IsMinValue()
}

func (e *element) IsMaxValue() bool {
	return e.ContainsOnly(0xFF)
}

func (e *element) IsNotMaxValue() bool {
	return !e.IsMaxValue()
}

// CompareTo compares the element with a BufferValue or a Go value. A Go value is compared at its full
// size: numbers against the element's decoded value, anything else as display text padded with spaces.
func (e *element) CompareTo(v interface{}) (int, error) {
	if bv, ok := v.(BufferValue); ok {
		return Compare(e.self, bv), nil
	}

	c := e.codec()
	kind := e.self.Kind()
	if kind.IsNumeric() || kind == codec.NumericEdited {
		if mine, ok := decodeNumber(c, e.self); ok {
			other, err := c.Number(v, kind)
			if err != nil {
				return 0, err
			}
			return mine.Cmp(other), nil
		}
	}

	raw, err := c.Text(v)
	if err != nil {
		return 0, err
	}
	return compareBytes(e.view(), raw, c.Charset().SpaceByte()), nil
}

func (e *element) IsEqualTo(v interface{}) bool {
	c, err := e.CompareTo(v)
	return err == nil && c == 0
}

func (e *element) IsNotEqualTo(v interface{}) bool {
	return !e.IsEqualTo(v)
}

// bytesValue is a detached BufferValue.
type bytesValue struct {
	b             []byte
	kind          codec.Kind
	decimalDigits int
}

func (bv bytesValue) AsBytes() []byte {
	return bv.b
}

func (bv bytesValue) Kind() codec.Kind {
	return bv.kind
}

func (bv bytesValue) DecimalDigits() int {
	return bv.decimalDigits
}

// NewBufferValue wraps raw bytes as a BufferValue of |kind|.
func NewBufferValue(b []byte, kind codec.Kind, decimalDigits int) BufferValue {
	return bytesValue{b: b, kind: kind, decimalDigits: decimalDigits}
}
