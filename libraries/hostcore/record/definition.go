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
	"fmt"

	"github.com/dolthub/hostrec/libraries/hostcore/arrayidx"
	"github.com/dolthub/hostrec/store/codec"
)

// FillerName is the name given to filler fields. Fillers are never indexed by name.
const FillerName = "FILLER"

// Definition declares the elements of a record, a group or an array occurrence. Each declaration
// is placed at the end of the previous one.
type Definition struct {
	rec      *Record
	outer    *Definition
	parent   Element
	level    int
	start    int
	cursor   int
	indexes  []int
	inArray  bool
	children []Element
	names    map[string]struct{}
	added    []Element
	ended    bool
}

func newRootDefinition(r *Record) *Definition {
	d := &Definition{
		rec:      r,
		parent:   r.Group,
		level:    1,
		start:    0,
		cursor:   r.Group.length,
		children: r.Group.Children(),
		names:    make(map[string]struct{}),
	}
	for _, c := range d.children {
		d.names[c.Name()] = struct{}{}
	}
	return d
}

func (d *Definition) nested(parent Element, indexes []int, inArray bool) *Definition {
	return &Definition{
		rec:     d.rec,
		outer:   d,
		parent:  parent,
		level:   parent.Level() + 1,
		start:   d.cursor,
		cursor:  d.cursor,
		indexes: indexes,
		inArray: inArray,
		names:   make(map[string]struct{}),
	}
}

func (d *Definition) root() *Definition {
	for d.outer != nil {
		d = d.outer
	}
	return d
}

// Record returns the record being defined.
func (d *Definition) Record() *Record {
	return d.rec
}

// Indexes returns the host indexes of the enclosing array occurrences, outermost first.
func (d *Definition) Indexes() []int {
	cp := make([]int, len(d.indexes))
	copy(cp, d.indexes)
	return cp
}

// Offset returns the position the next element will be placed at.
func (d *Definition) Offset() int {
	return d.cursor
}

func (d *Definition) scopeName() string {
	if d.parent == nil {
		return d.rec.Name()
	}
	return d.parent.Name()
}

func (d *Definition) checkName(name string) error {
	if d.root().ended {
		return ErrStructureFinalized.New(d.rec.Name())
	}
	if name == "" {
		return ErrInvalidDefinition.New(name, "elements must be named")
	}
	if _, ok := d.names[name]; ok {
		return ErrDuplicateElement.New(name, d.scopeName())
	}
	return nil
}

func (d *Definition) newElement(name string, length int) element {
	return element{
		name:    arrayidx.MakeElementName(name, d.indexes...),
		level:   d.level,
		offset:  d.cursor,
		length:  length,
		inArray: d.inArray,
		parent:  d.parent,
		rec:     d.rec,
	}
}

func (d *Definition) append(baseName string, e Element) {
	if baseName != "" {
		d.names[baseName] = struct{}{}
	}
	d.children = append(d.children, e)
	d.cursor += e.Length()
	if d.outer == nil {
		d.added = append(d.added, e)
	}
}

// NewField declares a field of |length| bytes.
func (d *Definition) NewField(name string, kind codec.Kind, length int, opts ...FieldOption) (*Field, error) {
	if err := d.checkName(name); err != nil {
		return nil, err
	}
	f, err := d.makeField(name, kind, length, opts...)
	if err != nil {
		return nil, err
	}
	d.append(name, f)
	return f, nil
}

func (d *Definition) makeField(name string, kind codec.Kind, length int, opts ...FieldOption) (*Field, error) {
	if length <= 0 {
		return nil, ErrInvalidDefinition.New(name, fmt.Sprintf("length %d must be positive", length))
	}
	if (kind == codec.CompShort || kind == codec.CompInt || kind == codec.CompLong) && length > 8 {
		return nil, ErrInvalidDefinition.New(name, fmt.Sprintf("binary fields are at most 8 bytes, got %d", length))
	}

	f := &Field{element: d.newElement(name, length), kind: kind}
	f.self = f
	for _, opt := range opts {
		opt(f)
	}
	if f.decimalDigits < 0 {
		return nil, ErrInvalidDefinition.New(name, "decimal digits must not be negative")
	}
	if f.hasDefault {
		if _, err := f.initialBytes(); err != nil {
			return nil, ErrInvalidDefinition.Wrap(err, name, err.Error())
		}
	}
	return f, nil
}

// CreateFillerField declares an unnamed field of |length| bytes initialised with |fill|.
func (d *Definition) CreateFillerField(length int, fill FillPattern) (*Field, error) {
	if d.root().ended {
		return nil, ErrStructureFinalized.New(d.rec.Name())
	}
	if length <= 0 {
		return nil, ErrInvalidDefinition.New(FillerName, fmt.Sprintf("length %d must be positive", length))
	}
	f := &Field{element: d.newElement(FillerName, length), kind: codec.String, filler: true, fill: fill}
	f.self = f
	d.append("", f)
	return f, nil
}

// NewGroup declares a group whose children are declared by |configure|.
func (d *Definition) NewGroup(name string, configure func(*Definition) error) (*Group, error) {
	if err := d.checkName(name); err != nil {
		return nil, err
	}
	g, err := d.makeGroup(name, d.indexes, d.inArray, configure)
	if err != nil {
		return nil, err
	}
	d.append(name, g)
	return g, nil
}

func (d *Definition) makeGroup(name string, indexes []int, inArray bool, configure func(*Definition) error) (*Group, error) {
	g := &Group{element: d.newElement(name, 0)}
	g.name = arrayidx.MakeElementName(name, indexes...)
	g.inArray = inArray
	g.self = g

	child := d.nested(g, indexes, inArray)
	if configure != nil {
		if err := configure(child); err != nil {
			return nil, err
		}
	}
	if len(child.children) == 0 {
		return nil, ErrInvalidDefinition.New(name, "a group must contain at least one element")
	}
	g.children = child.children
	g.length = child.cursor - child.start
	return g, nil
}

// ArrayOption configures a GroupArray as it is declared.
type ArrayOption func(*arrayHooks)

type arrayHooks struct {
	before func(occurrence int) error
	after  func(occurrence int, e Element) error
}

// WithBefore runs |fn| before each occurrence is declared.
func WithBefore(fn func(occurrence int) error) ArrayOption {
	return func(h *arrayHooks) {
		h.before = fn
	}
}

// WithAfter runs |fn| after each occurrence is declared.
func WithAfter(fn func(occurrence int, e Element) error) ArrayOption {
	return func(h *arrayHooks) {
		h.after = fn
	}
}

// NewGroupArray declares |count| occurrences of a group. |configure| is called once per
// occurrence and must declare the same layout every time.
func (d *Definition) NewGroupArray(name string, count int, configure func(*Definition) error, opts ...ArrayOption) (*GroupArray, error) {
	return d.newArray(name, count, opts, func(s *Definition, idx []int) (Element, error) {
		return s.makeGroup(name, idx, true, configure)
	})
}

// NewFieldArray declares |count| occurrences of a field.
func (d *Definition) NewFieldArray(name string, count int, kind codec.Kind, length int, opts ...FieldOption) (*GroupArray, error) {
	return d.newArray(name, count, nil, func(s *Definition, idx []int) (Element, error) {
		return s.makeField(name, kind, length, opts...)
	})
}

func (d *Definition) newArray(name string, count int, opts []ArrayOption, makeOccurrence func(s *Definition, idx []int) (Element, error)) (*GroupArray, error) {
	if err := d.checkName(name); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, ErrInvalidDefinition.New(name, fmt.Sprintf("occurrence count %d must be positive", count))
	}

	var hooks arrayHooks
	for _, opt := range opts {
		opt(&hooks)
	}

	ga := &GroupArray{element: d.newElement(name, 0)}
	ga.name = arrayidx.MakeElementName(name, d.indexes...)
	ga.self = ga

	// occurrences are declared through a scope whose parent is the array
	scope := d.nested(ga, d.indexes, true)
	scope.level = d.level

	occLen := -1
	for i := 0; i < count; i++ {
		if hooks.before != nil {
			if err := hooks.before(i); err != nil {
				return nil, err
			}
		}

		idx := append(append([]int(nil), d.indexes...), i)
		occ, err := scope.occurrence(makeOccurrence, idx)
		if err != nil {
			return nil, err
		}
		if occLen == -1 {
			occLen = occ.Length()
		} else if occ.Length() != occLen {
			return nil, ErrInvalidDefinition.New(name, fmt.Sprintf("occurrence %d is %d bytes, expected %d", i, occ.Length(), occLen))
		}

		ga.occurrences = append(ga.occurrences, occ)
		scope.cursor += occ.Length()

		if hooks.after != nil {
			if err := hooks.after(i, occ); err != nil {
				return nil, err
			}
		}
	}

	ga.length = scope.cursor - scope.start
	d.append(name, ga)
	return ga, nil
}

// occurrence builds one array occurrence at the scope's cursor. Names declared while it runs
// carry |idx|.
func (d *Definition) occurrence(makeOccurrence func(s *Definition, idx []int) (Element, error), idx []int) (Element, error) {
	saved := d.indexes
	d.indexes = idx
	defer func() { d.indexes = saved }()

	return makeOccurrence(d, idx)
}

// adopt places a copy of |e|, an element of any record, at the end of this scope.
func (d *Definition) adopt(e Element) (Element, error) {
	if d.root().ended {
		return nil, ErrStructureFinalized.New(d.rec.Name())
	}
	cp := e.clone(d.rec, d.parent, d.cursor, d.level)
	baseName := cp.Name()
	if f, ok := cp.(*Field); ok && f.filler {
		baseName = ""
	}
	d.append(baseName, cp)
	return cp, nil
}

// EndDefinition finalizes the record: the buffer is allocated to the total length and every new
// element is reset to its initial value. It is called automatically when a Define callback
// returns, and may only be called on the record's top level definition.
func (d *Definition) EndDefinition() error {
	if d.outer != nil {
		return ErrInvalidDefinition.New(d.scopeName(), "EndDefinition called inside a nested definition")
	}
	if d.ended {
		return nil
	}
	d.ended = true
	return d.rec.commit(d.children, d.cursor, d.added)
}
