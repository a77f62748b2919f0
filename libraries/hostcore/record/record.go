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
	"strings"
	"weak"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/hostrec/store/bytebuf"
	"github.com/dolthub/hostrec/store/codec"
)

// Record is the root of a structure. It owns one buffer and can temporarily be pointed at another
// record's buffer. The embedded Group spans the whole buffer.
type Record struct {
	*Group

	codec  *codec.Codec
	logger *logrus.Entry

	owned   *bytebuf.ByteBuffer
	alias   weak.Pointer[bytebuf.ByteBuffer]
	aliased bool

	index    map[string]Element
	defining bool
	defined  bool
}

var _ Element = (*Record)(nil)

// Option configures a Record.
type Option func(*Record)

// WithCodec sets the codec used by every element of the record.
func WithCodec(c *codec.Codec) Option {
	return func(r *Record) {
		r.codec = c
	}
}

// WithLogger sets the logger for structure and alias events.
func WithLogger(logger *logrus.Entry) Option {
	return func(r *Record) {
		r.logger = logger
	}
}

// NewEmpty returns a record with no structure. Call Define to declare its elements.
func NewEmpty(name string, opts ...Option) *Record {
	r := &Record{
		codec:  codec.Default,
		logger: logrus.NewEntry(logrus.StandardLogger()),
		owned:  bytebuf.New(0),
		index:  make(map[string]Element),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithField("record", name)

	r.Group = &Group{element: element{name: name, rec: r}}
	r.Group.self = r
	return r
}

// New returns a record whose structure is declared by |define|.
func New(name string, define func(*Definition) error, opts ...Option) (*Record, error) {
	r := NewEmpty(name, opts...)
	if err := r.Define(define); err != nil {
		return nil, err
	}
	return r, nil
}

// Define declares the record's structure. A record is defined once; later changes go through
// AddToStructure.
func (r *Record) Define(define func(*Definition) error) error {
	if r.defining {
		return ErrDefinitionInProgress.New(r.Name())
	}
	if r.defined {
		return ErrStructureFinalized.New(r.Name())
	}
	if _, err := r.extend(define); err != nil {
		return err
	}
	r.defined = true
	return nil
}

// IsDefined returns true once the structure has been finalized.
func (r *Record) IsDefined() bool {
	return r.defined
}

// IsDefining returns true while a definition of the record is running.
func (r *Record) IsDefining() bool {
	return r.defining
}

func (r *Record) extend(define func(*Definition) error) ([]Element, error) {
	if r.defining {
		return nil, ErrDefinitionInProgress.New(r.Name())
	}
	r.defining = true
	defer func() { r.defining = false }()

	d := newRootDefinition(r)
	if define != nil {
		if err := define(d); err != nil {
			return nil, err
		}
	}
	if err := d.EndDefinition(); err != nil {
		return nil, err
	}
	return d.added, nil
}

// commit installs a new top level element list and grows the owned buffer in place to |length|
// bytes, keeping the current bytes and resetting |added|. Aliases and handles that point at the
// owned buffer stay valid.
func (r *Record) commit(children []Element, length int, added []Element) error {
	r.RestoreInitialDataBuffer()

	oldChildren, oldLength := r.Group.children, r.Group.length

	r.owned.Resize(length)
	r.Group.children = children
	r.Group.length = length

	for _, e := range added {
		if err := e.ResetToInitialValue(); err != nil {
			r.Group.children, r.Group.length = oldChildren, oldLength
			r.owned.Resize(oldLength)
			return err
		}
	}

	r.rebuildIndex()
	r.logger.WithFields(logrus.Fields{
		"length":   length,
		"elements": len(added),
	}).Debug("structure defined")
	return nil
}

func (r *Record) rebuildIndex() {
	idx := make(map[string]Element)
	_ = r.Walk(func(e Element) (bool, error) {
		if f, ok := e.(*Field); ok && f.filler {
			return false, nil
		}
		if _, ok := idx[e.Name()]; !ok {
			idx[e.Name()] = e
		}
		return false, nil
	})
	r.index = idx
}

// Codec returns the record's codec.
func (r *Record) Codec() *codec.Codec {
	return r.codec
}

// Logger returns the record's logger.
func (r *Record) Logger() *logrus.Entry {
	return r.logger
}

// Elements returns the top level elements.
func (r *Record) Elements() []Element {
	return r.Group.Children()
}

// Walk calls |cb| for every element below the record in depth first declaration order, stopping
// when |cb| returns true or an error.
func (r *Record) Walk(cb func(e Element) (stop bool, err error)) error {
	_, err := walk(r.Group.children, cb)
	return err
}

func walk(elems []Element, cb func(e Element) (bool, error)) (bool, error) {
	for _, e := range elems {
		stop, err := cb(e)
		if err != nil || stop {
			return true, err
		}

		var children []Element
		switch t := e.(type) {
		case *Group:
			children = t.children
		case *GroupArray:
			children = t.occurrences
		case *Record:
			children = t.Group.children
		}
		if stop, err := walk(children, cb); err != nil || stop {
			return true, err
		}
	}
	return false, nil
}

// ElementByName returns the first element with exactly |name|.
func (r *Record) ElementByName(name string) (Element, bool) {
	e, ok := r.index[name]
	return e, ok
}

// ElementByNameNested finds |name| in the flat index and otherwise descends through groups and
// arrays, matching in-array elements by their base name. Qualified names of the form
// "CHILD OF PARENT" (or IN) restrict the search to the parent's subtree.
func (r *Record) ElementByNameNested(name string) (Element, bool) {
	if e, ok := r.index[name]; ok {
		return e, true
	}

	parts := splitQualified(name)
	scope := r.Group.children
	for i := len(parts) - 1; i >= 0; i-- {
		e, ok := findNested(scope, parts[i])
		if !ok {
			return nil, false
		}
		if i == 0 {
			return e, true
		}
		scope = childrenOf(e)
	}
	return nil, false
}

func splitQualified(name string) []string {
	fields := strings.Fields(name)
	var parts []string
	var cur []string
	for _, f := range fields {
		if f == "OF" || f == "IN" {
			parts = append(parts, strings.Join(cur, " "))
			cur = nil
			continue
		}
		cur = append(cur, f)
	}
	return append(parts, strings.Join(cur, " "))
}

func childrenOf(e Element) []Element {
	switch t := e.(type) {
	case *Group:
		return t.children
	case *GroupArray:
		return t.occurrences
	case *Record:
		return t.Group.children
	}
	return nil
}

func findNested(elems []Element, name string) (Element, bool) {
	var found Element
	_, _ = walk(elems, func(e Element) (bool, error) {
		if matchesName(e, name) {
			found = e
			return true, nil
		}
		return false, nil
	})
	return found, found != nil
}

// Field returns the field named |name|, searching nested elements if needed.
func (r *Record) Field(name string) (*Field, error) {
	e, ok := r.ElementByNameNested(name)
	if !ok {
		return nil, ErrElementNotFound.New(name, r.Name())
	}
	f, ok := e.(*Field)
	if !ok {
		return nil, ErrWrongElementType.New(name, e)
	}
	return f, nil
}

// GroupByName returns the group named |name|, searching nested elements if needed.
func (r *Record) GroupByName(name string) (*Group, error) {
	e, ok := r.ElementByNameNested(name)
	if !ok {
		return nil, ErrElementNotFound.New(name, r.Name())
	}
	g, ok := e.(*Group)
	if !ok {
		return nil, ErrWrongElementType.New(name, e)
	}
	return g, nil
}

// Array returns the group array named |name|, searching nested elements if needed.
func (r *Record) Array(name string) (*GroupArray, error) {
	e, ok := r.ElementByNameNested(name)
	if !ok {
		return nil, ErrElementNotFound.New(name, r.Name())
	}
	ga, ok := e.(*GroupArray)
	if !ok {
		return nil, ErrWrongElementType.New(name, e)
	}
	return ga, nil
}

// ResetToInitialValue resets every element of the record.
func (r *Record) ResetToInitialValue() error {
	return r.Group.ResetToInitialValue()
}

// Fingerprint hashes the record's layout: names, levels, offsets, lengths, kinds and decimal
// digits of every element. Records with equal fingerprints share a byte layout.
func (r *Record) Fingerprint() uint64 {
	return Fingerprint(r.Group.children...)
}

// Fingerprint hashes the layout of |elems| relative to the first element's position.
func Fingerprint(elems ...Element) uint64 {
	h := xxhash.New()
	if len(elems) == 0 {
		return h.Sum64()
	}
	origin := elems[0].Position()
	_, _ = walk(elems, func(e Element) (bool, error) {
		_, _ = fmt.Fprintf(h, "%s|%d|%d|%d|%v|%d\n", e.Name(), e.Level(), e.Position()-origin, e.Length(), e.Kind(), e.DecimalDigits())
		return false, nil
	})
	return h.Sum64()
}

func (r *Record) clone(rec *Record, parent Element, offset, level int) Element {
	return r.Group.clone(rec, parent, offset, level)
}
