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
	"github.com/dolthub/hostrec/libraries/hostcore/arrayidx"
)

// Group is an alphanumeric element made of contiguous children.
type Group struct {
	element
	children []Element
}

var _ Element = (*Group)(nil)

// Children returns the group's direct children in declaration order.
func (g *Group) Children() []Element {
	cp := make([]Element, len(g.children))
	copy(cp, g.children)
	return cp
}

// Child returns the direct child named |name|. Children inside array occurrences also match on
// their base name.
func (g *Group) Child(name string) (Element, bool) {
	for _, c := range g.children {
		if matchesName(c, name) {
			return c, true
		}
	}
	return nil, false
}

// ResetToInitialValue resets every child.
func (g *Group) ResetToInitialValue() error {
	for _, c := range g.children {
		if err := c.ResetToInitialValue(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) clone(rec *Record, parent Element, offset, level int) Element {
	cp := &Group{element: g.element}
	cp.self = cp
	cp.rec = rec
	cp.parent = parent
	cp.offset = offset
	cp.level = level
	cp.children = cloneChildren(g.children, rec, cp, offset, level+1)
	return cp
}

func cloneChildren(children []Element, rec *Record, parent Element, offset, level int) []Element {
	out := make([]Element, len(children))
	pos := offset
	for i, c := range children {
		out[i] = c.clone(rec, parent, pos, level)
		pos += c.Length()
	}
	return out
}

// GroupArray is a fixed number of occurrences of a Field or Group, stored back to back.
type GroupArray struct {
	element
	occurrences []Element
}

var _ Element = (*GroupArray)(nil)

// Count returns the number of occurrences.
func (ga *GroupArray) Count() int {
	return len(ga.occurrences)
}

// Occurrence returns the occurrence at 0-based |idx|.
func (ga *GroupArray) Occurrence(idx int) (Element, error) {
	if idx < 0 || idx >= len(ga.occurrences) {
		return nil, ErrIndexOutOfRange.New(idx, ga.name, len(ga.occurrences))
	}
	return ga.occurrences[idx], nil
}

// At returns the occurrence at |idx| given in the |ib| convention.
func (ga *GroupArray) At(ib arrayidx.IndexBase, idx int) (Element, error) {
	host := ib.LegacyIndexToHostIndex(idx)
	if host < 0 || host >= len(ga.occurrences) {
		return nil, ErrIndexOutOfRange.New(idx, ga.name, len(ga.occurrences))
	}
	return ga.occurrences[host], nil
}

// Occurrences returns every occurrence in order.
func (ga *GroupArray) Occurrences() []Element {
	cp := make([]Element, len(ga.occurrences))
	copy(cp, ga.occurrences)
	return cp
}

// ResetToInitialValue resets every occurrence.
func (ga *GroupArray) ResetToInitialValue() error {
	for _, o := range ga.occurrences {
		if err := o.ResetToInitialValue(); err != nil {
			return err
		}
	}
	return nil
}

func (ga *GroupArray) clone(rec *Record, parent Element, offset, level int) Element {
	cp := &GroupArray{element: ga.element}
	cp.self = cp
	cp.rec = rec
	cp.parent = parent
	cp.offset = offset
	cp.level = level
	// occurrences sit at the array's own level
	cp.occurrences = cloneChildren(ga.occurrences, rec, cp, offset, level)
	return cp
}

// matchesName returns true if |e| is named |name|, or if |e| sits inside an array and its name
// without index suffixes is |name|.
func matchesName(e Element, name string) bool {
	if e.Name() == name {
		return true
	}
	if !e.IsInArray() {
		return false
	}
	_, baseName := arrayidx.GetElementIndexes(e.Name())
	return baseName == name
}
