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

// AddToStructure appends copies of |elems|, which may belong to any record, to the end of this
// record's structure. The record gets a new buffer holding its current bytes followed by the
// current bytes of |elems|. Any alias is restored first. Names already present keep resolving to
// the first declaration.
func (r *Record) AddToStructure(elems ...Element) error {
	return r.merge("", elems)
}

// AddRecordToStructure appends copies of |other|'s top level elements.
func (r *Record) AddRecordToStructure(other *Record) error {
	return r.merge("", other.Elements())
}

// AddToStructureAsGroup appends a new group named |groupName| holding copies of |elems|.
func (r *Record) AddToStructureAsGroup(groupName string, elems ...Element) error {
	return r.merge(groupName, elems)
}

func (r *Record) merge(groupName string, elems []Element) error {
	if len(elems) == 0 {
		return nil
	}

	srcBytes := make([][]byte, len(elems))
	for i, e := range elems {
		srcBytes[i] = e.AsBytes()
	}

	var copies []Element
	added, err := r.extend(func(d *Definition) error {
		adoptAll := func(d *Definition) error {
			for _, e := range elems {
				cp, err := d.adopt(e)
				if err != nil {
					return err
				}
				copies = append(copies, cp)
			}
			return nil
		}
		if groupName == "" {
			return adoptAll(d)
		}
		_, err := d.NewGroup(groupName, adoptAll)
		return err
	})
	if err != nil {
		return err
	}
	r.defined = true

	for i, cp := range copies {
		copy(cp.base().view(), srcBytes[i])
	}

	r.logger.WithField("elements", len(added)).Debug("structure merged")
	return nil
}
