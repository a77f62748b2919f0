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

// ArrayElementAccessor looks up occurrences of the array element |base| using indexes in the
// caller's convention.
type ArrayElementAccessor[T Element] struct {
	rec  *Record
	base string
	ib   arrayidx.IndexBase
}

// NewArrayElementAccessor returns an accessor for the occurrences of |base| in |rec|.
func NewArrayElementAccessor[T Element](rec *Record, base string, ib arrayidx.IndexBase) *ArrayElementAccessor[T] {
	return &ArrayElementAccessor[T]{rec: rec, base: base, ib: ib}
}

// At returns the occurrence at |indexes|, outermost first.
func (a *ArrayElementAccessor[T]) At(indexes ...int) (T, error) {
	var zero T
	host := a.ib.LegacyIndexesToHostIndexes(indexes)
	for i, idx := range host {
		if idx < 0 {
			return zero, ErrIndexOutOfRange.New(indexes[i], a.base, a.bound(host[:i]))
		}
	}

	name := arrayidx.MakeElementName(a.base, host...)
	e, ok := a.rec.ElementByName(name)
	if !ok {
		if _, exists := a.rec.ElementByNameNested(a.base); !exists || len(indexes) == 0 {
			return zero, ErrElementNotFound.New(a.base, a.rec.Name())
		}
		return zero, ErrIndexOutOfRange.New(indexes[len(indexes)-1], a.base, a.bound(host[:len(host)-1]))
	}

	t, ok := e.(T)
	if !ok {
		return zero, ErrWrongElementType.New(name, e)
	}
	return t, nil
}

// bound returns the number of occurrences of the array reached through |outer|, the host indexes
// of enclosing arrays.
func (a *ArrayElementAccessor[T]) bound(outer []int) int {
	e, ok := a.rec.ElementByName(arrayidx.MakeElementName(a.base, outer...))
	if !ok {
		return 0
	}
	if ga, ok := e.(*GroupArray); ok {
		return ga.Count()
	}
	return 0
}
