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

package session

import (
	"fmt"

	"github.com/dolthub/hostrec/libraries/hostcore/record"
	"github.com/dolthub/hostrec/store/bytebuf"
)

// AddressRegistry hands out string handles for record buffers. Keys have the form "<owner name>:<n>" where n
// increases with every Add and is never reused.
type AddressRegistry struct {
	items map[string]addressEntry
	next  int
}

type addressEntry struct {
	seq int
	buf *bytebuf.ByteBuffer
}

// NewAddressRegistry returns an empty registry.
func NewAddressRegistry() *AddressRegistry {
	return &AddressRegistry{items: make(map[string]addressEntry)}
}

// Add registers |owner|'s active buffer and returns its key.
func (ar *AddressRegistry) Add(owner *record.Record) string {
	seq := ar.next
	ar.next++
	key := fmt.Sprintf("%s:%d", owner.Name(), seq)
	ar.items[key] = addressEntry{seq: seq, buf: owner.Buffer()}
	return key
}

// Get returns the buffer registered under |key|.
func (ar *AddressRegistry) Get(key string) (*bytebuf.ByteBuffer, bool) {
	e, ok := ar.items[key]
	return e.buf, ok
}

// Remove deletes |key|. It returns false if the key was not present.
func (ar *AddressRegistry) Remove(key string) bool {
	if _, ok := ar.items[key]; !ok {
		return false
	}
	delete(ar.items, key)
	return true
}

// KeyFor returns the earliest registered key for |buf|.
func (ar *AddressRegistry) KeyFor(buf *bytebuf.ByteBuffer) (string, bool) {
	found, seq := "", -1
	for k, e := range ar.items {
		if e.buf == buf && (seq == -1 || e.seq < seq) {
			found, seq = k, e.seq
		}
	}
	return found, seq != -1
}

// Len returns the number of registered buffers.
func (ar *AddressRegistry) Len() int {
	return len(ar.items)
}
