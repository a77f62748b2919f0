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

// Registry hands out integer handles for values. Keys start at 0, increase with every Add and are never reused
// after Remove.
type Registry[T comparable] struct {
	items map[int]T
	next  int
}

// NewRegistry returns an empty registry.
func NewRegistry[T comparable]() *Registry[T] {
	return &Registry[T]{items: make(map[int]T)}
}

// Add stores |item| under a new key and returns it.
func (r *Registry[T]) Add(item T) int {
	key := r.next
	r.next++
	r.items[key] = item
	return key
}

// Get returns the value stored under |key|.
func (r *Registry[T]) Get(key int) (T, bool) {
	item, ok := r.items[key]
	return item, ok
}

// Remove deletes |key|. It returns false if the key was not present.
func (r *Registry[T]) Remove(key int) bool {
	if _, ok := r.items[key]; !ok {
		return false
	}
	delete(r.items, key)
	return true
}

// KeyFor returns the lowest key holding a value equal to |item|.
func (r *Registry[T]) KeyFor(item T) (int, bool) {
	found := -1
	for k, v := range r.items {
		if v == item && (found == -1 || k < found) {
			found = k
		}
	}
	return found, found != -1
}

// Len returns the number of values stored.
func (r *Registry[T]) Len() int {
	return len(r.items)
}
