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

// Package arrayidx names the occurrences of repeating groups and converts between the index
// convention used by calling code and the 0-based storage index.
//
// An occurrence of array element BASE is named "BASE i", and an element nested in several arrays
// carries one index per enclosing array, outermost first: "BASE i j". Indexes in names are always
// host (0-based) indexes.
package arrayidx

import (
	"strconv"
	"strings"
)

// MakeElementName returns the lookup name of the element |base| at |indexes|.
func MakeElementName(base string, indexes ...int) string {
	if len(indexes) == 0 {
		return base
	}
	var sb strings.Builder
	sb.WriteString(base)
	for _, idx := range indexes {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}

// GetElementIndexes splits a name built by MakeElementName into its indexes and base name. A name
// with no numeric suffix returns no indexes and the name unchanged.
func GetElementIndexes(name string) ([]int, string) {
	parts := strings.Split(name, " ")
	n := len(parts)
	for n > 1 {
		if _, err := strconv.Atoi(parts[n-1]); err != nil {
			break
		}
		n--
	}
	if n == len(parts) {
		return nil, name
	}

	indexes := make([]int, 0, len(parts)-n)
	for _, p := range parts[n:] {
		idx, _ := strconv.Atoi(p)
		indexes = append(indexes, idx)
	}
	return indexes, strings.Join(parts[:n], " ")
}

// IndexBase is the first index value used by calling code.
type IndexBase int

const (
	Zero IndexBase = 0
	One  IndexBase = 1
)

// FromOneBased returns One if |oneBased| is set and Zero otherwise.
func FromOneBased(oneBased bool) IndexBase {
	if oneBased {
		return One
	}
	return Zero
}

// LegacyIndexToHostIndex converts an index in the calling convention to a 0-based storage index.
func (ib IndexBase) LegacyIndexToHostIndex(idx int) int {
	return idx - int(ib)
}

// HostIndexToLegacyIndex converts a 0-based storage index to the calling convention.
func (ib IndexBase) HostIndexToLegacyIndex(idx int) int {
	return idx + int(ib)
}

// LegacyIndexesToHostIndexes converts every index in |idxs|.
func (ib IndexBase) LegacyIndexesToHostIndexes(idxs []int) []int {
	out := make([]int, len(idxs))
	for i, idx := range idxs {
		out[i] = ib.LegacyIndexToHostIndex(idx)
	}
	return out
}
