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

package arrayidx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeElementName(t *testing.T) {
	assert.Equal(t, "TAB 3", MakeElementName("TAB", 3))
	assert.Equal(t, "TAB 3 4", MakeElementName("TAB", 3, 4))
	assert.Equal(t, "TAB", MakeElementName("TAB"))
}

func TestGetElementIndexes(t *testing.T) {
	tests := []struct {
		name     string
		indexes  []int
		baseName string
	}{
		{"TAB 3 4", []int{3, 4}, "TAB"},
		{"TAB 3", []int{3}, "TAB"},
		{"TAB", nil, "TAB"},
		{"WS ITEM 0", []int{0}, "WS ITEM"},
		{"WS ITEM", nil, "WS ITEM"},
		{"12", nil, "12"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			indexes, base := GetElementIndexes(test.name)
			assert.Equal(t, test.indexes, indexes)
			assert.Equal(t, test.baseName, base)
		})
	}
}

func TestNameRoundTrip(t *testing.T) {
	name := MakeElementName("LINE-ITEM", 0, 11, 2)
	indexes, base := GetElementIndexes(name)
	assert.Equal(t, "LINE-ITEM", base)
	assert.Equal(t, []int{0, 11, 2}, indexes)
}

func TestIndexBase(t *testing.T) {
	assert.Equal(t, One, FromOneBased(true))
	assert.Equal(t, Zero, FromOneBased(false))

	assert.Equal(t, 0, One.LegacyIndexToHostIndex(1))
	assert.Equal(t, 1, One.HostIndexToLegacyIndex(0))
	assert.Equal(t, 4, Zero.LegacyIndexToHostIndex(4))
	assert.Equal(t, 4, Zero.HostIndexToLegacyIndex(4))
	assert.Equal(t, []int{2, 0}, One.LegacyIndexesToHostIndexes([]int{3, 1}))
}
