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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/hostrec/libraries/hostcore/session"
)

const itemLayout = `
name: ITEM
fields:
  - {name: CODE, kind: string, length: 4}
  - {name: QTY, kind: unsigned-numeric, length: 3}
  - {name: PRICE, kind: packed, length: 3, decimals: 2}
`

func writeFixtures(t *testing.T) (string, string) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "item.yaml")
	require.NoError(t, os.WriteFile(layoutPath, []byte(itemLayout), 0644))

	var data []byte
	data = append(data, []byte("AB12007")...)
	data = append(data, 0x01, 0x23, 0x4C)
	data = append(data, []byte("ZZ  100")...)
	data = append(data, 0x00, 0x05, 0x0D)
	data = append(data, []byte("XYZ")...)
	dataPath := filepath.Join(dir, "item.dat")
	require.NoError(t, os.WriteFile(dataPath, data, 0644))

	return layoutPath, dataPath
}

func TestRunLayout(t *testing.T) {
	color.NoColor = true
	layoutPath, _ := writeFixtures(t)
	s, err := session.New(nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runLayout(&out, s, layoutPath))
	assert.Contains(t, out.String(), "ITEM\n")
	assert.Contains(t, out.String(), "PRICE")
	assert.Contains(t, out.String(), "packed")
	assert.Contains(t, out.String(), "record length: 10 bytes (10 B)")
	assert.Equal(t, 1, s.Records.Len())
}

func TestRunDump(t *testing.T) {
	color.NoColor = true
	layoutPath, dataPath := writeFixtures(t)
	s, err := session.New(nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runDump(&out, s, layoutPath, dataPath, 0))
	text := out.String()
	assert.Contains(t, text, "record 1 at offset 0")
	assert.Contains(t, text, `"AB12"`)
	assert.Contains(t, text, "12.34")
	assert.Contains(t, text, "record 2 at offset 10")
	assert.Contains(t, text, "-0.50")
	assert.Contains(t, text, "trailing 3 bytes")
	assert.Contains(t, text, "2 records, 23 B")

	// every data buffer is released once printed
	assert.Equal(t, 0, s.Buffers.Len())
	rec, ok := s.Records.Get(0)
	require.True(t, ok)
	assert.False(t, rec.IsAliased())
}

func TestRunDumpLimit(t *testing.T) {
	color.NoColor = true
	layoutPath, dataPath := writeFixtures(t)
	s, err := session.New(nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runDump(&out, s, layoutPath, dataPath, 1))
	assert.Contains(t, out.String(), "1 records, 10 B")
	assert.NotContains(t, out.String(), "record 2")
}

func TestRunDumpMissingFile(t *testing.T) {
	layoutPath, _ := writeFixtures(t)
	s, err := session.New(nil)
	require.NoError(t, err)
	assert.Error(t, runDump(&bytes.Buffer{}, s, layoutPath, filepath.Join(t.TempDir(), "none.dat"), 0))
}

func TestEngineConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("charset: ebcdic\nlog_level: warn\n"), 0644))

	tests := []struct {
		name     string
		path     string
		updates  map[string]string
		ebcdic   bool
		charset  string
		oneBased bool
		strict   bool
		wantErr  bool
	}{
		{name: "defaults", charset: "latin1", oneBased: true},
		{name: "file", path: cfgPath, charset: "ebcdic", oneBased: true},
		{
			name:     "set over file",
			path:     cfgPath,
			updates:  map[string]string{"charset": "latin1", "one_based_indexes": "false"},
			charset:  "latin1",
			oneBased: false,
		},
		{
			name:     "ebcdic switch wins",
			updates:  map[string]string{"charset": "latin1", "strict_overflow": "true"},
			ebcdic:   true,
			charset:  "ebcdic",
			oneBased: true,
			strict:   true,
		},
		{name: "unknown key", updates: map[string]string{"page": "1"}, wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "none.yaml"), wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := engineConfig(test.path, test.updates, test.ebcdic)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.charset, cfg.Charset)
			assert.Equal(t, test.oneBased, cfg.OneBasedIndexes)
			assert.Equal(t, test.strict, cfg.StrictOverflow)
		})
	}
}
