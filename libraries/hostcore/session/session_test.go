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
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/hostrec/libraries/hostcore/arrayidx"
	"github.com/dolthub/hostrec/libraries/hostcore/record"
	"github.com/dolthub/hostrec/libraries/utils/config"
	"github.com/dolthub/hostrec/store/bytebuf"
	"github.com/dolthub/hostrec/store/codec"
)

func newTestSession(t *testing.T) (*Session, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s, err := New(nil, WithLogger(logrus.NewEntry(logger)))
	require.NoError(t, err)
	return s, hook
}

func TestRegistryKeysNeverReused(t *testing.T) {
	reg := NewRegistry[string]()
	assert.Equal(t, 0, reg.Add("a"))
	assert.Equal(t, 1, reg.Add("b"))
	assert.Equal(t, 2, reg.Add("a"))

	assert.True(t, reg.Remove(2))
	assert.False(t, reg.Remove(2))
	assert.Equal(t, 3, reg.Add("c"))
	assert.True(t, reg.Remove(0))
	assert.Equal(t, 4, reg.Add("d"))

	v, ok := reg.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	_, ok = reg.Get(0)
	assert.False(t, ok)
	assert.Equal(t, 3, reg.Len())

	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		k := reg.Add("x")
		assert.False(t, seen[k])
		seen[k] = true
		if i%2 == 0 {
			reg.Remove(k)
		}
	}
}

func TestRegistryKeyFor(t *testing.T) {
	reg := NewRegistry[string]()
	reg.Add("a")
	reg.Add("b")
	reg.Add("b")

	k, ok := reg.KeyFor("b")
	require.True(t, ok)
	assert.Equal(t, 1, k)

	reg.Remove(1)
	k, ok = reg.KeyFor("b")
	require.True(t, ok)
	assert.Equal(t, 2, k)

	_, ok = reg.KeyFor("z")
	assert.False(t, ok)
}

func TestSessionRegistries(t *testing.T) {
	s, _ := newTestSession(t)
	rec, err := s.NewRecord("CUSTOMER", func(d *record.Definition) error {
		_, err := d.NewField("ID", codec.UnsignedNumeric, 4)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, s.Codec(), rec.Codec())

	key := s.Records.Add(rec)
	got, ok := s.Records.Get(key)
	require.True(t, ok)
	assert.Same(t, rec, got)

	bufKey := s.Buffers.Add(rec.Buffer())
	k, ok := s.Buffers.KeyFor(rec.Buffer())
	require.True(t, ok)
	assert.Equal(t, bufKey, k)

	addr := s.Addresses.Add(rec)
	assert.Equal(t, "CUSTOMER:0", addr)
	assert.Equal(t, "CUSTOMER:1", s.Addresses.Add(rec))

	buf, ok := s.Addresses.Get(addr)
	require.True(t, ok)
	assert.Same(t, rec.Buffer(), buf)

	found, ok := s.Addresses.KeyFor(rec.Buffer())
	require.True(t, ok)
	assert.Equal(t, addr, found)

	assert.True(t, s.Addresses.Remove(addr))
	assert.False(t, s.Addresses.Remove(addr))
	found, ok = s.Addresses.KeyFor(rec.Buffer())
	require.True(t, ok)
	assert.Equal(t, "CUSTOMER:1", found)
	assert.Equal(t, "CUSTOMER:2", s.Addresses.Add(rec))

	_, ok = s.Addresses.KeyFor(bytebuf.New(4))
	assert.False(t, ok)
	assert.Equal(t, 2, s.Addresses.Len())
}

func TestSessionConfig(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.OneBasedIndexes = false
	cfg.Charset = "ebcdic"
	s, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, arrayidx.Zero, s.IndexBase())
	assert.Equal(t, codec.EBCDIC, s.Codec().Charset())
	assert.Equal(t, codec.EBCDIC, s.Externals.Record().Codec().Charset())

	cfg.Charset = "klingon"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := NewContext(context.Background(), s)
	assert.Same(t, s, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}

func TestAccessor(t *testing.T) {
	s, _ := newTestSession(t)
	rec, err := s.NewRecord("TAB", func(d *record.Definition) error {
		_, err := d.NewFieldArray("CELL", 3, codec.String, 2)
		return err
	})
	require.NoError(t, err)

	cells := Accessor[*record.Field](s, rec, "CELL")
	f, err := cells.At(1)
	require.NoError(t, err)
	assert.Equal(t, "CELL 0", f.Name())
}

func TestExternalsIdempotent(t *testing.T) {
	s, hook := newTestSession(t)
	ws := s.Externals

	f1, err := ws.CreateNewField("EXT-COUNT", codec.UnsignedNumeric, 4, record.WithDefault(7))
	require.NoError(t, err)
	assert.Equal(t, "0007", f1.AsString())
	require.NoError(t, f1.Assign(12))

	g, err := ws.CreateNewGroup("EXT-AREA", func(d *record.Definition) error {
		if _, err := d.NewField("EXT-CODE", codec.String, 3, record.WithDefault("ABC")); err != nil {
			return err
		}
		_, err := d.NewField("EXT-AMT", codec.PackedDecimal, 3, record.WithDecimalDigits(2))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Position())
	assert.Equal(t, 6, g.Length())
	assert.Equal(t, 10, ws.Record().Length())

	// earlier fields keep their values after the shared record grows
	assert.Equal(t, "0012", f1.AsString())
	code, err := ws.Record().Field("EXT-CODE")
	require.NoError(t, err)
	assert.Equal(t, "ABC", code.AsString())

	hook.Reset()
	f2, err := ws.CreateNewField("EXT-COUNT", codec.UnsignedNumeric, 4)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
	assert.Equal(t, "0012", f2.AsString())
	assert.Equal(t, 10, ws.Record().Length())
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level)
	}

	hook.Reset()
	f3, err := ws.CreateNewField("EXT-COUNT", codec.UnsignedNumeric, 9)
	require.NoError(t, err)
	assert.Same(t, f1, f3)
	assert.Equal(t, 4, f3.Length())
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
			assert.Equal(t, "EXT-COUNT", e.Data["element"])
		}
	}
	assert.True(t, warned)

	_, err = ws.CreateNewField("EXT-AREA", codec.String, 6)
	assert.True(t, record.ErrWrongElementType.Is(err))
}

func TestExternalsNestedCreation(t *testing.T) {
	s, _ := newTestSession(t)
	ws := s.Externals

	_, err := ws.CreateNewGroup("OUTER", func(d *record.Definition) error {
		_, err := ws.CreateNewField("INNER", codec.String, 1)
		return err
	})
	assert.True(t, record.ErrDefinitionInProgress.Is(err))
	assert.Equal(t, 0, ws.Record().Length())

	_, err = ws.CreateNewField("AFTER", codec.String, 1)
	assert.NoError(t, err)
}

func TestExternalsGrowKeepsAliases(t *testing.T) {
	s, _ := newTestSession(t)
	ws := s.Externals

	x, err := ws.CreateNewField("EXT-X", codec.String, 4)
	require.NoError(t, err)

	view, err := s.NewRecord("VIEW", func(d *record.Definition) error {
		_, err := d.NewField("VIEW-X", codec.String, 4)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, view.SetAddressToAddressOf(ws.Record()))
	handle := s.Addresses.Add(ws.Record())
	before := ws.Record().Buffer()

	_, err = ws.CreateNewField("EXT-Y", codec.String, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, ws.Record().Length())
	assert.Same(t, before, ws.Record().Buffer())

	vx, err := view.Field("VIEW-X")
	require.NoError(t, err)
	require.NoError(t, vx.Assign("ABCD"))
	assert.True(t, view.IsAliased())
	assert.Equal(t, "ABCD", x.AsString())

	buf, ok := s.Addresses.Get(handle)
	require.True(t, ok)
	assert.Same(t, ws.Record().Buffer(), buf)
}

func TestExternalsRedeclareIgnoresDeclarationErrors(t *testing.T) {
	s, hook := newTestSession(t)
	ws := s.Externals

	tests := []struct {
		name      string
		configure func(*record.Definition) error
	}{
		{
			name: "configure fails",
			configure: func(d *record.Definition) error {
				return record.ErrInvalidDefinition.New("EXT-AREA", "rejected")
			},
		},
		{
			name: "duplicate child",
			configure: func(d *record.Definition) error {
				if _, err := d.NewField("EXT-CODE", codec.String, 3); err != nil {
					return err
				}
				_, err := d.NewField("EXT-CODE", codec.String, 3)
				return err
			},
		},
	}

	g, err := ws.CreateNewGroup("EXT-AREA", func(d *record.Definition) error {
		_, err := d.NewField("EXT-CODE", codec.String, 3, record.WithDefault("ABC"))
		return err
	})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook.Reset()
			got, err := ws.CreateNewGroup("EXT-AREA", tt.configure)
			require.NoError(t, err)
			assert.Same(t, g, got)
			assert.Equal(t, 3, ws.Record().Length())
			for _, e := range hook.AllEntries() {
				assert.NotEqual(t, logrus.WarnLevel, e.Level)
			}
		})
	}

	_, err = ws.CreateNewGroup("EXT-OTHER", tests[0].configure)
	assert.Error(t, err)
	assert.Equal(t, 3, ws.Record().Length())
}
