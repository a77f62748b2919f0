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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/hostrec/libraries/hostcore/arrayidx"
	"github.com/dolthub/hostrec/store/codec"
)

func TestMapConfig(t *testing.T) {
	mc := NewMapConfig(map[string]string{"a": "1"})
	val, err := mc.GetString("a")
	require.NoError(t, err)
	assert.Equal(t, "1", val)

	_, err = mc.GetString("b")
	assert.Equal(t, ErrConfigParamNotFound, err)

	require.NoError(t, mc.SetStrings(map[string]string{"b": "2", "c": "3"}))
	assert.Equal(t, 3, mc.Size())

	seen := map[string]string{}
	mc.Iter(func(k, v string) bool {
		seen[k] = v
		return false
	})
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, seen)

	require.NoError(t, mc.Unset([]string{"a", "c"}))
	assert.Equal(t, 1, mc.Size())

	assert.Equal(t, 0, NewMapConfig(nil).Size())
}

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	assert.True(t, cfg.OneBasedIndexes)
	assert.False(t, cfg.StrictOverflow)
	assert.Equal(t, "latin1", cfg.Charset)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, arrayidx.One, cfg.IndexBase())

	c, err := cfg.Codec(logrus.NewEntry(logrus.New()))
	require.NoError(t, err)
	assert.Equal(t, codec.Latin1, c.Charset())
	assert.False(t, c.StrictOverflow())
}

func TestParseEngineConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    *EngineConfig
		wantErr bool
	}{
		{
			name: "empty",
			yaml: "",
			want: DefaultEngineConfig(),
		},
		{
			name: "partial",
			yaml: "charset: ebcdic\nstrict_overflow: true\n",
			want: &EngineConfig{OneBasedIndexes: true, StrictOverflow: true, Charset: "ebcdic", LogLevel: "info"},
		},
		{
			name: "all",
			yaml: "one_based_indexes: false\nstrict_overflow: false\ncharset: ascii\nlog_level: debug\n",
			want: &EngineConfig{OneBasedIndexes: false, StrictOverflow: false, Charset: "ascii", LogLevel: "debug"},
		},
		{
			name:    "bad charset",
			yaml:    "charset: utf-16\n",
			wantErr: true,
		},
		{
			name:    "bad level",
			yaml:    "log_level: loud\n",
			wantErr: true,
		},
		{
			name:    "bad yaml",
			yaml:    "charset: [\n",
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := ParseEngineConfig([]byte(test.yaml))
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, cfg)
		})
	}
}

func TestLoadEngineConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("one_based_indexes: false\n"), 0644))

	cfg, err := LoadEngineConfig(path)
	require.NoError(t, err)
	assert.Equal(t, arrayidx.Zero, cfg.IndexBase())

	_, err = LoadEngineConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFromMapConfig(t *testing.T) {
	cfg, err := FromMapConfig(NewMapConfig(map[string]string{
		OneBasedIndexesKey: "false",
		StrictOverflowKey:  "true",
		CharsetKey:         "ebcdic",
	}))
	require.NoError(t, err)
	assert.False(t, cfg.OneBasedIndexes)
	assert.True(t, cfg.StrictOverflow)
	assert.Equal(t, "ebcdic", cfg.Charset)
	assert.Equal(t, "info", cfg.LogLevel)

	c, err := cfg.Codec(logrus.NewEntry(logrus.New()))
	require.NoError(t, err)
	assert.Equal(t, codec.EBCDIC, c.Charset())
	assert.True(t, c.StrictOverflow())

	back, err := FromMapConfig(cfg.ToMapConfig())
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	_, err = FromMapConfig(NewMapConfig(map[string]string{StrictOverflowKey: "maybe"}))
	assert.Error(t, err)
}

func TestWithOverrides(t *testing.T) {
	base := &EngineConfig{OneBasedIndexes: true, StrictOverflow: false, Charset: "latin1", LogLevel: "warn"}

	tests := []struct {
		name    string
		updates map[string]string
		want    *EngineConfig
		unknown bool
		wantErr bool
	}{
		{
			name: "none",
			want: base,
		},
		{
			name:    "index base and charset",
			updates: map[string]string{OneBasedIndexesKey: "false", CharsetKey: "ebcdic"},
			want:    &EngineConfig{OneBasedIndexes: false, StrictOverflow: false, Charset: "ebcdic", LogLevel: "warn"},
		},
		{
			name:    "strict",
			updates: map[string]string{StrictOverflowKey: " true "},
			want:    &EngineConfig{OneBasedIndexes: true, StrictOverflow: true, Charset: "latin1", LogLevel: "warn"},
		},
		{
			name:    "unknown key",
			updates: map[string]string{"codepage": "ebcdic"},
			unknown: true,
			wantErr: true,
		},
		{
			name:    "bad bool",
			updates: map[string]string{StrictOverflowKey: "sometimes"},
			wantErr: true,
		},
		{
			name:    "bad charset",
			updates: map[string]string{CharsetKey: "utf-16"},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := base.WithOverrides(test.updates)
			if test.wantErr {
				require.Error(t, err)
				assert.Equal(t, test.unknown, errors.Cause(err) == ErrUnknownConfigKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, cfg)
			assert.NotSame(t, base, cfg)
		})
	}
	assert.Equal(t, "latin1", base.Charset)
}

func TestApplyLogLevel(t *testing.T) {
	logger := logrus.New()
	cfg := DefaultEngineConfig()
	cfg.LogLevel = "warn"
	require.NoError(t, cfg.ApplyLogLevel(logger))
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	cfg.LogLevel = "nope"
	assert.Error(t, cfg.ApplyLogLevel(logger))
}
