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
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/dolthub/hostrec/libraries/hostcore/arrayidx"
	"github.com/dolthub/hostrec/store/codec"
)

// ErrUnknownConfigKey is returned for an override naming a key the engine does not read.
var ErrUnknownConfigKey = errors.New("unknown engine config key")

const (
	OneBasedIndexesKey = "one_based_indexes"
	StrictOverflowKey  = "strict_overflow"
	CharsetKey         = "charset"
	LogLevelKey        = "log_level"
)

// EngineConfig holds the per-session policies of the record engine.
type EngineConfig struct {
	// OneBasedIndexes selects 1-based array indexes for callers. Element names always carry 0-based indexes.
	OneBasedIndexes bool `yaml:"one_based_indexes" default:"true"`
	// StrictOverflow makes values that do not fit their field an error instead of being truncated.
	StrictOverflow bool `yaml:"strict_overflow" default:"false"`
	// Charset is the code page of display fields: latin1 or ebcdic.
	Charset string `yaml:"charset" default:"latin1"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level" default:"info"`
}

// DefaultEngineConfig returns a config with every field at its default.
func DefaultEngineConfig() *EngineConfig {
	cfg := &EngineConfig{}
	defaults.MustSet(cfg)
	return cfg
}

// ParseEngineConfig reads YAML. Keys that are not present keep their defaults.
func ParseEngineConfig(data []byte) (*EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing engine config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEngineConfig reads the YAML file at |path|.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading engine config %s", path)
	}
	cfg, err := ParseEngineConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid engine config %s", path)
	}
	return cfg, nil
}

// FromMapConfig reads the engine keys of |cfg|. Missing keys keep their defaults.
func FromMapConfig(cfg ReadableConfig) (*EngineConfig, error) {
	ec := DefaultEngineConfig()

	for key, dest := range map[string]*bool{OneBasedIndexesKey: &ec.OneBasedIndexes, StrictOverflowKey: &ec.StrictOverflow} {
		val, err := cfg.GetString(key)
		if err == ErrConfigParamNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value for %s", key)
		}
		*dest = b
	}

	for key, dest := range map[string]*string{CharsetKey: &ec.Charset, LogLevelKey: &ec.LogLevel} {
		val, err := cfg.GetString(key)
		if err == ErrConfigParamNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		*dest = val
	}

	if err := ec.Validate(); err != nil {
		return nil, err
	}
	return ec, nil
}

// ToMapConfig returns the config as string properties.
func (ec *EngineConfig) ToMapConfig() *MapConfig {
	return NewMapConfig(map[string]string{
		OneBasedIndexesKey: strconv.FormatBool(ec.OneBasedIndexes),
		StrictOverflowKey:  strconv.FormatBool(ec.StrictOverflow),
		CharsetKey:         ec.Charset,
		LogLevelKey:        ec.LogLevel,
	})
}

// WithOverrides returns a copy of the config with |updates| applied on top of it. Keys are the
// YAML key names; values are parsed the same way FromMapConfig parses them.
func (ec *EngineConfig) WithOverrides(updates map[string]string) (*EngineConfig, error) {
	if len(updates) == 0 {
		cp := *ec
		return &cp, nil
	}

	mc := ec.ToMapConfig()
	for k := range updates {
		if _, err := mc.GetString(k); err == ErrConfigParamNotFound {
			return nil, errors.Wrap(ErrUnknownConfigKey, k)
		}
	}
	if err := mc.SetStrings(updates); err != nil {
		return nil, err
	}
	return FromMapConfig(mc)
}

// Validate checks the charset and log level names.
func (ec *EngineConfig) Validate() error {
	if _, err := codec.ParseCharset(ec.Charset); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(ec.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid %s", LogLevelKey)
	}
	return nil
}

// IndexBase returns the array index convention callers use.
func (ec *EngineConfig) IndexBase() arrayidx.IndexBase {
	return arrayidx.FromOneBased(ec.OneBasedIndexes)
}

// Codec returns a codec applying the charset and overflow policy, logging to |logger|.
func (ec *EngineConfig) Codec(logger *logrus.Entry) (*codec.Codec, error) {
	cs, err := codec.ParseCharset(ec.Charset)
	if err != nil {
		return nil, err
	}
	return codec.New(codec.WithCharset(cs), codec.WithStrictOverflow(ec.StrictOverflow), codec.WithLogger(logger)), nil
}

// ApplyLogLevel sets |logger|'s level from LogLevel.
func (ec *EngineConfig) ApplyLogLevel(logger *logrus.Logger) error {
	lvl, err := logrus.ParseLevel(ec.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", LogLevelKey)
	}
	logger.SetLevel(lvl)
	return nil
}
