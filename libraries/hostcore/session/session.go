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

// Package session holds the state one logical host session works with: its codec policy, the registries
// that hand out handles for records and buffers, and its shared working storage.
//
// A Session is not safe for concurrent use. Each goroutine running host code gets its own, usually carried
// through a context.Context.
package session

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/hostrec/libraries/hostcore/arrayidx"
	"github.com/dolthub/hostrec/libraries/hostcore/record"
	"github.com/dolthub/hostrec/libraries/utils/config"
	"github.com/dolthub/hostrec/store/bytebuf"
	"github.com/dolthub/hostrec/store/codec"
)

// Session is the per-session state of the record engine.
type Session struct {
	Records   *Registry[*record.Record]
	Buffers   *Registry[*bytebuf.ByteBuffer]
	Addresses *AddressRegistry
	Externals *WsExternals

	cfg    *config.EngineConfig
	codec  *codec.Codec
	ib     arrayidx.IndexBase
	logger *logrus.Entry
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used by the session and every record it builds.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New returns a session applying |cfg|. A nil config uses the defaults.
func New(cfg *config.EngineConfig, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}

	c, err := cfg.Codec(s.logger)
	if err != nil {
		return nil, err
	}
	s.codec = c
	s.ib = cfg.IndexBase()
	s.Records = NewRegistry[*record.Record]()
	s.Buffers = NewRegistry[*bytebuf.ByteBuffer]()
	s.Addresses = NewAddressRegistry()
	s.Externals = NewWsExternals(c, s.logger)
	return s, nil
}

// Config returns the config the session was created with.
func (s *Session) Config() *config.EngineConfig {
	return s.cfg
}

// Codec returns the session's codec.
func (s *Session) Codec() *codec.Codec {
	return s.codec
}

// IndexBase returns the array index convention of the session's callers.
func (s *Session) IndexBase() arrayidx.IndexBase {
	return s.ib
}

func (s *Session) Logger() *logrus.Entry {
	return s.logger
}

// NewRecord builds a record using the session's codec and logger.
func (s *Session) NewRecord(name string, define func(*record.Definition) error) (*record.Record, error) {
	return record.New(name, define, record.WithCodec(s.codec), record.WithLogger(s.logger))
}

// Accessor returns an accessor for the occurrences of |base| in |rec| using the session's index convention.
func Accessor[T record.Element](s *Session, rec *record.Record, base string) *record.ArrayElementAccessor[T] {
	return record.NewArrayElementAccessor[T](rec, base, s.ib)
}

type sessionKey struct{}

// NewContext returns a copy of |ctx| carrying |s|.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session carried by |ctx|, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
