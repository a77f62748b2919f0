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
	"github.com/sirupsen/logrus"

	"github.com/dolthub/hostrec/libraries/hostcore/record"
	"github.com/dolthub/hostrec/store/codec"
)

// ExternalsRecordName is the name of the shared working storage record.
const ExternalsRecordName = "WS-EXTERNALS"

// WsExternals is the shared working storage of a session. Call units that declare the same external name get
// the same region of one record.
type WsExternals struct {
	rec      *record.Record
	logger   *logrus.Entry
	creating bool
}

// NewWsExternals returns empty shared storage encoding values with |c|.
func NewWsExternals(c *codec.Codec, logger *logrus.Entry) *WsExternals {
	return &WsExternals{
		rec:    record.NewEmpty(ExternalsRecordName, record.WithCodec(c), record.WithLogger(logger)),
		logger: logger.WithField("record", ExternalsRecordName),
	}
}

// Record returns the shared record.
func (ws *WsExternals) Record() *record.Record {
	return ws.rec
}

// CreateNewField returns the external field |name|, appending it to the shared record on first use.
func (ws *WsExternals) CreateNewField(name string, kind codec.Kind, length int, opts ...record.FieldOption) (*record.Field, error) {
	e, err := ws.create(name, func(d *record.Definition) error {
		_, err := d.NewField(name, kind, length, opts...)
		return err
	})
	if err != nil {
		return nil, err
	}
	f, ok := e.(*record.Field)
	if !ok {
		return nil, record.ErrWrongElementType.New(name, e)
	}
	return f, nil
}

// CreateNewGroup returns the external group |name|, appending it to the shared record on first use.
func (ws *WsExternals) CreateNewGroup(name string, configure func(*record.Definition) error) (*record.Group, error) {
	e, err := ws.create(name, func(d *record.Definition) error {
		_, err := d.NewGroup(name, configure)
		return err
	})
	if err != nil {
		return nil, err
	}
	g, ok := e.(*record.Group)
	if !ok {
		return nil, record.ErrWrongElementType.New(name, e)
	}
	return g, nil
}

// create returns the element |name| of the shared record, declaring it in a scratch record and merging it in on
// first use. An existing element is returned unchanged; the scratch declaration then only serves to log a
// differing layout, and its errors are ignored.
func (ws *WsExternals) create(name string, define func(*record.Definition) error) (record.Element, error) {
	if ws.creating || ws.rec.IsDefining() {
		return nil, record.ErrDefinitionInProgress.New(ws.rec.Name())
	}
	ws.creating = true
	defer func() { ws.creating = false }()

	if existing, ok := ws.rec.Child(name); ok {
		candidate, err := ws.declare(name, define)
		if err == nil && record.Fingerprint(existing) != candidate.Fingerprint() {
			ws.logger.WithFields(logrus.Fields{
				"element":  name,
				"length":   existing.Length(),
				"declared": candidate.Length(),
			}).Warn("external redeclared with a different layout, keeping the existing one")
		}
		return existing, nil
	}

	candidate, err := ws.declare(name, define)
	if err != nil {
		return nil, err
	}
	if err := ws.rec.AddToStructure(candidate.Elements()...); err != nil {
		return nil, err
	}
	e, _ := ws.rec.Child(name)
	ws.logger.WithFields(logrus.Fields{
		"element":  name,
		"position": e.Position(),
		"length":   e.Length(),
	}).Debug("external created")
	return e, nil
}

func (ws *WsExternals) declare(name string, define func(*record.Definition) error) (*record.Record, error) {
	return record.New(name, define, record.WithCodec(ws.rec.Codec()), record.WithLogger(ws.logger))
}
