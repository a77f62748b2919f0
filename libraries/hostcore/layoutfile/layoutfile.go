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

// Package layoutfile reads record layouts from YAML so a copybook can be described without Go code.
//
//	name: CUSTOMER
//	fields:
//	  - name: CUST-ID
//	    kind: unsigned-numeric
//	    length: 6
//	  - name: CUST-NAME
//	    fields:
//	      - {name: FIRST, kind: string, length: 10}
//	      - {name: LAST, kind: string, length: 12}
//	  - name: LINE
//	    occurs: 3
//	    fields:
//	      - {name: SKU, kind: string, length: 5}
//	  - filler: 3
//	    fill: spaces
//	  - {name: BALANCE, kind: packed, length: 5, decimals: 2, default: "0"}
package layoutfile

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dolthub/hostrec/libraries/hostcore/arrayidx"
	"github.com/dolthub/hostrec/libraries/hostcore/record"
	"github.com/dolthub/hostrec/store/codec"
)

// Layout is a parsed layout file.
type Layout struct {
	Name   string  `yaml:"name"`
	Fields []Entry `yaml:"fields"`
}

// Entry declares one element. An entry with Fields is a group, an entry with Filler is a filler field and
// anything else is a field. Occurs turns a field or group into an array.
type Entry struct {
	Name     string      `yaml:"name,omitempty"`
	Kind     string      `yaml:"kind,omitempty"`
	Length   int         `yaml:"length,omitempty"`
	Decimals int         `yaml:"decimals,omitempty"`
	Default  interface{} `yaml:"default,omitempty"`
	Fill     string      `yaml:"fill,omitempty"`
	Occurs   int         `yaml:"occurs,omitempty"`
	Filler   int         `yaml:"filler,omitempty"`
	Fields   []Entry     `yaml:"fields,omitempty"`
}

// Parse decodes and validates a layout. Unknown keys are rejected.
func Parse(data []byte) (*Layout, error) {
	l := &Layout{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(l); err != nil {
		return nil, errors.Wrap(err, "error parsing layout")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Load reads the layout file at |path|.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading layout %s", path)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid layout %s", path)
	}
	return l, nil
}

// Marshal encodes the layout as YAML.
func (l *Layout) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}

// Validate checks names, kinds and fill patterns. Lengths are checked when the layout is defined.
func (l *Layout) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("layout has no name")
	}
	if len(l.Fields) == 0 {
		return errors.Errorf("layout %s has no fields", l.Name)
	}
	return validateEntries(l.Name, l.Fields)
}

func validateEntries(path string, entries []Entry) error {
	for i, e := range entries {
		where := fmt.Sprintf("%s.fields[%d]", path, i)
		if e.Filler > 0 {
			if e.Name != "" || len(e.Fields) > 0 || e.Occurs > 0 {
				return errors.Errorf("%s: a filler has only a length and a fill", where)
			}
			if _, err := ParseFill(e.Fill); err != nil {
				return errors.Wrap(err, where)
			}
			continue
		}
		if e.Name == "" {
			return errors.Errorf("%s: missing name", where)
		}
		if e.Occurs < 0 {
			return errors.Errorf("%s: occurs must not be negative", where)
		}
		if len(e.Fields) > 0 {
			if e.Kind != "" || e.Length != 0 {
				return errors.Errorf("%s: group %s must not have a kind or length", where, e.Name)
			}
			if err := validateEntries(path+"."+e.Name, e.Fields); err != nil {
				return err
			}
			continue
		}
		if _, err := codec.ParseKind(e.Kind); err != nil {
			return errors.Wrapf(err, "%s: field %s", where, e.Name)
		}
		if e.Fill != "" {
			if _, err := ParseFill(e.Fill); err != nil {
				return errors.Wrap(err, where)
			}
		}
	}
	return nil
}

// ParseFill reads a figurative constant name. An empty name is Spaces.
func ParseFill(name string) (record.FillPattern, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "spaces", "space":
		return record.Spaces, nil
	case "zeroes", "zeros", "zero":
		return record.Zeroes, nil
	case "hashes":
		return record.Hashes, nil
	case "low-values", "low-value":
		return record.LowValues, nil
	case "high-values", "high-value":
		return record.HighValues, nil
	}
	return record.Spaces, errors.Errorf("unknown fill `%s`", name)
}

var fillNames = map[record.FillPattern]string{
	record.Spaces:     "spaces",
	record.Zeroes:     "zeroes",
	record.Hashes:     "hashes",
	record.LowValues:  "low-values",
	record.HighValues: "high-values",
}

// Define declares the layout's fields in |d|.
func (l *Layout) Define(d *record.Definition) error {
	return defineEntries(d, l.Fields)
}

// NewRecord builds a record from the layout.
func (l *Layout) NewRecord(opts ...record.Option) (*record.Record, error) {
	return record.New(l.Name, l.Define, opts...)
}

func defineEntries(d *record.Definition, entries []Entry) error {
	for _, e := range entries {
		if err := defineEntry(d, e); err != nil {
			return err
		}
	}
	return nil
}

func defineEntry(d *record.Definition, e Entry) error {
	if e.Filler > 0 {
		fill, err := ParseFill(e.Fill)
		if err != nil {
			return err
		}
		_, err = d.CreateFillerField(e.Filler, fill)
		return err
	}

	if len(e.Fields) > 0 {
		configure := func(d *record.Definition) error {
			return defineEntries(d, e.Fields)
		}
		var err error
		if e.Occurs > 0 {
			_, err = d.NewGroupArray(e.Name, e.Occurs, configure)
		} else {
			_, err = d.NewGroup(e.Name, configure)
		}
		return err
	}

	kind, err := codec.ParseKind(e.Kind)
	if err != nil {
		return err
	}
	opts, err := fieldOptions(e)
	if err != nil {
		return err
	}
	if e.Occurs > 0 {
		_, err = d.NewFieldArray(e.Name, e.Occurs, kind, e.Length, opts...)
	} else {
		_, err = d.NewField(e.Name, kind, e.Length, opts...)
	}
	return err
}

func fieldOptions(e Entry) ([]record.FieldOption, error) {
	var opts []record.FieldOption
	if e.Decimals != 0 {
		opts = append(opts, record.WithDecimalDigits(e.Decimals))
	}
	switch {
	case e.Default != nil:
		opts = append(opts, record.WithDefault(e.Default))
	case e.Fill != "":
		fill, err := ParseFill(e.Fill)
		if err != nil {
			return nil, err
		}
		opts = append(opts, record.WithDefault(fill))
	}
	return opts, nil
}

// FromRecord describes the structure of |rec| as a layout. Array occurrences are collapsed back into one
// entry with Occurs set.
func FromRecord(rec *record.Record) *Layout {
	return &Layout{Name: rec.Name(), Fields: entriesFor(rec.Elements())}
}

func entriesFor(elems []record.Element) []Entry {
	var entries []Entry
	for _, e := range elems {
		entries = append(entries, entryFor(e))
	}
	return entries
}

func entryFor(e record.Element) Entry {
	switch t := e.(type) {
	case *record.GroupArray:
		first := entryFor(t.Occurrences()[0])
		first.Occurs = t.Count()
		return first
	case *record.Group:
		return Entry{Name: baseName(t), Fields: entriesFor(t.Children())}
	case *record.Field:
		if t.IsFiller() {
			entry := Entry{Filler: t.Length()}
			if t.Fill() != record.Spaces {
				entry.Fill = fillNames[t.Fill()]
			}
			return entry
		}
		entry := Entry{Name: baseName(t), Kind: t.Kind().String(), Length: t.Length(), Decimals: t.DecimalDigits()}
		if def, ok := t.Default(); ok {
			if p, isFill := def.(record.FillPattern); isFill {
				entry.Fill = fillNames[p]
			} else {
				entry.Default = def
			}
		}
		return entry
	}
	return Entry{Name: e.Name(), Kind: codec.String.String(), Length: e.Length()}
}

func baseName(e record.Element) string {
	if !e.IsInArray() {
		return e.Name()
	}
	_, name := arrayidx.GetElementIndexes(e.Name())
	return name
}
