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

package codec

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnknownCharset is returned by ParseCharset for names it does not recognise.
var ErrUnknownCharset = errors.NewKind("unknown charset `%s`")

// Charset translates between Go strings and the single byte code page used for display fields.
type Charset struct {
	name  string
	cm    *charmap.Charmap
	space byte
	zero  byte
}

var (
	// Latin1 stores characters as their ISO 8859-1 bytes, which matches ASCII for the printable range.
	Latin1 = newCharset("latin1", charmap.ISO8859_1)
	// EBCDIC stores characters using IBM code page 037.
	EBCDIC = newCharset("ebcdic", charmap.CodePage037)
)

func newCharset(name string, cm *charmap.Charmap) Charset {
	cs := Charset{name: name, cm: cm}
	cs.space = cs.Encode(" ")[0]
	cs.zero = cs.Encode("0")[0]
	return cs
}

// ParseCharset returns the charset for |name|. "ascii" and "latin1" select Latin1, "ebcdic" and
// "cp037" select EBCDIC.
func ParseCharset(name string) (Charset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ascii", "latin1", "iso8859-1":
		return Latin1, nil
	case "ebcdic", "cp037", "ibm037":
		return EBCDIC, nil
	}
	return Charset{}, ErrUnknownCharset.New(name)
}

func (cs Charset) String() string {
	return cs.name
}

// Encode returns one byte per character of |s|. Characters outside the code page become the
// code page's substitution byte.
func (cs Charset) Encode(s string) []byte {
	b, err := encoding.ReplaceUnsupported(cs.cm.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		// charmap encoders only fail on unsupported runes, which are replaced above
		panic(err)
	}
	return b
}

// Decode returns the characters represented by |b|.
func (cs Charset) Decode(b []byte) string {
	s, err := cs.cm.NewDecoder().Bytes(b)
	if err != nil {
		panic(err)
	}
	return string(s)
}

// SpaceByte is the encoding of ' '.
func (cs Charset) SpaceByte() byte {
	return cs.space
}

// ZeroByte is the encoding of '0'.
func (cs Charset) ZeroByte() byte {
	return cs.zero
}
