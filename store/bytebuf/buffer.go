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

// Package bytebuf provides the fixed-size byte storage that backs a record.
package bytebuf

import (
	"gopkg.in/src-d/go-errors.v1"
)

// ErrOutOfRange is returned when a read or write falls outside the buffer.
var ErrOutOfRange = errors.NewKind("byte range [%d, %d) is outside buffer of length %d")

// ByteBuffer owns a fixed number of bytes. Reads and writes never change its length; only Resize
// does, when a record's structure grows.
type ByteBuffer struct {
	b []byte
}

// New returns a zero filled buffer of |size| bytes.
func New(size int) *ByteBuffer {
	if size < 0 {
		size = 0
	}
	return &ByteBuffer{b: make([]byte, size)}
}

// FromBytes returns a buffer holding a copy of |b|.
func FromBytes(b []byte) *ByteBuffer {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &ByteBuffer{b: cp}
}

// Len returns the number of bytes in the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.b)
}

// Read returns a copy of the whole buffer.
func (bb *ByteBuffer) Read() []byte {
	cp := make([]byte, len(bb.b))
	copy(cp, bb.b)
	return cp
}

// ReadAt returns a copy of |count| bytes starting at |offset|.
func (bb *ByteBuffer) ReadAt(offset, count int) ([]byte, error) {
	view, err := bb.Slice(offset, count)
	if err != nil {
		return nil, err
	}
	cp := make([]byte, count)
	copy(cp, view)
	return cp, nil
}

// Write copies |b| to the start of the buffer.
func (bb *ByteBuffer) Write(b []byte) error {
	return bb.WriteAt(b, 0, len(b))
}

// WriteAt copies the first |count| bytes of |b| into the buffer at |offset|. If |b| is shorter
// than |count| only len(b) bytes are written.
func (bb *ByteBuffer) WriteAt(b []byte, offset, count int) error {
	if count > len(b) {
		count = len(b)
	}
	view, err := bb.Slice(offset, count)
	if err != nil {
		return err
	}
	copy(view, b[:count])
	return nil
}

// Fill sets |count| bytes starting at |offset| to |v|.
func (bb *ByteBuffer) Fill(offset, count int, v byte) error {
	view, err := bb.Slice(offset, count)
	if err != nil {
		return err
	}
	for i := range view {
		view[i] = v
	}
	return nil
}

// Slice returns the live sub-range [offset, offset+count). Writes to the returned slice are
// writes to the buffer.
func (bb *ByteBuffer) Slice(offset, count int) ([]byte, error) {
	if offset < 0 || count < 0 || offset+count > len(bb.b) {
		return nil, ErrOutOfRange.New(offset, offset+count, len(bb.b))
	}
	return bb.b[offset : offset+count : offset+count], nil
}

// Resize changes the buffer to |size| bytes in place, keeping the leading bytes and zero filling any
// new ones. The *ByteBuffer stays the same, so references to it see the new length.
func (bb *ByteBuffer) Resize(size int) {
	if size < 0 {
		size = 0
	}
	if size <= len(bb.b) {
		bb.b = bb.b[:size:size]
		return
	}
	grown := make([]byte, size)
	copy(grown, bb.b)
	bb.b = grown
}
