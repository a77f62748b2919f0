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

package record

import (
	"weak"

	"github.com/dolthub/hostrec/store/bytebuf"
)

// buffer returns the active buffer: the aliased one while an alias is set and its target is
// still reachable, the owned one otherwise.
func (r *Record) buffer() *bytebuf.ByteBuffer {
	if r.aliased {
		if b := r.alias.Value(); b != nil {
			return b
		}
		r.aliased = false
		r.alias = weak.Pointer[bytebuf.ByteBuffer]{}
		r.logger.Warn("aliased buffer is gone, reverting to the owned buffer")
	}
	return r.owned
}

// Buffer returns the buffer elements currently read and write.
func (r *Record) Buffer() *bytebuf.ByteBuffer {
	return r.buffer()
}

// OwnedBuffer returns the buffer allocated for this record, whether or not it is aliased.
func (r *Record) OwnedBuffer() *bytebuf.ByteBuffer {
	return r.owned
}

// IsAliased returns true while the record reads and writes another record's buffer.
func (r *Record) IsAliased() bool {
	return r.aliased && r.alias.Value() != nil
}

// SetAddressToAddressOf points this record at |other|'s active buffer. No bytes are copied;
// writes through either record are visible through both. The alias is a weak reference: if the
// target buffer is collected the record reverts to its own buffer.
func (r *Record) SetAddressToAddressOf(other *Record) error {
	return r.SetAddressToBuffer(other.buffer())
}

// SetAddressToBuffer points this record at |buf|, which must be at least as long as the record.
func (r *Record) SetAddressToBuffer(buf *bytebuf.ByteBuffer) error {
	if buf.Len() < r.Length() {
		return bytebuf.ErrOutOfRange.New(0, r.Length(), buf.Len())
	}
	if buf == r.owned {
		r.RestoreInitialDataBuffer()
		return nil
	}
	r.alias = weak.Make(buf)
	r.aliased = true
	r.logger.WithField("length", buf.Len()).Debug("buffer aliased")
	return nil
}

// RestoreInitialDataBuffer points the record back at its own buffer. It does nothing if no alias
// is set.
func (r *Record) RestoreInitialDataBuffer() {
	if !r.aliased {
		return
	}
	r.aliased = false
	r.alias = weak.Pointer[bytebuf.ByteBuffer]{}
	r.logger.Debug("buffer restored")
}
