// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package arenastr

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// AppendWire appends the field to b in wire format, as a length-delimited
// record numbered num. Unset fields append nothing: presence rides on the
// holder's word, so an encode/decode round trip preserves unset.
func (f *Field) AppendWire(b []byte, num protowire.Number, def *Default) []byte {
	if f.IsDefault(def) {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, f.GetBytes())
}

// WireSize returns the number of bytes [Field.AppendWire] would append.
func (f *Field) WireSize(num protowire.Number, def *Default) int {
	if f.IsDefault(def) {
		return 0
	}
	return protowire.SizeTag(num) + protowire.SizeBytes(f.payload().Len())
}

// ConsumeWire decodes one length-delimited record from the front of b into
// the field and returns the number of bytes consumed. The caller has
// already consumed the tag; b begins at the length prefix.
//
// Contents are adopted verbatim. UTF-8 enforcement, where the declaration
// calls for it, belongs to the caller that knows the field's kind.
func (f *Field) ConsumeWire(def *Default, b []byte, a *Arena) (int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, &errWire{cause: protowire.ParseError(n)}
	}
	f.SetBytes(def, v, a)
	return n, nil
}
