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

package testdata

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/arenastr/arenastr"
)

// Message is a dynamic holder built from a test case's declarations, for
// driving whole parse/serialize round trips through a set of fields.
type Message struct {
	arena *arenastr.Arena // nil for a heap-backed holder
	slots []*slot         // ascending field number
	byNum map[protowire.Number]*slot
}

type slot struct {
	num   protowire.Number
	name  string
	def   *arenastr.Default
	field *arenastr.Field
}

// NewMessage builds a holder for tc's declarations. With a non-nil arena,
// every field slot lives on the arena, as it would inside an
// arena-allocated message struct.
func NewMessage(tc *TestCase, a *arenastr.Arena) *Message {
	m := &Message{
		arena: a,
		byNum: make(map[protowire.Number]*slot, len(tc.Fields)),
	}

	for num, name := range tc.Fields {
		def := arenastr.Empty
		if v, ok := tc.Defaults[name]; ok {
			def = arenastr.NewDefault(v)
		}

		s := &slot{num: protowire.Number(num), name: name, def: def}
		s.field = arenastr.New(a, arenastr.Field{})
		s.field.Init(def)

		m.slots = append(m.slots, s)
		m.byNum[s.num] = s
	}

	slices.SortFunc(m.slots, func(x, y *slot) int { return int(x.num) - int(y.num) })
	return m
}

// Parse decodes b into the message. Unknown numbers and records that are
// not length-delimited are skipped, the way an unknown-field-tolerant
// parser would skip them.
func (m *Message) Parse(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("testdata: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		s := m.byNum[num]
		if s == nil || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("testdata: bad field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		n, err := s.field.ConsumeWire(s.def, b, m.arena)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// Marshal serializes the set fields in field number order.
func (m *Message) Marshal() []byte {
	size := 0
	for _, s := range m.slots {
		size += s.field.WireSize(s.num, s.def)
	}

	b := make([]byte, 0, size)
	for _, s := range m.slots {
		b = s.field.AppendWire(b, s.num, s.def)
	}
	return b
}

// Get returns the named field's contents.
func (m *Message) Get(name string) string {
	return m.slot(name).field.Get()
}

// IsSet reports whether the named field holds a value of its own.
func (m *Message) IsSet(name string) bool {
	s := m.slot(name)
	return !s.field.IsDefault(s.def)
}

// Field returns the named field and its default, for direct surgery.
func (m *Message) Field(name string) (*arenastr.Field, *arenastr.Default) {
	s := m.slot(name)
	return s.field, s.def
}

// Check asserts that the message matches tc's expectations: every field in
// Want holds its contents, every other field is unset and reads as its
// default.
func (m *Message) Check(t testing.TB, tc *TestCase) {
	t.Helper()

	for _, s := range m.slots {
		want, ok := tc.Want[s.name]
		if !ok {
			assert.True(t, s.field.IsDefault(s.def), "field %s should be unset", s.name)
			assert.Equal(t, s.def.Value(), s.field.Get(), "field %s default contents", s.name)
			continue
		}

		assert.False(t, s.field.IsDefault(s.def), "field %s should be set", s.name)
		assert.Equal(t, want, s.field.Get(), "field %s contents", s.name)
	}
}

func (m *Message) slot(name string) *slot {
	for _, s := range m.slots {
		if s.name == name {
			return s
		}
	}
	panic(fmt.Sprintf("testdata: no field named %q", name))
}
