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
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/arenastr/arenastr/internal/tagptr"
	"github.com/arenastr/arenastr/internal/xsync"
)

// Empty is the Default for declarations whose default value is the empty
// string. That is every proto3 string field and most proto2 ones.
var Empty = NewDefault("")

// Default is the default value of one string field declaration.
//
// An unset [Field] points at its Default's sentinel payload, and
// [Field.IsDefault] is a single pointer comparison against it. Identity is
// what matters: two Defaults built from equal contents are still distinct,
// so each declaration should build its Default once and share it across
// every message holding that field. [DefaultOf] does exactly that for
// fields described by a [protoreflect.FieldDescriptor].
//
// A Default must outlive every Field initialized from it. Arena-resident
// holders do not keep it alive on their own, since the GC does not scan
// arena memory; package-level Defaults like [Empty] and the memoized
// results of [DefaultOf] always satisfy this.
type Default struct {
	// content is the sentinel payload. Fields in the unset state point at
	// it, so it must never be mutated.
	content String

	// sentinel is the tagged word an unset Field holds, precomputed so that
	// resets and IsDefault checks are single-word operations.
	sentinel tagptr.Ptr[String]
}

// NewDefault returns a Default whose content is a copy of v.
func NewDefault(v string) *Default {
	d := new(Default)
	d.content.assignString(v, nil)
	d.sentinel = tagptr.Make(&d.content, tagptr.Heap)
	return d
}

// Value returns the default contents.
func (d *Default) Value() string {
	return d.content.String()
}

// defaults memoizes one Default per field descriptor.
var defaults xsync.Map[protoreflect.FieldDescriptor, *Default]

// DefaultOf returns the shared Default for fd, which must describe a
// singular string or bytes field.
//
// Defaults are memoized per descriptor, so every holder of the same
// declaration compares against the same sentinel. Proto2 declarations with
// an explicit default text get those contents, via fd.Default().
func DefaultOf(fd protoreflect.FieldDescriptor) *Default {
	if d, ok := defaults.Load(fd); ok {
		return d
	}

	if fd.IsList() || fd.IsMap() {
		panic(fmt.Errorf("arenastr: not a singular field: %v", fd.FullName()))
	}

	var v string
	switch fd.Kind() {
	case protoreflect.StringKind:
		v = fd.Default().String()
	case protoreflect.BytesKind:
		v = string(fd.Default().Bytes())
	default:
		panic(fmt.Errorf("arenastr: not a string or bytes field: %v (%v kind)", fd.FullName(), fd.Kind()))
	}

	d, _ := defaults.LoadOrStore(fd, func() *Default { return NewDefault(v) })
	return d
}
