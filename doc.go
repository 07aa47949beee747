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

// Package arenastr implements the string field slot used inside arena-aware
// message structs: a single tagged word per field in place of a Go string
// header, with storage that can come from a bump-allocated [Arena] instead
// of the general heap.
//
// A [Field] is one pointer-sized word. Unset fields point at their
// declaration's shared [Default] sentinel, so presence checks and resets
// are single-word operations and the unset state costs no memory per
// message. Set fields point at a [String] payload, and the word's low bit
// records where that payload lives: on the Go heap, or carved directly out
// of the holder's arena.
//
// To use this package, give each string field declaration a [Default]
// (typically [Empty], or [DefaultOf] when you have a descriptor), embed a
// [Field] per string field in your message struct, and [Field.Init] each
// one before use. All mutating operations take the arena the holder was
// allocated on; pass nil for ordinary heap-allocated holders, or use the
// NoArena variants, which skip the representation dispatch entirely.
//
// # Ownership
//
// Payloads created against an arena are reclaimed in bulk by [Arena.Free];
// nothing is freed per field. Heap payloads that end up referenced from
// arena-resident holders (via [Field.Mutable] or [Field.SetAllocated]) are
// registered with the arena so the GC keeps them alive for the arena's
// lifetime. [Field.Release] always returns a value that owns its contents
// and survives the arena; [Field.UnsafeArenaRelease] is the cheaper,
// arena-tied variant for moving values between fields of one arena.
//
// # Concurrency
//
// Nothing here is synchronized. A holder and its fields require exclusive
// access to mutate, exactly like any other struct; concurrent [Field.Get]
// calls are safe only while no mutators run. The [DefaultOf] registry is
// the one concurrent-safe surface.
package arenastr
