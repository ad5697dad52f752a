// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package tokenizer splits raw OSWatcher archive text into timestamped
// snapshot blocks.
//
// OSWatcher writes one "zzz ***<timestamp>" marker line per collection
// interval; every line after a marker up to the next marker (or end of file)
// belongs to one snapshot. Tokenize is a pure transformation: it performs no
// I/O and yields snapshots lazily, so callers can range over a file's
// snapshots more than once.
//
// A marker-looking line whose date does not parse is treated as content of
// the current block, not as a new boundary, to tolerate noise in archived
// files. Lines before the first valid marker (the collector preamble) belong
// to no snapshot.
package tokenizer
