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

// Package parser converts tokenized OSWatcher snapshot blocks into typed
// records, one parser per metric family.
//
// # Parsing strategy
//
// The five source tools emit whitespace-delimited tables whose exact column
// names and order drift across OS and tool versions. Each parser therefore
// locates the header row inside the block, builds a column-name-to-index map
// from it, and reads data rows positionally through that map instead of
// hard-coding positions.
//
// # Failure semantics
//
// Parsers never return errors. A data line that fails numeric coercion for a
// required field is skipped and the rest of the block still parses; a block
// that yields nothing parseable returns ok=false, which callers treat as a
// skip. Numeric fields tolerate trailing unit suffixes (k, kB, %) and are
// canonicalized at parse time.
package parser
