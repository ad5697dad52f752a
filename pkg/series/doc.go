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

// Package series provides the timestamp-ordered store of parsed records.
//
// The store maps each metric family to an ordered sequence of records. It is
// built once per analysis run and only read afterwards; analyzers borrow the
// sequences read-only and never mutate them. When archive files overlap, an
// exact-timestamp collision keeps the later-inserted record, on the
// assumption that a later file supersedes an earlier one.
package series
