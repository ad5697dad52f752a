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

// Package record defines the normalized data model shared across the analyzer.
//
// # Overview
//
// OSWatcher archives five heterogeneous text formats (top, vmstat, meminfo,
// iostat, netstat). This package defines one structured record type per metric
// family, the Family enumeration that names them, the closed process-state
// enumeration, and the Finding type produced by analyzers.
//
// Records are immutable once parsed: parsers create them, the series store
// owns them, and analyzers only read them.
package record
