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

// Package analyzer computes findings from the time-series store.
//
// # Analyzers
//
// One analyzer per category: CPU, memory, vmstat, process-state, disk I/O
// wait, and netstat. Each is a pure function from store ranges to findings;
// analyzers borrow the store read-only and carry no state between runs.
//
// # Windowing convention
//
// Threshold crossings over consecutive samples are MERGED: one finding spans
// the first crossing sample through the last consecutive sample still above
// the threshold, and its severity is the highest level the run reached.
// "Consecutive" counts samples, not wall-clock time; irregular collection
// intervals never fail an analysis.
//
// # Missing data
//
// An analyzer whose required family has zero records emits exactly one
// informational finding noting insufficient data and returns. No analyzer
// ever returns an error.
package analyzer
