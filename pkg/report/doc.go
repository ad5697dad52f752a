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

// Package report assembles analyzer findings into a report and writes it
// out as text, JSON, or YAML.
//
// The text rendering is line oriented so reports stay greppable: every
// finding is one line of the form
//
//	[severity] timestamp — message
//
// where a finding that spans a window carries both boundary timestamps as
// start..end. ParseFindingLine inverts the rendering, so tooling downstream
// can recover severity, timestamps, and message from a report file.
//
// Sections follow the fixed category order and findings within a section
// are in timestamp order.
package report
