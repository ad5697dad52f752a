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

package parser

import (
	"strconv"
	"strings"
)

// coerceFloat parses a numeric field, tolerating trailing unit suffixes the
// source tools attach (%, k, K, kB, KB, m, M). Returns false when the field
// is not numeric at all.
func coerceFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	for _, suffix := range []string{"%", "kB", "KB", "kb", "k", "K", "m", "M"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// coerceUint parses a non-negative integer field with the same suffix
// tolerance as coerceFloat.
func coerceUint(s string) (uint64, bool) {
	v, ok := coerceFloat(s)
	if !ok || v < 0 {
		return 0, false
	}
	return uint64(v), true
}

// coerceInt parses an integer field with the same suffix tolerance as
// coerceFloat.
func coerceInt(s string) (int, bool) {
	v, ok := coerceFloat(s)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// columnMap builds a column-name-to-index map from a header row. Trailing
// colons on header names (iostat's "Device:") are dropped.
func columnMap(fields []string) map[string]int {
	cols := make(map[string]int, len(fields))
	for i, name := range fields {
		cols[strings.TrimSuffix(name, ":")] = i
	}
	return cols
}

// fieldAt returns the field at idx, or empty string when the row is too
// short or the column is unmapped (idx < 0).
func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// firstColumn returns the index of the first present column among names,
// or -1 when the header carries none of them. Column naming drifts across
// tool versions; callers list the variants newest first.
func firstColumn(cols map[string]int, names ...string) int {
	for _, name := range names {
		if idx, ok := cols[name]; ok {
			return idx
		}
	}
	return -1
}
