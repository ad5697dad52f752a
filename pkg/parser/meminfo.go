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
	"strings"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/tokenizer"
)

// MemInfoParser parses oswmeminfo snapshot blocks: /proc/meminfo style
// "Key:   value kB" lines.
type MemInfoParser struct{}

// Parse implements Parser. MemTotal and MemFree are required; everything
// else is optional. Kernels older than 3.14 have no MemAvailable, in which
// case free plus buffers plus cache stands in for it.
func (p *MemInfoParser) Parse(snap tokenizer.Snapshot) (record.Record, bool) {
	values := make(map[string]uint64)

	for _, line := range snap.Lines {
		key, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.ContainsAny(key, " \t") {
			continue
		}
		if v, ok := coerceUint(strings.TrimSpace(rest)); ok {
			values[key] = v
		}
	}

	total, okTotal := values["MemTotal"]
	free, okFree := values["MemFree"]
	if !okTotal || !okFree {
		return nil, false
	}

	rec := &record.MemInfoRecord{
		Timestamp:   snap.Timestamp,
		MemTotalKB:  total,
		MemFreeKB:   free,
		BuffersKB:   values["Buffers"],
		CachedKB:    values["Cached"],
		SwapTotalKB: values["SwapTotal"],
		SwapFreeKB:  values["SwapFree"],
	}

	if avail, ok := values["MemAvailable"]; ok {
		rec.MemAvailKB = avail
	} else {
		rec.MemAvailKB = free + rec.BuffersKB + rec.CachedKB
	}
	return rec, true
}
