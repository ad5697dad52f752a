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

// VMStatParser parses oswvmstat snapshot blocks: the two-row vmstat header
// ("procs memory swap io system cpu" groups, then the r/b/swpd/... column
// row) followed by one or more sample rows.
//
// A block usually carries several sample rows; the first reflects averages
// since boot, so the last row of the block becomes the record.
type VMStatParser struct{}

// Parse implements Parser.
func (p *VMStatParser) Parse(snap tokenizer.Snapshot) (record.Record, bool) {
	var (
		cols map[string]int
		rec  *record.VMStatRecord
	)

	for _, line := range snap.Lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if isVMStatHeader(fields) {
			cols = columnMap(fields)
			continue
		}
		if cols == nil {
			continue
		}

		if parsed, ok := parseVMStatRow(fields, cols); ok {
			parsed.Timestamp = snap.Timestamp
			rec = parsed
		}
	}

	if rec == nil {
		return nil, false
	}
	return rec, true
}

func isVMStatHeader(fields []string) bool {
	cols := columnMap(fields)
	for _, required := range []string{"r", "b", "us", "sy", "id", "wa"} {
		if _, ok := cols[required]; !ok {
			return false
		}
	}
	return true
}

// parseVMStatRow maps one sample row through the header. The run queue,
// blocked count, and the four CPU percentages are required; swap columns are
// optional because very old vmstat builds omit them.
func parseVMStatRow(fields []string, cols map[string]int) (*record.VMStatRecord, bool) {
	r, okR := coerceInt(fieldAt(fields, cols["r"]))
	b, okB := coerceInt(fieldAt(fields, cols["b"]))
	us, okUs := coerceFloat(fieldAt(fields, cols["us"]))
	sy, okSy := coerceFloat(fieldAt(fields, cols["sy"]))
	id, okID := coerceFloat(fieldAt(fields, cols["id"]))
	wa, okWa := coerceFloat(fieldAt(fields, cols["wa"]))
	if !okR || !okB || !okUs || !okSy || !okID || !okWa {
		return nil, false
	}

	rec := &record.VMStatRecord{
		RunQueue:     r,
		BlockedProcs: b,
		CPUUser:      us,
		CPUSystem:    sy,
		CPUIdle:      id,
		CPUWait:      wa,
	}
	if si, ok := coerceUint(fieldAt(fields, firstColumn(cols, "si"))); ok {
		rec.SwapIn = si
	}
	if so, ok := coerceUint(fieldAt(fields, firstColumn(cols, "so"))); ok {
		rec.SwapOut = so
	}
	return rec, true
}
