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

// TopParser parses oswtop snapshot blocks: the "top - ... load average:"
// summary line plus the per-process table below the PID/USER/.../COMMAND
// header.
type TopParser struct{}

const loadAverageMarker = "load average:"

// Parse implements Parser.
func (p *TopParser) Parse(snap tokenizer.Snapshot) (record.Record, bool) {
	rec := &record.CPURecord{Timestamp: snap.Timestamp}

	var (
		haveLoad bool
		inTable  bool

		pidIdx, userIdx, stateIdx, cpuIdx, memIdx, cmdIdx int
	)

	for _, line := range snap.Lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// a blank line ends the process table in top output
			inTable = false
			continue
		}

		if idx := strings.Index(trimmed, loadAverageMarker); idx >= 0 {
			if l1, l5, l15, ok := parseLoadAverages(trimmed[idx+len(loadAverageMarker):]); ok {
				rec.Load1, rec.Load5, rec.Load15 = l1, l5, l15
				haveLoad = true
			}
			continue
		}

		fields := strings.Fields(trimmed)
		if isTopHeader(fields) {
			cols := columnMap(fields)
			pidIdx = cols["PID"]
			userIdx = firstColumn(cols, "USER", "UID")
			stateIdx = firstColumn(cols, "S", "ST", "STAT")
			cpuIdx = firstColumn(cols, "%CPU", "CPU%", "CPU")
			memIdx = firstColumn(cols, "%MEM", "MEM%", "MEM")
			cmdIdx = firstColumn(cols, "COMMAND", "CMD")
			inTable = true
			continue
		}

		if !inTable {
			continue
		}
		if entry, ok := parseProcessRow(fields, pidIdx, userIdx, stateIdx, cpuIdx, memIdx, cmdIdx); ok {
			rec.Processes = append(rec.Processes, entry)
		}
	}

	if !haveLoad && len(rec.Processes) == 0 {
		return nil, false
	}
	return rec, true
}

// parseLoadAverages reads the "1.20, 0.80, 0.60" triple after the
// "load average:" marker.
func parseLoadAverages(rest string) (l1, l5, l15 float64, ok bool) {
	parts := strings.Split(rest, ",")
	if len(parts) < 3 {
		return 0, 0, 0, false
	}
	l1, ok1 := coerceFloat(parts[0])
	l5, ok5 := coerceFloat(parts[1])
	l15, ok15 := coerceFloat(parts[2])
	if !ok1 || !ok5 || !ok15 {
		return 0, 0, 0, false
	}
	return l1, l5, l15, true
}

func isTopHeader(fields []string) bool {
	if len(fields) < 4 {
		return false
	}
	cols := columnMap(fields)
	_, hasPID := cols["PID"]
	return hasPID && firstColumn(cols, "COMMAND", "CMD") >= 0
}

// parseProcessRow reads one process table row through the header map.
// PID, %CPU and %MEM are required; a row failing any of those coercions is
// skipped without affecting the rest of the block. COMMAND is the remainder
// of the row so commands with spaces survive.
func parseProcessRow(fields []string, pidIdx, userIdx, stateIdx, cpuIdx, memIdx, cmdIdx int) (record.ProcessEntry, bool) {
	if cmdIdx < 0 || len(fields) <= cmdIdx {
		return record.ProcessEntry{}, false
	}

	pid, ok := coerceInt(fieldAt(fields, pidIdx))
	if !ok {
		return record.ProcessEntry{}, false
	}
	cpu, ok := coerceFloat(fieldAt(fields, cpuIdx))
	if !ok {
		return record.ProcessEntry{}, false
	}
	mem, ok := coerceFloat(fieldAt(fields, memIdx))
	if !ok {
		return record.ProcessEntry{}, false
	}

	return record.ProcessEntry{
		PID:     pid,
		User:    fieldAt(fields, userIdx),
		CPUPct:  cpu,
		MemPct:  mem,
		State:   record.ParseProcState(fieldAt(fields, stateIdx)),
		Command: strings.Join(fields[cmdIdx:], " "),
	}, true
}
