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

// IOStatParser parses oswiostat snapshot blocks: the avg-cpu section for the
// host iowait percentage plus the per-device statistics table.
type IOStatParser struct{}

// Parse implements Parser.
func (p *IOStatParser) Parse(snap tokenizer.Snapshot) (record.Record, bool) {
	rec := &record.IOStatRecord{Timestamp: snap.Timestamp}

	var (
		haveWait   bool
		cpuCols    map[string]int
		deviceCols map[string]int
	)

	for _, line := range snap.Lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		fields := strings.Fields(trimmed)

		switch {
		case strings.HasPrefix(trimmed, "avg-cpu:"):
			// header names follow the prefix on the same line
			cpuCols = columnMap(fields[1:])
			deviceCols = nil
		case strings.HasPrefix(trimmed, "Device"):
			deviceCols = columnMap(fields)
			cpuCols = nil
		case cpuCols != nil:
			if wait, ok := coerceFloat(fieldAt(fields, firstColumn(cpuCols, "%iowait", "iowait"))); ok {
				rec.CPUWaitPct = wait
				haveWait = true
			}
			cpuCols = nil
		case deviceCols != nil:
			if dev, ok := parseDeviceRow(fields, deviceCols); ok {
				rec.Devices = append(rec.Devices, dev)
			}
		}
	}

	if !haveWait && len(rec.Devices) == 0 {
		return nil, false
	}
	return rec, true
}

// parseDeviceRow maps one device statistics row through the header, covering
// both the classic column set (tps, kB_read/s, kB_wrtn/s) and the extended
// one (r/s, w/s, rkB/s, wkB/s, await or r_await/w_await, %util). The device
// name and at least one mapped numeric column are required.
func parseDeviceRow(fields []string, cols map[string]int) (record.DeviceEntry, bool) {
	name := fieldAt(fields, cols["Device"])
	if name == "" {
		return record.DeviceEntry{}, false
	}

	dev := record.DeviceEntry{Device: name}
	matched := 0

	if v, ok := coerceFloat(fieldAt(fields, firstColumn(cols, "tps"))); ok {
		dev.TPS = v
		matched++
	}
	if v, ok := coerceFloat(fieldAt(fields, firstColumn(cols, "rkB/s", "kB_read/s"))); ok {
		dev.ReadKBs = v
		matched++
	}
	if v, ok := coerceFloat(fieldAt(fields, firstColumn(cols, "wkB/s", "kB_wrtn/s"))); ok {
		dev.WriteKBs = v
		matched++
	}
	if v, ok := coerceFloat(fieldAt(fields, firstColumn(cols, "%util"))); ok {
		dev.UtilPct = v
		matched++
	}

	if v, ok := coerceFloat(fieldAt(fields, firstColumn(cols, "await"))); ok {
		dev.AwaitMs = v
		matched++
	} else {
		// newer iostat splits await into read and write halves
		rAwait, okR := coerceFloat(fieldAt(fields, firstColumn(cols, "r_await")))
		wAwait, okW := coerceFloat(fieldAt(fields, firstColumn(cols, "w_await")))
		switch {
		case okR && okW:
			dev.AwaitMs = (rAwait + wAwait) / 2
			matched++
		case okR:
			dev.AwaitMs = rAwait
			matched++
		case okW:
			dev.AwaitMs = wAwait
			matched++
		}
	}

	if matched == 0 {
		return record.DeviceEntry{}, false
	}
	return dev, true
}
