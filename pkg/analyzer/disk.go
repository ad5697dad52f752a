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

package analyzer

import (
	"fmt"

	"github.com/NVIDIA/osw-analyzer/pkg/config"
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/series"
)

// DiskAnalyzer flags devices with slow request service times or sustained
// high utilization from the iostat series.
type DiskAnalyzer struct {
	th config.Thresholds
}

func NewDiskAnalyzer(th config.Thresholds) *DiskAnalyzer {
	return &DiskAnalyzer{th: th}
}

func (a *DiskAnalyzer) Category() record.Category { return record.CategoryDisk }

func (a *DiskAnalyzer) Analyze(store *series.Store) []record.Finding {
	recs := store.All(record.FamilyIOStat)
	if len(recs) == 0 {
		return []record.Finding{insufficientData(a.Category(), record.FamilyIOStat)}
	}

	await := newKeyedRuns()
	util := newKeyedRuns()
	hostWait := make([]sample, 0, len(recs))
	for _, r := range recs {
		ir := r.(*record.IOStatRecord)
		ahits := map[string]float64{}
		uhits := map[string]float64{}
		for _, d := range ir.Devices {
			if d.AwaitMs > a.th.DiskAwaitWarnMs {
				ahits[d.Device] = d.AwaitMs
			}
			if d.UtilPct > a.th.DiskUtilHighPct {
				uhits[d.Device] = d.UtilPct
			}
		}
		await.advance(ir.Timestamp, ahits)
		util.advance(ir.Timestamp, uhits)
		hostWait = append(hostWait, sample{ts: ir.Timestamp, v: ir.CPUWaitPct})
	}

	var findings []record.Finding
	for _, run := range await.finish() {
		sev := record.SeverityWarning
		if run.Peak > a.th.DiskAwaitCritMs {
			sev = record.SeverityCritical
		}
		msg := fmt.Sprintf("device %s average wait above %.0fms for %d samples, peak %.1fms",
			run.Key, a.th.DiskAwaitWarnMs, run.Count, run.Peak)
		findings = append(findings, newFinding(a.Category(), sev, run.thresholdRun, msg, map[string]string{
			"device":  run.Key,
			"peak_ms": fmt.Sprintf("%.1f", run.Peak),
		}))
	}
	for _, run := range util.finish() {
		msg := fmt.Sprintf("device %s above %.0f%% utilization for %d samples, peak %.1f%%",
			run.Key, a.th.DiskUtilHighPct, run.Count, run.Peak)
		findings = append(findings, newFinding(a.Category(), record.SeverityWarning, run.thresholdRun, msg, map[string]string{
			"device":   run.Key,
			"peak_pct": fmt.Sprintf("%.1f", run.Peak),
		}))
	}
	findings = append(findings, hostWaitSummary(a.Category(), hostWait))
	return findings
}

func hostWaitSummary(c record.Category, samples []sample) record.Finding {
	peak := samples[0]
	for _, s := range samples[1:] {
		if s.v > peak.v {
			peak = s
		}
	}
	return record.Finding{
		Category: c,
		Severity: record.SeverityInfo,
		Time:     peak.ts,
		Message:  fmt.Sprintf("host I/O wait peaked at %.1f%%", peak.v),
		Metrics:  map[string]string{"peak_pct": fmt.Sprintf("%.1f", peak.v)},
	}
}
