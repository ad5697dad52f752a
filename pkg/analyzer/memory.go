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
	"time"

	"github.com/NVIDIA/osw-analyzer/pkg/config"
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/series"
)

// MemoryAnalyzer flags low available memory and sustained high usage from
// the meminfo series.
type MemoryAnalyzer struct {
	th config.Thresholds
}

func NewMemoryAnalyzer(th config.Thresholds) *MemoryAnalyzer {
	return &MemoryAnalyzer{th: th}
}

func (a *MemoryAnalyzer) Category() record.Category { return record.CategoryMemory }

func (a *MemoryAnalyzer) Analyze(store *series.Store) []record.Finding {
	recs := store.All(record.FamilyMemInfo)
	if len(recs) == 0 {
		return []record.Finding{insufficientData(a.Category(), record.FamilyMemInfo)}
	}

	avail := make([]sample, 0, len(recs))
	used := make([]sample, 0, len(recs))
	for _, r := range recs {
		mr := r.(*record.MemInfoRecord)
		avail = append(avail, sample{ts: mr.Timestamp, v: mr.AvailableRatio() * 100})
		used = append(used, sample{ts: mr.Timestamp, v: mr.UsedPct()})
	}

	var findings []record.Finding

	for _, run := range collectRuns(avail, func(v float64) bool { return v < a.th.MemAvailableFloorPct }) {
		low := lowestIn(avail, run)
		msg := fmt.Sprintf("available memory below %.0f%% of total for %d samples, lowest %.1f%%",
			a.th.MemAvailableFloorPct, run.Count, low)
		findings = append(findings, newFinding(a.Category(), record.SeverityCritical, run, msg, map[string]string{
			"lowest_pct": fmt.Sprintf("%.1f", low),
		}))
	}

	for _, run := range collectRuns(used, func(v float64) bool { return v > a.th.MemUsedHighPct }) {
		msg := fmt.Sprintf("memory usage above %.0f%% for %d samples, peak %.1f%%",
			a.th.MemUsedHighPct, run.Count, run.Peak)
		findings = append(findings, newFinding(a.Category(), record.SeverityWarning, run, msg, map[string]string{
			"peak_pct": fmt.Sprintf("%.1f", run.Peak),
		}))
	}

	for _, run := range monotonicRuns(used, a.th.MemUsedHighPct/2, a.th.PatternMinRun, true) {
		msg := fmt.Sprintf("memory usage climbing for %d consecutive samples, %.1f%% at the end of the run",
			run.Count, run.Peak)
		findings = append(findings, newFinding(a.Category(), record.SeverityInfo, run, msg, nil))
	}

	findings = append(findings, usageSummary(a.Category(), used))
	return findings
}

// lowestIn returns the lowest sample value inside the run window. Runs track
// peaks on their own; below-floor runs care about the trough instead.
func lowestIn(samples []sample, run thresholdRun) float64 {
	low := run.Peak
	for _, s := range samples {
		if s.ts.Before(run.Start) || s.ts.After(run.End) {
			continue
		}
		if s.v < low {
			low = s.v
		}
	}
	return low
}

func usageSummary(c record.Category, used []sample) record.Finding {
	peak, low := used[0], used[0]
	for _, s := range used[1:] {
		if s.v > peak.v {
			peak = s
		}
		if s.v < low.v {
			low = s
		}
	}
	return record.Finding{
		Category: c,
		Severity: record.SeverityInfo,
		Time:     peak.ts,
		Message: fmt.Sprintf("memory usage peaked at %.1f%% (%s), lowest %.1f%% (%s)",
			peak.v, peak.ts.Format(time.RFC3339), low.v, low.ts.Format(time.RFC3339)),
		Metrics: map[string]string{
			"peak_pct":   fmt.Sprintf("%.1f", peak.v),
			"lowest_pct": fmt.Sprintf("%.1f", low.v),
		},
	}
}
