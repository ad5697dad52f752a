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
	"strconv"
	"time"

	"github.com/NVIDIA/osw-analyzer/pkg/config"
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/series"
)

// CPUAnalyzer flags processes that hold high CPU across consecutive top
// snapshots and load averages that outgrow the core count.
type CPUAnalyzer struct {
	th    config.Thresholds
	cores int
}

func NewCPUAnalyzer(th config.Thresholds, cores int) *CPUAnalyzer {
	return &CPUAnalyzer{th: th, cores: cores}
}

func (a *CPUAnalyzer) Category() record.Category { return record.CategoryCPU }

func (a *CPUAnalyzer) Analyze(store *series.Store) []record.Finding {
	recs := store.All(record.FamilyCPU)
	if len(recs) == 0 {
		return []record.Finding{insufficientData(a.Category(), record.FamilyCPU)}
	}

	var findings []record.Finding
	findings = append(findings, a.processFindings(recs)...)
	findings = append(findings, a.loadFindings(recs)...)
	return findings
}

// processFindings merges per-process runs above the sustained CPU threshold.
// A run only becomes a finding once it holds for the configured number of
// consecutive samples; a sample where the process is gone ends the run.
func (a *CPUAnalyzer) processFindings(recs []record.Record) []record.Finding {
	tr := newKeyedRuns()
	cmds := map[string]string{}
	for _, r := range recs {
		cr := r.(*record.CPURecord)
		hits := map[string]float64{}
		for _, p := range cr.Processes {
			if p.CPUPct > a.th.CPUProcPct {
				key := strconv.Itoa(p.PID)
				hits[key] = p.CPUPct
				cmds[key] = p.Command
			}
		}
		tr.advance(cr.Timestamp, hits)
	}

	var findings []record.Finding
	for _, run := range tr.finish() {
		if run.Count < a.th.CPUSustainSamples {
			continue
		}
		sev := record.SeverityWarning
		if run.Peak >= a.th.CPUProcCritPct {
			sev = record.SeverityCritical
		}
		msg := fmt.Sprintf("process %s (%s) above %.0f%% CPU for %d consecutive samples, peak %.1f%%",
			run.Key, cmds[run.Key], a.th.CPUProcPct, run.Count, run.Peak)
		findings = append(findings, newFinding(a.Category(), sev, run.thresholdRun, msg, map[string]string{
			"pid":      run.Key,
			"command":  cmds[run.Key],
			"peak_pct": fmt.Sprintf("%.1f", run.Peak),
			"samples":  strconv.Itoa(run.Count),
		}))
	}
	return findings
}

func (a *CPUAnalyzer) loadFindings(recs []record.Record) []record.Finding {
	samples := make([]sample, 0, len(recs))
	for _, r := range recs {
		cr := r.(*record.CPURecord)
		samples = append(samples, sample{ts: cr.Timestamp, v: cr.Load1})
	}

	var findings []record.Finding

	if a.cores > 0 {
		high := a.th.LoadHighRatio * float64(a.cores)
		for _, run := range collectRuns(samples, func(v float64) bool { return v > high }) {
			msg := fmt.Sprintf("1m load average above %.2f (%.0f%% of %d cores) for %d samples, peak %.2f",
				high, a.th.LoadHighRatio*100, a.cores, run.Count, run.Peak)
			findings = append(findings, newFinding(a.Category(), record.SeverityWarning, run, msg, map[string]string{
				"threshold": fmt.Sprintf("%.2f", high),
				"peak":      fmt.Sprintf("%.2f", run.Peak),
			}))
		}

		track := a.th.LoadTrackRatio * float64(a.cores)
		for _, run := range monotonicRuns(samples, track, a.th.PatternMinRun, true) {
			msg := fmt.Sprintf("load climbing for %d consecutive samples, %.2f at the end of the run", run.Count, run.Peak)
			findings = append(findings, newFinding(a.Category(), record.SeverityInfo, run, msg, nil))
		}
		for _, run := range monotonicRuns(samples, high, a.th.PatternMinRun, false) {
			msg := fmt.Sprintf("load recovering from %.2f over %d consecutive samples", run.Peak, run.Count)
			findings = append(findings, newFinding(a.Category(), record.SeverityInfo, run, msg, nil))
		}
	}

	findings = append(findings, loadSummary(a.Category(), samples))
	return findings
}

// loadSummary reports the peak and lowest observed 1m load for the range.
func loadSummary(c record.Category, samples []sample) record.Finding {
	peak, low := samples[0], samples[0]
	for _, s := range samples[1:] {
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
		Message: fmt.Sprintf("1m load peaked at %.2f (%s), lowest %.2f (%s)",
			peak.v, peak.ts.Format(time.RFC3339), low.v, low.ts.Format(time.RFC3339)),
		Metrics: map[string]string{
			"peak":   fmt.Sprintf("%.2f", peak.v),
			"lowest": fmt.Sprintf("%.2f", low.v),
		},
	}
}
