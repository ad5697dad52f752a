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

// NetstatAnalyzer flags TIME_WAIT socket buildup and interfaces that show
// packet drops or errors.
type NetstatAnalyzer struct {
	th config.Thresholds
}

func NewNetstatAnalyzer(th config.Thresholds) *NetstatAnalyzer {
	return &NetstatAnalyzer{th: th}
}

func (a *NetstatAnalyzer) Category() record.Category { return record.CategoryNetstat }

func (a *NetstatAnalyzer) Analyze(store *series.Store) []record.Finding {
	recs := store.All(record.FamilyNetstat)
	if len(recs) == 0 {
		return []record.Finding{insufficientData(a.Category(), record.FamilyNetstat)}
	}

	timeWait := make([]sample, 0, len(recs))
	drops := newKeyedRuns()
	errs := newKeyedRuns()
	for _, r := range recs {
		nr := r.(*record.NetstatRecord)
		timeWait = append(timeWait, sample{ts: nr.Timestamp, v: float64(nr.TCPTimeWait)})
		dhits := map[string]float64{}
		ehits := map[string]float64{}
		for _, ifc := range nr.Interfaces {
			if n := ifc.RXDrops + ifc.TXDrops; n > 0 {
				dhits[ifc.Name] = float64(n)
			}
			if n := ifc.RXErrors + ifc.TXErrors; n > 0 {
				ehits[ifc.Name] = float64(n)
			}
		}
		drops.advance(nr.Timestamp, dhits)
		errs.advance(nr.Timestamp, ehits)
	}

	var findings []record.Finding

	for _, run := range collectRuns(timeWait, func(v float64) bool { return v > float64(a.th.TCPTimeWaitBaseline) }) {
		msg := fmt.Sprintf("TIME_WAIT sockets above %d for %d samples, peak %.0f",
			a.th.TCPTimeWaitBaseline, run.Count, run.Peak)
		findings = append(findings, newFinding(a.Category(), record.SeverityWarning, run, msg, map[string]string{
			"peak": fmt.Sprintf("%.0f", run.Peak),
		}))
	}

	// Interface counters are cumulative, so a single nonzero reading is
	// already evidence of loss and a run typically spans the whole range.
	for _, run := range drops.finish() {
		msg := fmt.Sprintf("interface %s dropping packets, %.0f dropped by the last sample", run.Key, run.Peak)
		findings = append(findings, newFinding(a.Category(), record.SeverityWarning, run.thresholdRun, msg, map[string]string{
			"interface": run.Key,
			"dropped":   fmt.Sprintf("%.0f", run.Peak),
		}))
	}
	for _, run := range errs.finish() {
		msg := fmt.Sprintf("interface %s reporting packet errors, %.0f by the last sample", run.Key, run.Peak)
		findings = append(findings, newFinding(a.Category(), record.SeverityWarning, run.thresholdRun, msg, map[string]string{
			"interface": run.Key,
			"errors":    fmt.Sprintf("%.0f", run.Peak),
		}))
	}
	return findings
}
