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

// VMStatAnalyzer flags sustained I/O wait and run queues that exceed the
// core count from the vmstat series.
type VMStatAnalyzer struct {
	th    config.Thresholds
	cores int
}

func NewVMStatAnalyzer(th config.Thresholds, cores int) *VMStatAnalyzer {
	return &VMStatAnalyzer{th: th, cores: cores}
}

func (a *VMStatAnalyzer) Category() record.Category { return record.CategoryVMStat }

func (a *VMStatAnalyzer) Analyze(store *series.Store) []record.Finding {
	recs := store.All(record.FamilyVMStat)
	if len(recs) == 0 {
		return []record.Finding{insufficientData(a.Category(), record.FamilyVMStat)}
	}

	wait := make([]sample, 0, len(recs))
	runq := make([]sample, 0, len(recs))
	for _, r := range recs {
		vr := r.(*record.VMStatRecord)
		wait = append(wait, sample{ts: vr.Timestamp, v: vr.CPUWait})
		runq = append(runq, sample{ts: vr.Timestamp, v: float64(vr.RunQueue)})
	}

	var findings []record.Finding

	for _, run := range collectRuns(wait, func(v float64) bool { return v > a.th.VMStatWaitPct }) {
		msg := fmt.Sprintf("CPU I/O wait above %.0f%% for %d samples, peak %.0f%%",
			a.th.VMStatWaitPct, run.Count, run.Peak)
		findings = append(findings, newFinding(a.Category(), record.SeverityWarning, run, msg, map[string]string{
			"peak_pct": fmt.Sprintf("%.0f", run.Peak),
		}))
	}

	if a.cores > 0 {
		for _, run := range collectRuns(runq, func(v float64) bool { return v > float64(a.cores) }) {
			msg := fmt.Sprintf("run queue above %d cores for %d samples, peak %.0f",
				a.cores, run.Count, run.Peak)
			findings = append(findings, newFinding(a.Category(), record.SeverityWarning, run, msg, map[string]string{
				"cores": fmt.Sprintf("%d", a.cores),
				"peak":  fmt.Sprintf("%.0f", run.Peak),
			}))
		}
	}

	return findings
}
