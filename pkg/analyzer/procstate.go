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

	"github.com/NVIDIA/osw-analyzer/pkg/config"
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/series"
)

// ProcStateAnalyzer watches the per-process table of the top series for
// processes stuck in uninterruptible sleep and for processes holding both
// high CPU and high memory at once.
type ProcStateAnalyzer struct {
	th config.Thresholds
}

func NewProcStateAnalyzer(th config.Thresholds) *ProcStateAnalyzer {
	return &ProcStateAnalyzer{th: th}
}

func (a *ProcStateAnalyzer) Category() record.Category { return record.CategoryProcState }

func (a *ProcStateAnalyzer) Analyze(store *series.Store) []record.Finding {
	recs := store.All(record.FamilyCPU)
	if len(recs) == 0 {
		return []record.Finding{insufficientData(a.Category(), record.FamilyCPU)}
	}

	dstate := newKeyedRuns()
	combined := newKeyedRuns()
	cmds := map[string]string{}
	for _, r := range recs {
		cr := r.(*record.CPURecord)
		dhits := map[string]float64{}
		chits := map[string]float64{}
		for _, p := range cr.Processes {
			key := strconv.Itoa(p.PID)
			if p.State == record.StateDiskWait {
				dhits[key] = 1
				cmds[key] = p.Command
			}
			if p.CPUPct > a.th.HighCPUPct && p.MemPct > a.th.HighMemPct {
				chits[key] = p.CPUPct
				cmds[key] = p.Command
			}
		}
		dstate.advance(cr.Timestamp, dhits)
		combined.advance(cr.Timestamp, chits)
	}

	var findings []record.Finding
	for _, run := range dstate.finish() {
		sev := record.SeverityWarning
		if run.Count >= a.th.DStateCritRun {
			sev = record.SeverityCritical
		}
		msg := fmt.Sprintf("process %s (%s) in uninterruptible sleep for %d consecutive samples",
			run.Key, cmds[run.Key], run.Count)
		findings = append(findings, newFinding(a.Category(), sev, run.thresholdRun, msg, map[string]string{
			"pid":     run.Key,
			"command": cmds[run.Key],
			"samples": strconv.Itoa(run.Count),
		}))
	}
	for _, run := range combined.finish() {
		msg := fmt.Sprintf("process %s (%s) above %.0f%% CPU and %.0f%% memory at once for %d samples",
			run.Key, cmds[run.Key], a.th.HighCPUPct, a.th.HighMemPct, run.Count)
		findings = append(findings, newFinding(a.Category(), record.SeverityCritical, run.thresholdRun, msg, map[string]string{
			"pid":     run.Key,
			"command": cmds[run.Key],
		}))
	}
	return findings
}
