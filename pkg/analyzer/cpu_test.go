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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/series"
)

// cpuStore builds a top series where PID 1234 shows the given CPU
// percentages, one sample per value.
func cpuStore(load float64, pcts ...float64) *series.Store {
	store := series.New()
	for i, pct := range pcts {
		store.Insert(&record.CPURecord{
			Timestamp: at(i),
			Load1:     load,
			Processes: []record.ProcessEntry{
				{PID: 1234, User: "oracle", CPUPct: pct, MemPct: 2.0, State: record.StateRunning, Command: "ora_dbw0"},
			},
		})
	}
	return store
}

func TestCPUAnalyzerSustainedProcess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pcts     []float64
		warnings int
		critical int
	}{
		{name: "exactly at threshold never fires", pcts: []float64{80.0, 80.0}, warnings: 0},
		{name: "two samples is not sustained", pcts: []float64{80.1, 80.1}, warnings: 0},
		{name: "three samples just over threshold", pcts: []float64{80.1, 80.1, 80.1}, warnings: 1},
		{name: "run broken by a quiet sample", pcts: []float64{85, 85, 10, 85, 85}, warnings: 0},
		{name: "peak escalates the whole run", pcts: []float64{81, 95, 81}, critical: 1},
		{name: "long run stays one finding", pcts: []float64{85, 85, 85, 85, 85, 85}, warnings: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := NewCPUAnalyzer(defaults(t), 0)
			got := a.processFindings(cpuStore(0.5, tc.pcts...).All(record.FamilyCPU))
			assert.Len(t, bySeverity(got, record.SeverityWarning), tc.warnings)
			assert.Len(t, bySeverity(got, record.SeverityCritical), tc.critical)
		})
	}
}

func TestCPUAnalyzerSustainedRunWindow(t *testing.T) {
	t.Parallel()
	a := NewCPUAnalyzer(defaults(t), 0)
	got := a.processFindings(cpuStore(0.5, 10, 85, 92, 85, 10).All(record.FamilyCPU))
	require.Len(t, got, 1)
	f := got[0]
	assert.Equal(t, record.SeverityCritical, f.Severity)
	assert.Equal(t, at(1), f.Time)
	assert.Equal(t, at(3), f.End)
	assert.Contains(t, f.Message, "ora_dbw0")
	assert.Equal(t, "1234", f.Metrics["pid"])
	assert.Equal(t, "92.0", f.Metrics["peak_pct"])
}

func TestCPUAnalyzerLoadOverCores(t *testing.T) {
	t.Parallel()
	store := series.New()
	for i, load := range []float64{1.0, 3.5, 3.8, 1.2} {
		store.Insert(&record.CPURecord{Timestamp: at(i), Load1: load})
	}

	// 4 cores puts the high-water mark at 3.0.
	a := NewCPUAnalyzer(defaults(t), 4)
	got := a.Analyze(store)
	warns := bySeverity(got, record.SeverityWarning)
	require.Len(t, warns, 1)
	assert.Equal(t, at(1), warns[0].Time)
	assert.Equal(t, at(2), warns[0].End)
	assert.Contains(t, warns[0].Message, "load average")
}

func TestCPUAnalyzerLoadSummaryAlwaysPresent(t *testing.T) {
	t.Parallel()
	a := NewCPUAnalyzer(defaults(t), 0)
	got := a.Analyze(cpuStore(2.5, 10))
	infos := bySeverity(got, record.SeverityInfo)
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0].Message, "load peaked at 2.50")
}

func TestCPUAnalyzerZeroCoresSkipsLoadChecks(t *testing.T) {
	t.Parallel()
	store := series.New()
	for i := range 5 {
		store.Insert(&record.CPURecord{Timestamp: at(i), Load1: 500})
	}
	a := NewCPUAnalyzer(defaults(t), 0)
	got := a.Analyze(store)
	assert.Empty(t, bySeverity(got, record.SeverityWarning))
}
