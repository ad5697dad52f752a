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

func vmstatStore(waits ...float64) *series.Store {
	store := series.New()
	for i, w := range waits {
		store.Insert(&record.VMStatRecord{Timestamp: at(i), CPUWait: w})
	}
	return store
}

func TestVMStatAnalyzerMergesWaitRun(t *testing.T) {
	t.Parallel()
	a := NewVMStatAnalyzer(defaults(t), 0)
	got := a.Analyze(vmstatStore(5, 10, 25, 30, 8))
	require.Len(t, got, 1)
	f := got[0]
	assert.Equal(t, record.SeverityWarning, f.Severity)
	assert.Equal(t, at(2), f.Time)
	assert.Equal(t, at(3), f.End)
	assert.Equal(t, "30", f.Metrics["peak_pct"])
	assert.True(t, f.Spans())
}

func TestVMStatAnalyzerSeparateRuns(t *testing.T) {
	t.Parallel()
	a := NewVMStatAnalyzer(defaults(t), 0)
	got := a.Analyze(vmstatStore(25, 5, 25))
	assert.Len(t, got, 2)
}

func TestVMStatAnalyzerNoWaitAboveThreshold(t *testing.T) {
	t.Parallel()
	a := NewVMStatAnalyzer(defaults(t), 0)
	assert.Empty(t, a.Analyze(vmstatStore(5, 20, 19.9)))
}

func TestVMStatAnalyzerRunQueueOverCores(t *testing.T) {
	t.Parallel()
	store := series.New()
	for i, rq := range []int{2, 9, 12, 3} {
		store.Insert(&record.VMStatRecord{Timestamp: at(i), RunQueue: rq})
	}

	a := NewVMStatAnalyzer(defaults(t), 8)
	got := a.Analyze(store)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "run queue above 8 cores")
	assert.Equal(t, at(1), got[0].Time)
	assert.Equal(t, at(2), got[0].End)

	// No core count, no run-queue findings.
	assert.Empty(t, NewVMStatAnalyzer(defaults(t), 0).Analyze(store))
}
