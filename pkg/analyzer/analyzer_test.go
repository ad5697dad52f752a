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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/osw-analyzer/pkg/config"
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/series"
)

var testBase = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// at returns the timestamp of the i-th sample, one minute apart.
func at(i int) time.Time {
	return testBase.Add(time.Duration(i) * time.Minute)
}

func defaults(t *testing.T) config.Thresholds {
	t.Helper()
	return config.Default()
}

// bySeverity filters findings at exactly the given severity.
func bySeverity(fs []record.Finding, sev record.Severity) []record.Finding {
	var out []record.Finding
	for _, f := range fs {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func TestAllCoversEveryCategory(t *testing.T) {
	t.Parallel()
	seen := map[record.Category]bool{}
	for _, a := range All(config.Default(), 4) {
		seen[a.Category()] = true
	}
	assert.Len(t, seen, len(record.Categories))
	for _, c := range record.Categories {
		assert.True(t, seen[c], "missing analyzer for %s", c)
	}
}

func TestForCategory(t *testing.T) {
	t.Parallel()
	a, err := ForCategory(record.CategoryDisk, config.Default(), 0)
	require.NoError(t, err)
	assert.Equal(t, record.CategoryDisk, a.Category())

	_, err = ForCategory(record.Category("bogus"), config.Default(), 0)
	assert.Error(t, err)
}

func TestEmptyStoreYieldsOneInfoFinding(t *testing.T) {
	t.Parallel()
	store := series.New()
	for _, a := range All(config.Default(), 4) {
		got := a.Analyze(store)
		require.Len(t, got, 1, "analyzer %s", a.Category())
		assert.Equal(t, record.SeverityInfo, got[0].Severity)
		assert.Equal(t, a.Category(), got[0].Category)
		assert.Contains(t, got[0].Message, "no ")
	}
}

func TestCollectRunsMergesConsecutiveCrossings(t *testing.T) {
	t.Parallel()
	samples := []sample{
		{at(0), 5}, {at(1), 25}, {at(2), 30}, {at(3), 8}, {at(4), 21},
	}
	runs := collectRuns(samples, func(v float64) bool { return v > 20 })
	require.Len(t, runs, 2)
	assert.Equal(t, at(1), runs[0].Start)
	assert.Equal(t, at(2), runs[0].End)
	assert.Equal(t, 2, runs[0].Count)
	assert.Equal(t, 30.0, runs[0].Peak)
	assert.Equal(t, at(4), runs[1].Start)
	assert.Equal(t, 1, runs[1].Count)
}

func TestMonotonicRuns(t *testing.T) {
	t.Parallel()
	samples := []sample{
		{at(0), 3}, {at(1), 4}, {at(2), 5}, {at(3), 6}, {at(4), 7}, {at(5), 8}, {at(6), 2},
	}
	runs := monotonicRuns(samples, 2, 6, true)
	require.Len(t, runs, 1)
	assert.Equal(t, 6, runs[0].Count)
	assert.Equal(t, 8.0, runs[0].Peak)

	// One step down breaks the climb short of the minimum length.
	samples[3].v = 4.5
	assert.Empty(t, monotonicRuns(samples, 2, 6, true))

	desc := []sample{
		{at(0), 9}, {at(1), 8}, {at(2), 7}, {at(3), 6}, {at(4), 5}, {at(5), 4},
	}
	runs = monotonicRuns(desc, 3, 6, false)
	require.Len(t, runs, 1)
	assert.Equal(t, at(0), runs[0].Start)
	assert.Equal(t, at(5), runs[0].End)
}
