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
	"sort"
	"time"

	"github.com/NVIDIA/osw-analyzer/pkg/config"
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/series"
)

// Analyzer examines one record family and reports findings.
type Analyzer interface {
	// Category identifies the findings this analyzer produces.
	Category() record.Category

	// Analyze reads the store and returns findings in timestamp order.
	// The store is borrowed read-only for the duration of the call.
	Analyze(store *series.Store) []record.Finding
}

// All returns every analyzer, in report category order. Cores is the vCPU
// count probed from the archive; zero disables core-relative checks.
func All(th config.Thresholds, cores int) []Analyzer {
	return []Analyzer{
		NewCPUAnalyzer(th, cores),
		NewMemoryAnalyzer(th),
		NewVMStatAnalyzer(th, cores),
		NewProcStateAnalyzer(th),
		NewDiskAnalyzer(th),
		NewNetstatAnalyzer(th),
	}
}

// ForCategory returns the analyzer for the given category.
func ForCategory(c record.Category, th config.Thresholds, cores int) (Analyzer, error) {
	for _, a := range All(th, cores) {
		if a.Category() == c {
			return a, nil
		}
	}
	return nil, fmt.Errorf("no analyzer for category: %s", c)
}

// sample is a single observed value at a point in time.
type sample struct {
	ts time.Time
	v  float64
}

// thresholdRun is a merged run of consecutive samples above a threshold.
type thresholdRun struct {
	Start, End time.Time
	Count      int
	Peak       float64
}

// keyedRun is a threshold run attributed to one subject, such as a PID or
// a device name.
type keyedRun struct {
	Key string
	thresholdRun
}

// keyedRuns merges consecutive threshold crossings per subject. A sample
// where the subject is absent, or present but below threshold, ends its run.
type keyedRuns struct {
	active map[string]*keyedRun
	closed []keyedRun
}

func newKeyedRuns() *keyedRuns {
	return &keyedRuns{active: map[string]*keyedRun{}}
}

// advance moves the tracker to the next sample time. hits maps each subject
// still above threshold at ts to its observed value.
func (k *keyedRuns) advance(ts time.Time, hits map[string]float64) {
	for key, run := range k.active {
		if _, ok := hits[key]; !ok {
			k.closed = append(k.closed, *run)
			delete(k.active, key)
		}
	}
	for key, v := range hits {
		run, ok := k.active[key]
		if !ok {
			run = &keyedRun{Key: key, thresholdRun: thresholdRun{Start: ts, Peak: v}}
			k.active[key] = run
		}
		run.End = ts
		run.Count++
		if v > run.Peak {
			run.Peak = v
		}
	}
}

// finish closes any open runs and returns all runs ordered by start time,
// then by key for determinism.
func (k *keyedRuns) finish() []keyedRun {
	for _, run := range k.active {
		k.closed = append(k.closed, *run)
	}
	k.active = map[string]*keyedRun{}
	sort.Slice(k.closed, func(i, j int) bool {
		if !k.closed[i].Start.Equal(k.closed[j].Start) {
			return k.closed[i].Start.Before(k.closed[j].Start)
		}
		return k.closed[i].Key < k.closed[j].Key
	})
	return k.closed
}

// collectRuns merges consecutive samples satisfying over into runs. The
// samples must already be in timestamp order.
func collectRuns(samples []sample, over func(v float64) bool) []thresholdRun {
	tr := newKeyedRuns()
	for _, s := range samples {
		hits := map[string]float64{}
		if over(s.v) {
			hits[""] = s.v
		}
		tr.advance(s.ts, hits)
	}
	var out []thresholdRun
	for _, r := range tr.finish() {
		out = append(out, r.thresholdRun)
	}
	return out
}

// monotonicRuns finds strictly increasing or strictly decreasing runs of at
// least minLen samples. A run only starts from a sample above floor; for
// increasing runs every sample must stay above floor.
func monotonicRuns(samples []sample, floor float64, minLen int, increasing bool) []thresholdRun {
	var out []thresholdRun
	var cur *thresholdRun
	flush := func() {
		if cur != nil && cur.Count >= minLen {
			out = append(out, *cur)
		}
		cur = nil
	}
	for i, s := range samples {
		if cur != nil {
			prev := samples[i-1].v
			ok := false
			if increasing {
				ok = s.v > prev && s.v > floor
			} else {
				ok = s.v < prev
			}
			if ok {
				cur.End = s.ts
				cur.Count++
				if s.v > cur.Peak {
					cur.Peak = s.v
				}
				continue
			}
			flush()
		}
		if s.v > floor {
			cur = &thresholdRun{Start: s.ts, End: s.ts, Count: 1, Peak: s.v}
		}
	}
	flush()
	return out
}

func newFinding(c record.Category, sev record.Severity, run thresholdRun, msg string, metrics map[string]string) record.Finding {
	return record.Finding{
		Category: c,
		Severity: sev,
		Time:     run.Start,
		End:      run.End,
		Message:  msg,
		Metrics:  metrics,
	}
}

// insufficientData is the single informational finding an analyzer emits
// when its record family has no samples to examine.
func insufficientData(c record.Category, f record.Family) record.Finding {
	return record.Finding{
		Category: c,
		Severity: record.SeverityInfo,
		Message:  fmt.Sprintf("no %s records in the selected range, analysis skipped", f),
	}
}
