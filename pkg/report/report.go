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

package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
)

// Report is the assembled output of one analysis run.
type Report struct {
	// RunID uniquely identifies this run.
	RunID string `json:"runId" yaml:"runId"`

	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`

	// Archive is the path of the analyzed archive directory.
	Archive string `json:"archive" yaml:"archive"`

	// Cores is the vCPU count probed from the archive, zero if unknown.
	Cores int `json:"cores,omitempty" yaml:"cores,omitempty"`

	// Warnings lists archive-level problems hit while loading, such as
	// files whose boundary markers never matched.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Sections hold findings grouped by category, in report order.
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section groups one analysis category's findings.
type Section struct {
	Category record.Category  `json:"category" yaml:"category"`
	Findings []record.Finding `json:"findings" yaml:"findings"`
}

// Build assembles findings into a report. Sections follow the category
// order; findings within a section are sorted by start time, holding the
// analyzer's relative order for equal timestamps. Categories with no
// findings get no section.
func Build(archive string, cores int, warnings []string, findings []record.Finding) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Archive:     archive,
		Cores:       cores,
		Warnings:    warnings,
	}
	for _, c := range record.Categories {
		var sec Section
		sec.Category = c
		for _, f := range findings {
			if f.Category == c {
				sec.Findings = append(sec.Findings, f)
			}
		}
		if len(sec.Findings) == 0 {
			continue
		}
		sort.SliceStable(sec.Findings, func(i, j int) bool {
			return sec.Findings[i].Time.Before(sec.Findings[j].Time)
		})
		r.Sections = append(r.Sections, sec)
	}
	return r
}

// Counts returns the number of findings at each severity across sections.
func (r *Report) Counts() map[record.Severity]int {
	counts := map[record.Severity]int{}
	for _, sec := range r.Sections {
		for _, f := range sec.Findings {
			counts[f.Severity]++
		}
	}
	return counts
}

const (
	lineSep   = " — " // em dash between timestamp and message
	spanSep   = ".."
	noTime    = "-"
	timeForm  = time.RFC3339
	headLine  = "OSWatcher analysis report"
	sectForm  = "== %s =="
	metaForm  = "%-10s %s"
	severForm = "[%s]"
)

// FormatFindingLine renders one finding as a report line.
func FormatFindingLine(f record.Finding) string {
	ts := noTime
	if !f.Time.IsZero() {
		ts = f.Time.UTC().Format(timeForm)
		if f.Spans() {
			ts += spanSep + f.End.UTC().Format(timeForm)
		}
	}
	return fmt.Sprintf(severForm, f.Severity) + " " + ts + lineSep + f.Message
}

// ParseFindingLine inverts FormatFindingLine, recovering severity,
// timestamps, and message. Category and metrics are not carried on the
// line and come back empty.
func ParseFindingLine(line string) (record.Finding, error) {
	var f record.Finding
	rest, ok := strings.CutPrefix(line, "[")
	if !ok {
		return f, fmt.Errorf("finding line missing severity: %q", line)
	}
	sevStr, rest, ok := strings.Cut(rest, "] ")
	if !ok {
		return f, fmt.Errorf("finding line missing severity: %q", line)
	}
	sev, ok := record.ParseSeverity(sevStr)
	if !ok {
		return f, fmt.Errorf("unknown severity %q in line %q", sevStr, line)
	}
	f.Severity = sev

	ts, msg, ok := strings.Cut(rest, lineSep)
	if !ok {
		return f, fmt.Errorf("finding line missing separator: %q", line)
	}
	f.Message = msg

	if ts == noTime {
		return f, nil
	}
	start, end, spans := strings.Cut(ts, spanSep)
	t, err := time.Parse(timeForm, start)
	if err != nil {
		return f, fmt.Errorf("bad timestamp in line %q: %w", line, err)
	}
	f.Time = t
	if spans {
		e, err := time.Parse(timeForm, end)
		if err != nil {
			return f, fmt.Errorf("bad end timestamp in line %q: %w", line, err)
		}
		f.End = e
	}
	return f, nil
}

// renderText writes the full human-readable report.
func renderText(sb *strings.Builder, r *Report) {
	sb.WriteString(headLine + "\n")
	fmt.Fprintf(sb, metaForm+"\n", "run:", r.RunID)
	fmt.Fprintf(sb, metaForm+"\n", "generated:", r.GeneratedAt.UTC().Format(timeForm))
	fmt.Fprintf(sb, metaForm+"\n", "archive:", r.Archive)
	if r.Cores > 0 {
		fmt.Fprintf(sb, metaForm+"\n", "cores:", fmt.Sprintf("%d", r.Cores))
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(sb, metaForm+"\n", "warning:", w)
	}
	for _, sec := range r.Sections {
		sb.WriteString("\n")
		fmt.Fprintf(sb, sectForm+"\n", sec.Category)
		for _, f := range sec.Findings {
			sb.WriteString(FormatFindingLine(f) + "\n")
		}
	}
}
