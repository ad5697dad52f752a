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

package record

import "time"

// Severity classifies how urgent a Finding is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// String returns the string representation of the Severity.
func (s Severity) String() string {
	return string(s)
}

// Rank returns an ordering value: info < warning < critical.
func (s Severity) Rank() int {
	switch s {
	case SeverityWarning:
		return 1
	case SeverityCritical:
		return 2
	default:
		return 0
	}
}

// ParseSeverity parses a string into a Severity.
// Returns the Severity and true if parsing succeeds.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return Severity(s), true
	default:
		return "", false
	}
}

// Category names the analysis that produced a Finding.
type Category string

const (
	CategoryCPU       Category = "cpu"
	CategoryMemory    Category = "memory"
	CategoryVMStat    Category = "vmstat"
	CategoryProcState Category = "process-state"
	CategoryDisk      Category = "disk-iowait"
	CategoryNetstat   Category = "netstat"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// Categories is the report ordering of all analysis categories.
var Categories = []Category{
	CategoryCPU,
	CategoryMemory,
	CategoryVMStat,
	CategoryProcState,
	CategoryDisk,
	CategoryNetstat,
}

// Finding is one analyzer-produced observation tied to a timestamp or range.
// Findings are immutable once produced.
type Finding struct {
	// Category names the analysis that produced the finding.
	Category Category `json:"category" yaml:"category"`

	// Severity is info, warning, or critical.
	Severity Severity `json:"severity" yaml:"severity"`

	// Time is the timestamp the finding is anchored at. For a merged
	// threshold run this is the first sample that crossed the threshold.
	Time time.Time `json:"time" yaml:"time"`

	// End is the last sample of a merged threshold run. Zero for
	// single-sample findings.
	End time.Time `json:"end,omitempty" yaml:"end,omitempty"`

	// Message is the operator-facing description.
	Message string `json:"message" yaml:"message"`

	// Metrics carries the supporting metric values as formatted strings.
	Metrics map[string]string `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Spans reports whether the finding covers a range of samples.
func (f Finding) Spans() bool {
	return !f.End.IsZero() && f.End.After(f.Time)
}
