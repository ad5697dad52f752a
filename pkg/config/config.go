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

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/osw-analyzer/pkg/errors"
)

// Thresholds holds every analyzer threshold with its override point.
type Thresholds struct {
	// CPUProcPct is the per-process CPU percentage above which a sustained
	// run is flagged.
	CPUProcPct float64 `yaml:"cpuProcPct"`

	// CPUProcCritPct escalates a sustained per-process run to critical.
	CPUProcCritPct float64 `yaml:"cpuProcCritPct"`

	// CPUSustainSamples is the minimum consecutive-sample count for a
	// per-process CPU run to be flagged at all.
	CPUSustainSamples int `yaml:"cpuSustainSamples"`

	// LoadHighRatio flags 1m load average above this fraction of core count.
	LoadHighRatio float64 `yaml:"loadHighRatio"`

	// LoadTrackRatio is the floor (fraction of core count) above which
	// monotonic load runs are tracked.
	LoadTrackRatio float64 `yaml:"loadTrackRatio"`

	// PatternMinRun is the minimum length of a monotonic load or memory
	// run worth reporting.
	PatternMinRun int `yaml:"patternMinRun"`

	// MemAvailableFloorPct flags samples where MemAvailable/MemTotal drops
	// below this percentage.
	MemAvailableFloorPct float64 `yaml:"memAvailableFloorPct"`

	// MemUsedHighPct flags samples where used memory exceeds this percentage.
	MemUsedHighPct float64 `yaml:"memUsedHighPct"`

	// VMStatWaitPct flags vmstat samples with cpu_wait above this percentage.
	VMStatWaitPct float64 `yaml:"vmstatWaitPct"`

	// DStateCritRun escalates a consecutive DiskWait presence run to critical.
	DStateCritRun int `yaml:"dstateCritRun"`

	// HighCPUPct and HighMemPct flag a process holding both simultaneously.
	HighCPUPct float64 `yaml:"highCpuPct"`
	HighMemPct float64 `yaml:"highMemPct"`

	// DiskAwaitWarnMs and DiskAwaitCritMs bound per-device I/O wait.
	DiskAwaitWarnMs float64 `yaml:"diskAwaitWarnMs"`
	DiskAwaitCritMs float64 `yaml:"diskAwaitCritMs"`

	// DiskUtilHighPct flags devices busier than this percentage.
	DiskUtilHighPct float64 `yaml:"diskUtilHighPct"`

	// TCPTimeWaitBaseline flags samples with more TIME_WAIT sockets than this.
	TCPTimeWaitBaseline int `yaml:"tcpTimeWaitBaseline"`
}

// Default returns the threshold set the analyzers ship with.
func Default() Thresholds {
	return Thresholds{
		CPUProcPct:           80,
		CPUProcCritPct:       90,
		CPUSustainSamples:    3,
		LoadHighRatio:        0.75,
		LoadTrackRatio:       0.5,
		PatternMinRun:        6,
		MemAvailableFloorPct: 10,
		MemUsedHighPct:       75,
		VMStatWaitPct:        20,
		DStateCritRun:        5,
		HighCPUPct:           80,
		HighMemPct:           50,
		DiskAwaitWarnMs:      50,
		DiskAwaitCritMs:      100,
		DiskUtilHighPct:      50,
		TCPTimeWaitBaseline:  1000,
	}
}

// Load reads thresholds from a YAML file, overlaying the defaults. A missing
// path returns the defaults unchanged.
func Load(path string) (Thresholds, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, errors.Wrap(errors.ErrCodeNotFound, "thresholds config not found", err)
		}
		return t, errors.Wrap(errors.ErrCodeInternal, "reading thresholds config", err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidFormat, "parsing thresholds config", err)
	}

	return t, nil
}
