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

// Record is one parsed, timestamped sample from an archive file.
// Every concrete record type is immutable once returned by a parser.
type Record interface {
	// Time returns the host-local capture timestamp of the sample.
	Time() time.Time

	// Family returns the metric family the record belongs to.
	Family() Family
}

// ProcessEntry is one per-process row from a top snapshot.
type ProcessEntry struct {
	PID     int       `json:"pid" yaml:"pid"`
	User    string    `json:"user" yaml:"user"`
	CPUPct  float64   `json:"cpuPct" yaml:"cpuPct"`
	MemPct  float64   `json:"memPct" yaml:"memPct"`
	State   ProcState `json:"state" yaml:"state"`
	Command string    `json:"command" yaml:"command"`
}

// CPURecord is the structured outcome of parsing one top snapshot.
type CPURecord struct {
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Load1     float64        `json:"load1" yaml:"load1"`
	Load5     float64        `json:"load5" yaml:"load5"`
	Load15    float64        `json:"load15" yaml:"load15"`
	Processes []ProcessEntry `json:"processes,omitempty" yaml:"processes,omitempty"`
}

func (r *CPURecord) Time() time.Time { return r.Timestamp }
func (r *CPURecord) Family() Family  { return FamilyCPU }

// VMStatRecord is one parsed vmstat sample.
type VMStatRecord struct {
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	RunQueue     int       `json:"runQueue" yaml:"runQueue"`
	BlockedProcs int       `json:"blockedProcs" yaml:"blockedProcs"`
	SwapIn       uint64    `json:"swapIn" yaml:"swapIn"`
	SwapOut      uint64    `json:"swapOut" yaml:"swapOut"`
	CPUUser      float64   `json:"cpuUser" yaml:"cpuUser"`
	CPUSystem    float64   `json:"cpuSystem" yaml:"cpuSystem"`
	CPUIdle      float64   `json:"cpuIdle" yaml:"cpuIdle"`
	CPUWait      float64   `json:"cpuWait" yaml:"cpuWait"`
}

func (r *VMStatRecord) Time() time.Time { return r.Timestamp }
func (r *VMStatRecord) Family() Family  { return FamilyVMStat }

// MemInfoRecord is one parsed /proc/meminfo sample. All sizes are kilobytes.
type MemInfoRecord struct {
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	MemTotalKB   uint64    `json:"memTotalKb" yaml:"memTotalKb"`
	MemFreeKB    uint64    `json:"memFreeKb" yaml:"memFreeKb"`
	MemAvailKB   uint64    `json:"memAvailKb" yaml:"memAvailKb"`
	BuffersKB    uint64    `json:"buffersKb" yaml:"buffersKb"`
	CachedKB     uint64    `json:"cachedKb" yaml:"cachedKb"`
	SwapTotalKB  uint64    `json:"swapTotalKb" yaml:"swapTotalKb"`
	SwapFreeKB   uint64    `json:"swapFreeKb" yaml:"swapFreeKb"`
}

func (r *MemInfoRecord) Time() time.Time { return r.Timestamp }
func (r *MemInfoRecord) Family() Family  { return FamilyMemInfo }

// AvailableRatio returns MemAvailable/MemTotal in [0,1], or 1 when MemTotal
// is zero so an unparseable sample never reads as memory pressure.
func (r *MemInfoRecord) AvailableRatio() float64 {
	if r.MemTotalKB == 0 {
		return 1
	}
	return float64(r.MemAvailKB) / float64(r.MemTotalKB)
}

// UsedPct returns the used-memory percentage, counting buffers and cache as
// reclaimable (the classic free+buffers+cached accounting).
func (r *MemInfoRecord) UsedPct() float64 {
	if r.MemTotalKB == 0 {
		return 0
	}
	reclaimable := r.MemFreeKB + r.BuffersKB + r.CachedKB
	if reclaimable > r.MemTotalKB {
		reclaimable = r.MemTotalKB
	}
	return float64(r.MemTotalKB-reclaimable) / float64(r.MemTotalKB) * 100
}

// DeviceEntry is one per-device row from an iostat snapshot.
type DeviceEntry struct {
	Device   string  `json:"device" yaml:"device"`
	TPS      float64 `json:"tps" yaml:"tps"`
	ReadKBs  float64 `json:"readKbs" yaml:"readKbs"`
	WriteKBs float64 `json:"writeKbs" yaml:"writeKbs"`
	AwaitMs  float64 `json:"awaitMs" yaml:"awaitMs"`
	UtilPct  float64 `json:"utilPct" yaml:"utilPct"`
}

// IOStatRecord is one parsed iostat sample.
type IOStatRecord struct {
	Timestamp  time.Time     `json:"timestamp" yaml:"timestamp"`
	CPUWaitPct float64       `json:"cpuWaitPct" yaml:"cpuWaitPct"`
	Devices    []DeviceEntry `json:"devices,omitempty" yaml:"devices,omitempty"`
}

func (r *IOStatRecord) Time() time.Time { return r.Timestamp }
func (r *IOStatRecord) Family() Family  { return FamilyIOStat }

// ConnectionEntry is one per-socket row from a netstat snapshot.
type ConnectionEntry struct {
	Proto  string `json:"proto" yaml:"proto"`
	Local  string `json:"local" yaml:"local"`
	Remote string `json:"remote" yaml:"remote"`
	State  string `json:"state" yaml:"state"`
}

// InterfaceEntry carries per-interface error and drop counters.
type InterfaceEntry struct {
	Name     string `json:"name" yaml:"name"`
	RXErrors uint64 `json:"rxErrors" yaml:"rxErrors"`
	RXDrops  uint64 `json:"rxDrops" yaml:"rxDrops"`
	TXErrors uint64 `json:"txErrors" yaml:"txErrors"`
	TXDrops  uint64 `json:"txDrops" yaml:"txDrops"`
}

// NetstatRecord is one parsed netstat sample: TCP socket state counts plus
// optional per-connection and per-interface detail.
type NetstatRecord struct {
	Timestamp      time.Time         `json:"timestamp" yaml:"timestamp"`
	TCPEstablished int               `json:"tcpEstablished" yaml:"tcpEstablished"`
	TCPTimeWait    int               `json:"tcpTimeWait" yaml:"tcpTimeWait"`
	TCPCloseWait   int               `json:"tcpCloseWait" yaml:"tcpCloseWait"`
	ListenCount    int               `json:"listenCount" yaml:"listenCount"`
	Connections    []ConnectionEntry `json:"connections,omitempty" yaml:"connections,omitempty"`
	Interfaces     []InterfaceEntry  `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
}

func (r *NetstatRecord) Time() time.Time { return r.Timestamp }
func (r *NetstatRecord) Family() Family  { return FamilyNetstat }
