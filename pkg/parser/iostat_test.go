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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
)

var iostatBlock = []string{
	"avg-cpu:  %user   %nice %system %iowait  %steal   %idle",
	"           5.00    0.00    2.00   12.50    0.00   80.50",
	"",
	"Device:           tps    kB_read/s    kB_wrtn/s    kB_read    kB_wrtn",
	"sda             120.00      1024.00      2048.00    1000000    2000000",
	"sdb              10.00        64.00        32.00      50000      25000",
}

var iostatExtendedBlock = []string{
	"avg-cpu:  %user   %nice %system %iowait  %steal   %idle",
	"           5.00    0.00    2.00    1.00    0.00   92.00",
	"",
	"Device            r/s     w/s     rkB/s     wkB/s  r_await  w_await  %util",
	"sda             50.00   70.00   1024.00   2048.00   110.00   130.00  95.00",
	"sdb              1.00    2.00     64.00     32.00    30.00    50.00  12.00",
}

func TestIOStatParseClassic(t *testing.T) {
	rec, ok := (&IOStatParser{}).Parse(newSnap(record.FamilyIOStat, iostatBlock...))
	assert.True(t, ok)

	io := rec.(*record.IOStatRecord)
	assert.Equal(t, testStamp, io.Time())
	assert.Equal(t, record.FamilyIOStat, io.Family())
	assert.InDelta(t, 12.5, io.CPUWaitPct, 1e-9)

	assert.Len(t, io.Devices, 2)
	assert.Equal(t, "sda", io.Devices[0].Device)
	assert.InDelta(t, 120.0, io.Devices[0].TPS, 1e-9)
	assert.InDelta(t, 1024.0, io.Devices[0].ReadKBs, 1e-9)
	assert.InDelta(t, 2048.0, io.Devices[0].WriteKBs, 1e-9)
}

func TestIOStatParseExtended(t *testing.T) {
	rec, ok := (&IOStatParser{}).Parse(newSnap(record.FamilyIOStat, iostatExtendedBlock...))
	assert.True(t, ok)

	io := rec.(*record.IOStatRecord)
	assert.InDelta(t, 1.0, io.CPUWaitPct, 1e-9)

	sda := io.Devices[0]
	assert.Equal(t, "sda", sda.Device)
	// await is the mean of r_await and w_await when unsplit await is absent
	assert.InDelta(t, 120.0, sda.AwaitMs, 1e-9)
	assert.InDelta(t, 95.0, sda.UtilPct, 1e-9)
}

func TestIOStatParseIdempotent(t *testing.T) {
	snap := newSnap(record.FamilyIOStat, iostatExtendedBlock...)
	p := &IOStatParser{}

	first, _ := p.Parse(snap)
	second, _ := p.Parse(snap)
	assert.Equal(t, first, second)
}

func TestIOStatParseEmpty(t *testing.T) {
	_, ok := (&IOStatParser{}).Parse(newSnap(record.FamilyIOStat))
	assert.False(t, ok)

	_, ok = (&IOStatParser{}).Parse(newSnap(record.FamilyIOStat, "Linux 5.14 (host)", ""))
	assert.False(t, ok)
}
