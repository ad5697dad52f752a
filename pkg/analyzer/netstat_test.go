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

func TestNetstatAnalyzerTimeWaitBuildup(t *testing.T) {
	t.Parallel()
	store := series.New()
	for i, tw := range []int{200, 1500, 4200, 300} {
		store.Insert(&record.NetstatRecord{Timestamp: at(i), TCPTimeWait: tw})
	}

	a := NewNetstatAnalyzer(defaults(t))
	got := a.Analyze(store)
	require.Len(t, got, 1)
	assert.Equal(t, record.SeverityWarning, got[0].Severity)
	assert.Equal(t, at(1), got[0].Time)
	assert.Equal(t, at(2), got[0].End)
	assert.Equal(t, "4200", got[0].Metrics["peak"])
}

func TestNetstatAnalyzerAtBaselineIsQuiet(t *testing.T) {
	t.Parallel()
	store := series.New()
	store.Insert(&record.NetstatRecord{Timestamp: at(0), TCPTimeWait: 1000})
	a := NewNetstatAnalyzer(defaults(t))
	assert.Empty(t, a.Analyze(store))
}

func TestNetstatAnalyzerInterfaceLoss(t *testing.T) {
	t.Parallel()
	store := series.New()
	for i, drops := range []uint64{0, 12, 12} {
		store.Insert(&record.NetstatRecord{
			Timestamp: at(i),
			Interfaces: []record.InterfaceEntry{
				{Name: "eth0", RXDrops: drops},
				{Name: "lo"},
			},
		})
	}

	a := NewNetstatAnalyzer(defaults(t))
	got := a.Analyze(store)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "eth0")
	assert.Contains(t, got[0].Message, "dropping packets")
	assert.Equal(t, "12", got[0].Metrics["dropped"])
	assert.Equal(t, at(1), got[0].Time)
	assert.Equal(t, at(2), got[0].End)
}

func TestNetstatAnalyzerInterfaceErrors(t *testing.T) {
	t.Parallel()
	store := series.New()
	store.Insert(&record.NetstatRecord{
		Timestamp: at(0),
		Interfaces: []record.InterfaceEntry{
			{Name: "bond0", TXErrors: 3},
		},
	})

	a := NewNetstatAnalyzer(defaults(t))
	got := a.Analyze(store)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "bond0")
	assert.Contains(t, got[0].Message, "errors")
}
