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

package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
)

var base = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

func vmRec(offset time.Duration, wait float64) *record.VMStatRecord {
	return &record.VMStatRecord{Timestamp: base.Add(offset), CPUWait: wait}
}

func TestInsertKeepsOrder(t *testing.T) {
	s := New()

	// pre-sorted arrivals take the append fast path
	s.Insert(vmRec(0, 1))
	s.Insert(vmRec(30*time.Second, 2))
	s.Insert(vmRec(60*time.Second, 3))

	// out-of-order arrival from a second file merges in place
	s.Insert(vmRec(45*time.Second, 9))

	seq := s.All(record.FamilyVMStat)
	assert.Len(t, seq, 4)
	for i := 1; i < len(seq); i++ {
		assert.True(t, seq[i-1].Time().Before(seq[i].Time()))
	}
	assert.Equal(t, 9.0, seq[2].(*record.VMStatRecord).CPUWait)
}

func TestInsertDuplicateTimestampLaterWins(t *testing.T) {
	s := New()

	s.Insert(vmRec(0, 1))
	s.Insert(vmRec(0, 2))

	assert.Equal(t, 1, s.Len(record.FamilyVMStat))
	assert.Equal(t, 2.0, s.Latest(record.FamilyVMStat).(*record.VMStatRecord).CPUWait)

	// a duplicate in the middle of the sequence also replaces
	s.Insert(vmRec(30*time.Second, 3))
	s.Insert(vmRec(0, 4))
	assert.Equal(t, 2, s.Len(record.FamilyVMStat))
	assert.Equal(t, 4.0, s.All(record.FamilyVMStat)[0].(*record.VMStatRecord).CPUWait)
}

func TestRange(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		s.Insert(vmRec(time.Duration(i)*time.Minute, float64(i)))
	}

	got := s.Range(record.FamilyVMStat, base.Add(2*time.Minute), base.Add(5*time.Minute))
	assert.Len(t, got, 4)
	assert.Equal(t, base.Add(2*time.Minute), got[0].Time())
	assert.Equal(t, base.Add(5*time.Minute), got[len(got)-1].Time())

	// zero bounds leave the window open on that side
	assert.Len(t, s.Range(record.FamilyVMStat, time.Time{}, time.Time{}), 10)
	assert.Len(t, s.Range(record.FamilyVMStat, base.Add(8*time.Minute), time.Time{}), 2)
	assert.Len(t, s.Range(record.FamilyVMStat, time.Time{}, base.Add(1*time.Minute)), 2)

	// empty window
	assert.Empty(t, s.Range(record.FamilyVMStat, base.Add(time.Hour), time.Time{}))
}

func TestLatestAndLenEmpty(t *testing.T) {
	s := New()
	assert.Nil(t, s.Latest(record.FamilyIOStat))
	assert.Equal(t, 0, s.Len(record.FamilyIOStat))
	assert.Empty(t, s.Range(record.FamilyIOStat, time.Time{}, time.Time{}))
}

func TestFamiliesAreIndependent(t *testing.T) {
	s := New()
	s.Insert(vmRec(0, 1))
	s.Insert(&record.MemInfoRecord{Timestamp: base, MemTotalKB: 1000, MemAvailKB: 500})

	assert.Equal(t, 1, s.Len(record.FamilyVMStat))
	assert.Equal(t, 1, s.Len(record.FamilyMemInfo))
	assert.Equal(t, 0, s.Len(record.FamilyCPU))
}
