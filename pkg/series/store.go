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
	"sort"
	"time"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
)

// Store is the timestamp-indexed collection of records per metric family.
// The zero value is not usable; call New.
type Store struct {
	families map[record.Family][]record.Record
}

// New creates an empty store.
func New() *Store {
	return &Store{
		families: make(map[record.Family][]record.Record),
	}
}

// Insert adds a record, maintaining timestamp order. Records normally arrive
// pre-sorted per file, so the append fast path covers the common case; the
// binary search only runs when merging overlapping files. An exact-timestamp
// duplicate replaces the earlier record.
func (s *Store) Insert(rec record.Record) {
	if rec == nil {
		return
	}
	seq := s.families[rec.Family()]
	ts := rec.Time()

	if n := len(seq); n == 0 || seq[n-1].Time().Before(ts) {
		s.families[rec.Family()] = append(seq, rec)
		return
	}

	idx := sort.Search(len(seq), func(i int) bool {
		return !seq[i].Time().Before(ts)
	})
	if idx < len(seq) && seq[idx].Time().Equal(ts) {
		seq[idx] = rec
		return
	}

	seq = append(seq, nil)
	copy(seq[idx+1:], seq[idx:])
	seq[idx] = rec
	s.families[rec.Family()] = seq
}

// All returns the full ordered sequence for the family. The returned slice
// is shared; callers must not mutate it.
func (s *Store) All(family record.Family) []record.Record {
	return s.families[family]
}

// Range returns the ordered sub-sequence with timestamps in [from, to].
// A zero from or to leaves that side unbounded.
func (s *Store) Range(family record.Family, from, to time.Time) []record.Record {
	seq := s.families[family]

	lo := 0
	if !from.IsZero() {
		lo = sort.Search(len(seq), func(i int) bool {
			return !seq[i].Time().Before(from)
		})
	}
	hi := len(seq)
	if !to.IsZero() {
		hi = sort.Search(len(seq), func(i int) bool {
			return seq[i].Time().After(to)
		})
	}
	if lo >= hi {
		return nil
	}
	return seq[lo:hi]
}

// Latest returns the most recent record for the family, or nil when the
// family has no records.
func (s *Store) Latest(family record.Family) record.Record {
	seq := s.families[family]
	if len(seq) == 0 {
		return nil
	}
	return seq[len(seq)-1]
}

// Len returns the number of records held for the family.
func (s *Store) Len(family record.Family) int {
	return len(s.families[family])
}
