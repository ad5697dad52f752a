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

package tokenizer

import (
	"iter"
	"strings"
	"time"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
)

// snapshotMarker prefixes every OSWatcher collection-interval boundary line.
const snapshotMarker = "zzz"

// timestampLayouts are the date forms observed across OSWatcher versions and
// host locales, tried in order.
var timestampLayouts = []string{
	time.UnixDate,                  // Mon Jan _2 15:04:05 MST 2006
	time.ANSIC,                     // Mon Jan _2 15:04:05 2006
	"Mon Jan _2 15:04:05 -0700 2006",
	"Mon Jan 2 15:04:05 MST 2006",
	"2006-01-02 15:04:05",
}

// Snapshot is one timestamped capture block from one archive file.
// It is immutable; parsers consume it and discard it.
type Snapshot struct {
	// Timestamp is the parsed host-local capture time from the marker line.
	Timestamp time.Time

	// Family tags which metric family the enclosing file belongs to.
	Family record.Family

	// Lines holds the raw text between this marker and the next.
	Lines []string
}

// ParseMarker extracts the timestamp from a boundary marker line.
// Returns the zero time and false when the line is not a valid marker.
func ParseMarker(line string) (time.Time, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, snapshotMarker) {
		return time.Time{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, snapshotMarker))
	rest = strings.TrimSpace(strings.TrimLeft(rest, "*"))
	if rest == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, rest); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Tokenize splits the full text of one archive file into snapshot blocks.
// The returned sequence is lazy, finite, and restartable: each range loop
// re-walks the text from the start. A file without any valid marker yields
// an empty sequence; whether that is worth a warning is the caller's call.
func Tokenize(family record.Family, text string) iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		var (
			current time.Time
			lines   []string
			open    bool
		)

		flush := func() bool {
			if !open {
				return true
			}
			return yield(Snapshot{Timestamp: current, Family: family, Lines: lines})
		}

		for line := range strings.Lines(text) {
			line = strings.TrimRight(line, "\r\n")
			if ts, ok := ParseMarker(line); ok {
				if !flush() {
					return
				}
				current = ts
				lines = nil
				open = true
				continue
			}
			if open {
				lines = append(lines, line)
			}
		}
		flush()
	}
}

// Count returns the number of snapshots in the text. The loader uses it to
// surface files whose boundary pattern never matches.
func Count(family record.Family, text string) int {
	n := 0
	for range Tokenize(family, text) {
		n++
	}
	return n
}
