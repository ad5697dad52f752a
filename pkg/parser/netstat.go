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
	"regexp"
	"strings"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/tokenizer"
)

// NetstatParser parses oswnetstat snapshot blocks. OSWatcher concatenates
// two kinds of sections per interval: netstat -an socket tables (per
// connection rows with a TCP state in the last column) and ip -s link
// interface sections (RX:/TX: counter headers followed by a numeric row).
type NetstatParser struct{}

// matches "2: eth0: <BROADCAST,MULTICAST,UP>" interface section openers
var interfaceLine = regexp.MustCompile(`^\d+:\s+([^:@\s]+)`)

// ip -s link counter rows put errors at index 2 and drops at index 3
const (
	counterErrorsIdx = 2
	counterDropsIdx  = 3
)

// Parse implements Parser.
func (p *NetstatParser) Parse(snap tokenizer.Snapshot) (record.Record, bool) {
	rec := &record.NetstatRecord{Timestamp: snap.Timestamp}

	var (
		matched   bool
		iface     *record.InterfaceEntry
		direction string
	)

	flushIface := func() {
		if iface != nil {
			rec.Interfaces = append(rec.Interfaces, *iface)
			iface = nil
		}
	}

	for _, line := range snap.Lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)

		if m := interfaceLine.FindStringSubmatch(trimmed); m != nil {
			flushIface()
			iface = &record.InterfaceEntry{Name: m[1]}
			direction = ""
			matched = true
			continue
		}

		if iface != nil {
			switch {
			case strings.HasPrefix(trimmed, "RX:"):
				direction = "RX"
				continue
			case strings.HasPrefix(trimmed, "TX:"):
				direction = "TX"
				continue
			case direction != "":
				errs, okE := coerceUint(fieldAt(fields, counterErrorsIdx))
				drops, okD := coerceUint(fieldAt(fields, counterDropsIdx))
				if okE && okD {
					if direction == "RX" {
						iface.RXErrors, iface.RXDrops = errs, drops
					} else {
						iface.TXErrors, iface.TXDrops = errs, drops
					}
				}
				direction = ""
				continue
			}
		}

		if conn, ok := parseSocketRow(fields); ok {
			rec.Connections = append(rec.Connections, conn)
			matched = true
			switch conn.State {
			case "ESTABLISHED":
				rec.TCPEstablished++
			case "TIME_WAIT":
				rec.TCPTimeWait++
			case "CLOSE_WAIT":
				rec.TCPCloseWait++
			case "LISTEN":
				rec.ListenCount++
			}
		}
	}
	flushIface()

	if !matched {
		return nil, false
	}
	return rec, true
}

// parseSocketRow reads one "tcp 0 0 local remote STATE" row from a
// netstat -an table. Non-TCP rows and truncated rows are skipped.
func parseSocketRow(fields []string) (record.ConnectionEntry, bool) {
	if len(fields) < 6 || !strings.HasPrefix(fields[0], "tcp") {
		return record.ConnectionEntry{}, false
	}
	return record.ConnectionEntry{
		Proto:  fields[0],
		Local:  fields[3],
		Remote: fields[4],
		State:  fields[len(fields)-1],
	}, true
}
