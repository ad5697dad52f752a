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

import "strings"

// ProcState is the closed enumeration of process scheduler states.
type ProcState string

const (
	StateRunning  ProcState = "running"
	StateSleeping ProcState = "sleeping"
	StateDiskWait ProcState = "diskwait"
	StateZombie   ProcState = "zombie"
	StateStopped  ProcState = "stopped"
	StateUnknown  ProcState = "unknown"
)

// String returns the string representation of the ProcState.
func (s ProcState) String() string {
	return string(s)
}

// ParseProcState maps a raw single-letter state code from top output to the
// closed enumeration. Trailing qualifiers such as "<", "N", "s", "l", "+" are
// ignored; unrecognized codes map to StateUnknown rather than failing.
func ParseProcState(code string) ProcState {
	code = strings.TrimSpace(code)
	if code == "" {
		return StateUnknown
	}
	switch code[0] {
	case 'R':
		return StateRunning
	case 'S', 'I':
		return StateSleeping
	case 'D':
		return StateDiskWait
	case 'Z':
		return StateZombie
	case 'T', 't':
		return StateStopped
	default:
		return StateUnknown
	}
}
