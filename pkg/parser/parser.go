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
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/tokenizer"
)

// Parser converts one snapshot block into zero or one record.
type Parser interface {
	// Parse returns the structured record for the block. ok is false when
	// the block is empty or entirely unparsable; that is a skip, never an
	// error.
	Parse(snap tokenizer.Snapshot) (record.Record, bool)
}

// ForFamily returns the parser for the given metric family, or nil for an
// unknown family.
func ForFamily(f record.Family) Parser {
	switch f {
	case record.FamilyCPU:
		return &TopParser{}
	case record.FamilyVMStat:
		return &VMStatParser{}
	case record.FamilyMemInfo:
		return &MemInfoParser{}
	case record.FamilyIOStat:
		return &IOStatParser{}
	case record.FamilyNetstat:
		return &NetstatParser{}
	default:
		return nil
	}
}
