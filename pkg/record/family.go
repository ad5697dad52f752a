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

// Family represents one OSWatcher metric category.
type Family string

// String returns the string representation of the Family.
func (f Family) String() string {
	return string(f)
}

const (
	FamilyCPU     Family = "cpu"
	FamilyVMStat  Family = "vmstat"
	FamilyMemInfo Family = "meminfo"
	FamilyIOStat  Family = "iostat"
	FamilyNetstat Family = "netstat"
)

// Families is the list of all supported metric families.
var Families = []Family{
	FamilyCPU,
	FamilyVMStat,
	FamilyMemInfo,
	FamilyIOStat,
	FamilyNetstat,
}

// archive subdirectory names used by the OSWatcher collector
var familyDirs = map[Family]string{
	FamilyCPU:     "oswtop",
	FamilyVMStat:  "oswvmstat",
	FamilyMemInfo: "oswmeminfo",
	FamilyIOStat:  "oswiostat",
	FamilyNetstat: "oswnetstat",
}

// Dir returns the archive subdirectory name for the family.
func (f Family) Dir() string {
	return familyDirs[f]
}

// ParseFamily parses a string into a Family.
// Returns the Family and true if parsing succeeds, or empty Family and false
// if the string is invalid.
func ParseFamily(s string) (Family, bool) {
	for _, f := range Families {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}
