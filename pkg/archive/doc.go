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

// Package archive loads an OSWatcher archive directory into the
// time-series store.
//
// An archive holds one subdirectory per metric family (oswtop, oswvmstat,
// oswmeminfo, oswiostat, oswnetstat), each containing .dat capture files,
// optionally gzip-compressed. Capture filenames end with a
// yy.mm.dd.HHMM stamp that Load uses to pre-filter files against a
// requested time window before reading them.
//
// Families load concurrently; a file whose boundary markers never match
// contributes a warning instead of failing the run.
package archive
