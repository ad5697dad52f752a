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

// Package config holds the analyzer threshold configuration.
//
// Every analyzer threshold is an explicit configuration value with an
// enumerated default rather than a literal buried in analysis code, so the
// analyzers stay testable against synthetic data. Thresholds load from an
// optional YAML file; unset fields keep their defaults.
package config
