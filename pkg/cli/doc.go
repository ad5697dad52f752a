/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the oswan tool.
//
// # Overview
//
// The oswan CLI analyzes OSWatcher diagnostic archives: it parses the
// archived top, vmstat, meminfo, iostat, and netstat captures into a
// time-indexed record model, runs threshold analyses over them, and writes
// a findings report.
//
// # Commands
//
// analyze - Run analyses over an archive:
//
//	oswan analyze all --archive /path/to/oswatcher/archive
//	oswan analyze cpu --archive /path/to/archive --from 25.09.08.0100 --to 25.09.08.0700
//
// Subcommands select one analysis category (cpu, memory, vmstat, pstate,
// disk, netstat) or all of them. The report defaults to stdout in text
// format.
//
// menu - Interactive analysis menu:
//
//	oswan menu --archive /path/to/archive
//
// Presents a numbered menu of the available analyses in the terminal;
// each selection runs against a fresh load of the archive and writes a
// report file into the archive directory.
//
// # Global Flags
//
//	--archive, -a   Archive directory (required)
//	--output, -o    Report file path (default: stdout)
//	--format, -t    Report format: text, json, yaml (default: text)
//	--config, -c    Thresholds config file
//	--log-level     Log level: debug, info, warn, error (default: info)
//
// # Time Windows
//
// --from and --to accept the capture-filename stamp layout yy.mm.dd.HHMM,
// matching the timestamps OSWatcher embeds in archive filenames.
package cli
