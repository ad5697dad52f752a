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

package archive

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/osw-analyzer/pkg/errors"
	"github.com/NVIDIA/osw-analyzer/pkg/parser"
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/series"
	"github.com/NVIDIA/osw-analyzer/pkg/tokenizer"
)

// StampLayout is the capture-filename timestamp layout, as in
// host_top_25.09.08.0100.dat.
const StampLayout = "06.01.02.1504"

// ParseStamp parses a filename-style timestamp such as 25.09.08.0100.
func ParseStamp(s string) (time.Time, error) {
	t, err := time.Parse(StampLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid timestamp, expected yy.mm.dd.HHMM", err)
	}
	return t, nil
}

// Config selects what to load from an archive.
type Config struct {
	// Dir is the archive root, holding one subdirectory per family.
	Dir string

	// From and To bound the capture-file window by the timestamp in the
	// filename. Zero values leave that side unbounded.
	From, To time.Time

	// Families limits loading to the given families. Empty means all.
	Families []record.Family
}

// Result is a loaded archive.
type Result struct {
	// Store holds all parsed records, indexed by family.
	Store *series.Store

	// Cores is the vCPU count probed from the vmstat preamble, zero if
	// the archive never states it.
	Cores int

	// Warnings lists per-file problems hit while loading.
	Warnings []string
}

// Load reads the archive into a fresh store. Families load concurrently;
// unreadable files and files with no boundary markers become warnings,
// not errors. Load fails only when the archive root is unusable or the
// context is canceled.
func Load(ctx context.Context, cfg Config) (*Result, error) {
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, "archive directory not found", err)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("not a directory: %s", cfg.Dir))
	}

	families := cfg.Families
	if len(families) == 0 {
		families = record.Families
	}

	res := &Result{Store: series.New()}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, fam := range families {
		g.Go(func() error {
			recs, warns, err := loadFamily(ctx, cfg, fam)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, r := range recs {
				res.Store.Insert(r)
			}
			res.Warnings = append(res.Warnings, warns...)
			return nil
		})
	}
	g.Go(func() error {
		cores, err := ProbeCores(filepath.Join(cfg.Dir, record.FamilyVMStat.Dir()))
		if err != nil {
			slog.Debug("could not determine core count from vmstat data", "error", err)
			return nil
		}
		mu.Lock()
		res.Cores = cores
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(res.Warnings)
	return res, nil
}

func loadFamily(ctx context.Context, cfg Config, fam record.Family) ([]record.Record, []string, error) {
	dir := filepath.Join(cfg.Dir, fam.Dir())
	files, err := listCaptures(dir, cfg.From, cfg.To)
	if err != nil {
		slog.Debug("family directory not readable, skipping", "family", fam, "dir", dir)
		return nil, nil, nil
	}

	p := parser.ForFamily(fam)

	var recs []record.Record
	var warns []string
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		text, err := readCapture(path)
		if err != nil {
			warns = append(warns, fmt.Sprintf("%s/%s: %v", fam.Dir(), filepath.Base(path), err))
			continue
		}
		n := 0
		for snap := range tokenizer.Tokenize(fam, text) {
			n++
			if rec, ok := p.Parse(snap); ok {
				recs = append(recs, rec)
			}
		}
		if n == 0 {
			warns = append(warns, fmt.Sprintf("%s/%s: no boundary markers matched", fam.Dir(), filepath.Base(path)))
		}
	}
	return recs, warns, nil
}

// listCaptures returns the sorted capture files in dir whose filename
// stamp falls inside [from, to]. Files without a parsable stamp always
// pass the filter.
func listCaptures(dir string, from, to time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".dat") && !strings.HasSuffix(name, ".dat.gz") {
			continue
		}
		if ft, ok := fileStamp(name); ok {
			if !from.IsZero() && ft.Before(from) {
				continue
			}
			if !to.IsZero() && ft.After(to) {
				continue
			}
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// fileStamp extracts the yy.mm.dd.HHMM stamp from a capture filename.
func fileStamp(name string) (time.Time, bool) {
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".dat")
	i := strings.LastIndex(name, "_")
	if i < 0 {
		return time.Time{}, false
	}
	t, err := time.Parse(StampLayout, name[i+1:])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// readCapture reads a capture file, decompressing gzip transparently.
func readCapture(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ProbeCores scans the vmstat capture preambles for the VCPUS line the
// collector writes before the first boundary marker.
func ProbeCores(vmstatDir string) (int, error) {
	files, err := listCaptures(vmstatDir, time.Time{}, time.Time{})
	if err != nil {
		return 0, err
	}
	for _, path := range files {
		text, err := readCapture(path)
		if err != nil {
			continue
		}
		for line := range strings.Lines(text) {
			if !strings.HasPrefix(line, "VCPUS") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			if cores, err := strconv.Atoi(fields[1]); err == nil && cores > 0 {
				return cores, nil
			}
		}
	}
	return 0, errors.New(errors.ErrCodeNotFound, "no VCPUS line in vmstat captures")
}
