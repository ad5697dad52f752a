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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
)

const vmstatCapture = `Linux
VCPUS 8
MEMORY 64323

zzz ***Mon Jun 16 12:00:30 UTC 2025
procs -----------memory---------- ---swap-- -----io---- -system-- ------cpu-----
 r  b   swpd   free   buff  cache   si   so    bi    bo   in   cs us sy id wa st
 2  0      0 204800  78900 612345    0    0     1     2   30   40  5  2 92  1  0
zzz ***Mon Jun 16 12:01:00 UTC 2025
procs -----------memory---------- ---swap-- -----io---- -system-- ------cpu-----
 r  b   swpd   free   buff  cache   si   so    bi    bo   in   cs us sy id wa st
 9  1      0 104800  78900 612345    0    0     1     2   30   40 50 20  5 25  0
`

const topCapture = `zzz ***Mon Jun 16 12:00:30 UTC 2025
top - 12:00:30 up 10 days,  1:02,  2 users,  load average: 1.20, 1.10, 0.95
  PID USER      PR  NI    VIRT    RES    SHR S  %CPU %MEM     TIME+ COMMAND
 4021 oracle    20   0  9876.5m   1.2g  34560 R  85.3  3.1   12:04.11 ora_dbw0
`

// writeCapture writes one capture file under the family dir of root.
func writeCapture(t *testing.T, root string, fam record.Family, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, fam.Dir())
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzipCapture(t *testing.T, root string, fam record.Family, name, content string) {
	t.Helper()
	dir := filepath.Join(root, fam.Dir())
	require.NoError(t, os.MkdirAll(dir, 0o755))
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func TestLoadArchive(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeCapture(t, root, record.FamilyVMStat, "host_vmstat_25.06.16.1200.dat", vmstatCapture)
	writeCapture(t, root, record.FamilyCPU, "host_top_25.06.16.1200.dat", topCapture)

	res, err := Load(context.Background(), Config{Dir: root})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Cores)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 2, res.Store.Len(record.FamilyVMStat))
	assert.Equal(t, 1, res.Store.Len(record.FamilyCPU))
	assert.Equal(t, 0, res.Store.Len(record.FamilyIOStat))
}

func TestLoadGzipCapture(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeGzipCapture(t, root, record.FamilyVMStat, "host_vmstat_25.06.16.1200.dat.gz", vmstatCapture)

	res, err := Load(context.Background(), Config{Dir: root})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Store.Len(record.FamilyVMStat))
	assert.Equal(t, 8, res.Cores)
}

func TestLoadFilenameWindow(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeCapture(t, root, record.FamilyCPU, "host_top_25.06.16.1200.dat", topCapture)
	writeCapture(t, root, record.FamilyCPU, "host_top_25.06.17.1200.dat",
		strings.ReplaceAll(topCapture, "Jun 16", "Jun 17"))

	from, err := ParseStamp("25.06.17.0000")
	require.NoError(t, err)

	res, err := Load(context.Background(), Config{Dir: root})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Store.Len(record.FamilyCPU))

	res, err = Load(context.Background(), Config{Dir: root, From: from})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Store.Len(record.FamilyCPU))

	res, err = Load(context.Background(), Config{Dir: root, To: from})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Store.Len(record.FamilyCPU))
}

func TestLoadFamilySubset(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeCapture(t, root, record.FamilyVMStat, "host_vmstat_25.06.16.1200.dat", vmstatCapture)
	writeCapture(t, root, record.FamilyCPU, "host_top_25.06.16.1200.dat", topCapture)

	res, err := Load(context.Background(), Config{Dir: root, Families: []record.Family{record.FamilyCPU}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Store.Len(record.FamilyVMStat))
	assert.Equal(t, 1, res.Store.Len(record.FamilyCPU))
	// The core probe still runs even when vmstat is not loaded.
	assert.Equal(t, 8, res.Cores)
}

func TestLoadWarnsOnMarkerlessFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeCapture(t, root, record.FamilyCPU, "host_top_25.06.16.1200.dat", "no markers in this file\nat all\n")

	res, err := Load(context.Background(), Config{Dir: root})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "no boundary markers matched")
	assert.Equal(t, 0, res.Store.Len(record.FamilyCPU))
}

func TestLoadMissingArchiveDir(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), Config{Dir: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestLoadEmptyArchiveIsNotAnError(t *testing.T) {
	t.Parallel()
	res, err := Load(context.Background(), Config{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 0, res.Cores)
}

func TestLoadCanceledContext(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeCapture(t, root, record.FamilyCPU, "host_top_25.06.16.1200.dat", topCapture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, Config{Dir: root})
	assert.Error(t, err)
}

func TestParseStamp(t *testing.T) {
	t.Parallel()
	got, err := ParseStamp("25.09.08.0100")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 8, 1, 0, 0, 0, time.UTC), got)

	_, err = ParseStamp("2025-09-08")
	assert.Error(t, err)
}

func TestFileStamp(t *testing.T) {
	t.Parallel()
	ts, ok := fileStamp("new-hire-training_top_25.09.08.0100.dat")
	require.True(t, ok)
	assert.Equal(t, 2025, ts.Year())

	ts, ok = fileStamp("host_vmstat_25.09.08.0100.dat.gz")
	require.True(t, ok)
	assert.Equal(t, 9, int(ts.Month()))

	_, ok = fileStamp("README.dat")
	assert.False(t, ok)
}

func TestProbeCoresMissing(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeCapture(t, root, record.FamilyVMStat, "host_vmstat_25.06.16.1200.dat", "zzz ***Mon Jun 16 12:00:30 UTC 2025\nno preamble here\n")
	_, err := ProbeCores(filepath.Join(root, record.FamilyVMStat.Dir()))
	assert.Error(t, err)
}
