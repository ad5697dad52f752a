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

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/osw-analyzer/pkg/record"
)

func sampleReport() *Report {
	return Build("/var/oswatcher/archive", 4, []string{"oswtop/bad.dat: no boundary markers"}, []record.Finding{
		{Category: record.CategoryVMStat, Severity: record.SeverityWarning, Time: testStamp, End: testStamp.Add(time.Minute), Message: "CPU I/O wait above 20% for 2 samples, peak 30%"},
		{Category: record.CategoryCPU, Severity: record.SeverityInfo, Time: testStamp, Message: "1m load peaked at 2.50"},
	})
}

func TestWriterTextFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := NewWriter(FormatText, &buf)
	require.NoError(t, w.Write(sampleReport()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "OSWatcher analysis report\n"))
	assert.Contains(t, out, "archive:   /var/oswatcher/archive")
	assert.Contains(t, out, "cores:     4")
	assert.Contains(t, out, "warning:   oswtop/bad.dat")
	assert.Contains(t, out, "== cpu ==")
	assert.Contains(t, out, "== vmstat ==")

	// Section ordering follows the category order.
	assert.Less(t, strings.Index(out, "== cpu =="), strings.Index(out, "== vmstat =="))

	// Every finding line parses back.
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "[") {
			continue
		}
		_, err := ParseFindingLine(line)
		assert.NoError(t, err, "line %q", line)
	}
}

func TestWriterJSONFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	require.NoError(t, w.Write(sampleReport()))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/var/oswatcher/archive", got.Archive)
	assert.Len(t, got.Sections, 2)
}

func TestWriterYAMLFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)
	require.NoError(t, w.Write(sampleReport()))

	var got Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 4, got.Cores)
}

func TestWriterUnknownFormatDefaultsToText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	require.NoError(t, w.Write(sampleReport()))
	assert.True(t, strings.HasPrefix(buf.String(), "OSWatcher analysis report"))
}

func TestFileWriterOrStdout(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "report.txt")
	w := NewFileWriterOrStdout(FormatText, path)
	require.NoError(t, w.Write(sampleReport()))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "double close is safe")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "== vmstat ==")
}

func TestFileWriterEmptyPathFallsBack(t *testing.T) {
	t.Parallel()
	w := NewFileWriterOrStdout(FormatText, "  ")
	assert.NoError(t, w.Close())
}

func TestSupportedFormats(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"text", "json", "yaml"}, SupportedFormats())
}
