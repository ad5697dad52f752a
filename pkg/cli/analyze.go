/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/osw-analyzer/pkg/analyzer"
	"github.com/NVIDIA/osw-analyzer/pkg/archive"
	"github.com/NVIDIA/osw-analyzer/pkg/config"
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/report"
)

// analysisNames maps the analyze subcommand names to their categories.
var analysisNames = []struct {
	name     string
	usage    string
	category record.Category
}{
	{"cpu", "Sustained per-process CPU usage and load averages", record.CategoryCPU},
	{"memory", "Available-memory floor and high usage", record.CategoryMemory},
	{"vmstat", "CPU I/O wait and run-queue pressure", record.CategoryVMStat},
	{"pstate", "Stuck processes and combined CPU/memory pressure", record.CategoryProcState},
	{"disk", "Per-device wait times and utilization", record.CategoryDisk},
	{"netstat", "TCP socket buildup and interface loss", record.CategoryNetstat},
}

func analyzeCmd() *cli.Command {
	cmd := &cli.Command{
		Name:                  "analyze",
		EnableShellCompletion: true,
		Usage:                 "Run analyses over an OSWatcher archive",
		Description: `Parse the archive's capture files into a time-indexed model and run the
selected analysis, producing a findings report.

Each subcommand runs one analysis category; "all" runs every category.
Reports can be output in text, JSON, or YAML format.

# Examples

Analyze everything, report to stdout:
  oswan analyze all --archive /u01/oswbb/archive

Disk analysis for a six-hour window, written to a file:
  oswan analyze disk --archive /u01/oswbb/archive \
    --from 25.09.08.0100 --to 25.09.08.0700 \
    --output disk-report.txt`,
	}

	for _, an := range analysisNames {
		c := an.category
		cmd.Commands = append(cmd.Commands, &cli.Command{
			Name:  an.name,
			Usage: an.usage,
			Flags: analysisFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runAnalysis(ctx, cmd, []record.Category{c})
			},
		})
	}
	cmd.Commands = append(cmd.Commands, &cli.Command{
		Name:  "all",
		Usage: "Run every analysis category",
		Flags: analysisFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runAnalysis(ctx, cmd, record.Categories)
		},
	})
	return cmd
}

func analysisFlags() []cli.Flag {
	return []cli.Flag{
		archiveFlag,
		outputFlag,
		formatFlag,
		configFlag,
		fromFlag,
		toFlag,
	}
}

// runAnalysis loads the archive window, runs the selected categories, and
// writes the assembled report. Each invocation builds a fresh store.
func runAnalysis(ctx context.Context, cmd *cli.Command, categories []record.Category) error {
	outFormat := report.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return fmt.Errorf("unknown report format: %q (supported: %s)", outFormat, report.SupportedFormats())
	}

	th := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		th = loaded
	}

	window, err := parseWindow(cmd)
	if err != nil {
		return err
	}

	rep, err := analyzeArchive(ctx, cmd.String("archive"), th, window, categories)
	if err != nil {
		return err
	}

	w := report.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer func() {
		if err := w.Close(); err != nil {
			slog.Error("failed to close report writer", "error", err)
		}
	}()
	return w.Write(rep)
}

// analyzeArchive loads the archive window into a fresh store, runs the
// selected categories, and assembles the report.
func analyzeArchive(ctx context.Context, dir string, th config.Thresholds, win window, categories []record.Category) (*report.Report, error) {
	res, err := archive.Load(ctx, archive.Config{
		Dir:      dir,
		From:     win.from,
		To:       win.to,
		Families: familiesFor(categories),
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("archive loaded",
		"cores", res.Cores,
		"warnings", len(res.Warnings))

	var findings []record.Finding
	for _, c := range categories {
		a, err := analyzer.ForCategory(c, th, res.Cores)
		if err != nil {
			return nil, err
		}
		findings = append(findings, a.Analyze(res.Store)...)
	}

	return report.Build(dir, res.Cores, res.Warnings, findings), nil
}

type window struct {
	from, to time.Time
}

func parseWindow(cmd *cli.Command) (window, error) {
	var win window
	if s := cmd.String("from"); s != "" {
		t, err := archive.ParseStamp(s)
		if err != nil {
			return win, fmt.Errorf("invalid --from: %w", err)
		}
		win.from = t
	}
	if s := cmd.String("to"); s != "" {
		t, err := archive.ParseStamp(s)
		if err != nil {
			return win, fmt.Errorf("invalid --to: %w", err)
		}
		win.to = t
	}
	if !win.from.IsZero() && !win.to.IsZero() && win.to.Before(win.from) {
		return win, fmt.Errorf("--to %s precedes --from %s", cmd.String("to"), cmd.String("from"))
	}
	return win, nil
}

// familiesFor maps analysis categories to the record families they read,
// so the loader can skip files no selected analyzer will look at.
func familiesFor(categories []record.Category) []record.Family {
	seen := map[record.Family]bool{}
	var fams []record.Family
	add := func(f record.Family) {
		if !seen[f] {
			seen[f] = true
			fams = append(fams, f)
		}
	}
	for _, c := range categories {
		switch c {
		case record.CategoryCPU, record.CategoryProcState:
			add(record.FamilyCPU)
		case record.CategoryMemory:
			add(record.FamilyMemInfo)
		case record.CategoryVMStat:
			add(record.FamilyVMStat)
		case record.CategoryDisk:
			add(record.FamilyIOStat)
		case record.CategoryNetstat:
			add(record.FamilyNetstat)
		}
	}
	return fams
}
