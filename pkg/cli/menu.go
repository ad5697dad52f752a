/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/osw-analyzer/pkg/config"
	"github.com/NVIDIA/osw-analyzer/pkg/record"
	"github.com/NVIDIA/osw-analyzer/pkg/report"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	menuStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	menuErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func menuCmd() *cli.Command {
	return &cli.Command{
		Name:                  "menu",
		EnableShellCompletion: true,
		Usage:                 "Interactive analysis menu",
		Description: `Present a numbered menu of the available analyses. Each selection loads
the archive fresh, runs the analysis, and writes a report file into the
archive directory.`,
		Flags: []cli.Flag{
			archiveFlag,
			configFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			th := config.Default()
			if path := cmd.String("config"); path != "" {
				loaded, err := config.Load(path)
				if err != nil {
					return err
				}
				th = loaded
			}

			dir := cmd.String("archive")
			m := newMenuModel(func(categories []record.Category, name string) (string, error) {
				rep, err := analyzeArchive(ctx, dir, th, window{}, categories)
				if err != nil {
					return "", err
				}
				path := filepath.Join(dir, fmt.Sprintf("oswan-%s-report.txt", name))
				w := report.NewFileWriterOrStdout(report.FormatText, path)
				defer w.Close()
				if err := w.Write(rep); err != nil {
					return "", err
				}
				counts := rep.Counts()
				return fmt.Sprintf("%s (%d critical, %d warnings)",
					path, counts[record.SeverityCritical], counts[record.SeverityWarning]), nil
			})

			_, err := tea.NewProgram(m).Run()
			return err
		},
	}
}

// menuRunner executes one menu selection and returns a status line.
type menuRunner func(categories []record.Category, name string) (string, error)

type menuItem struct {
	label      string
	name       string
	categories []record.Category
}

type menuDoneMsg struct {
	status string
	err    error
}

type menuModel struct {
	items    []menuItem
	cursor   int
	running  bool
	status   string
	errText  string
	quitting bool
	run      menuRunner
}

func newMenuModel(run menuRunner) menuModel {
	items := make([]menuItem, 0, len(analysisNames)+1)
	for _, an := range analysisNames {
		items = append(items, menuItem{
			label:      an.usage,
			name:       an.name,
			categories: []record.Category{an.category},
		})
	}
	items = append(items, menuItem{
		label:      "Run every analysis",
		name:       "all",
		categories: record.Categories,
	})
	return menuModel{items: items, run: run}
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.running {
			return m, nil
		}
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.start(m.cursor)
		default:
			if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.items) {
				return m.start(n - 1)
			}
		}
	case menuDoneMsg:
		m.running = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			m.status = ""
		} else {
			m.status = msg.status
			m.errText = ""
		}
	}
	return m, nil
}

func (m menuModel) start(i int) (tea.Model, tea.Cmd) {
	m.cursor = i
	m.running = true
	m.status = ""
	m.errText = ""
	item := m.items[i]
	return m, func() tea.Msg {
		status, err := m.run(item.categories, item.name)
		return menuDoneMsg{status: status, err: err}
	}
}

func (m menuModel) View() string {
	if m.quitting {
		return ""
	}

	s := menuTitleStyle.Render("oswan - OSWatcher archive analysis") + "\n\n"
	for i, item := range m.items {
		cursor := "  "
		line := fmt.Sprintf("%d. %s", i+1, item.label)
		if i == m.cursor {
			cursor = menuCursorStyle.Render("> ")
			line = menuCursorStyle.Render(line)
		}
		s += cursor + line + "\n"
	}
	s += "\n"

	switch {
	case m.running:
		s += menuStatusStyle.Render("running analysis...") + "\n"
	case m.errText != "":
		s += menuErrorStyle.Render("error: "+m.errText) + "\n"
	case m.status != "":
		s += menuStatusStyle.Render("report written: "+m.status) + "\n"
	}
	s += menuStatusStyle.Render("1-7 or enter to run, j/k to move, q to quit") + "\n"
	return s
}
