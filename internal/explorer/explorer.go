// internal/explorer/explorer.go
// Package explorer is a terminal checklist over the capability dataset.
// Toggling a capability recomputes the statistics panel in place.
package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/figure"
	"github.com/mwiater/capdash/internal/logging"
)

// item is one capability row in the checklist.
type item struct {
	name     string
	category string
	current  float64
	checked  bool
}

// Title returns the checkbox and label.
func (i item) Title() string {
	box := "[ ]"
	if i.checked {
		box = "[x]"
	}
	return box + " " + capability.Label(i.name)
}

// Description returns the category and latest score.
func (i item) Description() string {
	return fmt.Sprintf("%s, current %.1f%%", i.category, i.current)
}

// FilterValue returns the capability name.
func (i item) FilterValue() string { return i.name }

type model struct {
	ds       *capability.Dataset
	list     list.Model
	selected []string
	stats    capability.Stats
	err      error
	width    int
	height   int
}

var (
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1).MarginLeft(2)
	titleStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// categoryStyle colours text with the category's chart colour.
func categoryStyle(category string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(capability.ColorFor(category))).Bold(true)
}

func initialModel(ds *capability.Dataset, defaults []string) *model {
	known, _ := ds.FilterKnown(defaults)
	if known == nil {
		known = []string{}
	}
	checked := make(map[string]bool, len(known))
	for _, name := range known {
		checked[name] = true
	}

	names := ds.Names()
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		rec, err := ds.Get(name)
		if err != nil {
			continue
		}
		it := item{name: name, category: rec.Category, checked: checked[name]}
		if span, err := rec.Span(); err == nil {
			it.current = span.Current()
		}
		items = append(items, it)
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Capabilities"
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	m := &model{ds: ds, list: l, selected: known}
	m.recompute()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles toggling, resizing and quitting.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ", "x", "enter":
			return m, m.toggle()
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width/2, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggle flips the highlighted item and recomputes the statistics. Newly
// checked capabilities are appended so the selection keeps click order.
func (m *model) toggle() tea.Cmd {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return nil
	}
	it.checked = !it.checked
	if it.checked {
		m.selected = append(m.selected, it.name)
	} else {
		m.selected = remove(m.selected, it.name)
	}
	cmd := m.list.SetItem(m.list.Index(), it)
	m.recompute()
	return cmd
}

func (m *model) recompute() {
	m.stats, m.err = capability.CalculateStats(m.selected, m.ds)
	if m.err != nil {
		logging.LogError(m.err, "recompute statistics")
	}
}

func remove(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// View renders the checklist beside the statistics panel.
func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Statistics"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		for _, line := range figure.StatsPanel(m.stats, len(m.selected), m.ds.Len()) {
			b.WriteString(line.String())
			b.WriteString("\n")
		}
		if len(m.selected) > 0 {
			b.WriteString("\n")
		}
		for _, name := range m.selected {
			rec, err := m.ds.Get(name)
			if err != nil {
				continue
			}
			b.WriteString(categoryStyle(rec.Category).Render("■ " + capability.Label(name)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space: toggle  q: quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), panelStyle.Render(b.String()))
}

// Selected returns the current selection in toggle order.
func (m *model) Selected() []string {
	return append([]string{}, m.selected...)
}

// Run starts the explorer and blocks until the user quits or ctx is done.
// It returns the final selection.
func Run(ctx context.Context, ds *capability.Dataset, defaults []string) ([]string, error) {
	m := initialModel(ds, defaults)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return m.Selected(), nil
}
