package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sagudev/fp-bindgen/codegen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseState int

const (
	stateBrowse browseState = iota
	stateFilter
	stateDetail
)

// entry is one browsable row: either a type node or a function.
type entry struct {
	label  string
	detail string
}

type inspectModel struct {
	filename string
	entries  []entry
	visible  []entry
	filter   textinput.Model
	selected int
	state    browseState
}

func newInspectModel(filename string, m *codegen.Model) *inspectModel {
	var entries []entry
	for _, fn := range m.Graph.Functions() {
		entries = append(entries, entry{
			label:  funcStyle.Render("fn ") + formatFunction(fn),
			detail: formatFunction(fn),
		})
	}
	for _, node := range m.Graph.Nodes() {
		entries = append(entries, entry{
			label:  typeStyle.Render(node.Kind.String()+" ") + node.Name(),
			detail: formatNodeDetail(m, node),
		})
	}

	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.Width = 40

	return &inspectModel{
		filename: filename,
		entries:  entries,
		visible:  entries,
		filter:   filter,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateFilter {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter", "esc":
			m.filter.Blur()
			m.state = stateBrowse
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == stateBrowse && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateBrowse && m.selected < len(m.visible)-1 {
			m.selected++
		}

	case "/":
		if m.state == stateBrowse {
			m.state = stateFilter
			m.filter.Focus()
		}

	case "enter":
		if m.state == stateBrowse && len(m.visible) > 0 {
			m.state = stateDetail
		}

	case "esc":
		switch m.state {
		case stateDetail:
			m.state = stateBrowse
		case stateBrowse:
			m.filter.SetValue("")
			m.applyFilter()
		}
	}

	return m, nil
}

func (m *inspectModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		m.visible = m.entries
	} else {
		m.visible = nil
		for _, e := range m.entries {
			if strings.Contains(strings.ToLower(e.detail), needle) ||
				strings.Contains(strings.ToLower(e.label), needle) {
				m.visible = append(m.visible, e)
			}
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Protocol Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.state == stateDetail {
		e := m.visible[m.selected]
		b.WriteString(e.label)
		b.WriteString("\n\n")
		b.WriteString(detailStyle.Render(e.detail))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
		return b.String()
	}

	if m.state == stateFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("nothing matches"))
		b.WriteString("\n")
	}
	for i, e := range m.visible {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
			b.WriteString(selectedStyle.Render(cursor + stripANSI(e.label)))
		} else {
			b.WriteString(cursor + e.label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter detail • / filter • q quit"))
	return b.String()
}

// stripANSI drops the per-segment coloring so the selection style wins.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func runInteractive(filename string, model *codegen.Model) error {
	p := tea.NewProgram(newInspectModel(filename, model), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
