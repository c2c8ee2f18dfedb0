// Package ui renders the live per-file progress view.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"copper/internal/linter"
)

// maxVisible bounds the file lines drawn at once.
const maxVisible = 12

type progressModel struct {
	title    string
	events   <-chan linter.Event
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	recent   []int
	finished int
	offenses int
	width    int
	done     bool
}

type fileItem struct {
	path     string
	status   linter.Status
	tier     string
	offenses int
}

type eventMsg linter.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders lint progress.
// It quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan linter.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: linter.StatusQueued})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(linter.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d files, %d offenses)", m.title, m.finished, len(m.items), m.offenses)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-12, 20)

	for _, idx := range m.recent {
		item := m.items[idx]
		label := statusLabel(item)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", label))
		line := fmt.Sprintf("  %s %s", statusStyled, truncate(item.path, nameWidth))
		if item.offenses > 0 {
			line += lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(fmt.Sprintf("  %d", item.offenses))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev linter.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok || ev.Status == linter.StatusQueued {
		return nil
	}
	item := &m.items[idx]
	if isFinal(item.status) {
		return nil
	}
	item.status = ev.Status
	item.tier = ev.Tier
	item.offenses = ev.Offenses
	m.touch(idx)

	if !isFinal(ev.Status) {
		return nil
	}
	m.finished++
	m.offenses += ev.Offenses
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

// touch moves idx to the end of the visible window.
func (m *progressModel) touch(idx int) {
	for i, v := range m.recent {
		if v == idx {
			m.recent = append(m.recent[:i], m.recent[i+1:]...)
			break
		}
	}
	m.recent = append(m.recent, idx)
	if len(m.recent) > maxVisible {
		m.recent = m.recent[len(m.recent)-maxVisible:]
	}
}

func isFinal(s linter.Status) bool {
	return s == linter.StatusDone || s == linter.StatusCached || s == linter.StatusError
}

func statusLabel(item fileItem) string {
	switch item.status {
	case linter.StatusWorking:
		return "linting"
	case linter.StatusCached:
		if item.tier != "" {
			return "cached:" + item.tier
		}
		return "cached"
	default:
		return string(item.status)
	}
}

func styleStatus(status linter.Status) lipgloss.Style {
	switch status {
	case linter.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case linter.StatusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case linter.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case linter.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// хвост пути информативнее начала
	runes := []rune(value)
	for runewidth.StringWidth(string(runes)) > width-3 {
		runes = runes[1:]
	}
	return "..." + string(runes)
}
