package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/cli/formatter"
)

type dashboardLoadedMsg struct {
	dash *app.StudentDashboard
	err  error
}

type dashboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func newDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sections")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Reload, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// dashboardModel is the interactive student dashboard: a course list with
// a per-course section drill-down.
type dashboardModel struct {
	ctx context.Context
	svc app.StudentDashboardUseCase
	req app.DashboardRequest

	keys dashboardKeyMap
	help help.Model

	dash    *app.StudentDashboard
	err     error
	loading bool
	cursor  int
	open    bool
	width   int
}

func newDashboardModel(ctx context.Context, svc app.StudentDashboardUseCase, req app.DashboardRequest) *dashboardModel {
	return &dashboardModel{
		ctx:     ctx,
		svc:     svc,
		req:     req,
		keys:    newDashboardKeyMap(),
		help:    help.New(),
		loading: true,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m *dashboardModel) load() tea.Cmd {
	ctx, svc, req := m.ctx, m.svc, m.req
	return func() tea.Msg {
		dash, err := svc.StudentDashboard(ctx, req)
		return dashboardLoadedMsg{dash: dash, err: err}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.dash = msg.dash
			m.cursor = min(m.cursor, max(len(m.dash.Courses)-1, 0))
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *dashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.load()
	}
	if m.dash == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.open = false
	case m.open:
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.dash.Courses)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		m.open = len(m.dash.Courses) > 0
	}
	return m, nil
}

func (m *dashboardModel) View() string {
	var b strings.Builder
	switch {
	case m.loading && m.dash == nil:
		b.WriteString(formatter.Dim("Loading dashboard…"))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.open:
		b.WriteString(m.courseView())
	default:
		b.WriteString(m.listView())
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *dashboardModel) listView() string {
	d := m.dash
	var b strings.Builder

	name := "unknown user"
	if d.User != nil {
		name = d.User.FullName()
	}
	fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(name), formatter.BandBadge(d.Band))
	fmt.Fprintf(&b, "Overall  %s\n\n", formatter.RenderProgress(d.Overall.Percentage, 20))

	if len(d.Courses) == 0 {
		b.WriteString(formatter.Dim("No enrolled courses."))
		b.WriteString("\n")
	}
	for i, c := range d.Courses {
		marker := "  "
		label := c.Course.ShortName
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("▸ ")
			label = formatter.Bold(label)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n", marker,
			formatter.RenderCompactBar(c.Summary.Percentage, 16, false),
			formatter.PercentStyle(c.Summary.Percentage).Render(fmt.Sprintf("%3d%%", c.Summary.Percentage)),
			label)
	}
	for _, w := range d.Warnings {
		b.WriteString(formatter.Warning(w))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *dashboardModel) courseView() string {
	c := m.dash.Courses[m.cursor]
	var b strings.Builder
	b.WriteString(formatter.Header(c.Course.ShortName))
	b.WriteString("\n")
	if c.Course.FullName != "" {
		b.WriteString(formatter.Dim(c.Course.FullName))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s  %s\n\n", formatter.RenderProgress(c.Summary.Percentage, 20),
		formatter.Dim(formatter.Fraction(c.Summary.CompletedCount, c.Summary.TotalCount)))

	if len(c.Sections) == 0 {
		b.WriteString(formatter.Dim("No sections."))
		b.WriteString("\n")
		return b.String()
	}
	rows := make([][]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		rows = append(rows, []string{
			s.Section.DisplayName(),
			formatter.RenderCompactBar(s.Summary.Percentage, 16, s.Summary.TotalCount == 0),
			formatter.Fraction(s.Summary.CompletedCount, s.Summary.TotalCount),
			fmt.Sprintf("%d%%", s.Summary.Percentage),
		})
	}
	b.WriteString(formatter.RenderTable([]string{"SECTION", "PROGRESS", "DONE", "%"}, rows))
	return b.String()
}
