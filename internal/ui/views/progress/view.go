package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "fathom/internal/modules/progression/dto"
	"fathom/internal/ui/theme"
)

// Port is what the Progress tab reads.
type Port interface {
	Show(ctx context.Context) (progressdto.StateOutput, error)
	Catalog(ctx context.Context) (progressdto.CatalogOutput, error)
	History(ctx context.Context, limit int) ([]progressdto.EventOutput, error)
}

type LoadedMsg struct {
	State   progressdto.StateOutput
	Catalog progressdto.CatalogOutput
	History []progressdto.EventOutput
	Err     error
}

type Model struct {
	port     Port
	viewport viewport.Model
	spinner  spinner.Model
	loaded   LoadedMsg
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, viewport: viewport.New(0, 0), spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the snapshot, catalog and recent history in one message.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		state, err := m.port.Show(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		catalog, err := m.port.Catalog(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		history, err := m.port.History(ctx, 8)
		return LoadedMsg{State: state, Catalog: catalog, History: history, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-1, 1)
		m.viewport.SetContent(m.render())
	case LoadedMsg:
		m.loading = false
		m.loaded = msg
		m.viewport.SetContent(m.render())
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading progress…")
	}
	return m.viewport.View()
}

// State returns the last loaded snapshot.
func (m Model) State() progressdto.StateOutput { return m.loaded.State }

func (m Model) render() string {
	if m.loaded.Err != nil {
		return theme.Hot.Render("Error: " + m.loaded.Err.Error())
	}
	s := m.loaded.State
	var sb strings.Builder
	row := func(label, value string) {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-12s", label)) + value + "\n")
	}

	sb.WriteString(theme.Title.Render(fmt.Sprintf("Level %d", s.Level)) + "  " +
		theme.Muted.Render(fmt.Sprintf("%d XP, %d to next level", s.Experience, s.XPToNextLevel)) + "\n\n")
	row("streak", theme.Streak.Render(fmt.Sprintf("%d days", s.StreakCurrent))+fmt.Sprintf(" (longest %d)", s.StreakLongest))
	row("freezes", fmt.Sprintf("%d", s.StreakFreeze))
	if s.RecoverableStreak > 0 && !s.StreakRecoveryUsed {
		row("recoverable", theme.Hot.Render(fmt.Sprintf("%d days", s.RecoverableStreak)))
	}
	row("sessions", fmt.Sprintf("%d", s.TotalSessions))
	row("messages", fmt.Sprintf("%d", s.TotalMessages))
	row("goal", fmt.Sprintf("%s %d/%d %s", s.Goal.Type, s.Goal.Current, s.Goal.Target, s.Goal.Description))
	if s.Journey.Active {
		row("journey", fmt.Sprintf("%s until %s (x%.1f XP)", s.Journey.Name, s.Journey.EndDate, s.Journey.XPMultiplier))
	} else {
		row("journey", theme.Muted.Render("none"))
	}

	sb.WriteString("\n" + theme.Title.Render("Badges") + "\n")
	names := map[string]string{}
	for _, b := range m.loaded.Catalog.Badges {
		names[b.ID] = b.Name
	}
	if len(s.Badges) == 0 {
		sb.WriteString(theme.Muted.Render("  none yet") + "\n")
	}
	for _, id := range s.Badges {
		name := names[id]
		if name == "" {
			name = id
		}
		sb.WriteString("  " + theme.Badge.Render("★ "+name) + "\n")
	}

	if len(m.loaded.History) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Recent") + "\n")
		for _, e := range m.loaded.History {
			line := fmt.Sprintf("  %s  %-10s", e.At.Local().Format("Jan 02 15:04"), e.Kind)
			if e.Summary != "" {
				line += "  " + e.Summary
			}
			sb.WriteString(theme.Muted.Render(line) + "\n")
		}
	}

	sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("freeze costs %d XP  ·  : journey:start <days>  freeze:buy  streak:recover", m.loaded.Catalog.StreakFreezeCost)))
	return sb.String()
}
