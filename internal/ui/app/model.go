package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	journaldto "fathom/internal/modules/journal/dto"
	progressdto "fathom/internal/modules/progression/dto"
	"fathom/internal/ui/components"
	"fathom/internal/ui/theme"
	journalview "fathom/internal/ui/views/journal"
	materialsview "fathom/internal/ui/views/materials"
	progressview "fathom/internal/ui/views/progress"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type progressPort interface {
	progressview.Port
	StartJourney(ctx context.Context, days int) (progressdto.ChangeOutput, error)
	BuyFreeze(ctx context.Context) (progressdto.ChangeOutput, error)
	Recover(ctx context.Context) (progressdto.ChangeOutput, error)
	SetGoal(ctx context.Context, goalType string, target int, description string) (progressdto.ChangeOutput, error)
}

type journalPort interface {
	journalview.Port
	Write(ctx context.Context, input journaldto.CreateEntryInput) (journaldto.CreateEntryOutput, error)
	Answer(ctx context.Context, answer string) (journaldto.AnswerOutput, error)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabProgress tabID = iota
	tabJournal
	tabMaterials
	tabCount
)

var tabLabels = [tabCount]string{"Progress", "Journal", "Materials"}

// actionDoneMsg reports a palette action. Every action can move XP, so all tabs reload.
type actionDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Unlock  key.Binding
	PrevPg  key.Binding
	NextPg  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open material")),
		Unlock:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unlock material")),
		PrevPg:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "pdf page")),
		NextPg:  key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "pdf page")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Unlock},
		{k.PrevPg, k.NextPg},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs and runs palette actions;
// rendering is delegated to the per-tab views.
type Model struct {
	vaultPath string

	progress progressPort
	journal  journalPort

	progressView  progressview.Model
	journalView   journalview.Model
	materialsView materialsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(vaultPath string, progress progressPort, journal journalPort, materials materialsview.Port) Model {
	return Model{
		vaultPath:     vaultPath,
		progress:      progress,
		journal:       journal,
		progressView:  progressview.New(progress),
		journalView:   journalview.New(journal),
		materialsView: materialsview.New(materials),
		activeTab:     tabProgress,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.progressView.Init(), m.journalView.Init(), m.materialsView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.reloadAll()

	// Loaded messages go to their own view whichever tab is visible.
	case progressview.LoadedMsg:
		var cmd tea.Cmd
		m.progressView, cmd = m.progressView.Update(msg)
		return m, cmd
	case journalview.LoadedMsg:
		var cmd tea.Cmd
		m.journalView, cmd = m.journalView.Update(msg)
		return m, cmd
	case materialsview.CatalogLoadedMsg, materialsview.OpenedMsg:
		var cmd tea.Cmd
		m.materialsView, cmd = m.materialsView.Update(msg)
		return m, cmd
	case materialsview.UnlockedMsg:
		var cmd tea.Cmd
		m.materialsView, cmd = m.materialsView.Update(msg)
		if msg.Err == nil {
			m.status = "unlocked " + msg.Result.Material.Name
			cmd = tea.Batch(cmd, m.progressView.Reload())
		}
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.subViewFiltering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "enter":
			if m.activeTab == tabMaterials {
				return m, m.materialsView.OpenSelected(1)
			}
		case "u":
			if m.activeTab == tabMaterials {
				return m, m.materialsView.UnlockSelected()
			}
		case "left":
			if m.activeTab == tabMaterials {
				return m, m.materialsView.PrevPage()
			}
		case "right":
			if m.activeTab == tabMaterials {
				return m, m.materialsView.NextPage()
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabProgress:
		m.progressView, tabCmd = m.progressView.Update(msg)
	case tabJournal:
		m.journalView, tabCmd = m.journalView.Update(msg)
	case tabMaterials:
		m.materialsView, tabCmd = m.materialsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabProgress:
		return m.progressView.View()
	case tabJournal:
		return m.journalView.View()
	case tabMaterials:
		return m.materialsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		style := theme.Muted
		if i == m.activeTab {
			style = theme.Hot
		}
		parts[i] = style.Render(" " + tabLabels[i] + " ")
	}
	bar := "fathom  " + strings.Join(parts, theme.Muted.Render(" │ ")) + "  " + theme.Muted.Render(m.vaultPath)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	state := m.progressView.State()
	left := theme.Hot.Render(fmt.Sprintf("🔥 %d  Lv %d  %d XP", state.StreakCurrent, state.Level, state.Experience)) + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  ::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "journal:write":
		if rest == "" {
			m.status = "usage: journal:write <text>"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.journal.Write(ctx, journaldto.CreateEntryInput{Content: rest})
			return withOutcomes("entry saved", out.Outcomes), err
		})

	case "question:answer":
		if rest == "" {
			m.status = "usage: question:answer <text>"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.journal.Answer(ctx, rest)
			return withOutcomes("answer saved", out.Outcomes), err
		})

	case "journey:start":
		if len(parts) < 2 {
			m.status = "usage: journey:start <days>"
			return m, nil
		}
		days, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid days"
			return m, nil
		}
		return m, m.change("journey started", func(ctx context.Context) (progressdto.ChangeOutput, error) {
			return m.progress.StartJourney(ctx, days)
		})

	case "goal:set":
		if len(parts) < 3 {
			m.status = "usage: goal:set <daily|weekly|monthly> <target> [description]"
			return m, nil
		}
		target, err := strconv.Atoi(parts[2])
		if err != nil {
			m.status = "invalid target"
			return m, nil
		}
		description := strings.TrimSpace(strings.Join(parts[3:], " "))
		return m, m.change("goal updated", func(ctx context.Context) (progressdto.ChangeOutput, error) {
			return m.progress.SetGoal(ctx, parts[1], target, description)
		})

	case "freeze:buy":
		return m, m.change("streak freeze bought", m.progress.BuyFreeze)

	case "streak:recover":
		return m, m.change("streak recovered", m.progress.Recover)

	case "material:unlock":
		m.activeTab = tabMaterials
		return m, m.materialsView.UnlockSelected()

	case "material:open":
		page := 1
		if len(parts) >= 2 {
			if p, err := strconv.Atoi(parts[1]); err == nil {
				page = p
			}
		}
		m.activeTab = tabMaterials
		return m, m.materialsView.OpenSelected(page)

	case "refresh":
		m.status = "refreshed"
		return m, m.reloadAll()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabJournal:
		return m.journalView.Filtering()
	case tabMaterials:
		return m.materialsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.progressView, _ = m.progressView.Update(sz)
	m.journalView, _ = m.journalView.Update(sz)
	m.materialsView, _ = m.materialsView.Update(sz)
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(m.progressView.Reload(), m.journalView.Reload(), m.materialsView.Reload())
}

func (m Model) action(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return actionDoneMsg{status: status, err: err}
	}
}

func (m Model) change(status string, fn func(ctx context.Context) (progressdto.ChangeOutput, error)) tea.Cmd {
	return m.action(func(ctx context.Context) (string, error) {
		out, err := fn(ctx)
		messages := make([]string, 0, len(out.Outcomes))
		for _, o := range out.Outcomes {
			messages = append(messages, o.Message)
		}
		return withOutcomes(status, messages), err
	})
}

func withOutcomes(status string, outcomes []string) string {
	if len(outcomes) == 0 {
		return status
	}
	return status + ": " + strings.Join(outcomes, ", ")
}
