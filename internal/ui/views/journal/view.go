package journal

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	journaldto "fathom/internal/modules/journal/dto"
	"fathom/internal/ui/theme"
)

type Port interface {
	List(ctx context.Context) ([]journaldto.EntryOutput, error)
	Question(ctx context.Context) (journaldto.QuestionOutput, error)
}

type LoadedMsg struct {
	Entries  []journaldto.EntryOutput
	Question journaldto.QuestionOutput
	Err      error
}

type entryItem struct {
	entry journaldto.EntryOutput
}

func (i entryItem) Title() string {
	if i.entry.Title != "" {
		return i.entry.Title
	}
	return "Entry " + i.entry.Date
}
func (i entryItem) Description() string { return i.entry.Date + "  " + i.entry.Purpose }
func (i entryItem) FilterValue() string  { return i.Title() + " " + i.entry.Content }

type Model struct {
	port     Port
	list     list.Model
	preview  viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	question journaldto.QuestionOutput
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Journal"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(0))
	return Model{port: port, list: l, preview: vp, spinner: sp, renderer: r, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		entries, err := m.port.List(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		question, err := m.port.Question(ctx)
		return LoadedMsg{Entries: entries, Question: question, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.preview.SetContent(m.renderSelected())

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Journal: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Journal"
		m.question = msg.Question
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.preview.SetContent(m.renderSelected())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		prev := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prev {
			m.preview.SetContent(m.renderSelected())
			m.preview.GotoTop()
		}
		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading journal…")
	}
	header := m.renderQuestion()
	bodyH := max(m.height-lipgloss.Height(header), 1)
	listW := m.width * 4 / 10

	listPane := lipgloss.NewStyle().Width(listW).Height(bodyH).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(m.width-listW-2, 1)).
		Height(max(bodyH-2, 1)).
		Render(m.preview.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane))
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) QuestionAnswered() bool { return m.question.Answered }

func (m *Model) resize() {
	listW := m.width * 4 / 10
	bodyH := max(m.height-2, 1)
	m.list.SetSize(listW, bodyH)
	m.preview.Width = max(m.width-listW-4, 1)
	m.preview.Height = max(bodyH-4, 1)
	if r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(m.preview.Width)); err == nil {
		m.renderer = r
	}
}

func (m Model) renderQuestion() string {
	if m.question.Question == "" {
		return theme.Muted.Render("No question today") + "\n"
	}
	line := theme.Title.Render("Today: ") + m.question.Question
	if m.question.Answered {
		line += "  " + theme.Muted.Render("answered: "+m.question.Answer)
	} else {
		line += "  " + theme.Muted.Render("(: question:answer <text>)")
	}
	return line + "\n"
}

func (m Model) renderSelected() string {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return theme.Muted.Render("No entries yet. Write one with : journal:write <text>")
	}
	e := item.entry
	var sb strings.Builder
	sb.WriteString("# " + item.Title() + "\n\n")
	sb.WriteString("_" + e.Date + " · " + e.Purpose + " · " + e.Role + "_\n\n")
	sb.WriteString(e.Content)
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(sb.String()); err == nil {
			return rendered
		}
	}
	return sb.String()
}
