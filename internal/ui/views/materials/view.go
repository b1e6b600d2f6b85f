package materials

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	materialsdto "fathom/internal/modules/materials/dto"
	"fathom/internal/ui/theme"
)

// Port is the minimal interface this view needs from the materials use-case.
type Port interface {
	Catalog(ctx context.Context) (materialsdto.CatalogOutput, error)
	Open(ctx context.Context, id string, page int) (materialsdto.OpenOutput, error)
	Unlock(ctx context.Context, id string) (materialsdto.UnlockOutput, error)
}

type CatalogLoadedMsg struct {
	Catalog materialsdto.CatalogOutput
	Err     error
}

type OpenedMsg struct {
	Result materialsdto.OpenOutput
	Err    error
}

type UnlockedMsg struct {
	Result materialsdto.UnlockOutput
	Err    error
}

type materialItem struct {
	m materialsdto.MaterialOutput
}

func (i materialItem) Title() string {
	switch {
	case i.m.Locked:
		return theme.Locked.Render("🔒") + " " + i.m.Name
	case i.m.Cost > 0:
		return theme.Owned.Render("✓") + " " + i.m.Name
	}
	return i.m.Name
}

func (i materialItem) Description() string {
	if i.m.Cost == 0 {
		return i.m.Kind + "  free"
	}
	return fmt.Sprintf("%s  %d XP", i.m.Kind, i.m.Cost)
}

func (i materialItem) FilterValue() string { return i.m.Name }

type Model struct {
	port       Port
	list       list.Model
	viewport   viewport.Model
	renderer   *glamour.TermRenderer
	opened     materialsdto.OpenOutput
	experience int
	message    string
	width      int
	height     int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Materials"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	r, _ := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(0))
	return Model{port: port, list: l, viewport: viewport.New(0, 0), renderer: r}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		catalog, err := m.port.Catalog(context.Background())
		return CatalogLoadedMsg{Catalog: catalog, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.viewport.SetContent(m.renderContent())

	case CatalogLoadedMsg:
		if msg.Err != nil {
			m.message = msg.Err.Error()
			return m, nil
		}
		m.experience = msg.Catalog.Experience
		items := make([]list.Item, len(msg.Catalog.Materials))
		for i, mat := range msg.Catalog.Materials {
			items[i] = materialItem{m: mat}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case OpenedMsg:
		if msg.Err != nil {
			m.message = msg.Err.Error()
			return m, nil
		}
		m.message = ""
		m.opened = msg.Result
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()

	case UnlockedMsg:
		if msg.Err != nil {
			m.message = msg.Err.Error()
			return m, nil
		}
		m.message = "unlocked " + msg.Result.Material.Name
		return m, m.Reload()
	}

	var lCmd, vCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	m.viewport, vCmd = m.viewport.Update(msg)
	return m, tea.Batch(append(cmds, lCmd, vCmd)...)
}

func (m Model) View() string {
	listW := m.width * 35 / 100
	header := theme.Muted.Render(fmt.Sprintf("%d XP available", m.experience))
	if m.message != "" {
		header += "  " + theme.Hot.Render(m.message)
	}
	if m.opened.Material.ID != "" {
		header += "  " + theme.Title.Render(m.opened.Material.Name)
		if m.opened.TotalPages > 0 {
			header += theme.Muted.Render(fmt.Sprintf("  p.%d/%d  ←/→: page", m.opened.Page, m.opened.TotalPages))
		}
	}
	bodyH := max(m.height-1, 1)
	listPane := lipgloss.NewStyle().Width(listW).Height(bodyH).Render(m.list.View())
	contentPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Width(max(m.width-listW-2, 1)).
		Height(max(bodyH-2, 1)).
		Render(m.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, listPane, contentPane))
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(materialItem); ok {
		return item.m.ID, true
	}
	return "", false
}

func (m Model) OpenSelected(page int) tea.Cmd {
	id, ok := m.SelectedID()
	if !ok {
		return nil
	}
	return m.openCmd(id, page)
}

func (m Model) UnlockSelected() tea.Cmd {
	id, ok := m.SelectedID()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		out, err := m.port.Unlock(context.Background(), id)
		return UnlockedMsg{Result: out, Err: err}
	}
}

func (m Model) NextPage() tea.Cmd {
	if m.opened.TotalPages == 0 || m.opened.Page >= m.opened.TotalPages {
		return nil
	}
	return m.openCmd(m.opened.Material.ID, m.opened.Page+1)
}

func (m Model) PrevPage() tea.Cmd {
	if m.opened.TotalPages == 0 || m.opened.Page <= 1 {
		return nil
	}
	return m.openCmd(m.opened.Material.ID, m.opened.Page-1)
}

func (m *Model) resize() {
	listW := m.width * 35 / 100
	bodyH := max(m.height-1, 1)
	m.list.SetSize(listW, bodyH)
	m.viewport.Width = max(m.width-listW-4, 1)
	m.viewport.Height = max(bodyH-2, 1)
	if r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(m.viewport.Width)); err == nil {
		m.renderer = r
	}
}

func (m Model) renderContent() string {
	if m.opened.Material.ID == "" {
		return theme.Muted.Render("enter: open  u: unlock with XP")
	}
	if m.opened.Content == "" {
		return theme.Muted.Render("(no text on this page)")
	}
	if m.opened.Material.Kind == "markdown" && m.renderer != nil {
		if rendered, err := m.renderer.Render(m.opened.Content); err == nil {
			return rendered
		}
	}
	return m.opened.Content
}

func (m Model) openCmd(id string, page int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Open(context.Background(), id, page)
		return OpenedMsg{Result: out, Err: err}
	}
}
