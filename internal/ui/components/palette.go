package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fathom/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// Command is one palette entry. Names are matched by prefix; the root model
// dispatches on Name.
type Command struct {
	Name string
	Args string
	Help string
}

var Commands = []Command{
	{Name: "journal:write", Args: "<text>", Help: "save a journal entry"},
	{Name: "question:answer", Args: "<text>", Help: "answer today's question"},
	{Name: "journey:start", Args: "<days>", Help: "start a journey"},
	{Name: "goal:set", Args: "<daily|weekly|monthly> <target> [description]", Help: "replace the session goal"},
	{Name: "freeze:buy", Help: "spend XP on a streak freeze"},
	{Name: "streak:recover", Help: "restore a broken streak once"},
	{Name: "material:unlock", Help: "unlock the selected material"},
	{Name: "material:open", Args: "[page]", Help: "open the selected material"},
	{Name: "refresh", Help: "reload every tab"},
}

const maxSuggestions = 5

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	argStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
)

// Palette is an overlay text input with prefix suggestions, tab completion and
// a recall history for the current run.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "command, tab completes"
	ti.CharLimit = 512
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			if line != "" {
				p.history = append(p.history, line)
			}
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "tab":
			if matches := Suggest(p.input.Value()); len(matches) > 0 {
				p.input.SetValue(matches[0].Name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			if p.recall > 0 {
				p.recall--
				p.input.SetValue(p.history[p.recall])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.recall < len(p.history)-1 {
				p.recall++
				p.input.SetValue(p.history[p.recall])
			} else {
				p.recall = len(p.history)
				p.input.SetValue("")
			}
			p.input.CursorEnd()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// Suggest returns the commands whose name starts with the first word of line.
// Once the line has arguments only an exact name matches.
func Suggest(line string) []Command {
	word, _, hasArgs := strings.Cut(strings.TrimLeft(strings.ToLower(line), " "), " ")
	var out []Command
	for _, c := range Commands {
		if (hasArgs && c.Name == word) || (!hasArgs && strings.HasPrefix(c.Name, word)) {
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")

	matches := Suggest(p.input.Value())
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	if len(matches) > 0 {
		sb.WriteString("\n")
	}
	for _, c := range matches {
		line := "  " + c.Name
		if c.Args != "" {
			line += " " + argStyle.Render(c.Args)
		}
		sb.WriteString(line + theme.Muted.Render("  "+c.Help) + "\n")
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
